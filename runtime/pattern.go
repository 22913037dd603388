// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

// PatternSize returns the total byte width of a reduced pack pattern
// (e.g. "3i2fQ" -> 3*4 + 2*4 + 8 = 28), such as an entry of a generated
// type's WirePatterns table. Generated Marshal/Unmarshal methods do not
// call it: their batch widths are fixed when the code is generated.
func PatternSize(pattern string) int {
	total := 0
	count := 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c >= '0' && c <= '9' {
			count = count*10 + int(c-'0')
			continue
		}
		w, ok := codeWidth[c]
		if !ok {
			continue // '%' placeholders and similar carry no static width
		}
		if count == 0 {
			count = 1
		}
		total += w * count
		count = 0
	}
	return total
}

var codeWidth = map[byte]int{
	'b': 1, 'B': 1, 'h': 2, 'H': 2,
	'i': 4, 'I': 4, 'q': 8, 'Q': 8,
	'f': 4, 'd': 8,
}
