// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import "strings"

// quoteStringConstant picks a Go string-literal quoting form that
// reproduces value byte-exact: a backtick raw string when value itself
// contains no backtick (and no carriage return, which raw strings cannot
// represent), else a double-quoted literal with backslash and double-quote
// escaped. This is the Go-idiomatic analog of genpy's single/double/raw
// Python quoting rule (spec.md §4.6 item 5, §9).
func quoteStringConstant(value string) string {
	if !strings.ContainsAny(value, "`\r") {
		return "`" + value + "`"
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range value {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
