// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pattern implements the binary-pack pattern engine: computing a
// struct-pack-style format string for a run of primitive types, and
// reducing that string to a run-length-compressed form.
package pattern

import (
	"strconv"
	"strings"

	"github.com/wireidl/msgc/types"
)

// Compute returns the pack pattern for typeNames if every element is a
// primitive, in the same order. It returns ("", false) if typeNames is
// empty or contains any non-primitive (string, array, special, embedded
// message) type.
func Compute(typeNames []string) (string, bool) {
	if len(typeNames) == 0 {
		return "", false
	}
	var b strings.Builder
	for _, name := range typeNames {
		p, ok := types.Lookup(name)
		if !ok {
			return "", false
		}
		b.WriteByte(p.Code)
	}
	return b.String(), true
}

// Reduce run-length-encodes adjacent identical pack codes in pattern,
// e.g. "hhhhiiiibbb" -> "4h4i3b". Patterns containing a '%' format
// placeholder (used for runtime-known lengths, e.g. "<I%ss") or of length
// <= 1 are returned unchanged. A digit character is never combined with
// its neighbor even if repeated, since digits are themselves count
// prefixes rather than pack codes.
func Reduce(p string) string {
	if len(p) <= 1 || strings.ContainsRune(p, '%') {
		return p
	}
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' }

	var out strings.Builder
	prev := p[0]
	count := 1
	for i := 1; i < len(p); i++ {
		c := p[i]
		if c == prev && !isDigit(c) {
			count++
			continue
		}
		if count > 1 {
			out.WriteString(strconv.Itoa(count))
			out.WriteByte(prev)
		} else {
			out.WriteByte(prev)
		}
		prev = c
		count = 1
	}
	if count > 1 {
		out.WriteString(strconv.Itoa(count))
		out.WriteByte(prev)
	} else {
		out.WriteByte(prev)
	}
	return out.String()
}
