// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"strings"

	"github.com/wireidl/msgc/spec"
	"github.com/wireidl/msgc/types"
)

// separator is genpy's own banner between a message's text and the text
// of each of its dependencies in the concatenated "full text" blob.
var separator ="\n" + strings.Repeat("=", 80) + "\n"

// fullText concatenates s.Text with the text of every type s transitively
// depends on (in first-seen order, each one once, each preceded by the
// separator line and a "MSG: pkg/Type" line). The result is returned
// unescaped; quoteFullText turns it into a Go string literal.
func fullText(ctx *spec.Context, s *spec.MsgSpec) (string, error) {
	var b strings.Builder
	b.WriteString(s.Text)
	seen := map[string]bool{s.FullName: true}
	if err := appendDepText(ctx, s, &b, seen); err != nil {
		return "", err
	}
	return b.String(), nil
}

func appendDepText(ctx *spec.Context, s *spec.MsgSpec, b *strings.Builder, seen map[string]bool) error {
	for _, f := range s.Fields {
		te, err := spec.ParseTypeExpr(f.Type)
		if err != nil {
			return err
		}
		base := te.Base
		short := spec.ShortTypeName(base)
		if types.IsPrimitive(base) || types.IsString(base) || types.IsSpecial(short) {
			continue
		}
		full := spec.Resolve(s.Package, base)
		if seen[full] {
			continue
		}
		seen[full] = true
		dep, err := ctx.Get(full)
		if err != nil {
			return err
		}
		b.WriteString(separator)
		b.WriteString("MSG: " + dep.FullName + "\n")
		b.WriteString(dep.Text)
		if err := appendDepText(ctx, dep, b, seen); err != nil {
			return err
		}
	}
	return nil
}

// quoteFullText renders text as a Go backtick raw string, falling back to
// a quoted literal if text itself contains a backtick or a carriage return.
func quoteFullText(text string) string {
	return quoteStringConstant(text)
}
