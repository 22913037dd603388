// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spec

import (
	"fmt"
	"strconv"
	"strings"
)

// TypeExpr is a parsed type expression: a base type name plus optional
// array-ness. IsArray && Length < 0 means variable-length (`T[]`);
// IsArray && Length >= 0 means fixed-length (`T[N]`).
type TypeExpr struct {
	Base    string
	IsArray bool
	Length  int // -1 if variable-length
}

// ParseTypeExpr parses a field or constant type expression of the form
// `base`, `base[]`, or `base[N]` with N >= 0.
func ParseTypeExpr(expr string) (TypeExpr, error) {
	i := strings.IndexByte(expr, '[')
	if i < 0 {
		return TypeExpr{Base: expr, IsArray: false, Length: -1}, nil
	}
	if !strings.HasSuffix(expr, "]") {
		return TypeExpr{}, fmt.Errorf("illegal array spec %q: missing closing bracket", expr)
	}
	base := expr[:i]
	inner := expr[i+1 : len(expr)-1]
	if inner == "" {
		return TypeExpr{Base: base, IsArray: true, Length: -1}, nil
	}
	n, err := strconv.Atoi(inner)
	if err != nil || n < 0 {
		return TypeExpr{}, fmt.Errorf("illegal array spec %q: length must be a non-negative integer", expr)
	}
	return TypeExpr{Base: base, IsArray: true, Length: n}, nil
}

// String renders the type expression back to its canonical text form.
func (t TypeExpr) String() string {
	if !t.IsArray {
		return t.Base
	}
	if t.Length < 0 {
		return t.Base + "[]"
	}
	return fmt.Sprintf("%s[%d]", t.Base, t.Length)
}
