// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fingerprint computes the 128-bit stable content-hash ("md5sum")
// used as the wire-level type identity of a message or service, across
// heterogeneous producers and consumers.
package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/wireidl/msgc/spec"
	"github.com/wireidl/msgc/types"
)

// Compute returns the 32-character lowercase hex MD5 digest of spec's
// canonical text, recursing through ctx for embedded message fields. It is
// deterministic: no map iteration order, no local paths, no incidental
// whitespace enters the digested text.
func Compute(ctx *spec.Context, s *spec.MsgSpec) (string, error) {
	text, err := canonicalText(ctx, s, make(map[string]bool))
	if err != nil {
		return "", err
	}
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:]), nil
}

// ComputeSrv returns the fingerprint of a service: the MD5 of the
// concatenation of the request's and response's canonical text, matching
// genpy's convention of hashing the request+response pair as one value.
func ComputeSrv(ctx *spec.Context, s *spec.SrvSpec) (string, error) {
	reqText, err := canonicalText(ctx, s.Request, make(map[string]bool))
	if err != nil {
		return "", err
	}
	respText, err := canonicalText(ctx, s.Response, make(map[string]bool))
	if err != nil {
		return "", err
	}
	sum := md5.Sum([]byte(reqText + respText))
	return hex.EncodeToString(sum[:]), nil
}

// canonicalText builds the canonical text of s: constants first (one line
// each, `type name=value`), then fields (one line each, `type name`, with
// embedded-message types replaced by their own recursive fingerprint).
// visiting tracks full names currently on the call stack so that a cyclic
// reference (which the loader is assumed to reject, but which this
// component defends against per spec.md §9) fails cleanly instead of
// recursing forever.
func canonicalText(ctx *spec.Context, s *spec.MsgSpec, visiting map[string]bool) (string, error) {
	if visiting[s.FullName] {
		return "", fmt.Errorf("cyclic type reference through %q", s.FullName)
	}
	visiting[s.FullName] = true
	defer delete(visiting, s.FullName)

	var b strings.Builder
	for _, c := range s.Constants {
		fmt.Fprintf(&b, "%s %s=%v\n", c.Type, c.Name, c.Value)
	}
	for _, f := range s.Fields {
		typeText, err := fieldTypeText(ctx, f.Type, s.Package, visiting)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s %s\n", typeText, f.Name)
	}
	return b.String(), nil
}

// fieldTypeText computes the text used for a field's type within the
// canonical representation: the raw type name for primitives/specials/
// strings (and their array forms), or the recursive fingerprint of the
// referenced type for embedded message fields (and their array forms).
func fieldTypeText(ctx *spec.Context, typeExprText, pkg string, visiting map[string]bool) (string, error) {
	te, err := spec.ParseTypeExpr(typeExprText)
	if err != nil {
		return "", err
	}
	base := te.Base
	if types.IsPrimitive(base) || types.IsString(base) || types.IsSpecial(spec.ShortTypeName(base)) {
		return typeExprText, nil
	}
	full := spec.Resolve(pkg, base)
	embedded, err := ctx.Get(full)
	if err != nil {
		return "", err
	}
	digest, err := canonicalText(ctx, embedded, visiting)
	if err != nil {
		return "", err
	}
	sum := md5.Sum([]byte(digest))
	hexDigest := hex.EncodeToString(sum[:])
	return hexDigest + arraySuffix(te), nil
}

func arraySuffix(te spec.TypeExpr) string {
	if !te.IsArray {
		return ""
	}
	if te.Length < 0 {
		return "[]"
	}
	return fmt.Sprintf("[%d]", te.Length)
}
