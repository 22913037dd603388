// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package flatten recursively inlines embedded message fields into a
// single flat field list with dotted path names, for serializer batching.
// The flattened spec is a derived, transient value: it is never
// registered in a Context and never participates in fingerprinting.
package flatten

import (
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/wireidl/msgc/sanitize"
	"github.com/wireidl/msgc/spec"
	"github.com/wireidl/msgc/types"
)

// ErrRecursive is returned when flattening would recurse through a cycle
// of embedded message types. The loader is assumed to reject cycles in
// well-formed input; this is a defensive backstop (spec.md §9).
type ErrRecursive struct {
	FullName string
}

func (e *ErrRecursive) Error() string {
	return fmt.Sprintf("cannot flatten %q: recursive embedded-type reference", e.FullName)
}

// Flatten produces a derived MsgSpec whose Fields list has every embedded
// message field (a field whose bare type is registered in ctx) replaced by
// the (recursively) flattened fields of the embedded spec, each prefixed
// `name.`. Primitive, string, special, and array fields keep their type
// unchanged. Every field name, inlined or not, is passed through
// sanitize.Remap. Constants, Package, ShortName, FullName, and Text are copied
// unchanged from the input spec via copier, so the flattened value is
// otherwise indistinguishable from the original except for Fields.
func Flatten(ctx *spec.Context, s *spec.MsgSpec) (*spec.MsgSpec, error) {
	return flatten(ctx, s, make(map[string]bool))
}

func flatten(ctx *spec.Context, s *spec.MsgSpec, visiting map[string]bool) (*spec.MsgSpec, error) {
	if visiting[s.FullName] {
		return nil, &ErrRecursive{FullName: s.FullName}
	}
	visiting[s.FullName] = true
	defer delete(visiting, s.FullName)

	out := new(spec.MsgSpec)
	if err := copier.Copy(out, s); err != nil {
		return nil, fmt.Errorf("flatten %q: %w", s.FullName, err)
	}

	var newFields []spec.Field
	for _, f := range s.Fields {
		te, err := spec.ParseTypeExpr(f.Type)
		if err != nil {
			return nil, err
		}
		embeddedFullName := spec.Resolve(s.Package, te.Base)
		isSpecial := types.IsSpecial(spec.ShortTypeName(te.Base))
		if !te.IsArray && !isSpecial && ctx.IsRegistered(embeddedFullName) {
			embedded, err := ctx.Get(embeddedFullName)
			if err != nil {
				return nil, err
			}
			inlined, err := flatten(ctx, embedded, visiting)
			if err != nil {
				return nil, err
			}
			for _, sub := range inlined.Fields {
				newFields = append(newFields, spec.Field{
					Type: sub.Type,
					Name: sanitize.Remap(f.Name) + "." + sub.Name,
				})
			}
			continue
		}
		newFields = append(newFields, spec.Field{Type: f.Type, Name: sanitize.Remap(f.Name)})
	}
	out.Fields = newFields
	return out, nil
}
