// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sanitize remaps field and constant names that collide with Go
// reserved words (or the emitter's implicit receiver identifier) so the
// emitted struct compiles. The remap always produces a fresh MsgSpec; the
// original, as registered in a Context, is never mutated. Fingerprinting
// always runs on the pre-sanitized names, because wire-level type identity
// is defined over the original IDL names, not over a host-language
// accommodation of them.
package sanitize

import (
	"go/token"

	"github.com/jinzhu/copier"

	"github.com/wireidl/msgc/spec"
)

// Suffix is appended to a colliding name to make it safe.
const Suffix = "_"

// receiver is the identifier the emitter uses for a message's method
// receiver; a field or constant named identically would shadow it.
const receiver = "m"

// Sanitize returns a copy of s with every colliding field and constant
// name remapped via Remap.
func Sanitize(s *spec.MsgSpec) (*spec.MsgSpec, error) {
	out := new(spec.MsgSpec)
	if err := copier.Copy(out, s); err != nil {
		return nil, err
	}
	fields := make([]spec.Field, len(s.Fields))
	for i, f := range s.Fields {
		fields[i] = spec.Field{Type: f.Type, Name: Remap(f.Name)}
	}
	constants := make([]spec.Constant, len(s.Constants))
	for i, c := range s.Constants {
		constants[i] = spec.Constant{
			Type:    c.Type,
			Name:    Remap(c.Name),
			Value:   c.Value,
			RawText: c.RawText,
		}
	}
	out.Fields = fields
	out.Constants = constants
	return out, nil
}

// Remap appends Suffix to name if it collides with a Go reserved word or
// the emitter's receiver identifier; otherwise it returns name unchanged.
func Remap(name string) string {
	if token.IsKeyword(name) || name == receiver {
		return name + Suffix
	}
	return name
}
