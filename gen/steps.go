// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"fmt"

	"github.com/wireidl/msgc/pattern"
	"github.com/wireidl/msgc/spec"
	"github.com/wireidl/msgc/types"
)

// step is one entry of a lowered (de)serialization plan: a single pack
// batch, a length-prefixed payload, an element-wise array, or a recursive
// special/embedded-type step (spec.md §4.5).
type step interface{ isStep() }

// packStep packs/unpacks a batch of fixed-width primitive fields (and the
// virtual per-element slots of a fixed-length primitive array) with one
// compiled little-endian pattern.
type packStep struct {
	fields  []string // flattened field paths (e.g. "inner.x", "v[2]"), in wire order
	types   []string // parallel primitive type names
	pattern string   // reduced struct-pack pattern
}

func (*packStep) isStep() {}

// stringStep packs/unpacks a u32-length-prefixed UTF-8 string field.
type stringStep struct{ field string }

func (*stringStep) isStep() {}

// byteArrayStep packs/unpacks a uint8[]/byte[] field as an opaque byte
// string: u32-length-prefixed if variable, bare N bytes if fixed.
type byteArrayStep struct {
	field string
	fixed bool
	n     int
}

func (*byteArrayStep) isStep() {}

// primitiveArrayStep packs/unpacks a variable-length array of a primitive
// type: u32 length prefix followed by length packed elements. (Fixed-
// length primitive arrays are folded into packStep as repeated virtual
// slots instead, since they carry no length prefix.)
type primitiveArrayStep struct {
	field   string
	elem    string // primitive type name
	elemPat string // single-element pack code
}

func (*primitiveArrayStep) isStep() {}

// complexArrayStep packs/unpacks an array of string or user-defined
// message elements: a length prefix (if variable) followed by each
// element serialized by its own rules, no batching across elements.
type complexArrayStep struct {
	field    string
	elemType string // "string", a special type name, or a full message type name
	fixed    bool
	n        int
}

func (*complexArrayStep) isStep() {}

// specialStep packs/unpacks a Time, Duration, or Header field via its own
// Marshal/Unmarshal methods, applying the post-deserialize hook.
type specialStep struct {
	field string
	kind  string // types.Time, types.Duration, or types.Header
}

func (*specialStep) isStep() {}

// lower walks a flattened spec's field list and produces the step
// sequence the emitter renders. ctx is needed to resolve array element
// types that reference embedded message types (arrays are never
// flattened, so a message-typed array field is resolved, not inlined).
func lower(ctx *spec.Context, pkg string, fields []spec.Field) ([]step, error) {
	var steps []step
	var runFields, runTypes []string

	flushRun := func() {
		if len(runFields) == 0 {
			return
		}
		raw, ok := pattern.Compute(runTypes)
		if !ok {
			// Should not happen: every entry added to runTypes is a
			// primitive by construction.
			panic("pattern.Compute rejected a primitive-only run")
		}
		steps = append(steps, &packStep{
			fields:  append([]string(nil), runFields...),
			types:   append([]string(nil), runTypes...),
			pattern: pattern.Reduce(raw),
		})
		runFields, runTypes = nil, nil
	}

	for _, f := range fields {
		te, err := spec.ParseTypeExpr(f.Type)
		if err != nil {
			return nil, err
		}
		base := te.Base
		shortBase := spec.ShortTypeName(base)

		switch {
		case !te.IsArray && types.IsPrimitive(base):
			runFields = append(runFields, f.Name)
			runTypes = append(runTypes, base)

		case !te.IsArray && types.IsString(base):
			flushRun()
			steps = append(steps, &stringStep{field: f.Name})

		case !te.IsArray && types.IsSpecial(shortBase):
			flushRun()
			steps = append(steps, &specialStep{field: f.Name, kind: shortBase})

		case te.IsArray && types.IsByteLike(base):
			flushRun()
			steps = append(steps, &byteArrayStep{field: f.Name, fixed: te.Length >= 0, n: te.Length})

		case te.IsArray && types.IsPrimitive(base) && te.Length >= 0:
			// Fixed-length primitive array: N contiguous virtual slots,
			// no length prefix, eligible for run batching with neighbors.
			for i := 0; i < te.Length; i++ {
				runFields = append(runFields, fmt.Sprintf("%s[%d]", f.Name, i))
				runTypes = append(runTypes, base)
			}

		case te.IsArray && types.IsPrimitive(base):
			flushRun()
			p, _ := types.Lookup(base)
			steps = append(steps, &primitiveArrayStep{field: f.Name, elem: base, elemPat: string(p.Code)})

		case te.IsArray:
			flushRun()
			elemType := base
			if !types.IsString(shortBase) && !types.IsSpecial(shortBase) {
				elemType = spec.Resolve(pkg, base)
				if _, err := ctx.Get(elemType); err != nil {
					return nil, err
				}
			}
			steps = append(steps, &complexArrayStep{
				field: f.Name, elemType: elemType, fixed: te.Length >= 0, n: te.Length,
			})

		default:
			return nil, fmt.Errorf("field %q: unresolved type %q", f.Name, f.Type)
		}
	}
	flushRun()
	return steps, nil
}
