// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"fmt"

	"github.com/wireidl/msgc/spec"
	"github.com/wireidl/msgc/types"
)

// embeddedRef resolves the Go constructor name and pointer type name for a
// user-defined message type, qualifying it with the generating package's
// import alias when the type lives in another IDL package.
func (e *emitter) embeddedRef(fullName string) (ctor, typeName string, err error) {
	embedded, err := e.ctx.Get(fullName)
	if err != nil {
		return "", "", err
	}
	goName := exportedName(embedded.ShortName)
	if embedded.Package == e.pkg {
		return "New" + goName, goName, nil
	}
	alias := e.g.Import(e.importer(embedded.Package))
	return alias + ".New" + goName, alias + "." + goName, nil
}

// emitMarshal renders the `Marshal(buf []byte) ([]byte, error)` method:
// walk the lowered plan, accumulating pattern runs into one contiguous
// scratch-buffer append per run, interspersed with complex-type steps.
func (e *emitter) emitMarshal(plan []step) error {
	g := e.g
	g.P("func (m *", e.name, ") Marshal(buf []byte) ([]byte, error) {")
	g.P("var err error")
	g.P("_ = err")
	stk := newPrefixStack("m")
	for _, st := range plan {
		if err := e.marshalStep(stk, st, false); err != nil {
			return err
		}
	}
	g.P("return buf, nil")
	g.P("}")
	g.P()
	return nil
}

// emitUnmarshal renders the `Unmarshal(buf []byte) (int, error)` method.
// Before walking the plan, every embedded-message pointer field (at every
// nesting depth of the ORIGINAL, non-flattened spec) is lazily
// initialized, since flattened dotted paths assume all intermediate
// embedded objects already exist.
func (e *emitter) emitUnmarshal(plan []step) error {
	g := e.g
	g.P("func (m *", e.name, ") Unmarshal(buf []byte) (int, error) {")
	g.P("off := 0")
	g.P("_ = off")
	root, err := e.ctx.Get(e.fullName)
	if err != nil {
		return err
	}
	if err := e.emitLazyInit(root, "m.", map[string]bool{}); err != nil {
		return err
	}
	stk := newPrefixStack("m")
	for _, st := range plan {
		if err := e.unmarshalStep(stk, st, false); err != nil {
			return err
		}
	}
	g.P("return off, nil")
	g.P("}")
	g.P()
	return nil
}

// emitPacked renders MarshalPacked/UnmarshalPacked: identical to
// Marshal/Unmarshal except that primitive-array fields go through a
// contiguous preallocated byte slice filled in a single pass instead of
// one small append per element. Both paths use the same per-element
// little-endian encoding, so their wire bytes are identical for the same
// input.
func (e *emitter) emitPacked(plan []step) error {
	g := e.g

	g.P("func (m *", e.name, ") MarshalPacked(buf []byte) ([]byte, error) {")
	g.P("var err error")
	g.P("_ = err")
	stk := newPrefixStack("m")
	for _, st := range plan {
		if err := e.marshalStep(stk, st, true); err != nil {
			return err
		}
	}
	g.P("return buf, nil")
	g.P("}")
	g.P()

	g.P("func (m *", e.name, ") UnmarshalPacked(buf []byte) (int, error) {")
	g.P("off := 0")
	g.P("_ = off")
	root, err := e.ctx.Get(e.fullName)
	if err != nil {
		return err
	}
	if err := e.emitLazyInit(root, "m.", map[string]bool{}); err != nil {
		return err
	}
	stk2 := newPrefixStack("m")
	for _, st := range plan {
		if err := e.unmarshalStep(stk2, st, true); err != nil {
			return err
		}
	}
	g.P("return off, nil")
	g.P("}")
	g.P()
	return nil
}

func (e *emitter) marshalStep(stk *prefixStack, st step, bulk bool) error {
	g := e.g
	switch s := st.(type) {
	case *packStep:
		width := 0
		for _, t := range s.types {
			p, _ := types.Lookup(t)
			width += p.Width
		}
		g.P("{")
		g.P("var scratch [", width, "]byte")
		off := 0
		for i, name := range s.fields {
			sel := stk.field(goSelector(name))
			typ := s.types[i]
			p, _ := types.Lookup(typ)
			packScalar(g, sel, typ, fmt.Sprintf("scratch[%d:]", off), p.Width)
			off += p.Width
		}
		g.P("buf = append(buf, scratch[:]...)")
		g.P("}")

	case *stringStep:
		sel := stk.field(goSelector(s.field))
		g.P("buf = ", g.QualifiedIdent(runtimeImportPath, "AppendLenPrefixed"), "(buf, []byte(", sel, "))")

	case *byteArrayStep:
		sel := stk.field(goSelector(s.field))
		if s.fixed {
			g.Import("fmt")
			g.P("if len(", sel, ") != ", s.n, " {")
			g.P("return nil, &", g.QualifiedIdent(runtimeImportPath, "SerializationError"), "{Type: ", quoteStringConstant(e.name), ", Err: fmt.Errorf(\"field ", s.field, " must be exactly ", s.n, " bytes, got %d\", len(", sel, "))}")
			g.P("}")
			g.P("buf = append(buf, ", sel, "...)")
		} else {
			g.P("buf = ", g.QualifiedIdent(runtimeImportPath, "AppendLenPrefixed"), "(buf, ", sel, ")")
		}

	case *primitiveArrayStep:
		sel := stk.field(goSelector(s.field))
		p, _ := types.Lookup(s.elem)
		g.Import("encoding/binary")
		g.P("{")
		g.P("var scratch [4]byte")
		g.P("binary.LittleEndian.PutUint32(scratch[:], uint32(len(", sel, ")))")
		g.P("buf = append(buf, scratch[:]...)")
		if bulk {
			g.P("packed := make([]byte, len(", sel, ")*", p.Width, ")")
			g.P("for i, elem := range ", sel, " {")
			packScalar(g, "elem", s.elem, fmt.Sprintf("packed[i*%d:]", p.Width), p.Width)
			g.P("}")
			g.P("buf = append(buf, packed...)")
		} else {
			g.P("for _, elem := range ", sel, " {")
			g.P("var es [", p.Width, "]byte")
			packScalar(g, "elem", s.elem, "es[:]", p.Width)
			g.P("buf = append(buf, es[:]...)")
			g.P("}")
		}
		g.P("}")

	case *complexArrayStep:
		sel := stk.field(goSelector(s.field))
		if !s.fixed {
			g.Import("encoding/binary")
			g.P("{")
			g.P("var scratch [4]byte")
			g.P("binary.LittleEndian.PutUint32(scratch[:], uint32(len(", sel, ")))")
			g.P("buf = append(buf, scratch[:]...)")
			g.P("}")
		}
		g.P("for _, elem := range ", sel, " {")
		switch {
		case types.IsString(s.elemType):
			g.P("buf = ", g.QualifiedIdent(runtimeImportPath, "AppendLenPrefixed"), "(buf, []byte(elem))")
		case types.IsSpecial(s.elemType):
			g.P("buf = elem.Marshal(buf)")
		default:
			g.P("buf, err = elem.Marshal(buf)")
			g.P("if err != nil { return nil, err }")
		}
		g.P("}")

	case *specialStep:
		sel := stk.field(goSelector(s.field))
		g.P("buf = ", sel, ".Marshal(buf)")

	default:
		return fmt.Errorf("unhandled step type %T", st)
	}
	return nil
}

// packScalar emits the statement(s) that write a single scalar value of
// IDL type typeName, read from the Go expression sel, into dst[:width].
func packScalar(g *GeneratedFile, sel, typeName, dst string, width int) {
	switch {
	case typeName == "bool":
		g.P("if ", sel, " { ", dst, "[0] = 1 } else { ", dst, "[0] = 0 }")
	case typeName == "float32":
		g.Import("math")
		g.Import("encoding/binary")
		g.P("binary.LittleEndian.PutUint32(", dst, ", math.Float32bits(", sel, "))")
	case typeName == "float64":
		g.Import("math")
		g.Import("encoding/binary")
		g.P("binary.LittleEndian.PutUint64(", dst, ", math.Float64bits(", sel, "))")
	default:
		switch width {
		case 1:
			g.P(dst, "[0] = byte(", sel, ")")
		case 2:
			g.Import("encoding/binary")
			g.P("binary.LittleEndian.PutUint16(", dst, ", uint16(", sel, "))")
		case 4:
			g.Import("encoding/binary")
			g.P("binary.LittleEndian.PutUint32(", dst, ", uint32(", sel, "))")
		case 8:
			g.Import("encoding/binary")
			g.P("binary.LittleEndian.PutUint64(", dst, ", uint64(", sel, "))")
		}
	}
}

// unpackScalar emits the statement that reads a single scalar value of
// IDL type typeName from src[:width] into the Go lvalue expression dst.
func unpackScalar(g *GeneratedFile, dst, typeName, src, goType string, width int) {
	switch {
	case typeName == "bool":
		g.P(dst, " = ", src, "[0] != 0")
	case typeName == "float32":
		g.Import("math")
		g.Import("encoding/binary")
		g.P(dst, " = math.Float32frombits(binary.LittleEndian.Uint32(", src, "))")
	case typeName == "float64":
		g.Import("math")
		g.Import("encoding/binary")
		g.P(dst, " = math.Float64frombits(binary.LittleEndian.Uint64(", src, "))")
	default:
		switch width {
		case 1:
			g.P(dst, " = ", goType, "(", src, "[0])")
		case 2:
			g.Import("encoding/binary")
			g.P(dst, " = ", goType, "(binary.LittleEndian.Uint16(", src, "))")
		case 4:
			g.Import("encoding/binary")
			g.P(dst, " = ", goType, "(binary.LittleEndian.Uint32(", src, "))")
		case 8:
			g.Import("encoding/binary")
			g.P(dst, " = ", goType, "(binary.LittleEndian.Uint64(", src, "))")
		}
	}
}

// emitLazyInit recursively walks s's own (non-flattened) field list and
// emits a nil-check/allocate statement for every embedded message field,
// then descends into that field's own type to do the same, so every
// intermediate struct pointer a flattened dotted path might traverse is
// guaranteed non-nil before the Unmarshal step loop runs.
func (e *emitter) emitLazyInit(s *spec.MsgSpec, prefix string, visiting map[string]bool) error {
	if visiting[s.FullName] {
		return nil // the loader is assumed to reject cycles; defensively stop here
	}
	visiting[s.FullName] = true
	defer delete(visiting, s.FullName)

	g := e.g
	for _, f := range s.Fields {
		te, err := spec.ParseTypeExpr(f.Type)
		if err != nil {
			return err
		}
		base := te.Base
		short := spec.ShortTypeName(base)
		if te.IsArray || types.IsPrimitive(base) || types.IsString(base) || types.IsSpecial(short) {
			continue
		}
		full := spec.Resolve(s.Package, base)
		embedded, err := e.ctx.Get(full)
		if err != nil {
			return err
		}
		ctor, _, err := e.embeddedRef(full)
		if err != nil {
			return err
		}
		sel := prefix + goFieldName(f.Name)
		g.P("if ", sel, " == nil { ", sel, " = ", ctor, "() }")
		if err := e.emitLazyInit(embedded, sel+".", visiting); err != nil {
			return err
		}
	}
	return nil
}

func (e *emitter) unmarshalStep(stk *prefixStack, st step, bulk bool) error {
	g := e.g
	switch s := st.(type) {
	case *packStep:
		width := 0
		for _, t := range s.types {
			p, _ := types.Lookup(t)
			width += p.Width
		}
		g.Import("fmt")
		g.P("if len(buf)-off < ", width, " {")
		g.P("return 0, &", g.QualifiedIdent(runtimeImportPath, "DeserializationError"), "{Type: ", quoteStringConstant(e.name), ", Err: fmt.Errorf(\"short read, need %d bytes have %d\", ", width, ", len(buf)-off)}")
		g.P("}")
		rel := 0
		for i, name := range s.fields {
			sel := stk.field(goSelector(name))
			typ := s.types[i]
			p, _ := types.Lookup(typ)
			goType := goPrimitiveName(typ)
			unpackScalar(g, sel, typ, fmt.Sprintf("buf[off+%d:]", rel), goType, p.Width)
			rel += p.Width
		}
		g.P("off += ", width)

	case *stringStep:
		sel := stk.field(goSelector(s.field))
		g.P("{")
		g.P("n, v, err := ", g.QualifiedIdent(runtimeImportPath, "ReadLenPrefixed"), "(buf, off)")
		g.P("if err != nil { return 0, &", g.QualifiedIdent(runtimeImportPath, "DeserializationError"), "{Type: ", quoteStringConstant(e.name), ", Err: err} }")
		g.P(sel, " = string(v)")
		g.P("off = n")
		g.P("}")

	case *byteArrayStep:
		sel := stk.field(goSelector(s.field))
		if s.fixed {
			g.Import("fmt")
			g.P("if len(buf)-off < ", s.n, " {")
			g.P("return 0, &", g.QualifiedIdent(runtimeImportPath, "DeserializationError"), "{Type: ", quoteStringConstant(e.name), ", Err: fmt.Errorf(\"short read for fixed byte array\")}")
			g.P("}")
			g.P(sel, " = append([]byte(nil), buf[off:off+", s.n, "]...)")
			g.P("off += ", s.n)
		} else {
			g.P("{")
			g.P("n, v, err := ", g.QualifiedIdent(runtimeImportPath, "ReadLenPrefixed"), "(buf, off)")
			g.P("if err != nil { return 0, &", g.QualifiedIdent(runtimeImportPath, "DeserializationError"), "{Type: ", quoteStringConstant(e.name), ", Err: err} }")
			g.P(sel, " = v")
			g.P("off = n")
			g.P("}")
		}

	case *primitiveArrayStep:
		sel := stk.field(goSelector(s.field))
		p, _ := types.Lookup(s.elem)
		goType := goPrimitiveName(s.elem)
		g.Import("fmt")
		g.Import("encoding/binary")
		g.P("{")
		g.P("if len(buf)-off < 4 {")
		g.P("return 0, &", g.QualifiedIdent(runtimeImportPath, "DeserializationError"), "{Type: ", quoteStringConstant(e.name), ", Err: fmt.Errorf(\"short read for array length\")}")
		g.P("}")
		g.P("n := int(binary.LittleEndian.Uint32(buf[off:]))")
		g.P("off += 4")
		g.P("if len(buf)-off < n*", p.Width, " {")
		g.P("return 0, &", g.QualifiedIdent(runtimeImportPath, "DeserializationError"), "{Type: ", quoteStringConstant(e.name), ", Err: fmt.Errorf(\"short read for array body\")}")
		g.P("}")
		g.P(sel, " = make([]", goType, ", n)")
		if bulk {
			g.P("body := buf[off : off+n*", p.Width, "]")
			g.P("for i := range ", sel, " {")
			unpackScalar(g, sel+"[i]", s.elem, fmt.Sprintf("body[i*%d:]", p.Width), goType, p.Width)
			g.P("}")
			g.P("off += n * ", p.Width)
		} else {
			g.P("for i := 0; i < n; i++ {")
			unpackScalar(g, sel+"[i]", s.elem, "buf[off:]", goType, p.Width)
			g.P("off += ", p.Width)
			g.P("}")
		}
		g.P("}")

	case *complexArrayStep:
		sel := stk.field(goSelector(s.field))
		if !s.fixed {
			g.Import("fmt")
			g.Import("encoding/binary")
			g.P("if len(buf)-off < 4 {")
			g.P("return 0, &", g.QualifiedIdent(runtimeImportPath, "DeserializationError"), "{Type: ", quoteStringConstant(e.name), ", Err: fmt.Errorf(\"short read for array length\")}")
			g.P("}")
			g.P("n := int(binary.LittleEndian.Uint32(buf[off:]))")
			g.P("off += 4")
		} else {
			g.P("n := ", s.n)
		}
		switch {
		case types.IsString(s.elemType):
			g.P(sel, " = make([]string, n)")
			g.P("for i := 0; i < n; i++ {")
			g.P("nn, v, err := ", g.QualifiedIdent(runtimeImportPath, "ReadLenPrefixed"), "(buf, off)")
			g.P("if err != nil { return 0, &", g.QualifiedIdent(runtimeImportPath, "DeserializationError"), "{Type: ", quoteStringConstant(e.name), ", Err: err} }")
			g.P(sel, "[i] = string(v)")
			g.P("off = nn")
			g.P("}")

		case types.IsSpecial(s.elemType):
			specialType := g.QualifiedIdent(runtimeImportPath, exportedName(s.elemType))
			g.P(sel, " = make([]", specialType, ", n)")
			g.P("for i := 0; i < n; i++ {")
			g.P("consumed, err := ", sel, "[i].Unmarshal(buf[off:])")
			g.P("if err != nil { return 0, &", g.QualifiedIdent(runtimeImportPath, "DeserializationError"), "{Type: ", quoteStringConstant(e.name), ", Err: err} }")
			g.P("off += consumed")
			g.P("}")

		default:
			ctor, typeName, err := e.embeddedRef(s.elemType)
			if err != nil {
				return err
			}
			g.P(sel, " = make([]*", typeName, ", n)")
			g.P("for i := 0; i < n; i++ {")
			g.P("elem := ", ctor, "()")
			g.P("consumed, err := elem.Unmarshal(buf[off:])")
			g.P("if err != nil { return 0, err }")
			g.P("off += consumed")
			g.P(sel, "[i] = elem")
			g.P("}")
		}

	case *specialStep:
		sel := stk.field(goSelector(s.field))
		g.P("{")
		g.P("consumed, err := ", sel, ".Unmarshal(buf[off:])")
		g.P("if err != nil { return 0, &", g.QualifiedIdent(runtimeImportPath, "DeserializationError"), "{Type: ", quoteStringConstant(e.name), ", Err: err} }")
		g.P("off += consumed")
		g.P("}")

	default:
		return fmt.Errorf("unhandled step type %T", st)
	}
	return nil
}
