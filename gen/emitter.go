// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wireidl/msgc/fingerprint"
	"github.com/wireidl/msgc/flatten"
	"github.com/wireidl/msgc/spec"
	"github.com/wireidl/msgc/types"
)

// ErrGeneration is the catch-all error for generator-internal failures:
// an invalid array spec, an illegal package name, an illegal reference in
// a dynamic text dump, or similar. It wraps the underlying cause.
type ErrGeneration struct {
	Type string
	Err  error
}

func (e *ErrGeneration) Error() string {
	return fmt.Sprintf("failed to generate %q: %v", e.Type, e.Err)
}

func (e *ErrGeneration) Unwrap() error { return e.Err }

// EmitMessage lowers s into a serializer plan and renders the complete Go
// source for its type: struct declaration, constants, constructors,
// Marshal/Unmarshal, MarshalPacked/UnmarshalPacked, and the type's
// pattern table. importer resolves another IDL package name to the Go
// import path its generated output lives under.
func EmitMessage(ctx *spec.Context, s *spec.MsgSpec, importer PackageImporter) (*GeneratedFile, error) {
	fp, err := fingerprint.Compute(ctx, s)
	if err != nil {
		return nil, &ErrGeneration{Type: s.FullName, Err: err}
	}
	text, err := fullText(ctx, s)
	if err != nil {
		return nil, &ErrGeneration{Type: s.FullName, Err: err}
	}
	flat, err := flatten.Flatten(ctx, s)
	if err != nil {
		return nil, &ErrGeneration{Type: s.FullName, Err: err}
	}
	plan, err := lower(ctx, s.Package, flat.Fields)
	if err != nil {
		return nil, &ErrGeneration{Type: s.FullName, Err: err}
	}

	g := NewGeneratedFile(s.Package)
	visited := map[string]bool{}
	if err := resolveImports(ctx, importer, s.Package, s, g, visited); err != nil {
		return nil, &ErrGeneration{Type: s.FullName, Err: err}
	}

	name := exportedName(s.ShortName)
	hasHeader := len(s.Fields) > 0 && spec.ShortTypeName(spec.BareMsgType(s.Fields[0].Type)) == types.Header

	e := &emitter{ctx: ctx, g: g, importer: importer, pkg: s.Package, name: name, fullName: s.FullName}

	if err := e.emitStruct(s); err != nil {
		return nil, &ErrGeneration{Type: s.FullName, Err: err}
	}
	e.emitConstants(s)
	if err := e.emitDescriptor(s, fp, text, hasHeader); err != nil {
		return nil, &ErrGeneration{Type: s.FullName, Err: err}
	}
	if err := e.emitConstructors(s); err != nil {
		return nil, &ErrGeneration{Type: s.FullName, Err: err}
	}
	if err := e.emitMarshal(plan); err != nil {
		return nil, &ErrGeneration{Type: s.FullName, Err: err}
	}
	if err := e.emitUnmarshal(plan); err != nil {
		return nil, &ErrGeneration{Type: s.FullName, Err: err}
	}
	if err := e.emitPacked(plan); err != nil {
		return nil, &ErrGeneration{Type: s.FullName, Err: err}
	}
	e.emitPatternTable(plan)

	return g, nil
}

// emitter holds the per-call state threaded through one EmitMessage
// invocation: never package-level, per spec.md §5/§9.
type emitter struct {
	ctx      *spec.Context
	g        *GeneratedFile
	importer PackageImporter
	pkg      string
	name     string
	fullName string
}

func (e *emitter) emitStruct(s *spec.MsgSpec) error {
	g := e.g
	g.P("type ", e.name, " struct {")
	for _, f := range s.Fields {
		goType, err := goFieldType(e.ctx, e.importer, g, e.pkg, f.Type)
		if err != nil {
			return err
		}
		g.P(goFieldName(f.Name), " ", goType)
	}
	g.P("}")
	g.P()
	return nil
}

func (e *emitter) emitConstants(s *spec.MsgSpec) {
	if len(s.Constants) == 0 {
		return
	}
	g := e.g
	g.P("const (")
	for _, c := range s.Constants {
		val, err := goConstValue(c)
		if err != nil {
			val = c.RawText
		}
		g.P(e.name, "_", goFieldName(c.Name), " = ", val)
	}
	g.P(")")
	g.P()
}

func (e *emitter) emitDescriptor(s *spec.MsgSpec, md5sum, text string, hasHeader bool) error {
	g := e.g
	fieldNames := make([]string, len(s.Fields))
	fieldTypes := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		fieldNames[i] = f.Name
		fieldTypes[i] = f.Type
	}
	g.P("func (m *", e.name, ") Descriptor() ", g.QualifiedIdent(runtimeImportPath, "TypeDescriptor"), " {")
	g.P("return ", g.QualifiedIdent(runtimeImportPath, "TypeDescriptor"), "{")
	g.P("MD5Sum: ", quoteStringConstant(md5sum), ",")
	g.P("Type: ", quoteStringConstant(s.FullName), ",")
	g.P("HasHeader: ", hasHeader, ",")
	g.P("FullText: ", quoteFullText(text), ",")
	g.P("FieldNames: []string{", quoteList(fieldNames), "},")
	g.P("FieldTypes: []string{", quoteList(fieldTypes), "},")
	g.P("}")
	g.P("}")
	g.P()
	g.P("func (m *", e.name, ") Reset() { *m = ", e.name, "{} }")
	g.P()
	return nil
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = quoteStringConstant(s)
	}
	return strings.Join(quoted, ", ")
}

func (e *emitter) emitConstructors(s *spec.MsgSpec) error {
	g := e.g
	g.P("// New", e.name, " returns a ", e.name, " with every field set to its default value.")
	g.P("func New", e.name, "() *", e.name, " {")
	g.P("m := &", e.name, "{}")
	for _, f := range s.Fields {
		def, err := goDefaultValue(e.ctx, e.importer, g, e.pkg, f)
		if err != nil {
			return err
		}
		g.P("m.", goFieldName(f.Name), " = ", def)
	}
	g.P("return m")
	g.P("}")
	g.P()

	if len(s.Fields) == 0 {
		return nil
	}
	g.P("// New", e.name, "Fields returns a ", e.name, " with every field set from the given")
	g.P("// positional arguments, in declaration order.")
	g.P("func New", e.name, "Fields(")
	for _, f := range s.Fields {
		goType, err := goFieldType(e.ctx, e.importer, g, e.pkg, f.Type)
		if err != nil {
			return err
		}
		g.P(goFieldName(f.Name), " ", goType, ",")
	}
	g.P(") *", e.name, " {")
	g.P("return &", e.name, "{")
	for _, f := range s.Fields {
		g.P(goFieldName(f.Name), ": ", goFieldName(f.Name), ",")
	}
	g.P("}")
	g.P("}")
	g.P()
	return nil
}

func (e *emitter) emitPatternTable(plan []step) {
	g := e.g
	var patterns []string
	seen := map[string]bool{}
	for _, st := range plan {
		if ps, ok := st.(*packStep); ok && !seen[ps.pattern] {
			seen[ps.pattern] = true
			patterns = append(patterns, ps.pattern)
		}
	}
	sort.Strings(patterns)
	g.P("// ", e.name, "WirePatterns lists the distinct little-endian pack patterns")
	g.P("// this type's Marshal/Unmarshal methods use, for introspection.")
	g.P("var ", e.name, "WirePatterns = []string{")
	for _, p := range patterns {
		g.P(quoteStringConstant(p), ", // ", fmt.Sprint(totalWidth(p)), " bytes")
	}
	g.P("}")
	g.P()
}

func totalWidth(pattern string) int {
	total := 0
	count := 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c >= '0' && c <= '9' {
			count = count*10 + int(c-'0')
			continue
		}
		w, ok := types.CodeWidth(c)
		if !ok {
			count = 0
			continue
		}
		if count == 0 {
			count = 1
		}
		total += w * count
		count = 0
	}
	return total
}
