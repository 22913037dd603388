// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gen is the emitter: it lowers a MsgSpec into a sequence of
// (de)serialization steps and renders those steps, plus the enclosing
// struct scaffolding, into Go source.
package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
)

// GeneratedFile accumulates the content of one output file: a package
// name, an ordered, de-duplicated set of imports, and a body built up line
// by line via P. It is the Go analog of protoc-gen-go's
// protogen.GeneratedFile.
type GeneratedFile struct {
	Package string
	body    bytes.Buffer
	imports map[string]string // import path -> local alias ("" if none)
	order   []string          // import paths in first-seen order
}

// NewGeneratedFile returns an empty GeneratedFile for the given package.
func NewGeneratedFile(pkg string) *GeneratedFile {
	return &GeneratedFile{
		Package: pkg,
		imports: make(map[string]string),
	}
}

// P formats its arguments with fmt.Sprint semantics, appends a newline,
// and writes the result to the body. Passing a GoIdent as an argument
// records an import for its package.
func (g *GeneratedFile) P(args ...interface{}) {
	for _, a := range args {
		if id, ok := a.(GoIdent); ok {
			g.Import(id.ImportPath)
			fmt.Fprint(&g.body, id.GoName)
			continue
		}
		fmt.Fprint(&g.body, a)
	}
	g.body.WriteByte('\n')
}

// Import records importPath as required by the file, preserving
// first-seen order and suppressing duplicates. It returns the local name
// the package is referred to by in generated code.
func (g *GeneratedFile) Import(importPath string) string {
	if importPath == "" {
		return ""
	}
	if alias, ok := g.imports[importPath]; ok {
		return alias
	}
	alias := packageNameOf(importPath)
	g.imports[importPath] = alias
	g.order = append(g.order, importPath)
	return alias
}

// QualifiedIdent returns name qualified by the local alias importPath is
// imported under (recording the import as a side effect), or name
// unchanged if importPath is empty (same-package reference).
func (g *GeneratedFile) QualifiedIdent(importPath, name string) string {
	if importPath == "" {
		return name
	}
	return g.Import(importPath) + "." + name
}

// Imports returns the recorded import paths in first-seen order.
func (g *GeneratedFile) Imports() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Content renders the final file: package clause, import block, body,
// passed through gofmt. If gofmt fails (e.g. because the caller is
// inspecting a partially-built file), the unformatted source is returned
// alongside the error so callers can still inspect it.
func (g *GeneratedFile) Content() ([]byte, error) {
	var out bytes.Buffer
	fmt.Fprintf(&out, "// Code generated by msgc. DO NOT EDIT.\n\n")
	fmt.Fprintf(&out, "package %s\n\n", g.Package)
	if len(g.order) > 0 {
		imps := append([]string(nil), g.order...)
		sort.Strings(imps)
		out.WriteString("import (\n")
		for _, p := range imps {
			fmt.Fprintf(&out, "\t%q\n", p)
		}
		out.WriteString(")\n\n")
	}
	out.Write(g.body.Bytes())
	formatted, err := format.Source(out.Bytes())
	if err != nil {
		return out.Bytes(), fmt.Errorf("gofmt: %w", err)
	}
	return formatted, nil
}

// GoIdent is a reference to an identifier in a (possibly external) Go
// package. Passing one to P records the import and emits the qualified
// name if needed.
type GoIdent struct {
	GoName     string
	ImportPath string
}

func packageNameOf(importPath string) string {
	i := len(importPath) - 1
	for ; i >= 0; i-- {
		if importPath[i] == '/' {
			return importPath[i+1:]
		}
	}
	return importPath
}
