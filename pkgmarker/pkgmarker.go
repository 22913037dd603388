// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pkgmarker emits the per-package marker file the CLI driver writes
// once per output package when --initpy is set: a single exported slice
// naming every message/service type generated into that package, the Go
// analog of genpy's generate_initpy.py (which instead rewrites the Python
// package's __init__.py import list).
package pkgmarker

import (
	"sort"

	"github.com/wireidl/msgc/gen"
)

// FileName is the marker file's fixed basename within an output directory.
const FileName = "pkg_types.go"

// Emit renders the marker file's Go source for a package whose Go package
// name is pkgGoName and whose generated short type names are typeNames.
func Emit(pkgGoName string, typeNames []string) ([]byte, error) {
	g := gen.NewGeneratedFile(pkgGoName)
	sorted := append([]string(nil), typeNames...)
	sort.Strings(sorted)

	g.P("// GeneratedTypes lists every message and service short type name")
	g.P("// msgc generated into this package.")
	g.P("var GeneratedTypes = []string{")
	for _, t := range sorted {
		g.P("\"", t, "\",")
	}
	g.P("}")

	return g.Content()
}
