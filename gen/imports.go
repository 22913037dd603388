// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"github.com/wireidl/msgc/spec"
	"github.com/wireidl/msgc/types"
)

const runtimeImportPath = "github.com/wireidl/msgc/runtime"

// PackageImporter maps an IDL package name to the Go import path of its
// generated output, e.g. "std_msgs" -> "github.com/acme/msgs/std_msgs".
// Supplied by the driver (CLI or dynload), since THE CORE has no opinion
// on where generated packages live on GOPATH/module layout.
type PackageImporter func(pkg string) string

// resolveImports computes the closure of Go import paths required by
// every field of s (spec.md §4.7): no import for primitives/strings; the
// runtime package for Time/Duration/Header; the imported package plus,
// recursively, every import required by the referenced type's own fields,
// for user-defined types. First-seen order is preserved; duplicates are
// suppressed by GeneratedFile.Import itself.
func resolveImports(ctx *spec.Context, importer PackageImporter, pkg string, s *spec.MsgSpec, g *GeneratedFile, visited map[string]bool) error {
	for _, f := range s.Fields {
		te, err := spec.ParseTypeExpr(f.Type)
		if err != nil {
			return err
		}
		base := te.Base
		short := spec.ShortTypeName(base)
		switch {
		case types.IsPrimitive(base) || types.IsString(base):
			// no import
		case types.IsSpecial(short):
			g.Import(runtimeImportPath)
		default:
			full := spec.Resolve(pkg, base)
			if visited[full] {
				continue
			}
			visited[full] = true
			embedded, err := ctx.Get(full)
			if err != nil {
				return err
			}
			g.Import(importer(embedded.Package))
			if err := resolveImports(ctx, importer, embedded.Package, embedded, g, visited); err != nil {
				return err
			}
		}
	}
	return nil
}
