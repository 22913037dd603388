// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/wireidl/msgc/sanitize"
	"github.com/wireidl/msgc/spec"
	"github.com/wireidl/msgc/types"
)

// goFieldName is the Go-exported, reserved-word-safe identifier for an IDL
// field or constant name: sanitize.Remap avoids keyword collisions,
// exportedName makes it visible outside the package.
func goFieldName(idlName string) string {
	return exportedName(sanitize.Remap(idlName))
}

// goPrimitiveName maps an IDL primitive name to its Go builtin type name.
// IDL "byte" and "char" are deprecated aliases whose Go builtin namesakes
// do NOT match: IDL byte is a signed 8-bit value (code 'b', same as
// int8), while Go's builtin "byte" is unsigned (an alias for uint8). They
// are mapped explicitly to avoid that trap.
func goPrimitiveName(idlName string) string {
	switch idlName {
	case "char":
		return "uint8"
	case "byte":
		return "int8"
	default:
		return idlName // int8, uint8, int16, uint16, int32, uint32, int64, uint64, float32, float64, bool
	}
}

// exportedName capitalizes the first rune of name so it is Go-exported.
// IDL short names are conventionally already capitalized; this is a
// defensive normalization.
func exportedName(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// goFieldType computes the Go type of a field given its IDL type
// expression, recording any import the type requires on g.
func goFieldType(ctx *spec.Context, importer PackageImporter, g *GeneratedFile, pkg, typeExprText string) (string, error) {
	te, err := spec.ParseTypeExpr(typeExprText)
	if err != nil {
		return "", err
	}
	base := te.Base
	short := spec.ShortTypeName(base)

	var elem string
	switch {
	case types.IsPrimitive(base):
		elem = goPrimitiveName(base)
	case types.IsString(base):
		elem = "string"
	case types.IsSpecial(short):
		elem = g.QualifiedIdent(runtimeImportPath, exportedName(short))
	default:
		full := spec.Resolve(pkg, base)
		embedded, err := ctx.Get(full)
		if err != nil {
			return "", err
		}
		name := exportedName(embedded.ShortName)
		if embedded.Package == pkg {
			elem = "*" + name
		} else {
			elem = "*" + g.QualifiedIdent(importer(embedded.Package), name)
		}
	}

	if !te.IsArray {
		return elem, nil
	}
	if types.IsByteLike(base) {
		return "[]byte", nil
	}
	if te.Length >= 0 {
		return fmt.Sprintf("[%d]%s", te.Length, elem), nil
	}
	return "[]" + elem, nil
}

// goConstValue renders a Constant's parsed value as a Go literal.
func goConstValue(c spec.Constant) (string, error) {
	switch v := c.Value.(type) {
	case string:
		return quoteStringConstant(v), nil
	case bool:
		if v {
			return "true", nil
		}
		return "false", nil
	case int64:
		return fmt.Sprintf("%d", v), nil
	case float64:
		return fmt.Sprintf("%g", v), nil
	default:
		return "", fmt.Errorf("constant %s: unsupported literal value %T", c.Name, c.Value)
	}
}

// goDefaultValue renders the zero-value expression for a field's IDL type,
// per the default-value table in spec.md §4.1 / §8.
func goDefaultValue(ctx *spec.Context, importer PackageImporter, g *GeneratedFile, pkg string, f spec.Field) (string, error) {
	te, err := spec.ParseTypeExpr(f.Type)
	if err != nil {
		return "", err
	}
	base := te.Base
	short := spec.ShortTypeName(base)

	if te.IsArray && types.IsByteLike(base) {
		if te.Length >= 0 {
			return fmt.Sprintf("make([]byte, %d)", te.Length), nil
		}
		return "nil", nil
	}
	if te.IsArray {
		goType, err := goFieldType(ctx, importer, g, pkg, f.Type)
		if err != nil {
			return "", err
		}
		if te.Length >= 0 {
			return goType + "{}", nil // Go array zero value
		}
		return "nil", nil
	}
	switch {
	case types.IsPrimitive(base):
		p, _ := types.Lookup(base)
		return p.Default, nil
	case types.IsString(base):
		return `""`, nil
	case types.IsSpecial(short):
		goType, err := goFieldType(ctx, importer, g, pkg, f.Type)
		if err != nil {
			return "", err
		}
		return goType + "{}", nil
	default:
		full := spec.Resolve(pkg, base)
		embedded, err := ctx.Get(full)
		if err != nil {
			return "", err
		}
		name := exportedName(embedded.ShortName)
		ctor := "New" + name
		if embedded.Package != pkg {
			ctor = g.QualifiedIdent(importer(embedded.Package), ctor)
		}
		return ctor + "()", nil
	}
}

// goSelector rewrites a dotted flattened field path ("inner.x") into a Go
// selector expression ("Inner.X"), capitalizing each path segment.
func goSelector(dotted string) string {
	parts := strings.Split(dotted, ".")
	for i, p := range parts {
		// array index suffix, e.g. "v[2]", must not be capitalized past '['
		if j := strings.IndexByte(p, '['); j >= 0 {
			parts[i] = exportedName(p[:j]) + p[j:]
		} else {
			parts[i] = exportedName(p)
		}
	}
	return strings.Join(parts, ".")
}
