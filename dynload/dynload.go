// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dynload loads message types that were never seen by a static
// generation run: it takes a concatenated .msg text dump, generates and
// compiles a throwaway Go plugin for every type it names, and hands back
// each type's reflect.Type. It is the Go analog of genpy's
// generate_dynamic, which does the equivalent with a temporary Python
// module and __import__.
package dynload

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"plugin"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/wireidl/msgc/gen"
	"github.com/wireidl/msgc/idl"
	"github.com/wireidl/msgc/spec"
)

// depSeparator is the line genmsg's own gendeps --cat output uses to split
// a concatenated text dump's constituent .msg texts.
var depSeparator ="\n" + strings.Repeat("=", 80) + "\n"

// ErrDynamicLoad wraps any failure encountered while parsing, generating,
// or compiling a concatenated text dump.
type ErrDynamicLoad struct {
	CoreType string
	Err      error
}

func (e *ErrDynamicLoad) Error() string {
	return fmt.Sprintf("dynamic load of %q failed: %v", e.CoreType, e.Err)
}

func (e *ErrDynamicLoad) Unwrap() error { return e.Err }

// Load parses dump -- coreType's own .msg text, followed by every
// transitively dependent type's text, each preceded by a "MSG: pkg/Type"
// header line and separated by an 80-'=' line, exactly genmsg's gendeps
// --cat format -- generates Go source for every type named in it, compiles
// that source as a plugin, and returns each type's reflect.Type keyed by
// full name. moduleRoot is the filesystem path to this module's own
// checkout, which the generated plugin's go.mod replace directive points
// at so the generated code can import the runtime package.
//
// The well-known roslib/Header alias is rewritten to std_msgs/Header
// before parsing, matching the one hard-coded naming exception genpy
// itself carries forward for the same reason: std_msgs/Header predates
// packages being a mandatory part of a message's identity.
func Load(coreType, dump, moduleRoot string) (map[string]reflect.Type, error) {
	dump = strings.ReplaceAll(dump, "roslib/Header", "std_msgs/Header")

	ctx, order, err := registerDump(coreType, dump)
	if err != nil {
		return nil, &ErrDynamicLoad{CoreType: coreType, Err: err}
	}

	// Rewrite every type's Go identifier so the plugin's generated code
	// cannot collide with a statically generated sibling package's
	// identifiers of the same short name.
	for _, full := range order {
		s, err := ctx.Get(full)
		if err != nil {
			return nil, &ErrDynamicLoad{CoreType: coreType, Err: err}
		}
		s.ShortName = dynShortName(s.Package, s.ShortName)
	}

	tmpDir, err := os.MkdirTemp("", "msgc_dynload_")
	if err != nil {
		return nil, &ErrDynamicLoad{CoreType: coreType, Err: err}
	}
	defer os.RemoveAll(tmpDir)

	types, err := build(ctx, order, tmpDir, moduleRoot)
	if err != nil {
		return nil, &ErrDynamicLoad{CoreType: coreType, Err: err}
	}
	return types, nil
}

// registerDump parses every block of dump into a MsgSpec and registers it
// in a fresh Context, returning the full names in the order they appeared
// (core type first).
func registerDump(coreType, dump string) (*spec.Context, []string, error) {
	blocks := strings.Split(dump, depSeparator)
	if len(blocks) == 0 {
		return nil, nil, fmt.Errorf("empty text dump")
	}

	corePkg, coreShort, err := splitFull(coreType)
	if err != nil {
		return nil, nil, err
	}

	ctx := spec.NewContext()
	s, err := idl.ParseMsg(corePkg, coreShort, coreType, blocks[0])
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Register(s); err != nil {
		return nil, nil, err
	}
	order := []string{coreType}

	for _, block := range blocks[1:] {
		depType, text, err := cutHeader(block)
		if err != nil {
			return nil, nil, err
		}
		pkg, short, err := splitFull(depType)
		if err != nil {
			return nil, nil, err
		}
		ds, err := idl.ParseMsg(pkg, short, depType, text)
		if err != nil {
			return nil, nil, err
		}
		if err := ctx.Register(ds); err != nil {
			return nil, nil, err
		}
		order = append(order, depType)
	}
	return ctx, order, nil
}

// cutHeader splits a dependency block's leading "MSG: pkg/Type" line from
// its .msg text.
func cutHeader(block string) (depType, text string, err error) {
	const prefix = "MSG: "
	nl := strings.IndexByte(block, '\n')
	if nl < 0 || !strings.HasPrefix(block, prefix) {
		return "", "", fmt.Errorf("dependent block missing %q header line", prefix)
	}
	depType = strings.TrimSpace(block[len(prefix):nl])
	if depType == "" {
		return "", "", fmt.Errorf("dependent block has an empty %q header", prefix)
	}
	return depType, block[nl+1:], nil
}

func splitFull(full string) (pkg, short string, err error) {
	i := strings.LastIndexByte(full, '/')
	if i < 0 {
		return "", "", fmt.Errorf("illegal full type name %q: missing package", full)
	}
	return full[:i], full[i+1:], nil
}

// dynShortName renames a package-qualified short name so the generated Go
// identifier cannot collide with a statically generated sibling, the Go
// analog of genpy's "_pkg__base" naming for dynamically generated classes.
func dynShortName(pkg, short string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			return r
		default:
			return '_'
		}
	}, pkg)
	return "Pkg_" + clean + "_" + short
}

// pluginModule is the throwaway Go module name the generated plugin source
// is written under.
const pluginModule = "msgcdynplugin"

// build renders every spec named in order into a standalone Go module
// rooted at tmpDir, compiles it as a plugin, and returns the reflect.Type
// of every type named in order, keyed by full name.
func build(ctx *spec.Context, order []string, tmpDir, moduleRoot string) (map[string]reflect.Type, error) {
	root := filepath.Join(tmpDir, "src")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}

	importer := gen.PackageImporter(func(pkg string) string { return pluginModule + "/" + pkg })

	byPkg := map[string][]*spec.MsgSpec{}
	for _, full := range order {
		s, err := ctx.Get(full)
		if err != nil {
			return nil, err
		}
		byPkg[s.Package] = append(byPkg[s.Package], s)
	}

	var pkgNames []string
	for pkg := range byPkg {
		pkgNames = append(pkgNames, pkg)
	}
	sort.Strings(pkgNames)

	var symbolLines []string
	for _, pkg := range pkgNames {
		pkgDir := filepath.Join(root, pkg)
		if err := os.MkdirAll(pkgDir, 0o755); err != nil {
			return nil, err
		}
		for _, s := range byPkg[pkg] {
			gf, err := gen.EmitMessage(ctx, s, importer)
			if err != nil {
				return nil, err
			}
			src, err := gf.Content()
			if err != nil {
				return nil, err
			}
			file := filepath.Join(pkgDir, strings.ToLower(s.ShortName)+".go")
			if err := os.WriteFile(file, src, 0o644); err != nil {
				return nil, err
			}
			symbolLines = append(symbolLines, fmt.Sprintf(
				"\tTypes[%s] = reflect.TypeOf(%s.%s{})\n",
				strconv.Quote(s.FullName), pkg, exportedPkgType(s.ShortName)))
		}
	}

	if err := writeMain(root, pkgNames, symbolLines); err != nil {
		return nil, err
	}
	if err := writeModFile(root, moduleRoot); err != nil {
		return nil, err
	}

	soPath := filepath.Join(tmpDir, "plugin.so")
	cmd := exec.Command("go", "build", "-buildmode=plugin", "-o", soPath, ".")
	cmd.Dir = root
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("go build: %w: %s", err, out)
	}

	p, err := plugin.Open(soPath)
	if err != nil {
		return nil, err
	}
	sym, err := p.Lookup("Types")
	if err != nil {
		return nil, err
	}
	types, ok := sym.(*map[string]reflect.Type)
	if !ok {
		return nil, fmt.Errorf("unexpected Types symbol type %T", sym)
	}
	return *types, nil
}

// exportedPkgType is the struct name EmitMessage used for s's ShortName
// (already dyn-renamed by the time build runs).
func exportedPkgType(shortName string) string {
	if shortName == "" {
		return shortName
	}
	return strings.ToUpper(shortName[:1]) + shortName[1:]
}

func writeMain(root string, pkgNames []string, symbolLines []string) error {
	var b strings.Builder
	b.WriteString("// Code generated by msgc. DO NOT EDIT.\n\n")
	b.WriteString("package main\n\n")
	b.WriteString("import (\n\t\"reflect\"\n\n")
	for _, pkg := range pkgNames {
		fmt.Fprintf(&b, "\t%q\n", pluginModule+"/"+pkg)
	}
	b.WriteString(")\n\n")
	b.WriteString("var Types = map[string]reflect.Type{}\n\n")
	b.WriteString("func init() {\n")
	for _, line := range symbolLines {
		b.WriteString(line)
	}
	b.WriteString("}\n\n")
	b.WriteString("func main() {}\n")
	return os.WriteFile(filepath.Join(root, "main.go"), []byte(b.String()), 0o644)
}

func writeModFile(root, moduleRoot string) error {
	content := fmt.Sprintf(
		"module %s\n\ngo 1.21\n\nrequire github.com/wireidl/msgc v0.0.0-00010101000000-000000000000\n\nreplace github.com/wireidl/msgc => %s\n",
		pluginModule, moduleRoot)
	return os.WriteFile(filepath.Join(root, "go.mod"), []byte(content), 0o644)
}
