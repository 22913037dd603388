// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wireidl/msgc/spec"
	"github.com/wireidl/msgc/types"
)

// SearchPath maps an IDL package name to the directory its .msg/.srv files
// live in, built up from repeated `-I NS:PATH` CLI flags.
type SearchPath struct {
	dirs map[string]string
}

// NewSearchPath returns an empty SearchPath.
func NewSearchPath() *SearchPath {
	return &SearchPath{dirs: make(map[string]string)}
}

// Add registers dir as the source directory for IDL package ns.
func (sp *SearchPath) Add(ns, dir string) {
	sp.dirs[ns] = dir
}

// Dir returns the registered directory for ns, or "" if none was added.
func (sp *SearchPath) Dir(ns string) string {
	return sp.dirs[ns]
}

// ParseSearchPathArg splits a `-I NS:PATH` flag value.
func ParseSearchPathArg(arg string) (ns, dir string, err error) {
	ns, dir, ok := strings.Cut(arg, ":")
	if !ok || ns == "" || dir == "" {
		return "", "", fmt.Errorf("illegal -I value %q: expected NS:PATH", arg)
	}
	return ns, dir, nil
}

// Loader resolves package-qualified type names against a SearchPath,
// parsing and registering each type (and, transitively, every embedded
// message type it references) into a Context exactly once.
type Loader struct {
	ctx *spec.Context
	sp  *SearchPath
}

// NewLoader returns a Loader that registers types into ctx as they are
// resolved from sp.
func NewLoader(ctx *spec.Context, sp *SearchPath) *Loader {
	return &Loader{ctx: ctx, sp: sp}
}

// LoadMsg loads pkg/shortName and every type it transitively depends on. A
// type already registered in the Context is returned as-is without
// re-reading its file.
func (l *Loader) LoadMsg(pkg, shortName string) (*spec.MsgSpec, error) {
	full := pkg + "/" + shortName
	if l.ctx.IsRegistered(full) {
		return l.ctx.Get(full)
	}
	dir := l.sp.Dir(pkg)
	if dir == "" {
		return nil, fmt.Errorf("no search path entry for package %q (referenced as %q)", pkg, full)
	}
	path := filepath.Join(dir, shortName+".msg")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", full, err)
	}
	s, err := ParseMsg(pkg, shortName, path, string(data))
	if err != nil {
		return nil, err
	}
	if err := l.ctx.Register(s); err != nil {
		return nil, err
	}
	if err := l.resolveFields(pkg, s.Fields); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadSrv loads pkg/shortName.srv, registering its request and response
// halves and every type they transitively depend on.
func (l *Loader) LoadSrv(pkg, shortName string) (*spec.SrvSpec, error) {
	dir := l.sp.Dir(pkg)
	if dir == "" {
		return nil, fmt.Errorf("no search path entry for package %q", pkg)
	}
	path := filepath.Join(dir, shortName+".srv")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %q/%q: %w", pkg, shortName, err)
	}
	s, err := ParseSrv(pkg, shortName, path, string(data))
	if err != nil {
		return nil, err
	}
	if err := l.ctx.Register(s.Request); err != nil {
		return nil, err
	}
	if err := l.ctx.Register(s.Response); err != nil {
		return nil, err
	}
	if err := l.resolveFields(pkg, s.Request.Fields); err != nil {
		return nil, err
	}
	if err := l.resolveFields(pkg, s.Response.Fields); err != nil {
		return nil, err
	}
	return s, nil
}

func (l *Loader) resolveFields(pkg string, fields []spec.Field) error {
	for _, f := range fields {
		te, err := spec.ParseTypeExpr(f.Type)
		if err != nil {
			return err
		}
		base := te.Base
		short := spec.ShortTypeName(base)
		if types.IsPrimitive(base) || types.IsString(base) || types.IsSpecial(short) {
			continue
		}
		depPkg, depName := splitFull(spec.Resolve(pkg, base))
		if _, err := l.LoadMsg(depPkg, depName); err != nil {
			return err
		}
	}
	return nil
}

func splitFull(full string) (pkg, name string) {
	i := strings.LastIndexByte(full, '/')
	return full[:i], full[i+1:]
}

// EnsureDir creates path (and any missing parents) if it does not already
// exist, tolerating a concurrent creation by another process racing the
// same path: os.MkdirAll itself treats an already-existing directory as
// success, so a losing racer never sees ErrExist here in practice, but a
// plain file at path does still surface as an error.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return fmt.Errorf("creating output directory %q: %w", path, err)
	}
	return nil
}
