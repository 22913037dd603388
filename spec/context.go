// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spec

import "fmt"

// ErrUnknownType is returned when a full name has no registered MsgSpec.
type ErrUnknownType struct {
	FullName string
}

func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("unknown type %q: please check that the dependency search path includes its package", e.FullName)
}

// Context is the registry of resolved full names to MsgSpecs for one
// generation session. Registration is additive only; lookups for an
// unregistered name fail with ErrUnknownType. A Context is the sole owner
// of the MsgSpec values registered in it.
type Context struct {
	specs map[string]*MsgSpec
}

// NewContext returns an empty, ready-to-use Context.
func NewContext() *Context {
	return &Context{specs: make(map[string]*MsgSpec)}
}

// Register adds spec to the context under its FullName. Registering a
// second spec under an already-registered full name is a no-op if the
// specs are the same pointer, and otherwise returns an error: a Context
// holds at most one spec per full name.
func (c *Context) Register(s *MsgSpec) error {
	if existing, ok := c.specs[s.FullName]; ok {
		if existing == s {
			return nil
		}
		return fmt.Errorf("spec %q already registered", s.FullName)
	}
	c.specs[s.FullName] = s
	return nil
}

// IsRegistered reports whether fullName has a registered MsgSpec.
func (c *Context) IsRegistered(fullName string) bool {
	_, ok := c.specs[fullName]
	return ok
}

// Get returns the MsgSpec registered under fullName, or ErrUnknownType.
func (c *Context) Get(fullName string) (*MsgSpec, error) {
	s, ok := c.specs[fullName]
	if !ok {
		return nil, &ErrUnknownType{FullName: fullName}
	}
	return s, nil
}

// Resolve resolves a possibly-bare type reference against a default
// package: "Name" resolves to "defaultPkg/Name", "pkg/Name" resolves to
// itself. It does not check registration.
func Resolve(defaultPkg, ref string) string {
	for i := 0; i < len(ref); i++ {
		if ref[i] == '/' {
			return ref
		}
	}
	return defaultPkg + "/" + ref
}

// All returns every registered MsgSpec. Order is unspecified; callers that
// need determinism must sort by FullName themselves.
func (c *Context) All() []*MsgSpec {
	out := make([]*MsgSpec, 0, len(c.specs))
	for _, s := range c.specs {
		out = append(out, s)
	}
	return out
}
