// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types enumerates the closed set of builtin scalar types
// (Primitives), the well-known special composite types (Time, Duration,
// Header), and the string type, together with their pack codes, fixed
// byte widths, and default-value text.
package types

// Primitive describes one entry of the builtin scalar catalog.
type Primitive struct {
	Name    string // IDL type name, e.g. "int32"
	Code    byte   // struct-pack style code, e.g. 'i'
	Width   int    // fixed width in bytes
	Default string // Go literal for the zero value
}

// Catalog is the closed set of primitive scalar types. Lookups go through
// byName, so nothing depends on the order of this list.
var Catalog = []Primitive{
	{Name: "int8", Code: 'b', Width: 1, Default: "0"},
	{Name: "uint8", Code: 'B', Width: 1, Default: "0"},
	{Name: "int16", Code: 'h', Width: 2, Default: "0"},
	{Name: "uint16", Code: 'H', Width: 2, Default: "0"},
	{Name: "int32", Code: 'i', Width: 4, Default: "0"},
	{Name: "uint32", Code: 'I', Width: 4, Default: "0"},
	{Name: "int64", Code: 'q', Width: 8, Default: "0"},
	{Name: "uint64", Code: 'Q', Width: 8, Default: "0"},
	{Name: "float32", Code: 'f', Width: 4, Default: "0"},
	{Name: "float64", Code: 'd', Width: 8, Default: "0"},
	// bool is packed as a single unsigned byte, canonicalized to a Go bool
	// after deserialization.
	{Name: "bool", Code: 'B', Width: 1, Default: "false"},
	// deprecated aliases
	{Name: "char", Code: 'B', Width: 1, Default: "0"}, // alias of uint8
	{Name: "byte", Code: 'b', Width: 1, Default: "0"}, // alias of int8
}

var byName = func() map[string]Primitive {
	m := make(map[string]Primitive, len(Catalog))
	for _, p := range Catalog {
		m[p.Name] = p
	}
	return m
}()

var widthByCode = func() map[byte]int {
	m := make(map[byte]int, len(Catalog))
	for _, p := range Catalog {
		m[p.Code] = p.Width
	}
	return m
}()

// CodeWidth returns the byte width of a pack code (e.g. 'i' -> 4).
func CodeWidth(code byte) (int, bool) {
	w, ok := widthByCode[code]
	return w, ok
}

// Lookup returns the Primitive registered under name and whether it exists.
func Lookup(name string) (Primitive, bool) {
	p, ok := byName[name]
	return p, ok
}

// IsPrimitive reports whether name is a member of Catalog.
func IsPrimitive(name string) bool {
	_, ok := byName[name]
	return ok
}

// IsBool reports whether name is the `bool` primitive, which requires
// post-deserialize canonicalization to a Go bool (0/1 -> false/true)
// distinct from its raw uint8 wire representation.
func IsBool(name string) bool { return name == "bool" }

// Special type names. These are builtin composite types represented by a
// runtime struct rather than a primitive pack code.
const (
	Time     = "time"
	Duration = "duration"
	Header   = "Header"
)

// IsSpecial reports whether name is one of the well-known composite types.
func IsSpecial(name string) bool {
	switch name {
	case Time, Duration, Header:
		return true
	default:
		return false
	}
}

// IsString reports whether name is the builtin `string` type.
func IsString(name string) bool { return name == "string" }

// IsByteLike reports whether name is one of the two primitive aliases that
// serialize arrays as opaque byte strings instead of lists (§4.1, §4.5).
func IsByteLike(name string) bool { return name == "uint8" || name == "byte" }
