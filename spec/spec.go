// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package spec holds the canonical, in-memory representation of a parsed
// message or service definition: Constant, Field, MsgSpec, SrvSpec, and the
// Context that registers resolved full names for the lifetime of a
// generation session.
package spec

import "strings"

// Constant is a named literal attached to a MsgSpec, e.g. `uint8 FOO=1`.
type Constant struct {
	Type    string // primitive name, or "string"
	Name    string
	Value   interface{} // already-parsed Go value (int64, float64, string, bool)
	RawText string      // the literal text as it appeared in the source
}

// Field is one entry of a MsgSpec's ordered field list.
type Field struct {
	Type string // type expression, see ParseTypeExpr
	Name string
}

// MsgSpec is the canonical representation of a single message type.
// MsgSpec values are immutable once registered in a Context; derived
// copies (flattened, sanitized) are produced by their respective packages
// and never mutate the original.
type MsgSpec struct {
	Fields    []Field
	Constants []Constant
	Package   string
	ShortName string
	FullName  string // Package + "/" + ShortName
	Text      string // raw source text, used for FullText computation
}

// NewMsgSpec builds a MsgSpec, deriving FullName from Package/ShortName.
func NewMsgSpec(pkg, shortName string, fields []Field, constants []Constant, text string) *MsgSpec {
	return &MsgSpec{
		Fields:    fields,
		Constants: constants,
		Package:   pkg,
		ShortName: shortName,
		FullName:  pkg + "/" + shortName,
		Text:      text,
	}
}

// SrvSpec is a parsed service definition: a request MsgSpec and a response
// MsgSpec sharing a package/short name, plus synthetic full names for each
// half (`<full>Request` / `<full>Response`).
type SrvSpec struct {
	Request   *MsgSpec
	Response  *MsgSpec
	Package   string
	ShortName string
}

// FullName is the service's own full name, Package + "/" + ShortName.
func (s *SrvSpec) FullName() string {
	return s.Package + "/" + s.ShortName
}

// NewSrvSpec builds a SrvSpec, stamping synthetic short and full names onto
// the request and response MsgSpecs (`<shortName>Request`/`<full>Request`,
// `<shortName>Response`/`<full>Response`) so the two halves never collide
// when generated into the same package.
func NewSrvSpec(pkg, shortName string, request, response *MsgSpec) *SrvSpec {
	full := pkg + "/" + shortName
	request.ShortName = shortName + "Request"
	request.FullName = full + "Request"
	response.ShortName = shortName + "Response"
	response.FullName = full + "Response"
	return &SrvSpec{
		Request:   request,
		Response:  response,
		Package:   pkg,
		ShortName: shortName,
	}
}

// BareMsgType strips a trailing array suffix ("[]" or "[N]") from a type
// expression, returning the element type expression.
func BareMsgType(typeExpr string) string {
	if i := strings.IndexByte(typeExpr, '['); i >= 0 {
		return typeExpr[:i]
	}
	return typeExpr
}

// ShortTypeName strips any leading "pkg/" package qualifier from a type
// reference, returning just the type's own name. Used to recognize a
// special type (e.g. "Header") regardless of whether it was written bare
// or fully qualified as "std_msgs/Header".
func ShortTypeName(typeRef string) string {
	if i := strings.LastIndexByte(typeRef, '/'); i >= 0 {
		return typeRef[i+1:]
	}
	return typeRef
}
