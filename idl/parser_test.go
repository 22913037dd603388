// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idl

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wireidl/msgc/spec"
)

func TestParseMsgFieldsAndConstants(t *testing.T) {
	text := "# a comment\nuint8 FOO=1\nstring name\nint32 count # trailing comment\n\nuint8[] data\n"
	s, err := ParseMsg("pkg", "Thing", "test.msg", text)
	if err != nil {
		t.Fatalf("ParseMsg: %v", err)
	}
	wantFields := []spec.Field{
		{Type: "string", Name: "name"},
		{Type: "int32", Name: "count"},
		{Type: "uint8[]", Name: "data"},
	}
	if diff := cmp.Diff(wantFields, s.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if len(s.Constants) != 1 || s.Constants[0].Name != "FOO" || s.Constants[0].Value != int64(1) {
		t.Errorf("unexpected constants: %+v", s.Constants)
	}
	if s.FullName != "pkg/Thing" {
		t.Errorf("FullName = %q, want pkg/Thing", s.FullName)
	}
}

func TestParseMsgStringConstantHashNotTruncated(t *testing.T) {
	s, err := ParseMsg("pkg", "Thing", "test.msg", "string GREETING=hello # world\n")
	if err != nil {
		t.Fatalf("ParseMsg: %v", err)
	}
	if got := s.Constants[0].Value; got != "hello # world" {
		t.Errorf("string constant = %q, want %q", got, "hello # world")
	}
}

func TestParseMsgDuplicateFieldName(t *testing.T) {
	_, err := ParseMsg("pkg", "Thing", "test.msg", "int32 x\nstring x\n")
	if err == nil {
		t.Fatal("expected an error for a duplicate field name")
	}
}

func TestParseMsgIllegalTypeExpr(t *testing.T) {
	_, err := ParseMsg("pkg", "Thing", "test.msg", "int99 x\n")
	if err == nil {
		t.Fatal("expected an error for an illegal type expression")
	}
}

func TestParseSrvSplitsOnSeparator(t *testing.T) {
	text := "int32 a\n---\nint32 b\n"
	s, err := ParseSrv("pkg", "DoThing", "test.srv", text)
	if err != nil {
		t.Fatalf("ParseSrv: %v", err)
	}
	if len(s.Request.Fields) != 1 || s.Request.Fields[0].Name != "a" {
		t.Errorf("unexpected request fields: %+v", s.Request.Fields)
	}
	if len(s.Response.Fields) != 1 || s.Response.Fields[0].Name != "b" {
		t.Errorf("unexpected response fields: %+v", s.Response.Fields)
	}
	if s.Request.FullName != "pkg/DoThingRequest" {
		t.Errorf("request FullName = %q", s.Request.FullName)
	}
	if s.Response.FullName != "pkg/DoThingResponse" {
		t.Errorf("response FullName = %q", s.Response.FullName)
	}
}

func TestParseSrvNoSeparatorIsRequestOnly(t *testing.T) {
	s, err := ParseSrv("pkg", "DoThing", "test.srv", "int32 a\n")
	if err != nil {
		t.Fatalf("ParseSrv: %v", err)
	}
	if len(s.Request.Fields) != 1 {
		t.Errorf("unexpected request fields: %+v", s.Request.Fields)
	}
	if len(s.Response.Fields) != 0 {
		t.Errorf("expected an empty response, got: %+v", s.Response.Fields)
	}
}
