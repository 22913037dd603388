// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sanitize

import (
	"testing"

	"github.com/wireidl/msgc/spec"
)

func TestRemapReservedWord(t *testing.T) {
	cases := map[string]string{
		"type":  "type_",
		"range": "range_",
		"m":     "m_",
		"name":  "name",
		"Value": "Value",
	}
	for in, want := range cases {
		if got := Remap(in); got != want {
			t.Errorf("Remap(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeRemapsFieldsAndConstantsOnly(t *testing.T) {
	s := spec.NewMsgSpec("pkg", "Thing", []spec.Field{
		{Type: "int32", Name: "type"},
		{Type: "string", Name: "label"},
	}, []spec.Constant{
		{Type: "int32", Name: "range", Value: int64(1), RawText: "1"},
	}, "int32 type\nstring label\n")

	out, err := Sanitize(s)
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if out.Fields[0].Name != "type_" {
		t.Errorf("Fields[0].Name = %q, want type_", out.Fields[0].Name)
	}
	if out.Fields[1].Name != "label" {
		t.Errorf("Fields[1].Name = %q, want label", out.Fields[1].Name)
	}
	if out.Constants[0].Name != "range_" {
		t.Errorf("Constants[0].Name = %q, want range_", out.Constants[0].Name)
	}
	if out.FullName != s.FullName {
		t.Errorf("FullName changed: got %q, want %q", out.FullName, s.FullName)
	}
	// original is untouched
	if s.Fields[0].Name != "type" {
		t.Errorf("Sanitize mutated its input: s.Fields[0].Name = %q", s.Fields[0].Name)
	}
}
