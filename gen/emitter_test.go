// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"strings"
	"testing"

	"github.com/wireidl/msgc/spec"
)

func identityImporter(pkg string) string { return pkg }

func TestEmitMessageSimplePrimitives(t *testing.T) {
	ctx := spec.NewContext()
	s := spec.NewMsgSpec("pkg", "Thing", []spec.Field{
		{Type: "int32", Name: "a"},
		{Type: "uint8", Name: "b"},
		{Type: "string", Name: "name"},
	}, []spec.Constant{
		{Type: "uint8", Name: "MAX", Value: int64(10), RawText: "10"},
	}, "int32 a\nuint8 b\nstring name\nuint8 MAX=10\n")
	if err := ctx.Register(s); err != nil {
		t.Fatal(err)
	}

	gf, err := EmitMessage(ctx, s, identityImporter)
	if err != nil {
		t.Fatalf("EmitMessage: %v", err)
	}
	src, err := gf.Content()
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	text := string(src)

	for _, want := range []string{
		"type Thing struct {",
		"func (m *Thing) Marshal(buf []byte) ([]byte, error) {",
		"func (m *Thing) Unmarshal(buf []byte) (int, error) {",
		"func (m *Thing) MarshalPacked(buf []byte) ([]byte, error) {",
		"func (m *Thing) UnmarshalPacked(buf []byte) (int, error) {",
		"func (m *Thing) Descriptor()",
		"func NewThing() *Thing {",
		"Thing_MAX = 10",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("generated source missing %q\n---\n%s", want, text)
		}
	}
}

func TestEmitMessageEmbeddedAndArrays(t *testing.T) {
	ctx := spec.NewContext()
	header := spec.NewMsgSpec("std_msgs", "Header", []spec.Field{
		{Type: "uint32", Name: "seq"},
		{Type: "time", Name: "stamp"},
		{Type: "string", Name: "frame_id"},
	}, nil, "")
	point := spec.NewMsgSpec("geometry_msgs", "Point", []spec.Field{
		{Type: "float64", Name: "x"},
		{Type: "float64", Name: "y"},
	}, nil, "")
	if err := ctx.Register(header); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Register(point); err != nil {
		t.Fatal(err)
	}

	polygon := spec.NewMsgSpec("geometry_msgs", "PolygonStamped", []spec.Field{
		{Type: "Header", Name: "header"},
		{Type: "Point[]", Name: "points"},
		{Type: "int32[3]", Name: "tag"},
		{Type: "uint8[]", Name: "payload"},
	}, nil, "")
	if err := ctx.Register(polygon); err != nil {
		t.Fatal(err)
	}

	gf, err := EmitMessage(ctx, polygon, identityImporter)
	if err != nil {
		t.Fatalf("EmitMessage: %v", err)
	}
	src, err := gf.Content()
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	text := string(src)

	// Header is a special type (not a user message), so it must not be
	// treated as a pointer-typed embedded field.
	if strings.Contains(text, "Header *runtime.Header") {
		t.Error("Header field should be a value, not a pointer")
	}
	if !strings.Contains(text, "Points []*Point") {
		t.Errorf("expected a []*Point field for the Point[] array\n---\n%s", text)
	}
	if !strings.Contains(text, "Tag [3]int32") {
		t.Errorf("expected a fixed [3]int32 field\n---\n%s", text)
	}
	if !strings.Contains(text, "Payload []byte") {
		t.Errorf("expected a []byte field for uint8[]\n---\n%s", text)
	}
}

func TestEmitMessageArrayOfSpecials(t *testing.T) {
	ctx := spec.NewContext()
	s := spec.NewMsgSpec("pkg", "Schedule", []spec.Field{
		{Type: "time[]", Name: "ticks"},
	}, nil, "")
	if err := ctx.Register(s); err != nil {
		t.Fatal(err)
	}

	gf, err := EmitMessage(ctx, s, identityImporter)
	if err != nil {
		t.Fatalf("EmitMessage: %v", err)
	}
	src, err := gf.Content()
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	text := string(src)
	if !strings.Contains(text, "[]runtime.Time") {
		t.Errorf("expected a []runtime.Time field for time[]\n---\n%s", text)
	}
}

func TestEmitMessageUnknownEmbeddedTypeErrors(t *testing.T) {
	ctx := spec.NewContext()
	s := spec.NewMsgSpec("pkg", "Thing", []spec.Field{{Type: "Missing", Name: "m"}}, nil, "")
	if _, err := EmitMessage(ctx, s, identityImporter); err == nil {
		t.Fatal("expected an error for an unresolved embedded type")
	}
}

func TestEmitServiceDescriptor(t *testing.T) {
	ctx := spec.NewContext()
	req := spec.NewMsgSpec("pkg", "DoThing", []spec.Field{{Type: "int32", Name: "a"}}, nil, "")
	resp := spec.NewMsgSpec("pkg", "DoThing", []spec.Field{{Type: "int32", Name: "b"}}, nil, "")
	srv := spec.NewSrvSpec("pkg", "DoThing", req, resp)

	// NewSrvSpec must give the request and response distinct short names
	// so their generated structs never collide in the output package.
	if req.ShortName != "DoThingRequest" {
		t.Errorf("req.ShortName = %q, want DoThingRequest", req.ShortName)
	}
	if resp.ShortName != "DoThingResponse" {
		t.Errorf("resp.ShortName = %q, want DoThingResponse", resp.ShortName)
	}

	gf, err := EmitService(ctx, srv, identityImporter)
	if err != nil {
		t.Fatalf("EmitService: %v", err)
	}
	src, err := gf.Content()
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	text := string(src)
	for _, want := range []string{
		"type DoThing struct{}",
		"DoThingType   = ",
		"DoThingMD5Sum = ",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("generated service source missing %q\n---\n%s", want, text)
		}
	}
	// The descriptor must not redeclare the request/response types; those
	// are emitted separately by EmitMessage under their own short names.
	if strings.Contains(text, "DoThingRequest") || strings.Contains(text, "DoThingResponse") {
		t.Errorf("service descriptor should not reference Request/Response types\n---\n%s", text)
	}
}
