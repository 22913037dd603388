// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flatten

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wireidl/msgc/spec"
)

func TestFlattenInlinesEmbeddedFields(t *testing.T) {
	ctx := spec.NewContext()
	point := spec.NewMsgSpec("geometry_msgs", "Point", []spec.Field{
		{Type: "float64", Name: "x"},
		{Type: "float64", Name: "y"},
	}, nil, "")
	if err := ctx.Register(point); err != nil {
		t.Fatal(err)
	}
	pose := spec.NewMsgSpec("geometry_msgs", "Pose", []spec.Field{
		{Type: "Point", Name: "position"},
		{Type: "string", Name: "label"},
	}, nil, "")

	flat, err := Flatten(ctx, pose)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	want := []spec.Field{
		{Type: "float64", Name: "position.x"},
		{Type: "float64", Name: "position.y"},
		{Type: "string", Name: "label"},
	}
	if diff := cmp.Diff(want, flat.Fields); diff != "" {
		t.Errorf("flattened fields mismatch (-want +got):\n%s", diff)
	}
	if flat.FullName != pose.FullName {
		t.Errorf("FullName changed: got %q, want %q", flat.FullName, pose.FullName)
	}
}

func TestFlattenLeavesArraysOfMessagesAlone(t *testing.T) {
	ctx := spec.NewContext()
	point := spec.NewMsgSpec("geometry_msgs", "Point", []spec.Field{{Type: "float64", Name: "x"}}, nil, "")
	if err := ctx.Register(point); err != nil {
		t.Fatal(err)
	}
	polygon := spec.NewMsgSpec("geometry_msgs", "Polygon", []spec.Field{{Type: "Point[]", Name: "points"}}, nil, "")

	flat, err := Flatten(ctx, polygon)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	want := []spec.Field{{Type: "Point[]", Name: "points"}}
	if diff := cmp.Diff(want, flat.Fields); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenLeavesSpecialsAlone(t *testing.T) {
	ctx := spec.NewContext()
	s := spec.NewMsgSpec("std_msgs", "Header", []spec.Field{
		{Type: "uint32", Name: "seq"},
		{Type: "time", Name: "stamp"},
		{Type: "string", Name: "frame_id"},
	}, nil, "")

	flat, err := Flatten(ctx, s)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if diff := cmp.Diff(s.Fields, flat.Fields); diff != "" {
		t.Errorf("special-typed fields should pass through unchanged (-want +got):\n%s", diff)
	}
}

func TestFlattenDetectsCycle(t *testing.T) {
	ctx := spec.NewContext()
	a := &spec.MsgSpec{Package: "pkg", ShortName: "A", FullName: "pkg/A", Fields: []spec.Field{{Type: "B", Name: "b"}}}
	b := &spec.MsgSpec{Package: "pkg", ShortName: "B", FullName: "pkg/B", Fields: []spec.Field{{Type: "A", Name: "a"}}}
	if err := ctx.Register(a); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Register(b); err != nil {
		t.Fatal(err)
	}

	if _, err := Flatten(ctx, a); err == nil {
		t.Fatal("expected ErrRecursive for a cyclic embedded-type reference")
	}
}
