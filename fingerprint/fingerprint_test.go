// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fingerprint

import (
	"testing"

	"github.com/wireidl/msgc/spec"
)

func TestComputeIsStableAcrossEquivalentSpecs(t *testing.T) {
	ctx := spec.NewContext()
	a := spec.NewMsgSpec("pkg", "Thing", []spec.Field{{Type: "int32", Name: "x"}}, nil, "int32 x\n")
	b := spec.NewMsgSpec("pkg", "Thing", []spec.Field{{Type: "int32", Name: "x"}}, nil, "int32 x # comment differs\n")

	h1, err := Compute(ctx, a)
	if err != nil {
		t.Fatalf("Compute(a): %v", err)
	}
	h2, err := Compute(ctx, b)
	if err != nil {
		t.Fatalf("Compute(b): %v", err)
	}
	if h1 != h2 {
		t.Errorf("fingerprints differ despite identical field lists: %q vs %q", h1, h2)
	}
	if len(h1) != 32 {
		t.Errorf("fingerprint length = %d, want 32 hex chars", len(h1))
	}
}

func TestComputeChangesWithFieldOrder(t *testing.T) {
	ctx := spec.NewContext()
	a := spec.NewMsgSpec("pkg", "Thing", []spec.Field{{Type: "int32", Name: "x"}, {Type: "string", Name: "y"}}, nil, "")
	b := spec.NewMsgSpec("pkg", "Thing", []spec.Field{{Type: "string", Name: "y"}, {Type: "int32", Name: "x"}}, nil, "")

	h1, _ := Compute(ctx, a)
	h2, _ := Compute(ctx, b)
	if h1 == h2 {
		t.Error("fingerprints should differ when field order differs")
	}
}

func TestComputeRecursesThroughEmbeddedType(t *testing.T) {
	ctx := spec.NewContext()
	point := spec.NewMsgSpec("geometry_msgs", "Point", []spec.Field{{Type: "float64", Name: "x"}}, nil, "")
	if err := ctx.Register(point); err != nil {
		t.Fatal(err)
	}
	polygon := spec.NewMsgSpec("geometry_msgs", "Polygon", []spec.Field{{Type: "Point[]", Name: "points"}}, nil, "")

	h1, err := Compute(ctx, polygon)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	// Changing Point's fields should change Polygon's fingerprint even
	// though Polygon's own field list is untouched.
	ctx2 := spec.NewContext()
	point2 := spec.NewMsgSpec("geometry_msgs", "Point", []spec.Field{{Type: "float64", Name: "x"}, {Type: "float64", Name: "y"}}, nil, "")
	if err := ctx2.Register(point2); err != nil {
		t.Fatal(err)
	}
	h2, err := Compute(ctx2, polygon)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if h1 == h2 {
		t.Error("fingerprint should change when an embedded type's fields change")
	}
}

func TestComputeUnknownEmbeddedType(t *testing.T) {
	ctx := spec.NewContext()
	s := spec.NewMsgSpec("pkg", "Thing", []spec.Field{{Type: "Missing", Name: "m"}}, nil, "")
	if _, err := Compute(ctx, s); err == nil {
		t.Fatal("expected an error for an unresolved embedded type")
	}
}

func TestComputeSrvHashesRequestAndResponse(t *testing.T) {
	ctx := spec.NewContext()
	req := spec.NewMsgSpec("pkg", "DoThing", []spec.Field{{Type: "int32", Name: "a"}}, nil, "")
	resp := spec.NewMsgSpec("pkg", "DoThing", []spec.Field{{Type: "int32", Name: "b"}}, nil, "")
	srv := spec.NewSrvSpec("pkg", "DoThing", req, resp)

	h, err := ComputeSrv(ctx, srv)
	if err != nil {
		t.Fatalf("ComputeSrv: %v", err)
	}
	if len(h) != 32 {
		t.Errorf("fingerprint length = %d, want 32", len(h))
	}

	reqOnly, _ := Compute(ctx, req)
	if h == reqOnly {
		t.Error("service fingerprint should not equal the request's own fingerprint")
	}
}
