// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wireidl/msgc/spec"
)

func writeMsg(t *testing.T, dir, name, text string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".msg"), []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParseSearchPathArg(t *testing.T) {
	ns, dir, err := ParseSearchPathArg("std_msgs:/tmp/std_msgs")
	if err != nil {
		t.Fatalf("ParseSearchPathArg: %v", err)
	}
	if ns != "std_msgs" || dir != "/tmp/std_msgs" {
		t.Errorf("got ns=%q dir=%q", ns, dir)
	}
	if _, _, err := ParseSearchPathArg("missing-colon"); err == nil {
		t.Error("expected an error for a malformed -I value")
	}
}

func TestLoaderResolvesTransitiveDependencies(t *testing.T) {
	dir := t.TempDir()
	writeMsg(t, dir, "Point", "float64 x\nfloat64 y\n")
	writeMsg(t, dir, "Polygon", "Point[] points\n")

	sp := NewSearchPath()
	sp.Add("geometry_msgs", dir)

	ctx := spec.NewContext()
	loader := NewLoader(ctx, sp)
	polygon, err := loader.LoadMsg("geometry_msgs", "Polygon")
	if err != nil {
		t.Fatalf("LoadMsg: %v", err)
	}
	if polygon.FullName != "geometry_msgs/Polygon" {
		t.Errorf("FullName = %q", polygon.FullName)
	}
	if !ctx.IsRegistered("geometry_msgs/Point") {
		t.Error("expected the transitively-referenced Point type to be registered")
	}
}

func TestLoaderMissingSearchPathEntry(t *testing.T) {
	ctx := spec.NewContext()
	loader := NewLoader(ctx, NewSearchPath())
	if _, err := loader.LoadMsg("nope", "Thing"); err == nil {
		t.Fatal("expected an error for an unregistered package")
	}
}

func TestEnsureDirToleratesExisting(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b")
	if err := EnsureDir(target); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	if err := EnsureDir(target); err != nil {
		t.Fatalf("EnsureDir (second call): %v", err)
	}
}
