// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "testing"

func TestLookup(t *testing.T) {
	p, ok := Lookup("int32")
	if !ok || p.Code != 'i' || p.Width != 4 {
		t.Errorf("Lookup(int32) = %+v, %v", p, ok)
	}
	if _, ok := Lookup("not-a-type"); ok {
		t.Error("Lookup should fail for an unknown name")
	}
}

func TestByteAndCharAliasCodes(t *testing.T) {
	char, _ := Lookup("char")
	if char.Code != 'B' || char.Width != 1 {
		t.Errorf("char = %+v, want uint8-equivalent", char)
	}
	byteT, _ := Lookup("byte")
	if byteT.Code != 'b' || byteT.Width != 1 {
		t.Errorf("byte = %+v, want int8-equivalent", byteT)
	}
}

func TestIsByteLike(t *testing.T) {
	if !IsByteLike("uint8") || !IsByteLike("byte") {
		t.Error("uint8 and byte should be byte-like")
	}
	if IsByteLike("int8") || IsByteLike("char") {
		t.Error("int8 and char should not be byte-like")
	}
}

func TestIsSpecialAndIsString(t *testing.T) {
	for _, name := range []string{Time, Duration, Header} {
		if !IsSpecial(name) {
			t.Errorf("IsSpecial(%q) = false, want true", name)
		}
	}
	if IsSpecial("int32") {
		t.Error("int32 should not be special")
	}
	if !IsString("string") || IsString("Time") {
		t.Error("IsString behaves unexpectedly")
	}
}

func TestCodeWidth(t *testing.T) {
	w, ok := CodeWidth('q')
	if !ok || w != 8 {
		t.Errorf("CodeWidth('q') = %d, %v, want 8, true", w, ok)
	}
}
