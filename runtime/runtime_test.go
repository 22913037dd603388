// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

import "testing"

func TestTimeRoundTrip(t *testing.T) {
	in := Time{Sec: 1234, Nsec: 5678}
	buf := in.Marshal(nil)
	if len(buf) != 8 {
		t.Fatalf("Marshal produced %d bytes, want 8", len(buf))
	}
	var out Time
	n, err := out.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if n != 8 || out != in {
		t.Errorf("round trip mismatch: got %+v (n=%d), want %+v", out, n, in)
	}
}

func TestTimeCanonCarriesOverflow(t *testing.T) {
	tm := Time{Sec: 1, Nsec: 1_500_000_000}
	tm.Canon()
	if tm.Sec != 2 || tm.Nsec != 500_000_000 {
		t.Errorf("Canon() = %+v, want {Sec:2 Nsec:500000000}", tm)
	}
}

func TestTimeCanonNegativeNsec(t *testing.T) {
	tm := Time{Sec: 5, Nsec: -1}
	tm.Canon()
	if tm.Sec != 4 || tm.Nsec != 999_999_999 {
		t.Errorf("Canon() = %+v, want {Sec:4 Nsec:999999999}", tm)
	}
}

func TestDurationRoundTrip(t *testing.T) {
	in := Duration{Sec: -3, Nsec: 250}
	buf := in.Marshal(nil)
	var out Duration
	n, err := out.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if n != 8 || out != in {
		t.Errorf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	in := Header{Seq: 42, Stamp: Time{Sec: 7, Nsec: 8}, FrameID: "base_link"}
	buf := in.Marshal(nil)
	var out Header
	n, err := out.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if n != len(buf) {
		t.Errorf("consumed %d bytes, want %d", n, len(buf))
	}
	if out != in {
		t.Errorf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestHeaderUnmarshalShortBuffer(t *testing.T) {
	var h Header
	if _, err := h.Unmarshal([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected an error for a short buffer")
	}
}

func TestAppendAndReadLenPrefixed(t *testing.T) {
	buf := AppendLenPrefixed(nil, []byte("hello"))
	if len(buf) != 4+5 {
		t.Fatalf("unexpected length %d", len(buf))
	}
	off, data, err := ReadLenPrefixed(buf, 0)
	if err != nil {
		t.Fatalf("ReadLenPrefixed: %v", err)
	}
	if off != len(buf) || string(data) != "hello" {
		t.Errorf("got off=%d data=%q, want off=%d data=%q", off, data, len(buf), "hello")
	}
}

func TestReadLenPrefixedShortBuffer(t *testing.T) {
	if _, _, err := ReadLenPrefixed([]byte{1, 2}, 0); err == nil {
		t.Fatal("expected an error for a too-short length prefix")
	}
	buf := AppendLenPrefixed(nil, []byte("hello"))
	if _, _, err := ReadLenPrefixed(buf[:len(buf)-2], 0); err == nil {
		t.Fatal("expected an error for a truncated payload")
	}
}
