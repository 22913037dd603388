// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

import (
	"encoding/binary"
	"fmt"
	stdtime "time"
)

// Duration is the wire-level representation of the special `duration`
// type: two signed 32-bit fields, seconds and nanoseconds, in that order.
type Duration struct {
	Sec  int32
	Nsec int32
}

// NewDuration builds a Duration from a standard library time.Duration.
func NewDuration(d stdtime.Duration) Duration {
	return Duration{
		Sec:  int32(d / stdtime.Second),
		Nsec: int32(d % stdtime.Second),
	}
}

// AsDuration converts back to a standard library time.Duration.
func (d Duration) AsDuration() stdtime.Duration {
	return stdtime.Duration(d.Sec)*stdtime.Second + stdtime.Duration(d.Nsec)
}

// Canon normalizes Nsec into [0, 1e9) by carrying the excess/deficit into
// Sec, the same rule Time.Canon applies.
func (d *Duration) Canon() {
	if d.Nsec >= 1e9 || d.Nsec < 0 {
		sec := int64(d.Sec) + int64(d.Nsec)/nsecPerSec
		nsec := int64(d.Nsec) % nsecPerSec
		if nsec < 0 {
			nsec += nsecPerSec
			sec--
		}
		d.Sec = int32(sec)
		d.Nsec = int32(nsec)
	}
}

// Marshal appends the wire-format encoding (two little-endian int32s).
func (d Duration) Marshal(buf []byte) []byte {
	var scratch [8]byte
	binary.LittleEndian.PutUint32(scratch[0:4], uint32(d.Sec))
	binary.LittleEndian.PutUint32(scratch[4:8], uint32(d.Nsec))
	return append(buf, scratch[:]...)
}

// Unmarshal reads two little-endian int32s and canonicalizes the result.
func (d *Duration) Unmarshal(buf []byte) (int, error) {
	if len(buf) < 8 {
		return 0, fmt.Errorf("short buffer for duration: need 8 bytes, have %d", len(buf))
	}
	d.Sec = int32(binary.LittleEndian.Uint32(buf[0:4]))
	d.Nsec = int32(binary.LittleEndian.Uint32(buf[4:8]))
	d.Canon()
	return 8, nil
}
