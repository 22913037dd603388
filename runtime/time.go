// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

import (
	"encoding/binary"
	"fmt"
	stdtime "time"
)

const nsecPerSec = int64(1e9)

// Time is the wire-level representation of the special `time` type: two
// signed 32-bit fields, seconds and nanoseconds, in that order.
type Time struct {
	Sec  int32
	Nsec int32
}

// NewTime builds a Time from a standard library time.Time, relative to the
// Unix epoch, matching the convention of genpy's genpy.Time.
func NewTime(t stdtime.Time) Time {
	return Time{
		Sec:  int32(t.Unix()),
		Nsec: int32(t.Nanosecond()),
	}
}

// AsTime converts back to a standard library time.Time (UTC, Unix epoch).
func (t Time) AsTime() stdtime.Time {
	return stdtime.Unix(int64(t.Sec), int64(t.Nsec)).UTC()
}

// Canon normalizes Nsec into [0, 1e9) by carrying the excess/deficit into
// Sec. This is the post-deserialize hook for the `time` special type.
func (t *Time) Canon() {
	if t.Nsec >= 1e9 || t.Nsec < 0 {
		sec := int64(t.Sec) + int64(t.Nsec)/nsecPerSec
		nsec := int64(t.Nsec) % nsecPerSec
		if nsec < 0 {
			nsec += nsecPerSec
			sec--
		}
		t.Sec = int32(sec)
		t.Nsec = int32(nsec)
	}
}

// Marshal appends the wire-format encoding (two little-endian int32s).
func (t Time) Marshal(buf []byte) []byte {
	var scratch [8]byte
	binary.LittleEndian.PutUint32(scratch[0:4], uint32(t.Sec))
	binary.LittleEndian.PutUint32(scratch[4:8], uint32(t.Nsec))
	return append(buf, scratch[:]...)
}

// Unmarshal reads two little-endian int32s and canonicalizes the result.
func (t *Time) Unmarshal(buf []byte) (int, error) {
	if len(buf) < 8 {
		return 0, fmt.Errorf("short buffer for time: need 8 bytes, have %d", len(buf))
	}
	t.Sec = int32(binary.LittleEndian.Uint32(buf[0:4]))
	t.Nsec = int32(binary.LittleEndian.Uint32(buf[4:8]))
	t.Canon()
	return 8, nil
}
