// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

import (
	"encoding/binary"
	"fmt"
)

// Header is the well-known `Header` special type: {u32 seq, Time stamp,
// string frame_id}. It is the Go analog of std_msgs/Header.
type Header struct {
	Seq     uint32
	Stamp   Time
	FrameID string
}

// Marshal appends the wire-format encoding: u32 seq, the two int32s of
// Stamp, then a u32-length-prefixed UTF-8 frame_id.
func (h Header) Marshal(buf []byte) []byte {
	var scratch [4]byte
	binary.LittleEndian.PutUint32(scratch[:], h.Seq)
	buf = append(buf, scratch[:]...)
	buf = h.Stamp.Marshal(buf)
	binary.LittleEndian.PutUint32(scratch[:], uint32(len(h.FrameID)))
	buf = append(buf, scratch[:]...)
	buf = append(buf, h.FrameID...)
	return buf
}

// Unmarshal reads a Header from buf, returning the number of bytes consumed.
func (h *Header) Unmarshal(buf []byte) (int, error) {
	if len(buf) < 4 {
		return 0, fmt.Errorf("short buffer for header.seq")
	}
	h.Seq = binary.LittleEndian.Uint32(buf[0:4])
	n := 4
	consumed, err := h.Stamp.Unmarshal(buf[n:])
	if err != nil {
		return 0, fmt.Errorf("header.stamp: %w", err)
	}
	n += consumed
	if len(buf[n:]) < 4 {
		return 0, fmt.Errorf("short buffer for header.frame_id length")
	}
	l := binary.LittleEndian.Uint32(buf[n : n+4])
	n += 4
	if uint32(len(buf[n:])) < l {
		return 0, fmt.Errorf("short buffer for header.frame_id body")
	}
	h.FrameID = string(buf[n : n+int(l)])
	n += int(l)
	return n, nil
}
