// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

import (
	"encoding/binary"
	"fmt"
)

// AppendLenPrefixed appends data to buf preceded by its length as a
// little-endian u32, the wire form shared by strings and variable-length
// byte arrays.
func AppendLenPrefixed(buf []byte, data []byte) []byte {
	var scratch [4]byte
	binary.LittleEndian.PutUint32(scratch[:], uint32(len(data)))
	buf = append(buf, scratch[:]...)
	return append(buf, data...)
}

// ReadLenPrefixed reads a u32-length-prefixed byte string starting at off in
// buf, returning the cursor offset just past the payload and a freshly
// allocated copy of the payload.
func ReadLenPrefixed(buf []byte, off int) (int, []byte, error) {
	if len(buf)-off < 4 {
		return 0, nil, fmt.Errorf("short read for length prefix at offset %d", off)
	}
	n := binary.LittleEndian.Uint32(buf[off:])
	off += 4
	if uint32(len(buf)-off) < n {
		return 0, nil, fmt.Errorf("short read for length-prefixed payload: need %d bytes, have %d", n, len(buf)-off)
	}
	data := append([]byte(nil), buf[off:off+int(n)]...)
	return off + int(n), data, nil
}
