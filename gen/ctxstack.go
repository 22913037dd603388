// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

// prefixStack resolves the field-access expression for a rendered field,
// scoped to one Marshal/Unmarshal/MarshalPacked/UnmarshalPacked emission
// call (never package-level state, per the no-shared-mutable-emitter-state
// rule). An earlier design walked the ORIGINAL, nested spec tree directly
// and pushed/popped a prefix frame around every embedded type and
// array-element loop, minting a counter-based temporary for each nesting
// level. flatten's dotted-path field names (e.g. "header.stamp") made
// that walk unnecessary: every flattened field is already addressable
// straight off the method receiver, so the stack only ever holds its one
// base frame and never needs a temporary. What remains is this single
// receiver-prefix lookup.
type prefixStack struct {
	receiver string
}

// newPrefixStack scopes field lookups to receiver (e.g. "m").
func newPrefixStack(receiver string) *prefixStack {
	return &prefixStack{receiver: receiver + "."}
}

// field returns the full selector expression for a (possibly dotted,
// post-flattening) field name.
func (s *prefixStack) field(name string) string {
	return s.receiver + name
}
