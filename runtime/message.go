// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runtime provides the small set of well-known types and error
// types that generated message code depends on: Time, Duration, Header,
// the Message base interface, and the typed errors generated Marshal/
// Unmarshal methods raise.
package runtime

import "fmt"

// Message is implemented by every type emitted for a message spec.
type Message interface {
	// Marshal appends the wire-format encoding of the message to buf.
	Marshal(buf []byte) ([]byte, error)

	// Unmarshal parses the wire-format encoding in buf into the message,
	// returning the number of bytes consumed.
	Unmarshal(buf []byte) (int, error)

	// Descriptor returns the introspection metadata for the message's type.
	Descriptor() TypeDescriptor

	// Reset restores the message to its zero value.
	Reset()
}

// TypeDescriptor is the introspection metadata attached to every generated
// message type: its wire-identity fingerprint, its fully-qualified type
// name, whether its first field is a Header, and the concatenated source
// text of the type and its transitive dependencies.
type TypeDescriptor struct {
	MD5Sum     string
	Type       string
	HasHeader  bool
	FullText   string
	FieldNames []string
	FieldTypes []string
}

// SerializationError is raised by generated Marshal methods when a field
// value cannot be packed onto the wire (e.g. a fixed-length byte array
// field whose slice has the wrong length).
type SerializationError struct {
	Type string
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization error for %s: %v", e.Type, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// DeserializationError is raised by generated Unmarshal methods when the
// wire buffer is short, malformed, or a length prefix is inconsistent with
// the remaining buffer.
type DeserializationError struct {
	Type string
	Err  error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("deserialization error for %s: %v", e.Type, e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }
