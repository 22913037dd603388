// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package idl is the minimal .msg/.srv text reader and dependency loader:
// a small line-oriented parser plus a search-path-based resolver
// that registers every parsed type in a spec.Context before generation.
// This collaborator's interface is intentionally thin; only its shape is
// pinned, not its internal grammar choices.
package idl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wireidl/msgc/spec"
)

// ErrInvalidMsgSpec is returned for a malformed .msg/.srv line: an illegal
// type expression, a duplicate field name, or a constant whose literal
// doesn't parse for its declared type.
type ErrInvalidMsgSpec struct {
	Source string
	Line   int
	Reason string
}

func (e *ErrInvalidMsgSpec) Error() string {
	return fmt.Sprintf("%s:%d: invalid message spec: %s", e.Source, e.Line, e.Reason)
}

// srvSeparator is the line that splits a .srv file's request half from its
// response half.
const srvSeparator = "---"

// ParseMsg parses one .msg file's text into a MsgSpec under pkg/shortName.
// It does not register the result in any Context; callers do that once
// dependencies are also resolved.
func ParseMsg(pkg, shortName, source, text string) (*spec.MsgSpec, error) {
	fields, constants, err := parseLines(source, text)
	if err != nil {
		return nil, err
	}
	return spec.NewMsgSpec(pkg, shortName, fields, constants, text), nil
}

// ParseSrv parses one .srv file's text into a SrvSpec under pkg/shortName.
// The request half is the text before the `---` separator line, the
// response half everything after it; a file with no separator is a request
// with an empty response, matching genmsg's own leniency.
func ParseSrv(pkg, shortName, source, text string) (*spec.SrvSpec, error) {
	reqText, respText, _ := strings.Cut(text, "\n"+srvSeparator+"\n")
	if reqText == text {
		// no interior separator found; also accept a bare leading/trailing one
		if strings.HasPrefix(text, srvSeparator+"\n") {
			reqText, respText = "", strings.TrimPrefix(text, srvSeparator+"\n")
		} else if strings.HasSuffix(text, "\n"+srvSeparator) {
			reqText, respText = strings.TrimSuffix(text, "\n"+srvSeparator), ""
		}
	}
	reqFields, reqConsts, err := parseLines(source, reqText)
	if err != nil {
		return nil, err
	}
	respFields, respConsts, err := parseLines(source, respText)
	if err != nil {
		return nil, err
	}
	request := spec.NewMsgSpec(pkg, shortName, reqFields, reqConsts, reqText)
	response := spec.NewMsgSpec(pkg, shortName, respFields, respConsts, respText)
	return spec.NewSrvSpec(pkg, shortName, request, response), nil
}

// parseLines implements the line grammar: blank lines and lines whose first
// non-blank rune is '#' are comments; every other line is either a constant
// (`TYPE NAME=VALUE`) or a field (`TYPE NAME`). For the `string` type, a '#'
// after the '=' does not start a comment, since string literals may
// legitimately contain one; for every other type the first '#' truncates
// the line (quotes are not recognized).
func parseLines(source, text string) ([]spec.Field, []spec.Constant, error) {
	var fields []spec.Field
	var constants []spec.Constant
	seen := map[string]bool{}

	for lineNo, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		typeTok, rest, ok := cutField(trimmed)
		if !ok {
			return nil, nil, &ErrInvalidMsgSpec{Source: source, Line: lineNo + 1, Reason: "expected `TYPE NAME` or `TYPE NAME=VALUE`"}
		}
		if _, err := spec.ParseTypeExpr(typeTok); err != nil {
			return nil, nil, &ErrInvalidMsgSpec{Source: source, Line: lineNo + 1, Reason: err.Error()}
		}

		if eq := strings.IndexByte(rest, '='); eq >= 0 {
			name := strings.TrimSpace(rest[:eq])
			rawVal := rest[eq+1:]
			if typeTok != "string" {
				if h := strings.IndexByte(rawVal, '#'); h >= 0 {
					rawVal = rawVal[:h]
				}
			}
			rawVal = strings.TrimSpace(rawVal)
			if !isIdent(name) {
				return nil, nil, &ErrInvalidMsgSpec{Source: source, Line: lineNo + 1, Reason: fmt.Sprintf("illegal constant name %q", name)}
			}
			value, err := parseLiteral(typeTok, rawVal)
			if err != nil {
				return nil, nil, &ErrInvalidMsgSpec{Source: source, Line: lineNo + 1, Reason: err.Error()}
			}
			constants = append(constants, spec.Constant{Type: typeTok, Name: name, Value: value, RawText: rawVal})
			continue
		}

		name := rest
		if h := strings.IndexByte(name, '#'); h >= 0 {
			name = name[:h]
		}
		name = strings.TrimSpace(name)
		if !isIdent(name) {
			return nil, nil, &ErrInvalidMsgSpec{Source: source, Line: lineNo + 1, Reason: fmt.Sprintf("illegal field name %q", name)}
		}
		if seen[name] {
			return nil, nil, &ErrInvalidMsgSpec{Source: source, Line: lineNo + 1, Reason: fmt.Sprintf("duplicate field name %q", name)}
		}
		seen[name] = true
		fields = append(fields, spec.Field{Type: typeTok, Name: name})
	}
	return fields, constants, nil
}

// cutField splits "TYPE rest-of-line" on the first run of whitespace,
// reporting whether a type token was present at all.
func cutField(line string) (typeTok, rest string, ok bool) {
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return "", "", false
	}
	typeTok = line[:i]
	rest = strings.TrimLeft(line[i:], " \t")
	return typeTok, rest, typeTok != "" && rest != ""
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// parseLiteral parses a constant's raw text into the Go value its type
// implies: int64 for signed/unsigned integers, float64 for float32/64,
// bool for bool, and the unquoted string itself for string.
func parseLiteral(typeTok, raw string) (interface{}, error) {
	switch typeTok {
	case "string":
		return raw, nil
	case "bool":
		switch raw {
		case "0", "false", "False":
			return false, nil
		case "1", "true", "True":
			return true, nil
		default:
			return nil, fmt.Errorf("illegal bool literal %q", raw)
		}
	case "float32", "float64":
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("illegal %s literal %q: %w", typeTok, raw, err)
		}
		return v, nil
	case "int8", "uint8", "int16", "uint16", "int32", "uint32", "int64", "uint64", "char", "byte":
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("illegal %s literal %q: %w", typeTok, raw, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("type %q cannot carry a constant", typeTok)
	}
}
