// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"strconv"

	"github.com/wireidl/msgc/fingerprint"
	"github.com/wireidl/msgc/spec"
)

// EmitService renders the thin service descriptor for s: a zero-field
// struct carrying the service's full name and MD5 sum as constants. The
// request and response types themselves are rendered separately by
// EmitMessage (s.Request and s.Response already carry the distinct
// `<ShortName>Request`/`<ShortName>Response` short names NewSrvSpec
// stamps onto them), so nothing here needs to re-name them. This is the
// analog of the thin wrapper gensrv_py.py layers on top of the two
// message classes it already generated.
func EmitService(ctx *spec.Context, s *spec.SrvSpec, importer PackageImporter) (*GeneratedFile, error) {
	md5sum, err := fingerprint.ComputeSrv(ctx, s)
	if err != nil {
		return nil, &ErrGeneration{Type: s.FullName(), Err: err}
	}

	g := NewGeneratedFile(s.Package)
	name := exportedName(s.ShortName)

	g.P("// ", name, " is the service descriptor for ", s.FullName(), ".")
	g.P("type ", name, " struct{}")
	g.P()
	g.P("const (")
	g.P("\t", name, "Type = ", strconv.Quote(s.FullName()))
	g.P("\t", name, "MD5Sum = ", strconv.Quote(md5sum))
	g.P(")")
	g.P()

	return g, nil
}
