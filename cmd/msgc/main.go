// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command msgc reads .msg/.srv interface files and generates the Go
// serializer package for them, the Go analog of genmsg_py.py/gensrv_py.py
// invoked from the genmsg command-line driver.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/wireidl/msgc/gen"
	"github.com/wireidl/msgc/idl"
	"github.com/wireidl/msgc/pkgmarker"
	"github.com/wireidl/msgc/spec"
)

const (
	exitOK         = 0
	exitSchema     = 1
	exitGenerate   = 2
	exitUnexpected = 3
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("msgc: ")
	os.Exit(run())
}

func run() int {
	var (
		initpy    bool
		pkg       string
		srcDir    string
		outDir    string
		importDef []string
	)
	flag.BoolVar(&initpy, "initpy", false, "emit a package marker file alongside the generated types")
	flag.StringVarP(&pkg, "package", "p", "", "IDL package name the input files belong to (required)")
	flag.StringVarP(&srcDir, "srcdir", "s", "", "directory the input files' own package resolves against (defaults to the first input file's directory)")
	flag.StringVarP(&outDir, "outdir", "o", "", "directory generated .go files are written to (required)")
	flag.StringArrayVarP(&importDef, "import", "I", nil, "NS:PATH search path entry for a dependency package, repeatable")
	flag.Parse()

	if pkg == "" || outDir == "" {
		log.Print("-p/--package and -o/--outdir are required")
		return exitUnexpected
	}
	files := flag.Args()
	if len(files) == 0 {
		log.Print("no input files given")
		return exitUnexpected
	}

	sp := idl.NewSearchPath()
	for _, def := range importDef {
		ns, dir, err := idl.ParseSearchPathArg(def)
		if err != nil {
			log.Print(err)
			return exitUnexpected
		}
		sp.Add(ns, dir)
	}
	if srcDir == "" {
		srcDir = filepath.Dir(files[0])
	}
	sp.Add(pkg, srcDir)

	if err := idl.EnsureDir(outDir); err != nil {
		log.Print(err)
		return exitUnexpected
	}

	ctx := spec.NewContext()
	loader := idl.NewLoader(ctx, sp)
	importer := gen.PackageImporter(func(p string) string { return p })

	// A failed type terminates only that type's generation; the driver
	// continues with the next file, accumulating the worst exit code.
	worst := exitOK
	accumulate := func(code int) {
		if code > worst {
			worst = code
		}
	}

	var generatedTypes []string
	for _, file := range files {
		shortName := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		switch filepath.Ext(file) {
		case ".msg":
			ms, err := loader.LoadMsg(pkg, shortName)
			if err != nil {
				log.Print(err)
				accumulate(exitSchema)
				continue
			}
			if err := writeMessage(ctx, ms, importer, outDir, shortName+"_msg.go"); err != nil {
				log.Print(err)
				accumulate(exitGenerate)
				continue
			}
			generatedTypes = append(generatedTypes, exportedTypeName(shortName))

		case ".srv":
			ss, err := loader.LoadSrv(pkg, shortName)
			if err != nil {
				log.Print(err)
				accumulate(exitSchema)
				continue
			}
			if err := writeMessage(ctx, ss.Request, importer, outDir, shortName+"_srv_request.go"); err != nil {
				log.Print(err)
				accumulate(exitGenerate)
				continue
			}
			if err := writeMessage(ctx, ss.Response, importer, outDir, shortName+"_srv_response.go"); err != nil {
				log.Print(err)
				accumulate(exitGenerate)
				continue
			}
			gf, err := gen.EmitService(ctx, ss, importer)
			if err != nil {
				log.Print(err)
				accumulate(exitGenerate)
				continue
			}
			if err := writeGeneratedFile(gf, outDir, shortName+"_srv.go"); err != nil {
				log.Print(err)
				accumulate(exitGenerate)
				continue
			}
			generatedTypes = append(generatedTypes, exportedTypeName(shortName))

		default:
			log.Printf("%s: unrecognized extension %q, expected .msg or .srv", file, filepath.Ext(file))
			accumulate(exitUnexpected)
			continue
		}
	}

	if initpy {
		data, err := pkgmarker.Emit(pkg, generatedTypes)
		if err != nil {
			log.Print(err)
			accumulate(exitGenerate)
			return worst
		}
		if err := os.WriteFile(filepath.Join(outDir, pkgmarker.FileName), data, 0o644); err != nil {
			log.Print(err)
			accumulate(exitUnexpected)
			return worst
		}
	}

	return worst
}

func writeMessage(ctx *spec.Context, ms *spec.MsgSpec, importer gen.PackageImporter, outDir, fileName string) error {
	gf, err := gen.EmitMessage(ctx, ms, importer)
	if err != nil {
		return err
	}
	return writeGeneratedFile(gf, outDir, fileName)
}

func writeGeneratedFile(gf *gen.GeneratedFile, outDir, fileName string) error {
	src, err := gf.Content()
	if err != nil {
		return fmt.Errorf("rendering %s: %w", fileName, err)
	}
	return os.WriteFile(filepath.Join(outDir, fileName), src, 0o644)
}

func exportedTypeName(shortName string) string {
	if shortName == "" {
		return shortName
	}
	return strings.ToUpper(shortName[:1]) + shortName[1:]
}
