// Command flutulus turns a declarative flute spec into an OpenSCAD
// scene description.
//
// Usage:
//
//	flutulus [flags] spec.json
//
// On success the scene text is written to standard output (or the -o
// file). Any construction or validation error aborts with a non-zero
// exit status before any scene text is written.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/MarkChuCarroll/flutulus"
	"github.com/MarkChuCarroll/flutulus/preview"
	"github.com/MarkChuCarroll/flutulus/profile"
)

func main() {
	output := flag.String("o", "", "Write the scene description to this file instead of standard output.")
	stlOut := flag.String("stl", "", "Also render a solid preview of the instrument to this STL file.")
	pngOut := flag.String("png", "", "Render a shaded PNG snapshot of the preview. Requires -stl.")
	profileOut := flag.String("profile", "", "Save a bore/body diameter profile plot to this file (.png, .svg or .pdf).")
	cells := flag.Int("cells", preview.DefaultMeshCells, "Marching cubes resolution for the STL preview.")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] spec.json\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *pngOut != "" && *stlOut == "" {
		fatal(fmt.Errorf("-png requires -stl"))
	}

	spec, err := flutulus.LoadSpec(flag.Arg(0))
	if err != nil {
		fatal(err)
	}
	tree, err := flutulus.Build(spec)
	if err != nil {
		fatal(err)
	}

	// Render to a buffer first so a failure cannot leave partial
	// scene text behind.
	var buf bytes.Buffer
	if err := tree.Render(&buf); err != nil {
		fatal(err)
	}
	if *output != "" {
		err = os.WriteFile(*output, buf.Bytes(), 0o644)
	} else {
		_, err = os.Stdout.Write(buf.Bytes())
	}
	if err != nil {
		fatal(err)
	}

	if *stlOut != "" {
		if err := preview.ToSTL(spec, *stlOut, *cells); err != nil {
			fatal(err)
		}
	}
	if *pngOut != "" {
		if err := preview.SavePNG(*stlOut, *pngOut, preview.DefaultView()); err != nil {
			fatal(err)
		}
	}
	if *profileOut != "" {
		if err := profile.Save(spec, *profileOut); err != nil {
			fatal(err)
		}
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "flutulus: %v\n", err)
	os.Exit(1)
}
