package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  pyrs translate [flags] <file.py>...")
	fmt.Fprintln(w, "  pyrs <file.py>...")
	fmt.Fprintln(w, "  pyrs watch [flags] <file.py>")
	fmt.Fprintln(w, "  pyrs repl [flags]")
	fmt.Fprintln(w, "  pyrs version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -config path          project file (default: pyrs.yml found from the working directory)")
	fmt.Fprintln(w, "  -color mode           auto, always or never")
	fmt.Fprintln(w, "  -report format        text or yaml; written to stderr")
	fmt.Fprintln(w, "  -try mode             capture or duplicate")
	fmt.Fprintln(w, "  -handlers policy      first or reject")
	fmt.Fprintln(w, "  -git url -rev rev     read files from a git repository (translate only)")
	fmt.Fprintln(w, "  -j n                  concurrent translations (translate only)")
	fmt.Fprintln(w, "  -no-banner            omit the banner")
	fmt.Fprintln(w, "  -v                    debug logging")
}

func looksLikeSourcePath(arg string) bool {
	return strings.EqualFold(filepath.Ext(arg), ".py")
}
