package main

import (
	"context"
	"fmt"
	"io"

	"pyrs/translator-go/pkg/driver"
	"pyrs/translator-go/pkg/source"
)

func runTranslate(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("translate", stderr)
	var flags commonFlags
	flags.register(fs)
	gitURL := fs.String("git", "", "git repository to read files from")
	gitRev := fs.String("rev", "", "git revision (commit, tag or branch)")
	jobs := fs.Int("j", 0, "concurrent translations (0 uses the project file or one per CPU)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintln(stderr, "pyrs translate: at least one source file is required")
		return 2
	}
	if *gitRev != "" && *gitURL == "" {
		fmt.Fprintln(stderr, "pyrs translate: -rev requires -git")
		return 2
	}
	if *jobs < 0 {
		fmt.Fprintf(stderr, "pyrs translate: -j must not be negative, got %d\n", *jobs)
		return 2
	}

	st, cleanup, err := resolveSettings(&flags, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "pyrs: %v\n", err)
		return 2
	}
	defer cleanup()
	if *jobs > 0 {
		st.options.Jobs = *jobs
	}

	var fetcher source.Fetcher = source.FileFetcher{}
	if *gitURL != "" {
		gf := source.NewGitFetcher(*gitURL, *gitRev, "")
		defer gf.Close()
		fetcher = gf
	}

	pipeline := driver.NewPipeline(fetcher, st.options)
	outputs, err := pipeline.TranslateFiles(context.Background(), paths)
	if err != nil {
		fmt.Fprintf(stderr, "pyrs: %v\n", err)
	}
	writeOutputs(stdout, outputs, st.banner)
	if err := writeReport(stderr, st.report, outputs); err != nil {
		fmt.Fprintf(stderr, "pyrs: %v\n", err)
	}
	return 0
}

// writeOutputs prints one banner followed by each translation. With more
// than one file every translation is headed by a comment naming its source.
func writeOutputs(w io.Writer, outputs []*driver.Output, banner bool) {
	if banner {
		writeBanner(w)
	}
	for i, out := range outputs {
		if out == nil {
			continue
		}
		if len(outputs) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "// %s\n", out.Name)
		}
		fmt.Fprintln(w, outputText(out))
	}
}
