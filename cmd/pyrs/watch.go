package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"pyrs/translator-go/pkg/driver"
	"pyrs/translator-go/pkg/source"
)

func runWatch(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("watch", stderr)
	var flags commonFlags
	flags.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "pyrs watch: exactly one source file is required")
		return 2
	}
	path := fs.Arg(0)

	st, cleanup, err := resolveSettings(&flags, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "pyrs: %v\n", err)
		return 2
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pipeline := driver.NewPipeline(source.FileFetcher{}, st.options)
	err = pipeline.Watch(ctx, path, func(out *driver.Output) {
		writeOutputs(stdout, []*driver.Output{out}, st.banner)
		if err := writeReport(stderr, st.report, []*driver.Output{out}); err != nil {
			fmt.Fprintf(stderr, "pyrs: %v\n", err)
		}
	})
	if err != nil {
		fmt.Fprintf(stderr, "pyrs: %v\n", err)
		return 1
	}
	return 0
}
