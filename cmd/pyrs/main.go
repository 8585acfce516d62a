package main

import (
	"fmt"
	"io"
	"os"

	"pyrs/translator-go/pkg/config"
)

const cliToolName = "pyrs"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches a subcommand. Translation and parse failures are printed
// and still exit 0; usage and configuration errors exit 2.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}
	switch args[0] {
	case "--help", "-h", "help":
		printUsage(stdout)
		return 0
	case "--version", "-V", "version":
		fmt.Fprintf(stdout, "%s %s\n", cliToolName, config.ToolVersion)
		return 0
	case "translate":
		return runTranslate(args[1:], stdout, stderr)
	case "watch":
		return runWatch(args[1:], stdout, stderr)
	case "repl":
		return runRepl(args[1:], stdout, stderr)
	default:
		if looksLikeSourcePath(args[0]) {
			return runTranslate(args, stdout, stderr)
		}
		fmt.Fprintf(stderr, "%s: unknown command %q\n", cliToolName, args[0])
		printUsage(stderr)
		return 2
	}
}
