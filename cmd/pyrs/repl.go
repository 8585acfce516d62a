package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"pyrs/translator-go/pkg/driver"
	"pyrs/translator-go/pkg/source"
)

const (
	promptMain  = ">>> "
	promptCont  = "... "
	historyFile = ".pyrs_history"
)

type prompter interface {
	Prompt(prompt string) (string, error)
}

func runRepl(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("repl", stderr)
	var flags commonFlags
	flags.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "pyrs repl does not take arguments (received %s)\n", strings.Join(fs.Args(), " "))
		return 2
	}
	st, cleanup, err := resolveSettings(&flags, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "pyrs: %v\n", err)
		return 2
	}
	defer cleanup()

	session, err := driver.NewPipeline(source.FileFetcher{}, st.options).NewInteractive()
	if err != nil {
		fmt.Fprintf(stderr, "pyrs: %v\n", err)
		return 1
	}
	defer session.Close()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintf(stdout, "%s repl: enter Python, :types lists declared classes, :quit exits\n", cliToolName)
	replLoop(ln, session, stdout, func(entry string) {
		ln.AppendHistory(strings.ReplaceAll(entry, "\n", " "))
	})
	return 0
}

// replLoop reads snippets until EOF or :quit and prints each translation.
func replLoop(p prompter, session *driver.Interactive, stdout io.Writer, remember func(string)) {
	for {
		code, ok := readByParseProbe(p, session.Complete)
		if !ok {
			fmt.Fprintln(stdout)
			return
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return
			case ":types":
				fmt.Fprintln(stdout, strings.Join(session.Types(), ", "))
			default:
				fmt.Fprintln(stdout, "unknown command. Type :quit to exit.")
			}
			continue
		}
		fmt.Fprintln(stdout, outputText(session.Translate(code+"\n")))
		if remember != nil {
			remember(code)
		}
	}
}

// readByParseProbe gathers one snippet. A snippet that opens a block keeps
// reading until a blank line, like the Python prompt; otherwise input ends
// as soon as it parses or a blank line is entered.
func readByParseProbe(p prompter, complete func(string) bool) (string, bool) {
	var (
		b      strings.Builder
		inBody bool
	)
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := p.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if err != nil {
			// Ctrl-C abandons the current snippet.
			return "", true
		}
		blank := strings.TrimSpace(line) == ""
		if b.Len() == 0 && blank {
			return "", true
		}
		if blank {
			return b.String(), true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if strings.HasSuffix(strings.TrimSpace(line), ":") {
			inBody = true
		}
		if strings.HasPrefix(strings.TrimSpace(line), ":") && b.Len() == len(line) {
			return b.String(), true
		}
		if !inBody && complete(b.String()+"\n") {
			return b.String(), true
		}
	}
}
