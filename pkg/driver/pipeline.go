// Package driver runs the fetch, parse, translate and highlight pipeline for
// single files, batches and watched files.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"pyrs/translator-go/pkg/ast"
	"pyrs/translator-go/pkg/highlight"
	"pyrs/translator-go/pkg/logger"
	"pyrs/translator-go/pkg/parser"
	"pyrs/translator-go/pkg/source"
	"pyrs/translator-go/pkg/translator"
)

// ParseErrorText replaces the translation of a file that fails to parse.
const ParseErrorText = "Error parsing the source code."

// Status classifies an Output.
type Status string

const (
	StatusOK          Status = "ok"
	StatusParseError  Status = "parse_error"
	StatusFailed      Status = "failed"
	StatusFetchFailed Status = "fetch_failed"
)

type Options struct {
	Translator translator.Options
	Highlight  highlight.Highlighter
	// Jobs bounds concurrent translations in TranslateFiles; zero means
	// GOMAXPROCS.
	Jobs int
}

// Output is the result of running one file through the pipeline. Code holds
// the plain text to print: the translation, ParseErrorText, or empty when
// Err is set. Display is Code after highlighting.
type Output struct {
	Name        string
	Checksum    string
	Status      Status
	Code        string
	Display     string
	Err         error
	Unsupported []translator.Diagnostic
	Types       []string
}

// Pipeline is safe for concurrent use; each translation gets its own parser
// and translator session.
type Pipeline struct {
	fetcher source.Fetcher
	opts    Options
	log     *slog.Logger
}

func NewPipeline(fetcher source.Fetcher, opts Options) *Pipeline {
	if fetcher == nil {
		fetcher = source.FileFetcher{}
	}
	log := opts.Translator.Logger
	if log == nil {
		log = logger.With("component", "driver")
	}
	return &Pipeline{fetcher: fetcher, opts: opts, log: log}
}

// TranslateFile fetches path and translates it. Failures are reported on the
// Output rather than returned.
func (p *Pipeline) TranslateFile(ctx context.Context, path string) *Output {
	logger.LogFileProcessing(path)
	file, err := p.fetcher.Fetch(ctx, path)
	if err != nil {
		p.log.Warn("fetch failed", "file", path, "error", err)
		return &Output{Name: path, Status: StatusFetchFailed, Err: err}
	}
	out := p.TranslateSource(file.Name, file.Data)
	out.Checksum = file.Checksum
	return out
}

// TranslateSource parses and translates data with a fresh session.
func (p *Pipeline) TranslateSource(name string, data []byte) *Output {
	module, err := parser.ParseModule(data)
	if err != nil {
		p.logParseFailure(name, err)
		return p.decorate(&Output{Name: name, Status: StatusParseError, Code: ParseErrorText, Err: err})
	}
	logger.LogParsing(name, ast.CountNodes(module))
	return p.translateModule(name, translator.NewSession(p.opts.Translator), module)
}

func (p *Pipeline) translateModule(name string, session *translator.Session, module *ast.Module) *Output {
	result, err := session.TranslateModule(module)
	if err != nil {
		p.log.Warn("translation failed", "file", name, "error", err)
		return &Output{Name: name, Status: StatusFailed, Err: err}
	}
	logger.LogTranslation(name, len(result.Fragments), len(result.Unsupported))
	return p.decorate(&Output{
		Name:        name,
		Status:      StatusOK,
		Code:        result.Code,
		Unsupported: result.Unsupported,
		Types:       result.Types,
	})
}

func (p *Pipeline) decorate(out *Output) *Output {
	out.Display = p.opts.Highlight.Colorize(out.Code)
	return out
}

func (p *Pipeline) logParseFailure(name string, err error) {
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		logger.LogParseFailure(name, parseErr.Location.Line, parseErr.Message)
		return
	}
	logger.LogParseFailure(name, 0, err.Error())
}

// TranslateFiles translates paths concurrently, at most Jobs at a time. The
// outputs are in input order; a failure in one file does not affect the
// others. The error is non-nil only when ctx ends before all files finish.
func (p *Pipeline) TranslateFiles(ctx context.Context, paths []string) ([]*Output, error) {
	jobs := p.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	outputs := make([]*Output, len(paths))
	sem := make(chan struct{}, jobs)
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()
			if err := gctx.Err(); err != nil {
				return err
			}

			out := p.TranslateFile(gctx, path)
			mu.Lock()
			outputs[i] = out
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outputs, fmt.Errorf("driver: batch interrupted: %w", err)
	}
	return outputs, nil
}
