package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"pyrs/translator-go/pkg/highlight"
	"pyrs/translator-go/pkg/logger"
	"pyrs/translator-go/pkg/parser"
	"pyrs/translator-go/pkg/source"
	"pyrs/translator-go/pkg/translator"
)

const sampleProgram = `def add(a: int, b: int) -> int:
    return a + b

if __name__ == "__main__":
    print(add(1, 2))
`

const sampleRust = "fn add(a: i32, b: i32) -> i32 {\n" +
	"    return a + b;\n" +
	"}\n" +
	"fn main() {\n" +
	"    println!(\"{}\", add(1, 2));\n" +
	"}"

func newTestPipeline(opts Options) *Pipeline {
	opts.Translator.Logger = logger.Discard()
	return NewPipeline(source.FileFetcher{}, opts)
}

func writeSource(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestTranslateSourceSampleProgram(t *testing.T) {
	out := newTestPipeline(Options{}).TranslateSource("sample.py", []byte(sampleProgram))
	if out.Status != StatusOK || out.Err != nil {
		t.Fatalf("unexpected status %s: %v", out.Status, out.Err)
	}
	if out.Code != sampleRust {
		t.Fatalf("code mismatch\n got: %q\nwant: %q", out.Code, sampleRust)
	}
	if out.Display != out.Code {
		t.Fatalf("disabled highlighter should leave display unchanged")
	}
}

func TestParseFailureSubstitutesFixedText(t *testing.T) {
	out := newTestPipeline(Options{}).TranslateSource("bad.py", []byte("def broken(:\n"))
	if out.Status != StatusParseError || out.Code != ParseErrorText {
		t.Fatalf("unexpected output %+v", out)
	}
	var parseErr *parser.ParseError
	if !errors.As(out.Err, &parseErr) {
		t.Fatalf("expected *parser.ParseError, got %T", out.Err)
	}
}

func TestMissingBodyIsParseFailure(t *testing.T) {
	p := newTestPipeline(Options{})
	for _, src := range []string{
		"def f():\nx = 1\n",
		"for i in range(3):\nprint(i)\n",
	} {
		out := p.TranslateSource("body.py", []byte(src))
		if out.Status != StatusParseError || out.Code != ParseErrorText {
			t.Fatalf("%q: unexpected output %+v", src, out)
		}
	}
}

func TestOperatorFailureIsReported(t *testing.T) {
	out := newTestPipeline(Options{}).TranslateSource("mod.py", []byte("x = a % b\n"))
	if out.Status != StatusFailed {
		t.Fatalf("status = %s, want %s", out.Status, StatusFailed)
	}
	if !errors.Is(out.Err, translator.ErrUnsupportedOperator) {
		t.Fatalf("expected ErrUnsupportedOperator, got %v", out.Err)
	}
	if out.Code != "" {
		t.Fatalf("failed output should carry no code, got %q", out.Code)
	}
}

func TestHighlightedDisplay(t *testing.T) {
	out := newTestPipeline(Options{Highlight: highlight.New(true)}).TranslateSource("sample.py", []byte(sampleProgram))
	if out.Code != sampleRust {
		t.Fatalf("plain code should not be decorated: %q", out.Code)
	}
	if out.Display == out.Code || highlight.Strip(out.Display) != out.Code {
		t.Fatalf("display should be the decorated code, got %q", out.Display)
	}
}

func TestTranslateFilesKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeSource(t, dir, "a.py", "x = 1\n"),
		writeSource(t, dir, "bad.py", "def (\n"),
		filepath.Join(dir, "missing.py"),
		writeSource(t, dir, "c.py", "class Box:\n    def __init__(self, w: int):\n        self.w = w\n\nb = Box(2)\n"),
	}
	outputs, err := newTestPipeline(Options{Jobs: 2}).TranslateFiles(context.Background(), paths)
	if err != nil {
		t.Fatalf("TranslateFiles: %v", err)
	}
	if len(outputs) != len(paths) {
		t.Fatalf("got %d outputs, want %d", len(outputs), len(paths))
	}
	wantStatus := []Status{StatusOK, StatusParseError, StatusFetchFailed, StatusOK}
	for i, out := range outputs {
		if out.Name != paths[i] {
			t.Fatalf("output %d name = %q, want %q", i, out.Name, paths[i])
		}
		if out.Status != wantStatus[i] {
			t.Fatalf("output %d status = %s, want %s", i, out.Status, wantStatus[i])
		}
	}
	if outputs[0].Code != "x = 1;" {
		t.Fatalf("unexpected first output %q", outputs[0].Code)
	}
	if !strings.HasSuffix(outputs[3].Code, "b = Box::new(2);") {
		t.Fatalf("expected constructor call, got %q", outputs[3].Code)
	}
	if outputs[0].Checksum == "" {
		t.Fatalf("expected checksum from fetcher")
	}
}

func TestTranslateFilesSessionsAreIndependent(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeSource(t, dir, "decl.py", "class Box:\n    pass\n"),
		writeSource(t, dir, "use.py", "b = Box()\n"),
	}
	outputs, err := newTestPipeline(Options{Jobs: 1}).TranslateFiles(context.Background(), paths)
	if err != nil {
		t.Fatalf("TranslateFiles: %v", err)
	}
	if outputs[1].Code != "b = Box();" {
		t.Fatalf("registry leaked between files: %q", outputs[1].Code)
	}
}

func TestTranslateFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()
	path := writeSource(t, dir, "a.py", "x = 1\n")
	if _, err := newTestPipeline(Options{Jobs: 1}).TranslateFiles(ctx, []string{path, path}); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

func TestInteractiveKeepsRegistry(t *testing.T) {
	in, err := newTestPipeline(Options{}).NewInteractive()
	if err != nil {
		t.Fatalf("NewInteractive: %v", err)
	}
	defer in.Close()

	if in.Complete("def f():\n") {
		t.Fatalf("unterminated block should not be complete")
	}
	if !in.Complete("class Point:\n    pass\n") {
		t.Fatalf("class should be complete")
	}
	in.Translate("class Point:\n    pass\n")
	out := in.Translate("p = Point()\n")
	if out.Code != "p = Point::new();" {
		t.Fatalf("expected constructor call, got %q", out.Code)
	}
	if types := in.Types(); len(types) != 1 || types[0] != "Point" {
		t.Fatalf("unexpected types %v", types)
	}
	if bad := in.Translate("def (\n"); bad.Code != ParseErrorText {
		t.Fatalf("expected parse error text, got %q", bad.Code)
	}
}

func TestReports(t *testing.T) {
	p := newTestPipeline(Options{})
	outputs := []*Output{
		p.TranslateSource("loops.py", []byte("while x:\n    pass\n")),
		p.TranslateSource("bad.py", []byte("def (\n")),
	}

	var text bytes.Buffer
	if err := WriteTextReport(&text, outputs); err != nil {
		t.Fatalf("WriteTextReport: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(text.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("unexpected text report %q", text.String())
	}
	if lines[0] != "loops.py:1:1: While" {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "bad.py: parse_error: ") {
		t.Fatalf("unexpected second line %q", lines[1])
	}

	var buf bytes.Buffer
	if err := WriteYAMLReport(&buf, outputs); err != nil {
		t.Fatalf("WriteYAMLReport: %v", err)
	}
	var decoded struct {
		Files []struct {
			Name        string `yaml:"name"`
			Status      string `yaml:"status"`
			Error       string `yaml:"error"`
			Unsupported []struct {
				Kind string `yaml:"kind"`
			} `yaml:"unsupported"`
		} `yaml:"files"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(decoded.Files) != 2 || decoded.Files[0].Status != "ok" || decoded.Files[1].Status != "parse_error" {
		t.Fatalf("unexpected report %+v", decoded)
	}
	if len(decoded.Files[0].Unsupported) != 1 || decoded.Files[0].Unsupported[0].Kind != "While" {
		t.Fatalf("unexpected unsupported list %+v", decoded.Files[0].Unsupported)
	}
	if decoded.Files[1].Error == "" {
		t.Fatalf("expected error message for bad.py")
	}
}

func TestWatchRetranslatesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "live.py", "x = 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- newTestPipeline(Options{}).Watch(ctx, path, func(out *Output) {
			updates <- out.Code
		})
	}()

	waitFor := func(want string) {
		t.Helper()
		deadline := time.After(5 * time.Second)
		for {
			select {
			case got := <-updates:
				if got == want {
					return
				}
			case <-deadline:
				t.Fatalf("timed out waiting for %q", want)
			}
		}
	}
	waitFor("x = 1;")
	writeSource(t, dir, "other.py", "ignored = 0\n")
	writeSource(t, dir, "live.py", "x = 2\n")
	waitFor("x = 2;")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Watch did not stop after cancel")
	}
}
