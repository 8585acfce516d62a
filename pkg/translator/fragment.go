package translator

import "strings"

const indentUnit = "    "

const fallbackPrefix = "/* unable to translate the segment. ("

// fallbackText is the inline marker left in the output for anything that
// could not be translated.
func fallbackText(label string) string {
	return fallbackPrefix + label + ") */"
}

// IsFallback reports whether fragment is exactly one inline fallback marker.
func IsFallback(fragment string) bool {
	return strings.HasPrefix(fragment, fallbackPrefix) && strings.HasSuffix(fragment, ") */") &&
		strings.Count(fragment, "/*") == 1
}

// fragment accumulates Rust source lines at a tracked depth. Every open has
// to be paired with a close; depth never goes below zero.
type fragment struct {
	lines []string
	depth int
}

func (f *fragment) line(text string) {
	for _, part := range strings.Split(text, "\n") {
		if part == "" {
			f.lines = append(f.lines, "")
			continue
		}
		f.lines = append(f.lines, strings.Repeat(indentUnit, f.depth)+part)
	}
}

func (f *fragment) each(texts []string) {
	for _, text := range texts {
		f.line(text)
	}
}

func (f *fragment) open(header string) {
	if header == "" {
		f.line("{")
	} else {
		f.line(header + " {")
	}
	f.depth++
}

// reopen closes the current block and opens another on the same line, as in
// `})() {`.
func (f *fragment) reopen(text string) {
	if f.depth > 0 {
		f.depth--
	}
	f.line(text)
	f.depth++
}

func (f *fragment) close(suffix string) {
	if f.depth > 0 {
		f.depth--
	}
	f.line("}" + suffix)
}

// blank adds an empty separator line.
func (f *fragment) blank() {
	f.lines = append(f.lines, "")
}

func (f *fragment) String() string {
	return strings.Join(f.lines, "\n")
}

// block renders `header {`, the body lines indented one level, and `}`.
func block(header string, body []string) string {
	var f fragment
	f.open(header)
	f.each(body)
	f.close("")
	return f.String()
}
