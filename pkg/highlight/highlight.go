// Package highlight decorates generated Rust text with ANSI colours for
// terminal display. It never changes the text between escape sequences.
package highlight

import (
	"fmt"
	"io"
	"strings"
)

const (
	colorGreen  = "\033[92m"
	colorYellow = "\033[93m"
	colorBlue   = "\033[94m"
	colorEnd    = "\033[0m"
)

var keywords = map[string]bool{
	"fn":     true,
	"struct": true,
	"impl":   true,
	"match":  true,
	"for":    true,
	"in":     true,
	"return": true,
	"let":    true,
}

var types = map[string]bool{
	"i32":    true,
	"f32":    true,
	"String": true,
	"bool":   true,
	"Result": true,
	"Option": true,
}

// Mode selects when colour is applied.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeAlways Mode = "always"
	ModeNever  Mode = "never"
)

// ParseMode accepts auto, always or never. The empty string means auto.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(ModeAuto):
		return ModeAuto, nil
	case string(ModeAlways):
		return ModeAlways, nil
	case string(ModeNever):
		return ModeNever, nil
	default:
		return "", fmt.Errorf("highlight: unknown color mode %q (want auto, always or never)", value)
	}
}

type fileDescriptor interface {
	Fd() uintptr
}

// Enabled reports whether output written to w should be coloured. In auto
// mode only terminals qualify.
func Enabled(mode Mode, w io.Writer) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}
	f, ok := w.(fileDescriptor)
	if !ok {
		return false
	}
	return isTerminal(f.Fd())
}

// Highlighter colours Rust fragments. The zero value is disabled and returns
// its input unchanged.
type Highlighter struct {
	enabled bool
}

func New(enabled bool) Highlighter {
	return Highlighter{enabled: enabled}
}

// ForWriter builds a Highlighter for output destined for w.
func ForWriter(mode Mode, w io.Writer) Highlighter {
	return New(Enabled(mode, w))
}

// Colorize decorates code line by line. Within a line, string literals are
// blue and the remaining text is split on single spaces; keywords and
// `println!` are green, primitive type names yellow.
func (h Highlighter) Colorize(code string) string {
	if !h.enabled || code == "" {
		return code
	}
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		lines[i] = colorizeLine(line)
	}
	return strings.Join(lines, "\n")
}

func colorizeLine(line string) string {
	var b strings.Builder
	rest := line
	for rest != "" {
		start := strings.IndexByte(rest, '"')
		if start < 0 {
			b.WriteString(colorizeWords(rest))
			break
		}
		b.WriteString(colorizeWords(rest[:start]))
		end := closingQuote(rest, start)
		b.WriteString(colorBlue)
		b.WriteString(rest[start:end])
		b.WriteString(colorEnd)
		rest = rest[end:]
	}
	return b.String()
}

// closingQuote returns the index just past the literal opened at start, or
// len(s) when the literal is not closed on this line.
func closingQuote(s string, start int) int {
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(s)
}

func colorizeWords(segment string) string {
	words := strings.Split(segment, " ")
	for i, word := range words {
		words[i] = colorizeWord(word)
	}
	return strings.Join(words, " ")
}

// colorizeWord colours the identifier runs of one word so that `i32,` and
// `Result<(),` are recognised along with bare words.
func colorizeWord(word string) string {
	if word == "" {
		return word
	}
	var b strings.Builder
	for i := 0; i < len(word); {
		if !isIdentByte(word[i]) {
			b.WriteByte(word[i])
			i++
			continue
		}
		j := i
		for j < len(word) && isIdentByte(word[j]) {
			j++
		}
		ident := word[i:j]
		switch {
		case ident == "println" && j < len(word) && word[j] == '!':
			b.WriteString(colorGreen + "println!" + colorEnd)
			j++
		case keywords[ident]:
			b.WriteString(colorGreen + ident + colorEnd)
		case types[ident]:
			b.WriteString(colorYellow + ident + colorEnd)
		default:
			b.WriteString(ident)
		}
		i = j
	}
	return b.String()
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// Strip removes the colour sequences Colorize adds.
func Strip(text string) string {
	return stripper.Replace(text)
}

var stripper = strings.NewReplacer(colorGreen, "", colorYellow, "", colorBlue, "", colorEnd, "")
