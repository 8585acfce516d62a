package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// SourceLocation captures a source span for parser diagnostics.
type SourceLocation struct {
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// ParseError includes a message plus a best-effort source location.
type ParseError struct {
	Message  string
	Location SourceLocation
}

func (e *ParseError) Error() string {
	if e.Location.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Location.Line, e.Location.Column)
}

func wrapParseError(node *sitter.Node, err error) error {
	if err == nil {
		return nil
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr
	}
	if node == nil {
		return err
	}
	return &ParseError{
		Message:  err.Error(),
		Location: locationForNode(node),
	}
}

// syntaxError reports the earliest missing token, or failing that the
// earliest ERROR node, in a tree that tree-sitter could only recover.
func syntaxError(root *sitter.Node, source []byte) *ParseError {
	if missing := firstNodeWhere(root, (*sitter.Node).IsMissing); missing != nil {
		return &ParseError{
			Message:  "parser: syntax error: expected " + describeKind(missing.Kind()),
			Location: locationForNode(missing),
		}
	}
	bad := firstNodeWhere(root, (*sitter.Node).IsError)
	if bad == nil {
		return &ParseError{Message: "parser: syntax error", Location: locationForNode(root)}
	}
	message := "parser: syntax error"
	if snippet := snippetFor(bad, source); snippet != "" {
		message = fmt.Sprintf("parser: syntax error near %q", snippet)
	}
	return &ParseError{Message: message, Location: locationForNode(bad)}
}

// emptyBlockError finds a compound statement whose block holds no
// statement. The grammar accepts `def f():` followed by an unindented line
// and leaves the block empty; Python rejects it.
func emptyBlockError(root *sitter.Node) *ParseError {
	block := firstNodeWhere(root, func(node *sitter.Node) bool {
		return node.Kind() == "block" && len(namedChildren(node)) == 0
	})
	if block == nil {
		return nil
	}
	owner := block
	if parent := block.Parent(); parent != nil {
		owner = parent
	}
	return &ParseError{
		Message:  "parser: expected an indented block",
		Location: locationForNode(owner),
	}
}

// snippetFor returns the first line of the erroneous region, capped so
// messages stay on one terminal line.
func snippetFor(node *sitter.Node, source []byte) string {
	text := node.Utf8Text(source)
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	text = strings.TrimSpace(text)
	if len(text) > 40 {
		text = text[:40] + "..."
	}
	return text
}

func locationForNode(node *sitter.Node) SourceLocation {
	if node == nil {
		return SourceLocation{}
	}
	start := node.StartPosition()
	end := node.EndPosition()
	return SourceLocation{
		Line:      int(start.Row) + 1,
		Column:    int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndColumn: int(end.Column) + 1,
	}
}

// firstNodeWhere returns the node matching match that starts earliest in
// the source, searching the whole tree.
func firstNodeWhere(root *sitter.Node, match func(*sitter.Node) bool) *sitter.Node {
	var best *sitter.Node
	var visit func(node *sitter.Node)
	visit = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if match(node) && (best == nil || node.StartByte() < best.StartByte()) {
			best = node
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			visit(node.Child(i))
		}
	}
	visit(root)
	return best
}

// describeKind turns a grammar kind into message text: punctuation is
// quoted, rule names are spelled with spaces.
func describeKind(kind string) string {
	kind = strings.TrimSpace(kind)
	switch {
	case kind == "":
		return "token"
	case strings.IndexFunc(kind, isWordRune) < 0 || len(kind) == 1:
		return "'" + kind + "'"
	}
	return strings.ReplaceAll(kind, "_", " ")
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
