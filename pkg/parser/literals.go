package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"pyrs/translator-go/pkg/ast"
)

// parseStringLiteral decodes a string or implicit concatenation into one
// Constant. f-strings and str/bytes mixtures become JoinedStr stubs.
func (ctx *parseContext) parseStringLiteral(node *sitter.Node) ast.Expression {
	parts := []*sitter.Node{node}
	if node.Kind() == "concatenated_string" {
		parts = namedChildren(node)
	}
	var (
		kind  ast.ConstantKind
		value strings.Builder
	)
	for idx, part := range parts {
		lit, ok := decodeStringLiteral(ctx.text(part))
		if !ok || (idx > 0 && lit.kind != kind) {
			return ast.NewUnsupported("JoinedStr", ctx.text(node))
		}
		kind = lit.kind
		value.WriteString(lit.value)
	}
	return ast.NewConstant(kind, value.String())
}

type stringLiteral struct {
	kind  ast.ConstantKind
	value string
}

// decodeStringLiteral handles the prefix, quoting and escapes of a single
// Python string token. It reports false for f-strings.
func decodeStringLiteral(text string) (stringLiteral, bool) {
	prefixEnd := strings.IndexAny(text, `"'`)
	if prefixEnd < 0 {
		return stringLiteral{}, false
	}
	prefix := strings.ToLower(text[:prefixEnd])
	if strings.Contains(prefix, "f") || strings.Contains(prefix, "t") {
		return stringLiteral{}, false
	}
	body := text[prefixEnd:]
	quote := body[:1]
	if strings.HasPrefix(body, strings.Repeat(quote, 3)) && len(body) >= 6 {
		quote = strings.Repeat(quote, 3)
	}
	if len(body) < 2*len(quote) || !strings.HasSuffix(body, quote) {
		return stringLiteral{}, false
	}
	body = body[len(quote) : len(body)-len(quote)]

	lit := stringLiteral{kind: ast.ConstantString}
	bytesMode := strings.Contains(prefix, "b")
	if bytesMode {
		lit.kind = ast.ConstantBytes
	}
	if strings.Contains(prefix, "r") {
		lit.value = body
		return lit, true
	}
	lit.value = unescapePython(body, bytesMode)
	return lit, true
}

func unescapePython(body string, bytesMode bool) string {
	if !strings.Contains(body, `\`) {
		return body
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch esc := body[i]; esc {
		case '\n':
			// Line continuation inside the literal.
		case '\\', '\'', '"':
			b.WriteByte(esc)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			end := i + 1
			for end < len(body) && end < i+3 && body[end] >= '0' && body[end] <= '7' {
				end++
			}
			n, _ := strconv.ParseUint(body[i:end], 8, 32)
			writeCode(&b, rune(n), bytesMode)
			i = end - 1
		case 'x':
			if n, ok := hexEscape(body, i+1, 2); ok {
				writeCode(&b, n, bytesMode)
				i += 2
				continue
			}
			b.WriteString(`\x`)
		case 'u', 'U':
			width := 4
			if esc == 'U' {
				width = 8
			}
			if n, ok := hexEscape(body, i+1, width); ok && !bytesMode && utf8.ValidRune(n) {
				b.WriteRune(n)
				i += width
				continue
			}
			b.WriteByte('\\')
			b.WriteByte(esc)
		default:
			// Unknown escapes keep their backslash, as in Python.
			b.WriteByte('\\')
			b.WriteByte(esc)
		}
	}
	return b.String()
}

func hexEscape(body string, start, width int) (rune, bool) {
	if start+width > len(body) {
		return 0, false
	}
	n, err := strconv.ParseUint(body[start:start+width], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(n), true
}

// writeCode writes an escaped code point: a raw byte in bytes mode, a rune
// otherwise.
func writeCode(b *strings.Builder, n rune, bytesMode bool) {
	if bytesMode {
		b.WriteByte(byte(n))
		return
	}
	b.WriteRune(n)
}
