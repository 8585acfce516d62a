package translator

import (
	"fmt"
	"strings"
	"unicode"

	"pyrs/translator-go/pkg/ast"
)

var binarySymbols = map[ast.Operator]string{
	ast.OpAdd:  "+",
	ast.OpSub:  "-",
	ast.OpMult: "*",
	ast.OpDiv:  "/",
}

func binaryPrecedence(op ast.Operator) int {
	switch op {
	case ast.OpMult, ast.OpDiv:
		return 2
	case ast.OpAdd, ast.OpSub:
		return 1
	}
	return 0
}

func (s *Session) operatorSymbol(op ast.Operator, span ast.Span) (string, error) {
	sym, ok := binarySymbols[op]
	if !ok {
		return "", &OperatorError{Op: op, Span: span}
	}
	return sym, nil
}

func (s *Session) binOp(expr *ast.BinOp) (string, error) {
	sym, err := s.operatorSymbol(expr.Op, expr.Span())
	if err != nil {
		return "", err
	}
	prec := binaryPrecedence(expr.Op)
	left, err := s.operand(expr.Left, func(child int) bool { return child < prec })
	if err != nil {
		return "", err
	}
	// Both operators here are left-associative, so an equal-precedence right
	// operand keeps its grouping: a - (b - c).
	right, err := s.operand(expr.Right, func(child int) bool { return child <= prec })
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s %s", left, sym, right), nil
}

func (s *Session) operand(expr ast.Expression, needsParens func(int) bool) (string, error) {
	text, err := s.translate(expr)
	if err != nil {
		return "", err
	}
	if inner, ok := expr.(*ast.BinOp); ok && needsParens(binaryPrecedence(inner.Op)) {
		return "(" + text + ")", nil
	}
	return text, nil
}

func (s *Session) attribute(expr *ast.Attribute) (string, error) {
	value, err := s.translate(expr.Value)
	if err != nil {
		return "", err
	}
	return value + "." + expr.Attr, nil
}

func (s *Session) constant(c *ast.Constant) string {
	switch c.Kind {
	case ast.ConstantString:
		return rustQuote(c.Value)
	case ast.ConstantBytes:
		return "b" + rustByteQuote(c.Value)
	case ast.ConstantBool:
		if c.Value == "True" {
			return "true"
		}
		return "false"
	case ast.ConstantNone:
		return "None"
	case ast.ConstantInt, ast.ConstantFloat:
		if strings.HasSuffix(c.Value, "j") || strings.HasSuffix(c.Value, "J") {
			return s.unsupported("complex", c.Value, c.Span())
		}
		return numericLiteral(c.Value)
	}
	return s.unsupported(string(c.Kind), "", c.Span())
}

// numericLiteral keeps the source spelling except where Rust rejects it:
// upper-case radix prefixes and a bare leading dot.
func numericLiteral(text string) string {
	if len(text) > 1 && text[0] == '0' {
		switch text[1] {
		case 'X', 'O', 'B':
			return "0" + strings.ToLower(text[1:2]) + text[2:]
		}
	}
	if strings.HasPrefix(text, ".") {
		return "0" + text
	}
	return text
}

func rustQuote(value string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range value {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if unicode.IsControl(r) {
				fmt.Fprintf(&b, `\u{%x}`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// rustByteQuote quotes a byte string; Rust byte literals only admit ASCII.
func rustByteQuote(value string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == '"':
			b.WriteString(`\"`)
		case c == '\\':
			b.WriteString(`\\`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&b, `\x%02x`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
