package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"pyrs/translator-go/pkg/ast"
)

var binaryOperators = map[string]ast.Operator{
	"+":  ast.OpAdd,
	"-":  ast.OpSub,
	"*":  ast.OpMult,
	"/":  ast.OpDiv,
	"%":  ast.OpMod,
	"**": ast.OpPow,
	"//": ast.OpFloorDiv,
	"@":  ast.OpMatMult,
	"<<": ast.OpLShift,
	">>": ast.OpRShift,
	"|":  ast.OpBitOr,
	"^":  ast.OpBitXor,
	"&":  ast.OpBitAnd,
}

var comparisonOperators = map[string]ast.CmpOp{
	"==":     ast.CmpEq,
	"!=":     ast.CmpNotEq,
	"<>":     ast.CmpNotEq,
	"<":      ast.CmpLt,
	"<=":     ast.CmpLtE,
	">":      ast.CmpGt,
	">=":     ast.CmpGtE,
	"is":     ast.CmpIs,
	"is not": ast.CmpIsNot,
	"in":     ast.CmpIn,
	"not in": ast.CmpNotIn,
}

func (ctx *parseContext) parseExpression(node *sitter.Node) (ast.Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing expression")
	}
	var (
		expr ast.Expression
		err  error
	)
	switch node.Kind() {
	case "identifier":
		expr = ast.NewName(ctx.text(node))
	case "integer":
		expr = ast.NewConstant(ast.ConstantInt, ctx.text(node))
	case "float":
		expr = ast.NewConstant(ast.ConstantFloat, ctx.text(node))
	case "true":
		expr = ast.Bool(true)
	case "false":
		expr = ast.Bool(false)
	case "none":
		expr = ast.None()
	case "ellipsis":
		expr = ast.NewConstant(ast.ConstantEllipsis, "...")
	case "string", "concatenated_string":
		expr = ctx.parseStringLiteral(node)
	case "parenthesized_expression", "type", "expression", "primary_expression":
		inner := firstNamedChild(node)
		if inner == nil {
			return nil, fmt.Errorf("parser: empty %s", node.Kind())
		}
		// Parentheses carry no meaning of their own; the inner node keeps
		// its own span.
		return ctx.parseExpression(inner)
	case "binary_operator":
		expr, err = ctx.parseBinaryOperator(node)
	case "comparison_operator":
		expr, err = ctx.parseComparison(node)
	case "call":
		expr, err = ctx.parseCall(node)
	case "attribute":
		expr, err = ctx.parseAttribute(node)
	default:
		return ctx.unsupported(node), nil
	}
	if err != nil {
		return nil, wrapParseError(node, err)
	}
	annotateSpan(expr, node)
	return expr, nil
}

func (ctx *parseContext) parseBinaryOperator(node *sitter.Node) (ast.Expression, error) {
	opNode := node.ChildByFieldName("operator")
	if opNode == nil {
		return nil, fmt.Errorf("parser: binary operator missing operator")
	}
	op, ok := binaryOperators[opNode.Kind()]
	if !ok {
		return nil, fmt.Errorf("parser: unknown operator %q", opNode.Kind())
	}
	left, err := ctx.parseExpression(node.ChildByFieldName("left"))
	if err != nil {
		return nil, err
	}
	right, err := ctx.parseExpression(node.ChildByFieldName("right"))
	if err != nil {
		return nil, err
	}
	return ast.NewBinOp(left, op, right), nil
}

// parseComparison reads a chain such as `a < b <= c`: named children are
// operands, anonymous children are operators.
func (ctx *parseContext) parseComparison(node *sitter.Node) (ast.Expression, error) {
	var (
		operands []ast.Expression
		ops      []ast.CmpOp
	)
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() == "comment" {
			continue
		}
		if !child.IsNamed() {
			kind := child.Kind()
			// `not in` and `is not` may arrive as two tokens.
			if next := node.Child(i + 1); next != nil && !next.IsNamed() {
				if joined := kind + " " + next.Kind(); joined == "not in" || joined == "is not" {
					kind = joined
					i++
				}
			}
			op, ok := comparisonOperators[kind]
			if !ok {
				return nil, fmt.Errorf("parser: unknown comparison %q", kind)
			}
			ops = append(ops, op)
			continue
		}
		expr, err := ctx.parseExpression(child)
		if err != nil {
			return nil, err
		}
		operands = append(operands, expr)
	}
	if len(operands) < 2 || len(ops) != len(operands)-1 {
		return nil, fmt.Errorf("parser: malformed comparison")
	}
	return ast.NewCompare(operands[0], ops, operands[1:]), nil
}

func (ctx *parseContext) parseCall(node *sitter.Node) (ast.Expression, error) {
	fn, err := ctx.parseExpression(node.ChildByFieldName("function"))
	if err != nil {
		return nil, err
	}
	argsNode := node.ChildByFieldName("arguments")
	if argsNode == nil {
		return ast.NewCall(fn, nil, nil), nil
	}
	if argsNode.Kind() == "generator_expression" {
		// f(x for x in xs): the generator is the only argument.
		return ast.NewCall(fn, []ast.Expression{ctx.unsupported(argsNode)}, nil), nil
	}
	args, keywords, err := ctx.parseArguments(argsNode)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(fn, args, keywords), nil
}

func (ctx *parseContext) parseArguments(node *sitter.Node) ([]ast.Expression, []*ast.Keyword, error) {
	var (
		args     []ast.Expression
		keywords []*ast.Keyword
	)
	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "keyword_argument":
			value, err := ctx.parseExpression(child.ChildByFieldName("value"))
			if err != nil {
				return nil, nil, wrapParseError(child, err)
			}
			kw := ast.NewKeyword(ctx.text(child.ChildByFieldName("name")), value)
			annotateSpan(kw, child)
			keywords = append(keywords, kw)
		case "dictionary_splat":
			value, err := ctx.parseExpression(firstNamedChild(child))
			if err != nil {
				return nil, nil, wrapParseError(child, err)
			}
			kw := ast.NewKeyword("", value)
			annotateSpan(kw, child)
			keywords = append(keywords, kw)
		default:
			expr, err := ctx.parseExpression(child)
			if err != nil {
				return nil, nil, err
			}
			args = append(args, expr)
		}
	}
	return args, keywords, nil
}

func (ctx *parseContext) parseAttribute(node *sitter.Node) (ast.Expression, error) {
	value, err := ctx.parseExpression(node.ChildByFieldName("object"))
	if err != nil {
		return nil, err
	}
	attr := ctx.text(node.ChildByFieldName("attribute"))
	if attr == "" {
		return nil, fmt.Errorf("parser: attribute missing name")
	}
	return ast.NewAttribute(value, attr), nil
}

func (ctx *parseContext) unsupported(node *sitter.Node) *ast.Unsupported {
	stub := ast.NewUnsupported(pythonKind(node), ctx.text(node))
	annotateSpan(stub, node)
	return stub
}
