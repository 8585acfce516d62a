package parser

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"pyrs/translator-go/pkg/ast"
)

// parseStatements lowers every statement under a module or block node.
func (ctx *parseContext) parseStatements(node *sitter.Node) ([]ast.Statement, error) {
	var body []ast.Statement
	for _, child := range namedChildren(node) {
		stmt, err := ctx.parseStatement(child)
		if err != nil {
			return nil, wrapParseError(child, err)
		}
		if stmt != nil {
			body = append(body, stmt)
		}
	}
	return body, nil
}

func (ctx *parseContext) parseBlockField(node *sitter.Node, field string) ([]ast.Statement, error) {
	block := node.ChildByFieldName(field)
	if block == nil {
		return nil, fmt.Errorf("parser: %s missing %s", node.Kind(), field)
	}
	return ctx.parseStatements(block)
}

func (ctx *parseContext) parseStatement(node *sitter.Node) (ast.Statement, error) {
	switch node.Kind() {
	case "expression_statement":
		return ctx.parseExpressionStatement(node)
	case "return_statement":
		var value ast.Expression
		if child := firstNamedChild(node); child != nil {
			expr, err := ctx.parseExpression(child)
			if err != nil {
				return nil, err
			}
			value = expr
		}
		stmt := ast.NewReturn(value)
		annotateSpan(stmt, node)
		return stmt, nil
	case "pass_statement":
		stmt := ast.NewPass()
		annotateSpan(stmt, node)
		return stmt, nil
	case "break_statement":
		stmt := ast.NewBreak()
		annotateSpan(stmt, node)
		return stmt, nil
	case "continue_statement":
		stmt := ast.NewContinue()
		annotateSpan(stmt, node)
		return stmt, nil
	case "function_definition":
		return ctx.parseFunctionDefinition(node, nil)
	case "class_definition":
		return ctx.parseClassDefinition(node, nil)
	case "decorated_definition":
		return ctx.parseDecoratedDefinition(node)
	case "if_statement":
		return ctx.parseIf(node)
	case "for_statement":
		return ctx.parseFor(node)
	case "try_statement":
		return ctx.parseTry(node)
	case "import_statement":
		return ctx.parseImport(node)
	case "import_from_statement", "future_import_statement":
		return ctx.parseImportFrom(node)
	}
	return ctx.unsupported(node), nil
}

func (ctx *parseContext) parseExpressionStatement(node *sitter.Node) (ast.Statement, error) {
	children := namedChildren(node)
	if len(children) != 1 {
		// `a, b` as a statement is a bare tuple.
		value := ast.NewUnsupported("Tuple", ctx.text(node))
		annotateSpan(value, node)
		stmt := ast.NewExprStmt(value)
		annotateSpan(stmt, node)
		return stmt, nil
	}
	child := children[0]
	switch child.Kind() {
	case "assignment":
		return ctx.parseAssignment(child)
	case "augmented_assignment":
		return ctx.parseAugmentedAssignment(child)
	}
	value, err := ctx.parseExpression(child)
	if err != nil {
		return nil, err
	}
	stmt := ast.NewExprStmt(value)
	annotateSpan(stmt, node)
	return stmt, nil
}

// parseAssignment flattens `a = b = value` into one Assign with both targets
// and turns `x: T = value` into an AnnAssign.
func (ctx *parseContext) parseAssignment(node *sitter.Node) (ast.Statement, error) {
	left := node.ChildByFieldName("left")
	if left == nil {
		return nil, fmt.Errorf("parser: assignment missing target")
	}
	target, err := ctx.parseExpression(left)
	if err != nil {
		return nil, err
	}

	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		annotation, err := ctx.parseExpression(typeNode)
		if err != nil {
			return nil, err
		}
		var value ast.Expression
		if right := node.ChildByFieldName("right"); right != nil {
			value, err = ctx.parseExpression(right)
			if err != nil {
				return nil, err
			}
		}
		stmt := ast.NewAnnAssign(target, annotation, value)
		annotateSpan(stmt, node)
		return stmt, nil
	}

	targets := []ast.Expression{target}
	right := node.ChildByFieldName("right")
	for right != nil && right.Kind() == "assignment" && right.ChildByFieldName("type") == nil {
		next := right.ChildByFieldName("left")
		if next == nil {
			return nil, fmt.Errorf("parser: assignment missing target")
		}
		expr, err := ctx.parseExpression(next)
		if err != nil {
			return nil, err
		}
		targets = append(targets, expr)
		right = right.ChildByFieldName("right")
	}
	if right == nil {
		return nil, fmt.Errorf("parser: assignment missing value")
	}
	value, err := ctx.parseExpression(right)
	if err != nil {
		return nil, err
	}
	stmt := ast.NewAssign(targets, value)
	annotateSpan(stmt, node)
	return stmt, nil
}

func (ctx *parseContext) parseAugmentedAssignment(node *sitter.Node) (ast.Statement, error) {
	left := node.ChildByFieldName("left")
	right := node.ChildByFieldName("right")
	opNode := node.ChildByFieldName("operator")
	if left == nil || right == nil || opNode == nil {
		return nil, fmt.Errorf("parser: incomplete augmented assignment")
	}
	op, ok := binaryOperators[strings.TrimSuffix(opNode.Kind(), "=")]
	if !ok {
		return nil, wrapParseError(opNode, fmt.Errorf("parser: unknown operator %q", opNode.Kind()))
	}
	target, err := ctx.parseExpression(left)
	if err != nil {
		return nil, err
	}
	value, err := ctx.parseExpression(right)
	if err != nil {
		return nil, err
	}
	stmt := ast.NewAugAssign(target, op, value)
	annotateSpan(stmt, node)
	return stmt, nil
}

func (ctx *parseContext) parseDecoratedDefinition(node *sitter.Node) (ast.Statement, error) {
	var decorators []ast.Expression
	for _, child := range namedChildren(node) {
		if child.Kind() != "decorator" {
			continue
		}
		inner := firstNamedChild(child)
		if inner == nil {
			continue
		}
		expr, err := ctx.parseExpression(inner)
		if err != nil {
			return nil, err
		}
		decorators = append(decorators, expr)
	}
	def := node.ChildByFieldName("definition")
	if def == nil {
		return nil, fmt.Errorf("parser: decorated definition missing definition")
	}
	switch def.Kind() {
	case "function_definition":
		return ctx.parseFunctionDefinition(def, decorators)
	case "class_definition":
		return ctx.parseClassDefinition(def, decorators)
	}
	return ctx.unsupported(def), nil
}

func (ctx *parseContext) parseFunctionDefinition(node *sitter.Node, decorators []ast.Expression) (ast.Statement, error) {
	if hasToken(node, "async") {
		return ctx.unsupported(node), nil
	}
	name := ctx.text(node.ChildByFieldName("name"))
	if name == "" {
		return nil, fmt.Errorf("parser: function definition missing name")
	}
	params, err := ctx.parseParameters(node.ChildByFieldName("parameters"))
	if err != nil {
		return nil, err
	}
	var returns ast.Expression
	if rt := node.ChildByFieldName("return_type"); rt != nil {
		returns, err = ctx.parseExpression(rt)
		if err != nil {
			return nil, err
		}
	}
	body, err := ctx.parseBlockField(node, "body")
	if err != nil {
		return nil, err
	}
	fn := ast.NewFunctionDef(name, params, returns, body, decorators)
	annotateSpan(fn, node)
	return fn, nil
}

// parseParameters lowers a parameter list. The bare `/` marker is dropped;
// the bare `*` marker survives as an Arg with Star set and no name.
func (ctx *parseContext) parseParameters(node *sitter.Node) ([]*ast.Arg, error) {
	if node == nil {
		return nil, nil
	}
	var params []*ast.Arg
	for _, child := range namedChildren(node) {
		arg, err := ctx.parseParameter(child)
		if err != nil {
			return nil, wrapParseError(child, err)
		}
		if arg == nil {
			continue
		}
		annotateSpan(arg, child)
		params = append(params, arg)
	}
	return params, nil
}

func (ctx *parseContext) parseParameter(node *sitter.Node) (*ast.Arg, error) {
	switch node.Kind() {
	case "identifier":
		return ast.NewArg(ctx.text(node), nil, nil), nil
	case "list_splat_pattern", "dictionary_splat_pattern":
		return ctx.splatParameter(node, nil), nil
	case "keyword_separator":
		arg := ast.NewArg("", nil, nil)
		arg.Star = "*"
		return arg, nil
	case "positional_separator":
		return nil, nil
	case "typed_parameter":
		annotation, err := ctx.parseExpression(node.ChildByFieldName("type"))
		if err != nil {
			return nil, err
		}
		inner := firstNamedChild(node)
		if inner == nil {
			return nil, fmt.Errorf("parser: typed parameter missing name")
		}
		if inner.Kind() == "list_splat_pattern" || inner.Kind() == "dictionary_splat_pattern" {
			return ctx.splatParameter(inner, annotation), nil
		}
		return ast.NewArg(ctx.text(inner), annotation, nil), nil
	case "default_parameter", "typed_default_parameter":
		name := ctx.text(node.ChildByFieldName("name"))
		var annotation ast.Expression
		if typeNode := node.ChildByFieldName("type"); typeNode != nil {
			expr, err := ctx.parseExpression(typeNode)
			if err != nil {
				return nil, err
			}
			annotation = expr
		}
		def, err := ctx.parseExpression(node.ChildByFieldName("value"))
		if err != nil {
			return nil, err
		}
		return ast.NewArg(name, annotation, def), nil
	}
	return nil, fmt.Errorf("parser: unsupported parameter %q", node.Kind())
}

func (ctx *parseContext) splatParameter(node *sitter.Node, annotation ast.Expression) *ast.Arg {
	arg := ast.NewArg(ctx.text(firstNamedChild(node)), annotation, nil)
	arg.Star = "*"
	if node.Kind() == "dictionary_splat_pattern" {
		arg.Star = "**"
	}
	return arg
}

func (ctx *parseContext) parseClassDefinition(node *sitter.Node, decorators []ast.Expression) (ast.Statement, error) {
	name := ctx.text(node.ChildByFieldName("name"))
	if name == "" {
		return nil, fmt.Errorf("parser: class definition missing name")
	}
	var bases []ast.Expression
	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		args, keywords, err := ctx.parseArguments(supers)
		if err != nil {
			return nil, err
		}
		bases = args
		for _, kw := range keywords {
			bases = append(bases, kw.Value)
		}
	}
	body, err := ctx.parseBlockField(node, "body")
	if err != nil {
		return nil, err
	}
	class := ast.NewClassDef(name, bases, body, decorators)
	annotateSpan(class, node)
	return class, nil
}

// parseIf keeps Python's shape: each elif becomes a nested If that is the
// sole entry of the enclosing Orelse.
func (ctx *parseContext) parseIf(node *sitter.Node) (ast.Statement, error) {
	test, err := ctx.parseExpression(node.ChildByFieldName("condition"))
	if err != nil {
		return nil, err
	}
	body, err := ctx.parseBlockField(node, "consequence")
	if err != nil {
		return nil, err
	}
	root := ast.NewIf(test, body, nil)
	annotateSpan(root, node)

	tail := root
	for _, clause := range namedChildren(node) {
		switch clause.Kind() {
		case "elif_clause":
			cond, err := ctx.parseExpression(clause.ChildByFieldName("condition"))
			if err != nil {
				return nil, wrapParseError(clause, err)
			}
			clauseBody, err := ctx.parseBlockField(clause, "consequence")
			if err != nil {
				return nil, wrapParseError(clause, err)
			}
			next := ast.NewIf(cond, clauseBody, nil)
			annotateSpan(next, clause)
			tail.Orelse = []ast.Statement{next}
			tail = next
		case "else_clause":
			elseBody, err := ctx.parseBlockField(clause, "body")
			if err != nil {
				return nil, wrapParseError(clause, err)
			}
			tail.Orelse = elseBody
		}
	}
	return root, nil
}

func (ctx *parseContext) parseFor(node *sitter.Node) (ast.Statement, error) {
	if hasToken(node, "async") {
		return ctx.unsupported(node), nil
	}
	target, err := ctx.parseExpression(node.ChildByFieldName("left"))
	if err != nil {
		return nil, err
	}
	iter, err := ctx.parseExpression(node.ChildByFieldName("right"))
	if err != nil {
		return nil, err
	}
	body, err := ctx.parseBlockField(node, "body")
	if err != nil {
		return nil, err
	}
	var orelse []ast.Statement
	if alt := node.ChildByFieldName("alternative"); alt != nil {
		orelse, err = ctx.parseBlockField(alt, "body")
		if err != nil {
			return nil, wrapParseError(alt, err)
		}
	}
	loop := ast.NewFor(target, iter, body, orelse)
	annotateSpan(loop, node)
	return loop, nil
}

func (ctx *parseContext) parseTry(node *sitter.Node) (ast.Statement, error) {
	for _, clause := range namedChildren(node) {
		if clause.Kind() == "except_group_clause" {
			return ctx.unsupported(node), nil
		}
	}
	body, err := ctx.parseBlockField(node, "body")
	if err != nil {
		return nil, err
	}
	var (
		handlers []*ast.ExceptHandler
		orelse   []ast.Statement
		final    []ast.Statement
	)
	for _, clause := range namedChildren(node) {
		switch clause.Kind() {
		case "except_clause":
			handler, err := ctx.parseExceptClause(clause)
			if err != nil {
				return nil, wrapParseError(clause, err)
			}
			handlers = append(handlers, handler)
		case "else_clause":
			orelse, err = ctx.parseBlockField(clause, "body")
			if err != nil {
				return nil, wrapParseError(clause, err)
			}
		case "finally_clause":
			block := firstBlock(clause)
			if block == nil {
				return nil, wrapParseError(clause, fmt.Errorf("parser: finally clause missing body"))
			}
			final, err = ctx.parseStatements(block)
			if err != nil {
				return nil, err
			}
		}
	}
	stmt := ast.NewTry(body, handlers, orelse, final)
	annotateSpan(stmt, node)
	return stmt, nil
}

// parseExceptClause reads `except [type [as name]]:`. The grammar does not
// name these children consistently across releases, so they are taken by
// position: expressions first, the block last.
func (ctx *parseContext) parseExceptClause(node *sitter.Node) (*ast.ExceptHandler, error) {
	var (
		exprs []*sitter.Node
		block *sitter.Node
	)
	for _, child := range namedChildren(node) {
		if child.Kind() == "block" {
			block = child
			continue
		}
		exprs = append(exprs, child)
	}
	if block == nil {
		return nil, fmt.Errorf("parser: except clause missing body")
	}
	var (
		typ  ast.Expression
		name string
	)
	if len(exprs) > 0 {
		first := exprs[0]
		// Some grammar releases wrap `T as name` in one as_pattern node.
		if first.Kind() == "as_pattern" {
			if alias := first.ChildByFieldName("alias"); alias != nil {
				name = ctx.text(alias)
			}
			if inner := firstNamedChild(first); inner != nil {
				first = inner
			}
		}
		expr, err := ctx.parseExpression(first)
		if err != nil {
			return nil, err
		}
		typ = expr
	}
	if len(exprs) > 1 && name == "" {
		name = ctx.text(exprs[1])
	}
	body, err := ctx.parseStatements(block)
	if err != nil {
		return nil, err
	}
	handler := ast.NewExceptHandler(typ, name, body)
	annotateSpan(handler, node)
	return handler, nil
}

func firstBlock(node *sitter.Node) *sitter.Node {
	for _, child := range namedChildren(node) {
		if child.Kind() == "block" {
			return child
		}
	}
	return nil
}

func (ctx *parseContext) parseImport(node *sitter.Node) (ast.Statement, error) {
	var names []*ast.Alias
	for _, child := range namedChildren(node) {
		alias := ctx.parseAlias(child)
		if alias != nil {
			names = append(names, alias)
		}
	}
	stmt := ast.NewImport(names)
	annotateSpan(stmt, node)
	return stmt, nil
}

func (ctx *parseContext) parseImportFrom(node *sitter.Node) (ast.Statement, error) {
	module := "__future__"
	level := 0
	moduleNode := node.ChildByFieldName("module_name")
	if node.Kind() == "import_from_statement" {
		if moduleNode == nil {
			return nil, fmt.Errorf("parser: from-import missing module")
		}
		module = ""
		if moduleNode.Kind() == "relative_import" {
			for _, part := range namedChildren(moduleNode) {
				switch part.Kind() {
				case "import_prefix":
					level = strings.Count(ctx.text(part), ".")
				case "dotted_name":
					module = ctx.text(part)
				}
			}
		} else {
			module = ctx.text(moduleNode)
		}
	}

	var names []*ast.Alias
	for _, child := range namedChildren(node) {
		if moduleNode != nil && child.StartByte() == moduleNode.StartByte() && child.EndByte() == moduleNode.EndByte() {
			continue
		}
		if child.Kind() == "wildcard_import" {
			alias := ast.NewAlias("*", "")
			annotateSpan(alias, child)
			names = append(names, alias)
			continue
		}
		if alias := ctx.parseAlias(child); alias != nil {
			names = append(names, alias)
		}
	}
	stmt := ast.NewImportFrom(module, names, level)
	annotateSpan(stmt, node)
	return stmt, nil
}

func (ctx *parseContext) parseAlias(node *sitter.Node) *ast.Alias {
	var alias *ast.Alias
	switch node.Kind() {
	case "dotted_name", "identifier":
		alias = ast.NewAlias(ctx.text(node), "")
	case "aliased_import":
		alias = ast.NewAlias(ctx.text(node.ChildByFieldName("name")), ctx.text(node.ChildByFieldName("alias")))
	default:
		return nil
	}
	annotateSpan(alias, node)
	return alias
}
