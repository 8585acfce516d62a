package translator

import (
	"errors"
	"strings"
	"testing"

	"pyrs/translator-go/pkg/ast"
	"pyrs/translator-go/pkg/logger"
)

func newTestSession(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	return NewSession(opts)
}

func translateNode(t *testing.T, node ast.Node) string {
	t.Helper()
	out, err := newTestSession(Options{}).TranslateNode(node)
	if err != nil {
		t.Fatalf("TranslateNode: %v", err)
	}
	return out
}

func TestBinaryOperatorsMapToRustSymbols(t *testing.T) {
	cases := []struct {
		op   ast.Operator
		want string
	}{
		{ast.OpAdd, "a + b"},
		{ast.OpSub, "a - b"},
		{ast.OpMult, "a * b"},
		{ast.OpDiv, "a / b"},
	}
	for _, tc := range cases {
		got := translateNode(t, ast.Bin(ast.ID("a"), tc.op, ast.ID("b")))
		if got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.op, got, tc.want)
		}
	}
}

func TestBinaryOperandsKeepPythonGrouping(t *testing.T) {
	cases := []struct {
		expr ast.Expression
		want string
	}{
		{ast.Bin(ast.Bin(ast.ID("a"), ast.OpAdd, ast.ID("b")), ast.OpMult, ast.ID("c")), "(a + b) * c"},
		{ast.Bin(ast.ID("a"), ast.OpMult, ast.Bin(ast.ID("b"), ast.OpAdd, ast.ID("c"))), "a * (b + c)"},
		{ast.Bin(ast.Bin(ast.ID("a"), ast.OpSub, ast.ID("b")), ast.OpSub, ast.ID("c")), "a - b - c"},
		{ast.Bin(ast.ID("a"), ast.OpSub, ast.Bin(ast.ID("b"), ast.OpSub, ast.ID("c"))), "a - (b - c)"},
		{ast.Bin(ast.ID("a"), ast.OpAdd, ast.Bin(ast.ID("b"), ast.OpMult, ast.ID("c"))), "a + b * c"},
	}
	for _, tc := range cases {
		if got := translateNode(t, tc.expr); got != tc.want {
			t.Fatalf("got %q, want %q", got, tc.want)
		}
	}
}

func TestUnmappedOperatorIsHardFailure(t *testing.T) {
	for _, op := range []ast.Operator{ast.OpMod, ast.OpPow, ast.OpFloorDiv, ast.OpBitAnd} {
		expr := ast.Bin(ast.ID("a"), op, ast.ID("b"))
		ast.SetSpan(expr, ast.Span{Start: ast.Position{Line: 2, Column: 4}})
		_, err := newTestSession(Options{}).TranslateNode(expr)
		if !errors.Is(err, ErrUnsupportedOperator) {
			t.Fatalf("%s: expected ErrUnsupportedOperator, got %v", op, err)
		}
		var opErr *OperatorError
		if !errors.As(err, &opErr) || opErr.Op != op {
			t.Fatalf("%s: expected OperatorError naming the operator, got %#v", op, err)
		}
		if !strings.Contains(err.Error(), "2:4") {
			t.Fatalf("error should carry location: %q", err.Error())
		}
	}
}

func TestUnmappedOperatorAbortsModule(t *testing.T) {
	module := ast.Mod(
		ast.Assn(ast.ID("x"), ast.Int("1")),
		ast.ExprS(ast.CallName("print", ast.Bin(ast.ID("x"), ast.OpMod, ast.Int("2")))),
	)
	res, err := Translate(module, Options{Logger: logger.Discard()})
	if err == nil || res != nil {
		t.Fatalf("expected hard failure, got %v / %v", res, err)
	}
	_, err = newTestSession(Options{}).TranslateNode(ast.AugAssn(ast.ID("x"), ast.OpMod, ast.Int("2")))
	if !errors.Is(err, ErrUnsupportedOperator) {
		t.Fatalf("augmented assignment should share the operator table, got %v", err)
	}
}

func TestAssignments(t *testing.T) {
	cases := []struct {
		name string
		node ast.Statement
		want string
	}{
		{"single", ast.Assn(ast.ID("x"), ast.Int("5")), "x = 5;"},
		{"chain", ast.AssnMulti([]ast.Expression{ast.ID("a"), ast.ID("b")}, ast.Int("0")), "a b = 0;"},
		{"attribute", ast.Assn(ast.Member(ast.ID("self"), "name"), ast.ID("name")), "self.name = name;"},
		{"annotated", ast.Ann(ast.ID("count"), ast.ID("int"), ast.Int("0")), "let count: i32 = 0;"},
		{"annotated without value", ast.Ann(ast.ID("label"), ast.ID("str"), nil), "let label: String;"},
		{"annotated unknown", ast.Ann(ast.ID("xs"), ast.ID("list"), ast.ID("ys")), "let xs: unknown_type = ys;"},
		{"annotated attribute", ast.Ann(ast.Member(ast.ID("self"), "x"), ast.ID("int"), ast.Int("1")), "self.x = 1;"},
		{"augmented", ast.AugAssn(ast.ID("total"), ast.OpAdd, ast.ID("n")), "total += n;"},
	}
	for _, tc := range cases {
		if got := translateNode(t, tc.node); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestConstants(t *testing.T) {
	cases := []struct {
		node *ast.Constant
		want string
	}{
		{ast.Int("42"), "42"},
		{ast.Int("1_000"), "1_000"},
		{ast.Int("0XFF"), "0xFF"},
		{ast.Flt("3.14"), "3.14"},
		{ast.Flt(".5"), "0.5"},
		{ast.Str("hi"), `"hi"`},
		{ast.Str("say \"hi\"\n"), `"say \"hi\"\n"`},
		{ast.Bool(true), "true"},
		{ast.Bool(false), "false"},
		{ast.None(), "None"},
		{ast.NewConstant(ast.ConstantBytes, "ab\x00\xff"), `b"ab\x00\xff"`},
		{ast.NewConstant(ast.ConstantEllipsis, "..."), "/* unable to translate the segment. (Ellipsis) */"},
		{ast.Int("3j"), "/* unable to translate the segment. (complex) */"},
	}
	for _, tc := range cases {
		if got := translateNode(t, tc.node); got != tc.want {
			t.Fatalf("%s %q: got %q, want %q", tc.node.Kind, tc.node.Value, got, tc.want)
		}
	}
}

func TestFunctionDefinition(t *testing.T) {
	fn := ast.Fn("f", []*ast.Arg{ast.Param("x", ast.ID("int"))}, ast.ID("int"), ast.Ret(ast.ID("x")))
	want := "fn f(x: i32) -> i32 {\n    return x;\n}"
	if got := translateNode(t, fn); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFunctionParameterTypes(t *testing.T) {
	fn := ast.Fn(
		"mix",
		[]*ast.Arg{
			ast.Param("a", ast.ID("float")),
			ast.Param("b", ast.ID("bool")),
			ast.Param("c", nil),
			ast.ParamDefault("d", nil, ast.Str("x")),
			ast.ParamDefault("e", nil, ast.None()),
			ast.Param("f", ast.Str("int")),
			ast.StarParam("rest", "*"),
		},
		nil,
		ast.NewPass(),
	)
	s := newTestSession(Options{})
	got, err := s.TranslateNode(fn)
	if err != nil {
		t.Fatalf("TranslateNode: %v", err)
	}
	want := "fn mix(a: f32, b: bool, c: unknown_type, d: String, e: Option<unknown_type>, f: i32, " +
		"/* unable to translate the segment. (vararg) */) -> unknown_type {\n    // pass\n}"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	diags := s.Diagnostics()
	if len(diags) != 1 || diags[0].Kind != "vararg" || diags[0].Detail != "*rest" {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
}

func TestNestedBodiesIndentEachLevel(t *testing.T) {
	fn := ast.Fn("outer", nil, nil,
		ast.ForS(ast.ID("i"), ast.CallName("range", ast.Int("3")),
			ast.ExprS(ast.CallName("print", ast.ID("i"))),
		),
	)
	want := "fn outer() -> unknown_type {\n" +
		"    for i in 0..3 {\n" +
		"        println!(\"{}\", i);\n" +
		"    }\n" +
		"}"
	if got := translateNode(t, fn); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMainGuard(t *testing.T) {
	guard := ast.MainGuard(ast.ExprS(ast.CallName("main")))
	want := "fn main() {\n    main();\n}"
	if got := translateNode(t, guard); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	s := newTestSession(Options{})
	withElse := ast.IfS(guard.Test, guard.Body, ast.NewPass())
	if _, err := s.TranslateNode(withElse); err != nil {
		t.Fatalf("TranslateNode: %v", err)
	}
	if diags := s.Diagnostics(); len(diags) != 1 || diags[0].Kind != "If" {
		t.Fatalf("expected dropped else diagnostic, got %v", diags)
	}
}

func TestOtherConditionalsFallBack(t *testing.T) {
	cases := []ast.Statement{
		ast.IfS(ast.ID("ready"), []ast.Statement{ast.NewPass()}),
		ast.IfS(ast.Cmp(ast.ID("__name__"), ast.CmpNotEq, ast.Str("__main__")), nil),
		ast.IfS(ast.Cmp(ast.Str("__main__"), ast.CmpEq, ast.ID("__name__")), nil),
		ast.IfS(ast.Cmp(ast.ID("__name__"), ast.CmpEq, ast.Str("main")), nil),
	}
	for _, stmt := range cases {
		if got := translateNode(t, stmt); got != "/* unable to translate the segment. (If) */" {
			t.Fatalf("got %q", got)
		}
	}
}

func TestReturn(t *testing.T) {
	if got := translateNode(t, ast.Ret(ast.Bin(ast.ID("a"), ast.OpAdd, ast.Int("1")))); got != "return a + 1;" {
		t.Fatalf("got %q", got)
	}
	if got := translateNode(t, ast.Ret(nil)); got != "return;" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintCall(t *testing.T) {
	got := translateNode(t, ast.CallName("print", ast.ID("a"), ast.ID("b")))
	want := `println!("{} {}", a, b)`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	format := got[strings.Index(got, `"`):strings.LastIndex(got, `"`)]
	if n := strings.Count(format, "{}"); n != 2 {
		t.Fatalf("placeholder count = %d, want 2", n)
	}
	if !strings.HasSuffix(got, ", a, b)") {
		t.Fatalf("arguments out of order: %q", got)
	}
	if got := translateNode(t, ast.ExprS(ast.CallName("print"))); got != "println!();" {
		t.Fatalf("empty print: got %q", got)
	}
	if got := translateNode(t, ast.ExprS(ast.CallName("print", ast.Str("hi")))); got != `println!("{}", "hi");` {
		t.Fatalf("string print: got %q", got)
	}
}

func TestRangeCalls(t *testing.T) {
	cases := []struct {
		args []ast.Expression
		want string
	}{
		{[]ast.Expression{ast.ID("n")}, "0..n"},
		{[]ast.Expression{ast.Int("2"), ast.Int("10")}, "2..10"},
		{nil, "/* unable to translate the segment. (range with 0 arguments) */"},
		{[]ast.Expression{ast.Int("0"), ast.Int("10"), ast.Int("2")}, "/* unable to translate the segment. (range with 3 arguments) */"},
	}
	for _, tc := range cases {
		if got := translateNode(t, ast.CallName("range", tc.args...)); got != tc.want {
			t.Fatalf("got %q, want %q", got, tc.want)
		}
	}
}

func TestPlainCallsAndKeywords(t *testing.T) {
	if got := translateNode(t, ast.CallExpr(ast.Member(ast.ID("obj"), "run"), ast.Int("1"))); got != "obj.run(1)" {
		t.Fatalf("got %q", got)
	}
	call := ast.NewCall(ast.ID("connect"), []ast.Expression{ast.ID("host")}, []*ast.Keyword{ast.Kw("port", ast.Int("80"))})
	s := newTestSession(Options{})
	got, err := s.TranslateNode(call)
	if err != nil {
		t.Fatalf("TranslateNode: %v", err)
	}
	if got != "connect(host, /* unable to translate the segment. (keyword) */)" {
		t.Fatalf("got %q", got)
	}
	if diags := s.Diagnostics(); len(diags) != 1 || diags[0].Detail != "port=" {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
}

func TestForLoopOverRange(t *testing.T) {
	loop := ast.ForS(ast.ID("i"), ast.CallName("range", ast.Int("0"), ast.Int("10")),
		ast.ExprS(ast.CallName("print", ast.ID("i"))))
	want := "for i in 0..10 {\n    println!(\"{}\", i);\n}"
	if got := translateNode(t, loop); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestForLoopFallbacks(t *testing.T) {
	cases := []ast.Statement{
		ast.ForS(ast.ID("x"), ast.ID("items")),
		ast.ForS(ast.ID("i"), ast.CallName("range", ast.Int("0"), ast.Int("10"), ast.Int("2"))),
		ast.ForS(ast.ID("i"), ast.CallName("enumerate", ast.ID("xs"))),
	}
	for _, stmt := range cases {
		if got := translateNode(t, stmt); got != "/* unable to translate the segment. (For) */" {
			t.Fatalf("got %q", got)
		}
	}
}

func personClass() *ast.ClassDef {
	return ast.Class("Point",
		ast.Fn("__init__",
			[]*ast.Arg{ast.Param("self", nil), ast.Param("name", ast.ID("str")), ast.Param("age", ast.ID("int"))},
			nil,
			ast.Assn(ast.Member(ast.ID("self"), "name"), ast.ID("name")),
			ast.Assn(ast.Member(ast.ID("self"), "age"), ast.ID("age")),
		),
	)
}

func TestClassDefinition(t *testing.T) {
	s := newTestSession(Options{})
	got, err := s.TranslateNode(personClass())
	if err != nil {
		t.Fatalf("TranslateNode: %v", err)
	}
	want := strings.Join([]string{
		"struct Point {",
		"    name: String,",
		"    age: i32,",
		"}",
		"",
		"impl Point {",
		"    fn new(name: String, age: i32) -> Point {",
		"        Point { name, age }",
		"    }",
		"}",
	}, "\n")
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
	if !s.IsRegisteredType("Point") {
		t.Fatalf("class should be registered")
	}
}

func TestClassWithoutConstructorAndMethods(t *testing.T) {
	class := ast.Class("Greeter",
		ast.ExprS(ast.Str("doc")),
		ast.Fn("greet", []*ast.Arg{ast.Param("self", nil), ast.Param("who", ast.ID("str"))}, nil,
			ast.ExprS(ast.CallName("print", ast.ID("who")))),
	)
	want := strings.Join([]string{
		"struct Greeter {",
		"}",
		"",
		"impl Greeter {",
		"    fn new() -> Greeter {",
		"        Greeter {}",
		"    }",
		"",
		"    fn greet(&self, who: String) -> unknown_type {",
		"        println!(\"{}\", who);",
		"    }",
		"}",
	}, "\n")
	s := newTestSession(Options{})
	got, err := s.TranslateNode(class)
	if err != nil {
		t.Fatalf("TranslateNode: %v", err)
	}
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
	if diags := s.Diagnostics(); len(diags) != 0 {
		t.Fatalf("docstring should not be reported: %v", diags)
	}
}

func TestRegisteredClassCallsBecomeConstructors(t *testing.T) {
	call := ast.CallName("Point", ast.ID("a"), ast.ID("b"))

	s := newTestSession(Options{})
	if got, _ := s.TranslateNode(call); got != "Point(a, b)" {
		t.Fatalf("unregistered call: got %q", got)
	}
	if _, err := s.TranslateNode(personClass()); err != nil {
		t.Fatalf("TranslateNode: %v", err)
	}
	if got, _ := s.TranslateNode(call); got != "Point::new(a, b)" {
		t.Fatalf("registered call: got %q", got)
	}

	fresh := newTestSession(Options{})
	if got, _ := fresh.TranslateNode(call); got != "Point(a, b)" {
		t.Fatalf("registry leaked into a new session: got %q", got)
	}
}

func TestIndependentSessionsProduceIdenticalOutput(t *testing.T) {
	module := ast.Mod(
		ast.ExprS(ast.CallName("Point", ast.ID("x"), ast.ID("y"))),
		personClass(),
		ast.ExprS(ast.CallName("Point", ast.ID("x"), ast.ID("y"))),
	)
	first, err := Translate(module, Options{Logger: logger.Discard()})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	second, err := Translate(module, Options{Logger: logger.Discard()})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if first.Code != second.Code {
		t.Fatalf("outputs differ:\n%s\n---\n%s", first.Code, second.Code)
	}
	if first.Fragments[0] != "Point(x, y);" || first.Fragments[2] != "Point::new(x, y);" {
		t.Fatalf("unexpected fragments %q", first.Fragments)
	}
	if len(first.Types) != 1 || first.Types[0] != "Point" {
		t.Fatalf("unexpected registered types %v", first.Types)
	}
}

func TestUnsupportedKindsYieldInlineFallback(t *testing.T) {
	kinds := []string{"ListComp", "Lambda", "While", "With", "Dict"}
	for _, kind := range kinds {
		s := newTestSession(Options{})
		got, err := s.TranslateNode(ast.Unknown(kind))
		if err != nil {
			t.Fatalf("%s: unexpected error %v", kind, err)
		}
		want := "/* unable to translate the segment. (" + kind + ") */"
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
		if !IsFallback(got) {
			t.Fatalf("IsFallback(%q) = false", got)
		}
		if diags := s.Diagnostics(); len(diags) != 1 || diags[0].Kind != kind {
			t.Fatalf("expected one %s diagnostic, got %v", kind, diags)
		}
	}
	if got := translateNode(t, ast.Cmp(ast.ID("a"), ast.CmpLt, ast.ID("b"))); got != "/* unable to translate the segment. (Compare) */" {
		t.Fatalf("compare: got %q", got)
	}
	if got := translateNode(t, ast.Mod()); got != "/* unable to translate the segment. (Module) */" {
		t.Fatalf("module node: got %q", got)
	}
}

func TestUnsupportedExpressionInsideStatement(t *testing.T) {
	got := translateNode(t, ast.Assn(ast.ID("xs"), ast.Unknown("ListComp")))
	if got != "xs = /* unable to translate the segment. (ListComp) */;" {
		t.Fatalf("got %q", got)
	}
}

func TestImportsAndSimpleStatements(t *testing.T) {
	cases := []struct {
		node ast.Statement
		want string
	}{
		{ast.NewImport([]*ast.Alias{ast.NewAlias("os", ""), ast.NewAlias("numpy", "np")}), "// import os, numpy as np"},
		{ast.ImpFrom("math", "sqrt", "pi"), "// from math import sqrt, pi"},
		{ast.NewImportFrom("pkg", []*ast.Alias{ast.NewAlias("mod", "")}, 2), "// from ..pkg import mod"},
		{ast.NewPass(), "// pass"},
		{ast.NewBreak(), "break;"},
		{ast.NewContinue(), "continue;"},
		{ast.ExprS(ast.Member(ast.ID("a"), "b")), "a.b;"},
	}
	for _, tc := range cases {
		if got := translateNode(t, tc.node); got != tc.want {
			t.Fatalf("got %q, want %q", got, tc.want)
		}
	}
}

func TestDecoratorsAreReported(t *testing.T) {
	fn := ast.NewFunctionDef("cached", nil, nil, []ast.Statement{ast.Ret(ast.Int("1"))}, []ast.Expression{ast.ID("lru_cache")})
	s := newTestSession(Options{})
	got, err := s.TranslateNode(fn)
	if err != nil {
		t.Fatalf("TranslateNode: %v", err)
	}
	if got != "fn cached() -> unknown_type {\n    return 1;\n}" {
		t.Fatalf("got %q", got)
	}
	if diags := s.Diagnostics(); len(diags) != 1 || diags[0].Kind != "decorator" {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
}

func TestTranslateJoinsFragments(t *testing.T) {
	module := ast.Mod(
		ast.Imp("sys"),
		ast.Assn(ast.ID("x"), ast.Int("5")),
		ast.Unknown("While"),
	)
	res, err := Translate(module, Options{Logger: logger.Discard()})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	want := "// import sys\nx = 5;\n/* unable to translate the segment. (While) */"
	if res.Code != want {
		t.Fatalf("got %q, want %q", res.Code, want)
	}
	if len(res.Unsupported) != 1 || res.Unsupported[0].Kind != "While" {
		t.Fatalf("unexpected diagnostics %v", res.Unsupported)
	}
	if _, err := Translate(nil, Options{}); err == nil {
		t.Fatalf("expected error for nil module")
	}
}

func TestParseOptions(t *testing.T) {
	if mode, err := ParseTryMode(""); err != nil || mode != TryCapture {
		t.Fatalf("default try mode = %q, %v", mode, err)
	}
	if mode, err := ParseTryMode("Duplicate"); err != nil || mode != TryDuplicate {
		t.Fatalf("try mode = %q, %v", mode, err)
	}
	if _, err := ParseTryMode("twice"); err == nil {
		t.Fatalf("expected error")
	}
	if policy, err := ParseHandlerPolicy("reject"); err != nil || policy != HandlersReject {
		t.Fatalf("policy = %q, %v", policy, err)
	}
	if _, err := ParseHandlerPolicy("all"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Kind: "For", Span: ast.Span{Start: ast.Position{Line: 3, Column: 1}}}
	if got := d.String(); got != "3:1: For" {
		t.Fatalf("got %q", got)
	}
	d = Diagnostic{Kind: "keyword", Detail: "sep="}
	if got := d.String(); got != "keyword: sep=" {
		t.Fatalf("got %q", got)
	}
}
