package ast

type NodeType string

// Node types use the Python ast module's class names so diagnostics read the
// same as `ast.dump` output.
const (
	NodeModule        NodeType = "Module"
	NodeFunctionDef   NodeType = "FunctionDef"
	NodeClassDef      NodeType = "ClassDef"
	NodeReturn        NodeType = "Return"
	NodeAssign        NodeType = "Assign"
	NodeAnnAssign     NodeType = "AnnAssign"
	NodeAugAssign     NodeType = "AugAssign"
	NodeExpr          NodeType = "Expr"
	NodeIf            NodeType = "If"
	NodeFor           NodeType = "For"
	NodeImport        NodeType = "Import"
	NodeImportFrom    NodeType = "ImportFrom"
	NodeTry           NodeType = "Try"
	NodeExceptHandler NodeType = "ExceptHandler"
	NodePass          NodeType = "Pass"
	NodeBreak         NodeType = "Break"
	NodeContinue      NodeType = "Continue"
	NodeBinOp         NodeType = "BinOp"
	NodeName          NodeType = "Name"
	NodeConstant      NodeType = "Constant"
	NodeCall          NodeType = "Call"
	NodeKeyword       NodeType = "keyword"
	NodeAttribute     NodeType = "Attribute"
	NodeCompare       NodeType = "Compare"
	NodeArg           NodeType = "arg"
	NodeAlias         NodeType = "alias"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

type Span struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	span Span
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.span }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) setSpan(span Span) { n.span = span }

// Marker interfaces.

// Expression is any node that can appear in value position.
type Expression interface {
	Node
	Accept(v Visitor) (string, error)
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// Statement is any node that can appear in a body sequence.
type Statement interface {
	Node
	Accept(v Visitor) (string, error)
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Module

type Module struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewModule(body []Statement) *Module {
	return &Module{nodeImpl: newNodeImpl(NodeModule), Body: body}
}

// Expressions

type Name struct {
	nodeImpl
	expressionMarker

	ID string `json:"id"`
}

func NewName(id string) *Name {
	return &Name{nodeImpl: newNodeImpl(NodeName), ID: id}
}

type ConstantKind string

const (
	ConstantString   ConstantKind = "str"
	ConstantInt      ConstantKind = "int"
	ConstantFloat    ConstantKind = "float"
	ConstantBool     ConstantKind = "bool"
	ConstantNone     ConstantKind = "None"
	ConstantBytes    ConstantKind = "bytes"
	ConstantEllipsis ConstantKind = "Ellipsis"
)

// Constant holds a literal. For strings and bytes Value is the decoded text;
// for every other kind it is the literal as written in the source.
type Constant struct {
	nodeImpl
	expressionMarker

	Kind  ConstantKind `json:"kind"`
	Value string       `json:"value"`
}

func NewConstant(kind ConstantKind, value string) *Constant {
	return &Constant{nodeImpl: newNodeImpl(NodeConstant), Kind: kind, Value: value}
}

type Operator string

const (
	OpAdd      Operator = "Add"
	OpSub      Operator = "Sub"
	OpMult     Operator = "Mult"
	OpDiv      Operator = "Div"
	OpMod      Operator = "Mod"
	OpPow      Operator = "Pow"
	OpFloorDiv Operator = "FloorDiv"
	OpMatMult  Operator = "MatMult"
	OpLShift   Operator = "LShift"
	OpRShift   Operator = "RShift"
	OpBitOr    Operator = "BitOr"
	OpBitXor   Operator = "BitXor"
	OpBitAnd   Operator = "BitAnd"
)

type BinOp struct {
	nodeImpl
	expressionMarker

	Left  Expression `json:"left"`
	Op    Operator   `json:"op"`
	Right Expression `json:"right"`
}

func NewBinOp(left Expression, op Operator, right Expression) *BinOp {
	return &BinOp{nodeImpl: newNodeImpl(NodeBinOp), Left: left, Op: op, Right: right}
}

// Keyword is a `name=value` call argument. Arg is empty for `**value`.
type Keyword struct {
	nodeImpl

	Arg   string     `json:"arg,omitempty"`
	Value Expression `json:"value"`
}

func NewKeyword(arg string, value Expression) *Keyword {
	return &Keyword{nodeImpl: newNodeImpl(NodeKeyword), Arg: arg, Value: value}
}

type Call struct {
	nodeImpl
	expressionMarker

	Func     Expression   `json:"func"`
	Args     []Expression `json:"args"`
	Keywords []*Keyword   `json:"keywords,omitempty"`
}

func NewCall(fn Expression, args []Expression, keywords []*Keyword) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Func: fn, Args: args, Keywords: keywords}
}

type Attribute struct {
	nodeImpl
	expressionMarker

	Value Expression `json:"value"`
	Attr  string     `json:"attr"`
}

func NewAttribute(value Expression, attr string) *Attribute {
	return &Attribute{nodeImpl: newNodeImpl(NodeAttribute), Value: value, Attr: attr}
}

type CmpOp string

const (
	CmpEq    CmpOp = "Eq"
	CmpNotEq CmpOp = "NotEq"
	CmpLt    CmpOp = "Lt"
	CmpLtE   CmpOp = "LtE"
	CmpGt    CmpOp = "Gt"
	CmpGtE   CmpOp = "GtE"
	CmpIs    CmpOp = "Is"
	CmpIsNot CmpOp = "IsNot"
	CmpIn    CmpOp = "In"
	CmpNotIn CmpOp = "NotIn"
)

type Compare struct {
	nodeImpl
	expressionMarker

	Left        Expression   `json:"left"`
	Ops         []CmpOp      `json:"ops"`
	Comparators []Expression `json:"comparators"`
}

func NewCompare(left Expression, ops []CmpOp, comparators []Expression) *Compare {
	return &Compare{nodeImpl: newNodeImpl(NodeCompare), Left: left, Ops: ops, Comparators: comparators}
}

// Unsupported stands in for any construct the parser does not model. Its
// NodeType is the Python kind name of the construct (ListComp, Lambda, While).
type Unsupported struct {
	nodeImpl
	expressionMarker
	statementMarker

	Source string `json:"source,omitempty"`
}

func NewUnsupported(kind string, source string) *Unsupported {
	return &Unsupported{nodeImpl: newNodeImpl(NodeType(kind)), Source: source}
}

// Statements

// Arg is one function parameter. Star is "*" for `*args` and "**" for
// `**kwargs`.
type Arg struct {
	nodeImpl

	Name       string     `json:"arg"`
	Annotation Expression `json:"annotation,omitempty"`
	Default    Expression `json:"default,omitempty"`
	Star       string     `json:"star,omitempty"`
}

func NewArg(name string, annotation Expression, def Expression) *Arg {
	return &Arg{nodeImpl: newNodeImpl(NodeArg), Name: name, Annotation: annotation, Default: def}
}

type FunctionDef struct {
	nodeImpl
	statementMarker

	Name       string       `json:"name"`
	Args       []*Arg       `json:"args"`
	Returns    Expression   `json:"returns,omitempty"`
	Body       []Statement  `json:"body"`
	Decorators []Expression `json:"decorator_list,omitempty"`
}

func NewFunctionDef(name string, args []*Arg, returns Expression, body []Statement, decorators []Expression) *FunctionDef {
	return &FunctionDef{
		nodeImpl:   newNodeImpl(NodeFunctionDef),
		Name:       name,
		Args:       args,
		Returns:    returns,
		Body:       body,
		Decorators: decorators,
	}
}

type ClassDef struct {
	nodeImpl
	statementMarker

	Name       string       `json:"name"`
	Bases      []Expression `json:"bases,omitempty"`
	Body       []Statement  `json:"body"`
	Decorators []Expression `json:"decorator_list,omitempty"`
}

func NewClassDef(name string, bases []Expression, body []Statement, decorators []Expression) *ClassDef {
	return &ClassDef{
		nodeImpl:   newNodeImpl(NodeClassDef),
		Name:       name,
		Bases:      bases,
		Body:       body,
		Decorators: decorators,
	}
}

type Return struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value,omitempty"`
}

func NewReturn(value Expression) *Return {
	return &Return{nodeImpl: newNodeImpl(NodeReturn), Value: value}
}

// Assign covers `a = b = value`; every target is listed in order.
type Assign struct {
	nodeImpl
	statementMarker

	Targets []Expression `json:"targets"`
	Value   Expression   `json:"value"`
}

func NewAssign(targets []Expression, value Expression) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign), Targets: targets, Value: value}
}

type AnnAssign struct {
	nodeImpl
	statementMarker

	Target     Expression `json:"target"`
	Annotation Expression `json:"annotation"`
	Value      Expression `json:"value,omitempty"`
}

func NewAnnAssign(target, annotation, value Expression) *AnnAssign {
	return &AnnAssign{nodeImpl: newNodeImpl(NodeAnnAssign), Target: target, Annotation: annotation, Value: value}
}

type AugAssign struct {
	nodeImpl
	statementMarker

	Target Expression `json:"target"`
	Op     Operator   `json:"op"`
	Value  Expression `json:"value"`
}

func NewAugAssign(target Expression, op Operator, value Expression) *AugAssign {
	return &AugAssign{nodeImpl: newNodeImpl(NodeAugAssign), Target: target, Op: op, Value: value}
}

// ExprStmt is an expression evaluated for its effect (Python's ast.Expr).
type ExprStmt struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value"`
}

func NewExprStmt(value Expression) *ExprStmt {
	return &ExprStmt{nodeImpl: newNodeImpl(NodeExpr), Value: value}
}

// If keeps elif chains the Python way: a nested If as the only Orelse entry.
type If struct {
	nodeImpl
	statementMarker

	Test   Expression  `json:"test"`
	Body   []Statement `json:"body"`
	Orelse []Statement `json:"orelse,omitempty"`
}

func NewIf(test Expression, body, orelse []Statement) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf), Test: test, Body: body, Orelse: orelse}
}

type For struct {
	nodeImpl
	statementMarker

	Target Expression  `json:"target"`
	Iter   Expression  `json:"iter"`
	Body   []Statement `json:"body"`
	Orelse []Statement `json:"orelse,omitempty"`
}

func NewFor(target, iter Expression, body, orelse []Statement) *For {
	return &For{nodeImpl: newNodeImpl(NodeFor), Target: target, Iter: iter, Body: body, Orelse: orelse}
}

// Alias is one imported name, optionally renamed with `as`.
type Alias struct {
	nodeImpl

	Name   string `json:"name"`
	AsName string `json:"asname,omitempty"`
}

func NewAlias(name, asName string) *Alias {
	return &Alias{nodeImpl: newNodeImpl(NodeAlias), Name: name, AsName: asName}
}

type Import struct {
	nodeImpl
	statementMarker

	Names []*Alias `json:"names"`
}

func NewImport(names []*Alias) *Import {
	return &Import{nodeImpl: newNodeImpl(NodeImport), Names: names}
}

// ImportFrom is `from module import names`. Level counts leading dots.
type ImportFrom struct {
	nodeImpl
	statementMarker

	Module string   `json:"module,omitempty"`
	Names  []*Alias `json:"names"`
	Level  int      `json:"level"`
}

func NewImportFrom(module string, names []*Alias, level int) *ImportFrom {
	return &ImportFrom{nodeImpl: newNodeImpl(NodeImportFrom), Module: module, Names: names, Level: level}
}

type ExceptHandler struct {
	nodeImpl

	Type Expression  `json:"type,omitempty"`
	Name string      `json:"name,omitempty"`
	Body []Statement `json:"body"`
}

func NewExceptHandler(typ Expression, name string, body []Statement) *ExceptHandler {
	return &ExceptHandler{nodeImpl: newNodeImpl(NodeExceptHandler), Type: typ, Name: name, Body: body}
}

type Try struct {
	nodeImpl
	statementMarker

	Body      []Statement      `json:"body"`
	Handlers  []*ExceptHandler `json:"handlers"`
	Orelse    []Statement      `json:"orelse,omitempty"`
	Finalbody []Statement      `json:"finalbody,omitempty"`
}

func NewTry(body []Statement, handlers []*ExceptHandler, orelse, finalbody []Statement) *Try {
	return &Try{
		nodeImpl:  newNodeImpl(NodeTry),
		Body:      body,
		Handlers:  handlers,
		Orelse:    orelse,
		Finalbody: finalbody,
	}
}

type Pass struct {
	nodeImpl
	statementMarker
}

func NewPass() *Pass {
	return &Pass{nodeImpl: newNodeImpl(NodePass)}
}

type Break struct {
	nodeImpl
	statementMarker
}

func NewBreak() *Break {
	return &Break{nodeImpl: newNodeImpl(NodeBreak)}
}

type Continue struct {
	nodeImpl
	statementMarker
}

func NewContinue() *Continue {
	return &Continue{nodeImpl: newNodeImpl(NodeContinue)}
}
