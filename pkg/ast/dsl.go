package ast

// Name and literal helpers.

func ID(name string) *Name {
	return NewName(name)
}

func Str(value string) *Constant {
	return NewConstant(ConstantString, value)
}

func Int(text string) *Constant {
	return NewConstant(ConstantInt, text)
}

func Flt(text string) *Constant {
	return NewConstant(ConstantFloat, text)
}

func Bool(value bool) *Constant {
	if value {
		return NewConstant(ConstantBool, "True")
	}
	return NewConstant(ConstantBool, "False")
}

func None() *Constant {
	return NewConstant(ConstantNone, "None")
}

// Expression helpers.

func Bin(left Expression, op Operator, right Expression) *BinOp {
	return NewBinOp(left, op, right)
}

func CallExpr(fn Expression, args ...Expression) *Call {
	return NewCall(fn, args, nil)
}

func CallName(name string, args ...Expression) *Call {
	return NewCall(ID(name), args, nil)
}

func Kw(arg string, value Expression) *Keyword {
	return NewKeyword(arg, value)
}

func Member(value Expression, attr string) *Attribute {
	return NewAttribute(value, attr)
}

func Cmp(left Expression, op CmpOp, right Expression) *Compare {
	return NewCompare(left, []CmpOp{op}, []Expression{right})
}

func Unknown(kind string) *Unsupported {
	return NewUnsupported(kind, "")
}

// Statement helpers.

func Param(name string, annotation Expression) *Arg {
	return NewArg(name, annotation, nil)
}

func ParamDefault(name string, annotation Expression, def Expression) *Arg {
	return NewArg(name, annotation, def)
}

func Fn(name string, params []*Arg, returns Expression, body ...Statement) *FunctionDef {
	return NewFunctionDef(name, params, returns, body, nil)
}

func Class(name string, body ...Statement) *ClassDef {
	return NewClassDef(name, nil, body, nil)
}

func Ret(value Expression) *Return {
	return NewReturn(value)
}

func Assn(target Expression, value Expression) *Assign {
	return NewAssign([]Expression{target}, value)
}

func AssnMulti(targets []Expression, value Expression) *Assign {
	return NewAssign(targets, value)
}

func Ann(target Expression, annotation Expression, value Expression) *AnnAssign {
	return NewAnnAssign(target, annotation, value)
}

func AugAssn(target Expression, op Operator, value Expression) *AugAssign {
	return NewAugAssign(target, op, value)
}

func ExprS(value Expression) *ExprStmt {
	return NewExprStmt(value)
}

func IfS(test Expression, body []Statement, orelse ...Statement) *If {
	return NewIf(test, body, orelse)
}

func ForS(target Expression, iter Expression, body ...Statement) *For {
	return NewFor(target, iter, body, nil)
}

// MainGuard builds `if __name__ == "__main__":` around body.
func MainGuard(body ...Statement) *If {
	return NewIf(Cmp(ID("__name__"), CmpEq, Str("__main__")), body, nil)
}

func Imp(names ...string) *Import {
	aliases := make([]*Alias, 0, len(names))
	for _, name := range names {
		aliases = append(aliases, NewAlias(name, ""))
	}
	return NewImport(aliases)
}

func ImpFrom(module string, names ...string) *ImportFrom {
	aliases := make([]*Alias, 0, len(names))
	for _, name := range names {
		aliases = append(aliases, NewAlias(name, ""))
	}
	return NewImportFrom(module, aliases, 0)
}

func Except(typ Expression, name string, body ...Statement) *ExceptHandler {
	return NewExceptHandler(typ, name, body)
}

func TryS(body []Statement, handlers ...*ExceptHandler) *Try {
	return NewTry(body, handlers, nil, nil)
}

func Mod(body ...Statement) *Module {
	return NewModule(body)
}

func StarParam(name, star string) *Arg {
	arg := NewArg(name, nil, nil)
	arg.Star = star
	return arg
}
