package ast

// Visitor receives one call per node variant. Adding a statement or
// expression type means adding a method here, so every Visitor
// implementation stops compiling until it handles the new kind.
type Visitor interface {
	VisitFunctionDef(*FunctionDef) (string, error)
	VisitClassDef(*ClassDef) (string, error)
	VisitReturn(*Return) (string, error)
	VisitAssign(*Assign) (string, error)
	VisitAnnAssign(*AnnAssign) (string, error)
	VisitAugAssign(*AugAssign) (string, error)
	VisitExpr(*ExprStmt) (string, error)
	VisitIf(*If) (string, error)
	VisitFor(*For) (string, error)
	VisitImport(*Import) (string, error)
	VisitImportFrom(*ImportFrom) (string, error)
	VisitTry(*Try) (string, error)
	VisitPass(*Pass) (string, error)
	VisitBreak(*Break) (string, error)
	VisitContinue(*Continue) (string, error)

	VisitBinOp(*BinOp) (string, error)
	VisitName(*Name) (string, error)
	VisitConstant(*Constant) (string, error)
	VisitCall(*Call) (string, error)
	VisitAttribute(*Attribute) (string, error)
	VisitCompare(*Compare) (string, error)

	VisitUnsupported(*Unsupported) (string, error)
}

func (n *FunctionDef) Accept(v Visitor) (string, error) { return v.VisitFunctionDef(n) }
func (n *ClassDef) Accept(v Visitor) (string, error)    { return v.VisitClassDef(n) }
func (n *Return) Accept(v Visitor) (string, error)      { return v.VisitReturn(n) }
func (n *Assign) Accept(v Visitor) (string, error)      { return v.VisitAssign(n) }
func (n *AnnAssign) Accept(v Visitor) (string, error)   { return v.VisitAnnAssign(n) }
func (n *AugAssign) Accept(v Visitor) (string, error)   { return v.VisitAugAssign(n) }
func (n *ExprStmt) Accept(v Visitor) (string, error)    { return v.VisitExpr(n) }
func (n *If) Accept(v Visitor) (string, error)          { return v.VisitIf(n) }
func (n *For) Accept(v Visitor) (string, error)         { return v.VisitFor(n) }
func (n *Import) Accept(v Visitor) (string, error)      { return v.VisitImport(n) }
func (n *ImportFrom) Accept(v Visitor) (string, error)  { return v.VisitImportFrom(n) }
func (n *Try) Accept(v Visitor) (string, error)         { return v.VisitTry(n) }
func (n *Pass) Accept(v Visitor) (string, error)        { return v.VisitPass(n) }
func (n *Break) Accept(v Visitor) (string, error)       { return v.VisitBreak(n) }
func (n *Continue) Accept(v Visitor) (string, error)    { return v.VisitContinue(n) }
func (n *BinOp) Accept(v Visitor) (string, error)       { return v.VisitBinOp(n) }
func (n *Name) Accept(v Visitor) (string, error)        { return v.VisitName(n) }
func (n *Constant) Accept(v Visitor) (string, error)    { return v.VisitConstant(n) }
func (n *Call) Accept(v Visitor) (string, error)        { return v.VisitCall(n) }
func (n *Attribute) Accept(v Visitor) (string, error)   { return v.VisitAttribute(n) }
func (n *Compare) Accept(v Visitor) (string, error)     { return v.VisitCompare(n) }
func (n *Unsupported) Accept(v Visitor) (string, error) { return v.VisitUnsupported(n) }
