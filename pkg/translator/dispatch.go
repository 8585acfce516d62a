package translator

import "pyrs/translator-go/pkg/ast"

// nodeVisitor routes each node variant to its Session translator. A new
// variant in ast.Visitor breaks this assertion until it is handled here.
type nodeVisitor struct {
	s *Session
}

var _ ast.Visitor = nodeVisitor{}

func (v nodeVisitor) VisitFunctionDef(n *ast.FunctionDef) (string, error) { return v.s.functionDef(n) }
func (v nodeVisitor) VisitClassDef(n *ast.ClassDef) (string, error)       { return v.s.classDef(n) }
func (v nodeVisitor) VisitReturn(n *ast.Return) (string, error)           { return v.s.returnStmt(n) }
func (v nodeVisitor) VisitAssign(n *ast.Assign) (string, error)           { return v.s.assign(n) }
func (v nodeVisitor) VisitAnnAssign(n *ast.AnnAssign) (string, error)     { return v.s.annAssign(n) }
func (v nodeVisitor) VisitAugAssign(n *ast.AugAssign) (string, error)     { return v.s.augAssign(n) }
func (v nodeVisitor) VisitExpr(n *ast.ExprStmt) (string, error)           { return v.s.exprStmt(n) }
func (v nodeVisitor) VisitIf(n *ast.If) (string, error)                   { return v.s.ifStmt(n) }
func (v nodeVisitor) VisitFor(n *ast.For) (string, error)                 { return v.s.forStmt(n) }
func (v nodeVisitor) VisitImport(n *ast.Import) (string, error)           { return v.s.importStmt(n) }
func (v nodeVisitor) VisitImportFrom(n *ast.ImportFrom) (string, error)   { return v.s.importFrom(n) }
func (v nodeVisitor) VisitTry(n *ast.Try) (string, error)                 { return v.s.tryStmt(n) }
func (v nodeVisitor) VisitPass(*ast.Pass) (string, error)                 { return "// pass", nil }
func (v nodeVisitor) VisitBreak(*ast.Break) (string, error)               { return "break;", nil }
func (v nodeVisitor) VisitContinue(*ast.Continue) (string, error)         { return "continue;", nil }

func (v nodeVisitor) VisitBinOp(n *ast.BinOp) (string, error)         { return v.s.binOp(n) }
func (v nodeVisitor) VisitName(n *ast.Name) (string, error)           { return n.ID, nil }
func (v nodeVisitor) VisitConstant(n *ast.Constant) (string, error)   { return v.s.constant(n), nil }
func (v nodeVisitor) VisitCall(n *ast.Call) (string, error)           { return v.s.call(n) }
func (v nodeVisitor) VisitAttribute(n *ast.Attribute) (string, error) { return v.s.attribute(n) }

func (v nodeVisitor) VisitCompare(n *ast.Compare) (string, error) {
	return v.s.unsupported(string(n.NodeType()), "", n.Span()), nil
}

func (v nodeVisitor) VisitUnsupported(n *ast.Unsupported) (string, error) {
	return v.s.unsupported(string(n.NodeType()), "", n.Span()), nil
}
