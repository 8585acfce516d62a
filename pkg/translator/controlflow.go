package translator

import (
	"pyrs/translator-go/pkg/ast"
)

// ifStmt only understands the script entry point. Every other conditional
// is left as a marker.
func (s *Session) ifStmt(stmt *ast.If) (string, error) {
	if !isMainGuard(stmt.Test) {
		return s.unsupported(string(stmt.NodeType()), "", stmt.Span()), nil
	}
	if len(stmt.Orelse) > 0 {
		s.note(string(stmt.NodeType()), "else branch of the main guard dropped", stmt.Orelse[0].Span())
	}
	body, err := s.translateBody(stmt.Body)
	if err != nil {
		return "", err
	}
	return block("fn main()", body), nil
}

// isMainGuard matches `__name__ == "__main__"` exactly as written.
func isMainGuard(test ast.Expression) bool {
	cmp, ok := test.(*ast.Compare)
	if !ok || len(cmp.Ops) != 1 || len(cmp.Comparators) != 1 || cmp.Ops[0] != ast.CmpEq {
		return false
	}
	left, ok := cmp.Left.(*ast.Name)
	if !ok || left.ID != "__name__" {
		return false
	}
	right, ok := cmp.Comparators[0].(*ast.Constant)
	return ok && right.Kind == ast.ConstantString && right.Value == "__main__"
}

func (s *Session) forStmt(stmt *ast.For) (string, error) {
	call, ok := rangeBounds(stmt.Iter)
	if !ok {
		return s.unsupported(string(stmt.NodeType()), "", stmt.Span()), nil
	}
	if len(stmt.Orelse) > 0 {
		s.note(string(stmt.NodeType()), "else branch of for loop dropped", stmt.Orelse[0].Span())
	}
	target, err := s.translate(stmt.Target)
	if err != nil {
		return "", err
	}
	iter, err := s.rangeCall(call)
	if err != nil {
		return "", err
	}
	body, err := s.translateBody(stmt.Body)
	if err != nil {
		return "", err
	}
	return block("for "+target+" in "+iter, body), nil
}
