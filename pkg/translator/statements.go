package translator

import (
	"fmt"
	"strings"

	"pyrs/translator-go/pkg/ast"
)

func (s *Session) returnStmt(stmt *ast.Return) (string, error) {
	if stmt.Value == nil {
		return "return;", nil
	}
	value, err := s.translate(stmt.Value)
	if err != nil {
		return "", err
	}
	return "return " + value + ";", nil
}

func (s *Session) assign(stmt *ast.Assign) (string, error) {
	targets, err := s.translateExprs(stmt.Targets)
	if err != nil {
		return "", err
	}
	value, err := s.translate(stmt.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s = %s;", strings.Join(targets, " "), value), nil
}

func (s *Session) annAssign(stmt *ast.AnnAssign) (string, error) {
	target, err := s.translate(stmt.Target)
	if err != nil {
		return "", err
	}
	if _, ok := stmt.Target.(*ast.Name); !ok {
		if stmt.Value == nil {
			return s.unsupported(string(stmt.NodeType()), "annotation without a value on "+target, stmt.Span()), nil
		}
		value, err := s.translate(stmt.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s = %s;", target, value), nil
	}
	typ := s.mapper.MapAnnotation(stmt.Annotation)
	if stmt.Value == nil {
		return fmt.Sprintf("let %s: %s;", target, typ), nil
	}
	value, err := s.translate(stmt.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("let %s: %s = %s;", target, typ, value), nil
}

func (s *Session) augAssign(stmt *ast.AugAssign) (string, error) {
	sym, err := s.operatorSymbol(stmt.Op, stmt.Span())
	if err != nil {
		return "", err
	}
	target, err := s.translate(stmt.Target)
	if err != nil {
		return "", err
	}
	value, err := s.translate(stmt.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s= %s;", target, sym, value), nil
}

func (s *Session) exprStmt(stmt *ast.ExprStmt) (string, error) {
	value, err := s.translate(stmt.Value)
	if err != nil {
		return "", err
	}
	return value + ";", nil
}

func (s *Session) importStmt(stmt *ast.Import) (string, error) {
	return "// import " + aliasList(stmt.Names), nil
}

func (s *Session) importFrom(stmt *ast.ImportFrom) (string, error) {
	module := strings.Repeat(".", stmt.Level) + stmt.Module
	return fmt.Sprintf("// from %s import %s", module, aliasList(stmt.Names)), nil
}

func aliasList(names []*ast.Alias) string {
	parts := make([]string, 0, len(names))
	for _, alias := range names {
		if alias == nil {
			continue
		}
		if alias.AsName != "" {
			parts = append(parts, alias.Name+" as "+alias.AsName)
			continue
		}
		parts = append(parts, alias.Name)
	}
	return strings.Join(parts, ", ")
}
