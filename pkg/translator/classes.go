package translator

import (
	"fmt"
	"strings"

	"pyrs/translator-go/pkg/ast"
)

type fieldInfo struct {
	Name string
	Type string
}

// classDef registers the class, then emits a struct whose fields are the
// __init__ parameters, a `new` constructor over the same parameters, and the
// remaining methods in one impl block.
func (s *Session) classDef(def *ast.ClassDef) (string, error) {
	s.registry.add(def.Name)
	s.dropDecorators(def.Name, def.Decorators)
	for _, base := range def.Bases {
		if base == nil {
			continue
		}
		s.note("base", "base class of "+def.Name+" dropped", base.Span())
	}

	var ctor *ast.FunctionDef
	var methods []*ast.FunctionDef
	for idx, stmt := range def.Body {
		switch member := stmt.(type) {
		case *ast.FunctionDef:
			if member.Name == "__init__" && ctor == nil {
				ctor = member
				continue
			}
			methods = append(methods, member)
		case *ast.Pass:
		case *ast.ExprStmt:
			if isDocstring(idx, member) {
				continue
			}
			s.note(string(member.NodeType()), "class body statement in "+def.Name+" dropped", member.Span())
		default:
			if stmt == nil {
				continue
			}
			s.note(string(stmt.NodeType()), "class body statement in "+def.Name+" dropped", stmt.Span())
		}
	}

	fields := s.constructorFields(def.Name, ctor)

	var f fragment
	f.open("struct " + def.Name)
	for _, field := range fields {
		f.line(fmt.Sprintf("%s: %s,", field.Name, field.Type))
	}
	f.close("")
	f.blank()
	f.open("impl " + def.Name)
	f.line(constructor(def.Name, fields))
	for _, method := range methods {
		rendered, err := s.renderFunction(method, true)
		if err != nil {
			return "", err
		}
		f.blank()
		f.line(rendered)
	}
	f.close("")
	return f.String(), nil
}

func (s *Session) constructorFields(class string, ctor *ast.FunctionDef) []fieldInfo {
	if ctor == nil {
		return nil
	}
	s.dropDecorators(class+".__init__", ctor.Decorators)
	var fields []fieldInfo
	for _, arg := range ctor.Args {
		if arg == nil || arg.Name == "self" {
			continue
		}
		if arg.Star != "" {
			if arg.Name != "" {
				s.note("vararg", arg.Star+arg.Name+" in "+class+".__init__ dropped", arg.Span())
			}
			continue
		}
		fields = append(fields, fieldInfo{Name: arg.Name, Type: s.mapper.ParamType(arg)})
	}
	return fields
}

func constructor(class string, fields []fieldInfo) string {
	params := make([]string, 0, len(fields))
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		params = append(params, fmt.Sprintf("%s: %s", field.Name, field.Type))
		names = append(names, field.Name)
	}
	literal := class + " {}"
	if len(names) > 0 {
		literal = fmt.Sprintf("%s { %s }", class, strings.Join(names, ", "))
	}
	return block(fmt.Sprintf("fn new(%s) -> %s", strings.Join(params, ", "), class), []string{literal})
}

func isDocstring(idx int, stmt *ast.ExprStmt) bool {
	if idx != 0 || stmt == nil {
		return false
	}
	lit, ok := stmt.Value.(*ast.Constant)
	return ok && lit.Kind == ast.ConstantString
}
