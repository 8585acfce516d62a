package translator

import (
	"fmt"
	"strings"

	"pyrs/translator-go/pkg/ast"
)

func (s *Session) functionDef(def *ast.FunctionDef) (string, error) {
	return s.renderFunction(def, false)
}

// renderFunction emits `fn name(params) -> R { body }`. Inside an impl block
// a leading self parameter becomes &self.
func (s *Session) renderFunction(def *ast.FunctionDef, method bool) (string, error) {
	s.dropDecorators(def.Name, def.Decorators)
	args := def.Args
	var params []string
	if method && len(args) > 0 && args[0] != nil && args[0].Name == "self" {
		params = append(params, "&self")
		args = args[1:]
	}
	params = append(params, s.params(args)...)
	body, err := s.translateBody(def.Body)
	if err != nil {
		return "", err
	}
	header := fmt.Sprintf("fn %s(%s) -> %s", def.Name, strings.Join(params, ", "), s.mapper.MapAnnotation(def.Returns))
	return block(header, body), nil
}

// params renders `name: T` for each parameter. Star parameters have no Rust
// equivalent and leave a marker in the list; a bare `*` separator is skipped.
func (s *Session) params(args []*ast.Arg) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == nil {
			continue
		}
		if arg.Star != "" {
			if arg.Name == "" {
				continue
			}
			out = append(out, s.unsupported("vararg", arg.Star+arg.Name, arg.Span()))
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s", arg.Name, s.mapper.ParamType(arg)))
	}
	return out
}

func (s *Session) dropDecorators(owner string, decorators []ast.Expression) {
	for _, dec := range decorators {
		if dec == nil {
			continue
		}
		s.note("decorator", "decorator on "+owner+" dropped", dec.Span())
	}
}
