package translator

import (
	"fmt"
	"strings"

	"pyrs/translator-go/pkg/ast"
)

func (s *Session) call(expr *ast.Call) (string, error) {
	if name, ok := expr.Func.(*ast.Name); ok {
		switch {
		case name.ID == "print":
			return s.printCall(expr)
		case name.ID == "range":
			return s.rangeCall(expr)
		case s.registry.has(name.ID):
			args, err := s.callArgs(expr)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s::new(%s)", name.ID, strings.Join(args, ", ")), nil
		}
	}
	callee, err := s.translate(expr.Func)
	if err != nil {
		return "", err
	}
	args, err := s.callArgs(expr)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", callee, strings.Join(args, ", ")), nil
}

// callArgs translates positional arguments; keyword arguments have no Rust
// counterpart and stay in place as fallback markers.
func (s *Session) callArgs(expr *ast.Call) ([]string, error) {
	args, err := s.translateExprs(expr.Args)
	if err != nil {
		return nil, err
	}
	for _, kw := range expr.Keywords {
		args = append(args, s.unsupported(string(ast.NodeKeyword), keywordLabel(kw), kw.Span()))
	}
	return args, nil
}

func keywordLabel(kw *ast.Keyword) string {
	if kw.Arg == "" {
		return "**"
	}
	return kw.Arg + "="
}

// printCall renders print(a, b) as println!("{} {}", a, b). Placeholders are
// space separated because that is what print writes between its arguments.
func (s *Session) printCall(expr *ast.Call) (string, error) {
	for _, kw := range expr.Keywords {
		s.note(string(ast.NodeKeyword), "print "+keywordLabel(kw)+" dropped", kw.Span())
	}
	if len(expr.Args) == 0 {
		return "println!()", nil
	}
	args, err := s.translateExprs(expr.Args)
	if err != nil {
		return "", err
	}
	placeholders := strings.TrimSuffix(strings.Repeat("{} ", len(args)), " ")
	return fmt.Sprintf("println!(\"%s\", %s)", placeholders, strings.Join(args, ", ")), nil
}

func (s *Session) rangeCall(expr *ast.Call) (string, error) {
	arity := len(expr.Args) + len(expr.Keywords)
	if len(expr.Keywords) > 0 || arity < 1 || arity > 2 {
		label := fmt.Sprintf("range with %d arguments", arity)
		if arity == 1 {
			label = "range with 1 argument"
		}
		return s.fallback(label, "range", label, expr.Span()), nil
	}
	bounds, err := s.translateExprs(expr.Args)
	if err != nil {
		return "", err
	}
	if len(bounds) == 1 {
		return "0.." + bounds[0], nil
	}
	return bounds[0] + ".." + bounds[1], nil
}

// rangeBounds reports whether iter is a range call the for-loop translator
// can turn into a Rust range.
func rangeBounds(iter ast.Expression) (*ast.Call, bool) {
	call, ok := iter.(*ast.Call)
	if !ok {
		return nil, false
	}
	name, ok := call.Func.(*ast.Name)
	if !ok || name.ID != "range" || len(call.Keywords) > 0 {
		return nil, false
	}
	return call, len(call.Args) == 1 || len(call.Args) == 2
}
