package translator

import (
	"fmt"

	"pyrs/translator-go/pkg/ast"
)

const tryClosureHeader = "match (|| -> Result<(), Box<dyn std::error::Error>>"

// tryStmt runs the try body in a fallible closure and matches on its result.
// The Ok arm carries the else body; TryDuplicate also repeats the try body
// there. Only one handler is translated.
func (s *Session) tryStmt(stmt *ast.Try) (string, error) {
	if len(stmt.Handlers) > 1 {
		if s.opts.Handlers == HandlersReject {
			return s.unsupported(string(stmt.NodeType()), fmt.Sprintf("%d except clauses", len(stmt.Handlers)), stmt.Span()), nil
		}
		for _, extra := range stmt.Handlers[1:] {
			if extra == nil {
				continue
			}
			s.note(string(extra.NodeType()), "additional except clause dropped", extra.Span())
		}
	}

	body, err := s.translateBody(stmt.Body)
	if err != nil {
		return "", err
	}
	orelse, err := s.translateBody(stmt.Orelse)
	if err != nil {
		return "", err
	}
	finally, err := s.translateBody(stmt.Finalbody)
	if err != nil {
		return "", err
	}
	binding := "_"
	var handler []string
	if len(stmt.Handlers) > 0 && stmt.Handlers[0] != nil {
		first := stmt.Handlers[0]
		if first.Name != "" {
			binding = first.Name
		}
		handler, err = s.translateBody(first.Body)
		if err != nil {
			return "", err
		}
	}

	var f fragment
	f.open(tryClosureHeader)
	f.each(body)
	f.line("Ok(())")
	f.reopen("})() {")
	f.open("Ok(()) =>")
	if s.opts.TryMode == TryDuplicate {
		f.each(body)
	}
	f.each(orelse)
	f.close("")
	f.open(fmt.Sprintf("Err(%s) =>", binding))
	f.each(handler)
	f.close("")
	f.close("")
	f.each(finally)
	return f.String(), nil
}
