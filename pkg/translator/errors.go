package translator

import (
	"errors"
	"fmt"

	"pyrs/translator-go/pkg/ast"
)

// ErrUnsupportedOperator is matched by every OperatorError.
var ErrUnsupportedOperator = errors.New("translator: unsupported binary operator")

// OperatorError aborts a translation run. A binary operator without a Rust
// symbol is never rendered as a fallback comment.
type OperatorError struct {
	Op   ast.Operator
	Span ast.Span
}

func (e *OperatorError) Error() string {
	if e == nil {
		return ErrUnsupportedOperator.Error()
	}
	if e.Span.IsZero() {
		return fmt.Sprintf("%s %s", ErrUnsupportedOperator.Error(), e.Op)
	}
	return fmt.Sprintf("%s %s at %d:%d", ErrUnsupportedOperator.Error(), e.Op, e.Span.Start.Line, e.Span.Start.Column)
}

func (e *OperatorError) Unwrap() error {
	return ErrUnsupportedOperator
}

// Diagnostic records one construct that was rendered as a fallback or
// dropped from the output.
type Diagnostic struct {
	Kind   string   `json:"kind" yaml:"kind"`
	Detail string   `json:"detail,omitempty" yaml:"detail,omitempty"`
	Span   ast.Span `json:"span" yaml:"span"`
}

func (d Diagnostic) String() string {
	msg := d.Kind
	if d.Detail != "" {
		msg = fmt.Sprintf("%s: %s", d.Kind, d.Detail)
	}
	if d.Span.IsZero() {
		return msg
	}
	return fmt.Sprintf("%d:%d: %s", d.Span.Start.Line, d.Span.Start.Column, msg)
}

// unsupported records a diagnostic and returns the fallback marker naming kind.
func (s *Session) unsupported(kind, detail string, span ast.Span) string {
	return s.fallback(kind, kind, detail, span)
}

// fallback records a diagnostic and returns a marker carrying label, which
// may differ from the diagnostic kind (`range with 3 arguments`).
func (s *Session) fallback(label, kind, detail string, span ast.Span) string {
	s.note(kind, detail, span)
	return fallbackText(label)
}

// note records a construct that was dropped without leaving a marker.
func (s *Session) note(kind, detail string, span ast.Span) {
	diag := Diagnostic{Kind: kind, Detail: detail, Span: span}
	s.diagnostics = append(s.diagnostics, diag)
	s.log.Debug("unsupported construct", "kind", kind, "detail", detail, "line", span.Start.Line)
}
