package translator

import (
	"fmt"
	"log/slog"
	"strings"

	"pyrs/translator-go/pkg/ast"
	"pyrs/translator-go/pkg/logger"
)

// TryMode selects how a try block's success arm is rendered.
type TryMode string

const (
	// TryCapture runs the try body once inside the closure and reuses its result.
	TryCapture TryMode = "capture"
	// TryDuplicate re-emits the try body in the success arm.
	TryDuplicate TryMode = "duplicate"
)

// HandlerPolicy selects what happens to except clauses after the first.
type HandlerPolicy string

const (
	// HandlersFirst translates the first handler and reports the rest.
	HandlersFirst HandlerPolicy = "first"
	// HandlersReject renders the whole try statement as unsupported.
	HandlersReject HandlerPolicy = "reject"
)

func ParseTryMode(value string) (TryMode, error) {
	switch TryMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", TryCapture:
		return TryCapture, nil
	case TryDuplicate:
		return TryDuplicate, nil
	}
	return "", fmt.Errorf("translator: unknown try mode %q (want capture or duplicate)", value)
}

func ParseHandlerPolicy(value string) (HandlerPolicy, error) {
	switch HandlerPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", HandlersFirst:
		return HandlersFirst, nil
	case HandlersReject:
		return HandlersReject, nil
	}
	return "", fmt.Errorf("translator: unknown handler policy %q (want first or reject)", value)
}

type Options struct {
	TryMode  TryMode
	Handlers HandlerPolicy
	Logger   *slog.Logger
}

// Result is the output of one translation run.
type Result struct {
	Code        string
	Fragments   []string
	Unsupported []Diagnostic
	Types       []string
}

// Translate renders every top-level statement of module with a fresh Session
// and joins the fragments with newlines.
func Translate(module *ast.Module, opts Options) (*Result, error) {
	if module == nil {
		return nil, fmt.Errorf("translator: missing module")
	}
	return NewSession(opts).TranslateModule(module)
}

// Session owns the state of one translation run: the structured-type
// registry and the diagnostics collected so far. A Session is not safe for
// concurrent use; independent runs should use independent sessions.
type Session struct {
	opts        Options
	mapper      *TypeMapper
	registry    *typeRegistry
	diagnostics []Diagnostic
	visitor     nodeVisitor
	log         *slog.Logger
}

func NewSession(opts Options) *Session {
	if opts.TryMode == "" {
		opts.TryMode = TryCapture
	}
	if opts.Handlers == "" {
		opts.Handlers = HandlersFirst
	}
	log := opts.Logger
	if log == nil {
		log = logger.With("component", "translator")
	}
	s := &Session{
		opts:     opts,
		mapper:   NewTypeMapper(),
		registry: newTypeRegistry(),
		log:      log,
	}
	s.visitor = nodeVisitor{s: s}
	return s
}

// TranslateModule renders the module's statements in order. Classes declared
// earlier in the module are visible to calls that follow them.
func (s *Session) TranslateModule(module *ast.Module) (*Result, error) {
	if module == nil {
		return nil, fmt.Errorf("translator: missing module")
	}
	fragments := make([]string, 0, len(module.Body))
	for _, stmt := range module.Body {
		fragment, err := s.TranslateNode(stmt)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, fragment)
	}
	s.log.Debug("translation complete",
		"statements", len(module.Body),
		"unsupported", len(s.diagnostics),
		"types", len(s.registry.order))
	return &Result{
		Code:        strings.Join(fragments, "\n"),
		Fragments:   fragments,
		Unsupported: s.Diagnostics(),
		Types:       s.RegisteredTypes(),
	}, nil
}

// TranslateNode renders a single statement or expression. Nodes that cannot
// be dispatched (a Module, a bare parameter) render as the unsupported
// fallback.
func (s *Session) TranslateNode(node ast.Node) (string, error) {
	if node == nil {
		return "", nil
	}
	target, ok := node.(visitable)
	if !ok {
		return s.unsupported(string(node.NodeType()), "", node.Span()), nil
	}
	return target.Accept(s.visitor)
}

// Diagnostics returns a copy of every unsupported construct seen so far.
func (s *Session) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(s.diagnostics))
	copy(out, s.diagnostics)
	return out
}

// RegisteredTypes lists class names in declaration order.
func (s *Session) RegisteredTypes() []string {
	return s.registry.names()
}

// IsRegisteredType reports whether name was declared as a class in this session.
func (s *Session) IsRegisteredType(name string) bool {
	return s.registry.has(name)
}

type visitable interface {
	Accept(v ast.Visitor) (string, error)
}

func (s *Session) translate(node visitable) (string, error) {
	if node == nil {
		return "", nil
	}
	return node.Accept(s.visitor)
}

func (s *Session) translateExprs(exprs []ast.Expression) ([]string, error) {
	out := make([]string, 0, len(exprs))
	for _, expr := range exprs {
		fragment, err := s.translate(expr)
		if err != nil {
			return nil, err
		}
		out = append(out, fragment)
	}
	return out, nil
}

func (s *Session) translateBody(body []ast.Statement) ([]string, error) {
	lines := make([]string, 0, len(body))
	for _, stmt := range body {
		fragment, err := s.translate(stmt)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fragment)
	}
	return lines, nil
}

type typeRegistry struct {
	set   map[string]struct{}
	order []string
}

func newTypeRegistry() *typeRegistry {
	return &typeRegistry{set: make(map[string]struct{})}
}

func (r *typeRegistry) add(name string) {
	if name == "" {
		return
	}
	if _, ok := r.set[name]; ok {
		return
	}
	r.set[name] = struct{}{}
	r.order = append(r.order, name)
}

func (r *typeRegistry) has(name string) bool {
	_, ok := r.set[name]
	return ok
}

func (r *typeRegistry) names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
