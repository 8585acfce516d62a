package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"pyrs/translator-go/pkg/ast"
)

// ModuleParser wraps a tree-sitter parser configured for Python modules.
// A ModuleParser is not safe for concurrent use.
type ModuleParser struct {
	parser *sitter.Parser
}

// NewModuleParser constructs a parser with the Python language loaded.
func NewModuleParser() (*ModuleParser, error) {
	lang := Python()
	if lang == nil {
		return nil, fmt.Errorf("parser: python language not available")
	}

	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		p.Close()
		return nil, fmt.Errorf("parser: %w", err)
	}

	return &ModuleParser{parser: p}, nil
}

// Close releases parser resources.
func (p *ModuleParser) Close() {
	if p == nil || p.parser == nil {
		return
	}
	p.parser.Close()
	p.parser = nil
}

// ParseModule parses Python source into an ast.Module. Any syntax error in
// the tree is reported as a *ParseError; no partial module is returned.
func (p *ModuleParser) ParseModule(source []byte) (*ast.Module, error) {
	if p == nil || p.parser == nil {
		return nil, fmt.Errorf("parser: nil parser")
	}

	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser: parse cancelled")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parser: unexpected root node")
	}
	if root.Kind() != "module" || root.HasError() {
		if root.HasError() {
			return nil, syntaxError(root, source)
		}
		return nil, fmt.Errorf("parser: unexpected root node %q", root.Kind())
	}
	if err := emptyBlockError(root); err != nil {
		return nil, err
	}

	ctx := newParseContext(source)
	body, err := ctx.parseStatements(root)
	if err != nil {
		return nil, err
	}
	module := ast.NewModule(body)
	annotateSpan(module, root)
	return module, nil
}

// ParseModule parses source with a throwaway ModuleParser.
func ParseModule(source []byte) (*ast.Module, error) {
	p, err := NewModuleParser()
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.ParseModule(source)
}

type parseContext struct {
	source []byte
}

func newParseContext(source []byte) *parseContext {
	return &parseContext{source: source}
}

func (ctx *parseContext) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Utf8Text(ctx.source)
}

func annotateSpan(target ast.Node, node *sitter.Node) {
	if target == nil || node == nil {
		return
	}
	loc := locationForNode(node)
	ast.SetSpan(target, ast.Span{
		Start: ast.Position{Line: loc.Line, Column: loc.Column},
		End:   ast.Position{Line: loc.EndLine, Column: loc.EndColumn},
	})
}

func isIgnorableNode(node *sitter.Node) bool {
	return node == nil || node.Kind() == "comment" || !node.IsNamed()
}

// namedChildren lists node's named children without comments.
func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if isIgnorableNode(child) {
			continue
		}
		out = append(out, child)
	}
	return out
}

// hasToken reports whether node has an anonymous child spelled token, such as
// the `async` keyword in front of a definition.
func hasToken(node *sitter.Node, token string) bool {
	if node == nil {
		return false
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && !child.IsNamed() && child.Kind() == token {
			return true
		}
	}
	return false
}

func firstNamedChild(node *sitter.Node) *sitter.Node {
	children := namedChildren(node)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}
