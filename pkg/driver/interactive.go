package driver

import (
	"pyrs/translator-go/pkg/ast"
	"pyrs/translator-go/pkg/logger"
	"pyrs/translator-go/pkg/parser"
	"pyrs/translator-go/pkg/translator"
)

// Interactive translates successive snippets with one translator session, so
// a class declared in one snippet is constructed with ::new in later ones.
type Interactive struct {
	pipeline *Pipeline
	parser   *parser.ModuleParser
	session  *translator.Session
}

func (p *Pipeline) NewInteractive() (*Interactive, error) {
	mp, err := parser.NewModuleParser()
	if err != nil {
		return nil, err
	}
	return &Interactive{
		pipeline: p,
		parser:   mp,
		session:  translator.NewSession(p.opts.Translator),
	}, nil
}

// Complete reports whether src parses as a whole module. It is used to
// decide if more input lines are needed.
func (in *Interactive) Complete(src string) bool {
	_, err := in.parser.ParseModule([]byte(src))
	return err == nil
}

func (in *Interactive) Translate(src string) *Output {
	const name = "<repl>"
	module, err := in.parser.ParseModule([]byte(src))
	if err != nil {
		in.pipeline.logParseFailure(name, err)
		return in.pipeline.decorate(&Output{Name: name, Status: StatusParseError, Code: ParseErrorText, Err: err})
	}
	logger.LogParsing(name, ast.CountNodes(module))
	return in.pipeline.translateModule(name, in.session, module)
}

// Types lists the classes declared so far.
func (in *Interactive) Types() []string {
	return in.session.RegisteredTypes()
}

func (in *Interactive) Close() {
	in.parser.Close()
}
