// Package parser implements a recursive descent parser for the C subset.
// Lexing is done on demand through a character cursor, and type names are
// resolved against a registry that grows as definitions are parsed.
package parser

import (
	"github.com/raymyers/ramcc/pkg/cabs"
	"github.com/raymyers/ramcc/pkg/lexer"
)

// Error is a parse failure: `file:line: Expecting "x" got "y"`.
type Error = lexer.Error

// Parser parses preprocessed source into a Cabs AST. A Parser mutates its
// type registry while parsing and must not be shared.
type Parser struct {
	l     *lexer.Lexer
	types *TypeRegistry
}

// Option configures a Parser.
type Option func(*Parser)

// WithTypes pre-registers extra base type names.
func WithTypes(names ...string) Option {
	return func(p *Parser) {
		for _, n := range names {
			p.types.AddType(n)
		}
	}
}

// WithModifiers pre-registers extra modifier keywords.
func WithModifiers(modifiers ...string) Option {
	return func(p *Parser) {
		for _, m := range modifiers {
			p.types.AddModifier(m)
		}
	}
}

// New creates a new Parser reading from l.
func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{l: l, types: NewTypeRegistry()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseString parses a whole translation unit held in src.
func ParseString(src, file string, opts ...Option) (*cabs.Program, error) {
	return New(lexer.New(src, file), opts...).ParseProgram()
}

// Types returns the parser's type registry.
func (p *Parser) Types() *TypeRegistry {
	return p.types
}

// ParseProgram parses top-level definitions until end of input. The first
// syntax error aborts the parse.
func (p *Parser) ParseProgram() (*cabs.Program, error) {
	prog := &cabs.Program{}
	p.l.SkipBlanks()
	for !p.l.AtEOF() {
		def, err := p.parseDefinition()
		if err != nil {
			if lerr := p.l.Err(); lerr != nil {
				return nil, lerr
			}
			return nil, err
		}
		prog.Definitions = append(prog.Definitions, def)
	}
	if err := p.l.Err(); err != nil {
		return nil, err
	}
	return prog, nil
}

func (p *Parser) parseDefinition() (cabs.Definition, error) {
	pos := p.l.Pos()
	mark := p.l.Snapshot()

	if p.l.Lookahead("struct", false) {
		name, err := p.l.ReadIdentifier(false)
		if err != nil {
			return nil, err
		}
		if p.l.Peek("{") {
			return p.parseStruct(name, pos)
		}
		// struct NAME used as a type: a declaration
		p.l.Restore(mark)
	} else if p.l.Lookahead("enum", false) {
		name, err := p.l.ReadIdentifier(false)
		if err != nil {
			return nil, err
		}
		if p.l.Peek("{") {
			return p.parseEnum(name, pos)
		}
		p.l.Restore(mark)
	} else if p.l.Lookahead("typedef", false) {
		typ, name, err := p.readDefinition(declNamed)
		if err != nil {
			return nil, err
		}
		if err := p.l.Consume(";"); err != nil {
			return nil, err
		}
		p.types.AddType(name)
		return cabs.TypedefDef{Name: name, Type: typ, Loc: pos}, nil
	}

	if !p.definitionIncoming() {
		return nil, p.l.Unexpected("struct, enum, typedef, FunctionDeclaration or VariableDeclaration")
	}
	typ, name, err := p.readDefinition(declNamed)
	if err != nil {
		return nil, err
	}

	if p.l.Lookahead("(", false) {
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		if p.l.Lookahead(";", false) {
			return cabs.FunDecl{Name: name, Return: typ, Params: params, Loc: pos}, nil
		}
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		return cabs.FunDef{Name: name, Return: typ, Params: params, Body: body, Loc: pos}, nil
	}

	init, err := p.parseInitializer()
	if err != nil {
		return nil, err
	}
	return cabs.GlobalVar{Name: name, Type: typ, Init: init, Loc: pos}, nil
}

// parseInitializer reads `= expr ;` or a bare `;`.
func (p *Parser) parseInitializer() (cabs.Expr, error) {
	if !p.l.Lookahead("=", false) {
		return nil, p.l.Consume(";")
	}
	init, err := p.requireExpression()
	if err != nil {
		return nil, err
	}
	return init, p.l.Consume(";")
}

func (p *Parser) parseStruct(name string, pos cabs.Position) (cabs.Definition, error) {
	// registered up front so members may point to the struct itself
	p.types.AddType(name)
	if err := p.l.Consume("{"); err != nil {
		return nil, err
	}
	def := cabs.StructDef{Name: name, Loc: pos}
	for p.definitionIncoming() {
		memberPos := p.l.Pos()
		typ, member, err := p.readDefinition(declNamed)
		if err != nil {
			return nil, err
		}
		if err := p.l.Consume(";"); err != nil {
			return nil, err
		}
		def.Members = append(def.Members, cabs.Decl{Name: member, Type: typ, Loc: memberPos})
	}
	if err := p.l.Consume("}"); err != nil {
		return nil, err
	}
	p.l.Lookahead(";", false)
	return def, nil
}

func (p *Parser) parseEnum(name string, pos cabs.Position) (cabs.Definition, error) {
	if err := p.l.Consume("{"); err != nil {
		return nil, err
	}
	def := cabs.EnumDef{Name: name, Loc: pos}
	for p.l.IdentifierIncoming() {
		member, err := p.l.ReadIdentifier(false)
		if err != nil {
			return nil, err
		}
		m := cabs.EnumMember{Name: member}
		if p.l.Lookahead("=", false) {
			if m.Value, err = p.requireExpression(); err != nil {
				return nil, err
			}
		}
		def.Members = append(def.Members, m)
		if !p.l.Lookahead(",", false) {
			break
		}
	}
	if err := p.l.Consume("}"); err != nil {
		return nil, err
	}
	p.l.Lookahead(";", false)
	p.types.AddType(name)
	return def, nil
}

// parseParams reads a parameter list after its opening parenthesis.
// Parameter names are optional.
func (p *Parser) parseParams() ([]cabs.Param, error) {
	var params []cabs.Param
	for p.definitionIncoming() {
		typ, name, err := p.readDefinition(declOptional)
		if err != nil {
			return nil, err
		}
		params = append(params, cabs.Param{Name: name, Type: typ})
		if p.l.Lookahead(")", false) {
			return params, nil
		}
		if err := p.l.Consume(","); err != nil {
			return nil, err
		}
	}
	return params, p.l.Consume(")")
}

// parseBody reads a brace-delimited statement list.
func (p *Parser) parseBody() ([]cabs.Stmt, error) {
	if err := p.l.Consume("{"); err != nil {
		return nil, err
	}
	var stmts []cabs.Stmt
	for !p.l.AtEOF() && !p.l.Peek("}") {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, p.l.Consume("}")
}

func (p *Parser) parseStatement() (cabs.Stmt, error) {
	pos := p.l.Pos()
	switch {
	case p.l.Lookahead("return", false):
		expr, err := p.parseExpression(";")
		if err != nil {
			return nil, err
		}
		return cabs.Return{Expr: expr, Loc: pos}, nil

	case p.l.Lookahead("if", false):
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		stmt := cabs.If{Cond: cond, Loc: pos}
		if stmt.Then, err = p.parseBody(); err != nil {
			return nil, err
		}
		if p.l.Lookahead("else", false) {
			stmt.HasElse = true
			if stmt.Else, err = p.parseBody(); err != nil {
				return nil, err
			}
		}
		return stmt, nil

	case p.l.Lookahead("while", false):
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		return cabs.While{Cond: cond, Body: body, Loc: pos}, nil

	case p.l.Lookahead("do", false):
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		if err := p.l.Consume("while"); err != nil {
			return nil, err
		}
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		if err := p.l.Consume(";"); err != nil {
			return nil, err
		}
		return cabs.DoWhile{Body: body, Cond: cond, Loc: pos}, nil

	case p.l.Lookahead("for", false):
		return p.parseFor(pos)

	case p.definitionIncoming():
		typ, name, err := p.readDefinition(declNamed)
		if err != nil {
			return nil, err
		}
		init, err := p.parseInitializer()
		if err != nil {
			return nil, err
		}
		return cabs.VarDecl{Name: name, Type: typ, Init: init, Loc: pos}, nil
	}

	expr, err := p.parseExpression(";")
	if err != nil {
		return nil, err
	}
	return cabs.ExprStmt{Expr: expr, Loc: pos}, nil
}

// parseCondition reads `( expr )`.
func (p *Parser) parseCondition() (cabs.Expr, error) {
	if err := p.l.Consume("("); err != nil {
		return nil, err
	}
	cond, err := p.requireExpression()
	if err != nil {
		return nil, err
	}
	return cond, p.l.Consume(")")
}

func (p *Parser) parseFor(pos cabs.Position) (cabs.Stmt, error) {
	if err := p.l.Consume("("); err != nil {
		return nil, err
	}
	init, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt := cabs.For{Init: init, Loc: pos}
	if stmt.Cond, err = p.parseExpression(";"); err != nil {
		return nil, err
	}
	if stmt.Step, err = p.parseExpression(")"); err != nil {
		return nil, err
	}
	if stmt.Body, err = p.parseBody(); err != nil {
		return nil, err
	}
	return stmt, nil
}
