// Package parser performs lexing's sequel in a single recursive-descent
// pass: it builds the typed AST while simultaneously resolving names to
// slots, checking expression kinds, and validating loop/return control
// flow (spec.md §4.2).
package parser

import (
	"github.com/zonkey-lang/zonkey/internal/ast"
	"github.com/zonkey-lang/zonkey/internal/lexer"
)

// Parser consumes a token vector and produces a typed ast.Program, or a
// list of accumulated diagnostics if parsing failed anywhere.
type Parser struct {
	tokens []lexer.Token
	pos    int

	errs []*Error

	scope *scope
	slots *slotAllocator

	loopDepth     int
	returnedValue bool
	funcReturn    *ast.ValueKind // nil outside a function body, or for a None-returning one
	selfClass     string         // "" outside a method body

	subExprDepth int

	callables []*ast.Callable
	classes   map[string]*ast.Class
	sawStart  bool

	// desynced is set when a parse step consumed a token it had no rule
	// for (parsePrimary's default branch and similar unexpected-token
	// fallbacks) and cleared once parseBlock has resynchronized; it is
	// the signal that the statement-level recovery in parseBlock needs
	// to skip ahead rather than trust the cursor's current position.
	desynced bool
}

// New constructs a Parser over an already-lexed token vector.
func New(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens:  tokens,
		scope:   newScope(nil),
		slots:   &slotAllocator{},
		classes: map[string]*ast.Class{},
	}
}

// Parse lexes and parses src in one call, the convenience entry point
// used by the CLI and the embeddable facade.
func Parse(src string) (*ast.Program, []*Error, *lexer.Error) {
	tokens, lexErr := lexer.Lex(src)
	if lexErr != nil {
		return nil, nil, lexErr
	}
	p := New(tokens)
	prog, errs := p.ParseProgram()
	return prog, errs, nil
}

// ParseProgram parses `{ start block | function-def | class-def }*`.
func (p *Parser) ParseProgram() (*ast.Program, []*Error) {
	var start *ast.Block

	for !p.check(lexer.EOF) {
		switch {
		case p.check(lexer.START):
			block := p.parseStartDecl()
			if start == nil {
				start = block
			}
		case p.check(lexer.FUNCTION):
			p.parseFunctionDecl()
		case p.check(lexer.CLASS):
			p.parseClassDecl()
		default:
			p.errorAt(TagUnexpectedToken, p.peek().Pos, "expected 'start', 'function', or 'class', got %q", p.peek().Literal)
			p.synchronizeGlobal()
		}
	}

	if start == nil {
		p.errorAt(TagMissingStart, p.peek().Pos, "program has no 'start' block")
		return nil, p.errs
	}
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return &ast.Program{Start: start, Callables: p.callables, Classes: p.classes}, nil
}

func (p *Parser) parseStartDecl() *ast.Block {
	startTok := p.advance() // consume 'start'
	if p.sawStart {
		p.errorAt(TagMultipleStart, startTok.Pos, "a program may only have one 'start' block")
	}
	p.sawStart = true

	p.slots = &slotAllocator{}
	p.funcReturn = nil
	p.selfClass = ""
	block := p.parseBlockNewScope()
	return block
}

// synchronizeGlobal skips tokens until the next top-level declaration
// keyword, letting the parser keep reporting errors after a malformed
// top-level form (spec.md §4.2, "Error handling & synchronization").
func (p *Parser) synchronizeGlobal() {
	for !p.check(lexer.EOF) {
		switch p.peek().Type {
		case lexer.START, lexer.FUNCTION, lexer.CLASS:
			return
		}
		p.advance()
	}
}

// --- token cursor helpers ---

func (p *Parser) peek() lexer.Token  { return p.tokens[p.pos] }
func (p *Parser) previous() lexer.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) check(tt lexer.TokenType) bool {
	return p.peek().Type == tt
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if tok.Type != lexer.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes a token of type tt or reports TagUnexpectedToken and
// returns ok=false, leaving the cursor where it is so the caller's
// synchronization logic decides what to skip.
func (p *Parser) expect(tt lexer.TokenType, what string) (lexer.Token, bool) {
	if p.check(tt) {
		return p.advance(), true
	}
	p.errorAt(TagUnexpectedToken, p.peek().Pos, "expected %s, got %q", what, p.peek().Literal)
	return lexer.Token{}, false
}

func (p *Parser) errorAt(tag ErrorTag, pos lexer.Position, format string, args ...any) {
	p.errs = append(p.errs, newError(tag, pos, format, args...))
}

// Errors returns every diagnostic accumulated so far.
func (p *Parser) Errors() []*Error { return p.errs }
