package parser

import (
	"github.com/zonkey-lang/zonkey/internal/ast"
	"github.com/zonkey-lang/zonkey/internal/lexer"
)

func lookupCallableByName(callables []*ast.Callable, name string) (int, bool) {
	for i, c := range callables {
		if c.Name == name {
			return i, true
		}
	}
	return 0, false
}

// parseFunctionDecl parses `function name(params) [-> type] block` and
// registers the resulting Callable.
func (p *Parser) parseFunctionDecl() int {
	p.advance() // 'function'
	nameTok, _ := p.expect(lexer.IDENT, "a function name")

	if _, ok := lookupCallableByName(p.callables, nameTok.Literal); ok {
		p.errorAt(TagRedeclaredName, nameTok.Pos, "function %q is already declared", nameTok.Literal)
	}

	params := p.parseParamList()

	var retKind *ast.ValueKind
	if p.match(lexer.ARROW) {
		t, ok := p.parseType()
		if ok {
			k := t.kind
			retKind = &k
		}
	}

	id := len(p.callables)
	callable := &ast.Callable{Kind: ast.Source, Name: nameTok.Literal, Params: params, ReturnKind: retKind}
	p.callables = append(p.callables, callable)
	callable.Body = p.parseFunctionBody(params, retKind, "")
	return id
}

// parseParamList parses `(name Type, name Type, ...)`.
func (p *Parser) parseParamList() []ast.Param {
	p.expect(lexer.LPAREN, "'('")
	var params []ast.Param
	if !p.check(lexer.RPAREN) {
		for {
			nameTok, _ := p.expect(lexer.IDENT, "a parameter name")
			t, ok := p.parseType()
			if ok {
				params = append(params, ast.Param{Name: nameTok.Literal, Kind: t.kind})
			}
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RPAREN, "')'")
	return params
}

// parseFunctionBody opens a fresh frame (new slot allocator), binds
// parameters and an optional self receiver, parses the block, and
// validates that every path returns a value when retKind is non-nil
// (spec.md §4.2, "Control flow validity").
func (p *Parser) parseFunctionBody(params []ast.Param, retKind *ast.ValueKind, selfClass string) *ast.Block {
	savedSlots, savedScope, savedReturn, savedReturned, savedSelf, savedLoop :=
		p.slots, p.scope, p.funcReturn, p.returnedValue, p.selfClass, p.loopDepth

	p.slots = &slotAllocator{}
	p.scope = newScope(nil)
	p.funcReturn = retKind
	p.returnedValue = false
	p.selfClass = selfClass
	p.loopDepth = 0

	if selfClass != "" {
		slot := p.slots.next(ast.KindObject)
		p.scope.define("self", binding{kind: ast.KindObject, class: selfClass, slot: slot})
	}
	for _, param := range params {
		slot := p.slots.next(param.Kind)
		p.scope.define(param.Name, binding{kind: param.Kind, slot: slot})
	}

	block := p.parseBlock()

	if retKind != nil && !p.returnedValue {
		p.errorAt(TagDeclarationDidNotReturnValue, block.Pos(), "function does not return a value on every path")
	}

	p.slots, p.scope, p.funcReturn, p.returnedValue, p.selfClass, p.loopDepth =
		savedSlots, savedScope, savedReturn, savedReturned, savedSelf, savedLoop
	return block
}

// parseClassDecl parses a user class declaration: `class Name { method* }`.
// Per DESIGN.md's decision on the Open Question on class support, this is
// genuinely implemented (methods compile to ordinary Callables dispatched
// through the same slot-and-index machinery as free functions) but is not
// exercised by the standard library itself, which is built entirely from
// the preregistered UI and array classes.
func (p *Parser) parseClassDecl() {
	p.advance() // 'class'
	nameTok, _ := p.expect(lexer.IDENT, "a class name")

	if uiClasses[nameTok.Literal] {
		p.errorAt(TagRedeclaredName, nameTok.Pos, "%q is a reserved standard-library class name", nameTok.Literal)
	}
	if _, exists := p.classes[nameTok.Literal]; exists {
		p.errorAt(TagRedeclaredName, nameTok.Pos, "class %q is already declared", nameTok.Literal)
	}

	class := &ast.Class{Name: nameTok.Literal, Methods: map[string]*ast.Callable{}}
	p.classes[nameTok.Literal] = class

	p.expect(lexer.LBRACE, "'{'")
	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		if !p.check(lexer.FUNCTION) {
			p.errorAt(TagUnexpectedToken, p.peek().Pos, "expected a method declaration, got %q", p.peek().Literal)
			p.advance()
			continue
		}
		p.advance() // 'function'
		methodName, _ := p.expect(lexer.IDENT, "a method name")
		params := p.parseParamList()
		var retKind *ast.ValueKind
		if p.match(lexer.ARROW) {
			t, ok := p.parseType()
			if ok {
				k := t.kind
				retKind = &k
			}
		}
		id := len(p.callables)
		callable := &ast.Callable{Kind: ast.Source, Name: methodName.Literal, Params: params, ReturnKind: retKind}
		p.callables = append(p.callables, callable)
		callable.Body = p.parseFunctionBody(params, retKind, nameTok.Literal)
		class.Methods[methodName.Literal] = callable
		_ = id
	}
	p.expect(lexer.RBRACE, "'}'")
}
