package parser

import (
	"github.com/zonkey-lang/zonkey/internal/ast"
	"github.com/zonkey-lang/zonkey/internal/lexer"
)

// parseBlockNewScope opens a new name scope before parsing a block; used
// at the top of a function/method/start body where no enclosing block has
// already pushed one.
func (p *Parser) parseBlockNewScope() *ast.Block {
	p.scope = newScope(p.scope)
	b := p.parseBlock()
	p.scope = p.scope.parent
	return b
}

// parseBlock parses `{ stmt* }`, pushing a nested name scope and
// snapshotting slot counters on entry, then truncating both on exit
// (spec.md §3's "Block records the counter values at entry").
func (p *Parser) parseBlock() *ast.Block {
	openTok, _ := p.expect(lexer.LBRACE, "'{'")
	p.scope = newScope(p.scope)
	snap := p.slots.snapshot()

	var stmts []ast.Stmt
	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		if s := p.parseStatement(); s != nil {
			stmts = append(stmts, s)
		}
		// spec.md §4.2's "Unwind resumes at next synchronization point":
		// a statement that swallowed an unexpected token (via
		// parsePrimary's default branch) leaves the cursor somewhere
		// the statement loop above cannot trust; resync to the next
		// ';', statement-starter keyword, or matching '}' before
		// letting the loop condition re-check.
		if p.desynced {
			p.desynced = false
			if p.synchronizeStatement() == end {
				break
			}
		}
	}
	p.expect(lexer.RBRACE, "'}'")

	p.slots.restore(snap)
	p.scope = p.scope.parent
	return ast.NewBlock(openTok.Pos, stmts)
}

// synchronizeStatement implements the block-level half of spec.md §4.2's
// two-level recovery scheme. It skips forward until the cursor sits on a
// ';' (consumed), a statement-starter keyword, or the enclosing block's
// own '}' — whichever comes first — and reports Unwind. If EOF is reached
// first there is no sound resumption point left in this block, so it
// reports End and the caller stops parsing statements for this block.
func (p *Parser) synchronizeStatement() recoveryMode {
	for !p.check(lexer.EOF) {
		switch p.peek().Type {
		case lexer.SEMICOLON:
			p.advance()
			return unwind
		case lexer.RBRACE, lexer.LET, lexer.IF, lexer.WHILE, lexer.FOR,
			lexer.LOOP, lexer.BREAK, lexer.CONTINUE, lexer.RETURN, lexer.LBRACE:
			return unwind
		}
		p.advance()
	}
	return end
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.peek().Type {
	case lexer.LET:
		return p.parseVarDecl()
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.LOOP:
		return p.parseLoop()
	case lexer.BREAK:
		tok := p.advance()
		p.match(lexer.SEMICOLON)
		if p.loopDepth == 0 {
			p.errorAt(TagBreakOutsideLoop, tok.Pos, "'break' used outside of a loop")
		}
		return ast.NewBreakStmt(tok.Pos)
	case lexer.CONTINUE:
		tok := p.advance()
		p.match(lexer.SEMICOLON)
		if p.loopDepth == 0 {
			p.errorAt(TagContinueOutsideLoop, tok.Pos, "'continue' used outside of a loop")
		}
		return ast.NewContinueStmt(tok.Pos)
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.SEMICOLON:
		p.advance()
		return nil
	default:
		return p.parseExprOrAssignStatement()
	}
}

func (p *Parser) parseVarDecl() ast.Stmt {
	letTok := p.advance() // 'let'
	nameTok, _ := p.expect(lexer.IDENT, "a variable name")
	if nameTok.Literal == "self" {
		p.errorAt(TagSelfRedeclared, nameTok.Pos, "'self' cannot be used as a variable name")
	}
	p.expect(lexer.ASSIGN, "'='")
	init := p.parseExpression()
	p.match(lexer.SEMICOLON)

	if init != nil && init.Kind() == ast.KindNone {
		p.errorAt(TagVariableDeclarationExprEvalNone, init.Pos(), "cannot initialize %q from an expression that evaluates to None", nameTok.Literal)
		return ast.NewVarDecl(letTok.Pos, ast.KindInteger, 0, nameTok.Literal, init)
	}

	kind := ast.KindInteger
	var class string
	if init != nil {
		kind = init.Kind()
		class = classOf(init)
	}
	slot := p.slots.next(kind)
	if _, redeclared := p.scope.names[nameTok.Literal]; redeclared {
		p.errorAt(TagRedeclaredName, nameTok.Pos, "%q is already declared in this scope", nameTok.Literal)
	}
	p.scope.define(nameTok.Literal, binding{kind: kind, class: class, slot: slot})

	return ast.NewVarDecl(letTok.Pos, kind, slot, nameTok.Literal, init)
}

func (p *Parser) parseIf() ast.Stmt {
	ifTok := p.advance()
	p.expect(lexer.LPAREN, "'('")
	cond := p.parseExpression()
	p.expect(lexer.RPAREN, "')'")
	p.requireBoolean(cond)

	before := p.returnedValue
	p.returnedValue = false
	thenBlock := p.parseBlock()
	thenReturned := p.returnedValue

	var elseBlock *ast.Block
	elseReturned := false
	if p.match(lexer.ELSE) {
		if p.check(lexer.IF) {
			// else-if: wrap the nested if in a synthetic single-statement block
			// so IfStmt.Else always has block shape.
			p.returnedValue = false
			nested := p.parseIf()
			elseBlock = ast.NewBlock(nested.Pos(), []ast.Stmt{nested})
			elseReturned = p.returnedValue
		} else {
			p.returnedValue = false
			elseBlock = p.parseBlock()
			elseReturned = p.returnedValue
		}
	}
	// A branch join only guarantees a return if every arm does
	// (spec.md §4.2's "returned_value flag ... resets at branch joins").
	p.returnedValue = before || (thenReturned && elseBlock != nil && elseReturned)

	return ast.NewIfStmt(ifTok.Pos, cond, thenBlock, elseBlock)
}

func (p *Parser) parseWhile() ast.Stmt {
	tok := p.advance()
	p.expect(lexer.LPAREN, "'('")
	cond := p.parseExpression()
	p.expect(lexer.RPAREN, "')'")
	p.requireBoolean(cond)

	p.loopDepth++
	savedReturned := p.returnedValue
	p.returnedValue = false
	body := p.parseBlock()
	// a loop may not execute, so it never proves a return on all paths
	p.returnedValue = savedReturned
	p.loopDepth--

	return ast.NewWhileStmt(tok.Pos, cond, body)
}

// parseFor desugars `for (let i = 0, cond, step) { body }` into
// `{ let i = 0; while (cond) { body; step; } }`. spec.md §3's Statement
// list has no dedicated For variant, so this sugar never reaches the
// evaluator as its own node.
func (p *Parser) parseFor() ast.Stmt {
	forTok := p.advance()
	p.expect(lexer.LPAREN, "'('")

	p.scope = newScope(p.scope)
	snap := p.slots.snapshot()

	init := p.parseVarDecl()
	p.expect(lexer.COMMA, "','")
	cond := p.parseExpression()
	p.requireBoolean(cond)
	p.expect(lexer.COMMA, "','")
	step := p.parseAssignOrExprStatementNoTerminator()
	p.expect(lexer.RPAREN, "')'")

	p.loopDepth++
	savedReturned := p.returnedValue
	p.returnedValue = false
	body := p.parseBlock()
	p.returnedValue = savedReturned
	p.loopDepth--

	bodyStmts := append(append([]ast.Stmt{}, body.Stmts...), step)
	whileStmt := ast.NewWhileStmt(forTok.Pos, cond, ast.NewBlock(body.Pos(), bodyStmts))

	p.slots.restore(snap)
	p.scope = p.scope.parent

	return ast.NewBlock(forTok.Pos, []ast.Stmt{init, whileStmt})
}

func (p *Parser) parseLoop() ast.Stmt {
	tok := p.advance()
	p.loopDepth++
	savedReturned := p.returnedValue
	p.returnedValue = false
	body := p.parseBlock()
	p.returnedValue = savedReturned
	p.loopDepth--
	return ast.NewLoopStmt(tok.Pos, body)
}

func (p *Parser) parseReturn() ast.Stmt {
	tok := p.advance()
	if p.check(lexer.SEMICOLON) || p.check(lexer.RBRACE) {
		p.match(lexer.SEMICOLON)
		if p.funcReturn != nil {
			p.errorAt(TagReturnMissingValue, tok.Pos, "function declares a return type but this 'return' has no value")
		}
		p.returnedValue = true
		return ast.NewReturnStmt(tok.Pos, nil)
	}
	value := p.parseExpression()
	p.match(lexer.SEMICOLON)

	if p.funcReturn == nil {
		p.errorAt(TagReturnValueInVoidFunction, tok.Pos, "function has no declared return type but this 'return' yields a value")
	} else if value != nil && value.Kind() != *p.funcReturn {
		p.errorAt(TagBinaryUnmatchingTypes, value.Pos(), "return value has kind %s, function declares %s", kindName(value.Kind()), kindName(*p.funcReturn))
	}
	p.returnedValue = true
	return ast.NewReturnStmt(tok.Pos, value)
}

func (p *Parser) requireBoolean(e ast.Expr) {
	if e != nil && e.Kind() != ast.KindBoolean {
		p.errorAt(TagComparisionInvalidForType, e.Pos(), "condition must be Boolean, got %s", kindName(e.Kind()))
	}
}

func classOf(e ast.Expr) string {
	type classed interface{ ClassName() string }
	if c, ok := e.(classed); ok {
		return c.ClassName()
	}
	return ""
}
