package parser

import (
	"strconv"

	"github.com/zonkey-lang/zonkey/internal/ast"
	"github.com/zonkey-lang/zonkey/internal/lexer"
)

func parseInt(lit string) (int64, error) {
	return strconv.ParseInt(lit, 10, 64)
}

func parseFloat(lit string) (float64, error) {
	return strconv.ParseFloat(lit, 64)
}

// parseExprOrAssignStatement parses either an assignment (`target op
// value;`) or a bare expression statement (`expr;`), deciding which by
// whether an assignment operator follows the parsed left-hand side.
func (p *Parser) parseExprOrAssignStatement() ast.Stmt {
	stmt := p.parseAssignOrExprStatementNoTerminator()
	p.match(lexer.SEMICOLON)
	return stmt
}

func (p *Parser) parseAssignOrExprStatementNoTerminator() ast.Stmt {
	pos := p.peek().Pos
	left := p.parseExpression()

	if op, ok := p.matchAssignOp(); ok {
		lv, isLValue := left.(ast.LValue)
		if !isLValue {
			p.errorAt(TagUnexpectedToken, left.Pos(), "left-hand side of assignment is not a variable or property")
			p.parseExpression()
			return ast.NewExprStmt(pos, left)
		}
		value := p.parseExpression()
		p.checkAssignOpLegal(lv.Kind(), op, pos)
		if value != nil && value.Kind() != lv.Kind() {
			p.errorAt(TagBinaryUnmatchingTypes, value.Pos(), "cannot assign %s to a %s target", kindName(value.Kind()), kindName(lv.Kind()))
		}
		return ast.NewAssignStmt(pos, op, lv, value)
	}

	return ast.NewExprStmt(pos, left)
}

func (p *Parser) matchAssignOp() (ast.AssignOp, bool) {
	switch {
	case p.match(lexer.ASSIGN):
		return ast.Assign, true
	case p.match(lexer.PLUS_EQUAL):
		return ast.AddAssign, true
	case p.match(lexer.MINUS_EQUAL):
		return ast.SubAssign, true
	case p.match(lexer.STAR_EQUAL):
		return ast.MulAssign, true
	case p.match(lexer.SLASH_EQUAL):
		return ast.DivAssign, true
	}
	return 0, false
}

func (p *Parser) checkAssignOpLegal(kind ast.ValueKind, op ast.AssignOp, pos lexer.Position) {
	switch kind {
	case ast.KindInteger, ast.KindFloat:
		return // all five operators legal
	case ast.KindString:
		if op != ast.Assign && op != ast.AddAssign {
			p.errorAt(TagAssignmentOperatorInvalidForType, pos, "only '=' and '+=' are valid for String")
		}
	default:
		if op != ast.Assign {
			p.errorAt(TagAssignmentOperatorInvalidForType, pos, "only '=' is valid for %s", kindName(kind))
		}
	}
}

// --- precedence climbing ---

func (p *Parser) parseExpression() ast.Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.check(lexer.OR) {
		tok := p.advance()
		right := p.parseAnd()
		left = p.buildBoolOp(tok.Pos, ast.OpOr, left, right)
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseEquality()
	for p.check(lexer.AND) {
		tok := p.advance()
		right := p.parseEquality()
		left = p.buildBoolOp(tok.Pos, ast.OpAnd, left, right)
	}
	return left
}

func (p *Parser) buildBoolOp(pos lexer.Position, op ast.BinaryOp, left, right ast.Expr) ast.Expr {
	if left.Kind() != ast.KindBoolean || right.Kind() != ast.KindBoolean {
		p.errorAt(TagBinaryUnmatchingTypes, pos, "'and'/'or' require Boolean operands")
		return ast.NewBooleanLiteral(pos, false)
	}
	return ast.NewBinary(pos, ast.KindBoolean, op, left, right)
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseComparison()
	for p.check(lexer.EQUAL_EQUAL) || p.check(lexer.BANG_EQUAL) {
		tok := p.advance()
		right := p.parseComparison()
		op := ast.OpEq
		if tok.Type == lexer.BANG_EQUAL {
			op = ast.OpNeq
		}
		if !equalityLegal(left.Kind()) || left.Kind() != right.Kind() {
			p.errorAt(TagComparisionInvalidForType, tok.Pos, "'==' / '!=' require both sides to share a comparable kind")
			left = ast.NewBooleanLiteral(tok.Pos, false)
			continue
		}
		left = ast.NewBinary(tok.Pos, ast.KindBoolean, op, left, right)
	}
	return left
}

func equalityLegal(k ast.ValueKind) bool {
	switch k {
	case ast.KindInteger, ast.KindFloat, ast.KindString, ast.KindBoolean:
		return true
	}
	return false
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAddSub()
	for p.check(lexer.LESS) || p.check(lexer.LESS_EQUAL) || p.check(lexer.GREATER) || p.check(lexer.GREATER_EQUAL) {
		tok := p.advance()
		right := p.parseAddSub()
		if !isNumeric(left.Kind()) || left.Kind() != right.Kind() {
			p.errorAt(TagComparisionInvalidForType, tok.Pos, "comparison operators require matching numeric operands")
			left = ast.NewBooleanLiteral(tok.Pos, false)
			continue
		}
		left = ast.NewBinary(tok.Pos, ast.KindBoolean, comparisonOp(tok.Type), left, right)
	}
	return left
}

func comparisonOp(tt lexer.TokenType) ast.BinaryOp {
	switch tt {
	case lexer.LESS:
		return ast.OpLt
	case lexer.LESS_EQUAL:
		return ast.OpLte
	case lexer.GREATER:
		return ast.OpGt
	default:
		return ast.OpGte
	}
}

func isNumeric(k ast.ValueKind) bool { return k == ast.KindInteger || k == ast.KindFloat }

func (p *Parser) parseAddSub() ast.Expr {
	left := p.parseMulDiv()
	for p.check(lexer.PLUS) || p.check(lexer.MINUS) {
		tok := p.advance()
		right := p.parseMulDiv()
		if tok.Type == lexer.PLUS && left.Kind() == ast.KindString && right.Kind() == ast.KindString {
			left = ast.NewBinary(tok.Pos, ast.KindString, ast.OpAdd, left, right)
			continue
		}
		if !isNumeric(left.Kind()) || left.Kind() != right.Kind() {
			p.errorAt(TagBinaryUnmatchingTypes, tok.Pos, "'+'/'-' require both operands to share a numeric (or, for '+', String) kind")
			left = ast.NewIntegerLiteral(tok.Pos, 0)
			continue
		}
		op := ast.OpAdd
		if tok.Type == lexer.MINUS {
			op = ast.OpSub
		}
		left = ast.NewBinary(tok.Pos, left.Kind(), op, left, right)
	}
	return left
}

func (p *Parser) parseMulDiv() ast.Expr {
	left := p.parseUnary()
	for p.check(lexer.STAR) || p.check(lexer.SLASH) {
		tok := p.advance()
		right := p.parseUnary()
		if !isNumeric(left.Kind()) || left.Kind() != right.Kind() {
			p.errorAt(TagBinaryUnmatchingTypes, tok.Pos, "'*'/'/' require both operands to share a numeric kind")
			left = ast.NewIntegerLiteral(tok.Pos, 0)
			continue
		}
		op := ast.OpMul
		if tok.Type == lexer.SLASH {
			op = ast.OpDiv
		}
		left = ast.NewBinary(tok.Pos, left.Kind(), op, left, right)
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.check(lexer.MINUS) {
		tok := p.advance()
		operand := p.parseUnary()
		if !isNumeric(operand.Kind()) {
			p.errorAt(TagUnaryInvalidForType, tok.Pos, "unary '-' requires a numeric operand, got %s", kindName(operand.Kind()))
			return ast.NewIntegerLiteral(tok.Pos, 0)
		}
		return ast.NewUnary(tok.Pos, operand.Kind(), ast.OpNeg, operand)
	}
	if p.check(lexer.BANG) {
		tok := p.advance()
		operand := p.parseUnary()
		if operand.Kind() != ast.KindBoolean {
			p.errorAt(TagUnaryInvalidForType, tok.Pos, "unary '!' requires a Boolean operand, got %s", kindName(operand.Kind()))
			return ast.NewBooleanLiteral(tok.Pos, false)
		}
		return ast.NewUnary(tok.Pos, ast.KindBoolean, ast.OpNot, operand)
	}
	return p.parseCallChain()
}

// parseCallChain parses a primary expression followed by any number of
// `.name`, `.name(args)`, or `[index]` postfix operators.
func (p *Parser) parseCallChain() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.check(lexer.DOT):
			p.advance()
			nameTok, _ := p.expect(lexer.IDENT, "a method or property name")
			if p.check(lexer.LPAREN) {
				args := p.parseArgs()
				expr = p.resolveMethodCall(expr, nameTok.Literal, nameTok.Pos, args)
			} else {
				expr = p.resolvePropertyAccess(expr, nameTok)
			}
		case p.check(lexer.LBRACKET):
			tok := p.advance()
			index := p.parseExpression()
			p.expect(lexer.RBRACKET, "']'")
			class := classOf(expr)
			if !isArrayClass(class) {
				p.errorAt(TagIndexRequiresArray, tok.Pos, "indexing requires an array")
				expr = ast.NewIntegerLiteral(tok.Pos, 0)
				continue
			}
			if index.Kind() != ast.KindInteger {
				p.errorAt(TagArgumentKindMismatch, index.Pos(), "array index must be Integer")
			}
			elemKind := elemKindFromClass(class)
			call := ast.NewNativeCall(tok.Pos, elemKind, ast.NativeArrayGet, expr, []ast.Expr{index})
			call.Class = classNameFor(elemKind, "")
			expr = call
		default:
			return expr
		}
	}
}

func (p *Parser) resolvePropertyAccess(receiver ast.Expr, nameTok lexer.Token) ast.Expr {
	class := classOf(receiver)
	if !isElement(class) {
		p.errorAt(TagUnknownMethod, nameTok.Pos, "%s has no property %q", class, nameTok.Literal)
		return ast.NewIntegerLiteral(nameTok.Pos, 0)
	}
	slot, ok := propertySlots[nameTok.Literal]
	if !ok {
		p.errorAt(TagUnknownMethod, nameTok.Pos, "%s has no property %q", class, nameTok.Literal)
		return ast.NewIntegerLiteral(nameTok.Pos, 0)
	}
	return ast.NewPropertyRef(nameTok.Pos, propertyKind(nameTok.Literal), receiver, slot, nameTok.Literal)
}

func (p *Parser) parseArgs() []ast.Expr {
	p.expect(lexer.LPAREN, "'('")
	var args []ast.Expr
	if !p.check(lexer.RPAREN) {
		for {
			args = append(args, p.parseExpression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RPAREN, "')'")
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch tok.Type {
	case lexer.INTEGER:
		p.advance()
		return parseIntLiteral(p, tok)
	case lexer.FLOAT:
		p.advance()
		return parseFloatLiteral(p, tok)
	case lexer.STRING:
		p.advance()
		return ast.NewStringLiteral(tok.Pos, tok.Literal)
	case lexer.TRUE:
		p.advance()
		return ast.NewBooleanLiteral(tok.Pos, true)
	case lexer.FALSE:
		p.advance()
		return ast.NewBooleanLiteral(tok.Pos, false)
	case lexer.SELF:
		p.advance()
		if p.selfClass == "" {
			p.errorAt(TagSelfOutsideMethod, tok.Pos, "'self' used outside a method body")
			return ast.NewIntegerLiteral(tok.Pos, 0)
		}
		b, _ := p.scope.resolve("self")
		ref := ast.NewVarRef(tok.Pos, ast.KindObject, b.slot, "self")
		ref.Class = b.class
		return ref
	case lexer.LPAREN:
		p.advance()
		p.subExprDepth++
		if p.subExprDepth > SubExpressionLimit {
			p.errorAt(TagSubExpressionLimit, tok.Pos, "expression nesting exceeds the limit of %d", SubExpressionLimit)
		}
		inner := p.parseExpression()
		p.expect(lexer.RPAREN, "')'")
		p.subExprDepth--
		return inner
	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	case lexer.TYPE_INTEGER, lexer.TYPE_FLOAT, lexer.TYPE_STRING, lexer.TYPE_BOOLEAN:
		return p.parseCastCall(tok)
	case lexer.IDENT:
		p.advance()
		return p.parseIdentifierExpr(tok)
	default:
		p.errorAt(TagUnexpectedToken, tok.Pos, "unexpected token %q in expression", tok.Literal)
		// A '}' or EOF here is the enclosing block's own closer, not
		// garbage to discard: leave it for parseBlock to see. Anything
		// else is consumed and flags the parser as desynced so
		// parseBlock's statement loop resynchronizes at the next ';',
		// keyword, or '}' instead of continuing from a bogus position.
		if tok.Type != lexer.RBRACE && tok.Type != lexer.EOF {
			p.advance()
			p.desynced = true
		}
		return ast.NewIntegerLiteral(tok.Pos, 0)
	}
}

func parseIntLiteral(p *Parser, tok lexer.Token) ast.Expr {
	v, err := parseInt(tok.Literal)
	if err != nil {
		p.errorAt(TagUnexpectedToken, tok.Pos, "invalid integer literal %q", tok.Literal)
		return ast.NewIntegerLiteral(tok.Pos, 0)
	}
	return ast.NewIntegerLiteral(tok.Pos, v)
}

func parseFloatLiteral(p *Parser, tok lexer.Token) ast.Expr {
	v, err := parseFloat(tok.Literal)
	if err != nil {
		p.errorAt(TagUnexpectedToken, tok.Pos, "invalid float literal %q", tok.Literal)
		return ast.NewFloatLiteral(tok.Pos, 0)
	}
	return ast.NewFloatLiteral(tok.Pos, v)
}

// parseCastCall parses `Integer.from(expr)` / `Float.from(expr)`.
func (p *Parser) parseCastCall(tok lexer.Token) ast.Expr {
	p.advance() // consume the type keyword
	targetKind := primitiveKind(tok.Type)
	p.expect(lexer.DOT, "'.'")
	methodTok, _ := p.expect(lexer.IDENT, "'from'")
	args := p.parseArgs()

	if methodTok.Literal != "from" {
		p.errorAt(TagUnknownMethod, methodTok.Pos, "%s has no method %q", kindName(targetKind), methodTok.Literal)
		return ast.NewIntegerLiteral(tok.Pos, 0)
	}
	if len(args) != 1 {
		p.errorAt(TagArgumentCountMismatch, tok.Pos, "%s.from() takes exactly 1 argument", kindName(targetKind))
		return ast.NewIntegerLiteral(tok.Pos, 0)
	}
	src := args[0]
	op, ok := castOp(src.Kind(), targetKind)
	if !ok {
		p.errorAt(TagInvalidCast, src.Pos(), "cannot cast %s to %s", kindName(src.Kind()), kindName(targetKind))
		return ast.NewIntegerLiteral(tok.Pos, 0)
	}
	return ast.NewNativeCall(tok.Pos, targetKind, op, nil, []ast.Expr{src})
}

func castOp(from, to ast.ValueKind) (ast.NativeOp, bool) {
	switch {
	case from == ast.KindString && to == ast.KindInteger:
		return ast.NativeIntegerFromString, true
	case from == ast.KindString && to == ast.KindFloat:
		return ast.NativeFloatFromString, true
	case from == ast.KindFloat && to == ast.KindInteger:
		return ast.NativeIntegerFromFloat, true
	case from == ast.KindInteger && to == ast.KindFloat:
		return ast.NativeFloatFromInteger, true
	default:
		return 0, false
	}
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	open := p.advance() // '['
	var elements []ast.Expr
	if !p.check(lexer.RBRACKET) {
		for {
			elements = append(elements, p.parseExpression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RBRACKET, "']'")

	elemKind := ast.KindInteger
	if len(elements) > 0 {
		elemKind = elements[0].Kind()
		for _, e := range elements[1:] {
			if e.Kind() != elemKind {
				p.errorAt(TagBinaryUnmatchingTypes, e.Pos(), "array elements must share a kind")
			}
		}
	}
	return ast.NewArrayLiteral(open.Pos, elemKind, elements)
}

func (p *Parser) parseIdentifierExpr(tok lexer.Token) ast.Expr {
	if p.check(lexer.LPAREN) {
		args := p.parseArgs()
		return p.resolveIdentifierCall(tok.Literal, tok.Pos, args)
	}

	b, ok := p.scope.resolve(tok.Literal)
	if !ok {
		p.errorAt(TagUndeclaredName, tok.Pos, "undeclared identifier %q", tok.Literal)
		return ast.NewIntegerLiteral(tok.Pos, 0)
	}
	ref := ast.NewVarRef(tok.Pos, b.kind, b.slot, tok.Literal)
	ref.Class = b.class
	return ref
}
