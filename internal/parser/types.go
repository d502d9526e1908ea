package parser

import (
	"github.com/zonkey-lang/zonkey/internal/ast"
	"github.com/zonkey-lang/zonkey/internal/lexer"
)

// uiClasses are the preregistered standard-library element classes
// (spec.md §3). No user-defined class ever shares one of these names.
var uiClasses = map[string]bool{
	"Page": true, "Row": true, "Column": true, "Text": true,
	"Button": true, "Hyperlink": true, "Input": true, "Image": true,
}

// typeAnnotation is a parsed parameter type or `-> Type` annotation: a kind plus,
// for KindObject, the class name (including array element types such as
// "[Integer]").
type typeAnnotation struct {
	kind  ast.ValueKind
	class string
}

// parseType parses a single type name: a primitive keyword, a
// preregistered UI class name, a user class name, or `[ElemType]` for an
// array class.
func (p *Parser) parseType() (typeAnnotation, bool) {
	switch {
	case p.check(lexer.TYPE_INTEGER) || p.check(lexer.TYPE_FLOAT) || p.check(lexer.TYPE_STRING) || p.check(lexer.TYPE_BOOLEAN):
		tok := p.advance()
		return typeAnnotation{kind: primitiveKind(tok.Type)}, true
	case p.check(lexer.LBRACKET):
		p.advance()
		elem, ok := p.parseType()
		if !ok {
			return typeAnnotation{}, false
		}
		if _, ok := p.expect(lexer.RBRACKET, "']'"); !ok {
			return typeAnnotation{}, false
		}
		return typeAnnotation{kind: ast.KindObject, class: ast.ArrayClassName(elem.kind)}, true
	case p.check(lexer.IDENT):
		tok := p.advance()
		if uiClasses[tok.Literal] {
			return typeAnnotation{kind: ast.KindObject, class: tok.Literal}, true
		}
		if _, ok := p.classes[tok.Literal]; ok {
			return typeAnnotation{kind: ast.KindObject, class: tok.Literal}, true
		}
		p.errorAt(TagUnknownType, tok.Pos, "unknown type %q", tok.Literal)
		return typeAnnotation{}, false
	default:
		p.errorAt(TagUnknownType, p.peek().Pos, "expected a type name, got %q", p.peek().Literal)
		return typeAnnotation{}, false
	}
}

func primitiveKind(tt lexer.TokenType) ast.ValueKind {
	switch tt {
	case lexer.TYPE_INTEGER:
		return ast.KindInteger
	case lexer.TYPE_FLOAT:
		return ast.KindFloat
	case lexer.TYPE_STRING:
		return ast.KindString
	case lexer.TYPE_BOOLEAN:
		return ast.KindBoolean
	default:
		return ast.KindNone
	}
}
