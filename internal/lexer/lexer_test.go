package lexer

import "testing"

func tokenTypes(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func assertTypes(t *testing.T, src string, want ...TokenType) []Token {
	t.Helper()
	toks, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q) returned unexpected error: %v", src, err)
	}
	want = append(want, EOF)
	got := tokenTypes(toks)
	if len(got) != len(want) {
		t.Fatalf("Lex(%q) = %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Lex(%q)[%d] = %v, want %v", src, i, got[i], want[i])
		}
	}
	return toks
}

func TestLexArithmeticExpression(t *testing.T) {
	assertTypes(t, "1 + 2 * 3", INTEGER, PLUS, INTEGER, STAR, INTEGER)
}

func TestLexCompoundOperators(t *testing.T) {
	assertTypes(t, "!= == <= >= += -= -> *= /=",
		BANG_EQUAL, EQUAL_EQUAL, LESS_EQUAL, GREATER_EQUAL,
		PLUS_EQUAL, MINUS_EQUAL, ARROW, STAR_EQUAL, SLASH_EQUAL)
}

func TestLexKeywordsAndIdentifiers(t *testing.T) {
	toks := assertTypes(t, "let x = start", LET, IDENT, ASSIGN, START)
	if toks[1].Literal != "x" {
		t.Errorf("identifier literal = %q, want x", toks[1].Literal)
	}
}

func TestLexFloatVsInteger(t *testing.T) {
	toks := assertTypes(t, "42 3.14", INTEGER, FLOAT)
	if toks[0].Literal != "42" || toks[1].Literal != "3.14" {
		t.Errorf("literals = %q, %q", toks[0].Literal, toks[1].Literal)
	}
}

func TestLexFloatTwoDecimalPointsFails(t *testing.T) {
	_, err := Lex("1.2.3")
	if err == nil || err.Kind != FloatMoreThanOneDecimalPoint {
		t.Fatalf("expected FloatMoreThanOneDecimalPoint, got %v", err)
	}
}

func TestLexStringSpansNewlines(t *testing.T) {
	toks := assertTypes(t, "\"hello\nworld\"", STRING)
	if toks[0].Literal != "hello\nworld" {
		t.Errorf("literal = %q", toks[0].Literal)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, err := Lex(`"forgot the quote`)
	if err == nil || err.Kind != UnterminatedString {
		t.Fatalf("expected UnterminatedString, got %v", err)
	}
}

func TestLexUnexpectedGrapheme(t *testing.T) {
	_, err := Lex("let x = @")
	if err == nil || err.Kind != UnexpectedGrapheme {
		t.Fatalf("expected UnexpectedGrapheme, got %v", err)
	}
}

func TestLexPositionsAreGraphemeIndices(t *testing.T) {
	// "é" (U+00E9, two UTF-8 bytes) is one grapheme, so the identifier spans [0:1).
	toks := assertTypes(t, "é + 1", IDENT, PLUS, INTEGER)
	if toks[0].Pos.Start != 0 || toks[0].Pos.End != 1 {
		t.Errorf("identifier span = %s, want [0:1)", toks[0].Pos)
	}
}

func TestLexMethodCallDotNotConsumedByNumber(t *testing.T) {
	assertTypes(t, "5.toString()", INTEGER, DOT, IDENT, LPAREN, RPAREN)
}

func TestLexLineComment(t *testing.T) {
	assertTypes(t, "1 // trailing comment\n+ 2", INTEGER, PLUS, INTEGER)
}
