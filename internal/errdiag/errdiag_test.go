package errdiag

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/zonkey-lang/zonkey/internal/interp"
	"github.com/zonkey-lang/zonkey/internal/lexer"
	"github.com/zonkey-lang/zonkey/internal/parser"
)

// TestFormatLexError pins scenario 6 from spec.md §8: an unterminated
// string literal quotes the line with `<` at the opening quote and ends
// with the "Cannot start execution" footer. Snapshot-tested per
// SPEC_FULL.md §2 ("diagnostic formatting is deterministic" is exactly a
// snapshot-testable claim).
func TestFormatLexError(t *testing.T) {
	src := "start {\n  print(\"foo);\n}\n"
	graphemes := lexer.Graphemes(src)
	_, lexErr := lexer.Lex(src)
	if lexErr == nil {
		t.Fatal("expected a lex error for an unterminated string")
	}

	got := FormatLexError(lexErr, graphemes)
	snaps.MatchSnapshot(t, got)
}

func TestFormatParseErrors(t *testing.T) {
	src := "start { break; }\n"
	graphemes := lexer.Graphemes(src)
	_, errs, lexErr := parser.Parse(src)
	if lexErr != nil {
		t.Fatalf("unexpected lex error: %v", lexErr)
	}
	if len(errs) == 0 {
		t.Fatal("expected a parse error for break outside a loop")
	}

	got := FormatParseErrors(errs, graphemes)
	snaps.MatchSnapshot(t, got)
}

func TestFormatRuntimeError(t *testing.T) {
	src := "start { let z = 0; print(1 / z); }\n"
	graphemes := lexer.Graphemes(src)
	pos := lexer.Position{Start: 26, End: 31}
	err := &interp.RuntimeError{Kind: interp.ErrDivisionByZero, Pos: pos, Message: "division by zero"}

	got := FormatRuntimeError(err, graphemes)
	snaps.MatchSnapshot(t, got)
}

func TestQuoteSpanBracketsExactRange(t *testing.T) {
	src := "start { let x = bogus; }"
	graphemes := lexer.Graphemes(src)
	span := lexer.Position{Start: 16, End: 21} // "bogus"

	got := quoteSpan(graphemes, span)
	want := "   1 | start { let x = <bogus>; }"
	if got != want {
		t.Fatalf("quoteSpan() = %q, want %q", got, want)
	}
}

func TestLocateLineAcrossNewlines(t *testing.T) {
	src := "start {\n  let x = 1;\n}\n"
	graphemes := lexer.Graphemes(src)

	// index of 'l' in "let" on the second line
	idx := 10
	lineNo, lineStart, lineEnd := locateLine(graphemes, idx)
	if lineNo != 2 {
		t.Fatalf("lineNo = %d, want 2", lineNo)
	}
	got := join(graphemes[lineStart:lineEnd])
	if got != "  let x = 1;" {
		t.Fatalf("line text = %q, want %q", got, "  let x = 1;")
	}
}

func join(gs []string) string {
	var s string
	for _, g := range gs {
		s += g
	}
	return s
}
