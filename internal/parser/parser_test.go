package parser

import (
	"testing"

	"github.com/zonkey-lang/zonkey/internal/ast"
)

func mustParse(t *testing.T, src string) {
	t.Helper()
	_, errs, lexErr := Parse(src)
	if lexErr != nil {
		t.Fatalf("lex error: %v", lexErr)
	}
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
}

func mustFailWithTag(t *testing.T, src string, tag ErrorTag) {
	t.Helper()
	_, errs, lexErr := Parse(src)
	if lexErr != nil {
		t.Fatalf("lex error: %v", lexErr)
	}
	if len(errs) == 0 {
		t.Fatalf("expected a parse error tagged %s, got none", tag)
	}
	for _, e := range errs {
		if e.Tag == tag {
			return
		}
	}
	t.Fatalf("expected tag %s, got %v", tag, errs)
}

func TestParseMinimalStart(t *testing.T) {
	mustParse(t, `start { let x = 1; }`)
}

func TestParseArithmeticPrecedence(t *testing.T) {
	mustParse(t, `start { let x = 1 + 2 * 3 - 4 / 2; }`)
}

func TestParseMissingStart(t *testing.T) {
	mustFailWithTag(t, `function f() { }`, TagMissingStart)
}

func TestParseUndeclaredIdentifier(t *testing.T) {
	mustFailWithTag(t, `start { print(x); }`, TagUndeclaredName)
}

func TestParseBreakOutsideLoop(t *testing.T) {
	mustFailWithTag(t, `start { break; }`, TagBreakOutsideLoop)
}

func TestParseMismatchedBinaryOperands(t *testing.T) {
	mustFailWithTag(t, `start { let x = "a" + 1; }`, TagBinaryUnmatchingTypes)
}

func TestParseFunctionMustReturnOnAllPaths(t *testing.T) {
	mustFailWithTag(t, `
function f() -> Integer {
  if (true) {
    return 1;
  }
}
start { }
`, TagDeclarationDidNotReturnValue)
}

func TestParseFunctionReturningOnBothBranches(t *testing.T) {
	mustParse(t, `
function f() -> Integer {
  if (true) {
    return 1;
  } else {
    return 2;
  }
}
start { let x = f(); }
`)
}

func TestParseWhileLoopAndAssignment(t *testing.T) {
	mustParse(t, `
start {
  let i = 0;
  while (i < 10) {
    i += 1;
  }
}
`)
}

func TestParseForLoopDesugars(t *testing.T) {
	prog, errs, lexErr := Parse(`
start {
  for (let i = 0, i < 10, i += 1) {
    print(i.toString());
  }
}
`)
	if lexErr != nil {
		t.Fatalf("lex error: %v", lexErr)
	}
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	outer, ok := prog.Start.Stmts[0].(*ast.Block)
	if !ok || len(outer.Stmts) != 2 {
		t.Fatalf("for loop = %#v, want a block of { let; while }", prog.Start.Stmts[0])
	}
	if _, ok := outer.Stmts[0].(*ast.VarDecl); !ok {
		t.Fatalf("first desugared statement = %T, want *ast.VarDecl", outer.Stmts[0])
	}
	if _, ok := outer.Stmts[1].(*ast.WhileStmt); !ok {
		t.Fatalf("second desugared statement = %T, want *ast.WhileStmt", outer.Stmts[1])
	}
}

func TestParseArrayLiteralAndIndex(t *testing.T) {
	mustParse(t, `
start {
  let xs = [1, 2, 3];
  let first = xs[0];
  xs.push(4);
}
`)
}

func TestParseElementConstructionAndContainer(t *testing.T) {
	mustParse(t, `
start {
  let page = Page();
  let t = Text("hello");
  page.add(t);
  set_page(page);
}
`)
}

func TestParseSelfOutsideMethod(t *testing.T) {
	mustFailWithTag(t, `start { let x = self; }`, TagSelfOutsideMethod)
}

func TestParseClassDecl(t *testing.T) {
	mustParse(t, `
class Counter {
  function get() -> Integer {
    return 1;
  }
}
start { }
`)
}

func TestParseClassInstantiationAndMethodCall(t *testing.T) {
	mustParse(t, `
class Counter {
  function get() -> Integer {
    return 1;
  }
}
start {
  let c = Counter();
  let n = c.get();
}
`)
}

func TestParseIndexRequiresArray(t *testing.T) {
	mustFailWithTag(t, `start { let x = 1; let y = x[0]; }`, TagIndexRequiresArray)
}

// TestParseRecoversAfterUnexpectedTokenInBlock covers spec.md §4.2's
// statement-level synchronization: a single stray token inside a block
// should not prevent the statements after it from being parsed, and
// should not itself cascade into further diagnostics.
func TestParseRecoversAfterUnexpectedTokenInBlock(t *testing.T) {
	src := `
start {
  let x = 1;
  ?
  let y = 2;
  print(x + y);
}
`
	_, errs, lexErr := Parse(src)
	if lexErr != nil {
		t.Fatalf("lex error: %v", lexErr)
	}
	if len(errs) != 1 {
		t.Fatalf("expected exactly one diagnostic (no cascade past the resync point), got %v", errs)
	}
	if errs[0].Tag != TagUnexpectedToken {
		t.Fatalf("tag = %s, want %s", errs[0].Tag, TagUnexpectedToken)
	}
}

// TestParseDoesNotSwallowBlockClosingBrace guards against the failure
// mode where recovering from an unexpected token consumes the enclosing
// block's own '}': the function body below should still close cleanly,
// leaving the top-level 'start' block to parse without error.
func TestParseDoesNotSwallowBlockClosingBrace(t *testing.T) {
	src := `
function f() {
  let x = 1;
  ?
}
start {
  let y = 2;
}
`
	_, errs, lexErr := Parse(src)
	if lexErr != nil {
		t.Fatalf("lex error: %v", lexErr)
	}
	if len(errs) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", errs)
	}
	if errs[0].Tag != TagUnexpectedToken {
		t.Fatalf("tag = %s, want %s", errs[0].Tag, TagUnexpectedToken)
	}
}

func TestParseSubExpressionLimit(t *testing.T) {
	src := "start { let x = "
	for i := 0; i < SubExpressionLimit+5; i++ {
		src += "("
	}
	src += "1"
	for i := 0; i < SubExpressionLimit+5; i++ {
		src += ")"
	}
	src += "; }"
	mustFailWithTag(t, src, TagSubExpressionLimit)
}
