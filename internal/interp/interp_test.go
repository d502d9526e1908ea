package interp

import (
	"context"
	"strings"
	"testing"

	"github.com/zonkey-lang/zonkey/internal/address"
	"github.com/zonkey-lang/zonkey/internal/parser"
)

func run(t *testing.T, src string) (string, []HostEvent, error) {
	t.Helper()
	prog, errs, lexErr := parser.Parse(src)
	if lexErr != nil {
		t.Fatalf("lex error: %v", lexErr)
	}
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}

	toHost := make(chan HostEvent, 64)
	fromHost := make(chan InputEvent)
	ip := New(prog, address.All, nil, toHost, fromHost)
	var out strings.Builder
	ip.Stdout = &out

	runErr := ip.Run(context.Background())

	var events []HostEvent
	for ev := range toHost {
		events = append(events, ev)
	}
	return out.String(), events, runErr
}

func mustRun(t *testing.T, src string) (string, []HostEvent) {
	t.Helper()
	out, events, err := run(t, src)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	return out, events
}

func TestRunPrintsLiteral(t *testing.T) {
	out, _ := mustRun(t, `start { println("hello"); }`)
	if out != "hello\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRunArithmeticAndLoop(t *testing.T) {
	out, _ := mustRun(t, `
start {
  let sum = 0;
  let i = 0;
  while (i < 5) {
    sum += i;
    i += 1;
  }
  println(sum.toString());
}
`)
	if out != "10\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRunArrayPushAndLen(t *testing.T) {
	out, _ := mustRun(t, `
start {
  let xs = [1, 2, 3];
  xs.push(4);
  println(xs.len().toString());
  println(xs.get(3).toString());
}
`)
	if out != "4\n4\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRunSetPageEmitsEvent(t *testing.T) {
	_, events, _ := run(t, `
start {
  let page = Page();
  let t = Text("hi");
  page.add(t);
  set_page(page);
}
`)
	found := false
	for _, ev := range events {
		if sp, ok := ev.(SetPageEvent); ok {
			found = true
			if len(sp.Root.Children) != 1 {
				t.Fatalf("expected 1 child, got %d", len(sp.Root.Children))
			}
		}
	}
	if !found {
		t.Fatal("expected a SetPageEvent")
	}
}

func TestRunFunctionCall(t *testing.T) {
	out, _ := mustRun(t, `
function double(x Integer) -> Integer {
  return x * 2;
}
start {
  println(double(21).toString());
}
`)
	if out != "42\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRunUserClassMethodCall(t *testing.T) {
	out, _ := mustRun(t, `
class Greeter {
  function hello() -> String {
    return "hi";
  }
}
start {
  let g = Greeter();
  println(g.hello());
}
`)
	if out != "hi\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRunDivisionByZeroReportsScriptError(t *testing.T) {
	_, events, err := run(t, `
start {
  let x = 1;
  let y = 0;
  let z = x / y;
}
`)
	if err == nil {
		t.Fatal("expected a division-by-zero error")
	}
	found := false
	for _, ev := range events {
		if _, ok := ev.(ScriptErrorEvent); ok {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a ScriptErrorEvent")
	}
}
