package zonkey

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/zonkey-lang/zonkey/internal/address"
	"github.com/zonkey-lang/zonkey/internal/interp"
)

// TestRunPrintsAndExits covers spec.md §8 scenario 1: a start block that
// only prints exits cleanly with no host events beyond channel closure.
func TestRunPrintsAndExits(t *testing.T) {
	eng := NewEngine(address.Parse("zonkey:inline"))
	res, err := eng.Run(context.Background(), `start { print(1 + 2 * 3); }`)
	if err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}

	for range res.ToHost {
		t.Fatalf("expected no host events from a print-only script")
	}
	<-res.Done
	if runErr := *res.Err; runErr != nil {
		t.Fatalf("script failed: %v", runErr)
	}
	if got := res.Output.String(); got != "7" {
		t.Fatalf("Output = %q, want %q", got, "7")
	}
}

// TestRunStringToIntegerRoundTrip covers scenario 2.
func TestRunStringToIntegerRoundTrip(t *testing.T) {
	eng := NewEngine(address.Parse("zonkey:inline"))
	res, err := eng.Run(context.Background(), `start { let x = "5"; print(Integer.from(x) + 1); }`)
	if err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}
	for range res.ToHost {
	}
	<-res.Done
	if runErr := *res.Err; runErr != nil {
		t.Fatalf("script failed: %v", runErr)
	}
	if got := res.Output.String(); got != "6" {
		t.Fatalf("Output = %q, want %q", got, "6")
	}
}

// TestRunFailedCastReportsRuntimeError covers scenario 3: a bad cast is a
// RuntimeError the host can format with FormatRuntimeError.
func TestRunFailedCastReportsRuntimeError(t *testing.T) {
	eng := NewEngine(address.Parse("zonkey:inline"))
	src := `start { let x = "abc"; Integer.from(x); }`
	res, err := eng.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}

	var sawScriptError bool
	for ev := range res.ToHost {
		if se, ok := ev.(interp.ScriptErrorEvent); ok {
			sawScriptError = true
			if !strings.Contains(FormatRuntimeError(se.Err, src), "FailedStringToIntegerCast") {
				t.Errorf("formatted error missing tag: %v", se.Err)
			}
		}
	}
	<-res.Done
	if !sawScriptError {
		t.Fatal("expected a ScriptErrorEvent")
	}
	if runErr := *res.Err; runErr == nil {
		t.Fatal("expected Run to report a runtime error")
	}
}

// TestRunSetPageThenWaitForEvent covers scenario 5: a page is set, one
// Update is sent, then the evaluator blocks until the host closes the
// inbound channel.
func TestRunSetPageThenWaitForEvent(t *testing.T) {
	eng := NewEngine(address.Parse("zonkey:inline"))
	src := `start {
		let p = Page().set_title("A").add(Text("Hello"));
		set_page(p);
		while (wait_for_event()) {}
	}`
	res, err := eng.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}

	var order []string
	go func() {
		time.Sleep(10 * time.Millisecond)
		close(res.FromHost)
	}()
	for ev := range res.ToHost {
		switch ev.(type) {
		case interp.SetPageEvent:
			order = append(order, "SetPage")
		case interp.UpdateEvent:
			order = append(order, "Update")
		}
	}
	<-res.Done
	if runErr := *res.Err; runErr != nil {
		t.Fatalf("script failed: %v", runErr)
	}
	if len(order) < 2 || order[0] != "SetPage" || order[1] != "Update" {
		t.Fatalf("event order = %v, want [SetPage Update ...]", order)
	}
}

// TestCheckReportsUnterminatedString covers scenario 6.
func TestCheckReportsUnterminatedString(t *testing.T) {
	eng := NewEngine(address.Parse("zonkey:inline"))
	errs := eng.Check("start {\n  print(\"foo);\n}\n")
	if errs == nil {
		t.Fatal("expected a lex error")
	}
	if errs.Lex == nil {
		t.Fatalf("expected Errors.Lex to be set, got %+v", errs)
	}
	if !strings.Contains(errs.Report, "Cannot start execution.") {
		t.Fatalf("report missing footer: %q", errs.Report)
	}
}
