// Package zonkey is the embeddable facade around the lexer → parser →
// evaluator pipeline, grounded on the teacher's pkg/dwscript.Engine (its
// New()/Eval() shape, inferred from pkg/dwscript/parse_test.go). A host —
// the CLI in this repo, or a real browser shell outside this repo's
// scope — constructs one Engine per loaded address and drives its
// Run call, reading HostEvents and writing InputEvents over the two
// channels spec.md §5 describes.
package zonkey

import (
	"bytes"
	"context"
	"io"

	"github.com/zonkey-lang/zonkey/internal/address"
	"github.com/zonkey-lang/zonkey/internal/errdiag"
	"github.com/zonkey-lang/zonkey/internal/interp"
	"github.com/zonkey-lang/zonkey/internal/lexer"
	"github.com/zonkey-lang/zonkey/internal/parser"
)

// Engine wraps one address's permission level and standard-input/output
// plumbing across repeated Run calls. It holds no per-script state itself
// — every Run call lexes, parses, and evaluates its source argument from
// scratch, matching pkg/dwscript.Engine.Eval's "one call, one program"
// contract.
type Engine struct {
	Permission address.Permission
	Args       []string
	Stdin      io.Reader
	Stdout     io.Writer
}

// NewEngine constructs an Engine whose native standard-library surface is
// constrained by addr's permission level (spec.md §4.5).
func NewEngine(addr address.Address) *Engine {
	return &Engine{Permission: addr.Permission}
}

// RunResult is what a Run call that got past parsing hands back to the
// host: the two host-protocol channels (spec.md §5), the evaluator's
// completion signal and error, and its printed output. A lex or parse
// failure yields no RunResult; Run returns *Errors instead.
type RunResult struct {
	// ToHost carries HostEvents until the evaluator finishes or fails; it
	// is closed by Run's goroutine when evaluation ends.
	ToHost <-chan interp.HostEvent
	// FromHost is the same channel Run's Interp reads from; the host
	// writes ButtonPress/InputConfirmed events into it and closes it to
	// end wait_for_event gracefully (spec.md §5, "Cancellation").
	FromHost chan<- interp.InputEvent

	// Done is closed once the evaluator goroutine returns; Err is only
	// meaningful to read after a receive from Done.
	Done <-chan struct{}
	Err  *error

	// Output accumulates print()/println() text when the Engine was built
	// without an explicit Stdout (e.g. a test harness that wants the
	// script's printed output back as a string rather than wired to the
	// process's real stdout).
	Output *bytes.Buffer
}

// Errors is a lex or parse failure's diagnostics, returned by Check and
// Run, so a host that only wants static errors (e.g. an editor's
// "check syntax" action) need not drive the channel protocol at all.
type Errors struct {
	Lex    *lexer.Error
	Parse  []*parser.Error
	Report string // errdiag-formatted, footer included
}

func (e *Errors) Error() string { return e.Report }

// Check lexes and parses source without evaluating it, the embeddable
// equivalent of the CLI's "syntax check" path. A nil return means the
// source parsed cleanly.
func (eng *Engine) Check(source string) *Errors {
	graphemes := lexer.Graphemes(source)
	tokens, lexErr := lexer.Lex(source)
	if lexErr != nil {
		return &Errors{Lex: lexErr, Report: errdiag.FormatLexError(lexErr, graphemes)}
	}
	p := parser.New(tokens)
	_, errs := p.ParseProgram()
	if len(errs) > 0 {
		return &Errors{Parse: errs, Report: errdiag.FormatParseErrors(errs, graphemes)}
	}
	return nil
}

// Run lexes, parses, and evaluates source. A lex or parse failure is
// returned immediately as *Errors (satisfying the `error` interface) and
// no channels are created. On success, the returned RunResult's
// ToHost/FromHost channels drive the host protocol until the background
// goroutine evaluating the program finishes; Run itself does not block.
func (eng *Engine) Run(ctx context.Context, source string) (*RunResult, error) {
	graphemes := lexer.Graphemes(source)
	prog, errs, lexErr := parser.Parse(source)
	if lexErr != nil {
		return nil, &Errors{Lex: lexErr, Report: errdiag.FormatLexError(lexErr, graphemes)}
	}
	if len(errs) > 0 {
		return nil, &Errors{Parse: errs, Report: errdiag.FormatParseErrors(errs, graphemes)}
	}

	toHost := make(chan interp.HostEvent, 16)
	fromHost := make(chan interp.InputEvent)

	ip := interp.New(prog, eng.Permission, eng.Args, toHost, fromHost)
	if eng.Stdin != nil {
		ip.Stdin = eng.Stdin
	}
	var out *bytes.Buffer
	if eng.Stdout != nil {
		ip.Stdout = eng.Stdout
	} else {
		out = &bytes.Buffer{}
		ip.Stdout = out
	}

	done := make(chan struct{})
	var runErr error
	go func() {
		defer close(done)
		runErr = ip.Run(ctx)
	}()

	return &RunResult{
		ToHost:   toHost,
		FromHost: fromHost,
		Done:     done,
		Err:      &runErr,
		Output:   out,
	}, nil
}

// FormatRuntimeError renders err (as returned through RunResult.Err or a
// ScriptErrorEvent) the way the host displays it on its "script failed"
// substitute page (spec.md §7).
func FormatRuntimeError(err error, source string) string {
	re, ok := err.(*interp.RuntimeError)
	if !ok {
		return err.Error()
	}
	return errdiag.FormatRuntimeError(re, lexer.Graphemes(source))
}
