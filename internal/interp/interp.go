package interp

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/zonkey-lang/zonkey/internal/address"
	"github.com/zonkey-lang/zonkey/internal/ast"
)

// Interp evaluates one parsed ast.Program against the host protocol.
// It is not safe for concurrent Run calls, but wait_for_event's channel
// read does run concurrently with a goroutine the host drives, so any
// state an inbound InputEvent touches (the Element latches) is guarded
// independently in object.go.
type Interp struct {
	Program    *ast.Program
	Permission address.Permission
	Args       []string

	ToHost   chan HostEvent
	FromHost <-chan InputEvent

	Stdout io.Writer
	Stdin  io.Reader

	elementsMu sync.Mutex
	elements   map[int64]*Element

	page *Element // the tree last handed to set_page; wait_for_event's Update quotes it

	installedMu sync.Mutex
	installed   map[string]bool // in-memory stand-in for a per-user app registry
}

// New constructs an Interp ready to Run prog. toHost/fromHost are the two
// unidirectional channels spec.md §5 describes; the caller (pkg/zonkey)
// owns their lifetime.
func New(prog *ast.Program, perm address.Permission, args []string, toHost chan HostEvent, fromHost <-chan InputEvent) *Interp {
	return &Interp{
		Program:    prog,
		Permission: perm,
		Args:       args,
		ToHost:     toHost,
		FromHost:   fromHost,
		Stdout:     os.Stdout,
		Stdin:      os.Stdin,
		elements:   map[int64]*Element{},
		installed:  map[string]bool{},
	}
}

// Run evaluates the program's start block to completion, an unrecovered
// RuntimeError, or ctx cancellation. It always closes ToHost before
// returning so the host's receive loop terminates.
func (ip *Interp) Run(ctx context.Context) error {
	defer close(ip.ToHost)

	fr := &frame{}
	sig, err := ip.evalBlock(ctx, ip.Program.Start, fr)
	if err != nil {
		ip.ToHost <- ScriptErrorEvent{Err: err}
		return err
	}
	_ = sig // a bare return/break/continue escaping start is a no-op at top level
	return nil
}

func (ip *Interp) registerElement(e *Element) {
	ip.elementsMu.Lock()
	ip.elements[e.ID] = e
	ip.elementsMu.Unlock()
}

func (ip *Interp) lookupElement(id int64) (*Element, bool) {
	ip.elementsMu.Lock()
	defer ip.elementsMu.Unlock()
	e, ok := ip.elements[id]
	return e, ok
}

// dispatchInputEvent applies one host-originated InputEvent to the
// element it names, called from wait_for_event's channel receive.
func (ip *Interp) dispatchInputEvent(ev InputEvent) {
	switch e := ev.(type) {
	case ButtonPressEvent:
		if el, ok := ip.lookupElement(e.ElementID); ok {
			el.MarkClicked()
		}
	case InputConfirmedEvent:
		if el, ok := ip.lookupElement(e.ElementID); ok {
			el.MarkConfirmed()
		}
	}
}
