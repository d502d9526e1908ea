package parser

import "github.com/zonkey-lang/zonkey/internal/ast"

// slotCounters is a snapshot of the five kind-specific slot counters the
// parser hands out. A block records one on entry and truncates back to it
// on exit (spec.md §3, "Stack frame / storage plan").
type slotCounters [5]int

func kindIndex(k ast.ValueKind) int {
	switch k {
	case ast.KindInteger:
		return 0
	case ast.KindFloat:
		return 1
	case ast.KindString:
		return 2
	case ast.KindBoolean:
		return 3
	case ast.KindObject:
		return 4
	default:
		return -1 // KindNone never gets a slot
	}
}

// binding is what a name resolves to within a scope.
type binding struct {
	kind  ast.ValueKind
	class string // set when kind == KindObject
	slot  int
}

type scope struct {
	names  map[string]binding
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{names: make(map[string]binding), parent: parent}
}

func (s *scope) define(name string, b binding) {
	s.names[name] = b
}

func (s *scope) resolve(name string) (binding, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.names[name]; ok {
			return b, true
		}
	}
	return binding{}, false
}

// slotAllocator hands out dense, kind-scoped slot ids and lets a block
// scope truncate back to a prior watermark on exit, exactly mirroring the
// evaluator's per-frame vectors.
type slotAllocator struct {
	counters slotCounters
}

func (a *slotAllocator) next(kind ast.ValueKind) int {
	i := kindIndex(kind)
	id := a.counters[i]
	a.counters[i]++
	return id
}

func (a *slotAllocator) snapshot() slotCounters {
	return a.counters
}

func (a *slotAllocator) restore(snap slotCounters) {
	a.counters = snap
}
