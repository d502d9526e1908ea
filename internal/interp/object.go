package interp

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/zonkey-lang/zonkey/internal/ast"
)

// nextObjectID hands out the monotonic identity every Object carries, so
// host Update events and wait_for_event dispatch can address a specific
// element without ever comparing Go pointers across the channel boundary.
var nextObjectID int64

func allocID() int64 { return atomic.AddInt64(&nextObjectID, 1) }

// Element is one of the eight preregistered UI element classes. Its
// fields are guarded by mu because wait_for_event's host-event dispatch
// and the evaluator's own mutation of the same element can interleave
// across the two goroutines the host protocol implies (spec.md §5 /
// SPEC_FULL.md §5).
type Element struct {
	mu    sync.Mutex
	ID    int64
	Class string

	Text            string
	Color           string
	BackgroundColor string
	Padding         int64
	MaxWidth        int64
	URL             string

	Children []*Element // Page, Row, Column only

	clicked   bool
	confirmed bool
}

func NewElement(class string) *Element {
	return &Element{ID: allocID(), Class: class}
}

func (e *Element) ClassName() string { return e.Class }

func (e *Element) SetText(s string) {
	e.mu.Lock()
	e.Text = s
	e.mu.Unlock()
}

func (e *Element) SetColor(s string) error {
	if !isHexColour(s) {
		return fmt.Errorf("%q is not a #RRGGBB hex colour", s)
	}
	e.mu.Lock()
	e.Color = s
	e.mu.Unlock()
	return nil
}

func (e *Element) SetBackgroundColor(s string) error {
	if !isHexColour(s) {
		return fmt.Errorf("%q is not a #RRGGBB hex colour", s)
	}
	e.mu.Lock()
	e.BackgroundColor = s
	e.mu.Unlock()
	return nil
}

// isHexColour reports whether s is a `#RRGGBB` hex colour literal, the
// one format spec.md §4.3's UI element mutators accept (malformed input
// is a runtime InvalidHexColour error, not a silently-ignored no-op).
func isHexColour(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for i := 1; i < 7; i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

func (e *Element) SetPadding(v int64) {
	e.mu.Lock()
	e.Padding = v
	e.mu.Unlock()
}

func (e *Element) SetMaxWidth(v int64) {
	e.mu.Lock()
	e.MaxWidth = v
	e.mu.Unlock()
}

func (e *Element) Add(child *Element) {
	e.mu.Lock()
	e.Children = append(e.Children, child)
	e.mu.Unlock()
}

func (e *Element) Remove(child *Element) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, c := range e.Children {
		if c == child {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			return
		}
	}
}

// MarkClicked / MarkConfirmed are called from the evaluator's dispatch of
// an inbound InputEvent (ButtonPress / InputConfirmed) to flip the latch
// that clicked()/confirmed() reads.
func (e *Element) MarkClicked() {
	e.mu.Lock()
	e.clicked = true
	e.mu.Unlock()
}

func (e *Element) MarkConfirmed() {
	e.mu.Lock()
	e.confirmed = true
	e.mu.Unlock()
}

// TakeClicked / TakeConfirmed report and clear the latch: clicked() and
// confirmed() answer "since I last asked", not "ever".
func (e *Element) TakeClicked() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.clicked
	e.clicked = false
	return v
}

func (e *Element) TakeConfirmed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.confirmed
	e.confirmed = false
	return v
}

// Array backs both the array literal type and the standard library's
// array-of-String returns (Args(), InstalledApplications()). Element
// storage is boxed as Value regardless of ElemKind, matching the parser's
// decision to tag arrays by class name ("[Integer]") rather than give Go
// a generic array type per element kind.
type Array struct {
	mu       sync.Mutex
	ElemKind ast.ValueKind
	Class    string
	elems    []Value
}

func NewArray(elemKind ast.ValueKind, elems []Value) *Array {
	return &Array{ElemKind: elemKind, Class: ast.ArrayClassName(elemKind), elems: append([]Value{}, elems...)}
}

func (a *Array) ClassName() string { return a.Class }

func (a *Array) Len() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return int64(len(a.elems))
}

func (a *Array) Get(i int64) (Value, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if i < 0 || i >= int64(len(a.elems)) {
		return Value{}, false
	}
	return a.elems[i], true
}

func (a *Array) Push(v Value) {
	a.mu.Lock()
	a.elems = append(a.elems, v)
	a.mu.Unlock()
}

func (a *Array) Remove(i int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if i < 0 || i >= int64(len(a.elems)) {
		return false
	}
	a.elems = append(a.elems[:i], a.elems[i+1:]...)
	return true
}

// Sort orders the array in place. Integer/Float/Boolean compare by value;
// String uses a locale-aware collation key (spec.md's array .sort() is
// silent on locale, so SPEC_FULL.md wires golang.org/x/text/collate rather
// than a byte-wise strings.Compare, the way the teacher's SameText/
// CompareText built-ins lean on the same x/text stack for text comparison).
func (a *Array) Sort() {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch a.ElemKind {
	case ast.KindInteger:
		sort.Slice(a.elems, func(i, j int) bool { return a.elems[i].I < a.elems[j].I })
	case ast.KindFloat:
		sort.Slice(a.elems, func(i, j int) bool { return a.elems[i].F < a.elems[j].F })
	case ast.KindBoolean:
		sort.Slice(a.elems, func(i, j int) bool { return !a.elems[i].B && a.elems[j].B })
	case ast.KindString:
		col := collate.New(language.Und)
		sort.Slice(a.elems, func(i, j int) bool {
			return col.CompareString(a.elems[i].S, a.elems[j].S) < 0
		})
	}
}

// UserInstance is a user-defined class's runtime identity. The committed
// grammar gives user classes only methods, never fields (DESIGN.md, "Open
// Questions — decisions"):
// an instance has no state of its own beyond its class and id, so `self`
// inside a method exists to support recursive/mutual method calls on the
// same object identity, not to carry data.
type UserInstance struct {
	ID    int64
	Class string
}

func NewUserInstance(class string) *UserInstance {
	return &UserInstance{ID: allocID(), Class: class}
}

func (u *UserInstance) ClassName() string { return u.Class }
