package ast

// CallableKind distinguishes a standard-library function resolved by name
// inside the evaluator from a user-written one addressed by slot.
type CallableKind int

const (
	Native CallableKind = iota
	Source
)

// Param is one formal parameter: its declared kind and name.
type Param struct {
	Name string
	Kind ValueKind
}

// Callable is a function or method's full signature, plus its body when
// Kind is Source. The evaluator never looks a callable up by name; call
// sites carry its index into Program.Callables directly.
type Callable struct {
	Kind       CallableKind
	Name       string
	Params     []Param
	ReturnKind *ValueKind // nil means the callable returns None
	Body       *Block     // nil when Kind == Native
}

// Class is a user-declared class: a name plus its method table. The UI
// element classes and parametric [T] array classes are not entries of
// Program.Classes; the parser resolves their methods directly as native
// calls (internal/parser/natives.go).
type Class struct {
	Name    string
	Methods map[string]*Callable
}

// Program is the parser's output: the `start` block plus the callables
// pool referenced by Call and method-dispatch nodes throughout the tree.
type Program struct {
	Start     *Block
	Callables []*Callable
	Classes   map[string]*Class
}
