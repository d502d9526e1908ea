// Package interp tree-walks a parsed ast.Program, evaluating the start
// block against slot-based stack frames and dispatching the standard
// library through the closed ast.NativeOp tag rather than by name.
package interp

import "github.com/zonkey-lang/zonkey/internal/ast"

// Value is a single evaluated result. The language's five value kinds are
// carried in a plain tagged struct instead of a boxed interface: the
// parser already pins every expression's Kind() statically, so the
// evaluator never needs dynamic dispatch to know which field is live, only
// which one to read (mirrors the parser's kind-scoped slot vectors rather
// than reintroducing a runtime type system spec.md's "no type inspection"
// invariant rules out).
type Value struct {
	Kind ast.ValueKind
	I    int64
	F    float64
	S    string
	B    bool
	Obj  Object
}

func IntegerValue(v int64) Value   { return Value{Kind: ast.KindInteger, I: v} }
func FloatValue(v float64) Value   { return Value{Kind: ast.KindFloat, F: v} }
func StringValue(v string) Value   { return Value{Kind: ast.KindString, S: v} }
func BooleanValue(v bool) Value    { return Value{Kind: ast.KindBoolean, B: v} }
func ObjectValue(o Object) Value   { return Value{Kind: ast.KindObject, Obj: o} }
func NoneValue() Value             { return Value{Kind: ast.KindNone} }

// Object is anything a KindObject Value can hold: a UI element, an array,
// or a user class instance.
type Object interface {
	ClassName() string
}
