// Package ast is the typed abstract syntax representation the parser
// produces and the evaluator walks.
//
// The language specification describes expressions as a Rust-style sum
// type split per value kind (IntegerExpr, FloatExpr, ...). Go has no closed
// algebraic data types, so that split is represented here with a single
// Expr interface whose Kind() method carries the tag a Rust enum variant
// would otherwise encode in the type itself; the parser is the only place
// that constructs expression nodes, and it never builds one whose Kind()
// disagrees with the grammar position it fills. That invariant — "every
// expression node's kind matches its variant" — is enforced at parse time
// (internal/parser) only; the evaluator does not re-check it, and its
// switches return a zero Value for a case they do not handle.
package ast

import "github.com/zonkey-lang/zonkey/internal/lexer"

// ValueKind is the static type a value, slot, or expression carries.
type ValueKind int

const (
	KindInteger ValueKind = iota
	KindFloat
	KindString
	KindBoolean
	KindObject
	KindNone
)

func (k ValueKind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindBoolean:
		return "Boolean"
	case KindObject:
		return "Object"
	case KindNone:
		return "None"
	default:
		return "<unknown kind>"
	}
}

// Expr is any typed expression node.
type Expr interface {
	exprNode()
	Kind() ValueKind
	Pos() lexer.Position
}

type base struct {
	K   ValueKind
	Loc lexer.Position
	// Class names the object class when K == KindObject (e.g. "Page",
	// "[Integer]"); it is the zero value "" for every other kind. This is
	// how ast carries the "Object(class-name)" payload spec.md's value
	// kind describes, without giving every non-object node a meaningless
	// class field of its own.
	Class string
}

func (b base) Kind() ValueKind     { return b.K }
func (b base) Pos() lexer.Position { return b.Loc }
func (b base) ClassName() string   { return b.Class }
func (base) exprNode()             {}

// IntegerLiteral, FloatLiteral, StringLiteral, BooleanLiteral are the
// literal leaves of the four primitive kinds. There is no NoneLiteral:
// None is the type of a side-effecting native call result, never a value a
// script can spell directly (spec.md §3).
type IntegerLiteral struct {
	base
	Value int64
}

type FloatLiteral struct {
	base
	Value float64
}

type StringLiteral struct {
	base
	Value string
}

type BooleanLiteral struct {
	base
	Value bool
}

func NewIntegerLiteral(pos lexer.Position, v int64) *IntegerLiteral {
	return &IntegerLiteral{base: base{K: KindInteger, Loc: pos}, Value: v}
}

func NewFloatLiteral(pos lexer.Position, v float64) *FloatLiteral {
	return &FloatLiteral{base: base{K: KindFloat, Loc: pos}, Value: v}
}

func NewStringLiteral(pos lexer.Position, v string) *StringLiteral {
	return &StringLiteral{base: base{K: KindString, Loc: pos}, Value: v}
}

func NewBooleanLiteral(pos lexer.Position, v bool) *BooleanLiteral {
	return &BooleanLiteral{base: base{K: KindBoolean, Loc: pos}, Value: v}
}

// VarRef reads a local variable or parameter by its parser-assigned slot.
// The slot is dense and kind-scoped: Slot 3 of a VarRef with Kind ==
// KindString addresses the frame's 4th string slot, independent of however
// many integer/float/boolean/object slots sit alongside it.
type VarRef struct {
	base
	Slot int
	Name string // retained for diagnostics only; evaluation never looks name up
}

func NewVarRef(pos lexer.Position, kind ValueKind, slot int, name string) *VarRef {
	return &VarRef{base: base{K: kind, Loc: pos}, Slot: slot, Name: name}
}

// Note: when a node's Kind() is KindObject, the parser sets its promoted
// Class field directly (e.g. `ref.Class = "Page"`) right after
// construction, rather than threading a class name through every New*
// constructor above.

// PropertyRef reads a field of a UI object: the object expression plus a
// property-slot id that the evaluator resolves against the object's class
// layout (spec.md §3, "(object-slot id, property-slot id)").
type PropertyRef struct {
	base
	Object       Expr
	PropertySlot int
	PropertyName string
}

func NewPropertyRef(pos lexer.Position, kind ValueKind, obj Expr, slot int, name string) *PropertyRef {
	return &PropertyRef{base: base{K: kind, Loc: pos}, Object: obj, PropertySlot: slot, PropertyName: name}
}

// BinaryOp is the set of binary operators the parser may attach to a
// Binary node; legality per operand kind is enforced during parsing, not
// re-checked by the evaluator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
)

type Binary struct {
	base
	Op          BinaryOp
	Left, Right Expr
}

func NewBinary(pos lexer.Position, kind ValueKind, op BinaryOp, left, right Expr) *Binary {
	return &Binary{base: base{K: kind, Loc: pos}, Op: op, Left: left, Right: right}
}

// UnaryOp is the set of unary operators: numeric negation or boolean not.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

type Unary struct {
	base
	Op      UnaryOp
	Operand Expr
}

func NewUnary(pos lexer.Position, kind ValueKind, op UnaryOp, operand Expr) *Unary {
	return &Unary{base: base{K: kind, Loc: pos}, Op: op, Operand: operand}
}

// Cast marks Operand (of some other kind) as having Kind(). The parser does
// not build Cast nodes: Integer.from, Float.from and toString() become
// NativeCall ops (NativeIntegerFromString and the like), which do the
// conversion. The evaluator returns a Cast's operand value unconverted.
type Cast struct {
	base
	Operand Expr
}

func NewCast(pos lexer.Position, targetKind ValueKind, operand Expr) *Cast {
	return &Cast{base: base{K: targetKind, Loc: pos}, Operand: operand}
}

// Call invokes a user-declared function or method by its index into
// Program.Callables. Receiver is nil for a free function call and set to
// the object expression for a method call, so the evaluator can bind it
// into the callee's object slot 0 ahead of its declared parameters
// (internal/parser/declarations.go's parseFunctionBody binds self first).
type Call struct {
	base
	CallableID int
	Name       string // diagnostics only
	Receiver   Expr
	Args       []Expr
}

func NewCall(pos lexer.Position, kind ValueKind, callableID int, name string, args []Expr) *Call {
	return &Call{base: base{K: kind, Loc: pos}, CallableID: callableID, Name: name, Args: args}
}

func NewMethodCall(pos lexer.Position, kind ValueKind, callableID int, name string, receiver Expr, args []Expr) *Call {
	return &Call{base: base{K: kind, Loc: pos}, CallableID: callableID, Name: name, Receiver: receiver, Args: args}
}

// NativeOp tags a standard-library operation. Native calls are resolved by
// this tag at evaluation time, never by looking anything up by name
// (spec.md's "Native call" glossary entry).
type NativeOp int

const (
	NativePrint NativeOp = iota
	NativePrintln
	NativePrompt
	NativeSetPage
	NativeWaitForEvent
	NativeClicked
	NativeConfirmed
	NativeIntegerFromString
	NativeFloatFromString
	NativeIntegerFromFloat
	NativeFloatFromInteger
	NativeIntegerToString
	NativeFloatToString
	NativeArrayNew
	NativeArrayGet
	NativeArrayPush
	NativeArrayRemove
	NativeArrayLen
	NativeArraySort
	NativePageNew
	NativeRowNew
	NativeColumnNew
	NativeTextNew
	NativeButtonNew
	NativeHyperlinkNew
	NativeInputNew
	NativeImageNew
	NativeElementSetText
	NativeElementSetColor
	NativeElementSetBackgroundColor
	NativeElementSetPadding
	NativeElementSetMaxWidth
	NativeContainerAdd
	NativeContainerRemove
	NativeReadString
	NativeWriteString
	NativeInstallApplication
	NativeRemoveApplication
	NativeInstalledApplications
	NativeArgs
	NativeOpenLink
	NativeCloseTab
	NativeUserInstanceNew
)

// NativeCall invokes a standard-library operation. Receiver is nil for a
// free function (print, prompt, set_page, wait_for_event, Args) and set
// for a method-style call (Page().add(...), arr.push(...)).
type NativeCall struct {
	base
	Op       NativeOp
	Receiver Expr
	Args     []Expr
}

func NewNativeCall(pos lexer.Position, kind ValueKind, op NativeOp, receiver Expr, args []Expr) *NativeCall {
	return &NativeCall{base: base{K: kind, Loc: pos}, Op: op, Receiver: receiver, Args: args}
}

// ArrayLiteral is the `[elem, elem, ...]` constructor. Kind() is always
// KindObject (arrays are objects); ElemKind names the declared element kind.
type ArrayLiteral struct {
	base
	ElemKind ValueKind
	Elements []Expr
}

func NewArrayLiteral(pos lexer.Position, elemKind ValueKind, elements []Expr) *ArrayLiteral {
	class := "[" + elemKind.String() + "]"
	return &ArrayLiteral{base: base{K: KindObject, Loc: pos, Class: class}, ElemKind: elemKind, Elements: elements}
}

// ArrayClassName returns the class name an array of the given element kind
// carries, e.g. "[Integer]". Shared by the parser (static typing) and the
// evaluator (runtime class tagging on ArrayValue).
func ArrayClassName(elemKind ValueKind) string {
	return "[" + elemKind.String() + "]"
}
