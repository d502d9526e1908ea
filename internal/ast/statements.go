package ast

import "github.com/zonkey-lang/zonkey/internal/lexer"

// Stmt is any statement node.
type Stmt interface {
	stmtNode()
	Pos() lexer.Position
}

type stmtBase struct{ Loc lexer.Position }

func (s stmtBase) Pos() lexer.Position { return s.Loc }
func (stmtBase) stmtNode()             {}

// VarDecl introduces a new local or parameter binding at Slot (of kind
// Kind), initialized by Init. Per spec.md §4.2, Init's kind must equal
// Kind and Init may never be a None-returning expression.
type VarDecl struct {
	stmtBase
	Kind ValueKind
	Slot int
	Name string
	Init Expr
}

func NewVarDecl(pos lexer.Position, kind ValueKind, slot int, name string, init Expr) *VarDecl {
	return &VarDecl{stmtBase: stmtBase{pos}, Kind: kind, Slot: slot, Name: name, Init: init}
}

// AssignOp is the set of assignment operators a Assign statement may carry.
// Legal operators depend on the target's kind: numerics accept all five,
// strings accept only Assign/AddAssign, everything else only Assign.
type AssignOp int

const (
	Assign AssignOp = iota
	AddAssign
	SubAssign
	MulAssign
	DivAssign
)

// LValue is the assignable target of an Assign statement: either a VarRef
// or a PropertyRef.
type LValue interface {
	Expr
	lvalueNode()
}

func (*VarRef) lvalueNode()      {}
func (*PropertyRef) lvalueNode() {}

type AssignStmt struct {
	stmtBase
	Op     AssignOp
	Target LValue
	Value  Expr
}

func NewAssignStmt(pos lexer.Position, op AssignOp, target LValue, value Expr) *AssignStmt {
	return &AssignStmt{stmtBase: stmtBase{pos}, Op: op, Target: target, Value: value}
}

// ExprStmt evaluates Value and discards the result; used for side-effecting
// calls like print(...) or Page().add(...).
type ExprStmt struct {
	stmtBase
	Value Expr
}

func NewExprStmt(pos lexer.Position, value Expr) *ExprStmt {
	return &ExprStmt{stmtBase: stmtBase{pos}, Value: value}
}

// Block is a sequence of statements sharing one lexical scope. The parser
// snapshots slot counters on entry and truncates to them on exit; the
// evaluator mirrors this with frame-length snapshots (spec.md §4.3).
type Block struct {
	stmtBase
	Stmts []Stmt
}

func NewBlock(pos lexer.Position, stmts []Stmt) *Block {
	return &Block{stmtBase: stmtBase{pos}, Stmts: stmts}
}

type IfStmt struct {
	stmtBase
	Cond Expr
	Then *Block
	Else *Block // nil when there is no else clause
}

func NewIfStmt(pos lexer.Position, cond Expr, then, els *Block) *IfStmt {
	return &IfStmt{stmtBase: stmtBase{pos}, Cond: cond, Then: then, Else: els}
}

type WhileStmt struct {
	stmtBase
	Cond Expr
	Body *Block
}

func NewWhileStmt(pos lexer.Position, cond Expr, body *Block) *WhileStmt {
	return &WhileStmt{stmtBase: stmtBase{pos}, Cond: cond, Body: body}
}

// LoopStmt is `loop { ... }`, equivalent to `while (true) { ... }` but
// kept as its own node so diagnostics and the evaluator don't need to
// fabricate a boolean-literal condition for it.
type LoopStmt struct {
	stmtBase
	Body *Block
}

func NewLoopStmt(pos lexer.Position, body *Block) *LoopStmt {
	return &LoopStmt{stmtBase: stmtBase{pos}, Body: body}
}

type BreakStmt struct{ stmtBase }

func NewBreakStmt(pos lexer.Position) *BreakStmt { return &BreakStmt{stmtBase{pos}} }

type ContinueStmt struct{ stmtBase }

func NewContinueStmt(pos lexer.Position) *ContinueStmt { return &ContinueStmt{stmtBase{pos}} }

type ReturnStmt struct {
	stmtBase
	Value Expr // nil for a bare `return;`
}

func NewReturnStmt(pos lexer.Position, value Expr) *ReturnStmt {
	return &ReturnStmt{stmtBase: stmtBase{pos}, Value: value}
}
