package interp

import (
	"context"

	"github.com/zonkey-lang/zonkey/internal/ast"
)

func (ip *Interp) evalExpr(ctx context.Context, e ast.Expr, fr *frame) (Value, error) {
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		return IntegerValue(n.Value), nil
	case *ast.FloatLiteral:
		return FloatValue(n.Value), nil
	case *ast.StringLiteral:
		return StringValue(n.Value), nil
	case *ast.BooleanLiteral:
		return BooleanValue(n.Value), nil

	case *ast.VarRef:
		return fr.get(n.Kind(), n.Slot), nil

	case *ast.PropertyRef:
		objVal, err := ip.evalExpr(ctx, n.Object, fr)
		if err != nil {
			return Value{}, err
		}
		el, ok := objVal.Obj.(*Element)
		if !ok {
			return Value{}, runtimeErrorf(ErrPropertyNotInitialised, n.Pos(), "property access on an uninitialised object")
		}
		return readProperty(el, n.PropertyName), nil

	case *ast.Binary:
		return ip.evalBinary(ctx, n, fr)

	case *ast.Unary:
		operand, err := ip.evalExpr(ctx, n.Operand, fr)
		if err != nil {
			return Value{}, err
		}
		switch n.Op {
		case ast.OpNeg:
			if operand.Kind == ast.KindFloat {
				return FloatValue(-operand.F), nil
			}
			return IntegerValue(-operand.I), nil
		case ast.OpNot:
			return BooleanValue(!operand.B), nil
		}
		return Value{}, nil

	case *ast.Cast:
		return ip.evalExpr(ctx, n.Operand, fr)

	case *ast.Call:
		return ip.evalCall(ctx, n, fr)

	case *ast.NativeCall:
		return ip.evalNativeCall(ctx, n, fr)

	case *ast.ArrayLiteral:
		elems := make([]Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := ip.evalExpr(ctx, el, fr)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return ObjectValue(NewArray(n.ElemKind, elems)), nil

	default:
		return Value{}, nil
	}
}

func (ip *Interp) evalBinary(ctx context.Context, n *ast.Binary, fr *frame) (Value, error) {
	left, err := ip.evalExpr(ctx, n.Left, fr)
	if err != nil {
		return Value{}, err
	}

	// and/or short-circuit: the right operand is never evaluated once the
	// result is already determined.
	if n.Op == ast.OpAnd && !left.B {
		return BooleanValue(false), nil
	}
	if n.Op == ast.OpOr && left.B {
		return BooleanValue(true), nil
	}

	right, err := ip.evalExpr(ctx, n.Right, fr)
	if err != nil {
		return Value{}, err
	}

	switch n.Op {
	case ast.OpAnd:
		return BooleanValue(left.B && right.B), nil
	case ast.OpOr:
		return BooleanValue(left.B || right.B), nil
	case ast.OpEq:
		return BooleanValue(valuesEqual(left, right)), nil
	case ast.OpNeq:
		return BooleanValue(!valuesEqual(left, right)), nil
	}

	if left.Kind == ast.KindString {
		switch n.Op {
		case ast.OpAdd:
			return StringValue(left.S + right.S), nil
		case ast.OpLt:
			return BooleanValue(left.S < right.S), nil
		case ast.OpLte:
			return BooleanValue(left.S <= right.S), nil
		case ast.OpGt:
			return BooleanValue(left.S > right.S), nil
		case ast.OpGte:
			return BooleanValue(left.S >= right.S), nil
		}
	}

	if left.Kind == ast.KindFloat {
		switch n.Op {
		case ast.OpAdd:
			return FloatValue(left.F + right.F), nil
		case ast.OpSub:
			return FloatValue(left.F - right.F), nil
		case ast.OpMul:
			return FloatValue(left.F * right.F), nil
		case ast.OpDiv:
			if right.F == 0 {
				return Value{}, runtimeErrorf(ErrDivisionByZero, n.Pos(), "division by zero")
			}
			return FloatValue(left.F / right.F), nil
		case ast.OpLt:
			return BooleanValue(left.F < right.F), nil
		case ast.OpLte:
			return BooleanValue(left.F <= right.F), nil
		case ast.OpGt:
			return BooleanValue(left.F > right.F), nil
		case ast.OpGte:
			return BooleanValue(left.F >= right.F), nil
		}
	}

	// Integer
	switch n.Op {
	case ast.OpAdd:
		return IntegerValue(left.I + right.I), nil
	case ast.OpSub:
		return IntegerValue(left.I - right.I), nil
	case ast.OpMul:
		return IntegerValue(left.I * right.I), nil
	case ast.OpDiv:
		if right.I == 0 {
			return Value{}, runtimeErrorf(ErrDivisionByZero, n.Pos(), "division by zero")
		}
		return IntegerValue(left.I / right.I), nil
	case ast.OpLt:
		return BooleanValue(left.I < right.I), nil
	case ast.OpLte:
		return BooleanValue(left.I <= right.I), nil
	case ast.OpGt:
		return BooleanValue(left.I > right.I), nil
	case ast.OpGte:
		return BooleanValue(left.I >= right.I), nil
	}
	return Value{}, nil
}

func valuesEqual(a, b Value) bool {
	switch a.Kind {
	case ast.KindInteger:
		return a.I == b.I
	case ast.KindFloat:
		return a.F == b.F
	case ast.KindString:
		return a.S == b.S
	case ast.KindBoolean:
		return a.B == b.B
	default:
		return a.Obj == b.Obj
	}
}

// evalCall invokes a user-declared function or method by its index into
// Program.Callables, opening a fresh frame (spec.md §4.3: "a call never
// sees the caller's slots").
func (ip *Interp) evalCall(ctx context.Context, n *ast.Call, fr *frame) (Value, error) {
	callable := ip.Program.Callables[n.CallableID]

	callFrame := &frame{}
	// self, when the callable is a method, occupies object slot 0 ahead of
	// the parameters — mirroring internal/parser/declarations.go's
	// parseFunctionBody binding order.
	if n.Receiver != nil {
		self, err := ip.evalExpr(ctx, n.Receiver, fr)
		if err != nil {
			return Value{}, err
		}
		callFrame.declare(ast.KindObject, 0, self)
	}

	for i, param := range callable.Params {
		v, err := ip.evalExpr(ctx, n.Args[i], fr)
		if err != nil {
			return Value{}, err
		}
		slot := paramSlot(callable.Params, i)
		if n.Receiver != nil && param.Kind == ast.KindObject {
			slot++ // object slot 0 holds self
		}
		callFrame.declare(param.Kind, slot, v)
	}

	sig, err := ip.evalBlock(ctx, callable.Body, callFrame)
	if err != nil {
		return Value{}, err
	}
	if sig.kind == signalReturn {
		return sig.value, nil
	}
	return NoneValue(), nil
}

// paramSlot recomputes the kind-scoped slot a parameter was bound to: the
// i-th parameter's slot within its own kind is the count of
// same-kind parameters before it (parseFunctionBody binds them in
// declaration order starting from slot 0 of each kind vector; in a method,
// object parameters start at slot 1 because self takes slot 0, and
// evalCall adds that offset).
func paramSlot(params []ast.Param, i int) int {
	slot := 0
	for j := 0; j < i; j++ {
		if params[j].Kind == params[i].Kind {
			slot++
		}
	}
	return slot
}
