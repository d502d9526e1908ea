package interp

import (
	"context"

	"github.com/zonkey-lang/zonkey/internal/ast"
	"github.com/zonkey-lang/zonkey/internal/lexer"
)

// evalBlock runs stmts in a nested scope, truncating the frame back to
// its entry watermark on exit (the evaluator-side mirror of the parser's
// slot-counter snapshot/restore, spec.md §4.3).
func (ip *Interp) evalBlock(ctx context.Context, b *ast.Block, fr *frame) (signal, error) {
	mark := fr.mark()
	defer fr.truncate(mark)

	for _, stmt := range b.Stmts {
		sig, err := ip.evalStmt(ctx, stmt, fr)
		if err != nil {
			return noSignal, err
		}
		if sig.kind != signalNone {
			return sig, nil
		}
	}
	return noSignal, nil
}

func (ip *Interp) evalStmt(ctx context.Context, stmt ast.Stmt, fr *frame) (signal, error) {
	if err := ctx.Err(); err != nil {
		return signal{kind: signalExit}, nil
	}

	switch s := stmt.(type) {
	case *ast.VarDecl:
		v, err := ip.evalExpr(ctx, s.Init, fr)
		if err != nil {
			return noSignal, err
		}
		fr.declare(s.Kind, s.Slot, v)
		return noSignal, nil

	case *ast.AssignStmt:
		return noSignal, ip.evalAssign(ctx, s, fr)

	case *ast.ExprStmt:
		_, err := ip.evalExpr(ctx, s.Value, fr)
		return noSignal, err

	case *ast.Block:
		return ip.evalBlock(ctx, s, fr)

	case *ast.IfStmt:
		cond, err := ip.evalExpr(ctx, s.Cond, fr)
		if err != nil {
			return noSignal, err
		}
		if cond.B {
			return ip.evalBlock(ctx, s.Then, fr)
		}
		if s.Else != nil {
			return ip.evalBlock(ctx, s.Else, fr)
		}
		return noSignal, nil

	case *ast.WhileStmt:
		for {
			cond, err := ip.evalExpr(ctx, s.Cond, fr)
			if err != nil {
				return noSignal, err
			}
			if !cond.B {
				return noSignal, nil
			}
			sig, err := ip.evalBlock(ctx, s.Body, fr)
			if err != nil {
				return noSignal, err
			}
			switch sig.kind {
			case signalBreak:
				return noSignal, nil
			case signalReturn, signalExit:
				return sig, nil
			}
		}

	case *ast.LoopStmt:
		for {
			sig, err := ip.evalBlock(ctx, s.Body, fr)
			if err != nil {
				return noSignal, err
			}
			switch sig.kind {
			case signalBreak:
				return noSignal, nil
			case signalReturn, signalExit:
				return sig, nil
			}
		}

	case *ast.BreakStmt:
		return signal{kind: signalBreak}, nil

	case *ast.ContinueStmt:
		return signal{kind: signalContinue}, nil

	case *ast.ReturnStmt:
		if s.Value == nil {
			return signal{kind: signalReturn}, nil
		}
		v, err := ip.evalExpr(ctx, s.Value, fr)
		if err != nil {
			return noSignal, err
		}
		return signal{kind: signalReturn, value: v}, nil

	default:
		return noSignal, nil
	}
}

func (ip *Interp) evalAssign(ctx context.Context, s *ast.AssignStmt, fr *frame) error {
	value, err := ip.evalExpr(ctx, s.Value, fr)
	if err != nil {
		return err
	}

	switch target := s.Target.(type) {
	case *ast.VarRef:
		current := fr.get(target.Kind(), target.Slot)
		combined, err := applyAssignOp(s.Op, current, value, s.Pos())
		if err != nil {
			return err
		}
		fr.set(target.Kind(), target.Slot, combined)
		return nil

	case *ast.PropertyRef:
		objVal, err := ip.evalExpr(ctx, target.Object, fr)
		if err != nil {
			return err
		}
		el, ok := objVal.Obj.(*Element)
		if !ok {
			return nil
		}
		current := readProperty(el, target.PropertyName)
		combined, err := applyAssignOp(s.Op, current, value, s.Pos())
		if err != nil {
			return err
		}
		if perr := writeProperty(el, target.PropertyName, combined); perr != nil {
			return runtimeErrorf(ErrInvalidHexColour, s.Pos(), "%v", perr)
		}
		return nil
	}
	return nil
}

func applyAssignOp(op ast.AssignOp, current, value Value, pos lexer.Position) (Value, error) {
	if op == ast.Assign {
		return value, nil
	}
	switch current.Kind {
	case ast.KindInteger:
		switch op {
		case ast.AddAssign:
			return IntegerValue(current.I + value.I), nil
		case ast.SubAssign:
			return IntegerValue(current.I - value.I), nil
		case ast.MulAssign:
			return IntegerValue(current.I * value.I), nil
		case ast.DivAssign:
			if value.I == 0 {
				return Value{}, runtimeErrorf(ErrDivisionByZero, pos, "division by zero")
			}
			return IntegerValue(current.I / value.I), nil
		}
	case ast.KindFloat:
		switch op {
		case ast.AddAssign:
			return FloatValue(current.F + value.F), nil
		case ast.SubAssign:
			return FloatValue(current.F - value.F), nil
		case ast.MulAssign:
			return FloatValue(current.F * value.F), nil
		case ast.DivAssign:
			return FloatValue(current.F / value.F), nil
		}
	case ast.KindString:
		if op == ast.AddAssign {
			return StringValue(current.S + value.S), nil
		}
	}
	return value, nil
}
