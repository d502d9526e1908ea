package interp

import "github.com/zonkey-lang/zonkey/internal/ast"

// frame is one call's (or the start block's) stack storage: five
// independent, kind-scoped vectors addressed by the dense slot ids the
// parser handed out (internal/parser/scope.go's slotAllocator). A block's
// exit truncates each vector back to the length it had on entry, the
// evaluator-side mirror of the parser's counter snapshot/restore.
type frame struct {
	ints    []int64
	floats  []float64
	strs    []string
	bools   []bool
	objects []Object
}

type frameMark struct{ i, f, s, b, o int }

func (fr *frame) mark() frameMark {
	return frameMark{len(fr.ints), len(fr.floats), len(fr.strs), len(fr.bools), len(fr.objects)}
}

func (fr *frame) truncate(m frameMark) {
	fr.ints = fr.ints[:m.i]
	fr.floats = fr.floats[:m.f]
	fr.strs = fr.strs[:m.s]
	fr.bools = fr.bools[:m.b]
	fr.objects = fr.objects[:m.o]
}

// declare grows the appropriate vector to cover slot, so VarDecl can
// declare slots in any order a block's parse-time allocator produced.
func (fr *frame) declare(kind ast.ValueKind, slot int, v Value) {
	switch kind {
	case ast.KindInteger:
		fr.ints = growInt(fr.ints, slot+1)
		fr.ints[slot] = v.I
	case ast.KindFloat:
		fr.floats = growFloat(fr.floats, slot+1)
		fr.floats[slot] = v.F
	case ast.KindString:
		fr.strs = growString(fr.strs, slot+1)
		fr.strs[slot] = v.S
	case ast.KindBoolean:
		fr.bools = growBool(fr.bools, slot+1)
		fr.bools[slot] = v.B
	case ast.KindObject:
		fr.objects = growObject(fr.objects, slot+1)
		fr.objects[slot] = v.Obj
	}
}

func (fr *frame) get(kind ast.ValueKind, slot int) Value {
	switch kind {
	case ast.KindInteger:
		return IntegerValue(fr.ints[slot])
	case ast.KindFloat:
		return FloatValue(fr.floats[slot])
	case ast.KindString:
		return StringValue(fr.strs[slot])
	case ast.KindBoolean:
		return BooleanValue(fr.bools[slot])
	case ast.KindObject:
		return ObjectValue(fr.objects[slot])
	default:
		return NoneValue()
	}
}

func (fr *frame) set(kind ast.ValueKind, slot int, v Value) {
	switch kind {
	case ast.KindInteger:
		fr.ints[slot] = v.I
	case ast.KindFloat:
		fr.floats[slot] = v.F
	case ast.KindString:
		fr.strs[slot] = v.S
	case ast.KindBoolean:
		fr.bools[slot] = v.B
	case ast.KindObject:
		fr.objects[slot] = v.Obj
	}
}

func growInt(s []int64, n int) []int64 {
	for len(s) < n {
		s = append(s, 0)
	}
	return s
}
func growFloat(s []float64, n int) []float64 {
	for len(s) < n {
		s = append(s, 0)
	}
	return s
}
func growString(s []string, n int) []string {
	for len(s) < n {
		s = append(s, "")
	}
	return s
}
func growBool(s []bool, n int) []bool {
	for len(s) < n {
		s = append(s, false)
	}
	return s
}
func growObject(s []Object, n int) []Object {
	for len(s) < n {
		s = append(s, nil)
	}
	return s
}
