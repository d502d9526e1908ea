package parser

import (
	"github.com/zonkey-lang/zonkey/internal/ast"
	"github.com/zonkey-lang/zonkey/internal/lexer"
)

// elementConstructors maps each preregistered UI element class to its
// constructor op; each constructor accepts zero or one argument (an
// optional String caption/source), matching spec.md §4.3's "UI element
// constructors" description.
var elementConstructors = map[string]ast.NativeOp{
	"Page":      ast.NativePageNew,
	"Row":       ast.NativeRowNew,
	"Column":    ast.NativeColumnNew,
	"Text":      ast.NativeTextNew,
	"Button":    ast.NativeButtonNew,
	"Hyperlink": ast.NativeHyperlinkNew,
	"Input":     ast.NativeInputNew,
	"Image":     ast.NativeImageNew,
}

// propertySlots assigns a stable per-class property-slot id to each
// directly readable field, so PropertyRef nodes (spec.md §3) have a real
// numeric address rather than a name lookup at evaluation time.
var propertySlots = map[string]int{
	"text": 0, "color": 1, "background_color": 2, "padding": 3,
	"max_width": 4, "url": 5,
}

func propertyKind(name string) ast.ValueKind {
	switch name {
	case "padding", "max_width":
		return ast.KindInteger
	default:
		return ast.KindString
	}
}

// isElement reports whether class names one of the eight preregistered UI
// element classes (spec.md glossary: "Element").
func isElement(class string) bool {
	switch class {
	case "Page", "Row", "Column", "Text", "Button", "Hyperlink", "Input", "Image":
		return true
	}
	return false
}

func isContainer(class string) bool {
	switch class {
	case "Page", "Row", "Column":
		return true
	}
	return false
}

// resolveIdentifierCall handles `name(args)` where name is not a variable:
// a UI element constructor, a free native function, or a user function.
func (p *Parser) resolveIdentifierCall(name string, pos lexer.Position, args []ast.Expr) ast.Expr {
	if op, ok := elementConstructors[name]; ok {
		if len(args) > 1 {
			p.errorAt(TagArgumentCountMismatch, pos, "%s() takes at most 1 argument, got %d", name, len(args))
		}
		if len(args) == 1 && args[0].Kind() != ast.KindString {
			p.errorAt(TagArgumentKindMismatch, args[0].Pos(), "%s() argument must be String", name)
		}
		call := ast.NewNativeCall(pos, ast.KindObject, op, nil, args)
		call.Class = name
		return call
	}

	switch name {
	case "print":
		p.checkArity(pos, name, args, 1)
		return ast.NewNativeCall(pos, ast.KindNone, ast.NativePrint, nil, args)
	case "println":
		p.checkArity(pos, name, args, 1)
		return ast.NewNativeCall(pos, ast.KindNone, ast.NativePrintln, nil, args)
	case "prompt":
		p.checkArity(pos, name, args, 1)
		p.checkArgKind(args, 0, ast.KindString)
		return ast.NewNativeCall(pos, ast.KindString, ast.NativePrompt, nil, args)
	case "set_page":
		p.checkArity(pos, name, args, 1)
		if len(args) == 1 && (args[0].Kind() != ast.KindObject || args[0].(interface{ ClassName() string }).ClassName() != "Page") {
			p.errorAt(TagArgumentKindMismatch, args[0].Pos(), "set_page() argument must be a Page")
		}
		return ast.NewNativeCall(pos, ast.KindNone, ast.NativeSetPage, nil, args)
	case "wait_for_event":
		p.checkArity(pos, name, args, 0)
		return ast.NewNativeCall(pos, ast.KindBoolean, ast.NativeWaitForEvent, nil, args)
	case "Args":
		p.checkArity(pos, name, args, 0)
		call := ast.NewNativeCall(pos, ast.KindObject, ast.NativeArgs, nil, args)
		call.Class = ast.ArrayClassName(ast.KindString)
		return call
	case "OpenLink":
		p.checkArity(pos, name, args, 1)
		p.checkArgKind(args, 0, ast.KindString)
		return ast.NewNativeCall(pos, ast.KindNone, ast.NativeOpenLink, nil, args)
	case "CloseTab":
		p.checkArity(pos, name, args, 0)
		return ast.NewNativeCall(pos, ast.KindNone, ast.NativeCloseTab, nil, args)
	case "ReadString":
		p.checkArity(pos, name, args, 1)
		p.checkArgKind(args, 0, ast.KindString)
		return ast.NewNativeCall(pos, ast.KindString, ast.NativeReadString, nil, args)
	case "WriteString":
		p.checkArity(pos, name, args, 2)
		p.checkArgKind(args, 0, ast.KindString)
		p.checkArgKind(args, 1, ast.KindString)
		return ast.NewNativeCall(pos, ast.KindNone, ast.NativeWriteString, nil, args)
	case "InstallApplication":
		p.checkArity(pos, name, args, 1)
		p.checkArgKind(args, 0, ast.KindString)
		return ast.NewNativeCall(pos, ast.KindNone, ast.NativeInstallApplication, nil, args)
	case "RemoveApplication":
		p.checkArity(pos, name, args, 1)
		p.checkArgKind(args, 0, ast.KindString)
		return ast.NewNativeCall(pos, ast.KindNone, ast.NativeRemoveApplication, nil, args)
	case "InstalledApplications":
		p.checkArity(pos, name, args, 0)
		call := ast.NewNativeCall(pos, ast.KindObject, ast.NativeInstalledApplications, nil, args)
		call.Class = ast.ArrayClassName(ast.KindString)
		return call
	}

	if id, ok := lookupCallableByName(p.callables, name); ok {
		callable := p.callables[id]
		p.checkCallArgs(pos, name, callable.Params, args)
		kind := ast.KindNone
		if callable.ReturnKind != nil {
			kind = *callable.ReturnKind
		}
		return ast.NewCall(pos, kind, id, name, args)
	}

	// A bare `ClassName()` constructs a user-defined class instance
	// (spec.md §9's Open Question on class support: the grammar parses
	// class declarations, and resolveMethodCall already dispatches
	// receiver.method() against p.classes, so the only missing piece for
	// a fully usable user class is this zero-argument constructor form).
	if _, ok := p.classes[name]; ok {
		p.checkArity(pos, name, args, 0)
		call := ast.NewNativeCall(pos, ast.KindObject, ast.NativeUserInstanceNew, nil, nil)
		call.Class = name
		return call
	}

	p.errorAt(TagUndeclaredName, pos, "undeclared function %q", name)
	return ast.NewIntegerLiteral(pos, 0)
}

// resolveMethodCall handles `receiver.name(args)`.
func (p *Parser) resolveMethodCall(receiver ast.Expr, name string, loc lexer.Position, args []ast.Expr) ast.Expr {
	class := classOf(receiver)

	// Casts spelled as a method call: numeric.toString().
	if name == "toString" && (receiver.Kind() == ast.KindInteger || receiver.Kind() == ast.KindFloat) {
		p.checkArity(loc, name, args, 0)
		op := ast.NativeIntegerToString
		if receiver.Kind() == ast.KindFloat {
			op = ast.NativeFloatToString
		}
		return ast.NewNativeCall(loc, ast.KindString, op, receiver, nil)
	}

	if isArrayClass(class) {
		elemKind := elemKindFromClass(class)
		switch name {
		case "get":
			p.checkArity(loc, name, args, 1)
			p.checkArgKind(args, 0, ast.KindInteger)
			c := ast.NewNativeCall(loc, elemKind, ast.NativeArrayGet, receiver, args)
			c.Class = classNameFor(elemKind, "")
			return c
		case "push":
			p.checkArity(loc, name, args, 1)
			if len(args) == 1 && args[0].Kind() != elemKind {
				p.errorAt(TagArgumentKindMismatch, args[0].Pos(), "push() argument must be %s", kindName(elemKind))
			}
			return ast.NewNativeCall(loc, ast.KindNone, ast.NativeArrayPush, receiver, args)
		case "remove":
			p.checkArity(loc, name, args, 1)
			p.checkArgKind(args, 0, ast.KindInteger)
			return ast.NewNativeCall(loc, ast.KindNone, ast.NativeArrayRemove, receiver, args)
		case "len":
			p.checkArity(loc, name, args, 0)
			return ast.NewNativeCall(loc, ast.KindInteger, ast.NativeArrayLen, receiver, nil)
		case "sort":
			p.checkArity(loc, name, args, 0)
			return ast.NewNativeCall(loc, ast.KindNone, ast.NativeArraySort, receiver, nil)
		default:
			p.errorAt(TagUnknownMethod, loc, "array has no method %q", name)
			return ast.NewIntegerLiteral(loc, 0)
		}
	}

	if isElement(class) {
		if ret, ok := p.resolveElementMethod(receiver, class, name, loc, args); ok {
			return ret
		}
	}

	if def, ok := p.classes[class]; ok {
		if method, ok := def.Methods[name]; ok {
			p.checkCallArgs(loc, name, method.Params, args)
			kind := ast.KindNone
			if method.ReturnKind != nil {
				kind = *method.ReturnKind
			}
			return ast.NewMethodCall(loc, kind, indexOfCallable(p.callables, method), name, receiver, args)
		}
	}

	p.errorAt(TagUnknownMethod, loc, "%s has no method %q", class, name)
	return ast.NewIntegerLiteral(loc, 0)
}

func (p *Parser) resolveElementMethod(receiver ast.Expr, class, name string, pos lexer.Position, args []ast.Expr) (ast.Expr, bool) {
	switch name {
	case "set_title", "set_text":
		p.checkArity(pos, name, args, 1)
		p.checkArgKind(args, 0, ast.KindString)
		c := ast.NewNativeCall(pos, ast.KindObject, ast.NativeElementSetText, receiver, args)
		c.Class = class
		return c, true
	case "set_color":
		p.checkArity(pos, name, args, 1)
		p.checkArgKind(args, 0, ast.KindString)
		c := ast.NewNativeCall(pos, ast.KindObject, ast.NativeElementSetColor, receiver, args)
		c.Class = class
		return c, true
	case "set_background_color":
		p.checkArity(pos, name, args, 1)
		p.checkArgKind(args, 0, ast.KindString)
		c := ast.NewNativeCall(pos, ast.KindObject, ast.NativeElementSetBackgroundColor, receiver, args)
		c.Class = class
		return c, true
	case "set_padding":
		p.checkArity(pos, name, args, 1)
		p.checkArgKind(args, 0, ast.KindInteger)
		c := ast.NewNativeCall(pos, ast.KindObject, ast.NativeElementSetPadding, receiver, args)
		c.Class = class
		return c, true
	case "set_max_width":
		p.checkArity(pos, name, args, 1)
		p.checkArgKind(args, 0, ast.KindInteger)
		c := ast.NewNativeCall(pos, ast.KindObject, ast.NativeElementSetMaxWidth, receiver, args)
		c.Class = class
		return c, true
	case "add", "remove":
		if !isContainer(class) {
			p.errorAt(TagUnknownMethod, pos, "%s is not a container and has no method %q", class, name)
			return nil, true
		}
		p.checkArity(pos, name, args, 1)
		if len(args) == 1 && (args[0].Kind() != ast.KindObject || !isElement(classOf(args[0]))) {
			p.errorAt(TagArgumentKindMismatch, args[0].Pos(), "%s() argument must be an Element", name)
		}
		op := ast.NativeContainerAdd
		if name == "remove" {
			op = ast.NativeContainerRemove
		}
		c := ast.NewNativeCall(pos, ast.KindObject, op, receiver, args)
		c.Class = class
		return c, true
	case "clicked":
		if class != "Button" && class != "Hyperlink" {
			p.errorAt(TagUnknownMethod, pos, "%s has no method %q", class, name)
			return nil, true
		}
		p.checkArity(pos, name, args, 0)
		return ast.NewNativeCall(pos, ast.KindBoolean, ast.NativeClicked, receiver, nil), true
	case "confirmed":
		if class != "Input" {
			p.errorAt(TagUnknownMethod, pos, "%s has no method %q", class, name)
			return nil, true
		}
		p.checkArity(pos, name, args, 0)
		return ast.NewNativeCall(pos, ast.KindBoolean, ast.NativeConfirmed, receiver, nil), true
	}
	return nil, false
}

func (p *Parser) checkArity(pos lexer.Position, name string, args []ast.Expr, want int) {
	if len(args) != want {
		p.errorAt(TagArgumentCountMismatch, pos, "%s() takes %d argument(s), got %d", name, want, len(args))
	}
}

func (p *Parser) checkArgKind(args []ast.Expr, i int, kind ast.ValueKind) {
	if i < len(args) && args[i].Kind() != kind {
		p.errorAt(TagArgumentKindMismatch, args[i].Pos(), "argument %d must be %s, got %s", i+1, kindName(kind), kindName(args[i].Kind()))
	}
}

func (p *Parser) checkCallArgs(pos lexer.Position, name string, params []ast.Param, args []ast.Expr) {
	if len(params) != len(args) {
		p.errorAt(TagArgumentCountMismatch, pos, "%s() takes %d argument(s), got %d", name, len(params), len(args))
		return
	}
	for i, param := range params {
		if args[i].Kind() != param.Kind {
			p.errorAt(TagArgumentKindMismatch, args[i].Pos(), "argument %d of %s() must be %s, got %s", i+1, name, kindName(param.Kind), kindName(args[i].Kind()))
		}
	}
}

func isArrayClass(class string) bool {
	return len(class) > 1 && class[0] == '[' && class[len(class)-1] == ']'
}

func elemKindFromClass(class string) ast.ValueKind {
	if !isArrayClass(class) {
		return ast.KindNone
	}
	inner := class[1 : len(class)-1]
	switch inner {
	case "Integer":
		return ast.KindInteger
	case "Float":
		return ast.KindFloat
	case "String":
		return ast.KindString
	case "Boolean":
		return ast.KindBoolean
	default:
		return ast.KindObject
	}
}

func classNameFor(kind ast.ValueKind, objClass string) string {
	if kind == ast.KindObject {
		return objClass
	}
	return ""
}

func indexOfCallable(callables []*ast.Callable, target *ast.Callable) int {
	for i, c := range callables {
		if c == target {
			return i
		}
	}
	return -1
}
