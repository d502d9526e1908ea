package interp

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/zonkey-lang/zonkey/internal/address"
	"github.com/zonkey-lang/zonkey/internal/ast"
)

var elementCtors = map[ast.NativeOp]string{
	ast.NativePageNew:      "Page",
	ast.NativeRowNew:       "Row",
	ast.NativeColumnNew:    "Column",
	ast.NativeTextNew:      "Text",
	ast.NativeButtonNew:    "Button",
	ast.NativeHyperlinkNew: "Hyperlink",
	ast.NativeInputNew:     "Input",
	ast.NativeImageNew:     "Image",
}

func (ip *Interp) evalNativeCall(ctx context.Context, n *ast.NativeCall, fr *frame) (Value, error) {
	if n.Op == ast.NativeUserInstanceNew {
		return ObjectValue(NewUserInstance(n.Class)), nil
	}

	if class, ok := elementCtors[n.Op]; ok {
		el := NewElement(class)
		if len(n.Args) == 1 {
			arg, err := ip.evalExpr(ctx, n.Args[0], fr)
			if err != nil {
				return Value{}, err
			}
			switch class {
			case "Hyperlink", "Image":
				el.URL = arg.S
			default:
				el.Text = arg.S
			}
		}
		ip.registerElement(el)
		return ObjectValue(el), nil
	}

	var recv Value
	var err error
	if n.Receiver != nil {
		recv, err = ip.evalExpr(ctx, n.Receiver, fr)
		if err != nil {
			return Value{}, err
		}
	}

	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		args[i], err = ip.evalExpr(ctx, a, fr)
		if err != nil {
			return Value{}, err
		}
	}

	switch n.Op {
	case ast.NativePrint:
		fmt.Fprint(ip.Stdout, render(args[0]))
		return NoneValue(), nil
	case ast.NativePrintln:
		fmt.Fprintln(ip.Stdout, render(args[0]))
		return NoneValue(), nil
	case ast.NativePrompt:
		fmt.Fprint(ip.Stdout, args[0].S)
		line, _ := bufio.NewReader(ip.Stdin).ReadString('\n')
		return StringValue(strings.TrimRight(line, "\r\n")), nil

	case ast.NativeSetPage:
		el := args[0].Obj.(*Element)
		ip.page = el
		ip.ToHost <- SetPageEvent{Root: el}
		return NoneValue(), nil

	case ast.NativeWaitForEvent:
		ip.ToHost <- UpdateEvent{Root: ip.page}
		select {
		case <-ctx.Done():
			return BooleanValue(false), nil
		case ev, ok := <-ip.FromHost:
			if !ok {
				return BooleanValue(false), nil
			}
			ip.dispatchInputEvent(ev)
			return BooleanValue(true), nil
		}

	case ast.NativeClicked:
		el := recv.Obj.(*Element)
		return BooleanValue(el.TakeClicked()), nil
	case ast.NativeConfirmed:
		el := recv.Obj.(*Element)
		return BooleanValue(el.TakeConfirmed()), nil

	case ast.NativeIntegerFromString:
		v, perr := strconv.ParseInt(strings.TrimSpace(args[0].S), 10, 64)
		if perr != nil {
			return Value{}, runtimeErrorf(ErrFailedStringToIntegerCast, n.Pos(), "cannot parse %q as Integer", args[0].S)
		}
		return IntegerValue(v), nil
	case ast.NativeFloatFromString:
		v, perr := strconv.ParseFloat(strings.TrimSpace(args[0].S), 64)
		if perr != nil {
			return Value{}, runtimeErrorf(ErrFailedStringToFloatCast, n.Pos(), "cannot parse %q as Float", args[0].S)
		}
		return FloatValue(v), nil
	case ast.NativeIntegerFromFloat:
		return IntegerValue(int64(args[0].F)), nil
	case ast.NativeFloatFromInteger:
		return FloatValue(float64(args[0].I)), nil
	case ast.NativeIntegerToString:
		return StringValue(strconv.FormatInt(recv.I, 10)), nil
	case ast.NativeFloatToString:
		return StringValue(strconv.FormatFloat(recv.F, 'g', -1, 64)), nil

	case ast.NativeArrayNew:
		return ObjectValue(NewArray(ast.KindInteger, nil)), nil
	case ast.NativeArrayGet:
		arr := recv.Obj.(*Array)
		v, ok := arr.Get(args[0].I)
		if !ok {
			return Value{}, runtimeErrorf(ErrIndexOutOfRange, n.Pos(), "array index %d out of range (len %d)", args[0].I, arr.Len())
		}
		return v, nil
	case ast.NativeArrayPush:
		arr := recv.Obj.(*Array)
		arr.Push(args[0])
		return NoneValue(), nil
	case ast.NativeArrayRemove:
		arr := recv.Obj.(*Array)
		if !arr.Remove(args[0].I) {
			return Value{}, runtimeErrorf(ErrIndexOutOfRange, n.Pos(), "array index %d out of range (len %d)", args[0].I, arr.Len())
		}
		return NoneValue(), nil
	case ast.NativeArrayLen:
		arr := recv.Obj.(*Array)
		return IntegerValue(arr.Len()), nil
	case ast.NativeArraySort:
		arr := recv.Obj.(*Array)
		arr.Sort()
		return NoneValue(), nil

	case ast.NativeElementSetText:
		el := recv.Obj.(*Element)
		el.SetText(args[0].S)
		return ObjectValue(el), nil
	case ast.NativeElementSetColor:
		el := recv.Obj.(*Element)
		if cerr := el.SetColor(args[0].S); cerr != nil {
			return Value{}, runtimeErrorf(ErrInvalidHexColour, n.Pos(), "%v", cerr)
		}
		return ObjectValue(el), nil
	case ast.NativeElementSetBackgroundColor:
		el := recv.Obj.(*Element)
		if cerr := el.SetBackgroundColor(args[0].S); cerr != nil {
			return Value{}, runtimeErrorf(ErrInvalidHexColour, n.Pos(), "%v", cerr)
		}
		return ObjectValue(el), nil
	case ast.NativeElementSetPadding:
		el := recv.Obj.(*Element)
		el.SetPadding(args[0].I)
		return ObjectValue(el), nil
	case ast.NativeElementSetMaxWidth:
		el := recv.Obj.(*Element)
		el.SetMaxWidth(args[0].I)
		return ObjectValue(el), nil

	case ast.NativeContainerAdd:
		el := recv.Obj.(*Element)
		el.Add(args[0].Obj.(*Element))
		return ObjectValue(el), nil
	case ast.NativeContainerRemove:
		el := recv.Obj.(*Element)
		el.Remove(args[0].Obj.(*Element))
		return ObjectValue(el), nil

	case ast.NativeReadString:
		if ip.Permission != address.All {
			return Value{}, runtimeErrorf(ErrInsufficientPermissionLevel, n.Pos(), "ReadString() requires full permission")
		}
		data, rerr := os.ReadFile(args[0].S)
		if rerr != nil {
			return Value{}, runtimeErrorf(ErrReadAddressFailed, n.Pos(), "ReadString(%q): %v", args[0].S, rerr)
		}
		return StringValue(string(data)), nil
	case ast.NativeWriteString:
		if ip.Permission != address.All {
			return Value{}, runtimeErrorf(ErrInsufficientPermissionLevel, n.Pos(), "WriteString() requires full permission")
		}
		if werr := os.WriteFile(args[0].S, []byte(args[1].S), 0o644); werr != nil {
			return Value{}, runtimeErrorf(ErrWriteAddressFailed, n.Pos(), "WriteString(%q): %v", args[0].S, werr)
		}
		return NoneValue(), nil

	case ast.NativeInstallApplication:
		if ip.Permission != address.All {
			return Value{}, runtimeErrorf(ErrInsufficientPermissionLevel, n.Pos(), "InstallApplication() requires full permission")
		}
		ip.installedMu.Lock()
		ip.installed[args[0].S] = true
		ip.installedMu.Unlock()
		return NoneValue(), nil
	case ast.NativeRemoveApplication:
		if ip.Permission != address.All {
			return Value{}, runtimeErrorf(ErrInsufficientPermissionLevel, n.Pos(), "RemoveApplication() requires full permission")
		}
		ip.installedMu.Lock()
		_, existed := ip.installed[args[0].S]
		delete(ip.installed, args[0].S)
		ip.installedMu.Unlock()
		if !existed {
			return Value{}, runtimeErrorf(ErrInstallFailed, n.Pos(), "RemoveApplication(%q): not installed", args[0].S)
		}
		return NoneValue(), nil
	case ast.NativeInstalledApplications:
		if ip.Permission != address.All {
			return Value{}, runtimeErrorf(ErrInsufficientPermissionLevel, n.Pos(), "InstalledApplications() requires full permission")
		}
		ip.installedMu.Lock()
		names := make([]Value, 0, len(ip.installed))
		for name := range ip.installed {
			names = append(names, StringValue(name))
		}
		ip.installedMu.Unlock()
		return ObjectValue(NewArray(ast.KindString, names)), nil

	case ast.NativeArgs:
		argVals := make([]Value, len(ip.Args))
		for i, a := range ip.Args {
			argVals[i] = StringValue(a)
		}
		return ObjectValue(NewArray(ast.KindString, argVals)), nil

	case ast.NativeOpenLink:
		ip.ToHost <- OpenLinkEvent{URL: args[0].S}
		return NoneValue(), nil
	case ast.NativeCloseTab:
		ip.ToHost <- CloseTabEvent{}
		return NoneValue(), nil
	}

	return Value{}, nil
}

func render(v Value) string {
	switch v.Kind {
	case ast.KindInteger:
		return strconv.FormatInt(v.I, 10)
	case ast.KindFloat:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case ast.KindString:
		return v.S
	case ast.KindBoolean:
		return strconv.FormatBool(v.B)
	default:
		return ""
	}
}
