package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a readable, indented tree of prog to w — the CLI's
// --dump-ast debug aid. It is not part of any external contract: shape
// and wording may change freely.
func Dump(w io.Writer, prog *Program) {
	fmt.Fprintln(w, "Program")
	dumpBlock(w, "  ", "start", prog.Start)
	for i, c := range prog.Callables {
		fmt.Fprintf(w, "  callable[%d] %s %s\n", i, c.Name, paramList(c.Params))
		if c.Kind == Source && c.Body != nil {
			dumpBlock(w, "    ", "body", c.Body)
		}
	}
}

func paramList(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + " " + p.Kind.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func dumpBlock(w io.Writer, indent, label string, b *Block) {
	fmt.Fprintf(w, "%s%s: Block\n", indent, label)
	for _, s := range b.Stmts {
		dumpStmt(w, indent+"  ", s)
	}
}

func dumpStmt(w io.Writer, indent string, s Stmt) {
	switch n := s.(type) {
	case *VarDecl:
		fmt.Fprintf(w, "%slet %s: %s = %s\n", indent, n.Name, n.Kind, dumpExpr(n.Init))
	case *AssignStmt:
		fmt.Fprintf(w, "%sassign(%d) %s\n", indent, n.Op, dumpExpr(n.Value))
	case *ExprStmt:
		fmt.Fprintf(w, "%s%s\n", indent, dumpExpr(n.Value))
	case *Block:
		dumpBlock(w, indent, "block", n)
	case *IfStmt:
		fmt.Fprintf(w, "%sif %s\n", indent, dumpExpr(n.Cond))
		dumpBlock(w, indent+"  ", "then", n.Then)
		if n.Else != nil {
			dumpBlock(w, indent+"  ", "else", n.Else)
		}
	case *WhileStmt:
		fmt.Fprintf(w, "%swhile %s\n", indent, dumpExpr(n.Cond))
		dumpBlock(w, indent+"  ", "body", n.Body)
	case *LoopStmt:
		fmt.Fprintf(w, "%sloop\n", indent)
		dumpBlock(w, indent+"  ", "body", n.Body)
	case *BreakStmt:
		fmt.Fprintf(w, "%sbreak\n", indent)
	case *ContinueStmt:
		fmt.Fprintf(w, "%scontinue\n", indent)
	case *ReturnStmt:
		if n.Value == nil {
			fmt.Fprintf(w, "%sreturn\n", indent)
		} else {
			fmt.Fprintf(w, "%sreturn %s\n", indent, dumpExpr(n.Value))
		}
	default:
		fmt.Fprintf(w, "%s<stmt %T>\n", indent, s)
	}
}

// dumpExpr renders one expression as a single line; the AST has no
// operator-precedence ambiguity to preserve since every node already
// carries its resolved structure, so a flat S-expression is enough for a
// debug dump.
func dumpExpr(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	switch n := e.(type) {
	case *IntegerLiteral:
		return fmt.Sprintf("%d", n.Value)
	case *FloatLiteral:
		return fmt.Sprintf("%g", n.Value)
	case *StringLiteral:
		return fmt.Sprintf("%q", n.Value)
	case *BooleanLiteral:
		return fmt.Sprintf("%t", n.Value)
	case *VarRef:
		return fmt.Sprintf("%s@slot%d", n.Name, n.Slot)
	case *PropertyRef:
		return fmt.Sprintf("%s.%s", dumpExpr(n.Object), n.PropertyName)
	case *Binary:
		return fmt.Sprintf("(%s %d %s)", dumpExpr(n.Left), n.Op, dumpExpr(n.Right))
	case *Unary:
		return fmt.Sprintf("(%d %s)", n.Op, dumpExpr(n.Operand))
	case *Cast:
		return fmt.Sprintf("(%s -> %s)", dumpExpr(n.Operand), n.Kind())
	case *Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = dumpExpr(a)
		}
		if n.Receiver != nil {
			return fmt.Sprintf("%s.%s(%s)", dumpExpr(n.Receiver), n.Name, strings.Join(args, ", "))
		}
		return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
	case *NativeCall:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = dumpExpr(a)
		}
		if n.Receiver != nil {
			return fmt.Sprintf("%s.native[%d](%s)", dumpExpr(n.Receiver), n.Op, strings.Join(args, ", "))
		}
		return fmt.Sprintf("native[%d](%s)", n.Op, strings.Join(args, ", "))
	case *ArrayLiteral:
		elems := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = dumpExpr(el)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	default:
		return fmt.Sprintf("<expr %T>", e)
	}
}
