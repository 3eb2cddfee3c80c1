// Package cabs provides AST printing functionality
package cabs

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Printer outputs the AST in a human-readable, C-like format. Nested binary
// expressions are parenthesized so the tree shape stays visible.
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter creates a new AST printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, indent: 0}
}

// PrintProgram prints a complete program
func (p *Printer) PrintProgram(prog *Program) {
	for _, def := range prog.Definitions {
		p.printDefinition(def)
		fmt.Fprintln(p.w)
	}
}

// PrintExpr prints a single expression without a trailing newline
func (p *Printer) PrintExpr(expr Expr) {
	p.printExpr(expr)
}

func (p *Printer) writeIndent() {
	fmt.Fprint(p.w, strings.Repeat("  ", p.indent))
}

func (p *Printer) printDefinition(def Definition) {
	switch d := def.(type) {
	case FunDef:
		p.printFunHeader(d.Return, d.Name, d.Params)
		fmt.Fprintln(p.w)
		p.printBody(d.Body)
	case FunDecl:
		p.printFunHeader(d.Return, d.Name, d.Params)
		fmt.Fprintln(p.w, ";")
	case TypedefDef:
		fmt.Fprint(p.w, "typedef ")
		p.printDeclarator(d.Type, d.Name)
		fmt.Fprintln(p.w, ";")
	case StructDef:
		p.printStructDef(d)
	case EnumDef:
		p.printEnumDef(d)
	case GlobalVar:
		p.printDeclarator(d.Type, d.Name)
		if d.Init != nil {
			fmt.Fprint(p.w, " = ")
			p.printExpr(d.Init)
		}
		fmt.Fprintln(p.w, ";")
	default:
		fmt.Fprintf(p.w, "/* unknown definition %T */\n", def)
	}
}

func (p *Printer) printFunHeader(ret TypeDesc, name string, params []Param) {
	p.printDeclarator(ret, name)
	fmt.Fprint(p.w, "(")
	for i, param := range params {
		if i > 0 {
			fmt.Fprint(p.w, ", ")
		}
		p.printDeclarator(param.Type, param.Name)
	}
	fmt.Fprint(p.w, ")")
}

func (p *Printer) printStructDef(s StructDef) {
	fmt.Fprintf(p.w, "struct %s {\n", s.Name)
	p.indent++
	for _, m := range s.Members {
		p.writeIndent()
		p.printDeclarator(m.Type, m.Name)
		fmt.Fprintln(p.w, ";")
	}
	p.indent--
	fmt.Fprintln(p.w, "};")
}

func (p *Printer) printEnumDef(e EnumDef) {
	fmt.Fprintf(p.w, "enum %s {\n", e.Name)
	p.indent++
	for i, val := range e.Members {
		p.writeIndent()
		fmt.Fprint(p.w, val.Name)
		if val.Value != nil {
			fmt.Fprint(p.w, " = ")
			p.printExpr(val.Value)
		}
		if i < len(e.Members)-1 {
			fmt.Fprintln(p.w, ",")
		} else {
			fmt.Fprintln(p.w)
		}
	}
	p.indent--
	fmt.Fprintln(p.w, "};")
}

// printDeclarator prints a type descriptor around an optional name:
// `unsigned int *p[4]`.
func (p *Printer) printDeclarator(t TypeDesc, name string) {
	var dims []PointerType
	for {
		ptr, ok := t.(PointerType)
		if !ok || !ptr.Array {
			break
		}
		dims = append(dims, ptr)
		t = ptr.Target
	}
	stars := 0
	for {
		ptr, ok := t.(PointerType)
		if !ok {
			break
		}
		stars++
		t = ptr.Target
	}
	p.printTypeSpec(t)
	if stars > 0 {
		fmt.Fprint(p.w, " "+strings.Repeat("*", stars))
	}
	if name != "" {
		if stars == 0 {
			fmt.Fprint(p.w, " ")
		}
		fmt.Fprint(p.w, name)
	}
	for i := len(dims) - 1; i >= 0; i-- {
		fmt.Fprint(p.w, "[")
		if dims[i].Length != nil {
			p.printExpr(dims[i].Length)
		}
		fmt.Fprint(p.w, "]")
	}
}

func (p *Printer) printTypeSpec(t TypeDesc) {
	switch ts := t.(type) {
	case TypeSpec:
		for _, m := range ts.Modifiers {
			fmt.Fprintf(p.w, "%s ", m)
		}
		fmt.Fprint(p.w, ts.Name)
	case nil:
		fmt.Fprint(p.w, "/* no type */")
	default:
		// a pointer nested inside an array suffix
		p.printDeclarator(t, "")
	}
}

func (p *Printer) printBody(stmts []Stmt) {
	p.writeIndent()
	fmt.Fprintln(p.w, "{")
	p.indent++
	for _, stmt := range stmts {
		p.printStmt(stmt)
	}
	p.indent--
	p.writeIndent()
	fmt.Fprintln(p.w, "}")
}

func (p *Printer) printStmt(stmt Stmt) {
	p.writeIndent()
	p.printStmtInline(stmt)
}

func (p *Printer) printStmtInline(stmt Stmt) {
	switch s := stmt.(type) {
	case Return:
		fmt.Fprint(p.w, "return")
		if s.Expr != nil {
			fmt.Fprint(p.w, " ")
			p.printExpr(s.Expr)
		}
		fmt.Fprintln(p.w, ";")
	case ExprStmt:
		if s.Expr != nil {
			p.printExpr(s.Expr)
		}
		fmt.Fprintln(p.w, ";")
	case VarDecl:
		p.printDeclarator(s.Type, s.Name)
		if s.Init != nil {
			fmt.Fprint(p.w, " = ")
			p.printExpr(s.Init)
		}
		fmt.Fprintln(p.w, ";")
	case If:
		fmt.Fprint(p.w, "if (")
		p.printExpr(s.Cond)
		fmt.Fprintln(p.w, ")")
		p.printBody(s.Then)
		if s.HasElse {
			p.writeIndent()
			fmt.Fprintln(p.w, "else")
			p.printBody(s.Else)
		}
	case While:
		fmt.Fprint(p.w, "while (")
		p.printExpr(s.Cond)
		fmt.Fprintln(p.w, ")")
		p.printBody(s.Body)
	case DoWhile:
		fmt.Fprintln(p.w, "do")
		p.printBody(s.Body)
		p.writeIndent()
		fmt.Fprint(p.w, "while (")
		p.printExpr(s.Cond)
		fmt.Fprintln(p.w, ");")
	case For:
		fmt.Fprint(p.w, "for (")
		if s.Init != nil {
			// the init statement prints its own ";\n"
			var sb strings.Builder
			inner := &Printer{w: &sb}
			inner.printStmtInline(s.Init)
			fmt.Fprint(p.w, strings.TrimSuffix(sb.String(), "\n"))
		} else {
			fmt.Fprint(p.w, ";")
		}
		fmt.Fprint(p.w, " ")
		if s.Cond != nil {
			p.printExpr(s.Cond)
		}
		fmt.Fprint(p.w, "; ")
		if s.Step != nil {
			p.printExpr(s.Step)
		}
		fmt.Fprintln(p.w, ")")
		p.printBody(s.Body)
	default:
		fmt.Fprintf(p.w, "/* unknown stmt %T */;\n", stmt)
	}
}

func (p *Printer) printExpr(expr Expr) {
	switch e := expr.(type) {
	case Literal:
		p.printLiteral(e)
	case Variable:
		fmt.Fprint(p.w, e.Name)
	case Unary:
		if e.Op == OpSizeof {
			fmt.Fprint(p.w, "sizeof ")
		} else {
			fmt.Fprint(p.w, e.Op.String())
		}
		p.printOperand(e.Expr)
	case Postfix:
		p.printOperand(e.Expr)
		fmt.Fprint(p.w, e.Op.String())
	case Binary:
		p.printBinary(e)
	case Cast:
		fmt.Fprint(p.w, "(")
		p.printDeclarator(e.Type, "")
		fmt.Fprint(p.w, ")")
		p.printOperand(e.Expr)
	case SizeofType:
		fmt.Fprint(p.w, "sizeof(")
		p.printDeclarator(e.Type, "")
		fmt.Fprint(p.w, ")")
	case Call:
		p.printOperand(e.Func)
		fmt.Fprint(p.w, "(")
		for i, arg := range e.Args {
			if i > 0 {
				fmt.Fprint(p.w, ", ")
			}
			p.printExpr(arg)
		}
		fmt.Fprint(p.w, ")")
	case Index:
		p.printOperand(e.Array)
		fmt.Fprint(p.w, "[")
		p.printExpr(e.Index)
		fmt.Fprint(p.w, "]")
	case nil:
		fmt.Fprint(p.w, "/* empty */")
	default:
		fmt.Fprintf(p.w, "/* unknown expr %T */", expr)
	}
}

// printOperand parenthesizes binary operands of unary and postfix forms
func (p *Printer) printOperand(expr Expr) {
	if _, ok := expr.(Binary); ok {
		fmt.Fprint(p.w, "(")
		p.printExpr(expr)
		fmt.Fprint(p.w, ")")
		return
	}
	p.printExpr(expr)
}

func (p *Printer) printLiteral(l Literal) {
	switch l.Kind {
	case LitNumber:
		fmt.Fprint(p.w, strconv.FormatFloat(l.Number, 'g', -1, 64))
	case LitChar:
		fmt.Fprint(p.w, strconv.QuoteRune(rune(l.Number)))
	case LitString:
		fmt.Fprint(p.w, strconv.Quote(l.Text))
	case LitList:
		fmt.Fprint(p.w, "{")
		for i, el := range l.Elems {
			if i > 0 {
				fmt.Fprint(p.w, ", ")
			}
			p.printExpr(el)
		}
		fmt.Fprint(p.w, "}")
	}
}

func (p *Printer) printBinary(b Binary) {
	p.printOperand(b.Left)
	switch b.Op {
	case OpMember, OpArrow:
		fmt.Fprint(p.w, b.Op.String())
	default:
		fmt.Fprintf(p.w, " %s ", b.Op.String())
	}
	p.printOperand(b.Right)
}
