package cabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Dump is the serializable form of a node. Only the fields meaningful for
// Kind are set; the rest are omitted from the YAML output.
type Dump struct {
	Kind      string   `yaml:"kind"`
	Pos       string   `yaml:"pos,omitempty"`
	Name      string   `yaml:"name,omitempty"`
	Op        string   `yaml:"op,omitempty"`
	Modifiers []string `yaml:"modifiers,omitempty"`
	Value     *float64 `yaml:"value,omitempty"`
	Text      *string  `yaml:"text,omitempty"`
	Type      *Dump    `yaml:"type,omitempty"`
	Target    *Dump    `yaml:"target,omitempty"`
	Length    *Dump    `yaml:"length,omitempty"`
	Init      *Dump    `yaml:"init,omitempty"`
	Expr      *Dump    `yaml:"expr,omitempty"`
	Left      *Dump    `yaml:"left,omitempty"`
	Right     *Dump    `yaml:"right,omitempty"`
	Cond      *Dump    `yaml:"cond,omitempty"`
	Step      *Dump    `yaml:"step,omitempty"`
	Params    []Dump   `yaml:"params,omitempty"`
	Members   []Dump   `yaml:"members,omitempty"`
	Items     []Dump   `yaml:"items,omitempty"`
	Body      []Dump   `yaml:"body,omitempty"`
	Else      *[]Dump  `yaml:"else,omitempty"` // nil when there is no else branch
}

// MarshalProgram renders a program as a YAML sequence of definitions.
func MarshalProgram(prog *Program) ([]byte, error) {
	defs := make([]Dump, 0, len(prog.Definitions))
	for _, d := range prog.Definitions {
		defs = append(defs, *DumpNode(d))
	}
	return yaml.Marshal(defs)
}

// DumpNode converts any node to its serializable form. It returns nil for
// a nil node.
func DumpNode(n Node) *Dump {
	if n == nil {
		return nil
	}
	d := &Dump{Pos: n.Pos().String()}
	switch v := n.(type) {
	case TypeSpec:
		d.Kind = "Type"
		d.Name = v.Name
		d.Modifiers = v.Modifiers
	case PointerType:
		d.Kind = "PointerType"
		if v.Array {
			d.Kind = "ArrayType"
		}
		d.Target = DumpNode(v.Target)
		d.Length = dumpExpr(v.Length)
	case Decl:
		d.Kind = "Definition"
		d.Name = v.Name
		d.Type = DumpNode(v.Type)
	case Literal:
		d.Kind = "Literal"
		switch v.Kind {
		case LitNumber, LitChar:
			num := v.Number
			d.Value = &num
		case LitString:
			text := v.Text
			d.Text = &text
		case LitList:
			d.Items = dumpExprs(v.Elems)
		}
	case Variable:
		d.Kind = "Identifier"
		d.Name = v.Name
	case Unary:
		d.Kind = "PrefixExpression"
		d.Op = v.Op.String()
		d.Expr = dumpExpr(v.Expr)
	case Postfix:
		d.Kind = "SuffixExpression"
		d.Op = v.Op.String()
		d.Expr = dumpExpr(v.Expr)
	case Binary:
		d.Kind = "BinaryExpression"
		d.Op = v.Op.String()
		d.Left = dumpExpr(v.Left)
		d.Right = dumpExpr(v.Right)
	case Cast:
		d.Kind = "CastExpression"
		d.Type = DumpNode(v.Type)
		d.Expr = dumpExpr(v.Expr)
	case SizeofType:
		d.Kind = "SizeofType"
		d.Type = DumpNode(v.Type)
	case Index:
		d.Kind = "IndexExpression"
		d.Expr = dumpExpr(v.Array)
		d.Right = dumpExpr(v.Index)
	case Call:
		d.Kind = "CallExpression"
		d.Expr = dumpExpr(v.Func)
		d.Items = dumpExprs(v.Args)
	case Return:
		d.Kind = "ReturnStatement"
		d.Expr = dumpExpr(v.Expr)
	case If:
		d.Kind = "IfStatement"
		d.Cond = dumpExpr(v.Cond)
		d.Body = dumpStmts(v.Then)
		if v.HasElse {
			elseBody := dumpStmts(v.Else)
			d.Else = &elseBody
		}
	case While:
		d.Kind = "WhileStatement"
		d.Cond = dumpExpr(v.Cond)
		d.Body = dumpStmts(v.Body)
	case DoWhile:
		d.Kind = "DoWhileStatement"
		d.Cond = dumpExpr(v.Cond)
		d.Body = dumpStmts(v.Body)
	case For:
		d.Kind = "ForStatement"
		if v.Init != nil {
			d.Init = DumpNode(v.Init)
		}
		d.Cond = dumpExpr(v.Cond)
		d.Step = dumpExpr(v.Step)
		d.Body = dumpStmts(v.Body)
	case VarDecl:
		d.Kind = "VariableDeclaration"
		d.Name = v.Name
		d.Type = DumpNode(v.Type)
		d.Init = dumpExpr(v.Init)
	case ExprStmt:
		d.Kind = "ExpressionStatement"
		d.Expr = dumpExpr(v.Expr)
	case StructDef:
		d.Kind = "StructDefinition"
		d.Name = v.Name
		for _, m := range v.Members {
			d.Members = append(d.Members, *DumpNode(m))
		}
	case EnumDef:
		d.Kind = "EnumDefinition"
		d.Name = v.Name
		for _, m := range v.Members {
			d.Members = append(d.Members, Dump{Kind: "Enumerator", Name: m.Name, Init: dumpExpr(m.Value)})
		}
	case TypedefDef:
		d.Kind = "TypeDefStatement"
		d.Name = v.Name
		d.Type = DumpNode(v.Type)
	case FunDecl:
		d.Kind = "FunctionDeclaration"
		d.Name = v.Name
		d.Type = DumpNode(v.Return)
		d.Params = dumpParams(v.Params)
	case FunDef:
		d.Kind = "FunctionDefinition"
		d.Name = v.Name
		d.Type = DumpNode(v.Return)
		d.Params = dumpParams(v.Params)
		d.Body = dumpStmts(v.Body)
	case GlobalVar:
		d.Kind = "GlobalVariableDeclaration"
		d.Name = v.Name
		d.Type = DumpNode(v.Type)
		d.Init = dumpExpr(v.Init)
	default:
		d.Kind = fmt.Sprintf("Unknown(%T)", n)
	}
	return d
}

func dumpExpr(e Expr) *Dump {
	if e == nil {
		return nil
	}
	return DumpNode(e)
}

func dumpExprs(exprs []Expr) []Dump {
	var out []Dump
	for _, e := range exprs {
		out = append(out, *DumpNode(e))
	}
	return out
}

func dumpStmts(stmts []Stmt) []Dump {
	var out []Dump
	for _, s := range stmts {
		out = append(out, *DumpNode(s))
	}
	return out
}

func dumpParams(params []Param) []Dump {
	var out []Dump
	for _, p := range params {
		out = append(out, Dump{Kind: "Parameter", Name: p.Name, Type: DumpNode(p.Type)})
	}
	return out
}
