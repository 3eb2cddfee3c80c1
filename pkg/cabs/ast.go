// Package cabs defines the abstract syntax tree produced by the parser.
// Every node is a closed variant: the marker methods are unexported, so no
// type outside this package can pose as a node.
package cabs

import "fmt"

// Position locates a node or a diagnostic in the (virtual) source file.
type Position struct {
	File string
	Line int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// Node is the base interface for all AST nodes
type Node interface {
	implCabsNode()
	Pos() Position
}

// Expr is the interface for all expression nodes
type Expr interface {
	Node
	implCabsExpr()
}

// Stmt is the interface for all statement nodes
type Stmt interface {
	Node
	implCabsStmt()
}

// Definition is the interface for top-level definitions
type Definition interface {
	Node
	implDefinition()
}

// TypeDesc is the interface for type descriptors: a base type with its
// modifiers, or a pointer wrapped around another descriptor.
type TypeDesc interface {
	Node
	implTypeDesc()
}

// BinaryOp represents binary operators
type BinaryOp int

const (
	OpAssign BinaryOp = iota
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpShrAssign
	OpShlAssign
	OpAndAssign
	OpXorAssign
	OpOrAssign
	OpQuestion // ternary ?
	OpColon    // ternary :
	OpOr       // ||
	OpAnd      // &&
	OpBitOr
	OpBitXor
	OpBitAnd
	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNe
	OpShr
	OpShl
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpMember // .
	OpArrow  // ->
)

var binaryOpNames = []string{
	"=", "+=", "-=", "*=", "/=", "%=", ">>=", "<<=", "&=", "^=", "|=",
	"?", ":", "||", "&&", "|", "^", "&",
	"<", ">", "<=", ">=", "==", "!=",
	">>", "<<", "+", "-", "*", "/", "%", ".", "->",
}

func (op BinaryOp) String() string {
	if int(op) >= 0 && int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "?"
}

// BinaryOps returns every binary operator.
func BinaryOps() []BinaryOp {
	ops := make([]BinaryOp, len(binaryOpNames))
	for i := range ops {
		ops[i] = BinaryOp(i)
	}
	return ops
}

// UnaryOp represents prefix operators
type UnaryOp int

const (
	OpPreInc UnaryOp = iota // ++
	OpPreDec                // --
	OpNot                   // !
	OpBitNot                // ~
	OpAddrOf                // &
	OpDeref                 // *
	OpPlus                  // +
	OpNeg                   // -
	OpSizeof                // sizeof
)

var unaryOpNames = []string{"++", "--", "!", "~", "&", "*", "+", "-", "sizeof"}

func (op UnaryOp) String() string {
	if int(op) >= 0 && int(op) < len(unaryOpNames) {
		return unaryOpNames[op]
	}
	return "?"
}

// UnaryOps returns the prefix operators in the order the parser tries them.
func UnaryOps() []UnaryOp {
	ops := make([]UnaryOp, len(unaryOpNames))
	for i := range ops {
		ops[i] = UnaryOp(i)
	}
	return ops
}

// PostfixOp represents suffix increment/decrement
type PostfixOp int

const (
	OpPostInc PostfixOp = iota // ++
	OpPostDec                  // --
)

func (op PostfixOp) String() string {
	if op == OpPostInc {
		return "++"
	}
	return "--"
}

// LiteralKind tells which field of a Literal holds its value.
type LiteralKind int

const (
	LitNumber LiteralKind = iota
	LitChar
	LitString
	LitList
)

func (k LiteralKind) String() string {
	names := []string{"number", "char", "string", "list"}
	if int(k) >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "?"
}

// TypeSpec is a base type name plus the modifier keywords read before it.
type TypeSpec struct {
	Modifiers []string
	Name      string
	Loc       Position
}

// PointerType wraps a descriptor for each `*` suffix and each `[...]`
// suffix. Array marks the bracket form; Length is only set for array
// suffixes with a size expression.
type PointerType struct {
	Target TypeDesc
	Array  bool
	Length Expr
	Loc    Position
}

// Decl is a named declarator: a type descriptor bound to a name.
type Decl struct {
	Name string
	Type TypeDesc
	Loc  Position
}

// Literal represents numeric, character, string and brace-list literals
type Literal struct {
	Kind   LiteralKind
	Number float64 // LitNumber and LitChar (character code)
	Text   string  // LitString
	Elems  []Expr  // LitList
	Loc    Position
}

// Variable represents an identifier expression
type Variable struct {
	Name string
	Loc  Position
}

// Unary represents a prefix expression
type Unary struct {
	Op   UnaryOp
	Expr Expr
	Loc  Position
}

// Postfix represents a suffix ++ or --
type Postfix struct {
	Op   PostfixOp
	Expr Expr
	Loc  Position
}

// Binary represents a binary expression
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Loc   Position
}

// Cast represents (type) expr
type Cast struct {
	Type TypeDesc
	Expr Expr
	Loc  Position
}

// SizeofType represents sizeof(type)
type SizeofType struct {
	Type TypeDesc
	Loc  Position
}

// Index represents array subscript access: arr[idx]
type Index struct {
	Array Expr
	Index Expr
	Loc   Position
}

// Call represents a function call
type Call struct {
	Func Expr
	Args []Expr
	Loc  Position
}

// Return represents a return statement
type Return struct {
	Expr Expr // nil for bare return
	Loc  Position
}

// If represents if/else; Else is nil when there is no else branch
type If struct {
	Cond    Expr
	Then    []Stmt
	Else    []Stmt
	HasElse bool // set for `else { }` too, where Else is empty
	Loc     Position
}

// While represents a while loop
type While struct {
	Cond Expr
	Body []Stmt
	Loc  Position
}

// DoWhile represents a do-while loop
type DoWhile struct {
	Body []Stmt
	Cond Expr
	Loc  Position
}

// For represents a for loop; any of Init, Cond and Step may be empty
type For struct {
	Init Stmt
	Cond Expr
	Step Expr
	Body []Stmt
	Loc  Position
}

// VarDecl represents a local variable declaration
type VarDecl struct {
	Name string
	Type TypeDesc
	Init Expr
	Loc  Position
}

// ExprStmt represents an expression statement; Expr is nil for `;`
type ExprStmt struct {
	Expr Expr
	Loc  Position
}

// StructDef represents struct NAME { members }
type StructDef struct {
	Name    string
	Members []Decl
	Loc     Position
}

// EnumMember is one enumerator, with an optional explicit value
type EnumMember struct {
	Name  string
	Value Expr
}

// EnumDef represents enum NAME { members }
type EnumDef struct {
	Name    string
	Members []EnumMember
	Loc     Position
}

// TypedefDef represents typedef TYPE NAME;
type TypedefDef struct {
	Name string
	Type TypeDesc
	Loc  Position
}

// Param is a function parameter; Name is empty in abstract prototypes
type Param struct {
	Name string
	Type TypeDesc
}

// FunDecl represents a function prototype without a body
type FunDecl struct {
	Name   string
	Return TypeDesc
	Params []Param
	Loc    Position
}

// FunDef represents a function definition
type FunDef struct {
	Name   string
	Return TypeDesc
	Params []Param
	Body   []Stmt
	Loc    Position
}

// GlobalVar represents a global variable declaration
type GlobalVar struct {
	Name string
	Type TypeDesc
	Init Expr // nil when there is no initializer
	Loc  Position
}

// Program is a parsed translation unit
type Program struct {
	Definitions []Definition
}

// Marker methods for interface implementation
func (TypeSpec) implCabsNode()    {}
func (TypeSpec) implTypeDesc()    {}
func (PointerType) implCabsNode() {}
func (PointerType) implTypeDesc() {}
func (Decl) implCabsNode()        {}

func (Literal) implCabsNode()    {}
func (Literal) implCabsExpr()    {}
func (Variable) implCabsNode()   {}
func (Variable) implCabsExpr()   {}
func (Unary) implCabsNode()      {}
func (Unary) implCabsExpr()      {}
func (Postfix) implCabsNode()    {}
func (Postfix) implCabsExpr()    {}
func (Binary) implCabsNode()     {}
func (Binary) implCabsExpr()     {}
func (Cast) implCabsNode()       {}
func (Cast) implCabsExpr()       {}
func (SizeofType) implCabsNode() {}
func (SizeofType) implCabsExpr() {}
func (Index) implCabsNode()      {}
func (Index) implCabsExpr()      {}
func (Call) implCabsNode()       {}
func (Call) implCabsExpr()       {}

func (Return) implCabsNode()   {}
func (Return) implCabsStmt()   {}
func (If) implCabsNode()       {}
func (If) implCabsStmt()       {}
func (While) implCabsNode()    {}
func (While) implCabsStmt()    {}
func (DoWhile) implCabsNode()  {}
func (DoWhile) implCabsStmt()  {}
func (For) implCabsNode()      {}
func (For) implCabsStmt()      {}
func (VarDecl) implCabsNode()  {}
func (VarDecl) implCabsStmt()  {}
func (ExprStmt) implCabsNode() {}
func (ExprStmt) implCabsStmt() {}

func (StructDef) implCabsNode()    {}
func (StructDef) implDefinition()  {}
func (EnumDef) implCabsNode()      {}
func (EnumDef) implDefinition()    {}
func (TypedefDef) implCabsNode()   {}
func (TypedefDef) implDefinition() {}
func (FunDecl) implCabsNode()      {}
func (FunDecl) implDefinition()    {}
func (FunDef) implCabsNode()       {}
func (FunDef) implDefinition()     {}
func (GlobalVar) implCabsNode()    {}
func (GlobalVar) implDefinition()  {}

func (n TypeSpec) Pos() Position    { return n.Loc }
func (n PointerType) Pos() Position { return n.Loc }
func (n Decl) Pos() Position        { return n.Loc }
func (n Literal) Pos() Position     { return n.Loc }
func (n Variable) Pos() Position    { return n.Loc }
func (n Unary) Pos() Position       { return n.Loc }
func (n Postfix) Pos() Position     { return n.Loc }
func (n Binary) Pos() Position      { return n.Loc }
func (n Cast) Pos() Position        { return n.Loc }
func (n SizeofType) Pos() Position  { return n.Loc }
func (n Index) Pos() Position       { return n.Loc }
func (n Call) Pos() Position        { return n.Loc }
func (n Return) Pos() Position      { return n.Loc }
func (n If) Pos() Position          { return n.Loc }
func (n While) Pos() Position       { return n.Loc }
func (n DoWhile) Pos() Position     { return n.Loc }
func (n For) Pos() Position         { return n.Loc }
func (n VarDecl) Pos() Position     { return n.Loc }
func (n ExprStmt) Pos() Position    { return n.Loc }
func (n StructDef) Pos() Position   { return n.Loc }
func (n EnumDef) Pos() Position     { return n.Loc }
func (n TypedefDef) Pos() Position  { return n.Loc }
func (n FunDecl) Pos() Position     { return n.Loc }
func (n FunDef) Pos() Position      { return n.Loc }
func (n GlobalVar) Pos() Position   { return n.Loc }
