// Package memgen lays out global variables in a fixed 64 KiB address space
// and records the program that writes their initial values.
package memgen

import (
	"fmt"

	"github.com/raymyers/ramcc/pkg/cabs"
	"github.com/raymyers/ramcc/pkg/ctypes"
)

// RAMSize is the size of the simulated address space.
const RAMSize = 65536

// Decl is a laid-out global variable.
type Decl struct {
	Name    string
	Key     string
	Size    int
	Op      ctypes.WriteOp
	Address int
	Init    cabs.Expr // nil when declared without an initializer
	Pos     cabs.Position
}

// Instruction writes Value at Address using Op.
type Instruction struct {
	Address int
	Op      ctypes.WriteOp
	Value   float64
}

func (in Instruction) String() string {
	return fmt.Sprintf("%s [0x%04x] = %v", in.Op, in.Address, in.Value)
}

// Image is the output of generation. Memory is not populated until
// Initialize runs.
type Image struct {
	Memory               []byte
	StaticAllocationSize int
	Decls                []Decl
	Program              []Instruction
}

// Initialize zero-fills memory and runs the initializer program in order.
func (img *Image) Initialize() {
	clear(img.Memory)
	for _, in := range img.Program {
		in.Op.Put(img.Memory[in.Address:], in.Value)
	}
}

// Used returns the statically allocated prefix of memory.
func (img *Image) Used() []byte {
	return img.Memory[:img.StaticAllocationSize]
}

// Generator lowers a parsed program. A Generator serves a single program.
type Generator struct {
	decls   []Decl
	program []Instruction
	next    int
}

// New creates a generator with an empty address space.
func New() *Generator {
	return &Generator{}
}

// Generate is New().Generate(prog).
func Generate(prog *cabs.Program) (*Image, error) {
	return New().Generate(prog)
}

// Generate lays out every definition of prog in declaration order. It stops
// at the first definition it cannot lower.
func (g *Generator) Generate(prog *cabs.Program) (*Image, error) {
	for _, def := range prog.Definitions {
		if err := g.definition(def); err != nil {
			return nil, err
		}
	}
	return &Image{
		Memory:               make([]byte, RAMSize),
		StaticAllocationSize: g.next,
		Decls:                g.decls,
		Program:              g.program,
	}, nil
}

func (g *Generator) definition(def cabs.Definition) error {
	switch d := def.(type) {
	case cabs.GlobalVar:
		return g.global(d)
	case cabs.FunDef:
		return errorf(d.Loc, ErrNotImplemented, "not yet implemented: function definition %s", d.Name)
	case cabs.FunDecl:
		return errorf(d.Loc, ErrNotImplemented, "not yet implemented: function declaration %s", d.Name)
	case cabs.StructDef:
		return errorf(d.Loc, ErrNotImplemented, "not yet implemented: struct %s", d.Name)
	case cabs.EnumDef:
		return errorf(d.Loc, ErrNotImplemented, "not yet implemented: enum %s", d.Name)
	case cabs.TypedefDef:
		return errorf(d.Loc, ErrNotImplemented, "not yet implemented: typedef %s", d.Name)
	default:
		return errorf(def.Pos(), ErrNotImplemented, "not yet implemented: %T", def)
	}
}

func (g *Generator) global(v cabs.GlobalVar) error {
	layout, err := ctypes.Of(v.Type)
	if err != nil {
		return errorf(v.Loc, ctypes.ErrUnknownType, "%s: %v", v.Name, err)
	}

	addr, err := g.alloc(layout.Size)
	if err != nil {
		return errorf(v.Loc, err, "%s: cannot allocate %d bytes at 0x%04x", v.Name, layout.Size, g.next)
	}
	g.decls = append(g.decls, Decl{
		Name:    v.Name,
		Key:     layout.Key,
		Size:    layout.Size,
		Op:      layout.Op,
		Address: addr,
		Init:    v.Init,
		Pos:     v.Loc,
	})

	if v.Init == nil {
		return nil
	}
	value, err := constant(v.Init)
	if err != nil {
		return err
	}
	g.program = append(g.program, Instruction{Address: addr, Op: layout.Op, Value: value})
	return nil
}

// alloc claims size bytes from the bump allocator.
func (g *Generator) alloc(size int) (int, error) {
	if g.next+size > RAMSize {
		return 0, ErrOutOfMemory
	}
	addr := g.next
	g.next += size
	return addr, nil
}

// constant evaluates an initializer. Only numeric and character literals
// are supported.
func constant(e cabs.Expr) (float64, error) {
	lit, ok := e.(cabs.Literal)
	if !ok {
		return 0, errorf(e.Pos(), ErrNotImplemented, "not yet implemented: %s initializer", exprKind(e))
	}
	switch lit.Kind {
	case cabs.LitNumber, cabs.LitChar:
		return lit.Number, nil
	default:
		return 0, errorf(lit.Loc, ErrNotImplemented, "not yet implemented: %s literal initializer", lit.Kind)
	}
}

func exprKind(e cabs.Expr) string {
	if d := cabs.DumpNode(e); d != nil {
		return d.Kind
	}
	return fmt.Sprintf("%T", e)
}
