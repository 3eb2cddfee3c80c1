// Package ctypes resolves declared C types to their memory layout: a byte
// width and the operation that stores a value of that type.
package ctypes

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/raymyers/ramcc/pkg/cabs"
)

// PointerSize is the width of pointers and arrays in the 16-bit address
// space.
const PointerSize = 2

// PointerKey is the type key shared by all pointer and array types.
const PointerKey = "pointer"

// ErrUnknownType marks a type with no entry in the layout table.
var ErrUnknownType = errors.New("unknown type size")

// Signedness represents signed/unsigned for integer types
type Signedness int

const (
	Signed Signedness = iota
	Unsigned
)

func (s Signedness) String() string {
	if s == Signed {
		return "signed"
	}
	return "unsigned"
}

// IntSize represents the size of integer types
type IntSize int

const (
	I8 IntSize = iota
	I16
	I32
)

func (s IntSize) String() string {
	names := []string{"i8", "i16", "i32"}
	if int(s) < len(names) {
		return names[s]
	}
	return "?"
}

// Bytes returns the width in bytes.
func (s IntSize) Bytes() int {
	switch s {
	case I8:
		return 1
	case I16:
		return 2
	default:
		return 4
	}
}

// WriteOp stores an integer of a given width and signedness in
// little-endian order.
type WriteOp struct {
	Size IntSize
	Sign Signedness
}

var (
	Int8   = WriteOp{Size: I8, Sign: Signed}
	Uint8  = WriteOp{Size: I8, Sign: Unsigned}
	Int16  = WriteOp{Size: I16, Sign: Signed}
	Uint16 = WriteOp{Size: I16, Sign: Unsigned}
	Int32  = WriteOp{Size: I32, Sign: Signed}
	Uint32 = WriteOp{Size: I32, Sign: Unsigned}
)

func (op WriteOp) String() string {
	prefix := "int"
	if op.Sign == Unsigned {
		prefix = "uint"
	}
	return fmt.Sprintf("%s%d", prefix, op.Size.Bytes()*8)
}

// Width returns the number of bytes Put writes.
func (op WriteOp) Width() int {
	return op.Size.Bytes()
}

// Put encodes value into buf[:op.Width()]. The value is truncated toward
// zero and wrapped modulo the width, so 300 stored as int8 is 44 and -1
// stored as uint16 is 0xffff. NaN and infinities store 0.
func (op WriteOp) Put(buf []byte, value float64) {
	bits := toUint32(value)
	switch op.Size {
	case I8:
		buf[0] = byte(bits)
	case I16:
		binary.LittleEndian.PutUint16(buf, uint16(bits))
	default:
		binary.LittleEndian.PutUint32(buf, bits)
	}
}

func toUint32(value float64) uint32 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return uint32(int64(math.Mod(math.Trunc(value), 1<<32)))
}

// Layout is the resolved storage of a type.
type Layout struct {
	Key  string
	Size int
	Op   WriteOp
}

// table maps canonical type keys to layouts. char, short and long are
// 1, 2 and 4 bytes; int is 4.
var table = map[string]Layout{}

func init() {
	add := func(op WriteOp, words ...string) {
		key := Key(words, "")
		table[key] = Layout{Key: key, Size: op.Width(), Op: op}
	}
	for _, base := range []struct {
		words          []string
		signed, unsign WriteOp
	}{
		{[]string{"char"}, Int8, Uint8},
		{[]string{"short"}, Int16, Uint16},
		{[]string{"short", "int"}, Int16, Uint16},
		{[]string{"int"}, Int32, Uint32},
		{[]string{"long"}, Int32, Uint32},
		{[]string{"long", "int"}, Int32, Uint32},
	} {
		add(base.signed, base.words...)
		add(base.signed, append([]string{"signed"}, base.words...)...)
		add(base.unsign, append([]string{"unsigned"}, base.words...)...)
	}
}

// qualifiers never affect layout.
var qualifiers = []string{"const", "static", "volatile"}

// Key canonicalizes a base type and its modifiers: duplicates and
// qualifiers dropped, the rest sorted and joined with spaces. Modifier
// order therefore never matters: "unsigned long" and "long unsigned" share
// the key "long unsigned".
func Key(modifiers []string, name string) string {
	words := slices.Clone(modifiers)
	if name != "" {
		words = append(words, name)
	}
	words = slices.DeleteFunc(words, func(w string) bool {
		return slices.Contains(qualifiers, w)
	})
	slices.Sort(words)
	return strings.Join(slices.Compact(words), " ")
}

// Resolve looks up the layout of a base type with modifiers.
func Resolve(modifiers []string, name string) (Layout, error) {
	key := Key(modifiers, name)
	layout, ok := table[key]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %q", ErrUnknownType, key)
	}
	return layout, nil
}

// PointerLayout is the layout of every pointer and array type.
func PointerLayout() Layout {
	return Layout{Key: PointerKey, Size: PointerSize, Op: Uint16}
}

// Of resolves a parsed type descriptor.
func Of(t cabs.TypeDesc) (Layout, error) {
	switch t := t.(type) {
	case cabs.PointerType:
		return PointerLayout(), nil
	case cabs.TypeSpec:
		return Resolve(t.Modifiers, t.Name)
	default:
		return Layout{}, fmt.Errorf("%w: %T", ErrUnknownType, t)
	}
}
