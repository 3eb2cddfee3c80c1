package ctypes

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/raymyers/ramcc/pkg/cabs"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name      string
		modifiers []string
		base      string
		want      string
	}{
		{"plain", nil, "int", "int"},
		{"unsigned long", []string{"unsigned"}, "long", "long unsigned"},
		{"long unsigned", []string{"long"}, "unsigned", "long unsigned"},
		{"qualifiers dropped", []string{"const", "static", "volatile"}, "char", "char"},
		{"duplicates dropped", []string{"signed", "signed"}, "short", "short signed"},
		{"three words", []string{"unsigned", "long"}, "int", "int long unsigned"},
		{"no base", []string{"const", "signed"}, "", "signed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.modifiers, tt.base); got != tt.want {
				t.Errorf("Key(%v, %q) = %q, want %q", tt.modifiers, tt.base, got, tt.want)
			}
		})
	}
}

func TestKeyDoesNotModifyInput(t *testing.T) {
	mods := []string{"unsigned", "const"}
	Key(mods, "int")
	if mods[0] != "unsigned" || mods[1] != "const" {
		t.Errorf("modifiers changed to %v", mods)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		modifiers []string
		base      string
		size      int
		op        WriteOp
	}{
		{nil, "char", 1, Int8},
		{[]string{"signed"}, "char", 1, Int8},
		{[]string{"unsigned"}, "char", 1, Uint8},
		{nil, "short", 2, Int16},
		{[]string{"short"}, "int", 2, Int16},
		{[]string{"unsigned", "short"}, "int", 2, Uint16},
		{nil, "int", 4, Int32},
		{[]string{"unsigned"}, "int", 4, Uint32},
		{nil, "long", 4, Int32},
		{[]string{"long"}, "int", 4, Int32},
		{[]string{"unsigned"}, "long", 4, Uint32},
		{[]string{"long", "unsigned"}, "int", 4, Uint32},
		{[]string{"const", "static"}, "long", 4, Int32},
	}
	for _, tt := range tests {
		name := Key(tt.modifiers, tt.base)
		t.Run(name, func(t *testing.T) {
			layout, err := Resolve(tt.modifiers, tt.base)
			if err != nil {
				t.Fatal(err)
			}
			if layout.Size != tt.size {
				t.Errorf("size = %d, want %d", layout.Size, tt.size)
			}
			if layout.Op != tt.op {
				t.Errorf("op = %v, want %v", layout.Op, tt.op)
			}
			if layout.Key != name {
				t.Errorf("key = %q, want %q", layout.Key, name)
			}
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	for _, base := range []string{"float", "double", "void", "myint"} {
		t.Run(base, func(t *testing.T) {
			_, err := Resolve(nil, base)
			if !errors.Is(err, ErrUnknownType) {
				t.Errorf("Resolve(%q) error = %v, want ErrUnknownType", base, err)
			}
		})
	}
	if _, err := Resolve([]string{"struct"}, "point"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("struct point: error = %v, want ErrUnknownType", err)
	}
}

func TestOf(t *testing.T) {
	ptr := cabs.PointerType{Target: cabs.TypeSpec{Name: "char"}}
	arr := cabs.PointerType{Target: cabs.TypeSpec{Name: "int"}, Array: true}
	for _, typ := range []cabs.TypeDesc{ptr, arr} {
		layout, err := Of(typ)
		if err != nil {
			t.Fatal(err)
		}
		if layout != PointerLayout() {
			t.Errorf("Of(%#v) = %+v, want pointer layout", typ, layout)
		}
	}
	layout, err := Of(cabs.TypeSpec{Name: "long", Modifiers: []string{"unsigned"}})
	if err != nil {
		t.Fatal(err)
	}
	if layout.Op != Uint32 {
		t.Errorf("unsigned long op = %v, want uint32", layout.Op)
	}
	if PointerLayout().Size != PointerSize || PointerLayout().Op != Uint16 {
		t.Errorf("pointer layout = %+v", PointerLayout())
	}
}

func TestWriteOpString(t *testing.T) {
	tests := []struct {
		op   WriteOp
		want string
	}{
		{Int8, "int8"},
		{Uint8, "uint8"},
		{Int16, "int16"},
		{Uint16, "uint16"},
		{Int32, "int32"},
		{Uint32, "uint32"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPut(t *testing.T) {
	tests := []struct {
		name  string
		op    WriteOp
		value float64
		want  []byte
	}{
		{"int32 little endian", Int32, 0x01020304, []byte{4, 3, 2, 1}},
		{"int32 negative", Int32, -2, []byte{0xfe, 0xff, 0xff, 0xff}},
		{"uint16", Uint16, 0xbeef, []byte{0xef, 0xbe}},
		{"uint16 wraps negative", Uint16, -1, []byte{0xff, 0xff}},
		{"int8 wraps", Int8, 300, []byte{44}},
		{"uint8 truncates fraction", Uint8, 7.9, []byte{7}},
		{"negative fraction toward zero", Int8, -1.5, []byte{0xff}},
		{"uint32 wraps 2^32", Uint32, 1 << 32, []byte{0, 0, 0, 0}},
		{"NaN stores zero", Int32, math.NaN(), []byte{0, 0, 0, 0}},
		{"Inf stores zero", Int16, math.Inf(1), []byte{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := bytes.Repeat([]byte{0xaa}, 5)
			tt.op.Put(buf, tt.value)
			if !bytes.Equal(buf[:tt.op.Width()], tt.want) {
				t.Errorf("Put(%v) = % x, want % x", tt.value, buf[:tt.op.Width()], tt.want)
			}
			for i := tt.op.Width(); i < len(buf); i++ {
				if buf[i] != 0xaa {
					t.Errorf("byte %d overwritten", i)
				}
			}
		})
	}
}
