package parser

import (
	"slices"
	"strings"
)

var (
	defaultTypeNames = []string{"void", "char", "short", "int", "long", "float", "double"}
	defaultModifiers = []string{"signed", "unsigned", "short", "long", "const", "struct", "enum"}
)

// TypeRegistry holds the base type names and modifier keywords the
// parser recognizes. Struct, enum and typedef definitions add names while
// parsing, which is how a later `myint x;` is told apart from an
// expression. Both lists are kept unique and sorted longest first.
type TypeRegistry struct {
	names     []string
	modifiers []string
}

// NewTypeRegistry returns a registry seeded with the primitive types and
// modifiers.
func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{}
	for _, n := range defaultTypeNames {
		r.AddType(n)
	}
	for _, m := range defaultModifiers {
		r.AddModifier(m)
	}
	return r
}

// AddType registers a base type name.
func (r *TypeRegistry) AddType(name string) {
	r.names = insertSorted(r.names, name)
}

// AddModifier registers a modifier keyword.
func (r *TypeRegistry) AddModifier(modifier string) {
	r.modifiers = insertSorted(r.modifiers, modifier)
}

// IsType reports whether name is a registered base type.
func (r *TypeRegistry) IsType(name string) bool {
	return slices.Contains(r.names, name)
}

// IsModifier reports whether word is a registered modifier.
func (r *TypeRegistry) IsModifier(word string) bool {
	return slices.Contains(r.modifiers, word)
}

// Names returns the base type names, longest first.
func (r *TypeRegistry) Names() []string {
	return slices.Clone(r.names)
}

// Modifiers returns the modifier keywords, longest first.
func (r *TypeRegistry) Modifiers() []string {
	return slices.Clone(r.modifiers)
}

func (r *TypeRegistry) String() string {
	return strings.Join(r.names, ", ")
}

func insertSorted(list []string, s string) []string {
	if s == "" || slices.Contains(list, s) {
		return list
	}
	list = append(list, s)
	slices.SortStableFunc(list, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})
	return list
}
