// macro.go holds the macro table built from #define directives.
package cpp

import (
	"fmt"
	"strings"
	"time"
)

// MacroKind distinguishes how a macro produces its replacement.
type MacroKind int

const (
	MacroObject  MacroKind = iota // #define NAME value
	MacroFlag                     // #define NAME, expands to nothing
	MacroBuiltin                  // __FILE__, __LINE__, __DATE__, __TIME__
)

// Macro is one entry of the macro table.
type Macro struct {
	Name        string
	Kind        MacroKind
	Replacement string
	builtin     func(loc SourceLoc) string
}

// Text returns the replacement text of the macro at loc.
func (m *Macro) Text(loc SourceLoc) string {
	switch m.Kind {
	case MacroFlag:
		return ""
	case MacroBuiltin:
		return m.builtin(loc)
	default:
		return m.Replacement
	}
}

// MacroTable maps macro names to their definitions.
type MacroTable struct {
	macros map[string]*Macro
}

// NewMacroTable returns a table holding only the builtin macros. now is
// sampled once for __DATE__ and __TIME__.
func NewMacroTable(now time.Time) *MacroTable {
	t := &MacroTable{macros: make(map[string]*Macro)}
	date := fmt.Sprintf("%q", now.Format("Jan _2 2006"))
	clock := fmt.Sprintf("%q", now.Format("15:04:05"))
	t.defineBuiltin("__FILE__", func(loc SourceLoc) string { return fmt.Sprintf("%q", loc.File) })
	t.defineBuiltin("__LINE__", func(loc SourceLoc) string { return fmt.Sprint(loc.Line) })
	t.defineBuiltin("__DATE__", func(SourceLoc) string { return date })
	t.defineBuiltin("__TIME__", func(SourceLoc) string { return clock })
	return t
}

func (t *MacroTable) defineBuiltin(name string, fn func(SourceLoc) string) {
	t.macros[name] = &Macro{Name: name, Kind: MacroBuiltin, builtin: fn}
}

// Define stores an object-like macro. An empty value stores a flag.
func (t *MacroTable) Define(name, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		t.macros[name] = &Macro{Name: name, Kind: MacroFlag}
		return
	}
	t.macros[name] = &Macro{Name: name, Kind: MacroObject, Replacement: value}
}

// DefineFromDirective parses the argument text of a #define line:
// "NAME" or "NAME value".
func (t *MacroTable) DefineFromDirective(args string, loc SourceLoc) error {
	args = strings.TrimSpace(args)
	name, value := args, ""
	if i := strings.IndexAny(args, " \t"); i > 0 {
		name, value = args[:i], args[i:]
	}
	if !IsIdentifier(name) {
		return errorf(loc, ErrBadDirective, "#define: invalid macro name %q", name)
	}
	t.Define(name, value)
	return nil
}

// Undefine removes a macro. Unknown names are ignored.
func (t *MacroTable) Undefine(name string) {
	delete(t.macros, name)
}

// Lookup returns the macro named name, or nil.
func (t *MacroTable) Lookup(name string) *Macro {
	return t.macros[name]
}

// IsDefined reports whether name is in the table.
func (t *MacroTable) IsDefined(name string) bool {
	_, ok := t.macros[name]
	return ok
}

// ApplyCmdlineDefines applies -D and -U style definitions. A define
// without "=" gets the value 1, as a C compiler driver does.
func (t *MacroTable) ApplyCmdlineDefines(defines, undefines []string) {
	for _, d := range defines {
		if name, value, ok := strings.Cut(d, "="); ok {
			t.Define(name, value)
		} else {
			t.Define(d, "1")
		}
	}
	for _, u := range undefines {
		t.Undefine(u)
	}
}
