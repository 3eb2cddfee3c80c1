// expand.go implements object-like macro substitution.
package cpp

// MaxExpansionDepth bounds nested macro substitution.
const MaxExpansionDepth = 256

// Expander substitutes macros in token streams. It tracks the macros
// currently being expanded; meeting one of them again is an error rather
// than an endless loop.
type Expander struct {
	macros *MacroTable
	active map[string]bool
	depth  int
}

// NewExpander creates a new macro expander.
func NewExpander(macros *MacroTable) *Expander {
	return &Expander{
		macros: macros,
		active: make(map[string]bool),
	}
}

// Expand replaces every identifier naming a macro with the retokenized,
// recursively expanded replacement text. loc is the logical line being
// expanded and feeds __FILE__ and __LINE__.
func (e *Expander) Expand(tokens []Token, loc SourceLoc) ([]Token, error) {
	var result []Token
	for _, tok := range tokens {
		if tok.Type != PP_IDENTIFIER {
			result = append(result, tok)
			continue
		}
		macro := e.macros.Lookup(tok.Text)
		if macro == nil {
			result = append(result, tok)
			continue
		}
		expanded, err := e.expandMacro(macro, tok.Loc, loc)
		if err != nil {
			return nil, err
		}
		result = append(result, expanded...)
	}
	return result, nil
}

func (e *Expander) expandMacro(macro *Macro, at, line SourceLoc) ([]Token, error) {
	if e.active[macro.Name] {
		return nil, errorf(at, ErrRecursiveMacro, "macro %s expands to itself", macro.Name)
	}
	if e.depth >= MaxExpansionDepth {
		return nil, errorf(at, ErrRecursiveMacro, "macro expansion nested deeper than %d", MaxExpansionDepth)
	}

	text := macro.Text(line)
	if text == "" {
		return nil, nil
	}
	replacement, err := NewLexer(text, at).AllTokens()
	if err != nil {
		return nil, err
	}

	e.active[macro.Name] = true
	e.depth++
	defer func() {
		delete(e.active, macro.Name)
		e.depth--
	}()
	return e.Expand(replacement, line)
}

// ExpandString is a convenience function to expand macros in one line.
func (e *Expander) ExpandString(input string, loc SourceLoc) (string, error) {
	tokens, err := NewLexer(input, loc).AllTokens()
	if err != nil {
		return "", err
	}
	expanded, err := e.Expand(tokens, loc)
	if err != nil {
		return "", err
	}
	return TokensToString(expanded), nil
}
