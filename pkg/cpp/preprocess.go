// preprocess.go implements the main preprocessor driver.
package cpp

import (
	"strings"
	"time"
)

// DefaultFilename names sources that arrive without a file name.
const DefaultFilename = "editor"

// Preprocessor is the main driver for macro preprocessing. A Preprocessor
// owns its macro table and must not be shared between compilations.
type Preprocessor struct {
	macros   *MacroTable
	expander *Expander
	opts     PreprocessorOptions
}

// PreprocessorOptions configures the preprocessor.
type PreprocessorOptions struct {
	Defines   []string         // -D definitions
	Undefines []string         // -U undefinitions
	Now       func() time.Time // clock for __DATE__/__TIME__; time.Now when nil
}

// NewPreprocessor creates a new preprocessor instance.
func NewPreprocessor(opts PreprocessorOptions) *Preprocessor {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	macros := NewMacroTable(now())
	macros.ApplyCmdlineDefines(opts.Defines, opts.Undefines)

	return &Preprocessor{
		macros:   macros,
		expander: NewExpander(macros),
		opts:     opts,
	}
}

// PreprocessLines processes logical lines (already spliced and free of
// trigraphs) and returns the flat text for the parser. Every input line
// yields exactly one output line, so line numbers are preserved: #define
// lines become empty. Lines are joined with '\n' and no newline is added
// after the last one.
func (p *Preprocessor) PreprocessLines(lines []string, filename string) (string, error) {
	if filename == "" {
		filename = DefaultFilename
	}
	var output strings.Builder
	for i, line := range lines {
		loc := SourceLoc{File: filename, Line: i + 1}
		result, err := p.processLine(line, loc)
		if err != nil {
			return "", err
		}
		if i > 0 {
			output.WriteByte('\n')
		}
		output.WriteString(result)
	}
	return output.String(), nil
}

// processLine processes a single logical line.
func (p *Preprocessor) processLine(line string, loc SourceLoc) (string, error) {
	if dir := ParseDirective(line, loc); dir != nil {
		return "", p.processDirective(dir)
	}
	if isHashLine(line) {
		return line, nil
	}

	tokens, err := NewLexer(line, loc).AllTokens()
	if err != nil {
		return "", err
	}
	expanded, err := p.expander.Expand(tokens, loc)
	if err != nil {
		return "", err
	}
	return TokensToString(expanded), nil
}

// processDirective handles a preprocessing directive.
func (p *Preprocessor) processDirective(dir *Directive) error {
	switch dir.Type {
	case DIR_DEFINE:
		return p.macros.DefineFromDirective(dir.Args, dir.Loc)
	default:
		return errorf(dir.Loc, ErrNotImplemented, "not yet implemented: %s",
			strings.TrimSpace("#"+dir.Keyword+" "+dir.Args))
	}
}

// GetMacros returns the macro table for inspection.
func (p *Preprocessor) GetMacros() *MacroTable {
	return p.macros
}
