// Package compiler drives the whole pipeline: preprocessing, parsing and
// memory image generation. Every call owns its own macro table, type
// registry and image; nothing is shared between calls.
package compiler

import (
	"fmt"

	"github.com/raymyers/ramcc/pkg/cabs"
	"github.com/raymyers/ramcc/pkg/memgen"
	"github.com/raymyers/ramcc/pkg/parser"
	"github.com/raymyers/ramcc/pkg/preproc"
)

// DefaultFilename names sources that do not come from a file.
const DefaultFilename = "editor"

// Options configures a compile.
type Options struct {
	Preproc preproc.Options
	// Preprocessed skips normalization and macro expansion, for .i files.
	Preprocessed bool
	// Types and Modifiers are registered with the parser before parsing.
	Types     []string
	Modifiers []string
}

// Result holds the output of each stage that ran.
type Result struct {
	Preprocessed string
	Program      *cabs.Program
	Image        *memgen.Image // nil after Parse
}

// Parse runs the pipeline up to and including the parser.
func Parse(source, filename string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	if filename == "" {
		filename = DefaultFilename
	}

	text := source
	if !opts.Preprocessed {
		var err error
		text, err = preproc.PreprocessString(source, filename, &opts.Preproc)
		if err != nil {
			return nil, fmt.Errorf("preprocessing: %w", err)
		}
	}

	prog, err := parser.ParseString(text, filename,
		parser.WithTypes(opts.Types...), parser.WithModifiers(opts.Modifiers...))
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	return &Result{Preprocessed: text, Program: prog}, nil
}

// Compile runs the full pipeline. On error no partial result is returned.
func Compile(source, filename string, opts *Options) (*Result, error) {
	res, err := Parse(source, filename, opts)
	if err != nil {
		return nil, err
	}
	img, err := memgen.Generate(res.Program)
	if err != nil {
		return nil, fmt.Errorf("generating: %w", err)
	}
	res.Image = img
	return res, nil
}

// Run executes the image's initializer and returns its memory.
func Run(img *memgen.Image) []byte {
	img.Initialize()
	return img.Memory
}
