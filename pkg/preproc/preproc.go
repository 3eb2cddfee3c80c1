// Package preproc runs the front half of the pipeline: source
// normalization followed by macro preprocessing.
package preproc

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/raymyers/ramcc/pkg/cpp"
	"github.com/raymyers/ramcc/pkg/normalize"
)

// Options configures the preprocessing step
type Options struct {
	Defines   map[string]string // -D macros (name -> replacement text, "" for an empty macro)
	Undefines []string          // -U macros
	Now       func() time.Time  // clock for __DATE__ and __TIME__
}

// Preprocess reads the named file and preprocesses it.
func Preprocess(filename string, opts *Options) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", filename, err)
	}
	return PreprocessString(string(data), filename, opts)
}

// PreprocessString normalizes and preprocesses C source held in memory.
// filename is used for positions and __FILE__ only.
func PreprocessString(source, filename string, opts *Options) (string, error) {
	return cpp.NewPreprocessor(cppOptions(opts)).PreprocessLines(normalize.Lines(source), filename)
}

func cppOptions(opts *Options) cpp.PreprocessorOptions {
	var ppOpts cpp.PreprocessorOptions
	if opts == nil {
		return ppOpts
	}
	ppOpts.Undefines = opts.Undefines
	ppOpts.Now = opts.Now
	for _, name := range sortedKeys(opts.Defines) {
		ppOpts.Defines = append(ppOpts.Defines, name+"="+opts.Defines[name])
	}
	return ppOpts
}

// ParseDefines converts -D arguments into the map form used by Options.
// A bare NAME defines NAME as 1 and NAME= defines it as empty.
func ParseDefines(args []string) map[string]string {
	defines := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			value = "1"
		}
		defines[name] = value
	}
	return defines
}

// NeedsPreprocessing returns true if the file might need preprocessing.
// Files ending in .i or .p are considered already preprocessed.
func NeedsPreprocessing(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext != ".i" && ext != ".p"
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
