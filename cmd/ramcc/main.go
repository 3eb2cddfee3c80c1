package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raymyers/ramcc/pkg/cabs"
	"github.com/raymyers/ramcc/pkg/compiler"
	"github.com/raymyers/ramcc/pkg/memgen"
	"github.com/raymyers/ramcc/pkg/normalize"
	"github.com/raymyers/ramcc/pkg/preproc"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var version = "0.1.0"

// Debug flags for dumping intermediate stages
var (
	dNorm  bool
	dParse bool
	dMem   bool
	dAsm   bool
)

// Compile options
var (
	defineFlags    []string
	undefineFlags  []string
	preprocessOnly bool // -E flag
	astFormat      string
	outputFile     string
	verbose        bool
)

// debugFlagInfo holds metadata for a debug flag
type debugFlagInfo struct {
	flag *bool
	desc string
}

// debugFlags maps flag names to descriptions for unimplemented warnings
var debugFlags = map[string]debugFlagInfo{
	"dasm": {&dAsm, "dump function code"},
}

// ErrNotImplemented indicates a feature is not yet implemented
var ErrNotImplemented = errors.New("not yet implemented")

// checkDebugFlags checks if any unimplemented debug flags are set and returns an error
func checkDebugFlags(w io.Writer) error {
	for name, info := range debugFlags {
		if *info.flag {
			fmt.Fprintf(w, "ramcc: warning: -%s (%s) is not yet implemented\n", name, info.desc)
			return ErrNotImplemented
		}
	}
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// debugFlagNames lists the debug flags that accept single-dash style
var debugFlagNames = []string{"dnorm", "dparse", "dmem", "dasm"}

// normalizeFlags converts single-dash debug flags like -dparse to --dparse
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		for _, flagName := range debugFlagNames {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
		if result[i] == "" {
			result[i] = arg
		}
	}
	return result
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ramcc [file]",
		Short: "ramcc compiles C globals into a 64 KiB memory image",
		Long: `ramcc is a miniature C compiler. It normalizes and preprocesses
the source, parses it, and lays out global variables in a 64 KiB
address space together with the program that initializes them.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkDebugFlags(errOut); err != nil {
				return err
			}
			if astFormat != "c" && astFormat != "yaml" {
				fmt.Fprintf(errOut, "ramcc: unknown AST format %q (want c or yaml)\n", astFormat)
				return fmt.Errorf("unknown AST format %q", astFormat)
			}

			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			filename := args[0]

			switch {
			case preprocessOnly:
				return doPreprocessOnly(filename, out, errOut)
			case dNorm:
				return doNormalize(filename, out, errOut)
			case dParse:
				return doParse(filename, out, errOut)
			}
			return doCompile(filename, out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.Flags()
	flags.BoolVarP(&dNorm, "dnorm", "", false, "Dump normalized logical lines")
	flags.BoolVarP(&dParse, "dparse", "", false, "Dump after parsing")
	flags.BoolVarP(&dMem, "dmem", "", false, "Dump the memory layout, initializer and memory")
	flags.BoolVarP(&dAsm, "dasm", "", false, "Dump function code")
	flags.StringVar(&astFormat, "ast-format", "c", "AST dump format for -dparse: c or yaml")

	flags.StringArrayVarP(&defineFlags, "define", "D", nil, "Define macro (NAME or NAME=VALUE)")
	flags.StringArrayVarP(&undefineFlags, "undefine", "U", nil, "Undefine macro")
	flags.BoolVarP(&preprocessOnly, "preprocess", "E", false, "Preprocess only, output to stdout")
	flags.StringVarP(&outputFile, "output", "o", "", "Write the initialized memory image to FILE")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Report each pipeline stage")
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	return rootCmd
}

// buildOptions creates compiler options from CLI flags
func buildOptions(filename string) *compiler.Options {
	return &compiler.Options{
		Preproc: preproc.Options{
			Defines:   preproc.ParseDefines(defineFlags),
			Undefines: undefineFlags,
		},
		Preprocessed: !preproc.NeedsPreprocessing(filename),
	}
}

func logf(errOut io.Writer, format string, args ...any) {
	if verbose {
		fmt.Fprintf(errOut, "ramcc: "+format+"\n", args...)
	}
}

func readSource(filename string, errOut io.Writer) (string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "ramcc: error reading %s: %v\n", filename, err)
		return "", err
	}
	return string(content), nil
}

// doPreprocessOnly preprocesses and outputs to stdout (-E flag)
func doPreprocessOnly(filename string, out, errOut io.Writer) error {
	opts := buildOptions(filename)
	content, err := preproc.Preprocess(filename, &opts.Preproc)
	if err != nil {
		fmt.Fprintf(errOut, "ramcc: preprocessing error: %v\n", err)
		return err
	}
	fmt.Fprint(out, content)
	return nil
}

// doNormalize prints the logical lines after splicing and trigraphs (-dnorm flag)
func doNormalize(filename string, out, errOut io.Writer) error {
	content, err := readSource(filename, errOut)
	if err != nil {
		return err
	}
	lines := normalize.Lines(content)
	logf(errOut, "normalized %s: %d logical lines", filename, len(lines))
	for i, line := range lines {
		fmt.Fprintf(out, "%4d  %s\n", i+1, line)
	}
	return nil
}

// doParse parses the file and writes the AST next to it (-dparse flag)
func doParse(filename string, out, errOut io.Writer) error {
	content, err := readSource(filename, errOut)
	if err != nil {
		return err
	}
	res, err := compiler.Parse(content, filename, buildOptions(filename))
	if err != nil {
		fmt.Fprintf(errOut, "ramcc: %v\n", err)
		return err
	}
	logf(errOut, "parsed %s: %d definitions", filename, len(res.Program.Definitions))

	var dump strings.Builder
	if astFormat == "yaml" {
		data, err := cabs.MarshalProgram(res.Program)
		if err != nil {
			fmt.Fprintf(errOut, "ramcc: %v\n", err)
			return err
		}
		dump.Write(data)
	} else {
		cabs.NewPrinter(&dump).PrintProgram(res.Program)
	}

	outputFilename := parsedOutputFilename(filename, astFormat)
	if err := os.WriteFile(outputFilename, []byte(dump.String()), 0644); err != nil {
		fmt.Fprintf(errOut, "ramcc: error creating %s: %v\n", outputFilename, err)
		return err
	}
	fmt.Fprint(out, dump.String())
	return nil
}

// parsedOutputFilename returns the output filename for -dparse:
// input.c -> input.parsed.c, or input.parsed.yaml for the YAML format
func parsedOutputFilename(filename, format string) string {
	suffix := ".parsed.c"
	if format == "yaml" {
		suffix = ".parsed.yaml"
	}
	return strings.TrimSuffix(filename, ".c") + suffix
}

// doCompile runs the whole pipeline and the initializer
func doCompile(filename string, out, errOut io.Writer) error {
	content, err := readSource(filename, errOut)
	if err != nil {
		return err
	}

	buf := compiler.NewBuffer(content)
	wb := compiler.NewWorkbench(buf, filename, buildOptions(filename))
	wb.Attach(buf)

	res, err := wb.Compile()
	if err != nil {
		fmt.Fprintf(errOut, "ramcc: %v\n", err)
		return err
	}
	logf(errOut, "parsed %s: %d definitions", filename, len(res.Program.Definitions))
	logf(errOut, "generated %d globals, %d instructions", len(res.Image.Decls), len(res.Image.Program))

	used, img, err := wb.Run()
	if err != nil {
		fmt.Fprintf(errOut, "ramcc: %v\n", err)
		return err
	}

	if dMem {
		memgen.NewPrinter(out).PrintImage(img)
	}
	if outputFile != "" {
		if err := os.WriteFile(outputFile, img.Memory, 0644); err != nil {
			fmt.Fprintf(errOut, "ramcc: error creating %s: %v\n", outputFile, err)
			return err
		}
		logf(errOut, "wrote %d bytes to %s", len(img.Memory), outputFile)
	}
	fmt.Fprintf(errOut, "ramcc: compiling %s: %d bytes of static data\n", filename, len(used))
	return nil
}
