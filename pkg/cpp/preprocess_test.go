package cpp

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func preprocess(t *testing.T, opts PreprocessorOptions, lines ...string) (string, error) {
	t.Helper()
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedTime }
	}
	return NewPreprocessor(opts).PreprocessLines(lines, "test.c")
}

func TestPreprocessLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "define then use",
			lines: []string{"#define ONE 1", "int x = ONE;"},
			want:  "\nint x = 1;",
		},
		{
			name:  "line count kept",
			lines: []string{"int a;", "#define N 3", "", "int b[N];"},
			want:  "int a;\n\n\nint b[3];",
		},
		{
			name:  "define after use",
			lines: []string{"int x = LATE;", "#define LATE 2"},
			want:  "int x = LATE;\n",
		},
		{
			name:  "redefine",
			lines: []string{"#define V 1", "V", "#define V 2", "V"},
			want:  "\n1\n\n2",
		},
		{
			name:  "flag macro",
			lines: []string{"#define EMPTY", "a EMPTY;"},
			want:  "\na ;",
		},
		{
			name:  "spaced directive",
			lines: []string{"  #  define  K  7", "K"},
			want:  "\n7",
		},
		{
			name:  "line marker passes through",
			lines: []string{`# 10 "other.c"`, "x"},
			want:  "# 10 \"other.c\"\nx",
		},
		{
			name:  "unknown directive passes through",
			lines: []string{"#pragma once"},
			want:  "#pragma once",
		},
		{
			name:  "line builtin",
			lines: []string{"", "", "int l = __LINE__;"},
			want:  "\n\nint l = 3;",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := preprocess(t, PreprocessorOptions{}, tt.lines...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPreprocessUnimplementedDirectives(t *testing.T) {
	for _, line := range []string{
		`#include "x.h"`,
		"#ifdef FOO",
		"#ifndef FOO",
		"#if 1",
		"#endif",
		"#undef FOO",
	} {
		_, err := preprocess(t, PreprocessorOptions{}, "int a;", line)
		if !errors.Is(err, ErrNotImplemented) {
			t.Errorf("%s: expected ErrNotImplemented, got %v", line, err)
			continue
		}
		if !strings.HasPrefix(err.Error(), "test.c:2: ") {
			t.Errorf("%s: error %q lacks position", line, err)
		}
		if !strings.Contains(err.Error(), strings.Fields(line)[0]) {
			t.Errorf("%s: error %q does not name the directive", line, err)
		}
	}
}

func TestPreprocessErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  error
	}{
		{"unterminated string", []string{`char *s = "abc;`}, ErrUnterminatedLiteral},
		{"bad character", []string{"int x = 1 @ 2;"}, ErrUnexpectedChar},
		{"recursion", []string{"#define LOOP LOOP", "LOOP"}, ErrRecursiveMacro},
		{"bad name", []string{"#define 9 x"}, ErrBadDirective},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := preprocess(t, PreprocessorOptions{}, tt.lines...)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestPreprocessCmdlineDefines(t *testing.T) {
	opts := PreprocessorOptions{Defines: []string{"SIZE=8", "ON"}, Undefines: []string{"__TIME__"}}
	got, err := preprocess(t, opts, "int a[SIZE] = ON; __TIME__")
	if err != nil {
		t.Fatal(err)
	}
	if want := "int a[8] = 1; __TIME__"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPreprocessDefaultFilename(t *testing.T) {
	pp := NewPreprocessor(PreprocessorOptions{})
	got, err := pp.PreprocessLines([]string{"__FILE__"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if want := `"editor"`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPreprocessMacrosVisible(t *testing.T) {
	pp := NewPreprocessor(PreprocessorOptions{})
	if _, err := pp.PreprocessLines([]string{"#define A 1"}, "t.c"); err != nil {
		t.Fatal(err)
	}
	if !pp.GetMacros().IsDefined("A") {
		t.Error("macro A not recorded")
	}
}
