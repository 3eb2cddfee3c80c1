package normalize

import (
	"reflect"
	"testing"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single line", "int x;", []string{"int x;"}},
		{"two lines", "a\nb", []string{"a", "b"}},
		{"crlf", "a\r\nb\rc", []string{"a", "b", "c"}},
		{"splice", "ab\\\ncd", []string{"abcd"}},
		{"splice three", "a\\\nb\\\nc\nd", []string{"abc", "d"}},
		{"splice then trigraph", "a??(b\\\nc", []string{"a[bc"}},
		{"trailing backslash", "abc\\", []string{"abc"}},
		{"trailing newline", "x\n", []string{"x", ""}},
		{"empty", "", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lines(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lines(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestReplaceTrigraphs(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"??(", "["},
		{"??)", "]"},
		{"??<", "{"},
		{"??>", "}"},
		{"??=define", "#define"},
		{"??/", "\\"},
		{"??'", "^"},
		{"??!", "|"},
		{"??-", "~"},
		{"a??(1??)", "a[1]"},
		{"what??", "what??"},
		{"??a", "??a"},
		{"???(", "?["},
		{"no trigraph", "no trigraph"},
	}
	for _, tt := range tests {
		if got := ReplaceTrigraphs(tt.input); got != tt.want {
			t.Errorf("ReplaceTrigraphs(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestText(t *testing.T) {
	if got := Text("x \\\n= 1;\ny;"); got != "x = 1;\ny;" {
		t.Errorf("Text() = %q", got)
	}
}
