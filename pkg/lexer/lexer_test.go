package lexer

import (
	"errors"
	"testing"
)

func TestLookahead(t *testing.T) {
	tests := []struct {
		input string
		match string
		want  bool
		rest  byte // current character afterwards
	}{
		{"int x", "int", true, 'x'},
		{"integer", "int", false, 'i'},
		{"int2", "int", false, 'i'},
		{"int_", "int", false, 'i'},
		{"int*p", "int", true, '*'},
		{"+= 1", "+=", true, '1'},
		{"+ = 1", "+=", false, '+'},
		{"struct", "struct", true, 0},
		{"", "x", false, 0},
		{"in", "int", false, 'i'},
	}
	for _, tt := range tests {
		l := New(tt.input, "t.c")
		if got := l.Lookahead(tt.match, false); got != tt.want {
			t.Errorf("Lookahead(%q) on %q = %v, want %v", tt.match, tt.input, got, tt.want)
		}
		if l.Cur() != tt.rest {
			t.Errorf("after Lookahead(%q) on %q: cur = %q, want %q", tt.match, tt.input, l.Cur(), tt.rest)
		}
	}
}

func TestLookaheadKeepBlanks(t *testing.T) {
	l := New("a  b", "t.c")
	if !l.Lookahead("a", true) {
		t.Fatal("expected match")
	}
	if l.Cur() != ' ' {
		t.Errorf("cur = %q, want space", l.Cur())
	}
}

func TestSnapshotRestore(t *testing.T) {
	l := New("a\n\nb\nc", "t.c")
	m := l.Snapshot()
	if err := l.Consume("a"); err != nil {
		t.Fatal(err)
	}
	if err := l.Consume("b"); err != nil {
		t.Fatal(err)
	}
	if l.Pos().Line != 4 || l.Cur() != 'c' {
		t.Fatalf("after consume: line %d cur %q", l.Pos().Line, l.Cur())
	}
	l.Restore(m)
	if l.Pos().Line != 1 || l.Cur() != 'a' {
		t.Errorf("after restore: line %d cur %q, want line 1 cur 'a'", l.Pos().Line, l.Cur())
	}
}

func TestSkipsCommentsAndCountsLines(t *testing.T) {
	input := "// first\n/* multi\nline */ x /* c */\n  y"
	l := New(input, "t.c")
	id, err := l.ReadIdentifier(false)
	if err != nil {
		t.Fatal(err)
	}
	if id != "x" || l.Pos().Line != 4 {
		t.Errorf("got %q on line %d", id, l.Pos().Line)
	}
	if id, _ = l.ReadIdentifier(false); id != "y" {
		t.Errorf("second identifier = %q, want y", id)
	}
	if !l.AtEOF() {
		t.Error("expected EOF")
	}
}

func TestLineMarker(t *testing.T) {
	input := "a\n# 10 \"other.c\"\nb\n#pragma\n"
	l := New(input, "main.c")
	if l.Pos().File != "main.c" || l.Pos().Line != 1 {
		t.Fatalf("start pos = %v", l.Pos())
	}
	if err := l.Consume("a"); err != nil {
		t.Fatal(err)
	}
	if got := l.Pos().String(); got != "other.c:10" {
		t.Errorf("pos after marker = %s, want other.c:10", got)
	}
	if err := l.Consume("b"); err != nil {
		t.Fatal(err)
	}
	if l.Cur() != '#' {
		t.Errorf("unrecognized # line should be left in place, cur = %q", l.Cur())
	}
}

func TestLineMarkerAtStart(t *testing.T) {
	l := New("# 7 \"gen.c\" 1\nz", "main.c")
	if l.Cur() != 'z' || l.Pos().String() != "gen.c:7" {
		t.Errorf("cur %q pos %s", l.Cur(), l.Pos())
	}
}

func TestReadNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"42", 42},
		{"3.5", 3.5},
		{"0x1F", 31},
		{"0XfF", 255},
		{"10u", 10},
		{"7UL;", 7},
		{"0", 0},
	}
	for _, tt := range tests {
		got, err := New(tt.input, "t.c").ReadNumber(false)
		if err != nil {
			t.Errorf("%q: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q = %v, want %v", tt.input, got, tt.want)
		}
	}

	_, err := New("1.2.3", "t.c").ReadNumber(false)
	var lexErr *Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if lexErr.Found != "1.2.3" {
		t.Errorf("Found = %q", lexErr.Found)
	}
}

func TestReadString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"hello"`, "hello"},
		{`"a b  c"`, "a b  c"},
		{`"tab\there"`, "tab\there"},
		{`"q\"q"`, `q"q`},
		{`"\x41\102\0"`, "AB\x00"},
		{`"// not a comment"`, "// not a comment"},
		{`"\?\\\a"`, "?\\\a"},
	}
	for _, tt := range tests {
		got, err := New(tt.input, "t.c").ReadString(false)
		if err != nil {
			t.Errorf("%s: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestReadStringErrors(t *testing.T) {
	for _, input := range []string{`"open`, `"bad \q escape"`} {
		if _, err := New(input, "t.c").ReadString(false); err == nil {
			t.Errorf("%s: expected error", input)
		}
	}
}

func TestReadChar(t *testing.T) {
	tests := []struct {
		input string
		want  byte
	}{
		{"a'", 'a'},
		{" '", ' '},
		{`\n'`, '\n'},
		{`\''`, '\''},
		{`\101'`, 'A'},
		{`\x7f'`, 0x7f},
	}
	for _, tt := range tests {
		l := New("'"+tt.input, "t.c")
		if !l.Lookahead("'", true) {
			t.Fatal("no opening quote")
		}
		got, err := l.ReadChar()
		if err != nil {
			t.Errorf("%s: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.input, got, tt.want)
		}
		if err := l.Consume("'"); err != nil {
			t.Errorf("%s: closing quote: %v", tt.input, err)
		}
	}
}

func TestUnexpected(t *testing.T) {
	l := New("\n\n  ;", "prog.c")
	err := l.Consume("{")
	if err == nil {
		t.Fatal("expected error")
	}
	want := `prog.c:3: Expecting "{" got ";"`
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}

	l = New("", "prog.c")
	if _, err := l.ReadIdentifier(false); err == nil || err.Error() != `prog.c:1: Expecting "Identifier" got "EOF"` {
		t.Errorf("EOF error = %v", err)
	}
}

func TestIsWord(t *testing.T) {
	tests := map[string]bool{"int": true, "_t1": true, "+=": false, "": false, "1a": false}
	for s, want := range tests {
		if got := IsWord(s); got != want {
			t.Errorf("IsWord(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestUnterminatedComment(t *testing.T) {
	l := New("a\n/* open\n", "t.c")
	if err := l.Consume("a"); err != nil {
		t.Fatal(err)
	}
	if !l.AtEOF() {
		t.Fatalf("expected EOF, cur = %q", l.Cur())
	}
	err := l.Err()
	if err == nil {
		t.Fatal("expected an error for the open comment")
	}
	if got, want := err.Error(), `t.c:2: Expecting "*/" got "EOF"`; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}

	closed := New("/* done */ b", "t.c")
	if closed.Err() != nil || closed.Cur() != 'b' {
		t.Errorf("closed comment: err %v, cur %q", closed.Err(), closed.Cur())
	}
}

func TestFinalNewlineKeepsLine(t *testing.T) {
	l := New("a\nb\n", "t.c")
	if err := l.Consume("a"); err != nil {
		t.Fatal(err)
	}
	if err := l.Consume("b"); err != nil {
		t.Fatal(err)
	}
	if !l.AtEOF() || l.Pos().Line != 2 {
		t.Errorf("at EOF %v on line %d, want line 2", l.AtEOF(), l.Pos().Line)
	}
}
