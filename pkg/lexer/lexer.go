// Package lexer is the character-level cursor the parser reads from.
// It has no token stream of its own: the parser asks it to match literal
// strings, identifiers, numbers and quoted text at the current position.
package lexer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/raymyers/ramcc/pkg/cabs"
)

// Lexer walks preprocessed source one byte at a time, keeping the current
// character and the source position in step.
type Lexer struct {
	input string
	index int
	ch    byte // current character, 0 at EOF
	pos   cabs.Position
	err   error // first unterminated comment, sticky
}

// Mark is a saved cursor state.
type Mark struct {
	index int
	ch    byte
	pos   cabs.Position
}

// lineMarker matches `# 12 "file.c"` with optional trailing flags.
var lineMarker = regexp.MustCompile(`^#[ \t]*([0-9]+)[ \t]+("(?:[^"\\]|\\.)*")`)

// New creates a Lexer over input. file names the source for positions
// until a line marker overrides it.
func New(input, file string) *Lexer {
	l := &Lexer{input: input, index: -1, pos: cabs.Position{File: file, Line: 1}}
	l.next(false, false)
	return l
}

// Cur returns the current character, 0 at end of input.
func (l *Lexer) Cur() byte {
	return l.ch
}

// AtEOF reports whether the whole input has been consumed.
func (l *Lexer) AtEOF() bool {
	return l.index >= len(l.input)
}

// Err returns the first error met while skipping blanks, such as a
// comment still open at end of input. Once set it stays set.
func (l *Lexer) Err() error {
	return l.err
}

// Pos returns the current source position.
func (l *Lexer) Pos() cabs.Position {
	return l.pos
}

// Snapshot saves the cursor so a failed match can be rewound.
func (l *Lexer) Snapshot() Mark {
	return Mark{index: l.index, ch: l.ch, pos: l.pos}
}

// Restore rewinds the cursor to m. Index, current character and position
// move together.
func (l *Lexer) Restore(m Mark) {
	l.index, l.ch, l.pos = m.index, m.ch, m.pos
}

// advance steps to the next byte. A newline that ends the input does not
// start a new line.
func (l *Lexer) advance() {
	if l.ch == '\n' && l.index+1 < len(l.input) {
		l.pos.Line++
	}
	l.index++
	if l.index < len(l.input) {
		l.ch = l.input[l.index]
	} else {
		l.index = len(l.input)
		l.ch = 0
	}
}

func (l *Lexer) peek() byte {
	if l.index+1 < len(l.input) {
		return l.input[l.index+1]
	}
	return 0
}

// next moves past the current character. Unless keepSpaces is set it also
// skips whitespace and line markers; comments are skipped unless
// keepComments is set.
func (l *Lexer) next(keepSpaces, keepComments bool) {
	l.advance()
	l.skip(keepSpaces, keepComments)
}

func (l *Lexer) skip(keepSpaces, keepComments bool) {
	for {
		skipped := (!keepComments && l.skipComment()) || (!keepSpaces && l.skipSpaces())
		if !keepSpaces && l.atLineStart() && l.ch == '#' && l.skipLineMarker() {
			skipped = true
		}
		if !skipped {
			return
		}
	}
}

func (l *Lexer) skipSpaces() bool {
	if !isSpace(l.ch) {
		return false
	}
	for isSpace(l.ch) {
		l.advance()
	}
	return true
}

func (l *Lexer) skipComment() bool {
	if l.ch != '/' {
		return false
	}
	switch l.peek() {
	case '/':
		for l.ch != '\n' && !l.AtEOF() {
			l.advance()
		}
		return true
	case '*':
		start := l.pos
		l.advance()
		l.advance()
		for !l.AtEOF() && (l.ch != '*' || l.peek() != '/') {
			l.advance()
		}
		if l.AtEOF() {
			if l.err == nil {
				l.err = &Error{Pos: start, Expected: "*/", Found: "EOF"}
			}
			return true
		}
		l.advance()
		l.advance()
		return true
	}
	return false
}

func (l *Lexer) atLineStart() bool {
	return l.index == 0 || (l.index > 0 && l.index < len(l.input) && l.input[l.index-1] == '\n')
}

// skipLineMarker consumes a `# N "file"` line. The line after the marker
// is line N of file. Any other '#' line is left for the parser to reject.
func (l *Lexer) skipLineMarker() bool {
	rest := l.input[l.index:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	m := lineMarker.FindStringSubmatch(rest)
	if m == nil {
		return false
	}
	line, err := strconv.Atoi(m[1])
	if err != nil {
		return false
	}
	file, err := strconv.Unquote(m[2])
	if err != nil {
		file = m[2][1 : len(m[2])-1]
	}
	for l.ch != '\n' && !l.AtEOF() {
		l.advance()
	}
	// advancing over the newline bumps the line to N
	l.pos = cabs.Position{File: file, Line: line - 1}
	return true
}

// SkipBlanks skips whitespace, comments and line markers at the cursor.
func (l *Lexer) SkipBlanks() {
	l.skip(false, false)
}

// Lookahead consumes s if the input continues with it. Alphanumeric
// strings only match whole words, so "int" does not match "integer".
// Trailing blanks are skipped unless keepBlanks is set. On a mismatch the
// cursor is left untouched.
func (l *Lexer) Lookahead(s string, keepBlanks bool) bool {
	saved := l.Snapshot()
	for i := 0; i < len(s); i++ {
		if l.AtEOF() || l.ch != s[i] {
			l.Restore(saved)
			return false
		}
		l.next(true, true)
	}
	if IsWord(s) && !l.AtEOF() && isIdentChar(l.ch) {
		l.Restore(saved)
		return false
	}
	l.skipAfter(keepBlanks)
	return true
}

// skipAfter runs after a matched lexeme. Comments always go; whitespace
// goes unless keepBlanks is set.
func (l *Lexer) skipAfter(keepBlanks bool) {
	if keepBlanks {
		l.skip(true, false)
	} else {
		l.SkipBlanks()
	}
}

// Peek reports whether the input continues with s without consuming it.
func (l *Lexer) Peek(s string) bool {
	saved := l.Snapshot()
	ok := l.Lookahead(s, true)
	l.Restore(saved)
	return ok
}

// Consume requires s at the cursor.
func (l *Lexer) Consume(s string) error {
	if !l.Lookahead(s, false) {
		return l.Unexpected(s)
	}
	return nil
}

// IdentifierIncoming reports whether an identifier starts at the cursor.
func (l *Lexer) IdentifierIncoming() bool {
	return !l.AtEOF() && isIdentStart(l.ch)
}

// NumberIncoming reports whether a number starts at the cursor.
func (l *Lexer) NumberIncoming() bool {
	return !l.AtEOF() && isDigit(l.ch)
}

// StringIncoming reports whether a string literal starts at the cursor.
func (l *Lexer) StringIncoming() bool {
	return !l.AtEOF() && l.ch == '"'
}

// ReadIdentifier reads [A-Za-z_][A-Za-z0-9_]*.
func (l *Lexer) ReadIdentifier(keepBlanks bool) (string, error) {
	if !l.IdentifierIncoming() {
		return "", l.Unexpected("Identifier")
	}
	var sb strings.Builder
	for !l.AtEOF() && isIdentChar(l.ch) {
		sb.WriteByte(l.ch)
		l.next(true, true)
	}
	l.skipAfter(keepBlanks)
	return sb.String(), nil
}

// ReadNumber reads a decimal or hexadecimal number. Integer suffixes
// (u, l) are accepted and ignored.
func (l *Lexer) ReadNumber(keepBlanks bool) (float64, error) {
	if !l.NumberIncoming() {
		return 0, l.Unexpected("Number")
	}
	start := l.Pos()
	var sb strings.Builder
	accept := func(c byte) bool { return isDigit(c) || c == '.' }
	if l.ch == '0' && (l.peek() == 'x' || l.peek() == 'X') {
		sb.WriteString("0x")
		l.next(true, true)
		l.next(true, true)
		accept = isHexDigit
	}
	for !l.AtEOF() && accept(l.ch) {
		sb.WriteByte(l.ch)
		l.next(true, true)
	}
	for !l.AtEOF() && strings.IndexByte("uUlL", l.ch) >= 0 {
		l.next(true, true)
	}
	text := sb.String()
	var value float64
	var err error
	if strings.HasPrefix(text, "0x") {
		var n uint64
		n, err = strconv.ParseUint(text[2:], 16, 64)
		value = float64(n)
	} else {
		value, err = strconv.ParseFloat(text, 64)
	}
	if err != nil {
		return 0, &Error{Pos: start, Expected: "Number", Found: text}
	}
	l.skipAfter(keepBlanks)
	return value, nil
}

// ReadString reads a double-quoted string literal and decodes its escape
// sequences.
func (l *Lexer) ReadString(keepBlanks bool) (string, error) {
	if !l.StringIncoming() {
		return "", l.Unexpected(`"`)
	}
	l.next(true, true)
	var sb strings.Builder
	for !l.AtEOF() && l.ch != '"' {
		if l.ch == '\\' {
			l.next(true, true)
			c, err := l.ReadEscape()
			if err != nil {
				return "", err
			}
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte(l.ch)
		l.next(true, true)
	}
	if !l.Lookahead(`"`, keepBlanks) {
		return "", l.Unexpected(`"`)
	}
	return sb.String(), nil
}

// ReadChar reads the body of a character literal up to, not including,
// the closing quote. The opening quote must already be consumed.
func (l *Lexer) ReadChar() (byte, error) {
	if l.AtEOF() {
		return 0, l.Unexpected("character")
	}
	if l.ch == '\\' {
		l.next(true, true)
		return l.ReadEscape()
	}
	c := l.ch
	l.next(true, true)
	return c, nil
}

var simpleEscapes = map[byte]byte{
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'?':  '?',
}

// ReadEscape decodes the escape sequence whose backslash was just
// consumed: a simple escape, \x followed by hex digits, or up to three
// octal digits.
func (l *Lexer) ReadEscape() (byte, error) {
	switch {
	case l.ch == 'x':
		l.next(true, true)
		var v int
		for !l.AtEOF() && isHexDigit(l.ch) {
			v = v<<4 | hexValue(l.ch)
			l.next(true, true)
		}
		return byte(v), nil
	case isOctalDigit(l.ch):
		var v int
		for i := 0; i < 3 && !l.AtEOF() && isOctalDigit(l.ch); i++ {
			v = v<<3 | int(l.ch-'0')
			l.next(true, true)
		}
		return byte(v), nil
	}
	if c, ok := simpleEscapes[l.ch]; ok {
		l.next(true, true)
		return c, nil
	}
	return 0, l.Unexpected("escape sequence")
}

// Unexpected builds the error for a mismatch against expected at the
// cursor.
func (l *Lexer) Unexpected(expected string) error {
	found := "EOF"
	if !l.AtEOF() {
		found = string(l.ch)
	}
	return &Error{Pos: l.pos, Expected: expected, Found: found}
}

// IsWord reports whether s is an identifier-shaped keyword.
func IsWord(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isIdentStart(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isOctalDigit(ch byte) bool {
	return '0' <= ch && ch <= '7'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func hexValue(ch byte) int {
	switch {
	case isDigit(ch):
		return int(ch - '0')
	case 'a' <= ch && ch <= 'f':
		return int(ch-'a') + 10
	default:
		return int(ch-'A') + 10
	}
}
