// Package cpp implements the object-like macro preprocessor.
package cpp

import (
	"strings"
)

// TokenType represents the type of a preprocessing token.
type TokenType int

const (
	PP_EOF TokenType = iota
	PP_IDENTIFIER
	PP_NUMBER
	PP_CHAR_CONST
	PP_STRING
	PP_PUNCTUATOR
	PP_NEWLINE    // end of a logical line
	PP_WHITESPACE // preserved verbatim so output spacing survives
)

func (t TokenType) String() string {
	switch t {
	case PP_EOF:
		return "EOF"
	case PP_IDENTIFIER:
		return "IDENTIFIER"
	case PP_NUMBER:
		return "NUMBER"
	case PP_CHAR_CONST:
		return "CHAR_CONST"
	case PP_STRING:
		return "STRING"
	case PP_PUNCTUATOR:
		return "PUNCTUATOR"
	case PP_NEWLINE:
		return "NEWLINE"
	case PP_WHITESPACE:
		return "WHITESPACE"
	default:
		return "UNKNOWN"
	}
}

// SourceLoc represents a position in the source file.
type SourceLoc struct {
	File   string
	Line   int
	Column int
}

// Token represents a preprocessing token.
type Token struct {
	Type TokenType
	Text string
	Loc  SourceLoc
}

// punctuators is the fixed operator set; the lexer takes the longest match.
var punctuators = map[string]bool{
	"+": true, "++": true, "+=": true,
	"-": true, "--": true, "-=": true, "->": true,
	"*": true, "*=": true,
	"/": true, "/=": true,
	"%": true, "%=": true,
	"&": true, "&&": true, "&=": true,
	"|": true, "||": true, "|=": true,
	"^": true, "^=": true,
	"=": true, "==": true,
	"!": true, "!=": true,
	"~": true, "~=": true,
	"?": true, ":": true, ";": true,
	"[": true, "]": true,
	"{": true, "}": true,
	"(": true, ")": true,
	",": true, ".": true,
	">": true, ">>": true, ">=": true, ">>=": true,
	"<": true, "<<": true, "<=": true, "<<=": true,
}

const maxPunctuatorLen = 3

// Lexer tokenizes one logical line into preprocessing tokens.
type Lexer struct {
	input string
	pos   int
	loc   SourceLoc
}

// NewLexer creates a lexer over a single logical line. loc names the line;
// the column is tracked by the lexer.
func NewLexer(input string, loc SourceLoc) *Lexer {
	loc.Column = 1
	return &Lexer{input: input, loc: loc}
}

// NextToken returns the next preprocessing token, PP_EOF at the end of the
// line, or an error for an unterminated literal or a character outside the
// input alphabet.
func (l *Lexer) NextToken() (Token, error) {
	if l.pos >= len(l.input) {
		return Token{Type: PP_EOF, Loc: l.here()}, nil
	}

	c := l.peek()
	switch {
	case isWhitespace(c):
		return l.scanWhile(PP_WHITESPACE, isWhitespace), nil
	case isIdentStart(c):
		return l.scanWhile(PP_IDENTIFIER, isIdentContinue), nil
	case isDigit(c) || (c == '.' && isDigit(l.peekAt(1))):
		return l.scanNumber(), nil
	case c == '"':
		return l.scanQuoted(PP_STRING)
	case c == '\'':
		return l.scanQuoted(PP_CHAR_CONST)
	}

	if tok, ok := l.scanPunctuator(); ok {
		return tok, nil
	}
	return Token{}, errorf(l.here(), ErrUnexpectedChar, "unexpected character %q (code %d)", c, c)
}

// AllTokens returns every token on the line, excluding the final PP_EOF.
func (l *Lexer) AllTokens() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == PP_EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) here() SourceLoc {
	loc := l.loc
	loc.Column = l.pos + 1
	return loc
}

func (l *Lexer) peek() byte {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *Lexer) scanWhile(tt TokenType, accept func(byte) bool) Token {
	loc := l.here()
	start := l.pos
	for l.pos < len(l.input) && accept(l.peek()) {
		l.pos++
	}
	return Token{Type: tt, Text: l.input[start:l.pos], Loc: loc}
}

func (l *Lexer) scanNumber() Token {
	// pp-number: digits, letters, '.', '_', and a sign directly after an
	// exponent marker e/E/p/P.
	loc := l.here()
	start := l.pos
	for l.pos < len(l.input) {
		c := l.peek()
		if !isIdentContinue(c) && c != '.' {
			break
		}
		l.pos++
		if (c == 'e' || c == 'E' || c == 'p' || c == 'P') && (l.peek() == '+' || l.peek() == '-') {
			l.pos++
		}
	}
	return Token{Type: PP_NUMBER, Text: l.input[start:l.pos], Loc: loc}
}

func (l *Lexer) scanQuoted(tt TokenType) (Token, error) {
	loc := l.here()
	quote := l.peek()
	start := l.pos
	l.pos++
	for l.pos < len(l.input) {
		c := l.peek()
		if c == '\\' {
			l.pos += 2
			continue
		}
		l.pos++
		if c == quote {
			return Token{Type: tt, Text: l.input[start:l.pos], Loc: loc}, nil
		}
	}
	return Token{}, errorf(loc, ErrUnterminatedLiteral, "unexpected end of line inside %s literal", tt)
}

func (l *Lexer) scanPunctuator() (Token, bool) {
	loc := l.here()
	remaining := l.input[l.pos:]
	for n := min(maxPunctuatorLen, len(remaining)); n > 0; n-- {
		if punctuators[remaining[:n]] {
			l.pos += n
			return Token{Type: PP_PUNCTUATOR, Text: remaining[:n], Loc: loc}, true
		}
	}
	return Token{}, false
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentContinue(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

// TokensToString converts a slice of tokens back to source text.
func TokensToString(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// IsIdentifier checks if a string is a valid C identifier.
func IsIdentifier(s string) bool {
	if len(s) == 0 || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentContinue(s[i]) {
			return false
		}
	}
	return true
}
