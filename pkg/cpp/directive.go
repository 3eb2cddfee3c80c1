// directive.go recognizes preprocessing directive lines.
package cpp

import (
	"regexp"
	"strings"
)

// DirectiveType identifies a recognized directive keyword.
type DirectiveType int

const (
	DIR_NONE DirectiveType = iota // not a recognized directive
	DIR_DEFINE
	DIR_UNDEF
	DIR_INCLUDE
	DIR_IFDEF
	DIR_IFNDEF
	DIR_IF
	DIR_ENDIF
)

var directiveTypes = map[string]DirectiveType{
	"define":  DIR_DEFINE,
	"undef":   DIR_UNDEF,
	"include": DIR_INCLUDE,
	"ifdef":   DIR_IFDEF,
	"ifndef":  DIR_IFNDEF,
	"if":      DIR_IF,
	"endif":   DIR_ENDIF,
}

var directivePattern = regexp.MustCompile(`^\s*#\s*(define|undef|include|ifdef|ifndef|if|endif)\b\s*(.*)$`)

// Directive is a recognized directive line.
type Directive struct {
	Type    DirectiveType
	Keyword string
	Args    string
	Loc     SourceLoc
}

// ParseDirective classifies line. It returns nil when the line is not one
// of the recognized directives.
func ParseDirective(line string, loc SourceLoc) *Directive {
	m := directivePattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	return &Directive{
		Type:    directiveTypes[m[1]],
		Keyword: m[1],
		Args:    m[2],
		Loc:     loc,
	}
}

// isHashLine reports whether line begins (after blanks) with '#'. Such
// lines that are not recognized directives, line markers included, are
// passed through untouched.
func isHashLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "#")
}
