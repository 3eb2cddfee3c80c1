// Package normalize performs the first translation phases on raw source
// text: line splicing and trigraph replacement.
package normalize

import "strings"

// trigraphs maps the character following "??" to its replacement.
var trigraphs = map[byte]byte{
	'(':  '[',
	')':  ']',
	'<':  '{',
	'>':  '}',
	'=':  '#',
	'/':  '\\',
	'\'': '^',
	'!':  '|',
	'-':  '~',
}

// Lines splits src into logical lines. CRLF and lone CR are treated as
// newlines, a physical line ending in a backslash is joined with its
// successor, and trigraphs are replaced on the spliced result. A trailing
// backslash on the last physical line still yields that unfinished line.
func Lines(src string) []string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	raw := strings.Split(src, "\n")

	var lines []string
	var unfinished strings.Builder
	pending := false
	for _, line := range raw {
		if strings.HasSuffix(line, "\\") {
			unfinished.WriteString(line[:len(line)-1])
			pending = true
			continue
		}
		unfinished.WriteString(line)
		lines = append(lines, unfinished.String())
		unfinished.Reset()
		pending = false
	}
	if pending {
		lines = append(lines, unfinished.String())
	}

	for i, line := range lines {
		lines[i] = ReplaceTrigraphs(line)
	}
	return lines
}

// Text is Lines joined back with newlines.
func Text(src string) string {
	return strings.Join(Lines(src), "\n")
}

// ReplaceTrigraphs substitutes every ??X trigraph in line. Unknown
// sequences such as "??a" are left untouched.
func ReplaceTrigraphs(line string) string {
	if !strings.Contains(line, "??") {
		return line
	}
	var sb strings.Builder
	sb.Grow(len(line))
	for i := 0; i < len(line); i++ {
		if line[i] == '?' && i+2 < len(line) && line[i+1] == '?' {
			if r, ok := trigraphs[line[i+2]]; ok {
				sb.WriteByte(r)
				i += 2
				continue
			}
		}
		sb.WriteByte(line[i])
	}
	return sb.String()
}
