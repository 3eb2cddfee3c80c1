package parser

import (
	"slices"
	"strings"

	"github.com/raymyers/ramcc/pkg/cabs"
)

type declMode int

const (
	declNamed    declMode = iota // a name is required
	declAbstract                 // no name: casts and sizeof
	declOptional                 // parameters
)

// definitionIncoming reports whether a declarator starts at the cursor,
// without consuming anything.
func (p *Parser) definitionIncoming() bool {
	for _, m := range p.types.modifiers {
		if p.l.Peek(m) {
			return true
		}
	}
	for _, n := range p.types.names {
		if p.l.Peek(n) {
			return true
		}
	}
	return false
}

// readDefinition reads modifiers, one base type, `*` suffixes, an
// optional name and `[...]` suffixes. Each suffix wraps the descriptor
// read so far in a PointerType.
func (p *Parser) readDefinition(mode declMode) (cabs.TypeDesc, string, error) {
	pos := p.l.Pos()
	spec := cabs.TypeSpec{Loc: pos}

	for read := true; read; {
		read = false
		for _, m := range p.types.modifiers {
			if p.l.Lookahead(m, false) {
				spec.Modifiers = append(spec.Modifiers, m)
				read = true
			}
		}
	}

	if !p.readBaseType(&spec) {
		return nil, "", p.l.Unexpected(strings.Join(p.types.names, ", "))
	}

	var typ cabs.TypeDesc = spec
	for p.l.Lookahead("*", false) {
		typ = cabs.PointerType{Target: typ, Loc: p.l.Pos()}
	}

	var name string
	if mode == declNamed || (mode == declOptional && p.l.IdentifierIncoming()) {
		var err error
		if name, err = p.l.ReadIdentifier(false); err != nil {
			return nil, "", err
		}
	}

	for p.l.Lookahead("[", false) {
		arr := cabs.PointerType{Target: typ, Array: true, Loc: p.l.Pos()}
		if !p.l.Lookahead("]", false) {
			length, err := p.requireExpression()
			if err != nil {
				return nil, "", err
			}
			arr.Length = length
			if err := p.l.Consume("]"); err != nil {
				return nil, "", err
			}
		}
		typ = arr
	}
	return typ, name, nil
}

// readBaseType reads the base type name into spec. When none follows the
// modifiers, a modifier that doubles as a type name (`long`, `short`)
// becomes the base, and a bare signed or unsigned implies int.
func (p *Parser) readBaseType(spec *cabs.TypeSpec) bool {
	for _, n := range p.types.names {
		if p.l.Lookahead(n, false) {
			spec.Name = n
			return true
		}
	}
	for i := len(spec.Modifiers) - 1; i >= 0; i-- {
		if p.types.IsType(spec.Modifiers[i]) {
			spec.Name = spec.Modifiers[i]
			spec.Modifiers = slices.Delete(spec.Modifiers, i, i+1)
			return true
		}
	}
	if slices.Contains(spec.Modifiers, "signed") || slices.Contains(spec.Modifiers, "unsigned") {
		spec.Name = "int"
		return true
	}
	return false
}
