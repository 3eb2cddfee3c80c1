package parser

import (
	"cmp"
	"slices"

	"github.com/raymyers/ramcc/pkg/cabs"
)

// precedence of each binary operator. Higher binds tighter.
var precedence = map[cabs.BinaryOp]int{
	cabs.OpAssign: 1, cabs.OpAddAssign: 1, cabs.OpSubAssign: 1,
	cabs.OpMulAssign: 1, cabs.OpDivAssign: 1, cabs.OpModAssign: 1,
	cabs.OpShrAssign: 1, cabs.OpShlAssign: 1, cabs.OpAndAssign: 1,
	cabs.OpXorAssign: 1, cabs.OpOrAssign: 1,

	cabs.OpQuestion: 2, cabs.OpColon: 2,
	cabs.OpOr:       3,
	cabs.OpAnd:      4,
	cabs.OpBitOr:    5,
	cabs.OpBitXor:   6,
	cabs.OpBitAnd:   7,

	cabs.OpLt: 8, cabs.OpGt: 8, cabs.OpLe: 8, cabs.OpGe: 8, cabs.OpEq: 8, cabs.OpNe: 8,

	cabs.OpShr: 9, cabs.OpShl: 9,
	cabs.OpAdd: 10, cabs.OpSub: 10,
	cabs.OpMul: 11, cabs.OpDiv: 11, cabs.OpMod: 11,
	cabs.OpMember: 13, cabs.OpArrow: 13,
}

const assignPrec = 1

// binaryOps is every binary operator, longest spelling first so "<<="
// is tried before "<<" and "<".
var binaryOps = func() []cabs.BinaryOp {
	ops := cabs.BinaryOps()
	slices.SortStableFunc(ops, func(a, b cabs.BinaryOp) int {
		return cmp.Compare(len(b.String()), len(a.String()))
	})
	return ops
}()

// ParseExpression parses a single expression that must span the rest of
// the input.
func (p *Parser) ParseExpression() (cabs.Expr, error) {
	p.l.SkipBlanks()
	expr, err := p.requireExpression()
	if lerr := p.l.Err(); lerr != nil {
		return nil, lerr
	}
	if err != nil {
		return nil, err
	}
	if !p.l.AtEOF() {
		return nil, p.l.Unexpected("EOF")
	}
	return expr, nil
}

// parseExpression parses an expression, which may be empty, and then
// consumes end unless end is "".
func (p *Parser) parseExpression(end string) (cabs.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	expr, err := p.parseBinary(left, 0)
	if err != nil {
		return nil, err
	}
	if end != "" {
		if err := p.l.Consume(end); err != nil {
			return nil, err
		}
	}
	return expr, nil
}

// requireExpression is parseExpression("") failing on an empty
// expression.
func (p *Parser) requireExpression() (cabs.Expr, error) {
	expr, err := p.parseExpression("")
	if err != nil {
		return nil, err
	}
	if expr == nil {
		return nil, p.l.Unexpected("expression")
	}
	return expr, nil
}

func (p *Parser) peekBinaryOp() (cabs.BinaryOp, bool) {
	for _, op := range binaryOps {
		if p.l.Peek(op.String()) {
			return op, true
		}
	}
	return 0, false
}

// parseBinary is precedence climbing. An operator of higher precedence
// than the current one pulls the following terms into its right operand;
// assignment operators also do so at equal precedence, which makes them
// right-associative.
func (p *Parser) parseBinary(left cabs.Expr, minPrec int) (cabs.Expr, error) {
	op, ok := p.peekBinaryOp()
	for ok && precedence[op] >= minPrec {
		if left == nil {
			return nil, p.l.Unexpected("expression")
		}
		pos := p.l.Pos()
		p.l.Lookahead(op.String(), false)

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if right == nil {
			return nil, p.l.Unexpected("expression")
		}

		next, more := p.peekBinaryOp()
		for more && (precedence[next] > precedence[op] ||
			precedence[next] == assignPrec && precedence[op] == assignPrec) {
			if right, err = p.parseBinary(right, precedence[next]); err != nil {
				return nil, err
			}
			next, more = p.peekBinaryOp()
		}

		left = cabs.Binary{Op: op, Left: left, Right: right, Loc: pos}
		op, ok = p.peekBinaryOp()
	}
	return left, nil
}

// parseUnary parses prefix operators, a primary expression and its
// postfix chain. It returns a nil expression when nothing matches.
func (p *Parser) parseUnary() (cabs.Expr, error) {
	pos := p.l.Pos()

	for _, op := range cabs.UnaryOps() {
		if !p.l.Lookahead(op.String(), false) {
			continue
		}
		if op == cabs.OpSizeof {
			if typ, ok, err := p.trySizeofType(); err != nil {
				return nil, err
			} else if ok {
				return cabs.SizeofType{Type: typ, Loc: pos}, nil
			}
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if operand == nil {
			return nil, p.l.Unexpected("expression")
		}
		return cabs.Unary{Op: op, Expr: operand, Loc: pos}, nil
	}

	expr, err := p.parsePrimary(pos)
	if err != nil || expr == nil {
		return expr, err
	}
	return p.parsePostfix(expr)
}

// trySizeofType reads `( type )` after sizeof. When the parenthesis does
// not hold a type the cursor is rewound.
func (p *Parser) trySizeofType() (cabs.TypeDesc, bool, error) {
	mark := p.l.Snapshot()
	if !p.l.Lookahead("(", false) {
		return nil, false, nil
	}
	if !p.definitionIncoming() {
		p.l.Restore(mark)
		return nil, false, nil
	}
	typ, _, err := p.readDefinition(declAbstract)
	if err != nil {
		return nil, false, err
	}
	return typ, true, p.l.Consume(")")
}

func (p *Parser) parsePrimary(pos cabs.Position) (cabs.Expr, error) {
	switch {
	case p.l.Lookahead("(", false):
		if p.definitionIncoming() {
			typ, _, err := p.readDefinition(declAbstract)
			if err != nil {
				return nil, err
			}
			if err := p.l.Consume(")"); err != nil {
				return nil, err
			}
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			if operand == nil {
				return nil, p.l.Unexpected("expression")
			}
			return cabs.Cast{Type: typ, Expr: operand, Loc: pos}, nil
		}
		expr, err := p.requireExpression()
		if err != nil {
			return nil, err
		}
		return expr, p.l.Consume(")")

	case p.l.Lookahead("{", false):
		lit := cabs.Literal{Kind: cabs.LitList, Loc: pos}
		for !p.l.AtEOF() {
			elem, err := p.parseExpression("")
			if err != nil {
				return nil, err
			}
			if elem != nil {
				lit.Elems = append(lit.Elems, elem)
			}
			if !p.l.Lookahead(",", false) {
				break
			}
		}
		return lit, p.l.Consume("}")

	case p.l.Lookahead("'", true):
		c, err := p.l.ReadChar()
		if err != nil {
			return nil, err
		}
		return cabs.Literal{Kind: cabs.LitChar, Number: float64(c), Loc: pos}, p.l.Consume("'")

	case p.l.StringIncoming():
		s, err := p.l.ReadString(false)
		if err != nil {
			return nil, err
		}
		return cabs.Literal{Kind: cabs.LitString, Text: s, Loc: pos}, nil

	case p.l.NumberIncoming():
		n, err := p.l.ReadNumber(false)
		if err != nil {
			return nil, err
		}
		return cabs.Literal{Kind: cabs.LitNumber, Number: n, Loc: pos}, nil

	case p.l.IdentifierIncoming():
		name, err := p.l.ReadIdentifier(false)
		if err != nil {
			return nil, err
		}
		return cabs.Variable{Name: name, Loc: pos}, nil
	}
	return nil, nil
}

// parsePostfix applies any chain of subscripts, calls and suffix
// increments to expr.
func (p *Parser) parsePostfix(expr cabs.Expr) (cabs.Expr, error) {
	for {
		pos := p.l.Pos()
		switch {
		case p.l.Lookahead("[", false):
			index, err := p.requireExpression()
			if err != nil {
				return nil, err
			}
			if err := p.l.Consume("]"); err != nil {
				return nil, err
			}
			expr = cabs.Index{Array: expr, Index: index, Loc: pos}

		case p.l.Lookahead("(", false):
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = cabs.Call{Func: expr, Args: args, Loc: pos}

		case p.l.Lookahead("++", false):
			expr = cabs.Postfix{Op: cabs.OpPostInc, Expr: expr, Loc: pos}

		case p.l.Lookahead("--", false):
			expr = cabs.Postfix{Op: cabs.OpPostDec, Expr: expr, Loc: pos}

		default:
			return expr, nil
		}
	}
}

// parseArgs reads call arguments after the opening parenthesis.
func (p *Parser) parseArgs() ([]cabs.Expr, error) {
	var args []cabs.Expr
	if p.l.Lookahead(")", false) {
		return args, nil
	}
	for {
		arg, err := p.requireExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.l.Lookahead(",", false) {
			break
		}
	}
	return args, p.l.Consume(")")
}
