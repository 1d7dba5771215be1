package parse

import (
	"math/big"
	"strconv"

	"hare/internal/grammar"
)

// operands walks the flat operand/operator children of an expr pair.
type operands struct {
	items []*grammar.Pair
	pos   int
}

func (c *operands) next() *grammar.Pair {
	if c.pos >= len(c.items) {
		return nil
	}
	p := c.items[c.pos]
	c.pos++
	return p
}

func (c *operands) peek() *grammar.Pair {
	if c.pos >= len(c.items) {
		return nil
	}
	return c.items[c.pos]
}

// expr resolves an expr pair into a precedence-correct tree. A lone operand
// is returned as is.
func (b *builder) expr(p *grammar.Pair) (Node, error) {
	if len(p.Children) == 0 {
		return nil, syntaxErrorf("invalid expression: %q", p.Text)
	}
	c := &operands{items: p.Children}
	n, err := b.climb(c, TierCompare)
	if err != nil {
		return nil, err
	}
	if rest := c.peek(); rest != nil {
		return nil, syntaxErrorf("expected operator, found %q in %q", rest.Text, p.Text)
	}
	return n, nil
}

// climb folds operators binding at least as tight as minTier. The right
// operand is resolved one tier tighter, so equal tiers fold to the left.
func (b *builder) climb(c *operands, minTier int) (Node, error) {
	left, err := b.primary(c.next())
	if err != nil {
		return nil, err
	}
	for {
		p := c.peek()
		if p == nil || !p.Rule.IsBinaryOp() {
			return left, nil
		}
		info, ok := b.ops[p.Rule]
		if !ok {
			return nil, syntaxErrorf("unknown binary operator: %s", p.Rule)
		}
		if info.Tier < minTier {
			return left, nil
		}
		c.pos++
		right, err := b.climb(c, info.Tier+1)
		if err != nil {
			return nil, err
		}
		left = E(left, info.Op, right)
	}
}

func (b *builder) primary(p *grammar.Pair) (Node, error) {
	if p == nil {
		return nil, syntaxErrorf("missing operand")
	}
	switch p.Rule {
	case grammar.RuleExpr:
		return b.expr(p)
	case grammar.RuleConstant, grammar.RuleInt, grammar.RuleFloat, grammar.RuleString, grammar.RuleBoolean, grammar.RuleIdent:
		return b.build(p)
	default:
		return nil, syntaxErrorf("invalid operand: %q", p.Text)
	}
}

// literal renders a literal pair to its canonical text.
func literal(p *grammar.Pair) (Node, error) {
	switch p.Rule {
	case grammar.RuleInt:
		n, ok := new(big.Int).SetString(p.Text, 10)
		if !ok {
			return nil, syntaxErrorf("invalid integer: %q", p.Text)
		}
		return C(n.String()), nil
	case grammar.RuleFloat:
		f, err := strconv.ParseFloat(p.Text, 64)
		if err != nil {
			return nil, syntaxErrorf("invalid float: %q", p.Text)
		}
		return F(strconv.FormatFloat(f, 'f', -1, 64)), nil
	case grammar.RuleBoolean:
		v, err := strconv.ParseBool(p.Text)
		if err != nil {
			return nil, syntaxErrorf("invalid boolean: %q", p.Text)
		}
		return C(strconv.FormatBool(v)), nil
	default:
		return C(p.Text), nil
	}
}
