package grammar

import (
	"io"
	"strings"
)

// Parse reads a whole program and returns its parse tree rooted at a
// RuleProgram pair. The last child of the program is always RuleEOI.
func Parse(rd io.Reader) (*Pair, error) {
	lx := NewLexer(rd)
	toks, err := lx.All()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, src: lx.Source()}
	return p.program()
}

// ParseString is Parse over an in-memory source.
func ParseString(src string) (*Pair, error) {
	return Parse(strings.NewReader(src))
}

type parser struct {
	toks []Token
	pos  int
	src  string
	last Token
}

func (p *parser) cur() Token {
	return p.toks[p.pos]
}

func (p *parser) peekAt(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) advance() Token {
	tok := p.toks[p.pos]
	if tok.Kind != TEOF {
		p.pos++
	}
	p.last = tok
	return tok
}

// skipComments drops comments in positions where they carry no statement.
func (p *parser) skipComments() {
	for p.cur().Kind == TComment {
		p.advance()
	}
}

// nextSignificant returns the first token at or after the cursor that is
// not a comment, without consuming anything.
func (p *parser) nextSignificant() Token {
	for i := p.pos; i < len(p.toks); i++ {
		if p.toks[i].Kind != TComment {
			return p.toks[i]
		}
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) isPunct(text string) bool {
	tok := p.cur()
	return tok.Kind == TPunct && tok.Text == text
}

func (p *parser) expectPunct(text string) error {
	p.skipComments()
	if !p.isPunct(text) {
		return p.errorf("'" + text + "'")
	}
	p.advance()
	return nil
}

func (p *parser) errorf(expected ...string) error {
	tok := p.cur()
	found := "'" + tok.Text + "'"
	if tok.Kind == TEOF {
		found = "end of input"
	}
	return &Error{Pos: tok.Pos, Expected: expected, Found: found}
}

// node builds a pair spanning from start to the last consumed token.
func (p *parser) node(rule Rule, start Token, children ...*Pair) *Pair {
	end := p.last.End
	if end < start.Off {
		end = start.Off
	}
	return &Pair{Rule: rule, Text: p.src[start.Off:end], Pos: start.Pos, Children: children}
}

func (p *parser) leaf(rule Rule, tok Token) *Pair {
	return &Pair{Rule: rule, Text: p.src[tok.Off:tok.End], Pos: tok.Pos}
}

func (p *parser) program() (*Pair, error) {
	start := p.cur()
	children, err := p.statements(func() bool { return p.cur().Kind == TEOF })
	if err != nil {
		return nil, err
	}
	eoi := p.cur()
	children = append(children, &Pair{Rule: RuleEOI, Pos: eoi.Pos})
	prog := p.node(RuleProgram, start, children...)
	prog.Text = p.src
	return prog, nil
}

// statements collects statements and comments until done reports true.
func (p *parser) statements(done func() bool) ([]*Pair, error) {
	var out []*Pair
	for {
		if p.cur().Kind == TComment {
			out = append(out, p.leaf(RuleComment, p.advance()))
			continue
		}
		if done() || p.cur().Kind == TEOF {
			return out, nil
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
}

func (p *parser) statement() (*Pair, error) {
	start := p.cur()
	var (
		inner *Pair
		err   error
	)
	switch tok := p.cur(); {
	case tok.Kind == TLet:
		inner, err = p.assignStatement()
	case tok.Kind == TReturn:
		inner, err = p.returnStatement()
	case tok.Kind == TIf:
		inner, err = p.ifStatement()
	case tok.Kind == TPunct && tok.Text == "{":
		inner, err = p.block()
	case tok.Kind == TIdent && p.peekAt(1).Kind == TPunct && p.peekAt(1).Text == "=":
		inner, err = p.setValueStatement()
	default:
		inner, err = p.expr()
	}
	if err != nil {
		return nil, err
	}
	if p.isPunct(";") {
		p.advance()
	}
	return p.node(RuleStatement, start, inner), nil
}

func (p *parser) assignStatement() (*Pair, error) {
	start := p.advance()
	ident, err := p.ident()
	if err != nil {
		return nil, err
	}
	children := []*Pair{ident}
	p.skipComments()
	if p.isPunct(":") {
		colon := p.advance()
		typ, err := p.ident()
		if err != nil {
			return nil, err
		}
		children = append(children, p.node(RuleTypeAnnotation, colon, typ))
	}
	if err := p.expectPunct("="); err != nil {
		return nil, err
	}
	value, err := p.expr()
	if err != nil {
		return nil, err
	}
	children = append(children, value)
	return p.node(RuleAssignStatement, start, children...), nil
}

func (p *parser) setValueStatement() (*Pair, error) {
	start := p.cur()
	ident, err := p.ident()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("="); err != nil {
		return nil, err
	}
	value, err := p.expr()
	if err != nil {
		return nil, err
	}
	return p.node(RuleSetValueStatement, start, ident, value), nil
}

func (p *parser) returnStatement() (*Pair, error) {
	start := p.advance()
	value, err := p.expr()
	if err != nil {
		return nil, err
	}
	return p.node(RuleReturnBlockStatement, start, value), nil
}

func (p *parser) ifStatement() (*Pair, error) {
	start := p.advance()
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	children := []*Pair{cond, body}
	for {
		if k := p.nextSignificant().Kind; k == TElif || k == TElse {
			p.skipComments()
		}
		switch p.cur().Kind {
		case TElif:
			elifStart := p.advance()
			cond, err := p.expr()
			if err != nil {
				return nil, err
			}
			body, err := p.block()
			if err != nil {
				return nil, err
			}
			children = append(children, p.node(RuleElifStatement, elifStart, cond, body))
			continue
		case TElse:
			elseStart := p.advance()
			body, err := p.block()
			if err != nil {
				return nil, err
			}
			children = append(children, p.node(RuleElseStatement, elseStart, body))
		}
		return p.node(RuleIfStatement, start, children...), nil
	}
}

func (p *parser) block() (*Pair, error) {
	p.skipComments()
	start := p.cur()
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	children, err := p.statements(func() bool { return p.isPunct("}") })
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return p.node(RuleBlock, start, children...), nil
}

func (p *parser) ident() (*Pair, error) {
	p.skipComments()
	if p.cur().Kind != TIdent {
		return nil, p.errorf("ident")
	}
	return p.leaf(RuleIdent, p.advance()), nil
}

// expr reads a flat operand (operator operand)* sequence. Grouping by
// precedence is left to the consumer of the tree.
func (p *parser) expr() (*Pair, error) {
	p.skipComments()
	start := p.cur()
	first, err := p.operand()
	if err != nil {
		return nil, err
	}
	children := []*Pair{first}
	for {
		if p.nextSignificant().Kind != TOp {
			break
		}
		p.skipComments()
		tok := p.cur()
		p.advance()
		children = append(children, p.leaf(binaryOps[tok.Text], tok))
		rhs, err := p.operand()
		if err != nil {
			return nil, err
		}
		children = append(children, rhs)
	}
	return p.node(RuleExpr, start, children...), nil
}

func (p *parser) operand() (*Pair, error) {
	p.skipComments()
	tok := p.cur()
	switch tok.Kind {
	case TInt, TFloat, TString, TTrue, TFalse:
		p.advance()
		return p.node(RuleConstant, tok, p.leaf(literalRule(tok.Kind), tok)), nil
	case TIdent:
		return p.leaf(RuleIdent, p.advance()), nil
	case TOp:
		if tok.Text == "-" {
			if num := p.peekAt(1); (num.Kind == TInt || num.Kind == TFloat) && !num.Space {
				p.advance()
				p.advance()
				lit := &Pair{Rule: literalRule(num.Kind), Text: p.src[tok.Off:num.End], Pos: tok.Pos}
				return p.node(RuleConstant, tok, lit), nil
			}
		}
	case TPunct:
		if tok.Text == "(" {
			p.advance()
			inner, err := p.expr()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			return inner, nil
		}
	}
	return nil, p.errorf("constant", "ident", "'('")
}

func literalRule(k TokKind) Rule {
	switch k {
	case TInt:
		return RuleInt
	case TFloat:
		return RuleFloat
	case TString:
		return RuleString
	default:
		return RuleBoolean
	}
}
