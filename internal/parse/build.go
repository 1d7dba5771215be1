package parse

import "hare/internal/grammar"

// builder converts parse tree pairs into AST nodes using a fixed operator
// table.
type builder struct {
	ops OpTable
}

func (b *builder) build(p *grammar.Pair) (Node, error) {
	switch p.Rule {
	case grammar.RuleExpr:
		return b.expr(p)
	case grammar.RuleInt, grammar.RuleFloat, grammar.RuleString, grammar.RuleBoolean:
		return literal(p)
	case grammar.RuleIdent:
		return I(p.Text), nil
	case grammar.RuleAssignStatement:
		return b.assign(p)
	case grammar.RuleSetValueStatement:
		return b.setValue(p)
	case grammar.RuleReturnBlockStatement:
		value, err := b.childNode(p, 0)
		if err != nil {
			return nil, err
		}
		return &ReturnBlock{Value: value}, nil
	case grammar.RuleIfStatement:
		return b.ifStatement(p)
	case grammar.RuleElifStatement:
		cond, err := b.childNode(p, 0)
		if err != nil {
			return nil, err
		}
		block, err := b.childNode(p, 1)
		if err != nil {
			return nil, err
		}
		return &Elif{Cond: cond, Block: block}, nil
	case grammar.RuleElseStatement:
		block, err := b.childNode(p, 0)
		if err != nil {
			return nil, err
		}
		return &Else{Block: block}, nil
	case grammar.RuleBlock:
		nodes, err := b.sequence(p.Children)
		if err != nil {
			return nil, err
		}
		return &Block{Nodes: nodes}, nil
	case grammar.RuleProgram:
		nodes, err := b.sequence(p.Children)
		if err != nil {
			return nil, err
		}
		return &Program{Nodes: nodes}, nil
	case grammar.RuleStatement, grammar.RuleConstant, grammar.RuleTypeAnnotation:
		return b.childNode(p, 0)
	case grammar.RuleEOI, grammar.RuleComment:
		return &Empty{}, nil
	default:
		return nil, unknown("unknown pair", p.Rule)
	}
}

// sequence resolves each pair in order, dropping comments and end markers.
func (b *builder) sequence(pairs []*grammar.Pair) ([]Node, error) {
	var out []Node
	for _, p := range pairs {
		n, err := b.build(p)
		if err != nil {
			return nil, err
		}
		if n.Kind() == KEmpty {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (b *builder) childNode(p *grammar.Pair, i int) (Node, error) {
	if i >= len(p.Children) {
		return nil, unknown("missing child in pair", p.Rule)
	}
	return b.build(p.Children[i])
}

// assign keys the optional annotation on its rule tag, so a statement
// carries at most one annotation and exactly one value.
func (b *builder) assign(p *grammar.Pair) (Node, error) {
	ident, err := b.childNode(p, 0)
	if err != nil {
		return nil, err
	}
	out := &Assign{Ident: ident}
	for _, child := range p.Children[1:] {
		n, err := b.build(child)
		if err != nil {
			return nil, err
		}
		switch {
		case child.Rule == grammar.RuleTypeAnnotation && out.Type == nil:
			out.Type = n
		case child.Rule == grammar.RuleTypeAnnotation:
			return nil, unknown("duplicate type annotation", child.Rule)
		case out.Value == nil:
			out.Value = n
		default:
			return nil, unknown("unexpected arity in assign statement", p.Rule)
		}
	}
	if out.Value == nil {
		return nil, unknown("missing value in assign statement", p.Rule)
	}
	return out, nil
}

func (b *builder) setValue(p *grammar.Pair) (Node, error) {
	ident, err := b.childNode(p, 0)
	if err != nil {
		return nil, err
	}
	value, err := b.childNode(p, 1)
	if err != nil {
		return nil, err
	}
	return &SetValue{Ident: ident, Value: value}, nil
}

func (b *builder) ifStatement(p *grammar.Pair) (Node, error) {
	cond, err := b.childNode(p, 0)
	if err != nil {
		return nil, err
	}
	then, err := b.childNode(p, 1)
	if err != nil {
		return nil, err
	}
	out := &If{Cond: cond, Then: then}
	for _, pair := range p.Children[2:] {
		n, err := b.build(pair)
		if err != nil {
			return nil, err
		}
		switch n := n.(type) {
		case *Elif:
			out.Elifs = append(out.Elifs, n)
		case *Else:
			if out.Else != nil {
				return nil, unknown("duplicate else in if statement", pair.Rule)
			}
			out.Else = n
		default:
			return nil, unknown("unknown pair in if statement", pair.Rule)
		}
	}
	return out, nil
}
