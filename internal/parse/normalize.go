package parse

// Normalize returns a canonical copy of n: every Assign value and every
// If/Elif condition is an *Expr, wrapping bare operands as degenerate
// expressions. Normalizing a normalized tree yields an equal tree.
func Normalize(n Node) Node {
	switch n := n.(type) {
	case *Program:
		return &Program{Nodes: normalizeList(n.Nodes)}
	case *Block:
		return &Block{Nodes: normalizeList(n.Nodes)}
	case *Assign:
		out := &Assign{Ident: Normalize(n.Ident), Value: asExpr(Normalize(n.Value))}
		if n.Type != nil {
			out.Type = Normalize(n.Type)
		}
		return out
	case *SetValue:
		return &SetValue{Ident: Normalize(n.Ident), Value: Normalize(n.Value)}
	case *ReturnBlock:
		return &ReturnBlock{Value: Normalize(n.Value)}
	case *Expr:
		out := &Expr{Left: Normalize(n.Left), Op: n.Op}
		if n.Right != nil {
			out.Right = Normalize(n.Right)
		}
		return out
	case *If:
		out := &If{
			Cond:  asExpr(Normalize(n.Cond)),
			Then:  Normalize(n.Then),
			Elifs: normalizeList(n.Elifs),
		}
		if n.Else != nil {
			out.Else = Normalize(n.Else)
		}
		return out
	case *Elif:
		return &Elif{Cond: asExpr(Normalize(n.Cond)), Block: Normalize(n.Block)}
	case *Else:
		return &Else{Block: Normalize(n.Block)}
	case *Constant:
		return &Constant{Text: n.Text, Float: n.Float}
	case *Identifier:
		return &Identifier{Name: n.Name}
	case *Empty:
		return &Empty{}
	default:
		return n
	}
}

func normalizeList(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		out = append(out, Normalize(n))
	}
	return out
}

func asExpr(n Node) Node {
	if _, ok := n.(*Expr); ok {
		return n
	}
	return Wrap(n)
}
