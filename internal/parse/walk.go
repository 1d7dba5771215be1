package parse

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(xs ...Node) {
		for _, x := range xs {
			if x != nil {
				out = append(out, x)
			}
		}
	}
	switch n := n.(type) {
	case *Program:
		add(n.Nodes...)
	case *Block:
		add(n.Nodes...)
	case *Expr:
		add(n.Left, n.Right)
	case *Assign:
		add(n.Ident, n.Type, n.Value)
	case *SetValue:
		add(n.Ident, n.Value)
	case *ReturnBlock:
		add(n.Value)
	case *If:
		add(n.Cond, n.Then)
		add(n.Elifs...)
		add(n.Else)
	case *Elif:
		add(n.Cond, n.Block)
	case *Else:
		add(n.Block)
	}
	return out
}

// KindsPreorder collects node kinds in preorder.
func KindsPreorder(n Node) []Kind {
	if n == nil {
		return nil
	}
	out := []Kind{n.Kind()}
	for _, child := range Children(n) {
		out = append(out, KindsPreorder(child)...)
	}
	return out
}

// FindFirstKind returns the first node with the given kind in preorder.
func FindFirstKind(n Node, k Kind) Node {
	if n == nil {
		return nil
	}
	if n.Kind() == k {
		return n
	}
	for _, child := range Children(n) {
		if found := FindFirstKind(child, k); found != nil {
			return found
		}
	}
	return nil
}
