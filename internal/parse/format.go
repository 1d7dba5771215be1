package parse

import (
	"fmt"
	"strings"
)

// Format renders an AST subtree as Blue Arch code. Binary expressions are
// fully parenthesized; shapes with no rendering produce "".
func Format(n Node) string {
	if n == nil {
		return ""
	}
	switch n := n.(type) {
	case *Program:
		var b strings.Builder
		for _, child := range n.Nodes {
			b.WriteString(Format(child))
			b.WriteByte('\n')
		}
		return b.String()
	case *Constant:
		return n.Text
	case *Identifier:
		return n.Name
	case *Expr:
		if n.IsBinary() {
			return fmt.Sprintf("(%s %s %s)", Format(n.Left), n.Op.Symbol(), Format(n.Right))
		}
		return Format(n.Left)
	case *Assign:
		if n.Type != nil {
			return fmt.Sprintf("let %s: %s = %s;", Format(n.Ident), Format(n.Type), Format(n.Value))
		}
		return fmt.Sprintf("let %s = %s;", Format(n.Ident), Format(n.Value))
	case *SetValue:
		return fmt.Sprintf("%s = %s;", Format(n.Ident), Format(n.Value))
	case *Block:
		var b strings.Builder
		b.WriteByte('{')
		for _, child := range n.Nodes {
			b.WriteString(Format(child))
			b.WriteByte('\n')
		}
		b.WriteByte('}')
		return b.String()
	case *ReturnBlock:
		return fmt.Sprintf("return %s;", Format(n.Value))
	case *If:
		var b strings.Builder
		fmt.Fprintf(&b, "if %s \n%s\n", Format(n.Cond), Format(n.Then))
		for _, elif := range n.Elifs {
			b.WriteString(Format(elif))
			b.WriteByte('\n')
		}
		if n.Else != nil {
			b.WriteString(Format(n.Else))
			b.WriteByte('\n')
		}
		return b.String()
	case *Elif:
		return fmt.Sprintf("elif %s \n%s\n", Format(n.Cond), Format(n.Block))
	case *Else:
		return fmt.Sprintf("else \n%s\n", Format(n.Block))
	default:
		return ""
	}
}
