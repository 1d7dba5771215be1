package grammar

import (
	"fmt"
	"strings"
)

// Dump renders the tree one pair per line, indented by depth.
func Dump(p *Pair) string {
	var b strings.Builder
	dumpPair(&b, p, 0)
	return b.String()
}

func dumpPair(b *strings.Builder, p *Pair, indent int) {
	if p == nil {
		return
	}
	fmt.Fprintf(b, "%s[%s] %q\n", strings.Repeat(" ", indent), p.Rule, p.Text)
	for _, child := range p.Children {
		dumpPair(b, child, indent+1)
	}
}

// RulesPreorder collects pair rules in preorder.
func RulesPreorder(p *Pair) []Rule {
	if p == nil {
		return nil
	}
	out := []Rule{p.Rule}
	for _, child := range p.Children {
		out = append(out, RulesPreorder(child)...)
	}
	return out
}

// FindFirst returns the first pair with the given rule in preorder.
func FindFirst(p *Pair, r Rule) *Pair {
	if p == nil {
		return nil
	}
	if p.Rule == r {
		return p
	}
	for _, child := range p.Children {
		if found := FindFirst(child, r); found != nil {
			return found
		}
	}
	return nil
}
