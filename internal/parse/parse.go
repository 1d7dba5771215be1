// Package parse builds the Blue Arch abstract syntax tree from the grammar's
// parse tree and renders it back to code.
package parse

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"hare/internal/grammar"
)

// Parser turns source text into normalized AST nodes. It owns the operator
// table used to group binary expressions. When TreeWriter is set, every
// parse tree is dumped to it before the AST is built.
type Parser struct {
	ops        OpTable
	TreeWriter io.Writer
}

// New returns a Parser using the default operator table.
func New() *Parser {
	return &Parser{ops: DefaultOperators()}
}

// Parse reads input and returns the top-level statements.
func (p *Parser) Parse(rd io.Reader) ([]Node, error) {
	tree, err := grammar.Parse(rd)
	if err != nil {
		var gerr *grammar.Error
		if errors.As(err, &gerr) {
			return nil, &SyntaxError{Msg: gerr.Error(), Err: err}
		}
		return nil, fmt.Errorf("read source: %w", err)
	}
	if p.TreeWriter != nil {
		io.WriteString(p.TreeWriter, grammar.Dump(tree))
	}
	return p.Build(tree)
}

// Build converts a parse tree into normalized AST nodes. A program tree
// yields its statements; any other pair yields a single node.
func (p *Parser) Build(tree *grammar.Pair) ([]Node, error) {
	if tree == nil {
		return nil, errors.New("nil parse tree")
	}
	b := &builder{ops: p.ops}
	var nodes []Node
	if tree.Rule == grammar.RuleProgram {
		seq, err := b.sequence(tree.Children)
		if err != nil {
			return nil, err
		}
		nodes = seq
	} else {
		n, err := b.build(tree)
		if err != nil {
			return nil, err
		}
		if n.Kind() != KEmpty {
			nodes = append(nodes, n)
		}
	}
	for i, n := range nodes {
		nodes[i] = Normalize(n)
	}
	return nodes, nil
}

// Parse reads input with a default Parser.
func Parse(rd io.Reader) ([]Node, error) {
	return New().Parse(rd)
}

// ParseString parses an in-memory source.
func ParseString(src string) ([]Node, error) {
	return New().Parse(strings.NewReader(src))
}

// ParseProgram parses input and wraps the statements in a Program.
func ParseProgram(rd io.Reader) (*Program, error) {
	nodes, err := Parse(rd)
	if err != nil {
		return nil, err
	}
	return &Program{Nodes: nodes}, nil
}
