// Package compile lowers a Blue Arch AST into stack machine bytecode.
//
// Operands are emitted before the instruction that consumes them. Blocks
// become sections: a MakeSection ... EndMakeSection run of instructions that
// is recorded rather than executed, and is later entered with Jump or JumpIf.
// Section names come from a per-Compiler counter, so output is
// deterministic.
package compile

import (
	"fmt"

	"hare/internal/parse"
)

// Compiler lowers AST nodes. Section names are unique per Compiler.
type Compiler struct {
	sections int
}

// NewCompiler returns a Compiler whose first section is "00000000".
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile lowers n with a fresh Compiler.
func Compile(n parse.Node) ([]ByteCode, error) {
	return NewCompiler().Compile(n)
}

// Compile lowers n. On error no instructions are returned.
func (c *Compiler) Compile(n parse.Node) ([]ByteCode, error) {
	code, err := c.lower(n)
	if err != nil {
		return nil, err
	}
	return code, nil
}

func (c *Compiler) newSection() string {
	name := fmt.Sprintf("%08d", c.sections)
	c.sections++
	return name
}

func (c *Compiler) lower(n parse.Node) ([]ByteCode, error) {
	switch n := n.(type) {
	case nil:
		return nil, errorf("nil node")
	case *parse.Program:
		return c.lowerList(n.Nodes)
	case *parse.Expr:
		return c.lowerExpr(n)
	case *parse.Identifier:
		return []ByteCode{New(LoadName, n.Name)}, nil
	case *parse.Constant:
		if n.Float {
			return []ByteCode{New(Push, n.Text, "float")}, nil
		}
		return []ByteCode{New(Push, n.Text)}, nil
	case *parse.Assign:
		name, err := identName(n.Ident)
		if err != nil {
			return nil, err
		}
		code, err := c.lower(n.Value)
		if err != nil {
			return nil, err
		}
		args := []string{name}
		if n.Type != nil {
			args = append(args, parse.Format(n.Type))
		}
		return append(code, New(StoreName, args...)), nil
	case *parse.SetValue:
		name, err := identName(n.Ident)
		if err != nil {
			return nil, err
		}
		code, err := c.lower(n.Value)
		if err != nil {
			return nil, err
		}
		return append(code, New(StoreName, name)), nil
	case *parse.ReturnBlock:
		code, err := c.lower(n.Value)
		if err != nil {
			return nil, err
		}
		return append(code, New(Return)), nil
	case *parse.Block:
		name, code, err := c.section(n)
		if err != nil {
			return nil, err
		}
		return append(code, New(Jump, name)), nil
	case *parse.If:
		return c.lowerIf(n)
	case *parse.Elif:
		return nil, errorf("elif outside of an if statement")
	case *parse.Else:
		return nil, errorf("else outside of an if statement")
	case *parse.Empty:
		return nil, errorf("unexpected empty node")
	default:
		return nil, errorf("cannot compile %s", n.Kind())
	}
}

func (c *Compiler) lowerList(nodes []parse.Node) ([]ByteCode, error) {
	var out []ByteCode
	for _, n := range nodes {
		code, err := c.lower(n)
		if err != nil {
			return nil, err
		}
		out = append(out, code...)
	}
	return out, nil
}

func (c *Compiler) lowerExpr(e *parse.Expr) ([]ByteCode, error) {
	out, err := c.lower(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op == parse.OpNone {
		return out, nil
	}
	if e.Right == nil {
		return nil, errorf("missing right operand of %s", e.Op)
	}
	op, ok := OpFor(e.Op)
	if !ok {
		return nil, errorf("unknown operator %s", e.Op)
	}
	right, err := c.lower(e.Right)
	if err != nil {
		return nil, err
	}
	out = append(out, right...)
	return append(out, New(op)), nil
}

// section lowers a block into a named section definition. The section ends
// with Return unless its last statement already returned.
func (c *Compiler) section(n parse.Node) (string, []ByteCode, error) {
	block, ok := n.(*parse.Block)
	if !ok {
		return "", nil, errorf("expected block, found %s", kindOf(n))
	}
	name := c.newSection()
	body, err := c.lowerList(block.Nodes)
	if err != nil {
		return "", nil, err
	}
	out := make([]ByteCode, 0, len(body)+3)
	out = append(out, New(MakeSection, name))
	out = append(out, body...)
	if len(block.Nodes) == 0 || block.Nodes[len(block.Nodes)-1].Kind() != parse.KReturnBlock {
		out = append(out, New(Return))
	}
	return name, append(out, New(EndMakeSection)), nil
}

type branch struct {
	cond    parse.Node
	section string
}

// lowerIf defines one section per branch, then a chain section that tests
// each condition in order. A taken JumpIf leaves the chain, so later
// branches are skipped; the else branch, if any, is entered with Jump.
func (c *Compiler) lowerIf(n *parse.If) ([]ByteCode, error) {
	name, out, err := c.section(n.Then)
	if err != nil {
		return nil, err
	}
	branches := []branch{{cond: n.Cond, section: name}}
	for _, e := range n.Elifs {
		elif, ok := e.(*parse.Elif)
		if !ok {
			return nil, errorf("expected elif, found %s", kindOf(e))
		}
		name, code, err := c.section(elif.Block)
		if err != nil {
			return nil, err
		}
		out = append(out, code...)
		branches = append(branches, branch{cond: elif.Cond, section: name})
	}
	elseName := ""
	if n.Else != nil {
		e, ok := n.Else.(*parse.Else)
		if !ok {
			return nil, errorf("expected else, found %s", kindOf(n.Else))
		}
		name, code, err := c.section(e.Block)
		if err != nil {
			return nil, err
		}
		out = append(out, code...)
		elseName = name
	}

	chain := c.newSection()
	out = append(out, New(MakeSection, chain))
	for _, br := range branches {
		cond, err := c.lower(br.cond)
		if err != nil {
			return nil, err
		}
		out = append(out, cond...)
		out = append(out, New(JumpIf, br.section))
	}
	if elseName != "" {
		out = append(out, New(Jump, elseName))
	}
	out = append(out, New(Return), New(EndMakeSection), New(Jump, chain))
	return out, nil
}

func identName(n parse.Node) (string, error) {
	id, ok := n.(*parse.Identifier)
	if !ok {
		return "", errorf("expected identifier, found %s", kindOf(n))
	}
	return id.Name, nil
}

func kindOf(n parse.Node) string {
	if n == nil {
		return "nothing"
	}
	return n.Kind().String()
}
