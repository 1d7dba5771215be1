package compile

import (
	"strconv"
	"strings"

	"hare/internal/parse"
)

// ByteCode is a single instruction.
type ByteCode struct {
	Op   OpCode
	Args []string
}

// New constructs an instruction.
func New(op OpCode, args ...string) ByteCode {
	return ByteCode{Op: op, Args: args}
}

func (b ByteCode) String() string {
	if len(b.Args) == 0 {
		return b.Op.String()
	}
	parts := make([]string, 0, len(b.Args)+1)
	parts = append(parts, b.Op.String())
	for _, a := range b.Args {
		parts = append(parts, strconv.Quote(a))
	}
	return strings.Join(parts, " ")
}

// OpFor returns the instruction computing a binary operator.
func OpFor(op parse.BinaryOp) (OpCode, bool) {
	switch op {
	case parse.OpAdd:
		return Add, true
	case parse.OpSub:
		return Sub, true
	case parse.OpMul:
		return Mul, true
	case parse.OpDiv:
		return Div, true
	case parse.OpMod:
		return Mod, true
	case parse.OpEq:
		return Eq, true
	case parse.OpNeq:
		return Neq, true
	case parse.OpGt:
		return Gt, true
	case parse.OpGte:
		return Gte, true
	case parse.OpLt:
		return Lt, true
	case parse.OpLte:
		return Lte, true
	default:
		return 0, false
	}
}
