package parse

import "hare/internal/grammar"

// BinaryOp is an infix operator. OpNone marks a degenerate expression.
type BinaryOp int

const (
	OpNone BinaryOp = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpGt
	OpGte
	OpLt
	OpLte
)

var opSymbols = [...]string{
	OpNone: "",
	OpAdd:  "+",
	OpSub:  "-",
	OpMul:  "*",
	OpDiv:  "/",
	OpMod:  "%",
	OpEq:   "==",
	OpNeq:  "!=",
	OpGt:   ">",
	OpGte:  ">=",
	OpLt:   "<",
	OpLte:  "<=",
}

var opNames = [...]string{
	OpNone: "None",
	OpAdd:  "Add",
	OpSub:  "Sub",
	OpMul:  "Mul",
	OpDiv:  "Div",
	OpMod:  "Mod",
	OpEq:   "Eq",
	OpNeq:  "Neq",
	OpGt:   "Gt",
	OpGte:  "Gte",
	OpLt:   "Lt",
	OpLte:  "Lte",
}

// Symbol returns the operator as written in source.
func (op BinaryOp) Symbol() string {
	if op >= 0 && int(op) < len(opSymbols) {
		return opSymbols[op]
	}
	return "?"
}

func (op BinaryOp) String() string {
	if op >= 0 && int(op) < len(opNames) {
		return opNames[op]
	}
	return "Unknown"
}

// Precedence tiers, loosest first. Every tier is left-associative.
const (
	TierCompare = iota + 1
	TierAdditive
	TierMultiplicative
	TierModulo
)

// OpInfo describes how an operator rule binds.
type OpInfo struct {
	Op   BinaryOp
	Tier int
}

// OpTable maps operator rules from the parse tree to operators.
type OpTable map[grammar.Rule]OpInfo

// DefaultOperators returns the Blue Arch operator table.
func DefaultOperators() OpTable {
	return OpTable{
		grammar.RuleEquals:               {OpEq, TierCompare},
		grammar.RuleNotEquals:            {OpNeq, TierCompare},
		grammar.RuleGreaterThan:          {OpGt, TierCompare},
		grammar.RuleGreaterThanOrEqualTo: {OpGte, TierCompare},
		grammar.RuleLessThan:             {OpLt, TierCompare},
		grammar.RuleLessThanOrEqualTo:    {OpLte, TierCompare},
		grammar.RuleAdd:                  {OpAdd, TierAdditive},
		grammar.RuleSubtract:             {OpSub, TierAdditive},
		grammar.RuleMultiply:             {OpMul, TierMultiplicative},
		grammar.RuleDivide:               {OpDiv, TierMultiplicative},
		grammar.RuleModulo:               {OpMod, TierModulo},
	}
}
