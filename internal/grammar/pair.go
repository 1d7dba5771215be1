// Package grammar turns Blue Arch source text into a concrete parse tree whose
// nodes are tagged with grammar rules.
package grammar

// Rule tags a parse tree node with the grammar rule that produced it.
type Rule int

const (
	RuleProgram Rule = iota
	RuleStatement
	RuleExpr
	RuleConstant
	RuleInt
	RuleFloat
	RuleString
	RuleBoolean
	RuleIdent
	RuleTypeAnnotation
	RuleAssignStatement
	RuleSetValueStatement
	RuleReturnBlockStatement
	RuleIfStatement
	RuleElifStatement
	RuleElseStatement
	RuleBlock
	RuleAdd
	RuleSubtract
	RuleMultiply
	RuleDivide
	RuleModulo
	RuleEquals
	RuleNotEquals
	RuleGreaterThan
	RuleGreaterThanOrEqualTo
	RuleLessThan
	RuleLessThanOrEqualTo
	RuleEOI
	RuleComment
)

var ruleNames = [...]string{
	RuleProgram:              "program",
	RuleStatement:            "statement",
	RuleExpr:                 "expr",
	RuleConstant:             "constant",
	RuleInt:                  "int",
	RuleFloat:                "float",
	RuleString:               "string",
	RuleBoolean:              "boolean",
	RuleIdent:                "ident",
	RuleTypeAnnotation:       "type_annotation",
	RuleAssignStatement:      "assign_statement",
	RuleSetValueStatement:    "set_value_statement",
	RuleReturnBlockStatement: "return_block_statement",
	RuleIfStatement:          "if_statement",
	RuleElifStatement:        "elif_statement",
	RuleElseStatement:        "else_statement",
	RuleBlock:                "block",
	RuleAdd:                  "add",
	RuleSubtract:             "subtract",
	RuleMultiply:             "multiply",
	RuleDivide:               "divide",
	RuleModulo:               "modulo",
	RuleEquals:               "equals",
	RuleNotEquals:            "not_equals",
	RuleGreaterThan:          "greater_than",
	RuleGreaterThanOrEqualTo: "greater_than_or_equal_to",
	RuleLessThan:             "less_than",
	RuleLessThanOrEqualTo:    "less_than_or_equal_to",
	RuleEOI:                  "EOI",
	RuleComment:              "COMMENT",
}

func (r Rule) String() string {
	if r >= 0 && int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return "unknown"
}

// Pos tracks a source position.
type Pos struct {
	Line int
	Col  int
}

// Pair is a parse tree node: the rule that matched, the matched source text
// and the nested matches in source order.
type Pair struct {
	Rule     Rule
	Text     string
	Pos      Pos
	Children []*Pair
}

var binaryOps = map[string]Rule{
	"+":  RuleAdd,
	"-":  RuleSubtract,
	"*":  RuleMultiply,
	"/":  RuleDivide,
	"%":  RuleModulo,
	"==": RuleEquals,
	"!=": RuleNotEquals,
	">":  RuleGreaterThan,
	">=": RuleGreaterThanOrEqualTo,
	"<":  RuleLessThan,
	"<=": RuleLessThanOrEqualTo,
}

// IsBinaryOp reports whether r is one of the binary operator rules.
func (r Rule) IsBinaryOp() bool {
	return r >= RuleAdd && r <= RuleLessThanOrEqualTo
}
