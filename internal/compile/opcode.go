package compile

// OpCode is a stack machine operation.
type OpCode int

const (
	// Stack
	Push OpCode = iota // push args[0] as a literal
	Pop                // discard the top value

	// Arithmetic: pop right, pop left, push result.
	Add
	Sub
	Mul
	Div
	Mod
	Neg // negate the top value

	// Comparison: pop right, pop left, push a bool.
	Eq
	Neq
	Gt
	Lt
	Gte
	Lte

	// Flow
	Jump   // run section args[0] and push its result
	JumpIf // pop a bool; when true run section args[0], push its result and leave the current section

	// Names
	LoadName  // push the value bound to args[0]
	StoreName // pop and bind to args[0]

	// Sections
	MakeSection    // record instructions up to the matching EndMakeSection as section args[0]
	EndMakeSection // close the innermost MakeSection
	Return         // leave the current section
)

var opNames = [...]string{
	Push:           "Push",
	Pop:            "Pop",
	Add:            "Add",
	Sub:            "Sub",
	Mul:            "Mul",
	Div:            "Div",
	Mod:            "Mod",
	Neg:            "Neg",
	Eq:             "Eq",
	Neq:            "Neq",
	Gt:             "Gt",
	Lt:             "Lt",
	Gte:            "Gte",
	Lte:            "Lte",
	Jump:           "Jump",
	JumpIf:         "JumpIf",
	LoadName:       "LoadName",
	StoreName:      "StoreName",
	MakeSection:    "MakeSection",
	EndMakeSection: "EndMakeSection",
	Return:         "Return",
}

func (op OpCode) String() string {
	if op >= 0 && int(op) < len(opNames) {
		return opNames[op]
	}
	return "Unknown"
}
