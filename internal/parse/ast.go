package parse

import "reflect"

// Kind represents the AST node kind.
type Kind int

const (
	KProgram Kind = iota
	KBlock
	KConstant
	KIdentifier
	KExpr
	KAssign
	KSetValue
	KReturnBlock
	KIf
	KElif
	KElse
	KEmpty
)

var kindNames = [...]string{
	KProgram:     "Program",
	KBlock:       "Block",
	KConstant:    "Constant",
	KIdentifier:  "Identifier",
	KExpr:        "Expr",
	KAssign:      "Assign",
	KSetValue:    "SetValue",
	KReturnBlock: "ReturnBlock",
	KIf:          "If",
	KElif:        "Elif",
	KElse:        "Else",
	KEmpty:       "Empty",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Node is an AST node. The set of implementations is closed to this package;
// every node exclusively owns its children.
type Node interface {
	Kind() Kind
	astNode()
}

// Program is the top-level statement sequence.
type Program struct {
	Nodes []Node
}

// Block is a lexical block of statements.
type Block struct {
	Nodes []Node
}

// Constant is a literal in canonical text form. Float marks a float
// literal, whose canonical text may read as an integer ("2.0" is "2").
type Constant struct {
	Text  string
	Float bool
}

// Identifier is a variable reference.
type Identifier struct {
	Name string
}

// Expr is a binary operation, or a pass-through of Left when Op is OpNone
// and Right is nil.
type Expr struct {
	Left  Node
	Op    BinaryOp
	Right Node
}

// Assign declares Ident with an optional Type annotation.
type Assign struct {
	Ident Node
	Type  Node
	Value Node
}

// SetValue reassigns an existing name.
type SetValue struct {
	Ident Node
	Value Node
}

// ReturnBlock is the value produced by exiting a block.
type ReturnBlock struct {
	Value Node
}

type If struct {
	Cond  Node
	Then  Node
	Elifs []Node
	Else  Node
}

type Elif struct {
	Cond  Node
	Block Node
}

type Else struct {
	Block Node
}

// Empty marks comments and end of input while building; it never survives
// into a finished tree.
type Empty struct{}

func (*Program) Kind() Kind     { return KProgram }
func (*Block) Kind() Kind       { return KBlock }
func (*Constant) Kind() Kind    { return KConstant }
func (*Identifier) Kind() Kind  { return KIdentifier }
func (*Expr) Kind() Kind        { return KExpr }
func (*Assign) Kind() Kind      { return KAssign }
func (*SetValue) Kind() Kind    { return KSetValue }
func (*ReturnBlock) Kind() Kind { return KReturnBlock }
func (*If) Kind() Kind          { return KIf }
func (*Elif) Kind() Kind        { return KElif }
func (*Else) Kind() Kind        { return KElse }
func (*Empty) Kind() Kind       { return KEmpty }

func (*Program) astNode()     {}
func (*Block) astNode()       {}
func (*Constant) astNode()    {}
func (*Identifier) astNode()  {}
func (*Expr) astNode()        {}
func (*Assign) astNode()      {}
func (*SetValue) astNode()    {}
func (*ReturnBlock) astNode() {}
func (*If) astNode()          {}
func (*Elif) astNode()        {}
func (*Else) astNode()        {}
func (*Empty) astNode()       {}

// C constructs a constant node.
func C(text string) *Constant {
	return &Constant{Text: text}
}

// F constructs a float constant node.
func F(text string) *Constant {
	return &Constant{Text: text, Float: true}
}

// I constructs an identifier node.
func I(name string) *Identifier {
	return &Identifier{Name: name}
}

// E constructs a binary expression node.
func E(left Node, op BinaryOp, right Node) *Expr {
	return &Expr{Left: left, Op: op, Right: right}
}

// Wrap constructs a degenerate expression around n.
func Wrap(n Node) *Expr {
	return &Expr{Left: n}
}

// IsBinary reports whether e carries both an operator and a right operand.
func (e *Expr) IsBinary() bool {
	return e.Op != OpNone && e.Right != nil
}

// Equal reports whether two trees have the same shape and contents.
func Equal(a, b Node) bool {
	return reflect.DeepEqual(a, b)
}
