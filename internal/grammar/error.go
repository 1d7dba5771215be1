package grammar

import (
	"fmt"
	"strings"
)

// Error reports where the input stopped matching the grammar.
type Error struct {
	Pos      Pos
	Expected []string
	Found    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: expected %s, found %s", e.Pos.Line, e.Pos.Col, strings.Join(e.Expected, " or "), e.Found)
}
