package parse

import (
	"fmt"

	"hare/internal/grammar"
)

// SyntaxError reports a malformed or unrecognized operand or token. Err holds
// the underlying grammar error, if any.
type SyntaxError struct {
	Msg string
	Err error
}

func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return "syntax error: " + e.Err.Error()
	}
	return "syntax error: " + e.Msg
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// UnknownError reports a parse tree shape the builder has no case for.
type UnknownError struct {
	Msg  string
	Rule grammar.Rule
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown error: %s: %s", e.Msg, e.Rule)
}

func syntaxErrorf(format string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...)}
}

func unknown(msg string, r grammar.Rule) error {
	return &UnknownError{Msg: msg, Rule: r}
}
