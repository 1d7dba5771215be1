package compile

import "fmt"

// CompileError reports an AST shape the compiler cannot lower.
type CompileError struct {
	Msg string
}

func (e *CompileError) Error() string {
	return "compile error: " + e.Msg
}

func errorf(format string, args ...any) error {
	return &CompileError{Msg: fmt.Sprintf(format, args...)}
}
