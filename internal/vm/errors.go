package vm

import (
	"fmt"

	"hare/internal/compile"
)

// RuntimeError reports an instruction that could not execute.
type RuntimeError struct {
	Op  compile.OpCode
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %s: %s", e.Op, e.Msg)
}

func runtimeErrorf(op compile.OpCode, format string, args ...any) error {
	return &RuntimeError{Op: op, Msg: fmt.Sprintf(format, args...)}
}
