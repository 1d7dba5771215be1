// Package vm executes compiled Blue Arch bytecode on a stack machine.
//
// Every section runs with its own value stack in a child scope of the code
// that entered it. A section's result is the top of its stack when it
// returns; Jump pushes that result onto the caller's stack. A taken JumpIf
// pushes the result and then leaves the current section.
package vm

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"hare/internal/compile"
)

// Runner executes bytecode.
type Runner struct {
	Env         *Env
	Trace       bool
	TraceWriter io.Writer

	sections []section
}

// Result is the value stack left by top-level code.
type Result struct {
	Stack []Value
}

// Top returns the last value pushed, if any.
func (r Result) Top() (Value, bool) {
	if len(r.Stack) == 0 {
		return Value{}, false
	}
	return r.Stack[len(r.Stack)-1], true
}

type section struct {
	defined bool
	body    []compile.ByteCode
}

type frame struct {
	env   *Env
	stack []Value
}

// NewRunner returns a Runner with an empty global scope.
func NewRunner() *Runner {
	return &Runner{Env: NewEnv(nil)}
}

// Run executes code at top level. Sections defined by earlier calls stay
// visible, as do globals.
func (r *Runner) Run(code []compile.ByteCode) (Result, error) {
	if r.Env == nil {
		r.Env = NewEnv(nil)
	}
	if r.Trace && r.TraceWriter == nil {
		r.TraceWriter = io.Discard
	}
	f := &frame{env: r.Env}
	if err := r.exec(code, f, 0); err != nil {
		return Result{}, err
	}
	return Result{Stack: f.stack}, nil
}

func (r *Runner) exec(code []compile.ByteCode, f *frame, depth int) error {
	for pc := 0; pc < len(code); pc++ {
		ins := code[pc]
		r.tracef(depth, ins)
		switch ins.Op {
		case compile.Push:
			text, err := arg(ins, 0)
			if err != nil {
				return err
			}
			v, ok := ParseLiteral(text)
			if len(ins.Args) > 1 && ins.Args[1] == "float" {
				v, ok = parseFloat(text)
			}
			if !ok {
				return runtimeErrorf(ins.Op, "invalid literal %q", text)
			}
			f.push(v)
		case compile.Pop:
			if _, err := f.pop(ins.Op); err != nil {
				return err
			}
		case compile.Neg:
			v, err := f.pop(ins.Op)
			if err != nil {
				return err
			}
			switch v.Kind {
			case VInt:
				f.push(Int(-v.Int))
			case VFloat:
				f.push(Float(-v.Float))
			default:
				return runtimeErrorf(ins.Op, "cannot negate %s", v.Kind)
			}
		case compile.Add, compile.Sub, compile.Mul, compile.Div, compile.Mod,
			compile.Eq, compile.Neq, compile.Gt, compile.Lt, compile.Gte, compile.Lte:
			right, err := f.pop(ins.Op)
			if err != nil {
				return err
			}
			left, err := f.pop(ins.Op)
			if err != nil {
				return err
			}
			v, err := binary(ins.Op, left, right)
			if err != nil {
				return err
			}
			f.push(v)
		case compile.LoadName:
			name, err := arg(ins, 0)
			if err != nil {
				return err
			}
			v, ok := f.env.Get(name)
			if !ok {
				return runtimeErrorf(ins.Op, "undefined name %q", name)
			}
			f.push(v)
		case compile.StoreName:
			name, err := arg(ins, 0)
			if err != nil {
				return err
			}
			v, err := f.pop(ins.Op)
			if err != nil {
				return err
			}
			if len(ins.Args) > 1 {
				if v, err = annotate(ins.Args[1], v); err != nil {
					return err
				}
			}
			f.env.Store(name, v)
		case compile.MakeSection:
			end, err := matchEnd(code, pc)
			if err != nil {
				return err
			}
			if err := r.define(ins, code[pc+1:end]); err != nil {
				return err
			}
			pc = end
		case compile.EndMakeSection:
			return runtimeErrorf(ins.Op, "no section to end")
		case compile.Jump:
			v, ok, err := r.call(ins, f.env, depth)
			if err != nil {
				return err
			}
			if ok {
				f.push(v)
			}
		case compile.JumpIf:
			cond, err := f.pop(ins.Op)
			if err != nil {
				return err
			}
			if cond.Kind != VBool {
				return runtimeErrorf(ins.Op, "condition is %s, not bool", cond.Kind)
			}
			if !cond.Bool {
				continue
			}
			v, ok, err := r.call(ins, f.env, depth)
			if err != nil {
				return err
			}
			if ok {
				f.push(v)
			}
			return nil
		case compile.Return:
			return nil
		default:
			return runtimeErrorf(ins.Op, "unknown instruction")
		}
	}
	return nil
}

// define records a section body. Names are the decimal section numbers the
// compiler assigns, so they index straight into the table.
func (r *Runner) define(ins compile.ByteCode, body []compile.ByteCode) error {
	idx, err := sectionIndex(ins)
	if err != nil {
		return err
	}
	for len(r.sections) <= idx {
		r.sections = append(r.sections, section{})
	}
	r.sections[idx] = section{defined: true, body: body}
	return nil
}

func (r *Runner) call(ins compile.ByteCode, env *Env, depth int) (Value, bool, error) {
	idx, err := sectionIndex(ins)
	if err != nil {
		return Value{}, false, err
	}
	if idx >= len(r.sections) || !r.sections[idx].defined {
		return Value{}, false, runtimeErrorf(ins.Op, "undefined section %q", ins.Args[0])
	}
	child := &frame{env: NewEnv(env)}
	if err := r.exec(r.sections[idx].body, child, depth+1); err != nil {
		return Value{}, false, err
	}
	if len(child.stack) == 0 {
		return Value{}, false, nil
	}
	return child.stack[len(child.stack)-1], true, nil
}

func sectionIndex(ins compile.ByteCode) (int, error) {
	name, err := arg(ins, 0)
	if err != nil {
		return 0, err
	}
	idx, err := strconv.Atoi(name)
	if err != nil || idx < 0 {
		return 0, runtimeErrorf(ins.Op, "invalid section name %q", name)
	}
	return idx, nil
}

// matchEnd returns the index of the EndMakeSection closing the section
// opened at start.
func matchEnd(code []compile.ByteCode, start int) (int, error) {
	depth := 0
	for i := start; i < len(code); i++ {
		switch code[i].Op {
		case compile.MakeSection:
			depth++
		case compile.EndMakeSection:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, runtimeErrorf(compile.MakeSection, "unterminated section")
}

func arg(ins compile.ByteCode, i int) (string, error) {
	if i >= len(ins.Args) {
		return "", runtimeErrorf(ins.Op, "missing argument")
	}
	return ins.Args[i], nil
}

func (f *frame) push(v Value) {
	f.stack = append(f.stack, v)
}

func (f *frame) pop(op compile.OpCode) (Value, error) {
	if len(f.stack) == 0 {
		return Value{}, runtimeErrorf(op, "stack underflow")
	}
	v := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	return v, nil
}

// annotate checks v against a declared type. Unknown type names are not
// checked. An int stored as float is converted.
func annotate(typ string, v Value) (Value, error) {
	switch typ {
	case "int":
		if v.Kind == VInt {
			return v, nil
		}
	case "float":
		if v.Kind == VFloat {
			return v, nil
		}
		if v.Kind == VInt {
			return Float(float64(v.Int)), nil
		}
	case "bool":
		if v.Kind == VBool {
			return v, nil
		}
	case "str", "string":
		if v.Kind == VString {
			return v, nil
		}
	default:
		return v, nil
	}
	return Value{}, runtimeErrorf(compile.StoreName, "cannot store %s as %s", v.Kind, typ)
}

func binary(op compile.OpCode, a, b Value) (Value, error) {
	switch op {
	case compile.Eq:
		eq, err := equal(a, b)
		return Bool(eq), err
	case compile.Neq:
		eq, err := equal(a, b)
		return Bool(!eq), err
	case compile.Gt, compile.Lt, compile.Gte, compile.Lte:
		return order(op, a, b)
	}
	if a.Kind == VString && b.Kind == VString && op == compile.Add {
		return Str(a.Str + b.Str), nil
	}
	if !a.isNumber() || !b.isNumber() {
		return Value{}, runtimeErrorf(op, "unsupported operands %s and %s", a.Kind, b.Kind)
	}
	if a.Kind == VInt && b.Kind == VInt {
		return intArith(op, a.Int, b.Int)
	}
	x, y := a.asFloat(), b.asFloat()
	switch op {
	case compile.Add:
		return Float(x + y), nil
	case compile.Sub:
		return Float(x - y), nil
	case compile.Mul:
		return Float(x * y), nil
	case compile.Div:
		return Float(x / y), nil
	case compile.Mod:
		return Float(math.Mod(x, y)), nil
	}
	return Value{}, runtimeErrorf(op, "not a binary operator")
}

func intArith(op compile.OpCode, x, y int64) (Value, error) {
	switch op {
	case compile.Add:
		return Int(x + y), nil
	case compile.Sub:
		return Int(x - y), nil
	case compile.Mul:
		return Int(x * y), nil
	case compile.Div:
		if y == 0 {
			return Value{}, runtimeErrorf(op, "division by zero")
		}
		return Int(x / y), nil
	case compile.Mod:
		if y == 0 {
			return Value{}, runtimeErrorf(op, "division by zero")
		}
		return Int(x % y), nil
	}
	return Value{}, runtimeErrorf(op, "not a binary operator")
}

// equal compares numbers by value and everything else by kind and content.
func equal(a, b Value) (bool, error) {
	if a.isNumber() && b.isNumber() {
		if a.Kind == VInt && b.Kind == VInt {
			return a.Int == b.Int, nil
		}
		return a.asFloat() == b.asFloat(), nil
	}
	if a.Kind != b.Kind {
		return false, nil
	}
	switch a.Kind {
	case VBool:
		return a.Bool == b.Bool, nil
	case VString:
		return a.Str == b.Str, nil
	}
	return false, runtimeErrorf(compile.Eq, "cannot compare %s", a.Kind)
}

func order(op compile.OpCode, a, b Value) (Value, error) {
	var c int
	switch {
	case a.Kind == VInt && b.Kind == VInt:
		c = cmp3(a.Int < b.Int, a.Int > b.Int)
	case a.isNumber() && b.isNumber():
		x, y := a.asFloat(), b.asFloat()
		c = cmp3(x < y, x > y)
	case a.Kind == VString && b.Kind == VString:
		c = cmp3(a.Str < b.Str, a.Str > b.Str)
	default:
		return Value{}, runtimeErrorf(op, "cannot order %s and %s", a.Kind, b.Kind)
	}
	switch op {
	case compile.Gt:
		return Bool(c > 0), nil
	case compile.Lt:
		return Bool(c < 0), nil
	case compile.Gte:
		return Bool(c >= 0), nil
	default:
		return Bool(c <= 0), nil
	}
}

func cmp3(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}

func (r *Runner) tracef(depth int, ins compile.ByteCode) {
	if !r.Trace || r.TraceWriter == nil {
		return
	}
	fmt.Fprintf(r.TraceWriter, "%*s+ %s\n", depth*2, "", ins)
}
