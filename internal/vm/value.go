package vm

import (
	"strconv"
	"strings"
)

// ValueKind is the runtime type of a Value.
type ValueKind int

const (
	VInt ValueKind = iota
	VFloat
	VBool
	VString
)

func (k ValueKind) String() string {
	switch k {
	case VInt:
		return "int"
	case VFloat:
		return "float"
	case VBool:
		return "bool"
	case VString:
		return "str"
	default:
		return "unknown"
	}
}

// Value is a stack machine value.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Bool  bool
	Str   string
}

func Int(n int64) Value     { return Value{Kind: VInt, Int: n} }
func Float(f float64) Value { return Value{Kind: VFloat, Float: f} }
func Bool(b bool) Value     { return Value{Kind: VBool, Bool: b} }
func Str(s string) Value    { return Value{Kind: VString, Str: s} }

func (v Value) String() string {
	switch v.Kind {
	case VInt:
		return strconv.FormatInt(v.Int, 10)
	case VFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case VBool:
		return strconv.FormatBool(v.Bool)
	case VString:
		return strconv.Quote(v.Str)
	default:
		return "?"
	}
}

func (v Value) isNumber() bool {
	return v.Kind == VInt || v.Kind == VFloat
}

func (v Value) asFloat() float64 {
	if v.Kind == VInt {
		return float64(v.Int)
	}
	return v.Float
}

// ParseLiteral decodes the canonical literal text carried by Push. Floats
// with no fractional part are rendered without a dot by the parser and so
// decode as ints.
func ParseLiteral(text string) (Value, bool) {
	switch {
	case text == "true":
		return Bool(true), true
	case text == "false":
		return Bool(false), true
	case strings.HasPrefix(text, `"`):
		if s, err := strconv.Unquote(text); err == nil {
			return Str(s), true
		}
		if len(text) >= 2 && strings.HasSuffix(text, `"`) {
			return Str(text[1 : len(text)-1]), true
		}
		return Value{}, false
	case strings.Contains(text, "."):
		return parseFloat(text)
	default:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, false
		}
		return Int(n), true
	}
}

func parseFloat(text string) (Value, bool) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}, false
	}
	return Float(f), true
}
