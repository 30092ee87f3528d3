package value

import (
	"strconv"
	"strings"

	"github.com/agenthands/asa/pkg/compiler/ast"
)

// Type represents the tag in the Value tagged union.
type Type uint8

const (
	TypeString Type = iota
	TypeNumber
	TypeBool
	TypeArray
	TypeIdentifier
	TypeFunction
)

var typeNames = [...]string{
	TypeString:     "String",
	TypeNumber:     "Number",
	TypeBool:       "Bool",
	TypeArray:      "Array",
	TypeIdentifier: "Identifier",
	TypeFunction:   "Function",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// Value is a tagged union. Scalars live in Data; strings, arrays and
// functions live in Opaque.
type Value struct {
	Type   Type
	Data   uint64
	Opaque any
}

// Param is one declared function parameter.
type Param struct {
	Handle  uint64
	Name    string
	Default ast.Node // nil when the caller must supply the argument
}

// Function is a user-defined function. It captures no environment.
type Function struct {
	Name   string
	Params []Param
	Body   ast.Node
}

func Number(n int32) Value {
	return Value{Type: TypeNumber, Data: uint64(int64(n))}
}

func Bool(b bool) Value {
	if b {
		return Value{Type: TypeBool, Data: 1}
	}
	return Value{Type: TypeBool}
}

func String(s string) Value {
	return Value{Type: TypeString, Opaque: s}
}

// Array takes ownership of elems.
func Array(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{Type: TypeArray, Opaque: elems}
}

func Identifier(handle uint64) Value {
	return Value{Type: TypeIdentifier, Data: handle}
}

func Func(fn *Function) Value {
	return Value{Type: TypeFunction, Opaque: fn}
}

// True is what statements without a meaningful result evaluate to.
var True = Bool(true)

// Int returns the value as int32.
func (v Value) Int() int32 {
	return int32(int64(v.Data))
}

func (v Value) Truth() bool {
	return v.Data != 0
}

func (v Value) Str() string {
	s, _ := v.Opaque.(string)
	return s
}

// Elems returns the array's backing slice. Callers that mutate it must own
// the value, see Clone.
func (v Value) Elems() []Value {
	e, _ := v.Opaque.([]Value)
	return e
}

func (v Value) Handle() uint64 {
	return v.Data
}

func (v Value) Function() *Function {
	fn, _ := v.Opaque.(*Function)
	return fn
}

// Clone returns a deep copy. Arrays are copied element by element so that
// no two bindings share storage. Functions are immutable and shared.
func (v Value) Clone() Value {
	if v.Type != TypeArray {
		return v
	}
	src := v.Elems()
	dst := make([]Value, len(src))
	for i, el := range src {
		dst[i] = el.Clone()
	}
	return Array(dst)
}

// Equal reports deep structural equality. Values of different types are
// never equal.
func Equal(a, b Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TypeString:
		return a.Str() == b.Str()
	case TypeArray:
		ae, be := a.Elems(), b.Elems()
		if len(ae) != len(be) {
			return false
		}
		for i := range ae {
			if !Equal(ae[i], be[i]) {
				return false
			}
		}
		return true
	case TypeFunction:
		return equalFunctions(a.Function(), b.Function())
	default:
		return a.Data == b.Data
	}
}

func equalFunctions(a, b *Function) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		pa, pb := a.Params[i], b.Params[i]
		if pa.Handle != pb.Handle || (pa.Default == nil) != (pb.Default == nil) {
			return false
		}
		if pa.Default != nil && !ast.Equal(pa.Default, pb.Default) {
			return false
		}
	}
	return ast.Equal(a.Body, b.Body)
}

// Debug renders the value the way print shows it, e.g. Number(3),
// String("hi") or Array([Number(1), Bool(true)]).
func (v Value) Debug() string {
	var b strings.Builder
	v.writeDebug(&b)
	return b.String()
}

func (v Value) writeDebug(b *strings.Builder) {
	switch v.Type {
	case TypeString:
		b.WriteString("String(")
		b.WriteString(strconv.Quote(v.Str()))
		b.WriteByte(')')
	case TypeNumber:
		b.WriteString("Number(")
		b.WriteString(strconv.FormatInt(int64(v.Int()), 10))
		b.WriteByte(')')
	case TypeBool:
		b.WriteString("Bool(")
		b.WriteString(strconv.FormatBool(v.Truth()))
		b.WriteByte(')')
	case TypeArray:
		b.WriteString("Array(")
		writeList(b, v.Elems())
		b.WriteByte(')')
	case TypeIdentifier:
		b.WriteString("Identifier(")
		b.WriteString(strconv.FormatUint(v.Data, 10))
		b.WriteByte(')')
	case TypeFunction:
		b.WriteString("Function(")
		if fn := v.Function(); fn != nil {
			b.WriteString(fn.Name)
		}
		b.WriteByte(')')
	default:
		b.WriteString(v.Type.String())
	}
}

func writeList(b *strings.Builder, elems []Value) {
	b.WriteByte('[')
	for i, el := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		el.writeDebug(b)
	}
	b.WriteByte(']')
}

// Format returns the text used when the value is concatenated onto a string.
func (v Value) Format() string {
	switch v.Type {
	case TypeString:
		return v.Str()
	case TypeNumber:
		return strconv.FormatInt(int64(v.Int()), 10)
	case TypeBool:
		return strconv.FormatBool(v.Truth())
	case TypeArray:
		var b strings.Builder
		writeList(&b, v.Elems())
		return b.String()
	case TypeIdentifier:
		return "<id:" + strconv.FormatUint(v.Data, 10) + ">"
	case TypeFunction:
		return "<function>"
	}
	return v.Type.String()
}
