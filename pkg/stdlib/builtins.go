package stdlib

import (
	"io"
	"unicode/utf8"

	"github.com/agenthands/asa/pkg/core/errs"
	"github.com/agenthands/asa/pkg/core/value"
)

// Host is what a built-in may touch outside its arguments.
type Host struct {
	Out io.Writer
}

// HostFunction is a Go function callable from asa code. Arguments are
// already evaluated and their count matches Arity.
type HostFunction func(h *Host, args []value.Value) (value.Value, error)

// HostFunctionEntry tracks a built-in and the number of arguments it takes.
type HostFunctionEntry struct {
	Fn    HostFunction
	Arity int
}

var registry = map[string]HostFunctionEntry{
	"print": {Fn: Print, Arity: 1},
	"len":   {Fn: Len, Arity: 1},
}

// Lookup finds a built-in by name. Built-ins take precedence over user
// bindings of the same name.
func Lookup(name string) (HostFunctionEntry, bool) {
	e, ok := registry[name]
	return e, ok
}

// Print writes the debug rendering of its argument and a newline.
func Print(h *Host, args []value.Value) (value.Value, error) {
	if h.Out != nil {
		if _, err := io.WriteString(h.Out, args[0].Debug()+"\n"); err != nil {
			return value.Value{}, err
		}
	}
	return value.True, nil
}

// Len counts the characters of a string or the elements of an array.
func Len(_ *Host, args []value.Value) (value.Value, error) {
	switch v := args[0]; v.Type {
	case value.TypeString:
		return value.Number(int32(utf8.RuneCountInString(v.Str()))), nil
	case value.TypeArray:
		return value.Number(int32(len(v.Elems()))), nil
	default:
		return value.Value{}, errs.New(errs.TypeMismatch, "len() not supported on %s", v.Type)
	}
}
