package interpreter

import (
	"slices"

	"github.com/agenthands/asa/pkg/compiler/ast"
	"github.com/agenthands/asa/pkg/core/errs"
	"github.com/agenthands/asa/pkg/core/value"
)

func (in *Interpreter) evalArrayLiteral(n *ast.ArrayLiteral) (value.Value, signal, error) {
	elems, sig, err := in.evalArgs(n.Elements)
	if err != nil || sig != flowNormal {
		return value.True, sig, err
	}
	return value.Array(elems), flowNormal, nil
}

func (in *Interpreter) evalIndex(n *ast.IndexAccess) (value.Value, signal, error) {
	obj, sig, err := in.eval(n.Object)
	if err != nil || sig != flowNormal {
		return obj, sig, err
	}
	i, sig, err := in.index(n.Index)
	if err != nil || sig != flowNormal {
		return value.True, sig, err
	}

	switch obj.Type {
	case value.TypeString:
		runes := []rune(obj.Str())
		if i < 0 || i >= len(runes) {
			return value.Value{}, flowNormal, errs.New(errs.IndexOutOfRange, "index %d into string of length %d", i, len(runes))
		}
		return value.String(string(runes[i])), flowNormal, nil
	case value.TypeArray:
		elems := obj.Elems()
		if i < 0 || i >= len(elems) {
			return value.Value{}, flowNormal, errs.New(errs.IndexOutOfRange, "index %d into array of length %d", i, len(elems))
		}
		return elems[i].Clone(), flowNormal, nil
	}
	return value.Value{}, flowNormal, errs.New(errs.TypeMismatch, "cannot index %s", obj.Type)
}

// index evaluates an index expression, which must be a Number.
func (in *Interpreter) index(n ast.Node) (int, signal, error) {
	v, sig, err := in.eval(n)
	if err != nil || sig != flowNormal {
		return 0, sig, err
	}
	if v.Type != value.TypeNumber {
		return 0, flowNormal, in.located(n, errs.New(errs.TypeMismatch, "index must be Number, got %s", v.Type))
	}
	return int(v.Int()), flowNormal, nil
}

func (in *Interpreter) evalProperty(n *ast.PropertyAccess) (value.Value, signal, error) {
	obj, sig, err := in.eval(n.Object)
	if err != nil || sig != flowNormal {
		return obj, sig, err
	}
	prop := n.Property.Name
	if prop == "length" {
		switch obj.Type {
		case value.TypeString:
			return value.Number(int32(len([]rune(obj.Str())))), flowNormal, nil
		case value.TypeArray:
			return value.Number(int32(len(obj.Elems()))), flowNormal, nil
		}
	}
	return value.Value{}, flowNormal, errs.New(errs.UnsupportedOperation, "%s has no property %s", obj.Type, prop)
}

// arity of each array method.
var arrayMethods = map[string]int{
	"push":    1,
	"pop":     0,
	"insert":  2,
	"prepend": 1,
}

// evalMethod mutates a copy of an array bound to a plain identifier and
// writes it back under the same handle in the innermost frame.
func (in *Interpreter) evalMethod(n *ast.MethodCall) (value.Value, signal, error) {
	obj, sig, err := in.eval(n.Object)
	if err != nil || sig != flowNormal {
		return obj, sig, err
	}
	if obj.Type != value.TypeArray {
		return value.Value{}, flowNormal, errs.New(errs.TypeMismatch, "method %s called on %s", n.Name, obj.Type)
	}
	id, ok := unwrap(n.Object).(*ast.Identifier)
	if !ok {
		return value.Value{}, flowNormal, errs.New(errs.UnsupportedOperation, "method %s needs an array variable", n.Name)
	}
	arity, ok := arrayMethods[n.Name]
	if !ok {
		return value.Value{}, flowNormal, errs.New(errs.UnsupportedOperation, "unknown array method %s", n.Name)
	}
	if len(n.Args) != arity {
		return value.Value{}, flowNormal, errs.New(errs.ArgumentCountMismatch,
			"%s expects %d argument(s), got %d", n.Name, arity, len(n.Args))
	}

	var args []value.Value
	var pos int
	if n.Name == "insert" {
		pos, sig, err = in.index(n.Args[0])
		if err != nil || sig != flowNormal {
			return value.True, sig, err
		}
		args, sig, err = in.evalArgs(n.Args[1:])
	} else {
		args, sig, err = in.evalArgs(n.Args)
	}
	if err != nil || sig != flowNormal {
		return value.True, sig, err
	}

	elems := obj.Elems() // obj is already a private copy
	var result value.Value
	switch n.Name {
	case "push":
		elems = append(elems, args[0])
	case "pop":
		if len(elems) == 0 {
			return value.Value{}, flowNormal, errs.New(errs.IndexOutOfRange, "pop on empty array")
		}
		result = elems[len(elems)-1]
		elems = elems[:len(elems)-1]
	case "insert":
		if pos < 0 || pos > len(elems) {
			return value.Value{}, flowNormal, errs.New(errs.IndexOutOfRange, "insert at %d into array of length %d", pos, len(elems))
		}
		elems = slices.Insert(elems, pos, args[0])
	case "prepend":
		elems = slices.Insert(elems, 0, args[0])
	}

	h, err := in.handle(id.Name)
	if err != nil {
		return value.Value{}, flowNormal, err
	}
	updated := value.Array(elems)
	in.bind(h, updated)
	if n.Name == "pop" {
		return result, flowNormal, nil
	}
	return updated.Clone(), flowNormal, nil
}

// assignIndex replaces one element of an array bound to a plain identifier.
func (in *Interpreter) assignIndex(target *ast.IndexAccess, v value.Value) (value.Value, signal, error) {
	id, ok := unwrap(target.Object).(*ast.Identifier)
	if !ok {
		return value.Value{}, flowNormal, errs.New(errs.UnsupportedOperation, "only array variables can be index-assigned")
	}
	i, sig, err := in.index(target.Index)
	if err != nil || sig != flowNormal {
		return value.True, sig, err
	}
	arr, err := in.variable(id.Name)
	if err != nil {
		return value.Value{}, flowNormal, err
	}
	if arr.Type != value.TypeArray {
		return value.Value{}, flowNormal, errs.New(errs.TypeMismatch, "cannot index-assign into %s", arr.Type)
	}
	elems := arr.Elems()
	if i < 0 || i >= len(elems) {
		return value.Value{}, flowNormal, errs.New(errs.IndexOutOfRange, "index %d into array of length %d", i, len(elems))
	}
	elems[i] = v.Clone()

	h, err := in.handle(id.Name)
	if err != nil {
		return value.Value{}, flowNormal, err
	}
	in.bind(h, value.Array(elems))
	return v, flowNormal, nil
}
