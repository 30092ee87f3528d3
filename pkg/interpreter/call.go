package interpreter

import (
	"github.com/agenthands/asa/pkg/compiler/ast"
	"github.com/agenthands/asa/pkg/core/errs"
	"github.com/agenthands/asa/pkg/core/value"
	"github.com/agenthands/asa/pkg/stdlib"
)

// evalFunctionDefine binds a Function in the current frame.
func (in *Interpreter) evalFunctionDefine(n *ast.FunctionDefine) (value.Value, signal, error) {
	fn := &value.Function{Name: n.Name, Body: n.Body}
	for _, child := range n.Args.Children {
		arg, ok := child.(*ast.ArgumentDefine)
		if !ok {
			return value.Value{}, flowNormal, in.located(child, errs.New(errs.UnsupportedOperation, "invalid parameter in %s", n.Name))
		}
		h, err := in.handle(arg.Name.Name)
		if err != nil {
			return value.Value{}, flowNormal, err
		}
		fn.Params = append(fn.Params, value.Param{Handle: h, Name: arg.Name.Name, Default: arg.Default})
	}

	h, err := in.handle(n.Name)
	if err != nil {
		return value.Value{}, flowNormal, err
	}
	in.bind(h, value.Func(fn))
	return value.True, flowNormal, nil
}

func (in *Interpreter) evalCall(n *ast.FunctionCall) (value.Value, signal, error) {
	var argNodes []ast.Node
	if n.Args != nil {
		argNodes = n.Args.Children
	}

	if entry, ok := stdlib.Lookup(n.Name); ok {
		if len(argNodes) != entry.Arity {
			return value.Value{}, flowNormal, errs.New(errs.ArgumentCountMismatch,
				"%s expects %d argument(s), got %d", n.Name, entry.Arity, len(argNodes))
		}
		args, sig, err := in.evalArgs(argNodes)
		if err != nil || sig != flowNormal {
			return value.True, sig, err
		}
		v, err := entry.Fn(in.host, args)
		return v, flowNormal, err
	}

	callee, err := in.variable(n.Name)
	if err != nil {
		return value.Value{}, flowNormal, err
	}
	fn, err := checkCallable(n.Name, callee, len(argNodes))
	if err != nil {
		return value.Value{}, flowNormal, err
	}
	args, sig, err := in.evalArgs(argNodes)
	if err != nil || sig != flowNormal {
		return value.True, sig, err
	}
	return in.invoke(fn, args)
}

// evalArgs evaluates argument expressions once each, left to right, in the
// caller's frame.
func (in *Interpreter) evalArgs(nodes []ast.Node) ([]value.Value, signal, error) {
	args := make([]value.Value, 0, len(nodes))
	for _, a := range nodes {
		v, sig, err := in.eval(a)
		if err != nil || sig != flowNormal {
			return nil, sig, err
		}
		args = append(args, v)
	}
	return args, flowNormal, nil
}

// checkCallable verifies that v is a function accepting argc arguments.
// Parameters past argc must have defaults.
func checkCallable(name string, v value.Value, argc int) (*value.Function, error) {
	fn := v.Function()
	if v.Type != value.TypeFunction || fn == nil {
		return nil, errs.New(errs.TypeMismatch, "%s is a %s, not a function", name, v.Type)
	}
	if argc > len(fn.Params) {
		return nil, errs.New(errs.ArgumentCountMismatch,
			"%s expects at most %d argument(s), got %d", name, len(fn.Params), argc)
	}
	for _, p := range fn.Params[argc:] {
		if p.Default == nil {
			return nil, errs.New(errs.ArgumentCountMismatch, "%s: missing argument %s", name, p.Name)
		}
	}
	return fn, nil
}

// invoke pushes a frame, binds parameters, runs the body and pops the frame
// on every exit path. Defaults run in the new frame after earlier parameters
// are bound. Only a return from the body is caught here; break and continue
// travel on to the caller's nearest loop.
func (in *Interpreter) invoke(fn *value.Function, args []value.Value) (value.Value, signal, error) {
	if len(in.stack)-1 >= in.maxDepth {
		return value.Value{}, flowNormal, errs.New(errs.StackOverflow, "maximum call depth %d exceeded calling %s", in.maxDepth, fn.Name)
	}

	in.pushFrame(fn.Name)
	defer in.popFrame(fn.Name)

	for i, p := range fn.Params {
		if i < len(args) {
			in.bind(p.Handle, args[i])
			continue
		}
		v, sig, err := in.eval(p.Default)
		if err != nil || sig != flowNormal {
			return v, sig, err
		}
		in.bind(p.Handle, v)
	}

	v, sig, err := in.eval(fn.Body)
	if err != nil {
		return value.Value{}, flowNormal, err
	}
	switch sig {
	case flowBreak, flowContinue:
		return value.True, sig, nil
	}
	return v, flowNormal, nil
}

// CallFunction calls the user function bound to name with already evaluated
// arguments. The step budget starts afresh. A break or continue leaving
// the function has no loop to end and fails.
func (in *Interpreter) CallFunction(name string, args ...value.Value) (value.Value, error) {
	in.steps = 0
	callee, err := in.variable(name)
	if err != nil {
		return value.Value{}, err
	}
	fn, err := checkCallable(name, callee, len(args))
	if err != nil {
		return value.Value{}, err
	}
	v, sig, err := in.invoke(fn, args)
	if err != nil {
		return value.Value{}, err
	}
	if sig == flowBreak || sig == flowContinue {
		return value.Value{}, in.strayJump(sig)
	}
	return v, nil
}

// CallMain calls main with no arguments if it is bound to a function that
// can take none. found reports whether such a main exists.
func (in *Interpreter) CallMain() (result value.Value, found bool, err error) {
	v, ok := in.GetVariable("main")
	if !ok || v.Type != value.TypeFunction {
		return value.Value{}, false, nil
	}
	if _, err := checkCallable("main", v, 0); err != nil {
		return value.Value{}, false, nil
	}
	result, err = in.CallFunction("main")
	return result, true, err
}
