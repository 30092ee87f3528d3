package interpreter

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/agenthands/asa/pkg/compiler/ast"
	"github.com/agenthands/asa/pkg/core/errs"
	"github.com/agenthands/asa/pkg/core/value"
)

// signal is the control-flow outcome of evaluating a node.
type signal uint8

const (
	flowNormal signal = iota
	flowBreak
	flowContinue
	flowReturn
)

// Exec evaluates node and returns its value. A return reaching the top ends
// the program with the returned value; a break or continue reaching the top
// is an UnsupportedOperation failure.
func (in *Interpreter) Exec(node ast.Node) (value.Value, error) {
	in.steps = 0
	in.log.Debug("exec start", slog.Int("stack-size", len(in.stack)))

	v, sig, err := in.eval(node)
	if err != nil {
		in.log.Debug("exec failed", slog.Int("steps", in.steps), slog.Any("error", err))
		return value.Value{}, err
	}
	if sig == flowBreak || sig == flowContinue {
		return value.Value{}, in.strayJump(sig)
	}
	in.log.Debug("exec finished", slog.Int("steps", in.steps))
	return v, nil
}

func (in *Interpreter) strayJump(sig signal) error {
	what := "break"
	if sig == flowContinue {
		what = "continue"
	}
	return errs.New(errs.UnsupportedOperation, "%s outside of a loop", what).
		At(in.jump.StartLine, in.jump.StartCol)
}

// eval evaluates n and stamps n's position on failures raised below it that
// carry no position yet.
func (in *Interpreter) eval(n ast.Node) (value.Value, signal, error) {
	if in.maxSteps > 0 {
		in.steps++
		if in.steps > in.maxSteps {
			return value.Value{}, flowNormal, in.located(n, errs.New(errs.StepLimitExceeded, "more than %d steps", in.maxSteps))
		}
	}
	v, sig, err := in.evalNode(n)
	if err != nil {
		return value.Value{}, flowNormal, in.located(n, err)
	}
	return v, sig, nil
}

func (in *Interpreter) located(n ast.Node, err error) error {
	var e *errs.Error
	if n != nil && errors.As(err, &e) {
		tok := n.Pos()
		e.At(tok.StartLine, tok.StartCol)
	}
	return err
}

func (in *Interpreter) evalNode(n ast.Node) (value.Value, signal, error) {
	switch n := n.(type) {
	case *ast.Program:
		return in.evalProgram(n)
	case *ast.Block:
		return in.evalSequence(n.Children)
	case *ast.Statement:
		return in.evalSequence(n.Children)
	case *ast.FunctionStatements:
		return in.evalSequence(n.Children)
	case *ast.Expression:
		return in.eval(n.Child)

	case *ast.Number:
		i, err := strconv.ParseInt(n.Digits, 10, 32)
		if err != nil {
			return value.Value{}, flowNormal, errs.New(errs.NumberOverflow, "%s does not fit in a 32-bit integer", n.Digits)
		}
		return value.Number(int32(i)), flowNormal, nil
	case *ast.String:
		return value.String(n.Value), flowNormal, nil
	case *ast.Bool:
		return value.Bool(n.Value), flowNormal, nil
	case *ast.Null:
		return value.True, flowNormal, nil
	case *ast.Identifier:
		v, err := in.variable(n.Name)
		return v, flowNormal, err

	case *ast.VariableDefine:
		return in.evalDefine(n)
	case *ast.Assignment:
		return in.evalAssignment(n)
	case *ast.UnaryExpression:
		operand, sig, err := in.eval(n.Operand)
		if err != nil || sig != flowNormal {
			return operand, sig, err
		}
		v, err := unary(n.Op, operand)
		return v, flowNormal, err
	case *ast.BinaryExpression:
		return in.evalBinary(n)
	case *ast.IfExpression:
		return in.evalIf(n)
	case *ast.WhileLoop:
		return in.evalWhile(n)

	case *ast.FunctionDefine:
		return in.evalFunctionDefine(n)
	case *ast.FunctionCall:
		return in.evalCall(n)
	case *ast.FunctionReturn:
		v, sig, err := in.eval(n.Value)
		if err != nil || sig != flowNormal {
			return v, sig, err
		}
		return v, flowReturn, nil
	case *ast.Break:
		in.jump = n.Token
		return value.True, flowBreak, nil
	case *ast.Continue:
		in.jump = n.Token
		return value.True, flowContinue, nil

	case *ast.ArrayLiteral:
		return in.evalArrayLiteral(n)
	case *ast.IndexAccess:
		return in.evalIndex(n)
	case *ast.PropertyAccess:
		return in.evalProperty(n)
	case *ast.MethodCall:
		return in.evalMethod(n)

	case *ast.FunctionArguments, *ast.ArgumentDefine:
		return value.Value{}, flowNormal, errs.New(errs.UnsupportedOperation, "%T cannot be evaluated on its own", n)
	case nil:
		return value.Value{}, flowNormal, errs.New(errs.UnsupportedOperation, "missing node")
	}
	return value.Value{}, flowNormal, errs.New(errs.UnsupportedOperation, "unknown node %T", n)
}

// evalProgram runs top-level nodes in order. A return ends the program.
func (in *Interpreter) evalProgram(n *ast.Program) (value.Value, signal, error) {
	last := value.True
	for _, child := range n.Children {
		v, sig, err := in.eval(child)
		if err != nil {
			return value.Value{}, flowNormal, err
		}
		switch sig {
		case flowReturn:
			return v, flowNormal, nil
		case flowBreak, flowContinue:
			return value.Value{}, flowNormal, in.strayJump(sig)
		}
		last = v
	}
	return last, flowNormal, nil
}

// evalSequence yields the last child's value, or stops at the first
// non-normal signal.
func (in *Interpreter) evalSequence(children []ast.Node) (value.Value, signal, error) {
	last := value.True
	for _, child := range children {
		v, sig, err := in.eval(child)
		if err != nil || sig != flowNormal {
			return v, sig, err
		}
		last = v
	}
	return last, flowNormal, nil
}

func (in *Interpreter) variable(name string) (value.Value, error) {
	h, err := in.handle(name)
	if err != nil {
		return value.Value{}, err
	}
	v, ok := in.lookup(h)
	if !ok {
		return value.Value{}, errs.New(errs.UndefinedVariableOrFunction, "%s", name)
	}
	return v.Clone(), nil
}

func (in *Interpreter) evalDefine(n *ast.VariableDefine) (value.Value, signal, error) {
	v, sig, err := in.eval(n.Value)
	if err != nil || sig != flowNormal {
		return v, sig, err
	}
	h, err := in.handle(n.Name.Name)
	if err != nil {
		return value.Value{}, flowNormal, err
	}
	in.bind(h, v)
	return v, flowNormal, nil
}

func (in *Interpreter) evalAssignment(n *ast.Assignment) (value.Value, signal, error) {
	v, sig, err := in.eval(n.Value)
	if err != nil || sig != flowNormal {
		return v, sig, err
	}

	switch target := unwrap(n.Target).(type) {
	case *ast.Identifier:
		h, err := in.handle(target.Name)
		if err != nil {
			return value.Value{}, flowNormal, err
		}
		in.bind(h, v)
		return v, flowNormal, nil
	case *ast.IndexAccess:
		return in.assignIndex(target, v)
	case *ast.PropertyAccess:
		return value.Value{}, flowNormal, errs.New(errs.UnsupportedOperation, "properties cannot be assigned")
	}
	return value.Value{}, flowNormal, errs.New(errs.UnsupportedOperation, "invalid assignment target")
}

func (in *Interpreter) evalBinary(n *ast.BinaryExpression) (value.Value, signal, error) {
	left, sig, err := in.eval(n.Left)
	if err != nil || sig != flowNormal {
		return left, sig, err
	}
	right, sig, err := in.eval(n.Right)
	if err != nil || sig != flowNormal {
		return right, sig, err
	}
	v, err := binary(n.Op, left, right)
	return v, flowNormal, err
}

// evalIf runs the block of the first true condition, then the else block,
// and yields Bool(true) when nothing ran.
func (in *Interpreter) evalIf(n *ast.IfExpression) (value.Value, signal, error) {
	children := n.Children
	for i := 0; i+1 < len(children); i += 2 {
		ok, sig, err := in.condition(children[i])
		if err != nil || sig != flowNormal {
			return value.True, sig, err
		}
		if ok {
			return in.eval(children[i+1])
		}
	}
	if len(children)%2 == 1 {
		return in.eval(children[len(children)-1])
	}
	return value.True, flowNormal, nil
}

func (in *Interpreter) evalWhile(n *ast.WhileLoop) (value.Value, signal, error) {
	for {
		ok, sig, err := in.condition(n.Cond)
		if err != nil || sig != flowNormal {
			return value.True, sig, err
		}
		if !ok {
			return value.True, flowNormal, nil
		}

		v, sig, err := in.eval(n.Body)
		if err != nil {
			return value.Value{}, flowNormal, err
		}
		switch sig {
		case flowBreak:
			return value.True, flowNormal, nil
		case flowReturn:
			return v, flowReturn, nil
		}
	}
}

func (in *Interpreter) condition(n ast.Node) (bool, signal, error) {
	c, sig, err := in.eval(n)
	if err != nil || sig != flowNormal {
		return false, sig, err
	}
	if c.Type != value.TypeBool {
		return false, flowNormal, in.located(n, errs.New(errs.TypeMismatch, "condition must be Bool, got %s", c.Type))
	}
	return c.Truth(), flowNormal, nil
}

// unwrap strips Expression wrappers.
func unwrap(n ast.Node) ast.Node {
	for {
		e, ok := n.(*ast.Expression)
		if !ok {
			return n
		}
		n = e.Child
	}
}
