package interpreter

import (
	"math"

	"github.com/agenthands/asa/pkg/core/errs"
	"github.com/agenthands/asa/pkg/core/value"
)

// fit narrows an exact int64 result to a Number.
func fit(n int64) (value.Value, error) {
	switch {
	case n > math.MaxInt32:
		return value.Value{}, errs.New(errs.NumberOverflow, "%d exceeds %d", n, math.MaxInt32)
	case n < math.MinInt32:
		return value.Value{}, errs.New(errs.NumberUnderflow, "%d is below %d", n, math.MinInt32)
	}
	return value.Number(int32(n)), nil
}

func binary(op string, l, r value.Value) (value.Value, error) {
	switch op {
	case "+":
		if l.Type == value.TypeNumber && r.Type == value.TypeNumber {
			return fit(int64(l.Int()) + int64(r.Int()))
		}
		if l.Type == value.TypeString || r.Type == value.TypeString {
			return value.String(l.Format() + r.Format()), nil
		}
		return value.Value{}, mismatch(op, l, r)
	case "==":
		return value.Bool(value.Equal(l, r)), nil
	case "!=":
		return value.Bool(!value.Equal(l, r)), nil
	case "&&", "||":
		if l.Type != value.TypeBool || r.Type != value.TypeBool {
			return value.Value{}, mismatch(op, l, r)
		}
		if op == "&&" {
			return value.Bool(l.Truth() && r.Truth()), nil
		}
		return value.Bool(l.Truth() || r.Truth()), nil
	}

	if l.Type != value.TypeNumber || r.Type != value.TypeNumber {
		return value.Value{}, mismatch(op, l, r)
	}
	a, b := int64(l.Int()), int64(r.Int())

	switch op {
	case "-":
		return fit(a - b)
	case "*":
		return fit(a * b)
	case "/":
		if b == 0 {
			return value.Value{}, errs.New(errs.DivisionOrModuloByZero, "division by zero")
		}
		return fit(a / b)
	case "%":
		if b == 0 {
			return value.Value{}, errs.New(errs.DivisionOrModuloByZero, "modulo by zero")
		}
		return fit(a % b)
	case "^":
		return power(a, b)
	case "<":
		return value.Bool(a < b), nil
	case ">":
		return value.Bool(a > b), nil
	case "<=":
		return value.Bool(a <= b), nil
	case ">=":
		return value.Bool(a >= b), nil
	}
	return value.Value{}, errs.New(errs.UnsupportedOperation, "unknown operator %q", op)
}

// power raises base to a non-negative exponent by repeated squaring,
// failing as soon as an intermediate leaves the int32 range.
func power(base, exp int64) (value.Value, error) {
	if exp < 0 {
		return value.Value{}, errs.New(errs.UnsupportedOperation, "negative exponent %d", exp)
	}
	result := int64(1)
	for b, e := base, exp; e > 0; e >>= 1 {
		if e&1 == 1 {
			result *= b
			if result > math.MaxInt32 || result < math.MinInt32 {
				return fit(result)
			}
		}
		if e > 1 {
			b *= b
			if b > math.MaxInt32 {
				// Every remaining factor is at least b, so the sign of the
				// final product decides the kind.
				if base < 0 && exp%2 == 1 {
					return value.Value{}, errs.New(errs.NumberUnderflow, "%d^%d is below %d", base, exp, math.MinInt32)
				}
				return value.Value{}, errs.New(errs.NumberOverflow, "%d^%d exceeds %d", base, exp, math.MaxInt32)
			}
		}
	}
	return fit(result)
}

func unary(op string, v value.Value) (value.Value, error) {
	switch {
	case op == "+" && v.Type == value.TypeNumber:
		return v, nil
	case op == "-" && v.Type == value.TypeNumber:
		return fit(-int64(v.Int()))
	case op == "!" && v.Type == value.TypeNumber:
		return value.Number(^v.Int()), nil
	case op == "!" && v.Type == value.TypeBool:
		return value.Bool(!v.Truth()), nil
	}
	return value.Value{}, errs.New(errs.TypeMismatch, "cannot apply %q to %s", op, v.Type)
}

func mismatch(op string, l, r value.Value) error {
	return errs.New(errs.TypeMismatch, "cannot apply %q to %s and %s", op, l.Type, r.Type)
}
