package exec

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/corvid-db/jsonpath/ast"
)

// executeIntegerMath applies op to the integer operands lhs and rhs. op
// must be a binary math operator. Returns an error on division by zero.
func executeIntegerMath(lhs, rhs int64, op ast.BinaryOperator) (int64, error) {
	switch op {
	case ast.BinaryAdd:
		return lhs + rhs, nil
	case ast.BinarySub:
		return lhs - rhs, nil
	case ast.BinaryMul:
		return lhs * rhs, nil
	case ast.BinaryDiv:
		if rhs == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrVerbose)
		}
		return lhs / rhs, nil
	case ast.BinaryMod:
		if rhs == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrVerbose)
		}
		return lhs % rhs, nil
	default:
		return 0, fmt.Errorf("%w: %v is not a binary math operator", ErrInvalid, op)
	}
}

// executeFloatMath applies op to the floating-point operands lhs and rhs.
// op must be a binary math operator. Returns an error on division by zero.
func executeFloatMath(lhs, rhs float64, op ast.BinaryOperator) (float64, error) {
	switch op {
	case ast.BinaryAdd:
		return lhs + rhs, nil
	case ast.BinarySub:
		return lhs - rhs, nil
	case ast.BinaryMul:
		return lhs * rhs, nil
	case ast.BinaryDiv:
		if rhs == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrVerbose)
		}
		return lhs / rhs, nil
	case ast.BinaryMod:
		if rhs == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrVerbose)
		}
		return math.Mod(lhs, rhs), nil
	default:
		return 0, fmt.Errorf("%w: %v is not a binary math operator", ErrInvalid, op)
	}
}

// mathOperandErr builds the "operand is not a single numeric value" error
// for op. pos names which operand, "left" or "right".
func mathOperandErr(op ast.BinaryOperator, pos string) error {
	return fmt.Errorf(
		"%w: %v operand of jsonpath operator %v is not a single numeric value",
		ErrVerbose, pos, op,
	)
}

// execUnaryMathExpr applies a unary arithmetic expression to each numeric
// item of its operand's sequence. An array operand is auto-unwrapped in lax
// mode.
func (exec *Executor) execUnaryMathExpr(
	ctx context.Context,
	node *ast.UnaryNode,
	value any,
	asInt intCallback,
	asFloat floatCallback,
	found *valueList,
) (resultStatus, error) {
	seq := newList()
	res, err := exec.executeItemOptUnwrapResult(ctx, node.Operand(), value, true, seq)
	if res == statusFailed {
		return res, err
	}

	res = statusNotFound
	next := node.Next()
	existenceOnly := found == nil && next == nil

	for _, item := range seq.list {
		val := item
		ok := true

		switch v := item.(type) {
		case int64:
			if existenceOnly {
				return statusOK, nil
			}
			val = asInt(v)
		case float64:
			if existenceOnly {
				return statusOK, nil
			}
			val = asFloat(v)
		case json.Number:
			if existenceOnly {
				return statusOK, nil
			}
			val, ok = castJSONNumber(v, asInt, asFloat)
		default:
			ok = existenceOnly
		}

		if !ok {
			return exec.returnVerboseError(fmt.Errorf(
				"%w: operand of unary jsonpath operator %v is not a numeric value",
				ErrVerbose, node.Operator(),
			))
		}

		nextRes, err := exec.executeNextItem(ctx, node, next, val, found)
		if nextRes.failed() {
			return nextRes, err
		}
		if nextRes == statusOK {
			if found == nil {
				return statusOK, nil
			}
			res = nextRes
		}
	}

	return res, nil
}

// execBinaryMathExpr evaluates a binary arithmetic expression on singleton
// numeric operands, auto-unwrapping array operands in lax mode.
func (exec *Executor) execBinaryMathExpr(
	ctx context.Context,
	node *ast.BinaryNode,
	value any,
	found *valueList,
) (resultStatus, error) {
	op := node.Operator()

	// The standard unwraps only multiplicative operands; this extends that
	// to every binary arithmetic operator.
	lSeq := newList()
	res, err := exec.executeItemOptUnwrapResult(ctx, node.Left(), value, true, lSeq)
	if res == statusFailed {
		return res, err
	}
	if len(lSeq.list) != 1 {
		return exec.returnVerboseError(mathOperandErr(op, "left"))
	}

	rSeq := newList()
	res, err = exec.executeItemOptUnwrapResult(ctx, node.Right(), value, true, rSeq)
	if res == statusFailed {
		return res, err
	}
	if len(rSeq.list) != 1 {
		return exec.returnVerboseError(mathOperandErr(op, "right"))
	}

	val, err := execMathOp(lSeq.list[0], rSeq.list[0], op)
	if err != nil {
		return exec.returnVerboseError(err)
	}

	next := node.Next()
	if next == nil && found == nil {
		return statusOK, nil
	}

	return exec.executeNextItem(ctx, node, next, val, found)
}

// execMathOp coerces left and right to numbers (each an int64, float64, or
// json.Number) and applies op to them, preferring an integer result and
// falling back to floating point when either operand needs it.
func execMathOp(left, right any, op ast.BinaryOperator) (any, error) {
	switch l := left.(type) {
	case int64:
		return execMathOpInt(l, right, op)
	case float64:
		return execMathOpFloat(l, right, op)
	case json.Number:
		if integer, err := l.Int64(); err == nil {
			return execMathOp(integer, right, op)
		}
		if float, err := l.Float64(); err == nil {
			return execMathOp(float, right, op)
		}
	}
	return nil, mathOperandErr(op, "left")
}

func execMathOpInt(left int64, right any, op ast.BinaryOperator) (any, error) {
	switch r := right.(type) {
	case int64:
		return executeIntegerMath(left, r, op)
	case float64:
		return executeFloatMath(float64(left), r, op)
	case json.Number:
		if integer, err := r.Int64(); err == nil {
			return executeIntegerMath(left, integer, op)
		}
		if float, err := r.Float64(); err == nil {
			return executeFloatMath(float64(left), float, op)
		}
		return nil, mathOperandErr(op, "right")
	default:
		return nil, mathOperandErr(op, "right")
	}
}

func execMathOpFloat(left float64, right any, op ast.BinaryOperator) (any, error) {
	switch r := right.(type) {
	case float64:
		return executeFloatMath(left, r, op)
	case int64:
		return executeFloatMath(left, float64(r), op)
	case json.Number:
		if float, err := r.Float64(); err == nil {
			return executeFloatMath(left, float, op)
		}
		return nil, mathOperandErr(op, "right")
	default:
		return nil, mathOperandErr(op, "right")
	}
}
