package exec

import (
	"context"
	"fmt"

	"github.com/corvid-db/jsonpath/ast"
)

// invalidBoolOperator builds the standard "unsupported boolean operator"
// error, shared by the binary and unary dispatchers below.
func invalidBoolOperator(op any) error {
	return fmt.Errorf("%w: invalid jsonpath boolean operator %v", ErrInvalid, op)
}

// executeBinaryBoolItem evaluates a binary boolean node against value.
func (exec *Executor) executeBinaryBoolItem(
	ctx context.Context,
	node *ast.BinaryNode,
	value any,
) (predOutcome, error) {
	switch node.Operator() {
	case ast.BinaryAnd:
		return exec.evalKleeneAnd(ctx, node, value)
	case ast.BinaryOr:
		return exec.evalKleeneOr(ctx, node, value)
	case ast.BinaryEqual, ast.BinaryNotEqual, ast.BinaryLess,
		ast.BinaryGreater, ast.BinaryLessOrEqual, ast.BinaryGreaterOrEqual:
		return exec.executePredicate(ctx, node, node.Left(), node.Right(), value, true, exec.compareItems)
	case ast.BinaryStartsWith:
		return exec.executePredicate(ctx, node, node.Left(), node.Right(), value, false, executeStartsWith)
	default:
		return predFalse, invalidBoolOperator(node.Operator())
	}
}

// evalKleeneAnd implements three-valued AND. A false left operand settles the
// result without evaluating the right operand, in strict mode as in lax mode.
// An error raised by the left operand is returned in preference to the right
// operand's result.
func (exec *Executor) evalKleeneAnd(ctx context.Context, node *ast.BinaryNode, value any) (predOutcome, error) {
	left, lErr := exec.executeBoolItem(ctx, node.Left(), value, false)
	if left == predFalse {
		return left, lErr
	}

	right, rErr := exec.executeBoolItem(ctx, node.Right(), value, false)
	if right == predTrue || lErr != nil {
		return left, lErr
	}
	return right, rErr
}

// evalKleeneOr implements three-valued OR, mirroring evalKleeneAnd.
func (exec *Executor) evalKleeneOr(ctx context.Context, node *ast.BinaryNode, value any) (predOutcome, error) {
	left, lErr := exec.executeBoolItem(ctx, node.Left(), value, false)
	if left == predTrue {
		return left, lErr
	}

	right, rErr := exec.executeBoolItem(ctx, node.Right(), value, false)
	if right == predFalse || lErr != nil {
		return left, lErr
	}
	return right, rErr
}

// executeUnaryBoolItem evaluates node, an ast.UnaryNot, ast.UnaryIsUnknown,
// or ast.UnaryExists operator, against value.
func (exec *Executor) executeUnaryBoolItem(
	ctx context.Context,
	node *ast.UnaryNode,
	value any,
) (predOutcome, error) {
	switch node.Operator() {
	case ast.UnaryNot:
		return exec.evalNot(ctx, node, value)
	case ast.UnaryIsUnknown:
		res, _ := exec.executeBoolItem(ctx, node.Operand(), value, false)
		return predFrom(res == predUnknown), nil
	case ast.UnaryExists:
		return exec.evalExists(ctx, node, value)
	default:
		return predFalse, invalidBoolOperator(node.Operator())
	}
}

// evalNot negates the operand's outcome, passing predUnknown through
// unchanged since the negation of unknown is still unknown.
func (exec *Executor) evalNot(ctx context.Context, node *ast.UnaryNode, value any) (predOutcome, error) {
	res, err := exec.executeBoolItem(ctx, node.Operand(), value, false)
	switch res {
	case predUnknown:
		return res, err
	case predTrue:
		return predFalse, nil
	case predFalse:
		return predTrue, nil
	default:
		return predFalse, invalidBoolOperator(node.Operator())
	}
}

// evalExists reports whether node's operand resolves to at least one item.
// In strict mode it must first collect the complete result sequence, since
// strict mode requires confirming the absence of errors across every item
// before answering.
func (exec *Executor) evalExists(ctx context.Context, node *ast.UnaryNode, value any) (predOutcome, error) {
	if exec.strictAbsenceOfErrors() {
		vals := newList()
		res, err := exec.executeItemOptUnwrapResultSilent(ctx, node.Operand(), value, false, vals)
		if res == statusFailed {
			return predUnknown, err
		}
		return predFrom(!vals.isEmpty()), nil
	}

	res, err := exec.executeItemOptUnwrapResultSilent(ctx, node.Operand(), value, false, nil)
	if res == statusFailed {
		return predUnknown, err
	}
	return predFrom(res == statusOK), nil
}

// executeBoolItem evaluates node, an ast.BinaryNode, ast.UnaryNode, or
// ast.RegexNode, against value.
func (exec *Executor) executeBoolItem(
	ctx context.Context,
	node ast.Node,
	value any,
	canHaveNext bool,
) (predOutcome, error) {
	if !canHaveNext && node.Next() != nil {
		return predUnknown, fmt.Errorf("%w: boolean jsonpath item cannot have next item", ErrInvalid)
	}

	switch node := node.(type) {
	case *ast.BinaryNode:
		return exec.executeBinaryBoolItem(ctx, node, value)
	case *ast.UnaryNode:
		return exec.executeUnaryBoolItem(ctx, node, value)
	case *ast.RegexNode:
		return exec.executePredicate(ctx, node, node.Operand(), nil, value, false, exec.executeLikeRegex)
	default:
		return predUnknown, fmt.Errorf("%w: invalid boolean jsonpath item type: %v", ErrInvalid, node)
	}
}

// appendBoolResult converts the boolean outcome res into a JSON boolean (or
// null, for predUnknown) and feeds it to the rest of the path.
func (exec *Executor) appendBoolResult(
	ctx context.Context,
	node ast.Node,
	found *valueList,
	res predOutcome,
	err error,
) (resultStatus, error) {
	if err != nil {
		return statusFailed, err
	}

	next := node.Next()
	if next == nil && found == nil {
		return statusOK, nil // singleton boolean result, nothing more to do
	}

	var value any
	if res != predUnknown {
		value = res == predTrue
	}

	return exec.executeNextItem(ctx, node, next, value, found)
}

// executeNestedBoolItem evaluates a nested boolean expression (a filter
// predicate, for instance) with value pushed on as the current item.
func (exec *Executor) executeNestedBoolItem(
	ctx context.Context,
	node ast.Node,
	value any,
) (predOutcome, error) {
	prev := exec.current
	defer func() { exec.current = prev }()
	exec.current = value
	return exec.executeBoolItem(ctx, node, value, false)
}
