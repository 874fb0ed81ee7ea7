package exec

import (
	"context"
	"fmt"

	"github.com/corvid-db/jsonpath/ast"
	"golang.org/x/exp/maps" // Switch to maps when go 1.22 dropped
)

// execConstNode evaluates one of the fixed jsonpath constants (null/true/
// false, $, @, *, [*], last) against value.
func (exec *Executor) execConstNode(
	ctx context.Context,
	node *ast.ConstNode,
	value any,
	found *valueList,
	unwrap bool,
) (resultStatus, error) {
	switch node.Const() {
	case ast.ConstNull, ast.ConstTrue, ast.ConstFalse:
		return exec.execLiteralConst(ctx, node, found)
	case ast.ConstRoot:
		defer exec.setTempBaseObject(0)()
		return exec.executeNextItem(ctx, node, nil, exec.root, found)
	case ast.ConstCurrent:
		return exec.executeNextItem(ctx, node, nil, exec.current, found)
	case ast.ConstAnyKey:
		return exec.execAnyKey(ctx, node, value, found, unwrap)
	case ast.ConstAnyArray:
		return exec.execAnyArray(ctx, node, value, found)
	case ast.ConstLast:
		return exec.execLastConst(ctx, node, found)
	default:
		// Reachable only if a new ast.Constant value is added without a
		// matching case above.
		return statusFailed, fmt.Errorf("%w: Unknown ConstNode %v", ErrInvalid, node.Const())
	}
}

// execLiteralConst evaluates a null, true, or false literal.
func (exec *Executor) execLiteralConst(
	ctx context.Context,
	node *ast.ConstNode,
	found *valueList,
) (resultStatus, error) {
	next := node.Next()
	if next == nil && found == nil {
		return statusOK, nil
	}

	var v any
	if node.Const() != ast.ConstNull {
		v = node.Const() == ast.ConstTrue
	}

	return exec.executeNextItem(ctx, node, next, v, found)
}

// execAnyKey evaluates the .* wildcard member accessor: an object's values
// are scanned via executeAnyItem; an array is unwrapped first when unwrap is
// set. Anything else is a structural error unless suppressed.
func (exec *Executor) execAnyKey(
	ctx context.Context,
	node *ast.ConstNode,
	value any,
	found *valueList,
	unwrap bool,
) (resultStatus, error) {
	switch v := value.(type) {
	case map[string]any:
		return exec.executeAnyItem(
			ctx, node.Next(), maps.Values(v), found,
			1, 1, 1, false, exec.autoUnwrap(),
		)
	case []any:
		if unwrap {
			return exec.executeItemUnwrapTargetArray(ctx, node, value, found)
		}
	}

	if !exec.ignoreStructuralErrors {
		return exec.returnVerboseError(fmt.Errorf(
			"%w: jsonpath wildcard member accessor can only be applied to an object",
			ErrVerbose,
		))
	}

	return statusNotFound, nil
}

// execAnyArray evaluates the [*] wildcard array accessor. A non-array value
// is auto-wrapped in lax mode; otherwise it's a structural error unless
// suppressed.
func (exec *Executor) execAnyArray(
	ctx context.Context,
	node *ast.ConstNode,
	value any,
	found *valueList,
) (resultStatus, error) {
	if array, ok := value.([]any); ok {
		return exec.executeAnyItem(ctx, node.Next(), array, found, 1, 1, 1, false, exec.autoUnwrap())
	}

	if exec.autoWrap() {
		return exec.executeNextItem(ctx, node, nil, value, found)
	}

	if !exec.ignoreStructuralErrors {
		return exec.returnVerboseError(fmt.Errorf(
			"%w: jsonpath wildcard array accessor can only be applied to an array",
			ErrVerbose,
		))
	}

	return statusNotFound, nil
}

// execLastConst evaluates the LAST keyword, valid only while scanning an
// array subscript.
func (exec *Executor) execLastConst(
	ctx context.Context,
	node *ast.ConstNode,
	found *valueList,
) (resultStatus, error) {
	if exec.innermostArraySize < 0 {
		return statusFailed, fmt.Errorf(
			"%w: evaluating jsonpath LAST outside of array subscript",
			ErrExecution,
		)
	}

	next := node.Next()
	if next == nil && found == nil {
		return statusOK, nil
	}

	last := int64(exec.innermostArraySize - 1)
	return exec.executeNextItem(ctx, node, next, last, found)
}
