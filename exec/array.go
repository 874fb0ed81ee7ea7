package exec

import (
	"context"
	"fmt"

	"github.com/corvid-db/jsonpath/ast"
)

// clampToArray adjusts [indexFrom, indexTo] so both ends fall within an
// array of arraySize elements, truncating rather than erroring when
// structural errors are suppressed.
func clampToArray(indexFrom, indexTo, arraySize int) (int, int) {
	if indexFrom < 0 {
		indexFrom = 0
	}
	if indexTo >= arraySize {
		indexTo = arraySize - 1
	}
	return indexFrom, indexTo
}

// execSubscript resolves node, an ast.BinarySubscript operator, against
// value and returns the inclusive [from, to] index range it denotes.
func (exec *Executor) execSubscript(
	ctx context.Context,
	node ast.Node,
	value any,
	arraySize int,
) (int, int, error) {
	subscript, ok := node.(*ast.BinaryNode)
	if !ok || subscript.Operator() != ast.BinarySubscript {
		return 0, 0, fmt.Errorf(
			"%w: jsonpath array subscript is not a single numeric value",
			ErrExecution,
		)
	}

	indexFrom, err := exec.getArrayIndex(ctx, subscript.Left(), value)
	if err != nil {
		return 0, 0, err
	}

	indexTo := indexFrom
	if right := subscript.Right(); right != nil {
		if indexTo, err = exec.getArrayIndex(ctx, right, value); err != nil {
			return 0, 0, err
		}
	}

	if !exec.ignoreStructuralErrors && (indexFrom < 0 || indexFrom > indexTo || indexTo >= arraySize) {
		return 0, 0, fmt.Errorf("%w: jsonpath array subscript is out of bounds", ErrVerbose)
	}

	indexFrom, indexTo = clampToArray(indexFrom, indexTo, arraySize)
	return indexFrom, indexTo, nil
}

// execArrayIndex selects the elements of value named by node's subscripts
// and feeds each to the rest of the path. value must already be an array
// ([]any) unless exec.autoWrap reports that a lax path may wrap a scalar
// into a one-element array first.
func (exec *Executor) execArrayIndex(
	ctx context.Context,
	node *ast.ArrayIndexNode,
	value any,
	found *valueList,
) (resultStatus, error) {
	array, ok := value.([]any)
	if !ok {
		if !exec.autoWrap() {
			return exec.returnVerboseError(fmt.Errorf(
				"%w: jsonpath array accessor can only be applied to an array",
				ErrVerbose,
			))
		}
		array = []any{value}
	}

	size := len(array)
	next := node.Next()

	restoreSize := exec.innermostArraySize
	exec.innermostArraySize = size // visible to LAST while scanning this array
	defer func() { exec.innermostArraySize = restoreSize }()

	res := statusNotFound
	var resErr error

	for _, subscript := range node.Subscripts() {
		indexFrom, indexTo, err := exec.execSubscript(ctx, subscript, value, size)
		if err != nil {
			return exec.returnError(err)
		}

		for index := indexFrom; index <= indexTo; index++ {
			elem := array[index]
			if elem == nil {
				continue
			}

			if next == nil && found == nil {
				return statusOK, nil
			}

			res, resErr = exec.executeNextItem(ctx, node, next, elem, found)
			if res.failed() || (res == statusOK && found == nil) {
				break
			}
		}
	}

	return res, resErr
}

// executeItemUnwrapTargetArray unwraps value, which must be a JSON array,
// and runs node against each of its elements.
func (exec *Executor) executeItemUnwrapTargetArray(
	ctx context.Context,
	node ast.Node,
	value any,
	found *valueList,
) (resultStatus, error) {
	array, ok := value.([]any)
	if !ok {
		return statusFailed, fmt.Errorf("%w: invalid json array value type: %T", ErrInvalid, value)
	}

	return exec.executeAnyItem(ctx, node, array, found, 1, 1, 1, false, false)
}

// getArrayIndex evaluates node as a subscript expression and truncates the
// single numeric result it must produce to an int.
func (exec *Executor) getArrayIndex(
	ctx context.Context,
	node ast.Node,
	value any,
) (int, error) {
	found := newList()
	res, err := exec.executeItem(ctx, node, value, found)
	if res == statusFailed {
		return 0, err
	}

	if len(found.list) != 1 {
		return 0, fmt.Errorf("%w: jsonpath array subscript is not a single numeric value", ErrVerbose)
	}

	return getJSONInt32("array subscript", found.list[0])
}
