package exec

import (
	"context"
	"fmt"

	"github.com/corvid-db/jsonpath/ast"
)

// query is the top-level entry point for every path evaluation. It runs
// node against value, appending results to vals when vals is non-nil.
// Returns statusOK when values were found, statusNotFound when none were,
// and statusFailed on error -- except that a verbose-only error is
// swallowed when exec.verbose is false.
func (exec *Executor) query(ctx context.Context, vals *valueList, node ast.Node, value any) (resultStatus, error) {
	if !exec.strictAbsenceOfErrors() || vals != nil {
		return exec.executeItem(ctx, node, value, vals)
	}

	// Strict mode must scan the complete result set even when the caller
	// only cares about existence, to confirm no item along the way errors.
	scan := newList()
	res, err := exec.executeItem(ctx, node, value, scan)
	if res.failed() {
		return res, err
	}
	if scan.isEmpty() {
		return statusNotFound, nil
	}
	return statusOK, nil
}

// executeItem runs node against value, auto-unwrapping the current item
// when lax mode calls for it.
func (exec *Executor) executeItem(
	ctx context.Context,
	node ast.Node,
	value any,
	found *valueList,
) (resultStatus, error) {
	return exec.executeItemOptUnwrapTarget(ctx, node, value, found, exec.autoUnwrap())
}

// executeItemOptUnwrapResult behaves like executeItem, except that when
// unwrap is true and lax mode is active, each array item in the resulting
// sequence is itself unwrapped one level into found. found must not be nil.
func (exec *Executor) executeItemOptUnwrapResult(
	ctx context.Context,
	node ast.Node,
	value any,
	unwrap bool,
	found *valueList,
) (resultStatus, error) {
	if !unwrap || !exec.autoUnwrap() {
		return exec.executeItem(ctx, node, value, found)
	}

	seq := newList()
	res, err := exec.executeItem(ctx, node, value, seq)
	if res.failed() {
		return res, err
	}

	for _, item := range seq.list {
		if array, ok := item.([]any); ok {
			_, _ = exec.executeItemUnwrapTargetArray(ctx, nil, array, found)
			continue
		}
		found.append(item)
	}
	return statusOK, nil
}

// executeItemOptUnwrapResultSilent is executeItemOptUnwrapResult with
// verbose errors suppressed for the duration of the call.
func (exec *Executor) executeItemOptUnwrapResultSilent(
	ctx context.Context,
	node ast.Node,
	value any,
	unwrap bool,
	found *valueList,
) (resultStatus, error) {
	restore := exec.verbose
	exec.verbose = false
	defer func() { exec.verbose = restore }()
	return exec.executeItemOptUnwrapResult(ctx, node, value, unwrap, found)
}

// checkInterrupt returns a wrapped context error if ctx has been canceled or
// timed out, and nil otherwise.
func checkInterrupt(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrExecution, ctx.Err())
	default:
		return nil
	}
}

// maxRecursionDepth bounds the walker's recursion. Both path items and
// recursive descent into nested containers count against it, so deeply
// nested documents fail fast instead of exhausting the stack.
const maxRecursionDepth = 1024

// enterRecursion increments the recursion depth, returning an error when it
// exceeds maxRecursionDepth. Callers must defer exitRecursion on success.
func (exec *Executor) enterRecursion() error {
	if exec.depth >= maxRecursionDepth {
		return fmt.Errorf("%w: stack depth limit exceeded", ErrExecution)
	}
	exec.depth++
	return nil
}

// exitRecursion decrements the recursion depth.
func (exec *Executor) exitRecursion() { exec.depth-- }

// executeItemOptUnwrapTarget is the central dispatcher: it walks the
// jsonpath AST node by node against value, routing each node type to its
// handler. When unwrap is true, an array current item is unwrapped first.
func (exec *Executor) executeItemOptUnwrapTarget(
	ctx context.Context,
	node ast.Node,
	value any,
	found *valueList,
	unwrap bool,
) (resultStatus, error) {
	if err := checkInterrupt(ctx); err != nil {
		return statusFailed, err
	}
	if err := exec.enterRecursion(); err != nil {
		return statusFailed, err
	}
	defer exec.exitRecursion()

	switch node := node.(type) {
	case *ast.ConstNode:
		return exec.execConstNode(ctx, node, value, found, unwrap)
	case *ast.StringNode:
		return exec.execLiteral(ctx, node, node.Text(), found)
	case *ast.IntegerNode:
		return exec.execLiteral(ctx, node, node.Int(), found)
	case *ast.NumericNode:
		return exec.execLiteral(ctx, node, node.Float(), found)
	case *ast.VariableNode:
		return exec.execVariable(ctx, node, found)
	case *ast.KeyNode:
		return exec.execKeyNode(ctx, node, value, found, unwrap)
	case *ast.BinaryNode:
		return exec.execBinaryNode(ctx, node, value, found, unwrap)
	case *ast.UnaryNode:
		return exec.execUnaryNode(ctx, node, value, found, unwrap)
	case *ast.RegexNode:
		return exec.execRegexNode(ctx, node, value, found)
	case *ast.MethodNode:
		return exec.execMethodNode(ctx, node, value, found, unwrap)
	case *ast.AnyNode:
		return exec.execAnyNode(ctx, node, value, found)
	case *ast.ArrayIndexNode:
		return exec.execArrayIndex(ctx, node, value, found)
	default:
		return statusFailed, fmt.Errorf("%w: Unknown node type %T", ErrInvalid, node)
	}
}

// executeNextItem runs the node following cur, if any, against value.
// Otherwise, when found is non-nil, it appends value as a final result.
func (exec *Executor) executeNextItem(
	ctx context.Context,
	cur, next ast.Node,
	value any,
	found *valueList,
) (resultStatus, error) {
	var hasNext bool
	switch {
	case cur == nil:
		hasNext = next != nil
	case next != nil:
		hasNext = cur.Next() != nil
	default:
		next = cur.Next()
		hasNext = next != nil
	}

	if hasNext {
		return exec.executeItem(ctx, next, value, found)
	}

	if found != nil {
		found.append(value)
	}

	return statusOK, nil
}
