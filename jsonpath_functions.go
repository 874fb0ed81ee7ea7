package jsonpath

import (
	"context"
	"errors"
	"fmt"

	"github.com/corvid-db/jsonpath/exec"
	"github.com/corvid-db/jsonpath/vars"
)

// ErrFunction wraps errors raised by the SQL-standard JSON_EXISTS, JSON_QUERY,
// and JSON_VALUE convenience wrappers.
var ErrFunction = errors.New("jsonpath function")

// QueryArray is like [Path.Query], but returns the results as a single JSON
// array value (a []any, this module's array representation), matching the
// SQL standard's query_array entry point, which hands the caller one
// array-typed SQL/JSON item instead of a cursor of rows. The array is always
// non-nil; an empty result is an empty array.
func (path *Path) QueryArray(ctx context.Context, json any, opt ...exec.Option) ([]any, error) {
	res, err := exec.Query(ctx, path.AST, json, opt...)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = []any{}
	}
	return res, nil
}

// JSONExists implements the SQL-standard JSON_EXISTS function: it parses
// pathStr, binds the named bindings via a [vars.ListVars], and reports
// whether the path matches any item in doc. Recoverable errors are
// suppressed per the silent contract, matching JSON_EXISTS ... ON ERROR
// FALSE, the standard's default.
func JSONExists(ctx context.Context, doc any, pathStr string, bindings ...vars.Binding) (bool, error) {
	p, err := Parse(pathStr)
	if err != nil {
		return false, err
	}

	ok, err := p.Exists(ctx, doc, exec.WithVars(vars.NewListVars(bindings...)), exec.WithSilent())
	if err != nil && !errors.Is(err, exec.ErrNull) {
		return false, fmt.Errorf("%w: %w", ErrFunction, err)
	}
	return ok, nil
}

// JSONQuery implements the SQL-standard JSON_QUERY function: it parses
// pathStr, binds the named bindings, and returns the single resulting
// SQL/JSON item, which per the standard must be an object or array (use
// [JSONValue] for a scalar result). Returns nil and no error if the path
// produces no item. Returns [ErrFunction] wrapping [exec.ErrExecution] if the
// path produces more than one item, or if the single item is a scalar.
func JSONQuery(ctx context.Context, doc any, pathStr string, bindings ...vars.Binding) (any, error) {
	p, err := Parse(pathStr)
	if err != nil {
		return nil, err
	}

	items, err := p.Query(ctx, doc, exec.WithVars(vars.NewListVars(bindings...)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFunction, err)
	}

	results, ok := items.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected query result type %T", ErrFunction, items)
	}

	switch len(results) {
	case 0:
		//nolint:nilnil // nil stands in for SQL NULL, the ON EMPTY default.
		return nil, nil
	case 1:
		switch results[0].(type) {
		case map[string]any, []any:
			return results[0], nil
		default:
			return nil, fmt.Errorf(
				"%w: %w: JSON_QUERY requires an object or array result, got %T",
				ErrFunction, exec.ErrExecution, results[0],
			)
		}
	default:
		return nil, fmt.Errorf(
			"%w: %w: JSON_QUERY requires a singleton result, got %d items",
			ErrFunction, exec.ErrExecution, len(results),
		)
	}
}

// JSONValue implements the SQL-standard JSON_VALUE function: it parses
// pathStr, binds the named bindings, and returns the single resulting
// SQL/JSON scalar. Returns [ErrFunction] wrapping [exec.ErrExecution] if the
// path produces more than one item, or if the single item is an object or
// array.
func JSONValue(ctx context.Context, doc any, pathStr string, bindings ...vars.Binding) (any, error) {
	p, err := Parse(pathStr)
	if err != nil {
		return nil, err
	}

	items, err := p.Query(ctx, doc, exec.WithVars(vars.NewListVars(bindings...)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFunction, err)
	}

	results, ok := items.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected query result type %T", ErrFunction, items)
	}

	switch len(results) {
	case 0:
		//nolint:nilnil // nil stands in for SQL NULL, the ON EMPTY default.
		return nil, nil
	case 1:
		switch results[0].(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf(
				"%w: %w: JSON_VALUE requires a scalar result, got %T",
				ErrFunction, exec.ErrExecution, results[0],
			)
		default:
			return results[0], nil
		}
	default:
		return nil, fmt.Errorf(
			"%w: %w: JSON_VALUE requires a singleton result, got %d items",
			ErrFunction, exec.ErrExecution, len(results),
		)
	}
}
