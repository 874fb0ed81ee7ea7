// Package exec provides the routines for SQL/JSON path execution: the
// recursive walker that evaluates a compiled jsonpath program against a JSON
// value, plus the tri-valued comparison kernel, lax/strict unwrapping rules,
// and datetime casting ladder it relies on.
package exec

import (
	"context"
	"errors"
	"fmt"

	"github.com/corvid-db/jsonpath/ast"
)

var (
	// ErrExecution errors denote runtime execution errors.
	ErrExecution = errors.New("exec")

	// ErrVerbose errors are execution errors that can be suppressed by
	// [WithSilent].
	ErrVerbose = fmt.Errorf("%w", ErrExecution)

	// ErrNull errors are returned when the caller would see NULL from Match
	// and Exists.
	ErrNull = errors.New("NULL")

	// ErrInvalid errors denote invalid or unexpected execution. Generally
	// internal-only.
	ErrInvalid = errors.New("exec invalid")
)

// resultStatus represents the result of jsonpath expression evaluation.
type resultStatus uint8

const (
	statusOK resultStatus = iota
	statusNotFound
	statusFailed
)

func (s resultStatus) failed() bool {
	return s == statusFailed
}

// valueList is a list of JSON values with a shortcut for single-value lists.
type valueList struct {
	list []any
}

func newList() *valueList {
	return &valueList{list: make([]any, 0, 1)}
}

func (vl *valueList) isEmpty() bool {
	return len(vl.list) == 0
}

func (vl *valueList) append(val any) {
	vl.list = append(vl.list, val)
}

// Vars is the variable-binding protocol consulted during path execution. It
// is intentionally narrow: a name lookup and a count, so that either a bare
// JSON object or a list of typed SQL/JSON bindings can back it. See the vars
// package for the two standard implementations.
type Vars interface {
	// Lookup returns the value bound to name, and whether it was found.
	Lookup(name string) (any, bool)
	// Len returns the number of bound variables, used to seed the
	// .keyvalue() object-id counter.
	Len() int
}

// kvBaseObject represents the "base object" and its "id" for .keyvalue()
// evaluation. Unlike an implementation that can read byte offsets out of a
// binary container, this one tracks only the id: per-pair uniqueness is
// established positionally (see keyvalue.go).
type kvBaseObject struct {
	id int
}

// Executor represents the context for jsonpath execution.
type Executor struct {
	vars                  Vars         // variables to substitute into jsonpath
	root                  any          // for $ evaluation
	current               any          // for @ evaluation
	baseObject            kvBaseObject // "base object" for .keyvalue() evaluation
	lastGeneratedObjectID int          // "id" counter for .keyvalue() evaluation
	innermostArraySize    int          // for LAST array index evaluation
	depth                 int          // recursion depth, bounded by maxRecursionDepth
	path                  *ast.AST

	// with "true" structural errors such as absence of required json item or
	// unexpected json item type are ignored
	ignoreStructuralErrors bool

	// with "false" all suppressible errors are suppressed
	verbose bool
	useTZ   bool
}

// Option specifies an execution option.
type Option func(*Executor)

// WithVars specifies the variable bindings to use during execution. See the
// vars package for standard implementations of [Vars].
func WithVars(vars Vars) Option { return func(e *Executor) { e.vars = vars } }

// WithTZ allows casting between TZ and non-TZ time and timestamp types.
func WithTZ() Option { return func(e *Executor) { e.useTZ = true } }

// WithSilent suppresses the following errors: missing object field or array
// element, unexpected JSON item type, datetime and numeric errors. This
// behavior emulates the SQL/JSON EMPTY ON ERROR clauses, and is helpful when
// searching JSON document collections of varying structure.
func WithSilent() Option { return func(e *Executor) { e.verbose = false } }

func newExec(path *ast.AST, opt ...Option) *Executor {
	e := &Executor{
		path:                   path,
		innermostArraySize:     -1,
		ignoreStructuralErrors: path.IsLax(),
		lastGeneratedObjectID:  1, // Reserved for IDs from vars
		verbose:                true,
	}

	for _, o := range opt {
		o(e)
	}

	if e.vars != nil {
		e.lastGeneratedObjectID = 1 + e.vars.Len()
	}

	return e
}

// Query returns all JSON items returned by the JSON path for the specified
// JSON value. For SQL-standard JSON path expressions it returns the JSON
// values selected from value. For predicate check expressions it returns the
// result of the predicate check: true, false, or null (a nil item). The
// optional [WithVars] and [WithSilent] Options act the same as for [Exists].
func Query(ctx context.Context, path *ast.AST, value any, opt ...Option) ([]any, error) {
	e := newExec(path, opt...)
	vals, err := e.execute(ctx, value)
	if err != nil {
		return nil, err
	}
	return vals.list, nil
}

// First returns the first JSON item returned by the JSON path for the
// specified JSON value, or nil if there are no results. The parameters are
// the same as for [Query].
func First(ctx context.Context, path *ast.AST, value any, opt ...Option) (any, error) {
	e := newExec(path, opt...)
	vals, err := e.execute(ctx, value)
	if err != nil {
		return nil, err
	}
	if vals.isEmpty() {
		//nolint:nilnil // nil is a valid return value, standing in for JSON null.
		return nil, nil
	}
	return vals.list[0], nil
}

// Exists checks whether the JSON path returns any item for the specified
// JSON value. If the [WithVars] Option is specified its fields provide named
// values to be substituted into the jsonpath expression. If the [WithSilent]
// Option is specified, the function suppresses some errors. If the [WithTZ]
// Option is specified, it allows comparisons of date/time values that
// require timezone-aware conversions.
func Exists(ctx context.Context, path *ast.AST, value any, opt ...Option) (bool, error) {
	e := newExec(path, opt...)

	res, err := e.exists(ctx, value)
	if err != nil {
		return false, err
	}
	if res.failed() {
		return false, ErrNull
	}
	return res == statusOK, nil
}

// Match returns the result of a JSON path predicate check for the specified
// JSON value. (This is useful only with predicate check expressions, since it
// will either fail or return NULL if the path result is not a single boolean
// value.) The optional [WithVars] and [WithSilent] Options act the same as
// for [Exists].
func Match(ctx context.Context, path *ast.AST, value any, opt ...Option) (bool, error) {
	e := newExec(path, opt...)

	vals, err := e.execute(ctx, value)
	if err != nil {
		return false, err
	}

	if len(vals.list) == 1 {
		switch val := vals.list[0].(type) {
		case nil:
			return false, ErrNull
		case bool:
			return val, nil
		}
	}

	if e.verbose {
		return false, fmt.Errorf(
			"%w: single boolean result is expected",
			ErrVerbose,
		)
	}

	return false, ErrNull
}

func (exec *Executor) strictAbsenceOfErrors() bool { return exec.path.IsStrict() }
func (exec *Executor) autoUnwrap() bool            { return exec.path.IsLax() }
func (exec *Executor) autoWrap() bool              { return exec.path.IsLax() }

func (exec *Executor) execute(ctx context.Context, value any) (*valueList, error) {
	exec.root = value
	exec.current = value
	vals := newList()
	_, err := exec.query(ctx, vals, exec.path.Root(), value)
	return vals, err
}

// exists returns statusOK if the path passed to newExec returns at least one
// item for value.
func (exec *Executor) exists(ctx context.Context, value any) (resultStatus, error) {
	exec.root = value
	exec.current = value
	return exec.query(ctx, nil, exec.path.Root(), value)
}

func (exec *Executor) returnVerboseError(err error) (resultStatus, error) {
	if exec.verbose {
		return statusFailed, err
	}
	return statusFailed, nil
}

func (exec *Executor) returnError(err error) (resultStatus, error) {
	if exec.verbose || !errors.Is(err, ErrVerbose) {
		return statusFailed, err
	}
	return statusFailed, nil
}
