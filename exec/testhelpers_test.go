package exec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/corvid-db/jsonpath/ast"
	"github.com/corvid-db/jsonpath/parser"
)

// newTestExecutor builds an Executor directly, bypassing Query/Exists/etc.,
// so individual exec* methods can be exercised in isolation.
func newTestExecutor(path *ast.AST, vars Vars, throwErrors, useTZ bool) *Executor {
	opts := []Option{}
	if vars != nil {
		opts = append(opts, WithVars(vars))
	}
	if !throwErrors {
		opts = append(opts, WithSilent())
	}
	if useTZ {
		opts = append(opts, WithTZ())
	}
	return newExec(path, opts...)
}

// execTestCase is a table-driven fixture for running a jsonpath query
// end-to-end through Query and checking its result and/or error.
type execTestCase struct {
	test  string
	path  string
	vars  Vars
	json  any
	exp   []any
	err   string
	isErr error
	rand  bool
}

func (tc execTestCase) run(t *testing.T) {
	t.Helper()
	a := assert.New(t)
	r := require.New(t)
	ctx := context.Background()

	path, err := parser.Parse(tc.path)
	r.NoError(err)

	var opts []Option
	if tc.vars != nil {
		opts = append(opts, WithVars(tc.vars))
	}

	found, err := Query(ctx, path, tc.json, opts...)
	if tc.err != "" {
		r.EqualError(err, tc.err)
		if tc.isErr != nil {
			r.ErrorIs(err, tc.isErr)
		} else {
			r.ErrorIs(err, ErrExecution)
		}
	} else {
		r.NoError(err)
	}

	if tc.rand {
		a.ElementsMatch(tc.exp, found)
	} else {
		a.Equal(tc.exp, found)
	}
}
