// Package jsontable implements the SQL/JSON JSON_TABLE tabular driver: it
// turns a row-pattern jsonpath, plus any NESTED/SIBLING sub-patterns, into a
// relational row stream. It composes the jsonpath package's walker
// recursively and owns the join state the standard describes: an OUTER join
// of each nested pattern against its parent row, and a UNION of sibling
// NESTED patterns under the same parent.
package jsontable

import (
	"context"
	"errors"
	"fmt"

	"github.com/corvid-db/jsonpath"
	"github.com/corvid-db/jsonpath/exec"
	"github.com/corvid-db/jsonpath/vars"
)

// ErrPlan wraps plan construction and evaluation errors.
var ErrPlan = errors.New("jsontable")

// Column describes one output column of a JSON_TABLE plan node: either a
// FOR ORDINALITY counter, or a value drawn from evaluating Path (relative to
// the node's current row) and taking the first result.
type Column struct {
	Name          string
	Path          string
	ForOrdinality bool
}

// Spec declaratively describes one plan node: its row-pattern path, its
// columns, and any NESTED sub-patterns. Multiple Nested entries compile to a
// sibling-join (UNION) of path-scans, each re-evaluated against every row
// this node produces.
type Spec struct {
	Path    string
	Columns []Column
	Nested  []*Spec
}

// node is one entry in the runtime plan-state tree mirroring the compiled
// Spec tree. A pathScan node wraps one compiled jsonpath and its row
// sequence; a siblingJoin node concatenates two children, left then right.
type node interface {
	// setDocument re-evaluates this node's row pattern against input,
	// resetting its sequence, iterator, ordinal, and current row (and
	// those of its descendants, since a fresh parent row invalidates any
	// previously primed nested sequence).
	setDocument(ctx context.Context, input any) error

	// fetchRow advances to the next output row. It implements the fetch
	// semantics in full: nested-first OUTER join advance, then pull from
	// this node's own sequence, re-priming any nested child on a new row.
	fetchRow(ctx context.Context) (bool, error)

	// columns returns this node's columns followed by its descendants',
	// in plan order -- the flattened schema of the whole (sub)tree.
	columns() []Column

	// clear resets this node (and its descendants) to the unprimed state,
	// with no current row, without evaluating its jsonpath against
	// anything. Used to invalidate a nested child when its parent gets a
	// fresh document but hasn't yet produced a first row for it to scan.
	clear()

	// values writes this node's (and its descendants') current column
	// values into out, by column name. A node with no current row (either
	// not yet primed, or exhausted) writes nil for each of its own columns.
	values(ctx context.Context, out map[string]any) error
}

// Plan is a compiled, reusable JSON_TABLE row pattern. Build it once with
// [Build] and call [Plan.New] to start a fresh evaluation against a
// document.
type Plan struct {
	spec *Spec
	root func(passing exec.Vars) node
	cols []string
}

// Build compiles spec (and its NESTED descendants) into a reusable Plan,
// parsing every jsonpath expression up front so construction errors surface
// before any document is evaluated. This corresponds to the tabular driver's
// "initialize plan" operation, minus the PASSING variable binding, which
// happens per-evaluation in [Plan.New] since bindings are supplied by the
// caller at query time, not compile time.
func Build(spec *Spec) (*Plan, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: nil spec", ErrPlan)
	}

	ctor, err := compileNode(spec)
	if err != nil {
		return nil, err
	}

	// Build a throwaway instance to discover the flattened column schema;
	// column names don't depend on PASSING bindings.
	sample := ctor(nil)
	cols := make([]string, 0, len(spec.Columns))
	for _, c := range sample.columns() {
		cols = append(cols, c.Name)
	}

	return &Plan{spec: spec, root: ctor, cols: cols}, nil
}

// Columns returns the flattened column names of the plan, root columns
// first, then each NESTED branch's columns in declaration order.
func (p *Plan) Columns() []string {
	return p.cols
}

// New starts a fresh evaluation of the plan, pre-evaluating the PASSING
// clause's variable bindings once for reuse across every row-pattern and
// NESTED sub-pattern in the tree, as the tabular driver's "initialize plan"
// operation requires.
func (p *Plan) New(passing vars.ObjectVars) *Table {
	var v exec.Vars
	if len(passing) > 0 {
		v = passing
	}
	return &Table{plan: p, root: p.root(v)}
}

// Table is one in-progress JSON_TABLE evaluation against a single root
// document. It is not safe for concurrent use; each Table is scoped to one
// top-level evaluation, mirroring the jsonpath package's own execution
// context lifetime.
type Table struct {
	plan *Plan
	root node
}

// Columns returns the flattened column names, root columns first then each
// NESTED branch's, in declaration order.
func (t *Table) Columns() []string {
	return t.plan.cols
}

// SetDocument installs doc as the root document: it runs the root path
// scan's jsonpath against doc, collects its row sequence, and resets the
// iterator, ordinal, and current row (and those of every descendant, which
// have not yet been evaluated against any row of this new sequence).
func (t *Table) SetDocument(ctx context.Context, doc any) error {
	return t.root.setDocument(ctx, doc)
}

// FetchRow advances to the next row, implementing the OUTER join / UNION
// fetch semantics described in [Spec]. It returns false once the plan is
// exhausted for the current document.
func (t *Table) FetchRow(ctx context.Context) (bool, error) {
	return t.root.fetchRow(ctx)
}

// GetValue returns the value of every column for the current row, following
// JSON_TABLE's NULL ON ERROR default: a column whose path fails to resolve
// (absent, or an evaluation error) reads back as nil rather than failing the
// whole row.
func (t *Table) GetValue(ctx context.Context) (map[string]any, error) {
	out := make(map[string]any, len(t.plan.cols))
	for _, name := range t.plan.cols {
		out[name] = nil
	}
	if err := t.root.values(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func compileNode(spec *Spec) (func(exec.Vars) node, error) {
	path, err := jsonpath.Parse(spec.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: compiling row pattern %q: %w", ErrPlan, spec.Path, err)
	}

	colPaths := make([]*jsonpath.Path, len(spec.Columns))
	for i, c := range spec.Columns {
		if c.ForOrdinality {
			continue
		}
		cp, err := jsonpath.Parse(c.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: compiling column %q: %w", ErrPlan, c.Name, err)
		}
		colPaths[i] = cp
	}

	nestedCtor, err := compileNested(spec.Nested)
	if err != nil {
		return nil, err
	}

	return func(v exec.Vars) node {
		var nested node
		if nestedCtor != nil {
			nested = nestedCtor(v)
		}
		return &pathScan{
			path:     path,
			vars:     v,
			cols:     spec.Columns,
			colPaths: colPaths,
			nested:   nested,
		}
	}, nil
}

// compileNested chains zero or more sibling NESTED specs into a single node
// constructor: nil for zero, the lone node for one, and a right-leaning
// siblingJoin chain for more than one, matching the "sibling-join
// concatenates left then right" fetch rule for an arbitrary number of
// sibling patterns.
func compileNested(specs []*Spec) (func(exec.Vars) node, error) {
	if len(specs) == 0 {
		return nil, nil //nolint:nilnil // no NESTED clause is a valid, common case
	}

	ctors := make([]func(exec.Vars) node, len(specs))
	for i, s := range specs {
		ctor, err := compileNode(s)
		if err != nil {
			return nil, err
		}
		ctors[i] = ctor
	}

	return func(v exec.Vars) node {
		n := ctors[len(ctors)-1](v)
		for i := len(ctors) - 2; i >= 0; i-- {
			n = &siblingJoin{left: ctors[i](v), right: n}
		}
		return n
	}, nil
}
