package jsontable

import (
	"context"

	"github.com/corvid-db/jsonpath"
	"github.com/corvid-db/jsonpath/exec"
)

// pathScan is a leaf or interior plan node: a compiled row-pattern jsonpath,
// its columns, and an optional NESTED child re-evaluated against each row it
// produces.
type pathScan struct {
	path     *jsonpath.Path
	vars     exec.Vars
	cols     []Column
	colPaths []*jsonpath.Path
	nested   node

	rows        []any
	idx         int
	ordinal     int
	current     any
	haveCurrent bool
}

func (n *pathScan) opts() []exec.Option {
	if n.vars == nil {
		return []exec.Option{exec.WithSilent()}
	}
	return []exec.Option{exec.WithVars(n.vars), exec.WithSilent()}
}

func (n *pathScan) setDocument(ctx context.Context, input any) error {
	res, err := n.path.Query(ctx, input, n.opts()...)
	if err != nil {
		return err
	}

	rows, _ := res.([]any)
	n.rows = rows
	n.idx = 0
	n.ordinal = 0
	n.current = nil
	n.haveCurrent = false

	if n.nested != nil {
		// The nested child has nothing to scan until this node produces its
		// first row; clear it so stale state from a prior document can't
		// leak into a row it was never primed against.
		n.nested.clear()
	}

	return nil
}

func (n *pathScan) clear() {
	n.rows = nil
	n.idx = 0
	n.ordinal = 0
	n.current = nil
	n.haveCurrent = false
	if n.nested != nil {
		n.nested.clear()
	}
}

// fetchRow implements the fetch semantics exactly as specified: try to
// advance a primed nested child first (the OUTER join step), and only pull a
// new row from this node's own sequence once the nested child is exhausted
// (or there is none).
func (n *pathScan) fetchRow(ctx context.Context) (bool, error) {
	if n.haveCurrent && n.nested != nil {
		ok, err := n.nested.fetchRow(ctx)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}

	if n.idx >= len(n.rows) {
		n.current = nil
		n.haveCurrent = false
		return false, nil
	}

	n.current = n.rows[n.idx]
	n.idx++
	n.ordinal++
	n.haveCurrent = true

	if n.nested != nil {
		if err := n.nested.setDocument(ctx, n.current); err != nil {
			return false, err
		}
		// Prime the nested child with its first row, if any; an empty
		// nested pattern still leaves this row intact (OUTER join), with
		// the nested columns reading back as NULL via values().
		if _, err := n.nested.fetchRow(ctx); err != nil {
			return false, err
		}
	}

	return true, nil
}

func (n *pathScan) columns() []Column {
	cols := append([]Column(nil), n.cols...)
	if n.nested != nil {
		cols = append(cols, n.nested.columns()...)
	}
	return cols
}

func (n *pathScan) values(ctx context.Context, out map[string]any) error {
	for i, col := range n.cols {
		if !n.haveCurrent {
			out[col.Name] = nil
			continue
		}
		if col.ForOrdinality {
			out[col.Name] = n.ordinal
			continue
		}

		v, err := n.colPaths[i].First(ctx, n.current, n.opts()...)
		if err != nil {
			out[col.Name] = nil
			continue
		}
		out[col.Name] = v
	}

	if n.nested != nil {
		return n.nested.values(ctx, out)
	}
	return nil
}

// siblingJoin concatenates left then right, as a SQL/JSON "UNION" of sibling
// NESTED patterns under the same parent row: every left row is emitted
// before any right row, and each side contributes only its own columns to a
// row, the other side's reading back as NULL.
type siblingJoin struct {
	left, right node
	onRight     bool
}

func (n *siblingJoin) setDocument(ctx context.Context, input any) error {
	n.onRight = false
	if err := n.left.setDocument(ctx, input); err != nil {
		return err
	}
	return n.right.setDocument(ctx, input)
}

func (n *siblingJoin) fetchRow(ctx context.Context) (bool, error) {
	if !n.onRight {
		ok, err := n.left.fetchRow(ctx)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		n.onRight = true
	}
	return n.right.fetchRow(ctx)
}

func (n *siblingJoin) columns() []Column {
	return append(n.left.columns(), n.right.columns()...)
}

func (n *siblingJoin) clear() {
	n.onRight = false
	n.left.clear()
	n.right.clear()
}

func (n *siblingJoin) values(ctx context.Context, out map[string]any) error {
	if err := n.left.values(ctx, out); err != nil {
		return err
	}
	return n.right.values(ctx, out)
}
