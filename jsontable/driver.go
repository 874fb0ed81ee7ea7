package jsontable

import (
	"context"
	"database/sql/driver"
	"io"
)

// Rows adapts a [Table] to the [database/sql/driver.Rows] interface, so a
// JSON_TABLE evaluation can be driven the same way a database/sql driver
// streams query results: Columns, then repeated Next calls until io.EOF,
// then Close.
type Rows struct {
	ctx   context.Context //nolint:containedctx // driver.Rows has no per-call context parameter
	table *Table
	cols  []string
}

// NewRows evaluates plan's row pattern against doc and returns a Rows ready
// to stream via Next. The supplied context governs every jsonpath evaluation
// performed while iterating; cancel it to abort a long-running scan.
func NewRows(ctx context.Context, plan *Plan, doc any, passing map[string]any) (*Rows, error) {
	t := plan.New(passing)
	if err := t.SetDocument(ctx, doc); err != nil {
		return nil, err
	}
	return &Rows{ctx: ctx, table: t, cols: plan.Columns()}, nil
}

// Columns returns the flattened JSON_TABLE column names.
func (r *Rows) Columns() []string {
	return r.cols
}

// Close releases r. JSON_TABLE evaluation holds no external resources, so
// this always succeeds.
func (r *Rows) Close() error {
	return nil
}

// Next populates dest with the next row's column values, in the same order
// as Columns. It returns [io.EOF] once the JSON_TABLE plan is exhausted.
func (r *Rows) Next(dest []driver.Value) error {
	ok, err := r.table.FetchRow(r.ctx)
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}

	vals, err := r.table.GetValue(r.ctx)
	if err != nil {
		return err
	}
	for i, name := range r.cols {
		dest[i] = vals[name]
	}
	return nil
}
