// Package vars provides the standard implementations of the jsonpath
// variable-binding protocol consulted by the exec package: a lookup by name
// and a count. The count seeds the .keyvalue() base-object id counter, so the
// ids 1..N stay reserved for variables: each [ListVars] binding owns the id of
// its position, while all variables of an [ObjectVars] share id 1, as
// described in the exec package's .keyvalue() documentation.
package vars

import "sort"

// ObjectVars binds jsonpath variables from a plain JSON object, the way a
// PASSING clause's vars parameter is most often supplied. Each top-level key
// is a variable name; the whole object counts as a single base object for
// .keyvalue() purposes, consistent with how the exec package reserves id 1
// for "the vars object".
type ObjectVars map[string]any

// Lookup returns the value bound to name in o, and whether it was found.
func (o ObjectVars) Lookup(name string) (any, bool) {
	v, ok := o[name]
	return v, ok
}

// Len returns the number of variables bound in o.
func (o ObjectVars) Len() int {
	return len(o)
}

// Binding is a single named, typed SQL/JSON variable binding, the shape used
// by the SQL-standard JSON_EXISTS/JSON_QUERY/JSON_VALUE PASSING clause: a
// name, a declared type and type modifier (both advisory; this
// implementation performs no type coercion beyond what Value already is),
// and the bound value. IsNull marks an explicit SQL NULL independent of
// Value, mirroring nullable host bind parameters.
type Binding struct {
	Name   string
	Type   string
	Typmod int32
	Value  any
	IsNull bool
}

// ListVars binds jsonpath variables from an explicit, ordered list of typed
// bindings. Unlike [ObjectVars], each binding is its own base object: ids are
// assigned 1..N in list order, matching the SQL standard's JSON_VALUE-style
// PASSING list rather than a bare object.
type ListVars []Binding

// NewListVars builds a ListVars from bindings, preserving their order.
func NewListVars(bindings ...Binding) ListVars {
	return ListVars(bindings)
}

// Lookup returns the value bound to name, and whether it was found. A
// binding with IsNull set returns (nil, true).
func (l ListVars) Lookup(name string) (any, bool) {
	for _, b := range l {
		if b.Name == name {
			if b.IsNull {
				return nil, true
			}
			return b.Value, true
		}
	}
	return nil, false
}

// Len returns the number of bindings in l.
func (l ListVars) Len() int {
	return len(l)
}

// Names returns the sorted list of variable names bound by l, useful for
// diagnostics and tests.
func (l ListVars) Names() []string {
	names := make([]string, len(l))
	for i, b := range l {
		names[i] = b.Name
	}
	sort.Strings(names)
	return names
}
