package exec

import (
	"context"
	"fmt"
	"slices"

	"github.com/corvid-db/jsonpath/ast"
	"golang.org/x/exp/maps" // Switch to maps when go 1.22 dropped
)

// setTempBaseObject sets id as exec.baseObject's id and returns a function
// that will reset it to the previous value.
func (exec *Executor) setTempBaseObject(id int) func() {
	bo := exec.baseObject
	exec.baseObject.id = id
	return func() { exec.baseObject = bo }
}

// executeKeyValueMethod implements the .keyvalue() method.
//
// .keyvalue() method returns a sequence of object's key-value pairs in the
// following format: '{ "key": key, "value": value, "id": id }'.
//
// "id" field is an object identifier which is constructed from two parts:
// the base object's id and the pair's position among its object's sorted
// keys: id = exec.baseObject.id * 10000000000 + position.
//
// 10000000000 (10^10) is the first round decimal number greater than 2^32
// (the maximal offset in a binary JSON container such as jsonb), used here
// only to keep generated identifiers visually distinct from small object ids;
// this implementation has no binary container to take an actual byte offset
// from, so it substitutes the pair's ordinal position in the (sorted, and
// therefore deterministic) key list, which is exact and collision-free
// within one base object.
//
// exec.baseObject is usually the root object of the path (context item '$')
// or path variable '$var' (literals can't produce objects for now). Objects
// generated by keyvalue() itself become the base object for any nested
// .keyvalue().
//
//   - ID of '$' is 0.
//   - ID of '$var' is 10000000000 times the variable's id: 1 for an
//     ObjectVars variable, the 1-based list position for a ListVars binding.
//   - IDs for objects generated by .keyvalue() are assigned using the global
//     counter exec.lastGeneratedObjectID: 20000000000, 30000000000, etc.
func (exec *Executor) executeKeyValueMethod(
	ctx context.Context,
	node ast.Node,
	value any,
	found *valueList,
	unwrap bool,
) (resultStatus, error) {
	var obj map[string]any
	switch val := value.(type) {
	case []any:
		if unwrap {
			return exec.executeItemUnwrapTargetArray(ctx, node, value, found)
		}
		return exec.returnVerboseError(fmt.Errorf(
			`%w: jsonpath item method .keyvalue() can only be applied to an object`,
			ErrVerbose,
		))
	case map[string]any:
		obj = val
	default:
		return exec.returnVerboseError(fmt.Errorf(
			`%w: jsonpath item method .keyvalue() can only be applied to an object`,
			ErrVerbose,
		))
	}

	if len(obj) == 0 {
		// no key-value pairs
		return statusNotFound, nil
	}

	next := node.Next()
	if next == nil && found == nil {
		return statusOK, nil
	}

	const tenTen = 10000000000 // 10^10
	baseID := int64(exec.baseObject.id) * tenTen

	// Process the keys in a deterministic order for consistent, distinct ID
	// assignment: each pair gets its own position within this object.
	keys := maps.Keys(obj)
	slices.Sort(keys)

	var res resultStatus
	for pos, k := range keys {
		id := baseID + int64(pos)
		pair := map[string]any{"key": k, "value": obj[k], "id": id}
		exec.lastGeneratedObjectID++
		defer exec.setTempBaseObject(exec.lastGeneratedObjectID)()

		var err error
		res, err = exec.executeNextItem(ctx, node, next, pair, found)
		if res == statusFailed {
			return res, err
		}

		if res == statusOK && found == nil {
			break
		}
	}
	return res, nil
}
