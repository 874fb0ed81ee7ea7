package exec

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/corvid-db/jsonpath/ast"
)

// castJSONNumber coerces num to an int64 when possible, falling back to a
// float64, and hands the result to intCallback or floatCallback
// respectively. Returns false if num parses as neither.
func castJSONNumber(num json.Number, asInt intCallback, asFloat floatCallback) (any, bool) {
	if integer, err := num.Int64(); err == nil {
		return asInt(integer), true
	}
	if float, err := num.Float64(); err == nil {
		return asFloat(float), true
	}
	return nil, false
}

// int32Bounds reports whether num fits in an int32.
func int32Bounds(num int64) bool {
	return num <= math.MaxInt32 && num >= math.MinInt32
}

// getNodeInt32 extracts an int32 from an IntegerNode or NumericNode literal.
// meth and field label the errors: meth is typically a jsonpath method or
// operator, and field the name of the argument being parsed.
func getNodeInt32(meth any, node ast.Node, field string) (int, error) {
	var num int64
	switch n := node.(type) {
	case *ast.IntegerNode:
		num = n.Int()
	case *ast.NumericNode:
		num = int64(n.Float())
	default:
		return 0, fmt.Errorf(
			"%w: invalid jsonpath item type for %v %v",
			ErrExecution, meth, field,
		)
	}

	if !int32Bounds(num) {
		return 0, fmt.Errorf(
			"%w: %v of jsonpath item method %v is out of integer range",
			ErrVerbose, field, meth,
		)
	}

	return int(num), nil
}

// getJSONInt32 coerces a runtime JSON scalar (int64, float64, or
// json.Number) to an int32. op names the jsonpath operation in error
// messages, e.g. "array subscript".
func getJSONInt32(op string, val any) (int, error) {
	notNumeric := fmt.Errorf("%w: jsonpath %v is not a single numeric value", ErrVerbose, op)

	var num int64
	switch v := val.(type) {
	case int64:
		num = v
	case float64:
		f, err := finiteInt64(v, op)
		if err != nil {
			return 0, err
		}
		num = f
	case json.Number:
		integer, err := v.Int64()
		if err != nil {
			float, ferr := v.Float64()
			if ferr != nil {
				// A json.Number that parses as neither should not occur;
				// treat it as a bug in the caller rather than bad input.
				return 0, fmt.Errorf("%w: jsonpath %v is not a single numeric value", ErrInvalid, op)
			}
			if integer, err = finiteInt64(float, op); err != nil {
				return 0, err
			}
		}
		num = integer
	default:
		return 0, notNumeric
	}

	if !int32Bounds(num) {
		return 0, fmt.Errorf("%w: jsonpath %v is out of integer range", ErrVerbose, op)
	}

	return int(num), nil
}

// finiteInt64 truncates f to an int64, rejecting NaN and ±Inf, which have no
// sensible integer truncation.
func finiteInt64(f float64, op string) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: NaN or Infinity is not allowed for jsonpath %v", ErrVerbose, op)
	}
	return int64(f), nil
}
