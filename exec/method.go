package exec

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/corvid-db/jsonpath/ast"
	"github.com/corvid-db/jsonpath/types"
)

// execMethodNode dispatches node to its method implementation.
func (exec *Executor) execMethodNode(
	ctx context.Context,
	node *ast.MethodNode,
	value any,
	found *valueList,
	unwrap bool,
) (resultStatus, error) {
	switch node.Name() {
	case ast.MethodNumber:
		return exec.executeNumberMethod(ctx, node, value, found, unwrap, node)
	case ast.MethodAbs:
		return exec.executeNumericItemMethod(ctx, node, value, unwrap, intAbs, math.Abs, found)
	case ast.MethodFloor:
		return exec.executeNumericItemMethod(ctx, node, value, unwrap, intSelf, math.Floor, found)
	case ast.MethodCeiling:
		return exec.executeNumericItemMethod(ctx, node, value, unwrap, intSelf, math.Ceil, found)
	case ast.MethodType:
		return exec.execMethodType(ctx, node, value, found)
	case ast.MethodSize:
		return exec.execMethodSize(ctx, node, value, found)
	case ast.MethodDouble:
		return exec.execMethodDouble(ctx, node, value, found, unwrap)
	case ast.MethodInteger:
		return exec.execMethodInteger(ctx, node, value, found, unwrap)
	case ast.MethodBigInt:
		return exec.execMethodBigInt(ctx, node, value, found, unwrap)
	case ast.MethodString:
		return exec.execMethodString(ctx, node, value, found, unwrap)
	case ast.MethodBoolean:
		return exec.execMethodBoolean(ctx, node, value, found, unwrap)
	case ast.MethodKeyValue:
		return exec.executeKeyValueMethod(ctx, node, value, found, unwrap)
	default:
		return statusFailed, fmt.Errorf("%w: unknown method %v", ErrInvalid, node.Name())
	}
}

// jsonTypeName reports the jsonpath .type() name for value.
func jsonTypeName(value any) string {
	switch value.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case int64, float64, json.Number:
		return "number"
	case bool:
		return "boolean"
	case *types.Date:
		return "date"
	case *types.Time:
		return "time without time zone"
	case *types.TimeTZ:
		return "time with time zone"
	case *types.Timestamp:
		return "timestamp without time zone"
	case *types.TimestampTZ:
		return "timestamp with time zone"
	case nil:
		return "null"
	default:
		return ""
	}
}

// execMethodType implements .type() by classifying value's JSON/SQL type.
func (exec *Executor) execMethodType(
	ctx context.Context,
	node *ast.MethodNode,
	value any,
	found *valueList,
) (resultStatus, error) {
	typeName := jsonTypeName(value)
	if typeName == "" {
		return statusFailed, fmt.Errorf("%w: unsupported data type %T", ErrInvalid, value)
	}
	return exec.executeNextItem(ctx, node, nil, typeName, found)
}

// execMethodSize implements .size(). value should be []any; a scalar
// reports size 1 when auto-wrapping or lax structural errors permit it.
func (exec *Executor) execMethodSize(
	ctx context.Context,
	node *ast.MethodNode,
	value any,
	found *valueList,
) (resultStatus, error) {
	size := 1
	if array, ok := value.([]any); ok {
		size = len(array)
	} else if !exec.autoWrap() && !exec.ignoreStructuralErrors {
		return exec.returnVerboseError(fmt.Errorf(
			"%w: jsonpath item method %v can only be applied to an array",
			ErrVerbose, node.Name(),
		))
	}
	return exec.executeNextItem(ctx, node, nil, int64(size), found)
}

// execMethodDouble implements .double(): value must be numeric, or a string
// parseable as float64, or (when unwrap is set) an array applied
// element-wise.
func (exec *Executor) execMethodDouble(
	ctx context.Context,
	node *ast.MethodNode,
	value any,
	found *valueList,
	unwrap bool,
) (resultStatus, error) {
	name := node.Name()
	cannotApply := func() (resultStatus, error) {
		return exec.returnVerboseError(fmt.Errorf(
			"%w: jsonpath item method %v can only be applied to a string or numeric value",
			ErrVerbose, name,
		))
	}

	var double float64
	switch val := value.(type) {
	case []any:
		if unwrap {
			return exec.executeItemUnwrapTargetArray(ctx, node, value, found)
		}
		return cannotApply()
	case int64:
		double = float64(val)
	case float64:
		double = val
	case json.Number:
		d, err := val.Float64()
		if err != nil {
			return statusFailed, invalidArgFor(name, val, "double precision")
		}
		double = d
	case string:
		d, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return statusFailed, invalidArgFor(name, val, "double precision")
		}
		double = d
	default:
		return cannotApply()
	}

	if math.IsInf(double, 0) || math.IsNaN(double) {
		return exec.returnVerboseError(naNOrInf(name))
	}

	return exec.executeNextItem(ctx, node, nil, double, found)
}

// invalidArgFor builds the "argument is invalid for type T" error shared by
// the .double()/.integer()/.bigint()/.boolean()/.number()/.decimal() methods.
func invalidArgFor(name any, val any, sqlType string) error {
	return fmt.Errorf(`%w: argument "%v" of jsonpath item method %v is invalid for type %s`, ErrVerbose, val, name, sqlType)
}

// naNOrInf builds the "NaN or Infinity is not allowed" error for name.
func naNOrInf(name any) error {
	return fmt.Errorf("%w: NaN or Infinity is not allowed for jsonpath item method %v", ErrVerbose, name)
}

// execMethodInteger implements .integer(): value must be numeric, or a
// string parseable as an int32, or (when unwrap is set) an array applied
// element-wise.
func (exec *Executor) execMethodInteger(
	ctx context.Context,
	node *ast.MethodNode,
	value any,
	found *valueList,
	unwrap bool,
) (resultStatus, error) {
	name := node.Name()
	cannotApply := func() (resultStatus, error) {
		return exec.returnVerboseError(fmt.Errorf(
			"%w: jsonpath item method %v can only be applied to a string or numeric value",
			ErrVerbose, name,
		))
	}

	var integer int64
	switch val := value.(type) {
	case []any:
		if unwrap {
			return exec.executeItemUnwrapTargetArray(ctx, node, value, found)
		}
		return cannotApply()
	case int64:
		integer = val
	case float64:
		integer = int64(math.Round(val))
	case json.Number:
		i, err := val.Int64()
		if err != nil {
			f, ferr := val.Float64()
			if ferr != nil {
				return exec.returnVerboseError(invalidArgFor(name, value, "integer"))
			}
			i = int64(math.Round(f))
		}
		integer = i
	case string:
		i, err := strconv.ParseInt(val, 10, 32)
		if err != nil {
			return exec.returnVerboseError(invalidArgFor(name, value, "integer"))
		}
		integer = i
	default:
		return cannotApply()
	}

	if !int32Bounds(integer) {
		return exec.returnVerboseError(invalidArgFor(name, value, "integer"))
	}

	return exec.executeNextItem(ctx, node, nil, integer, found)
}

// execMethodBigInt implements .bigint(): value must be numeric, or a string
// parseable as an int64, or (when unwrap is set) an array applied
// element-wise.
func (exec *Executor) execMethodBigInt(
	ctx context.Context,
	node *ast.MethodNode,
	value any,
	found *valueList,
	unwrap bool,
) (resultStatus, error) {
	name := node.Name()
	cannotApply := func() (resultStatus, error) {
		return exec.returnVerboseError(fmt.Errorf(
			"%w: jsonpath item method %v can only be applied to a string or numeric value",
			ErrVerbose, name,
		))
	}

	var bigInt int64
	switch val := value.(type) {
	case []any:
		if unwrap {
			return exec.executeItemUnwrapTargetArray(ctx, node, value, found)
		}
		return cannotApply()
	case int64:
		bigInt = val
	case float64:
		if val > math.MaxInt64 || val < math.MinInt64 {
			return exec.returnVerboseError(invalidArgFor(name, val, "bigint"))
		}
		bigInt = int64(math.Round(val))
	case json.Number:
		i, err := val.Int64()
		if err != nil {
			f, ferr := val.Float64()
			if ferr != nil || f > math.MaxInt64 || f < math.MinInt64 {
				return exec.returnVerboseError(invalidArgFor(name, val, "bigint"))
			}
			i = int64(math.Round(f))
		}
		bigInt = i
	case string:
		i, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return exec.returnVerboseError(invalidArgFor(name, val, "bigint"))
		}
		bigInt = i
	default:
		return cannotApply()
	}

	return exec.executeNextItem(ctx, node, nil, bigInt, found)
}

// execMethodString implements .string(): value must be a string, number,
// boolean, or datetime type, or (when unwrap is set) an array applied
// element-wise.
func (exec *Executor) execMethodString(
	ctx context.Context,
	node *ast.MethodNode,
	value any,
	found *valueList,
	unwrap bool,
) (resultStatus, error) {
	name := node.Name()

	var str string
	switch val := value.(type) {
	case []any:
		if unwrap {
			return exec.executeItemUnwrapTargetArray(ctx, node, value, found)
		}
		return exec.returnVerboseError(fmt.Errorf(
			`%w: jsonpath item method %v can only be applied to a boolean, string, numeric, or datetime value`,
			ErrVerbose, name,
		))
	case string:
		str = val
	case fmt.Stringer:
		// json.Number and the date/time types all format as ISO-8601.
		str = val.String()
	case int64:
		str = strconv.FormatInt(val, 10)
	case float64:
		str = strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		str = strconv.FormatBool(val)
	default:
		return exec.returnVerboseError(fmt.Errorf(
			`%w: jsonpath item method %v can only be applied to a boolean, string, numeric, or datetime value`,
			ErrVerbose, name,
		))
	}

	return exec.executeNextItem(ctx, node, nil, str, found)
}

// execMethodBoolean implements .boolean(): value must be a bool, number, or
// string, or (when unwrap is set) an array applied element-wise. String
// values are interpreted via execBooleanString.
func (exec *Executor) execMethodBoolean(
	ctx context.Context,
	node *ast.MethodNode,
	value any,
	found *valueList,
	unwrap bool,
) (resultStatus, error) {
	name := node.Name()
	cannotApply := func() (resultStatus, error) {
		return exec.returnVerboseError(fmt.Errorf(
			"%w: jsonpath item method %v can only be applied to a boolean, string, or numeric value",
			ErrVerbose, name,
		))
	}

	var boolean bool
	switch val := value.(type) {
	case []any:
		if unwrap {
			return exec.executeItemUnwrapTargetArray(ctx, node, value, found)
		}
		return cannotApply()
	case bool:
		boolean = val
	case int64:
		boolean = val != 0
	case float64:
		if val != math.Trunc(val) {
			return exec.returnVerboseError(invalidArgFor(name, val, "boolean"))
		}
		boolean = val != 0
	case json.Number:
		num, err := val.Float64()
		if err != nil || num != math.Trunc(num) {
			return exec.returnVerboseError(invalidArgFor(name, val, "boolean"))
		}
		boolean = num != 0
	case string:
		b, err := execBooleanString(val, name)
		if err != nil {
			return exec.returnVerboseError(err)
		}
		boolean = b
	default:
		return cannotApply()
	}

	return exec.executeNextItem(ctx, node, nil, boolean, found)
}

// execBooleanString converts val to a boolean, case-insensitively matching
// one of t/true, f/false, y/yes, n/no, on/off, or 1/0.
func execBooleanString(val string, name ast.MethodName) (bool, error) {
	invalid := invalidArgFor(name, val, "boolean")

	size := len(val)
	if size == 0 {
		return false, invalid
	}

	switch val[0] {
	case 't', 'T':
		if size == 1 || strings.EqualFold(val, "true") {
			return true, nil
		}
	case 'f', 'F':
		if size == 1 || strings.EqualFold(val, "false") {
			return false, nil
		}
	case 'y', 'Y':
		if size == 1 || strings.EqualFold(val, "yes") {
			return true, nil
		}
	case 'n', 'N':
		if size == 1 || strings.EqualFold(val, "no") {
			return false, nil
		}
	case 'o', 'O':
		switch {
		case strings.EqualFold(val, "on"):
			return true, nil
		case strings.EqualFold(val, "off"):
			return false, nil
		}
	case '1':
		if size == 1 {
			return true, nil
		}
	case '0':
		if size == 1 {
			return false, nil
		}
	}

	return false, invalid
}

// executeNumberMethod implements the .number() and .decimal() methods. It
// departs from arbitrary-precision SQL NUMERIC by working in float64/int64,
// since this package doesn't carry a big-decimal type.
func (exec *Executor) executeNumberMethod(
	ctx context.Context,
	node ast.Node,
	value any,
	found *valueList,
	unwrap bool,
	meth any,
) (resultStatus, error) {
	var (
		num float64
		err error
	)

	switch val := value.(type) {
	case []any:
		if unwrap {
			return exec.executeItemUnwrapTargetArray(ctx, node, val, found)
		}
		return exec.returnVerboseError(fmt.Errorf(
			`%w: jsonpath item method %v can only be applied to a string or numeric value`,
			ErrVerbose, meth,
		))
	case float64:
		num = val
	case int64:
		num = float64(val)
	case json.Number:
		num, err = val.Float64()
	case string:
		num, err = strconv.ParseFloat(val, 64)
	default:
		return exec.returnVerboseError(fmt.Errorf(
			`%w: jsonpath item method %v can only be applied to a string or numeric value`,
			ErrVerbose, meth,
		))
	}

	if err != nil {
		return exec.returnVerboseError(invalidArgFor(meth, value, "numeric"))
	}

	if math.IsInf(num, 0) || math.IsNaN(num) {
		return exec.returnVerboseError(naNOrInf(meth))
	}

	if bin, ok := node.(*ast.BinaryNode); ok {
		num, err = exec.executeDecimalMethod(bin, value, num)
		if err != nil {
			return exec.returnError(err)
		}
	}

	return exec.executeNextItem(ctx, node, nil, num, found)
}

const (
	numericMaxPrecision = 1000
	numericMinScale     = -1000
	numericMaxScale     = 1000
)

// executeDecimalMethod applies the precision and optional scale arguments of
// .decimal(precision, scale) to num: it rounds to scale, then checks that
// the result fits within precision significant digits.
func (exec *Executor) executeDecimalMethod(
	node *ast.BinaryNode,
	value any,
	num float64,
) (float64, error) {
	op := node.Operator()
	if op != ast.BinaryDecimal || node.Left() == nil {
		return num, nil
	}

	precision, err := getNodeInt32(op, node.Left(), "precision")
	if err != nil {
		return 0, err
	}
	if precision < 1 || precision > numericMaxPrecision {
		return 0, fmt.Errorf(
			"%w: NUMERIC precision %d must be between 1 and %d",
			ErrExecution, precision, numericMaxPrecision,
		)
	}

	scale := 0
	if right := node.Right(); right != nil {
		if scale, err = getNodeInt32(op, right, "scale"); err != nil {
			return 0, err
		}
		if scale < numericMinScale || scale > numericMaxScale {
			return 0, fmt.Errorf(
				"%w: NUMERIC scale %d must be between %d and %d",
				ErrExecution, scale, numericMinScale, numericMaxScale,
			)
		}
	}

	ratio := math.Pow10(scale)
	rounded := math.Round(num*ratio) / ratio

	numStr := strconv.FormatFloat(rounded, 'f', -1, 64)
	digits := 0
	for _, ch := range numStr {
		if ch == '.' {
			break
		}
		if ('1' <= ch && ch <= '9') || (ch == '0' && digits > 0) {
			digits++
		}
	}

	if digits > 0 && digits > precision-scale {
		return 0, invalidArgFor(op, value, "numeric")
	}
	return rounded, nil
}

// intCallback carries out an operation on an int64.
type intCallback func(int64) int64

// floatCallback carries out an operation on a float64.
type floatCallback func(float64) float64

// intAbs returns the absolute value of x. Implements intCallback.
func intAbs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// intSelf returns x unchanged. Implements intCallback.
func intSelf(x int64) int64 { return x }

// floatSelf returns x unchanged. Implements floatCallback.
func floatSelf(x float64) float64 { return x }

// intUMinus negates x. Implements intCallback.
func intUMinus(x int64) int64 { return -x }

// floatUMinus negates x. Implements floatCallback.
func floatUMinus(x float64) float64 { return -x }

// executeNumericItemMethod implements the numeric item methods (.abs(),
// .floor(), .ceiling()) using asInt or asFloat depending on value's type.
func (exec *Executor) executeNumericItemMethod(
	ctx context.Context,
	node ast.Node,
	value any,
	unwrap bool,
	asInt intCallback,
	asFloat floatCallback,
	found *valueList,
) (resultStatus, error) {
	var num any

	switch val := value.(type) {
	case []any:
		if unwrap {
			return exec.executeItemUnwrapTargetArray(ctx, node, value, found)
		}
		return exec.returnVerboseError(fmt.Errorf(
			"%w: jsonpath item method %v can only be applied to a numeric value",
			ErrVerbose, node,
		))
	case int64:
		num = asInt(val)
	case float64:
		num = asFloat(val)
	case json.Number:
		if integer, err := val.Int64(); err == nil {
			num = asInt(integer)
		} else if float, err := val.Float64(); err == nil {
			num = asFloat(float)
		} else {
			return exec.returnVerboseError(fmt.Errorf(
				"%w: jsonpath item method %v can only be applied to a numeric value",
				ErrVerbose, node,
			))
		}
	default:
		return exec.returnVerboseError(fmt.Errorf(
			"%w: jsonpath item method %v can only be applied to a numeric value",
			ErrVerbose, node,
		))
	}

	return exec.executeNextItem(ctx, node, node.Next(), num, found)
}
