// Package ast provides an abstract syntax tree for SQL/JSON paths.
//
// Largely ported from PostgreSQL's [jsonpath.c], it provides objects for every
// node parsed from an SQL/JSON path. The [parser] constructs these nodes as it
// parses a path, linking successive accessors via their next pointers, and
// constructs an AST object from the root node.
//
// Note that errors returned by AST are not wrapped, as they're expected to be
// wrapped by parser.
//
// The complete list of types that implement Node:
//
//   - [ConstNode]
//   - [MethodNode]
//   - [StringNode]
//   - [VariableNode]
//   - [KeyNode]
//   - [NumericNode]
//   - [IntegerNode]
//   - [AnyNode]
//   - [BinaryNode]
//   - [UnaryNode]
//   - [RegexNode]
//   - [ArrayIndexNode]
//
// Here's a starter recursive function for processing nodes. Note that every
// node may have a next node, accessed via its Next method, that represents
// the next accessor in a path expression.
//
//	func processNode(node ast.Node) {
//		switch node := node.(type) {
//		case *ast.ConstNode:
//		case *ast.MethodNode:
//		case *ast.StringNode:
//		case *ast.VariableNode:
//		case *ast.KeyNode:
//		case *ast.NumericNode:
//		case *ast.IntegerNode:
//		case *ast.AnyNode:
//		case *ast.BinaryNode:
//			processNode(node.Left())
//			processNode(node.Right())
//		case *ast.UnaryNode:
//			processNode(node.Operand())
//		case *ast.RegexNode:
//			processNode(node.Operand())
//		case *ast.ArrayIndexNode:
//			for _, n := range node.Subscripts() {
//				processNode(n)
//			}
//		}
//		if next := node.Next(); next != nil {
//			processNode(next)
//		}
//	}
//
// [jsonpath.c]: https://github.com/postgres/postgres/blob/adcdb2c/src/backend/utils/adt/jsonpath.c
package ast

// Use golang.org/x/tools/cmd/stringer to generate the String method for enums
// for their inline comments.

//go:generate stringer -linecomment -output ast_string.go -type Constant,BinaryOperator,UnaryOperator,MethodName

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Node represents a single node in the AST.
type Node interface {
	// String returns the properly-encoded and delimited SQL/JSON Path string
	// representation of the node, not including any nodes that follow it in
	// an accessor path.
	String() string

	// Next returns the next node in the path, if any.
	Next() Node

	// setNext sets the next node in the path.
	setNext(next Node)

	// writeTo writes the string representation of a node to buf, followed by
	// the representation of its next node, if any. inKey is true when the
	// node follows another node in an accessor path, and withParens requires
	// parentheses to be printed around the node.
	writeTo(buf *strings.Builder, inKey, withParens bool)

	// priority returns the operational priority of the node relative to
	// other nodes. Priority ranges from 0 for highest to 6 for lowest.
	priority() uint8
}

// lowestPriority is the lowest priority returned by priority, and the default
// for most nodes.
const lowestPriority = uint8(6)

// writeNext writes the string representation of next to buf, if it's not
// nil. A node that follows another node in a path is always in key position.
func writeNext(buf *strings.Builder, next Node) {
	if next != nil {
		next.writeTo(buf, true, false)
	}
}

// Constant is a constant value parsed from the path.
type Constant int

//revive:disable:exported
const (
	ConstRoot     Constant = iota // $
	ConstCurrent                  // @
	ConstLast                     // last
	ConstAnyArray                 // [*]
	ConstAnyKey                   // *
	ConstTrue                     // true
	ConstFalse                    // false
	ConstNull                     // null
)

// ConstNode is a constant value in a path.
type ConstNode struct {
	kind Constant
	next Node
}

// NewConst returns a new ConstNode for kind.
func NewConst(kind Constant) *ConstNode {
	return &ConstNode{kind: kind}
}

// Const returns the Constant the node represents.
func (n *ConstNode) Const() Constant { return n.kind }

// Next returns the next node in the path, if any.
func (n *ConstNode) Next() Node { return n.next }

// setNext sets the next node in the path.
func (n *ConstNode) setNext(next Node) { n.next = next }

// String returns the string representation of the constant.
func (n *ConstNode) String() string { return n.kind.String() }

// writeTo writes the string representation of n to buf. If n is ConstAnyKey
// and inKey is true, it will be preceded by '.'.
func (n *ConstNode) writeTo(buf *strings.Builder, inKey, _ bool) {
	if n.kind == ConstAnyKey && inKey {
		buf.WriteRune('.')
	}
	buf.WriteString(n.kind.String())
	writeNext(buf, n.next)
}

// priority returns the priority of the ConstNode, which is always 6.
func (*ConstNode) priority() uint8 { return lowestPriority }

// BinaryOperator represents a binary operator.
type BinaryOperator int

//revive:disable:exported
const (
	BinaryAnd            BinaryOperator = iota // &&
	BinaryOr                                   // ||
	BinaryEqual                                // ==
	BinaryNotEqual                             // !=
	BinaryLess                                 // <
	BinaryGreater                              // >
	BinaryLessOrEqual                          // <=
	BinaryGreaterOrEqual                       // >=
	BinaryStartsWith                           // starts with
	BinaryAdd                                  // +
	BinarySub                                  // -
	BinaryMul                                  // *
	BinaryDiv                                  // /
	BinaryMod                                  // %
	BinarySubscript                            // to
	BinaryDecimal                              // .decimal()
)

// priority returns the priority of the operator.
//
//nolint:gomnd,exhaustive
func (op BinaryOperator) priority() uint8 {
	switch op {
	case BinaryOr:
		return 0
	case BinaryAnd:
		return 1
	case BinaryEqual, BinaryNotEqual, BinaryLess, BinaryGreater,
		BinaryLessOrEqual, BinaryGreaterOrEqual, BinaryStartsWith:
		return 2
	case BinaryAdd, BinarySub:
		return 3
	case BinaryMul, BinaryDiv, BinaryMod:
		return 4
	default:
		return lowestPriority
	}
}

// UnaryOperator represents a unary operator.
type UnaryOperator int

//revive:disable:exported
const (
	UnaryExists      UnaryOperator = iota // exists
	UnaryNot                              // !
	UnaryIsUnknown                        // is unknown
	UnaryPlus                             // +
	UnaryMinus                            // -
	UnaryFilter                           // ?
	UnaryDateTime                         // .datetime
	UnaryDate                             // .date
	UnaryTime                             // .time
	UnaryTimeTZ                           // .time_tz
	UnaryTimestamp                        // .timestamp
	UnaryTimestampTZ                      // .timestamp_tz
)

// priority returns the priority of the operator.
//
//nolint:gomnd,exhaustive
func (op UnaryOperator) priority() uint8 {
	switch op {
	case UnaryPlus, UnaryMinus:
		return 5
	default:
		return lowestPriority
	}
}

// MethodName represents the name of a path method.
type MethodName int

//revive:disable:exported
const (
	MethodAbs      MethodName = iota // .abs()
	MethodSize                       // .size()
	MethodType                       // .type()
	MethodFloor                      // .floor()
	MethodCeiling                    // .ceiling()
	MethodDouble                     // .double()
	MethodKeyValue                   // .keyvalue()
	MethodBigInt                     // .bigint()
	MethodBoolean                    // .boolean()
	MethodInteger                    // .integer()
	MethodNumber                     // .number()
	MethodString                     // .string()
)

// MethodNode represents a path method.
type MethodNode struct {
	name MethodName
	next Node
}

// NewMethod returns a new MethodNode for name.
func NewMethod(name MethodName) *MethodNode {
	return &MethodNode{name: name}
}

// Name returns the MethodName of the method.
func (n *MethodNode) Name() MethodName { return n.name }

// Next returns the next node in the path, if any.
func (n *MethodNode) Next() Node { return n.next }

// setNext sets the next node in the path.
func (n *MethodNode) setNext(next Node) { n.next = next }

// String returns the string representation of the method.
func (n *MethodNode) String() string { return n.name.String() }

// writeTo writes the string representation of n to buf. The leading '.' is
// part of the method name, so inKey is ignored.
func (n *MethodNode) writeTo(buf *strings.Builder, _, _ bool) {
	buf.WriteString(n.name.String())
	writeNext(buf, n.next)
}

// priority returns the priority of the MethodNode, which is always 6.
func (*MethodNode) priority() uint8 { return lowestPriority }

// quotedString is the shared representation of quoted string nodes,
// including strings, variables, and path keys.
type quotedString struct {
	str  string
	next Node
}

// Text returns the textual representation of the string.
func (n *quotedString) Text() string { return n.str }

// quote returns the SQL/JSON path-encoded quoted string.
func (n *quotedString) quote() string { return strconv.Quote(n.str) }

// Next returns the next node in the path, if any.
func (n *quotedString) Next() Node { return n.next }

// setNext sets the next node in the path.
func (n *quotedString) setNext(next Node) { n.next = next }

// priority returns the priority of the quotedString, which is always 6.
func (*quotedString) priority() uint8 { return lowestPriority }

// StringNode represents a string parsed from the path.
type StringNode struct {
	*quotedString
}

// NewString returns a new StringNode representing str.
func NewString(str string) *StringNode {
	return &StringNode{&quotedString{str: str}}
}

// String returns the double-quoted representation of n.
func (n *StringNode) String() string { return n.quote() }

// writeTo writes the quoted string to buf.
func (n *StringNode) writeTo(buf *strings.Builder, _, _ bool) {
	buf.WriteString(n.quote())
	writeNext(buf, n.next)
}

// VariableNode represents a SQL/JSON path variable name.
type VariableNode struct {
	*quotedString
}

// NewVariable returns a new VariableNode named name.
func NewVariable(name string) *VariableNode {
	return &VariableNode{&quotedString{str: name}}
}

// String returns the double-quoted representation of n, preceded by '$'.
func (n *VariableNode) String() string { return "$" + n.quote() }

// writeTo writes the variable name to buf, preceded by '$'.
func (n *VariableNode) writeTo(buf *strings.Builder, _, _ bool) {
	buf.WriteString("$" + n.quote())
	writeNext(buf, n.next)
}

// KeyNode represents a SQL/JSON path key expression, e.g., '.foo'.
type KeyNode struct {
	*quotedString
}

// NewKey returns a new KeyNode with key.
func NewKey(key string) *KeyNode {
	return &KeyNode{&quotedString{str: key}}
}

// String returns the double-quoted representation of n.
func (n *KeyNode) String() string { return n.quote() }

// writeTo writes the quoted key to buf, prepended with '.' if inKey is true.
func (n *KeyNode) writeTo(buf *strings.Builder, inKey, _ bool) {
	if inKey {
		buf.WriteRune('.')
	}
	buf.WriteString(n.quote())
	writeNext(buf, n.next)
}

// numberNode is the shared representation of numeric and integer literals:
// the literal text as parsed from the path and its normalized rendering.
type numberNode struct {
	literal string
	parsed  string
	next    Node
}

// Literal returns the literal text of the number as passed to the
// constructor.
func (n *numberNode) Literal() string { return n.literal }

// String returns the normalized string representation of the number.
func (n *numberNode) String() string { return n.parsed }

// Next returns the next node in the path, if any.
func (n *numberNode) Next() Node { return n.next }

// setNext sets the next node in the path.
func (n *numberNode) setNext(next Node) { n.next = next }

// priority returns the priority of the number, which is always 6.
func (*numberNode) priority() uint8 { return lowestPriority }

// writeTo writes the normalized number to buf. The number is wrapped in
// parentheses when an accessor follows it, since "42.type()" would otherwise
// parse the dot as a decimal point.
func (n *numberNode) writeTo(buf *strings.Builder, _, _ bool) {
	if n.next != nil {
		buf.WriteRune('(')
		buf.WriteString(n.parsed)
		buf.WriteRune(')')
	} else {
		buf.WriteString(n.parsed)
	}
	writeNext(buf, n.next)
}

// NumericNode represents a numeric (non-integer) value.
type NumericNode struct {
	*numberNode
}

// NewNumeric returns a new NumericNode representing num. Panics if num
// cannot be parsed into a JSON-compatible float64.
func NewNumeric(num string) *NumericNode {
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		panic(err)
	}

	// https://www.postgresql.org/docs/current/datatype-json.html#DATATYPE-JSONPATH:
	//
	// > Numeric literals in SQL/JSON path expressions follow JavaScript rules,
	// > which are different from both SQL and JSON in some minor details. For
	// > example, SQL/JSON path allows .1 and 1., which are invalid in JSON.
	//
	// Rely on JSON semantics, a subset of the JavaScript.
	str, err := json.Marshal(f)
	if err != nil {
		panic(err)
	}

	return &NumericNode{&numberNode{literal: num, parsed: string(str)}}
}

// Float returns the floating point number corresponding to n.
func (n *NumericNode) Float() float64 {
	num, _ := strconv.ParseFloat(n.parsed, 64)
	return num
}

// IntegerNode represents an integer value.
type IntegerNode struct {
	*numberNode
}

// NewInteger returns a new IntegerNode representing num. Panics if num
// cannot be parsed into a 64-bit integer. Binary, octal, and hexadecimal
// literals and underscore separators are supported, following JavaScript
// (and Go) syntax.
func NewInteger(num string) *IntegerNode {
	val, err := strconv.ParseInt(num, 0, 64)
	if err != nil {
		panic(err)
	}
	return &IntegerNode{&numberNode{literal: num, parsed: strconv.FormatInt(val, 10)}}
}

// Int returns the integer corresponding to n.
func (n *IntegerNode) Int() int64 {
	val, _ := strconv.ParseInt(n.parsed, 10, 64)
	return val
}

// BinaryNode represents a binary operation.
type BinaryNode struct {
	op    BinaryOperator
	left  Node
	right Node
	next  Node
}

// NewBinary returns a new BinaryNode where op represents the binary operator
// and left and right the operands.
func NewBinary(op BinaryOperator, left, right Node) *BinaryNode {
	return &BinaryNode{op: op, left: left, right: right}
}

// String returns the SQL/JSON path string representation of the binary
// expression.
func (n *BinaryNode) String() string {
	buf := new(strings.Builder)
	n.writeSelf(buf, false)
	return buf.String()
}

// writeSelf writes the SQL/JSON path string representation of the binary
// expression to buf, without any following nodes. If withParens is true and
// the binary operation is neither BinaryDecimal nor BinarySubscript,
// parentheses will be written around the expression.
func (n *BinaryNode) writeSelf(buf *strings.Builder, withParens bool) {
	switch n.op {
	case BinaryDecimal:
		buf.WriteString(".decimal(")
		if n.left != nil {
			n.left.writeTo(buf, false, false)
		}
		if n.right != nil {
			buf.WriteRune(',')
			n.right.writeTo(buf, false, false)
		}
		buf.WriteRune(')')
	case BinarySubscript:
		n.left.writeTo(buf, false, false)
		if n.right != nil {
			buf.WriteString(" " + n.op.String() + " ")
			n.right.writeTo(buf, false, false)
		}
	case BinaryAnd, BinaryOr, BinaryEqual, BinaryNotEqual, BinaryLess,
		BinaryGreater, BinaryLessOrEqual, BinaryGreaterOrEqual,
		BinaryAdd, BinarySub, BinaryMul, BinaryDiv, BinaryMod,
		BinaryStartsWith:
		if withParens {
			buf.WriteRune('(')
		}

		n.left.writeTo(buf, false, n.left.priority() <= n.priority())
		buf.WriteString(" " + n.op.String() + " ")
		n.right.writeTo(buf, false, n.right.priority() <= n.priority())

		if withParens {
			buf.WriteRune(')')
		}
	default:
		panic(fmt.Sprintf("Unknown binary operator %v", n.op))
	}
}

// writeTo writes the SQL/JSON path string representation of the binary
// expression to buf, followed by any nodes that follow it in the path.
func (n *BinaryNode) writeTo(buf *strings.Builder, _, withParens bool) {
	n.writeSelf(buf, withParens)
	writeNext(buf, n.next)
}

// priority returns the priority of n.op.
func (n *BinaryNode) priority() uint8 { return n.op.priority() }

// Operator returns the BinaryNode's BinaryOperator.
func (n *BinaryNode) Operator() BinaryOperator { return n.op }

// Left returns the BinaryNode's left operand.
func (n *BinaryNode) Left() Node { return n.left }

// Right returns the BinaryNode's right operand.
func (n *BinaryNode) Right() Node { return n.right }

// Next returns the next node in the path, if any.
func (n *BinaryNode) Next() Node { return n.next }

// setNext sets the next node in the path.
func (n *BinaryNode) setNext(next Node) { n.next = next }

// UnaryNode represents a unary operation.
type UnaryNode struct {
	op      UnaryOperator
	operand Node
	next    Node
}

// NewUnary returns a new UnaryNode where op represents the unary operator
// and node its operand.
func NewUnary(op UnaryOperator, node Node) *UnaryNode {
	return &UnaryNode{op: op, operand: node}
}

// String returns the SQL/JSON path string representation of the unary
// expression.
func (n *UnaryNode) String() string {
	buf := new(strings.Builder)
	n.writeSelf(buf, false)
	return buf.String()
}

// priority returns the priority of n.op.
func (n *UnaryNode) priority() uint8 { return n.op.priority() }

// operandString renders n's operand, including any accessors chained to it.
func (n *UnaryNode) operandString() string {
	buf := new(strings.Builder)
	n.operand.writeTo(buf, false, false)
	return buf.String()
}

// writeSelf writes the SQL/JSON path string representation of the unary
// expression to buf, without any following nodes. If withParens is true and
// the operation is UnaryPlus or UnaryMinus, parentheses will be written
// around the expression.
func (n *UnaryNode) writeSelf(buf *strings.Builder, withParens bool) {
	switch n.op {
	case UnaryExists:
		buf.WriteString("exists (" + n.operandString() + ")")
	case UnaryNot, UnaryFilter:
		buf.WriteString(n.op.String() + "(" + n.operandString() + ")")
	case UnaryIsUnknown:
		buf.WriteString("(" + n.operandString() + ") is unknown")
	case UnaryPlus, UnaryMinus:
		if withParens {
			buf.WriteRune('(')
		}

		buf.WriteString(n.op.String())
		n.operand.writeTo(buf, false, n.operand.priority() <= n.priority())

		if withParens {
			buf.WriteRune(')')
		}
	case UnaryDateTime, UnaryDate, UnaryTime, UnaryTimeTZ, UnaryTimestamp, UnaryTimestampTZ:
		if n.operand == nil {
			buf.WriteString(n.op.String() + "()")
		} else {
			buf.WriteString(n.op.String() + "(" + n.operandString() + ")")
		}
	default:
		// Write nothing.
	}
}

// writeTo writes the SQL/JSON path string representation of the unary
// expression to buf, followed by any nodes that follow it in the path.
func (n *UnaryNode) writeTo(buf *strings.Builder, _, withParens bool) {
	n.writeSelf(buf, withParens)
	writeNext(buf, n.next)
}

// Operator returns the UnaryNode's UnaryOperator.
func (n *UnaryNode) Operator() UnaryOperator { return n.op }

// Operand returns the UnaryNode's operand.
func (n *UnaryNode) Operand() Node { return n.operand }

// Next returns the next node in the path, if any.
func (n *UnaryNode) Next() Node { return n.next }

// setNext sets the next node in the path.
func (n *UnaryNode) setNext(next Node) { n.next = next }

// ArrayIndexNode represents the nodes in an array index expression.
type ArrayIndexNode struct {
	subscripts []Node
	next       Node
}

// NewArrayIndex creates a new ArrayIndexNode consisting of subscripts,
// which must be BinaryNodes using the BinarySubscript operator.
func NewArrayIndex(subscripts []Node) *ArrayIndexNode {
	return &ArrayIndexNode{subscripts: subscripts}
}

// Subscripts returns all of the subscript nodes in n.
func (n *ArrayIndexNode) Subscripts() []Node { return n.subscripts }

// String produces the JSON Path array index string representation of the
// nodes in n.
func (n *ArrayIndexNode) String() string {
	buf := new(strings.Builder)
	n.writeSelf(buf)
	return buf.String()
}

// writeSelf writes the SQL/JSON path representation of n to buf, without any
// following nodes.
func (n *ArrayIndexNode) writeSelf(buf *strings.Builder) {
	buf.WriteRune('[')
	for i, node := range n.subscripts {
		if i > 0 {
			buf.WriteRune(',')
		}
		node.writeTo(buf, false, false)
	}
	buf.WriteRune(']')
}

// writeTo writes the SQL/JSON path representation of n to buf, followed by
// any nodes that follow it in the path.
func (n *ArrayIndexNode) writeTo(buf *strings.Builder, _, _ bool) {
	n.writeSelf(buf)
	writeNext(buf, n.next)
}

// priority returns the priority of the ArrayIndexNode, which is always 6.
func (*ArrayIndexNode) priority() uint8 { return lowestPriority }

// Next returns the next node in the path, if any.
func (n *ArrayIndexNode) Next() Node { return n.next }

// setNext sets the next node in the path.
func (n *ArrayIndexNode) setNext(next Node) { n.next = next }

// AnyNode represents any node in a path accessor with the expression
// 'first TO last'.
type AnyNode struct {
	// jpiAny
	first uint32
	last  uint32
	next  Node
}

// NewAny returns a new AnyNode with first as its first index and last as its
// last. If either number is negative it's considered unbounded.
func NewAny(first, last int) *AnyNode {
	n := &AnyNode{first: math.MaxUint32, last: math.MaxUint32}
	if first >= 0 {
		n.first = uint32(first)
	}
	if last >= 0 {
		n.last = uint32(last)
	}
	return n
}

// First returns the first depth of the node, where math.MaxUint32 means
// unbounded.
func (n *AnyNode) First() uint32 { return n.first }

// Last returns the last depth of the node, where math.MaxUint32 means
// unbounded.
func (n *AnyNode) Last() uint32 { return n.last }

// String returns the SQL/JSON path any node expression.
func (n *AnyNode) String() string {
	buf := new(strings.Builder)
	n.writeSelf(buf)
	return buf.String()
}

// writeSelf writes the SQL/JSON path representation of n to buf, without any
// following nodes.
func (n *AnyNode) writeSelf(buf *strings.Builder) {
	switch {
	case n.first == 0 && n.last == math.MaxUint32:
		buf.WriteString("**")
	case n.first == n.last:
		if n.first == math.MaxUint32 {
			buf.WriteString("**{last}")
		} else {
			buf.WriteString(fmt.Sprintf("**{%v}", n.first))
		}
	case n.first == math.MaxUint32:
		buf.WriteString(fmt.Sprintf("**{last to %v}", n.last))
	case n.last == math.MaxUint32:
		buf.WriteString(fmt.Sprintf("**{%v to last}", n.first))
	default:
		buf.WriteString(fmt.Sprintf("**{%v to %v}", n.first, n.last))
	}
}

// writeTo writes the SQL/JSON path representation of n to buf, followed by
// any nodes that follow it in the path. If inKey is true it will be preceded
// by a '.'.
func (n *AnyNode) writeTo(buf *strings.Builder, inKey, _ bool) {
	if inKey {
		buf.WriteRune('.')
	}
	n.writeSelf(buf)
	writeNext(buf, n.next)
}

// priority returns the priority of the AnyNode, which is always 6.
func (*AnyNode) priority() uint8 { return lowestPriority }

// Next returns the next node in the path, if any.
func (n *AnyNode) Next() Node { return n.next }

// setNext sets the next node in the path.
func (n *AnyNode) setNext(next Node) { n.next = next }

// RegexNode represents a regular expression.
type RegexNode struct {
	// jpiLikeRegex
	operand Node
	pattern string
	flags   regexFlags
	next    Node
}

// NewRegex returns a new RegexNode that compares node to the regular
// expression pattern configured by flags.
func NewRegex(expr Node, pattern, flags string) (*RegexNode, error) {
	f, err := newRegexFlags(flags)
	if err != nil {
		return nil, err
	}
	if err := validateRegex(pattern, f); err != nil {
		return nil, err
	}
	return &RegexNode{operand: expr, pattern: pattern, flags: f}, nil
}

// String returns the RegexNode as a SQL/JSON path 'like_regex' expression.
func (n *RegexNode) String() string {
	buf := new(strings.Builder)
	n.writeSelf(buf, false)
	return buf.String()
}

// writeSelf writes the SQL/JSON path representation of n to buf, without any
// following nodes. If withParens it will be wrapped in parentheses.
func (n *RegexNode) writeSelf(buf *strings.Builder, withParens bool) {
	if withParens {
		buf.WriteRune('(')
	}

	n.operand.writeTo(buf, false, n.operand.priority() <= n.priority())
	buf.WriteString(fmt.Sprintf(" like_regex %q%v", n.pattern, n.flags))

	if withParens {
		buf.WriteRune(')')
	}
}

// writeTo writes the SQL/JSON path representation of n to buf, followed by
// any nodes that follow it in the path.
func (n *RegexNode) writeTo(buf *strings.Builder, _, withParens bool) {
	n.writeSelf(buf, withParens)
	writeNext(buf, n.next)
}

// priority returns the priority of the RegexNode, which is always 6.
func (*RegexNode) priority() uint8 { return lowestPriority }

// Regexp returns a regexp.Regexp compiled from n.
func (n *RegexNode) Regexp() *regexp.Regexp {
	flags := n.flags.goFlags()
	if n.flags.shouldQuoteMeta() {
		return regexp.MustCompile(flags + regexp.QuoteMeta(n.pattern))
	}
	return regexp.MustCompile(n.flags.goFlags() + n.pattern)
}

// Operand returns the RegexNode's operand.
func (n *RegexNode) Operand() Node { return n.operand }

// Next returns the next node in the path, if any.
func (n *RegexNode) Next() Node { return n.next }

// setNext sets the next node in the path.
func (n *RegexNode) setNext(next Node) { n.next = next }

// LinkNodes assembles nodes into a single accessor path: each node's next
// pointer is set to the node that follows it, and the first node returned.
// If a node already ends in a chain of linked nodes, subsequent nodes are
// appended to the end of that chain. Panics if nodes is empty.
func LinkNodes(nodes []Node) Node {
	if len(nodes) == 0 {
		panic("No nodes passed to LinkNodes")
	}

	head := nodes[0]
	cur := lastNode(head)
	for _, node := range nodes[1:] {
		cur.setNext(node)
		if node != nil {
			cur = lastNode(node)
		}
	}

	return head
}

// lastNode returns the last node in the chain starting at node.
func lastNode(node Node) Node {
	for node.Next() != nil {
		node = node.Next()
	}
	return node
}

// AST represents the complete abstract syntax tree for a parsed SQL/JSON
// path.
type AST struct {
	root Node
	lax  bool
	pred bool
}

// New creates a new AST with n as its root. If lax is true it's considered a
// lax path query. If pred is true the path is a PostgreSQL-style "predicate
// check" expression whose root is a Boolean expression.
func New(lax, pred bool, n Node) (*AST, error) {
	if err := validateNode(n, 0, false); err != nil {
		return nil, err
	}
	return &AST{root: n, lax: lax, pred: pred}, nil
}

// String returns the SQL/JSON Path-encoded string representation of the
// path. A root-level operator expression is wrapped in parentheses, matching
// the normalized output of the PostgreSQL jsonpath type.
func (a *AST) String() string {
	buf := new(strings.Builder)
	if !a.lax {
		buf.WriteString("strict ")
	}
	a.root.writeTo(buf, false, true)
	return buf.String()
}

// Root returns the root node of the AST.
func (a *AST) Root() Node { return a.root }

// IsLax returns true if the path uses lax mode, where structural errors are
// suppressed and arrays wrapped and unwrapped as necessary.
func (a *AST) IsLax() bool { return a.lax }

// IsStrict returns true if the path uses strict mode, where structural
// errors are raised rather than suppressed.
func (a *AST) IsStrict() bool { return !a.lax }

// IsPredicate returns true if the AST represents a PostgreSQL-style
// "predicate check" path.
func (a *AST) IsPredicate() bool { return a.pred }

// validateNode recursively validates node, the nodes it contains, and the
// nodes that follow it. It's based on the Postgres flattenJsonPathParseItem
// function, but does not turn the AST into a binary representation, just
// does a second pass to detect any further issues.
func validateNode(node Node, depth int, inSubscript bool) error {
	if node == nil {
		return nil
	}

	switch node := node.(type) {
	case *BinaryNode:
		if err := validateNode(node.left, depth, inSubscript); err != nil {
			return err
		}
		if err := validateNode(node.right, depth, inSubscript); err != nil {
			return err
		}
	case *UnaryNode:
		argDepth := 0
		if node.op == UnaryFilter {
			argDepth++
		}
		if err := validateNode(node.operand, depth+argDepth, inSubscript); err != nil {
			return err
		}
	case *RegexNode:
		if err := validateNode(node.operand, depth, inSubscript); err != nil {
			return err
		}
	case *ConstNode:
		//nolint:exhaustive
		switch node.kind {
		case ConstCurrent:
			if depth <= 0 {
				//nolint:goerr113
				return errors.New("@ is not allowed in root expressions")
			}
		case ConstLast:
			if !inSubscript {
				//nolint:goerr113
				return errors.New("LAST is allowed only in array subscripts")
			}
		}
	case *ArrayIndexNode:
		for _, n := range node.subscripts {
			if err := validateNode(n, depth, true); err != nil {
				return err
			}
		}
	}

	return validateNode(node.Next(), depth, inSubscript)
}

// NewUnaryOrNumber returns a new node for op ast.UnaryPlus or ast.UnaryMinus.
// If node is a lone numeric or integer literal, the sign is folded into the
// literal and the literal node returned. Otherwise it returns a UnaryNode.
func NewUnaryOrNumber(op UnaryOperator, node Node) Node {
	switch node := node.(type) {
	case *NumericNode:
		if node.next == nil {
			//nolint:exhaustive
			switch op {
			case UnaryPlus:
				// Just a positive number, return it.
				return node
			case UnaryMinus:
				// Just a negative number, return it with the minus sign.
				return NewNumeric("-" + node.literal)
			default:
				panic(fmt.Sprintf("Operator must be + or - but is %v", op))
			}
		}
	case *IntegerNode:
		if node.next == nil {
			//nolint:exhaustive
			switch op {
			case UnaryPlus:
				return node
			case UnaryMinus:
				return NewInteger("-" + node.literal)
			default:
				panic(fmt.Sprintf("Operator must be + or - but is %v", op))
			}
		}
	}

	return NewUnary(op, node)
}
