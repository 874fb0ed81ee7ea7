// Package parser parses SQL/JSON paths.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/corvid-db/jsonpath/ast"
)

//go:generate goyacc -v "" -o grammar.go -p path grammar.y

// ErrParse errors are returned by the parser.
var ErrParse = errors.New("parser")

// methodDate marks the .date() method in the grammar. It parses like the
// other parenless methods, but executes as a datetime conversion, so
// newMethodNode turns it into a unary operator rather than a method node.
const methodDate ast.MethodName = -1

// newMethodNode returns the AST node for a parenless method invocation.
func newMethodNode(name ast.MethodName) ast.Node {
	if name == methodDate {
		return ast.NewUnary(ast.UnaryDate, nil)
	}
	return ast.NewMethod(name)
}

// Parse parses path.
func Parse(path string) (*ast.AST, error) {
	lexer := newLexer(path)
	_ = pathParse(lexer)

	if len(lexer.errors) > 0 {
		return nil, fmt.Errorf(
			"%w: %v", ErrParse, strings.Join(lexer.errors, "\n"),
		)
	}

	return lexer.result, nil
}
