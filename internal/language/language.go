package language

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
)

// Error is the located parse error type reported by gqlparser.
type Error = gqlerror.Error

// ParseQuery parses a GraphQL query/mutation document.
func ParseQuery(source string) (*QueryDocument, error) {
	return parser.ParseQuery(&ast.Source{Input: source})
}

// ParseSchema parses GraphQL SDL into a schema document.
func ParseSchema(name, source string) (*SchemaDocument, error) {
	return parser.ParseSchema(&ast.Source{Name: name, Input: source})
}
