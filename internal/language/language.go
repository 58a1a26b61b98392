// Package language checks generated SDL with gqlparser.
package language

import (
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

type (
	SchemaDocument = ast.SchemaDocument
	Schema         = ast.Schema
	Definition     = ast.Definition
)

// ParseSchema parses source without validating it.
func ParseSchema(name, source string) (*SchemaDocument, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, violations(name, err)
	}
	return doc, nil
}

// ValidateSchema loads source on top of the built-in prelude and reports
// every problem gqlparser finds as a ValidationError.
func ValidateSchema(name, source string) (*Schema, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, violations(name, err)
	}
	return schema, nil
}
