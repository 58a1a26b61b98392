// Package render serializes an ir.Aggregate as a GraphQL schema document, a
// type-defs module and a resolver module.
package render

import "fmt"

// Lang selects the flavour of the generated modules.
type Lang string

const (
	JS Lang = "js"
	TS Lang = "ts"
)

func ParseLang(s string) (Lang, error) {
	switch Lang(s) {
	case "", JS:
		return JS, nil
	case TS:
		return TS, nil
	}
	return "", fmt.Errorf("unknown lang %q: want js or ts", s)
}

// Ext is the file extension of generated modules.
func (l Lang) Ext() string {
	if l == TS {
		return "ts"
	}
	return "js"
}
