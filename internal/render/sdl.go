package render

import (
	"fmt"
	"strings"

	"github.com/hanpama/protoc-gen-apollo/internal/ir"
)

// SDL renders the aggregate as a GraphQL schema document. Every block is
// preceded by a blank line and the document has no trailing newline:
// enums, then each object followed by its input, then service types, then
// the Query and Subscription roots when they exist.
func SDL(agg *ir.Aggregate) (string, error) {
	blocks, err := Blocks(agg)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, block := range blocks {
		b.WriteString("\n\n")
		b.WriteString(block.SDL)
	}
	return b.String(), nil
}

// Block is the SDL of one top-level definition, named the way the type-defs
// module names its constant.
type Block struct {
	Name string
	SDL  string
}

// Blocks renders every definition of the aggregate in document order.
func Blocks(agg *ir.Aggregate) ([]Block, error) {
	if err := check(agg); err != nil {
		return nil, err
	}
	var blocks []Block
	for _, e := range agg.Enums {
		blocks = append(blocks, Block{Name: e.Name, SDL: renderEnum(e)})
	}
	for _, o := range agg.Objects {
		input := o.Input()
		blocks = append(blocks,
			Block{Name: o.Name, SDL: renderObject(o)},
			Block{Name: input.Name, SDL: renderInputObject(input)},
		)
	}
	for _, s := range agg.Services {
		blocks = append(blocks, Block{Name: s.Name, SDL: renderService(s)})
	}
	if q := agg.Query(); q != nil {
		blocks = append(blocks, Block{Name: q.Name, SDL: renderObject(q)})
	}
	if sub := agg.Subscription(); sub != nil {
		blocks = append(blocks, Block{Name: sub.Name, SDL: renderObject(sub)})
	}
	return blocks, nil
}

// check rejects field kinds no GraphQL type is known for.
func check(agg *ir.Aggregate) error {
	for _, o := range agg.Objects {
		for _, f := range o.Fields {
			switch f.Type.Kind {
			case ir.KindBool, ir.KindString, ir.KindInt, ir.KindFloat, ir.KindMessage, ir.KindEnum:
			default:
				return fmt.Errorf("field %s of %s: unknown kind %q", f.Name, o.Name, f.Type.Kind)
			}
		}
	}
	return nil
}

// ----- render helpers -----

// descriptionLines splits a comment into lines. A final newline does not
// start another line and carriage returns are dropped.
func descriptionLines(desc string) []string {
	if desc == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(desc, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func renderDescription(b *strings.Builder, desc, indent string) {
	for _, line := range descriptionLines(desc) {
		b.WriteString(indent)
		b.WriteString("#")
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func renderEnum(e *ir.EnumType) string {
	var b strings.Builder
	renderDescription(&b, e.Description, "")
	b.WriteString("enum ")
	b.WriteString(e.Name)
	b.WriteString(" {\n")
	for _, v := range e.Values {
		renderDescription(&b, v.Description, "  ")
		b.WriteString("  ")
		b.WriteString(v.Name)
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func renderObject(o *ir.ObjectType) string {
	var b strings.Builder
	renderDescription(&b, o.Description, "")
	b.WriteString("type ")
	b.WriteString(o.Name)
	b.WriteString(" {\n")
	for _, f := range o.Fields {
		renderField(&b, f)
	}
	b.WriteString("}")
	return b.String()
}

func renderInputObject(in *ir.InputType) string {
	var b strings.Builder
	renderDescription(&b, in.Description, "")
	b.WriteString("input ")
	b.WriteString(in.Name)
	b.WriteString(" {\n")
	for _, f := range in.Fields {
		renderField(&b, f)
	}
	b.WriteString("}")
	return b.String()
}

func renderField(b *strings.Builder, f ir.Field) {
	renderDescription(b, f.Description, "  ")
	b.WriteString("  ")
	b.WriteString(f.Name)
	b.WriteString(": ")
	b.WriteString(f.TypeExpr())
	b.WriteString("\n")
}

func renderService(s *ir.Service) string {
	var b strings.Builder
	renderDescription(&b, s.Description, "")
	b.WriteString("type ")
	b.WriteString(s.TypeName())
	b.WriteString(" {")
	for _, m := range s.Methods {
		for _, line := range descriptionLines(m.Description) {
			b.WriteString("\n  #")
			b.WriteString(line)
		}
		fmt.Fprintf(&b, "\n  %s(%s: %s!): %s!", m.FieldName(), m.ArgName(), m.InputTypeName(), m.OutputTypeName())
	}
	b.WriteString("\n}")
	return b.String()
}
