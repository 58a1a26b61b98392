package render

import (
	"fmt"
	"strings"

	"github.com/hanpama/protoc-gen-apollo/internal/ir"
)

var templateEscaper = strings.NewReplacer("\\", "\\\\", "`", "\\`", "${", "\\${")

// TypeDefs renders a module holding each SDL block as a template string
// constant, exported together as one list in document order.
func TypeDefs(agg *ir.Aggregate, lang Lang) (string, error) {
	blocks, err := Blocks(agg)
	if err != nil {
		return "", err
	}

	decl := "const"
	if lang == TS {
		decl = "export const"
	}

	var b strings.Builder
	for _, block := range blocks {
		fmt.Fprintf(&b, "%s %s = `\n%s\n`\n\n", decl, block.Name, templateEscaper.Replace(block.SDL))
	}

	if lang == TS {
		b.WriteString("export default [\n")
	} else {
		b.WriteString("module.exports = [\n")
	}
	for _, block := range blocks {
		fmt.Fprintf(&b, "  %s,\n", block.Name)
	}
	b.WriteString("]\n")
	return b.String(), nil
}
