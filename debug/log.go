package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ldoc-format/ldoc/ir"
)

// Logf writes to stderr. Schemas, rule sets, values and generic data
// arguments are rendered as indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, ir.Schema, ir.RuleSet, *ir.SchemaNode, *ir.RuleNode:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Value:
			args[i] = x.Text()
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
