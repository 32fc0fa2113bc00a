package schema

import (
	"slices"
	"strings"

	// Packages
	uitable "github.com/mutablelogic/go-stylist/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ToolTable implements table.TableData for a catalogue
type ToolTable Catalogue

///////////////////////////////////////////////////////////////////////////////
// TOOL TABLE (LIST)

func (t ToolTable) Header() []string {
	return []string{"NAME", "DESCRIPTION", "PARAMETERS"}
}

func (t ToolTable) Len() int {
	return len(t)
}

func (t ToolTable) Row(i int) []any {
	return []any{uitable.Bold{Value: t[i].Name}, uitable.Truncate(t[i].Description, 60), parameters(t[i])}
}

// parameters lists the input properties of a tool, with required
// properties marked
func parameters(t ToolDescriptor) string {
	s := t.Schema()
	if len(s.Properties) == 0 {
		return ""
	}
	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[name] = true
	}
	result := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		if required[name] {
			name += "*"
		}
		result = append(result, name)
	}
	slices.Sort(result)
	return strings.Join(result, ", ")
}
