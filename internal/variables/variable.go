// Package variables provides the variable table shared by systems during a
// run, together with XML serialization of variable sets. Variable names are
// colon-separated paths (e.g. "data:geometry:wing:area") that map directly
// onto nested XML elements.
package variables

import (
	"fmt"

	"github.com/vk/oadframe/internal/vardesc"
)

// Variable is one named scalar quantity with optional units and a free-text
// description. Descriptions left empty are filled from the process-wide
// variable-description table at creation time.
type Variable struct {
	Name        string
	Value       float64
	Units       string
	Description string
}

// New creates a Variable, filling the description from the loaded
// variable-description side files when none is given.
func New(name string, value float64, units string) Variable {
	return Variable{
		Name:        name,
		Value:       value,
		Units:       units,
		Description: vardesc.Describe(name),
	}
}

func (v Variable) String() string {
	if v.Units == "" {
		return fmt.Sprintf("%s = %g", v.Name, v.Value)
	}
	return fmt.Sprintf("%s = %g [%s]", v.Name, v.Value, v.Units)
}
