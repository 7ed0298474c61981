package variables

import (
	"fmt"
	"sort"
)

// VariableList is an ordered, name-addressable collection of variables.
// Insertion order is preserved so that serialized output stays stable
// across runs.
type VariableList struct {
	names  []string
	byName map[string]Variable
}

// NewList creates an empty VariableList.
func NewList() *VariableList {
	return &VariableList{byName: make(map[string]Variable)}
}

// Len returns the number of variables in the list.
func (l *VariableList) Len() int {
	return len(l.names)
}

// Names returns the variable names in insertion order.
func (l *VariableList) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// SortedNames returns the variable names in lexical order.
func (l *VariableList) SortedNames() []string {
	out := l.Names()
	sort.Strings(out)
	return out
}

// Has reports whether a variable with the given name is present.
func (l *VariableList) Has(name string) bool {
	_, ok := l.byName[name]
	return ok
}

// Get returns the variable with the given name.
func (l *VariableList) Get(name string) (Variable, bool) {
	v, ok := l.byName[name]
	return v, ok
}

// Float returns the value of the named variable, or the fallback when the
// variable is absent.
func (l *VariableList) Float(name string, fallback float64) float64 {
	if v, ok := l.byName[name]; ok {
		return v.Value
	}
	return fallback
}

// Set inserts or replaces a variable, preserving the position of an
// existing entry.
func (l *VariableList) Set(v Variable) {
	if _, exists := l.byName[v.Name]; !exists {
		l.names = append(l.names, v.Name)
	}
	l.byName[v.Name] = v
}

// SetValue updates the value of an existing variable or inserts a new
// unit-less one.
func (l *VariableList) SetValue(name string, value float64) {
	if v, ok := l.byName[name]; ok {
		v.Value = value
		l.byName[name] = v
		return
	}
	l.Set(New(name, value, ""))
}

// Update merges another list into this one. Existing entries are replaced;
// entries only present in other are appended when addNew is true.
func (l *VariableList) Update(other *VariableList, addNew bool) {
	for _, name := range other.names {
		v := other.byName[name]
		if _, exists := l.byName[name]; exists || addNew {
			l.Set(v)
		}
	}
}

// Require returns the value of the named variable, or an error naming the
// missing input. Systems use it for inputs the configuration must provide.
func (l *VariableList) Require(name string) (float64, error) {
	v, ok := l.byName[name]
	if !ok {
		return 0, fmt.Errorf("required variable %q is not present", name)
	}
	return v.Value, nil
}
