package api

import (
	"fmt"
	"sort"
	"strings"
)

// Options holds construction-time option values for a system, keyed by
// option name. Registration defaults and caller overrides are merged with
// MergeOptions before a builder ever runs.
type Options map[string]any

// UnknownOptionError reports an option name that the target factory never
// declared. It is raised before the component's Setup runs.
type UnknownOptionError struct {
	FactoryName string
	OptionName  string
	Declared    []string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("option %q is not declared by factory %q (declared options: %s)",
		e.OptionName, e.FactoryName, strings.Join(e.Declared, ", "))
}

// MergeOptions overlays caller overrides onto registration defaults, caller
// values winning. Every override key must exist among the defaults;
// an undeclared key yields UnknownOptionError. The inputs are not mutated.
func MergeOptions(factoryName string, defaults, overrides Options) (Options, error) {
	merged := make(Options, len(defaults))
	for k, v := range defaults {
		merged[k] = v
	}

	for k, v := range overrides {
		if _, declared := defaults[k]; !declared {
			return nil, &UnknownOptionError{
				FactoryName: factoryName,
				OptionName:  k,
				Declared:    sortedKeys(defaults),
			}
		}
		merged[k] = v
	}

	return merged, nil
}

func sortedKeys(opts Options) []string {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Float reads a float64 option, accepting int values for convenience since
// HCL and YAML numbers may decode either way.
func (o Options) Float(key string, fallback float64) float64 {
	switch v := o[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return fallback
	}
}

// String reads a string option with a fallback.
func (o Options) String(key string, fallback string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return fallback
}

// Bool reads a bool option with a fallback.
func (o Options) Bool(key string, fallback bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return fallback
}
