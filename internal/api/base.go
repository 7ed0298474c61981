package api

import "context"

// Base provides the Name and a no-op Setup for systems that need no
// preparation. Embed it and override Setup when needed.
type Base struct {
	name string
}

// NewBase creates a Base carrying the assigned instance name.
func NewBase(name string) Base {
	return Base{name: name}
}

// Name returns the instance name assigned at instantiation.
func (b Base) Name() string { return b.name }

// Setup does nothing by default.
func (b Base) Setup(ctx context.Context) error { return nil }
