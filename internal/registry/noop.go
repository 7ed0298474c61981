package registry

import (
	"context"

	"github.com/vk/oadframe/internal/variables"
)

// noopSubmodel is the inert placeholder returned for deactivated services.
// It computes nothing and touches no variables.
type noopSubmodel struct {
	name string
}

func newNoopSubmodel(serviceID string) *noopSubmodel {
	return &noopSubmodel{name: "noop[" + serviceID + "]"}
}

func (s *noopSubmodel) Name() string { return s.name }

func (s *noopSubmodel) Setup(ctx context.Context) error { return nil }

func (s *noopSubmodel) Compute(ctx context.Context, vars *variables.VariableList) error {
	return nil
}
