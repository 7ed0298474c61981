// Package api defines the component-model contract that registered systems
// and submodels implement, together with the option-merge rules applied
// before a component's setup phase runs.
package api

import (
	"context"

	"github.com/vk/oadframe/internal/variables"
)

// System is the interface every registered component must satisfy. A system
// reads and writes variables on a shared variable list; the orchestration
// layer decides ordering and convergence.
type System interface {
	// Name returns the unique instance name assigned at instantiation.
	Name() string

	// Setup prepares the system after its options have been merged. It runs
	// exactly once per instance, before the first Compute call.
	Setup(ctx context.Context) error

	// Compute evaluates the system against the shared variable list.
	Compute(ctx context.Context, vars *variables.VariableList) error
}

// Builder creates a new System instance from a merged options map. The
// options passed in are always the registration defaults overlaid with the
// caller's overrides; builders never see partial option sets.
type Builder func(name string, opts Options) (System, error)
