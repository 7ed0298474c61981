// Package problem assembles configured components into an ordered
// evaluation list and runs a fixed-point sweep over a shared variable list
// until the largest relative variable change drops below tolerance.
//
// Execution is deliberately single-threaded and synchronous: systems mutate
// shared state, and ordering is part of the model definition.
package problem

import (
	"context"
	"fmt"
	"math"

	"github.com/vk/oadframe/internal/api"
	"github.com/vk/oadframe/internal/configuration"
	"github.com/vk/oadframe/internal/ctxlog"
	"github.com/vk/oadframe/internal/registry"
	"github.com/vk/oadframe/internal/variables"
)

// Problem is one assembled, runnable model.
type Problem struct {
	Title      string
	Components []api.System
	Vars       *variables.VariableList

	maxIterations int
	tolerance     float64

	reg *registry.Registry
}

// Assemble resolves every component declared in the configuration against
// the registry, threading the configuration's resolution context through
// each lookup, and returns a Problem ready to run.
func Assemble(ctx context.Context, reg *registry.Registry, cfg *configuration.Config) (*Problem, error) {
	logger := ctxlog.FromContext(ctx)
	rc := cfg.ResolutionContext()

	p := &Problem{
		Title:         cfg.Title,
		Vars:          variables.NewList(),
		maxIterations: cfg.Solver.MaxIterations,
		tolerance:     cfg.Solver.Tolerance,
		reg:           reg,
	}

	for _, comp := range cfg.Model.Components {
		var system api.System
		var err error
		if comp.Provider != "" {
			system, err = reg.GetSystem(ctx, comp.Provider, comp.ComponentOptions())
		} else {
			system, err = reg.GetSubmodel(ctx, rc, comp.Service, comp.ComponentOptions())
		}
		if err != nil {
			return nil, fmt.Errorf("cannot assemble problem %q: %w", cfg.Title, err)
		}
		p.Components = append(p.Components, system)
	}

	logger.Info("Problem assembled.", "title", p.Title, "components", len(p.Components))
	return p, nil
}

// Run sweeps all components in order until convergence or the iteration
// cap, then releases loaded bundles. Returns the iteration count reached.
func (p *Problem) Run(ctx context.Context) (int, error) {
	logger := ctxlog.FromContext(ctx)

	defer p.reg.Loader().CleanMemory(ctx)

	previous := snapshot(p.Vars)
	for iteration := 1; iteration <= p.maxIterations; iteration++ {
		for _, system := range p.Components {
			if err := system.Compute(ctx, p.Vars); err != nil {
				return iteration, fmt.Errorf("component %q failed: %w", system.Name(), err)
			}
		}

		residual := maxRelativeChange(previous, p.Vars)
		logger.Debug("Sweep finished.", "iteration", iteration, "residual", residual)
		if residual <= p.tolerance {
			logger.Info("Problem converged.", "title", p.Title, "iterations", iteration)
			return iteration, nil
		}
		previous = snapshot(p.Vars)
	}

	return p.maxIterations, fmt.Errorf("problem %q did not converge within %d iterations", p.Title, p.maxIterations)
}

func snapshot(vars *variables.VariableList) map[string]float64 {
	out := make(map[string]float64, vars.Len())
	for _, name := range vars.Names() {
		v, _ := vars.Get(name)
		out[name] = v.Value
	}
	return out
}

// maxRelativeChange compares the current variable values against a
// snapshot. New variables count as full change so that a sweep introducing
// outputs never converges prematurely.
func maxRelativeChange(previous map[string]float64, vars *variables.VariableList) float64 {
	worst := 0.0
	for _, name := range vars.Names() {
		v, _ := vars.Get(name)
		old, seen := previous[name]
		if !seen {
			return math.Inf(1)
		}
		denom := math.Max(math.Abs(old), 1e-12)
		change := math.Abs(v.Value-old) / denom
		if change > worst {
			worst = change
		}
	}
	return worst
}
