package aerodynamics

import (
	"context"
	"math"

	"github.com/vk/oadframe/internal/api"
	"github.com/vk/oadframe/internal/variables"
)

// Variable names read and written by the aerodynamic systems.
const (
	AspectRatioVar = "data:geometry:wing:aspect_ratio"
	OswaldVar      = "data:aerodynamics:oswald_coefficient"
)

// OswaldRaymer estimates the Oswald span efficiency with Raymer's
// statistical fit for straight wings.
type OswaldRaymer struct {
	api.Base
	kFactor float64
}

func newOswaldRaymer(name string, opts api.Options) (api.System, error) {
	return &OswaldRaymer{
		Base:    api.NewBase(name),
		kFactor: opts.Float("k_factor", 1.0),
	}, nil
}

// Coefficient implements OswaldProvider.
func (s *OswaldRaymer) Coefficient(aspectRatio float64) float64 {
	return s.kFactor * (1.78*(1-0.045*math.Pow(aspectRatio, 0.68)) - 0.64)
}

func (s *OswaldRaymer) Compute(ctx context.Context, vars *variables.VariableList) error {
	ar, err := vars.Require(AspectRatioVar)
	if err != nil {
		return err
	}
	vars.Set(variables.New(OswaldVar, s.Coefficient(ar), ""))
	return nil
}

// OswaldShevell estimates the Oswald span efficiency with Shevell's
// induced-drag correlation.
type OswaldShevell struct {
	api.Base
	kFactor float64
}

func newOswaldShevell(name string, opts api.Options) (api.System, error) {
	return &OswaldShevell{
		Base:    api.NewBase(name),
		kFactor: opts.Float("k_factor", 1.0),
	}, nil
}

// Coefficient implements OswaldProvider.
func (s *OswaldShevell) Coefficient(aspectRatio float64) float64 {
	return s.kFactor / (1.05 + 0.007*math.Pi*aspectRatio)
}

func (s *OswaldShevell) Compute(ctx context.Context, vars *variables.VariableList) error {
	ar, err := vars.Require(AspectRatioVar)
	if err != nil {
		return err
	}
	vars.Set(variables.New(OswaldVar, s.Coefficient(ar), ""))
	return nil
}
