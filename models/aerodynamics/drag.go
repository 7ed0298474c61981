package aerodynamics

import (
	"context"
	"math"

	"github.com/vk/oadframe/internal/api"
	"github.com/vk/oadframe/internal/variables"
)

// Variable names for the drag systems.
const (
	CD0Var      = "data:aerodynamics:cd0"
	CDVar       = "data:aerodynamics:cruise:cd"
	LOverDVar   = "data:aerodynamics:cruise:l_over_d"
	CruiseCLVar = "data:aerodynamics:cruise:cl"
)

// CD0 computes parasite drag with the equivalent-skin-friction wetted-area
// method: CD0 = Cf * Swet/Sref.
type CD0 struct {
	api.Base
	frictionCoefficient float64
	wettedAreaRatio     float64
}

func newCD0(name string, opts api.Options) (api.System, error) {
	return &CD0{
		Base:                api.NewBase(name),
		frictionCoefficient: opts.Float("friction_coefficient", 0.003),
		wettedAreaRatio:     opts.Float("wetted_area_ratio", 6.0),
	}, nil
}

func (s *CD0) Compute(ctx context.Context, vars *variables.VariableList) error {
	vars.Set(variables.New(CD0Var, s.frictionCoefficient*s.wettedAreaRatio, ""))
	return nil
}

// Polar evaluates the parabolic drag polar at the cruise lift coefficient
// and derives the cruise lift-to-drag ratio.
type Polar struct {
	api.Base
	cruiseCL float64
}

func newPolar(name string, opts api.Options) (api.System, error) {
	return &Polar{
		Base:     api.NewBase(name),
		cruiseCL: opts.Float("cruise_cl", 0.5),
	}, nil
}

func (s *Polar) Compute(ctx context.Context, vars *variables.VariableList) error {
	cl := vars.Float(CruiseCLVar, s.cruiseCL)
	cd0, err := vars.Require(CD0Var)
	if err != nil {
		return err
	}
	e, err := vars.Require(OswaldVar)
	if err != nil {
		return err
	}
	ar, err := vars.Require(AspectRatioVar)
	if err != nil {
		return err
	}

	cd := cd0 + cl*cl/(math.Pi*ar*e)
	vars.Set(variables.New(CruiseCLVar, cl, ""))
	vars.Set(variables.New(CDVar, cd, ""))
	vars.Set(variables.New(LOverDVar, cl/cd, ""))
	return nil
}
