package weight

import (
	"context"

	"github.com/vk/oadframe/internal/api"
	"github.com/vk/oadframe/internal/variables"
)

// Variable names read and written by the weight systems.
const (
	PayloadReqVar = "data:TLAR:payload_mass"
	PayloadVar    = "data:weight:payload"
	OWEVar        = "data:weight:owe"
	MTOWVar       = "data:weight:mtow"
	FuelVar       = "data:weight:fuel"
)

// Payload publishes the design payload, from the top-level requirement
// variable when present, otherwise from the registered default.
type Payload struct {
	api.Base
	defaultPayload float64
}

func newPayload(name string, opts api.Options) (api.System, error) {
	return &Payload{
		Base:           api.NewBase(name),
		defaultPayload: opts.Float("default_payload_kg", 15000.0),
	}, nil
}

func (s *Payload) Compute(ctx context.Context, vars *variables.VariableList) error {
	payload := vars.Float(PayloadReqVar, s.defaultPayload)
	vars.Set(variables.New(PayloadVar, payload, "kg"))
	return nil
}

// MassBreakdown closes the takeoff weight: OWE is a statistical fraction of
// MTOW, and MTOW is the sum of OWE, payload, and mission fuel. Iterated to
// a fixed point by the problem sweep.
type MassBreakdown struct {
	api.Base
	emptyWeightFraction float64
}

func newMassBreakdown(name string, opts api.Options) (api.System, error) {
	return &MassBreakdown{
		Base:                api.NewBase(name),
		emptyWeightFraction: opts.Float("empty_weight_fraction", 0.55),
	}, nil
}

func (s *MassBreakdown) Compute(ctx context.Context, vars *variables.VariableList) error {
	mtow := vars.Float(MTOWVar, 50000.0)
	payload := vars.Float(PayloadVar, 0.0)
	fuel := vars.Float(FuelVar, 0.0)

	owe := s.emptyWeightFraction * mtow
	vars.Set(variables.New(OWEVar, owe, "kg"))
	vars.Set(variables.New(MTOWVar, owe+payload+fuel, "kg"))
	return nil
}
