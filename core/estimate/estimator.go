// Package estimate turns validated inputs and the rate catalog into itemized
// cost estimates. Every call is a pure function of its input and the
// catalog: nothing is cached, logged or mutated.
package estimate

import (
	"reuse-cost/core/catalog"
	"reuse-cost/core/types"
	"reuse-cost/core/validation"
	"reuse-cost/core/volume"
)

// Estimator prices requests against one catalog
type Estimator struct {
	catalog *catalog.Catalog
}

// New creates an estimator after checking that cat is well formed
func New(cat *catalog.Catalog) (*Estimator, error) {
	if err := catalog.Check(cat); err != nil {
		return nil, err
	}
	return &Estimator{catalog: cat}, nil
}

// Default returns an estimator over the built-in catalog
func Default() *Estimator {
	return &Estimator{catalog: catalog.Default()}
}

// Catalog returns the catalog the estimator prices against
func (e *Estimator) Catalog() *catalog.Catalog {
	return e.catalog
}

// Rainwater estimates a rooftop harvesting system. The input must already
// have passed validation.Rainwater; it is not re-validated here.
func (e *Estimator) Rainwater(in types.RainwaterInput) (*types.CalculatorResult, error) {
	vol, err := volume.Rainwater(&e.catalog.Rainwater, in)
	if err != nil {
		return nil, err
	}
	breakdown, err := composeRainwater(e.catalog, in, vol)
	if err != nil {
		return nil, err
	}
	return aggregate(types.SystemRainwater, vol, breakdown), nil
}

// HVAC estimates a condensate recovery system. The input must already have
// passed validation.HVAC; it is not re-validated here.
func (e *Estimator) HVAC(in types.HVACInput) (*types.CalculatorResult, error) {
	vol := volume.HVAC(&e.catalog.HVAC, in)
	breakdown, err := composeHVAC(e.catalog, in, vol)
	if err != nil {
		return nil, err
	}
	return aggregate(types.SystemHVAC, vol, breakdown), nil
}

// ValidatedRainwater validates first and returns a *validation.Failed
// instead of estimating when the input is rejected
func (e *Estimator) ValidatedRainwater(in types.RainwaterInput) (*types.CalculatorResult, error) {
	if err := validation.AsError(types.SystemRainwater, validation.Rainwater(e.catalog, in)); err != nil {
		return nil, err
	}
	return e.Rainwater(in)
}

// ValidatedHVAC validates first and returns a *validation.Failed instead of
// estimating when the input is rejected
func (e *Estimator) ValidatedHVAC(in types.HVACInput) (*types.CalculatorResult, error) {
	if err := validation.AsError(types.SystemHVAC, validation.HVAC(e.catalog, in)); err != nil {
		return nil, err
	}
	return e.HVAC(in)
}

// EstimateRainwaterCollectionCost prices a validated rainwater input with the built-in catalog
func EstimateRainwaterCollectionCost(in types.RainwaterInput) (*types.CalculatorResult, error) {
	return Default().Rainwater(in)
}

// EstimateHVACCondensateSystemCost prices a validated HVAC input with the built-in catalog
func EstimateHVACCondensateSystemCost(in types.HVACInput) (*types.CalculatorResult, error) {
	return Default().HVAC(in)
}
