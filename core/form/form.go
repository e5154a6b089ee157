// Package form converts raw, user-typed field values into typed estimate
// inputs. It is the only place string parsing and form defaults live; the
// estimators only ever see types.RainwaterInput and types.HVACInput.
package form

import (
	"math"
	"strconv"
	"strings"

	"reuse-cost/core/types"
)

// RainwaterFields mirrors the rainwater form as entered
type RainwaterFields struct {
	RoofAreaSqft         string
	AnnualRainfallInches string
	PipingLengthFeet     string
	StorageGallons       string
	Potable              bool

	RoofType       string
	GutterMaterial string
	PipingMaterial string
	TankMaterial   string
	PumpSize       string

	IncludeExcavation   bool
	IncludePressureTank bool
}

// HVACFields mirrors the HVAC form as entered
type HVACFields struct {
	NumUnits         string
	TonsPerUnit      string
	DaysPerYear      string
	PipingLengthFeet string
	StorageGallons   string
	Potable          bool

	PipingMaterial string
	TankType       string
	PumpType       string
}

// NewRainwaterFields returns a blank rainwater form with its initial selections
func NewRainwaterFields() RainwaterFields {
	return RainwaterFields{
		RoofType:            string(types.RoofAsphaltShingles),
		GutterMaterial:      string(types.GutterAluminum),
		PipingMaterial:      string(types.PipingPVC),
		TankMaterial:        string(types.TankPolyethyleneAboveGround),
		PumpSize:            string(types.PumpMidSizedWholeHouse),
		IncludePressureTank: true,
	}
}

// NewHVACFields returns a blank HVAC form with its initial selections
func NewHVACFields() HVACFields {
	return HVACFields{
		PipingMaterial: string(types.HVACPipingPVCTubing),
		TankType:       string(types.HVACTankSmallPoly),
		PumpType:       string(types.HVACPumpSmallCondensate),
	}
}

// Number parses a numeric field; blank or unparseable text yields NaN
func Number(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Optional parses an optional numeric field; blank text means not supplied
func Optional(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	f := Number(s)
	return &f
}

// OrNaN dereferences p, treating nil as a missing value
func OrNaN(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

func choice(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}

// Input converts the form into a typed input. Blank selections fall back to
// the form's initial choice; unrecognised selections pass through so the
// validator can reject them.
func (f RainwaterFields) Input() types.RainwaterInput {
	in := types.RainwaterInput{
		RoofAreaSqft:         Number(f.RoofAreaSqft),
		AnnualRainfallInches: Number(f.AnnualRainfallInches),
		PipingLengthFeet:     Number(f.PipingLengthFeet),
		StorageGallons:       Optional(f.StorageGallons),
		Potable:              f.Potable,
		RoofType:             types.RoofType(strings.TrimSpace(f.RoofType)),
		GutterMaterial:       types.GutterMaterial(strings.TrimSpace(f.GutterMaterial)),
		PipingMaterial:       types.PipingMaterial(strings.TrimSpace(f.PipingMaterial)),
		TankMaterial:         types.TankMaterial(strings.TrimSpace(f.TankMaterial)),
		PumpSize:             types.PumpSize(strings.TrimSpace(f.PumpSize)),
		IncludeExcavation:    f.IncludeExcavation,
		IncludePressureTank:  f.IncludePressureTank,
	}
	ApplyRainwaterDefaults(&in)
	return in
}

// Input converts the form into a typed input
func (f HVACFields) Input() types.HVACInput {
	in := types.HVACInput{
		NumUnits:         Number(f.NumUnits),
		TonsPerUnit:      Number(f.TonsPerUnit),
		DaysPerYear:      Number(f.DaysPerYear),
		PipingLengthFeet: Number(f.PipingLengthFeet),
		StorageGallons:   Optional(f.StorageGallons),
		Potable:          f.Potable,
		PipingMaterial:   types.HVACPipingMaterial(strings.TrimSpace(f.PipingMaterial)),
		TankType:         types.HVACTankType(strings.TrimSpace(f.TankType)),
		PumpType:         types.HVACPumpType(strings.TrimSpace(f.PumpType)),
	}
	ApplyHVACDefaults(&in)
	return in
}

// ApplyRainwaterDefaults fills blank material selections
func ApplyRainwaterDefaults(in *types.RainwaterInput) {
	d := NewRainwaterFields()
	in.RoofType = types.RoofType(choice(string(in.RoofType), d.RoofType))
	in.GutterMaterial = types.GutterMaterial(choice(string(in.GutterMaterial), d.GutterMaterial))
	in.PipingMaterial = types.PipingMaterial(choice(string(in.PipingMaterial), d.PipingMaterial))
	in.TankMaterial = types.TankMaterial(choice(string(in.TankMaterial), d.TankMaterial))
	in.PumpSize = types.PumpSize(choice(string(in.PumpSize), d.PumpSize))
}

// ApplyHVACDefaults fills blank equipment selections
func ApplyHVACDefaults(in *types.HVACInput) {
	d := NewHVACFields()
	in.PipingMaterial = types.HVACPipingMaterial(choice(string(in.PipingMaterial), d.PipingMaterial))
	in.TankType = types.HVACTankType(choice(string(in.TankType), d.TankType))
	in.PumpType = types.HVACPumpType(choice(string(in.PumpType), d.PumpType))
}
