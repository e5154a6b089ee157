package hcl

import (
	"math"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"

	"reuse-cost/core/form"
	"reuse-cost/core/types"
	"reuse-cost/internal/errors"
)

// Site is a parsed site description; either system may be absent
type Site struct {
	Rainwater *types.RainwaterInput
	HVAC      *types.HVACInput
}

type siteFile struct {
	Rainwater *rainwaterSite `hcl:"rainwater,block"`
	HVAC      *hvacSite      `hcl:"hvac,block"`
}

type rainwaterSite struct {
	RoofAreaSqft         *float64 `hcl:"roof_area_sqft,optional"`
	AnnualRainfallInches *float64 `hcl:"annual_rainfall_inches,optional"`
	PipingLengthFeet     *float64 `hcl:"piping_length_feet,optional"`
	StorageGallons       *float64 `hcl:"storage_gallons,optional"`
	Potable              *bool    `hcl:"potable,optional"`

	RoofType       *string `hcl:"roof_type,optional"`
	GutterMaterial *string `hcl:"gutter_material,optional"`
	PipingMaterial *string `hcl:"piping_material,optional"`
	TankMaterial   *string `hcl:"tank_material,optional"`
	PumpSize       *string `hcl:"pump_size,optional"`

	IncludeExcavation   *bool `hcl:"include_excavation,optional"`
	IncludePressureTank *bool `hcl:"include_pressure_tank,optional"`
}

type hvacSite struct {
	NumUnits         *float64 `hcl:"num_units,optional"`
	TonsPerUnit      *float64 `hcl:"tons_per_unit,optional"`
	DaysPerYear      *float64 `hcl:"days_per_year,optional"`
	PipingLengthFeet *float64 `hcl:"piping_length_feet,optional"`
	StorageGallons   *float64 `hcl:"storage_gallons,optional"`
	Potable          *bool    `hcl:"potable,optional"`

	PipingMaterial *string `hcl:"piping_material,optional"`
	TankType       *string `hcl:"tank_type,optional"`
	PumpType       *string `hcl:"pump_type,optional"`
}

// LoadSite reads a site description file
func (l *Loader) LoadSite(path string) (*Site, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "read site file %s", path)
	}
	return l.ParseSite(src, path)
}

// ParseSite decodes site source. Missing numbers become NaN and are reported
// by validation; missing selections take the form defaults.
func (l *Loader) ParseSite(src []byte, filename string) (*Site, error) {
	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Parsing("parse site file "+filename, diags)
	}

	var sf siteFile
	if diags := gohcl.DecodeBody(file.Body, nil, &sf); diags.HasErrors() {
		return nil, errors.Parsing("decode site file "+filename, diags)
	}
	if sf.Rainwater == nil && sf.HVAC == nil {
		return nil, errors.Newf(errors.TypeInput, "site file %s has neither a rainwater nor an hvac block", filename)
	}

	site := &Site{}
	if sf.Rainwater != nil {
		in := sf.Rainwater.input()
		site.Rainwater = &in
	}
	if sf.HVAC != nil {
		in := sf.HVAC.input()
		site.HVAC = &in
	}
	return site, nil
}

func number(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

func text(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func flag(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}

func (s *rainwaterSite) input() types.RainwaterInput {
	defaults := form.NewRainwaterFields()
	in := types.RainwaterInput{
		RoofAreaSqft:         number(s.RoofAreaSqft),
		AnnualRainfallInches: number(s.AnnualRainfallInches),
		PipingLengthFeet:     number(s.PipingLengthFeet),
		StorageGallons:       s.StorageGallons,
		Potable:              flag(s.Potable, false),
		RoofType:             types.RoofType(text(s.RoofType)),
		GutterMaterial:       types.GutterMaterial(text(s.GutterMaterial)),
		PipingMaterial:       types.PipingMaterial(text(s.PipingMaterial)),
		TankMaterial:         types.TankMaterial(text(s.TankMaterial)),
		PumpSize:             types.PumpSize(text(s.PumpSize)),
		IncludeExcavation:    flag(s.IncludeExcavation, defaults.IncludeExcavation),
		IncludePressureTank:  flag(s.IncludePressureTank, defaults.IncludePressureTank),
	}
	form.ApplyRainwaterDefaults(&in)
	return in
}

func (s *hvacSite) input() types.HVACInput {
	in := types.HVACInput{
		NumUnits:         number(s.NumUnits),
		TonsPerUnit:      number(s.TonsPerUnit),
		DaysPerYear:      number(s.DaysPerYear),
		PipingLengthFeet: number(s.PipingLengthFeet),
		StorageGallons:   s.StorageGallons,
		Potable:          flag(s.Potable, false),
		PipingMaterial:   types.HVACPipingMaterial(text(s.PipingMaterial)),
		TankType:         types.HVACTankType(text(s.TankType)),
		PumpType:         types.HVACPumpType(text(s.PumpType)),
	}
	form.ApplyHVACDefaults(&in)
	return in
}
