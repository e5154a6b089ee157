// Package api - API types for cost estimation
// These types define the contract for the /api/estimate endpoints.
// API is stateless, idempotent, and deterministic.
package api

import (
	"reuse-cost/core/catalog"
	"reuse-cost/core/form"
	"reuse-cost/core/output"
	"reuse-cost/core/types"
)

// RainwaterRequest is the input to POST /api/estimate/rainwater.
// Numbers are pointers so an omitted field is reported as missing rather
// than read as zero.
type RainwaterRequest struct {
	RoofAreaSqft         *float64 `json:"roof_area_sqft"`
	AnnualRainfallInches *float64 `json:"annual_rainfall_inches"`
	PipingLengthFeet     *float64 `json:"piping_length_feet"`
	StorageGallons       *float64 `json:"storage_gallons,omitempty"`
	Potable              bool     `json:"potable"`

	RoofType       string `json:"roof_type,omitempty"`
	GutterMaterial string `json:"gutter_material,omitempty"`
	PipingMaterial string `json:"piping_material,omitempty"`
	TankMaterial   string `json:"tank_material,omitempty"`
	PumpSize       string `json:"pump_size,omitempty"`

	IncludeExcavation   bool  `json:"include_excavation"`
	IncludePressureTank *bool `json:"include_pressure_tank,omitempty"`
}

// Input converts the request, filling omitted selections with form defaults
func (r *RainwaterRequest) Input() types.RainwaterInput {
	pressure := form.NewRainwaterFields().IncludePressureTank
	if r.IncludePressureTank != nil {
		pressure = *r.IncludePressureTank
	}
	in := types.RainwaterInput{
		RoofAreaSqft:         form.OrNaN(r.RoofAreaSqft),
		AnnualRainfallInches: form.OrNaN(r.AnnualRainfallInches),
		PipingLengthFeet:     form.OrNaN(r.PipingLengthFeet),
		StorageGallons:       r.StorageGallons,
		Potable:              r.Potable,
		RoofType:             types.RoofType(r.RoofType),
		GutterMaterial:       types.GutterMaterial(r.GutterMaterial),
		PipingMaterial:       types.PipingMaterial(r.PipingMaterial),
		TankMaterial:         types.TankMaterial(r.TankMaterial),
		PumpSize:             types.PumpSize(r.PumpSize),
		IncludeExcavation:    r.IncludeExcavation,
		IncludePressureTank:  pressure,
	}
	form.ApplyRainwaterDefaults(&in)
	return in
}

// HVACRequest is the input to POST /api/estimate/hvac
type HVACRequest struct {
	NumUnits         *float64 `json:"num_units"`
	TonsPerUnit      *float64 `json:"tons_per_unit"`
	DaysPerYear      *float64 `json:"days_per_year"`
	PipingLengthFeet *float64 `json:"piping_length_feet"`
	StorageGallons   *float64 `json:"storage_gallons,omitempty"`
	Potable          bool     `json:"potable"`

	PipingMaterial string `json:"piping_material,omitempty"`
	TankType       string `json:"tank_type,omitempty"`
	PumpType       string `json:"pump_type,omitempty"`
}

// Input converts the request, filling omitted selections with form defaults
func (r *HVACRequest) Input() types.HVACInput {
	in := types.HVACInput{
		NumUnits:         form.OrNaN(r.NumUnits),
		TonsPerUnit:      form.OrNaN(r.TonsPerUnit),
		DaysPerYear:      form.OrNaN(r.DaysPerYear),
		PipingLengthFeet: form.OrNaN(r.PipingLengthFeet),
		StorageGallons:   r.StorageGallons,
		Potable:          r.Potable,
		PipingMaterial:   types.HVACPipingMaterial(r.PipingMaterial),
		TankType:         types.HVACTankType(r.TankType),
		PumpType:         types.HVACPumpType(r.PumpType),
	}
	form.ApplyHVACDefaults(&in)
	return in
}

// EstimateResponse is the output of the estimate endpoints
type EstimateResponse struct {
	Status string `json:"status"`
	*output.Document
	Metadata *ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains execution metadata
type ResponseMetadata struct {
	InputHash      string `json:"input_hash"`
	EngineVersion  string `json:"engine_version"`
	CatalogVersion string `json:"catalog_version"`
	DurationMs     int64  `json:"duration_ms"`
}

// CatalogResponse is the output of GET /api/catalog
type CatalogResponse struct {
	Version   string              `json:"version"`
	Currency  types.Currency      `json:"currency"`
	Rates     []catalog.Entry     `json:"rates"`
	Constants []catalog.Constant  `json:"constants"`
	Options   map[string][]string `json:"options"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failure
type ErrorBody struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Messages []string `json:"messages,omitempty"`
}
