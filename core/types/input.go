// Package types - Estimate input types
package types

// RoofType is the collection surface of a rainwater system
type RoofType string

const (
	RoofAsphaltShingles RoofType = "asphalt_shingles"
	RoofMetal           RoofType = "metal"
	RoofTile            RoofType = "tile"
)

// GutterMaterial is the gutter and downspout material
type GutterMaterial string

const (
	GutterVinyl           GutterMaterial = "vinyl"
	GutterAluminum        GutterMaterial = "aluminum"
	GutterGalvanizedSteel GutterMaterial = "galvanized_steel"
)

// PipingMaterial is the rainwater conveyance piping material
type PipingMaterial string

const (
	PipingPVC    PipingMaterial = "pvc"
	PipingHDPE   PipingMaterial = "hdpe"
	PipingCopper PipingMaterial = "copper"
)

// TankMaterial is the rainwater storage tank construction
type TankMaterial string

const (
	TankPolyethyleneAboveGround TankMaterial = "polyethylene_above_ground"
	TankFiberglass              TankMaterial = "fiberglass"
	TankConcreteUnderground     TankMaterial = "concrete_underground"
)

// PumpSize is the rainwater distribution pump class
type PumpSize string

const (
	PumpSmallBooster       PumpSize = "small_booster"
	PumpMidSizedWholeHouse PumpSize = "mid_sized_whole_house"
)

// HVACPipingMaterial is the condensate line material
type HVACPipingMaterial string

const (
	HVACPipingPVCTubing          HVACPipingMaterial = "pvc_tubing"
	HVACPipingFlexibleCondensate HVACPipingMaterial = "flexible_condensate"
	HVACPipingCopperRare         HVACPipingMaterial = "copper_rare"
)

// HVACTankType is the condensate storage option
type HVACTankType string

const (
	HVACTankSmallPoly  HVACTankType = "small_poly_100_500"
	HVACTankLargePoly  HVACTankType = "large_poly_1000_plus"
	HVACTankIndoorSump HVACTankType = "indoor_sump"
)

// HVACPumpType is the condensate transfer pump class
type HVACPumpType string

const (
	HVACPumpSmallCondensate HVACPumpType = "small_condensate"
	HVACPumpSumpTransfer    HVACPumpType = "sump_transfer"
)

// RoofTypes lists every declared roof type
func RoofTypes() []RoofType {
	return []RoofType{RoofAsphaltShingles, RoofMetal, RoofTile}
}

// GutterMaterials lists every declared gutter material
func GutterMaterials() []GutterMaterial {
	return []GutterMaterial{GutterVinyl, GutterAluminum, GutterGalvanizedSteel}
}

// PipingMaterials lists every declared rainwater piping material
func PipingMaterials() []PipingMaterial {
	return []PipingMaterial{PipingPVC, PipingHDPE, PipingCopper}
}

// TankMaterials lists every declared rainwater tank material
func TankMaterials() []TankMaterial {
	return []TankMaterial{TankPolyethyleneAboveGround, TankFiberglass, TankConcreteUnderground}
}

// PumpSizes lists every declared rainwater pump size
func PumpSizes() []PumpSize {
	return []PumpSize{PumpSmallBooster, PumpMidSizedWholeHouse}
}

// HVACPipingMaterials lists every declared condensate piping material
func HVACPipingMaterials() []HVACPipingMaterial {
	return []HVACPipingMaterial{HVACPipingPVCTubing, HVACPipingFlexibleCondensate, HVACPipingCopperRare}
}

// HVACTankTypes lists every declared condensate tank type
func HVACTankTypes() []HVACTankType {
	return []HVACTankType{HVACTankSmallPoly, HVACTankLargePoly, HVACTankIndoorSump}
}

// HVACPumpTypes lists every declared condensate pump type
func HVACPumpTypes() []HVACPumpType {
	return []HVACPumpType{HVACPumpSmallCondensate, HVACPumpSumpTransfer}
}

// RainwaterInput is a typed rainwater harvesting request.
// Numeric fields that were never supplied carry NaN so validation can report them.
type RainwaterInput struct {
	RoofAreaSqft         float64  `json:"roof_area_sqft"`
	AnnualRainfallInches float64  `json:"annual_rainfall_inches"`
	PipingLengthFeet     float64  `json:"piping_length_feet"`
	Potable              bool     `json:"potable"`
	StorageGallons       *float64 `json:"storage_gallons,omitempty"`

	RoofType       RoofType       `json:"roof_type"`
	GutterMaterial GutterMaterial `json:"gutter_material"`
	PipingMaterial PipingMaterial `json:"piping_material"`
	TankMaterial   TankMaterial   `json:"tank_material"`
	PumpSize       PumpSize       `json:"pump_size"`

	IncludeExcavation   bool `json:"include_excavation"`
	IncludePressureTank bool `json:"include_pressure_tank"`
}

// HVACInput is a typed HVAC condensate recovery request.
// NumUnits and DaysPerYear stay numeric so fractional entries fail validation
// instead of being truncated.
type HVACInput struct {
	NumUnits         float64  `json:"num_units"`
	TonsPerUnit      float64  `json:"tons_per_unit"`
	DaysPerYear      float64  `json:"days_per_year"`
	PipingLengthFeet float64  `json:"piping_length_feet"`
	Potable          bool     `json:"potable"`
	StorageGallons   *float64 `json:"storage_gallons,omitempty"`

	PipingMaterial HVACPipingMaterial `json:"piping_material"`
	TankType       HVACTankType       `json:"tank_type"`
	PumpType       HVACPumpType       `json:"pump_type"`
}
