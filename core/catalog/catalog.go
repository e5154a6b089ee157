// Package catalog - Authoritative material rate catalog
// Every rate range, runoff efficiency, physical constant and policy fraction
// used by the estimators lives here. Estimators never embed numbers of their own.
package catalog

import (
	"sort"

	"github.com/shopspring/decimal"

	"reuse-cost/core/types"
	"reuse-cost/internal/errors"
)

// UnitBasis declares what a rate is multiplied by
type UnitBasis string

const (
	// PerFoot rates scale with a linear run
	PerFoot UnitBasis = "per_foot"
	// PerGallon rates scale with storage capacity
	PerGallon UnitBasis = "per_gallon"
	// Flat rates are a fixed price per item
	Flat UnitBasis = "flat"
)

// Valid reports whether b is a declared basis
func (b UnitBasis) Valid() bool {
	switch b {
	case PerFoot, PerGallon, Flat:
		return true
	}
	return false
}

// Suffix returns a short display suffix for the basis
func (b UnitBasis) Suffix() string {
	switch b {
	case PerFoot:
		return "/ft"
	case PerGallon:
		return "/gal"
	default:
		return ""
	}
}

// MaterialRate is a published cost range for one material or equipment choice
type MaterialRate struct {
	Low   decimal.Decimal `json:"low"`
	High  decimal.Decimal `json:"high"`
	Basis UnitBasis       `json:"unit_basis"`
	Label string          `json:"label,omitempty"`
}

// Rate builds a MaterialRate from decimal literals. It panics on malformed
// literals, so it is only used for compiled-in tables.
func Rate(low, high string, basis UnitBasis, label string) MaterialRate {
	return MaterialRate{
		Low:   decimal.RequireFromString(low),
		High:  decimal.RequireFromString(high),
		Basis: basis,
		Label: label,
	}
}

var two = decimal.NewFromInt(2)

// Midpoint is the deterministic point estimate of the range
func (r MaterialRate) Midpoint() decimal.Decimal {
	return r.Low.Add(r.High).Div(two)
}

// Cost prices quantity units at the midpoint; quantity is ignored for flat rates
func (r MaterialRate) Cost(quantity decimal.Decimal) (decimal.Decimal, error) {
	switch r.Basis {
	case PerFoot, PerGallon:
		return quantity.Mul(r.Midpoint()), nil
	case Flat:
		return r.Midpoint(), nil
	default:
		return decimal.Zero, errors.Catalogf("rate %q has unknown unit basis %q", r.Label, r.Basis)
	}
}

// Check verifies the rate is well formed
func (r MaterialRate) Check() error {
	if !r.Basis.Valid() {
		return errors.Catalogf("rate %q has unknown unit basis %q", r.Label, r.Basis)
	}
	if r.Low.IsNegative() {
		return errors.Catalogf("rate %q has negative low %s", r.Label, r.Low)
	}
	if r.High.LessThan(r.Low) {
		return errors.Catalogf("rate %q has high %s below low %s", r.Label, r.High, r.Low)
	}
	return nil
}

// TankSizing is the auto-sizing policy used when no storage size is supplied
type TankSizing struct {
	// Fraction of annual yield held in storage
	Fraction decimal.Decimal `json:"fraction"`

	// MinimumGallons is the smallest tank ever recommended
	MinimumGallons decimal.Decimal `json:"minimum_gallons"`
}

// RainwaterCatalog holds rooftop harvesting rates and constants
type RainwaterCatalog struct {
	Gutters map[types.GutterMaterial]MaterialRate `json:"gutters"`
	Piping  map[types.PipingMaterial]MaterialRate `json:"piping"`
	Tanks   map[types.TankMaterial]MaterialRate   `json:"tanks"`
	Pumps   map[types.PumpSize]MaterialRate       `json:"pumps"`

	PressureTank   MaterialRate `json:"pressure_tank"`
	Excavation     MaterialRate `json:"excavation"`
	FilterBaseline MaterialRate `json:"filter_baseline"`
	FilterPotable  MaterialRate `json:"filter_potable"`

	// RoofEfficiency is the fraction of rainfall captured per roof type
	RoofEfficiency map[types.RoofType]decimal.Decimal `json:"roof_efficiency"`

	// GallonsPerSqftInch converts one inch of rain on one square foot to gallons
	GallonsPerSqftInch decimal.Decimal `json:"gallons_per_sqft_inch"`

	TankSizing TankSizing `json:"tank_sizing"`

	// MiscFraction covers fittings, electrical tie-ins and permits
	MiscFraction decimal.Decimal `json:"misc_fraction"`
}

// HVACCatalog holds condensate recovery rates and constants
type HVACCatalog struct {
	Piping map[types.HVACPipingMaterial]MaterialRate `json:"piping"`
	Tanks  map[types.HVACTankType]MaterialRate       `json:"tanks"`
	Pumps  map[types.HVACPumpType]MaterialRate       `json:"pumps"`

	// UnitConnection is drain-pan and connection hardware for one air handler
	UnitConnection MaterialRate `json:"unit_connection"`
	FilterBaseline MaterialRate `json:"filter_baseline"`
	FilterPotable  MaterialRate `json:"filter_potable"`

	// DailyGallonsPerTon is climate-averaged condensate per ton per operating day
	DailyGallonsPerTon decimal.Decimal `json:"daily_gallons_per_ton"`

	TankSizing TankSizing `json:"tank_sizing"`

	MiscFraction decimal.Decimal `json:"misc_fraction"`
}

// Catalog is the complete, read-only rate catalog
type Catalog struct {
	Version  string         `json:"version"`
	Currency types.Currency `json:"currency"`

	// CurrencyPlaces is the rounding precision applied to every line item
	CurrencyPlaces int32 `json:"currency_places"`

	Rainwater RainwaterCatalog `json:"rainwater"`
	HVAC      HVACCatalog      `json:"hvac"`
}

// Lookup returns the rate registered for key in table
func Lookup[K ~string](table map[K]MaterialRate, kind string, key K) (MaterialRate, error) {
	rate, ok := table[key]
	if !ok {
		return MaterialRate{}, errors.Catalogf("no %s rate for %q", kind, string(key))
	}
	return rate, nil
}

// Keys returns the sorted keys of a catalog table
func Keys[K ~string, V any](table map[K]V) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy that can be modified without touching c
func (c *Catalog) Clone() *Catalog {
	out := *c
	out.Rainwater.Gutters = cloneTable(c.Rainwater.Gutters)
	out.Rainwater.Piping = cloneTable(c.Rainwater.Piping)
	out.Rainwater.Tanks = cloneTable(c.Rainwater.Tanks)
	out.Rainwater.Pumps = cloneTable(c.Rainwater.Pumps)
	out.Rainwater.RoofEfficiency = cloneTable(c.Rainwater.RoofEfficiency)
	out.HVAC.Piping = cloneTable(c.HVAC.Piping)
	out.HVAC.Tanks = cloneTable(c.HVAC.Tanks)
	out.HVAC.Pumps = cloneTable(c.HVAC.Pumps)
	return &out
}

func cloneTable[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
