// Package validation checks estimate inputs before they reach the estimators.
// Validators never fail: they return every violation as an ordered list of
// human-readable messages, and an empty list means the input is valid.
package validation

import (
	"fmt"
	"math"
	"strings"

	"reuse-cost/core/catalog"
	"reuse-cost/core/types"
)

// Failed carries validation messages through an error return
type Failed struct {
	System   types.SystemKind
	Messages []string
}

// Error implements the error interface
func (f *Failed) Error() string {
	return fmt.Sprintf("invalid %s input: %s", f.System, strings.Join(f.Messages, "; "))
}

// AsError returns nil for an empty message list and a *Failed otherwise
func AsError(system types.SystemKind, messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	return &Failed{System: system, Messages: messages}
}

// ValidateRainwaterForm validates against the built-in catalog
func ValidateRainwaterForm(in types.RainwaterInput) []string {
	return Rainwater(catalog.Default(), in)
}

// ValidateHVACForm validates against the built-in catalog
func ValidateHVACForm(in types.HVACInput) []string {
	return HVAC(catalog.Default(), in)
}

// Rainwater validates a rainwater request against the keys declared in cat
func Rainwater(cat *catalog.Catalog, in types.RainwaterInput) []string {
	var v collector
	v.positive("roof_area_sqft", in.RoofAreaSqft)
	v.positive("annual_rainfall_inches", in.AnnualRainfallInches)
	v.nonNegative("piping_length_feet", in.PipingLengthFeet)
	v.optionalNonNegative("storage_gallons", in.StorageGallons)

	r := &cat.Rainwater
	enum(&v, "roof_type", in.RoofType, r.RoofEfficiency)
	enum(&v, "gutter_material", in.GutterMaterial, r.Gutters)
	enum(&v, "piping_material", in.PipingMaterial, r.Piping)
	enum(&v, "tank_material", in.TankMaterial, r.Tanks)
	enum(&v, "pump_size", in.PumpSize, r.Pumps)
	return v.messages
}

// HVAC validates a condensate request against the keys declared in cat
func HVAC(cat *catalog.Catalog, in types.HVACInput) []string {
	var v collector
	v.wholeInRange(in.NumUnits, 1, math.Inf(1),
		"num_units must be a whole number of at least 1")
	v.positive("tons_per_unit", in.TonsPerUnit)
	v.wholeInRange(in.DaysPerYear, 1, 365,
		"days_per_year must be a whole number between 1 and 365")
	v.nonNegative("piping_length_feet", in.PipingLengthFeet)
	v.optionalNonNegative("storage_gallons", in.StorageGallons)

	h := &cat.HVAC
	enum(&v, "piping_material", in.PipingMaterial, h.Piping)
	enum(&v, "tank_type", in.TankType, h.Tanks)
	enum(&v, "pump_type", in.PumpType, h.Pumps)
	return v.messages
}

type collector struct {
	messages []string
}

func (c *collector) add(msg string) {
	c.messages = append(c.messages, msg)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func (c *collector) positive(field string, x float64) {
	if !finite(x) || x <= 0 {
		c.add(field + " must be a positive number")
	}
}

func (c *collector) nonNegative(field string, x float64) {
	if !finite(x) || x < 0 {
		c.add(field + " must be a non-negative number")
	}
}

func (c *collector) optionalNonNegative(field string, x *float64) {
	if x != nil {
		c.nonNegative(field, *x)
	}
}

func (c *collector) wholeInRange(x, lo, hi float64, msg string) {
	if !finite(x) || x != math.Trunc(x) || x < lo || x > hi {
		c.add(msg)
	}
}

func enum[K ~string, V any](c *collector, field string, value K, table map[K]V) {
	if _, ok := table[value]; ok {
		return
	}
	allowed := strings.Join(catalog.Keys(table), ", ")
	if value == "" {
		c.add(fmt.Sprintf("%s is required (one of: %s)", field, allowed))
		return
	}
	c.add(fmt.Sprintf("%s must be one of: %s (got %q)", field, allowed, string(value)))
}
