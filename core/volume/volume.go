// Package volume models annual water yield and storage sizing.
package volume

import (
	"github.com/shopspring/decimal"

	"reuse-cost/core/catalog"
	"reuse-cost/core/types"
	"reuse-cost/internal/errors"
)

// Estimate is the volume side of an estimate
type Estimate struct {
	// AnnualGallons is the modeled yearly yield
	AnnualGallons decimal.Decimal

	// TankGallons is the storage capacity to price
	TankGallons decimal.Decimal

	// AutoSized is true when TankGallons came from the sizing policy
	AutoSized bool
}

// RainwaterYield is roof area × rainfall × gallons-per-sqft-inch × roof efficiency.
// The roof type must already be validated against the catalog.
func RainwaterYield(cat *catalog.RainwaterCatalog, roofAreaSqft, annualRainfallInches float64, roof types.RoofType) (decimal.Decimal, error) {
	eff, ok := cat.RoofEfficiency[roof]
	if !ok {
		return decimal.Zero, errors.Catalogf("no roof efficiency for %q", roof)
	}
	return decimal.NewFromFloat(roofAreaSqft).
		Mul(decimal.NewFromFloat(annualRainfallInches)).
		Mul(cat.GallonsPerSqftInch).
		Mul(eff), nil
}

// CondensateYield is units × tons per unit × operating days × daily gallons per ton
func CondensateYield(cat *catalog.HVACCatalog, numUnits, tonsPerUnit, daysPerYear float64) decimal.Decimal {
	return decimal.NewFromFloat(numUnits).
		Mul(decimal.NewFromFloat(tonsPerUnit)).
		Mul(decimal.NewFromFloat(daysPerYear)).
		Mul(cat.DailyGallonsPerTon)
}

// TankSize returns the supplied storage unchanged, or sizes the tank to the
// policy fraction of annual yield rounded up to a whole gallon and clamped
// to the policy minimum.
func TankSize(policy catalog.TankSizing, annualGallons decimal.Decimal, storageGallons *float64) (decimal.Decimal, bool) {
	if storageGallons != nil {
		return decimal.NewFromFloat(*storageGallons), false
	}
	size := annualGallons.Mul(policy.Fraction).Ceil()
	if size.LessThan(policy.MinimumGallons) {
		size = policy.MinimumGallons
	}
	return size, true
}

// Rainwater runs the rainwater volume model for a validated input
func Rainwater(cat *catalog.RainwaterCatalog, in types.RainwaterInput) (Estimate, error) {
	annual, err := RainwaterYield(cat, in.RoofAreaSqft, in.AnnualRainfallInches, in.RoofType)
	if err != nil {
		return Estimate{}, err
	}
	tank, auto := TankSize(cat.TankSizing, annual, in.StorageGallons)
	return Estimate{AnnualGallons: annual, TankGallons: tank, AutoSized: auto}, nil
}

// HVAC runs the condensate volume model for a validated input
func HVAC(cat *catalog.HVACCatalog, in types.HVACInput) Estimate {
	annual := CondensateYield(cat, in.NumUnits, in.TonsPerUnit, in.DaysPerYear)
	tank, auto := TankSize(cat.TankSizing, annual, in.StorageGallons)
	return Estimate{AnnualGallons: annual, TankGallons: tank, AutoSized: auto}
}
