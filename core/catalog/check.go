package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"reuse-cost/core/types"
	"reuse-cost/internal/errors"
)

// Check verifies that c is complete and well formed. A catalog that fails
// Check is a configuration defect and must not be used to estimate.
func Check(c *Catalog) error {
	if c == nil {
		return errors.Catalog("catalog is nil")
	}
	if c.CurrencyPlaces < 0 {
		return errors.Catalogf("currency places must not be negative, got %d", c.CurrencyPlaces)
	}

	r := c.Rainwater
	checks := []error{
		checkTable("rainwater gutter", r.Gutters, types.GutterMaterials(), PerFoot),
		checkTable("rainwater piping", r.Piping, types.PipingMaterials(), PerFoot),
		checkTable("rainwater tank", r.Tanks, types.TankMaterials()),
		checkTable("rainwater pump", r.Pumps, types.PumpSizes(), Flat),
		checkSingle("rainwater pressure tank", r.PressureTank, Flat),
		checkSingle("rainwater excavation", r.Excavation, Flat),
		checkSingle("rainwater baseline filter", r.FilterBaseline, Flat),
		checkSingle("rainwater potable filter", r.FilterPotable, Flat),
		checkEfficiencies(r.RoofEfficiency),
		checkPositive("rainwater gallons per sqft inch", r.GallonsPerSqftInch),
		checkSizing("rainwater", r.TankSizing),
		checkFraction("rainwater misc fraction", r.MiscFraction),
	}

	h := c.HVAC
	checks = append(checks,
		checkTable("hvac piping", h.Piping, types.HVACPipingMaterials(), PerFoot),
		checkTable("hvac tank", h.Tanks, types.HVACTankTypes()),
		checkTable("hvac pump", h.Pumps, types.HVACPumpTypes(), Flat),
		checkSingle("hvac unit connection", h.UnitConnection, Flat),
		checkSingle("hvac baseline filter", h.FilterBaseline, Flat),
		checkSingle("hvac potable filter", h.FilterPotable, Flat),
		checkPositive("hvac daily gallons per ton", h.DailyGallonsPerTon),
		checkSizing("hvac", h.TankSizing),
		checkFraction("hvac misc fraction", h.MiscFraction),
	)

	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// checkTable requires an entry for every declared key. When bases are given
// every entry must use one of them.
func checkTable[K ~string](kind string, table map[K]MaterialRate, declared []K, bases ...UnitBasis) error {
	for _, key := range declared {
		rate, ok := table[key]
		if !ok {
			return errors.Catalogf("%s table is missing %q", kind, string(key))
		}
		if err := checkSingle(fmt.Sprintf("%s %q", kind, string(key)), rate, bases...); err != nil {
			return err
		}
	}
	if len(table) != len(declared) {
		return errors.Catalogf("%s table has %d entries, expected %d", kind, len(table), len(declared))
	}
	return nil
}

func checkSingle(kind string, rate MaterialRate, bases ...UnitBasis) error {
	if err := rate.Check(); err != nil {
		return errors.Wrapf(errors.TypeCatalog, err, "%s", kind)
	}
	if len(bases) == 0 {
		return nil
	}
	for _, b := range bases {
		if rate.Basis == b {
			return nil
		}
	}
	return errors.Catalogf("%s must be priced %v, got %s", kind, bases, rate.Basis)
}

func checkEfficiencies(eff map[types.RoofType]decimal.Decimal) error {
	for _, roof := range types.RoofTypes() {
		v, ok := eff[roof]
		if !ok {
			return errors.Catalogf("roof efficiency missing for %q", roof)
		}
		if !v.IsPositive() || v.GreaterThan(decimal.NewFromInt(1)) {
			return errors.Catalogf("roof efficiency for %q must be in (0, 1], got %s", roof, v)
		}
	}
	return nil
}

func checkPositive(kind string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return errors.Catalogf("%s must be positive, got %s", kind, v)
	}
	return nil
}

func checkFraction(kind string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return errors.Catalogf("%s must be in [0, 1), got %s", kind, v)
	}
	return nil
}

func checkSizing(system string, s TankSizing) error {
	if err := checkPositive(system+" tank sizing fraction", s.Fraction); err != nil {
		return err
	}
	if s.MinimumGallons.IsNegative() {
		return errors.Catalogf("%s tank sizing minimum must not be negative, got %s", system, s.MinimumGallons)
	}
	return nil
}
