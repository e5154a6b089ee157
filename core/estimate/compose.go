package estimate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"reuse-cost/core/catalog"
	"reuse-cost/core/types"
	"reuse-cost/core/volume"
)

// ledger accumulates rounded line items. The first error is sticky so
// composers can price every item and check once at the end.
type ledger struct {
	breakdown *types.CostBreakdown
	places    int32
	err       error
}

func newLedger(cat *catalog.Catalog) *ledger {
	return &ledger{
		breakdown: types.NewCostBreakdown(cat.Currency),
		places:    cat.CurrencyPlaces,
	}
}

// price adds rate applied to qty under key and returns the rounded amount
func (l *ledger) price(key types.LineItemKey, rate catalog.MaterialRate, qty decimal.Decimal, unit string) decimal.Decimal {
	if l.err != nil {
		return decimal.Zero
	}
	cost, err := rate.Cost(qty)
	if err != nil {
		l.err = err
		return decimal.Zero
	}
	return l.add(key, rate.Label, cost, describe(rate, qty, unit))
}

func (l *ledger) add(key types.LineItemKey, label string, amount decimal.Decimal, formula string) decimal.Decimal {
	amount = amount.Round(l.places)
	l.breakdown.Add(types.LineItem{
		Key:     key,
		Label:   label,
		Amount:  amount,
		Formula: formula,
	})
	return amount
}

// misc adds fraction of base as the fittings, electrical and permit allowance
func (l *ledger) misc(fraction, base decimal.Decimal) {
	if l.err != nil {
		return
	}
	pct := fraction.Mul(decimal.NewFromInt(100))
	l.add(types.KeyMiscCost, "Miscellaneous, fittings and permits",
		base.Mul(fraction),
		fmt.Sprintf("%s%% of $%s", pct.String(), base.StringFixed(l.places)))
}

func (l *ledger) result() (*types.CostBreakdown, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.breakdown, nil
}

func describe(rate catalog.MaterialRate, qty decimal.Decimal, unit string) string {
	mid := rate.Midpoint().StringFixed(2)
	if rate.Basis == catalog.Flat {
		return fmt.Sprintf("$%s flat (midpoint of $%s-$%s)", mid, rate.Low.String(), rate.High.String())
	}
	return fmt.Sprintf("%s %s × $%s%s", qty.String(), unit, mid, rate.Basis.Suffix())
}

func filterRate(potable bool, baseline, treated catalog.MaterialRate) catalog.MaterialRate {
	if potable {
		return treated
	}
	return baseline
}

// composeRainwater prices a rainwater system. Misc is charged on the core
// system only; the pressure tank and excavation add-ons are quoted flat.
func composeRainwater(cat *catalog.Catalog, in types.RainwaterInput, vol volume.Estimate) (*types.CostBreakdown, error) {
	r := &cat.Rainwater
	gutter, err := catalog.Lookup(r.Gutters, "gutter", in.GutterMaterial)
	if err != nil {
		return nil, err
	}
	piping, err := catalog.Lookup(r.Piping, "piping", in.PipingMaterial)
	if err != nil {
		return nil, err
	}
	tank, err := catalog.Lookup(r.Tanks, "tank", in.TankMaterial)
	if err != nil {
		return nil, err
	}
	pump, err := catalog.Lookup(r.Pumps, "pump", in.PumpSize)
	if err != nil {
		return nil, err
	}

	length := decimal.NewFromFloat(in.PipingLengthFeet)
	l := newLedger(cat)
	core := decimal.Zero
	core = core.Add(l.price(types.KeyGutterCost, gutter, length, "ft"))
	core = core.Add(l.price(types.KeyTankCost, tank, vol.TankGallons, "gal"))
	core = core.Add(l.price(types.KeyPipingCost, piping, length, "ft"))
	core = core.Add(l.price(types.KeyFilterCost, filterRate(in.Potable, r.FilterBaseline, r.FilterPotable), decimal.Zero, ""))
	core = core.Add(l.price(types.KeyPumpCost, pump, decimal.Zero, ""))

	if in.IncludePressureTank {
		l.price(types.KeyPressureTankCost, r.PressureTank, decimal.Zero, "")
	}
	if in.IncludeExcavation {
		l.price(types.KeyExcavationCost, r.Excavation, decimal.Zero, "")
	}
	l.misc(r.MiscFraction, core)
	return l.result()
}

// composeHVAC prices a condensate system
func composeHVAC(cat *catalog.Catalog, in types.HVACInput, vol volume.Estimate) (*types.CostBreakdown, error) {
	h := &cat.HVAC
	piping, err := catalog.Lookup(h.Piping, "hvac piping", in.PipingMaterial)
	if err != nil {
		return nil, err
	}
	tank, err := catalog.Lookup(h.Tanks, "hvac tank", in.TankType)
	if err != nil {
		return nil, err
	}
	pump, err := catalog.Lookup(h.Pumps, "hvac pump", in.PumpType)
	if err != nil {
		return nil, err
	}

	units := decimal.NewFromFloat(in.NumUnits)
	l := newLedger(cat)
	base := decimal.Zero
	conn := h.UnitConnection
	base = base.Add(l.add(types.KeyHVACUnitCost, conn.Label,
		conn.Midpoint().Mul(units),
		fmt.Sprintf("%s units × $%s", units.String(), conn.Midpoint().StringFixed(2))))
	base = base.Add(l.price(types.KeyTankCost, tank, vol.TankGallons, "gal"))
	base = base.Add(l.price(types.KeyPipingCost, piping, decimal.NewFromFloat(in.PipingLengthFeet), "ft"))
	base = base.Add(l.price(types.KeyFilterCost, filterRate(in.Potable, h.FilterBaseline, h.FilterPotable), decimal.Zero, ""))
	base = base.Add(l.price(types.KeyPumpCost, pump, decimal.Zero, ""))
	l.misc(h.MiscFraction, base)
	return l.result()
}
