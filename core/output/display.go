package output

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"reuse-cost/core/types"
)

var printer = message.NewPrinter(language.English)

var one = decimal.NewFromInt(1)

// Range is a display band around a point figure, in whole units
type Range struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Spread returns value × (1 ± variation), each rounded to a whole unit
func Spread(value, variation decimal.Decimal) Range {
	return Range{
		Min: value.Mul(one.Sub(variation)).Round(0),
		Max: value.Mul(one.Add(variation)).Round(0),
	}
}

// USD formats the range as "$min - $max"
func (r Range) USD() string {
	return USD(r.Min) + " - " + USD(r.Max)
}

// Number formats the range as "min - max" with thousands separators
func (r Range) Number() string {
	return Whole(r.Min) + " - " + Whole(r.Max)
}

// USD formats an amount in whole dollars, e.g. "$12,345"
func USD(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + Whole(d.Neg())
	}
	return "$" + Whole(d)
}

// USDCents formats an amount with cents, e.g. "$12,345.60"
func USDCents(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	cents := d.Round(2)
	frac := cents.Sub(cents.Truncate(0)).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return sign + "$" + printer.Sprintf("%d", cents.Truncate(0).IntPart()) + printer.Sprintf(".%02d", frac)
}

// Whole formats a figure rounded to a whole unit with thousands separators
func Whole(d decimal.Decimal) string {
	return printer.Sprintf("%d", d.Round(0).IntPart())
}

var displayLabels = map[types.LineItemKey]string{
	types.KeyGutterCost:       "Gutters & Downspouts",
	types.KeyTankCost:         "Storage Tank",
	types.KeyPipingCost:       "Piping & Fittings",
	types.KeyFilterCost:       "Filtration & Treatment",
	types.KeyPumpCost:         "Pump System",
	types.KeyPressureTankCost: "Pressure Tank",
	types.KeyHVACUnitCost:     "HVAC Unit Connections",
	types.KeyMiscCost:         "Miscellaneous & Permits",
	types.KeyExcavationCost:   "Excavation (Underground Tank)",
	types.KeyTotal:            "System Total",
}

var displayOrder = []types.LineItemKey{
	types.KeyGutterCost,
	types.KeyTankCost,
	types.KeyPipingCost,
	types.KeyFilterCost,
	types.KeyPumpCost,
	types.KeyPressureTankCost,
	types.KeyHVACUnitCost,
	types.KeyMiscCost,
	types.KeyExcavationCost,
}

// DisplayLabel returns the presentation label for a breakdown key
func DisplayLabel(key types.LineItemKey) string {
	if label, ok := displayLabels[key]; ok {
		return label
	}
	return string(key)
}

func displayRank(key types.LineItemKey) int {
	for i, k := range displayOrder {
		if k == key {
			return i
		}
	}
	return len(displayOrder)
}

// MiscNote explains what the miscellaneous allowance covers for a system
func MiscNote(system types.SystemKind) string {
	if system == types.SystemHVAC {
		return "Includes mounting brackets, valves, overflow protection, electrical connections, and permitting for plumbing tie-ins."
	}
	return "Includes valves, unions, brackets, electrical connections, and permitting/inspection fees."
}
