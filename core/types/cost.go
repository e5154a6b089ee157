// Package types - Cost breakdown types
package types

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code
type Currency string

// CurrencyUSD is the only currency rates are published in
const CurrencyUSD Currency = "USD"

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// LineItemKey names a breakdown category
type LineItemKey string

const (
	KeyGutterCost       LineItemKey = "gutter_cost"
	KeyTankCost         LineItemKey = "tank_cost"
	KeyPipingCost       LineItemKey = "piping_cost"
	KeyFilterCost       LineItemKey = "filter_cost"
	KeyPumpCost         LineItemKey = "pump_cost"
	KeyHVACUnitCost     LineItemKey = "hvac_unit_cost"
	KeyPressureTankCost LineItemKey = "pressure_tank_cost"
	KeyExcavationCost   LineItemKey = "excavation_cost"
	KeyMiscCost         LineItemKey = "misc_cost"
	KeyTotal            LineItemKey = "total"
)

// LineItem is a single priced category of an estimate
type LineItem struct {
	// Key is the breakdown category
	Key LineItemKey `json:"key"`

	// Label is a human-readable label
	Label string `json:"label"`

	// Amount is the priced cost, already rounded to the currency unit
	Amount decimal.Decimal `json:"amount"`

	// Formula describes how the amount was derived
	Formula string `json:"formula,omitempty"`
}

// CostBreakdown is the itemized cost of an estimate in insertion order
type CostBreakdown struct {
	Items    []LineItem      `json:"-"`
	Total    decimal.Decimal `json:"-"`
	Currency Currency        `json:"-"`
}

// NewCostBreakdown creates an empty breakdown
func NewCostBreakdown(currency Currency) *CostBreakdown {
	return &CostBreakdown{Currency: currency}
}

// Add appends a line item and accumulates the total
func (b *CostBreakdown) Add(item LineItem) {
	b.Items = append(b.Items, item)
	b.Total = b.Total.Add(item.Amount)
}

// Get returns the amount for key; KeyTotal returns the running total
func (b *CostBreakdown) Get(key LineItemKey) (decimal.Decimal, bool) {
	if key == KeyTotal {
		return b.Total, true
	}
	for _, item := range b.Items {
		if item.Key == key {
			return item.Amount, true
		}
	}
	return decimal.Zero, false
}

// Has reports whether key is present
func (b *CostBreakdown) Has(key LineItemKey) bool {
	_, ok := b.Get(key)
	return ok
}

// Sum recomputes the total from the line items
func (b *CostBreakdown) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range b.Items {
		sum = sum.Add(item.Amount)
	}
	return sum
}

// Map returns the breakdown as a flat key to amount mapping including total
func (b *CostBreakdown) Map() map[LineItemKey]decimal.Decimal {
	out := make(map[LineItemKey]decimal.Decimal, len(b.Items)+1)
	for _, item := range b.Items {
		out[item.Key] = item.Amount
	}
	out[KeyTotal] = b.Total
	return out
}

// MarshalJSON encodes the breakdown as a flat object of numbers in item order
func (b CostBreakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, item := range b.Items {
		writeNumberField(&buf, string(item.Key), item.Amount)
		buf.WriteByte(',')
	}
	writeNumberField(&buf, string(KeyTotal), b.Total)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeNumberField(buf *bytes.Buffer, key string, value decimal.Decimal) {
	name, _ := json.Marshal(key)
	buf.Write(name)
	buf.WriteByte(':')
	buf.WriteString(value.String())
}

// CalculatorResult is the unified estimate consumed by the presentation layer
type CalculatorResult struct {
	// System identifies which composer produced the result
	System SystemKind

	// AnnualWaterCollection is the modeled yield in gallons per year
	AnnualWaterCollection decimal.Decimal

	// TankSize is the storage capacity in gallons
	TankSize decimal.Decimal

	// TankAutoSized is true when TankSize came from the sizing policy
	TankAutoSized bool

	// Breakdown is the itemized cost
	Breakdown CostBreakdown
}

// MarshalJSON encodes volumes as plain JSON numbers
func (r CalculatorResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		System                SystemKind    `json:"system"`
		AnnualWaterCollection json.Number   `json:"annual_water_collection"`
		TankSize              json.Number   `json:"tank_size"`
		TankAutoSized         bool          `json:"tank_auto_sized"`
		Breakdown             CostBreakdown `json:"breakdown"`
	}{
		System:                r.System,
		AnnualWaterCollection: json.Number(r.AnnualWaterCollection.String()),
		TankSize:              json.Number(r.TankSize.String()),
		TankAutoSized:         r.TankAutoSized,
		Breakdown:             r.Breakdown,
	})
}
