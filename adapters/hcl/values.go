// Package hcl - Safe CTY value conversion
// Catalog numbers are converted through their exact decimal text, never
// through float64, so 0.623 stays 0.623.
package hcl

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// present reports whether an optional attribute was set
func present(v cty.Value) bool {
	return !v.IsNull()
}

// toDecimal converts a known number (or numeric string) to a decimal
func toDecimal(name string, v cty.Value) (decimal.Decimal, error) {
	if !v.IsKnown() {
		return decimal.Zero, fmt.Errorf("%s: value is not known", name)
	}
	if v.IsNull() {
		return decimal.Zero, fmt.Errorf("%s: value is null", name)
	}
	n, err := convert.Convert(v, cty.Number)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", name, err)
	}
	d, err := decimal.NewFromString(n.AsBigFloat().Text('f', -1))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

// toString converts a known string value
func toString(name string, v cty.Value) (string, error) {
	if !v.IsKnown() || v.IsNull() {
		return "", fmt.Errorf("%s: value is not a known string", name)
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return s.AsString(), nil
}

// toDecimalMap converts an object or map of numbers keyed by name
func toDecimalMap(name string, v cty.Value) (map[string]decimal.Decimal, error) {
	if !v.IsKnown() {
		return nil, fmt.Errorf("%s: value is not known", name)
	}
	ty := v.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("%s: expected an object, got %s", name, ty.FriendlyName())
	}

	out := make(map[string]decimal.Decimal)
	for it := v.ElementIterator(); it.Next(); {
		k, elem := it.Element()
		key := k.AsString()
		d, err := toDecimal(name+"."+key, elem)
		if err != nil {
			return nil, err
		}
		out[key] = d
	}
	return out, nil
}
