package estimate

import (
	"fmt"

	"reuse-cost/core/types"
	"reuse-cost/core/volume"
)

// aggregate assembles the unified result. A total that differs from the sum
// of the line items can only come from a composer defect, so it panics.
func aggregate(system types.SystemKind, vol volume.Estimate, breakdown *types.CostBreakdown) *types.CalculatorResult {
	if sum := breakdown.Sum(); !breakdown.Total.Equal(sum) {
		panic(fmt.Sprintf("INVARIANT VIOLATED: %s breakdown total %s != sum of items %s", system, breakdown.Total, sum))
	}
	return &types.CalculatorResult{
		System:                system,
		AnnualWaterCollection: vol.AnnualGallons,
		TankSize:              vol.TankGallons,
		TankAutoSized:         vol.AutoSized,
		Breakdown:             *breakdown,
	}
}
