package estimate

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"reuse-cost/core/catalog"
	"reuse-cost/core/types"
	"reuse-cost/core/validation"
	"reuse-cost/core/volume"
	"reuse-cost/internal/errors"
)

func ptr(f float64) *float64 { return &f }

func rainwaterInput() types.RainwaterInput {
	return types.RainwaterInput{
		RoofAreaSqft:         2000,
		AnnualRainfallInches: 32,
		PipingLengthFeet:     120,
		RoofType:             types.RoofMetal,
		GutterMaterial:       types.GutterAluminum,
		PipingMaterial:       types.PipingPVC,
		TankMaterial:         types.TankPolyethyleneAboveGround,
		PumpSize:             types.PumpMidSizedWholeHouse,
		IncludePressureTank:  true,
	}
}

func hvacInput() types.HVACInput {
	return types.HVACInput{
		NumUnits:         2,
		TonsPerUnit:      3,
		DaysPerYear:      200,
		PipingLengthFeet: 40,
		PipingMaterial:   types.HVACPipingPVCTubing,
		TankType:         types.HVACTankSmallPoly,
		PumpType:         types.HVACPumpSmallCondensate,
	}
}

// allRainwaterInputs enumerates every enum and option combination over a
// few physical parameter sets
func allRainwaterInputs() []types.RainwaterInput {
	params := []struct {
		area, rain, piping float64
		storage            *float64
	}{
		{2000, 32, 120, nil},
		{850.5, 11.25, 0, nil},
		{12000, 60, 333.3, ptr(4000)},
		{40, 3, 7, ptr(0)},
	}
	var out []types.RainwaterInput
	for _, p := range params {
		for _, roof := range types.RoofTypes() {
			for _, gutter := range types.GutterMaterials() {
				for _, piping := range types.PipingMaterials() {
					for _, tank := range types.TankMaterials() {
						for _, pump := range types.PumpSizes() {
							for _, flags := range []int{0, 1, 2, 3, 4, 5, 6, 7} {
								out = append(out, types.RainwaterInput{
									RoofAreaSqft:         p.area,
									AnnualRainfallInches: p.rain,
									PipingLengthFeet:     p.piping,
									StorageGallons:       p.storage,
									RoofType:             roof,
									GutterMaterial:       gutter,
									PipingMaterial:       piping,
									TankMaterial:         tank,
									PumpSize:             pump,
									Potable:              flags&1 != 0,
									IncludeExcavation:    flags&2 != 0,
									IncludePressureTank:  flags&4 != 0,
								})
							}
						}
					}
				}
			}
		}
	}
	return out
}

func allHVACInputs() []types.HVACInput {
	params := []struct {
		units, tons, days, piping float64
		storage                   *float64
	}{
		{2, 3, 200, 40, nil},
		{1, 0.75, 1, 0, nil},
		{12, 5, 365, 410.5, ptr(2500)},
	}
	var out []types.HVACInput
	for _, p := range params {
		for _, piping := range types.HVACPipingMaterials() {
			for _, tank := range types.HVACTankTypes() {
				for _, pump := range types.HVACPumpTypes() {
					for _, potable := range []bool{false, true} {
						out = append(out, types.HVACInput{
							NumUnits:         p.units,
							TonsPerUnit:      p.tons,
							DaysPerYear:      p.days,
							PipingLengthFeet: p.piping,
							StorageGallons:   p.storage,
							Potable:          potable,
							PipingMaterial:   piping,
							TankType:         tank,
							PumpType:         pump,
						})
					}
				}
			}
		}
	}
	return out
}

func assertConsistent(t *testing.T, r *types.CalculatorResult) {
	t.Helper()
	if !r.Breakdown.Total.Equal(r.Breakdown.Sum()) {
		t.Fatalf("total %s != sum %s", r.Breakdown.Total, r.Breakdown.Sum())
	}
	if r.AnnualWaterCollection.IsNegative() || r.TankSize.IsNegative() {
		t.Fatalf("negative volume: %s / %s", r.AnnualWaterCollection, r.TankSize)
	}
	for _, key := range []types.LineItemKey{types.KeyTankCost, types.KeyPipingCost, types.KeyFilterCost, types.KeyPumpCost, types.KeyMiscCost} {
		amount, ok := r.Breakdown.Get(key)
		if !ok {
			t.Fatalf("missing required line item %s", key)
		}
		if amount.IsNegative() {
			t.Fatalf("%s is negative: %s", key, amount)
		}
	}
}

func TestRainwaterPropertiesOverAllCombinations(t *testing.T) {
	est := Default()
	for _, in := range allRainwaterInputs() {
		if msgs := validation.ValidateRainwaterForm(in); len(msgs) != 0 {
			t.Fatalf("fixture invalid: %v", msgs)
		}
		r, err := est.Rainwater(in)
		if err != nil {
			t.Fatalf("estimate failed for %+v: %v", in, err)
		}
		assertConsistent(t, r)
		if !r.Breakdown.Has(types.KeyGutterCost) {
			t.Fatal("rainwater breakdown must include gutter_cost")
		}
		if r.Breakdown.Has(types.KeyHVACUnitCost) {
			t.Fatal("rainwater breakdown must not include hvac_unit_cost")
		}
		if r.Breakdown.Has(types.KeyExcavationCost) != in.IncludeExcavation {
			t.Fatalf("excavation presence mismatch for %+v", in)
		}
		if r.Breakdown.Has(types.KeyPressureTankCost) != in.IncludePressureTank {
			t.Fatalf("pressure tank presence mismatch for %+v", in)
		}
		if in.StorageGallons != nil && r.TankSize.InexactFloat64() != *in.StorageGallons {
			t.Fatalf("tank size %s ignored supplied storage %v", r.TankSize, *in.StorageGallons)
		}
	}
}

func TestHVACPropertiesOverAllCombinations(t *testing.T) {
	est := Default()
	for _, in := range allHVACInputs() {
		if msgs := validation.ValidateHVACForm(in); len(msgs) != 0 {
			t.Fatalf("fixture invalid: %v", msgs)
		}
		r, err := est.HVAC(in)
		if err != nil {
			t.Fatalf("estimate failed for %+v: %v", in, err)
		}
		assertConsistent(t, r)
		for _, key := range []types.LineItemKey{types.KeyGutterCost, types.KeyPressureTankCost, types.KeyExcavationCost} {
			if r.Breakdown.Has(key) {
				t.Fatalf("hvac breakdown must not include %s", key)
			}
		}
		if !r.Breakdown.Has(types.KeyHVACUnitCost) {
			t.Fatal("hvac breakdown must include hvac_unit_cost")
		}
	}
}

func TestEstimatesAreIdempotent(t *testing.T) {
	in := rainwaterInput()
	in.Potable = true
	in.StorageGallons = ptr(1800)
	a, err := EstimateRainwaterCollectionCost(in)
	if err != nil {
		t.Fatal(err)
	}
	b, err := EstimateRainwaterCollectionCost(in)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Breakdown.Total.Equal(b.Breakdown.Total) || len(a.Breakdown.Items) != len(b.Breakdown.Items) {
		t.Fatal("identical input produced different results")
	}
	for i := range a.Breakdown.Items {
		if a.Breakdown.Items[i].Key != b.Breakdown.Items[i].Key || !a.Breakdown.Items[i].Amount.Equal(b.Breakdown.Items[i].Amount) {
			t.Fatalf("item %d differs: %+v vs %+v", i, a.Breakdown.Items[i], b.Breakdown.Items[i])
		}
	}

	h1, _ := EstimateHVACCondensateSystemCost(hvacInput())
	h2, _ := EstimateHVACCondensateSystemCost(hvacInput())
	if !h1.Breakdown.Total.Equal(h2.Breakdown.Total) || !h1.AnnualWaterCollection.Equal(h2.AnnualWaterCollection) {
		t.Fatal("hvac estimate is not deterministic")
	}
}

func TestToggleAddOnsChangesTotalByMidpoint(t *testing.T) {
	cat := catalog.Default()
	tests := []struct {
		name   string
		key    types.LineItemKey
		toggle func(in *types.RainwaterInput, on bool)
		rate   catalog.MaterialRate
	}{
		{"pressure tank", types.KeyPressureTankCost, func(in *types.RainwaterInput, on bool) { in.IncludePressureTank = on }, cat.Rainwater.PressureTank},
		{"excavation", types.KeyExcavationCost, func(in *types.RainwaterInput, on bool) { in.IncludeExcavation = on }, cat.Rainwater.Excavation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, in := range allRainwaterInputs()[:96] {
				off, on := in, in
				tt.toggle(&off, false)
				tt.toggle(&on, true)

				rOff, err := Default().Rainwater(off)
				if err != nil {
					t.Fatal(err)
				}
				rOn, err := Default().Rainwater(on)
				if err != nil {
					t.Fatal(err)
				}
				if rOff.Breakdown.Has(tt.key) {
					t.Fatalf("%s present when disabled", tt.key)
				}
				delta := rOn.Breakdown.Total.Sub(rOff.Breakdown.Total)
				if !delta.Equal(tt.rate.Midpoint()) {
					t.Fatalf("toggling %s changed total by %s, want %s", tt.name, delta, tt.rate.Midpoint())
				}
			}
		})
	}
}

func TestRainwaterWorkedExample(t *testing.T) {
	in := rainwaterInput()
	r, err := EstimateRainwaterCollectionCost(in)
	if err != nil {
		t.Fatal(err)
	}
	if !r.AnnualWaterCollection.Equal(decimal.RequireFromString("35884.8")) {
		t.Errorf("annual collection = %s, want 35884.8", r.AnnualWaterCollection)
	}
	if !r.TankAutoSized || !r.TankSize.Equal(decimal.NewFromInt(2871)) {
		t.Errorf("tank = %s (auto=%v), want 2871 auto", r.TankSize, r.TankAutoSized)
	}

	// gutter 120 × 7, tank 2871 × 0.8, piping 120 × 2.25, filter 200, pump 1150
	want := map[types.LineItemKey]string{
		types.KeyGutterCost:       "840",
		types.KeyTankCost:         "2296.8",
		types.KeyPipingCost:       "270",
		types.KeyFilterCost:       "200",
		types.KeyPumpCost:         "1150",
		types.KeyPressureTankCost: "350",
		types.KeyMiscCost:         "713.52",
		types.KeyTotal:            "5820.32",
	}
	for key, amount := range want {
		got, ok := r.Breakdown.Get(key)
		if !ok {
			t.Errorf("missing %s", key)
			continue
		}
		if !got.Equal(decimal.RequireFromString(amount)) {
			t.Errorf("%s = %s, want %s", key, got, amount)
		}
	}
}

func TestHVACWorkedExample(t *testing.T) {
	r, err := EstimateHVACCondensateSystemCost(hvacInput())
	if err != nil {
		t.Fatal(err)
	}
	daily := catalog.Default().HVAC.DailyGallonsPerTon
	if !r.AnnualWaterCollection.Equal(decimal.NewFromInt(1200).Mul(daily)) {
		t.Errorf("annual collection = %s", r.AnnualWaterCollection)
	}

	// units 2 × 200, small poly tank flat 425, piping 40 × 1, filter 100, pump 140
	want := map[types.LineItemKey]string{
		types.KeyHVACUnitCost: "400",
		types.KeyTankCost:     "425",
		types.KeyPipingCost:   "40",
		types.KeyFilterCost:   "100",
		types.KeyPumpCost:     "140",
		types.KeyMiscCost:     "110.5",
		types.KeyTotal:        "1215.5",
	}
	for key, amount := range want {
		got, _ := r.Breakdown.Get(key)
		if !got.Equal(decimal.RequireFromString(amount)) {
			t.Errorf("%s = %s, want %s", key, got, amount)
		}
	}
}

func TestHVACDoublingUnitsDoublesYield(t *testing.T) {
	in := hvacInput()
	a, _ := EstimateHVACCondensateSystemCost(in)
	in.NumUnits *= 2
	b, _ := EstimateHVACCondensateSystemCost(in)
	if !b.AnnualWaterCollection.Equal(a.AnnualWaterCollection.Mul(decimal.NewFromInt(2))) {
		t.Errorf("doubling units: %s -> %s", a.AnnualWaterCollection, b.AnnualWaterCollection)
	}
}

func TestHVACTankBasis(t *testing.T) {
	in := hvacInput()
	in.StorageGallons = ptr(1000)

	in.TankType = types.HVACTankLargePoly
	large, _ := EstimateHVACCondensateSystemCost(in)
	if got, _ := large.Breakdown.Get(types.KeyTankCost); !got.Equal(decimal.NewFromInt(850)) {
		t.Errorf("large poly 1000 gal = %s, want 850", got)
	}

	in.TankType = types.HVACTankIndoorSump
	sump, _ := EstimateHVACCondensateSystemCost(in)
	if got, _ := sump.Breakdown.Get(types.KeyTankCost); !got.Equal(decimal.NewFromInt(350)) {
		t.Errorf("indoor sump = %s, want flat 350", got)
	}
}

func TestPotableRaisesFilterCost(t *testing.T) {
	in := rainwaterInput()
	plain, _ := EstimateRainwaterCollectionCost(in)
	in.Potable = true
	potable, _ := EstimateRainwaterCollectionCost(in)

	pf, _ := plain.Breakdown.Get(types.KeyFilterCost)
	tf, _ := potable.Breakdown.Get(types.KeyFilterCost)
	if !tf.GreaterThan(pf) {
		t.Errorf("potable filter %s should exceed baseline %s", tf, pf)
	}
}

func TestLineItemsCarryFormulas(t *testing.T) {
	r, _ := EstimateRainwaterCollectionCost(rainwaterInput())
	for _, item := range r.Breakdown.Items {
		if item.Formula == "" || item.Label == "" {
			t.Errorf("%s lacks label or formula: %+v", item.Key, item)
		}
	}
	gutter := r.Breakdown.Items[0]
	if !strings.Contains(gutter.Formula, "120 ft") {
		t.Errorf("gutter formula should mention the run length: %s", gutter.Formula)
	}
}

func TestNewRejectsMalformedCatalog(t *testing.T) {
	cat := catalog.Builtin()
	delete(cat.Rainwater.Pumps, types.PumpSmallBooster)
	if _, err := New(cat); !errors.IsType(err, errors.TypeCatalog) {
		t.Fatalf("expected catalog error, got %v", err)
	}
}

func TestCatalogDefectFailsLoudly(t *testing.T) {
	cat := catalog.Builtin()
	est, err := New(cat)
	if err != nil {
		t.Fatal(err)
	}
	// Corrupt after construction to simulate a defective table.
	cat.Rainwater.Tanks[types.TankFiberglass] = catalog.MaterialRate{Basis: "per_acre", Label: "broken"}

	in := rainwaterInput()
	in.TankMaterial = types.TankFiberglass
	if _, err := est.Rainwater(in); !errors.IsType(err, errors.TypeCatalog) {
		t.Fatalf("expected catalog error, got %v", err)
	}
}

func TestValidatedEntryPoints(t *testing.T) {
	in := rainwaterInput()
	in.RoofAreaSqft = -5
	_, err := Default().ValidatedRainwater(in)
	failed, ok := err.(*validation.Failed)
	if !ok {
		t.Fatalf("expected *validation.Failed, got %v", err)
	}
	if !strings.Contains(failed.Messages[0], "roof_area_sqft") {
		t.Errorf("unexpected messages %v", failed.Messages)
	}

	h := hvacInput()
	h.DaysPerYear = 400
	if _, err := Default().ValidatedHVAC(h); err == nil || !strings.Contains(err.Error(), "days_per_year") {
		t.Errorf("expected days_per_year failure, got %v", err)
	}

	if _, err := Default().ValidatedHVAC(hvacInput()); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}
}

func TestAggregatePanicsOnInconsistentTotal(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for inconsistent breakdown")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "INVARIANT VIOLATED") {
			t.Fatalf("unexpected panic value: %v", r)
		}
	}()

	b := types.NewCostBreakdown(types.CurrencyUSD)
	b.Add(types.LineItem{Key: types.KeyPumpCost, Amount: decimal.NewFromInt(10)})
	b.Total = decimal.NewFromInt(11)
	aggregate(types.SystemHVAC, volume.Estimate{}, b)
}
