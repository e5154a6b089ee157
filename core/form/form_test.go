package form

import (
	"math"
	"testing"

	"reuse-cost/core/types"
	"reuse-cost/core/validation"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		nan  bool
	}{
		{"2000", 2000, false},
		{" 32.5 ", 32.5, false},
		{"1,250", 1250, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-5", -5, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Number(tt.in)
			if tt.nan {
				if !math.IsNaN(got) {
					t.Errorf("Number(%q) = %v, want NaN", tt.in, got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Number(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOptional(t *testing.T) {
	if Optional("  ") != nil {
		t.Error("blank storage should be absent")
	}
	if p := Optional("1500"); p == nil || *p != 1500 {
		t.Errorf("Optional(1500) = %v", p)
	}
	if p := Optional("lots"); p == nil || !math.IsNaN(*p) {
		t.Error("unparseable storage should be present and NaN")
	}
	if !math.IsNaN(OrNaN(nil)) {
		t.Error("OrNaN(nil) should be NaN")
	}
}

func TestBlankRainwaterFormFailsOnNumbersOnly(t *testing.T) {
	in := NewRainwaterFields().Input()
	if in.GutterMaterial != types.GutterAluminum || in.PumpSize != types.PumpMidSizedWholeHouse {
		t.Errorf("defaults not applied: %+v", in)
	}
	if !in.IncludePressureTank || in.IncludeExcavation {
		t.Error("initial add-on selections not kept")
	}

	msgs := validation.ValidateRainwaterForm(in)
	if len(msgs) != 3 {
		t.Fatalf("expected three numeric messages, got %v", msgs)
	}
}

func TestFilledFormsValidate(t *testing.T) {
	rf := NewRainwaterFields()
	rf.RoofAreaSqft = "2000"
	rf.AnnualRainfallInches = "32"
	rf.PipingLengthFeet = "120"
	rf.RoofType = "metal"
	if msgs := validation.ValidateRainwaterForm(rf.Input()); len(msgs) != 0 {
		t.Errorf("unexpected messages: %v", msgs)
	}

	hf := NewHVACFields()
	hf.NumUnits = "2"
	hf.TonsPerUnit = "3"
	hf.DaysPerYear = "200"
	hf.PipingLengthFeet = "40"
	hf.TankType = ""
	in := hf.Input()
	if in.TankType != types.HVACTankSmallPoly {
		t.Errorf("blank tank should default, got %q", in.TankType)
	}
	if msgs := validation.ValidateHVACForm(in); len(msgs) != 0 {
		t.Errorf("unexpected messages: %v", msgs)
	}
}

func TestUnknownSelectionPassesThroughToValidation(t *testing.T) {
	rf := NewRainwaterFields()
	rf.RoofAreaSqft, rf.AnnualRainfallInches, rf.PipingLengthFeet = "10", "10", "10"
	rf.TankMaterial = "bladder"
	in := rf.Input()
	if in.TankMaterial != "bladder" {
		t.Fatalf("unknown selection was replaced: %q", in.TankMaterial)
	}
	msgs := validation.ValidateRainwaterForm(in)
	if len(msgs) != 1 {
		t.Fatalf("expected one tank_material message, got %v", msgs)
	}
}
