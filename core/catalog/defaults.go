package catalog

import (
	"sync"

	"github.com/shopspring/decimal"

	"reuse-cost/core/types"
)

// Version of the built-in rate tables
const Version = "2024.1-standard"

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the shared built-in catalog. Callers must treat it as
// read-only; use Clone before applying overrides.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = Builtin()
		if err := Check(defaultCatalog); err != nil {
			panic("built-in catalog is malformed: " + err.Error())
		}
	})
	return defaultCatalog
}

// Builtin constructs a fresh copy of the standard-rate catalog
func Builtin() *Catalog {
	return &Catalog{
		Version:        Version,
		Currency:       types.CurrencyUSD,
		CurrencyPlaces: 2,
		Rainwater:      builtinRainwater(),
		HVAC:           builtinHVAC(),
	}
}

func builtinRainwater() RainwaterCatalog {
	return RainwaterCatalog{
		Gutters: map[types.GutterMaterial]MaterialRate{
			types.GutterVinyl:           Rate("3", "5", PerFoot, "Vinyl gutters"),
			types.GutterAluminum:        Rate("5", "9", PerFoot, "Aluminum gutters"),
			types.GutterGalvanizedSteel: Rate("8", "12", PerFoot, "Galvanized steel gutters"),
		},
		Piping: map[types.PipingMaterial]MaterialRate{
			types.PipingPVC:    Rate("1.50", "3", PerFoot, "PVC piping"),
			types.PipingHDPE:   Rate("2", "4", PerFoot, "HDPE piping"),
			types.PipingCopper: Rate("6", "10", PerFoot, "Copper piping"),
		},
		Tanks: map[types.TankMaterial]MaterialRate{
			types.TankPolyethyleneAboveGround: Rate("0.60", "1", PerGallon, "Polyethylene above-ground tank"),
			types.TankFiberglass:              Rate("1.50", "2.50", PerGallon, "Fiberglass tank"),
			types.TankConcreteUnderground:     Rate("2.50", "5", PerGallon, "Concrete underground tank"),
		},
		Pumps: map[types.PumpSize]MaterialRate{
			types.PumpSmallBooster:       Rate("300", "600", Flat, "Small booster pump"),
			types.PumpMidSizedWholeHouse: Rate("800", "1500", Flat, "Mid-sized whole-house pump"),
		},
		PressureTank:   Rate("200", "500", Flat, "Pressure tank"),
		Excavation:     Rate("1000", "5000", Flat, "Excavation for underground tank"),
		FilterBaseline: Rate("100", "300", Flat, "Leaf screen and first-flush diverter"),
		FilterPotable:  Rate("1500", "3000", Flat, "UV disinfection and cartridge filtration"),
		RoofEfficiency: map[types.RoofType]decimal.Decimal{
			types.RoofAsphaltShingles: decimal.RequireFromString("0.85"),
			types.RoofMetal:           decimal.RequireFromString("0.90"),
			types.RoofTile:            decimal.RequireFromString("0.80"),
		},
		GallonsPerSqftInch: decimal.RequireFromString("0.623"),
		// About four weeks of average yield.
		TankSizing: TankSizing{
			Fraction:       decimal.RequireFromString("0.08"),
			MinimumGallons: decimal.NewFromInt(250),
		},
		MiscFraction: decimal.RequireFromString("0.15"),
	}
}

func builtinHVAC() HVACCatalog {
	return HVACCatalog{
		Piping: map[types.HVACPipingMaterial]MaterialRate{
			types.HVACPipingPVCTubing:          Rate("0.50", "1.50", PerFoot, "PVC condensate tubing"),
			types.HVACPipingFlexibleCondensate: Rate("0.70", "2", PerFoot, "Flexible condensate line"),
			types.HVACPipingCopperRare:         Rate("5", "8", PerFoot, "Copper condensate line"),
		},
		Tanks: map[types.HVACTankType]MaterialRate{
			types.HVACTankSmallPoly:  Rate("150", "700", Flat, "Small poly tank (100-500 gal)"),
			types.HVACTankLargePoly:  Rate("0.70", "1", PerGallon, "Large poly tank (1000+ gal)"),
			types.HVACTankIndoorSump: Rate("200", "500", Flat, "Indoor sump reservoir"),
		},
		Pumps: map[types.HVACPumpType]MaterialRate{
			types.HVACPumpSmallCondensate: Rate("80", "200", Flat, "Small condensate pump"),
			types.HVACPumpSumpTransfer:    Rate("200", "500", Flat, "Sump transfer pump"),
		},
		UnitConnection: Rate("100", "300", Flat, "Drain pan connection per unit"),
		FilterBaseline: Rate("50", "150", Flat, "Inline strainer"),
		FilterPotable:  Rate("800", "1500", Flat, "Carbon, UV and remineralization train"),
		// Climate-averaged placeholder; recalibrate per region through a catalog file.
		DailyGallonsPerTon: decimal.NewFromInt(5),
		TankSizing: TankSizing{
			Fraction:       decimal.RequireFromString("0.08"),
			MinimumGallons: decimal.NewFromInt(50),
		},
		MiscFraction: decimal.RequireFromString("0.10"),
	}
}
