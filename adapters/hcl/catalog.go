// Package hcl loads catalog override files and site description files
// written in HCL.
package hcl

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"go.uber.org/zap"

	"reuse-cost/core/catalog"
	"reuse-cost/core/types"
	"reuse-cost/internal/errors"
	"reuse-cost/internal/logging"
)

// Loader parses HCL sources. Parsed files are cached by name, so a
// changed file must be re-read with a new Loader.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL loader
func NewLoader() *Loader {
	return &Loader{
		parser: hclparse.NewParser(),
	}
}

type catalogFile struct {
	Version   cty.Value    `hcl:"version,optional"`
	Rainwater *systemBlock `hcl:"rainwater,block"`
	HVAC      *systemBlock `hcl:"hvac,block"`
}

// systemBlock is shared by both systems; attributes that do not apply to a
// system are rejected when the block is applied
type systemBlock struct {
	GallonsPerSqftInch cty.Value    `hcl:"gallons_per_sqft_inch,optional"`
	DailyGallonsPerTon cty.Value    `hcl:"daily_gallons_per_ton,optional"`
	MiscFraction       cty.Value    `hcl:"misc_fraction,optional"`
	RoofEfficiency     cty.Value    `hcl:"roof_efficiency,optional"`
	TankSizing         *sizingBlock `hcl:"tank_sizing,block"`
	Rates              []rateBlock  `hcl:"rate,block"`
}

type sizingBlock struct {
	Fraction       cty.Value `hcl:"fraction,optional"`
	MinimumGallons cty.Value `hcl:"minimum_gallons,optional"`
}

type rateBlock struct {
	Group string    `hcl:"group,label"`
	Key   string    `hcl:"key,label"`
	Low   cty.Value `hcl:"low"`
	High  cty.Value `hcl:"high"`
	Basis cty.Value `hcl:"basis,optional"`
	Label cty.Value `hcl:"label,optional"`
}

// LoadCatalog reads an override file and applies it over the built-in catalog
func (l *Loader) LoadCatalog(path string) (*catalog.Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeCatalog, err, "read catalog file %s", path)
	}
	return l.ParseCatalog(src, path, catalog.Default())
}

// ParseCatalog applies override source to a copy of base
func (l *Loader) ParseCatalog(src []byte, filename string, base *catalog.Catalog) (*catalog.Catalog, error) {
	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Parsing("parse catalog file "+filename, diags)
	}

	var cf catalogFile
	if diags := gohcl.DecodeBody(file.Body, nil, &cf); diags.HasErrors() {
		return nil, errors.Parsing("decode catalog file "+filename, diags)
	}

	cat := base.Clone()
	if present(cf.Version) {
		v, err := toString("version", cf.Version)
		if err != nil {
			return nil, errors.Parsing("catalog version", err)
		}
		cat.Version = v
	}

	overrides := 0
	if cf.Rainwater != nil {
		n, err := applyRainwater(cat, cf.Rainwater)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeCatalog, err, "%s: rainwater", filename)
		}
		overrides += n
	}
	if cf.HVAC != nil {
		n, err := applyHVAC(cat, cf.HVAC)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeCatalog, err, "%s: hvac", filename)
		}
		overrides += n
	}

	if err := catalog.Check(cat); err != nil {
		return nil, errors.Wrapf(errors.TypeCatalog, err, "catalog file %s", filename)
	}

	logging.Debug("catalog overrides applied",
		zap.String("file", filename),
		zap.String("version", cat.Version),
		zap.Int("overrides", overrides))
	return cat, nil
}

func applyRainwater(cat *catalog.Catalog, b *systemBlock) (int, error) {
	rw := &cat.Rainwater
	n := 0

	if present(b.DailyGallonsPerTon) {
		return 0, fmt.Errorf("daily_gallons_per_ton applies to hvac only")
	}
	if present(b.GallonsPerSqftInch) {
		d, err := toDecimal("gallons_per_sqft_inch", b.GallonsPerSqftInch)
		if err != nil {
			return 0, err
		}
		rw.GallonsPerSqftInch = d
		n++
	}
	if present(b.MiscFraction) {
		d, err := toDecimal("misc_fraction", b.MiscFraction)
		if err != nil {
			return 0, err
		}
		rw.MiscFraction = d
		n++
	}
	if present(b.RoofEfficiency) {
		eff, err := toDecimalMap("roof_efficiency", b.RoofEfficiency)
		if err != nil {
			return 0, err
		}
		for roof, d := range eff {
			if _, ok := rw.RoofEfficiency[types.RoofType(roof)]; !ok {
				return 0, fmt.Errorf("roof_efficiency: unknown roof type %q", roof)
			}
			rw.RoofEfficiency[types.RoofType(roof)] = d
			n++
		}
	}
	if b.TankSizing != nil {
		if err := applySizing(&rw.TankSizing, b.TankSizing); err != nil {
			return 0, err
		}
		n++
	}

	m, err := applyRates(cat, types.SystemRainwater, b.Rates)
	return n + m, err
}

func applyHVAC(cat *catalog.Catalog, b *systemBlock) (int, error) {
	hv := &cat.HVAC
	n := 0

	if present(b.GallonsPerSqftInch) || present(b.RoofEfficiency) {
		return 0, fmt.Errorf("gallons_per_sqft_inch and roof_efficiency apply to rainwater only")
	}
	if present(b.DailyGallonsPerTon) {
		d, err := toDecimal("daily_gallons_per_ton", b.DailyGallonsPerTon)
		if err != nil {
			return 0, err
		}
		hv.DailyGallonsPerTon = d
		n++
	}
	if present(b.MiscFraction) {
		d, err := toDecimal("misc_fraction", b.MiscFraction)
		if err != nil {
			return 0, err
		}
		hv.MiscFraction = d
		n++
	}
	if b.TankSizing != nil {
		if err := applySizing(&hv.TankSizing, b.TankSizing); err != nil {
			return 0, err
		}
		n++
	}

	m, err := applyRates(cat, types.SystemHVAC, b.Rates)
	return n + m, err
}

func applySizing(dst *catalog.TankSizing, b *sizingBlock) error {
	if present(b.Fraction) {
		d, err := toDecimal("tank_sizing.fraction", b.Fraction)
		if err != nil {
			return err
		}
		dst.Fraction = d
	}
	if present(b.MinimumGallons) {
		d, err := toDecimal("tank_sizing.minimum_gallons", b.MinimumGallons)
		if err != nil {
			return err
		}
		dst.MinimumGallons = d
	}
	return nil
}

// applyRates replaces addressed rates. Basis and label default to the
// rate being replaced.
func applyRates(cat *catalog.Catalog, system types.SystemKind, blocks []rateBlock) (int, error) {
	current := make(map[string]catalog.MaterialRate)
	for _, e := range cat.Entries() {
		if e.System == system {
			current[e.Group+"/"+e.Key] = e.Rate
		}
	}

	for _, b := range blocks {
		addr := b.Group + "/" + b.Key
		existing, ok := current[addr]
		if !ok {
			return 0, fmt.Errorf("rate %q %q: no such rate", b.Group, b.Key)
		}

		rate := existing
		var err error
		if rate.Low, err = toDecimal("rate "+addr+" low", b.Low); err != nil {
			return 0, err
		}
		if rate.High, err = toDecimal("rate "+addr+" high", b.High); err != nil {
			return 0, err
		}
		if present(b.Basis) {
			basis, err := toString("rate "+addr+" basis", b.Basis)
			if err != nil {
				return 0, err
			}
			rate.Basis = catalog.UnitBasis(basis)
		}
		if present(b.Label) {
			if rate.Label, err = toString("rate "+addr+" label", b.Label); err != nil {
				return 0, err
			}
		}
		if err := cat.SetRate(system, b.Group, b.Key, rate); err != nil {
			return 0, err
		}
	}
	return len(blocks), nil
}
