package catalog

import (
	"github.com/shopspring/decimal"

	"reuse-cost/core/types"
	"reuse-cost/internal/errors"
)

// Rate groups address a rate as (system, group, key)
const (
	GroupGutter     = "gutter"
	GroupPiping     = "piping"
	GroupTank       = "tank"
	GroupPump       = "pump"
	GroupFilter     = "filter"
	GroupAddOn      = "addon"
	GroupConnection = "connection"
)

// Keys of single-rate groups
const (
	FilterBaseline    = "baseline"
	FilterPotable     = "potable"
	AddOnPressureTank = "pressure_tank"
	AddOnExcavation   = "excavation"
	ConnectionPerUnit = "per_unit"
)

// Entry is one addressable rate in the catalog
type Entry struct {
	System types.SystemKind `json:"system"`
	Group  string           `json:"group"`
	Key    string           `json:"key"`
	Rate   MaterialRate     `json:"rate"`
}

// Constant is one addressable scalar in the catalog
type Constant struct {
	System types.SystemKind `json:"system"`
	Name   string           `json:"name"`
	Value  decimal.Decimal  `json:"value"`
}

func tableEntries[K ~string](system types.SystemKind, group string, table map[K]MaterialRate) []Entry {
	out := make([]Entry, 0, len(table))
	for _, key := range Keys(table) {
		out = append(out, Entry{System: system, Group: group, Key: key, Rate: table[K(key)]})
	}
	return out
}

// Entries lists every rate in a stable order
func (c *Catalog) Entries() []Entry {
	rw, hv := &c.Rainwater, &c.HVAC
	sr, sh := types.SystemRainwater, types.SystemHVAC

	var out []Entry
	out = append(out, tableEntries(sr, GroupGutter, rw.Gutters)...)
	out = append(out, tableEntries(sr, GroupPiping, rw.Piping)...)
	out = append(out, tableEntries(sr, GroupTank, rw.Tanks)...)
	out = append(out, tableEntries(sr, GroupPump, rw.Pumps)...)
	out = append(out,
		Entry{sr, GroupFilter, FilterBaseline, rw.FilterBaseline},
		Entry{sr, GroupFilter, FilterPotable, rw.FilterPotable},
		Entry{sr, GroupAddOn, AddOnPressureTank, rw.PressureTank},
		Entry{sr, GroupAddOn, AddOnExcavation, rw.Excavation},
	)
	out = append(out, tableEntries(sh, GroupPiping, hv.Piping)...)
	out = append(out, tableEntries(sh, GroupTank, hv.Tanks)...)
	out = append(out, tableEntries(sh, GroupPump, hv.Pumps)...)
	out = append(out,
		Entry{sh, GroupFilter, FilterBaseline, hv.FilterBaseline},
		Entry{sh, GroupFilter, FilterPotable, hv.FilterPotable},
		Entry{sh, GroupConnection, ConnectionPerUnit, hv.UnitConnection},
	)
	return out
}

// Constants lists every scalar in a stable order
func (c *Catalog) Constants() []Constant {
	rw, hv := &c.Rainwater, &c.HVAC
	sr, sh := types.SystemRainwater, types.SystemHVAC

	var out []Constant
	for _, roof := range Keys(rw.RoofEfficiency) {
		out = append(out, Constant{sr, "roof_efficiency." + roof, rw.RoofEfficiency[types.RoofType(roof)]})
	}
	out = append(out,
		Constant{sr, "gallons_per_sqft_inch", rw.GallonsPerSqftInch},
		Constant{sr, "tank_sizing.fraction", rw.TankSizing.Fraction},
		Constant{sr, "tank_sizing.minimum_gallons", rw.TankSizing.MinimumGallons},
		Constant{sr, "misc_fraction", rw.MiscFraction},
		Constant{sh, "daily_gallons_per_ton", hv.DailyGallonsPerTon},
		Constant{sh, "tank_sizing.fraction", hv.TankSizing.Fraction},
		Constant{sh, "tank_sizing.minimum_gallons", hv.TankSizing.MinimumGallons},
		Constant{sh, "misc_fraction", hv.MiscFraction},
	)
	return out
}

func setTable[K ~string](table map[K]MaterialRate, kind, key string, rate MaterialRate) error {
	if _, ok := table[K(key)]; !ok {
		return errors.Catalogf("unknown %s %q", kind, key)
	}
	table[K(key)] = rate
	return nil
}

// SetRate replaces an existing rate. Unknown addresses are rejected so a
// typo in an override file cannot silently add an unreachable rate.
func (c *Catalog) SetRate(system types.SystemKind, group, key string, rate MaterialRate) error {
	switch system {
	case types.SystemRainwater:
		return c.setRainwaterRate(group, key, rate)
	case types.SystemHVAC:
		return c.setHVACRate(group, key, rate)
	default:
		return errors.Catalogf("unknown system %q", system)
	}
}

func (c *Catalog) setRainwaterRate(group, key string, rate MaterialRate) error {
	rw := &c.Rainwater
	switch group {
	case GroupGutter:
		return setTable(rw.Gutters, "rainwater gutter", key, rate)
	case GroupPiping:
		return setTable(rw.Piping, "rainwater piping", key, rate)
	case GroupTank:
		return setTable(rw.Tanks, "rainwater tank", key, rate)
	case GroupPump:
		return setTable(rw.Pumps, "rainwater pump", key, rate)
	case GroupFilter:
		return setFilter(&rw.FilterBaseline, &rw.FilterPotable, "rainwater", key, rate)
	case GroupAddOn:
		switch key {
		case AddOnPressureTank:
			rw.PressureTank = rate
		case AddOnExcavation:
			rw.Excavation = rate
		default:
			return errors.Catalogf("unknown rainwater add-on %q", key)
		}
		return nil
	default:
		return errors.Catalogf("unknown rainwater rate group %q", group)
	}
}

func (c *Catalog) setHVACRate(group, key string, rate MaterialRate) error {
	hv := &c.HVAC
	switch group {
	case GroupPiping:
		return setTable(hv.Piping, "hvac piping", key, rate)
	case GroupTank:
		return setTable(hv.Tanks, "hvac tank", key, rate)
	case GroupPump:
		return setTable(hv.Pumps, "hvac pump", key, rate)
	case GroupFilter:
		return setFilter(&hv.FilterBaseline, &hv.FilterPotable, "hvac", key, rate)
	case GroupConnection:
		if key != ConnectionPerUnit {
			return errors.Catalogf("unknown hvac connection %q", key)
		}
		hv.UnitConnection = rate
		return nil
	default:
		return errors.Catalogf("unknown hvac rate group %q", group)
	}
}

func setFilter(baseline, potable *MaterialRate, system, key string, rate MaterialRate) error {
	switch key {
	case FilterBaseline:
		*baseline = rate
	case FilterPotable:
		*potable = rate
	default:
		return errors.Catalogf("unknown %s filter %q", system, key)
	}
	return nil
}
