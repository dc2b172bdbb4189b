package techtree

import (
	"fmt"
	"sort"
)

// TechTree is the stat table set used by one session. It is a value type:
// copies never share mutable state, and a session never edits its own.
type TechTree struct {
	units     [unitTypeCount]UnitStats
	buildings [buildingTypeCount]BuildingStats
}

// Default returns the stock tables.
func Default() TechTree {
	var tt TechTree
	tt.units = [unitTypeCount]UnitStats{
		Infantry: {Health: 100, Speed: 5, AttackDamage: 10, AttackRange: 2, AttackCooldown: 1, Cost: 50, ProductionTime: 3,
			RegenPerSecond: 2},
		Harvester: {Health: 150, Speed: 4, Cost: 100, ProductionTime: 5,
			HarvestRate: 50, HarvestCooldown: 1, MaxCarried: 200},
		Tank: {Health: 200, Speed: 3, AttackDamage: 25, AttackRange: 3, AttackCooldown: 1.5, ProjectileSpeed: 20, SplashRadius: 1.5,
			Cost: 150, ProductionTime: 6},
		Artillery: {Health: 120, Speed: 2, AttackDamage: 40, AttackRange: 8, AttackCooldown: 3, ProjectileSpeed: 10, SplashRadius: 2.5,
			Cost: 200, ProductionTime: 8},
		AntiAir: {Health: 140, Speed: 3.5, AttackDamage: 15, AttackRange: 6, AttackCooldown: 0.8, ProjectileSpeed: 30,
			Cost: 120, ProductionTime: 5},
		Scout: {Health: 80, Speed: 8, AttackDamage: 5, AttackRange: 4, AttackCooldown: 0.5, Cost: 40, ProductionTime: 2,
			BoostDuration: 3, BoostRecharge: 10},
	}
	tt.buildings = [buildingTypeCount]BuildingStats{
		CommandCenter: {Health: 1000, PowerOutput: 50, ConstructionTime: 30, Cost: 0},
		Refinery:      {Health: 400, PowerConsumption: 10, ConstructionTime: 15, Cost: 100},
		Barracks: {Health: 500, PowerConsumption: 5, ConstructionTime: 20, Cost: 150,
			Produces: []UnitType{Infantry, Scout}},
		PowerPlant: {Health: 300, PowerOutput: 100, ConstructionTime: 10, Cost: 200},
		Factory: {Health: 600, PowerConsumption: 15, ConstructionTime: 25, Cost: 300,
			Produces: []UnitType{Tank, Harvester, Artillery, AntiAir}},
		DefenseTurret: {Health: 200, PowerConsumption: 5, ConstructionTime: 8, Cost: 100,
			AttackDamage: 15, AttackRange: 6, AttackCooldown: 1},
	}
	return tt
}

// Unit returns the profile for t. Unknown types get the zero profile.
func (tt TechTree) Unit(t UnitType) UnitStats {
	if !t.Valid() {
		return UnitStats{}
	}
	return tt.units[t]
}

// Building returns the profile for t. The Produces slice is copied.
func (tt TechTree) Building(t BuildingType) BuildingStats {
	if !t.Valid() {
		return BuildingStats{}
	}
	s := tt.buildings[t]
	s.Produces = append([]UnitType(nil), s.Produces...)
	return s
}

// WithUnit returns a copy of the tree with t's profile replaced.
func (tt TechTree) WithUnit(t UnitType, s UnitStats) TechTree {
	if t.Valid() {
		tt.units[t] = s
	}
	return tt
}

// WithBuilding returns a copy of the tree with t's profile replaced. The
// roster of producible units is kept.
func (tt TechTree) WithBuilding(t BuildingType, s BuildingStats) TechTree {
	if t.Valid() {
		s.Produces = tt.buildings[t].Produces
		tt.buildings[t] = s
	}
	return tt
}

// Overrides applies per-type stat replacements keyed by type name.
// Unknown names are reported together, sorted, and nothing is applied.
func (tt TechTree) Overrides(units map[string]UnitStats, buildings map[string]BuildingStats) (TechTree, error) {
	var unknown []string
	for name := range units {
		if _, ok := ParseUnitType(name); !ok {
			unknown = append(unknown, "unit "+name)
		}
	}
	for name := range buildings {
		if _, ok := ParseBuildingType(name); !ok {
			unknown = append(unknown, "building "+name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return tt, fmt.Errorf("techtree: unknown types %v", unknown)
	}
	out := tt
	for name, s := range units {
		t, _ := ParseUnitType(name)
		out = out.WithUnit(t, s)
	}
	for name, s := range buildings {
		t, _ := ParseBuildingType(name)
		out = out.WithBuilding(t, s)
	}
	return out, nil
}
