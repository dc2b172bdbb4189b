// Package techtree holds the closed unit and building enumerations and the
// immutable per-type stat tables the simulation reads from.
package techtree

import "strings"

// UnitType enumerates every unit the simulation knows about.
type UnitType uint8

const (
	Infantry UnitType = iota
	Harvester
	Tank
	Artillery
	AntiAir
	Scout
	unitTypeCount
)

// UnitTypes lists all unit types in table order.
var UnitTypes = [unitTypeCount]UnitType{Infantry, Harvester, Tank, Artillery, AntiAir, Scout}

var unitNames = [unitTypeCount]string{
	Infantry:  "Infantry",
	Harvester: "Harvester",
	Tank:      "Tank",
	Artillery: "Artillery",
	AntiAir:   "AntiAir",
	Scout:     "Scout",
}

func (t UnitType) String() string {
	if t < unitTypeCount {
		return unitNames[t]
	}
	return "Unknown"
}

// Valid reports whether t is one of the enumerated types.
func (t UnitType) Valid() bool { return t < unitTypeCount }

// ParseUnitType resolves a case-insensitive unit name.
func ParseUnitType(s string) (UnitType, bool) {
	for i, n := range unitNames {
		if strings.EqualFold(n, s) {
			return UnitType(i), true
		}
	}
	return 0, false
}

// BuildingType enumerates every structure.
type BuildingType uint8

const (
	CommandCenter BuildingType = iota
	Refinery
	Barracks
	PowerPlant
	Factory
	DefenseTurret
	buildingTypeCount
)

// BuildingTypes lists all building types in table order.
var BuildingTypes = [buildingTypeCount]BuildingType{CommandCenter, Refinery, Barracks, PowerPlant, Factory, DefenseTurret}

var buildingNames = [buildingTypeCount]string{
	CommandCenter: "CommandCenter",
	Refinery:      "Refinery",
	Barracks:      "Barracks",
	PowerPlant:    "PowerPlant",
	Factory:       "Factory",
	DefenseTurret: "DefenseTurret",
}

func (t BuildingType) String() string {
	if t < buildingTypeCount {
		return buildingNames[t]
	}
	return "Unknown"
}

func (t BuildingType) Valid() bool { return t < buildingTypeCount }

// ParseBuildingType resolves a case-insensitive building name.
func ParseBuildingType(s string) (BuildingType, bool) {
	for i, n := range buildingNames {
		if strings.EqualFold(n, s) {
			return BuildingType(i), true
		}
	}
	return 0, false
}
