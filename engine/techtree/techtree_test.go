package techtree

import (
	"strings"
	"testing"
)

func TestDefaultTankProfile(t *testing.T) {
	s := Default().Unit(Tank)
	if s.Health != 200 || s.AttackDamage != 25 || s.AttackRange != 3 || s.AttackCooldown != 1.5 {
		t.Fatalf("tank profile = %+v", s)
	}
	if !s.HasSplash() {
		t.Errorf("tank should carry splash")
	}
}

func TestEveryTypeHasAProfile(t *testing.T) {
	tt := Default()
	for _, u := range UnitTypes {
		s := tt.Unit(u)
		if s.Health <= 0 || s.Speed <= 0 || s.ProductionTime <= 0 {
			t.Errorf("%v has incomplete profile %+v", u, s)
		}
	}
	for _, b := range BuildingTypes {
		if tt.Building(b).Health <= 0 {
			t.Errorf("%v has no health", b)
		}
	}
}

func TestOnlyHarvesterHarvests(t *testing.T) {
	tt := Default()
	for _, u := range UnitTypes {
		if got := tt.Unit(u).CanHarvest(); got != (u == Harvester) {
			t.Errorf("%v CanHarvest = %v", u, got)
		}
	}
}

func TestProductionRosters(t *testing.T) {
	tt := Default()
	cases := []struct {
		b    BuildingType
		u    UnitType
		want bool
	}{
		{Barracks, Infantry, true},
		{Barracks, Tank, false},
		{Factory, Tank, true},
		{Factory, Harvester, true},
		{Refinery, Infantry, false},
	}
	for _, c := range cases {
		if got := tt.Building(c.b).Produce(c.u); got != c.want {
			t.Errorf("%v produces %v = %v, want %v", c.b, c.u, got, c.want)
		}
	}
}

func TestBuildingRosterIsCopied(t *testing.T) {
	tt := Default()
	s := tt.Building(Barracks)
	s.Produces[0] = Artillery
	if tt.Building(Barracks).Produces[0] != Infantry {
		t.Fatalf("mutating a returned roster leaked into the table")
	}
}

func TestParseNames(t *testing.T) {
	if u, ok := ParseUnitType("antiair"); !ok || u != AntiAir {
		t.Errorf("ParseUnitType(antiair) = %v, %v", u, ok)
	}
	if b, ok := ParseBuildingType("POWERPLANT"); !ok || b != PowerPlant {
		t.Errorf("ParseBuildingType(POWERPLANT) = %v, %v", b, ok)
	}
	if _, ok := ParseUnitType("mcv"); ok {
		t.Errorf("unknown unit parsed")
	}
}

func TestOverrides(t *testing.T) {
	base := Default()
	scout := base.Unit(Scout)
	scout.Speed = 12
	tt, err := base.Overrides(map[string]UnitStats{"scout": scout}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if tt.Unit(Scout).Speed != 12 {
		t.Errorf("override not applied")
	}
	if base.Unit(Scout).Speed != 8 {
		t.Errorf("override mutated the source tree")
	}

	_, err = base.Overrides(map[string]UnitStats{"zeppelin": {}}, map[string]BuildingStats{"silo": {}})
	if err == nil || !strings.Contains(err.Error(), "zeppelin") || !strings.Contains(err.Error(), "silo") {
		t.Fatalf("expected unknown-type error, got %v", err)
	}
}

func TestWithBuildingKeepsRoster(t *testing.T) {
	tt := Default().WithBuilding(Factory, BuildingStats{Health: 900})
	s := tt.Building(Factory)
	if s.Health != 900 || !s.Produce(Tank) {
		t.Fatalf("got %+v", s)
	}
}
