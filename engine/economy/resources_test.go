package economy

import (
	"math"
	"testing"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/entity"
	"github.com/1siamBot/promethium/engine/techtree"
)

type registry struct {
	tree      techtree.TechTree
	buildings map[core.EntityID]*entity.Building
	nodes     map[core.EntityID]*entity.ResourceNode
	ids       core.IDAllocator
}

func newRegistry() *registry {
	return &registry{
		tree:      techtree.Default(),
		buildings: make(map[core.EntityID]*entity.Building),
		nodes:     make(map[core.EntityID]*entity.ResourceNode),
	}
}

func (r *registry) Building(id core.EntityID) *entity.Building  { return r.buildings[id] }
func (r *registry) Node(id core.EntityID) *entity.ResourceNode { return r.nodes[id] }

func (r *registry) build(rm *ResourceManager, kind techtree.BuildingType, constructed bool) *entity.Building {
	b := entity.NewBuilding(r.ids.Next(), kind, &r.tree, core.Pos(0, 0))
	if constructed {
		b.CompleteConstruction()
	}
	r.buildings[b.ID()] = b
	rm.AddBuilding(b.ID())
	return b
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRefineryConvertsAtFullPower(t *testing.T) {
	reg := newRegistry()
	rm := NewResourceManager(reg)
	reg.build(rm, techtree.PowerPlant, true)
	reg.build(rm, techtree.Refinery, true)

	rm.DepositPromethium(100)
	rm.Update(1.0)

	if rm.Efficiency() != 1 {
		t.Fatalf("efficiency = %v, want 1", rm.Efficiency())
	}
	if !(rm.Promethium() < 100) || rm.EnergyCredits() <= 0 {
		t.Fatalf("promethium=%v credits=%v", rm.Promethium(), rm.EnergyCredits())
	}
	if !approx(rm.Promethium(), 90) || !approx(rm.EnergyCredits(), 10) {
		t.Errorf("promethium=%v credits=%v, want 90 and 10", rm.Promethium(), rm.EnergyCredits())
	}
}

func TestConversionSkippedWhenStockShort(t *testing.T) {
	reg := newRegistry()
	rm := NewResourceManager(reg)
	reg.build(rm, techtree.PowerPlant, true)
	reg.build(rm, techtree.Refinery, true)

	rm.DepositPromethium(5)
	rm.Update(1.0)

	if rm.Promethium() != 5 {
		t.Fatalf("promethium = %v, want untouched 5", rm.Promethium())
	}
	if !approx(rm.EnergyCredits(), 2) {
		t.Fatalf("credits = %v, want trickle only", rm.EnergyCredits())
	}
}

func TestPowerShortageThrottlesRefinery(t *testing.T) {
	reg := newRegistry()
	rm := NewResourceManager(reg)
	reg.build(rm, techtree.PowerPlant, true) // 100 supply
	var refineries []*entity.Building
	for i := 0; i < 20; i++ {
		refineries = append(refineries, reg.build(rm, techtree.Refinery, true)) // 200 demand
	}
	rm.DepositPromethium(1000)
	rm.Update(1.0)

	if rm.Power() != 100 || rm.PowerConsumption() != 200 {
		t.Fatalf("power=%v consumption=%v", rm.Power(), rm.PowerConsumption())
	}
	if rm.Efficiency() != 0.5 {
		t.Fatalf("efficiency = %v, want 0.5", rm.Efficiency())
	}
	for _, r := range refineries {
		if r.PowerEfficiency() != 0.5 {
			t.Fatalf("refinery efficiency = %v, want 0.5", r.PowerEfficiency())
		}
	}
	// 20 refineries at half rate process 100 and credit 80 plus 40 trickle.
	if !approx(rm.Promethium(), 900) || !approx(rm.EnergyCredits(), 120) {
		t.Errorf("promethium=%v credits=%v", rm.Promethium(), rm.EnergyCredits())
	}
}

func TestCommandCenterDoesNotPowerTheGrid(t *testing.T) {
	reg := newRegistry()
	rm := NewResourceManager(reg)
	reg.build(rm, techtree.CommandCenter, true)
	ref := reg.build(rm, techtree.Refinery, true)

	rm.DepositPromethium(100)
	rm.Update(1.0)

	if rm.Power() != 0 || rm.PowerConsumption() != 10 {
		t.Fatalf("power=%v consumption=%v, want 0 and 10", rm.Power(), rm.PowerConsumption())
	}
	if rm.Efficiency() != 0 || ref.PowerEfficiency() != 0 {
		t.Fatalf("efficiency=%v refinery=%v, want 0", rm.Efficiency(), ref.PowerEfficiency())
	}
	if rm.Promethium() != 100 {
		t.Errorf("promethium = %v, want nothing converted", rm.Promethium())
	}
	if !approx(rm.EnergyCredits(), 2) {
		t.Errorf("credits = %v, want trickle only", rm.EnergyCredits())
	}
}

func TestUnfinishedBuildingsIgnored(t *testing.T) {
	reg := newRegistry()
	rm := NewResourceManager(reg)
	reg.build(rm, techtree.PowerPlant, false)
	reg.build(rm, techtree.Refinery, false)

	rm.DepositPromethium(100)
	rm.Update(1.0)

	if rm.Power() != 0 || rm.PowerConsumption() != 0 || rm.Efficiency() != 1 {
		t.Fatalf("power=%v consumption=%v eff=%v", rm.Power(), rm.PowerConsumption(), rm.Efficiency())
	}
	if rm.Promethium() != 100 || rm.EnergyCredits() != 0 {
		t.Fatalf("unfinished refinery converted: promethium=%v credits=%v", rm.Promethium(), rm.EnergyCredits())
	}
}

func TestProducersKeepTheirOutput(t *testing.T) {
	reg := newRegistry()
	rm := NewResourceManager(reg)
	plant := reg.build(rm, techtree.PowerPlant, true)
	reg.build(rm, techtree.Factory, true)
	for i := 0; i < 20; i++ {
		reg.build(rm, techtree.Refinery, true)
	}
	rm.Update(0.5)
	rm.Update(0.5)

	if plant.PowerEfficiency() != 1 || rm.Power() != 100 {
		t.Fatalf("plant efficiency=%v power=%v", plant.PowerEfficiency(), rm.Power())
	}
}

func TestSpendEnergyCredits(t *testing.T) {
	rm := NewResourceManager(newRegistry())
	rm.GrantEnergyCredits(100)

	if rm.SpendEnergyCredits(150) {
		t.Fatal("overspend succeeded")
	}
	if rm.EnergyCredits() != 100 {
		t.Fatalf("failed spend changed balance to %v", rm.EnergyCredits())
	}
	if !rm.CanAfford(100) || !rm.SpendEnergyCredits(60) {
		t.Fatal("affordable spend refused")
	}
	if rm.EnergyCredits() != 40 {
		t.Fatalf("balance = %v, want 40", rm.EnergyCredits())
	}
	if rm.SpendEnergyCredits(-10) || rm.SpendEnergyCredits(math.NaN()) {
		t.Fatal("bad cost accepted")
	}
	if rm.EnergyCredits() != 40 {
		t.Fatalf("balance = %v, want 40", rm.EnergyCredits())
	}
}

func TestDepositIgnoresBadAmounts(t *testing.T) {
	rm := NewResourceManager(newRegistry())
	rm.DepositPromethium(0)
	rm.DepositPromethium(-5)
	rm.DepositPromethium(math.Inf(1))
	rm.DepositPromethium(25)
	if rm.Promethium() != 25 {
		t.Fatalf("promethium = %v, want 25", rm.Promethium())
	}
}

func TestRemovedBuildingsStopCounting(t *testing.T) {
	reg := newRegistry()
	rm := NewResourceManager(reg)
	plant := reg.build(rm, techtree.PowerPlant, true)
	rm.AddBuilding(plant.ID())
	rm.Update(0)
	if rm.Power() != 100 {
		t.Fatalf("power = %v, want 100 with a single registration", rm.Power())
	}

	rm.RemoveBuilding(plant.ID())
	rm.Update(0)
	if rm.Power() != 0 || len(rm.Buildings()) != 0 {
		t.Fatalf("power = %v after removal", rm.Power())
	}
}

func TestMissingEntitiesSkipped(t *testing.T) {
	reg := newRegistry()
	rm := NewResourceManager(reg)
	plant := reg.build(rm, techtree.PowerPlant, true)
	delete(reg.buildings, plant.ID())
	rm.AddNode(99)
	rm.Update(1)
	if rm.Power() != 0 || rm.Reserves() != 0 {
		t.Fatalf("power=%v reserves=%v", rm.Power(), rm.Reserves())
	}
}

func TestReserves(t *testing.T) {
	reg := newRegistry()
	rm := NewResourceManager(reg)
	for i, amount := range []int{300, 200} {
		n := entity.NewResourceNode(core.EntityID(i+1), core.Pos(0, 0), amount)
		reg.nodes[n.ID()] = n
		rm.AddNode(n.ID())
	}
	reg.nodes[1].Harvest(100)
	if rm.Reserves() != 400 {
		t.Fatalf("reserves = %v, want 400", rm.Reserves())
	}
	rm.RemoveNode(2)
	if rm.Reserves() != 200 {
		t.Fatalf("reserves = %v, want 200", rm.Reserves())
	}
}
