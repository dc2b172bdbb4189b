// Package economy aggregates power across a session's buildings and turns
// stored promethium into spendable energy credits.
package economy

import (
	"math"
	"slices"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/entity"
	"github.com/1siamBot/promethium/engine/techtree"
)

const (
	// RefineryRate is promethium processed per refinery per second at
	// full power.
	RefineryRate = 10.0
	// ConversionRatio is the share of processed promethium credited.
	ConversionRatio = 0.8
	// RefineryTrickle is the passive credit income of each refinery.
	RefineryTrickle = 2.0
)

// Registry resolves ids to the entities the session owns.
type Registry interface {
	Building(id core.EntityID) *entity.Building
	Node(id core.EntityID) *entity.ResourceNode
}

// ResourceManager is the economy of one session. It observes buildings and
// nodes by id and never owns them.
type ResourceManager struct {
	reg Registry

	buildings []core.EntityID
	nodes     []core.EntityID

	promethium    float64
	energyCredits float64
	power         float64
	consumption   float64
}

func NewResourceManager(reg Registry) *ResourceManager {
	return &ResourceManager{reg: reg}
}

func (rm *ResourceManager) Promethium() float64       { return rm.promethium }
func (rm *ResourceManager) EnergyCredits() float64    { return rm.energyCredits }
func (rm *ResourceManager) Power() float64            { return rm.power }
func (rm *ResourceManager) PowerConsumption() float64 { return rm.consumption }

// Efficiency is supply over demand, capped at 1. No demand means full
// efficiency.
func (rm *ResourceManager) Efficiency() float64 {
	return efficiency(rm.power, rm.consumption)
}

func efficiency(power, consumption float64) float64 {
	if consumption <= 0 {
		return 1
	}
	return max(0, min(1, power/consumption))
}

// AddBuilding starts observing b. Adding twice is a no-op.
func (rm *ResourceManager) AddBuilding(id core.EntityID) {
	if !slices.Contains(rm.buildings, id) {
		rm.buildings = append(rm.buildings, id)
	}
}

// RemoveBuilding stops observing a building.
func (rm *ResourceManager) RemoveBuilding(id core.EntityID) {
	rm.buildings = slices.DeleteFunc(rm.buildings, func(x core.EntityID) bool { return x == id })
}

// AddNode starts observing a resource node.
func (rm *ResourceManager) AddNode(id core.EntityID) {
	if !slices.Contains(rm.nodes, id) {
		rm.nodes = append(rm.nodes, id)
	}
}

// RemoveNode stops observing a resource node.
func (rm *ResourceManager) RemoveNode(id core.EntityID) {
	rm.nodes = slices.DeleteFunc(rm.nodes, func(x core.EntityID) bool { return x == id })
}

// Buildings returns the observed building ids in insertion order.
func (rm *ResourceManager) Buildings() []core.EntityID { return slices.Clone(rm.buildings) }

// Reserves is the promethium left in all observed nodes.
func (rm *ResourceManager) Reserves() int {
	total := 0
	for _, id := range rm.nodes {
		if n := rm.reg.Node(id); n != nil {
			total += n.Amount()
		}
	}
	return total
}

// Update runs the power pass and then the conversion pass.
func (rm *ResourceManager) Update(dt float64) {
	rm.updatePower()
	if dt > 0 {
		rm.updateConversion(dt)
	}
}

func (rm *ResourceManager) updatePower() {
	rm.power = 0
	rm.consumption = 0
	for _, id := range rm.buildings {
		b := rm.reg.Building(id)
		if b == nil || !b.IsConstructed() || b.IsDestroyed() {
			continue
		}
		if b.IsPowerProducer() {
			rm.power += b.PowerOutput()
		}
		rm.consumption += b.PowerConsumption()
	}

	eff := rm.Efficiency()
	for _, id := range rm.buildings {
		if b := rm.reg.Building(id); b != nil && b.EfficiencySensitive() {
			b.SetPowerEfficiency(eff)
		}
	}
}

func (rm *ResourceManager) updateConversion(dt float64) {
	for _, id := range rm.buildings {
		b := rm.reg.Building(id)
		if b == nil || b.Type() != techtree.Refinery || !b.IsConstructed() || b.IsDestroyed() {
			continue
		}
		rm.energyCredits += RefineryTrickle * dt

		// A tick with less stock than one tick's processing converts
		// nothing at all.
		processed := RefineryRate * b.PowerEfficiency() * dt
		if rm.promethium >= processed {
			rm.promethium -= processed
			rm.energyCredits += processed * ConversionRatio
		}
	}
}

// DepositPromethium stores raw resource delivered by a harvester.
// Non-positive and non-finite amounts are ignored.
func (rm *ResourceManager) DepositPromethium(amount float64) {
	if amount <= 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return
	}
	rm.promethium += amount
}

// GrantEnergyCredits adds credits from outside the conversion loop, such
// as a scenario's starting funds.
func (rm *ResourceManager) GrantEnergyCredits(amount float64) {
	if amount <= 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return
	}
	rm.energyCredits += amount
}

// CanAfford reports whether cost is covered by current credits.
func (rm *ResourceManager) CanAfford(cost float64) bool {
	return rm.energyCredits >= cost
}

// SpendEnergyCredits debits exactly cost if affordable. On failure the
// balance is unchanged.
func (rm *ResourceManager) SpendEnergyCredits(cost float64) bool {
	if math.IsNaN(cost) || cost < 0 || !rm.CanAfford(cost) {
		return false
	}
	rm.energyCredits -= cost
	return true
}

// Totals is a copy of the displayable economy figures.
type Totals struct {
	Promethium    float64
	EnergyCredits float64
	Power         float64
	Consumption   float64
	Efficiency    float64
}

func (rm *ResourceManager) Totals() Totals {
	return Totals{
		Promethium:    rm.promethium,
		EnergyCredits: rm.energyCredits,
		Power:         rm.power,
		Consumption:   rm.consumption,
		Efficiency:    rm.Efficiency(),
	}
}
