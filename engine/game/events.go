package game

import (
	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/entity"
	"github.com/1siamBot/promethium/engine/techtree"
)

// Event payloads. Each core.EventType carries exactly one of these.

// UnitEvent is the payload of unit-produced and unit-died.
type UnitEvent struct {
	Unit     core.EntityID     `json:"unit"`
	Type     techtree.UnitType `json:"-"`
	TypeName string            `json:"type"`
	Faction  core.Faction      `json:"-"`
	Side     string            `json:"faction"`
	Position core.Position     `json:"position"`
	// Building is the producer for unit-produced, zero otherwise.
	Building core.EntityID `json:"building,omitempty"`
}

// BuildingEvent is the payload of building-placed, building-constructed
// and building-destroyed.
type BuildingEvent struct {
	Building core.EntityID         `json:"building"`
	Type     techtree.BuildingType `json:"-"`
	TypeName string                `json:"type"`
	Position core.Position         `json:"position"`
}

// NodeEvent is the payload of resource-node-depleted.
type NodeEvent struct {
	Node     core.EntityID `json:"node"`
	Position core.Position `json:"position"`
}

// ShotEvent is the payload of unit-attacked.
type ShotEvent struct {
	From core.Position `json:"from"`
	At   core.Position `json:"at"`
}

// DepositEvent is the payload of resource-deposited.
type DepositEvent struct {
	Unit   core.EntityID `json:"unit"`
	Amount int           `json:"amount"`
}

// EndEvent is the payload of game-ended.
type EndEvent struct {
	Result core.Result `json:"-"`
	Name   string      `json:"result"`
}

func unitEvent(u *entity.Unit) UnitEvent {
	return UnitEvent{
		Unit:     u.ID(),
		Type:     u.Type(),
		TypeName: u.Type().String(),
		Faction:  u.Faction(),
		Side:     u.Faction().String(),
		Position: u.Position(),
	}
}

func buildingEvent(b *entity.Building) BuildingEvent {
	return BuildingEvent{
		Building: b.ID(),
		Type:     b.Type(),
		TypeName: b.Type().String(),
		Position: b.Position(),
	}
}
