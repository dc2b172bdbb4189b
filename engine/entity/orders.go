package entity

import "github.com/1siamBot/promethium/engine/core"

// OrderKind names the state a unit is in.
type OrderKind uint8

const (
	OrderIdle OrderKind = iota
	OrderMove
	OrderAttack
	OrderHarvest
	OrderReturn
	OrderAttackStructure
)

var orderNames = [...]string{
	OrderIdle:            "idle",
	OrderMove:            "moving",
	OrderAttack:          "attacking",
	OrderHarvest:         "harvesting",
	OrderReturn:          "returning",
	OrderAttackStructure: "besieging",
}

func (k OrderKind) String() string {
	if int(k) < len(orderNames) {
		return orderNames[k]
	}
	return "unknown"
}

// Order is the single active order of a unit. A nil Order means idle.
// The variants below are the only implementations.
type Order interface {
	Kind() OrderKind
}

// MoveOrder walks straight to Target.
type MoveOrder struct {
	Target core.Position
}

// AttackOrder chases and fires at an opposing unit.
type AttackOrder struct {
	Target core.EntityID
}

// HarvestOrder gathers from Node; Return, if non-zero, is where full
// loads are delivered.
type HarvestOrder struct {
	Node   core.EntityID
	Return core.EntityID
}

// ReturnOrder carries a load to Building, then resumes on Node.
type ReturnOrder struct {
	Building core.EntityID
	Node     core.EntityID
}

// AttackStructureOrder besieges a building.
type AttackStructureOrder struct {
	Target core.EntityID
}

func (MoveOrder) Kind() OrderKind            { return OrderMove }
func (AttackOrder) Kind() OrderKind          { return OrderAttack }
func (HarvestOrder) Kind() OrderKind         { return OrderHarvest }
func (ReturnOrder) Kind() OrderKind          { return OrderReturn }
func (AttackStructureOrder) Kind() OrderKind { return OrderAttackStructure }

// KindOf returns the kind of o, treating nil as idle.
func KindOf(o Order) OrderKind {
	if o == nil {
		return OrderIdle
	}
	return o.Kind()
}
