package entity

import "github.com/1siamBot/promethium/engine/core"

// ResourceNode is a finite promethium deposit.
type ResourceNode struct {
	id        core.EntityID
	pos       core.Position
	amount    int
	maxAmount int
}

// NewResourceNode creates a full node. Negative amounts are clamped to 0.
func NewResourceNode(id core.EntityID, pos core.Position, amount int) *ResourceNode {
	if amount < 0 {
		amount = 0
	}
	return &ResourceNode{id: id, pos: pos, amount: amount, maxAmount: amount}
}

func (n *ResourceNode) ID() core.EntityID       { return n.id }
func (n *ResourceNode) Position() core.Position { return n.pos }
func (n *ResourceNode) Amount() int             { return n.amount }
func (n *ResourceNode) MaxAmount() int          { return n.maxAmount }

// Harvest removes up to request units and returns how many were granted.
func (n *ResourceNode) Harvest(request int) int {
	if request <= 0 || n.amount <= 0 {
		return 0
	}
	granted := min(request, n.amount)
	n.amount -= granted
	return granted
}

// IsDepleted reports whether the node is empty. Nothing refills a node,
// so once true it stays true.
func (n *ResourceNode) IsDepleted() bool { return n.amount <= 0 }

// Fraction is the remaining share of the original deposit.
func (n *ResourceNode) Fraction() float64 {
	if n.maxAmount <= 0 {
		return 0
	}
	return float64(n.amount) / float64(n.maxAmount)
}
