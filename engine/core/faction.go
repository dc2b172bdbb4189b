package core

// Faction identifies which side an entity fights for.
type Faction uint8

const (
	FactionPlayer Faction = iota
	FactionEnemy
)

func (f Faction) String() string {
	if f == FactionEnemy {
		return "enemy"
	}
	return "player"
}

// IsEnemy reports whether f is the hostile (non-player) faction.
func (f Faction) IsEnemy() bool { return f == FactionEnemy }

// Opposes reports whether two factions are hostile to each other.
func (f Faction) Opposes(other Faction) bool { return f != other }

// Result is the terminal state of a session.
type Result uint8

const (
	ResultNone Result = iota
	ResultWin
	ResultLose
)

func (r Result) String() string {
	switch r {
	case ResultWin:
		return "win"
	case ResultLose:
		return "lose"
	default:
		return "none"
	}
}
