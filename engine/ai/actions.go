package ai

import (
	"math"

	"github.com/1siamBot/promethium/engine/game"
)

// memWaveLaunched is set in Env.Memory by the wave actions.
const memWaveLaunched = "wave-launched"

// ActionDefend sends the idle army at the intruder nearest to it.
func ActionDefend(env Env, cmd Commander) {
	army := env.IdleArmy()
	center, _ := centroid(army)
	target, _, ok := nearestUnit(center, env.Intruders())
	if !ok {
		return
	}
	cmd.Issue(game.Command{Type: game.CmdAttack, Faction: env.Faction, Units: ids(army), Target: target.ID})
}

// ActionSendHarvesters sends each idle harvester to its nearest node.
func ActionSendHarvesters(env Env, cmd Commander) {
	for _, h := range env.IdleHarvesters() {
		n, ok := nearestNode(h.Position, env.State.Nodes)
		if !ok {
			return
		}
		cmd.Issue(game.Command{Type: game.CmdHarvest, Faction: env.Faction, Units: ids([]game.UnitView{h}), Target: n.ID})
	}
}

// placeAction places a building on a ring around the base, one slot per
// building already standing.
func placeAction(building string) ActionFunc {
	return func(env Env, cmd Commander) {
		slot := float64(len(env.Buildings()))
		angle := slot * math.Pi / 3
		p := env.Base().Add(6*math.Cos(angle), 6*math.Sin(angle))
		cmd.Issue(game.Command{Type: game.CmdPlaceBuilding, Faction: env.Faction, Pos: p, Param: building})
	}
}

// ActionProduce queues the default unit at every idle producer.
func ActionProduce(env Env, cmd Commander) {
	for _, b := range env.IdleProducers() {
		cmd.Issue(game.Command{Type: game.CmdStartProduction, Faction: env.Faction, Target: b.ID})
	}
}

// ActionAttackWave sends the idle army at the enemy unit nearest to it.
func ActionAttackWave(env Env, cmd Commander) {
	army := env.IdleArmy()
	center, _ := centroid(army)
	target, _, ok := nearestUnit(center, env.Enemies())
	if !ok {
		return
	}
	cmd.Issue(game.Command{Type: game.CmdAttack, Faction: env.Faction, Units: ids(army), Target: target.ID})
	env.Memory[memWaveLaunched] = true
}

// ActionSiegeWave sends the idle army at the nearest enemy building.
func ActionSiegeWave(env Env, cmd Commander) {
	army := env.IdleArmy()
	center, _ := centroid(army)
	target, _, ok := nearestBuilding(center, env.EnemyBuildings())
	if !ok {
		return
	}
	cmd.Issue(game.Command{Type: game.CmdSiege, Faction: env.Faction, Units: ids(army), Target: target.ID})
	env.Memory[memWaveLaunched] = true
}
