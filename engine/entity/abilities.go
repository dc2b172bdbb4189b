package entity

// AbilityBoost is the scout's timed speed boost.
const AbilityBoost = "boost"

// updateAbilities runs the passive and timed abilities, whatever the order.
func (u *Unit) updateAbilities(dt float64) {
	if u.stats.RegenPerSecond > 0 {
		u.Heal(u.stats.RegenPerSecond * dt)
	}
	if u.boostLeft > 0 {
		u.boostLeft = max(0, u.boostLeft-dt)
	}
	if u.boostRecharge > 0 {
		u.boostRecharge = max(0, u.boostRecharge-dt)
	}
}

// ActivateAbility triggers a named ability. It reports false when the unit
// lacks the ability or it is still recharging.
func (u *Unit) ActivateAbility(name string) bool {
	if u.IsDead() {
		return false
	}
	switch name {
	case AbilityBoost:
		if !u.stats.CanBoost() || u.boostRecharge > 0 {
			return false
		}
		u.boostLeft = u.stats.BoostDuration
		u.boostRecharge = u.stats.BoostRecharge
		return true
	}
	return false
}
