package techtree

// UnitStats defines a unit type's fixed profile.
type UnitStats struct {
	Health          float64 `yaml:"health"`
	Speed           float64 `yaml:"speed"`
	AttackDamage    float64 `yaml:"attack_damage"`
	AttackRange     float64 `yaml:"attack_range"`
	AttackCooldown  float64 `yaml:"attack_cooldown"` // seconds between shots
	ProjectileSpeed float64 `yaml:"projectile_speed"` // 0 = hitscan
	SplashRadius    float64 `yaml:"splash_radius"`    // 0 = single target
	Cost            float64 `yaml:"cost"`
	ProductionTime  float64 `yaml:"production_time"`

	// harvesting
	HarvestRate     int     `yaml:"harvest_rate"`
	HarvestCooldown float64 `yaml:"harvest_cooldown"`
	MaxCarried      int     `yaml:"max_carried"`

	// abilities
	RegenPerSecond float64 `yaml:"regen_per_second"`
	BoostDuration  float64 `yaml:"boost_duration"`
	BoostRecharge  float64 `yaml:"boost_recharge"`
}

// CanAttack reports whether the type carries a weapon.
func (s UnitStats) CanAttack() bool { return s.AttackDamage > 0 && s.AttackRange > 0 }

// CanHarvest reports whether the type gathers resources.
func (s UnitStats) CanHarvest() bool { return s.HarvestRate > 0 && s.MaxCarried > 0 }

// HasSplash reports whether hits also damage nearby opposing units.
func (s UnitStats) HasSplash() bool { return s.SplashRadius > 0 }

// CanBoost reports whether the type has the timed speed boost.
func (s UnitStats) CanBoost() bool { return s.BoostDuration > 0 }

// BuildingStats defines a building type's fixed profile.
type BuildingStats struct {
	Health           float64 `yaml:"health"`
	PowerOutput      float64 `yaml:"power_output"`
	PowerConsumption float64 `yaml:"power_consumption"`
	ConstructionTime float64 `yaml:"construction_time"`
	Cost             float64 `yaml:"cost"`

	// turret weapon
	AttackDamage   float64 `yaml:"attack_damage"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackCooldown float64 `yaml:"attack_cooldown"`

	Produces []UnitType `yaml:"-"`
}

// CanProduce reports whether the building trains units.
func (s BuildingStats) CanProduce() bool { return len(s.Produces) > 0 }

// Produce reports whether t is in the building's roster.
func (s BuildingStats) Produce(t UnitType) bool {
	for _, p := range s.Produces {
		if p == t {
			return true
		}
	}
	return false
}

// IsArmed reports whether the building shoots.
func (s BuildingStats) IsArmed() bool { return s.AttackDamage > 0 && s.AttackRange > 0 }
