package player

// AttackSpec tunes one attack. Times are at AttackSpeed 1; the attack state
// divides them by the live AttackSpeed stat.
type AttackSpec struct {
	Duration        float64 `yaml:"duration"`
	HitStart        float64 `yaml:"hit_start"`
	HitEnd          float64 `yaml:"hit_end"`
	DamageScale     float64 `yaml:"damage_scale"`
	DurabilityScale float64 `yaml:"durability_scale"`
	Range           float64 `yaml:"range"`
	ResourceOnHit   float64 `yaml:"resource_on_hit"`
}

// Config is the player's move set tuning. Stat-driven values (attack power,
// move speed, dodge distance, windows) live in the stat table instead.
type Config struct {
	MoveThreshold float64 `yaml:"move_threshold"`
	JumpForce     float64 `yaml:"jump_force"`

	Light AttackSpec `yaml:"light"`
	Heavy AttackSpec `yaml:"heavy"`
	// AttackDurabilityDamage is the base durability damage of a normal hit
	// before attack scaling and the DurabilityDamage stat.
	AttackDurabilityDamage float64 `yaml:"attack_durability_damage"`
	// AnimationComplete is the fraction of an attack after which the
	// animation counts as finished.
	AnimationComplete float64 `yaml:"animation_complete"`

	GuardMoveScale float64 `yaml:"guard_move_scale"`
	// PerfectGuardDurability is the base durability damage dealt back to the
	// attacker on a perfect guard, scaled by the DurabilityDamage stat.
	PerfectGuardDurability float64 `yaml:"perfect_guard_durability"`
	PerfectGuardResource   float64 `yaml:"perfect_guard_resource"`

	DodgeDuration        float64 `yaml:"dodge_duration"`
	InvincibilityStart   float64 `yaml:"invincibility_start"`
	PerfectDodgeResource float64 `yaml:"perfect_dodge_resource"`

	Special     AttackSpec `yaml:"special"`
	SpecialCost float64    `yaml:"special_cost"`
}

func DefaultConfig() Config {
	return Config{
		MoveThreshold: 0.1,
		JumpForce:     19,
		Light: AttackSpec{
			Duration:        0.4,
			HitStart:        0.1,
			HitEnd:          0.25,
			DamageScale:     1,
			DurabilityScale: 1,
			Range:           1.5,
			ResourceOnHit:   5,
		},
		Heavy: AttackSpec{
			Duration:        0.6,
			HitStart:        0.15,
			HitEnd:          0.35,
			DamageScale:     1.5,
			DurabilityScale: 1.5,
			Range:           1.5,
			ResourceOnHit:   8,
		},
		AttackDurabilityDamage: 0,
		AnimationComplete:      0.95,

		GuardMoveScale:         0.3,
		PerfectGuardDurability: 10,
		PerfectGuardResource:   10,

		DodgeDuration:        0.25,
		InvincibilityStart:   0.05,
		PerfectDodgeResource: 10,

		Special: AttackSpec{
			Duration:        0.8,
			HitStart:        0.2,
			HitEnd:          0.5,
			DamageScale:     1,
			DurabilityScale: 1,
			Range:           2,
		},
		SpecialCost: 50,
	}
}
