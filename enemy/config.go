package enemy

import "github.com/milk9111/groggy/component"

// Config tunes a regular enemy. Distances are in world units, times in
// seconds.
type Config struct {
	MaxHealth              float64                    `yaml:"max_health"`
	DetectionRange         float64                    `yaml:"detection_range"`
	AttackRange            float64                    `yaml:"attack_range"`
	MoveSpeed              float64                    `yaml:"move_speed"`
	AttackDamage           float64                    `yaml:"attack_damage"`
	AttackDurabilityDamage float64                    `yaml:"attack_durability_damage"`
	AttackCooldown         float64                    `yaml:"attack_cooldown"`
	PreferredDistance      float64                    `yaml:"preferred_distance"`
	DistanceTolerance      float64                    `yaml:"distance_tolerance"`
	IdleDwell              float64                    `yaml:"idle_dwell"`
	AttackDuration         float64                    `yaml:"attack_duration"`
	HitTime                float64                    `yaml:"hit_time"`
	DestroyDelay           float64                    `yaml:"destroy_delay"`
	Width                  float64                    `yaml:"width"`
	Height                 float64                    `yaml:"height"`
	Durability             component.DurabilityConfig `yaml:"durability"`
}

func DefaultConfig() Config {
	return Config{
		MaxHealth:         100,
		DetectionRange:    10,
		AttackRange:       4,
		MoveSpeed:         3,
		AttackDamage:      15,
		AttackCooldown:    2,
		PreferredDistance: 3.5,
		DistanceTolerance: 0.5,
		IdleDwell:         0.5,
		AttackDuration:    0.5,
		HitTime:           0.25,
		DestroyDelay:      1,
		Width:             0.8,
		Height:            1.6,
		Durability:        component.DefaultDurabilityConfig(),
	}
}
