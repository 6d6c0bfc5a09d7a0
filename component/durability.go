package component

// DurabilityConfig tunes a Durability component.
type DurabilityConfig struct {
	Max            float64 `yaml:"max"`
	RecoveryDelay  float64 `yaml:"recovery_delay"`
	RecoveryRate   float64 `yaml:"recovery_rate"`
	AutoRecover    bool    `yaml:"auto_recover"`
	GroggyDuration float64 `yaml:"groggy_duration"`
}

func DefaultDurabilityConfig() DurabilityConfig {
	return DurabilityConfig{
		Max:            100,
		RecoveryDelay:  3,
		RecoveryRate:   10,
		AutoRecover:    true,
		GroggyDuration: 5,
	}
}

// DurabilityChange is the payload of Durability.Changed.
type DurabilityChange struct {
	Current float64
	Max     float64
}

// PerfectGuardMultiplier scales durability damage dealt back to an attacker
// whose hit was perfectly guarded.
const PerfectGuardMultiplier = 2

// Durability is the poise resource. Reaching zero starts a timed groggy
// window during which current is pinned at 0 and further damage is ignored.
type Durability struct {
	cfg         DurabilityConfig
	current     float64
	groggy      bool
	groggyTimer float64
	sinceDamage float64

	Changed     Signal[DurabilityChange]
	Damaged     Signal[float64]
	GroggyStart Signal[*Durability]
	GroggyEnd   Signal[*Durability]
	Executed    Signal[*Durability]
}

func NewDurability(cfg DurabilityConfig) *Durability {
	if cfg.Max <= 0 {
		cfg.Max = DefaultDurabilityConfig().Max
	}
	return &Durability{cfg: cfg, current: cfg.Max}
}

// TakeDurabilityDamage is a no-op while groggy.
func (d *Durability) TakeDurabilityDamage(amount float64) {
	if d == nil || d.groggy || amount <= 0 {
		return
	}
	d.current -= amount
	if d.current < 0 {
		d.current = 0
	}
	d.sinceDamage = 0
	d.Damaged.Emit(amount)
	d.emitChanged()
	if d.current <= 0 {
		d.enterGroggy()
	}
}

// TakePerfectGuardDamage deals base*PerfectGuardMultiplier durability damage.
func (d *Durability) TakePerfectGuardDamage(base float64) {
	d.TakePerfectGuardDamageScaled(base, PerfectGuardMultiplier)
}

func (d *Durability) TakePerfectGuardDamageScaled(base, multiplier float64) {
	d.TakeDurabilityDamage(base * multiplier)
}

// Update advances the groggy timer, or regenerates after the recovery delay.
func (d *Durability) Update(dt float64) {
	if d == nil || dt <= 0 {
		return
	}
	if d.groggy {
		d.groggyTimer += dt
		if d.groggyTimer >= d.cfg.GroggyDuration {
			d.exitGroggy()
		}
		return
	}

	d.sinceDamage += dt
	if !d.cfg.AutoRecover || d.current >= d.cfg.Max || d.sinceDamage < d.cfg.RecoveryDelay {
		return
	}
	d.current += d.cfg.RecoveryRate * dt
	if d.current > d.cfg.Max {
		d.current = d.cfg.Max
	}
	d.emitChanged()
}

// OnExecute ends groggy immediately and restores durability to max.
func (d *Durability) OnExecute() {
	if d == nil {
		return
	}
	wasGroggy := d.groggy
	d.groggy = false
	d.groggyTimer = 0
	d.sinceDamage = 0
	d.current = d.cfg.Max
	d.Executed.Emit(d)
	if wasGroggy {
		d.GroggyEnd.Emit(d)
	}
	d.emitChanged()
}

// SetDurability sets current, clamped to [0, Max]. Ignored while groggy.
func (d *Durability) SetDurability(v float64) {
	if d == nil || d.groggy {
		return
	}
	d.current = min(max(v, 0), d.cfg.Max)
	d.emitChanged()
	if d.current <= 0 {
		d.enterGroggy()
	}
}

// FullRestore refills durability, ending groggy if active.
func (d *Durability) FullRestore() {
	if d == nil {
		return
	}
	if d.groggy {
		d.exitGroggy()
		return
	}
	d.current = d.cfg.Max
	d.emitChanged()
}

func (d *Durability) CanBeExecuted() bool {
	return d != nil && d.groggy
}

func (d *Durability) IsGroggy() bool {
	return d != nil && d.groggy
}

func (d *Durability) GroggyTimeRemaining() float64 {
	if d == nil || !d.groggy {
		return 0
	}
	return max(0, d.cfg.GroggyDuration-d.groggyTimer)
}

func (d *Durability) Current() float64 {
	if d == nil {
		return 0
	}
	return d.current
}

func (d *Durability) Max() float64 {
	if d == nil {
		return 0
	}
	return d.cfg.Max
}

func (d *Durability) Percent() float64 {
	if d == nil || d.cfg.Max <= 0 {
		return 0
	}
	return d.current / d.cfg.Max
}

// Configure swaps tuning in place, keeping the current fraction.
func (d *Durability) Configure(cfg DurabilityConfig) {
	if d == nil || cfg.Max <= 0 {
		return
	}
	frac := d.Percent()
	d.cfg = cfg
	if !d.groggy {
		d.current = cfg.Max * frac
	}
}

func (d *Durability) enterGroggy() {
	d.groggy = true
	d.current = 0
	d.groggyTimer = 0
	d.GroggyStart.Emit(d)
}

func (d *Durability) exitGroggy() {
	d.groggy = false
	d.groggyTimer = 0
	d.sinceDamage = 0
	d.current = d.cfg.Max
	d.GroggyEnd.Emit(d)
	d.emitChanged()
}

func (d *Durability) emitChanged() {
	d.Changed.Emit(DurabilityChange{Current: d.current, Max: d.cfg.Max})
}
