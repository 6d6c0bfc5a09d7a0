package prefabs

import (
	"fmt"
	"log/slog"

	"github.com/milk9111/groggy/audio"
	"github.com/milk9111/groggy/boss"
	"github.com/milk9111/groggy/combat"
	"github.com/milk9111/groggy/component"
	"github.com/milk9111/groggy/enemy"
	"github.com/milk9111/groggy/player"
	"github.com/milk9111/groggy/stats"
	"gopkg.in/yaml.v3"
)

const (
	PlayerFile     = "player.yaml"
	EnemyFile      = "enemy.yaml"
	BossFile       = "boss.yaml"
	PlaystylesFile = "playstyles.yaml"
	UpgradesFile   = "upgrades.yaml"
	CombatFile     = "combat.yaml"
	ArenaFile      = "arena.yaml"
	CuesFile       = "cues.yaml"
)

// LoadSpec decodes filename over defaults. Fields missing from the file keep
// their default value.
func LoadSpec[T any](filename string, defaults T) (T, error) {
	data, err := Load(filename)
	if err != nil {
		return defaults, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec := defaults
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return defaults, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	player.Config `yaml:",inline"`

	Width  float64                `yaml:"width"`
	Height float64                `yaml:"height"`
	Stats  map[stats.Type]float64 `yaml:"stats"`
}

func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{
		Config: player.DefaultConfig(),
		Width:  0.8,
		Height: 1.6,
		Stats:  stats.DefaultBases(),
	}
}

type PlaystylesSpec struct {
	Presets map[stats.Playstyle][]stats.Modifier `yaml:"presets"`
}

func DefaultPlaystylesSpec() PlaystylesSpec {
	return PlaystylesSpec{Presets: stats.DefaultPresets()}
}

type UpgradesSpec struct {
	Upgrades []stats.Upgrade `yaml:"upgrades"`
}

// Validate rejects duplicate ids and prerequisites naming unknown upgrades.
func (s UpgradesSpec) Validate() error {
	seen := make(map[string]bool, len(s.Upgrades))
	for _, u := range s.Upgrades {
		if u.ID == "" {
			return fmt.Errorf("prefabs: upgrade %q has no id", u.Name)
		}
		if seen[u.ID] {
			return fmt.Errorf("prefabs: duplicate upgrade %q", u.ID)
		}
		seen[u.ID] = true
	}
	for _, u := range s.Upgrades {
		for _, req := range u.Prerequisites {
			if !seen[req] {
				return fmt.Errorf("prefabs: upgrade %q requires unknown %q", u.ID, req)
			}
		}
	}
	return nil
}

// DummySpec tunes the training dummy.
type DummySpec struct {
	MaxHealth  float64                    `yaml:"max_health"`
	Durability component.DurabilityConfig `yaml:"durability"`
}

type CombatSpec struct {
	PerfectWindow float64                `yaml:"perfect_window"`
	NormalWindow  float64                `yaml:"normal_window"`
	Execution     combat.ExecutionConfig `yaml:"execution"`
	Dummy         DummySpec              `yaml:"dummy"`
}

func DefaultCombatSpec() CombatSpec {
	return CombatSpec{
		PerfectWindow: combat.DefaultPerfectWindow,
		NormalWindow:  combat.DefaultNormalWindow,
		Execution:     combat.DefaultExecutionConfig(),
		Dummy: DummySpec{
			MaxHealth:  1000,
			Durability: component.DefaultDurabilityConfig(),
		},
	}
}

// Spawn kinds.
const (
	SpawnPlayer = "player"
	SpawnDummy  = "dummy"
	SpawnEnemy  = "enemy"
	SpawnBoss   = "boss"
)

// Spawn places one actor on the floor at X.
type Spawn struct {
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
}

// Rewards is the run gold granted per defeat, before GoldGain.
type Rewards struct {
	Enemy int `yaml:"enemy"`
	Boss  int `yaml:"boss"`
}

type ArenaSpec struct {
	Title       string          `yaml:"title"`
	Width       int             `yaml:"width"`
	Height      int             `yaml:"height"`
	TPS         int             `yaml:"tps"`
	PixelsPer   float64         `yaml:"pixels_per_unit"`
	HalfWidth   float64         `yaml:"half_width"`
	Playstyle   stats.Playstyle `yaml:"playstyle"`
	LogLevel    slog.Level      `yaml:"log_level"`
	SaveApp     string          `yaml:"save_app"`
	RunlogDSN   string          `yaml:"runlog_dsn"`
	Muted       bool            `yaml:"muted"`
	HotReload   bool            `yaml:"hot_reload"`
	RestartTime float64         `yaml:"restart_time"`
	Rewards     Rewards         `yaml:"rewards"`
	Spawns      []Spawn         `yaml:"spawns"`
}

func DefaultArenaSpec() ArenaSpec {
	return ArenaSpec{
		Title:       "groggy",
		Width:       1280,
		Height:      720,
		TPS:         60,
		PixelsPer:   32,
		HalfWidth:   18,
		LogLevel:    slog.LevelInfo,
		SaveApp:     "groggy",
		HotReload:   true,
		RestartTime: 3,
		Rewards:     Rewards{Enemy: 25, Boss: 200},
		Spawns: []Spawn{
			{Kind: SpawnPlayer, X: -14},
			{Kind: SpawnDummy, X: -8},
			{Kind: SpawnEnemy, X: 2},
			{Kind: SpawnBoss, X: 12},
		},
	}
}

// Validate requires exactly one player spawn inside the walls.
func (s ArenaSpec) Validate() error {
	players := 0
	for _, sp := range s.Spawns {
		switch sp.Kind {
		case SpawnPlayer:
			players++
		case SpawnDummy, SpawnEnemy, SpawnBoss:
		default:
			return fmt.Errorf("prefabs: unknown spawn kind %q", sp.Kind)
		}
		if s.HalfWidth > 0 && (sp.X <= -s.HalfWidth || sp.X >= s.HalfWidth) {
			return fmt.Errorf("prefabs: %s spawn at %g is outside the arena", sp.Kind, sp.X)
		}
	}
	if players != 1 {
		return fmt.Errorf("prefabs: arena needs one player spawn, has %d", players)
	}
	return nil
}

type CuesSpec struct {
	Cues map[string]audio.Cue `yaml:"cues"`
}

func DefaultCuesSpec() CuesSpec {
	return CuesSpec{Cues: audio.DefaultCues()}
}

func LoadPlayerSpec() (PlayerSpec, error) {
	return LoadSpec(PlayerFile, DefaultPlayerSpec())
}

func LoadEnemySpec() (enemy.Config, error) {
	return LoadSpec(EnemyFile, enemy.DefaultConfig())
}

func LoadBossSpec() (boss.Config, error) {
	return LoadSpec(BossFile, boss.DefaultConfig())
}

func LoadPlaystylesSpec() (PlaystylesSpec, error) {
	return LoadSpec(PlaystylesFile, DefaultPlaystylesSpec())
}

func LoadUpgradesSpec() (UpgradesSpec, error) {
	spec, err := LoadSpec(UpgradesFile, UpgradesSpec{})
	if err != nil {
		return spec, err
	}
	if err := spec.Validate(); err != nil {
		return UpgradesSpec{}, err
	}
	return spec, nil
}

func LoadCombatSpec() (CombatSpec, error) {
	return LoadSpec(CombatFile, DefaultCombatSpec())
}

func LoadArenaSpec() (ArenaSpec, error) {
	spec, err := LoadSpec(ArenaFile, DefaultArenaSpec())
	if err != nil {
		return spec, err
	}
	if err := spec.Validate(); err != nil {
		return DefaultArenaSpec(), err
	}
	return spec, nil
}

func LoadCuesSpec() (CuesSpec, error) {
	return LoadSpec(CuesFile, DefaultCuesSpec())
}

// BossScript compiles the selection script a boss spec names. A spec without
// a script yields a nil selector.
func BossScript(cfg boss.Config) (*boss.ScriptSelector, error) {
	if cfg.Script == "" {
		return nil, nil
	}
	src, err := LoadScript(cfg.Script)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", cfg.Script, err)
	}
	return boss.NewScriptSelector(cfg.Script, src)
}
