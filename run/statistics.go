package run

import (
	"fmt"
	"time"

	"github.com/milk9111/groggy/stats"
)

// Statistics summarises one run.
type Statistics struct {
	Playstyle       stats.Playstyle `yaml:"playstyle"`
	Victory         bool            `yaml:"victory"`
	Duration        float64         `yaml:"duration"`
	Stage           int             `yaml:"stage"`
	Room            int             `yaml:"room"`
	EnemiesDefeated int             `yaml:"enemies_defeated"`
	PerfectGuards   int             `yaml:"perfect_guards"`
	PerfectDodges   int             `yaml:"perfect_dodges"`
	Gold            int             `yaml:"gold"`
	EndedAt         time.Time       `yaml:"ended_at"`
}

// Score orders runs for the leaderboard: victories first, then depth, then kills.
func (s Statistics) Score() int {
	score := s.Stage*1000 + s.Room*100 + s.EnemiesDefeated*10 + s.PerfectGuards + s.PerfectDodges
	if s.Victory {
		score += 100000
	}
	return score
}

func (s Statistics) String() string {
	result := "defeat"
	if s.Victory {
		result = "victory"
	}
	return fmt.Sprintf("%s %s in %.1fs at %d-%d: %d kills, %d perfect guards, %d perfect dodges, %d gold",
		s.Playstyle, result, s.Duration, s.Stage, s.Room,
		s.EnemiesDefeated, s.PerfectGuards, s.PerfectDodges, s.Gold)
}
