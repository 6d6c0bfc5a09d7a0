package boss

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// selectDispatchScript is appended to every selection script. The script
// defines choose(ctx) and returns an attack index.
const selectDispatchScript = `
__result := choose(__ctx)
`

// ScriptSelector runs a tengo script to choose boss attacks.
type ScriptSelector struct {
	name     string
	compiled *tengo.Compiled
}

// NewScriptSelector compiles src. name only appears in errors and logs.
func NewScriptSelector(name string, src []byte) (*ScriptSelector, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + selectDispatchScript))
	if err := script.Add("__ctx", map[string]any{}); err != nil {
		return nil, fmt.Errorf("boss: script %s: %w", name, err)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("boss: compile %s: %w", name, err)
	}
	return &ScriptSelector{name: name, compiled: compiled}, nil
}

// Select returns -1 when the script fails or returns a non-integer.
func (s *ScriptSelector) Select(ctx SelectContext) int {
	if s == nil || s.compiled == nil {
		return -1
	}
	available := make([]any, len(ctx.Available))
	for i, a := range ctx.Available {
		available[i] = a
	}
	dist := ctx.Distance
	if math.IsInf(dist, 0) {
		dist = -1
	}
	in := map[string]any{
		"phase":          ctx.Phase,
		"available":      available,
		"distance":       dist,
		"health_percent": ctx.HealthPercent,
		"last_attack":    ctx.LastAttack,
	}
	if err := s.compiled.Set("__ctx", in); err != nil {
		slog.Warn("boss script input rejected", "script", s.name, "err", err)
		return -1
	}
	if err := s.compiled.Run(); err != nil {
		slog.Warn("boss script failed", "script", s.name, "err", err)
		return -1
	}

	out := s.compiled.Get("__result")
	switch out.ValueType() {
	case "int", "float":
		return out.Int()
	default:
		return -1
	}
}
