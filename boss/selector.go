package boss

// SelectContext is what an attack selector sees.
type SelectContext struct {
	Phase         int
	Available     []int
	Distance      float64
	HealthPercent float64
	LastAttack    int
}

// Selector picks the next attack index. Results outside Available are
// replaced with a uniform random pick.
type Selector interface {
	Select(ctx SelectContext) int
}

// SelectorFunc adapts a function to Selector.
type SelectorFunc func(ctx SelectContext) int

func (f SelectorFunc) Select(ctx SelectContext) int {
	return f(ctx)
}
