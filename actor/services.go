package actor

import "github.com/milk9111/groggy/ecs"

// Destroyer removes an entity after a delay. *ecs.World satisfies it.
type Destroyer interface {
	DestroyAfter(e ecs.Entity, delay float64)
}

// DefeatRecorder counts defeated enemies for the current run.
type DefeatRecorder interface {
	RecordEnemyDefeated()
}
