package core

import "time"

// RunSummary describes a finished (or in-progress) run for history and the
// headless runner. Games that track more than a score expose one.
type RunSummary struct {
	Score            int
	Money            int
	TreesPlanted     int
	TrashCollected   int
	PollutersStopped int
	Ticks            int
	Duration         time.Duration // Simulated time, not wall time
}
