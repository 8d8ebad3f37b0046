// Package engine implements the prioritization core: multi-strategy task
// scoring, priority tiers and dependency cycle detection. It is a stateless
// transform; every request brings its own batch and nothing is kept between
// calls.
package engine

import (
	"sort"
	"time"
)

// Engine scores and validates task batches. Now is read once per call so
// every task in a batch shares the same "today"; tests pin it to a fixed
// date.
type Engine struct {
	Now func() time.Time
}

func New() *Engine {
	return &Engine{Now: time.Now}
}

// Result is the outcome of analyzing one batch. Today is the single clock
// reading the whole batch was scored against, so callers deriving display
// text from dates stay consistent with the scores.
type Result struct {
	Tasks        []ScoredTask
	StrategyUsed string
	TotalTasks   int
	Today        time.Time
}

// Analyze reassigns ids 1..N in submission order, resolves the strategy,
// scores every task with the same parameters, and returns the batch sorted
// by the strategy's rank key. Resolver failures abort the whole batch; bad
// task fields never do, they degrade to neutral defaults in the scorer.
func (e *Engine) Analyze(tasks []Task, strategy string, weights map[string]float64) (*Result, error) {
	params, err := ResolveStrategy(strategy, weights)
	if err != nil {
		return nil, err
	}

	batch := reassignIDs(tasks)
	today := dateOnly(e.Now())
	idx := indexBatch(batch)

	scored := make([]ScoredTask, 0, len(batch))
	for _, t := range batch {
		score, explanation := scoreTask(t, idx, params, today)
		scored = append(scored, ScoredTask{
			Task:          t,
			Score:         score,
			PriorityLevel: TierFromScore(score),
			Explanation:   explanation,
		})
	}

	sortScored(scored, params.Name, today)

	return &Result{
		Tasks:        scored,
		StrategyUsed: params.Name,
		TotalTasks:   len(scored),
		Today:        today,
	}, nil
}

// Validate runs cycle detection over the id-reassigned batch. It never
// errors: an all-dangling graph is simply cycle-free.
func (e *Engine) Validate(tasks []Task) CycleReport {
	return DetectCycles(reassignIDs(tasks))
}

// sortScored orders the batch by the active strategy's rank key. Sorts are
// stable, so ties keep submission order.
func sortScored(scored []ScoredTask, strategy string, today time.Time) {
	switch strategy {
	case StrategyFastestWins:
		sort.SliceStable(scored, func(i, j int) bool {
			return effectiveHours(scored[i].Task) < effectiveHours(scored[j].Task)
		})
	case StrategyHighImpact:
		sort.SliceStable(scored, func(i, j int) bool {
			return clampImportance(scored[i].Importance) > clampImportance(scored[j].Importance)
		})
	case StrategyDeadlineDriven:
		sort.SliceStable(scored, func(i, j int) bool {
			di, oki := ParseDueDate(scored[i].DueDate)
			dj, okj := ParseDueDate(scored[j].DueDate)
			if oki != okj {
				return oki // unparseable dates sort last
			}
			if !oki {
				return false
			}
			return di.Before(dj)
		})
	default:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Score > scored[j].Score
		})
	}
}
