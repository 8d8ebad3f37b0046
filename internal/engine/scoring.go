package engine

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDueDate accepts ISO dates (with or without a time part). The second
// return is false for empty or garbage input.
func ParseDueDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if d, err := time.Parse(dateLayout, s); err == nil {
		return d, true
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d, true
	}
	return time.Time{}, false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysUntil counts whole calendar days from today to due.
func daysUntil(today, due time.Time) int {
	return int(dateOnly(due).Sub(dateOnly(today)).Hours() / 24)
}

// urgencySubScore is a step function of days until due. Missing or garbage
// dates get the far-future baseline so the task is still rankable.
func urgencySubScore(t Task, today time.Time) (float64, string) {
	due, ok := ParseDueDate(t.DueDate)
	if !ok {
		if strings.TrimSpace(t.DueDate) == "" {
			return 5, "No due date set"
		}
		return 5, "Invalid due date"
	}

	days := daysUntil(today, due)
	switch {
	case days < 0:
		return 100, fmt.Sprintf("⚠️ OVERDUE by %d day(s)", -days)
	case days == 0:
		return 90, "⚠️ Due TODAY"
	case days == 1:
		return 80, "Due tomorrow"
	case days <= 3:
		return 50, fmt.Sprintf("Due in %d days", days)
	case days <= 7:
		return 30, fmt.Sprintf("Due in %d days", days)
	case days <= 14:
		return 15, "Due in 2 weeks"
	default:
		return 5, "Due date is distant"
	}
}

// clampImportance keeps importance in 1..10. Zero means the field was never
// set and falls back to the middle of the scale.
func clampImportance(v int) int {
	if v == 0 {
		v = 5
	}
	if v < 1 {
		v = 1
	}
	if v > 10 {
		v = 10
	}
	return v
}

func importanceSubScore(t Task) (float64, string) {
	imp := clampImportance(t.Importance)
	score := float64(imp * 10)
	switch {
	case imp >= 8:
		return score, fmt.Sprintf("❗ High importance (%d/10)", imp)
	case imp >= 5:
		return score, fmt.Sprintf("Medium importance (%d/10)", imp)
	default:
		return score, fmt.Sprintf("Low importance (%d/10)", imp)
	}
}

// effortSubScore gives quick wins a bonus. Missing or non-positive hours
// land in the neutral bucket instead of failing the task.
func effortSubScore(t Task) (float64, string) {
	h := t.EstimatedHours
	if h <= 0 {
		return 0, "No estimate"
	}
	switch {
	case h < 2:
		return 20, fmt.Sprintf("⚡ Quick win (%gh)", h)
	case h < 4:
		return 10, fmt.Sprintf("Moderate effort (%gh)", h)
	case h <= 8:
		return 0, fmt.Sprintf("Standard task (%gh)", h)
	default:
		return -10, fmt.Sprintf("Large task (%gh)", h)
	}
}

// dependencySubScore rewards tasks that unblock others (+15 per blocked
// task) and applies one flat -20 when this task is itself waiting on
// dependencies inside the batch. Both can apply and sum. Dangling
// dependency ids count for neither, and neither do self-references: a task
// listing itself is a cycle for the validator to report, not a blocked task.
func dependencySubScore(t Task, idx batchIndex) (float64, string) {
	blockers := idx.blockers[t.ID]

	waiting := 0
	seen := make(map[int]bool, len(t.Dependencies))
	for _, dep := range t.Dependencies {
		if dep == t.ID || seen[dep] {
			continue
		}
		seen[dep] = true
		if idx.inBatch[dep] {
			waiting++
		}
	}

	score := float64(blockers * 15)
	var parts []string
	if blockers > 0 {
		parts = append(parts, fmt.Sprintf("🔗 Blocks %d task(s)", blockers))
	}
	if waiting > 0 {
		score -= 20
		parts = append(parts, fmt.Sprintf("⏸️ Waiting on %d task(s)", waiting))
	}
	return score, strings.Join(parts, " • ")
}

func smartBalanceScore(t Task, idx batchIndex, w Weights, today time.Time) (float64, string) {
	u, uNote := urgencySubScore(t, today)
	i, iNote := importanceSubScore(t)
	e, eNote := effortSubScore(t)
	d, dNote := dependencySubScore(t, idx)

	score := u*w.Urgency + i*w.Importance + e*w.Effort + d*w.Dependencies

	notes := []string{uNote, iNote, eNote}
	if dNote != "" {
		notes = append(notes, dNote)
	}
	return round2(score), strings.Join(notes, " • ")
}

// effectiveHours is the fastest_wins rank key. Valid positive estimates
// rank as-is; only missing or non-positive ones fall back to one hour.
func effectiveHours(t Task) float64 {
	if t.EstimatedHours <= 0 {
		return 1
	}
	return t.EstimatedHours
}

func fastestWinsScore(t Task) (float64, string) {
	h := effectiveHours(t)
	score := 100 - h*5
	if score < 0 {
		score = 0
	}
	return round2(score), fmt.Sprintf("Quick task strategy: %g hour(s)", h)
}

func highImpactScore(t Task) (float64, string) {
	imp := clampImportance(t.Importance)
	return float64(imp * 10), fmt.Sprintf("High impact strategy: %d/10 importance", imp)
}

func deadlineDrivenScore(t Task, today time.Time) (float64, string) {
	due, ok := ParseDueDate(t.DueDate)
	if !ok {
		if strings.TrimSpace(t.DueDate) == "" {
			return 0, "No due date"
		}
		return 0, "Invalid due date"
	}

	days := daysUntil(today, due)
	switch {
	case days < 0:
		return float64(150 - days), fmt.Sprintf("Overdue by %d days", -days)
	case days == 0:
		return 120, "Due today"
	case days <= 7:
		return float64(100 - days*10), fmt.Sprintf("Due in %d days", days)
	default:
		score := 30 - days
		if score < 0 {
			score = 0
		}
		return float64(score), fmt.Sprintf("Due in %d days", days)
	}
}

// scoreTask dispatches on the resolved strategy. Dependency ids are only a
// counting input here; the scorer never traverses the graph, so cyclic
// batches score fine.
func scoreTask(t Task, idx batchIndex, p Params, today time.Time) (float64, string) {
	switch p.Name {
	case StrategyFastestWins:
		return fastestWinsScore(t)
	case StrategyHighImpact:
		return highImpactScore(t)
	case StrategyDeadlineDriven:
		return deadlineDrivenScore(t, today)
	default:
		return smartBalanceScore(t, idx, p.Weights, today)
	}
}

// TierFromScore buckets a final score into a priority tier.
func TierFromScore(score float64) string {
	switch {
	case score >= 70:
		return PriorityHigh
	case score >= 40:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
