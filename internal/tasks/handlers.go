package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"smart-task-analyzer/internal/engine"
)

const suggestionCount = 3

// AnalyzeHandler scores and sorts a whole batch under one strategy.
func AnalyzeHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		result, err := eng.Analyze(req.Tasks, req.Strategy, req.Weights)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(AnalyzeResponse{
			Tasks:                result.Tasks,
			StrategyUsed:         result.StrategyUsed,
			TotalTasks:           result.TotalTasks,
			CustomWeightsApplied: req.Weights != nil,
		})
	}
}

// SuggestHandler returns the top 3 tasks to work on, with a composed reason
// per rank.
func SuggestHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		result, err := eng.Analyze(req.Tasks, req.Strategy, req.Weights)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		top := result.Tasks
		if len(top) > suggestionCount {
			top = top[:suggestionCount]
		}

		// Reuse the clock reading the analysis ran with; a second one could
		// disagree across midnight.
		today := result.Today
		suggestions := make([]Suggestion, 0, len(top))
		for i, t := range top {
			rank := i + 1
			suggestions = append(suggestions, Suggestion{
				Rank:   rank,
				Task:   t,
				Score:  t.Score,
				Reason: suggestionReason(t, rank, today),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SuggestResponse{
			Suggestions:   suggestions,
			TotalAnalyzed: result.TotalTasks,
			StrategyUsed:  result.StrategyUsed,
		})
	}
}

// ValidateHandler reports dependency cycles and dangling references.
func ValidateHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ValidateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		report := eng.Validate(req.Tasks)

		msg := "Dependencies are valid"
		if report.HasCycle {
			msg = fmt.Sprintf("Found %d circular dependency cycle(s)", len(report.Cycles))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ValidateResponse{
			HasCircularDependencies: report.HasCycle,
			Cycles:                  report.Cycles,
			CycleCount:              len(report.Cycles),
			DanglingReferences:      report.DanglingReferences,
			IsValid:                 !report.HasCycle,
			Message:                 msg,
		})
	}
}

// suggestionReason composes the per-rank recommendation text shown next to
// each suggested task.
func suggestionReason(t engine.ScoredTask, rank int, today time.Time) string {
	var parts []string

	switch t.PriorityLevel {
	case engine.PriorityHigh:
		parts = append(parts, fmt.Sprintf("🔴 Ranked #%d with HIGH priority (score: %g)", rank, t.Score))
	case engine.PriorityMedium:
		parts = append(parts, fmt.Sprintf("🟡 Ranked #%d with MEDIUM priority (score: %g)", rank, t.Score))
	default:
		parts = append(parts, fmt.Sprintf("🟢 Ranked #%d with LOW priority (score: %g)", rank, t.Score))
	}

	parts = append(parts, "Factors: "+t.Explanation)

	if due, ok := engine.ParseDueDate(t.DueDate); ok {
		if bd := engine.BusinessDaysUntil(today, due); bd > 0 {
			parts = append(parts, fmt.Sprintf("%d business day(s) left", bd))
		}
	}

	switch rank {
	case 1:
		parts = append(parts, "💡 Recommendation: Start with this task immediately")
	case 2:
		parts = append(parts, "💡 Recommendation: Work on this after completing the top task")
	default:
		parts = append(parts, "💡 Recommendation: Plan to complete this task today if possible")
	}

	return strings.Join(parts, " | ")
}

func writeEngineError(w http.ResponseWriter, err error) {
	var serr *engine.StrategyError
	if errors.As(err, &serr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: serr.Kind, Details: serr.Detail})
		return
	}

	log.Warn().Err(err).Msg("analyze failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}
