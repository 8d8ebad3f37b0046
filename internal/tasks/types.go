package tasks

import "smart-task-analyzer/internal/engine"

type AnalyzeRequest struct {
	Tasks    []engine.Task      `json:"tasks"`
	Strategy string             `json:"strategy"`
	Weights  map[string]float64 `json:"weights"`
}

type AnalyzeResponse struct {
	Tasks                []engine.ScoredTask `json:"tasks"`
	StrategyUsed         string              `json:"strategy_used"`
	TotalTasks           int                 `json:"total_tasks"`
	CustomWeightsApplied bool                `json:"custom_weights_applied"`
}

type Suggestion struct {
	Rank   int               `json:"rank"`
	Task   engine.ScoredTask `json:"task"`
	Score  float64           `json:"score"`
	Reason string            `json:"reason"`
}

type SuggestResponse struct {
	Suggestions   []Suggestion `json:"suggestions"`
	TotalAnalyzed int          `json:"total_analyzed"`
	StrategyUsed  string       `json:"strategy_used"`
}

type ValidateRequest struct {
	Tasks []engine.Task `json:"tasks"`
}

type ValidateResponse struct {
	HasCircularDependencies bool    `json:"has_circular_dependencies"`
	Cycles                  [][]int `json:"cycles"`
	CycleCount              int     `json:"cycle_count"`
	DanglingReferences      []int   `json:"dangling_references"`
	IsValid                 bool    `json:"is_valid"`
	Message                 string  `json:"message"`
}

// ErrorResponse carries the error kind verbatim (InvalidStrategy,
// MissingWeights, InvalidWeights) so clients can match on it.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}
