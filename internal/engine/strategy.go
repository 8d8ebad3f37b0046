package engine

import (
	"fmt"
	"math"
)

// Strategy names accepted by the resolver.
const (
	StrategySmartBalance   = "smart_balance"
	StrategyFastestWins    = "fastest_wins"
	StrategyHighImpact     = "high_impact"
	StrategyDeadlineDriven = "deadline_driven"
	StrategyCustom         = "custom"
)

// Error kinds returned to the caller. The names are part of the API contract.
const (
	KindInvalidStrategy = "InvalidStrategy"
	KindMissingWeights  = "MissingWeights"
	KindInvalidWeights  = "InvalidWeights"
)

// StrategyError is a caller error that aborts the whole batch.
type StrategyError struct {
	Kind   string
	Detail string
}

func (e *StrategyError) Error() string {
	return e.Kind + ": " + e.Detail
}

// Weights drive the smart_balance/custom weighted sum. Each component must
// be in [0,1] and the four must sum to 1.0 within tolerance.
type Weights struct {
	Urgency      float64 `json:"urgency"`
	Importance   float64 `json:"importance"`
	Effort       float64 `json:"effort"`
	Dependencies float64 `json:"dependencies"`
}

// DefaultWeights is the smart_balance split: urgency 40%, importance 30%,
// effort 20%, dependencies 10%.
func DefaultWeights() Weights {
	return Weights{Urgency: 0.40, Importance: 0.30, Effort: 0.20, Dependencies: 0.10}
}

// Params is the immutable parameter set applied uniformly to a batch.
type Params struct {
	Name    string
	Weights Weights
}

const weightTolerance = 0.01

// ResolveStrategy maps a strategy name plus optional weights to the scoring
// parameters. An empty name means smart_balance. Weights sent along with the
// single-factor strategies are ignored, not an error.
func ResolveStrategy(name string, weights map[string]float64) (Params, error) {
	if name == "" {
		name = StrategySmartBalance
	}

	switch name {
	case StrategyFastestWins, StrategyHighImpact, StrategyDeadlineDriven:
		return Params{Name: name, Weights: DefaultWeights()}, nil
	case StrategySmartBalance, StrategyCustom:
	default:
		return Params{}, &StrategyError{
			Kind:   KindInvalidStrategy,
			Detail: fmt.Sprintf("unknown strategy %q", name),
		}
	}

	if weights == nil {
		if name == StrategyCustom {
			return Params{}, &StrategyError{
				Kind:   KindMissingWeights,
				Detail: "custom strategy requires weights",
			}
		}
		return Params{Name: name, Weights: DefaultWeights()}, nil
	}

	w, err := weightsFromMap(weights)
	if err != nil {
		return Params{}, err
	}
	return Params{Name: name, Weights: w}, nil
}

func weightsFromMap(m map[string]float64) (Weights, error) {
	required := []string{"urgency", "importance", "effort", "dependencies"}

	if len(m) != len(required) {
		return Weights{}, &StrategyError{
			Kind:   KindInvalidWeights,
			Detail: "weights must contain exactly: urgency, importance, effort, dependencies",
		}
	}
	sum := 0.0
	for _, key := range required {
		v, ok := m[key]
		if !ok {
			return Weights{}, &StrategyError{
				Kind:   KindInvalidWeights,
				Detail: fmt.Sprintf("missing weight %q", key),
			}
		}
		if v < 0 || v > 1 {
			return Weights{}, &StrategyError{
				Kind:   KindInvalidWeights,
				Detail: fmt.Sprintf("weight %q must be in [0,1], got %v", key, v),
			}
		}
		sum += v
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return Weights{}, &StrategyError{
			Kind:   KindInvalidWeights,
			Detail: fmt.Sprintf("weights must sum to 1.0, got %v", sum),
		}
	}

	return Weights{
		Urgency:      m["urgency"],
		Importance:   m["importance"],
		Effort:       m["effort"],
		Dependencies: m["dependencies"],
	}, nil
}
