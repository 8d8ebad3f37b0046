package engine

// Task is the unit the engine scores and validates. Batches are ephemeral:
// tasks arrive whole per request and are discarded with the response.
type Task struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	DueDate        string  `json:"due_date"`
	EstimatedHours float64 `json:"estimated_hours"`
	Importance     int     `json:"importance"`
	Dependencies   []int   `json:"dependencies"`
}

// ScoredTask is a Task plus the computed priority fields.
type ScoredTask struct {
	Task
	Score         float64 `json:"score"`
	PriorityLevel string  `json:"priority_level"`
	Explanation   string  `json:"explanation"`
}

// Priority tiers derived from the final score.
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// reassignIDs labels the batch 1..N in submission order. Caller-supplied ids
// are not trusted for identity; dependencies are read against these labels.
func reassignIDs(tasks []Task) []Task {
	batch := make([]Task, len(tasks))
	copy(batch, tasks)
	for i := range batch {
		batch[i].ID = i + 1
	}
	return batch
}

// batchIndex holds what the dependency sub-score needs about the whole batch.
type batchIndex struct {
	inBatch  map[int]bool
	blockers map[int]int // task id -> number of other tasks depending on it
}

func indexBatch(tasks []Task) batchIndex {
	idx := batchIndex{
		inBatch:  make(map[int]bool, len(tasks)),
		blockers: make(map[int]int, len(tasks)),
	}
	for _, t := range tasks {
		idx.inBatch[t.ID] = true
	}
	for _, t := range tasks {
		seen := make(map[int]bool, len(t.Dependencies))
		for _, dep := range t.Dependencies {
			if dep == t.ID || seen[dep] {
				continue
			}
			seen[dep] = true
			if idx.inBatch[dep] {
				idx.blockers[dep]++
			}
		}
	}
	return idx
}
