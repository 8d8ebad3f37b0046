package engine

import "sort"

// CycleReport describes the dependency graph health of one batch.
type CycleReport struct {
	HasCycle           bool    `json:"has_cycle"`
	Cycles             [][]int `json:"cycles"`
	DanglingReferences []int   `json:"dangling_references"`
}

type nodeColor int

const (
	colorUnvisited nodeColor = iota
	colorInProgress
	colorDone
)

// DetectCycles walks the dependency graph with a three-color DFS. An edge
// A -> B means "A depends on B"; a back edge to an in-progress node closes a
// cycle, recorded from the repeated node back to itself. Dependencies that
// point outside the batch are not edges and come back as dangling
// references. Roots are visited in ascending id order so the output is
// deterministic. O(V+E).
func DetectCycles(tasks []Task) CycleReport {
	graph := make(map[int][]int, len(tasks))
	inBatch := make(map[int]bool, len(tasks))
	for _, t := range tasks {
		inBatch[t.ID] = true
	}

	ids := make([]int, 0, len(tasks))
	danglingSet := make(map[int]bool)
	for _, t := range tasks {
		ids = append(ids, t.ID)
		edges := make([]int, 0, len(t.Dependencies))
		for _, dep := range t.Dependencies {
			if inBatch[dep] {
				edges = append(edges, dep)
			} else {
				danglingSet[dep] = true
			}
		}
		graph[t.ID] = edges
	}
	sort.Ints(ids)

	color := make(map[int]nodeColor, len(ids))
	cycles := [][]int{}
	var path []int

	var visit func(id int)
	visit = func(id int) {
		color[id] = colorInProgress
		path = append(path, id)

		for _, dep := range graph[id] {
			switch color[dep] {
			case colorUnvisited:
				visit(dep)
			case colorInProgress:
				// Back edge: the cycle is the path tail starting at dep,
				// closed with dep again.
				start := len(path) - 1
				for start >= 0 && path[start] != dep {
					start--
				}
				cycle := make([]int, 0, len(path)-start+1)
				cycle = append(cycle, path[start:]...)
				cycle = append(cycle, dep)
				cycles = append(cycles, cycle)
			}
		}

		path = path[:len(path)-1]
		color[id] = colorDone
	}

	for _, id := range ids {
		if color[id] == colorUnvisited {
			visit(id)
		}
	}

	dangling := make([]int, 0, len(danglingSet))
	for id := range danglingSet {
		dangling = append(dangling, id)
	}
	sort.Ints(dangling)

	return CycleReport{
		HasCycle:           len(cycles) > 0,
		Cycles:             cycles,
		DanglingReferences: dangling,
	}
}
