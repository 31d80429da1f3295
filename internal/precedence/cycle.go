package precedence

import "github.com/Iron-Ham/stepwise/internal/step"

// FindCycle returns a dependency cycle in s, or nil if s is acyclic.
// The first step of the cycle is repeated at the end, so a self-requirement
// X before X yields [X X]. Steps are visited in ascending order, which makes
// the reported cycle deterministic.
func FindCycle(s *Set) []step.Step {
	const (
		white = iota
		gray
		black
	)

	adj := make(map[step.Step][]step.Step)
	for _, r := range s.Requirements() {
		adj[r.Before] = append(adj[r.Before], r.After)
	}

	color := make(map[step.Step]int)
	parent := make(map[step.Step]step.Step)

	var dfs func(node step.Step) []step.Step
	dfs = func(node step.Step) []step.Step {
		color[node] = gray
		for _, next := range adj[node] {
			if color[next] == gray {
				cycle := []step.Step{next, node}
				for cur := node; cur != next; {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return cycle
			}
			if color[next] == white {
				parent[next] = node
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[node] = black
		return nil
	}

	for _, st := range s.Universe() {
		if color[st] == white {
			if cycle := dfs(st); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}
