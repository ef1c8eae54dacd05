package ir

import "sort"

// Labels returns the block labels of f in a stable order: the entry block,
// then blocks reachable from it in breadth-first order following terminator
// targets, then any unreachable blocks sorted by label.
func (f *Function) Labels() []string {
	labels := make([]string, 0, len(f.Blocks))
	seen := make(map[string]bool, len(f.Blocks))

	if _, ok := f.Blocks[f.Entry]; ok {
		queue := []string{f.Entry}
		seen[f.Entry] = true
		for len(queue) > 0 {
			label := queue[0]
			queue = queue[1:]
			labels = append(labels, label)

			block := f.Blocks[label]
			if block.Terminator == nil {
				continue
			}
			for _, target := range block.Terminator.Targets() {
				if _, ok := f.Blocks[target]; ok && !seen[target] {
					seen[target] = true
					queue = append(queue, target)
				}
			}
		}
	}

	var rest []string
	for label := range f.Blocks {
		if !seen[label] {
			rest = append(rest, label)
		}
	}
	sort.Strings(rest)
	return append(labels, rest...)
}

// RebuildEdges recomputes Predecessors and Successors of every block from
// the terminators. Edges to unknown labels are dropped; Verify reports them.
func (f *Function) RebuildEdges() {
	order := f.Labels()
	for _, label := range order {
		b := f.Blocks[label]
		b.Predecessors = nil
		b.Successors = nil
	}
	for _, label := range order {
		b := f.Blocks[label]
		if b.Terminator == nil {
			continue
		}
		for _, target := range b.Terminator.Targets() {
			succ, ok := f.Blocks[target]
			if !ok || contains(b.Successors, target) {
				continue
			}
			b.Successors = append(b.Successors, target)
			succ.Predecessors = append(succ.Predecessors, label)
		}
	}
}

// Reachable returns the set of blocks reachable from the entry block
func (f *Function) Reachable() map[string]bool {
	reachable := make(map[string]bool)
	for _, label := range f.Labels() {
		if label == f.Entry {
			reachable[label] = true
		}
		b := f.Blocks[label]
		if !reachable[label] || b.Terminator == nil {
			continue
		}
		for _, t := range b.Terminator.Targets() {
			reachable[t] = true
		}
	}
	return reachable
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
