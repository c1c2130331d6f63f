// Package categorytree resolves descendants in the platform's course
// category tree. Categories form a self-referential containment hierarchy
// edited outside this service, so the walk guards against cycles instead of
// trusting the data.
package categorytree

import "sort"

// Node is a single category row: its id and the id of its parent
// (0 for top-level categories).
type Node struct {
	ID       int64
	ParentID int64
}

// Descendants returns the ids of every category reachable from rootID by
// following parent-child edges, excluding rootID itself. The caller adds the
// root back if the whole subtree is wanted. The result is sorted ascending
// so output is deterministic regardless of input order.
func Descendants(rootID int64, nodes []Node) []int64 {
	children := make(map[int64][]int64, len(nodes))
	for _, n := range nodes {
		children[n.ParentID] = append(children[n.ParentID], n.ID)
	}

	visited := map[int64]bool{rootID: true}
	var out []int64

	stack := append([]int64(nil), children[rootID]...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		out = append(out, id)
		stack = append(stack, children[id]...)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
