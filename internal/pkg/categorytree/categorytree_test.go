package categorytree

import (
	"reflect"
	"testing"
)

func TestDescendants(t *testing.T) {
	//      1
	//     / \
	//    2   3
	//   / \    \
	//  4   5    6
	tree := []Node{
		{ID: 1, ParentID: 0},
		{ID: 2, ParentID: 1},
		{ID: 3, ParentID: 1},
		{ID: 4, ParentID: 2},
		{ID: 5, ParentID: 2},
		{ID: 6, ParentID: 3},
	}

	tests := []struct {
		name  string
		root  int64
		nodes []Node
		want  []int64
	}{
		{name: "full tree", root: 1, nodes: tree, want: []int64{2, 3, 4, 5, 6}},
		{name: "subtree", root: 2, nodes: tree, want: []int64{4, 5}},
		{name: "leaf", root: 4, nodes: tree, want: nil},
		{name: "unknown root", root: 99, nodes: tree, want: nil},
		{name: "empty input", root: 1, nodes: nil, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Descendants(tt.root, tt.nodes)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Descendants(%d) = %v, want %v", tt.root, got, tt.want)
			}
		})
	}
}

func TestDescendantsExcludesRoot(t *testing.T) {
	nodes := []Node{{ID: 2, ParentID: 1}, {ID: 3, ParentID: 2}}
	for _, id := range Descendants(1, nodes) {
		if id == 1 {
			t.Fatal("result must not contain the root id")
		}
	}
}

// A malformed tree with a cycle must terminate and report each node once.
func TestDescendantsCyclicGraph(t *testing.T) {
	nodes := []Node{
		{ID: 2, ParentID: 1},
		{ID: 3, ParentID: 2},
		{ID: 1, ParentID: 3}, // cycle back to the root
	}

	got := Descendants(1, nodes)
	want := []int64{2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Descendants(1) = %v, want %v", got, want)
	}
}

// Descendants is a fixed point: descendants(c) equals the union of each
// direct child and that child's own descendants.
func TestDescendantsFixedPoint(t *testing.T) {
	nodes := []Node{
		{ID: 2, ParentID: 1},
		{ID: 3, ParentID: 1},
		{ID: 4, ParentID: 2},
		{ID: 5, ParentID: 4},
	}

	union := map[int64]bool{}
	for _, n := range nodes {
		if n.ParentID != 1 {
			continue
		}
		union[n.ID] = true
		for _, id := range Descendants(n.ID, nodes) {
			union[id] = true
		}
	}

	got := Descendants(1, nodes)
	if len(got) != len(union) {
		t.Fatalf("got %d ids, union has %d", len(got), len(union))
	}
	for _, id := range got {
		if !union[id] {
			t.Errorf("id %d missing from child-union", id)
		}
	}
}
