package reorder

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

// seedContainer returns nodes titled in order under one parent, indexed 0..n-1.
func seedContainer(parent uuid.UUID, titles ...string) []Node {
	nodes := make([]Node, len(titles))
	for i, title := range titles {
		p := parent
		nodes[i] = Node{
			Id:       uuid.New(),
			ParentId: &p,
			Kind:     KindItem,
			Index:    i,
			Title:    title,
		}
	}
	return nodes
}

func titlesOf(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Title
	}
	return out
}

func assertOrder(t *testing.T, c *Collection, parent uuid.UUID, want ...string) {
	t.Helper()
	got := titlesOf(c.GetChildren(parent))
	if len(got) != len(want) {
		t.Fatalf("children = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children = %v, want %v", got, want)
		}
	}
	for i, n := range c.GetChildren(parent) {
		if n.Index != i {
			t.Fatalf("child %q has index %d, want %d", n.Title, n.Index, i)
		}
	}
}

func TestCollectionLoadNormalizesSparseIndexes(t *testing.T) {
	parent := uuid.New()
	nodes := seedContainer(parent, "A", "B", "C")
	// Sparse positions as a store might report after deletions.
	nodes[0].Index = 3
	nodes[1].Index = 10
	nodes[2].Index = 25

	c := NewCollection()
	c.Load(nodes)

	assertOrder(t, c, parent, "A", "B", "C")
}

func TestCollectionGetChildrenUnknownContainer(t *testing.T) {
	c := NewCollection()
	if got := c.GetChildren(uuid.New()); len(got) != 0 {
		t.Errorf("children of unknown container = %v, want empty", got)
	}
}

func TestCollectionApplyOptimisticMoveForward(t *testing.T) {
	parent := uuid.New()
	nodes := seedContainer(parent, "A", "B", "C", "D")

	c := NewCollection()
	c.Load(nodes)

	// Drag A to the point between B and C: visual 2 adjusts to 1.
	req := MoveRequest{
		NodeId:               nodes[0].Id,
		FromParentId:         parent,
		FromIndex:            0,
		ToParentId:           parent,
		RequestedVisualIndex: 2,
	}
	adjusted := AdjustedIndex(req.FromParentId, req.ToParentId, req.FromIndex, req.RequestedVisualIndex)
	if adjusted != 1 {
		t.Fatalf("adjusted = %d, want 1", adjusted)
	}
	if err := c.ApplyOptimisticMove(req, adjusted); err != nil {
		t.Fatalf("ApplyOptimisticMove: %v", err)
	}

	assertOrder(t, c, parent, "B", "A", "C", "D")
}

func TestCollectionApplyOptimisticMoveBackward(t *testing.T) {
	parent := uuid.New()
	nodes := seedContainer(parent, "A", "B", "C", "D")

	c := NewCollection()
	c.Load(nodes)

	// Drag D to the point between A and B: visual 1 stays 1.
	req := MoveRequest{
		NodeId:               nodes[3].Id,
		FromParentId:         parent,
		FromIndex:            3,
		ToParentId:           parent,
		RequestedVisualIndex: 1,
	}
	if err := c.ApplyOptimisticMove(req, 1); err != nil {
		t.Fatalf("ApplyOptimisticMove: %v", err)
	}

	assertOrder(t, c, parent, "A", "D", "B", "C")
}

func TestCollectionApplyOptimisticMoveCrossContainer(t *testing.T) {
	source := uuid.New()
	target := uuid.New()
	nodes := seedContainer(source, "A", "B", "C")

	c := NewCollection()
	c.Load(nodes)

	// Target container is empty, its single insertion point is 0.
	req := MoveRequest{
		NodeId:               nodes[1].Id,
		FromParentId:         source,
		FromIndex:            1,
		ToParentId:           target,
		RequestedVisualIndex: 0,
	}
	if err := c.ApplyOptimisticMove(req, 0); err != nil {
		t.Fatalf("ApplyOptimisticMove: %v", err)
	}

	assertOrder(t, c, source, "A", "C")
	assertOrder(t, c, target, "B")

	moved := c.GetChildren(target)[0]
	if moved.ParentId == nil || *moved.ParentId != target {
		t.Errorf("moved node parent = %v, want %s", moved.ParentId, target)
	}
}

func TestCollectionApplyOptimisticMoveValidation(t *testing.T) {
	parent := uuid.New()
	nodes := seedContainer(parent, "A", "B")

	c := NewCollection()
	c.Load(nodes)

	tests := []struct {
		name string
		req  MoveRequest
		adj  int
	}{
		{
			name: "from index outside the sibling range",
			req:  MoveRequest{NodeId: nodes[0].Id, FromParentId: parent, FromIndex: 5, ToParentId: parent},
			adj:  0,
		},
		{
			name: "node not at the claimed position",
			req:  MoveRequest{NodeId: nodes[1].Id, FromParentId: parent, FromIndex: 0, ToParentId: parent},
			adj:  0,
		},
		{
			name: "adjusted index outside the target range",
			req:  MoveRequest{NodeId: nodes[0].Id, FromParentId: parent, FromIndex: 0, ToParentId: parent},
			adj:  7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.ApplyOptimisticMove(tt.req, tt.adj)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			// The mirror must be untouched after a rejected request.
			assertOrder(t, c, parent, "A", "B")
		})
	}
}

func TestCollectionReconcileOverridesOptimisticPlacement(t *testing.T) {
	parent := uuid.New()
	nodes := seedContainer(parent, "A", "B", "C", "D")

	c := NewCollection()
	c.Load(nodes)

	req := MoveRequest{
		NodeId:               nodes[0].Id,
		FromParentId:         parent,
		FromIndex:            0,
		ToParentId:           parent,
		RequestedVisualIndex: 2,
	}
	if err := c.ApplyOptimisticMove(req, 1); err != nil {
		t.Fatalf("ApplyOptimisticMove: %v", err)
	}
	assertOrder(t, c, parent, "B", "A", "C", "D")

	// The store placed A at the end instead.
	c.Reconcile(nodes[0].Id, MoveResult{FinalParentId: parent, FinalIndex: 3})
	assertOrder(t, c, parent, "B", "C", "D", "A")
}

func TestCollectionReconcileClampsFinalIndex(t *testing.T) {
	parent := uuid.New()
	nodes := seedContainer(parent, "A", "B", "C")

	c := NewCollection()
	c.Load(nodes)

	c.Reconcile(nodes[0].Id, MoveResult{FinalParentId: parent, FinalIndex: 99})
	assertOrder(t, c, parent, "B", "C", "A")
}

func TestCollectionRollbackRestoresSnapshotOrder(t *testing.T) {
	parent := uuid.New()
	nodes := seedContainer(parent, "A", "B", "C", "D")

	c := NewCollection()
	c.Load(nodes)
	snapshot := SourceSnapshot{
		NodeId:   nodes[0].Id,
		ParentId: parent,
		Index:    0,
		Siblings: c.GetChildren(parent),
	}

	req := MoveRequest{
		NodeId:               nodes[0].Id,
		FromParentId:         parent,
		FromIndex:            0,
		ToParentId:           parent,
		RequestedVisualIndex: 3,
	}
	if err := c.ApplyOptimisticMove(req, 2); err != nil {
		t.Fatalf("ApplyOptimisticMove: %v", err)
	}
	assertOrder(t, c, parent, "B", "C", "A", "D")

	c.Rollback(snapshot)
	assertOrder(t, c, parent, "A", "B", "C", "D")
}
