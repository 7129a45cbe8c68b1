package reorder

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Collection mirrors the container/item tree in memory so insertion points
// and optimistic reordering never round-trip to the store on pointer moves.
// Every container's children occupy a contiguous 0..count-1 index range at
// all times; the mutating methods re-index after each splice so no caller
// ever observes a gap.
type Collection struct {
	mu       sync.RWMutex
	children map[uuid.UUID][]Node
}

func NewCollection() *Collection {
	return &Collection{
		children: make(map[uuid.UUID][]Node),
	}
}

// Load replaces the mirror with the given forest, grouping nodes by parent
// and ordering each sibling list by index. Ranges are normalized to be
// contiguous even if the store reported sparse indexes.
func (c *Collection) Load(nodes []Node) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.children = make(map[uuid.UUID][]Node)
	for _, n := range nodes {
		if n.ParentId == nil {
			continue // the root container is not a sibling of anything
		}
		c.children[*n.ParentId] = append(c.children[*n.ParentId], n)
	}
	for parentId, siblings := range c.children {
		sort.SliceStable(siblings, func(i, j int) bool {
			return siblings[i].Index < siblings[j].Index
		})
		reindex(parentId, siblings)
		c.children[parentId] = siblings
	}
}

// GetChildren returns the current ordered children of a container. Unknown
// or empty containers yield an empty slice, never an error.
func (c *Collection) GetChildren(containerId uuid.UUID) []Node {
	c.mu.RLock()
	defer c.mu.RUnlock()

	siblings := c.children[containerId]
	out := make([]Node, len(siblings))
	copy(out, siblings)
	return out
}

// FindNode looks a node up by id across all containers.
func (c *Collection) FindNode(nodeId uuid.UUID) (Node, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, siblings := range c.children {
		for _, n := range siblings {
			if n.Id == nodeId {
				return n, true
			}
		}
	}
	return Node{}, false
}

// ApplyOptimisticMove removes the node from its source list, re-indexes the
// remainder, then inserts it into the target list at adjustedIndex and
// re-indexes that side. The request is validated against the mirror before
// anything is touched.
func (c *Collection) ApplyOptimisticMove(req MoveRequest, adjustedIndex int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	src := c.children[req.FromParentId]
	if req.FromIndex < 0 || req.FromIndex >= len(src) {
		return &ValidationError{Field: "from_index", Reason: "outside the source sibling range"}
	}
	if src[req.FromIndex].Id != req.NodeId {
		return &ValidationError{Field: "node_id", Reason: "node is not at the expected source position"}
	}

	node := src[req.FromIndex]
	src = append(src[:req.FromIndex], src[req.FromIndex+1:]...)
	reindex(req.FromParentId, src)
	c.children[req.FromParentId] = src

	// For a same-container move src and dst are the same, now shortened, list.
	dst := c.children[req.ToParentId]
	if adjustedIndex < 0 || adjustedIndex > len(dst) {
		// Undo the removal so a failed validation leaves the mirror intact.
		src = insertAt(src, req.FromIndex, node)
		reindex(req.FromParentId, src)
		c.children[req.FromParentId] = src
		return &ValidationError{Field: "adjusted_index", Reason: "outside the target insertion range"}
	}

	toParent := req.ToParentId
	node.ParentId = &toParent
	dst = insertAt(dst, adjustedIndex, node)
	reindex(req.ToParentId, dst)
	c.children[req.ToParentId] = dst
	return nil
}

// Reconcile re-splices the node to the store's authoritative position if it
// differs from the optimistic placement. The store's answer always wins; an
// out-of-range final index is clamped to the end of the target list.
func (c *Collection) Reconcile(nodeId uuid.UUID, result MoveResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var current *Node
	var currentParent uuid.UUID
	var currentIndex int
	for parentId, siblings := range c.children {
		for i, n := range siblings {
			if n.Id == nodeId {
				node := n
				current = &node
				currentParent = parentId
				currentIndex = i
			}
		}
	}
	if current == nil {
		return
	}
	if currentParent == result.FinalParentId && currentIndex == result.FinalIndex {
		return
	}

	src := c.children[currentParent]
	src = append(src[:currentIndex], src[currentIndex+1:]...)
	reindex(currentParent, src)
	c.children[currentParent] = src

	dst := c.children[result.FinalParentId]
	final := result.FinalIndex
	if final < 0 {
		final = 0
	}
	if final > len(dst) {
		final = len(dst)
	}
	finalParent := result.FinalParentId
	current.ParentId = &finalParent
	dst = insertAt(dst, final, *current)
	reindex(result.FinalParentId, dst)
	c.children[result.FinalParentId] = dst
}

// Restore overwrites one container's sibling list with a previously captured
// order, re-indexed contiguously.
func (c *Collection) Restore(containerId uuid.UUID, siblings []Node) {
	c.mu.Lock()
	defer c.mu.Unlock()

	restored := make([]Node, len(siblings))
	copy(restored, siblings)
	reindex(containerId, restored)
	c.children[containerId] = restored
}

// Rollback restores the exact pre-drag order of a snapshot's source
// container.
func (c *Collection) Rollback(snapshot SourceSnapshot) {
	c.Restore(snapshot.ParentId, snapshot.Siblings)
}

func insertAt(siblings []Node, index int, node Node) []Node {
	siblings = append(siblings, Node{})
	copy(siblings[index+1:], siblings[index:])
	siblings[index] = node
	return siblings
}

func reindex(parentId uuid.UUID, siblings []Node) {
	for i := range siblings {
		siblings[i].Index = i
		parent := parentId
		siblings[i].ParentId = &parent
	}
}
