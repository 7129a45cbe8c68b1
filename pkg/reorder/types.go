package reorder

import (
	"context"

	"bookmark-reorder-be/pkg/events"

	"github.com/google/uuid"
)

type NodeKind string

const (
	KindContainer NodeKind = "container"
	KindItem      NodeKind = "item"
)

// Node is one entry of the mirrored bookmark tree. Index is the 0-based
// position among the direct children of ParentId. The root container is the
// single node with a nil ParentId.
type Node struct {
	Id       uuid.UUID
	ParentId *uuid.UUID
	Kind     NodeKind
	Index    int
	Title    string
	Url      string
}

// InsertionPoint is a logical gap among a container's current children.
// For N children there are exactly N+1 valid points (0 = before the first
// child, N = after the last).
type InsertionPoint struct {
	ContainerId uuid.UUID `json:"container_id"`
	VisualIndex int       `json:"visual_index"`
}

// Point is a pointer sample in client coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SiblingBounds is the primary-axis extent of one rendered sibling row,
// reported by the client on every hover tick.
type SiblingBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MoveRequest is produced once per drop, from the session's source snapshot
// and the last hovered insertion point. RequestedVisualIndex is expressed
// against the sibling list as the user saw it, before the dragged node is
// removed.
type MoveRequest struct {
	NodeId               uuid.UUID
	FromParentId         uuid.UUID
	FromIndex            int
	ToParentId           uuid.UUID
	RequestedVisualIndex int
}

// MoveResult is the authoritative outcome reported by the store. It may
// legitimately differ from the optimistic placement.
type MoveResult struct {
	FinalParentId uuid.UUID `json:"final_parent_id"`
	FinalIndex    int       `json:"final_index"`
}

// SourceSnapshot is captured when a session begins and is immutable for the
// session's lifetime. Siblings holds the source container's pre-drag order
// and is the rollback anchor.
type SourceSnapshot struct {
	NodeId   uuid.UUID
	ParentId uuid.UUID
	Index    int
	Kind     NodeKind
	Siblings []Node
}

// Store is the external ordered store the engine moves nodes against.
// Move may suspend indefinitely; the engine imposes no timeout of its own.
type Store interface {
	GetTree(ctx context.Context, ownerId uuid.UUID) ([]Node, error)
	Move(ctx context.Context, nodeId uuid.UUID, parentId uuid.UUID, index int) (*MoveResult, error)
}

// Sink receives one event per state transition, move attempt and move
// outcome. Implementations must not block the caller.
type Sink interface {
	Record(event events.Event)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Record(events.Event) {}
