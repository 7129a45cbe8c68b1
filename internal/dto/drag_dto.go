package dto

import (
	"bookmark-reorder-be/pkg/reorder"

	"github.com/google/uuid"
)

type BeginDragRequest struct {
	NodeId uuid.UUID     `json:"node_id" validate:"required"`
	Origin reorder.Point `json:"origin"`
}

type BeginDragResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	State     string    `json:"state"`
}

type PointerSampleRequest struct {
	Pointer reorder.Point `json:"pointer"`
}

// HoverRequest carries the pointer's primary-axis coordinate plus the
// rendered sibling bounds of the hovered container, reported fresh on every
// tick because siblings can resize mid-drag.
type HoverRequest struct {
	ContainerId uuid.UUID               `json:"container_id" validate:"required"`
	Pointer     float64                 `json:"pointer"`
	Bounds      []reorder.SiblingBounds `json:"bounds" validate:"dive"`
}

type HoverResponse struct {
	Resolved reorder.InsertionPoint `json:"resolved"`
	State    string                 `json:"state"`
}

type LeaveRequest struct {
	ContainerId uuid.UUID `json:"container_id"`
}

type DropResponse struct {
	FinalParentId uuid.UUID `json:"final_parent_id"`
	FinalIndex    int       `json:"final_index"`
	NoOp          bool      `json:"no_op"`
}

type DragStateResponse struct {
	State     string     `json:"state"`
	SessionId *uuid.UUID `json:"session_id,omitempty"`
}
