package reorder

import "github.com/google/uuid"

// AdjustedIndex converts a visually-perceived insertion point into the index
// the store must receive so the node lands where the user dropped it.
//
// The visual index was computed against the sibling list before the dragged
// node is removed. Removing the node shifts every sibling after it one
// position left, so an insertion point past the node's own position is one
// less in the post-removal list. Points at or before the node are unaffected,
// and cross-container moves never need the correction because removal happens
// in a different list than insertion.
func AdjustedIndex(fromParentId, toParentId uuid.UUID, fromIndex, requestedVisualIndex int) int {
	if toParentId != fromParentId {
		return requestedVisualIndex
	}
	if requestedVisualIndex > fromIndex {
		return requestedVisualIndex - 1
	}
	return requestedVisualIndex
}

// IsNoOp reports whether the requested move would leave the node exactly
// where it already is. Dropping a node immediately before itself
// (visual == fromIndex) or immediately after itself (visual == fromIndex+1)
// both land here. No store call should be issued for a no-op.
func IsNoOp(fromParentId, toParentId uuid.UUID, fromIndex, requestedVisualIndex int) bool {
	if toParentId != fromParentId {
		return false
	}
	return AdjustedIndex(fromParentId, toParentId, fromIndex, requestedVisualIndex) == fromIndex
}
