package reorder

import "github.com/google/uuid"

// ResolveInsertionPoint maps a pointer coordinate over a rendered sibling
// list to one discrete insertion point. The pointer is compared against the
// midpoint of each sibling's bounds: crossing a sibling's midpoint moves the
// insertion point past that sibling. A pointer exactly on a midpoint resolves
// to the lower visual index.
//
// Pure function of the given geometry. Siblings can change size while a drag
// is in progress, so callers must re-resolve on every hover tick instead of
// caching a result across pointer moves.
func ResolveInsertionPoint(containerId uuid.UUID, pointer float64, bounds []SiblingBounds) InsertionPoint {
	visual := 0
	for _, b := range bounds {
		mid := (b.Min + b.Max) / 2
		if pointer > mid {
			visual++
		}
	}
	return InsertionPoint{ContainerId: containerId, VisualIndex: visual}
}

// EnumerateInsertionPoints lists every valid insertion point for a container
// with count children: one before each child plus one after the last. An
// empty container still has exactly one point, index 0.
func EnumerateInsertionPoints(containerId uuid.UUID, count int) []InsertionPoint {
	if count < 0 {
		count = 0
	}
	points := make([]InsertionPoint, count+1)
	for i := range points {
		points[i] = InsertionPoint{ContainerId: containerId, VisualIndex: i}
	}
	return points
}
