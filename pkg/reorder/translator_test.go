package reorder

import (
	"testing"

	"github.com/google/uuid"
)

func TestAdjustedIndex(t *testing.T) {
	parentA := uuid.New()
	parentB := uuid.New()

	tests := []struct {
		name       string
		fromParent uuid.UUID
		toParent   uuid.UUID
		fromIndex  int
		visual     int
		want       int
	}{
		{
			name:       "same container, insertion before source",
			fromParent: parentA,
			toParent:   parentA,
			fromIndex:  2,
			visual:     0,
			want:       0,
		},
		{
			name:       "same container, insertion at source",
			fromParent: parentA,
			toParent:   parentA,
			fromIndex:  2,
			visual:     2,
			want:       2,
		},
		{
			name:       "same container, insertion just after source",
			fromParent: parentA,
			toParent:   parentA,
			fromIndex:  2,
			visual:     3,
			want:       2,
		},
		{
			name:       "same container, insertion far after source",
			fromParent: parentA,
			toParent:   parentA,
			fromIndex:  0,
			visual:     2,
			want:       1,
		},
		{
			name:       "cross container keeps the visual index",
			fromParent: parentA,
			toParent:   parentB,
			fromIndex:  0,
			visual:     2,
			want:       2,
		},
		{
			name:       "cross container after-source position is not shifted",
			fromParent: parentA,
			toParent:   parentB,
			fromIndex:  1,
			visual:     3,
			want:       3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustedIndex(tt.fromParent, tt.toParent, tt.fromIndex, tt.visual)
			if got != tt.want {
				t.Errorf("AdjustedIndex = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsNoOp(t *testing.T) {
	parentA := uuid.New()
	parentB := uuid.New()

	tests := []struct {
		name       string
		fromParent uuid.UUID
		toParent   uuid.UUID
		fromIndex  int
		visual     int
		want       bool
	}{
		{
			name:       "point directly before the source",
			fromParent: parentA,
			toParent:   parentA,
			fromIndex:  1,
			visual:     1,
			want:       true,
		},
		{
			name:       "point directly after the source",
			fromParent: parentA,
			toParent:   parentA,
			fromIndex:  1,
			visual:     2,
			want:       true,
		},
		{
			name:       "real move within the container",
			fromParent: parentA,
			toParent:   parentA,
			fromIndex:  1,
			visual:     3,
			want:       false,
		},
		{
			name:       "same index in a different container is a move",
			fromParent: parentA,
			toParent:   parentB,
			fromIndex:  1,
			visual:     1,
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsNoOp(tt.fromParent, tt.toParent, tt.fromIndex, tt.visual)
			if got != tt.want {
				t.Errorf("IsNoOp = %v, want %v", got, tt.want)
			}
		})
	}
}

// Both insertion points surrounding a node collapse to its own index, and
// every other point maps to a distinct final position.
func TestAdjustedIndexSurroundingPointsCollapse(t *testing.T) {
	parent := uuid.New()
	const count = 5

	for fromIndex := 0; fromIndex < count; fromIndex++ {
		before := AdjustedIndex(parent, parent, fromIndex, fromIndex)
		after := AdjustedIndex(parent, parent, fromIndex, fromIndex+1)
		if before != fromIndex || after != fromIndex {
			t.Errorf("fromIndex %d: surrounding points resolved to (%d, %d), want both %d",
				fromIndex, before, after, fromIndex)
		}

		seen := make(map[int]bool)
		for visual := 0; visual <= count; visual++ {
			adjusted := AdjustedIndex(parent, parent, fromIndex, visual)
			if adjusted < 0 || adjusted >= count {
				t.Errorf("fromIndex %d visual %d: adjusted %d outside 0..%d", fromIndex, visual, adjusted, count-1)
			}
			seen[adjusted] = true
		}
		if len(seen) != count {
			t.Errorf("fromIndex %d: %d distinct final positions, want %d", fromIndex, len(seen), count)
		}
	}
}
