package reorder

import (
	"testing"

	"github.com/google/uuid"
)

func TestResolveInsertionPoint(t *testing.T) {
	container := uuid.New()
	// Three rows of height 10 stacked without gaps; midpoints 5, 15, 25.
	bounds := []SiblingBounds{
		{Min: 0, Max: 10},
		{Min: 10, Max: 20},
		{Min: 20, Max: 30},
	}

	tests := []struct {
		name    string
		pointer float64
		want    int
	}{
		{name: "above the first midpoint", pointer: 2, want: 0},
		{name: "exactly on a midpoint resolves low", pointer: 5, want: 0},
		{name: "just past the first midpoint", pointer: 6, want: 1},
		{name: "between second and third midpoints", pointer: 18, want: 2},
		{name: "past every midpoint", pointer: 29, want: 3},
		{name: "far below the list", pointer: 500, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveInsertionPoint(container, tt.pointer, bounds)
			if got.VisualIndex != tt.want {
				t.Errorf("VisualIndex = %d, want %d", got.VisualIndex, tt.want)
			}
			if got.ContainerId != container {
				t.Errorf("ContainerId = %s, want %s", got.ContainerId, container)
			}
		})
	}
}

func TestResolveInsertionPointEmptyContainer(t *testing.T) {
	container := uuid.New()
	got := ResolveInsertionPoint(container, 42, nil)
	if got.VisualIndex != 0 {
		t.Errorf("VisualIndex = %d, want 0", got.VisualIndex)
	}
}

func TestResolveInsertionPointUnevenRows(t *testing.T) {
	container := uuid.New()
	// Rows that resized mid-drag; midpoints 10, 35, 52.5.
	bounds := []SiblingBounds{
		{Min: 0, Max: 20},
		{Min: 20, Max: 50},
		{Min: 50, Max: 55},
	}

	if got := ResolveInsertionPoint(container, 30, bounds).VisualIndex; got != 1 {
		t.Errorf("VisualIndex = %d, want 1", got)
	}
	if got := ResolveInsertionPoint(container, 53, bounds).VisualIndex; got != 3 {
		t.Errorf("VisualIndex = %d, want 3", got)
	}
}

func TestEnumerateInsertionPoints(t *testing.T) {
	container := uuid.New()

	tests := []struct {
		name  string
		count int
		want  int
	}{
		{name: "empty container has one point", count: 0, want: 1},
		{name: "single child has two points", count: 1, want: 2},
		{name: "four children have five points", count: 4, want: 5},
		{name: "negative count is treated as empty", count: -3, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := EnumerateInsertionPoints(container, tt.count)
			if len(points) != tt.want {
				t.Fatalf("len(points) = %d, want %d", len(points), tt.want)
			}
			for i, p := range points {
				if p.VisualIndex != i {
					t.Errorf("points[%d].VisualIndex = %d, want %d", i, p.VisualIndex, i)
				}
				if p.ContainerId != container {
					t.Errorf("points[%d].ContainerId = %s, want %s", i, p.ContainerId, container)
				}
			}
		})
	}
}
