package reorder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestController(nodes []Node, store Store, sink Sink) (*Controller, *Collection) {
	c := NewCollection()
	c.Load(nodes)
	if store == nil {
		store = &fakeStore{}
	}
	exec := NewExecutor(c, store, sink)
	ctrl := NewController(c, exec, sink,
		WithClock(func() time.Time { return time.Unix(1700000000, 0) }),
	)
	return ctrl, c
}

// dragTo walks a session from Begin through Hovering over the given point.
func dragTo(t *testing.T, ctrl *Controller, node Node, zone InsertionPoint) {
	t.Helper()
	if _, err := ctrl.Begin(node, Point{X: 0, Y: 0}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := ctrl.PointerMove(Point{X: 0, Y: 50}); err != nil {
		t.Fatalf("PointerMove: %v", err)
	}
	if err := ctrl.Hover(zone); err != nil {
		t.Fatalf("Hover: %v", err)
	}
}

func TestControllerArmingThreshold(t *testing.T) {
	parent := uuid.New()
	nodes := seedContainer(parent, "A", "B", "C")
	ctrl, _ := newTestController(nodes, nil, nil)

	if _, err := ctrl.Begin(nodes[0], Point{X: 10, Y: 10}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if got := ctrl.State(); got != StateArmed {
		t.Fatalf("state after Begin = %s, want %s", got, StateArmed)
	}

	// Movement inside the threshold keeps the session armed.
	if err := ctrl.PointerMove(Point{X: 12, Y: 11}); err != nil {
		t.Fatalf("PointerMove: %v", err)
	}
	if got := ctrl.State(); got != StateArmed {
		t.Fatalf("state after small move = %s, want %s", got, StateArmed)
	}

	if err := ctrl.PointerMove(Point{X: 10, Y: 20}); err != nil {
		t.Fatalf("PointerMove: %v", err)
	}
	if got := ctrl.State(); got != StateDragging {
		t.Fatalf("state after crossing threshold = %s, want %s", got, StateDragging)
	}
}

func TestControllerRejectsSecondSession(t *testing.T) {
	parent := uuid.New()
	nodes := seedContainer(parent, "A", "B", "C")
	ctrl, _ := newTestController(nodes, nil, nil)

	first, err := ctrl.Begin(nodes[0], Point{})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	_, err = ctrl.Begin(nodes[1], Point{})
	var concurrencyErr *ConcurrencyError
	if !errors.As(err, &concurrencyErr) {
		t.Fatalf("second Begin err = %v, want ConcurrencyError", err)
	}
	if concurrencyErr.ActiveSession != first {
		t.Errorf("ActiveSession = %s, want %s", concurrencyErr.ActiveSession, first)
	}
}

func TestControllerRejectsRootAndUnknownNodes(t *testing.T) {
	parent := uuid.New()
	nodes := seedContainer(parent, "A")
	ctrl, _ := newTestController(nodes, nil, nil)

	root := Node{Id: uuid.New(), Kind: KindContainer}
	if _, err := ctrl.Begin(root, Point{}); err == nil {
		t.Error("Begin on the root container succeeded, want ValidationError")
	}

	orphanParent := uuid.New()
	orphan := Node{Id: uuid.New(), ParentId: &orphanParent, Kind: KindItem}
	_, err := ctrl.Begin(orphan, Point{})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Begin on unknown node err = %v, want ValidationError", err)
	}

	if got := ctrl.State(); got != StateIdle {
		t.Errorf("state after rejected Begin = %s, want %s", got, StateIdle)
	}
}

func TestControllerDropSuccess(t *testing.T) {
	parent := uuid.New()
	nodes := seedContainer(parent, "A", "B", "C", "D")
	sink := &recordingSink{}
	ctrl, c := newTestController(nodes, nil, sink)

	dragTo(t, ctrl, nodes[0], InsertionPoint{ContainerId: parent, VisualIndex: 2})

	result, err := ctrl.Drop(context.Background())
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if result.FinalIndex != 1 {
		t.Errorf("FinalIndex = %d, want 1", result.FinalIndex)
	}
	assertOrder(t, c, parent, "B", "A", "C", "D")

	if got := ctrl.State(); got != StateIdle {
		t.Errorf("state after drop = %s, want %s", got, StateIdle)
	}
	if _, active := ctrl.ActiveSession(); active {
		t.Error("session still active after drop")
	}
	if sink.countOf(EventSessionEnded) != 1 {
		t.Errorf("%d session end events, want exactly 1", sink.countOf(EventSessionEnded))
	}
}

func TestControllerDropRequiresHoveredZone(t *testing.T) {
	parent := uuid.New()
	nodes := seedContainer(parent, "A", "B")
	ctrl, _ := newTestController(nodes, nil, nil)

	if _, err := ctrl.Begin(nodes[0], Point{}); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	_, err := ctrl.Drop(context.Background())
	var stateErr *StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("Drop without hover err = %v, want StateError", err)
	}
}

func TestControllerDropWithoutSession(t *testing.T) {
	parent := uuid.New()
	nodes := seedContainer(parent, "A")
	ctrl, _ := newTestController(nodes, nil, nil)

	_, err := ctrl.Drop(context.Background())
	var cancelledErr *CancelledError
	if !errors.As(err, &cancelledErr) {
		t.Fatalf("Drop without session err = %v, want CancelledError", err)
	}
}

func TestControllerDropFailureEndsWithError(t *testing.T) {
	parent := uuid.New()
	nodes := seedContainer(parent, "A", "B", "C", "D")
	store := &fakeStore{err: errors.New("unavailable")}
	sink := &recordingSink{}
	ctrl, c := newTestController(nodes, store, sink)

	dragTo(t, ctrl, nodes[0], InsertionPoint{ContainerId: parent, VisualIndex: 3})

	_, err := ctrl.Drop(context.Background())
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("Drop err = %v, want StoreError", err)
	}

	assertOrder(t, c, parent, "A", "B", "C", "D")
	if got := ctrl.State(); got != StateIdle {
		t.Errorf("state after failed drop = %s, want %s", got, StateIdle)
	}
	if sink.countOf(EventSessionEnded) != 1 {
		t.Errorf("%d session end events, want exactly 1", sink.countOf(EventSessionEnded))
	}

	// The engine recovers: the same gesture can run again and succeed.
	store.err = nil
	dragTo(t, ctrl, nodes[0], InsertionPoint{ContainerId: parent, VisualIndex: 3})
	if _, err := ctrl.Drop(context.Background()); err != nil {
		t.Fatalf("retry Drop: %v", err)
	}
	assertOrder(t, c, parent, "B", "C", "A", "D")
}

func TestControllerCancel(t *testing.T) {
	parent := uuid.New()
	nodes := seedContainer(parent, "A", "B", "C")
	store := &fakeStore{}
	sink := &recordingSink{}
	ctrl, c := newTestController(nodes, store, sink)

	dragTo(t, ctrl, nodes[2], InsertionPoint{ContainerId: parent, VisualIndex: 0})

	if err := ctrl.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got := ctrl.State(); got != StateIdle {
		t.Errorf("state after cancel = %s, want %s", got, StateIdle)
	}
	if store.moveCalls() != 0 {
		t.Errorf("store called %d times on cancel, want 0", store.moveCalls())
	}
	assertOrder(t, c, parent, "A", "B", "C")
	if sink.countOf(EventSessionEnded) != 1 {
		t.Errorf("%d session end events, want exactly 1", sink.countOf(EventSessionEnded))
	}

	// Cancelling with no session is a state error, not a panic.
	var stateErr *StateError
	if err := ctrl.Cancel(); !errors.As(err, &stateErr) {
		t.Errorf("Cancel while idle err = %v, want StateError", err)
	}
}

func TestControllerLeaveReturnsToDragging(t *testing.T) {
	parent := uuid.New()
	nodes := seedContainer(parent, "A", "B")
	ctrl, _ := newTestController(nodes, nil, nil)

	dragTo(t, ctrl, nodes[0], InsertionPoint{ContainerId: parent, VisualIndex: 1})
	if got := ctrl.State(); got != StateHovering {
		t.Fatalf("state = %s, want %s", got, StateHovering)
	}

	if err := ctrl.Leave(); err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if got := ctrl.State(); got != StateDragging {
		t.Errorf("state after leave = %s, want %s", got, StateDragging)
	}
}

func TestControllerRejectsBeginWhileDropInFlight(t *testing.T) {
	parent := uuid.New()
	nodes := seedContainer(parent, "A", "B", "C")
	block := make(chan struct{})
	store := &fakeStore{block: block}
	ctrl, _ := newTestController(nodes, store, nil)

	dragTo(t, ctrl, nodes[0], InsertionPoint{ContainerId: parent, VisualIndex: 2})

	done := make(chan error, 1)
	go func() {
		_, err := ctrl.Drop(context.Background())
		done <- err
	}()

	// Wait for the drop to reach the store call.
	for ctrl.State() != StateDropping {
		time.Sleep(time.Millisecond)
	}

	// The in-flight move must reject, not queue, a new session.
	_, err := ctrl.Begin(nodes[1], Point{})
	var concurrencyErr *ConcurrencyError
	if !errors.As(err, &concurrencyErr) {
		t.Fatalf("Begin during drop err = %v, want ConcurrencyError", err)
	}

	// A cancel during the in-flight move is absorbed.
	if err := ctrl.Cancel(); err != nil {
		t.Fatalf("Cancel during drop: %v", err)
	}
	if got := ctrl.State(); got != StateDropping {
		t.Errorf("state after absorbed cancel = %s, want %s", got, StateDropping)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if got := ctrl.State(); got != StateIdle {
		t.Errorf("state after drop resolved = %s, want %s", got, StateIdle)
	}
}

func TestControllerHoverIdempotent(t *testing.T) {
	parent := uuid.New()
	nodes := seedContainer(parent, "A", "B")
	sink := &recordingSink{}
	ctrl, _ := newTestController(nodes, nil, sink)

	zone := InsertionPoint{ContainerId: parent, VisualIndex: 1}
	dragTo(t, ctrl, nodes[0], zone)

	before := sink.countOf(EventStateChanged)
	for i := 0; i < 5; i++ {
		if err := ctrl.Hover(zone); err != nil {
			t.Fatalf("Hover: %v", err)
		}
	}
	if after := sink.countOf(EventStateChanged); after != before {
		t.Errorf("repeated identical hovers emitted %d extra transitions", after-before)
	}
}
