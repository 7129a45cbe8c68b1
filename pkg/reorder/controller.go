package reorder

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
)

type State string

const (
	StateIdle     State = "IDLE"
	StateArmed    State = "ARMED"
	StateDragging State = "DRAGGING"
	StateHovering State = "HOVERING_ZONE"
	StateDropping State = "DROPPING"
	StateEnded    State = "ENDED"
)

type EndReason string

const (
	EndSuccess   EndReason = "success"
	EndCancelled EndReason = "cancelled"
	EndError     EndReason = "error"
)

// DefaultDragThreshold is the pointer travel, in client units, required
// before an armed session becomes a real drag. It keeps accidental clicks
// from starting sessions.
const DefaultDragThreshold = 4.0

// Session is the bounded lifetime of one drag gesture. The source snapshot
// is captured at Begin and never mutated afterwards.
type Session struct {
	Id        uuid.UUID
	Source    SourceSnapshot
	StartedAt time.Time
	LastHover *InsertionPoint

	origin  Point
	mutated bool
}

// Controller is the single-session drag state machine. It owns all session
// transitions and is the only component that initiates a move. At most one
// session is active per controller, and one controller per process; a second
// Begin while active is rejected with ConcurrencyError, never queued.
type Controller struct {
	mu        sync.Mutex
	model     *Collection
	executor  *Executor
	sink      Sink
	clock     func() time.Time
	threshold float64

	state   State
	session *Session
}

type ControllerOption func(*Controller)

// WithClock injects the time source, so tests can pin timestamps.
func WithClock(clock func() time.Time) ControllerOption {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithThreshold overrides the arming movement threshold.
func WithThreshold(threshold float64) ControllerOption {
	return func(c *Controller) {
		c.threshold = threshold
	}
}

func NewController(model *Collection, executor *Executor, sink Sink, opts ...ControllerOption) *Controller {
	if sink == nil {
		sink = NopSink{}
	}
	c := &Controller{
		model:     model,
		executor:  executor,
		sink:      sink,
		clock:     time.Now,
		threshold: DefaultDragThreshold,
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ActiveSession returns the current session id, if any.
func (c *Controller) ActiveSession() (uuid.UUID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return uuid.Nil, false
	}
	return c.session.Id, true
}

// Snapshot returns the active session's immutable source snapshot.
func (c *Controller) Snapshot() (SourceSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return SourceSnapshot{}, false
	}
	return c.session.Source, true
}

// Begin snapshots the source node and arms a new session. The session only
// becomes a drag once pointer movement exceeds the threshold.
func (c *Controller) Begin(node Node, origin Point) (uuid.UUID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return uuid.Nil, &ConcurrencyError{ActiveSession: c.session.Id}
	}
	if node.ParentId == nil {
		return uuid.Nil, &ValidationError{Field: "node_id", Reason: "the root container cannot be dragged"}
	}

	siblings := c.model.GetChildren(*node.ParentId)
	sourceIndex := -1
	for _, sibling := range siblings {
		if sibling.Id == node.Id {
			sourceIndex = sibling.Index
		}
	}
	if sourceIndex < 0 {
		return uuid.Nil, &ValidationError{Field: "node_id", Reason: "node not found under its parent"}
	}

	c.session = &Session{
		Id: uuid.New(),
		Source: SourceSnapshot{
			NodeId:   node.Id,
			ParentId: *node.ParentId,
			Index:    sourceIndex,
			Kind:     node.Kind,
			Siblings: siblings,
		},
		StartedAt: c.clock(),
		origin:    origin,
	}
	c.setState(StateArmed)
	c.sink.Record(newEvent(EventSessionStarted, c.clock(), map[string]interface{}{
		"session_id": c.session.Id.String(),
		"node_id":    node.Id.String(),
		"parent_id":  node.ParentId.String(),
		"index":      sourceIndex,
	}))
	return c.session.Id, nil
}

// PointerMove feeds one pointer sample. An armed session transitions to
// Dragging once travel from the origin exceeds the threshold; later samples
// are consumed without a transition (resolution happens per hover tick).
func (c *Controller) PointerMove(p Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateArmed:
		if distance(c.session.origin, p) > c.threshold {
			c.setState(StateDragging)
		}
		return nil
	case StateDragging, StateHovering:
		return nil
	default:
		return &StateError{Op: "track pointer", Current: c.state}
	}
}

// Hover records the currently targeted insertion point. Idempotent when the
// zone is unchanged.
func (c *Controller) Hover(zone InsertionPoint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDragging && c.state != StateHovering {
		return &StateError{Op: "hover", Current: c.state}
	}
	if c.session.LastHover != nil && *c.session.LastHover == zone {
		return nil
	}
	c.session.LastHover = &zone
	if c.state != StateHovering {
		c.setState(StateHovering)
	}
	return nil
}

// Leave clears the hovered zone; the session keeps dragging.
func (c *Controller) Leave() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateHovering {
		return &StateError{Op: "leave", Current: c.state}
	}
	c.session.LastHover = nil
	c.setState(StateDragging)
	return nil
}

// Drop resolves the session: it builds the move request from the source
// snapshot and the last hovered zone, delegates to the executor, and ends the
// session with the outcome. The store call may suspend indefinitely; until it
// resolves the controller stays in Dropping and rejects new sessions.
func (c *Controller) Drop(ctx context.Context) (*MoveResult, error) {
	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		return nil, &CancelledError{}
	}
	if c.state != StateHovering {
		c.mu.Unlock()
		return nil, &StateError{Op: "drop", Current: c.state}
	}

	session := c.session
	req := MoveRequest{
		NodeId:               session.Source.NodeId,
		FromParentId:         session.Source.ParentId,
		FromIndex:            session.Source.Index,
		ToParentId:           session.LastHover.ContainerId,
		RequestedVisualIndex: session.LastHover.VisualIndex,
	}
	c.setState(StateDropping)
	session.mutated = true
	c.mu.Unlock()

	// The executor call runs outside the lock so a concurrent Begin is
	// rejected by state instead of blocking behind an in-flight store call.
	result, err := c.executor.Execute(ctx, req)

	c.mu.Lock()
	session.mutated = false
	if err != nil {
		c.end(EndError, err)
	} else {
		c.end(EndSuccess, nil)
	}
	c.mu.Unlock()
	return result, err
}

// Cancel ends the session without a move. A cancel that arrives while a move
// is in flight is recorded but does not abort the call; the drop's own
// outcome still ends the session. Rollback happens only if an optimistic
// mutation had already been applied.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateIdle, StateEnded:
		return &StateError{Op: "cancel", Current: c.state}
	case StateDropping:
		c.sink.Record(newEvent(EventStateChanged, c.clock(), map[string]interface{}{
			"session_id": c.session.Id.String(),
			"state":      string(c.state),
			"note":       "cancel ignored, move in flight",
		}))
		return nil
	}

	if c.session.mutated {
		c.model.Rollback(c.session.Source)
	}
	c.end(EndCancelled, nil)
	return nil
}

// end transitions to the terminal state, emits the end event exactly once,
// then returns the controller to Idle for the next gesture.
func (c *Controller) end(reason EndReason, cause error) {
	c.state = StateEnded
	data := map[string]interface{}{
		"session_id": c.session.Id.String(),
		"node_id":    c.session.Source.NodeId.String(),
		"reason":     string(reason),
		"duration":   c.clock().Sub(c.session.StartedAt).String(),
	}
	if cause != nil {
		data["error"] = cause.Error()
	}
	c.sink.Record(newEvent(EventSessionEnded, c.clock(), data))

	c.session = nil
	c.state = StateIdle
}

func (c *Controller) setState(next State) {
	c.state = next
	c.sink.Record(newEvent(EventStateChanged, c.clock(), map[string]interface{}{
		"session_id": c.session.Id.String(),
		"state":      string(next),
	}))
}

func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
