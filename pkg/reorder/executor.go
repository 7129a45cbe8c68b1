package reorder

import (
	"context"
	"time"
)

// Executor turns a drop into a durable, correctly-ordered mutation:
// optimistic local update, exactly one store call, reconciliation against the
// authoritative result, rollback on failure. It never retries; retry policy,
// if any, belongs to the store collaborator.
type Executor struct {
	model *Collection
	store Store
	sink  Sink
	clock func() time.Time
}

func NewExecutor(model *Collection, store Store, sink Sink) *Executor {
	if sink == nil {
		sink = NopSink{}
	}
	return &Executor{
		model: model,
		store: store,
		sink:  sink,
		clock: time.Now,
	}
}

// Execute performs the full move sequence for one drop. A no-op request
// (same container, adjusted index equal to the source index) returns the
// node's current position without touching the model or the store.
func (e *Executor) Execute(ctx context.Context, req MoveRequest) (*MoveResult, error) {
	if err := e.validate(req); err != nil {
		return nil, err
	}

	adjusted := AdjustedIndex(req.FromParentId, req.ToParentId, req.FromIndex, req.RequestedVisualIndex)
	if IsNoOp(req.FromParentId, req.ToParentId, req.FromIndex, req.RequestedVisualIndex) {
		e.sink.Record(newEvent(EventMoveSkipped, e.clock(), map[string]interface{}{
			"node_id":      req.NodeId.String(),
			"from_index":   req.FromIndex,
			"visual_index": req.RequestedVisualIndex,
		}))
		return &MoveResult{FinalParentId: req.FromParentId, FinalIndex: req.FromIndex}, nil
	}

	// Captured before the mutation so a failed store call can restore the
	// exact pre-move order on both sides.
	premoveSource := e.model.GetChildren(req.FromParentId)
	premoveTarget := e.model.GetChildren(req.ToParentId)

	if err := e.model.ApplyOptimisticMove(req, adjusted); err != nil {
		return nil, err
	}

	e.sink.Record(newEvent(EventMoveAttempted, e.clock(), map[string]interface{}{
		"node_id":        req.NodeId.String(),
		"from_parent":    req.FromParentId.String(),
		"to_parent":      req.ToParentId.String(),
		"from_index":     req.FromIndex,
		"visual_index":   req.RequestedVisualIndex,
		"adjusted_index": adjusted,
	}))

	result, err := e.store.Move(ctx, req.NodeId, req.ToParentId, adjusted)
	if err != nil {
		e.model.Restore(req.FromParentId, premoveSource)
		if req.ToParentId != req.FromParentId {
			e.model.Restore(req.ToParentId, premoveTarget)
		}
		storeErr := &StoreError{Op: "move", Err: err}
		e.sink.Record(newEvent(EventMoveFailed, e.clock(), map[string]interface{}{
			"node_id": req.NodeId.String(),
			"error":   storeErr.Error(),
		}))
		return nil, storeErr
	}

	// The store's reported position is authoritative and may differ from the
	// optimistic guess; that is reconciled, not treated as an error.
	e.model.Reconcile(req.NodeId, *result)

	e.sink.Record(newEvent(EventMoveCompleted, e.clock(), map[string]interface{}{
		"node_id":      req.NodeId.String(),
		"final_parent": result.FinalParentId.String(),
		"final_index":  result.FinalIndex,
	}))
	return result, nil
}

func (e *Executor) validate(req MoveRequest) error {
	source := e.model.GetChildren(req.FromParentId)
	if req.FromIndex < 0 || req.FromIndex >= len(source) {
		return &ValidationError{Field: "from_index", Reason: "outside the source sibling range"}
	}
	if source[req.FromIndex].Id != req.NodeId {
		return &ValidationError{Field: "node_id", Reason: "node is not at the expected source position"}
	}

	target := e.model.GetChildren(req.ToParentId)
	if req.RequestedVisualIndex < 0 || req.RequestedVisualIndex > len(target) {
		return &ValidationError{Field: "visual_index", Reason: "outside the 0..N insertion range"}
	}
	return nil
}
