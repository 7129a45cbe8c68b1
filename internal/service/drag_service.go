package service

import (
	"context"
	"time"

	"bookmark-reorder-be/internal/dto"
	"bookmark-reorder-be/internal/pkg/logger"
	"bookmark-reorder-be/internal/repository/memory"
	"bookmark-reorder-be/pkg/reorder"

	"github.com/google/uuid"
)

type IDragService interface {
	Begin(ctx context.Context, userId uuid.UUID, req *dto.BeginDragRequest) (*dto.BeginDragResponse, error)
	Pointer(req *dto.PointerSampleRequest) (*dto.DragStateResponse, error)
	Hover(req *dto.HoverRequest) (*dto.HoverResponse, error)
	Leave(req *dto.LeaveRequest) (*dto.DragStateResponse, error)
	Drop(ctx context.Context) (*dto.DropResponse, error)
	Cancel() (*dto.DragStateResponse, error)
	State() *dto.DragStateResponse
}

// DragService drives the reorder engine from transport-level requests. The
// in-memory collection is reloaded from the store at Begin so a session always
// starts from the persisted order.
type DragService struct {
	store      reorder.Store
	model      *reorder.Collection
	controller *reorder.Controller
	geometry   *memory.GeometryRepository
	logger     logger.ILogger
}

func NewDragService(
	store reorder.Store,
	model *reorder.Collection,
	controller *reorder.Controller,
	geometry *memory.GeometryRepository,
	log logger.ILogger,
) IDragService {
	return &DragService{
		store:      store,
		model:      model,
		controller: controller,
		geometry:   geometry,
		logger:     log,
	}
}

func (s *DragService) Begin(ctx context.Context, userId uuid.UUID, req *dto.BeginDragRequest) (*dto.BeginDragResponse, error) {
	nodes, err := s.store.GetTree(ctx, userId)
	if err != nil {
		s.logger.Error("drag_service", "failed to load tree for drag", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return nil, &reorder.StoreError{Op: "load tree", Err: err}
	}
	s.model.Load(nodes)

	node, ok := s.model.FindNode(req.NodeId)
	if !ok {
		return nil, &reorder.ValidationError{Field: "node_id", Reason: "bookmark does not exist"}
	}

	sessionId, err := s.controller.Begin(node, req.Origin)
	if err != nil {
		return nil, err
	}

	s.logger.Info("drag_service", "drag session started", map[string]interface{}{
		"session_id": sessionId.String(),
		"node_id":    node.Id.String(),
	})
	return &dto.BeginDragResponse{
		SessionId: sessionId,
		State:     string(s.controller.State()),
	}, nil
}

func (s *DragService) Pointer(req *dto.PointerSampleRequest) (*dto.DragStateResponse, error) {
	if err := s.controller.PointerMove(req.Pointer); err != nil {
		return nil, err
	}
	return s.State(), nil
}

func (s *DragService) Hover(req *dto.HoverRequest) (*dto.HoverResponse, error) {
	s.geometry.Save(&memory.ZoneGeometry{
		ContainerId: req.ContainerId,
		Bounds:      req.Bounds,
		ReportedAt:  time.Now(),
	})

	resolved := reorder.ResolveInsertionPoint(req.ContainerId, req.Pointer, req.Bounds)
	if err := s.controller.Hover(resolved); err != nil {
		return nil, err
	}
	return &dto.HoverResponse{
		Resolved: resolved,
		State:    string(s.controller.State()),
	}, nil
}

func (s *DragService) Leave(req *dto.LeaveRequest) (*dto.DragStateResponse, error) {
	s.geometry.Delete(req.ContainerId)
	if err := s.controller.Leave(); err != nil {
		return nil, err
	}
	return s.State(), nil
}

func (s *DragService) Drop(ctx context.Context) (*dto.DropResponse, error) {
	// The snapshot must be read before Drop clears the session.
	snapshot, hadSession := s.controller.Snapshot()

	result, err := s.controller.Drop(ctx)
	if err != nil {
		s.logger.Warn("drag_service", "drop failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	noOp := hadSession &&
		result.FinalParentId == snapshot.ParentId &&
		result.FinalIndex == snapshot.Index
	return &dto.DropResponse{
		FinalParentId: result.FinalParentId,
		FinalIndex:    result.FinalIndex,
		NoOp:          noOp,
	}, nil
}

func (s *DragService) Cancel() (*dto.DragStateResponse, error) {
	if err := s.controller.Cancel(); err != nil {
		return nil, err
	}
	return s.State(), nil
}

func (s *DragService) State() *dto.DragStateResponse {
	resp := &dto.DragStateResponse{
		State: string(s.controller.State()),
	}
	if id, ok := s.controller.ActiveSession(); ok {
		resp.SessionId = &id
	}
	return resp
}
