package service

import (
	"context"
	"fmt"
	"time"

	"bookmark-reorder-be/internal/dto"
	"bookmark-reorder-be/internal/entity"
	"bookmark-reorder-be/internal/pkg/logger"
	"bookmark-reorder-be/internal/repository/specification"
	"bookmark-reorder-be/internal/repository/unitofwork"
	"bookmark-reorder-be/pkg/reorder"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBookmarkService interface {
	GetTree(ctx context.Context, userId uuid.UUID) (*dto.GetTreeResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateBookmarkRequest) (*dto.CreateBookmarkResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, bookmarkId uuid.UUID) error
	Move(ctx context.Context, userId uuid.UUID, req *dto.MoveBookmarkRequest) (*dto.MoveBookmarkResponse, error)
}

type BookmarkService struct {
	uowFactory unitofwork.RepositoryFactory
	store      reorder.Store
	logger     logger.ILogger
}

func NewBookmarkService(uowFactory unitofwork.RepositoryFactory, store reorder.Store, log logger.ILogger) IBookmarkService {
	return &BookmarkService{
		uowFactory: uowFactory,
		store:      store,
		logger:     log,
	}
}

func (s *BookmarkService) GetTree(ctx context.Context, userId uuid.UUID) (*dto.GetTreeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bookmarks, err := uow.BookmarkRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderByPosition{},
	)
	if err != nil {
		return nil, err
	}

	byParent := make(map[uuid.UUID][]*entity.Bookmark)
	var root *entity.Bookmark
	for _, b := range bookmarks {
		if b.ParentId == nil {
			root = b
			continue
		}
		byParent[*b.ParentId] = append(byParent[*b.ParentId], b)
	}
	if root == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "root container not found")
	}

	return &dto.GetTreeResponse{Root: buildNode(root, byParent)}, nil
}

func buildNode(b *entity.Bookmark, byParent map[uuid.UUID][]*entity.Bookmark) *dto.BookmarkNode {
	node := &dto.BookmarkNode{
		Id:        b.Id,
		ParentId:  b.ParentId,
		Kind:      b.Kind,
		Position:  b.Position,
		Title:     b.Title,
		Url:       b.Url,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	for _, child := range byParent[b.Id] {
		node.Children = append(node.Children, buildNode(child, byParent))
	}
	return node
}

func (s *BookmarkService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateBookmarkRequest) (*dto.CreateBookmarkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.BookmarkRepository()

	parentId := req.ParentId
	if parentId == nil {
		root, err := repo.FindOne(ctx,
			specification.UserOwnedBy{UserID: userId},
			specification.ByParentID{ParentID: nil},
		)
		if err != nil {
			return nil, err
		}
		if root == nil {
			return nil, fiber.NewError(fiber.StatusNotFound, "root container not found")
		}
		parentId = &root.Id
	} else {
		parent, err := repo.FindOne(ctx,
			specification.ByID{ID: *parentId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fiber.NewError(fiber.StatusNotFound, "parent container not found")
		}
		if !parent.IsContainer() {
			return nil, fiber.NewError(fiber.StatusBadRequest, "parent is not a container")
		}
	}

	// New children append after existing siblings.
	count, err := repo.Count(ctx, specification.ByParentID{ParentID: parentId})
	if err != nil {
		return nil, err
	}

	bookmark := &entity.Bookmark{
		Id:        uuid.New(),
		ParentId:  parentId,
		UserId:    userId,
		Kind:      req.Kind,
		Position:  int(count),
		Title:     req.Title,
		Url:       req.Url,
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, bookmark); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("bookmark_service", "bookmark created", map[string]interface{}{
		"bookmark_id": bookmark.Id.String(),
		"kind":        bookmark.Kind,
	})
	return &dto.CreateBookmarkResponse{
		Id:       bookmark.Id,
		Position: bookmark.Position,
	}, nil
}

func (s *BookmarkService) Delete(ctx context.Context, userId uuid.UUID, bookmarkId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	repo := uow.BookmarkRepository()

	bookmark, err := repo.FindOne(ctx,
		specification.ByID{ID: bookmarkId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if bookmark == nil {
		return fiber.NewError(fiber.StatusNotFound, "bookmark not found")
	}
	if bookmark.ParentId == nil {
		return fiber.NewError(fiber.StatusBadRequest, "the root container cannot be deleted")
	}

	if err := s.deleteSubtree(ctx, uow, bookmark); err != nil {
		return err
	}

	// Close the position gap among the remaining siblings.
	siblings, err := repo.FindAll(ctx,
		specification.ByParentID{ParentID: bookmark.ParentId},
		specification.OrderByPosition{},
	)
	if err != nil {
		return err
	}
	position := 0
	for _, sibling := range siblings {
		if sibling.Id == bookmark.Id {
			continue
		}
		if sibling.Position != position {
			sibling.Position = position
			if err := repo.Update(ctx, sibling); err != nil {
				return err
			}
		}
		position++
	}

	return uow.Commit()
}

func (s *BookmarkService) deleteSubtree(ctx context.Context, uow unitofwork.UnitOfWork, bookmark *entity.Bookmark) error {
	repo := uow.BookmarkRepository()

	if bookmark.IsContainer() {
		children, err := repo.FindAll(ctx, specification.ByParentID{ParentID: &bookmark.Id})
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := s.deleteSubtree(ctx, uow, child); err != nil {
				return err
			}
		}
	}
	return repo.Delete(ctx, bookmark.Id)
}

// Move is the direct, non-drag move path: it validates ownership and then
// delegates to the same store the drag executor uses.
func (s *BookmarkService) Move(ctx context.Context, userId uuid.UUID, req *dto.MoveBookmarkRequest) (*dto.MoveBookmarkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bookmark, err := uow.BookmarkRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if bookmark == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "bookmark not found")
	}
	if bookmark.ParentId == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "the root container cannot be moved")
	}
	if req.ParentId == bookmark.Id {
		return nil, fiber.NewError(fiber.StatusBadRequest, "a container cannot be moved into itself")
	}

	result, err := s.store.Move(ctx, req.Id, req.ParentId, req.Index)
	if err != nil {
		return nil, fmt.Errorf("move bookmark %s: %w", req.Id, err)
	}

	return &dto.MoveBookmarkResponse{
		Id:          req.Id,
		FinalParent: result.FinalParentId,
		FinalIndex:  result.FinalIndex,
	}, nil
}
