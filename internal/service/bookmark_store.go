package service

import (
	"context"
	"fmt"

	"bookmark-reorder-be/internal/entity"
	"bookmark-reorder-be/internal/repository/specification"
	"bookmark-reorder-be/internal/repository/unitofwork"
	"bookmark-reorder-be/pkg/reorder"

	"github.com/google/uuid"
)

// bookmarkStore adapts the GORM repositories to the reorder engine's store
// port. Move re-indexes both affected sibling ranges inside one transaction
// and reports the authoritative final position, with the index clamped into
// the target's valid range.
type bookmarkStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewBookmarkStore(uowFactory unitofwork.RepositoryFactory) reorder.Store {
	return &bookmarkStore{
		uowFactory: uowFactory,
	}
}

func (s *bookmarkStore) GetTree(ctx context.Context, ownerId uuid.UUID) ([]reorder.Node, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bookmarks, err := uow.BookmarkRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: ownerId},
		specification.OrderByPosition{},
	)
	if err != nil {
		return nil, err
	}

	nodes := make([]reorder.Node, 0, len(bookmarks))
	for _, b := range bookmarks {
		nodes = append(nodes, toNode(b))
	}
	return nodes, nil
}

func (s *bookmarkStore) Move(ctx context.Context, nodeId uuid.UUID, parentId uuid.UUID, index int) (*reorder.MoveResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.BookmarkRepository()

	node, err := repo.FindOne(ctx, specification.ByID{ID: nodeId})
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, fmt.Errorf("bookmark %s not found", nodeId)
	}

	parent, err := repo.FindOne(ctx,
		specification.ByID{ID: parentId},
		specification.UserOwnedBy{UserID: node.UserId},
	)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, fmt.Errorf("target container %s not found", parentId)
	}
	if !parent.IsContainer() {
		return nil, fmt.Errorf("target %s is not a container", parentId)
	}

	// Target order without the moved node; for a same-container move this is
	// the post-removal list the index was adjusted for.
	targetSiblings, err := repo.FindAll(ctx,
		specification.ByParentID{ParentID: &parentId},
		specification.OrderByPosition{},
	)
	if err != nil {
		return nil, err
	}
	target := make([]*entity.Bookmark, 0, len(targetSiblings))
	for _, sibling := range targetSiblings {
		if sibling.Id != node.Id {
			target = append(target, sibling)
		}
	}

	if index < 0 {
		index = 0
	}
	if index > len(target) {
		index = len(target)
	}

	sameParent := node.ParentId != nil && *node.ParentId == parentId

	// Close the gap left behind in the source container.
	if !sameParent && node.ParentId != nil {
		sourceSiblings, err := repo.FindAll(ctx,
			specification.ByParentID{ParentID: node.ParentId},
			specification.OrderByPosition{},
		)
		if err != nil {
			return nil, err
		}
		position := 0
		for _, sibling := range sourceSiblings {
			if sibling.Id == node.Id {
				continue
			}
			if sibling.Position != position {
				sibling.Position = position
				if err := repo.Update(ctx, sibling); err != nil {
					return nil, err
				}
			}
			position++
		}
	}

	node.ParentId = &parentId
	node.Position = index
	if err := repo.Update(ctx, node); err != nil {
		return nil, err
	}

	for i, sibling := range target {
		position := i
		if i >= index {
			position = i + 1
		}
		if sibling.Position != position {
			sibling.Position = position
			if err := repo.Update(ctx, sibling); err != nil {
				return nil, err
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &reorder.MoveResult{
		FinalParentId: parentId,
		FinalIndex:    index,
	}, nil
}

func toNode(b *entity.Bookmark) reorder.Node {
	var url string
	if b.Url != nil {
		url = *b.Url
	}
	kind := reorder.KindItem
	if b.IsContainer() {
		kind = reorder.KindContainer
	}
	return reorder.Node{
		Id:       b.Id,
		ParentId: b.ParentId,
		Kind:     kind,
		Index:    b.Position,
		Title:    b.Title,
		Url:      url,
	}
}
