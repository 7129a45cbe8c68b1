package mapper

import (
	"time"

	"bookmark-reorder-be/internal/entity"
	"bookmark-reorder-be/internal/model"

	"gorm.io/gorm"
)

type BookmarkMapper struct{}

func NewBookmarkMapper() *BookmarkMapper {
	return &BookmarkMapper{}
}

func (m *BookmarkMapper) ToEntity(b *model.Bookmark) *entity.Bookmark {
	if b == nil {
		return nil
	}

	var deletedAt *time.Time
	if b.DeletedAt.Valid {
		t := b.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !b.UpdatedAt.IsZero() {
		t := b.UpdatedAt
		updatedAt = &t
	}

	return &entity.Bookmark{
		Id:        b.Id,
		ParentId:  b.ParentId,
		UserId:    b.UserId,
		Kind:      b.Kind,
		Position:  b.Position,
		Title:     b.Title,
		Url:       b.Url,
		CreatedAt: b.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: b.DeletedAt.Valid,
	}
}

func (m *BookmarkMapper) ToModel(b *entity.Bookmark) *model.Bookmark {
	if b == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if b.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *b.DeletedAt, Valid: true}
	} else if b.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if b.UpdatedAt != nil {
		updatedAt = *b.UpdatedAt
	}

	return &model.Bookmark{
		Id:        b.Id,
		ParentId:  b.ParentId,
		UserId:    b.UserId,
		Kind:      b.Kind,
		Position:  b.Position,
		Title:     b.Title,
		Url:       b.Url,
		CreatedAt: b.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *BookmarkMapper) ToEntities(bookmarks []*model.Bookmark) []*entity.Bookmark {
	entities := make([]*entity.Bookmark, len(bookmarks))
	for i, b := range bookmarks {
		entities[i] = m.ToEntity(b)
	}
	return entities
}
