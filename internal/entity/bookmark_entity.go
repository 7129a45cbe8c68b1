package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookmarkKindContainer = "container"
	BookmarkKindItem      = "item"
)

type Bookmark struct {
	Id        uuid.UUID
	ParentId  *uuid.UUID
	UserId    uuid.UUID
	Kind      string
	Position  int
	Title     string
	Url       *string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

func (b *Bookmark) IsContainer() bool {
	return b.Kind == BookmarkKindContainer
}
