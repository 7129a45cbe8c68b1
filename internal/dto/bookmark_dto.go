package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookmarkRequest struct {
	ParentId *uuid.UUID `json:"parent_id"`
	Kind     string     `json:"kind" validate:"required,oneof=container item"`
	Title    string     `json:"title" validate:"required"`
	Url      *string    `json:"url" validate:"omitempty,url"`
}

type CreateBookmarkResponse struct {
	Id       uuid.UUID `json:"id"`
	Position int       `json:"position"`
}

type BookmarkNode struct {
	Id        uuid.UUID       `json:"id"`
	ParentId  *uuid.UUID      `json:"parent_id"`
	Kind      string          `json:"kind"`
	Position  int             `json:"position"`
	Title     string          `json:"title"`
	Url       *string         `json:"url,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at"`
	Children  []*BookmarkNode `json:"children,omitempty"`
}

type GetTreeResponse struct {
	Root *BookmarkNode `json:"root"`
}

type MoveBookmarkRequest struct {
	Id       uuid.UUID
	ParentId uuid.UUID `json:"parent_id" validate:"required"`
	Index    int       `json:"index" validate:"min=0"`
}

type MoveBookmarkResponse struct {
	Id          uuid.UUID `json:"id"`
	FinalParent uuid.UUID `json:"final_parent_id"`
	FinalIndex  int       `json:"final_index"`
}
