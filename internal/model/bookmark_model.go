package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Bookmark struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ParentId  *uuid.UUID     `gorm:"type:uuid;index:idx_bookmarks_parent_position,priority:1"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Kind      string         `gorm:"type:varchar(16);not null"`
	Position  int            `gorm:"not null;index:idx_bookmarks_parent_position,priority:2"`
	Title     string         `gorm:"type:varchar(255);not null"`
	Url       *string        `gorm:"type:text"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
