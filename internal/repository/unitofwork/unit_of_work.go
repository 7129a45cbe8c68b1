package unitofwork

import (
	"context"

	"bookmark-reorder-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	BookmarkRepository() contract.BookmarkRepository
	UserRepository() contract.UserRepository
}
