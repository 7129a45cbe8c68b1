package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"bookmark-reorder-be/internal/entity"
	"bookmark-reorder-be/internal/repository/specification"
	"bookmark-reorder-be/internal/repository/unitofwork"
	"bookmark-reorder-be/internal/service"
	"bookmark-reorder-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.BookmarkRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Bookmark Repository", func(t *testing.T) {
		count, err := uow.BookmarkRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Bookmark count: %d", count)
	})
}

func TestBookmarkStoreMove(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(ctx)

	// Seed one user with a root container and three items.
	userId := uuid.New()
	require.NoError(t, uow.UserRepository().Create(ctx, &entity.User{
		Id:       userId,
		Email:    uuid.NewString() + "@test.local",
		Password: "irrelevant",
		Name:     "Store Move Test",
	}))
	defer uow.UserRepository().Delete(ctx, userId)

	root := &entity.Bookmark{Id: uuid.New(), UserId: userId, Kind: entity.BookmarkKindContainer, Title: "root"}
	require.NoError(t, uow.BookmarkRepository().Create(ctx, root))
	defer uow.BookmarkRepository().Delete(ctx, root.Id)

	items := make([]*entity.Bookmark, 3)
	for i := range items {
		items[i] = &entity.Bookmark{
			Id:       uuid.New(),
			ParentId: &root.Id,
			UserId:   userId,
			Kind:     entity.BookmarkKindItem,
			Position: i,
			Title:    []string{"A", "B", "C"}[i],
		}
		require.NoError(t, uow.BookmarkRepository().Create(ctx, items[i]))
		defer uow.BookmarkRepository().Delete(ctx, items[i].Id)
	}

	store := service.NewBookmarkStore(uowFactory)

	// Move A to the end of the same container.
	result, err := store.Move(ctx, items[0].Id, root.Id, 2)
	require.NoError(t, err)
	assert.Equal(t, root.Id, result.FinalParentId)
	assert.Equal(t, 2, result.FinalIndex)

	// Verify the persisted order is B, C, A with contiguous positions.
	siblings, err := uow.BookmarkRepository().FindAll(ctx,
		specification.ByParentID{ParentID: &root.Id},
		specification.OrderByPosition{},
	)
	require.NoError(t, err)
	require.Len(t, siblings, 3)
	assert.Equal(t, []string{"B", "C", "A"}, []string{siblings[0].Title, siblings[1].Title, siblings[2].Title})
	for i, s := range siblings {
		assert.Equal(t, i, s.Position)
	}

	// GetTree reports the same order through the engine's port.
	nodes, err := store.GetTree(ctx, userId)
	require.NoError(t, err)
	assert.Len(t, nodes, 4) // root plus three items
}
