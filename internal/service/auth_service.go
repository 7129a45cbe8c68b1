package service

import (
	"context"
	"time"

	"bookmark-reorder-be/internal/dto"
	"bookmark-reorder-be/internal/entity"
	"bookmark-reorder-be/internal/pkg/logger"
	"bookmark-reorder-be/internal/repository/specification"
	"bookmark-reorder-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type AuthService struct {
	uowFactory unitofwork.RepositoryFactory
	jwtSecret  string
	logger     logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, jwtSecret string, log logger.ILogger) IAuthService {
	return &AuthService{
		uowFactory: uowFactory,
		jwtSecret:  jwtSecret,
		logger:     log,
	}
}

// Register creates the user and their root container in one transaction, so
// every account starts with a valid tree.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	existing, err := uow.UserRepository().FindOne(ctx, specification.FilterBy{Field: "email", Value: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fiber.NewError(fiber.StatusConflict, "email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:        uuid.New(),
		Email:     req.Email,
		Password:  string(hashed),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	root := &entity.Bookmark{
		Id:        uuid.New(),
		ParentId:  nil,
		UserId:    user.Id,
		Kind:      entity.BookmarkKindContainer,
		Position:  0,
		Title:     "Bookmarks",
		CreatedAt: time.Now(),
	}
	if err := uow.BookmarkRepository().Create(ctx, root); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("auth_service", "user registered", map[string]interface{}{
		"user_id": user.Id.String(),
	})
	return &dto.RegisterResponse{Id: user.Id}, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.FilterBy{Field: "email", Value: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.Id.String(),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{Token: signed}, nil
}
