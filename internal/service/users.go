package service

import (
	"context"

	"swish-api/internal/models"
	"swish-api/internal/repository"
)

// UserService handles business logic for user accounts
type UserService struct {
	repo *repository.Repository
}

// NewUserService creates a new user service
func NewUserService(repo *repository.Repository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// CreateUser registers a new user. Quick play: no password is required, and
// no verification flow exists. The password is stored as received.
func (s *UserService) CreateUser(ctx context.Context, req *models.UserCreateRequest) (*models.User, error) {
	user := &models.User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: req.Password,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.GetUser(ctx, id)
}

// GetUserByUsername retrieves a user by exact username match
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repo.GetUserByUsername(ctx, username)
}

// GetUserStats retrieves the stats summary for a user
func (s *UserService) GetUserStats(ctx context.Context, id uint) (*models.UserStats, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	stats := user.Stats()
	return &stats, nil
}
