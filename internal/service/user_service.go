package service

import (
	"context"
	"fmt"
	"strings"

	"recruitment-service/internal/domain"
	"recruitment-service/internal/my_errors"
)

type UserService struct {
	userRepo UserRepository
}

func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// RegisterSelf upserts the caller into the directory with the roles carried by
// their identity, so captains can resolve them as invite targets.
func (s *UserService) RegisterSelf(ctx context.Context, caller domain.Identity, fullName string) (*domain.User, error) {
	if caller.UserID == "" {
		return nil, fmt.Errorf("user_id: %w", my_errors.ErrEmptyField)
	}

	user := &domain.User{
		UserID:   caller.UserID,
		FullName: strings.TrimSpace(fullName),
		Roles:    caller.Roles,
		IsActive: true,
	}
	if err := s.userRepo.CreateOrUpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return s.userRepo.GetUserByID(ctx, caller.UserID)
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id: %w", my_errors.ErrEmptyField)
	}
	return s.userRepo.GetUserByID(ctx, userID)
}
