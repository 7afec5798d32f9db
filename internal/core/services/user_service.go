package services

import (
	"context"

	"revendapro/internal/adapters/persistence/models"
	"revendapro/internal/adapters/persistence/repositories"
	"revendapro/internal/core/domain"
	"revendapro/internal/pkg/pagination"
	"revendapro/internal/pkg/password"
)

// UserService handles user administration
type UserService struct {
	userRepo *repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateUserRequest is the payload for user updates
type UpdateUserRequest struct {
	Email    *string      `json:"email"`
	Password *string      `json:"password"`
	Role     *domain.Role `json:"role"`
	IsActive *bool        `json:"is_active"`
}

// List returns a page of users
func (s *UserService) List(ctx context.Context, params *pagination.Params) (*pagination.Page, error) {
	users, total, err := s.userRepo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	return pagination.NewPage(responses, params, total), nil
}

// GetByID returns a single user
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return user.ToResponse(), nil
}

// Update modifies a user account
func (s *UserService) Update(ctx context.Context, id uint, req *UpdateUserRequest) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := password.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if req.Role != nil {
		if !req.Role.IsValid() {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// Delete soft-deletes a user. The last active admin cannot be removed.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return domain.ErrNotFound
	}

	if user.Role == domain.RoleAdmin {
		admins, err := s.userRepo.CountByRole(ctx, string(domain.RoleAdmin))
		if err != nil {
			return err
		}
		if admins <= 1 {
			return domain.ErrForbidden
		}
	}

	return s.userRepo.Delete(ctx, id)
}
