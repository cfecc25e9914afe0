package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"billdesk/internal/domain"
	"billdesk/internal/port"
)

// UserService covers admin-side user management.
type UserService interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, filters domain.UserFilters) ([]domain.User, int, error)
	ListAssignable(ctx context.Context) ([]domain.User, error)
	// ChangeRole enforces the single-admin invariant: promoting a second
	// user to admin fails with ErrAdminExists.
	ChangeRole(ctx context.Context, actorID, targetID uuid.UUID, role domain.UserRole) error
	ChangeStatus(ctx context.Context, targetID uuid.UUID, isActive bool) error
	// Delete refuses self-deletion and deletion of the only admin.
	Delete(ctx context.Context, actorID, targetID uuid.UUID) error
}

type userService struct {
	userRepo port.UserRepository
}

// NewUserService creates a new UserService implementation.
func NewUserService(userRepo port.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context, filters domain.UserFilters) ([]domain.User, int, error) {
	return s.userRepo.List(ctx, filters)
}

func (s *userService) ListAssignable(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListAssignable(ctx)
}

func (s *userService) ChangeRole(ctx context.Context, actorID, targetID uuid.UUID, role domain.UserRole) error {
	if !domain.ValidUserRoles[role] {
		return domain.ErrInvalidRole
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.Role == role {
		return nil
	}

	if role == domain.RoleAdmin {
		admins, err := s.userRepo.CountAdmins(ctx)
		if err != nil {
			return fmt.Errorf("user.ChangeRole: %w", err)
		}
		if admins > 0 {
			return domain.ErrAdminExists
		}
	}
	// Demoting the only admin would leave the system without one.
	if target.Role == domain.RoleAdmin {
		admins, err := s.userRepo.CountAdmins(ctx)
		if err != nil {
			return fmt.Errorf("user.ChangeRole: %w", err)
		}
		if admins <= 1 {
			return domain.ErrSoleAdmin
		}
	}

	return s.userRepo.UpdateRole(ctx, targetID, role)
}

func (s *userService) ChangeStatus(ctx context.Context, targetID uuid.UUID, isActive bool) error {
	return s.userRepo.UpdateStatus(ctx, targetID, isActive)
}

func (s *userService) Delete(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return domain.ErrSelfDeletion
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleAdmin {
		admins, err := s.userRepo.CountAdmins(ctx)
		if err != nil {
			return fmt.Errorf("user.Delete: %w", err)
		}
		if admins <= 1 {
			return domain.ErrSoleAdmin
		}
	}

	return s.userRepo.Delete(ctx, targetID)
}
