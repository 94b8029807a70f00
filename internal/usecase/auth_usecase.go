package usecase

import (
	"context"
	"time"

	"graduate-showcase-backend/internal/domain"
	"graduate-showcase-backend/pkg/apperror"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

// EnsureUserExists mirrors an identity-provider account into the local
// users table on first contact, syncing the role on later calls.
func (u *authUsecase) EnsureUserExists(ctx context.Context, user *domain.User) error {
	existing, err := u.userRepo.GetByID(ctx, user.ID)
	if existing != nil && err == nil {
		if user.Role != "" && existing.Role != user.Role {
			existing.Role = user.Role
			existing.UpdatedAt = time.Now()
			return u.userRepo.Update(ctx, existing)
		}
		return nil
	}

	if user.Role == "" {
		user.Role = domain.RoleGraduate
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return u.userRepo.Create(ctx, user)
}

// AssignRole promotes or demotes an account. Admin-only.
func (u *authUsecase) AssignRole(ctx context.Context, userID string, role string) error {
	if err := requireAdmin(ctx); err != nil {
		return apperror.Forbidden("Only admins can assign roles")
	}
	if role != domain.RoleGraduate && role != domain.RoleAdmin {
		return apperror.BadRequest("Unknown role: " + role)
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("User not found")
	}

	user.Role = role
	user.UpdatedAt = time.Now()
	return u.userRepo.Update(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}
