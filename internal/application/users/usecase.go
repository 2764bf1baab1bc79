package users

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// UseCase administración de cuentas de usuario.
type UseCase struct {
	userRepo repository.UserRepository
}

// NewUseCase crea el caso de uso de usuarios.
func NewUseCase(userRepo repository.UserRepository) *UseCase {
	return &UseCase{userRepo: userRepo}
}

// List todos los usuarios del sistema.
func (uc *UseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, dto.UserResponse{
			ID:        u.ID,
			Username:  u.Username,
			Role:      u.Role,
			Active:    u.Active,
			CreatedAt: u.CreatedAt,
		})
	}
	return resp, nil
}

// ToggleActive activa o desactiva una cuenta. Nadie se desactiva a sí mismo.
func (uc *UseCase) ToggleActive(ctx context.Context, targetID, actorID string) (*dto.UserResponse, error) {
	if targetID == actorID {
		return nil, domain.ErrForbidden
	}

	user, err := uc.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	user.Active = !user.Active
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}

	return userResponse(user), nil
}

// ToggleRole alterna entre admin y empleado. Nadie cambia su propio rol, y el
// último admin del sistema no puede ser degradado.
func (uc *UseCase) ToggleRole(ctx context.Context, targetID, actorID string) (*dto.UserResponse, error) {
	if targetID == actorID {
		return nil, domain.ErrForbidden
	}

	user, err := uc.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if user.Role == entity.RoleAdmin {
		admins, err := uc.userRepo.CountAdmins()
		if err != nil {
			return nil, err
		}
		if admins <= 1 {
			return nil, domain.ErrLastAdmin
		}
		user.Role = entity.RoleEmpleado
	} else {
		user.Role = entity.RoleAdmin
	}

	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}

	return userResponse(user), nil
}

// ResetPassword asigna una contraseña nueva a otra cuenta.
func (uc *UseCase) ResetPassword(ctx context.Context, targetID, newPassword string) error {
	if len(newPassword) < 4 {
		return domain.ErrInvalidInput
	}

	user, err := uc.userRepo.GetByID(targetID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

func userResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}
