package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
	"github.com/jhoicas/Caja-api/pkg/jwt"
)

// TokenConfig parámetros de emisión de tokens.
type TokenConfig struct {
	Secret            string
	Issuer            string
	ExpirationMinutes int
}

// UseCase autenticación y registro de usuarios.
type UseCase struct {
	userRepo repository.UserRepository
	tokens   TokenConfig
}

// NewUseCase crea el caso de uso de autenticación.
func NewUseCase(userRepo repository.UserRepository, tokens TokenConfig) *UseCase {
	return &UseCase{userRepo: userRepo, tokens: tokens}
}

// Login valida credenciales y emite un JWT. Las cuentas desactivadas no
// pueden entrar.
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.tokens.Secret, user.ID, user.Username, user.Role,
		uc.tokens.Issuer, uc.tokens.ExpirationMinutes)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// Register crea un usuario. El primer usuario del sistema se crea sin
// autenticación y siempre queda como admin; a partir de ahí solo un admin
// puede registrar (la capa HTTP resuelve actorIsAdmin desde el token).
func (uc *UseCase) Register(ctx context.Context, req dto.RegisterRequest, actorIsAdmin bool) (*dto.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || len(req.Password) < 4 {
		return nil, domain.ErrInvalidInput
	}

	role := req.Role
	if role == "" {
		role = entity.RoleEmpleado
	}
	if role != entity.RoleAdmin && role != entity.RoleEmpleado {
		return nil, domain.ErrInvalidInput
	}

	count, err := uc.userRepo.Count()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		role = entity.RoleAdmin
	} else if !actorIsAdmin {
		return nil, domain.ErrForbidden
	}

	existing, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Join(domain.ErrInternal, err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}
