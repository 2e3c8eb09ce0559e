package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/MedStock-api/internal/application/dto"
	"github.com/jhoicas/MedStock-api/internal/domain"
	"github.com/jhoicas/MedStock-api/internal/domain/entity"
	"github.com/jhoicas/MedStock-api/internal/domain/repository"
	"github.com/jhoicas/MedStock-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase proveedor de identidad: registro, login, logout y principal actual.
// La sede del principal se valida contra el conjunto fijo de sedes permitidas.
type AuthUseCase struct {
	userRepo repository.UserRepository
	sites    *entity.SiteSet
	denylist *Denylist
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sites *entity.SiteSet, denylist *Denylist, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sites: sites, denylist: denylist, jwtCfg: jwtCfg}
}

// SignUp crea un usuario: valida la sede, hashea password con bcrypt y persiste.
// El primer usuario de una sede queda como admin; el resto como staff.
func (uc *AuthUseCase) SignUp(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	if !uc.sites.Contains(in.SiteID) {
		return nil, domain.ErrUnknownSite
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	count, err := uc.userRepo.CountBySite(ctx, in.SiteID)
	if err != nil {
		return nil, err
	}
	role := entity.RoleStaff
	if count == 0 {
		role = entity.RoleAdmin
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		SiteID:       in.SiteID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// SignIn verifica email/password y que la sede elegida coincida con la de la cuenta; genera JWT.
func (uc *AuthUseCase) SignIn(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if !uc.sites.Contains(in.SiteID) {
		return nil, domain.ErrUnknownSite
	}
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	if user.SiteID != in.SiteID {
		return nil, domain.ErrSiteMismatch
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.SiteID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      *toUserResponse(user),
	}, nil
}

// SignOut revoca el token (jti) hasta su expiración.
func (uc *AuthUseCase) SignOut(tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return domain.ErrInvalidInput
	}
	uc.denylist.Revoke(tokenID, expiresAt)
	return nil
}

// IsRevoked indica si el token fue cerrado con SignOut.
func (uc *AuthUseCase) IsRevoked(tokenID string) bool {
	return uc.denylist.IsRevoked(tokenID)
}

// CurrentPrincipal devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) CurrentPrincipal(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// Sites lista las sedes permitidas (pantalla de login).
func (uc *AuthUseCase) Sites() []dto.SiteResponse {
	list := uc.sites.List()
	out := make([]dto.SiteResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SiteResponse{ID: s.ID, Name: s.Name})
	}
	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		SiteID:    u.SiteID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
