package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmrconsultoria/portal-os/internal/application/dto"
	"github.com/mmrconsultoria/portal-os/internal/domain"
	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
	"github.com/mmrconsultoria/portal-os/internal/domain/repository"
	"github.com/mmrconsultoria/portal-os/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

const statusActive = "active"

// AuthUseCase casos de uso de autenticación: alta de usuarios, login e identidad.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// CreateUser hashea el password con bcrypt y persiste. ErrUserExists si el usuario ya existe en la empresa.
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	in.CompanyCode = strings.TrimSpace(in.CompanyCode)
	in.Username = strings.TrimSpace(in.Username)
	if in.Role == "" {
		in.Role = entity.RoleBasic
	}

	var problems []string
	if in.CompanyCode == "" {
		problems = append(problems, "código da empresa obrigatório")
	}
	if in.Username == "" {
		problems = append(problems, "usuário obrigatório")
	}
	if len(in.Password) < 6 {
		problems = append(problems, "senha deve ter ao menos 6 caracteres")
	}
	if !entity.ValidRole(in.Role) {
		problems = append(problems, "perfil deve ser admin ou basic")
	}
	if len(problems) > 0 {
		return nil, &domain.ValidationError{Problems: problems}
	}

	existing, err := uc.userRepo.GetByLogin(ctx, in.CompanyCode, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyCode:  in.CompanyCode,
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         in.Role,
		Status:       statusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica empresa/usuario/password, genera JWT y retorna token + usuario.
// Usuario inexistente y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	company := strings.TrimSpace(in.CompanyCode)
	username := strings.TrimSpace(in.Username)
	if company == "" || username == "" || in.Password == "" {
		return nil, &domain.ValidationError{Problems: []string{"preencha empresa, usuário e senha"}}
	}

	user, err := uc.userRepo.GetByLogin(ctx, company, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != statusActive {
		return nil, domain.ErrForbidden
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Identity{
		UserID:      user.ID,
		CompanyCode: user.CompanyCode,
		Username:    user.Username,
		Role:        user.Role,
		Tabs:        entity.TabsForRole(user.Role),
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Me devuelve la identidad de la sesión a partir de los claims ya validados.
func (uc *AuthUseCase) Me(id jwt.Identity) dto.MeResponse {
	tabs := id.Tabs
	if len(tabs) == 0 {
		tabs = entity.TabsForRole(id.Role)
	}
	return dto.MeResponse{
		UserID:      id.UserID,
		CompanyCode: id.CompanyCode,
		Username:    id.Username,
		Role:        id.Role,
		Tabs:        tabs,
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		CompanyCode: u.CompanyCode,
		Username:    u.Username,
		Role:        u.Role,
		Tabs:        entity.TabsForRole(u.Role),
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
	}
}
