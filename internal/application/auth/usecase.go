package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/reconciliemos/cuentas-api/internal/application/dto"
	"github.com/reconciliemos/cuentas-api/internal/domain"
	"github.com/reconciliemos/cuentas-api/internal/domain/entity"
	"github.com/reconciliemos/cuentas-api/internal/domain/repository"
	"github.com/reconciliemos/cuentas-api/pkg/jwt"
	"github.com/reconciliemos/cuentas-api/pkg/logger"
	"github.com/reconciliemos/cuentas-api/pkg/password"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y cambio de contraseña propio.
type AuthUseCase struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
	log    *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{users: users, jwtCfg: jwtCfg, log: log}
}

// Login verifica email/password, genera el JWT y retorna token + proyección.
// Email desconocido y contraseña incorrecta producen el MISMO error hacia
// afuera (ErrCredencialesInvalidas) para no permitir enumerar cuentas; solo
// el nivel de log interno distingue los casos. La cuenta inactiva sí se
// reporta distinta: el usuario ya probó que conoce su email.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(strings.ToLower(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.log.Warn().Str("email", in.Email).Msg("login: email no registrado")
		return nil, domain.ErrCredencialesInvalidas
	}
	if !user.IsActive {
		uc.log.Warn().Str("user_id", user.ID).Msg("login: cuenta inactiva")
		return nil, domain.ErrCuentaInactiva
	}
	if err := password.Compare(in.Password, user.PasswordHash); err != nil {
		if err == password.ErrNoCoincide {
			uc.log.Debug().Str("user_id", user.ID).Msg("login: contraseña no coincide")
			return nil, domain.ErrCredencialesInvalidas
		}
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// ChangeOwnPassword verifica la contraseña actual y persiste la nueva.
func (uc *AuthUseCase) ChangeOwnPassword(userID, currentPassword, newPassword string) error {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUsuarioNoEncontrado
	}
	if err := password.Compare(currentPassword, user.PasswordHash); err != nil {
		if err == password.ErrNoCoincide {
			return domain.ErrNoAutorizado
		}
		return err
	}
	if err := password.ValidatePolicy(newPassword); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidacion, err)
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	return uc.users.Update(user)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Role:        u.Role,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Cedula:      u.Cedula,
		PhoneNumber: u.PhoneNumber,
		NumeroSicac: u.NumeroSicac,
		IsActive:    u.IsActive,
		PictureURL:  u.PictureURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
