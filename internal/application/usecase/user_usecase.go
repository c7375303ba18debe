package usecase

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reconciliemos/cuentas-api/internal/application/dto"
	"github.com/reconciliemos/cuentas-api/internal/domain"
	"github.com/reconciliemos/cuentas-api/internal/domain/entity"
	"github.com/reconciliemos/cuentas-api/internal/domain/repository"
	"github.com/reconciliemos/cuentas-api/pkg/logger"
	"github.com/reconciliemos/cuentas-api/pkg/password"
)

// emailRegexp formato de email aceptado (mismo patrón del resto de la plataforma).
var emailRegexp = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// notifyTimeout tope para el envío del correo de bienvenida (fire-and-forget).
const notifyTimeout = 10 * time.Second

// UserUseCase reglas de negocio de cuentas: creación y gestión por admin,
// y foto de perfil. Los cambios de contraseña propios viven en auth.
type UserUseCase struct {
	repo   repository.UserRepository
	mailer Mailer
	files  FileStore
	log    *logger.Logger
	mail   WelcomeMailConfig
}

// NewUserUseCase construye el caso de uso con sus colaboradores externos.
func NewUserUseCase(repo repository.UserRepository, mailer Mailer, files FileStore, log *logger.Logger, mail WelcomeMailConfig) *UserUseCase {
	return &UserUseCase{repo: repo, mailer: mailer, files: files, log: log, mail: mail}
}

// Create crea una cuenta activa (sin flujo de activación) y dispara el correo
// informativo con la contraseña asignada. El correo es best-effort: su fallo
// se registra pero la cuenta ya quedó creada.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" || in.Role == "" || in.FirstName == "" || in.LastName == "" || in.Cedula == "" {
		return nil, fmt.Errorf("%w: email, contraseña, rol, nombre, apellidos y cédula son requeridos", domain.ErrValidacion)
	}
	if in.Role != entity.RoleConciliador && in.Role != entity.RoleTercero {
		return nil, fmt.Errorf("%w: solo se pueden crear roles de conciliador o tercero", domain.ErrValidacion)
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: correo electrónico inválido", domain.ErrValidacion)
	}
	if err := password.ValidatePolicy(in.Password); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidacion, err)
	}

	sicac, err := entity.NormalizeSicac(in.Role, strings.TrimSpace(in.NumeroSicac))
	if err != nil {
		return nil, err
	}

	if existing, err := uc.repo.GetByEmail(email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: el correo electrónico ya está registrado", domain.ErrConflicto)
	}
	if existing, err := uc.repo.GetByCedula(in.Cedula); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: el número de cédula ya está registrado", domain.ErrConflicto)
	}
	if sicac != "" {
		if existing, err := uc.repo.GetByNumeroSicac(sicac, ""); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, fmt.Errorf("%w: el número SICAAC ya está registrado para otro conciliador", domain.ErrConflicto)
		}
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Cedula:       in.Cedula,
		PhoneNumber:  in.PhoneNumber,
		NumeroSicac:  sicac,
		IsActive:     true, // activa de inmediato, creada por admin
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}

	// Correo informativo con las credenciales, fuera del camino crítico.
	// La contraseña viaja en texto plano una única vez, como notificación
	// out-of-band; nunca se registra en logs.
	go uc.sendWelcome(user, in.Password)

	return toUserResponse(user), nil
}

func (uc *UserUseCase) sendWelcome(user *entity.User, plainPassword string) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	subject := fmt.Sprintf("Bienvenido a %s - Su cuenta de %s ha sido creada y activada", uc.mail.SiteName, user.Role)
	body, err := uc.mail.render(user, plainPassword)
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("correo de bienvenida: generar cuerpo")
		return
	}
	if err := uc.mailer.Send(ctx, user.Email, subject, body); err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("correo de bienvenida: envío falló, la cuenta ya fue creada")
	}
}

// GetByID obtiene la proyección de una cuenta.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUsuarioNoEncontrado
	}
	return toUserResponse(user), nil
}

// Update aplica una actualización parcial por admin. Cualquier campo de
// contraseña en el payload ya fue descartado (el DTO no lo tiene); email y
// cédula solo se re-verifican si cambian; el invariante SICAAC se aplica en
// cada transición de rol.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUsuarioNoEncontrado
	}

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != user.Email {
			if !emailRegexp.MatchString(email) {
				return nil, fmt.Errorf("%w: correo electrónico inválido", domain.ErrValidacion)
			}
			if existing, err := uc.repo.GetByEmail(email); err != nil {
				return nil, err
			} else if existing != nil && existing.ID != id {
				return nil, fmt.Errorf("%w: el nuevo correo electrónico ya está en uso por otro usuario", domain.ErrConflicto)
			}
			user.Email = email
		}
	}
	if in.Cedula != nil && *in.Cedula != user.Cedula {
		if *in.Cedula == "" {
			return nil, fmt.Errorf("%w: el número de cédula es obligatorio", domain.ErrValidacion)
		}
		if existing, err := uc.repo.GetByCedula(*in.Cedula); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != id {
			return nil, fmt.Errorf("%w: el número de cédula ya está en uso por otro usuario", domain.ErrConflicto)
		}
		user.Cedula = *in.Cedula
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, fmt.Errorf("%w: rol inválido", domain.ErrValidacion)
		}
		user.Role = *in.Role
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = *in.PhoneNumber
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	// Invariante SICAAC sobre el rol final. Para conciliadores se acepta el
	// valor enviado o se retiene el existente; para el resto se limpia
	// siempre (idempotente).
	if user.Role == entity.RoleConciliador {
		sicac := user.NumeroSicac
		if in.NumeroSicac != nil {
			sicac = strings.TrimSpace(*in.NumeroSicac)
		}
		sicac, err := entity.NormalizeSicac(user.Role, sicac)
		if err != nil {
			return nil, err
		}
		if sicac != user.NumeroSicac {
			if existing, err := uc.repo.GetByNumeroSicac(sicac, id); err != nil {
				return nil, err
			} else if existing != nil {
				return nil, fmt.Errorf("%w: el número SICAAC ya está en uso por otro conciliador", domain.ErrConflicto)
			}
		}
		user.NumeroSicac = sicac
	} else {
		user.NumeroSicac = ""
	}

	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// AdminSetPassword asigna una contraseña sin verificar la actual (override de admin).
func (uc *UserUseCase) AdminSetPassword(id, newPassword, confirmPassword string) error {
	if newPassword == "" || confirmPassword == "" {
		return fmt.Errorf("%w: la nueva contraseña y su confirmación son requeridas", domain.ErrValidacion)
	}
	if newPassword != confirmPassword {
		return fmt.Errorf("%w: las contraseñas no coinciden", domain.ErrValidacion)
	}
	if err := password.ValidatePolicy(newPassword); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidacion, err)
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUsuarioNoEncontrado
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	return uc.repo.Update(user)
}

// Delete elimina una cuenta. Un admin no puede eliminar la suya propia.
func (uc *UserUseCase) Delete(id, requestingAdminID string) error {
	if id == requestingAdminID {
		return fmt.Errorf("%w: no puedes eliminar tu propia cuenta de administrador", domain.ErrConflicto)
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUsuarioNoEncontrado
	}
	return uc.repo.Delete(id)
}

// List devuelve una página de proyecciones con metadatos de paginación.
func (uc *UserUseCase) List(filter repository.ListFilter, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	offset := (page.Page - 1) * page.PageSize
	users, total, err := uc.repo.List(filter, page.PageSize, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *toUserResponse(u))
	}
	totalPages := (total + page.PageSize - 1) / page.PageSize
	return &dto.UserListResponse{
		Users:      items,
		Total:      total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: totalPages,
		HasMore:    page.Page < totalPages,
	}, nil
}

// AttachPicture guarda la foto de perfil. La foto anterior se elimina antes
// de subir la nueva (best-effort): si la subida falla después, la cuenta
// queda sin foto — comportamiento documentado, no se compensa.
func (uc *UserUseCase) AttachPicture(ctx context.Context, userID string, content io.Reader, size int64, contentType, name string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUsuarioNoEncontrado
	}

	hadPicture := user.PictureFileID != ""
	if hadPicture {
		if err := uc.files.Remove(ctx, user.PictureFileID); err != nil {
			uc.log.Warn().Err(err).Str("file_id", user.PictureFileID).Msg("foto anterior: eliminación falló")
		}
		user.PictureFileID = ""
		user.PictureURL = ""
	}

	stored, err := uc.files.Store(ctx, content, size, contentType, name)
	if err != nil {
		// La foto anterior ya se eliminó: se persiste la cuenta sin foto en
		// lugar de dejar una referencia a un archivo que ya no existe.
		if hadPicture {
			user.UpdatedAt = time.Now()
			if upErr := uc.repo.Update(user); upErr != nil {
				uc.log.Error().Err(upErr).Str("user_id", user.ID).Msg("limpiar referencia de foto tras fallo de subida")
			}
		}
		return nil, fmt.Errorf("subir la imagen al almacenamiento externo: %w", err)
	}
	user.PictureFileID = stored.FileID
	user.PictureURL = stored.URL
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// DetachPicture elimina la foto de perfil (best-effort en el store externo).
func (uc *UserUseCase) DetachPicture(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUsuarioNoEncontrado
	}
	if user.PictureFileID != "" {
		if err := uc.files.Remove(ctx, user.PictureFileID); err != nil {
			uc.log.Warn().Err(err).Str("file_id", user.PictureFileID).Msg("eliminar foto: borrado externo falló")
		}
		user.PictureFileID = ""
		user.PictureURL = ""
		user.UpdatedAt = time.Now()
		if err := uc.repo.Update(user); err != nil {
			return nil, err
		}
	}
	return toUserResponse(user), nil
}

// OpenPicture abre el stream de la foto de perfil de una cuenta.
func (uc *UserUseCase) OpenPicture(ctx context.Context, userID string) (io.ReadCloser, string, error) {
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", domain.ErrUsuarioNoEncontrado
	}
	if user.PictureFileID == "" {
		return nil, "", domain.ErrNoEncontrado
	}
	return uc.files.OpenStream(ctx, user.PictureFileID)
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
