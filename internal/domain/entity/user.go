package entity

import (
	"fmt"
	"time"

	"github.com/reconciliemos/cuentas-api/internal/domain"
)

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleConciliador = "conciliador"
	RoleTercero     = "tercero"
)

// ValidRole indica si el rol existe en el sistema.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleConciliador, RoleTercero:
		return true
	}
	return false
}

// User representa una cuenta del sistema.
// PasswordHash nunca sale del dominio: las proyecciones (dto.UserResponse)
// no tienen campo de contraseña.
type User struct {
	ID            string
	Email         string // siempre en minúsculas
	PasswordHash  string // bcrypt, nunca en texto plano después de persistir
	Role          string // admin, conciliador, tercero
	FirstName     string
	LastName      string
	Cedula        string
	PhoneNumber   string // opcional; vacío = NULL
	NumeroSicac   string // solo conciliadores; vacío = NULL
	IsActive      bool
	PictureFileID string // referencia externa en el object store; vacío = sin foto
	PictureURL    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NormalizeSicac aplica el invariante del número SICAAC según el rol:
// un conciliador debe tener exactamente un valor no vacío; cualquier
// otro rol lo lleva vacío (se descarta lo que venga en la petición).
// Se invoca en cada create y en cada update que toque el rol.
func NormalizeSicac(role, numeroSicac string) (string, error) {
	if role == RoleConciliador {
		if numeroSicac == "" {
			return "", fmt.Errorf("%w: el número SICAAC es requerido para el rol de conciliador", domain.ErrValidacion)
		}
		return numeroSicac, nil
	}
	return "", nil
}
