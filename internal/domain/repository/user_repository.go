package repository

import "github.com/reconciliemos/cuentas-api/internal/domain/entity"

// ListFilter filtros para el listado de usuarios.
type ListFilter struct {
	Role   string // vacío = todos los roles
	Search string // substring case-insensitive sobre nombre, apellido, email, cédula y SICAAC
}

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas devuelven (nil, nil) cuando no hay resultado; los errores
// de constraint único se traducen a domain.ErrConflicto en el adaptador.
// Las entidades devueltas incluyen PasswordHash (la verificación de
// contraseña lo necesita); quitarlo hacia afuera es responsabilidad de la
// proyección (dto.UserResponse no tiene campo de contraseña).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	// GetByEmail busca por email sin distinguir mayúsculas.
	GetByEmail(email string) (*entity.User, error)
	GetByCedula(cedula string) (*entity.User, error)
	// GetByNumeroSicac busca entre conciliadores, excluyendo opcionalmente un ID.
	GetByNumeroSicac(numeroSicac, excludeID string) (*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
	// List devuelve la página pedida (más recientes primero) y el total sin paginar.
	List(filter ListFilter, limit, offset int) ([]*entity.User, int, error)
}
