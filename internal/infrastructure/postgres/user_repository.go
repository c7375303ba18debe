package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reconciliemos/cuentas-api/internal/domain"
	"github.com/reconciliemos/cuentas-api/internal/domain/entity"
	"github.com/reconciliemos/cuentas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, role, first_name, last_name, cedula,
	phone_number, numero_sicac, is_active, picture_file_id, picture_url, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste una nueva cuenta. Las violaciones de unicidad (email,
// cédula o SICAAC) se traducen a domain.ErrConflicto.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, role, first_name, last_name, cedula,
			phone_number, numero_sicac, is_active, picture_file_id, picture_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, strings.ToLower(user.Email), user.PasswordHash, user.Role,
		user.FirstName, user.LastName, user.Cedula,
		nullIfEmpty(user.PhoneNumber), nullIfEmpty(user.NumeroSicac), user.IsActive,
		nullIfEmpty(user.PictureFileID), nullIfEmpty(user.PictureURL),
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email, cédula o número SICAAC ya registrado", domain.ErrConflicto)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.queryOne(query, id)
}

// GetByEmail obtiene una cuenta por email, sin distinguir mayúsculas.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = LOWER($1) LIMIT 1`
	return r.queryOne(query, email)
}

// GetByCedula obtiene una cuenta por número de cédula.
func (r *UserRepo) GetByCedula(cedula string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE cedula = $1 LIMIT 1`
	return r.queryOne(query, cedula)
}

// GetByNumeroSicac busca el número SICAAC entre conciliadores, excluyendo
// opcionalmente un ID (para updates del propio usuario).
func (r *UserRepo) GetByNumeroSicac(numeroSicac, excludeID string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE numero_sicac = $1 AND role = 'conciliador' AND ($2 = '' OR id <> $2) LIMIT 1`
	return r.queryOne(query, numeroSicac, excludeID)
}

// Update persiste los campos mutables de una cuenta.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET email = $2, password_hash = $3, role = $4, first_name = $5,
			last_name = $6, cedula = $7, phone_number = $8, numero_sicac = $9,
			is_active = $10, picture_file_id = $11, picture_url = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, strings.ToLower(user.Email), user.PasswordHash, user.Role,
		user.FirstName, user.LastName, user.Cedula,
		nullIfEmpty(user.PhoneNumber), nullIfEmpty(user.NumeroSicac), user.IsActive,
		nullIfEmpty(user.PictureFileID), nullIfEmpty(user.PictureURL), user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email, cédula o número SICAAC ya registrado", domain.ErrConflicto)
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete elimina una cuenta por ID.
func (r *UserRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// List devuelve la página pedida (más recientes primero) y el total sin paginar.
// Search aplica ILIKE sobre nombre, apellidos, email, cédula y SICAAC; los
// comodines del término se escapan para buscar subcadenas literales.
func (r *UserRepo) List(filter repository.ListFilter, limit, offset int) ([]*entity.User, int, error) {
	search := escapeLike(filter.Search)
	where := " WHERE ($1 = '' OR role = $1) AND ($2 = '' OR " +
		"first_name ILIKE '%' || $2 || '%' OR last_name ILIKE '%' || $2 || '%' OR " +
		"email ILIKE '%' || $2 || '%' OR cedula ILIKE '%' || $2 || '%' OR " +
		"numero_sicac ILIKE '%' || $2 || '%')"

	var total int
	err := r.pool.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM users"+where, filter.Role, search).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := "SELECT " + userColumns + " FROM users" + where +
		" ORDER BY created_at DESC LIMIT $3 OFFSET $4"
	rows, err := r.pool.Query(context.Background(), query, filter.Role, search, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

func (r *UserRepo) queryOne(query string, args ...any) (*entity.User, error) {
	row := r.pool.QueryRow(context.Background(), query, args...)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var phone, sicac, picID, picURL *string
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName, &u.Cedula,
		&phone, &sicac, &u.IsActive, &picID, &picURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.PhoneNumber = deref(phone)
	u.NumeroSicac = deref(sicac)
	u.PictureFileID = deref(picID)
	u.PictureURL = deref(picURL)
	return &u, nil
}
