package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reconciliemos/cuentas-api/internal/application/auth"
	"github.com/reconciliemos/cuentas-api/internal/application/dto"
	"github.com/reconciliemos/cuentas-api/internal/domain"
	"github.com/reconciliemos/cuentas-api/internal/domain/entity"
	"github.com/reconciliemos/cuentas-api/internal/domain/repository"
	pkgjwt "github.com/reconciliemos/cuentas-api/pkg/jwt"
	"github.com/reconciliemos/cuentas-api/pkg/logger"
	"github.com/reconciliemos/cuentas-api/pkg/password"
)

const testSecret = "test-secret-key-for-unit-tests"

// fakeRepo repositorio en memoria para los tests de auth.
type fakeRepo struct {
	users map[string]*entity.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*entity.User{}}
}

func (f *fakeRepo) Create(u *entity.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeRepo) GetByID(id string) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetByCedula(cedula string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Cedula == cedula {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetByNumeroSicac(v, excludeID string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Role == entity.RoleConciliador && u.NumeroSicac == v && u.ID != excludeID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) Update(u *entity.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeRepo) Delete(id string) error {
	delete(f.users, id)
	return nil
}

func (f *fakeRepo) List(_ repository.ListFilter, _, _ int) ([]*entity.User, int, error) {
	return nil, 0, nil
}

func newUseCase(repo repository.UserRepository) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "cuentas-api-test",
	}, logger.New(logger.Config{Level: "disabled"}))
}

func seedUser(t *testing.T, repo *fakeRepo, email, plain, role string, active bool) *entity.User {
	t.Helper()
	hash, err := password.Hash(plain)
	require.NoError(t, err)
	u := &entity.User{
		ID:           "id-" + email,
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		Role:         role,
		FirstName:    "María",
		LastName:     "Gómez",
		Cedula:       "900123",
		IsActive:     active,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if role == entity.RoleConciliador {
		u.NumeroSicac = "SIC-1"
	}
	require.NoError(t, repo.Create(u))
	return u
}

func TestLogin_Exitoso(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, "maria@x.co", "Abc12345!", entity.RoleConciliador, true)
	uc := newUseCase(repo)

	out, err := uc.Login(dto.LoginRequest{Email: "maria@x.co", Password: "Abc12345!"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "maria@x.co", out.User.Email)
	assert.Equal(t, entity.RoleConciliador, out.User.Role)

	// El token decodificado lleva el rol de la cuenta.
	userID, email, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, "maria@x.co", email)
	assert.Equal(t, entity.RoleConciliador, role)
}

func TestLogin_EmailCaseInsensitive(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, "maria@x.co", "Abc12345!", entity.RoleTercero, true)
	uc := newUseCase(repo)

	out, err := uc.Login(dto.LoginRequest{Email: "MARIA@X.CO", Password: "Abc12345!"})
	require.NoError(t, err)
	assert.Equal(t, "maria@x.co", out.User.Email)
}

// Email desconocido y contraseña incorrecta deben ser indistinguibles hacia
// afuera: mismo error, mismo mensaje.
func TestLogin_SinEnumeracionDeCuentas(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, "maria@x.co", "Abc12345!", entity.RoleTercero, true)
	uc := newUseCase(repo)

	_, errEmail := uc.Login(dto.LoginRequest{Email: "noexiste@x.co", Password: "Abc12345!"})
	_, errPass := uc.Login(dto.LoginRequest{Email: "maria@x.co", Password: "Incorrecta1!"})

	require.ErrorIs(t, errEmail, domain.ErrCredencialesInvalidas)
	require.ErrorIs(t, errPass, domain.ErrCredencialesInvalidas)
	assert.Equal(t, errEmail.Error(), errPass.Error(),
		"ambos fallos deben producir exactamente el mismo mensaje")
}

func TestLogin_CuentaInactiva_ErrorDistinto(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, "maria@x.co", "Abc12345!", entity.RoleTercero, false)
	uc := newUseCase(repo)

	_, err := uc.Login(dto.LoginRequest{Email: "maria@x.co", Password: "Abc12345!"})
	require.ErrorIs(t, err, domain.ErrCuentaInactiva)
	assert.NotErrorIs(t, err, domain.ErrCredencialesInvalidas)
}

func TestChangeOwnPassword_Exitoso(t *testing.T) {
	repo := newFakeRepo()
	u := seedUser(t, repo, "maria@x.co", "Abc12345!", entity.RoleTercero, true)
	uc := newUseCase(repo)

	require.NoError(t, uc.ChangeOwnPassword(u.ID, "Abc12345!", "Nueva9999!"))

	stored, _ := repo.GetByID(u.ID)
	assert.NoError(t, password.Compare("Nueva9999!", stored.PasswordHash))
	assert.Error(t, password.Compare("Abc12345!", stored.PasswordHash))
}

func TestChangeOwnPassword_ActualIncorrecta(t *testing.T) {
	repo := newFakeRepo()
	u := seedUser(t, repo, "maria@x.co", "Abc12345!", entity.RoleTercero, true)
	uc := newUseCase(repo)

	err := uc.ChangeOwnPassword(u.ID, "Equivocada1!", "Nueva9999!")
	assert.ErrorIs(t, err, domain.ErrNoAutorizado)
}

func TestChangeOwnPassword_NuevaDebil(t *testing.T) {
	repo := newFakeRepo()
	u := seedUser(t, repo, "maria@x.co", "Abc12345!", entity.RoleTercero, true)
	uc := newUseCase(repo)

	err := uc.ChangeOwnPassword(u.ID, "Abc12345!", "debil")
	assert.ErrorIs(t, err, domain.ErrValidacion)
}
