package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reconciliemos/cuentas-api/pkg/password"
)

func TestHashYCompare_RoundTrip(t *testing.T) {
	hash, err := password.Hash("Abc12345!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Abc12345!", hash, "el hash nunca debe ser el texto plano")

	assert.NoError(t, password.Compare("Abc12345!", hash))
}

func TestCompare_ContrasenaIncorrecta(t *testing.T) {
	hash, err := password.Hash("Abc12345!")
	require.NoError(t, err)

	err = password.Compare("Otra99999!", hash)
	assert.ErrorIs(t, err, password.ErrNoCoincide)
}

func TestCompare_HashCorrupto_NoEsMismatch(t *testing.T) {
	err := password.Compare("Abc12345!", "esto-no-es-un-hash-bcrypt")
	require.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrNoCoincide,
		"un hash inválido es un error interno, no un mismatch")
}

func TestHash_SaltAleatorio(t *testing.T) {
	h1, err := password.Hash("Abc12345!")
	require.NoError(t, err)
	h2, err := password.Hash("Abc12345!")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "dos hashes del mismo texto deben diferir por el salt")
}

func TestValidatePolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"válida", "Abc12345!", false},
		{"válida con otro especial", "Clave{Segura}", false},
		{"muy corta", "Ab1!", true},
		{"sin mayúscula", "abc12345!", true},
		{"sin carácter especial", "Abc123456", true},
		{"vacía", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.ValidatePolicy(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
