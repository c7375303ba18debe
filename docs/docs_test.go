package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// La definición embebida debe ser JSON válido y cubrir las rutas de la API:
// si el archivo falta el paquete ni siquiera compila, y si se corrompe el
// arranque del servidor serviría un UI roto.
func TestSwaggerJSONEmbebido(t *testing.T) {
	require.NotEmpty(t, SwaggerJSON)

	var spec struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(SwaggerJSON, &spec))

	assert.Equal(t, "2.0", spec.Swagger)
	for _, path := range []string{
		"/api/auth/login",
		"/api/auth/me",
		"/api/auth/me/password",
		"/api/auth/admin/users",
		"/api/users",
		"/api/users/{id}",
		"/api/users/{id}/password",
		"/api/users/me/picture",
		"/api/users/{id}/picture",
		"/health",
	} {
		assert.Contains(t, spec.Paths, path)
	}
}
