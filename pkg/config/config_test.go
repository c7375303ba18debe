package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_PuertoNoNumericoFallaElArranque(t *testing.T) {
	t.Setenv("HTTP_PORT", "ochenta")

	_, err := Load()
	require.Error(t, err, "un typo en HTTP_PORT no debe convertirse en puerto 0")
	assert.Contains(t, err.Error(), "HTTP_PORT")
	assert.Contains(t, err.Error(), "ochenta")
}

func TestLoad_EnterosDesdeEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_EXPIRATION_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 15, cfg.JWT.Expiration)
}

func TestDSN_EscapaCredenciales(t *testing.T) {
	db := DBConfig{
		Host: "localhost", Port: 5432,
		User: "app", Password: "p@ss:word/",
		DBName: "cuentas", SSLMode: "disable",
	}
	dsn := db.DSN()
	assert.Contains(t, dsn, "p%40ss%3Aword%2F")
	assert.Equal(t, dsn, db.ConnectionString())

	db.DatabaseURL = "postgres://x:y@h:1/db"
	assert.Equal(t, db.DatabaseURL, db.ConnectionString())
}
