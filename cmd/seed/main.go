// Siembra el administrador inicial. Idempotente: si el email ya existe no
// hace nada. La contraseña viene de SEED_ADMIN_PASSWORD y debe cumplir la
// política de complejidad.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reconciliemos/cuentas-api/internal/domain/entity"
	"github.com/reconciliemos/cuentas-api/internal/infrastructure/postgres"
	"github.com/reconciliemos/cuentas-api/pkg/config"
	"github.com/reconciliemos/cuentas-api/pkg/logger"
	"github.com/reconciliemos/cuentas-api/pkg/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if cfg.Seed.AdminPassword == "" {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD es requerido")
	}
	if err := password.ValidatePolicy(cfg.Seed.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("la contraseña del admin no cumple la política")
	}

	ctx := context.Background()

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	repo := postgres.NewUserRepository(pool)

	existing, err := repo.GetByEmail(cfg.Seed.AdminEmail)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar admin existente")
	}
	if existing != nil {
		log.Info().Str("email", cfg.Seed.AdminEmail).Msg("el usuario administrador ya existe")
		return
	}

	hash, err := password.Hash(cfg.Seed.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear contraseña del admin")
	}

	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        cfg.Seed.AdminEmail,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		FirstName:    "Admin",
		LastName:     "Principal",
		Cedula:       cfg.Seed.AdminCedula,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(admin); err != nil {
		log.Fatal().Err(err).Msg("crear admin")
	}
	log.Info().Str("email", admin.Email).Msg("usuario administrador creado exitosamente")
}
