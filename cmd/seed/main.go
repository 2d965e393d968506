// seed aplica el esquema de PostgreSQL y crea las cuentas iniciales
// (administrador y, con SEED_DEMO=true, auditor y proveedor de demostración).
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/vendordocs-api/internal/application/bootstrap"
	"github.com/jhoicas/vendordocs-api/internal/application/usecase"
	"github.com/jhoicas/vendordocs-api/internal/infrastructure/postgres"
	"github.com/jhoicas/vendordocs-api/pkg/config"
	"github.com/jhoicas/vendordocs-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Msg("seed completado")
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	if err := postgres.NewTxRunner(pool).Migrate(ctx); err != nil {
		return fmt.Errorf("migración: %w", err)
	}
	log.Info().Msg("esquema aplicado")

	users := postgres.NewUserRepository(pool)
	return bootstrap.Seed(ctx, users, usecase.NewUserUseCase(users), usecase.NewAssignmentUseCase(users), bootstrap.Options{
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
		Demo:          cfg.Seed.Demo,
	}, log)
}
