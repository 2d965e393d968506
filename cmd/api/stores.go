package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/vendordocs-api/internal/domain/repository"
	"github.com/jhoicas/vendordocs-api/internal/infrastructure/memory"
	"github.com/jhoicas/vendordocs-api/internal/infrastructure/postgres"
	"github.com/jhoicas/vendordocs-api/pkg/config"
	"github.com/jhoicas/vendordocs-api/pkg/logger"
)

// stores repositorios según STORE_DRIVER.
type stores struct {
	users  repository.UserRepository
	docs   repository.DocumentRepository
	health repository.HealthChecker
	close  func()
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		db := memory.NewDB()
		return &stores{users: db.Users(), docs: db.Documents(), health: db, close: func() {}}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if err := postgres.NewTxRunner(pool).Migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migración: %w", err)
	}
	log.Info().Str("host", cfg.DB.Host).Str("db", cfg.DB.DBName).Msg("PostgreSQL listo")
	return &stores{
		users:  postgres.NewUserRepository(pool),
		docs:   postgres.NewDocumentRepository(pool),
		health: pool,
		close:  pool.Close,
	}, nil
}
