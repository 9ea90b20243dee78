package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/SellerOps-api/internal/application/admin"
	"github.com/jhoicas/SellerOps-api/internal/application/system"
	"github.com/jhoicas/SellerOps-api/internal/cli"
	infracache "github.com/jhoicas/SellerOps-api/internal/infrastructure/cache"
	"github.com/jhoicas/SellerOps-api/internal/infrastructure/postgres"
	"github.com/jhoicas/SellerOps-api/pkg/config"
	"github.com/jhoicas/SellerOps-api/pkg/logger"
)

func main() {
	if err := cli.NewRootCommand(connect).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// connect abre el pool de PostgreSQL con la misma configuración que la API.
func connect(ctx context.Context) (*cli.Backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &cli.Backend{
		Invitations: admin.NewInvitationUseCase(postgres.NewInvitationRepository(pool)),
		Maintenance: system.NewMaintenanceUseCase(
			postgres.NewPoolHealth(pool), infracache.NoopSuggestionCache{}, postgres.NewMigrator(pool), log,
		),
		Close: pool.Close,
	}, nil
}
