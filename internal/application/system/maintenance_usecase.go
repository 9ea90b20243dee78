// Package system contiene los casos de uso operativos: keep-alive y migraciones.
package system

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
	"github.com/jhoicas/SellerOps-api/internal/application/ports"
	"github.com/jhoicas/SellerOps-api/internal/domain/repository"
	"github.com/jhoicas/SellerOps-api/pkg/logger"
)

const pingTimeout = 3 * time.Second

// MaintenanceUseCase mantiene viva la conexión a la base (planes gratuitos la suspenden por
// inactividad) y aplica migraciones.
type MaintenanceUseCase struct {
	db       repository.HealthChecker
	cache    ports.SuggestionCache
	migrator repository.Migrator
	log      *logger.Logger
	now      func() time.Time
}

// NewMaintenanceUseCase construye el caso de uso. migrator puede ser nil.
func NewMaintenanceUseCase(db repository.HealthChecker, cache ports.SuggestionCache, migrator repository.Migrator, log *logger.Logger) *MaintenanceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &MaintenanceUseCase{db: db, cache: cache, migrator: migrator, log: log.Component("maintenance"), now: time.Now}
}

// Ping consulta la base y la caché. Un fallo de caché degrada el estado; uno de base es error.
func (uc *MaintenanceUseCase) Ping(ctx context.Context) (*dto.KeepAliveResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	out := &dto.KeepAliveResponse{Status: "ok", Database: "ok", Cache: "ok", Timestamp: uc.now().UTC()}
	if err := uc.db.Ping(ctx); err != nil {
		uc.log.Error().Err(err).Msg("keep-alive: base de datos no responde")
		return nil, fmt.Errorf("keep-alive: base de datos: %w", err)
	}
	if uc.cache != nil {
		if err := uc.cache.Ping(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("keep-alive: caché no responde")
			out.Status = "degraded"
			out.Cache = "unavailable"
		}
	}
	return out, nil
}

// RunMigrations aplica las migraciones pendientes en orden.
func (uc *MaintenanceUseCase) RunMigrations(ctx context.Context) (*dto.MigrationResponse, error) {
	if uc.migrator == nil {
		return nil, fmt.Errorf("migraciones: migrator no configurado")
	}
	applied, err := uc.migrator.Apply(ctx)
	if err != nil {
		uc.log.Error().Err(err).Strs("applied", applied).Msg("migración fallida")
		return nil, fmt.Errorf("migraciones: %w", err)
	}
	msg := "sin migraciones pendientes"
	if len(applied) > 0 {
		msg = fmt.Sprintf("%d migraciones aplicadas", len(applied))
	}
	uc.log.Info().Strs("applied", applied).Msg(msg)
	if applied == nil {
		applied = []string{}
	}
	return &dto.MigrationResponse{Applied: applied, Message: msg}, nil
}
