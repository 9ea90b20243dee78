package repository

import (
	"context"

	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
)

// SettingsRepository define el puerto de persistencia para AppSettings.
type SettingsRepository interface {
	// Get devuelve nil, nil si el usuario aún no guardó configuración.
	Get(ctx context.Context, userID string) (*entity.AppSettings, error)
	Upsert(ctx context.Context, s *entity.AppSettings) error
}
