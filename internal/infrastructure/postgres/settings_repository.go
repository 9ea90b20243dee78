package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
	"github.com/jhoicas/SellerOps-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo configuración por usuario (una fila por usuario).
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve nil, nil si el usuario aún no guardó configuración.
func (r *SettingsRepo) Get(ctx context.Context, userID string) (*entity.AppSettings, error) {
	query := `
		SELECT user_id, shipping_base_cost, label_cost, min_profit_margin, auto_reorder, updated_at
		FROM app_settings WHERE user_id = $1`
	var s entity.AppSettings
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&s.UserID, &s.ShippingBaseCost, &s.LabelCost, &s.MinProfitMargin, &s.AutoReorder, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Upsert inserta o reemplaza la configuración del usuario.
func (r *SettingsRepo) Upsert(ctx context.Context, s *entity.AppSettings) error {
	query := `
		INSERT INTO app_settings (user_id, shipping_base_cost, label_cost, min_profit_margin, auto_reorder, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			shipping_base_cost = EXCLUDED.shipping_base_cost,
			label_cost         = EXCLUDED.label_cost,
			min_profit_margin  = EXCLUDED.min_profit_margin,
			auto_reorder       = EXCLUDED.auto_reorder,
			updated_at         = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, s.UserID, s.ShippingBaseCost, s.LabelCost, s.MinProfitMargin, s.AutoReorder, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
