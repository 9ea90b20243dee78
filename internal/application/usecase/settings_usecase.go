package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
	"github.com/jhoicas/SellerOps-api/internal/domain"
	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
	"github.com/jhoicas/SellerOps-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// SettingsUseCase lectura y actualización de la configuración por usuario.
type SettingsUseCase struct {
	repo repository.SettingsRepository
	now  func() time.Time
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, now: time.Now}
}

// Load devuelve la configuración guardada o los valores por defecto.
func (uc *SettingsUseCase) Load(ctx context.Context, userID string) (*entity.AppSettings, error) {
	s, err := uc.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return entity.DefaultAppSettings(userID), nil
	}
	return s, nil
}

// Get devuelve la configuración efectiva como DTO.
func (uc *SettingsUseCase) Get(ctx context.Context, userID string) (*dto.SettingsResponse, error) {
	s, err := uc.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(s), nil
}

// Update aplica los campos enviados sobre la configuración actual.
func (uc *SettingsUseCase) Update(ctx context.Context, userID string, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	s, err := uc.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.ShippingBaseCost != nil {
		if in.ShippingBaseCost.IsNegative() {
			return nil, fmt.Errorf("%w: shipping_base_cost no puede ser negativo", domain.ErrInvalidInput)
		}
		s.ShippingBaseCost = *in.ShippingBaseCost
	}
	if in.LabelCost != nil {
		if in.LabelCost.IsNegative() {
			return nil, fmt.Errorf("%w: label_cost no puede ser negativo", domain.ErrInvalidInput)
		}
		s.LabelCost = *in.LabelCost
	}
	if in.MinProfitMargin != nil {
		m := *in.MinProfitMargin
		if m.IsNegative() || m.GreaterThan(hundred) {
			return nil, fmt.Errorf("%w: min_profit_margin debe estar entre 0 y 100", domain.ErrInvalidInput)
		}
		s.MinProfitMargin = m
	}
	if in.AutoReorder != nil {
		s.AutoReorder = *in.AutoReorder
	}
	s.UpdatedAt = uc.now()
	if err := uc.repo.Upsert(ctx, s); err != nil {
		return nil, err
	}
	return toSettingsResponse(s), nil
}

func toSettingsResponse(s *entity.AppSettings) *dto.SettingsResponse {
	out := &dto.SettingsResponse{
		ShippingBaseCost: s.ShippingBaseCost,
		LabelCost:        s.LabelCost,
		MinProfitMargin:  s.MinProfitMargin,
		AutoReorder:      s.AutoReorder,
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}
