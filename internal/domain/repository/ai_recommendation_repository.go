package repository

import (
	"context"
	"time"

	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
)

// AIRecommendationRepository define el puerto de persistencia para recomendaciones IA.
type AIRecommendationRepository interface {
	Create(ctx context.Context, rec *entity.AIRecommendation) error
	GetByID(ctx context.Context, userID, id string) (*entity.AIRecommendation, error)

	// List filtra por tipo cuando recType no es vacío; más recientes primero.
	List(ctx context.Context, userID, recType string, limit int) ([]*entity.AIRecommendation, error)

	MarkApplied(ctx context.Context, userID, id string, at time.Time) error
}
