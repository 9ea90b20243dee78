package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/SellerOps-api/internal/domain"
	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
	"github.com/jhoicas/SellerOps-api/internal/domain/repository"
)

var _ repository.AIRecommendationRepository = (*AIRecommendationRepo)(nil)

const recommendationColumns = `id, user_id, type, content, status, created_at, applied_at`

// AIRecommendationRepo recomendaciones IA sobre PostgreSQL.
type AIRecommendationRepo struct {
	q Querier
}

// NewAIRecommendationRepository construye el adaptador.
func NewAIRecommendationRepository(q Querier) *AIRecommendationRepo {
	return &AIRecommendationRepo{q: q}
}

// Create persiste la recomendación.
func (r *AIRecommendationRepo) Create(ctx context.Context, rec *entity.AIRecommendation) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO ai_recommendations (`+recommendationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.UserID, rec.Type, rec.Content, rec.Status, rec.CreatedAt, rec.AppliedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ai recommendation: %w", err)
	}
	return nil
}

// GetByID recomendación del usuario; nil, nil si no existe.
func (r *AIRecommendationRepo) GetByID(ctx context.Context, userID, id string) (*entity.AIRecommendation, error) {
	var rec entity.AIRecommendation
	err := r.q.QueryRow(ctx,
		`SELECT `+recommendationColumns+` FROM ai_recommendations WHERE user_id = $1 AND id = $2`, userID, id,
	).Scan(&rec.ID, &rec.UserID, &rec.Type, &rec.Content, &rec.Status, &rec.CreatedAt, &rec.AppliedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ai recommendation: %w", err)
	}
	return &rec, nil
}

// List más recientes primero, filtradas por tipo si recType no es vacío.
func (r *AIRecommendationRepo) List(ctx context.Context, userID, recType string, limit int) ([]*entity.AIRecommendation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+recommendationColumns+`
		FROM ai_recommendations
		WHERE user_id = $1 AND ($2 = '' OR type = $2)
		ORDER BY created_at DESC
		LIMIT $3`, userID, recType, limit)
	if err != nil {
		return nil, fmt.Errorf("list ai recommendations: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.AIRecommendation, 0)
	for rows.Next() {
		var rec entity.AIRecommendation
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Type, &rec.Content, &rec.Status, &rec.CreatedAt, &rec.AppliedAt); err != nil {
			return nil, fmt.Errorf("scan ai recommendation: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// MarkApplied marca la recomendación como aplicada.
func (r *AIRecommendationRepo) MarkApplied(ctx context.Context, userID, id string, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE ai_recommendations SET status = $3, applied_at = $4 WHERE user_id = $1 AND id = $2`,
		userID, id, entity.RecommendationStatusApplied, at,
	)
	if err != nil {
		return fmt.Errorf("mark ai recommendation applied: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
