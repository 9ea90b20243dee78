package entity

import "time"

// Tipos de recomendación IA.
const (
	RecommendationTypeSuggestion       = "suggestion"
	RecommendationTypeWorstProductPlan = "worst_product_plan"
)

// Estados de una recomendación.
const (
	RecommendationStatusPending = "pending"
	RecommendationStatusApplied = "applied"
)

// AIRecommendation texto generado por el LLM y persistido para seguimiento.
type AIRecommendation struct {
	ID        string
	UserID    string
	Type      string
	Content   string
	Status    string
	CreatedAt time.Time
	AppliedAt *time.Time
}

// ValidRecommendationType informa si t es un tipo conocido.
func ValidRecommendationType(t string) bool {
	return t == RecommendationTypeSuggestion || t == RecommendationTypeWorstProductPlan
}
