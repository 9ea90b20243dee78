package dto

import "time"

// AISuggestionRequest entrada opcional para POST /api/ai/suggestion.
type AISuggestionRequest struct {
	Focus string `json:"focus"` // tema adicional para el prompt, ej. "reducir costos de envío"
}

// AIRecommendationItem elemento estructurado extraído del texto del LLM
// (líneas "Product:", "Action:", "Reasoning:").
type AIRecommendationItem struct {
	Product   string `json:"product"`
	Action    string `json:"action"`
	Reasoning string `json:"reasoning"`
}

// AIRecommendationDTO recomendación persistida.
type AIRecommendationDTO struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Content   string                 `json:"content"`
	Items     []AIRecommendationItem `json:"items"`
	Status    string                 `json:"status"`
	CreatedAt time.Time              `json:"created_at"`
	AppliedAt *time.Time             `json:"applied_at,omitempty"`
}

// AIRecommendationListResponse listado de recomendaciones.
type AIRecommendationListResponse struct {
	Items []AIRecommendationDTO `json:"items"`
}

// WorstProductPlanDTO plan de mejora del producto menos rentable.
type WorstProductPlanDTO struct {
	SKU            string              `json:"sku"`
	ProductName    string              `json:"product_name"`
	Profit         string              `json:"profit"`
	Margin         string              `json:"margin"`
	Recommendation AIRecommendationDTO `json:"recommendation"`
}
