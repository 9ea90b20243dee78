package dto

import "time"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero y acota Limit a 100.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DateRangeRequest rango de fechas en query string (YYYY-MM-DD, ambos inclusivos).
type DateRangeRequest struct {
	StartDate string `query:"start_date"` // por defecto: hace 30 días
	EndDate   string `query:"end_date"`   // por defecto: hoy
}

// PeriodDTO rango de fechas resuelto de una respuesta.
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// DateLayout formato de fechas en query strings y respuestas.
const DateLayout = "2006-01-02"

// NewPeriodDTO formatea un rango para la respuesta.
func NewPeriodDTO(from, to time.Time) PeriodDTO {
	return PeriodDTO{StartDate: from.Format(DateLayout), EndDate: to.Format(DateLayout)}
}
