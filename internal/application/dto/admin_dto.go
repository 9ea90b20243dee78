package dto

import "time"

// ValidateInvitationRequest entrada para POST /api/invitations/validate y /use.
type ValidateInvitationRequest struct {
	Code string `json:"code" validate:"required"`
}

// ValidateInvitationResponse resultado de validar un código.
type ValidateInvitationResponse struct {
	Valid         bool   `json:"valid"`
	Reason        string `json:"reason,omitempty"` // not_found|expired|exhausted
	RemainingUses *int   `json:"remaining_uses,omitempty"`
}

// CreateInvitationRequest entrada para POST /api/admin/invitations.
type CreateInvitationRequest struct {
	Code         string `json:"code"` // vacío = generado
	MaxUses      int    `json:"max_uses" validate:"min=0"`
	ExpiresInHrs int    `json:"expires_in_hours" validate:"min=0"`
}

// InvitationResponse salida de un código de invitación.
type InvitationResponse struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	CreatedBy string     `json:"created_by"`
	MaxUses   int        `json:"max_uses"`
	UseCount  int        `json:"use_count"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ProfileResponse salida de un perfil.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// InvitationListResponse listado de códigos para el panel de administración.
type InvitationListResponse struct {
	Items []InvitationResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// ProfileListResponse listado de perfiles.
type ProfileListResponse struct {
	Items []ProfileResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
