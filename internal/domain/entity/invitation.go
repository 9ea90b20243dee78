package entity

import "time"

// InvitationCode código que habilita el registro de nuevos vendedores.
type InvitationCode struct {
	ID        string
	Code      string
	CreatedBy string
	MaxUses   int
	UseCount  int
	ExpiresAt *time.Time // nil = sin vencimiento
	CreatedAt time.Time
}

// Expired informa si el código venció en el instante now.
func (i *InvitationCode) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && !now.Before(*i.ExpiresAt)
}

// Exhausted informa si el código ya agotó sus usos.
func (i *InvitationCode) Exhausted() bool {
	return i.MaxUses > 0 && i.UseCount >= i.MaxUses
}
