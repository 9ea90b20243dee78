package repository

import (
	"context"
	"time"

	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
)

// ProfileRepository lectura de perfiles del proveedor de autenticación.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Profile, error)
}

// InvitationRepository define el puerto de persistencia para códigos de invitación.
type InvitationRepository interface {
	Create(ctx context.Context, inv *entity.InvitationCode) error
	GetByCode(ctx context.Context, code string) (*entity.InvitationCode, error)
	List(ctx context.Context, limit, offset int) ([]*entity.InvitationCode, error)

	// ConsumeUse incrementa use_count de forma atómica solo si el código sigue vigente
	// en now y tiene usos disponibles. Devuelve el código actualizado o nil si no se consumió.
	ConsumeUse(ctx context.Context, code string, now time.Time) (*entity.InvitationCode, error)
}
