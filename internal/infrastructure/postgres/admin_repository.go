package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/SellerOps-api/internal/domain"
	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
	"github.com/jhoicas/SellerOps-api/internal/domain/repository"
)

var (
	_ repository.ProfileRepository    = (*ProfileRepo)(nil)
	_ repository.InvitationRepository = (*InvitationRepo)(nil)
)

// ProfileRepo lectura de la tabla profiles (la escribe el proveedor de autenticación).
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador.
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// GetByID perfil por ID de usuario; nil, nil si no existe.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	var p entity.Profile
	err := r.q.QueryRow(ctx,
		`SELECT id, email, full_name, is_admin, created_at FROM profiles WHERE id = $1`, id,
	).Scan(&p.ID, &p.Email, &p.FullName, &p.IsAdmin, &p.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// List perfiles ordenados por email.
func (r *ProfileRepo) List(ctx context.Context, limit, offset int) ([]*entity.Profile, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, email, full_name, is_admin, created_at FROM profiles ORDER BY email LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Profile, 0)
	for rows.Next() {
		var p entity.Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.FullName, &p.IsAdmin, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

const invitationColumns = `id, code, created_by, max_uses, use_count, expires_at, created_at`

// InvitationRepo códigos de invitación sobre PostgreSQL.
type InvitationRepo struct {
	q Querier
}

// NewInvitationRepository construye el adaptador.
func NewInvitationRepository(q Querier) *InvitationRepo {
	return &InvitationRepo{q: q}
}

// Create persiste un código nuevo. Código repetido → domain.ErrDuplicate.
func (r *InvitationRepo) Create(ctx context.Context, inv *entity.InvitationCode) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO invitation_codes (`+invitationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		inv.ID, inv.Code, inv.CreatedBy, inv.MaxUses, inv.UseCount, inv.ExpiresAt, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

// GetByCode código por valor; nil, nil si no existe.
func (r *InvitationRepo) GetByCode(ctx context.Context, code string) (*entity.InvitationCode, error) {
	var inv entity.InvitationCode
	err := r.q.QueryRow(ctx,
		`SELECT `+invitationColumns+` FROM invitation_codes WHERE code = $1`, code,
	).Scan(&inv.ID, &inv.Code, &inv.CreatedBy, &inv.MaxUses, &inv.UseCount, &inv.ExpiresAt, &inv.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return &inv, nil
}

// List códigos más recientes primero.
func (r *InvitationRepo) List(ctx context.Context, limit, offset int) ([]*entity.InvitationCode, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+invitationColumns+` FROM invitation_codes ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.InvitationCode, 0)
	for rows.Next() {
		var inv entity.InvitationCode
		if err := rows.Scan(&inv.ID, &inv.Code, &inv.CreatedBy, &inv.MaxUses, &inv.UseCount, &inv.ExpiresAt, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// ConsumeUse incrementa use_count en una sola sentencia: dos registros simultáneos no pueden
// superar max_uses. Devuelve nil, nil si el código no existe, venció o está agotado.
func (r *InvitationRepo) ConsumeUse(ctx context.Context, code string, now time.Time) (*entity.InvitationCode, error) {
	query := `
		UPDATE invitation_codes
		SET use_count = use_count + 1
		WHERE code = $1
		  AND (max_uses = 0 OR use_count < max_uses)
		  AND (expires_at IS NULL OR expires_at > $2)
		RETURNING ` + invitationColumns
	var inv entity.InvitationCode
	err := r.q.QueryRow(ctx, query, code, now).Scan(
		&inv.ID, &inv.Code, &inv.CreatedBy, &inv.MaxUses, &inv.UseCount, &inv.ExpiresAt, &inv.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("consume invitation: %w", err)
	}
	return &inv, nil
}
