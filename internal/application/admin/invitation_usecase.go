// Package admin contiene los casos de uso de administración: códigos de invitación y perfiles.
package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
	"github.com/jhoicas/SellerOps-api/internal/domain"
	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
	"github.com/jhoicas/SellerOps-api/internal/domain/repository"
)

// Motivos de invitación no válida.
const (
	ReasonNotFound  = "not_found"
	ReasonExpired   = "expired"
	ReasonExhausted = "exhausted"
)

// InvitationUseCase validación, consumo y alta de códigos de invitación.
type InvitationUseCase struct {
	repo repository.InvitationRepository
	now  func() time.Time
}

// NewInvitationUseCase construye el caso de uso.
func NewInvitationUseCase(repo repository.InvitationRepository) *InvitationUseCase {
	return &InvitationUseCase{repo: repo, now: time.Now}
}

// Validate informa si el código existe, no venció y tiene usos disponibles. No consume usos.
func (uc *InvitationUseCase) Validate(ctx context.Context, code string) (*dto.ValidateInvitationResponse, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("%w: code es requerido", domain.ErrInvalidInput)
	}
	inv, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return &dto.ValidateInvitationResponse{Valid: false, Reason: ReasonNotFound}, nil
	}
	if inv.Expired(uc.now()) {
		return &dto.ValidateInvitationResponse{Valid: false, Reason: ReasonExpired}, nil
	}
	if inv.Exhausted() {
		return &dto.ValidateInvitationResponse{Valid: false, Reason: ReasonExhausted}, nil
	}
	out := &dto.ValidateInvitationResponse{Valid: true}
	if inv.MaxUses > 0 {
		remaining := inv.MaxUses - inv.UseCount
		out.RemainingUses = &remaining
	}
	return out, nil
}

// Use consume un uso del código de forma atómica.
// Retorna domain.ErrNotFound, ErrInvitationExpired o ErrInvitationExhausted si no se pudo consumir.
func (uc *InvitationUseCase) Use(ctx context.Context, userID, code string) (*dto.InvitationResponse, error) {
	code = normalizeCode(code)
	if code == "" || userID == "" {
		return nil, fmt.Errorf("%w: code es requerido", domain.ErrInvalidInput)
	}
	now := uc.now()
	inv, err := uc.repo.ConsumeUse(ctx, code, now)
	if err != nil {
		return nil, err
	}
	if inv != nil {
		return toInvitationResponse(inv), nil
	}

	// No se consumió: averiguar el motivo para la respuesta.
	current, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	switch {
	case current == nil:
		return nil, domain.ErrNotFound
	case current.Expired(now):
		return nil, domain.ErrInvitationExpired
	default:
		return nil, domain.ErrInvitationExhausted
	}
}

// Create genera un código nuevo (o usa el enviado). MaxUses 0 = ilimitado.
func (uc *InvitationUseCase) Create(ctx context.Context, adminID string, in dto.CreateInvitationRequest) (*dto.InvitationResponse, error) {
	if in.MaxUses < 0 || in.ExpiresInHrs < 0 {
		return nil, fmt.Errorf("%w: max_uses y expires_in_hours no pueden ser negativos", domain.ErrInvalidInput)
	}
	code := normalizeCode(in.Code)
	if code == "" {
		code = GenerateCode()
	}
	now := uc.now()
	inv := &entity.InvitationCode{
		ID:        uuid.New().String(),
		Code:      code,
		CreatedBy: adminID,
		MaxUses:   in.MaxUses,
		CreatedAt: now,
	}
	if in.ExpiresInHrs > 0 {
		exp := now.Add(time.Duration(in.ExpiresInHrs) * time.Hour)
		inv.ExpiresAt = &exp
	}
	if err := uc.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return toInvitationResponse(inv), nil
}

// List lista códigos, más recientes primero.
func (uc *InvitationUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.InvitationResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvitationResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *toInvitationResponse(inv))
	}
	return out, nil
}

// GenerateCode código aleatorio de 10 caracteres, ej. "INV-3F9A1C".
func GenerateCode() string {
	return "INV-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func toInvitationResponse(inv *entity.InvitationCode) *dto.InvitationResponse {
	return &dto.InvitationResponse{
		ID:        inv.ID,
		Code:      inv.Code,
		CreatedBy: inv.CreatedBy,
		MaxUses:   inv.MaxUses,
		UseCount:  inv.UseCount,
		ExpiresAt: inv.ExpiresAt,
		CreatedAt: inv.CreatedAt,
	}
}
