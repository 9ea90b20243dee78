package admin

import (
	"context"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
	"github.com/jhoicas/SellerOps-api/internal/domain/repository"
)

// ProfileUseCase consulta de perfiles y permisos de administrador.
type ProfileUseCase struct {
	repo repository.ProfileRepository
}

// NewProfileUseCase construye el caso de uso.
func NewProfileUseCase(repo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{repo: repo}
}

// IsAdmin informa si el usuario tiene perfil de administrador. Sin perfil = false.
func (uc *ProfileUseCase) IsAdmin(ctx context.Context, userID string) (bool, error) {
	p, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return p != nil && p.IsAdmin, nil
}

// List lista perfiles paginados.
func (uc *ProfileUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProfileResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProfileResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ProfileResponse{
			ID:        p.ID,
			Email:     p.Email,
			FullName:  p.FullName,
			IsAdmin:   p.IsAdmin,
			CreatedAt: p.CreatedAt,
		})
	}
	return out, nil
}
