package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
	"github.com/jhoicas/SellerOps-api/internal/domain"
	"github.com/jhoicas/SellerOps-api/internal/infrastructure/memory"
)

func TestSettingsUseCase(t *testing.T) {
	store := memory.NewStore()
	uc := NewSettingsUseCase(store.Settings())
	ctx := context.Background()

	got, err := uc.Get(ctx, testUser)
	require.NoError(t, err)
	assert.True(t, got.MinProfitMargin.Equal(dec("10")), "valor por defecto")
	assert.Nil(t, got.UpdatedAt)

	margin := dec("25")
	auto := true
	got, err = uc.Update(ctx, testUser, dto.UpdateSettingsRequest{MinProfitMargin: &margin, AutoReorder: &auto})
	require.NoError(t, err)
	assert.True(t, got.MinProfitMargin.Equal(margin))
	assert.True(t, got.AutoReorder)
	assert.NotNil(t, got.UpdatedAt)

	got, err = uc.Get(ctx, testUser)
	require.NoError(t, err)
	assert.True(t, got.AutoReorder, "se persiste")

	bad := dec("120")
	_, err = uc.Update(ctx, testUser, dto.UpdateSettingsRequest{MinProfitMargin: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	neg := dec("-1")
	_, err = uc.Update(ctx, testUser, dto.UpdateSettingsRequest{LabelCost: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
