package admin

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
	"github.com/jhoicas/SellerOps-api/internal/domain"
	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
	"github.com/jhoicas/SellerOps-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2025, time.June, 30, 12, 0, 0, 0, time.UTC)

func newInvitationUC(store *memory.Store) *InvitationUseCase {
	uc := NewInvitationUseCase(store.Invitations())
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestInvitation_CreateYValidate(t *testing.T) {
	uc := newInvitationUC(memory.NewStore())
	ctx := context.Background()

	created, err := uc.Create(ctx, "admin-1", dto.CreateInvitationRequest{Code: " beta-2025 ", MaxUses: 2, ExpiresInHrs: 24})
	require.NoError(t, err)
	assert.Equal(t, "BETA-2025", created.Code)
	require.NotNil(t, created.ExpiresAt)
	assert.Equal(t, fixedNow.Add(24*time.Hour), *created.ExpiresAt)

	res, err := uc.Validate(ctx, "beta-2025")
	require.NoError(t, err)
	assert.True(t, res.Valid)
	require.NotNil(t, res.RemainingUses)
	assert.Equal(t, 2, *res.RemainingUses)

	res, err = uc.Validate(ctx, "NOPE")
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonNotFound, res.Reason)

	_, err = uc.Validate(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "admin-1", dto.CreateInvitationRequest{Code: "BETA-2025"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, "admin-1", dto.CreateInvitationRequest{MaxUses: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvitation_UseHastaAgotar(t *testing.T) {
	uc := newInvitationUC(memory.NewStore())
	ctx := context.Background()
	_, err := uc.Create(ctx, "admin-1", dto.CreateInvitationRequest{Code: "ONE", MaxUses: 1})
	require.NoError(t, err)

	used, err := uc.Use(ctx, "user-1", "one")
	require.NoError(t, err)
	assert.Equal(t, 1, used.UseCount)

	_, err = uc.Use(ctx, "user-2", "ONE")
	assert.ErrorIs(t, err, domain.ErrInvitationExhausted)

	res, err := uc.Validate(ctx, "ONE")
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonExhausted, res.Reason)

	_, err = uc.Use(ctx, "user-2", "MISSING")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvitation_Vencida(t *testing.T) {
	uc := newInvitationUC(memory.NewStore())
	ctx := context.Background()
	_, err := uc.Create(ctx, "admin-1", dto.CreateInvitationRequest{Code: "OLD", ExpiresInHrs: 1})
	require.NoError(t, err)

	uc.now = func() time.Time { return fixedNow.Add(time.Hour) }

	res, err := uc.Validate(ctx, "OLD")
	require.NoError(t, err)
	assert.Equal(t, ReasonExpired, res.Reason)

	_, err = uc.Use(ctx, "user-1", "OLD")
	assert.ErrorIs(t, err, domain.ErrInvitationExpired)
}

func TestInvitation_UseConcurrenteRespetaMaxUses(t *testing.T) {
	uc := newInvitationUC(memory.NewStore())
	ctx := context.Background()
	_, err := uc.Create(ctx, "admin-1", dto.CreateInvitationRequest{Code: "RACE", MaxUses: 3})
	require.NoError(t, err)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.Use(ctx, "user", "RACE"); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 3, ok)
}

func TestInvitation_ListYGenerateCode(t *testing.T) {
	uc := newInvitationUC(memory.NewStore())
	ctx := context.Background()

	created, err := uc.Create(ctx, "admin-1", dto.CreateInvitationRequest{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.Code, "INV-"))
	assert.Len(t, created.Code, 10)
	assert.Nil(t, created.ExpiresAt)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.Code, list[0].Code)
}

func TestProfile_IsAdminYList(t *testing.T) {
	store := memory.NewStore()
	store.AddProfile(&entity.Profile{ID: "admin-1", Email: "a@example.com", IsAdmin: true})
	store.AddProfile(&entity.Profile{ID: "user-1", Email: "b@example.com"})
	uc := NewProfileUseCase(store.Profiles())
	ctx := context.Background()

	isAdmin, err := uc.IsAdmin(ctx, "admin-1")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = uc.IsAdmin(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, isAdmin)

	isAdmin, err = uc.IsAdmin(ctx, "desconocido")
	require.NoError(t, err)
	assert.False(t, isAdmin)

	list, err := uc.List(ctx, dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a@example.com", list[0].Email)
}
