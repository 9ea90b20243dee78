package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
	"github.com/jhoicas/SellerOps-api/internal/application/ports"
	"github.com/jhoicas/SellerOps-api/internal/domain"
	"github.com/jhoicas/SellerOps-api/internal/domain/analytics"
	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
	"github.com/jhoicas/SellerOps-api/internal/infrastructure/memory"
	"github.com/jhoicas/SellerOps-api/pkg/logger"
)

type fakeLLM struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
	deadline   bool
}

func (f *fakeLLM) Complete(ctx context.Context, system, user string) (string, error) {
	f.lastSystem, f.lastUser = system, user
	_, f.deadline = ctx.Deadline()
	return f.reply, f.err
}

type mapCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMapCache() *mapCache { return &mapCache{data: make(map[string]string)} }

func (c *mapCache) Get(_ context.Context, userID, recType string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[userID+":"+recType]
	if !ok {
		return "", ports.ErrCacheMiss
	}
	return v, nil
}

func (c *mapCache) Set(_ context.Context, userID, recType, content string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[userID+":"+recType] = content
	return nil
}

func (c *mapCache) Ping(context.Context) error { return nil }

type fakeInsights struct {
	worst   analytics.SKUSummary
	noSales bool
	empty   bool
}

func (f *fakeInsights) Profit(context.Context, string, dto.DateRangeRequest) (*dto.ProfitResponse, error) {
	p := dto.ProfitDTO{TotalRevenue: dec("1500"), NetProfit: dec("300"), ProfitMargin: dec("20"), OrderCount: 12, LineCount: 15}
	if f.empty {
		p = dto.ProfitDTO{}
	}
	return &dto.ProfitResponse{Period: dto.PeriodDTO{StartDate: "2025-06-01", EndDate: "2025-06-30"}, Profit: p}, nil
}

func (f *fakeInsights) Trends(context.Context, string, dto.TrendsRequest) (*dto.TrendsResponse, error) {
	if f.empty {
		return &dto.TrendsResponse{}, nil
	}
	return &dto.TrendsResponse{Items: []dto.SKUTrendDTO{{SKU: "MUG-1", QuantityChange: dto.ChangeDTO{Unbounded: true}}}}, nil
}

func (f *fakeInsights) InventoryHealth(context.Context, string) (*dto.InventoryHealthResponse, error) {
	if f.empty {
		return &dto.InventoryHealthResponse{}, nil
	}
	return &dto.InventoryHealthResponse{Items: []dto.InventoryHealthDTO{
		{SKU: "MUG-1", ProductName: "Taza", Quantity: 3, DaysOfStock: 2, Health: "critical", Trend: "increasing"},
	}}, nil
}

func (f *fakeInsights) WorstProduct(context.Context, string, int) (analytics.SKUSummary, bool, error) {
	if f.noSales {
		return analytics.SKUSummary{}, false, nil
	}
	return f.worst, true, nil
}

const llmReply = `1. **Product:** MUG-1
Action: Reponer 40 unidades esta semana
Reasoning: Quedan 2 días de stock
y la demanda crece.
2. Product: PLATE-2
Action: Subir el precio 5%
Reasoning: El margen está bajo el mínimo.`

func newAIUC(llm *fakeLLM, cache *mapCache, insights *fakeInsights) (*AIUseCase, *memory.Store) {
	store := memory.NewStore()
	uc := NewAIUseCase(llm, cache, store.Recommendations(), insights, logger.Nop(), 0)
	uc.now = func() time.Time { return fixedNow }
	return uc, store
}

func TestParseRecommendations(t *testing.T) {
	want := []dto.AIRecommendationItem{
		{Product: "MUG-1", Action: "Reponer 40 unidades esta semana", Reasoning: "Quedan 2 días de stock y la demanda crece."},
		{Product: "PLATE-2", Action: "Subir el precio 5%", Reasoning: "El margen está bajo el mínimo."},
	}
	if diff := cmp.Diff(want, ParseRecommendations(llmReply)); diff != "" {
		t.Errorf("ParseRecommendations (-want +got):\n%s", diff)
	}

	assert.Empty(t, ParseRecommendations("Sin formato reconocible."))

	es := ParseRecommendations("- Producto: Lámpara\n- Acción: Descontinuar\n- Razón: pierde dinero")
	require.Len(t, es, 1)
	assert.Equal(t, "Descontinuar", es[0].Action)
	assert.Equal(t, "pierde dinero", es[0].Reasoning)
}

func TestAIUseCase_Suggest(t *testing.T) {
	llm := &fakeLLM{reply: llmReply}
	cache := newMapCache()
	uc, _ := newAIUC(llm, cache, &fakeInsights{})
	ctx := context.Background()

	out, err := uc.Suggest(ctx, testUser, dto.AISuggestionRequest{Focus: "envíos"})
	require.NoError(t, err)
	assert.Equal(t, entity.RecommendationTypeSuggestion, out.Type)
	assert.Equal(t, entity.RecommendationStatusPending, out.Status)
	assert.Len(t, out.Items, 2)
	assert.True(t, llm.deadline, "la llamada al LLM debe tener timeout")
	assert.Contains(t, llm.lastSystem, "Product:")
	assert.Contains(t, llm.lastUser, "MUG-1")
	assert.Contains(t, llm.lastUser, "Enfoque solicitado: envíos")

	last, err := uc.Last(ctx, testUser, entity.RecommendationTypeSuggestion)
	require.NoError(t, err)
	assert.Equal(t, out.ID, last.ID, "la última sugerencia sale de la caché")

	_, err = uc.Last(ctx, testUser, "otro")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAIUseCase_SuggestSinDatos(t *testing.T) {
	llm := &fakeLLM{reply: llmReply}
	uc, _ := newAIUC(llm, newMapCache(), &fakeInsights{empty: true})

	_, err := uc.Suggest(context.Background(), testUser, dto.AISuggestionRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, llm.lastUser, "no se llama al LLM")
}

func TestAIUseCase_ErrorDelLLM(t *testing.T) {
	llm := &fakeLLM{err: errors.New("503")}
	uc, store := newAIUC(llm, newMapCache(), &fakeInsights{})

	_, err := uc.Suggest(context.Background(), testUser, dto.AISuggestionRequest{})
	require.Error(t, err)

	list, _ := store.Recommendations().List(context.Background(), testUser, "", 10)
	assert.Empty(t, list, "no se persiste nada si el LLM falla")
}

func TestAIUseCase_WorstProductPlan(t *testing.T) {
	llm := &fakeLLM{reply: "Product: LAMP\nAction: Descontinuar\nReasoning: margen negativo"}
	insights := &fakeInsights{worst: analytics.SKUSummary{
		SKU: "LAMP", ProductName: "Lámpara", QuantitySold: 4, Revenue: dec("40"), Profit: dec("-12.5"), Margin: dec("-31.25"),
	}}
	uc, _ := newAIUC(llm, newMapCache(), insights)
	ctx := context.Background()

	out, err := uc.WorstProductPlan(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, "LAMP", out.SKU)
	assert.Equal(t, "-12.50", out.Profit)
	assert.Equal(t, entity.RecommendationTypeWorstProductPlan, out.Recommendation.Type)
	assert.True(t, strings.Contains(llm.lastUser, "LAMP"))

	insights.noSales = true
	_, err = uc.WorstProductPlan(ctx, testUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAIUseCase_LastDesdeBaseYMarkApplied(t *testing.T) {
	llm := &fakeLLM{reply: llmReply}
	cache := newMapCache()
	uc, _ := newAIUC(llm, cache, &fakeInsights{})
	ctx := context.Background()

	_, err := uc.Last(ctx, testUser, entity.RecommendationTypeSuggestion)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created, err := uc.Suggest(ctx, testUser, dto.AISuggestionRequest{})
	require.NoError(t, err)

	// caché perdida (ej. reinicio de Redis): se recupera de la base
	cache.data = make(map[string]string)
	last, err := uc.Last(ctx, testUser, entity.RecommendationTypeSuggestion)
	require.NoError(t, err)
	assert.Equal(t, created.ID, last.ID)

	applied, err := uc.MarkApplied(ctx, testUser, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RecommendationStatusApplied, applied.Status)
	require.NotNil(t, applied.AppliedAt)

	last, err = uc.Last(ctx, testUser, entity.RecommendationTypeSuggestion)
	require.NoError(t, err)
	assert.Equal(t, entity.RecommendationStatusApplied, last.Status, "la caché se actualiza")

	list, err := uc.List(ctx, testUser, "", 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	_, err = uc.MarkApplied(ctx, testUser, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
