package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
	"github.com/jhoicas/SellerOps-api/internal/application/ports"
	"github.com/jhoicas/SellerOps-api/internal/domain"
	"github.com/jhoicas/SellerOps-api/internal/domain/analytics"
	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
	"github.com/jhoicas/SellerOps-api/internal/domain/repository"
	"github.com/jhoicas/SellerOps-api/pkg/logger"
)

const (
	defaultLLMTimeout = 10 * time.Second
	worstProductDays  = 30
	promptMaxItems    = 10
	defaultListLimit  = 20
)

const systemPrompt = `Eres un asesor de operaciones para vendedores de marketplace.
Responde en español con entre 1 y 5 recomendaciones concretas. Usa exactamente este formato por recomendación:
Product: <SKU o nombre del producto>
Action: <acción concreta y medible>
Reasoning: <por qué, citando los números recibidos>`

// AnalyticsReader lecturas de analítica que alimentan los prompts.
type AnalyticsReader interface {
	Profit(ctx context.Context, userID string, req dto.DateRangeRequest) (*dto.ProfitResponse, error)
	Trends(ctx context.Context, userID string, req dto.TrendsRequest) (*dto.TrendsResponse, error)
	InventoryHealth(ctx context.Context, userID string) (*dto.InventoryHealthResponse, error)
	WorstProduct(ctx context.Context, userID string, days int) (analytics.SKUSummary, bool, error)
}

// AIUseCase genera recomendaciones de texto con el LLM, las persiste y guarda la última por tipo
// en caché. Aplica un timeout (10 s por defecto) a cada llamada al LLM para que las latencias
// externas no bloqueen los goroutines del servidor.
type AIUseCase struct {
	llm      ports.LLMService
	cache    ports.SuggestionCache
	recRepo  repository.AIRecommendationRepository
	insights AnalyticsReader
	log      *logger.Logger
	timeout  time.Duration
	printer  *message.Printer
	now      func() time.Time
}

// NewAIUseCase construye el caso de uso. timeout <= 0 usa 10 s.
func NewAIUseCase(
	llm ports.LLMService,
	cache ports.SuggestionCache,
	recRepo repository.AIRecommendationRepository,
	insights AnalyticsReader,
	log *logger.Logger,
	timeout time.Duration,
) *AIUseCase {
	if timeout <= 0 {
		timeout = defaultLLMTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AIUseCase{
		llm:      llm,
		cache:    cache,
		recRepo:  recRepo,
		insights: insights,
		log:      log.Component("ai"),
		timeout:  timeout,
		printer:  message.NewPrinter(language.Spanish),
		now:      time.Now,
	}
}

// Suggest resume utilidad, salud del inventario y tendencias de los últimos 30 días y pide
// recomendaciones generales al LLM.
func (uc *AIUseCase) Suggest(ctx context.Context, userID string, in dto.AISuggestionRequest) (*dto.AIRecommendationDTO, error) {
	profit, err := uc.insights.Profit(ctx, userID, dto.DateRangeRequest{})
	if err != nil {
		return nil, err
	}
	health, err := uc.insights.InventoryHealth(ctx, userID)
	if err != nil {
		return nil, err
	}
	trends, err := uc.insights.Trends(ctx, userID, dto.TrendsRequest{})
	if err != nil {
		return nil, err
	}
	if len(health.Items) == 0 && profit.Profit.LineCount == 0 {
		return nil, fmt.Errorf("%w: no hay productos ni ventas para analizar", domain.ErrInvalidInput)
	}

	prompt := uc.suggestionPrompt(profit, health, trends, strings.TrimSpace(in.Focus))
	return uc.generate(ctx, userID, entity.RecommendationTypeSuggestion, prompt)
}

// WorstProductPlan identifica el SKU menos rentable de los últimos 30 días y pide un plan de mejora.
func (uc *AIUseCase) WorstProductPlan(ctx context.Context, userID string) (*dto.WorstProductPlanDTO, error) {
	worst, ok, err := uc.insights.WorstProduct(ctx, userID, worstProductDays)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: sin ventas en los últimos %d días", domain.ErrNotFound, worstProductDays)
	}

	p := uc.printer
	var b strings.Builder
	b.WriteString(p.Sprintf("Producto menos rentable de los últimos %d días:\n", worstProductDays))
	b.WriteString(p.Sprintf("- SKU: %s (%s)\n", worst.SKU, worst.ProductName))
	b.WriteString(p.Sprintf("- Unidades vendidas: %d\n", worst.QuantitySold))
	b.WriteString(p.Sprintf("- Ingreso: %.2f\n", worst.Revenue.InexactFloat64()))
	b.WriteString(p.Sprintf("- Utilidad: %.2f\n", worst.Profit.InexactFloat64()))
	b.WriteString(p.Sprintf("- Margen: %.2f%%\n", worst.Margin.InexactFloat64()))
	b.WriteString("Propón un plan para volverlo rentable (precio, costo, envío o descontinuarlo).")

	rec, err := uc.generate(ctx, userID, entity.RecommendationTypeWorstProductPlan, b.String())
	if err != nil {
		return nil, err
	}
	return &dto.WorstProductPlanDTO{
		SKU:            worst.SKU,
		ProductName:    worst.ProductName,
		Profit:         worst.Profit.StringFixed(2),
		Margin:         worst.Margin.StringFixed(2),
		Recommendation: *rec,
	}, nil
}

// Last devuelve la última recomendación del tipo: primero la caché, luego la base.
func (uc *AIUseCase) Last(ctx context.Context, userID, recType string) (*dto.AIRecommendationDTO, error) {
	if !entity.ValidRecommendationType(recType) {
		return nil, fmt.Errorf("%w: tipo %q desconocido", domain.ErrInvalidInput, recType)
	}
	raw, err := uc.cache.Get(ctx, userID, recType)
	switch {
	case err == nil:
		var out dto.AIRecommendationDTO
		if jerr := json.Unmarshal([]byte(raw), &out); jerr == nil {
			return &out, nil
		}
		uc.log.Warn().Str("user_id", userID).Str("type", recType).Msg("valor de caché ilegible, se consulta la base")
	case errors.Is(err, ports.ErrCacheMiss):
		uc.log.Debug().Str("user_id", userID).Str("type", recType).Msg("caché vacía")
	default:
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("error leyendo caché de sugerencias")
	}

	list, err := uc.recRepo.List(ctx, userID, recType, 1)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	out := toRecommendationDTO(list[0])
	uc.remember(ctx, userID, out)
	return out, nil
}

// List historial de recomendaciones, opcionalmente filtrado por tipo.
func (uc *AIUseCase) List(ctx context.Context, userID, recType string, limit int) (*dto.AIRecommendationListResponse, error) {
	if recType != "" && !entity.ValidRecommendationType(recType) {
		return nil, fmt.Errorf("%w: tipo %q desconocido", domain.ErrInvalidInput, recType)
	}
	if limit <= 0 || limit > 100 {
		limit = defaultListLimit
	}
	list, err := uc.recRepo.List(ctx, userID, recType, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AIRecommendationDTO, 0, len(list))
	for _, r := range list {
		items = append(items, *toRecommendationDTO(r))
	}
	return &dto.AIRecommendationListResponse{Items: items}, nil
}

// MarkApplied marca la recomendación como aplicada.
func (uc *AIUseCase) MarkApplied(ctx context.Context, userID, id string) (*dto.AIRecommendationDTO, error) {
	rec, err := uc.recRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	if rec.Status == entity.RecommendationStatusApplied {
		return toRecommendationDTO(rec), nil
	}
	now := uc.now()
	if err := uc.recRepo.MarkApplied(ctx, userID, id, now); err != nil {
		return nil, err
	}
	rec.Status = entity.RecommendationStatusApplied
	rec.AppliedAt = &now
	out := toRecommendationDTO(rec)

	// Si es la que está en caché, se refresca el estado.
	if raw, err := uc.cache.Get(ctx, userID, rec.Type); err == nil {
		var cached dto.AIRecommendationDTO
		if json.Unmarshal([]byte(raw), &cached) == nil && cached.ID == rec.ID {
			uc.remember(ctx, userID, out)
		}
	}
	return out, nil
}

func (uc *AIUseCase) generate(ctx context.Context, userID, recType, prompt string) (*dto.AIRecommendationDTO, error) {
	llmCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := uc.now()
	text, err := uc.llm.Complete(llmCtx, systemPrompt, prompt)
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", userID).Str("type", recType).Msg("fallo la llamada al LLM")
		return nil, fmt.Errorf("recomendación IA: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("recomendación IA: respuesta vacía del modelo")
	}
	uc.log.Debug().Str("type", recType).Dur("elapsed", uc.now().Sub(start)).Msg("respuesta del LLM recibida")

	rec := &entity.AIRecommendation{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      recType,
		Content:   text,
		Status:    entity.RecommendationStatusPending,
		CreatedAt: uc.now(),
	}
	if err := uc.recRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("guardar recomendación: %w", err)
	}
	out := toRecommendationDTO(rec)
	uc.remember(ctx, userID, out)
	return out, nil
}

// remember guarda la recomendación en caché; un fallo solo se registra.
func (uc *AIUseCase) remember(ctx context.Context, userID string, rec *dto.AIRecommendationDTO) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, userID, rec.Type, string(raw)); err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Str("type", rec.Type).Msg("no se pudo guardar la sugerencia en caché")
	}
}

func (uc *AIUseCase) suggestionPrompt(profit *dto.ProfitResponse, health *dto.InventoryHealthResponse, trends *dto.TrendsResponse, focus string) string {
	p := uc.printer
	pr := profit.Profit
	var b strings.Builder

	b.WriteString(p.Sprintf("Resumen de %s a %s:\n", profit.Period.StartDate, profit.Period.EndDate))
	b.WriteString(p.Sprintf("- Ingreso total: %.2f (envíos %.2f)\n", pr.TotalRevenue.InexactFloat64(), pr.ShippingIncome.InexactFloat64()))
	b.WriteString(p.Sprintf("- Comisión plataforma: %.2f; costo de mercancía: %.2f; costos adicionales: %.2f\n",
		pr.PlatformFee.InexactFloat64(), pr.CostOfGoods.InexactFloat64(), pr.AdditionalCosts.InexactFloat64()))
	b.WriteString(p.Sprintf("- Utilidad neta: %.2f (margen %.2f%%) en %d pedidos\n",
		pr.NetProfit.InexactFloat64(), pr.ProfitMargin.InexactFloat64(), pr.OrderCount))

	b.WriteString("\nInventario (SKU, unidades, días de stock, salud, tendencia):\n")
	for i, h := range health.Items {
		if i == promptMaxItems {
			break
		}
		b.WriteString(p.Sprintf("- %s %s: %d u, %.1f días, %s, %s\n", h.SKU, h.ProductName, h.Quantity, h.DaysOfStock, h.Health, h.Trend))
	}

	b.WriteString("\nTendencias vs período anterior (SKU, ingreso, margen, variación de unidades):\n")
	for i, t := range trends.Items {
		if i == promptMaxItems {
			break
		}
		change := "n/d"
		if t.QuantityChange.Value != nil {
			change = p.Sprintf("%.1f%%", t.QuantityChange.Value.InexactFloat64())
		} else if t.QuantityChange.Unbounded {
			change = "nuevo"
		}
		b.WriteString(p.Sprintf("- %s: %.2f, %.2f%%, %s\n", t.SKU, t.Current.Revenue.InexactFloat64(), t.Current.Margin.InexactFloat64(), change))
	}

	if focus != "" {
		b.WriteString("\nEnfoque solicitado: ")
		b.WriteString(focus)
		b.WriteString("\n")
	}
	return b.String()
}

func toRecommendationDTO(r *entity.AIRecommendation) *dto.AIRecommendationDTO {
	items := ParseRecommendations(r.Content)
	if items == nil {
		items = []dto.AIRecommendationItem{}
	}
	return &dto.AIRecommendationDTO{
		ID:        r.ID,
		Type:      r.Type,
		Content:   r.Content,
		Items:     items,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		AppliedAt: r.AppliedAt,
	}
}
