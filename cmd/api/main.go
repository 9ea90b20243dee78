package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/SellerOps-api/docs"
	"github.com/jhoicas/SellerOps-api/internal/application/admin"
	appanalytics "github.com/jhoicas/SellerOps-api/internal/application/analytics"
	"github.com/jhoicas/SellerOps-api/internal/application/ports"
	"github.com/jhoicas/SellerOps-api/internal/application/system"
	"github.com/jhoicas/SellerOps-api/internal/application/usecase"
	infraai "github.com/jhoicas/SellerOps-api/internal/infrastructure/ai"
	infracache "github.com/jhoicas/SellerOps-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/SellerOps-api/internal/infrastructure/pdf"
	"github.com/jhoicas/SellerOps-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/SellerOps-api/internal/interfaces/http"
	"github.com/jhoicas/SellerOps-api/pkg/config"
	"github.com/jhoicas/SellerOps-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("ai_provider", cfg.AI.Provider).
		Bool("redis", cfg.Redis.Enabled()).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	canceledRepo := postgres.NewCanceledOrderRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	invitationRepo := postgres.NewInvitationRepository(pool)
	recRepo := postgres.NewAIRecommendationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de la última sugerencia: Redis si está configurado, si no no-op.
	var suggestionCache ports.SuggestionCache = infracache.NoopSuggestionCache{}
	if cfg.Redis.Enabled() {
		redisCache := infracache.NewRedisSuggestionCache(cfg.Redis)
		defer redisCache.Close()
		suggestionCache = redisCache
	}

	var llm ports.LLMService
	switch cfg.AI.Provider {
	case config.AIProviderGemini:
		llm = infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	default:
		llm = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel, cfg.AI.AnthropicURL)
	}

	analyticsUC := appanalytics.NewAnalyticsUseCase(
		productRepo, saleRepo, canceledRepo, settingsRepo,
		infrapdf.NewMarotoReportGenerator(),
	)
	aiUC := usecase.NewAIUseCase(llm, suggestionCache, recRepo, analyticsUC, log, cfg.AI.Timeout)
	maintenanceUC := system.NewMaintenanceUseCase(
		postgres.NewPoolHealth(pool), suggestionCache, postgres.NewMigrator(pool), log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     usecase.NewProductUseCase(productRepo, txRunner),
		SaleUC:        usecase.NewSaleUseCase(saleRepo, settingsRepo, txRunner),
		SettingsUC:    usecase.NewSettingsUseCase(settingsRepo),
		AIUC:          aiUC,
		AnalyticsUC:   analyticsUC,
		InvitationUC:  admin.NewInvitationUseCase(invitationRepo),
		ProfileUC:     admin.NewProfileUseCase(profileRepo),
		MaintenanceUC: maintenanceUC,
		Auth: httpRouter.AuthConfig{
			Secret:   cfg.JWT.Secret,
			Issuer:   cfg.JWT.Issuer,
			Audience: cfg.JWT.Audience,
		},
		MigrationTokenHash: cfg.Migrations.TokenHash,
		AppName:            cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
