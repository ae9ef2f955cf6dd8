package router

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"form-service/internal/cache"
	"form-service/internal/client"
	"form-service/internal/config"
	"form-service/internal/handler"
	"form-service/internal/metrics"
	"form-service/internal/middleware"
	"form-service/internal/permission"
	"form-service/internal/render"
	"form-service/internal/repository"
	"form-service/internal/service"
	"form-service/internal/signer"
	"form-service/internal/storage"
)

// Config holds the dependencies the router wires into handlers
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	JWTSecret      string
	BasePath       string
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	Forms          config.FormsConfig
	Cache          cache.FormCache
	Store          storage.ArtifactStore
	Notifier       client.NotificationClient
	Signer         signer.Signer
	// Checker defaults to the token grant checker
	Checker permission.Checker
}

func Setup(cfg Config) *gin.Engine {
	// request bodies are mapped onto typed structs; unknown keys are rejected
	binding.EnableDecoderDisallowUnknownFields = true

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	checker := cfg.Checker
	if checker == nil {
		checker = permission.NewClaimsChecker()
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	formRepo := repository.NewFormRepository(cfg.DB)
	fieldRepo := repository.NewFieldRepository(cfg.DB)
	messageRepo := repository.NewMessageRepository(cfg.DB)

	formService := service.NewFormService(formRepo, fieldRepo, checker, cfg.Cache, cfg.Metrics, logger)
	entryService := service.NewEntryService(formRepo, fieldRepo, messageRepo, checker, logger)
	transferService := service.NewTransferService(formRepo, fieldRepo, cfg.Store, checker, cfg.Cache, cfg.Metrics, logger)
	submissionService := service.NewSubmissionService(formRepo, fieldRepo, messageRepo, cfg.Notifier, cfg.Signer, cfg.Metrics, logger)
	engine := render.NewEngine(formRepo, fieldRepo, cfg.Signer, cfg.Forms)

	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)
	formHandler := handler.NewFormHandler(formService, cfg.Forms.DefaultSiteID)
	entryHandler := handler.NewEntryHandler(entryService)
	transferHandler := handler.NewTransferHandler(transferService)
	publicHandler := handler.NewPublicHandler(engine, submissionService, cfg.Forms.CSRFEnabled)

	metricsHandler := gin.WrapH(promhttp.Handler())
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", metricsHandler)

	api := r.Group(cfg.BasePath)
	if cfg.BasePath != "" && cfg.BasePath != "/" {
		api.GET("/health", healthHandler.Health)
		api.GET("/ready", healthHandler.Ready)
		api.GET("/metrics", metricsHandler)
	}
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public endpoints
	api.GET("/forms/:id/render", publicHandler.RenderForm)
	api.POST(cfg.Forms.SubmissionEndpoint, publicHandler.Send)

	forms := api.Group("/forms")
	forms.Use(middleware.Auth(cfg.JWTSecret))
	{
		forms.GET("", formHandler.ListForms)
		forms.POST("", formHandler.SaveForm)
		forms.GET("/new", formHandler.NewForm)
		forms.GET("/settings", formHandler.GetSettings)
		forms.GET("/:id", formHandler.GetForm)

		forms.POST("/export", transferHandler.Export)
		forms.POST("/import", transferHandler.Import)
		forms.GET("/download", transferHandler.Download)

		forms.GET("/:id/entries", entryHandler.GetEntries)
		forms.GET("/:id/entries/:entryId", entryHandler.GetEntry)
	}

	return r
}
