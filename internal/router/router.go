// Package router assembles the gin engine: ambient middleware, the JSON API under the
// configured prefix, observability endpoints and the UI asset fallback.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/studio-api/internal/handler"
	internalmiddleware "github.com/noah-isme/studio-api/internal/middleware"
	"github.com/noah-isme/studio-api/internal/service"
	"github.com/noah-isme/studio-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/studio-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/studio-api/pkg/middleware/requestid"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Students     *handler.StudentHandler
	Schedules    *handler.ScheduleHandler
	Transactions *handler.TransactionHandler
	Stats        *handler.StatsHandler
	Export       *handler.ExportHandler
	Assistant    *handler.AssistantHandler
	Metrics      *handler.MetricsHandler
}

// NewHandlers builds every handler from the service bundle. store backs the readiness probe
// and may be nil.
func NewHandlers(s *service.Services, store handler.Pinger) Handlers {
	return Handlers{
		Students:     handler.NewStudentHandler(s.Students),
		Schedules:    handler.NewScheduleHandler(s.Schedules),
		Transactions: handler.NewTransactionHandler(s.Transactions),
		Stats:        handler.NewStatsHandler(s.Stats),
		Export:       handler.NewExportHandler(s.Export),
		Assistant:    handler.NewAssistantHandler(s.Assistant),
		Metrics:      handler.NewMetricsHandler(s.Metrics, store),
	}
}

// Options tunes cross-cutting behaviour.
type Options struct {
	APIPrefix            string
	StoreConfigured      bool
	AIRateLimitPerMinute int
	AllowedOrigins       []string
	EnableDocs           bool
	// Fallback handles every unmatched route, typically static assets or the dev proxy.
	Fallback gin.HandlerFunc
	Metrics  *service.MetricsService
	Logger   *zap.Logger
}

// New builds the engine.
func New(h Handlers, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.APIPrefix == "" {
		opts.APIPrefix = "/api"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(internalmiddleware.Metrics(opts.Metrics))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))

	if h.Metrics != nil {
		r.GET("/health", h.Metrics.Health)
		r.GET("/ready", h.Metrics.Ready)
		r.GET("/metrics", h.Metrics.Prometheus)
	}
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.APIPrefix)

	data := api.Group("")
	data.Use(internalmiddleware.RequireStore(opts.StoreConfigured))
	{
		students := data.Group("/students")
		students.GET("", h.Students.List)
		students.POST("", h.Students.Create)
		students.GET("/export", h.Export.Students)
		students.PATCH("/:id", h.Students.Update)
		students.DELETE("/:id", h.Students.Delete)

		schedules := data.Group("/schedules")
		schedules.GET("", h.Schedules.List)
		schedules.POST("", h.Schedules.Create)

		transactions := data.Group("/transactions")
		transactions.GET("", h.Transactions.List)
		transactions.POST("", h.Transactions.Create)
		transactions.PATCH("/:id", h.Transactions.Update)
		transactions.DELETE("/:id", h.Transactions.Delete)

		data.GET("/stats", h.Stats.Dashboard)
	}

	ai := api.Group("/ai")
	ai.Use(internalmiddleware.RateLimit(opts.AIRateLimitPerMinute, opts.Logger))
	{
		ai.POST("/class-note", h.Assistant.ClassNote)
		ai.POST("/messages", h.Assistant.Message)
	}

	if opts.Fallback != nil {
		r.NoRoute(opts.Fallback)
	}

	return r
}
