package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Repositories are the stores the use-case layer depends on. Cache may be nil.
type Repositories struct {
	Students     StudentRepository
	Schedules    ScheduleRepository
	Transactions TransactionRepository
	Cache        CacheRepository
}

// Options carries optional collaborators.
type Options struct {
	StatsCacheEnabled bool
	StatsCacheTTL     time.Duration
	// Generator drafts texts; nil disables the assistant endpoints.
	Generator TextGenerator
	Export    ExportConfig
	Metrics   *MetricsService
	Logger    *zap.Logger
}

// Services bundles every use-case service.
type Services struct {
	Students     *StudentService
	Schedules    *ScheduleService
	Transactions *TransactionService
	Stats        *StatsService
	Assistant    *AssistantService
	Export       *ExportService
	Cache        *CacheService
	Metrics      *MetricsService
}

// New wires the services around the given repositories.
func New(repos Repositories, opts Options) *Services {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	validate := validator.New()
	cache := NewCacheService(repos.Cache, opts.Metrics, opts.StatsCacheTTL, logger.Named("cache"), opts.StatsCacheEnabled)

	return &Services{
		Students:     NewStudentService(repos.Students, cache, logger.Named("students")),
		Schedules:    NewScheduleService(repos.Schedules, cache, logger.Named("schedules")),
		Transactions: NewTransactionService(repos.Transactions, cache, logger.Named("transactions")),
		Stats:        NewStatsService(repos.Students, repos.Schedules, repos.Transactions, cache, logger.Named("stats")),
		Assistant:    NewAssistantService(opts.Generator, validate, opts.Metrics, logger.Named("assistant")),
		Export:       NewExportService(repos.Students, opts.Export, validate, opts.Metrics, logger.Named("export")),
		Cache:        cache,
		Metrics:      opts.Metrics,
	}
}
