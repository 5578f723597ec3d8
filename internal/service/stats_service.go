package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/studio-api/internal/dto"
	"github.com/noah-isme/studio-api/internal/models"
	"github.com/noah-isme/studio-api/internal/summary"
	appErrors "github.com/noah-isme/studio-api/pkg/errors"
)

type studentLister interface {
	List(ctx context.Context) ([]models.Student, error)
}

type scheduleLister interface {
	List(ctx context.Context) ([]models.ScheduleDetail, error)
}

type transactionLister interface {
	List(ctx context.Context) ([]models.Transaction, error)
}

// StatsService computes dashboard aggregates, optionally cached in Redis.
type StatsService struct {
	students     studentLister
	schedules    scheduleLister
	transactions transactionLister
	cache        *CacheService
	logger       *zap.Logger
	now          func() time.Time
}

// NewStatsService constructs a StatsService.
func NewStatsService(students studentLister, schedules scheduleLister, transactions transactionLister, cache *CacheService, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{
		students:     students,
		schedules:    schedules,
		transactions: transactions,
		cache:        cache,
		logger:       logger,
		now:          time.Now,
	}
}

// Dashboard returns the aggregates and whether they were served from cache.
func (s *StatsService) Dashboard(ctx context.Context) (*dto.DashboardStats, bool, error) {
	var cached dto.DashboardStats
	if hit, err := s.cache.Get(ctx, StatsCacheKey, &cached); err == nil && hit {
		return &cached, true, nil
	}

	students, err := s.students.List(ctx)
	if err != nil {
		s.logger.Error("stats: list students failed", zap.Error(err))
		return nil, false, appErrors.Store(err)
	}
	schedules, err := s.schedules.List(ctx)
	if err != nil {
		s.logger.Error("stats: list schedules failed", zap.Error(err))
		return nil, false, appErrors.Store(err)
	}
	transactions, err := s.transactions.List(ctx)
	if err != nil {
		s.logger.Error("stats: list transactions failed", zap.Error(err))
		return nil, false, appErrors.Store(err)
	}

	stats := summary.Dashboard(students, schedules, transactions, s.now())
	_ = s.cache.Set(ctx, StatsCacheKey, stats, 0)
	return &stats, false, nil
}
