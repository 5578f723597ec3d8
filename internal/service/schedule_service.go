package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/studio-api/internal/models"
	appErrors "github.com/noah-isme/studio-api/pkg/errors"
)

// ScheduleRepository persists class bookings.
type ScheduleRepository interface {
	List(ctx context.Context) ([]models.ScheduleDetail, error)
	Create(ctx context.Context, in models.NewScheduleInput) (*models.Schedule, error)
}

// NumberText holds a JSON scalar as written: a number keeps its literal, a string its
// contents. null and absent values are empty.
type NumberText string

// UnmarshalJSON implements json.Unmarshaler.
func (n *NumberText) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*n = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumberText(s)
	default:
		*n = NumberText(raw)
	}
	return nil
}

// MarshalJSON writes numeric text as a JSON number and anything else as a string.
func (n NumberText) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseFloat(string(n), 64); err == nil && json.Valid([]byte(n)) {
		return []byte(n), nil
	}
	return json.Marshal(string(n))
}

// integer rewrites whole-valued numbers such as 45.0 as 45 and leaves other text as is.
func (n NumberText) integer() string {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return string(n)
	}
	return strconv.FormatInt(int64(f), 10)
}

// CreateScheduleRequest books a class. Numbers may arrive as JSON numbers or numeric strings
// and are handed to the store unchecked.
type CreateScheduleRequest struct {
	StudentID       NumberText `json:"student_id"`
	ScheduledAt     string     `json:"scheduled_at"`
	DurationMinutes NumberText `json:"duration_minutes"`
	Notes           string     `json:"notes"`
}

// ScheduleService handles class booking use-cases.
type ScheduleService struct {
	repo   ScheduleRepository
	cache  *CacheService
	logger *zap.Logger
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(repo ScheduleRepository, cache *CacheService, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, cache: cache, logger: logger}
}

// List returns all schedules ordered by start time.
func (s *ScheduleService) List(ctx context.Context) ([]models.ScheduleDetail, error) {
	schedules, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list schedules failed", zap.Error(err))
		return nil, appErrors.Store(err)
	}
	return schedules, nil
}

// Create books a class, defaulting the duration to 60 minutes. A missing student_id is
// inserted as NULL so the store reports the violation.
func (s *ScheduleService) Create(ctx context.Context, req CreateScheduleRequest) (*models.Schedule, error) {
	in := models.NewScheduleInput{
		StudentID:       sql.NullString{String: req.StudentID.integer(), Valid: req.StudentID != ""},
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: strconv.Itoa(models.DefaultScheduleDuration),
		Notes:           req.Notes,
	}
	if req.DurationMinutes != "" {
		in.DurationMinutes = req.DurationMinutes.integer()
	}
	created, err := s.repo.Create(ctx, in)
	if err != nil {
		s.logger.Error("create schedule failed", zap.String("student_id", string(req.StudentID)), zap.Error(err))
		return nil, appErrors.Store(err)
	}
	s.cache.InvalidateStats(ctx)
	return created, nil
}
