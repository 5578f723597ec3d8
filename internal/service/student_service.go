package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/studio-api/internal/models"
	appErrors "github.com/noah-isme/studio-api/pkg/errors"
)

// StudentRepository persists students.
type StudentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	Create(ctx context.Context, student models.Student) (*models.Student, error)
	Update(ctx context.Context, id int64, changes models.StudentChanges) (*models.Student, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// CreateStudentRequest holds payload for creating students. Status falls back to Ativo.
type CreateStudentRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Status string `json:"status"`
	Plan   string `json:"plan"`
}

// UpdateStudentRequest holds a partial student update; omitted fields are kept.
type UpdateStudentRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Status *string `json:"status"`
	Plan   *string `json:"plan"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo   StudentRepository
	cache  *CacheService
	logger *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo StudentRepository, cache *CacheService, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, cache: cache, logger: logger}
}

// List returns every student, newest first.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list students failed", zap.Error(err))
		return nil, appErrors.Store(err)
	}
	return students, nil
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	status := models.StudentStatus(req.Status)
	if status == "" {
		status = models.StudentStatusActive
	}
	created, err := s.repo.Create(ctx, models.Student{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: status,
		Plan:   req.Plan,
	})
	if err != nil {
		s.logger.Error("create student failed", zap.Error(err))
		return nil, appErrors.Store(err)
	}
	s.cache.InvalidateStats(ctx)
	return created, nil
}

// Update applies a partial update. Concurrent updates are last-write-wins.
func (s *StudentService) Update(ctx context.Context, id int64, req UpdateStudentRequest) (*models.Student, error) {
	changes := models.StudentChanges{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Plan:  req.Plan,
	}
	if req.Status != nil {
		status := models.StudentStatus(*req.Status)
		changes.Status = &status
	}
	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		s.logger.Error("update student failed", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Store(err)
	}
	if !changes.Empty() {
		s.cache.InvalidateStats(ctx)
	}
	return updated, nil
}

// Delete removes the student row. No existence check is made; a missing id is not an error.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete student failed", zap.Int64("id", id), zap.Error(err))
		return appErrors.Store(err)
	}
	if affected == 0 {
		s.logger.Debug("delete student matched no rows", zap.Int64("id", id))
	}
	s.cache.InvalidateStats(ctx)
	return nil
}
