// Package dashboard keeps the client-side view of the studio: the three collections loaded
// from the API, one action per user intent, and the views derived from them.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/studio-api/internal/dto"
	"github.com/noah-isme/studio-api/internal/models"
	"github.com/noah-isme/studio-api/internal/service"
	"github.com/noah-isme/studio-api/internal/summary"
)

// API is the remote surface the store drives. *client.Client implements it.
type API interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	CreateStudent(ctx context.Context, req service.CreateStudentRequest) (*models.Student, error)
	UpdateStudent(ctx context.Context, id int64, req service.UpdateStudentRequest) (*models.Student, error)
	ListSchedules(ctx context.Context) ([]models.ScheduleDetail, error)
	CreateSchedule(ctx context.Context, req service.CreateScheduleRequest) (*models.Schedule, error)
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, req service.CreateTransactionRequest) (*models.Transaction, error)
	UpdateTransactionStatus(ctx context.Context, id int64, status models.TransactionStatus) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	DraftClassNote(ctx context.Context, req dto.ClassNoteRequest) (*dto.GeneratedText, error)
	DraftMessage(ctx context.Context, req dto.MessageRequest) (*dto.GeneratedText, error)
}

// StudentForm is the editable student record. Empty Plan and Status take the form defaults.
type StudentForm struct {
	Name   string
	Email  string
	Phone  string
	Status models.StudentStatus
	Plan   string
}

const defaultPlan = "Mensal"

// State is a snapshot of the loaded collections.
type State struct {
	Students     []models.Student
	Schedules    []models.ScheduleDetail
	Transactions []models.Transaction
}

// Store serialises actions so a refresh always runs after its mutation has resolved and
// no two actions overlap. Every successful mutation re-fetches the whole affected
// collection; a failed one leaves state untouched and returns the error.
type Store struct {
	mu       sync.Mutex
	api      API
	exporter *service.ExportService
	logger   *zap.Logger
	now      func() time.Time
	state    State
}

// NewStore constructs a Store with empty collections. exportCfg shapes locally rendered exports.
func NewStore(api API, exportCfg service.ExportConfig, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		api:      api,
		exporter: service.NewExportService(nil, exportCfg, nil, nil, logger),
		logger:   logger,
		now:      time.Now,
		state: State{
			Students:     []models.Student{},
			Schedules:    []models.ScheduleDetail{},
			Transactions: []models.Transaction{},
		},
	}
}

// Load fetches all three collections.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshStudents(ctx)
	s.refreshSchedules(ctx)
	s.refreshTransactions(ctx)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Students:     append([]models.Student(nil), s.state.Students...),
		Schedules:    append([]models.ScheduleDetail(nil), s.state.Schedules...),
		Transactions: append([]models.Transaction(nil), s.state.Transactions...),
	}
}

// SaveStudent creates a student when id is zero and otherwise updates it with every form field.
func (s *Store) SaveStudent(ctx context.Context, id int64, form StudentForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if form.Plan == "" {
		form.Plan = defaultPlan
	}
	if form.Status == "" {
		form.Status = models.StudentStatusActive
	}

	var err error
	if id == 0 {
		_, err = s.api.CreateStudent(ctx, service.CreateStudentRequest{
			Name:   form.Name,
			Email:  form.Email,
			Phone:  form.Phone,
			Status: string(form.Status),
			Plan:   form.Plan,
		})
	} else {
		status := string(form.Status)
		_, err = s.api.UpdateStudent(ctx, id, service.UpdateStudentRequest{
			Name:   &form.Name,
			Email:  &form.Email,
			Phone:  &form.Phone,
			Status: &status,
			Plan:   &form.Plan,
		})
	}
	if err != nil {
		return err
	}
	s.refreshStudents(ctx)
	return nil
}

// DeactivateStudent marks a student Inativo. The row is kept.
func (s *Store) DeactivateStudent(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := string(models.StudentStatusInactive)
	if _, err := s.api.UpdateStudent(ctx, id, service.UpdateStudentRequest{Status: &status}); err != nil {
		return err
	}
	s.refreshStudents(ctx)
	return nil
}

// AddSchedule books a class.
func (s *Store) AddSchedule(ctx context.Context, req service.CreateScheduleRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.api.CreateSchedule(ctx, req); err != nil {
		return err
	}
	s.refreshSchedules(ctx)
	return nil
}

// AddTransaction records an income or expense.
func (s *Store) AddTransaction(ctx context.Context, req service.CreateTransactionRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.api.CreateTransaction(ctx, req); err != nil {
		return err
	}
	s.refreshTransactions(ctx)
	return nil
}

// ToggleTransactionStatus flips a loaded transaction between Pendente and Pago.
func (s *Store) ToggleTransactionStatus(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.transaction(id)
	if !ok {
		return fmt.Errorf("transaction %d is not loaded", id)
	}
	if _, err := s.api.UpdateTransactionStatus(ctx, id, current.Status.Toggle()); err != nil {
		return err
	}
	s.refreshTransactions(ctx)
	return nil
}

// DeleteTransaction removes a transaction.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.api.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.refreshTransactions(ctx)
	return nil
}

// FilteredStudents applies the listing filter to the loaded students.
func (s *Store) FilteredStudents(search, status string) []models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	return summary.FilterStudents(s.state.Students, summary.StudentFilter{Search: search, Status: status})
}

// Stats recomputes the dashboard aggregates from the loaded collections.
func (s *Store) Stats() dto.DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return summary.Dashboard(s.state.Students, s.state.Schedules, s.state.Transactions, s.now())
}

// DraftClassNote asks for a class description for a loaded student.
func (s *Store) DraftClassNote(ctx context.Context, studentID int64, extra string) (*dto.GeneratedText, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	student, ok := s.student(studentID)
	if !ok {
		return nil, fmt.Errorf("select a student first: student %d is not loaded", studentID)
	}
	return s.api.DraftClassNote(ctx, dto.ClassNoteRequest{StudentName: student.Name, Context: extra})
}

// DraftMessage asks for a WhatsApp message of the given intent for a loaded student.
func (s *Store) DraftMessage(ctx context.Context, studentID int64, intent dto.MessageIntent) (*dto.GeneratedText, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	student, ok := s.student(studentID)
	if !ok {
		return nil, fmt.Errorf("student %d is not loaded", studentID)
	}
	return s.api.DraftMessage(ctx, dto.MessageRequest{StudentName: student.Name, Intent: intent})
}

// ExportStudents renders the filtered list locally as CSV or PDF.
func (s *Store) ExportStudents(format dto.ExportFormat, search, status string) (*dto.ExportFile, error) {
	students := s.FilteredStudents(search, status)
	return s.exporter.Render(format, students)
}

func (s *Store) student(id int64) (models.Student, bool) {
	for _, st := range s.state.Students {
		if st.ID == id {
			return st, true
		}
	}
	return models.Student{}, false
}

func (s *Store) transaction(id int64) (models.Transaction, bool) {
	for _, t := range s.state.Transactions {
		if t.ID == id {
			return t, true
		}
	}
	return models.Transaction{}, false
}

func (s *Store) refreshStudents(ctx context.Context) {
	students, err := s.api.ListStudents(ctx)
	if err != nil {
		s.logger.Warn("error fetching students", zap.Error(err))
		students = []models.Student{}
	}
	s.state.Students = students
}

func (s *Store) refreshSchedules(ctx context.Context) {
	schedules, err := s.api.ListSchedules(ctx)
	if err != nil {
		s.logger.Warn("error fetching schedules", zap.Error(err))
		schedules = []models.ScheduleDetail{}
	}
	s.state.Schedules = schedules
}

func (s *Store) refreshTransactions(ctx context.Context) {
	transactions, err := s.api.ListTransactions(ctx)
	if err != nil {
		s.logger.Warn("error fetching transactions", zap.Error(err))
		transactions = []models.Transaction{}
	}
	s.state.Transactions = transactions
}
