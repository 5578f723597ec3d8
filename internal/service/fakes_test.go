package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/noah-isme/studio-api/internal/models"
	appErrors "github.com/noah-isme/studio-api/pkg/errors"
)

var errStoreDown = errors.New(`pq: relation "students" does not exist`)

type fakeStudentRepo struct {
	students  []models.Student
	created   models.Student
	changes   models.StudentChanges
	deleted   int64
	affected  int64
	err       error
	listCalls int
}

func (f *fakeStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.students, nil
}

func (f *fakeStudentRepo) Create(ctx context.Context, student models.Student) (*models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = student
	student.ID = int64(len(f.students) + 1)
	f.students = append(f.students, student)
	return &student, nil
}

func (f *fakeStudentRepo) Update(ctx context.Context, id int64, changes models.StudentChanges) (*models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.changes = changes
	for i := range f.students {
		if f.students[i].ID != id {
			continue
		}
		if changes.Status != nil {
			f.students[i].Status = *changes.Status
		}
		if changes.Name != nil {
			f.students[i].Name = *changes.Name
		}
		out := f.students[i]
		return &out, nil
	}
	return nil, errors.New("sql: no rows in result set")
}

func (f *fakeStudentRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.deleted = id
	return f.affected, nil
}

type fakeScheduleRepo struct {
	schedules []models.ScheduleDetail
	input     models.NewScheduleInput
	err       error
}

func (f *fakeScheduleRepo) List(ctx context.Context) ([]models.ScheduleDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.schedules, nil
}

func (f *fakeScheduleRepo) Create(ctx context.Context, in models.NewScheduleInput) (*models.Schedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	studentID, _ := strconv.ParseInt(in.StudentID.String, 10, 64)
	duration, _ := strconv.Atoi(in.DurationMinutes)
	return &models.Schedule{ID: 1, StudentID: studentID, DurationMinutes: duration, Notes: in.Notes}, nil
}

type fakeTransactionRepo struct {
	transactions []models.Transaction
	input        models.NewTransactionInput
	status       models.TransactionStatus
	deleted      int64
	err          error
}

func (f *fakeTransactionRepo) List(ctx context.Context) ([]models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.transactions, nil
}

func (f *fakeTransactionRepo) Create(ctx context.Context, in models.NewTransactionInput) (*models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	return &models.Transaction{ID: 1, Description: in.Description, Amount: in.Amount, Type: in.Type, Status: in.Status}, nil
}

func (f *fakeTransactionRepo) UpdateStatus(ctx context.Context, id int64, status models.TransactionStatus) (*models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.status = status
	return &models.Transaction{ID: id, Status: status}, nil
}

func (f *fakeTransactionRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.deleted = id
	return 1, nil
}

type stubCacheRepo struct {
	store   map[string][]byte
	deletes []string
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s.store == nil {
		s.store = map[string][]byte{}
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = raw
	return nil
}

func (s *stubCacheRepo) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(s.store, k)
		s.deletes = append(s.deletes, k)
	}
	return nil
}

func strPtr(s string) *string { return &s }
