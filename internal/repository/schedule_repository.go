package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studio-api/internal/models"
)

const scheduleColumns = "id, student_id, scheduled_at, duration_minutes, notes, created_at"

// ScheduleRepository provides persistence for booked classes.
type ScheduleRepository struct {
	db      *sqlx.DB
	metrics QueryObserver
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB, metrics QueryObserver) *ScheduleRepository {
	return &ScheduleRepository{db: db, metrics: metrics}
}

// List returns every schedule in chronological order joined with the student's name.
func (r *ScheduleRepository) List(ctx context.Context) ([]models.ScheduleDetail, error) {
	defer observe(r.metrics, "schedules.list", time.Now())
	const query = `SELECT sc.id, sc.student_id, sc.scheduled_at, sc.duration_minutes, sc.notes, sc.created_at, st.name AS student_name
        FROM schedules sc LEFT JOIN students st ON st.id = sc.student_id
        ORDER BY sc.scheduled_at ASC, sc.id ASC`
	schedules := make([]models.ScheduleDetail, 0)
	if err := r.db.SelectContext(ctx, &schedules, query); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	for i := range schedules {
		if name := schedules[i].StudentName; name != nil {
			schedules[i].Student = &models.ScheduleStudent{Name: *name}
		}
	}
	return schedules, nil
}

// Create books a class. The timestamp text is parsed by the store.
func (r *ScheduleRepository) Create(ctx context.Context, in models.NewScheduleInput) (*models.Schedule, error) {
	defer observe(r.metrics, "schedules.create", time.Now())
	query := `INSERT INTO schedules (student_id, scheduled_at, duration_minutes, notes)
        VALUES ($1, $2::timestamptz, $3, $4) RETURNING ` + scheduleColumns
	var created models.Schedule
	if err := r.db.GetContext(ctx, &created, query, in.StudentID, in.ScheduledAt, in.DurationMinutes, in.Notes); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	return &created, nil
}
