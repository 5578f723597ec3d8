// Package summary holds the pure projections computed from in-memory collections:
// the student filter used by listings and exports, and the dashboard aggregates.
package summary

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/studio-api/internal/dto"
	"github.com/noah-isme/studio-api/internal/models"
)

// StatusAll disables status filtering.
const StatusAll = "Todos"

// StudentFilter selects students by free text and status.
type StudentFilter struct {
	Search string
	Status string
}

// Matches reports whether the student passes the filter. Search is a case-insensitive
// substring match on name or email; an empty status or StatusAll matches every status.
func (f StudentFilter) Matches(s models.Student) bool {
	if f.Status != "" && f.Status != StatusAll && string(s.Status) != f.Status {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Name), term) ||
		strings.Contains(strings.ToLower(s.Email), term)
}

// FilterStudents returns the students matching f in input order.
func FilterStudents(students []models.Student, f StudentFilter) []models.Student {
	out := make([]models.Student, 0, len(students))
	for _, s := range students {
		if f.Matches(s) {
			out = append(out, s)
		}
	}
	return out
}

// Students counts students by status.
func Students(students []models.Student) dto.StudentStats {
	stats := dto.StudentStats{Total: len(students)}
	for _, s := range students {
		switch s.Status {
		case models.StudentStatusActive:
			stats.Active++
		case models.StudentStatusInactive:
			stats.Inactive++
		case models.StudentStatusTrial:
			stats.Trial++
		}
	}
	return stats
}

// Finance sums income, expenses and settlement totals.
func Finance(transactions []models.Transaction) dto.FinanceStats {
	stats := dto.FinanceStats{
		Income:  decimal.Zero,
		Expense: decimal.Zero,
		Pending: decimal.Zero,
		Paid:    decimal.Zero,
	}
	for _, t := range transactions {
		switch t.Type {
		case models.TransactionIncome:
			stats.Income = stats.Income.Add(t.Amount)
		case models.TransactionExpense:
			stats.Expense = stats.Expense.Add(t.Amount)
		}
		switch t.Status {
		case models.TransactionPaid:
			stats.Paid = stats.Paid.Add(t.Amount)
		case models.TransactionPending:
			stats.Pending = stats.Pending.Add(t.Amount)
		}
	}
	stats.Balance = stats.Income.Sub(stats.Expense)
	return stats
}

// Schedules counts classes, marking those starting at or after now as upcoming.
func Schedules(schedules []models.ScheduleDetail, now time.Time) dto.ScheduleStats {
	stats := dto.ScheduleStats{Total: len(schedules)}
	for _, s := range schedules {
		if !s.ScheduledAt.Before(now) {
			stats.Upcoming++
		}
	}
	return stats
}

// Dashboard combines every aggregate.
func Dashboard(students []models.Student, schedules []models.ScheduleDetail, transactions []models.Transaction, now time.Time) dto.DashboardStats {
	return dto.DashboardStats{
		Students:  Students(students),
		Schedules: Schedules(schedules, now),
		Finance:   Finance(transactions),
	}
}
