package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studio-api/internal/models"
)

func statsFixtures() (*fakeStudentRepo, *fakeScheduleRepo, *fakeTransactionRepo) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	students := &fakeStudentRepo{students: []models.Student{
		{ID: 1, Status: models.StudentStatusActive},
		{ID: 2, Status: models.StudentStatusTrial},
		{ID: 3, Status: models.StudentStatusInactive},
	}}
	schedules := &fakeScheduleRepo{schedules: []models.ScheduleDetail{
		{Schedule: models.Schedule{ID: 1, ScheduledAt: now.Add(-time.Hour)}},
		{Schedule: models.Schedule{ID: 2, ScheduledAt: now.Add(time.Hour)}},
	}}
	transactions := &fakeTransactionRepo{transactions: []models.Transaction{
		{ID: 1, Amount: decimal.NewFromInt(200), Type: models.TransactionIncome, Status: models.TransactionPaid},
		{ID: 2, Amount: decimal.NewFromInt(50), Type: models.TransactionExpense, Status: models.TransactionPending},
	}}
	return students, schedules, transactions
}

func TestStatsServiceDashboard(t *testing.T) {
	students, schedules, transactions := statsFixtures()
	svc := NewStatsService(students, schedules, transactions, nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	stats, hit, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 3, stats.Students.Total)
	assert.Equal(t, 1, stats.Students.Trial)
	assert.Equal(t, 1, stats.Schedules.Upcoming)
	assert.True(t, stats.Finance.Balance.Equal(decimal.NewFromInt(150)))
	assert.True(t, stats.Finance.Pending.Equal(decimal.NewFromInt(50)))
}

func TestStatsServiceUsesCache(t *testing.T) {
	students, schedules, transactions := statsFixtures()
	cache := NewCacheService(&stubCacheRepo{}, NewMetricsService(), time.Minute, nil, true)
	svc := NewStatsService(students, schedules, transactions, cache, nil)

	_, hit, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)

	stats, hit, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 3, stats.Students.Total)
	assert.Equal(t, 1, students.listCalls)

	cache.InvalidateStats(context.Background())
	_, hit, err = svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, students.listCalls)
}

func TestStatsServiceStoreError(t *testing.T) {
	students, schedules, transactions := statsFixtures()
	schedules.err = errStoreDown
	svc := NewStatsService(students, schedules, transactions, nil, nil)

	_, _, err := svc.Dashboard(context.Background())
	require.Error(t, err)
}
