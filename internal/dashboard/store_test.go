package dashboard

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studio-api/internal/dto"
	"github.com/noah-isme/studio-api/internal/models"
	"github.com/noah-isme/studio-api/internal/repository/memory"
	"github.com/noah-isme/studio-api/internal/router"
	"github.com/noah-isme/studio-api/internal/service"
	"github.com/noah-isme/studio-api/pkg/client"
)

type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, prompt string) (string, error) {
	return "rascunho: " + prompt, nil
}

func newStore(t *testing.T) (*Store, *memory.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := memory.New()
	svcs := service.New(service.Repositories{
		Students:     db.Students(),
		Schedules:    db.Schedules(),
		Transactions: db.Transactions(),
	}, service.Options{Generator: echoGenerator{}})
	srv := httptest.NewServer(router.New(router.NewHandlers(svcs, nil), router.Options{StoreConfigured: true}))
	t.Cleanup(srv.Close)
	return NewStore(client.New(srv.URL+"/api"), service.ExportConfig{StudioName: "VOLL Pilates"}, nil), db
}

func TestStoreStudentActions(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	store.Load(ctx)
	assert.Empty(t, store.Snapshot().Students)

	require.NoError(t, store.SaveStudent(ctx, 0, StudentForm{Name: "Ana Souza", Email: "ana@x.com"}))
	require.NoError(t, store.SaveStudent(ctx, 0, StudentForm{Name: "Bruno", Email: "b@x.com", Status: models.StudentStatusTrial}))

	students := store.Snapshot().Students
	require.Len(t, students, 2)
	assert.Equal(t, "Bruno", students[0].Name)
	ana := students[1]
	assert.Equal(t, "Mensal", ana.Plan)
	assert.Equal(t, models.StudentStatusActive, ana.Status)

	require.NoError(t, store.SaveStudent(ctx, ana.ID, StudentForm{Name: "Ana S.", Email: ana.Email, Plan: "Anual", Status: ana.Status}))
	require.NoError(t, store.DeactivateStudent(ctx, ana.ID))

	filtered := store.FilteredStudents("ANA", "Inativo")
	require.Len(t, filtered, 1)
	assert.Equal(t, "Ana S.", filtered[0].Name)
	assert.Equal(t, "Anual", filtered[0].Plan)
	assert.Len(t, store.FilteredStudents("", "Todos"), 2)
	assert.Len(t, store.FilteredStudents("b@x", ""), 1)

	stats := store.Stats()
	assert.Equal(t, 2, stats.Students.Total)
	assert.Equal(t, 1, stats.Students.Trial)
	assert.Equal(t, 0, stats.Students.Active)
}

func TestStoreTransactionActions(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddTransaction(ctx, service.CreateTransactionRequest{
		Description: "Mensalidade", Amount: decimal.NewFromInt(200), Type: "Receita", Category: "Mensalidade", DueDate: "2024-05-10",
	}))
	require.NoError(t, store.AddTransaction(ctx, service.CreateTransactionRequest{
		Description: "Aluguel", Amount: decimal.NewFromInt(80), Type: "Despesa", Category: "Fixo", DueDate: "2024-05-05", Status: "Pago",
	}))

	txs := store.Snapshot().Transactions
	require.Len(t, txs, 2)
	assert.Equal(t, "Aluguel", txs[0].Description)
	income := txs[1]
	assert.Equal(t, models.TransactionPending, income.Status)

	require.NoError(t, store.ToggleTransactionStatus(ctx, income.ID))
	assert.Equal(t, models.TransactionPaid, store.Snapshot().Transactions[1].Status)
	require.NoError(t, store.ToggleTransactionStatus(ctx, income.ID))
	assert.Equal(t, models.TransactionPending, store.Snapshot().Transactions[1].Status)

	stats := store.Stats()
	assert.True(t, stats.Finance.Income.Equal(decimal.NewFromInt(200)))
	assert.True(t, stats.Finance.Expense.Equal(decimal.NewFromInt(80)))
	assert.True(t, stats.Finance.Pending.Equal(decimal.NewFromInt(200)))
	assert.True(t, stats.Finance.Paid.Equal(decimal.NewFromInt(80)))

	require.NoError(t, store.DeleteTransaction(ctx, income.ID))
	assert.Len(t, store.Snapshot().Transactions, 1)

	assert.Error(t, store.ToggleTransactionStatus(ctx, 999))
}

func TestStoreFailedMutationKeepsState(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveStudent(ctx, 0, StudentForm{Name: "Ana"}))
	before := store.Snapshot()

	err := store.SaveStudent(ctx, 0, StudentForm{Name: "Ghost", Status: "Fantasma"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "students_status_check")
	assert.Equal(t, before, store.Snapshot())

	db.Fail("students", errors.New("connection reset"))
	err = store.DeactivateStudent(ctx, before.Students[0].ID)
	assert.EqualError(t, err, "connection reset")
	assert.Equal(t, before, store.Snapshot())
}

func TestStoreReadFailureEmptiesCollection(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveStudent(ctx, 0, StudentForm{Name: "Ana"}))
	require.NoError(t, store.AddSchedule(ctx, service.CreateScheduleRequest{StudentID: "1", ScheduledAt: "2099-01-01T09:00"}))
	require.Len(t, store.Snapshot().Schedules, 1)
	assert.Equal(t, 1, store.Stats().Schedules.Upcoming)

	db.Fail("schedules", errors.New("timeout"))
	store.Load(ctx)
	snap := store.Snapshot()
	assert.Len(t, snap.Students, 1)
	assert.Empty(t, snap.Schedules)
}

func TestStoreDraftsAndExport(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveStudent(ctx, 0, StudentForm{Name: "Ana", Email: "ana@x.com"}))
	id := store.Snapshot().Students[0].ID

	note, err := store.DraftClassNote(ctx, id, "foco em mobilidade")
	require.NoError(t, err)
	assert.Contains(t, note.Text, "aluno Ana")
	assert.Contains(t, note.Text, "foco em mobilidade")

	msg, err := store.DraftMessage(ctx, id, dto.IntentBilling)
	require.NoError(t, err)
	assert.Contains(t, msg.Text, "mensalidade pendente")
	assert.True(t, strings.HasPrefix(msg.ShareURL, "https://wa.me/?text="))

	_, err = store.DraftMessage(ctx, 404, dto.IntentReminder)
	assert.Error(t, err)

	file, err := store.ExportStudents(dto.ExportCSV, "ana", "Todos")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(file.Filename, "alunos_"))
	assert.Contains(t, string(file.Payload), "Ana,ana@x.com")

	file, err = store.ExportStudents(dto.ExportPDF, "", "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(file.Filename, ".pdf"))
}

func TestStoreRefetchesWholeCollectionAfterMutation(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveStudent(ctx, 0, StudentForm{Name: "Ana", Email: "ana@x.com"}))
	ana := store.Snapshot().Students[0]

	_, err := db.Students().Create(ctx, models.Student{Name: "Carla", Status: models.StudentStatusTrial, Plan: "Anual"})
	require.NoError(t, err)
	require.Len(t, store.Snapshot().Students, 1)

	require.NoError(t, store.DeactivateStudent(ctx, ana.ID))
	names := []string{}
	for _, s := range store.Snapshot().Students {
		names = append(names, s.Name)
	}
	assert.ElementsMatch(t, []string{"Ana", "Carla"}, names)

	require.NoError(t, store.AddTransaction(ctx, service.CreateTransactionRequest{
		Description: "Mensalidade", Amount: decimal.NewFromInt(200), Type: "Receita", Category: "Mensalidade", DueDate: "2024-05-10",
	}))
	tx := store.Snapshot().Transactions[0]

	_, err = db.Transactions().Create(ctx, models.NewTransactionInput{
		Description: "Aluguel", Amount: decimal.NewFromInt(900), Type: models.TransactionExpense,
		Category: "Fixo", DueDate: "2024-05-01", Status: models.TransactionPending,
	})
	require.NoError(t, err)
	require.Len(t, store.Snapshot().Transactions, 1)

	require.NoError(t, store.ToggleTransactionStatus(ctx, tx.ID))
	transactions := store.Snapshot().Transactions
	require.Len(t, transactions, 2)
	assert.Equal(t, "Aluguel", transactions[0].Description)
	assert.Equal(t, models.TransactionPaid, transactions[1].Status)
}

func TestStoreFailedMutationSkipsRefresh(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveStudent(ctx, 0, StudentForm{Name: "Ana"}))
	before := store.Snapshot()

	_, err := db.Students().Create(ctx, models.Student{Name: "Carla", Status: models.StudentStatusActive})
	require.NoError(t, err)
	db.Fail("students", errors.New(`relation "students" does not exist`))

	err = store.DeactivateStudent(ctx, before.Students[0].ID)
	require.Error(t, err)
	assert.Equal(t, before, store.Snapshot())
}
