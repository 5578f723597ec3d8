package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studio-api/internal/dto"
	"github.com/noah-isme/studio-api/internal/models"
	appErrors "github.com/noah-isme/studio-api/pkg/errors"
)

func exportFixture() *fakeStudentRepo {
	created := time.Date(2024, 3, 7, 15, 0, 0, 0, time.UTC)
	return &fakeStudentRepo{students: []models.Student{
		{ID: 1, Name: "Ana Souza", Email: "ana@x.com", Phone: "1199", Status: models.StudentStatusActive, Plan: "Mensal", CreatedAt: created},
		{ID: 2, Name: "Bruno", Email: "bruno@x.com", Status: models.StudentStatusInactive, Plan: "Anual", CreatedAt: created},
	}}
}

func TestExportServiceCSV(t *testing.T) {
	svc := NewExportService(exportFixture(), ExportConfig{}, nil, nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC) }

	file, err := svc.Students(context.Background(), dto.StudentExportRequest{Format: dto.ExportCSV, Search: "ANA"})
	require.NoError(t, err)
	assert.Equal(t, "alunos_2024-05-02.csv", file.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Payload)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Nome,Email,Telefone,Status,Plano,Data Cadastro", lines[0])
	assert.Equal(t, "Ana Souza,ana@x.com,1199,Ativo,Mensal,07/03/2024", lines[1])
}

func TestExportServiceStatusFilterAndPDF(t *testing.T) {
	svc := NewExportService(exportFixture(), ExportConfig{}, nil, NewMetricsService(), nil)

	file, err := svc.Students(context.Background(), dto.StudentExportRequest{Format: dto.ExportPDF, Status: "Inativo"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(file.Filename, ".pdf"))
	assert.True(t, strings.HasPrefix(string(file.Payload), "%PDF"))
}

func TestExportServiceValidation(t *testing.T) {
	svc := NewExportService(exportFixture(), ExportConfig{}, nil, nil, nil)

	_, err := svc.Students(context.Background(), dto.StudentExportRequest{Format: "xlsx"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestExportServiceStoreError(t *testing.T) {
	repo := exportFixture()
	repo.err = errStoreDown
	svc := NewExportService(repo, ExportConfig{}, nil, nil, nil)

	_, err := svc.Students(context.Background(), dto.StudentExportRequest{Format: dto.ExportCSV})
	assert.Equal(t, appErrors.ErrStore.Code, appErrors.FromError(err).Code)
}

func TestExportServiceDatesFollowStudioZone(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	repo := &fakeStudentRepo{students: []models.Student{
		{ID: 1, Name: "Ana", Status: models.StudentStatusActive, CreatedAt: time.Date(2024, 3, 8, 1, 0, 0, 0, time.UTC)},
	}}
	svc := NewExportService(repo, ExportConfig{StudioName: "VOLL Pilates", Location: saoPaulo}, nil, nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 3, 2, 0, 0, 0, time.UTC) }

	file, err := svc.Students(context.Background(), dto.StudentExportRequest{Format: dto.ExportCSV})
	require.NoError(t, err)
	assert.Equal(t, "alunos_2024-05-02.csv", file.Filename)
	assert.Contains(t, string(file.Payload), "Ana,,,Ativo,,07/03/2024")
}

func TestExportConfigTitle(t *testing.T) {
	assert.Equal(t, "Lista de Alunos", ExportConfig{}.title())
	assert.Equal(t, "Lista de Alunos - VOLL Pilates", ExportConfig{StudioName: "VOLL Pilates"}.title())

	svc := NewExportService(nil, ExportConfig{StudioName: "VOLL Pilates"}, nil, nil, nil)
	assert.Equal(t, "Lista de Alunos - VOLL Pilates", svc.dataset(nil, pdfStudentHeaders, false).Title)
}
