package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studio-api/internal/dto"
	"github.com/noah-isme/studio-api/internal/models"
	"github.com/noah-isme/studio-api/internal/summary"
	appErrors "github.com/noah-isme/studio-api/pkg/errors"
	"github.com/noah-isme/studio-api/pkg/export"
)

const (
	exportFilePrefix = "alunos"
	exportTitle      = "Lista de Alunos"
)

var (
	csvStudentHeaders = []string{"Nome", "Email", "Telefone", "Status", "Plano", "Data Cadastro"}
	pdfStudentHeaders = []string{"Nome", "Email", "Telefone", "Status", "Plano"}
)

// ExportConfig names the studio in document titles and fixes the zone used for dates.
// A nil Location renders dates in UTC.
type ExportConfig struct {
	StudioName string
	Location   *time.Location
}

func (c ExportConfig) title() string {
	if c.StudioName == "" {
		return exportTitle
	}
	return exportTitle + " - " + c.StudioName
}

type renderer interface {
	ContentType() string
	Extension() string
	Render(data export.Dataset) ([]byte, error)
}

// ExportService renders the filtered student list as a downloadable file.
type ExportService struct {
	students  studentLister
	csv       renderer
	pdf       renderer
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	title     string
	location  *time.Location
	now       func() time.Time
}

// NewExportService constructs an ExportService with the default CSV and PDF renderers.
func NewExportService(students studentLister, cfg ExportConfig, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *ExportService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		students:  students,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		title:     cfg.title(),
		location:  cfg.Location,
		now:       time.Now,
	}
}

// Students fetches every student, applies the filter and renders the requested format.
func (s *ExportService) Students(ctx context.Context, req dto.StudentExportRequest) (*dto.ExportFile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export parameters")
	}
	students, err := s.students.List(ctx)
	if err != nil {
		s.logger.Error("export: list students failed", zap.Error(err))
		return nil, appErrors.Store(err)
	}
	filtered := summary.FilterStudents(students, summary.StudentFilter{Search: req.Search, Status: req.Status})
	return s.Render(req.Format, filtered)
}

// Render builds the file for an already filtered list.
func (s *ExportService) Render(format dto.ExportFormat, students []models.Student) (*dto.ExportFile, error) {
	var (
		r       renderer
		dataset export.Dataset
	)
	switch format {
	case dto.ExportCSV:
		r, dataset = s.csv, s.dataset(students, csvStudentHeaders, true)
	case dto.ExportPDF:
		r, dataset = s.pdf, s.dataset(students, pdfStudentHeaders, false)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	payload, err := r.Render(dataset)
	if err != nil {
		s.logger.Error("export: render failed", zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	s.metrics.IncExport(string(format))
	return &dto.ExportFile{
		Filename:    ExportFilename(s.now().In(s.location), r.Extension()),
		ContentType: r.ContentType(),
		Payload:     payload,
	}, nil
}

// ExportFilename returns alunos_YYYY-MM-DD.<ext> for the calendar day of t in its own zone.
func ExportFilename(day time.Time, ext string) string {
	return fmt.Sprintf("%s_%s.%s", exportFilePrefix, day.Format("2006-01-02"), ext)
}

func (s *ExportService) dataset(students []models.Student, headers []string, withCreated bool) export.Dataset {
	rows := make([][]string, 0, len(students))
	for _, st := range students {
		row := []string{st.Name, st.Email, st.Phone, string(st.Status), st.Plan}
		if withCreated {
			row = append(row, st.CreatedAt.In(s.location).Format("02/01/2006"))
		}
		rows = append(rows, row)
	}
	return export.Dataset{Title: s.title, Headers: headers, Rows: rows}
}
