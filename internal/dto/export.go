package dto

// ExportFormat names a downloadable file format.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// StudentExportRequest selects the filtered student list to export.
type StudentExportRequest struct {
	Format ExportFormat `form:"format" validate:"required,oneof=csv pdf"`
	Search string       `form:"search" validate:"max=200"`
	Status string       `form:"status" validate:"omitempty,oneof=Todos Ativo Inativo Experimental"`
}

// ExportFile is a rendered export ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}
