package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studio-api/internal/dto"
	appErrors "github.com/noah-isme/studio-api/pkg/errors"
	"github.com/noah-isme/studio-api/pkg/response"
)

type exportService interface {
	Students(ctx context.Context, req dto.StudentExportRequest) (*dto.ExportFile, error)
}

// ExportHandler serves file downloads.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Students godoc
// @Summary Export students
// @Description Downloads the filtered student list as alunos_YYYY-MM-DD.csv or .pdf.
// @Tags Students
// @Produce text/csv
// @Produce application/pdf
// @Param format query string true "csv or pdf"
// @Param search query string false "Case-insensitive match on name or email"
// @Param status query string false "Ativo, Inativo, Experimental or Todos"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /students/export [get]
func (h *ExportHandler) Students(c *gin.Context) {
	var req dto.StudentExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	file, err := h.exports.Students(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}
