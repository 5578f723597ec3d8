package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studio-api/internal/dto"
	"github.com/noah-isme/studio-api/pkg/response"
)

type assistantService interface {
	ClassNote(ctx context.Context, req dto.ClassNoteRequest) (*dto.GeneratedText, error)
	Message(ctx context.Context, req dto.MessageRequest) (*dto.GeneratedText, error)
}

// AssistantHandler exposes text drafting endpoints.
type AssistantHandler struct {
	assistant assistantService
}

// NewAssistantHandler constructs AssistantHandler.
func NewAssistantHandler(assistant assistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// ClassNote godoc
// @Summary Draft class note
// @Tags AI
// @Accept json
// @Produce json
// @Param payload body dto.ClassNoteRequest true "Student and optional context"
// @Success 200 {object} dto.GeneratedText
// @Failure 400 {object} response.ErrorBody
// @Failure 429 {object} response.ErrorBody
// @Failure 502 {object} response.ErrorBody
// @Failure 503 {object} response.ErrorBody
// @Router /ai/class-note [post]
func (h *AssistantHandler) ClassNote(c *gin.Context) {
	var req dto.ClassNoteRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.assistant.ClassNote(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

// Message godoc
// @Summary Draft WhatsApp message
// @Description intent is one of lembrete, boas-vindas, cobranca. share_url opens WhatsApp with the text.
// @Tags AI
// @Accept json
// @Produce json
// @Param payload body dto.MessageRequest true "Student and intent"
// @Success 200 {object} dto.GeneratedText
// @Failure 400 {object} response.ErrorBody
// @Failure 429 {object} response.ErrorBody
// @Failure 502 {object} response.ErrorBody
// @Failure 503 {object} response.ErrorBody
// @Router /ai/messages [post]
func (h *AssistantHandler) Message(c *gin.Context) {
	var req dto.MessageRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.assistant.Message(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}
