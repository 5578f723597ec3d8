package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studio-api/internal/dto"
	appErrors "github.com/noah-isme/studio-api/pkg/errors"
)

const whatsAppShareBase = "https://wa.me/?text="

// TextGenerator turns a prompt into generated text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AssistantService drafts class notes and outreach messages through a TextGenerator.
type AssistantService struct {
	generator TextGenerator
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewAssistantService constructs the service. A nil generator makes every call fail with ErrAIUnavailable.
func NewAssistantService(generator TextGenerator, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *AssistantService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantService{generator: generator, validator: validate, metrics: metrics, logger: logger}
}

// Enabled reports whether a generator is configured.
func (s *AssistantService) Enabled() bool {
	return s != nil && s.generator != nil
}

// ClassNote drafts a short technical and motivating description for a booked class.
func (s *AssistantService) ClassNote(ctx context.Context, req dto.ClassNoteRequest) (*dto.GeneratedText, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class note payload")
	}
	text, err := s.generate(ctx, "class_note", classNotePrompt(req.StudentName, req.Context))
	if err != nil {
		return nil, err
	}
	return &dto.GeneratedText{Text: text}, nil
}

// Message drafts a WhatsApp message for the given intent together with a share link.
func (s *AssistantService) Message(ctx context.Context, req dto.MessageRequest) (*dto.GeneratedText, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid message payload")
	}
	prompt, err := messagePrompt(req.StudentName, req.Intent)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	text, err := s.generate(ctx, "message_"+string(req.Intent), prompt)
	if err != nil {
		return nil, err
	}
	return &dto.GeneratedText{Text: text, ShareURL: ShareURL(text)}, nil
}

func (s *AssistantService) generate(ctx context.Context, kind, prompt string) (string, error) {
	if !s.Enabled() {
		return "", appErrors.ErrAIUnavailable
	}
	start := time.Now()
	text, err := s.generator.Generate(ctx, prompt)
	s.metrics.ObserveGeneration(kind, err, time.Since(start))
	if err != nil {
		s.logger.Warn("text generation failed", zap.String("kind", kind), zap.Error(err))
		return "", appErrors.Wrap(err, appErrors.ErrAIProvider.Code, appErrors.ErrAIProvider.Status, appErrors.ErrAIProvider.Message)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		s.logger.Warn("text generation returned no text", zap.String("kind", kind))
		return "", appErrors.Wrap(errors.New("empty response"), appErrors.ErrAIProvider.Code, appErrors.ErrAIProvider.Status, appErrors.ErrAIProvider.Message)
	}
	return text, nil
}

// ShareURL builds a wa.me link that opens WhatsApp with text prefilled.
func ShareURL(text string) string {
	return whatsAppShareBase + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

func classNotePrompt(studentName, extra string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Você é um instrutor de Pilates/Fitness. Escreva uma breve descrição técnica e motivadora para uma aula agendada para o aluno %s.", studentName)
	if extra = strings.TrimSpace(extra); extra != "" {
		fmt.Fprintf(&b, " Contexto adicional: %s", extra)
	}
	b.WriteString(" Seja conciso (máximo 2 parágrafos).")
	return b.String()
}

func messagePrompt(studentName string, intent dto.MessageIntent) (string, error) {
	switch intent {
	case dto.IntentReminder:
		return fmt.Sprintf("Escreva uma mensagem amigável de WhatsApp lembrando o aluno %s de sua aula amanhã. Inclua emojis.", studentName), nil
	case dto.IntentWelcome:
		return fmt.Sprintf("Escreva uma mensagem calorosa de WhatsApp dando as boas-vindas ao aluno %s ao nosso studio de Pilates.", studentName), nil
	case dto.IntentBilling:
		return fmt.Sprintf("Escreva uma mensagem educada e profissional de WhatsApp para o aluno %s sobre uma mensalidade pendente.", studentName), nil
	}
	return "", fmt.Errorf("unknown intent %q", intent)
}
