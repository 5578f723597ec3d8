package dto

// MessageIntent selects the template for an outreach message.
type MessageIntent string

const (
	IntentReminder MessageIntent = "lembrete"
	IntentWelcome  MessageIntent = "boas-vindas"
	IntentBilling  MessageIntent = "cobranca"
)

// ClassNoteRequest asks for a short class description for a student.
type ClassNoteRequest struct {
	StudentName string `json:"student_name" validate:"required,max=200"`
	Context     string `json:"context" validate:"max=2000"`
}

// MessageRequest asks for an outreach message of the given intent.
type MessageRequest struct {
	StudentName string        `json:"student_name" validate:"required,max=200"`
	Intent      MessageIntent `json:"intent" validate:"required,oneof=lembrete boas-vindas cobranca"`
}

// GeneratedText is the drafted text. ShareURL opens the text in WhatsApp when present.
type GeneratedText struct {
	Text     string `json:"text"`
	ShareURL string `json:"share_url,omitempty"`
}
