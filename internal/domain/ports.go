package domain

import "context"

// GenerationConfig holds the sampling parameters sent with every request.
type GenerationConfig struct {
	MaxOutputTokens int32
	Temperature     float32
	TopP            float32
	TopK            float32
}

// CompletionRequest bundles everything a single backend call needs.
// UserText is the new user turn; it is never part of History.
type CompletionRequest struct {
	Model             string
	SystemInstruction string
	History           []HistoryItem
	UserText          string
	Generation        GenerationConfig
}

// CompletionClient issues exactly one call to a generative-text backend.
// The transport (direct REST, SDK, mock) is a deployment concern.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// SessionStore defines session's persistence
type SessionStore interface {
	CreateSession(session *Session) error
	UpdateSession(session *Session) error
	GetSession(id SessionID) (*Session, error)
}

// MessageStore defines message's persistence
type MessageStore interface {
	AppendMessage(msg *Message) error
	GetMessagesBySession(sessionID SessionID, limit int) ([]*Message, error)
}
