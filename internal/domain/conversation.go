package domain

import "strings"

// Message represents one turn in the visible conversation (user or bot).
// A session's message list is append-only.
type Message struct {
	ID        MessageID
	SessionID SessionID
	Sender    Sender
	Text      string
	Timestamp Timestamp

	// DisplayType is only set for bot messages.
	DisplayType DisplayType
}

// IsBot reports whether the message was authored by the assistant.
func (m *Message) IsBot() bool {
	return m.Sender == SenderBot
}

// Part is one text fragment of a HistoryItem.
type Part struct {
	Text string `json:"text"`
}

// HistoryItem is the transcript unit sent to the completion backend.
type HistoryItem struct {
	Role  Role   `json:"role"`
	Parts []Part `json:"parts"`
}

// Text joins all fragments of the item.
func (h HistoryItem) Text() string {
	if len(h.Parts) == 1 {
		return h.Parts[0].Text
	}
	var b strings.Builder
	for _, p := range h.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// NewHistoryItem wraps text as a single-fragment item.
func NewHistoryItem(role Role, text string) HistoryItem {
	return HistoryItem{Role: role, Parts: []Part{{Text: text}}}
}

// Session represents one chat screen. It only lives in memory.
type Session struct {
	ID        SessionID
	CreatedAt Timestamp
	UpdatedAt Timestamp
	Title     string
}
