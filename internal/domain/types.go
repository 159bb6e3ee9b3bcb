package domain

import "time"

type SessionID string
type UserID string
type MessageID string

// Sender is who authored a visible message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Role is the transcript role understood by the completion backend.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// DisplayType drives how the chat screen styles a bot message.
type DisplayType string

const (
	DisplayNormal     DisplayType = "normal"
	DisplayEscalation DisplayType = "escalation" // crisis banner
	DisplayResource   DisplayType = "resource"   // coping tip / instructions
	DisplayError      DisplayType = "error"      // set by the orchestrator, never by the classifier
)

type Timestamp = time.Time
