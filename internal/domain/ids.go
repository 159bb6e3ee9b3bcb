package domain

import "github.com/google/uuid"

// UUIDv7 ids sort by creation time, which keeps the message log ordered.

func NewMessageID() MessageID {
	return MessageID(uuid.Must(uuid.NewV7()).String())
}

func NewSessionID() SessionID {
	return SessionID(uuid.Must(uuid.NewV7()).String())
}

func NewJournalEntryID() JournalEntryID {
	return JournalEntryID(uuid.Must(uuid.NewV7()).String())
}
