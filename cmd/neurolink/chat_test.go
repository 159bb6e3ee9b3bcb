package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/neurolink/internal/app/conversation"
	"github.com/PabloGalante/neurolink/internal/config"
	"github.com/PabloGalante/neurolink/internal/domain"
	"github.com/PabloGalante/neurolink/internal/observability"
)

func mockConfig() *config.Config {
	return &config.Config{
		Mode:           config.ModeLocal,
		UseMockLLM:     true,
		PrimaryModel:   "gemini-test",
		FallbackModel:  "gemini-test-lite",
		HistoryLimit:   40,
		AttemptTimeout: time.Second,
		RetryBackoff:   time.Millisecond,
	}
}

func TestRunChatWithMockClient(t *testing.T) {
	observability.Init(io.Discard, "error")

	a, err := buildApp(context.Background(), mockConfig())
	require.NoError(t, err)

	in := strings.NewReader("\nI'm stressed about my exams\n/quit\n")
	var out bytes.Buffer

	require.NoError(t, runChat(context.Background(), a.conversation, in, &out))

	got := out.String()
	assert.Contains(t, got, "How's your day going?")
	assert.Contains(t, got, "Tip")
	assert.Equal(t, 1, strings.Count(got, "Neurolink is typing"), "one turn only")
}

func TestRunChatEndsOnEOF(t *testing.T) {
	observability.Init(io.Discard, "error")

	a, err := buildApp(context.Background(), mockConfig())
	require.NoError(t, err)

	var out bytes.Buffer
	assert.NoError(t, runChat(context.Background(), a.conversation, strings.NewReader(""), &out))
}

func TestBuildAppRejectsMissingLexicon(t *testing.T) {
	observability.Init(io.Discard, "error")

	cfg := mockConfig()
	cfg.LexiconFile = "/does/not/exist.yaml"

	_, err := buildApp(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRenderByDisplayType(t *testing.T) {
	s := newChatStyles()

	escalation := s.render(&domain.Message{Sender: domain.SenderBot, Text: "call 988", DisplayType: domain.DisplayEscalation})
	assert.Contains(t, escalation, "crisis")

	resource := s.render(&domain.Message{Sender: domain.SenderBot, Text: "try this", DisplayType: domain.DisplayResource})
	assert.Contains(t, resource, "Tip")

	user := s.render(&domain.Message{Sender: domain.SenderUser, Text: "hi"})
	assert.Contains(t, user, "you: hi")

	welcome := s.render(&domain.Message{Sender: domain.SenderBot, Text: conversation.WelcomeText, DisplayType: domain.DisplayNormal})
	assert.Contains(t, welcome, "really good")
}
