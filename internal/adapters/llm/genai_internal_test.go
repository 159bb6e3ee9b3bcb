package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/PabloGalante/neurolink/internal/domain"
)

func TestMapGenAIError(t *testing.T) {
	err := mapGenAIError(fmt.Errorf("call: %w", genai.APIError{
		Code:    503,
		Message: "The model is overloaded.",
		Status:  "UNAVAILABLE",
	}))

	var be *domain.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 503, be.StatusCode)
	assert.True(t, domain.IsOverloaded(err))

	err = mapGenAIError(fmt.Errorf("call: %w", context.DeadlineExceeded))
	assert.ErrorIs(t, err, domain.ErrTimeout)

	plain := errors.New("dial tcp: connection refused")
	err = mapGenAIError(plain)
	assert.ErrorIs(t, err, plain)
	assert.False(t, domain.IsOverloaded(err))
}

func TestToGenAIContents(t *testing.T) {
	req := domain.CompletionRequest{
		History: []domain.HistoryItem{
			domain.NewHistoryItem(domain.RoleUser, "hi"),
			domain.NewHistoryItem(domain.RoleModel, "hello"),
		},
		UserText: "how do I focus?",
	}

	contents := toGenAIContents(req)
	require.Len(t, contents, 3)
	assert.Equal(t, "user", string(contents[0].Role))
	assert.Equal(t, "model", string(contents[1].Role))
	assert.Equal(t, "user", string(contents[2].Role))
	assert.Equal(t, "how do I focus?", contents[2].Parts[0].Text)
}

func TestToGenAIConfig(t *testing.T) {
	cfg := toGenAIConfig(domain.CompletionRequest{
		SystemInstruction: "be kind",
		Generation:        domain.GenerationConfig{MaxOutputTokens: 120, Temperature: 1, TopP: 0.9, TopK: 40},
	})

	assert.Equal(t, int32(120), cfg.MaxOutputTokens)
	require.NotNil(t, cfg.TopK)
	assert.InDelta(t, 40, *cfg.TopK, 1e-6)
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "be kind", cfg.SystemInstruction.Parts[0].Text)
}

func TestGenAIClientWithoutCredential(t *testing.T) {
	client, err := NewGenAIClient(context.Background(), GenAIConfig{})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), domain.CompletionRequest{Model: "m", UserText: "hi"})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}
