package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/PabloGalante/neurolink/internal/domain"
)

// MockLLM answers without any network call. Useful in local mode and tests.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text := strings.TrimSpace(req.UserText)
	if text == "" {
		return "", domain.ErrEmptyUserText
	}
	// A little personality, and one small step to keep the loop going
	return fmt.Sprintf("That sounds like a lot to carry. You said %q. Want to try one small step together?", text), nil
}
