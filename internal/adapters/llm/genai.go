package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/PabloGalante/neurolink/internal/domain"
)

// GenAIConfig holds configuration for the genai SDK client.
// With a Project set the Vertex AI backend is used, otherwise the Gemini API
// backend with APIKey.
type GenAIConfig struct {
	APIKey   string
	Project  string
	Location string
	Timeout  time.Duration
}

// GenAIClient implements domain.CompletionClient with google.golang.org/genai.
type GenAIClient struct {
	client  *genai.Client // nil when no credential is configured
	timeout time.Duration
}

// NewGenAIClient creates the SDK client. A missing API key is not an error
// here: every Complete call then fails with domain.ErrNotConfigured.
func NewGenAIClient(ctx context.Context, cfg GenAIConfig) (*GenAIClient, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	var cc *genai.ClientConfig
	switch {
	case cfg.Project != "":
		location := cfg.Location
		if location == "" {
			location = "us-central1"
		}
		cc = &genai.ClientConfig{
			Project:  cfg.Project,
			Location: location,
			Backend:  genai.BackendVertexAI,
		}
	case strings.TrimSpace(cfg.APIKey) != "":
		cc = &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
	default:
		return &GenAIClient{timeout: timeout}, nil
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GenAIClient{
		client:  client,
		timeout: timeout,
	}, nil
}

// Complete implements domain.CompletionClient using the genai SDK.
func (g *GenAIClient) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	if g.client == nil {
		return "", domain.ErrNotConfigured
	}
	if strings.TrimSpace(req.UserText) == "" {
		return "", domain.ErrEmptyUserText
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	res, err := g.client.Models.GenerateContent(ctx, req.Model, toGenAIContents(req), toGenAIConfig(req))
	if err != nil {
		return "", mapGenAIError(err)
	}

	// Only the text, the first candidate's parts joined
	text := res.Text()
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyResponse
	}
	return text, nil
}

func toGenAIContents(req domain.CompletionRequest) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, h := range req.History {
		role := genai.Role(genai.RoleUser)
		if h.Role == domain.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(h.Text(), role))
	}
	return append(contents, genai.NewContentFromText(req.UserText, genai.RoleUser))
}

func toGenAIConfig(req domain.CompletionRequest) *genai.GenerateContentConfig {
	gen := req.Generation
	temp := gen.Temperature
	topP := gen.TopP

	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopP:            &topP,
		MaxOutputTokens: gen.MaxOutputTokens,
	}
	if gen.TopK > 0 {
		topK := gen.TopK
		cfg.TopK = &topK
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	return cfg
}

// mapGenAIError turns SDK failures into the domain error taxonomy.
func mapGenAIError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &domain.BackendError{StatusCode: apiErr.Code, Status: apiErr.Status, Message: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &domain.BackendError{StatusCode: apiErrPtr.Code, Status: apiErrPtr.Status, Message: apiErrPtr.Message}
	}

	return fmt.Errorf("genai generate content: %w", err)
}
