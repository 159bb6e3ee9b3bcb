package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PabloGalante/neurolink/internal/domain"
)

const maxResponseBytes = 4 << 20

// RESTConfig holds configuration for the Gemini REST client.
type RESTConfig struct {
	APIKey  string
	BaseURL string
	// Timeout is applied only when the caller's context has no deadline.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// RESTClient implements domain.CompletionClient against the
// generativelanguage generateContent endpoint.
type RESTClient struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

func NewRESTClient(cfg RESTConfig) *RESTClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RESTClient{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    timeout,
		httpClient: httpClient,
	}
}

type restPart struct {
	Text string `json:"text"`
}

type restContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []restPart `json:"parts"`
}

type restGenerationConfig struct {
	MaxOutputTokens int32   `json:"maxOutputTokens,omitempty"`
	Temperature     float32 `json:"temperature"`
	TopP            float32 `json:"topP"`
	TopK            float32 `json:"topK,omitempty"`
}

type restRequest struct {
	SystemInstruction *restContent         `json:"systemInstruction,omitempty"`
	Contents          []restContent        `json:"contents"`
	GenerationConfig  restGenerationConfig `json:"generationConfig"`
}

type restResponse struct {
	Candidates []struct {
		Content      restContent `json:"content"`
		FinishReason string      `json:"finishReason"`
	} `json:"candidates"`
}

type restErrorBody struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Complete issues exactly one generateContent call.
func (c *RESTClient) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", domain.ErrNotConfigured
	}
	if strings.TrimSpace(req.UserText) == "" {
		return "", domain.ErrEmptyUserText
	}
	if req.Model == "" {
		return "", errors.New("rest completion: model is required")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(buildRESTRequest(req))
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(req.Model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	// Header rather than query string so the key never shows up in URLs or logs.
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", transportError("request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", transportError("failed to read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", newBackendError(resp.StatusCode, body)
	}

	var parsed restResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	text := firstCandidateText(parsed)
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyResponse
	}
	return text, nil
}

func buildRESTRequest(req domain.CompletionRequest) restRequest {
	contents := make([]restContent, 0, len(req.History)+1)
	for _, h := range req.History {
		parts := make([]restPart, 0, len(h.Parts))
		for _, p := range h.Parts {
			parts = append(parts, restPart{Text: p.Text})
		}
		contents = append(contents, restContent{Role: string(h.Role), Parts: parts})
	}
	contents = append(contents, restContent{
		Role:  string(domain.RoleUser),
		Parts: []restPart{{Text: req.UserText}},
	})

	out := restRequest{
		Contents: contents,
		GenerationConfig: restGenerationConfig{
			MaxOutputTokens: req.Generation.MaxOutputTokens,
			Temperature:     req.Generation.Temperature,
			TopP:            req.Generation.TopP,
			TopK:            req.Generation.TopK,
		},
	}
	if req.SystemInstruction != "" {
		out.SystemInstruction = &restContent{Parts: []restPart{{Text: req.SystemInstruction}}}
	}
	return out
}

// firstCandidateText concatenates the text parts of the first candidate.
func firstCandidateText(resp restResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

func newBackendError(statusCode int, body []byte) *domain.BackendError {
	be := &domain.BackendError{StatusCode: statusCode}

	var parsed restErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil {
		be.Status = parsed.Error.Status
		be.Message = parsed.Error.Message
	}
	if be.Message == "" {
		be.Message = strings.TrimSpace(string(body))
	}
	if be.Message == "" {
		be.Message = http.StatusText(statusCode)
	}
	return be
}

func transportError(what string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return fmt.Errorf("%s: %w", what, err)
}
