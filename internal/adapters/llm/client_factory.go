package llm

import (
	"context"
	"fmt"

	"github.com/PabloGalante/neurolink/internal/config"
	"github.com/PabloGalante/neurolink/internal/domain"
)

// NewClientFromConfig picks the completion transport for this deployment.
func NewClientFromConfig(ctx context.Context, cfg *config.Config) (domain.CompletionClient, error) {
	if cfg.UseMockLLM {
		return NewMockLLM(), nil
	}

	switch cfg.Transport {
	case config.TransportREST:
		return NewRESTClient(RESTConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.AttemptTimeout,
		}), nil
	case config.TransportGenAI:
		client, err := NewGenAIClient(ctx, GenAIConfig{
			APIKey:   cfg.APIKey,
			Project:  cfg.GCPProjectID,
			Location: cfg.GCPLocation,
			Timeout:  cfg.AttemptTimeout,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}
