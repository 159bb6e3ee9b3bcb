package main

import (
	"context"
	"fmt"

	"github.com/PabloGalante/neurolink/internal/adapters/llm"
	memstore "github.com/PabloGalante/neurolink/internal/adapters/storage/memory"
	"github.com/PabloGalante/neurolink/internal/app/chat"
	"github.com/PabloGalante/neurolink/internal/app/conversation"
	"github.com/PabloGalante/neurolink/internal/app/journal"
	"github.com/PabloGalante/neurolink/internal/config"
	"github.com/PabloGalante/neurolink/internal/domain"
	"github.com/PabloGalante/neurolink/internal/observability"
)

// app is everything both commands share.
type app struct {
	orchestrator *chat.Orchestrator
	conversation *conversation.Service
	journal      *journal.Service
}

func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	log := observability.Logger()

	client, err := llm.NewClientFromConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("error initializing completion client: %w", err)
	}
	if cfg.UseMockLLM {
		log.Info("using mock completion client")
	} else {
		log.Info("using completion client", "transport", cfg.Transport, "primary_model", cfg.PrimaryModel)
	}

	lexicon, err := chat.LoadLexicon(cfg.LexiconFile)
	if err != nil {
		return nil, err
	}

	policy := chat.NewPolicy(client, chat.PolicyConfig{
		PrimaryModel:   cfg.PrimaryModel,
		FallbackModel:  cfg.FallbackModel,
		Backoff:        cfg.RetryBackoff,
		AttemptTimeout: cfg.AttemptTimeout,
	})

	orch := chat.NewOrchestrator(policy, chat.NewClassifier(lexicon), chat.Options{
		SystemInstruction: llm.SystemInstruction(),
		HistoryLimit:      cfg.HistoryLimit,
		Generation: domain.GenerationConfig{
			MaxOutputTokens: int32(cfg.MaxOutputTokens),
			Temperature:     float32(cfg.Temperature),
			TopP:            float32(cfg.TopP),
			TopK:            float32(cfg.TopK),
		},
	})
	log.Info("persona loaded", "persona_version", llm.PersonaVersion)

	return &app{
		orchestrator: orch,
		conversation: conversation.NewService(orch, memstore.NewSessionStore(), memstore.NewMessageStore()),
		journal:      journal.NewService(memstore.NewJournalStore()),
	}, nil
}
