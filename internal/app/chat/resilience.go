package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PabloGalante/neurolink/internal/domain"
	"github.com/PabloGalante/neurolink/internal/observability"
)

// Canned in-character replies used when the backend cannot answer in time or
// is over capacity. They are returned as successful replies.
const (
	CannedOverloadedReply = "I'm here with you. The service is a bit busy right now. Shall I give you a quick coping tip while we try again?"
	CannedTimeoutReply    = "I'm here with you. Let's take this one step at a time. Want a quick, actionable tip?"
)

const defaultAttemptTimeout = 5 * time.Second

// PolicyConfig tunes the retry/fallback chain.
type PolicyConfig struct {
	PrimaryModel   string
	FallbackModel  string
	Backoff        time.Duration // wait before retrying the primary model
	AttemptTimeout time.Duration // window for each single attempt
}

// Policy wraps a CompletionClient with the overload/timeout handling:
//
//	primary -> (overloaded) backoff -> primary -> (overloaded) fallback -> (overloaded) canned reply
//
// A timeout at any attempt, including the caller's own deadline running out,
// ends in the canned timeout reply. Cancellation by the caller and any other
// error are returned as is, without further attempts. Policy is itself a
// CompletionClient.
type Policy struct {
	client domain.CompletionClient
	cfg    PolicyConfig
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewPolicy(client domain.CompletionClient, cfg PolicyConfig) *Policy {
	if cfg.FallbackModel == "" {
		cfg.FallbackModel = cfg.PrimaryModel
	}
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = defaultAttemptTimeout
	}
	return &Policy{
		client: client,
		cfg:    cfg,
		sleep:  sleepContext,
	}
}

type attemptStep struct {
	model   string
	backoff time.Duration
}

// Complete runs the chain. The caller only ever sees a final reply (possibly
// canned) or a propagated error. req.Model is set per attempt.
func (p *Policy) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	log := observability.LoggerFromContext(ctx)

	steps := []attemptStep{
		{model: p.cfg.PrimaryModel},
		{model: p.cfg.PrimaryModel, backoff: p.cfg.Backoff},
		{model: p.cfg.FallbackModel},
	}

	for i, st := range steps {
		if st.backoff > 0 {
			if err := p.sleep(ctx, st.backoff); err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					log.Warn("caller deadline expired during backoff", "attempt", i+1)
					return CannedTimeoutReply, nil
				}
				return "", err
			}
		}

		req.Model = st.model
		start := time.Now()
		text, err := p.attempt(ctx, req)
		elapsed := time.Since(start).Milliseconds()

		switch {
		case err == nil:
			log.Info("completion attempt succeeded", "attempt", i+1, "model", st.model, "elapsed_ms", elapsed)
			return text, nil
		case errors.Is(err, domain.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
			log.Warn("completion attempt timed out", "attempt", i+1, "model", st.model, "elapsed_ms", elapsed)
			return CannedTimeoutReply, nil
		case domain.IsOverloaded(err):
			log.Warn("completion backend overloaded", "attempt", i+1, "model", st.model, "elapsed_ms", elapsed, "error", err)
			continue
		default:
			log.Error("completion attempt failed", "attempt", i+1, "model", st.model, "elapsed_ms", elapsed, "error", err)
			return "", err
		}
	}

	log.Warn("completion backend still overloaded, using canned reply", "attempts", len(steps))
	return CannedOverloadedReply, nil
}

type attemptResult struct {
	text string
	err  error
}

// attempt runs one call under the per-attempt window. When the window closes
// first the call is abandoned; its late result lands in the buffered channel
// and is dropped.
func (p *Policy) attempt(ctx context.Context, req domain.CompletionRequest) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, p.cfg.AttemptTimeout)
	defer cancel()

	done := make(chan attemptResult, 1)
	go func() {
		text, err := p.client.Complete(attemptCtx, req)
		done <- attemptResult{text: text, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil && errors.Is(r.err, context.DeadlineExceeded) && ctx.Err() == nil {
			return "", fmt.Errorf("%w: %v", domain.ErrTimeout, r.err)
		}
		return r.text, r.err
	case <-attemptCtx.Done():
		// The caller going away is not a backend timeout.
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "", domain.ErrTimeout
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
