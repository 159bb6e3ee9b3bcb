package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/PabloGalante/neurolink/internal/domain"
	"github.com/PabloGalante/neurolink/internal/observability"
)

const failureReply = "I'm sorry, I couldn't put a reply together just now. " +
	"Please try sending your message again in a moment."

// Options configures what the orchestrator sends with every turn.
type Options struct {
	SystemInstruction string
	Generation        domain.GenerationConfig
	HistoryLimit      int
}

// Orchestrator composes history building, completion and classification for
// one chat turn. It keeps no per-conversation state.
type Orchestrator struct {
	completer  domain.CompletionClient
	classifier *Classifier
	opts       Options

	now   func() time.Time
	newID func() domain.MessageID
}

// NewOrchestrator builds an orchestrator. completer is normally a *Policy
// wrapping the real transport.
func NewOrchestrator(completer domain.CompletionClient, classifier *Classifier, opts Options) *Orchestrator {
	if classifier == nil {
		classifier = NewClassifier(DefaultLexicon())
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 40
	}
	return &Orchestrator{
		completer:  completer,
		classifier: classifier,
		opts:       opts,
		now:        time.Now,
		newID:      domain.NewMessageID,
	}
}

// SendTurn produces the bot message answering userText given the messages
// already on screen. The caller appends both the user message and the
// returned bot message.
//
// Backend failures that survive the resilience policy do not produce an
// error: they come back as an error-styled bot message. The returned error is
// reserved for invalid input and a cancelled ctx.
func (o *Orchestrator) SendTurn(ctx context.Context, current []*domain.Message, userText string) (*domain.Message, error) {
	text := trimText(userText)
	if text == "" {
		return nil, domain.ErrEmptyUserText
	}

	log := observability.LoggerFromContext(ctx)

	history := BuildHistory(withoutPendingTurn(current, text), o.opts.HistoryLimit)
	history, prompt := foldUnansweredTurn(history, text)
	log.Debug("built history", "history_items", len(history), "user_text_len", len(prompt))

	reply, err := o.completer.Complete(ctx, domain.CompletionRequest{
		SystemInstruction: o.opts.SystemInstruction,
		History:           history,
		UserText:          prompt,
		Generation:        o.opts.Generation,
	})
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		return nil, err
	case errors.Is(err, domain.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		log.Warn("turn timed out", "error", err)
		reply = CannedTimeoutReply
	default:
		log.Error("turn failed", "error", err)
		return o.botMessage(failureText(err), domain.DisplayError), nil
	}

	kind := o.classifier.Classify(reply)
	log.Info("turn completed", "display_type", kind, "reply_len", len(reply))
	return o.botMessage(reply, kind), nil
}

func (o *Orchestrator) botMessage(text string, kind domain.DisplayType) *domain.Message {
	return &domain.Message{
		ID:          o.newID(),
		Sender:      domain.SenderBot,
		Text:        text,
		Timestamp:   o.now(),
		DisplayType: kind,
	}
}

// foldUnansweredTurn moves a trailing user item, left behind when its reply
// failed, into the new turn so the request keeps alternating roles.
func foldUnansweredTurn(history []domain.HistoryItem, userText string) ([]domain.HistoryItem, string) {
	n := len(history)
	if n == 0 || history[n-1].Role != domain.RoleUser {
		return history, userText
	}
	return history[:n-1], history[n-1].Text() + "\n\n" + userText
}

// failureText keeps the user-facing part warm and puts the raw error on its
// own diagnostic line for operators.
func failureText(err error) string {
	return failureReply + "\n\nDetails: " + err.Error()
}

func trimText(s string) string {
	return strings.TrimSpace(s)
}
