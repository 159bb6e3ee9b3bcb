package conversation

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/PabloGalante/neurolink/internal/domain"
	"github.com/PabloGalante/neurolink/internal/observability"
)

// WelcomeText is the bot greeting every new session starts with.
const WelcomeText = "Hi! It's really good to hear from you. How's your day going? Anything on your mind?"

// TurnSender produces the bot reply for one user turn.
// *chat.Orchestrator implements it.
type TurnSender interface {
	SendTurn(ctx context.Context, current []*domain.Message, userText string) (*domain.Message, error)
}

type Service struct {
	turns        TurnSender
	sessionStore domain.SessionStore
	messageStore domain.MessageStore
	now          func() time.Time

	mu    sync.Mutex
	gates map[domain.SessionID]*semaphore.Weighted
}

func NewService(
	turns TurnSender,
	sessionStore domain.SessionStore,
	messageStore domain.MessageStore,
) *Service {
	return &Service{
		turns:        turns,
		sessionStore: sessionStore,
		messageStore: messageStore,
		now:          time.Now,
		gates:        make(map[domain.SessionID]*semaphore.Weighted),
	}
}

type StartSessionInput struct {
	Title string
}

type StartSessionOutput struct {
	Session *domain.Session
	Welcome *domain.Message
}

func (s *Service) StartSession(ctx context.Context, in StartSessionInput) (*StartSessionOutput, error) {
	now := s.now()
	log := observability.LoggerFromContext(ctx)

	session := &domain.Session{
		ID:        domain.NewSessionID(),
		CreatedAt: now,
		UpdatedAt: now,
		Title:     strings.TrimSpace(in.Title),
	}

	if err := s.sessionStore.CreateSession(session); err != nil {
		log.Error("failed to create session", "error", err)
		return nil, err
	}

	welcome := &domain.Message{
		ID:          domain.NewMessageID(),
		SessionID:   session.ID,
		Sender:      domain.SenderBot,
		Text:        WelcomeText,
		Timestamp:   now,
		DisplayType: domain.DisplayNormal,
	}

	if err := s.messageStore.AppendMessage(welcome); err != nil {
		log.Error("failed to append welcome message", "error", err)
		return nil, err
	}

	log.Info("session started", "session_id", session.ID)

	return &StartSessionOutput{
		Session: session,
		Welcome: welcome,
	}, nil
}

type SendMessageInput struct {
	SessionID domain.SessionID
	Text      string
}

type SendMessageOutput struct {
	UserMessage *domain.Message
	BotMessage  *domain.Message
}

// SendMessage runs one full turn on a session. While a turn is awaiting its
// reply, further sends on the same session fail with domain.ErrTurnInFlight.
func (s *Service) SendMessage(ctx context.Context, in SendMessageInput) (*SendMessageOutput, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, domain.ErrEmptyUserText
	}

	session, err := s.sessionStore.GetSession(in.SessionID)
	if err != nil {
		return nil, err
	}

	log := observability.LoggerFromContext(ctx).With("session_id", session.ID)

	gate := s.gate(session.ID)
	if !gate.TryAcquire(1) {
		log.Warn("turn rejected, reply still pending")
		return nil, domain.ErrTurnInFlight
	}
	defer gate.Release(1)

	log.Info("sending message", "text_len", len(text))

	prior, err := s.messageStore.GetMessagesBySession(session.ID, 0)
	if err != nil {
		log.Error("failed to load history", "error", err)
		return nil, err
	}

	userMsg := &domain.Message{
		ID:        domain.NewMessageID(),
		SessionID: session.ID,
		Sender:    domain.SenderUser,
		Text:      text,
		Timestamp: s.now(),
	}

	if err := s.messageStore.AppendMessage(userMsg); err != nil {
		log.Error("failed to append user message", "error", err)
		return nil, err
	}

	botMsg, err := s.turns.SendTurn(ctx, prior, text)
	if err != nil {
		log.Error("turn failed", "error", err)
		return nil, err
	}
	botMsg.SessionID = session.ID

	if err := s.messageStore.AppendMessage(botMsg); err != nil {
		log.Error("failed to append bot message", "error", err)
		return nil, err
	}

	updated := *session
	updated.UpdatedAt = s.now()
	if err := s.sessionStore.UpdateSession(&updated); err != nil {
		log.Error("failed to update session", "error", err)
		return nil, err
	}

	log.Info("send message completed", "display_type", botMsg.DisplayType)

	return &SendMessageOutput{
		UserMessage: userMsg,
		BotMessage:  botMsg,
	}, nil
}

func (s *Service) GetSessionTimeline(
	ctx context.Context,
	sessionID domain.SessionID,
	limit int,
) (*domain.Session, []*domain.Message, error) {

	log := observability.LoggerFromContext(ctx).With(
		"session_id", sessionID,
		"limit", limit,
	)

	session, err := s.sessionStore.GetSession(sessionID)
	if err != nil {
		log.Warn("failed to get session", "error", err)
		return nil, nil, err
	}

	msgs, err := s.messageStore.GetMessagesBySession(sessionID, limit)
	if err != nil {
		log.Error("failed to get messages", "error", err)
		return nil, nil, err
	}

	log.Info("fetched session timeline", "message_count", len(msgs))

	return session, msgs, nil
}

func (s *Service) gate(id domain.SessionID) *semaphore.Weighted {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.gates[id]
	if !ok {
		g = semaphore.NewWeighted(1)
		s.gates[id] = g
	}
	return g
}
