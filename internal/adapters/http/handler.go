package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PabloGalante/neurolink/internal/app/conversation"
	"github.com/PabloGalante/neurolink/internal/app/journal"
	"github.com/PabloGalante/neurolink/internal/domain"
	"github.com/PabloGalante/neurolink/internal/observability"
)

const maxBodyBytes = 1 << 20

type Server struct {
	conv    *conversation.Service
	journal *journal.Service
	turns   conversation.TurnSender
}

// NewServer wires the routes. turns backs the stateless /api/chat proxy and is
// normally the same orchestrator the conversation service uses.
func NewServer(conv *conversation.Service, journalSvc *journal.Service, turns conversation.TurnSender) http.Handler {
	s := &Server{conv: conv, journal: journalSvc, turns: turns}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /api/chat → one turn from a client-held transcript (POST)
	mux.HandleFunc("/api/chat", s.handleChat)

	// /sessions → create session (POST)
	mux.HandleFunc("/sessions", s.handleSessions)

	// /sessions/{id}         →  GET: get session + messages
	// /sessions/{id}/messages → POST: send message
	mux.HandleFunc("/sessions/", s.handleSessionWithID)

	// /journal/entries → POST: log mood, GET: list entries
	mux.HandleFunc("/journal/entries", s.handleJournalEntries)

	return chainMiddlewares(mux, withCORS, withLogging, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type historyPart struct {
	Text string `json:"text"`
}

type historyItem struct {
	Role  string        `json:"role"`
	Parts []historyPart `json:"parts"`
}

type chatRequest struct {
	History  []historyItem `json:"history"`
	UserText string        `json:"userText"`
}

type chatResponse struct {
	Reply string `json:"reply"`
	Type  string `json:"type"`
}

type createSessionRequest struct {
	Title string `json:"title,omitempty"`
}

type createSessionResponse struct {
	Session sessionResponse  `json:"session"`
	Welcome *messageResponse `json:"welcome_message,omitempty"`
}

type sessionResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type messageResponse struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Sender      string    `json:"sender"`
	Text        string    `json:"text"`
	DisplayType string    `json:"display_type,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

type sendMessageResponse struct {
	UserMessage messageResponse `json:"user_message"`
	BotMessage  messageResponse `json:"bot_message"`
}

type getSessionResponse struct {
	Session  sessionResponse   `json:"session"`
	Messages []messageResponse `json:"messages"`
}

type logMoodRequest struct {
	UserID             string   `json:"user_id"`
	OverallMood        int      `json:"overall_mood"`
	EnergyLevel        int      `json:"energy_level"`
	StressLevel        int      `json:"stress_level"`
	HoursOfSleep       float64  `json:"hours_of_sleep"`
	Emotions           []string `json:"emotions"`
	StressContributors []string `json:"stress_contributors"`
	CopingStrategies   []string `json:"coping_strategies"`
	JournalText        string   `json:"journal_text"`
}

type journalEntriesResponse struct {
	Entries []*domain.MoodEntry `json:"entries"`
}

// ─────────────────────────────────────────────
// Basic routing
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// /sessions
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateSession(w, r)
	default:
		methodNotAllowed(w)
	}
}

// /sessions/{id} or /sessions/{id}/messages
func (s *Server) handleSessionWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/sessions/")
	parts := strings.Split(path, "/")
	id := parts[0]

	if id == "" {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.handleGetSession(w, r, domain.SessionID(id))
		default:
			methodNotAllowed(w)
		}
		return
	}

	if len(parts) == 2 && parts[1] == "messages" {
		switch r.Method {
		case http.MethodPost:
			s.handleSendMessage(w, r, domain.SessionID(id))
		default:
			methodNotAllowed(w)
		}
		return
	}

	http.NotFound(w, r)
}

// /journal/entries
func (s *Server) handleJournalEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleLogMood(w, r)
	case http.MethodGet:
		s.handleListJournal(w, r)
	default:
		methodNotAllowed(w)
	}
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req chatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.UserText) == "" {
		badRequest(w, "userText is required")
		return
	}

	bot, err := s.turns.SendTurn(r.Context(), historyToMessages(req.History), req.UserText)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Reply: bot.Text, Type: string(bot.DisplayType)})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	// An empty body is a session without a title.
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := s.conv.StartSession(r.Context(), conversation.StartSessionInput{Title: req.Title})
	if err != nil {
		writeError(w, r, err)
		return
	}

	welcome := toMessageResponse(out.Welcome)
	writeJSON(w, http.StatusCreated, createSessionResponse{
		Session: toSessionResponse(out.Session),
		Welcome: &welcome,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	session, msgs, err := s.conv.GetSessionTimeline(r.Context(), id, 0)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, getSessionResponse{
		Session:  toSessionResponse(session),
		Messages: toMessagesResponse(msgs),
	})
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request, sessionID domain.SessionID) {
	var req sendMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := s.conv.SendMessage(r.Context(), conversation.SendMessageInput{
		SessionID: sessionID,
		Text:      req.Text,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sendMessageResponse{
		UserMessage: toMessageResponse(out.UserMessage),
		BotMessage:  toMessageResponse(out.BotMessage),
	})
}

func (s *Server) handleLogMood(w http.ResponseWriter, r *http.Request) {
	var req logMoodRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := s.journal.LogMood(r.Context(), journal.LogMoodInput{
		UserID:             domain.UserID(req.UserID),
		OverallMood:        req.OverallMood,
		EnergyLevel:        req.EnergyLevel,
		StressLevel:        req.StressLevel,
		HoursOfSleep:       req.HoursOfSleep,
		Emotions:           req.Emotions,
		StressContributors: req.StressContributors,
		CopingStrategies:   req.CopingStrategies,
		JournalText:        req.JournalText,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleListJournal(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		badRequest(w, "user_id is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	entries, err := s.journal.GetUserJournal(r.Context(), domain.UserID(userID), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, journalEntriesResponse{Entries: entries})
}

// ─────────────────────────────────────────────
// Conversation Helpers
// ─────────────────────────────────────────────

// historyToMessages turns a client-held transcript into the message log the
// orchestrator works from. Unknown roles count as user turns.
func historyToMessages(items []historyItem) []*domain.Message {
	out := make([]*domain.Message, 0, len(items))
	for _, it := range items {
		var b strings.Builder
		for _, p := range it.Parts {
			b.WriteString(p.Text)
		}

		sender := domain.SenderUser
		if it.Role == string(domain.RoleModel) {
			sender = domain.SenderBot
		}
		out = append(out, &domain.Message{Sender: sender, Text: b.String()})
	}
	return out
}

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:        string(s.ID),
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:          string(m.ID),
		SessionID:   string(m.SessionID),
		Sender:      string(m.Sender),
		Text:        m.Text,
		DisplayType: string(m.DisplayType),
		Timestamp:   m.Timestamp,
	}
}

func toMessagesResponse(msgs []*domain.Message) []messageResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		badRequest(w, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to status codes. Anything unexpected is a
// generic 500; the detail only goes to the log.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyUserText), errors.Is(err, domain.ErrInvalidMoodEntry):
		badRequest(w, err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
	case errors.Is(err, domain.ErrTurnInFlight):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, context.Canceled):
		// client went away, nobody reads this
		w.WriteHeader(http.StatusServiceUnavailable)
	default:
		observability.LoggerFromContext(r.Context()).Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal server error",
		})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
