package chat

import (
	"github.com/PabloGalante/neurolink/internal/domain"
)

// BuildHistory turns the visible message log into the transcript sent to the
// backend. The result starts at the first user message, keeps at most
// maxItems entries (the most recent ones, oldest first) and alternates roles
// strictly.
//
// Canonicalization of logs that do not alternate:
//   - error-styled bot messages are diagnostics and are skipped;
//   - leading model items left by the window are dropped;
//   - consecutive items with the same role are merged, texts joined by a blank line.
func BuildHistory(messages []*domain.Message, maxItems int) []domain.HistoryItem {
	first := -1
	for i, m := range messages {
		if m.Sender == domain.SenderUser {
			first = i
			break
		}
	}
	if first == -1 || maxItems <= 0 {
		return []domain.HistoryItem{}
	}

	trimmed := make([]*domain.Message, 0, len(messages)-first)
	for _, m := range messages[first:] {
		if m.IsBot() && m.DisplayType == domain.DisplayError {
			continue
		}
		trimmed = append(trimmed, m)
	}

	if len(trimmed) > maxItems {
		trimmed = trimmed[len(trimmed)-maxItems:]
	}
	for len(trimmed) > 0 && trimmed[0].IsBot() {
		trimmed = trimmed[1:]
	}

	out := make([]domain.HistoryItem, 0, len(trimmed))
	for _, m := range trimmed {
		role := roleFor(m.Sender)
		if n := len(out); n > 0 && out[n-1].Role == role {
			prev := out[n-1].Text()
			out[n-1] = domain.NewHistoryItem(role, prev+"\n\n"+m.Text)
			continue
		}
		out = append(out, domain.NewHistoryItem(role, m.Text))
	}
	return out
}

func roleFor(s domain.Sender) domain.Role {
	if s == domain.SenderBot {
		return domain.RoleModel
	}
	return domain.RoleUser
}

// withoutPendingTurn drops a trailing optimistic user message that carries the
// text being sent, so the new turn is never duplicated inside history.
func withoutPendingTurn(messages []*domain.Message, userText string) []*domain.Message {
	n := len(messages)
	if n == 0 {
		return messages
	}
	last := messages[n-1]
	if last.Sender == domain.SenderUser && trimText(last.Text) == userText {
		return messages[:n-1]
	}
	return messages
}
