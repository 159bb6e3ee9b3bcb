package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/PabloGalante/neurolink/internal/app/conversation"
	"github.com/PabloGalante/neurolink/internal/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with Neurolink in the terminal",
	Long:  "Starts a chat screen on stdin/stdout. Type /quit or press Ctrl+D to leave.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		a, err := buildApp(ctx, cfg)
		if err != nil {
			return err
		}
		return runChat(ctx, a.conversation, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// chatStyles maps each display type to how the bubble is drawn.
type chatStyles struct {
	User       lipgloss.Style
	Normal     lipgloss.Style
	Escalation lipgloss.Style
	Resource   lipgloss.Style
	Error      lipgloss.Style
	Hint       lipgloss.Style
}

func newChatStyles() chatStyles {
	bubble := lipgloss.NewStyle().Padding(0, 1).Width(76)

	return chatStyles{
		User: bubble.
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#5b5bd6")),
		Normal: bubble.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#8e8ea0")),
		Escalation: bubble.
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("#e5484d")).
			Bold(true),
		Resource: bubble.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#30a46c")),
		Error: bubble.
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#f76b15")).
			Foreground(lipgloss.Color("#f76b15")),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8e8ea0")).
			Italic(true),
	}
}

func (s chatStyles) render(m *domain.Message) string {
	if !m.IsBot() {
		return s.User.Render("you: " + m.Text)
	}

	switch m.DisplayType {
	case domain.DisplayEscalation:
		return s.Escalation.Render("If you are in crisis, please reach out now.\n\n" + m.Text)
	case domain.DisplayResource:
		return s.Resource.Render("Tip\n\n" + m.Text)
	case domain.DisplayError:
		return s.Error.Render(m.Text)
	default:
		return s.Normal.Render(m.Text)
	}
}

// runChat drives one terminal chat screen. Input is read only after the
// previous reply has been printed, so there is never more than one turn in
// flight.
func runChat(ctx context.Context, svc *conversation.Service, in io.Reader, out io.Writer) error {
	styles := newChatStyles()

	started, err := svc.StartSession(ctx, conversation.StartSessionInput{Title: "terminal"})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, styles.render(started.Welcome))
	fmt.Fprintln(out, styles.Hint.Render("type /quit to leave"))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		switch text {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		}

		fmt.Fprintln(out, styles.Hint.Render("Neurolink is typing..."))

		res, err := svc.SendMessage(ctx, conversation.SendMessageInput{
			SessionID: started.Session.ID,
			Text:      text,
		})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		fmt.Fprintln(out, styles.render(res.BotMessage))
	}
}
