package chat_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/PabloGalante/neurolink/internal/app/chat"
	"github.com/PabloGalante/neurolink/internal/domain"
)

func msg(sender domain.Sender, text string) *domain.Message {
	return &domain.Message{Sender: sender, Text: text}
}

func user(text string) *domain.Message { return msg(domain.SenderUser, text) }
func bot(text string) *domain.Message  { return msg(domain.SenderBot, text) }

func item(role domain.Role, text string) domain.HistoryItem {
	return domain.NewHistoryItem(role, text)
}

func TestBuildHistoryWithoutUserMessageIsEmpty(t *testing.T) {
	cases := [][]*domain.Message{
		nil,
		{},
		{bot("Hi! How's your day going?")},
		{bot("Hi!"), bot("Anything on your mind?")},
	}
	for i, msgs := range cases {
		got := chat.BuildHistory(msgs, 8)
		if len(got) != 0 {
			t.Errorf("case %d: expected empty history, got %v", i, got)
		}
	}
}

func TestBuildHistorySkipsGreetingAndMapsRoles(t *testing.T) {
	msgs := []*domain.Message{
		bot("Hi! How's your day going?"),
		user("pretty stressed"),
		bot("That's totally okay. What's on your mind?"),
		user("exams"),
	}

	got := chat.BuildHistory(msgs, 40)
	want := []domain.HistoryItem{
		item(domain.RoleUser, "pretty stressed"),
		item(domain.RoleModel, "That's totally okay. What's on your mind?"),
		item(domain.RoleUser, "exams"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildHistoryKeepsLastN(t *testing.T) {
	msgs := []*domain.Message{bot("greeting")}
	for i := 0; i < 10; i++ {
		msgs = append(msgs, user(fmt.Sprintf("u%d", i)), bot(fmt.Sprintf("b%d", i)))
	}

	got := chat.BuildHistory(msgs, 4)
	want := []domain.HistoryItem{
		item(domain.RoleUser, "u8"),
		item(domain.RoleModel, "b8"),
		item(domain.RoleUser, "u9"),
		item(domain.RoleModel, "b9"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildHistoryLengthAndAlternation(t *testing.T) {
	for n := 1; n <= 12; n++ {
		for size := 0; size <= 15; size++ {
			msgs := []*domain.Message{bot("greeting")}
			for i := 0; i < size; i++ {
				if i%2 == 0 {
					msgs = append(msgs, user(fmt.Sprintf("u%d", i)))
				} else {
					msgs = append(msgs, bot(fmt.Sprintf("b%d", i)))
				}
			}

			got := chat.BuildHistory(msgs, n)
			if len(got) > n {
				t.Fatalf("n=%d size=%d: length %d exceeds cap", n, size, len(got))
			}
			if len(got) > 0 && got[0].Role != domain.RoleUser {
				t.Fatalf("n=%d size=%d: history starts with %s", n, size, got[0].Role)
			}
			for i := 1; i < len(got); i++ {
				if got[i].Role == got[i-1].Role {
					t.Fatalf("n=%d size=%d: roles do not alternate at %d", n, size, i)
				}
			}
		}
	}
}

func TestBuildHistoryMergesConsecutiveRoles(t *testing.T) {
	failed := bot("Something went wrong")
	failed.DisplayType = domain.DisplayError

	msgs := []*domain.Message{
		user("hello"),
		failed,
		user("hello again"),
		bot("Hi there"),
		bot("Want a quick tip?"),
	}

	got := chat.BuildHistory(msgs, 10)
	want := []domain.HistoryItem{
		item(domain.RoleUser, "hello\n\nhello again"),
		item(domain.RoleModel, "Hi there\n\nWant a quick tip?"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildHistoryOddWindowStartsWithUser(t *testing.T) {
	msgs := []*domain.Message{
		user("u0"), bot("b0"), user("u1"), bot("b1"),
	}

	got := chat.BuildHistory(msgs, 3)
	want := []domain.HistoryItem{
		item(domain.RoleUser, "u1"),
		item(domain.RoleModel, "b1"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
}
