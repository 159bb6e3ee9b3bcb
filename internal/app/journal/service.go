package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PabloGalante/neurolink/internal/domain"
	"github.com/PabloGalante/neurolink/internal/observability"
)

const defaultJournalLimit = 20

// Service holds the logic of logging and reading mood check-ins
type Service struct {
	store domain.JournalStore
	now   func() time.Time
}

// NewService creates a journal service from a JournalStore
func NewService(store domain.JournalStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// LogMoodInput is one filled-in check-in form.
type LogMoodInput struct {
	UserID             domain.UserID
	OverallMood        int
	EnergyLevel        int
	StressLevel        int
	HoursOfSleep       float64
	Emotions           []string
	StressContributors []string
	CopingStrategies   []string
	JournalText        string
}

// LogMood validates the check-in, attaches its report and stores it.
func (s *Service) LogMood(ctx context.Context, in LogMoodInput) (*domain.MoodEntry, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	entry := &domain.MoodEntry{
		ID:                 domain.NewJournalEntryID(),
		UserID:             in.UserID,
		CreatedAt:          s.now(),
		OverallMood:        in.OverallMood,
		EnergyLevel:        in.EnergyLevel,
		StressLevel:        in.StressLevel,
		HoursOfSleep:       in.HoursOfSleep,
		Emotions:           nonNil(in.Emotions),
		StressContributors: nonNil(in.StressContributors),
		CopingStrategies:   cleanStrategies(in.CopingStrategies),
		JournalText:        strings.TrimSpace(in.JournalText),
	}
	entry.Report = BuildReport(entry)

	log := observability.LoggerFromContext(ctx).With("user_id", in.UserID)

	if err := s.store.AppendJournalEntry(entry); err != nil {
		log.Error("failed to store mood entry", "error", err)
		return nil, err
	}

	log.Info("mood entry logged",
		"entry_id", entry.ID,
		"mood", entry.OverallMood,
		"stress", entry.StressLevel,
	)
	return entry, nil
}

// GetUserJournal returns the last `limit` entries for a user
// If limit <= 0, a reasonable default value is used.
func (s *Service) GetUserJournal(ctx context.Context, userID domain.UserID, limit int) ([]*domain.MoodEntry, error) {
	if limit <= 0 {
		limit = defaultJournalLimit
	}

	entries, err := s.store.ListJournalEntriesByUser(userID, limit)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to list mood entries", "user_id", userID, "error", err)
		return nil, err
	}
	return entries, nil
}

func validate(in LogMoodInput) error {
	if strings.TrimSpace(string(in.UserID)) == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidMoodEntry)
	}
	scores := []struct {
		name  string
		value int
	}{
		{"overall mood", in.OverallMood},
		{"energy level", in.EnergyLevel},
		{"stress level", in.StressLevel},
	}
	for _, s := range scores {
		if s.value < 1 || s.value > 10 {
			return fmt.Errorf("%w: %s must be between 1 and 10, got %d", domain.ErrInvalidMoodEntry, s.name, s.value)
		}
	}
	if in.HoursOfSleep < 0 || in.HoursOfSleep > 24 {
		return fmt.Errorf("%w: hours of sleep must be between 0 and 24, got %g", domain.ErrInvalidMoodEntry, in.HoursOfSleep)
	}
	return nil
}

// cleanStrategies drops blank and repeated strategies, keeping input order.
func cleanStrategies(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
