package domain

import "time"

// JournalEntryID identifies a mood journal entry
type JournalEntryID string

// Emotion ids offered by the mood check-in form.
const (
	EmotionAnxious     = "anxious"
	EmotionStressed    = "stressed"
	EmotionSad         = "sad"
	EmotionCalm        = "calm"
	EmotionHappy       = "happy"
	EmotionExcited     = "excited"
	EmotionOverwhelmed = "overwhelmed"
	EmotionContent     = "content"
)

// MoodReport is the rule-based feedback computed for an entry.
type MoodReport struct {
	Insights          []string `json:"insights"`
	Recommendations   []string `json:"recommendations"`
	SleepGuidance     []string `json:"sleep_guidance"`
	OverallAssessment string   `json:"overall_assessment"`
}

// MoodEntry is one daily mood check-in.
type MoodEntry struct {
	ID        JournalEntryID `json:"id"`
	UserID    UserID         `json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`

	// Scores on a 1-10 scale
	OverallMood int `json:"overall_mood"`
	EnergyLevel int `json:"energy_level"`
	StressLevel int `json:"stress_level"`

	HoursOfSleep float64 `json:"hours_of_sleep"`

	Emotions           []string `json:"emotions"`
	StressContributors []string `json:"stress_contributors"`
	CopingStrategies   []string `json:"coping_strategies"`
	JournalText        string   `json:"journal_text,omitempty"`

	Report MoodReport `json:"report"`
}

// JournalStore defines the minimum operations to keep mood entries
type JournalStore interface {
	AppendJournalEntry(entry *MoodEntry) error
	ListJournalEntriesByUser(userID UserID, limit int) ([]*MoodEntry, error)
}
