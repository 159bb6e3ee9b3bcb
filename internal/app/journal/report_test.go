package journal_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/neurolink/internal/app/journal"
	"github.com/PabloGalante/neurolink/internal/domain"
)

func TestBuildReportGreatDay(t *testing.T) {
	r := journal.BuildReport(&domain.MoodEntry{
		OverallMood:      9,
		EnergyLevel:      8,
		StressLevel:      2,
		HoursOfSleep:     8,
		Emotions:         []string{domain.EmotionHappy},
		CopingStrategies: []string{"walks", "music", "journaling"},
	})

	assert.Contains(t, r.OverallAssessment, "Great mental health day")
	assert.Contains(t, r.Insights, "You're having an excellent day! Your mood is very positive.")
	assert.Contains(t, r.Insights, "Excellent! You have multiple coping strategies available.")
	assert.Contains(t, r.Insights, "High energy levels! You're feeling vibrant today.")
	assert.Len(t, r.SleepGuidance, 3)
}

func TestBuildReportHighStress(t *testing.T) {
	r := journal.BuildReport(&domain.MoodEntry{
		OverallMood:        5,
		EnergyLevel:        2,
		StressLevel:        9,
		HoursOfSleep:       5,
		Emotions:           []string{domain.EmotionAnxious, domain.EmotionOverwhelmed},
		StressContributors: []string{journal.ContributorExams, journal.ContributorFinances},
	})

	assert.Contains(t, r.OverallAssessment, "challenging day")
	assert.Contains(t, r.Insights, "High stress levels detected. This needs attention.")
	assert.Contains(t, r.Insights, "Pattern detected: Anxiety paired with high stress.")
	assert.Contains(t, r.Insights, "Feeling overwhelmed is a signal to slow down and prioritize.")
	assert.Contains(t, r.Insights, "Low energy detected. This could be affecting your daily functioning.")

	var exam, finance, toolbox bool
	for _, rec := range r.Recommendations {
		switch {
		case strings.HasPrefix(rec, "For exam stress:"):
			exam = true
		case strings.HasPrefix(rec, "For financial stress:"):
			finance = true
		case strings.HasPrefix(rec, "Develop a toolbox"):
			toolbox = true
		}
	}
	assert.True(t, exam, "exam advice")
	assert.True(t, finance, "finance advice")
	assert.True(t, toolbox, "no coping strategies should suggest a toolbox")

	assert.Len(t, r.SleepGuidance, 4)
	assert.Contains(t, r.SleepGuidance[0], "PRIORITY")
}

func TestBuildReportBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		entry      domain.MoodEntry
		assessment string
		insight    string
	}{
		{
			name:       "mixed day",
			entry:      domain.MoodEntry{OverallMood: 6, EnergyLevel: 5, StressLevel: 5, HoursOfSleep: 7},
			assessment: "Mixed day",
			insight:    "Moderate stress levels, manageable but worth addressing.",
		},
		{
			name:       "mood four is challenging",
			entry:      domain.MoodEntry{OverallMood: 4, EnergyLevel: 5, StressLevel: 1, HoursOfSleep: 6.5},
			assessment: "challenging day",
			insight:    "Below optimal sleep. Small improvements could make a big difference.",
		},
		{
			name:       "stress seven is challenging",
			entry:      domain.MoodEntry{OverallMood: 8, EnergyLevel: 5, StressLevel: 7, HoursOfSleep: 9},
			assessment: "challenging day",
			insight:    "Excellent sleep duration! This supports good mental health.",
		},
		{
			name:       "oversleeping",
			entry:      domain.MoodEntry{OverallMood: 7, EnergyLevel: 5, StressLevel: 4, HoursOfSleep: 11},
			assessment: "Great mental health day",
			insight:    "You might be oversleeping. Quality matters more than quantity.",
		},
		{
			name:       "low mood",
			entry:      domain.MoodEntry{OverallMood: 2, EnergyLevel: 5, StressLevel: 3, HoursOfSleep: 8},
			assessment: "challenging day",
			insight:    "You're having a tough day. Remember, it's okay to have difficult days.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := journal.BuildReport(&tt.entry)
			assert.Contains(t, r.OverallAssessment, tt.assessment)
			assert.Contains(t, r.Insights, tt.insight)
		})
	}
}

func TestBuildReportAnxiousNeedsStress(t *testing.T) {
	r := journal.BuildReport(&domain.MoodEntry{
		OverallMood: 6, EnergyLevel: 5, StressLevel: 5, HoursOfSleep: 8,
		Emotions: []string{domain.EmotionAnxious},
	})
	assert.NotContains(t, r.Insights, "Pattern detected: Anxiety paired with high stress.")
}
