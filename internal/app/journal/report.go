package journal

import (
	"slices"

	"github.com/PabloGalante/neurolink/internal/domain"
)

const (
	ContributorExams    = "Exams"
	ContributorFinances = "Finances"
)

const (
	assessmentGreat       = "Overall Assessment: Great mental health day! You're managing well."
	assessmentChallenging = "Overall Assessment: This seems like a challenging day. Consider reaching out for support."
	assessmentMixed       = "Overall Assessment: Mixed day with room for improvement. Focus on the recommendations below."
)

// BuildReport computes the rule-based wellbeing feedback for one check-in.
// It is deterministic and only looks at the entry's scores and selections.
func BuildReport(e *domain.MoodEntry) domain.MoodReport {
	r := reportBuilder{}

	switch {
	case e.OverallMood >= 8:
		r.insight("You're having an excellent day! Your mood is very positive.")
		r.recommend("Share your positive energy with others or engage in activities you enjoy.")
	case e.OverallMood >= 6:
		r.insight("You're feeling good today with a solid mood score.")
		r.recommend("Maintain this positive momentum through consistent self-care.")
	case e.OverallMood >= 4:
		r.insight("Your mood is neutral today. This is perfectly normal.")
		r.recommend("Consider gentle activities like walking or listening to music to boost your mood.")
	default:
		r.insight("You're having a tough day. Remember, it's okay to have difficult days.")
		r.recommend("Reach out to friends, practice self-compassion, or consider speaking with a counselor.")
	}

	switch {
	case e.StressLevel >= 8:
		r.insight("High stress levels detected. This needs attention.")
		r.recommend("Try immediate stress relief: deep breathing, short walks, or reaching out for support.")
		if slices.Contains(e.StressContributors, ContributorExams) {
			r.recommend("For exam stress: Break study sessions into chunks, use active recall, and ensure adequate breaks.")
		}
		if slices.Contains(e.StressContributors, ContributorFinances) {
			r.recommend("For financial stress: Create a budget, explore student financial resources, or speak with a financial advisor.")
		}
	case e.StressLevel >= 5:
		r.insight("Moderate stress levels, manageable but worth addressing.")
		r.recommend("Implement regular stress management techniques like meditation or exercise.")
	default:
		r.insight("Great job managing stress! Your levels are healthy.")
		r.recommend("Continue your current stress management strategies.")
	}

	switch {
	case e.EnergyLevel <= 3:
		r.insight("Low energy detected. This could be affecting your daily functioning.")
		r.recommend("Prioritize rest, proper nutrition, and gentle movement to restore energy.")
	case e.EnergyLevel >= 8:
		r.insight("High energy levels! You're feeling vibrant today.")
		r.recommend("Channel this energy into productive activities or physical exercise.")
	}

	switch {
	case e.HoursOfSleep < 6:
		r.insight("Insufficient sleep detected. This significantly impacts mood and stress.")
		r.sleep(
			"PRIORITY: Increase sleep to 7-9 hours for optimal mental health.",
			"Create a 'phone-free' bedroom environment",
			"Set a consistent bedtime routine",
			"Avoid caffeine 6+ hours before sleep",
		)
		r.recommend("Focus on improving sleep hygiene as your top priority for better mood and reduced stress.")
	case e.HoursOfSleep < 7:
		r.insight("Below optimal sleep. Small improvements could make a big difference.")
		r.sleep(
			"Aim for 7-9 hours of sleep nightly",
			"Try going to bed 30 minutes earlier",
			"Avoid screens 1 hour before bedtime",
			"Consider herbal tea or light stretching before bed",
		)
	case e.HoursOfSleep <= 9:
		r.insight("Excellent sleep duration! This supports good mental health.")
		r.sleep(
			"Great sleep habits! Keep it up",
			"Maintain consistency, even on weekends",
			"Consider sleep quality: cool, dark, quiet room",
		)
	default:
		r.insight("You might be oversleeping. Quality matters more than quantity.")
		r.sleep(
			"Aim for 7-9 hours for optimal benefit",
			"Try maintaining consistent wake times",
			"Gentle morning movement can improve sleep quality",
		)
	}

	if slices.Contains(e.Emotions, domain.EmotionAnxious) && e.StressLevel >= 6 {
		r.insight("Pattern detected: Anxiety paired with high stress.")
		r.recommend("Practice grounding techniques: 5-4-3-2-1 sensory method or progressive muscle relaxation.")
	}
	if slices.Contains(e.Emotions, domain.EmotionOverwhelmed) {
		r.insight("Feeling overwhelmed is a signal to slow down and prioritize.")
		r.recommend("Break tasks into smaller, manageable steps. Practice saying 'no' to non-essential commitments.")
	}

	switch n := len(e.CopingStrategies); {
	case n >= 3:
		r.insight("Excellent! You have multiple coping strategies available.")
	case n == 0:
		r.recommend("Develop a toolbox of coping strategies: breathing exercises, journaling, talking to friends, or physical activity.")
	}

	r.report.OverallAssessment = assess(e.OverallMood, e.StressLevel)
	return r.report
}

func assess(mood, stress int) string {
	switch {
	case mood >= 7 && stress <= 4:
		return assessmentGreat
	case mood <= 4 || stress >= 7:
		return assessmentChallenging
	default:
		return assessmentMixed
	}
}

type reportBuilder struct {
	report domain.MoodReport
}

func (b *reportBuilder) insight(s string) {
	b.report.Insights = append(b.report.Insights, s)
}

func (b *reportBuilder) recommend(s string) {
	b.report.Recommendations = append(b.report.Recommendations, s)
}

func (b *reportBuilder) sleep(lines ...string) {
	b.report.SleepGuidance = append(b.report.SleepGuidance, lines...)
}
