package bp

// RuleResult represents the outcome of a single advisory rule.
type RuleResult struct {
	Triggered       bool
	Type            AdvisoryType
	Message         string
	Recommendations []string
}

// Rule evaluates the category tally of a window.
type Rule func(counts map[Category]int) RuleResult

// tierRules are evaluated in order; the first triggered rule wins.
var tierRules = []Rule{
	CrisisRule,
	RepeatedStage2Rule,
	SustainedHypertensionRule,
}

// ---------- RULES ----------

// CrisisRule fires on any crisis reading; it overrides every other tier.
func CrisisRule(counts map[Category]int) RuleResult {
	if counts[Crisis] > 0 {
		return RuleResult{
			Triggered: true,
			Type:      TypeDanger,
			Message:   "immediate medical attention recommended",
			Recommendations: []string{
				"Seek immediate medical care",
				"Do not delay - this is a medical emergency",
				"Call your doctor or go to the emergency room",
			},
		}
	}
	return RuleResult{}
}

// RepeatedStage2Rule fires on three or more Stage 2 readings.
func RepeatedStage2Rule(counts map[Category]int) RuleResult {
	if counts[Stage2] >= 3 {
		return RuleResult{
			Triggered: true,
			Type:      TypeWarning,
			Message:   "you should consult a doctor",
			Recommendations: []string{
				"Schedule an appointment with your healthcare provider",
				"Consider lifestyle modifications",
				"Monitor your blood pressure daily",
				"Reduce sodium intake and increase physical activity",
			},
		}
	}
	return RuleResult{}
}

// SustainedHypertensionRule fires when Stage 1 and Stage 2 readings together
// cover at least five days of the window.
func SustainedHypertensionRule(counts map[Category]int) RuleResult {
	if counts[Stage1]+counts[Stage2] >= 5 {
		return RuleResult{
			Triggered: true,
			Type:      TypeWarning,
			Message:   "monitor closely and consider talking to a doctor",
			Recommendations: []string{
				"Continue daily monitoring",
				"Implement lifestyle changes",
				"Consider scheduling a check-up",
				"Focus on diet, exercise, and stress management",
			},
		}
	}
	return RuleResult{}
}

func noConcernsResult() RuleResult {
	return RuleResult{
		Triggered: true,
		Type:      TypeSuccess,
		Message:   "no major concerns this week",
		Recommendations: []string{
			"Keep up the good work!",
			"Continue regular monitoring",
			"Maintain healthy lifestyle habits",
			"Stay consistent with measurements",
		},
	}
}
