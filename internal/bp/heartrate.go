package bp

// HeartRateCategory classifies a resting heart rate.
type HeartRateCategory string

const (
	Bradycardia     HeartRateCategory = "Bradycardia"
	HeartRateNormal HeartRateCategory = "Normal"
	HeartRateRaised HeartRateCategory = "Elevated"
	Tachycardia     HeartRateCategory = "Tachycardia"
)

// HeartRateInfo describes a heart-rate category for the reader.
type HeartRateInfo struct {
	Category        HeartRateCategory `json:"category"`
	Description     string            `json:"description"`
	Recommendations []string          `json:"recommendations"`
}

// ClassifyHeartRate maps a resting heart rate in bpm to its category.
func ClassifyHeartRate(bpm int) HeartRateCategory {
	switch {
	case bpm < 60:
		return Bradycardia
	case bpm <= 100:
		return HeartRateNormal
	case bpm <= 120:
		return HeartRateRaised
	default:
		return Tachycardia
	}
}

// HeartRateAdvice returns the description and recommendations for a category.
// Unknown categories get the Normal advice.
func HeartRateAdvice(c HeartRateCategory) HeartRateInfo {
	switch c {
	case Bradycardia:
		return HeartRateInfo{
			Category:    Bradycardia,
			Description: "Below 60 bpm - May indicate excellent fitness or medical condition",
			Recommendations: []string{
				"Consult doctor if experiencing symptoms",
				"Monitor for dizziness or fatigue",
			},
		}
	case HeartRateRaised:
		return HeartRateInfo{
			Category:    HeartRateRaised,
			Description: "100-120 bpm - Slightly elevated",
			Recommendations: []string{
				"Consider stress management",
				"Reduce caffeine intake",
				"Improve sleep quality",
			},
		}
	case Tachycardia:
		return HeartRateInfo{
			Category:    Tachycardia,
			Description: "Above 120 bpm - Elevated heart rate",
			Recommendations: []string{
				"Consult healthcare provider",
				"Check for underlying conditions",
				"Monitor symptoms",
			},
		}
	default:
		return HeartRateInfo{
			Category:    HeartRateNormal,
			Description: "60-100 bpm - Healthy resting heart rate",
			Recommendations: []string{
				"Maintain regular exercise",
				"Continue healthy lifestyle",
			},
		}
	}
}
