package bp

import "math"

// WindowSize is the number of trailing readings a weekly analysis covers.
const WindowSize = 7

// AnalyzeWeek classifies the last WindowSize readings and selects an advisory.
//
// Readings before the window are ignored. With fewer than WindowSize readings
// no analysis is done and the result carries no stats. Averages are rounded
// to one decimal, halves away from zero.
func AnalyzeWeek(readings []Reading) AdvisoryResult {
	if len(readings) < WindowSize {
		return AdvisoryResult{
			Message:         "need at least 7 readings for weekly analysis",
			Type:            TypeInfo,
			Recommendations: []string{"Continue daily monitoring"},
		}
	}

	window := readings[len(readings)-WindowSize:]

	var (
		counts       = make(map[Category]int, len(Categories))
		sumSystolic  float64
		sumDiastolic float64
	)
	// float64 sums do not wrap on extreme readings.
	for _, r := range window {
		counts[r.Category()]++
		sumSystolic += float64(r.Systolic)
		sumDiastolic += float64(r.Diastolic)
	}

	result := noConcernsResult()
	for _, rule := range tierRules {
		if res := rule(counts); res.Triggered {
			result = res
			break
		}
	}

	return AdvisoryResult{
		Message:         result.Message,
		Type:            result.Type,
		Recommendations: result.Recommendations,
		Stats: &Stats{
			AvgSystolic:    roundTenth(sumSystolic / WindowSize),
			AvgDiastolic:   roundTenth(sumDiastolic / WindowSize),
			CategoryCounts: counts,
		},
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
