package health

import (
	"bp-advisor/internal/logs"
	"bp-advisor/internal/metrics"
)

// errorLogThreshold is the number of recent ERROR entries that degrades health.
const errorLogThreshold = 3

// Analyzer converts metrics + logs into a health report.
type Analyzer struct {
	metrics *metrics.Registry
	logger  *logs.Logger
	rules   []Rule
}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer(reg *metrics.Registry, logger *logs.Logger) *Analyzer {
	return &Analyzer{
		metrics: reg,
		logger:  logger,
		rules: []Rule{
			PanicRule,
			ExportFailureRule,
		},
	}
}

// Analyze evaluates metrics and logs and returns a health report.
func (a *Analyzer) Analyze() Report {
	snapshot := a.metrics.Snapshot()

	var (
		signals         = []string{}
		recommendations = []string{}
		status          = StatusOK
	)

	for _, rule := range a.rules {
		result := rule(snapshot)
		if !result.Triggered {
			continue
		}

		signals = append(signals, result.Signal)
		recommendations = append(recommendations, result.Recommendation)
		status = escalate(status, result.Severity)
	}

	errorCount := 0
	for _, entry := range a.logger.GetLast(100) {
		if entry.Level == logs.ERROR {
			errorCount++
		}
	}
	if errorCount >= errorLogThreshold {
		signals = append(signals, "Repeated errors detected in logs")
		recommendations = append(recommendations, "Review recent error entries on /admin/logs")
		status = escalate(status, StatusDegraded)
	}

	summary := "Service is healthy"
	if status != StatusOK {
		summary = "Service health issues detected"
	}

	return Report{
		OverallStatus:   status,
		Summary:         summary,
		Signals:         signals,
		Recommendations: recommendations,
	}
}

func escalate(current, next Status) Status {
	if next == StatusCritical || current == StatusCritical {
		return StatusCritical
	}
	if next == StatusDegraded {
		return StatusDegraded
	}
	return current
}
