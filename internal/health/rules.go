package health

import "bp-advisor/internal/metrics"

// RuleResult represents the outcome of a single rule.
type RuleResult struct {
	Triggered      bool
	Signal         string
	Recommendation string
	Severity       Status
}

// Rule evaluates a metrics snapshot.
type Rule func(snapshot map[string]int64) RuleResult

// PanicRule reports CRITICAL once any handler panic was recovered.
func PanicRule(snapshot map[string]int64) RuleResult {
	if snapshot[string(metrics.PanicsRecoveredTotal)] > 0 {
		return RuleResult{
			Triggered:      true,
			Signal:         "Handler panics were recovered",
			Recommendation: "Inspect error logs and fix the failing handler",
			Severity:       StatusCritical,
		}
	}
	return RuleResult{}
}

// ExportFailureRule reports DEGRADED when workbook generation has failed.
func ExportFailureRule(snapshot map[string]int64) RuleResult {
	if snapshot[string(metrics.ExportFailuresTotal)] > 0 {
		return RuleResult{
			Triggered:      true,
			Signal:         "Report exports have failed",
			Recommendation: "Check export errors in the logs",
			Severity:       StatusDegraded,
		}
	}
	return RuleResult{}
}
