package bp

// AdvisoryType is the severity tag of a weekly advisory.
type AdvisoryType string

const (
	TypeInfo    AdvisoryType = "info"
	TypeSuccess AdvisoryType = "success"
	TypeWarning AdvisoryType = "warning"
	TypeDanger  AdvisoryType = "danger"
)

// Stats summarizes the analysis window.
type Stats struct {
	AvgSystolic    float64          `json:"avg_systolic"`
	AvgDiastolic   float64          `json:"avg_diastolic"`
	CategoryCounts map[Category]int `json:"category_counts"`
}

// AdvisoryResult is the outcome of a weekly analysis.
// Stats is nil when there were not enough readings to analyze.
type AdvisoryResult struct {
	Message         string       `json:"message"`
	Type            AdvisoryType `json:"type"`
	Recommendations []string     `json:"recommendations"`
	Stats           *Stats       `json:"stats,omitempty"`
}
