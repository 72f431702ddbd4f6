package bp

// Threshold constants in mmHg.
const (
	crisisSystolicAbove  = 180
	crisisDiastolicAbove = 120

	stage2SystolicMin  = 140
	stage2DiastolicMin = 90

	stage1SystolicMin  = 130
	stage1DiastolicMin = 80

	elevatedSystolicMin = 120
)

// Reading is a single blood-pressure measurement in mmHg.
// Values are not checked for physiological plausibility.
type Reading struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
}

// Classify maps a reading to its category.
//
// Ranges overlap, so rules are checked from the most severe down and the
// first match wins. Elevated additionally requires a diastolic below the
// Stage 1 bound; a mildly high systolic with diastolic >= 80 has already
// been caught by the Stage 1 rule.
func Classify(systolic, diastolic int) Category {
	switch {
	case systolic > crisisSystolicAbove || diastolic > crisisDiastolicAbove:
		return Crisis
	case systolic >= stage2SystolicMin || diastolic >= stage2DiastolicMin:
		return Stage2
	case systolic >= stage1SystolicMin || diastolic >= stage1DiastolicMin:
		return Stage1
	case systolic >= elevatedSystolicMin && diastolic < stage1DiastolicMin:
		return Elevated
	default:
		return Normal
	}
}

// Category classifies the reading.
func (r Reading) Category() Category {
	return Classify(r.Systolic, r.Diastolic)
}
