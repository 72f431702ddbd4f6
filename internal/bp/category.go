package bp

import "fmt"

// Category is an AHA blood-pressure category.
// Values are ordered by severity, Normal being the least severe.
type Category int

const (
	Normal Category = iota
	Elevated
	Stage1
	Stage2
	Crisis
)

// Categories lists every category in ascending severity.
var Categories = [...]Category{Normal, Elevated, Stage1, Stage2, Crisis}

var categoryLabels = [...]string{
	Normal:   "Normal",
	Elevated: "Elevated",
	Stage1:   "Hypertension Stage 1",
	Stage2:   "Hypertension Stage 2",
	Crisis:   "Hypertensive Crisis",
}

// String returns the clinical label of the category.
func (c Category) String() string {
	if c < Normal || c > Crisis {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryLabels[c]
}

// MarshalText encodes the category as its label, so it can be used as a JSON
// value and as a JSON object key.
func (c Category) MarshalText() ([]byte, error) {
	if c < Normal || c > Crisis {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	return []byte(categoryLabels[c]), nil
}

// UnmarshalText parses a category label.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory returns the category with the given label.
func ParseCategory(label string) (Category, error) {
	for _, c := range Categories {
		if categoryLabels[c] == label {
			return c, nil
		}
	}
	return Normal, fmt.Errorf("unknown category %q", label)
}
