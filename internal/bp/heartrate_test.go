package bp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyHeartRate(t *testing.T) {
	tests := []struct {
		bpm  int
		want HeartRateCategory
	}{
		{0, Bradycardia},
		{59, Bradycardia},
		{60, HeartRateNormal},
		{100, HeartRateNormal},
		{101, HeartRateRaised},
		{120, HeartRateRaised},
		{121, Tachycardia},
		{220, Tachycardia},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyHeartRate(tt.bpm), "bpm %d", tt.bpm)
	}
}

func TestHeartRateAdvice(t *testing.T) {
	for _, c := range []HeartRateCategory{Bradycardia, HeartRateNormal, HeartRateRaised, Tachycardia} {
		info := HeartRateAdvice(c)
		assert.Equal(t, c, info.Category)
		assert.NotEmpty(t, info.Description)
		assert.NotEmpty(t, info.Recommendations)
	}

	assert.Equal(t, HeartRateNormal, HeartRateAdvice("Unknown").Category)
	assert.Equal(t, "Consult healthcare provider", HeartRateAdvice(Tachycardia).Recommendations[0])
}
