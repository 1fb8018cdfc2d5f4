package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGrowthRate(t *testing.T) {
	cases := []struct {
		name              string
		current, previous int
		expected          float64
	}{
		{"steady growth", 150, 100, 50},
		{"decline", 50, 100, -50},
		{"flat", 100, 100, 0},
		{"from nothing", 5, 0, 100},
		{"nothing to nothing", 0, 0, 0},
		{"to nothing", 0, 80, -100},
		{"rounded", 1, 3, -66.67},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, GrowthRate(tc.current, tc.previous))
		})
	}
}

func TestConversionRate(t *testing.T) {
	assert.Equal(t, 25.0, ConversionRate(25, 100))
	assert.Equal(t, 0.0, ConversionRate(0, 100))
	assert.Equal(t, 0.0, ConversionRate(5, 0))
	assert.Equal(t, 33.33, ConversionRate(1, 3))
	assert.Equal(t, 100.0, ConversionRate(7, 7))
}

func TestAverageDurationDays(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0.0, AverageDurationDays(nil))

	spans := []Span{
		{Start: base, End: base.AddDate(0, 0, 2)},
		{Start: base, End: base.AddDate(0, 0, 4)},
	}
	assert.Equal(t, 3.0, AverageDurationDays(spans))

	partial := []Span{{Start: base, End: base.Add(36 * time.Hour)}}
	assert.Equal(t, 1.5, AverageDurationDays(partial))
}
