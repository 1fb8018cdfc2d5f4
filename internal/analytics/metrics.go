// Package analytics provides pure, side-effect-free metric calculations over
// aggregate counts. All rates are percentages rounded to two decimal places
// and every zero-denominator case has a defined value; callers never see NaN.
package analytics

import (
	"math"
	"time"
)

const hoursPerDay = 24

// Span is a start/end timestamp pair.
type Span struct {
	Start time.Time
	End   time.Time
}

// GrowthRate returns the period-over-period growth percentage. A zero
// previous period yields 100 when the current period has activity and 0
// otherwise, signalling growth-from-nothing without dividing by zero.
func GrowthRate(current, previous int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return round2(float64(current-previous) / float64(previous) * 100)
}

// ConversionRate returns part as a percentage of total, 0 when total is 0.
func ConversionRate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

// AverageDurationDays returns the mean span length in days. Empty input
// yields 0, not an error.
func AverageDurationDays(spans []Span) float64 {
	if len(spans) == 0 {
		return 0
	}
	var totalDays float64
	for _, span := range spans {
		totalDays += span.End.Sub(span.Start).Hours() / hoursPerDay
	}
	return round2(totalDays / float64(len(spans)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
