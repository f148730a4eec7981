package aggregator

import (
	"fmt"
	"math"

	"github.com/pable/go-team-stats/internal/model"
)

// PerMatch returns num/den rounded to 2 decimal places.
// A zero denominator yields ErrDivisionByZero; callers decide what to display.
func PerMatch(num, den int) (float64, error) {
	if den == 0 {
		return 0, fmt.Errorf("%d / 0: %w", num, model.ErrDivisionByZero)
	}
	return RoundTo(float64(num)/float64(den), 2), nil
}

// Percentage returns num/den*100 rounded to 2 decimal places.
func Percentage(num, den int) (float64, error) {
	return PercentageTo(num, den, 2)
}

// PercentageTo returns num/den*100 rounded once to places decimals. Call sites that
// show a coarser percentage use this rather than re-rounding Percentage.
func PercentageTo(num, den, places int) (float64, error) {
	if den == 0 {
		return 0, fmt.Errorf("%d / 0: %w", num, model.ErrDivisionByZero)
	}
	return RoundTo(float64(num)/float64(den)*100, places), nil
}

// RoundTo rounds half away from zero to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
