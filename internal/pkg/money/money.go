package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse converts a textual amount to a float64. Empty or malformed input
// degrades to 0 instead of returning an error; callers that need strict
// validation must check the raw input themselves.
func Parse(value string) float64 {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// Format renders an amount with exactly two decimals. Rounding happens only
// here, never mid-calculation.
func Format(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", amount)
}

func Add(a, b float64) float64 {
	return a + b
}
