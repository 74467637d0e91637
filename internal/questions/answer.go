package questions

import (
	"fmt"
	"strconv"
	"strings"
)

// Check compares the learner's input against q's answer.
//
// Whitespace is trimmed and comparison is case-insensitive. Numeric
// answers compare by value, so "0.50", ".5" and "1/2" all match "0.5".
// Multiple choice accepts the choice text or its 1-based index; a choice
// whose text is itself a number matches as text first.
func Check(q Question, input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}

	switch q.Format {
	case FormatMultipleChoice:
		for _, c := range q.Choices {
			if strings.EqualFold(input, strings.TrimSpace(c)) {
				return strings.EqualFold(input, strings.TrimSpace(q.Answer))
			}
		}
		if idx, err := strconv.Atoi(input); err == nil && idx >= 1 && idx <= len(q.Choices) {
			return strings.EqualFold(strings.TrimSpace(q.Choices[idx-1]), strings.TrimSpace(q.Answer))
		}
		return false

	case FormatNumeric:
		got, err := parseNumber(input)
		if err != nil {
			return false
		}
		want, err := parseNumber(q.Answer)
		if err != nil {
			return false
		}
		return nearlyEqual(got, want)

	default:
		return strings.EqualFold(collapseSpace(input), collapseSpace(q.Answer))
	}
}

// parseNumber parses a decimal or an "a/b" fraction.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid numerator: %w", err)
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid denominator: %w", err)
		}
		if d == 0 {
			return 0, fmt.Errorf("zero denominator")
		}
		return n / d, nil
	}
	return strconv.ParseFloat(s, 64)
}

func nearlyEqual(a, b float64) bool {
	const eps = 1e-9
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= eps
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
