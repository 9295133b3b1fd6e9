package report

import (
	"math"
	"strconv"
)

// FormatINR renders an amount rounded to whole rupees with Indian digit
// grouping: 45000 -> "45,000", 1234567 -> "12,34,567".
func FormatINR(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)

	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var grouped []byte
		for i, c := range []byte(head) {
			if i > 0 && (len(head)-i)%2 == 0 {
				grouped = append(grouped, ',')
			}
			grouped = append(grouped, c)
		}
		s = string(grouped) + "," + tail
	}

	if neg {
		return "-" + s
	}
	return s
}

// MatchPercent rounds a suitability score for display.
func MatchPercent(s float64) int {
	return int(math.Round(s))
}
