package chart

import (
	"fmt"
	"strconv"
	"time"
)

func MonthLabel(d time.Time) string { return d.Format("Jan") }

// TooltipDate formats a day the way the tooltip heading shows it, e.g. "05 Jan".
func TooltipDate(d time.Time) string { return d.Format("02 Jan") }

// FormatCount renders a count with thousands separators.
func FormatCount(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// FormatAxisValue shortens large axis values: 1500 -> "1.5K".
func FormatAxisValue(v float64) string {
	if v >= 1_000_000 {
		return fmt.Sprintf("%.1fM", v/1_000_000)
	}
	if v >= 1_000 {
		return fmt.Sprintf("%.1fK", v/1_000)
	}
	if v == float64(int(v)) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.1f", v)
}

// TooltipLines is the text of a tooltip: heading and case line.
func TooltipLines(t Tooltip) []string {
	p := t.Payload()
	return []string{
		TooltipDate(p.Date),
		fmt.Sprintf("%s new cases", FormatCount(p.NewConfirmed)),
	}
}
