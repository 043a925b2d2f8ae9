package assistant

import (
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// timeframe is an inclusive [Start, End] window.
type timeframe struct {
	Start time.Time
	End   time.Time
}

// resolveTimeframe maps free-text temporal hints to a concrete window. It is
// pure: the caller supplies the clock, so identical inputs always yield the
// same window.
//
//	"today"      -> midnight of the current day through now (partial day)
//	"this month" -> the full current calendar month
//	"last month" -> the full previous calendar month
//	anything else defaults to the current month.
func resolveTimeframe(text string, at time.Time) timeframe {
	lower := strings.ToLower(text)
	n := now.New(at)

	switch {
	case strings.Contains(lower, "today"):
		return timeframe{Start: n.BeginningOfDay(), End: at}
	case strings.Contains(lower, "this month"):
		return timeframe{Start: n.BeginningOfMonth(), End: n.EndOfMonth()}
	case strings.Contains(lower, "last month"):
		// Step to the last day of the previous month rather than AddDate(0,-1,0),
		// which normalizes Mar 31 to Mar 3.
		prev := now.New(n.BeginningOfMonth().AddDate(0, 0, -1))
		return timeframe{Start: prev.BeginningOfMonth(), End: prev.EndOfMonth()}
	default:
		// "this month" and the default share the same window.
		return timeframe{Start: n.BeginningOfMonth(), End: n.EndOfMonth()}
	}
}

// contains reports whether t falls inside the window, bounds included.
func (f timeframe) contains(t time.Time) bool {
	return !t.Before(f.Start) && !t.After(f.End)
}

// sameMonth reports whether t falls in the same calendar month as at.
func sameMonth(t, at time.Time) bool {
	return t.Year() == at.Year() && t.Month() == at.Month()
}
