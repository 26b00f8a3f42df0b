// Package streak turns entry timestamps into a per-day presence table.
package streak

import (
	"log/slog"
	"time"

	"github.com/aretw0/jurnalo/pkg/core"
)

const (
	// DefaultDays is the width of the window when none is configured.
	DefaultDays = 7
	// MaxDays keeps the header readable with single digit columns.
	MaxDays = 10
)

const day = 24 * time.Hour

// Grid maps a choice label to one cell per day of the window, oldest first.
// The last cell is today.
type Grid map[string][]bool

type date struct {
	year  int
	month time.Month
	day   int
}

func dateOf(t time.Time) date {
	y, m, d := t.Date()
	return date{y, m, d}
}

// Aggregate folds samples into a Grid covering the calendar day of now and the
// days-1 days before it, in now's location. A label gets a row when it has a
// sample without timestamp or one inside the window; other samples are ignored.
func Aggregate(now time.Time, days int, samples []core.StreakSample, logger *slog.Logger) Grid {
	if days <= 0 {
		days = DefaultDays
	}
	if logger == nil {
		logger = slog.Default()
	}

	window := make(map[date]struct{}, days)
	for i := 0; i < days; i++ {
		window[dateOf(now.AddDate(0, 0, -i))] = struct{}{}
	}

	grid := make(Grid)
	for _, s := range samples {
		if s.Timestamp == nil {
			if _, ok := grid[s.Label]; !ok {
				grid[s.Label] = make([]bool, days)
			}
			continue
		}

		ts := s.Timestamp.In(now.Location())
		if _, ok := window[dateOf(ts)]; !ok {
			continue
		}

		index := daysBetween(ts, now)
		if index < 0 || index >= days {
			logger.Warn("streak sample outside of window", "label", s.Label, "timestamp", ts, "days_ago", index)
			continue
		}
		row, ok := grid[s.Label]
		if !ok {
			row = make([]bool, days)
			grid[s.Label] = row
		}
		row[days-1-index] = true
	}
	return grid
}

// daysBetween returns floor((to - from) / 24h).
func daysBetween(from, to time.Time) int {
	d := to.Sub(from)
	n := int(d / day)
	if d < 0 && d%day != 0 {
		n--
	}
	return n
}
