// Package report renders recorded entries for reading.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/jurnalo/pkg/core"
)

// Markdown groups entries by calendar date and then by time of day, in loc:
//
//	## 2024-06-01
//	### 21:04:13
//	mood -> happy : long day
//	diary : walked the dog
//
// Quick notes have no category and print their details alone.
// Entries are expected oldest first.
func Markdown(entries []core.LabeledEntry, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	var b strings.Builder
	var lastDate, lastTime string
	for _, e := range entries {
		ts := e.Timestamp.In(loc)

		if d := ts.Format(time.DateOnly); d != lastDate {
			if lastDate != "" {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "## %s\n", d)
			lastDate, lastTime = d, ""
		}
		if tm := ts.Format(time.TimeOnly); tm != lastTime {
			fmt.Fprintf(&b, "### %s\n", tm)
			lastTime = tm
		}

		b.WriteString(line(e))
		b.WriteString("  \n")
	}
	return strings.TrimSpace(b.String())
}

func line(e core.LabeledEntry) string {
	var s string
	if e.CategoryLabel != nil {
		s = *e.CategoryLabel
		if e.ChoiceLabel != nil {
			s += " -> " + *e.ChoiceLabel
		}
	}
	if e.Details != nil {
		if e.CategoryLabel != nil {
			s += " : "
		}
		s += *e.Details
	}
	return s
}

// Filter keeps the entries whose category label matches pattern.
// An empty pattern keeps everything. Quick notes are matched as an empty label.
func Filter(entries []core.LabeledEntry, pattern string) ([]core.LabeledEntry, error) {
	if pattern == "" {
		return entries, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: bad category pattern %q", core.ErrInvalidInput, pattern)
	}

	out := make([]core.LabeledEntry, 0, len(entries))
	for _, e := range entries {
		label := ""
		if e.CategoryLabel != nil {
			label = *e.CategoryLabel
		}
		if ok, _ := doublestar.Match(pattern, label); ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// Record is the JSON shape of an entry.
type Record struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Category  *string   `json:"category,omitempty"`
	Choice    *string   `json:"choice,omitempty"`
	Details   *string   `json:"details,omitempty"`
}

// JSON renders entries as an indented JSON array, timestamps in loc.
func JSON(entries []core.LabeledEntry, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.Local
	}
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, Record{
			ID:        e.ID,
			Timestamp: e.Timestamp.In(loc),
			Category:  e.CategoryLabel,
			Choice:    e.ChoiceLabel,
			Details:   e.Details,
		})
	}
	return json.MarshalIndent(records, "", "  ")
}
