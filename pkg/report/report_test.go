package report_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jurnalo/pkg/core"
	"github.com/aretw0/jurnalo/pkg/report"
)

func str(s string) *string { return &s }

func entry(ts time.Time, category, choice, details *string) core.LabeledEntry {
	return core.LabeledEntry{
		Entry:         core.Entry{Timestamp: ts, Details: details},
		CategoryLabel: category,
		ChoiceLabel:   choice,
	}
}

func fixture() []core.LabeledEntry {
	first := time.Date(2024, 6, 1, 21, 4, 13, 0, time.UTC)
	second := time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC)
	return []core.LabeledEntry{
		entry(first, str("mood"), str("happy"), str("long day")),
		entry(first, str("mood"), str("tired"), str("long day")),
		entry(first, str("diary"), nil, str("walked the dog")),
		entry(second, nil, nil, str("quick note")),
		entry(second.Add(time.Minute), str("meds/morning"), str("vitamin"), nil),
	}
}

func TestMarkdown(t *testing.T) {
	want := "## 2024-06-01\n" +
		"### 21:04:13\n" +
		"mood -> happy : long day  \n" +
		"mood -> tired : long day  \n" +
		"diary : walked the dog  \n" +
		"\n" +
		"## 2024-06-02\n" +
		"### 08:00:00\n" +
		"quick note  \n" +
		"### 08:01:00\n" +
		"meds/morning -> vitamin"

	assert.Equal(t, want, report.Markdown(fixture(), time.UTC))
}

func TestMarkdown_Location(t *testing.T) {
	ts := time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)
	loc := time.FixedZone("UTC+2", 2*60*60)

	out := report.Markdown([]core.LabeledEntry{entry(ts, nil, nil, str("late"))}, loc)
	assert.Equal(t, "## 2024-06-02\n### 01:30:00\nlate", out)
}

func TestMarkdown_Empty(t *testing.T) {
	assert.Empty(t, report.Markdown(nil, time.UTC))
}

func TestFilter(t *testing.T) {
	entries := fixture()

	all, err := report.Filter(entries, "")
	require.NoError(t, err)
	assert.Len(t, all, len(entries))

	meds, err := report.Filter(entries, "meds/*")
	require.NoError(t, err)
	require.Len(t, meds, 1)
	assert.Equal(t, "vitamin", *meds[0].ChoiceLabel)

	moodOrDiary, err := report.Filter(entries, "{mood,diary}")
	require.NoError(t, err)
	assert.Len(t, moodOrDiary, 3)

	_, err = report.Filter(entries, "[mood")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestJSON(t *testing.T) {
	data, err := report.JSON(fixture()[2:4], time.UTC)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)

	assert.Equal(t, "diary", records[0]["category"])
	assert.NotContains(t, records[0], "choice")
	assert.Equal(t, "walked the dog", records[0]["details"])
	assert.NotContains(t, records[1], "category")
	assert.Equal(t, "2024-06-02T08:00:00Z", records[1]["timestamp"])
}
