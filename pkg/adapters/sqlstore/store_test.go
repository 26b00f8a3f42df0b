package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jurnalo/pkg/adapters/sqlstore"
	"github.com/aretw0/jurnalo/pkg/core"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newStore(t *testing.T) (*sqlstore.Store, *clock) {
	t.Helper()
	ctx := context.Background()
	c := &clock{now: time.Date(2024, 6, 1, 21, 0, 0, 0, time.UTC)}

	path := filepath.Join(t.TempDir(), "nested", "jurnalo.db")
	s, err := sqlstore.Open(ctx, sqlstore.DriverSQLite, path, sqlstore.WithClock(c.Now))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Initialize(ctx))
	return s, c
}

func ptr[T any](v T) *T { return &v }

func seedData() core.SeedData {
	return core.SeedData{
		Categories: []core.Category{
			{Label: "mood", Prompt: "How do you feel?", ShowInStreaks: true},
			{Label: "sleep", Prompt: "Anything about sleep?"},
			{Label: "off", Prompt: "Never asked"},
		},
		Choices: []core.Choice{
			{Label: "tired", Shortcut: "z", CategoryLabel: "mood", ShowInStreaks: true},
			{Label: "happy", Shortcut: "a", CategoryLabel: "mood", ShowInStreaks: true, ReminderDays: ptr(2)},
			{Label: "meh", Shortcut: "m", CategoryLabel: "mood", ShowInStreaks: true},
			{Label: "nap", Shortcut: "n", CategoryLabel: "off"},
		},
		Quizzes: []core.Quiz{{Label: "daily", Command: ptr("daily")}},
		Links: []core.QuizCategory{
			{QuizLabel: "daily", CategoryLabel: "mood", Order: 2},
			{QuizLabel: "daily", CategoryLabel: "sleep", Order: 1},
			{QuizLabel: "daily", CategoryLabel: "off", Order: 3},
		},
	}
}

func seeded(t *testing.T) (*sqlstore.Store, *clock) {
	t.Helper()
	s, c := newStore(t)
	require.NoError(t, s.Seed(context.Background(), seedData()))
	return s, c
}

func choiceID(t *testing.T, s *sqlstore.Store, category, label string) int64 {
	t.Helper()
	choices, err := s.ListChoices(context.Background(), category)
	require.NoError(t, err)
	for _, c := range choices {
		if c.Label == label {
			return c.ID
		}
	}
	t.Fatalf("choice %s/%s not found", category, label)
	return 0
}

func TestStore_InitializeIsIdempotent(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Initialize(context.Background()))
	assert.NotEmpty(t, s.Path())
	assert.Equal(t, sqlstore.DriverSQLite, s.Driver())
}

func TestStore_OpenUnknownDriver(t *testing.T) {
	_, err := sqlstore.Open(context.Background(), "mysql", "whatever")
	assert.ErrorContains(t, err, "unknown db driver")
}

func TestStore_ListQuizPrompts(t *testing.T) {
	s, _ := seeded(t)
	ctx := context.Background()
	require.NoError(t, s.DisableCategory(ctx, "off"))
	require.NoError(t, s.DisableChoice(ctx, "mood", "meh"))

	prompts, err := s.ListQuizPrompts(ctx, "daily")
	require.NoError(t, err)
	require.Len(t, prompts, 2)

	assert.Equal(t, "sleep", prompts[0].Category.Label)
	assert.Nil(t, prompts[0].Choices)

	assert.Equal(t, "mood", prompts[1].Category.Label)
	assert.True(t, prompts[1].Category.ShowInStreaks)
	require.Len(t, prompts[1].Choices, 2)
	assert.Equal(t, "a", prompts[1].Choices[0].Shortcut)
	assert.Equal(t, 2, *prompts[1].Choices[0].ReminderDays)
	assert.Equal(t, "mood", prompts[1].Choices[0].CategoryLabel)
	assert.Equal(t, "z", prompts[1].Choices[1].Shortcut)
	assert.Nil(t, prompts[1].Choices[1].ReminderDays)

	missing, err := s.ListQuizPrompts(ctx, "weekly")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestStore_CreateEntries(t *testing.T) {
	s, c := seeded(t)
	ctx := context.Background()
	happy := choiceID(t, s, "mood", "happy")
	prompts, err := s.ListQuizPrompts(ctx, "daily")
	require.NoError(t, err)
	mood := prompts[1].Category.ID

	require.NoError(t, s.CreateEntries(ctx, nil))

	require.NoError(t, s.CreateEntries(ctx, []core.NewEntry{
		{CategoryID: &mood, ChoiceID: &happy, Details: ptr("sunny")},
		{CategoryID: &mood, Details: ptr("just text")},
	}))

	entries, err := s.ListEntriesBetween(ctx, c.now.Add(-time.Hour), c.now)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Timestamp.Equal(c.now))
	assert.Equal(t, "mood", *entries[0].CategoryLabel)
	assert.Equal(t, "happy", *entries[0].ChoiceLabel)
	assert.Equal(t, "sunny", *entries[0].Details)
	assert.Nil(t, entries[1].ChoiceLabel)
}

func TestStore_CreateEntriesIsAtomic(t *testing.T) {
	s, _ := seeded(t)
	ctx := context.Background()
	happy := choiceID(t, s, "mood", "happy")

	err := s.CreateEntries(ctx, []core.NewEntry{
		{ChoiceID: &happy},
		{ChoiceID: ptr(int64(9999))},
	})
	require.Error(t, err)

	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Entries)
}

func TestStore_ListStreakSamples(t *testing.T) {
	s, c := seeded(t)
	ctx := context.Background()
	happy := choiceID(t, s, "mood", "happy")
	require.NoError(t, s.DisableChoice(ctx, "mood", "meh"))

	first := c.now
	require.NoError(t, s.CreateEntries(ctx, []core.NewEntry{{ChoiceID: &happy}}))
	c.now = c.now.Add(-48 * time.Hour)
	require.NoError(t, s.CreateEntries(ctx, []core.NewEntry{{ChoiceID: &happy}}))

	samples, err := s.ListStreakSamples(ctx)
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, "happy", samples[0].Label)
	assert.True(t, samples[0].Timestamp.Equal(c.now))
	assert.Equal(t, "happy", samples[1].Label)
	assert.True(t, samples[1].Timestamp.Equal(first))
	assert.Equal(t, "tired", samples[2].Label)
	assert.Nil(t, samples[2].Timestamp)
}

func TestStore_LatestChoiceEntry(t *testing.T) {
	s, c := seeded(t)
	ctx := context.Background()
	happy := choiceID(t, s, "mood", "happy")

	latest, err := s.LatestChoiceEntry(ctx, happy)
	require.NoError(t, err)
	assert.Nil(t, latest)

	want := c.now
	require.NoError(t, s.CreateEntries(ctx, []core.NewEntry{{ChoiceID: &happy}}))
	c.now = c.now.Add(-72 * time.Hour)
	require.NoError(t, s.CreateEntries(ctx, []core.NewEntry{{ChoiceID: &happy}}))

	latest, err = s.LatestChoiceEntry(ctx, happy)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.True(t, latest.Equal(want))
}

func TestStore_ListEntriesBetween(t *testing.T) {
	s, c := seeded(t)
	ctx := context.Background()
	start := c.now

	require.NoError(t, s.CreateEntries(ctx, []core.NewEntry{{Details: ptr("quick note")}}))
	c.now = c.now.Add(-10 * 24 * time.Hour)
	require.NoError(t, s.CreateEntries(ctx, []core.NewEntry{{Details: ptr("old note")}}))

	entries, err := s.ListEntriesBetween(ctx, start.AddDate(0, 0, -7), start)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].CategoryLabel)
	assert.Equal(t, "quick note", *entries[0].Details)
}

func TestStore_ShiftLatestEntry(t *testing.T) {
	s, c := seeded(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.ShiftLatestEntry(ctx, 24*time.Hour), core.ErrNoEntries)

	c.now = c.now.Add(-time.Hour)
	require.NoError(t, s.CreateEntries(ctx, []core.NewEntry{{Details: ptr("earlier")}}))
	c.now = c.now.Add(time.Hour)
	require.NoError(t, s.CreateEntries(ctx, []core.NewEntry{{Details: ptr("latest")}}))

	require.NoError(t, s.ShiftLatestEntry(ctx, 24*time.Hour))

	entries, err := s.ListEntriesBetween(ctx, c.now.AddDate(0, 0, -2), c.now)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "latest", *entries[0].Details)
	assert.True(t, entries[0].Timestamp.Equal(c.now.Add(-24*time.Hour)))
	assert.Equal(t, "earlier", *entries[1].Details)
}

func TestStore_Categories(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateCategory(ctx, core.Category{Label: "mood", Prompt: "How?"}))
	assert.ErrorIs(t, s.CreateCategory(ctx, core.Category{Label: "mood", Prompt: "again"}), core.ErrAlreadyExists)

	require.NoError(t, s.CreateChoice(ctx, core.Choice{Label: "good", Shortcut: "g", CategoryLabel: "mood"}))
	assert.ErrorIs(t, s.CreateChoice(ctx, core.Choice{Label: "great", Shortcut: "g", CategoryLabel: "mood"}), core.ErrAlreadyExists)
	assert.ErrorIs(t, s.CreateChoice(ctx, core.Choice{Label: "x", Shortcut: "x", CategoryLabel: "nope"}), core.ErrNotFound)

	require.NoError(t, s.RenameCategory(ctx, "mood", "feelings"))
	assert.ErrorIs(t, s.RenameCategory(ctx, "mood", "other"), core.ErrNotFound)

	choices, err := s.ListChoices(ctx, "feelings")
	require.NoError(t, err)
	require.Len(t, choices, 1)
	assert.Equal(t, "feelings", choices[0].CategoryLabel)

	_, err = s.ListChoices(ctx, "mood")
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, s.DisableCategory(ctx, "feelings"))
	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.True(t, categories[0].Disabled)
	assert.Equal(t, 1, categories[0].Type)
}

func TestStore_Choices(t *testing.T) {
	s, _ := seeded(t)
	ctx := context.Background()

	require.NoError(t, s.RenameChoice(ctx, "mood", "tired", "sleepy"))
	assert.ErrorIs(t, s.RenameChoice(ctx, "mood", "tired", "x"), core.ErrNotFound)

	require.NoError(t, s.ToggleChoiceStreaks(ctx, "mood", "sleepy"))
	require.NoError(t, s.SetChoiceReminder(ctx, "mood", "sleepy", ptr(5)))
	require.NoError(t, s.SetChoiceReminder(ctx, "mood", "happy", nil))
	assert.ErrorIs(t, s.SetChoiceReminder(ctx, "mood", "ghost", nil), core.ErrNotFound)

	choices, err := s.ListChoices(ctx, "mood")
	require.NoError(t, err)
	require.Len(t, choices, 3)

	byLabel := map[string]core.Choice{}
	for _, c := range choices {
		byLabel[c.Label] = c
	}
	assert.False(t, byLabel["sleepy"].ShowInStreaks)
	assert.Equal(t, 5, *byLabel["sleepy"].ReminderDays)
	assert.Nil(t, byLabel["happy"].ReminderDays)
}

func TestStore_Quizzes(t *testing.T) {
	s, _ := seeded(t)
	ctx := context.Background()

	require.NoError(t, s.CreateQuiz(ctx, core.Quiz{Label: "evening"}))
	assert.ErrorIs(t, s.CreateQuiz(ctx, core.Quiz{Label: "evening"}), core.ErrAlreadyExists)

	require.NoError(t, s.LinkCategory(ctx, "evening", "sleep"))
	require.NoError(t, s.LinkCategory(ctx, "evening", "mood"))
	assert.ErrorIs(t, s.LinkCategory(ctx, "evening", "mood"), core.ErrAlreadyExists)
	assert.ErrorIs(t, s.LinkCategory(ctx, "evening", "ghost"), core.ErrNotFound)
	assert.ErrorIs(t, s.LinkCategory(ctx, "ghost", "mood"), core.ErrNotFound)

	require.NoError(t, s.RenameQuiz(ctx, "evening", "night"))

	categories, err := s.ListQuizCategories(ctx, "night")
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "sleep", categories[0].Label)
	assert.Equal(t, "mood", categories[1].Label)

	require.NoError(t, s.UnlinkCategory(ctx, "night", "sleep"))
	assert.ErrorIs(t, s.UnlinkCategory(ctx, "night", "sleep"), core.ErrNotFound)
	require.NoError(t, s.LinkCategory(ctx, "night", "sleep"))

	categories, err = s.ListQuizCategories(ctx, "night")
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "mood", categories[0].Label)
	assert.Equal(t, "sleep", categories[1].Label)

	_, err = s.ListQuizCategories(ctx, "evening")
	assert.ErrorIs(t, err, core.ErrNotFound)

	quizzes, err := s.ListQuizzes(ctx)
	require.NoError(t, err)
	require.Len(t, quizzes, 2)
	assert.Equal(t, "daily", quizzes[0].Label)
	assert.Equal(t, "daily", *quizzes[0].Command)
	assert.Equal(t, "night", quizzes[1].Label)
	assert.Nil(t, quizzes[1].Command)
}

func TestStore_Seed(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	empty, err := s.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	broken := seedData()
	broken.Links = append(broken.Links, core.QuizCategory{QuizLabel: "daily", CategoryLabel: "ghost", Order: 4})
	require.Error(t, s.Seed(ctx, broken))

	empty, err = s.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty, "a failed seed leaves nothing behind")

	require.NoError(t, s.Seed(ctx, seedData()))
	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.Counts{Categories: 3, Choices: 4, Quizzes: 1, Entries: 0}, counts)
}

func TestStore_State(t *testing.T) {
	s, _ := newStore(t)

	state, ok := s.State().(sqlstore.StoreState)
	require.True(t, ok)
	assert.Equal(t, "sqlite", state.Driver)
	assert.Equal(t, s.Path(), state.Path)
	assert.Equal(t, "sql:sqlite", s.ComponentType())
}
