package core

import (
	"context"
	"time"
)

// QuizSource fetches the prompts of a quiz.
type QuizSource interface {
	// ListQuizPrompts returns the enabled categories of the quiz with their enabled
	// choices, ordered by the quiz link order and then by shortcut.
	// An empty result means the quiz does not exist.
	ListQuizPrompts(ctx context.Context, quizLabel string) ([]Prompt, error)
}

// EntryWriter persists entries.
type EntryWriter interface {
	// CreateEntries writes all entries or none of them.
	CreateEntries(ctx context.Context, entries []NewEntry) error
}

// StreakSource provides the data behind the streak table.
type StreakSource interface {
	// ListStreakSamples returns one sample per entry of every choice flagged for
	// streaks, plus a sample with a nil timestamp for flagged choices never used.
	ListStreakSamples(ctx context.Context) ([]StreakSample, error)
}

// ChoiceHistory answers when a choice was last recorded.
type ChoiceHistory interface {
	// LatestChoiceEntry returns nil when the choice has no entries.
	LatestChoiceEntry(ctx context.Context, choiceID int64) (*time.Time, error)
}

// EntryReader lists recorded entries.
type EntryReader interface {
	// ListEntriesBetween returns entries with start <= timestamp <= end, oldest first.
	ListEntriesBetween(ctx context.Context, start, end time.Time) ([]LabeledEntry, error)
}

// Repository defines the contract for storing and retrieving journal data.
// Adhering to this interface keeps the core independent of the database in use.
type Repository interface {
	QuizSource
	EntryWriter
	StreakSource
	ChoiceHistory
	EntryReader

	CreateCategory(ctx context.Context, c Category) error
	ListCategories(ctx context.Context) ([]Category, error)
	RenameCategory(ctx context.Context, label, newLabel string) error
	DisableCategory(ctx context.Context, label string) error

	CreateChoice(ctx context.Context, c Choice) error
	ListChoices(ctx context.Context, categoryLabel string) ([]Choice, error)
	RenameChoice(ctx context.Context, categoryLabel, label, newLabel string) error
	DisableChoice(ctx context.Context, categoryLabel, label string) error
	ToggleChoiceStreaks(ctx context.Context, categoryLabel, label string) error
	SetChoiceReminder(ctx context.Context, categoryLabel, label string, days *int) error

	CreateQuiz(ctx context.Context, q Quiz) error
	ListQuizzes(ctx context.Context) ([]Quiz, error)
	RenameQuiz(ctx context.Context, label, newLabel string) error
	LinkCategory(ctx context.Context, quizLabel, categoryLabel string) error
	UnlinkCategory(ctx context.Context, quizLabel, categoryLabel string) error
	ListQuizCategories(ctx context.Context, quizLabel string) ([]Category, error)

	// ShiftLatestEntry moves the most recent entry timestamp back by d.
	ShiftLatestEntry(ctx context.Context, d time.Duration) error

	Counts(ctx context.Context) (Counts, error)

	// Initialize ensures the underlying storage is ready (e.g. schema migration).
	Initialize(ctx context.Context) error
	Close() error
}

// SeedData is the set of rows inserted into an empty journal.
type SeedData struct {
	Categories []Category
	Choices    []Choice
	Quizzes    []Quiz
	Links      []QuizCategory
}

// Seeder is implemented by repositories able to bulk-load initial data atomically.
type Seeder interface {
	// IsEmpty reports whether no category exists yet.
	IsEmpty(ctx context.Context) (bool, error)
	// Seed inserts all rows in a single transaction.
	Seed(ctx context.Context, data SeedData) error
}
