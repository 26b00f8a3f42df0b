// Package core holds the journal domain: categories, choices, quizzes and
// the entries recorded against them.
package core

import "time"

// Category is a prompt shown to the user during a quiz.
// Label is the stable, unique key; Prompt is the text displayed.
type Category struct {
	ID            int64
	Label         string
	Prompt        string
	Type          int
	Disabled      bool
	ExtraInfo     *string
	ShowInStreaks bool
	ReminderDays  *int
}

// Choice is one selectable answer of a Category.
// Shortcut is unique within the owning category.
type Choice struct {
	ID            int64
	Label         string
	Shortcut      string
	CategoryLabel string
	Disabled      bool
	ShowInStreaks bool
	ReminderDays  *int
}

// Quiz is a named, ordered list of categories.
type Quiz struct {
	ID      int64
	Label   string
	Command *string
}

// QuizCategory links a category to a quiz at a given position.
type QuizCategory struct {
	QuizLabel     string
	CategoryLabel string
	Order         int
}

// Entry is one recorded answer.
type Entry struct {
	ID         int64
	Timestamp  time.Time
	CategoryID *int64
	ChoiceID   *int64
	Details    *string
}

// NewEntry is an entry waiting to be submitted. Any field may be nil.
type NewEntry struct {
	CategoryID *int64
	ChoiceID   *int64
	Details    *string
}

// Prompt is a category together with its selectable choices, as fetched for a quiz.
// Choices is nil when the category has none.
type Prompt struct {
	Category Category
	Choices  []Choice
}

// StreakSample pairs a choice label with the time of one of its entries.
// Timestamp is nil for a choice that was never recorded.
type StreakSample struct {
	Label     string
	Timestamp *time.Time
}

// LabeledEntry is an entry resolved with the labels of its category and choice.
type LabeledEntry struct {
	Entry
	CategoryLabel *string
	ChoiceLabel   *string
}

// Counts summarizes the size of a journal.
type Counts struct {
	Categories int `json:"categories"`
	Choices    int `json:"choices"`
	Quizzes    int `json:"quizzes"`
	Entries    int `json:"entries"`
}
