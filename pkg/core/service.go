package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// Service handles the business logic for journal administration.
type Service struct {
	repo Repository
}

// NewService creates a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Repository returns the underlying repository.
func (s *Service) Repository() Repository {
	return s.repo
}

func required(fields ...string) error {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("%w: label, prompt and shortcut values cannot be empty", ErrInvalidInput)
		}
	}
	return nil
}

// CreateCategory adds a category with the given label and prompt.
func (s *Service) CreateCategory(ctx context.Context, label, prompt string) error {
	if err := required(label, prompt); err != nil {
		return err
	}
	return s.repo.CreateCategory(ctx, Category{Label: label, Prompt: prompt, Type: 1})
}

// ListCategories returns all categories, optionally filtered by a glob on the label.
func (s *Service) ListCategories(ctx context.Context, pattern string) ([]Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if pattern == "" {
		return categories, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: bad pattern %q", ErrInvalidInput, pattern)
	}

	filtered := make([]Category, 0, len(categories))
	for _, c := range categories {
		if ok, _ := doublestar.Match(pattern, c.Label); ok {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// RenameCategory changes the label of a category.
func (s *Service) RenameCategory(ctx context.Context, label, newLabel string) error {
	if err := required(label, newLabel); err != nil {
		return err
	}
	return s.repo.RenameCategory(ctx, label, newLabel)
}

// DisableCategory hides a category from quizzes.
func (s *Service) DisableCategory(ctx context.Context, label string) error {
	if err := required(label); err != nil {
		return err
	}
	return s.repo.DisableCategory(ctx, label)
}

// AddChoice adds a choice to an existing category.
func (s *Service) AddChoice(ctx context.Context, categoryLabel, label, shortcut string) error {
	if err := required(categoryLabel, label, shortcut); err != nil {
		return err
	}
	if strings.ContainsAny(shortcut, ": ") {
		return fmt.Errorf("%w: shortcut %q cannot contain spaces or colons", ErrInvalidInput, shortcut)
	}
	return s.repo.CreateChoice(ctx, Choice{
		Label:         label,
		Shortcut:      shortcut,
		CategoryLabel: categoryLabel,
	})
}

// ListChoices returns the choices of a category.
func (s *Service) ListChoices(ctx context.Context, categoryLabel string) ([]Choice, error) {
	if err := required(categoryLabel); err != nil {
		return nil, err
	}
	return s.repo.ListChoices(ctx, categoryLabel)
}

// RenameChoice changes the label of a choice.
func (s *Service) RenameChoice(ctx context.Context, categoryLabel, label, newLabel string) error {
	if err := required(categoryLabel, label, newLabel); err != nil {
		return err
	}
	return s.repo.RenameChoice(ctx, categoryLabel, label, newLabel)
}

// DisableChoice hides a choice from quizzes.
func (s *Service) DisableChoice(ctx context.Context, categoryLabel, label string) error {
	if err := required(categoryLabel, label); err != nil {
		return err
	}
	return s.repo.DisableChoice(ctx, categoryLabel, label)
}

// ToggleChoiceStreaks flips whether a choice is shown in the streak table.
func (s *Service) ToggleChoiceStreaks(ctx context.Context, categoryLabel, label string) error {
	if err := required(categoryLabel, label); err != nil {
		return err
	}
	return s.repo.ToggleChoiceStreaks(ctx, categoryLabel, label)
}

// ChangeChoiceTimer sets the reminder interval of a choice.
// A timer of -1 removes the reminder; otherwise it must be at least one day.
func (s *Service) ChangeChoiceTimer(ctx context.Context, categoryLabel, label string, timer int) error {
	if err := required(categoryLabel, label); err != nil {
		return err
	}

	var days *int
	switch {
	case timer == -1:
	case timer >= 1:
		days = &timer
	default:
		return fmt.Errorf("%w: timer must be -1 or at least 1, got %d", ErrInvalidInput, timer)
	}
	return s.repo.SetChoiceReminder(ctx, categoryLabel, label, days)
}

// CreateQuiz adds an empty quiz.
func (s *Service) CreateQuiz(ctx context.Context, label string) error {
	if err := required(label); err != nil {
		return err
	}
	return s.repo.CreateQuiz(ctx, Quiz{Label: label})
}

// ListQuizzes returns all quizzes.
func (s *Service) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	return s.repo.ListQuizzes(ctx)
}

// RenameQuiz changes the label of a quiz.
func (s *Service) RenameQuiz(ctx context.Context, label, newLabel string) error {
	if err := required(label, newLabel); err != nil {
		return err
	}
	return s.repo.RenameQuiz(ctx, label, newLabel)
}

// LinkCategory appends a category to the end of a quiz.
func (s *Service) LinkCategory(ctx context.Context, quizLabel, categoryLabel string) error {
	if err := required(quizLabel, categoryLabel); err != nil {
		return err
	}
	return s.repo.LinkCategory(ctx, quizLabel, categoryLabel)
}

// UnlinkCategory removes a category from a quiz.
func (s *Service) UnlinkCategory(ctx context.Context, quizLabel, categoryLabel string) error {
	if err := required(quizLabel, categoryLabel); err != nil {
		return err
	}
	return s.repo.UnlinkCategory(ctx, quizLabel, categoryLabel)
}

// ListQuizCategories returns the categories of a quiz in quiz order.
func (s *Service) ListQuizCategories(ctx context.Context, quizLabel string) ([]Category, error) {
	if err := required(quizLabel); err != nil {
		return nil, err
	}
	return s.repo.ListQuizCategories(ctx, quizLabel)
}

// AddNote records a free-text entry that belongs to no category.
func (s *Service) AddNote(ctx context.Context, note string) error {
	note = strings.TrimSpace(note)
	if note == "" {
		return fmt.Errorf("%w: a note needs a message", ErrInvalidInput)
	}
	return s.repo.CreateEntries(ctx, []NewEntry{{Details: &note}})
}

// PushLatestToYesterday moves the most recent entry back by one day.
func (s *Service) PushLatestToYesterday(ctx context.Context) error {
	return s.repo.ShiftLatestEntry(ctx, 24*time.Hour)
}

// Entries returns the entries recorded in the last days days, ending at now.
func (s *Service) Entries(ctx context.Context, now time.Time, days int) ([]LabeledEntry, error) {
	if days < 1 {
		return nil, fmt.Errorf("%w: days must be at least 1, got %d", ErrInvalidInput, days)
	}
	return s.repo.ListEntriesBetween(ctx, now.AddDate(0, 0, -days), now)
}

// Seed loads data into an empty repository. It reports whether anything was written;
// a repository that already holds categories is left untouched.
func (s *Service) Seed(ctx context.Context, data SeedData) (bool, error) {
	seeder, ok := s.repo.(Seeder)
	if !ok {
		return false, ErrNoSeeding
	}

	empty, err := seeder.IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	if !empty {
		return false, nil
	}

	if err := seeder.Seed(ctx, data); err != nil {
		return false, err
	}
	return true, nil
}
