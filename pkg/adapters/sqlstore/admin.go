package sqlstore

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/aretw0/jurnalo/pkg/core"
)

const categoryColumns = `id, label, prompt, category_type, disabled, extra_info, show_in_streaks, reminder_timer_in_days`

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(row scanner) (core.Category, error) {
	var (
		c         core.Category
		extraInfo sql.NullString
		days      sql.NullInt64
	)
	if err := row.Scan(&c.ID, &c.Label, &c.Prompt, &c.Type, &c.Disabled, &extraInfo, &c.ShowInStreaks, &days); err != nil {
		return c, err
	}
	c.ExtraInfo = nullString(extraInfo)
	c.ReminderDays = nullDays(days)
	return c, nil
}

func (s *Store) listCategories(ctx context.Context, query string, args ...any) ([]core.Category, error) {
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan category")
		}
		categories = append(categories, c)
	}
	return categories, errors.Wrap(rows.Err(), "failed to list categories")
}

func (s *Store) exists(ctx context.Context, table, label string) (bool, error) {
	var n int
	if err := s.queryRow(ctx, `SELECT COUNT(*) FROM `+table+` WHERE label = ?`, label).Scan(&n); err != nil {
		return false, errors.Wrapf(err, "failed to look up %s", table)
	}
	return n > 0, nil
}

// CreateCategory inserts a category.
func (s *Store) CreateCategory(ctx context.Context, c core.Category) error {
	_, err := s.exec(ctx, `
		INSERT INTO categories (label, prompt, category_type, disabled, extra_info, show_in_streaks, reminder_timer_in_days)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Label, c.Prompt, categoryType(c.Type), boolToInt(c.Disabled), c.ExtraInfo, boolToInt(c.ShowInStreaks), c.ReminderDays)
	if err != nil {
		return translate(err, "category "+c.Label)
	}
	return nil
}

// ListCategories returns every category, disabled ones included, sorted by label.
func (s *Store) ListCategories(ctx context.Context) ([]core.Category, error) {
	return s.listCategories(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY label`)
}

// RenameCategory changes a category label; choices and quiz links follow.
func (s *Store) RenameCategory(ctx context.Context, label, newLabel string) error {
	res, err := s.exec(ctx, `UPDATE categories SET label = ? WHERE label = ?`, newLabel, label)
	return mustAffect(res, err, "category "+label)
}

// DisableCategory hides a category from quizzes.
func (s *Store) DisableCategory(ctx context.Context, label string) error {
	res, err := s.exec(ctx, `UPDATE categories SET disabled = 1 WHERE label = ?`, label)
	return mustAffect(res, err, "category "+label)
}

// CreateChoice inserts a choice into an existing category.
func (s *Store) CreateChoice(ctx context.Context, c core.Choice) error {
	ok, err := s.exists(ctx, "categories", c.CategoryLabel)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrap(core.ErrNotFound, "category "+c.CategoryLabel)
	}

	_, err = s.exec(ctx, `
		INSERT INTO choices (label, shortcut, category_label, disabled, show_in_streaks, reminder_timer_in_days)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.Label, c.Shortcut, c.CategoryLabel, boolToInt(c.Disabled), boolToInt(c.ShowInStreaks), c.ReminderDays)
	if err != nil {
		return translate(err, "shortcut "+c.Shortcut+" of category "+c.CategoryLabel)
	}
	return nil
}

// ListChoices returns the choices of a category sorted by shortcut.
func (s *Store) ListChoices(ctx context.Context, categoryLabel string) ([]core.Choice, error) {
	ok, err := s.exists(ctx, "categories", categoryLabel)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrap(core.ErrNotFound, "category "+categoryLabel)
	}

	rows, err := s.query(ctx, `
		SELECT id, label, shortcut, category_label, disabled, show_in_streaks, reminder_timer_in_days
		FROM choices WHERE category_label = ? ORDER BY shortcut`, categoryLabel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list choices")
	}
	defer rows.Close()

	var choices []core.Choice
	for rows.Next() {
		var (
			c    core.Choice
			days sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &c.Label, &c.Shortcut, &c.CategoryLabel, &c.Disabled, &c.ShowInStreaks, &days); err != nil {
			return nil, errors.Wrap(err, "failed to scan choice")
		}
		c.ReminderDays = nullDays(days)
		choices = append(choices, c)
	}
	return choices, errors.Wrap(rows.Err(), "failed to list choices")
}

// RenameChoice changes the label of a choice.
func (s *Store) RenameChoice(ctx context.Context, categoryLabel, label, newLabel string) error {
	res, err := s.exec(ctx, `UPDATE choices SET label = ? WHERE category_label = ? AND label = ?`, newLabel, categoryLabel, label)
	return mustAffect(res, err, "choice "+label+" of category "+categoryLabel)
}

// DisableChoice hides a choice from quizzes and streaks.
func (s *Store) DisableChoice(ctx context.Context, categoryLabel, label string) error {
	res, err := s.exec(ctx, `UPDATE choices SET disabled = 1 WHERE category_label = ? AND label = ?`, categoryLabel, label)
	return mustAffect(res, err, "choice "+label+" of category "+categoryLabel)
}

// ToggleChoiceStreaks flips the streak flag of a choice.
func (s *Store) ToggleChoiceStreaks(ctx context.Context, categoryLabel, label string) error {
	res, err := s.exec(ctx, `UPDATE choices SET show_in_streaks = 1 - show_in_streaks WHERE category_label = ? AND label = ?`, categoryLabel, label)
	return mustAffect(res, err, "choice "+label+" of category "+categoryLabel)
}

// SetChoiceReminder sets or, with nil, clears the reminder interval of a choice.
func (s *Store) SetChoiceReminder(ctx context.Context, categoryLabel, label string, days *int) error {
	res, err := s.exec(ctx, `UPDATE choices SET reminder_timer_in_days = ? WHERE category_label = ? AND label = ?`, days, categoryLabel, label)
	return mustAffect(res, err, "choice "+label+" of category "+categoryLabel)
}

// CreateQuiz inserts a quiz without categories.
func (s *Store) CreateQuiz(ctx context.Context, q core.Quiz) error {
	if _, err := s.exec(ctx, `INSERT INTO quizzes (label, command) VALUES (?, ?)`, q.Label, q.Command); err != nil {
		return translate(err, "quiz "+q.Label)
	}
	return nil
}

// ListQuizzes returns every quiz sorted by label.
func (s *Store) ListQuizzes(ctx context.Context) ([]core.Quiz, error) {
	rows, err := s.query(ctx, `SELECT id, label, command FROM quizzes ORDER BY label`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list quizzes")
	}
	defer rows.Close()

	var quizzes []core.Quiz
	for rows.Next() {
		var (
			q       core.Quiz
			command sql.NullString
		)
		if err := rows.Scan(&q.ID, &q.Label, &command); err != nil {
			return nil, errors.Wrap(err, "failed to scan quiz")
		}
		q.Command = nullString(command)
		quizzes = append(quizzes, q)
	}
	return quizzes, errors.Wrap(rows.Err(), "failed to list quizzes")
}

// RenameQuiz changes the label of a quiz; its links follow.
func (s *Store) RenameQuiz(ctx context.Context, label, newLabel string) error {
	res, err := s.exec(ctx, `UPDATE quizzes SET label = ? WHERE label = ?`, newLabel, label)
	return mustAffect(res, err, "quiz "+label)
}

// LinkCategory appends a category at the end of a quiz.
func (s *Store) LinkCategory(ctx context.Context, quizLabel, categoryLabel string) error {
	for _, ref := range [][2]string{{"quizzes", quizLabel}, {"categories", categoryLabel}} {
		ok, err := s.exists(ctx, ref[0], ref[1])
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrapf(core.ErrNotFound, "%s %s", ref[0], ref[1])
		}
	}

	_, err := s.exec(ctx, `
		INSERT INTO quizzes_to_categories (quiz_label, category_label, sort_order)
		SELECT ?, ?, COALESCE(MAX(sort_order), 0) + 1 FROM quizzes_to_categories WHERE quiz_label = ?`,
		quizLabel, categoryLabel, quizLabel)
	if err != nil {
		return translate(err, "category "+categoryLabel+" in quiz "+quizLabel)
	}
	return nil
}

// UnlinkCategory removes a category from a quiz.
func (s *Store) UnlinkCategory(ctx context.Context, quizLabel, categoryLabel string) error {
	res, err := s.exec(ctx, `DELETE FROM quizzes_to_categories WHERE quiz_label = ? AND category_label = ?`, quizLabel, categoryLabel)
	return mustAffect(res, err, "category "+categoryLabel+" in quiz "+quizLabel)
}

// ListQuizCategories returns the categories of a quiz in link order, disabled ones included.
func (s *Store) ListQuizCategories(ctx context.Context, quizLabel string) ([]core.Category, error) {
	ok, err := s.exists(ctx, "quizzes", quizLabel)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrap(core.ErrNotFound, "quiz "+quizLabel)
	}
	return s.listCategories(ctx, `
		SELECT c.id, c.label, c.prompt, c.category_type, c.disabled, c.extra_info, c.show_in_streaks, c.reminder_timer_in_days
		FROM quizzes_to_categories qc
		JOIN categories c ON c.label = qc.category_label
		WHERE qc.quiz_label = ?
		ORDER BY qc.sort_order`, quizLabel)
}

// Counts reports how many rows each table holds.
func (s *Store) Counts(ctx context.Context) (core.Counts, error) {
	var c core.Counts
	for _, q := range []struct {
		table string
		dest  *int
	}{
		{"categories", &c.Categories},
		{"choices", &c.Choices},
		{"quizzes", &c.Quizzes},
		{"entries", &c.Entries},
	} {
		if err := s.queryRow(ctx, `SELECT COUNT(*) FROM `+q.table).Scan(q.dest); err != nil {
			return c, errors.Wrapf(err, "failed to count %s", q.table)
		}
	}
	return c, nil
}

func categoryType(t int) int {
	if t == 0 {
		return 1
	}
	return t
}
