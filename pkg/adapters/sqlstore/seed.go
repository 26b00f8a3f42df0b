package sqlstore

import (
	"context"

	"github.com/pkg/errors"

	"github.com/aretw0/jurnalo/pkg/core"
)

// IsEmpty implements core.Seeder.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := s.queryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return false, errors.Wrap(err, "failed to count categories")
	}
	return n == 0, nil
}

// Seed implements core.Seeder. Either every row is inserted or none is.
func (s *Store) Seed(ctx context.Context, data core.SeedData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	exec := func(what, query string, args ...any) error {
		if _, err := tx.ExecContext(ctx, s.dialect.rebind(query), args...); err != nil {
			return translate(err, what)
		}
		return nil
	}

	for _, c := range data.Categories {
		if err := exec("category "+c.Label, `
			INSERT INTO categories (label, prompt, category_type, disabled, extra_info, show_in_streaks, reminder_timer_in_days)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.Label, c.Prompt, categoryType(c.Type), boolToInt(c.Disabled), c.ExtraInfo, boolToInt(c.ShowInStreaks), c.ReminderDays); err != nil {
			return err
		}
	}
	for _, c := range data.Choices {
		if err := exec("shortcut "+c.Shortcut+" of category "+c.CategoryLabel, `
			INSERT INTO choices (label, shortcut, category_label, disabled, show_in_streaks, reminder_timer_in_days)
			VALUES (?, ?, ?, ?, ?, ?)`,
			c.Label, c.Shortcut, c.CategoryLabel, boolToInt(c.Disabled), boolToInt(c.ShowInStreaks), c.ReminderDays); err != nil {
			return err
		}
	}
	for _, q := range data.Quizzes {
		if err := exec("quiz "+q.Label, `INSERT INTO quizzes (label, command) VALUES (?, ?)`, q.Label, q.Command); err != nil {
			return err
		}
	}
	for _, l := range data.Links {
		if err := exec("category "+l.CategoryLabel+" in quiz "+l.QuizLabel, `
			INSERT INTO quizzes_to_categories (quiz_label, category_label, sort_order) VALUES (?, ?, ?)`,
			l.QuizLabel, l.CategoryLabel, l.Order); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit seed")
	}
	s.logger.Debug("journal seeded",
		"categories", len(data.Categories),
		"choices", len(data.Choices),
		"quizzes", len(data.Quizzes))
	return nil
}
