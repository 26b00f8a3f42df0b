package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/aretw0/jurnalo/pkg/core"
)

// ListQuizPrompts implements core.QuizSource.
// Categories come in link order; choices are sorted by shortcut.
func (s *Store) ListQuizPrompts(ctx context.Context, quizLabel string) ([]core.Prompt, error) {
	rows, err := s.query(ctx, `
		SELECT
			c.id, c.label, c.prompt, c.category_type, c.disabled, c.extra_info,
			c.show_in_streaks, c.reminder_timer_in_days,
			ch.id, ch.label, ch.shortcut, ch.show_in_streaks, ch.reminder_timer_in_days
		FROM quizzes_to_categories qc
		JOIN categories c ON c.label = qc.category_label
		LEFT JOIN choices ch ON ch.category_label = c.label AND ch.disabled = 0
		WHERE qc.quiz_label = ? AND c.disabled = 0
		ORDER BY qc.sort_order, ch.shortcut`, quizLabel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list quiz prompts")
	}
	defer rows.Close()

	var prompts []core.Prompt
	for rows.Next() {
		var (
			c         core.Category
			extraInfo sql.NullString
			catDays   sql.NullInt64
			choiceID  sql.NullInt64
			label     sql.NullString
			shortcut  sql.NullString
			streaks   sql.NullBool
			days      sql.NullInt64
		)
		if err := rows.Scan(
			&c.ID, &c.Label, &c.Prompt, &c.Type, &c.Disabled, &extraInfo,
			&c.ShowInStreaks, &catDays,
			&choiceID, &label, &shortcut, &streaks, &days,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan quiz prompt")
		}

		if n := len(prompts); n == 0 || prompts[n-1].Category.ID != c.ID {
			c.ExtraInfo = nullString(extraInfo)
			c.ReminderDays = nullDays(catDays)
			prompts = append(prompts, core.Prompt{Category: c})
		}
		if !choiceID.Valid {
			continue
		}
		p := &prompts[len(prompts)-1]
		p.Choices = append(p.Choices, core.Choice{
			ID:            choiceID.Int64,
			Label:         label.String,
			Shortcut:      shortcut.String,
			CategoryLabel: c.Label,
			ShowInStreaks: streaks.Bool,
			ReminderDays:  nullDays(days),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list quiz prompts")
	}
	return prompts, nil
}

// CreateEntries implements core.EntryWriter. All entries share one timestamp
// and are written in a single transaction.
func (s *Store) CreateEntries(ctx context.Context, entries []core.NewEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.dialect.rebind(
		`INSERT INTO entries (recorded_at, category_id, choice_id, details) VALUES (?, ?, ?, ?)`))
	if err != nil {
		return errors.Wrap(err, "failed to prepare entry insert")
	}
	defer stmt.Close()

	ts := s.now().Unix()
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, ts, e.CategoryID, e.ChoiceID, e.Details); err != nil {
			return translate(err, "failed to create entry")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit entries")
	}
	return nil
}

// ListStreakSamples implements core.StreakSource.
func (s *Store) ListStreakSamples(ctx context.Context) ([]core.StreakSample, error) {
	rows, err := s.query(ctx, `
		SELECT ch.label, e.recorded_at
		FROM choices ch
		LEFT JOIN entries e ON e.choice_id = ch.id
		WHERE ch.show_in_streaks = 1 AND ch.disabled = 0
		ORDER BY ch.label, e.recorded_at`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list streak samples")
	}
	defer rows.Close()

	var samples []core.StreakSample
	for rows.Next() {
		var (
			label string
			ts    sql.NullInt64
		)
		if err := rows.Scan(&label, &ts); err != nil {
			return nil, errors.Wrap(err, "failed to scan streak sample")
		}
		samples = append(samples, core.StreakSample{Label: label, Timestamp: unix(ts)})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list streak samples")
	}
	return samples, nil
}

// LatestChoiceEntry implements core.ChoiceHistory.
func (s *Store) LatestChoiceEntry(ctx context.Context, choiceID int64) (*time.Time, error) {
	var ts sql.NullInt64
	if err := s.queryRow(ctx, `SELECT MAX(recorded_at) FROM entries WHERE choice_id = ?`, choiceID).Scan(&ts); err != nil {
		return nil, errors.Wrapf(err, "failed to read latest entry of choice %d", choiceID)
	}
	return unix(ts), nil
}

// ListEntriesBetween implements core.EntryReader. Quick notes are included.
func (s *Store) ListEntriesBetween(ctx context.Context, start, end time.Time) ([]core.LabeledEntry, error) {
	rows, err := s.query(ctx, `
		SELECT e.id, e.recorded_at, e.category_id, e.choice_id, e.details, c.label, ch.label
		FROM entries e
		LEFT JOIN categories c ON c.id = e.category_id
		LEFT JOIN choices ch ON ch.id = e.choice_id
		WHERE e.recorded_at >= ? AND e.recorded_at <= ?
		ORDER BY e.recorded_at, e.id`, start.Unix(), end.Unix())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list entries")
	}
	defer rows.Close()

	var entries []core.LabeledEntry
	for rows.Next() {
		var (
			e                     core.LabeledEntry
			ts                    int64
			categoryID, choiceID  sql.NullInt64
			details               sql.NullString
			category, choiceLabel sql.NullString
		)
		if err := rows.Scan(&e.ID, &ts, &categoryID, &choiceID, &details, &category, &choiceLabel); err != nil {
			return nil, errors.Wrap(err, "failed to scan entry")
		}
		e.Timestamp = time.Unix(ts, 0)
		e.CategoryID = nullInt(categoryID)
		e.ChoiceID = nullInt(choiceID)
		e.Details = nullString(details)
		e.CategoryLabel = nullString(category)
		e.ChoiceLabel = nullString(choiceLabel)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list entries")
	}
	return entries, nil
}

// ShiftLatestEntry moves the most recent entry back by d.
func (s *Store) ShiftLatestEntry(ctx context.Context, d time.Duration) error {
	res, err := s.exec(ctx, `
		UPDATE entries SET recorded_at = recorded_at - ?
		WHERE id = (SELECT id FROM entries ORDER BY recorded_at DESC, id DESC LIMIT 1)`,
		int64(d/time.Second))
	if err != nil {
		return errors.Wrap(err, "failed to shift latest entry")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if n == 0 {
		return core.ErrNoEntries
	}
	return nil
}
