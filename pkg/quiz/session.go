// Package quiz runs interactive quiz sessions: it prompts for each category of
// a quiz, matches the typed shortcuts and records the answers as entries.
package quiz

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aretw0/jurnalo/pkg/core"
	"github.com/aretw0/jurnalo/pkg/streak"
)

// Store is everything a session needs from storage.
type Store interface {
	core.QuizSource
	core.EntryWriter
	core.StreakSource
	core.ChoiceHistory
}

// Session answers one quiz at a time against a Store.
type Session struct {
	store  Store
	in     *bufio.Reader
	out    io.Writer
	now    func() time.Time
	days   int
	logger *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithInput sets where answers are read from. Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(s *Session) {
		s.in = bufio.NewReader(r)
	}
}

// WithOutput sets where prompts and the streak table are written. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		s.out = w
	}
}

// WithClock overrides the time source used for reminders and streaks.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithStreakDays sets the width of the streak table shown after a run.
func WithStreakDays(days int) Option {
	return func(s *Session) {
		s.days = days
	}
}

// WithLogger sets the logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a Session reading from stdin and writing to stdout unless configured otherwise.
func NewSession(store Store, opts ...Option) *Session {
	s := &Session{
		store: store,
		out:   os.Stdout,
		now:   time.Now,
		days:  streak.DefaultDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.in == nil {
		s.in = bufio.NewReader(os.Stdin)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Run asks every category of the quiz, then submits all answers in a single
// batch and prints the streak table. Nothing is written if any prompt fails.
func (s *Session) Run(ctx context.Context, quizLabel string) error {
	if strings.TrimSpace(quizLabel) == "" {
		return fmt.Errorf("%w: quiz label cannot be empty", core.ErrInvalidInput)
	}

	prompts, err := s.store.ListQuizPrompts(ctx, quizLabel)
	if err != nil {
		return &core.StoreError{Op: "fetch quiz", Err: err}
	}
	if len(prompts) == 0 {
		return fmt.Errorf("%w: %s", core.ErrQuizNotFound, quizLabel)
	}

	var (
		inputs  = make([]string, 0, len(prompts))
		entries []core.NewEntry
	)
	for _, p := range prompts {
		if err := s.render(ctx, p); err != nil {
			return err
		}

		line, err := s.readLine()
		if err != nil {
			return err
		}
		inputs = append(inputs, line)

		entries = append(entries, answer(p, line)...)
	}
	fmt.Fprintln(s.out, strings.Join(inputs, " | "))

	if err := s.store.CreateEntries(ctx, entries); err != nil {
		return &core.StoreError{Op: "submit entries", Err: err}
	}
	s.logger.Debug("entries submitted", "quiz", quizLabel, "count", len(entries))

	return s.reportStreaks(ctx)
}

func (s *Session) render(ctx context.Context, p core.Prompt) error {
	fmt.Fprintln(s.out, p.Category.Prompt)
	if len(p.Choices) == 0 {
		return nil
	}

	now := s.now()
	rendered := make([]string, 0, len(p.Choices))
	for _, c := range p.Choices {
		due, err := IsDue(ctx, s.store, c, now)
		if err != nil {
			return &core.StoreError{Op: "check reminder", Err: err}
		}
		label := c.Label
		if due {
			label = "*" + label + "*"
		}
		rendered = append(rendered, fmt.Sprintf("[%s] %s", c.Shortcut, label))
	}
	fmt.Fprintln(s.out, strings.Join(rendered, " "))
	return nil
}

func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", &core.InputError{Err: err}
	}
	return strings.TrimSpace(line), nil
}

// answer turns one line of input into the entries it stands for: one per
// selected choice sharing the detail, a single detail-only entry, or none.
func answer(p core.Prompt, line string) []core.NewEntry {
	shortcuts := make([]Shortcut, 0, len(p.Choices))
	for _, c := range p.Choices {
		shortcuts = append(shortcuts, Shortcut{ID: c.ID, Token: c.Shortcut})
	}
	res := Match(line, shortcuts)

	var detail *string
	if res.Detail != "" {
		detail = &res.Detail
	}
	categoryID := p.Category.ID

	if len(res.ChoiceIDs) == 0 {
		if detail == nil {
			return nil
		}
		return []core.NewEntry{{CategoryID: &categoryID, Details: detail}}
	}

	entries := make([]core.NewEntry, 0, len(res.ChoiceIDs))
	for _, id := range res.ChoiceIDs {
		entries = append(entries, core.NewEntry{CategoryID: &categoryID, ChoiceID: &id, Details: detail})
	}
	return entries
}

func (s *Session) reportStreaks(ctx context.Context) error {
	samples, err := s.store.ListStreakSamples(ctx)
	if err != nil {
		return &core.StoreError{Op: "fetch streaks", Err: err}
	}

	grid := streak.Aggregate(s.now(), s.days, samples, s.logger)
	if table, ok := streak.Format(grid); ok {
		fmt.Fprintln(s.out, table)
	}
	return nil
}
