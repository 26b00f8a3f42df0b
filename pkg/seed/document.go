// Package seed reads the document describing a journal's initial categories,
// choices and quizzes.
package seed

import (
	"fmt"
	"strings"

	"github.com/aretw0/jurnalo/pkg/core"
)

// Document is the root of a seed file.
type Document struct {
	Categories []Category `toml:"categories" yaml:"categories" json:"categories"`
	Quizzes    []Quiz     `toml:"quizzes" yaml:"quizzes" json:"quizzes"`
}

// Category describes a category and its choices.
type Category struct {
	Label         string   `toml:"label" yaml:"label" json:"label"`
	Prompt        string   `toml:"prompt" yaml:"prompt" json:"prompt"`
	QuestionType  *int     `toml:"question_type" yaml:"question_type" json:"question_type"`
	ExtraInfo     *string  `toml:"extra_info" yaml:"extra_info" json:"extra_info"`
	ShowInStreaks *int     `toml:"show_in_streaks" yaml:"show_in_streaks" json:"show_in_streaks"`
	ReminderDays  *int     `toml:"reminder_timer_in_days" yaml:"reminder_timer_in_days" json:"reminder_timer_in_days"`
	Choices       []Choice `toml:"choices" yaml:"choices" json:"choices"`
}

// Choice describes one answer of a category.
type Choice struct {
	Shortcut      string `toml:"shortcut" yaml:"shortcut" json:"shortcut"`
	Label         string `toml:"label" yaml:"label" json:"label"`
	ShowInStreaks *int   `toml:"show_in_streaks" yaml:"show_in_streaks" json:"show_in_streaks"`
	ReminderDays  *int   `toml:"reminder_timer_in_days" yaml:"reminder_timer_in_days" json:"reminder_timer_in_days"`
}

// Quiz lists the categories asked by a command, in order.
type Quiz struct {
	Command    string   `toml:"command" yaml:"command" json:"command"`
	Categories []string `toml:"categories" yaml:"categories" json:"categories"`
}

// Validate checks the references inside the document.
// All problems are reported at once.
func (d *Document) Validate() error {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	known := make(map[string]bool, len(d.Categories))
	for i, c := range d.Categories {
		if strings.TrimSpace(c.Label) == "" {
			addf("categories[%d]: empty label", i)
			continue
		}
		if known[c.Label] {
			addf("categories[%d]: duplicate label %q", i, c.Label)
		}
		known[c.Label] = true

		if strings.TrimSpace(c.Prompt) == "" {
			addf("category %q: empty prompt", c.Label)
		}
		if c.ReminderDays != nil && *c.ReminderDays < 1 {
			addf("category %q: reminder_timer_in_days must be at least 1", c.Label)
		}

		shortcuts := make(map[string]bool, len(c.Choices))
		for j, ch := range c.Choices {
			if strings.TrimSpace(ch.Label) == "" || strings.TrimSpace(ch.Shortcut) == "" {
				addf("category %q: choices[%d]: empty label or shortcut", c.Label, j)
				continue
			}
			if strings.ContainsAny(ch.Shortcut, ": ") {
				addf("category %q: shortcut %q cannot contain spaces or colons", c.Label, ch.Shortcut)
			}
			key := strings.ToLower(ch.Shortcut)
			if shortcuts[key] {
				addf("category %q: duplicate shortcut %q", c.Label, ch.Shortcut)
			}
			shortcuts[key] = true
			if ch.ReminderDays != nil && *ch.ReminderDays < 1 {
				addf("category %q: choice %q: reminder_timer_in_days must be at least 1", c.Label, ch.Label)
			}
		}
	}

	commands := make(map[string]bool, len(d.Quizzes))
	for i, q := range d.Quizzes {
		if strings.TrimSpace(q.Command) == "" {
			addf("quizzes[%d]: empty command", i)
			continue
		}
		if commands[q.Command] {
			addf("quizzes[%d]: duplicate command %q", i, q.Command)
		}
		commands[q.Command] = true

		linked := make(map[string]bool, len(q.Categories))
		for _, label := range q.Categories {
			if !known[label] {
				addf("quiz %q: unknown category %q", q.Command, label)
			}
			if linked[label] {
				addf("quiz %q: category %q listed twice", q.Command, label)
			}
			linked[label] = true
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", core.ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

// SeedData converts the document into the rows a repository inserts.
// Quiz labels are their commands; links are numbered from 1 in listed order.
func (d *Document) SeedData() core.SeedData {
	var data core.SeedData
	for _, c := range d.Categories {
		typ := 1
		if c.QuestionType != nil {
			typ = *c.QuestionType
		}
		data.Categories = append(data.Categories, core.Category{
			Label:         c.Label,
			Prompt:        c.Prompt,
			Type:          typ,
			ExtraInfo:     c.ExtraInfo,
			ShowInStreaks: flag(c.ShowInStreaks),
			ReminderDays:  c.ReminderDays,
		})
		for _, ch := range c.Choices {
			data.Choices = append(data.Choices, core.Choice{
				Label:         ch.Label,
				Shortcut:      ch.Shortcut,
				CategoryLabel: c.Label,
				ShowInStreaks: flag(ch.ShowInStreaks),
				ReminderDays:  ch.ReminderDays,
			})
		}
	}

	for _, q := range d.Quizzes {
		command := q.Command
		data.Quizzes = append(data.Quizzes, core.Quiz{Label: q.Command, Command: &command})
		for i, label := range q.Categories {
			data.Links = append(data.Links, core.QuizCategory{
				QuizLabel:     q.Command,
				CategoryLabel: label,
				Order:         i + 1,
			})
		}
	}
	return data
}

func flag(v *int) bool {
	return v != nil && *v != 0
}
