package sqlstore

import (
	"strconv"
	"strings"
)

// dialect carries what differs between the supported databases.
type dialect struct {
	name       string
	primaryKey string
	// placeholder returns the n-th (1-based) bind parameter.
	placeholder func(n int) string
}

var dialects = map[string]dialect{
	DriverSQLite: {
		name:        DriverSQLite,
		primaryKey:  "INTEGER PRIMARY KEY AUTOINCREMENT",
		placeholder: func(int) string { return "?" },
	},
	DriverPostgres: {
		name:        DriverPostgres,
		primaryKey:  "BIGSERIAL PRIMARY KEY",
		placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	},
}

// rebind rewrites the "?" parameters of query into the dialect's placeholders.
func (d dialect) rebind(query string) string {
	if d.name == DriverSQLite {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(d.placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d dialect) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id ` + d.primaryKey + `,
			label TEXT NOT NULL UNIQUE,
			prompt TEXT NOT NULL,
			category_type INTEGER NOT NULL DEFAULT 1,
			disabled INTEGER NOT NULL DEFAULT 0,
			extra_info TEXT,
			show_in_streaks INTEGER NOT NULL DEFAULT 0,
			reminder_timer_in_days INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS choices (
			id ` + d.primaryKey + `,
			label TEXT NOT NULL,
			shortcut TEXT NOT NULL,
			category_label TEXT NOT NULL REFERENCES categories(label) ON UPDATE CASCADE,
			disabled INTEGER NOT NULL DEFAULT 0,
			show_in_streaks INTEGER NOT NULL DEFAULT 0,
			reminder_timer_in_days INTEGER,
			UNIQUE (category_label, shortcut)
		)`,
		`CREATE TABLE IF NOT EXISTS quizzes (
			id ` + d.primaryKey + `,
			label TEXT NOT NULL UNIQUE,
			command TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS quizzes_to_categories (
			quiz_label TEXT NOT NULL REFERENCES quizzes(label) ON UPDATE CASCADE,
			category_label TEXT NOT NULL REFERENCES categories(label) ON UPDATE CASCADE,
			sort_order INTEGER NOT NULL,
			PRIMARY KEY (quiz_label, category_label)
		)`,
		`CREATE TABLE IF NOT EXISTS entries (
			id ` + d.primaryKey + `,
			recorded_at BIGINT NOT NULL,
			category_id BIGINT REFERENCES categories(id),
			choice_id BIGINT REFERENCES choices(id),
			details TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_recorded_at ON entries (recorded_at)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_choice_id ON entries (choice_id)`,
	}
}
