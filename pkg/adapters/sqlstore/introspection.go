package sqlstore

import (
	"github.com/aretw0/introspection"

	"github.com/aretw0/jurnalo/pkg/core"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Driver          string `json:"driver"`
	DSN             string `json:"dsn"`
	Path            string `json:"path,omitempty"`
	OpenConnections int    `json:"open_connections"`
	InUse           int    `json:"in_use"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	stats := s.db.Stats()
	return StoreState{
		Driver:          s.dialect.name,
		DSN:             redact(s.dsn),
		Path:            s.Path(),
		OpenConnections: stats.OpenConnections,
		InUse:           stats.InUse,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "sql:" + s.dialect.name
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

var _ core.Repository = (*Store)(nil)
var _ core.Seeder = (*Store)(nil)
