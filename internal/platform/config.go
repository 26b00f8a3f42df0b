// Package platform wires configuration, storage and services into a ready
// to use journal for the command line.
package platform

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/aretw0/jurnalo/pkg/adapters/sqlstore"
	"github.com/aretw0/jurnalo/pkg/streak"
)

// EnvPrefix prefixes every environment variable read by jurnalo.
const EnvPrefix = "JURNALO"

// Config is the resolved runtime configuration.
type Config struct {
	Driver     string
	DSN        string
	DataDir    string
	Seed       string
	Timezone   string
	StreakDays int
	DevSafety  bool

	// ConfigFile is the file the values were read from, if any.
	ConfigFile string
}

// NewViper prepares a viper instance with defaults, environment bindings and,
// when present, the config file. An explicit configFile must exist; otherwise
// jurnalo.{toml,yaml,json} is looked up in the data directory and then in the
// working directory.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("driver", sqlstore.DriverSQLite)
	v.SetDefault("data", defaultDataDir())
	v.SetDefault("timezone", "Local")
	v.SetDefault("streak_days", streak.DefaultDays)
	v.SetDefault("dev_safety", true)

	// TEST_TOML and DATABASE_URL are accepted as fallbacks.
	_ = v.BindEnv("dsn", EnvPrefix+"_DSN", "DATABASE_URL")
	_ = v.BindEnv("seed", EnvPrefix+"_SEED", "TEST_TOML")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("jurnalo")
		v.AddConfigPath(v.GetString("data"))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}
	return v, nil
}

// Load builds a validated Config out of v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Driver:     strings.ToLower(strings.TrimSpace(v.GetString("driver"))),
		DSN:        strings.TrimSpace(v.GetString("dsn")),
		DataDir:    v.GetString("data"),
		Seed:       v.GetString("seed"),
		Timezone:   v.GetString("timezone"),
		StreakDays: v.GetInt("streak_days"),
		DevSafety:  v.GetBool("dev_safety"),
		ConfigFile: v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.Driver {
	case sqlstore.DriverSQLite:
		if c.DSN == "" && c.DataDir == "" {
			return errors.New("either dsn or data directory is required for sqlite")
		}
	case sqlstore.DriverPostgres:
		if c.DSN == "" {
			return errors.New("dsn is required for postgres")
		}
	default:
		return errors.Errorf("unknown driver %q: only %q and %q are supported", c.Driver, sqlstore.DriverSQLite, sqlstore.DriverPostgres)
	}

	if c.StreakDays < 1 || c.StreakDays > streak.MaxDays {
		return errors.Errorf("streak_days must be between 1 and %d, got %d", streak.MaxDays, c.StreakDays)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the time zone entries are displayed in.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid timezone %q", c.Timezone)
	}
	return loc, nil
}

// DatabaseDSN returns the connection string to open. SQLite defaults to
// jurnalo.db in the data directory and is kept out of the user's data while
// running from go run or go test.
func (c *Config) DatabaseDSN() string {
	if c.Driver != sqlstore.DriverSQLite {
		return c.DSN
	}
	dsn := c.DSN
	if dsn == "" {
		dsn = filepath.Join(c.DataDir, "jurnalo.db")
	}
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return dsn
	}
	return ResolveDatabasePath(dsn, c.DevSafety && IsDevRun())
}

func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "jurnalo")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "jurnalo")
}
