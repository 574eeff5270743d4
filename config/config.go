// Package config resolves modcache settings from the process environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	str2duration "github.com/xhit/go-str2duration/v2"
)

// Duration is a time.Duration that parses with day and week units, so
// "90s", "30m", and "1d" are all acceptable values.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := str2duration.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "parsing duration %q", string(text))
	}
	*d = Duration(v)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is everything modcache reads from the environment. The API key is
// the only value without a usable default; commands that talk to the Nexus
// refuse to run without it.
type Config struct {
	APIKey         string   `env:"NEXUS_API_KEY"`
	DBPath         string   `env:"MODCACHE_DB_PATH" envDefault:"./db/nexus_cache.db"`
	RequestTimeout Duration `env:"MODCACHE_REQUEST_TIMEOUT" envDefault:"50s"`
	LogLevel       string   `env:"MODCACHE_LOG_LEVEL" envDefault:"warn"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "reading configuration from environment")
	}
	return &cfg, nil
}
