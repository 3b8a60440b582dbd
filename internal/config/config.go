package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// #region config
// Config holds process configuration, parsed from environment variables.
type Config struct {
	// DBPath points at the SQLite database shared with the ingestion jobs.
	DBPath string `env:"CORE314_DB" envDefault:"core314.db"`

	// Readiness thresholds. All three are independent knobs.
	MinEventCount   int `env:"READINESS_MIN_EVENT_COUNT" envDefault:"10"`
	MinTimeSpanDays int `env:"READINESS_MIN_TIME_SPAN_DAYS" envDefault:"7"`
	MinDataTypes    int `env:"READINESS_MIN_DATA_TYPES" envDefault:"1"`

	// Workers bounds concurrent per-integration evaluations in a batch run.
	Workers int `env:"READINESS_WORKERS" envDefault:"4"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// #endregion config

// #region parse
// Parse loads Config from the environment.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// #endregion parse
