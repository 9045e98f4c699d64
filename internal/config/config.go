package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"courserank/internal/errors"
)

// ModeAuto lets the input file extension pick the ingestion variant:
// .xlsx selects the label-pattern classifier with presence scoring,
// .csv the id-prefix classifier with cell-label scoring.
const ModeAuto = "auto"

// Config is the pipeline configuration, read from the environment with
// CLI flags layered on top by the caller.
type Config struct {
	InputFile       string
	OutputDir       string
	Mode            string // auto | presence | label
	CorePrefix      string
	ElectivePrefix  string
	DidNotTakeScore *float64
	HistoryDB       string
	ServeAddr       string
}

// Load reads configuration from the environment. A .env file is honored
// when present but never required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		InputFile:      getEnv("RANKS_INPUT_FILE", ""),
		OutputDir:      getEnv("RANKS_OUTPUT_DIR", "outputs"),
		Mode:           getEnv("RANKS_MODE", ModeAuto),
		CorePrefix:     getEnv("RANKS_CORE_PREFIX", "Q35"),
		ElectivePrefix: getEnv("RANKS_ELECTIVE_PREFIX", "Q76"),
		HistoryDB:      getEnv("RANKS_HISTORY_DB", ""),
		ServeAddr:      getEnv("RANKS_SERVE_ADDR", ":8085"),
	}

	if raw := os.Getenv("RANKS_DID_NOT_TAKE_SCORE"); raw != "" {
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.ConfigInvalid(fmt.Sprintf("RANKS_DID_NOT_TAKE_SCORE must be numeric, got %q", raw))
		}
		cfg.DidNotTakeScore = &score
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that have a closed set of legal values.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeAuto, "presence", "label":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("RANKS_MODE must be auto, presence or label, got %q", c.Mode))
	}
	if c.OutputDir == "" {
		return errors.ConfigInvalid("output directory must not be empty")
	}
	return nil
}

// ChartPath is the fixed chart location inside the output directory.
func (c *Config) ChartPath() string {
	return filepath.Join(c.OutputDir, "rank_order.png")
}

// ReportPath is the markdown report location inside the output directory.
func (c *Config) ReportPath() string {
	return filepath.Join(c.OutputDir, "report.md")
}

// HistoryPath resolves the run-history database location, defaulting to
// the output directory.
func (c *Config) HistoryPath() string {
	if c.HistoryDB != "" {
		return c.HistoryDB
	}
	return filepath.Join(c.OutputDir, "courserank.db")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
