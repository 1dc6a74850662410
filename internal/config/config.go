package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration
type Config struct {
	Athlete  AthleteConfig  `json:"athlete"`
	Analysis AnalysisConfig `json:"analysis"`
	Display  DisplayConfig  `json:"display"`
}

// AthleteConfig holds athlete-specific settings
type AthleteConfig struct {
	RestingHR float64 `json:"resting_hr"`
	MaxHR     float64 `json:"max_hr"`
	// KnownVDOT, when set, cross-validates the detected threshold pace
	// against the VDOT-implied one. 0 means unknown.
	KnownVDOT float64 `json:"known_vdot"`
}

// AnalysisConfig overrides selected estimator cutoffs. Zero values keep
// the built-in defaults.
type AnalysisConfig struct {
	LookbackDays     int     `json:"lookback_days"`
	MinDistanceMiles float64 `json:"min_distance_miles"`
	CTLDays          float64 `json:"ctl_days"`
	ATLDays          float64 `json:"atl_days"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	DistanceUnit string `json:"distance_unit"`
	PaceUnit     string `json:"pace_unit"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Athlete: AthleteConfig{
			RestingHR: 50,
			MaxHR:     185,
		},
		Display: DisplayConfig{
			DistanceUnit: "mi",
			PaceUnit:     "min/mi",
		},
	}
}

// Load reads the configuration from ~/.runcoach/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Athlete.RestingHR == 0 {
		cfg.Athlete.RestingHR = defaults.Athlete.RestingHR
	}
	if cfg.Athlete.MaxHR == 0 {
		cfg.Athlete.MaxHR = defaults.Athlete.MaxHR
	}
	if cfg.Display.DistanceUnit == "" {
		cfg.Display.DistanceUnit = defaults.Display.DistanceUnit
	}
	if cfg.Display.PaceUnit == "" {
		cfg.Display.PaceUnit = defaults.Display.PaceUnit
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.runcoach/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates a default config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	return Save(&example)
}

// Validate checks the config for inconsistent values
func (c *Config) Validate() error {
	if c.Athlete.RestingHR > 0 && c.Athlete.MaxHR > 0 && c.Athlete.RestingHR >= c.Athlete.MaxHR {
		return fmt.Errorf("athlete.resting_hr (%v) must be less than athlete.max_hr (%v)", c.Athlete.RestingHR, c.Athlete.MaxHR)
	}
	if c.Athlete.KnownVDOT < 0 || c.Athlete.KnownVDOT > 90 {
		return fmt.Errorf("athlete.known_vdot (%v) must be between 0 and 90", c.Athlete.KnownVDOT)
	}

	if c.Display.DistanceUnit != "" && c.Display.DistanceUnit != "km" && c.Display.DistanceUnit != "mi" {
		return fmt.Errorf("display.distance_unit must be \"km\" or \"mi\", got %q", c.Display.DistanceUnit)
	}
	if c.Display.PaceUnit != "" && c.Display.PaceUnit != "min/km" && c.Display.PaceUnit != "min/mi" {
		return fmt.Errorf("display.pace_unit must be \"min/km\" or \"min/mi\", got %q", c.Display.PaceUnit)
	}

	if c.Analysis.LookbackDays < 0 {
		return fmt.Errorf("analysis.lookback_days (%d) must not be negative", c.Analysis.LookbackDays)
	}
	if c.Analysis.CTLDays < 0 || c.Analysis.ATLDays < 0 {
		return errors.New("analysis EWMA time constants must not be negative")
	}
	if c.Analysis.CTLDays > 0 && c.Analysis.ATLDays > 0 && c.Analysis.ATLDays >= c.Analysis.CTLDays {
		return fmt.Errorf("analysis.atl_days (%v) must be less than analysis.ctl_days (%v)", c.Analysis.ATLDays, c.Analysis.CTLDays)
	}

	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".runcoach", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".runcoach"), nil
}
