package config

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Athlete.RestingHR != 50 {
		t.Errorf("Athlete.RestingHR = %v, want 50", cfg.Athlete.RestingHR)
	}
	if cfg.Athlete.MaxHR != 185 {
		t.Errorf("Athlete.MaxHR = %v, want 185", cfg.Athlete.MaxHR)
	}
	if cfg.Athlete.KnownVDOT != 0 {
		t.Errorf("Athlete.KnownVDOT should default to unknown, got %v", cfg.Athlete.KnownVDOT)
	}

	if cfg.Display.DistanceUnit != "mi" {
		t.Errorf("Display.DistanceUnit = %q, want %q", cfg.Display.DistanceUnit, "mi")
	}
	if cfg.Display.PaceUnit != "min/mi" {
		t.Errorf("Display.PaceUnit = %q, want %q", cfg.Display.PaceUnit, "min/mi")
	}

	if cfg.Analysis.LookbackDays != 0 {
		t.Errorf("Analysis overrides should default to zero (use built-ins), got %d", cfg.Analysis.LookbackDays)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		errContains string
	}{
		{
			name:        "empty config",
			config:      Config{},
			expectError: false,
		},
		{
			name:        "defaults",
			config:      DefaultConfig(),
			expectError: false,
		},
		{
			name: "resting above max",
			config: Config{
				Athlete: AthleteConfig{RestingHR: 190, MaxHR: 185},
			},
			expectError: true,
			errContains: "resting_hr",
		},
		{
			name: "implausible vdot",
			config: Config{
				Athlete: AthleteConfig{KnownVDOT: 120},
			},
			expectError: true,
			errContains: "known_vdot",
		},
		{
			name: "bad distance unit",
			config: Config{
				Display: DisplayConfig{DistanceUnit: "furlongs"},
			},
			expectError: true,
			errContains: "distance_unit",
		},
		{
			name: "bad pace unit",
			config: Config{
				Display: DisplayConfig{PaceUnit: "min/furlong"},
			},
			expectError: true,
			errContains: "pace_unit",
		},
		{
			name: "negative lookback",
			config: Config{
				Analysis: AnalysisConfig{LookbackDays: -30},
			},
			expectError: true,
			errContains: "lookback_days",
		},
		{
			name: "atl slower than ctl",
			config: Config{
				Analysis: AnalysisConfig{CTLDays: 7, ATLDays: 42},
			},
			expectError: true,
			errContains: "atl_days",
		},
		{
			name: "valid overrides",
			config: Config{
				Athlete:  AthleteConfig{RestingHR: 48, MaxHR: 190, KnownVDOT: 52},
				Analysis: AnalysisConfig{LookbackDays: 120, CTLDays: 42, ATLDays: 7},
				Display:  DisplayConfig{DistanceUnit: "km", PaceUnit: "min/km"},
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not mention %q", err, tt.errContains)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
