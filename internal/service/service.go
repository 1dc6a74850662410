package service

import (
	"fmt"
	"time"

	"runcoach/internal/analysis"
	"runcoach/internal/config"
	"runcoach/internal/store"
)

// QueryService provides read-only queries for the TUI
type QueryService struct {
	store *store.DB
	cfg   *config.Config
	tun   analysis.Tunables
}

// NewQueryService creates a new query service. cfg may be nil, in which
// case the built-in defaults apply.
func NewQueryService(db *store.DB, cfg *config.Config) *QueryService {
	if cfg == nil {
		defaults := config.DefaultConfig()
		cfg = &defaults
	}
	return &QueryService{
		store: db,
		cfg:   cfg,
		tun:   tunablesFromConfig(cfg),
	}
}

// tunablesFromConfig overlays the config's analysis overrides on the
// defaults. Zero values keep the defaults.
func tunablesFromConfig(cfg *config.Config) analysis.Tunables {
	tun := analysis.DefaultTunables()
	if cfg.Analysis.LookbackDays > 0 {
		tun.LookbackDays = cfg.Analysis.LookbackDays
	}
	if cfg.Analysis.MinDistanceMiles > 0 {
		tun.MinDistanceMiles = cfg.Analysis.MinDistanceMiles
	}
	if cfg.Analysis.CTLDays > 0 {
		tun.CTLDays = cfg.Analysis.CTLDays
	}
	if cfg.Analysis.ATLDays > 0 {
		tun.ATLDays = cfg.Analysis.ATLDays
	}
	return tun
}

// analysisHistory loads the workout window all estimators run over
func (q *QueryService) analysisHistory() ([]store.Workout, error) {
	since := time.Now().AddDate(0, 0, -AnalysisHistoryDays)
	return q.store.ListWorkoutsSince(since)
}

// formatDuration formats seconds as "M:SS" or "H:MM:SS"
func formatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// formatPace formats seconds-per-mile as "M:SS/mi"
func formatPace(secPerMile float64) string {
	if secPerMile <= 0 {
		return "-"
	}
	total := int(secPerMile + 0.5)
	return fmt.Sprintf("%d:%02d/mi", total/60, total%60)
}

// formatMiles formats a distance in miles for display
func formatMiles(miles float64) string {
	return fmt.Sprintf("%.1f mi", miles)
}

// capitalizeFirst capitalizes the first letter of a string
func capitalizeFirst(s string) string {
	if len(s) == 0 {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-32) + s[1:]
	}
	return s
}
