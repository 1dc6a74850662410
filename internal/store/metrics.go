package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ReplaceFitnessTrend replaces the whole cached daily CTL/ATL/TSB series.
// The series is always recomputed in full, so partial updates are never needed.
func (db *DB) ReplaceFitnessTrend(days []FitnessDay) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM fitness_trends`); err != nil {
		return fmt.Errorf("clearing fitness trends: %w", err)
	}

	for _, d := range days {
		_, err := tx.Exec(`
			INSERT INTO fitness_trends (date, ctl, atl, tsb, computed_at)
			VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		`, d.Date, d.CTL, d.ATL, d.TSB)
		if err != nil {
			return fmt.Errorf("inserting fitness day %s: %w", d.Date, err)
		}
	}

	return tx.Commit()
}

// GetFitnessTrend returns the cached daily series ordered by date ascending
func (db *DB) GetFitnessTrend() ([]FitnessDay, error) {
	rows, err := db.Query(`
		SELECT date, ctl, atl, tsb
		FROM fitness_trends
		ORDER BY date ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []FitnessDay
	for rows.Next() {
		var d FitnessDay
		if err := rows.Scan(&d.Date, &d.CTL, &d.ATL, &d.TSB); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// SaveThresholdEstimate caches the latest threshold detection result
func (db *DB) SaveThresholdEstimate(r *ThresholdRow) error {
	_, err := db.Exec(`
		INSERT INTO threshold_estimates (id, pace_sec_per_mile, confidence, method, effort_count, computed_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			pace_sec_per_mile = excluded.pace_sec_per_mile,
			confidence = excluded.confidence,
			method = excluded.method,
			effort_count = excluded.effort_count,
			computed_at = excluded.computed_at
	`, r.PaceSecPerMile, r.Confidence, r.Method, r.EffortCount, r.ComputedAt.Format(time.RFC3339))
	return err
}

// GetThresholdEstimate returns the cached threshold detection result
func (db *DB) GetThresholdEstimate() (*ThresholdRow, error) {
	row := db.QueryRow(`
		SELECT id, pace_sec_per_mile, confidence, method, effort_count, computed_at
		FROM threshold_estimates
		WHERE id = 1
	`)

	var r ThresholdRow
	var computedAt string
	err := row.Scan(&r.ID, &r.PaceSecPerMile, &r.Confidence, &r.Method, &r.EffortCount, &computedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoEstimate
	}
	if err != nil {
		return nil, err
	}
	r.ComputedAt, err = time.Parse(time.RFC3339, computedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing computed_at %q: %w", computedAt, err)
	}
	return &r, nil
}
