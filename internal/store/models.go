package store

import "time"

// Workout represents one recorded run in physical units
// (miles, seconds, feet, bpm).
type Workout struct {
	ID                int64     `db:"id"`
	Date              time.Time `db:"date"`
	DistanceMiles     float64   `db:"distance_miles"`
	DurationSeconds   int       `db:"duration_seconds"`
	AvgPaceSecPerMile float64   `db:"avg_pace_sec_per_mile"`
	AvgHeartRate      *float64  `db:"avg_heartrate"`       // nullable
	MaxHeartRate      *float64  `db:"max_heartrate"`       // nullable
	ElevationGainFeet *float64  `db:"elevation_gain_feet"` // nullable
	Source            string    `db:"source"`              // e.g. file the workout was imported from
	Splits            []Split
}

// Split represents one recorded lap/split within a workout.
// Splits are ordered by SplitNumber and are not required to sum
// exactly to the parent workout's totals.
type Split struct {
	WorkoutID       int64    `db:"workout_id"`
	SplitNumber     int      `db:"split_number"` // 1-based
	DistanceMiles   float64  `db:"distance_miles"`
	DurationSeconds int      `db:"duration_seconds"`
	PaceSecPerMile  float64  `db:"pace_sec_per_mile"`
	HeartRate       *float64 `db:"heartrate"` // nullable
}

// FitnessDay is one cached row of the daily CTL/ATL/TSB series.
// The series is derived data: it is recomputed in full from the
// workout history and this table is only a cache for display.
type FitnessDay struct {
	Date string  `db:"date"` // YYYY-MM-DD
	CTL  float64 `db:"ctl"`
	ATL  float64 `db:"atl"`
	TSB  float64 `db:"tsb"`
}

// ThresholdRow is the cached result of the most recent threshold
// detection run.
type ThresholdRow struct {
	ID             int64     `db:"id"`
	PaceSecPerMile float64   `db:"pace_sec_per_mile"`
	Confidence     float64   `db:"confidence"`
	Method         string    `db:"method"`
	EffortCount    int       `db:"effort_count"`
	ComputedAt     time.Time `db:"computed_at"`
}
