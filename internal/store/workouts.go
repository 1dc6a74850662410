package store

import (
	"database/sql"
	"fmt"
	"time"
)

// InsertWorkout stores a workout and its splits in one transaction.
// A workout with the same source as an existing row replaces it.
func (db *DB) InsertWorkout(w *Workout) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if w.Source != "" {
		// Re-importing the same file replaces the previous rows
		if _, err := tx.Exec(`DELETE FROM workouts WHERE source = ?`, w.Source); err != nil {
			return 0, fmt.Errorf("removing previous import: %w", err)
		}
	}

	result, err := tx.Exec(`
		INSERT INTO workouts (
			date, distance_miles, duration_seconds, avg_pace_sec_per_mile,
			avg_heartrate, max_heartrate, elevation_gain_feet, source, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`,
		w.Date.Format(time.RFC3339), w.DistanceMiles, w.DurationSeconds, w.AvgPaceSecPerMile,
		w.AvgHeartRate, w.MaxHeartRate, w.ElevationGainFeet, nullableString(w.Source),
	)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, s := range w.Splits {
		_, err := tx.Exec(`
			INSERT INTO splits (
				workout_id, split_number, distance_miles, duration_seconds,
				pace_sec_per_mile, heartrate
			) VALUES (?, ?, ?, ?, ?, ?)
		`, id, s.SplitNumber, s.DistanceMiles, s.DurationSeconds, s.PaceSecPerMile, s.HeartRate)
		if err != nil {
			return 0, fmt.Errorf("inserting split %d: %w", s.SplitNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// GetWorkout retrieves a workout with its splits by ID
func (db *DB) GetWorkout(id int64) (*Workout, error) {
	row := db.QueryRow(`
		SELECT id, date, distance_miles, duration_seconds, avg_pace_sec_per_mile,
			avg_heartrate, max_heartrate, elevation_gain_feet, source
		FROM workouts
		WHERE id = ?
	`, id)

	w, err := scanWorkout(row)
	if err == sql.ErrNoRows {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, err
	}

	splits, err := db.getSplits(w.ID)
	if err != nil {
		return nil, err
	}
	w.Splits = splits
	return w, nil
}

// ListWorkouts returns workouts with splits ordered by date descending
func (db *DB) ListWorkouts(limit, offset int) ([]Workout, error) {
	rows, err := db.Query(`
		SELECT id, date, distance_miles, duration_seconds, avg_pace_sec_per_mile,
			avg_heartrate, max_heartrate, elevation_gain_feet, source
		FROM workouts
		ORDER BY date DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts, err := scanWorkouts(rows)
	if err != nil {
		return nil, err
	}
	return db.attachSplits(workouts)
}

// ListWorkoutsSince returns workouts with splits on or after the given date,
// ordered by date ascending
func (db *DB) ListWorkoutsSince(since time.Time) ([]Workout, error) {
	rows, err := db.Query(`
		SELECT id, date, distance_miles, duration_seconds, avg_pace_sec_per_mile,
			avg_heartrate, max_heartrate, elevation_gain_feet, source
		FROM workouts
		WHERE date >= ?
		ORDER BY date ASC
	`, since.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts, err := scanWorkouts(rows)
	if err != nil {
		return nil, err
	}
	return db.attachSplits(workouts)
}

// CountWorkouts returns the total number of stored workouts
func (db *DB) CountWorkouts() (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM workouts`).Scan(&count)
	return count, err
}

// DeleteWorkout removes a workout and its splits
func (db *DB) DeleteWorkout(id int64) error {
	result, err := db.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// getSplits retrieves ordered splits for one workout
func (db *DB) getSplits(workoutID int64) ([]Split, error) {
	rows, err := db.Query(`
		SELECT workout_id, split_number, distance_miles, duration_seconds,
			pace_sec_per_mile, heartrate
		FROM splits
		WHERE workout_id = ?
		ORDER BY split_number ASC
	`, workoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var splits []Split
	for rows.Next() {
		var s Split
		if err := rows.Scan(&s.WorkoutID, &s.SplitNumber, &s.DistanceMiles,
			&s.DurationSeconds, &s.PaceSecPerMile, &s.HeartRate); err != nil {
			return nil, err
		}
		splits = append(splits, s)
	}
	return splits, rows.Err()
}

// attachSplits loads splits for a batch of workouts in one query
func (db *DB) attachSplits(workouts []Workout) ([]Workout, error) {
	if len(workouts) == 0 {
		return workouts, nil
	}

	byID := make(map[int64]int, len(workouts))
	for i := range workouts {
		byID[workouts[i].ID] = i
	}

	rows, err := db.Query(`
		SELECT workout_id, split_number, distance_miles, duration_seconds,
			pace_sec_per_mile, heartrate
		FROM splits
		ORDER BY workout_id, split_number ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s Split
		if err := rows.Scan(&s.WorkoutID, &s.SplitNumber, &s.DistanceMiles,
			&s.DurationSeconds, &s.PaceSecPerMile, &s.HeartRate); err != nil {
			return nil, err
		}
		if i, ok := byID[s.WorkoutID]; ok {
			workouts[i].Splits = append(workouts[i].Splits, s)
		}
	}
	return workouts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row rowScanner) (*Workout, error) {
	var w Workout
	var dateStr string
	var source sql.NullString
	err := row.Scan(&w.ID, &dateStr, &w.DistanceMiles, &w.DurationSeconds,
		&w.AvgPaceSecPerMile, &w.AvgHeartRate, &w.MaxHeartRate,
		&w.ElevationGainFeet, &source)
	if err != nil {
		return nil, err
	}
	w.Date, err = time.Parse(time.RFC3339, dateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", dateStr, err)
	}
	w.Source = source.String
	return &w, nil
}

func scanWorkouts(rows *sql.Rows) ([]Workout, error) {
	var workouts []Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *w)
	}
	return workouts, rows.Err()
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
