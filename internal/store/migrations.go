package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Workouts (one row per recorded run)
		`CREATE TABLE IF NOT EXISTS workouts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			distance_miles REAL NOT NULL,
			duration_seconds INTEGER NOT NULL,
			avg_pace_sec_per_mile REAL NOT NULL,
			avg_heartrate REAL,
			max_heartrate REAL,
			elevation_gain_feet REAL,
			source TEXT,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(date)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_workouts_source ON workouts(source)`,

		// Splits (ordered laps within a workout)
		`CREATE TABLE IF NOT EXISTS splits (
			workout_id INTEGER NOT NULL,
			split_number INTEGER NOT NULL,
			distance_miles REAL NOT NULL,
			duration_seconds INTEGER NOT NULL,
			pace_sec_per_mile REAL NOT NULL,
			heartrate REAL,
			PRIMARY KEY (workout_id, split_number),
			FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_splits_workout ON splits(workout_id)`,

		// Daily fitness series cache (recomputed in full from workouts)
		`CREATE TABLE IF NOT EXISTS fitness_trends (
			date TEXT PRIMARY KEY,
			ctl REAL,
			atl REAL,
			tsb REAL,
			computed_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Latest threshold estimate cache (singleton row)
		`CREATE TABLE IF NOT EXISTS threshold_estimates (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			pace_sec_per_mile REAL NOT NULL,
			confidence REAL NOT NULL,
			method TEXT NOT NULL,
			effort_count INTEGER NOT NULL,
			computed_at TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
