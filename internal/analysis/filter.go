package analysis

import (
	"time"

	"runcoach/internal/store"
)

// ValidWorkouts filters out physically implausible or incomplete records:
// non-positive distance or duration, malformed numeric fields, and paces
// outside the plausible band. Records are excluded, never mutated, so one
// bad record cannot abort a whole-history analysis.
func ValidWorkouts(workouts []store.Workout, tun Tunables) []store.Workout {
	valid := make([]store.Workout, 0, len(workouts))
	for _, w := range workouts {
		if !usableWorkout(w, tun) {
			continue
		}
		valid = append(valid, w)
	}
	return valid
}

func usableWorkout(w store.Workout, tun Tunables) bool {
	if !validNumber(w.DistanceMiles) || w.DistanceMiles <= 0 {
		return false
	}
	if w.DurationSeconds <= 0 {
		return false
	}
	pace := workoutPace(w)
	if !validNumber(pace) {
		return false
	}
	return pace >= tun.PaceFloorSecPerMile && pace <= tun.PaceCeilSecPerMile
}

// workoutPace returns the recorded average pace, deriving it from distance
// and duration when the record carries none
func workoutPace(w store.Workout) float64 {
	if validNumber(w.AvgPaceSecPerMile) && w.AvgPaceSecPerMile > 0 {
		return w.AvgPaceSecPerMile
	}
	if w.DistanceMiles <= 0 {
		return 0
	}
	return float64(w.DurationSeconds) / w.DistanceMiles
}

// recentWorkouts applies the detector's lookback and minimum-distance filter.
// The lookback anchors on the newest record rather than the wall clock, so
// an imported historical log analyzes the same way regardless of when the
// analysis runs.
func recentWorkouts(workouts []store.Workout, tun Tunables) []store.Workout {
	if len(workouts) == 0 {
		return nil
	}

	var newest time.Time
	for _, w := range workouts {
		if w.Date.After(newest) {
			newest = w.Date
		}
	}
	cutoff := newest.AddDate(0, 0, -tun.LookbackDays)

	recent := make([]store.Workout, 0, len(workouts))
	for _, w := range workouts {
		if w.Date.Before(cutoff) {
			continue
		}
		if w.DistanceMiles < tun.MinDistanceMiles {
			continue
		}
		recent = append(recent, w)
	}
	return recent
}
