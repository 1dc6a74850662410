package analysis

import (
	"testing"
	"time"

	"runcoach/internal/store"
)

func testWorkout(daysAgo int, miles float64, durationSec int) store.Workout {
	return store.Workout{
		Date:              time.Date(2026, 6, 1, 7, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo),
		DistanceMiles:     miles,
		DurationSeconds:   durationSec,
		AvgPaceSecPerMile: float64(durationSec) / miles,
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestClassifyWorkout_AgainstBaseline(t *testing.T) {
	// Easy baseline 540 s/mi (9:00)
	const easy = 540.0

	tests := []struct {
		name     string
		pace     float64
		expected EffortZone
	}{
		{"slower than easy", 580, ZoneRecovery},
		{"at baseline", 540, ZoneEasy},
		{"slightly faster", 510, ZoneSteady},
		{"marathon effort", 480, ZoneMarathon},
		{"threshold effort", 445, ZoneThreshold},
		{"interval effort", 400, ZoneInterval},
		{"all-out", 360, ZoneRepetition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := store.Workout{DistanceMiles: 5, DurationSeconds: int(tt.pace * 5), AvgPaceSecPerMile: tt.pace}
			got := ClassifyWorkout(w, easy)
			if got != tt.expected {
				t.Errorf("pace %.0f vs easy %.0f classified %s, expected %s", tt.pace, easy, got, tt.expected)
			}
		})
	}
}

func TestClassifyWorkout_NoBaseline(t *testing.T) {
	// Without a baseline a workout compared against its own average
	// always reads as steady-ish, never a quality zone
	w := store.Workout{DistanceMiles: 5, DurationSeconds: 2400, AvgPaceSecPerMile: 480}
	got := ClassifyWorkout(w, 0)
	if got == ZoneThreshold || got == ZoneInterval || got == ZoneRepetition {
		t.Errorf("no-baseline classification gave quality zone %s", got)
	}
}

func TestClassifySplits_WarmupCooldown(t *testing.T) {
	// 6 splits around an 8:00 average; first and last clearly slower
	splits := []store.Split{
		{SplitNumber: 1, PaceSecPerMile: 560},
		{SplitNumber: 2, PaceSecPerMile: 465},
		{SplitNumber: 3, PaceSecPerMile: 460},
		{SplitNumber: 4, PaceSecPerMile: 458},
		{SplitNumber: 5, PaceSecPerMile: 462},
		{SplitNumber: 6, PaceSecPerMile: 555},
	}

	zones := ClassifySplits(splits, SplitContext{WorkoutAvgPace: 480, EasyPace: 540})

	if zones[0] != ZoneWarmup {
		t.Errorf("first split classified %s, expected warmup", zones[0])
	}
	if zones[len(zones)-1] != ZoneCooldown {
		t.Errorf("last split classified %s, expected cooldown", zones[len(zones)-1])
	}
	for i := 1; i < len(zones)-1; i++ {
		if zones[i] == ZoneWarmup || zones[i] == ZoneCooldown {
			t.Errorf("middle split %d classified %s", i+1, zones[i])
		}
	}
}

func TestClassifySplits_TooFewForWarmup(t *testing.T) {
	// Two splits are not enough to call either one a warmup
	splits := []store.Split{
		{SplitNumber: 1, PaceSecPerMile: 600},
		{SplitNumber: 2, PaceSecPerMile: 450},
	}
	zones := ClassifySplits(splits, SplitContext{WorkoutAvgPace: 500})
	for i, z := range zones {
		if z == ZoneWarmup || z == ZoneCooldown {
			t.Errorf("split %d classified %s with only 2 splits", i+1, z)
		}
	}
}

func TestEasyPaceBaseline(t *testing.T) {
	// Mix of easy runs around 9:00 and quality sessions around 7:00.
	// The baseline should land in the easy cluster, unmoved by the
	// quality work.
	workouts := []store.Workout{
		testWorkout(1, 5, 5*540),
		testWorkout(3, 6, 6*535),
		testWorkout(5, 4, 4*545),
		testWorkout(7, 5, 5*550),
		testWorkout(9, 5, 5*420), // tempo
		testWorkout(11, 3, 3*410),
	}

	baseline := EasyPaceBaseline(workouts)
	if baseline < 530 || baseline > 560 {
		t.Errorf("baseline = %.0f s/mi, expected in the easy cluster 530-560", baseline)
	}
}

func TestEasyPaceBaseline_Empty(t *testing.T) {
	if got := EasyPaceBaseline(nil); got != 0 {
		t.Errorf("baseline of empty log = %f, expected 0", got)
	}
}
