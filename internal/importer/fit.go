package importer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tormoder/fit"

	"runcoach/internal/store"
)

const (
	metersPerMile = 1609.34
	feetPerMeter  = 3.28084
	invalidHR     = 255 // FIT's uint8 "no value" marker
)

// ParseFile reads a Garmin .fit activity file and converts it to a workout
// in the units the rest of the app speaks (miles, seconds, feet, bpm).
// Laps become splits. Only running activities are accepted.
func ParseFile(path string) (*store.Workout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	fd, err := fit.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	activity, err := fd.Activity()
	if err != nil {
		return nil, fmt.Errorf("%s is not an activity file: %w", filepath.Base(path), err)
	}
	if len(activity.Sessions) == 0 {
		return nil, fmt.Errorf("%s contains no sessions", filepath.Base(path))
	}

	session := activity.Sessions[0]
	if session.Sport != fit.SportRunning {
		return nil, fmt.Errorf("%s records %s, not a run", filepath.Base(path), session.Sport)
	}

	w := sessionToWorkout(session)
	w.Source = filepath.Base(path)
	w.Splits = lapsToSplits(activity.Laps)
	return w, nil
}

func sessionToWorkout(s *fit.SessionMsg) *store.Workout {
	// FIT profile scaling: total_timer_time ms, total_distance cm,
	// total_ascent whole meters
	durationSec := int(float64(s.TotalTimerTime) / 1000.0)
	distanceMiles := float64(s.TotalDistance) / 100.0 / metersPerMile

	w := &store.Workout{
		Date:            s.StartTime.UTC(),
		DistanceMiles:   distanceMiles,
		DurationSeconds: durationSec,
	}
	if distanceMiles > 0 {
		w.AvgPaceSecPerMile = float64(durationSec) / distanceMiles
	}

	if s.AvgHeartRate != 0 && s.AvgHeartRate != invalidHR {
		hr := float64(s.AvgHeartRate)
		w.AvgHeartRate = &hr
	}
	if s.MaxHeartRate != 0 && s.MaxHeartRate != invalidHR {
		hr := float64(s.MaxHeartRate)
		w.MaxHeartRate = &hr
	}
	if s.TotalAscent != 0 && s.TotalAscent != 0xFFFF {
		feet := float64(s.TotalAscent) * feetPerMeter
		w.ElevationGainFeet = &feet
	}

	return w
}

func lapsToSplits(laps []*fit.LapMsg) []store.Split {
	var splits []store.Split
	for _, lap := range laps {
		durationSec := int(float64(lap.TotalTimerTime) / 1000.0)
		distanceMiles := float64(lap.TotalDistance) / 100.0 / metersPerMile
		if durationSec <= 0 || distanceMiles <= 0 {
			continue
		}

		s := store.Split{
			SplitNumber:     len(splits) + 1,
			DistanceMiles:   distanceMiles,
			DurationSeconds: durationSec,
			PaceSecPerMile:  float64(durationSec) / distanceMiles,
		}
		if lap.AvgHeartRate != 0 && lap.AvgHeartRate != invalidHR {
			hr := float64(lap.AvgHeartRate)
			s.HeartRate = &hr
		}
		splits = append(splits, s)
	}
	return splits
}
