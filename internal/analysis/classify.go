package analysis

import "runcoach/internal/store"

// EffortZone labels a split or workout by training intensity
type EffortZone int

const (
	ZoneRecovery EffortZone = iota
	ZoneEasy
	ZoneSteady
	ZoneMarathon
	ZoneThreshold
	ZoneInterval
	ZoneRepetition
	ZoneWarmup
	ZoneCooldown
)

// String returns the zone name used in displays and load weighting
func (z EffortZone) String() string {
	switch z {
	case ZoneRecovery:
		return "recovery"
	case ZoneEasy:
		return "easy"
	case ZoneSteady:
		return "steady"
	case ZoneMarathon:
		return "marathon"
	case ZoneThreshold:
		return "threshold"
	case ZoneInterval:
		return "interval"
	case ZoneRepetition:
		return "repetition"
	case ZoneWarmup:
		return "warmup"
	case ZoneCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// SplitContext carries the reference paces used to classify splits
type SplitContext struct {
	WorkoutAvgPace float64 // seconds per mile, average for the parent workout
	EasyPace       float64 // seconds per mile, runner's easy baseline; 0 if unknown
}

// Pace bands as a fraction of the easy baseline. Faster pace means a
// smaller fraction, so the table is checked from the slow end down.
var baselineBands = []struct {
	minRatio float64 // pace / easy baseline at or above this ratio
	zone     EffortZone
}{
	{1.05, ZoneRecovery},
	{0.97, ZoneEasy},
	{0.92, ZoneSteady},
	{0.86, ZoneMarathon},
	{0.78, ZoneThreshold},
	{0.70, ZoneInterval},
}

// Bands relative to the workout's own average, used when no easy
// baseline is available
var relativeBands = []struct {
	minRatio float64
	zone     EffortZone
}{
	{1.12, ZoneRecovery},
	{1.03, ZoneEasy},
	{0.97, ZoneSteady},
	{0.92, ZoneMarathon},
	{0.85, ZoneThreshold},
	{0.75, ZoneInterval},
}

// ClassifySplits maps each split to a training zone from its pace relative
// to the workout average and to the runner's easy baseline. The first and
// last splits read as warmup/cooldown when clearly slower than the rest.
func ClassifySplits(splits []store.Split, ctx SplitContext) []EffortZone {
	zones := make([]EffortZone, len(splits))
	for i, s := range splits {
		zones[i] = classifyPace(s.PaceSecPerMile, ctx)
	}

	if len(splits) >= 3 && ctx.WorkoutAvgPace > 0 {
		if splits[0].PaceSecPerMile/ctx.WorkoutAvgPace > 1.10 {
			zones[0] = ZoneWarmup
		}
		last := len(splits) - 1
		if splits[last].PaceSecPerMile/ctx.WorkoutAvgPace > 1.10 {
			zones[last] = ZoneCooldown
		}
	}

	return zones
}

// ClassifyWorkout labels a whole workout from its average pace.
// easyPace may be 0 when no baseline is known; the workout then reads
// as easy since there is nothing to compare against.
func ClassifyWorkout(w store.Workout, easyPace float64) EffortZone {
	pace := workoutPace(w)
	if pace <= 0 {
		return ZoneEasy
	}
	return classifyPace(pace, SplitContext{WorkoutAvgPace: pace, EasyPace: easyPace})
}

func classifyPace(pace float64, ctx SplitContext) EffortZone {
	if pace <= 0 {
		return ZoneEasy
	}

	if ctx.EasyPace > 0 {
		ratio := pace / ctx.EasyPace
		for _, b := range baselineBands {
			if ratio >= b.minRatio {
				return b.zone
			}
		}
		return ZoneRepetition
	}

	if ctx.WorkoutAvgPace > 0 {
		ratio := pace / ctx.WorkoutAvgPace
		for _, b := range relativeBands {
			if ratio >= b.minRatio {
				return b.zone
			}
		}
		return ZoneRepetition
	}

	return ZoneEasy
}

// EasyPaceBaseline estimates the runner's easy-run pace as the median of
// the slower half of the log. Quality sessions sit in the faster half, so
// this stays stable even for runners who race often.
func EasyPaceBaseline(workouts []store.Workout) float64 {
	if len(workouts) == 0 {
		return 0
	}

	paces := make([]float64, 0, len(workouts))
	for _, w := range workouts {
		if p := workoutPace(w); p > 0 {
			paces = append(paces, p)
		}
	}
	if len(paces) == 0 {
		return 0
	}

	mid := Median(paces)
	var slower []float64
	for _, p := range paces {
		if p >= mid {
			slower = append(slower, p)
		}
	}
	return Median(slower)
}
