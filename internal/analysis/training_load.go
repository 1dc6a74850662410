package analysis

import (
	"sort"
	"time"

	"runcoach/internal/store"
)

// DailyLoad represents total training load for a single calendar day.
// Rest days carry a zero load.
type DailyLoad struct {
	Date time.Time
	Load float64
}

// FitnessMetric represents CTL/ATL/TSB for a day
type FitnessMetric struct {
	Date time.Time
	CTL  float64 // Chronic Training Load (~42 day EWMA) - "Fitness"
	ATL  float64 // Acute Training Load (~7 day EWMA) - "Fatigue"
	TSB  float64 // Training Stress Balance (prior-day CTL - ATL) - "Form"
}

// Intensity multipliers per zone. Warmup/cooldown reuse the recovery
// weight since they are the same physiological effort.
var zoneLoadFactor = map[EffortZone]float64{
	ZoneRecovery:   0.55,
	ZoneEasy:       0.75,
	ZoneSteady:     0.90,
	ZoneMarathon:   1.05,
	ZoneThreshold:  1.30,
	ZoneInterval:   1.60,
	ZoneRepetition: 1.80,
	ZoneWarmup:     0.55,
	ZoneCooldown:   0.55,
}

// WorkoutLoad converts one workout into a TRIMP-like training impulse:
// duration in minutes scaled by a zone intensity multiplier. Long easy
// efforts get bumped to the marathon/long weight since time on feet past
// 10 miles carries marathon-type stress regardless of pace.
func WorkoutLoad(durationMinutes float64, zone EffortZone, distanceMiles float64) float64 {
	if durationMinutes <= 0 {
		return 0
	}

	factor, ok := zoneLoadFactor[zone]
	if !ok {
		factor = zoneLoadFactor[ZoneEasy]
	}

	if distanceMiles >= 10 && factor < zoneLoadFactor[ZoneMarathon] {
		factor = zoneLoadFactor[ZoneMarathon]
	}

	return durationMinutes * factor
}

// BuildDailyLoads derives the gap-free daily load series for a workout
// history: classify each workout against the easy baseline, convert it to
// a load scalar, then fill every calendar day in the covered range.
func BuildDailyLoads(workouts []store.Workout, tun Tunables) []DailyLoad {
	valid := ValidWorkouts(workouts, tun)
	if len(valid) == 0 {
		return nil
	}

	easy := EasyPaceBaseline(valid)

	loads := make([]DailyLoad, 0, len(valid))
	start, end := valid[0].Date, valid[0].Date
	for _, w := range valid {
		zone := ClassifyWorkout(w, easy)
		load := WorkoutLoad(float64(w.DurationSeconds)/60.0, zone, w.DistanceMiles)
		loads = append(loads, DailyLoad{Date: w.Date, Load: load})

		if w.Date.Before(start) {
			start = w.Date
		}
		if w.Date.After(end) {
			end = w.Date
		}
	}

	return FillDailyLoadGaps(loads, start, end)
}

// FillDailyLoadGaps produces exactly one entry per calendar day from start
// through end inclusive: same-day loads summed, rest days zero-filled. The
// EWMA step depends on the series having no skipped or duplicated days.
func FillDailyLoadGaps(loads []DailyLoad, start, end time.Time) []DailyLoad {
	startDay := truncateDay(start)
	endDay := truncateDay(end)
	if endDay.Before(startDay) {
		return nil
	}

	byDay := make(map[string]float64)
	for _, l := range loads {
		byDay[dayKey(l.Date)] += l.Load
	}

	var out []DailyLoad
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		out = append(out, DailyLoad{Date: d, Load: byDay[dayKey(d)]})
	}
	return out
}

// FitnessTrend computes the Banister impulse/response series from a
// gap-free daily load series. Both EWMAs seed at the first day's load to
// avoid the artificial ramp-up a zero seed produces, and TSB uses the
// prior day's values so a workout never improves the form it is run on.
// Output length equals input length.
func FitnessTrend(dailyLoads []DailyLoad, tun Tunables) []FitnessMetric {
	if len(dailyLoads) == 0 {
		return nil
	}

	sorted := make([]DailyLoad, len(dailyLoads))
	copy(sorted, dailyLoads)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	ctlDecay := 2.0 / (tun.CTLDays + 1.0)
	atlDecay := 2.0 / (tun.ATLDays + 1.0)

	ctl := sorted[0].Load
	atl := sorted[0].Load

	metrics := make([]FitnessMetric, len(sorted))
	for i, d := range sorted {
		tsb := ctl - atl // prior-day values

		ctl += ctlDecay * (d.Load - ctl)
		atl += atlDecay * (d.Load - atl)

		metrics[i] = FitnessMetric{
			Date: d.Date,
			CTL:  ctl,
			ATL:  atl,
			TSB:  tsb,
		}
	}

	return metrics
}

// CurrentFitness returns the most recent CTL/ATL/TSB values
func CurrentFitness(dailyLoads []DailyLoad, tun Tunables) FitnessMetric {
	metrics := FitnessTrend(dailyLoads, tun)
	if len(metrics) == 0 {
		return FitnessMetric{}
	}
	return metrics[len(metrics)-1]
}

// FormDescription returns a human-readable description of TSB
func FormDescription(tsb float64) string {
	switch {
	case tsb > 25:
		return "Very fresh (possibly detrained)"
	case tsb > 10:
		return "Fresh and ready to race"
	case tsb > 0:
		return "Neutral - good for training"
	case tsb > -10:
		return "Slightly fatigued"
	case tsb > -25:
		return "Tired but building fitness"
	default:
		return "Very fatigued - rest needed"
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
