package service

import (
	"time"

	"runcoach/internal/analysis"
	"runcoach/internal/store"
)

// PredictionDisplay represents a formatted prediction for display
type PredictionDisplay struct {
	TargetLabel   string // "5K", "10K", "Half Marathon", "Marathon"
	PredictedTime string // formatted duration "M:SS" or "H:MM:SS"
	PredictedPace string // formatted pace "M:SS/mi"
	RangeLow      string // lower bound of the confidence band
	RangeHigh     string // upper bound
}

// PredictionsData contains all data needed for the predictions screen
type PredictionsData struct {
	Predictions    []PredictionDisplay
	VDOT           float64
	VDOTLabel      string // "Advanced Recreational", "Competitive", etc.
	Quality        string // "High", "Medium", "Low"
	SourceDate     string // when the source performance was run
	SourceDistance string
	SourceTime     string
	HasPredictions bool
}

// raceTargets are the distances predicted for display
var raceTargets = []struct {
	label  string
	meters float64
}{
	{"5K", analysis.Distance5K},
	{"10K", analysis.Distance10K},
	{"Half Marathon", analysis.DistanceHalfMara},
	{"Marathon", analysis.DistanceMarathon},
}

// GetRacePredictions estimates current VDOT from the best performance in
// the log and projects equivalent race times with a data-quality band
func (q *QueryService) GetRacePredictions() (*PredictionsData, error) {
	history, err := q.analysisHistory()
	if err != nil {
		return nil, err
	}

	data := &PredictionsData{}

	source, vdot, ok := q.bestPerformance(history)
	if !ok {
		return data, nil
	}

	tier := predictionTier(source.Date, len(analysis.ValidWorkouts(history, q.tun)))

	data.HasPredictions = true
	data.VDOT = vdot
	data.VDOTLabel = analysis.VDOTLabel(vdot)
	data.Quality = capitalizeFirst(tier.String())
	data.SourceDate = source.Date.Format("Jan 02, 2006")
	data.SourceDistance = formatMiles(source.DistanceMiles)
	data.SourceTime = formatDuration(source.DurationSeconds)

	for _, target := range raceTargets {
		seconds := analysis.RaceTimeFromVDOT(vdot, target.meters)
		if seconds <= 0 {
			continue
		}
		low, high := analysis.PredictionInterval(seconds, tier)
		miles := target.meters / MetersPerMile

		data.Predictions = append(data.Predictions, PredictionDisplay{
			TargetLabel:   target.label,
			PredictedTime: formatDuration(int(seconds + 0.5)),
			PredictedPace: formatPace(seconds / miles),
			RangeLow:      formatDuration(int(low + 0.5)),
			RangeHigh:     formatDuration(int(high + 0.5)),
		})
	}

	return data, nil
}

// bestPerformance picks the workout implying the highest VDOT. Short jogs
// carry no race information, so only runs of at least a mile count.
func (q *QueryService) bestPerformance(history []store.Workout) (store.Workout, float64, bool) {
	var best store.Workout
	var bestVDOT float64

	for _, w := range analysis.ValidWorkouts(history, q.tun) {
		if w.DistanceMiles < 1 {
			continue
		}
		vdot := analysis.VDOTFromPerformance(w.DistanceMiles*MetersPerMile, float64(w.DurationSeconds))
		if vdot > bestVDOT {
			bestVDOT = vdot
			best = w
		}
	}

	return best, bestVDOT, bestVDOT > 0
}

// bestPerformanceVDOT is the cross-validation source when no known VDOT
// is configured
func (q *QueryService) bestPerformanceVDOT(history []store.Workout) (float64, bool) {
	_, vdot, ok := q.bestPerformance(history)
	return vdot, ok
}

// predictionTier grades prediction quality: recent source performances
// backed by a deep log predict tighter than stale or thin ones
func predictionTier(sourceDate time.Time, workoutCount int) analysis.DataQualityTier {
	age := time.Since(sourceDate)
	switch {
	case age <= HighQualitySourceDays*24*time.Hour && workoutCount >= HighQualityMinWorkouts:
		return analysis.TierHigh
	case age <= MedQualitySourceDays*24*time.Hour && workoutCount >= MedQualityMinWorkouts:
		return analysis.TierMedium
	default:
		return analysis.TierLow
	}
}
