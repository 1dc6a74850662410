package analysis

import (
	"math"
	"sort"
	"time"

	"runcoach/internal/store"
)

// ThresholdMethod tags how a threshold estimate was obtained. The
// insufficient-data tag is an explicit result variant, never a sentinel
// pace, so callers cannot mistake "no signal" for "zero pace".
type ThresholdMethod string

const (
	MethodInsufficientData ThresholdMethod = "insufficient_data"
	MethodDeflection       ThresholdMethod = "deflection"
	MethodSustainability   ThresholdMethod = "sustainability"
	MethodCombined         ThresholdMethod = "combined"
)

// AgreementTier classifies how closely the detected threshold matches the
// VDOT-implied expectation
type AgreementTier string

const (
	AgreementStrong   AgreementTier = "strong"
	AgreementModerate AgreementTier = "moderate"
	AgreementWeak     AgreementTier = "weak"
)

// ThresholdEffort is a workout judged plausibly representative of
// threshold intensity, with a composite quality score
type ThresholdEffort struct {
	PaceSecPerMile  float64
	DurationSeconds int
	Score           float64 // 0..1
	Date            time.Time
}

// PaceHrPoint is one pace/heart-rate observation used for deflection
// analysis. Always derived from a workout carrying both fields.
type PaceHrPoint struct {
	PaceSecPerMile float64
	HeartRate      float64
	Date           time.Time
}

// ThresholdEvidence is the inspectable basis of an estimate
type ThresholdEvidence struct {
	WorkoutsAnalyzed int
	WorkoutsWithHR   int
	From             time.Time
	To               time.Time
	Efforts          []ThresholdEffort // ranked, best first
}

// VdotValidation cross-checks the estimate against an externally supplied
// VDOT. DiffSecPerMile is signed: positive means the estimate is slower
// than the VDOT expectation.
type VdotValidation struct {
	ExpectedPaceSecPerMile float64
	DiffSecPerMile         float64
	Agreement              AgreementTier
}

// ThresholdEstimate is the reconciled threshold-pace result
type ThresholdEstimate struct {
	PaceSecPerMile float64
	Confidence     float64 // 0..1
	Method         ThresholdMethod
	Evidence       ThresholdEvidence
	Vdot           *VdotValidation
}

// DetectThreshold infers the runner's lactate/ventilatory threshold pace
// from ordinary training history. Two independent statistical signals -
// the heart-rate deflection point and the sustainability boundary from
// within-workout drift - are reconciled with the ranked threshold-effort
// evidence into one confidence-scored estimate. knownVDOT, when non-nil,
// adds a cross-validation against the VDOT-implied threshold pace.
func DetectThreshold(workouts []store.Workout, tun Tunables, knownVDOT *float64) ThresholdEstimate {
	valid := ValidWorkouts(workouts, tun)
	recent := recentWorkouts(valid, tun)

	evidence := ThresholdEvidence{WorkoutsAnalyzed: len(recent)}
	for _, w := range recent {
		if w.AvgHeartRate != nil && *w.AvgHeartRate > 0 {
			evidence.WorkoutsWithHR++
		}
		if evidence.From.IsZero() || w.Date.Before(evidence.From) {
			evidence.From = w.Date
		}
		if w.Date.After(evidence.To) {
			evidence.To = w.Date
		}
	}

	if len(recent) < tun.MinValidWorkouts {
		return ThresholdEstimate{Method: MethodInsufficientData, Evidence: evidence}
	}

	efforts := ThresholdCandidates(recent, tun)
	evidence.Efforts = efforts

	deflectionPace, haveDeflection := DeflectionPoint(PaceHrPoints(recent), tun)
	boundaryPace, haveBoundary := SustainabilityBoundary(recent, tun)

	effortPace, haveEfforts := weightedEffortPace(efforts)

	var pace float64
	var method ThresholdMethod
	switch {
	case haveDeflection && haveBoundary:
		pace = (deflectionPace + boundaryPace) / 2
		if haveEfforts {
			pace = 0.8*pace + 0.2*effortPace
		}
		method = MethodCombined
	case haveDeflection:
		pace = deflectionPace
		if haveEfforts {
			pace = 0.7*pace + 0.3*effortPace
		}
		method = MethodDeflection
	case haveBoundary:
		pace = boundaryPace
		if haveEfforts {
			pace = 0.7*pace + 0.3*effortPace
		}
		method = MethodSustainability
	default:
		// Candidate efforts alone are not a pace estimate; without at
		// least one statistical signal there is nothing to report.
		return ThresholdEstimate{Method: MethodInsufficientData, Evidence: evidence}
	}

	confidence := combineConfidence(deflectionPace, haveDeflection, boundaryPace, haveBoundary, effortPace, len(efforts), pace)

	estimate := ThresholdEstimate{
		PaceSecPerMile: pace,
		Confidence:     confidence,
		Method:         method,
		Evidence:       evidence,
	}

	if knownVDOT != nil && *knownVDOT > 0 {
		v := ValidateAgainstVDOT(pace, *knownVDOT)
		estimate.Vdot = &v
	}

	return estimate
}

// combineConfidence scores an estimate from the number of independent
// agreeing signals and the volume of supporting evidence. More qualifying
// threshold-quality workouts never lowers the score.
func combineConfidence(dPace float64, haveD bool, sPace float64, haveS bool, effortPace float64, effortCount int, finalPace float64) float64 {
	const signalAgreementBand = 30.0 // seconds per mile

	var confidence float64
	switch {
	case haveD && haveS:
		if math.Abs(dPace-sPace) <= signalAgreementBand {
			confidence = 0.65
		} else {
			confidence = 0.50
		}
	case haveD || haveS:
		confidence = 0.40
	}

	if effortCount > 0 && math.Abs(effortPace-finalPace) <= signalAgreementBand {
		confidence += 0.10
	}

	confidence += math.Min(0.15, 0.03*float64(effortCount))

	return math.Min(confidence, 0.95)
}

// weightedEffortPace is the score-weighted mean pace of the candidate
// efforts
func weightedEffortPace(efforts []ThresholdEffort) (float64, bool) {
	var sum, weight float64
	for _, e := range efforts {
		sum += e.PaceSecPerMile * e.Score
		weight += e.Score
	}
	if weight <= 0 {
		return 0, false
	}
	return sum / weight, true
}

// ThresholdCandidates scores every workout as a potential threshold-quality
// effort on four independent criteria - duration fit, pacing steadiness,
// terrain flatness, relative intensity - and returns the qualifiers sorted
// by descending composite score. Failing any hard criterion excludes the
// workout outright.
func ThresholdCandidates(workouts []store.Workout, tun Tunables) []ThresholdEffort {
	easy := EasyPaceBaseline(workouts)

	var efforts []ThresholdEffort
	for _, w := range workouts {
		score, ok := scoreCandidate(w, easy, tun)
		if !ok {
			continue
		}
		efforts = append(efforts, ThresholdEffort{
			PaceSecPerMile:  workoutPace(w),
			DurationSeconds: w.DurationSeconds,
			Score:           score,
			Date:            w.Date,
		})
	}

	sort.SliceStable(efforts, func(i, j int) bool {
		return efforts[i].Score > efforts[j].Score
	})
	return efforts
}

func scoreCandidate(w store.Workout, easyPace float64, tun Tunables) (float64, bool) {
	dur := float64(w.DurationSeconds)
	if dur < tun.DurationHardMinSec || dur > tun.DurationHardMaxSec {
		return 0, false
	}
	durScore := durationFit(dur, tun)

	steadyScore := 0.5 // neutral when the workout carries no splits
	if paces := splitPaces(w); len(paces) >= 2 {
		cov := CoV(paces)
		if cov > tun.SplitCoVCutoff {
			return 0, false // interval-like pacing, not a steady effort
		}
		steadyScore = 1 - cov/tun.SplitCoVCutoff
	}

	terrainScore := 0.7 // neutral when elevation was not recorded
	if w.ElevationGainFeet != nil && w.DistanceMiles > 0 {
		gainPerMile := *w.ElevationGainFeet / w.DistanceMiles
		if gainPerMile > tun.HillinessCutoffFeetPerMile {
			return 0, false // grade distorts the pace/effort relationship
		}
		terrainScore = 1 - gainPerMile/tun.HillinessCutoffFeetPerMile
	}

	intensityScore, ok := intensityFit(workoutPace(w), easyPace, tun)
	if !ok {
		return 0, false
	}

	composite := (durScore + steadyScore + terrainScore + intensityScore) / 4
	return clamp01(composite), true
}

// durationFit peaks inside the 25-35 minute window and tapers linearly
// toward the hard envelope edges
func durationFit(dur float64, tun Tunables) float64 {
	const edgeWeight = 0.4

	switch {
	case dur >= tun.DurationPeakMinSec && dur <= tun.DurationPeakMaxSec:
		return 1.0
	case dur < tun.DurationPeakMinSec:
		frac := (dur - tun.DurationHardMinSec) / (tun.DurationPeakMinSec - tun.DurationHardMinSec)
		return edgeWeight + (1-edgeWeight)*frac
	default:
		frac := (tun.DurationHardMaxSec - dur) / (tun.DurationHardMaxSec - tun.DurationPeakMaxSec)
		return edgeWeight + (1-edgeWeight)*frac
	}
}

// intensityFit checks the pace sits meaningfully faster than the easy
// baseline without being implausibly fast, peaking near a 12% margin -
// about where a one-hour race effort lands relative to easy running
func intensityFit(pace, easyPace float64, tun Tunables) (float64, bool) {
	if pace <= 0 || easyPace <= 0 {
		return 0, false
	}

	margin := (easyPace - pace) / easyPace
	if margin < tun.MinIntensityMargin || margin > tun.MaxIntensityMargin {
		return 0, false
	}

	const peakMargin = 0.12
	return clamp01(1 - math.Abs(margin-peakMargin)/peakMargin), true
}

// PaceHrPoints builds one observation per workout carrying both a valid
// pace and a positive heart rate, sorted by increasing implied speed.
// Workouts without heart rate are skipped here only.
func PaceHrPoints(workouts []store.Workout) []PaceHrPoint {
	var points []PaceHrPoint
	for _, w := range workouts {
		pace := workoutPace(w)
		if pace <= 0 || w.AvgHeartRate == nil || *w.AvgHeartRate <= 0 {
			continue
		}
		points = append(points, PaceHrPoint{
			PaceSecPerMile: pace,
			HeartRate:      *w.AvgHeartRate,
			Date:           w.Date,
		})
	}

	// Slower pace first = increasing speed
	sort.Slice(points, func(i, j int) bool {
		return points[i].PaceSecPerMile > points[j].PaceSecPerMile
	})
	return points
}

// DeflectionPoint finds the pace where the heart-rate response to speed
// steepens. Below threshold HR rises near-linearly with pace; above it the
// local slope exceeds the easy-zone baseline slope by more than the
// sensitivity margin. Returns no estimate with fewer than the minimum
// number of points, and reports nothing on a perfectly linear relationship.
func DeflectionPoint(points []PaceHrPoint, tun Tunables) (float64, bool) {
	minPoints := tun.DeflectionMinPoints
	if minPoints < 4 {
		minPoints = 4
	}
	window := tun.DeflectionWindow
	if window < 2 {
		window = 2
	}
	if len(points) < minPoints || len(points) < window+1 {
		return 0, false
	}

	speeds := make([]float64, len(points))
	rates := make([]float64, len(points))
	for i, p := range points {
		speeds[i] = 3600.0 / p.PaceSecPerMile // mph
		rates[i] = p.HeartRate
	}

	baseline, ok := slope(speeds[:window+1], rates[:window+1])
	if !ok {
		return 0, false
	}
	if baseline < 1 {
		baseline = 1 // HR barely responding at easy speeds; keep the margin meaningful
	}

	cutoff := baseline*tun.DeflectionSlopeRatio + tun.DeflectionSlopeEps

	for start := 1; start+window < len(points); start++ {
		local, ok := slope(speeds[start:start+window+1], rates[start:start+window+1])
		if !ok {
			continue
		}
		if local > cutoff {
			// Midpoint pace of the window where the response steepened
			mid := start + window/2
			return points[mid].PaceSecPerMile, true
		}
	}

	return 0, false
}

// slope is the least-squares slope of y on x; ok is false when x carries
// no spread
func slope(x, y []float64) (float64, bool) {
	n := float64(len(x))
	if n < 2 {
		return 0, false
	}

	meanX := Mean(x)
	meanY := Mean(y)

	var num, den float64
	for i := range x {
		dx := x[i] - meanX
		num += dx * (y[i] - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

// SustainabilityBoundary derives an independent threshold signal from
// within-workout heart-rate drift. Efforts drifting below the sustainable
// cutoff were run at a sustainable pace, those between the cutoff and the
// sanity ceiling were not, and anything beyond the ceiling is discarded as
// unreliably erratic. The boundary is the midpoint between the fastest
// sustainable and slowest unsustainable pace. Returns no estimate when the
// log lacks drift-classifiable efforts on both sides of the boundary.
func SustainabilityBoundary(workouts []store.Workout, tun Tunables) (float64, bool) {
	var sustainable, unsustainable []float64

	for _, w := range workouts {
		drift, ok := heartRateDrift(w, tun)
		if !ok {
			continue
		}

		pace := workoutPace(w)
		switch {
		case drift < tun.DriftSustainablePct:
			sustainable = append(sustainable, pace)
		case drift < tun.DriftCeilingPct:
			unsustainable = append(unsustainable, pace)
		}
		// Beyond the ceiling: discarded, the pacing was too erratic to read
	}

	if len(sustainable) == 0 || len(unsustainable) == 0 {
		return 0, false
	}

	fastestSustainable := sustainable[0]
	for _, p := range sustainable {
		if p < fastestSustainable {
			fastestSustainable = p
		}
	}
	slowestUnsustainable := unsustainable[0]
	for _, p := range unsustainable {
		if p > slowestUnsustainable {
			slowestUnsustainable = p
		}
	}

	return (fastestSustainable + slowestUnsustainable) / 2, true
}

// heartRateDrift measures the percent rise in heart rate from the early
// splits to the late splits of one workout. ok is false when the workout
// lacks enough splits with heart rate or its pacing is too uneven for
// drift to mean anything.
func heartRateDrift(w store.Workout, tun Tunables) (float64, bool) {
	if len(w.Splits) < tun.MinSplitsForDrift {
		return 0, false
	}

	paces := splitPaces(w)
	if len(paces) >= 2 && CoV(paces) > tun.SplitCoVCutoff {
		return 0, false
	}

	var rates []float64
	for _, s := range w.Splits {
		if s.HeartRate != nil && *s.HeartRate > 0 {
			rates = append(rates, *s.HeartRate)
		}
	}
	if len(rates) < tun.MinSplitsForDrift {
		return 0, false
	}

	third := len(rates) / 3
	if third == 0 {
		return 0, false
	}

	early := Mean(rates[:third])
	late := Mean(rates[len(rates)-third:])
	if early <= 0 {
		return 0, false
	}

	return (late - early) / early * 100, true
}

// ValidateAgainstVDOT compares a detected threshold pace with the pace a
// known VDOT implies
func ValidateAgainstVDOT(paceSecPerMile, vdot float64) VdotValidation {
	expected := PaceZones(vdot).Threshold
	diff := paceSecPerMile - expected

	var tier AgreementTier
	switch {
	case math.Abs(diff) <= 10:
		tier = AgreementStrong
	case math.Abs(diff) <= 20:
		tier = AgreementModerate
	default:
		tier = AgreementWeak
	}

	return VdotValidation{
		ExpectedPaceSecPerMile: expected,
		DiffSecPerMile:         diff,
		Agreement:              tier,
	}
}

func splitPaces(w store.Workout) []float64 {
	var paces []float64
	for _, s := range w.Splits {
		if validNumber(s.PaceSecPerMile) && s.PaceSecPerMile > 0 {
			paces = append(paces, s.PaceSecPerMile)
		}
	}
	return paces
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
