package analysis

import "math"

// Standard race distances in meters
const (
	Distance400m     = 400.0
	Distance1K       = 1000.0
	Distance1Mile    = 1609.34
	Distance5K       = 5000.0
	Distance10K      = 10000.0
	DistanceHalfMara = 21097.5
	DistanceMarathon = 42195.0
)

const metersPerMile = 1609.34

const (
	vdotTolerance    = 0.1
	timeToleranceMin = 0.005 // ~0.3 seconds
	solverMaxIter    = 10
)

// percentVO2Max is the Daniels-Gilbert fraction of VO2max a runner can
// sustain for a race lasting t minutes
func percentVO2Max(minutes float64) float64 {
	return 0.8 +
		0.1894393*math.Exp(-0.012778*minutes) +
		0.2989558*math.Exp(-0.1932605*minutes)
}

// vo2Cost is the Daniels-Gilbert oxygen cost (ml/kg/min) of running at
// velocity v meters per minute
func vo2Cost(v float64) float64 {
	return -4.60 + 0.182258*v + 0.000104*v*v
}

// velocityForVO2 inverts vo2Cost: the velocity (m/min) whose oxygen cost
// equals the given vo2. Positive root of the quadratic.
func velocityForVO2(vo2 float64) float64 {
	const a, b = 0.000104, 0.182258
	c := -4.60 - vo2
	disc := b*b - 4*a*c
	if disc <= 0 {
		return 0
	}
	return (-b + math.Sqrt(disc)) / (2 * a)
}

// VDOTFromPerformance derives a VDOT fitness index from a race performance:
// the oxygen cost of the race velocity divided by the fraction of VO2max
// sustainable for the race duration. Solved as a fixed-point iteration to
// within 0.1 VDOT units, valid across roughly 400m-marathon and 60s-5h.
func VDOTFromPerformance(distanceMeters, timeSeconds float64) float64 {
	if distanceMeters <= 0 || timeSeconds <= 0 {
		return 0
	}
	if !validNumber(distanceMeters) || !validNumber(timeSeconds) {
		return 0
	}

	minutes := timeSeconds / 60.0
	velocity := distanceMeters / minutes

	vdot := fixedPoint(func(float64) float64 {
		return vo2Cost(velocity) / percentVO2Max(minutes)
	}, 50, vdotTolerance, solverMaxIter)

	if vdot <= 0 {
		return 0
	}
	return vdot
}

// RaceTimeFromVDOT predicts the finish time in seconds for a target
// distance: the inverse solve of VDOTFromPerformance via the same bounded
// fixed-point scheme. Finding the duration is circular - the sustainable
// %VO2max depends on the duration being solved for - so iterate
// t -> distance / velocity(vdot * %VO2max(t)) until t stabilizes.
func RaceTimeFromVDOT(vdot, distanceMeters float64) float64 {
	if vdot <= 0 || distanceMeters <= 0 {
		return 0
	}

	// Initial guess: the duration at full VO2max velocity, always an
	// underestimate the iteration then relaxes upward
	v0 := velocityForVO2(vdot)
	if v0 <= 0 {
		return 0
	}
	t0 := distanceMeters / v0

	minutes := fixedPoint(func(t float64) float64 {
		v := velocityForVO2(vdot * percentVO2Max(t))
		if v <= 0 {
			return t
		}
		return distanceMeters / v
	}, t0, timeToleranceMin, solverMaxIter)

	return minutes * 60.0
}

// TrainingPaces holds the per-zone training paces in seconds per mile
type TrainingPaces struct {
	Easy       float64
	Marathon   float64
	Threshold  float64
	Interval   float64
	Repetition float64
}

// Fixed %VO2max offsets per training zone (Daniels)
const (
	easyFraction       = 0.70
	marathonFraction   = 0.84
	thresholdFraction  = 0.88
	intervalFraction   = 0.985
	repetitionFraction = 1.07
)

// PaceZones derives the training pace bands implied by a VDOT value
func PaceZones(vdot float64) TrainingPaces {
	return TrainingPaces{
		Easy:       paceAtFraction(vdot, easyFraction),
		Marathon:   paceAtFraction(vdot, marathonFraction),
		Threshold:  paceAtFraction(vdot, thresholdFraction),
		Interval:   paceAtFraction(vdot, intervalFraction),
		Repetition: paceAtFraction(vdot, repetitionFraction),
	}
}

// paceAtFraction returns seconds per mile at the given fraction of VDOT
func paceAtFraction(vdot, fraction float64) float64 {
	if vdot <= 0 {
		return 0
	}
	v := velocityForVO2(vdot * fraction) // meters per minute
	if v <= 0 {
		return 0
	}
	return metersPerMile / v * 60.0
}

// DataQualityTier grades how much history backs a prediction
type DataQualityTier int

const (
	TierHigh DataQualityTier = iota
	TierMedium
	TierLow
)

// String returns the tier label shown to users
func (t DataQualityTier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	default:
		return "low"
	}
}

// intervalPct communicates estimator uncertainty, not measurement noise:
// the band only widens as the backing data gets thinner
var intervalPct = map[DataQualityTier]float64{
	TierHigh:   0.02,
	TierMedium: 0.04,
	TierLow:    0.07,
}

// PredictionInterval widens a predicted time into a confidence band
// according to the data-quality tier
func PredictionInterval(predictedSeconds float64, tier DataQualityTier) (low, high float64) {
	pct, ok := intervalPct[tier]
	if !ok {
		pct = intervalPct[TierLow]
	}
	return predictedSeconds * (1 - pct), predictedSeconds * (1 + pct)
}

// VDOTLabel returns a human-readable fitness level for a VDOT value
func VDOTLabel(vdot float64) string {
	switch {
	case vdot >= 75:
		return "Elite"
	case vdot >= 65:
		return "Highly Competitive"
	case vdot >= 55:
		return "Competitive"
	case vdot >= 45:
		return "Advanced Recreational"
	case vdot >= 38:
		return "Intermediate"
	case vdot >= 30:
		return "Beginner"
	default:
		return "Novice"
	}
}
