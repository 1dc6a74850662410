package analysis

// Tunables holds every empirically tuned constant used by the estimators.
// A value is built once (usually from DefaultTunables plus config overrides)
// and passed at each call boundary; nothing in this package keeps state
// between calls, so the same Tunables can be shared across goroutines.
type Tunables struct {
	// Plausible pace band for a recorded run (seconds per mile).
	// Records outside the band are excluded, never mutated.
	PaceFloorSecPerMile float64
	PaceCeilSecPerMile  float64

	// Threshold detection input filter
	MinDistanceMiles float64
	LookbackDays     int
	MinValidWorkouts int

	// Duration-fit window for threshold candidates (seconds).
	// Peak weight inside [PeakMin, PeakMax]; excluded outside [HardMin, HardMax].
	DurationHardMinSec float64
	DurationPeakMinSec float64
	DurationPeakMaxSec float64
	DurationHardMaxSec float64

	// Pacing steadiness: coefficient of variation of per-split pace above
	// this cutoff reads as interval work, not a steady effort
	SplitCoVCutoff float64

	// Terrain: elevation gain per mile above this distorts the pace/effort
	// relationship
	HillinessCutoffFeetPerMile float64

	// Relative intensity vs the easy-run baseline, as a fraction of the
	// baseline pace. Below Min the run is just an easy run; above Max it
	// reads as a VO2max/interval effort.
	MinIntensityMargin float64
	MaxIntensityMargin float64

	// Deflection-point detection
	DeflectionMinPoints  int
	DeflectionWindow     int
	DeflectionSlopeRatio float64
	DeflectionSlopeEps   float64 // bpm per mph, absolute margin on top of the ratio

	// Heart-rate drift classification (percent early-to-late change)
	DriftSustainablePct float64
	DriftCeilingPct     float64
	MinSplitsForDrift   int

	// EWMA time constants for the Banister impulse/response model (days)
	CTLDays float64
	ATLDays float64
}

// DefaultTunables returns the tuned defaults. The cutoffs were calibrated
// against real training logs, not derived from first principles; expect to
// re-tune them as more data distributions show up.
func DefaultTunables() Tunables {
	return Tunables{
		PaceFloorSecPerMile: 180,
		PaceCeilSecPerMile:  900,

		MinDistanceMiles: 1.5,
		LookbackDays:     180,
		MinValidWorkouts: 3,

		DurationHardMinSec: 20 * 60,
		DurationPeakMinSec: 25 * 60,
		DurationPeakMaxSec: 35 * 60,
		DurationHardMaxSec: 40 * 60,

		SplitCoVCutoff:             0.10,
		HillinessCutoffFeetPerMile: 60,

		MinIntensityMargin: 0.04,
		MaxIntensityMargin: 0.22,

		DeflectionMinPoints:  4,
		DeflectionWindow:     3,
		DeflectionSlopeRatio: 1.5,
		DeflectionSlopeEps:   2.0,

		DriftSustainablePct: 5.0,
		DriftCeilingPct:     8.0,
		MinSplitsForDrift:   4,

		CTLDays: 42,
		ATLDays: 7,
	}
}
