package service

import (
	"time"

	"runcoach/internal/analysis"
	"runcoach/internal/store"
)

// ThresholdData contains all data needed for the threshold screen
type ThresholdData struct {
	Estimate analysis.ThresholdEstimate

	// Formatted for display
	PaceDisplay   string // "7:35/mi", "-" when insufficient data
	MethodDisplay string // "Combined", "Deflection", ...
	HasEstimate   bool

	// Training paces implied by the estimate
	TempoPace    string
	IntervalHint string
}

// GetThresholdData runs threshold detection over the workout history and
// caches the result. The known VDOT from config, when set, is passed
// through for cross-validation.
func (q *QueryService) GetThresholdData() (*ThresholdData, error) {
	history, err := q.analysisHistory()
	if err != nil {
		return nil, err
	}

	var knownVDOT *float64
	if q.cfg.Athlete.KnownVDOT > 0 {
		v := q.cfg.Athlete.KnownVDOT
		knownVDOT = &v
	} else if v, ok := q.bestPerformanceVDOT(history); ok {
		knownVDOT = &v
	}

	est := analysis.DetectThreshold(history, q.tun, knownVDOT)

	data := &ThresholdData{
		Estimate:      est,
		MethodDisplay: methodLabel(est.Method),
		HasEstimate:   est.Method != analysis.MethodInsufficientData,
		PaceDisplay:   "-",
	}

	if data.HasEstimate {
		data.PaceDisplay = formatPace(est.PaceSecPerMile)
		data.TempoPace = formatPace(est.PaceSecPerMile)
		// Cruise intervals run slightly faster than continuous tempo
		data.IntervalHint = formatPace(est.PaceSecPerMile - 5)

		_ = q.store.SaveThresholdEstimate(&store.ThresholdRow{
			PaceSecPerMile: est.PaceSecPerMile,
			Confidence:     est.Confidence,
			Method:         string(est.Method),
			EffortCount:    len(est.Evidence.Efforts),
			ComputedAt:     time.Now(),
		})
	}

	return data, nil
}

func methodLabel(m analysis.ThresholdMethod) string {
	switch m {
	case analysis.MethodCombined:
		return "Combined (deflection + sustainability)"
	case analysis.MethodDeflection:
		return "HR deflection point"
	case analysis.MethodSustainability:
		return "Sustainability boundary"
	default:
		return "Insufficient data"
	}
}
