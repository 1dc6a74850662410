package analysis

import (
	"math"
	"testing"

	"runcoach/internal/store"
)

// steadySplits builds n splits at a fixed pace with heart rate ramping
// linearly from startHR to endHR
func steadySplits(n int, pace, startHR, endHR float64) []store.Split {
	splits := make([]store.Split, n)
	for i := range splits {
		frac := float64(i) / float64(n-1)
		hr := startHR + frac*(endHR-startHR)
		splits[i] = store.Split{
			SplitNumber:     i + 1,
			DistanceMiles:   1,
			DurationSeconds: int(pace),
			PaceSecPerMile:  pace,
			HeartRate:       floatPtr(hr),
		}
	}
	return splits
}

func hrWorkout(daysAgo int, miles, pace, avgHR float64, splits []store.Split) store.Workout {
	w := testWorkout(daysAgo, miles, int(pace*miles))
	w.AvgHeartRate = floatPtr(avgHR)
	w.Splits = splits
	return w
}

func TestThresholdCandidates_SteadyTempoQualifies(t *testing.T) {
	workouts := []store.Workout{
		// Easy cluster establishing the baseline; too long to be candidates
		testWorkout(2, 5, 5*540),
		testWorkout(5, 5, 5*538),
		testWorkout(8, 5, 5*542),
		testWorkout(11, 5, 5*544),
		// 32-minute steady effort ~11% under easy pace
		testWorkout(1, 4, 4*480),
	}

	efforts := ThresholdCandidates(workouts, DefaultTunables())
	if len(efforts) != 1 {
		t.Fatalf("expected exactly the tempo to qualify, got %d efforts", len(efforts))
	}
	if efforts[0].Score < 0.3 {
		t.Errorf("steady 32-min tempo scored %.2f, expected > 0.3", efforts[0].Score)
	}
	if math.Abs(efforts[0].PaceSecPerMile-480) > 0.5 {
		t.Errorf("effort pace = %.1f, expected 480", efforts[0].PaceSecPerMile)
	}
}

func TestThresholdCandidates_DurationWindow(t *testing.T) {
	base := []store.Workout{
		testWorkout(2, 5, 5*540),
		testWorkout(5, 5, 5*538),
		testWorkout(8, 5, 5*542),
		testWorkout(11, 5, 5*544),
	}

	// 15 minutes at tempo pace: too short to say anything about threshold
	short := append(append([]store.Workout{}, base...), testWorkout(1, 1.875, int(1.875*480)))
	if efforts := ThresholdCandidates(short, DefaultTunables()); len(efforts) != 0 {
		t.Errorf("15-minute effort should be excluded, got %d efforts", len(efforts))
	}

	// 30 minutes sits in the peak window, 20 minutes only at the edge
	mid := append(append([]store.Workout{}, base...), testWorkout(1, 3.75, int(3.75*480)))
	edge := append(append([]store.Workout{}, base...), testWorkout(1, 2.5, int(2.5*480)))

	midEfforts := ThresholdCandidates(mid, DefaultTunables())
	edgeEfforts := ThresholdCandidates(edge, DefaultTunables())
	if len(midEfforts) != 1 || len(edgeEfforts) != 1 {
		t.Fatalf("expected 1 effort each, got %d and %d", len(midEfforts), len(edgeEfforts))
	}
	if midEfforts[0].Score <= edgeEfforts[0].Score {
		t.Errorf("30-min effort (%.2f) should outscore 20-min effort (%.2f)", midEfforts[0].Score, edgeEfforts[0].Score)
	}
}

func TestThresholdCandidates_IntervalPacingExcluded(t *testing.T) {
	intervals := testWorkout(1, 4, 4*480)
	intervals.Splits = []store.Split{
		{SplitNumber: 1, DistanceMiles: 1, DurationSeconds: 420, PaceSecPerMile: 420},
		{SplitNumber: 2, DistanceMiles: 1, DurationSeconds: 540, PaceSecPerMile: 540},
		{SplitNumber: 3, DistanceMiles: 1, DurationSeconds: 420, PaceSecPerMile: 420},
		{SplitNumber: 4, DistanceMiles: 1, DurationSeconds: 540, PaceSecPerMile: 540},
	}

	workouts := []store.Workout{
		testWorkout(2, 5, 5*540),
		testWorkout(5, 5, 5*538),
		testWorkout(8, 5, 5*542),
		intervals,
	}

	for _, e := range ThresholdCandidates(workouts, DefaultTunables()) {
		if math.Abs(e.PaceSecPerMile-480) < 1 {
			t.Error("interval session qualified as a steady threshold effort")
		}
	}
}

func TestThresholdCandidates_HillyExcluded(t *testing.T) {
	hilly := testWorkout(1, 4, 4*480)
	hilly.ElevationGainFeet = floatPtr(400) // 100 ft/mi

	workouts := []store.Workout{
		testWorkout(2, 5, 5*540),
		testWorkout(5, 5, 5*538),
		testWorkout(8, 5, 5*542),
		hilly,
	}

	if efforts := ThresholdCandidates(workouts, DefaultTunables()); len(efforts) != 0 {
		t.Errorf("hilly effort should be excluded, got %d efforts", len(efforts))
	}
}

func TestPaceHrPoints_SortedBySpeed(t *testing.T) {
	workouts := []store.Workout{
		hrWorkout(1, 4, 470, 165, nil),
		hrWorkout(3, 5, 540, 138, nil),
		testWorkout(5, 5, 5*530), // no heart rate, skipped
		hrWorkout(7, 3, 440, 172, nil),
	}

	points := PaceHrPoints(workouts)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].PaceSecPerMile >= points[i-1].PaceSecPerMile {
			t.Errorf("points not sorted by increasing speed at index %d", i)
		}
	}
}

func TestDeflectionPoint_FindsSlopeBreak(t *testing.T) {
	// HR rises ~10 bpm/mph through the easy speeds, then ~40 bpm/mph
	// past 7.2 mph. The detector should flag a pace near the break.
	speeds := []float64{6.0, 6.4, 6.8, 7.2, 7.6, 8.0}
	rates := []float64{120, 124, 128, 132, 148, 164}

	var points []PaceHrPoint
	for i, s := range speeds {
		points = append(points, PaceHrPoint{PaceSecPerMile: 3600 / s, HeartRate: rates[i]})
	}

	pace, ok := DeflectionPoint(points, DefaultTunables())
	if !ok {
		t.Fatal("expected a deflection point in engineered data")
	}
	if pace < 440 || pace > 540 {
		t.Errorf("deflection pace = %.0f s/mi, expected near the 7.2 mph break (440-540)", pace)
	}
}

func TestDeflectionPoint_LinearDataGivesNothing(t *testing.T) {
	var points []PaceHrPoint
	for i := 0; i < 8; i++ {
		speed := 6.0 + 0.3*float64(i)
		points = append(points, PaceHrPoint{PaceSecPerMile: 3600 / speed, HeartRate: 60 + 10*speed})
	}

	if pace, ok := DeflectionPoint(points, DefaultTunables()); ok {
		t.Errorf("linear pace/HR data produced a deflection at %.0f s/mi", pace)
	}
}

func TestDeflectionPoint_TooFewPoints(t *testing.T) {
	points := []PaceHrPoint{
		{PaceSecPerMile: 600, HeartRate: 120},
		{PaceSecPerMile: 550, HeartRate: 130},
		{PaceSecPerMile: 500, HeartRate: 145},
	}
	if _, ok := DeflectionPoint(points, DefaultTunables()); ok {
		t.Error("expected no estimate from 3 points")
	}
}

func TestSustainabilityBoundary_Midpoint(t *testing.T) {
	workouts := []store.Workout{
		// 500 s/mi, ~2.7% drift: sustainable
		hrWorkout(2, 6, 500, 152, steadySplits(6, 500, 150, 154)),
		// 460 s/mi, ~6% drift: unsustainable
		hrWorkout(5, 6, 460, 156, steadySplits(6, 460, 150, 162)),
	}

	pace, ok := SustainabilityBoundary(workouts, DefaultTunables())
	if !ok {
		t.Fatal("expected a boundary from one sustainable and one unsustainable effort")
	}
	if math.Abs(pace-480) > 2 {
		t.Errorf("boundary = %.1f, expected midpoint 480", pace)
	}
}

func TestSustainabilityBoundary_NeedsBothSides(t *testing.T) {
	onlySustainable := []store.Workout{
		hrWorkout(2, 6, 500, 152, steadySplits(6, 500, 150, 154)),
		hrWorkout(5, 6, 520, 148, steadySplits(6, 520, 147, 150)),
	}
	if _, ok := SustainabilityBoundary(onlySustainable, DefaultTunables()); ok {
		t.Error("expected no boundary without an unsustainable effort")
	}
}

func TestSustainabilityBoundary_ErraticEffortDiscarded(t *testing.T) {
	workouts := []store.Workout{
		hrWorkout(2, 6, 500, 152, steadySplits(6, 500, 150, 154)),
		// 14% drift: too erratic to classify either way
		hrWorkout(5, 6, 450, 160, steadySplits(6, 450, 140, 160)),
	}
	if _, ok := SustainabilityBoundary(workouts, DefaultTunables()); ok {
		t.Error("erratic effort should be discarded, leaving no unsustainable side")
	}
}

func TestDetectThreshold_FullLog(t *testing.T) {
	var workouts []store.Workout

	// Easy aerobic base with low drift
	for i := 0; i < 10; i++ {
		workouts = append(workouts, hrWorkout(3*i+1, 5, 540, 135, steadySplits(5, 540, 134, 138)))
	}
	// Steady tempo efforts, sustainable drift
	for i := 0; i < 5; i++ {
		workouts = append(workouts, hrWorkout(7*i+2, 4, 470, 168, steadySplits(4, 470, 165, 170)))
	}
	// Harder efforts drifting into the unsustainable band
	for i := 0; i < 3; i++ {
		workouts = append(workouts, hrWorkout(11*i+4, 3, 440, 175, steadySplits(4, 440, 168, 179)))
	}

	est := DetectThreshold(workouts, DefaultTunables(), nil)

	if est.Method == MethodInsufficientData {
		t.Fatal("expected an estimate from an 18-workout log")
	}
	// The drift boundary sits between the 470 tempos and 440 hard efforts
	if est.PaceSecPerMile < 430 || est.PaceSecPerMile > 485 {
		t.Errorf("threshold pace = %.0f s/mi, expected in 430-485", est.PaceSecPerMile)
	}
	if est.Confidence <= 0 || est.Confidence > 0.95 {
		t.Errorf("confidence = %.2f, expected in (0, 0.95]", est.Confidence)
	}
	if est.Evidence.WorkoutsAnalyzed != 18 {
		t.Errorf("workouts analyzed = %d, expected 18", est.Evidence.WorkoutsAnalyzed)
	}
	if est.Evidence.WorkoutsWithHR != 18 {
		t.Errorf("workouts with HR = %d, expected 18", est.Evidence.WorkoutsWithHR)
	}
	if len(est.Evidence.Efforts) == 0 {
		t.Error("expected ranked candidate efforts in the evidence")
	}
}

func TestDetectThreshold_MoreEvidenceNeverLowersConfidence(t *testing.T) {
	build := func(tempos int) []store.Workout {
		var workouts []store.Workout
		for i := 0; i < 10; i++ {
			workouts = append(workouts, hrWorkout(3*i+1, 5, 540, 135, steadySplits(5, 540, 134, 138)))
		}
		for i := 0; i < tempos; i++ {
			workouts = append(workouts, hrWorkout(7*i+2, 4, 470, 168, steadySplits(4, 470, 165, 170)))
		}
		for i := 0; i < 3; i++ {
			workouts = append(workouts, hrWorkout(11*i+4, 3, 440, 175, steadySplits(4, 440, 168, 179)))
		}
		return workouts
	}

	small := DetectThreshold(build(2), DefaultTunables(), nil)
	large := DetectThreshold(build(6), DefaultTunables(), nil)

	if large.Confidence < small.Confidence {
		t.Errorf("confidence dropped with more evidence: %.2f -> %.2f", small.Confidence, large.Confidence)
	}
}

func TestDetectThreshold_TooFewWorkouts(t *testing.T) {
	workouts := []store.Workout{
		hrWorkout(1, 5, 540, 135, nil),
		hrWorkout(3, 5, 538, 136, nil),
	}

	est := DetectThreshold(workouts, DefaultTunables(), nil)
	if est.Method != MethodInsufficientData {
		t.Errorf("method = %s, expected insufficient_data for 2 workouts", est.Method)
	}
	if est.PaceSecPerMile != 0 {
		t.Errorf("insufficient-data estimate carries pace %.0f, expected 0", est.PaceSecPerMile)
	}
}

func TestDetectThreshold_NoSignalsWithoutHeartRate(t *testing.T) {
	// Plenty of candidate-quality workouts, but with no heart rate there
	// is no statistical signal and effort evidence alone is not enough
	workouts := []store.Workout{
		testWorkout(2, 5, 5*540),
		testWorkout(5, 5, 5*538),
		testWorkout(8, 5, 5*542),
		testWorkout(11, 5, 5*544),
		testWorkout(1, 4, 4*480),
		testWorkout(4, 4, 4*478),
	}

	est := DetectThreshold(workouts, DefaultTunables(), nil)
	if est.Method != MethodInsufficientData {
		t.Errorf("method = %s, expected insufficient_data without HR data", est.Method)
	}
	if len(est.Evidence.Efforts) == 0 {
		t.Error("candidate efforts should still be reported as evidence")
	}
}

func TestDetectThreshold_EvidenceWindow(t *testing.T) {
	var workouts []store.Workout
	for i := 0; i < 10; i++ {
		workouts = append(workouts, hrWorkout(3*i+1, 5, 540, 135, steadySplits(5, 540, 134, 138)))
	}
	for i := 0; i < 3; i++ {
		workouts = append(workouts, hrWorkout(7*i+2, 4, 470, 168, steadySplits(4, 470, 165, 170)))
	}
	workouts = append(workouts, hrWorkout(4, 3, 440, 175, steadySplits(4, 440, 168, 179)))

	est := DetectThreshold(workouts, DefaultTunables(), nil)
	if est.Evidence.From.IsZero() || est.Evidence.To.IsZero() {
		t.Fatal("evidence window not populated")
	}
	if !est.Evidence.To.After(est.Evidence.From) {
		t.Errorf("evidence window [%v, %v] not ordered", est.Evidence.From, est.Evidence.To)
	}
}

func TestValidateAgainstVDOT(t *testing.T) {
	expected := PaceZones(50).Threshold

	tests := []struct {
		name     string
		pace     float64
		expected AgreementTier
	}{
		{"within 10s", expected + 5, AgreementStrong},
		{"within 20s", expected + 15, AgreementModerate},
		{"beyond 20s", expected + 30, AgreementWeak},
		{"faster than expected", expected - 15, AgreementModerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateAgainstVDOT(tt.pace, 50)
			if v.Agreement != tt.expected {
				t.Errorf("agreement = %s, expected %s (diff %.1f)", v.Agreement, tt.expected, v.DiffSecPerMile)
			}
		})
	}
}

func TestValidateAgainstVDOT_SignConvention(t *testing.T) {
	expected := PaceZones(50).Threshold
	v := ValidateAgainstVDOT(expected+5, 50)
	if v.DiffSecPerMile <= 0 {
		t.Errorf("slower-than-expected pace should give positive diff, got %.1f", v.DiffSecPerMile)
	}
}

func TestDetectThreshold_VdotCrossCheck(t *testing.T) {
	var workouts []store.Workout
	for i := 0; i < 10; i++ {
		workouts = append(workouts, hrWorkout(3*i+1, 5, 540, 135, steadySplits(5, 540, 134, 138)))
	}
	for i := 0; i < 5; i++ {
		workouts = append(workouts, hrWorkout(7*i+2, 4, 470, 168, steadySplits(4, 470, 165, 170)))
	}
	for i := 0; i < 3; i++ {
		workouts = append(workouts, hrWorkout(11*i+4, 3, 440, 175, steadySplits(4, 440, 168, 179)))
	}

	vdot := 48.0
	est := DetectThreshold(workouts, DefaultTunables(), &vdot)
	if est.Vdot == nil {
		t.Fatal("expected VDOT cross-validation when a known VDOT is supplied")
	}
	if est.Vdot.ExpectedPaceSecPerMile <= 0 {
		t.Errorf("expected pace = %.1f, should be positive", est.Vdot.ExpectedPaceSecPerMile)
	}

	without := DetectThreshold(workouts, DefaultTunables(), nil)
	if without.Vdot != nil {
		t.Error("expected no cross-validation without a known VDOT")
	}
}
