package store

import (
	"errors"
	"testing"
	"time"
)

func TestReplaceFitnessTrend(t *testing.T) {
	db := setupTestDB(t)

	first := []FitnessDay{
		{Date: "2026-05-01", CTL: 40.2, ATL: 45.1, TSB: -4.9},
		{Date: "2026-05-02", CTL: 40.8, ATL: 47.3, TSB: -4.9},
	}
	if err := db.ReplaceFitnessTrend(first); err != nil {
		t.Fatalf("ReplaceFitnessTrend failed: %v", err)
	}

	// A second replace must fully supersede the first series
	second := []FitnessDay{
		{Date: "2026-05-01", CTL: 41.0, ATL: 44.0, TSB: -3.0},
		{Date: "2026-05-02", CTL: 41.5, ATL: 46.0, TSB: -3.0},
		{Date: "2026-05-03", CTL: 42.0, ATL: 48.0, TSB: -4.5},
	}
	if err := db.ReplaceFitnessTrend(second); err != nil {
		t.Fatalf("second ReplaceFitnessTrend failed: %v", err)
	}

	got, err := db.GetFitnessTrend()
	if err != nil {
		t.Fatalf("GetFitnessTrend failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 days, got %d", len(got))
	}
	if got[0].Date != "2026-05-01" || got[2].Date != "2026-05-03" {
		t.Errorf("trend not ordered by date: %v", got)
	}
	if got[0].CTL != 41.0 {
		t.Errorf("first replace leaked through: CTL = %f, expected 41.0", got[0].CTL)
	}
}

func TestGetFitnessTrend_Empty(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.GetFitnessTrend()
	if err != nil {
		t.Fatalf("GetFitnessTrend failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty trend, got %d days", len(got))
	}
}

func TestThresholdEstimate_RoundTrip(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.GetThresholdEstimate(); !errors.Is(err, ErrNoEstimate) {
		t.Errorf("expected ErrNoEstimate on empty table, got %v", err)
	}

	computed := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
	row := &ThresholdRow{
		PaceSecPerMile: 452.5,
		Confidence:     0.65,
		Method:         "sustainability",
		EffortCount:    7,
		ComputedAt:     computed,
	}
	if err := db.SaveThresholdEstimate(row); err != nil {
		t.Fatalf("SaveThresholdEstimate failed: %v", err)
	}

	got, err := db.GetThresholdEstimate()
	if err != nil {
		t.Fatalf("GetThresholdEstimate failed: %v", err)
	}
	if got.PaceSecPerMile != 452.5 || got.Method != "sustainability" || got.EffortCount != 7 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.ComputedAt.Equal(computed) {
		t.Errorf("computed_at = %v, expected %v", got.ComputedAt, computed)
	}

	// Saving again overwrites the singleton row
	row.PaceSecPerMile = 448.0
	row.Method = "combined"
	if err := db.SaveThresholdEstimate(row); err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	got, err = db.GetThresholdEstimate()
	if err != nil {
		t.Fatalf("GetThresholdEstimate after update failed: %v", err)
	}
	if got.PaceSecPerMile != 448.0 || got.Method != "combined" {
		t.Errorf("update not applied: %+v", got)
	}
}
