package service

import (
	"time"

	"runcoach/internal/analysis"
	"runcoach/internal/store"
)

// DashboardData contains all data needed for the dashboard
type DashboardData struct {
	// Current fitness
	CurrentFitness  float64 // CTL
	CurrentFatigue  float64 // ATL
	CurrentForm     float64 // TSB
	FormDescription string

	// This week
	WeekRunCount int
	WeekDistance float64 // miles
	WeekTime     int     // seconds

	// Recent workouts, newest first
	RecentWorkouts []store.Workout

	// For charts: daily CTL/ATL over the chart window
	FitnessHistory []float64
	FatigueHistory []float64
	TrendDates     []time.Time
}

// GetDashboardData fetches all data needed for the dashboard. The fitness
// trend is recomputed in full from the workout history and the cache table
// refreshed as a side effect.
func (q *QueryService) GetDashboardData() (*DashboardData, error) {
	data := &DashboardData{}

	recent, err := q.store.ListWorkouts(RecentWorkoutsLimit, 0)
	if err != nil {
		return nil, err
	}
	data.RecentWorkouts = recent

	data.WeekRunCount, data.WeekDistance, data.WeekTime = weekStats(recent)

	history, err := q.analysisHistory()
	if err != nil {
		return nil, err
	}

	loads := analysis.BuildDailyLoads(history, q.tun)
	trend := analysis.FitnessTrend(loads, q.tun)
	if len(trend) == 0 {
		return data, nil
	}

	current := trend[len(trend)-1]
	data.CurrentFitness = current.CTL
	data.CurrentFatigue = current.ATL
	data.CurrentForm = current.TSB
	data.FormDescription = analysis.FormDescription(current.TSB)

	chart := trend
	if len(chart) > TrendChartDays {
		chart = chart[len(chart)-TrendChartDays:]
	}
	for _, m := range chart {
		data.FitnessHistory = append(data.FitnessHistory, m.CTL)
		data.FatigueHistory = append(data.FatigueHistory, m.ATL)
		data.TrendDates = append(data.TrendDates, m.Date)
	}

	// Cache failures don't block the dashboard; the cache is display-only
	_ = q.cacheFitnessTrend(trend)

	return data, nil
}

// weekStats sums the current calendar week (Monday start) from the
// recent workouts
func weekStats(recent []store.Workout) (count int, miles float64, seconds int) {
	now := time.Now()
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week it ends
	}
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(weekday - 1))

	for _, w := range recent {
		if w.Date.Before(weekStart) {
			continue
		}
		count++
		miles += w.DistanceMiles
		seconds += w.DurationSeconds
	}
	return count, miles, seconds
}

func (q *QueryService) cacheFitnessTrend(trend []analysis.FitnessMetric) error {
	days := make([]store.FitnessDay, len(trend))
	for i, m := range trend {
		days[i] = store.FitnessDay{
			Date: m.Date.Format("2006-01-02"),
			CTL:  m.CTL,
			ATL:  m.ATL,
			TSB:  m.TSB,
		}
	}
	return q.store.ReplaceFitnessTrend(days)
}
