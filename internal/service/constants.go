package service

const (
	// Unit conversions
	MetersPerMile    = 1609.34
	SecondsPerMinute = 60

	// Pagination limits
	RecentWorkoutsLimit = 10

	// Chart windows
	TrendChartDays = 90

	// Data-quality windows for race predictions
	HighQualitySourceDays  = 90
	HighQualityMinWorkouts = 20
	MedQualitySourceDays   = 180
	MedQualityMinWorkouts  = 10

	// History window fed to the estimators (days)
	AnalysisHistoryDays = 365
)
