// Package heatmap aggregates per exercise and time range performance cells into
// a queryable matrix with row, column and global session weighted rollups.
package heatmap

// Cell is one aggregated performance record for a single (exercise, time range) pair.
// Cells with a nil TimeRange are not part of the grid.
type Cell struct {
	ExerciseName  string   `json:"exercise_name"`
	TimeRange     *string  `json:"time_range"`
	SessionCount  int      `json:"session_count"`
	AvgPercentile *float64 `json:"avg_percentile"`
	AvgRPE        *float64 `json:"avg_rpe"`
	AvgQuality    *float64 `json:"avg_quality"`
	AvgHeartRate  *float64 `json:"avg_heart_rate"`
	MaxHeartRate  *float64 `json:"max_heart_rate"`
}

// ExerciseAverage is an upstream per-exercise summary, only used to show
// the total sessions next to a row rollup.
type ExerciseAverage struct {
	ExerciseName         string  `json:"exercise_name"`
	TotalSessions        int     `json:"total_sessions"`
	OverallAvgPercentile float64 `json:"overall_avg_percentile"`
}

type HeartRate struct {
	Avg *float64 `json:"avg"`
	Max *float64 `json:"max"`
}

type cellKey struct {
	exercise string
	domain   string
}

// Float returns a pointer to v, handy when building cells by hand.
func Float(v float64) *float64 {
	return &v
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}
