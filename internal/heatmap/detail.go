package heatmap

import "math"

const (
	AllTimeDomains = "All Time Domains"
	AllExercises   = "All Exercises"
)

// Detail describes a single heatmap cell, or a row or column rollup, with every
// metric that is known for it.
type Detail struct {
	Exercise   string     `json:"exercise"`
	TimeDomain string     `json:"timeDomain"`
	Metric     Metric     `json:"metric"`
	Value      *float64   `json:"value"`
	Display    string     `json:"display"`
	Sessions   int        `json:"sessions"`
	Workouts   string     `json:"workouts"`
	Percentile *float64   `json:"percentile"`
	HeartRate  *HeartRate `json:"heartRate,omitempty"`
	AvgRPE     *float64   `json:"avgRpe,omitempty"`
	AvgQuality *float64   `json:"avgQuality,omitempty"`
	Grade      string     `json:"grade,omitempty"`
}

// CellDetail returns the detail of one cell. The second value is false
// when the cell has neither a value for the metric nor any sessions.
func (g *Grid) CellDetail(exercise, domain string, metric Metric) (Detail, bool) {
	value := g.CellValue(exercise, domain, metric)
	sessions := g.SessionCount(exercise, domain)
	if value == nil && sessions <= 0 {
		return Detail{}, false
	}

	d := Detail{
		Exercise:   exercise,
		TimeDomain: domain,
		Metric:     metric,
		Value:      value,
		Display:    g.displayCell(exercise, domain, metric),
		Sessions:   sessions,
		Workouts:   Workouts(sessions),
	}

	if c, ok := g.Cell(exercise, domain); ok {
		hr := HeartRate{Avg: c.AvgHeartRate, Max: c.MaxHeartRate}
		d.HeartRate = &hr
		d.Percentile = c.AvgPercentile
		d.AvgRPE = c.AvgRPE
		d.AvgQuality = c.AvgQuality
		if c.AvgQuality != nil {
			d.Grade = QualityGrade(c.AvgQuality)
		}
	}

	return d, true
}

// ExerciseDetail returns the detail of a row rollup. Sessions come from the
// upstream exercise averages, the value from the grid itself.
func (g *Grid) ExerciseDetail(exercise string, metric Metric) (Detail, bool) {
	value := g.ExerciseRollup(exercise, metric)
	avg, hasAvg := g.ExerciseAverage(exercise)
	if value == nil && (!hasAvg || avg.TotalSessions <= 0) {
		return Detail{}, false
	}

	d := Detail{
		Exercise:   exercise,
		TimeDomain: AllTimeDomains,
		Metric:     metric,
		Value:      value,
		Display:    FormatValue(metric, value),
		Sessions:   avg.TotalSessions,
		Workouts:   Workouts(avg.TotalSessions),
	}
	if hasAvg && avg.OverallAvgPercentile != 0 {
		p := avg.OverallAvgPercentile
		d.Percentile = &p
	}

	return d, true
}

// DomainDetail returns the detail of a column rollup.
func (g *Grid) DomainDetail(domain string, metric Metric) (Detail, bool) {
	value := g.DomainRollup(domain, metric)
	workouts := g.DomainWorkoutCount(domain)
	if value == nil && workouts <= 0 {
		return Detail{}, false
	}

	d := Detail{
		Exercise:   AllExercises,
		TimeDomain: domain,
		Metric:     metric,
		Value:      value,
		Display:    FormatValue(metric, value),
		Sessions:   workouts,
		Workouts:   Workouts(workouts),
	}
	if p := g.DomainRollup(domain, MetricPercentile); p != nil {
		rounded := math.Round(*p)
		d.Percentile = &rounded
	}

	return d, true
}
