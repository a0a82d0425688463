package heatmap

import "math"

// ExerciseRollup is the session weighted average of the metric over every
// time range of the exercise, regardless of which domains are visible.
func (g *Grid) ExerciseRollup(exercise string, metric Metric) *float64 {
	return g.weightedAverage(g.byExercise[exercise], metric)
}

// DomainRollup is the session weighted average of the metric over every exercise in the time range.
func (g *Grid) DomainRollup(domain string, metric Metric) *float64 {
	return g.weightedAverage(g.byDomain[domain], metric)
}

// GlobalRollup is the corner value of the grid.
//
// For the percentile metric this is the externally supplied global fitness
// score, returned as is (nil included), and not the weighted average of the
// cells. Every other metric is averaged over all cells.
func (g *Grid) GlobalRollup(metric Metric) *float64 {
	if metric == MetricPercentile {
		return g.GlobalFitnessScore()
	}

	all := make([]int, len(g.cells))
	for i := range g.cells {
		all[i] = i
	}
	return g.weightedAverage(all, metric)
}

// weightedAverage weights each non nil value by its session count.
// Cells without sessions carry no weight; no weight at all yields nil.
func (g *Grid) weightedAverage(cellIdx []int, metric Metric) *float64 {
	var totalWeighted, totalWeight float64
	for _, i := range cellIdx {
		c := g.cells[i]
		value := metric.Value(c)
		if value == nil || c.SessionCount <= 0 {
			continue
		}
		totalWeighted += *value * float64(c.SessionCount)
		totalWeight += float64(c.SessionCount)
	}

	if totalWeight == 0 {
		return nil
	}

	avg := roundTo(totalWeighted/totalWeight, 1)
	return &avg
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
