package metcons

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/2beens/metconstats/internal/heatmap"
)

var ErrUnknownRange = errors.New("unknown date range")

// Range limits the completed metcons that go into a snapshot.
type Range string

const (
	RangeAllTime    Range = "all_time"
	RangeLast30Days Range = "last_30_days"
	RangeLast60Days Range = "last_60_days"
	RangeLast90Days Range = "last_90_days"
)

var AllRanges = []Range{
	RangeAllTime,
	RangeLast30Days,
	RangeLast60Days,
	RangeLast90Days,
}

// ParseRange parses a date range name; an empty name means all time.
func ParseRange(name string) (Range, error) {
	r := Range(strings.ToLower(strings.TrimSpace(name)))
	if r == "" {
		return RangeAllTime, nil
	}
	for _, known := range AllRanges {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRange, name)
}

// Since returns the earliest completion time included in the range, nil for all time.
func (r Range) Since(now time.Time) *time.Time {
	var days int
	switch r {
	case RangeLast30Days:
		days = 30
	case RangeLast60Days:
		days = 60
	case RangeLast90Days:
		days = 90
	default:
		return nil
	}
	since := now.AddDate(0, 0, -days)
	return &since
}

// Snapshot is everything the heatmap of one program needs, as loaded from the db.
// It is cached as is, and a fresh Grid is built from it for every request.
type Snapshot struct {
	ProgramID              int                       `json:"program_id"`
	Range                  Range                     `json:"range"`
	Cells                  []heatmap.Cell            `json:"cells"`
	ExerciseAverages       []heatmap.ExerciseAverage `json:"exercise_averages"`
	GlobalFitnessScore     *float64                  `json:"global_fitness_score"`
	TotalCompletedWorkouts int                       `json:"total_completed_workouts"`
	DomainWorkoutCounts    map[string]int            `json:"domain_workout_counts"`
}

func (s *Snapshot) Grid() (*heatmap.Grid, error) {
	return heatmap.NewGrid(
		s.Cells,
		heatmap.WithExerciseAverages(s.ExerciseAverages),
		heatmap.WithGlobalFitnessScore(s.GlobalFitnessScore),
		heatmap.WithDomainWorkoutCounts(s.DomainWorkoutCounts),
	)
}

// exerciseAverages sums the sessions of every exercise over all its time ranges, with
// the session weighted (and rounded) average percentile.
func exerciseAverages(cells []heatmap.Cell) []heatmap.ExerciseAverage {
	type acc struct {
		sessions, weighted, weight float64
	}

	var order []string
	byExercise := make(map[string]*acc)
	for _, c := range cells {
		a, ok := byExercise[c.ExerciseName]
		if !ok {
			a = &acc{}
			byExercise[c.ExerciseName] = a
			order = append(order, c.ExerciseName)
		}
		a.sessions += float64(c.SessionCount)
		if c.AvgPercentile != nil && c.SessionCount > 0 {
			a.weighted += *c.AvgPercentile * float64(c.SessionCount)
			a.weight += float64(c.SessionCount)
		}
	}

	averages := make([]heatmap.ExerciseAverage, 0, len(order))
	for _, name := range order {
		a := byExercise[name]
		avg := heatmap.ExerciseAverage{
			ExerciseName:  name,
			TotalSessions: int(a.sessions),
		}
		if a.weight > 0 {
			avg.OverallAvgPercentile = math.Round(a.weighted / a.weight)
		}
		averages = append(averages, avg)
	}
	return averages
}

// mergeCells folds cells that end up with the same (exercise, time range) after the
// time range labels are normalized. Metric averages are merged session weighted,
// the max heart rate keeps the highest value.
func mergeCells(cells []heatmap.Cell) []heatmap.Cell {
	type key struct{ exercise, domain string }

	merged := make([]heatmap.Cell, 0, len(cells))
	index := make(map[key]int, len(cells))
	for _, c := range cells {
		if c.TimeRange == nil {
			merged = append(merged, c)
			continue
		}

		k := key{c.ExerciseName, *c.TimeRange}
		i, ok := index[k]
		if !ok {
			index[k] = len(merged)
			merged = append(merged, c)
			continue
		}

		m := &merged[i]
		m.AvgPercentile = mergeAvg(m.AvgPercentile, m.SessionCount, c.AvgPercentile, c.SessionCount)
		m.AvgRPE = mergeAvg(m.AvgRPE, m.SessionCount, c.AvgRPE, c.SessionCount)
		m.AvgQuality = mergeAvg(m.AvgQuality, m.SessionCount, c.AvgQuality, c.SessionCount)
		m.AvgHeartRate = mergeAvg(m.AvgHeartRate, m.SessionCount, c.AvgHeartRate, c.SessionCount)
		if c.MaxHeartRate != nil && (m.MaxHeartRate == nil || *c.MaxHeartRate > *m.MaxHeartRate) {
			m.MaxHeartRate = c.MaxHeartRate
		}
		m.SessionCount += c.SessionCount
	}

	return merged
}

func mergeAvg(a *float64, aSessions int, b *float64, bSessions int) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case aSessions+bSessions <= 0:
		return a
	}
	v := (*a*float64(aSessions) + *b*float64(bSessions)) / float64(aSessions+bSessions)
	v = math.Round(v*10) / 10
	return &v
}
