package heatmap

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicateCell is returned by NewGrid when two cells share the same exercise and time range.
var ErrDuplicateCell = errors.New("duplicate heatmap cell")

// Grid is a sparse exercise x time range matrix over a fixed cell collection.
// All indexes are built once in NewGrid; a Grid is never modified afterwards,
// so it can be queried from any number of goroutines.
type Grid struct {
	cells      []Cell
	index      map[cellKey]int
	byExercise map[string][]int
	byDomain   map[string][]int
	exercises  []string
	domains    []string

	exerciseAverages   map[string]ExerciseAverage
	domainWorkouts     map[string]int
	globalFitnessScore *float64
}

type GridOption func(g *Grid)

// WithExerciseAverages sets the upstream per-exercise summaries (display only).
func WithExerciseAverages(averages []ExerciseAverage) GridOption {
	return func(g *Grid) {
		for _, avg := range averages {
			if _, ok := g.exerciseAverages[avg.ExerciseName]; !ok {
				g.exerciseAverages[avg.ExerciseName] = avg
			}
		}
	}
}

// WithGlobalFitnessScore sets the externally computed score used as the
// percentile global rollup.
func WithGlobalFitnessScore(score *float64) GridOption {
	return func(g *Grid) {
		if score != nil {
			s := *score
			g.globalFitnessScore = &s
		}
	}
}

// WithDomainWorkoutCounts sets the distinct workout count per time range,
// shown under the column rollups.
func WithDomainWorkoutCounts(counts map[string]int) GridOption {
	return func(g *Grid) {
		for domain, count := range counts {
			g.domainWorkouts[domain] = count
		}
	}
}

// NewGrid indexes the given cells. Cells without a time range are left out.
// Duplicate (exercise, time range) pairs are rejected with ErrDuplicateCell.
func NewGrid(cells []Cell, opts ...GridOption) (*Grid, error) {
	g := &Grid{
		cells:            make([]Cell, 0, len(cells)),
		index:            make(map[cellKey]int, len(cells)),
		byExercise:       make(map[string][]int),
		byDomain:         make(map[string][]int),
		exerciseAverages: make(map[string]ExerciseAverage),
		domainWorkouts:   make(map[string]int),
	}

	for _, c := range cells {
		if c.TimeRange == nil {
			continue
		}

		key := cellKey{exercise: c.ExerciseName, domain: *c.TimeRange}
		if _, exists := g.index[key]; exists {
			return nil, fmt.Errorf("%w: exercise [%s], time range [%s]", ErrDuplicateCell, key.exercise, key.domain)
		}

		i := len(g.cells)
		g.cells = append(g.cells, c)
		g.index[key] = i

		if _, ok := g.byExercise[key.exercise]; !ok {
			g.exercises = append(g.exercises, key.exercise)
		}
		g.byExercise[key.exercise] = append(g.byExercise[key.exercise], i)

		if _, ok := g.byDomain[key.domain]; !ok {
			g.domains = append(g.domains, key.domain)
		}
		g.byDomain[key.domain] = append(g.byDomain[key.domain], i)
	}

	sort.Strings(g.exercises)
	SortDomains(g.domains)

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// IsEmpty reports whether there is anything to show at all.
func (g *Grid) IsEmpty() bool {
	return len(g.cells) == 0 || len(g.exercises) == 0
}

// Exercises returns the row keys, sorted by name.
func (g *Grid) Exercises() []string {
	return append([]string(nil), g.exercises...)
}

// Domains returns the column keys, sorted by duration bucket.
func (g *Grid) Domains() []string {
	return append([]string(nil), g.domains...)
}

func (g *Grid) Cell(exercise, domain string) (Cell, bool) {
	i, ok := g.index[cellKey{exercise: exercise, domain: domain}]
	if !ok {
		return Cell{}, false
	}
	return g.cells[i], true
}

// CellValue returns the metric value of a single cell, nil if there is no cell or no value.
func (g *Grid) CellValue(exercise, domain string, metric Metric) *float64 {
	c, ok := g.Cell(exercise, domain)
	if !ok {
		return nil
	}
	return metric.Value(c)
}

func (g *Grid) SessionCount(exercise, domain string) int {
	c, ok := g.Cell(exercise, domain)
	if !ok {
		return 0
	}
	return c.SessionCount
}

func (g *Grid) HeartRate(exercise, domain string) HeartRate {
	c, ok := g.Cell(exercise, domain)
	if !ok {
		return HeartRate{}
	}
	return HeartRate{
		Avg: c.AvgHeartRate,
		Max: c.MaxHeartRate,
	}
}

func (g *Grid) ExerciseAverage(exercise string) (ExerciseAverage, bool) {
	avg, ok := g.exerciseAverages[exercise]
	return avg, ok
}

// DomainWorkoutCount returns the supplied workout count for the time range,
// falling back to the sum of the column session counts.
func (g *Grid) DomainWorkoutCount(domain string) int {
	if count, ok := g.domainWorkouts[domain]; ok && count > 0 {
		return count
	}
	total := 0
	for _, i := range g.byDomain[domain] {
		total += g.cells[i].SessionCount
	}
	return total
}

func (g *Grid) GlobalFitnessScore() *float64 {
	if g.globalFitnessScore == nil {
		return nil
	}
	score := *g.globalFitnessScore
	return &score
}
