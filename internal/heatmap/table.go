package heatmap

// Table is the display ready heatmap for one metric: the visible columns,
// one row per exercise with its rollup, the column rollups and the corner.
type Table struct {
	Metric       Metric   `json:"metric"`
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle"`
	Empty        bool     `json:"empty"`
	EmptyMessage string   `json:"emptyMessage,omitempty"`
	Domains      []string `json:"domains"`
	Rows         []Row    `json:"rows"`
	Columns      []Column `json:"columns"`
	Global       Corner   `json:"global"`
}

type TableCell struct {
	Domain    string     `json:"domain"`
	Value     *float64   `json:"value"`
	Display   string     `json:"display"`
	Sessions  int        `json:"sessions"`
	HeartRate *HeartRate `json:"heartRate,omitempty"`
}

type Row struct {
	Exercise      string      `json:"exercise"`
	Cells         []TableCell `json:"cells"`
	Rollup        *float64    `json:"rollup"`
	RollupDisplay string      `json:"rollupDisplay"`
	TotalSessions int         `json:"totalSessions"`
}

type Column struct {
	Domain   string   `json:"domain"`
	Rollup   *float64 `json:"rollup"`
	Display  string   `json:"display"`
	Workouts int      `json:"workouts"`
}

type Corner struct {
	Label   string   `json:"label"`
	Value   *float64 `json:"value"`
	Display string   `json:"display"`
}

// BuildTable lays the grid out for the metric, showing only the time ranges
// selected by chips (all of them when no chip is selected). Row rollups are
// always computed over every time range of the exercise.
func BuildTable(g *Grid, metric Metric, chips []string) *Table {
	t := &Table{
		Metric:   metric,
		Title:    metric.Title(),
		Subtitle: metric.Subtitle(),
		Domains:  []string{},
		Rows:     []Row{},
		Columns:  []Column{},
	}

	if g == nil || g.IsEmpty() {
		t.Empty = true
		t.EmptyMessage = metric.EmptyMessage()
		t.Global = Corner{Label: metric.GlobalLabel(), Display: NoData}
		return t
	}

	t.Domains = ResolveVisibleDomains(g.Domains(), chips)

	for _, exercise := range g.Exercises() {
		rollup := g.ExerciseRollup(exercise, metric)
		row := Row{
			Exercise:      exercise,
			Cells:         make([]TableCell, 0, len(t.Domains)),
			Rollup:        rollup,
			RollupDisplay: FormatValue(metric, rollup),
		}
		if avg, ok := g.ExerciseAverage(exercise); ok {
			row.TotalSessions = avg.TotalSessions
		}

		for _, domain := range t.Domains {
			cell := TableCell{
				Domain:   domain,
				Value:    g.CellValue(exercise, domain, metric),
				Display:  g.displayCell(exercise, domain, metric),
				Sessions: g.SessionCount(exercise, domain),
			}
			if metric == MetricHeartRate && cell.Value != nil {
				hr := g.HeartRate(exercise, domain)
				cell.HeartRate = &hr
			}
			row.Cells = append(row.Cells, cell)
		}

		t.Rows = append(t.Rows, row)
	}

	for _, domain := range t.Domains {
		rollup := g.DomainRollup(domain, metric)
		t.Columns = append(t.Columns, Column{
			Domain:   domain,
			Rollup:   rollup,
			Display:  FormatValue(metric, rollup),
			Workouts: g.DomainWorkoutCount(domain),
		})
	}

	// percentile corner is the supplied global fitness score, see GlobalRollup
	global := g.GlobalRollup(metric)
	t.Global = Corner{
		Label:   metric.GlobalLabel(),
		Value:   global,
		Display: FormatValue(metric, global),
	}

	return t
}

func (g *Grid) displayCell(exercise, domain string, metric Metric) string {
	if metric == MetricHeartRate {
		return FormatHeartRate(g.HeartRate(exercise, domain))
	}
	return FormatValue(metric, g.CellValue(exercise, domain, metric))
}
