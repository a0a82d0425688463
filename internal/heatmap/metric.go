package heatmap

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownMetric = errors.New("unknown metric")

// Metric selects which cell field is read, how values are rounded and displayed.
type Metric string

const (
	MetricPercentile Metric = "percentile"
	MetricRPE        Metric = "rpe"
	MetricQuality    Metric = "quality"
	MetricHeartRate  Metric = "heartrate"
)

var AllMetrics = []Metric{
	MetricPercentile,
	MetricRPE,
	MetricQuality,
	MetricHeartRate,
}

// ParseMetric parses the metric name; an empty name selects percentile.
func ParseMetric(name string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(name)))
	if m == "" {
		return MetricPercentile, nil
	}
	for _, known := range AllMetrics {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}

// Value returns the cell field backing this metric, or nil when it is absent.
func (m Metric) Value(c Cell) *float64 {
	switch m {
	case MetricPercentile:
		return c.AvgPercentile
	case MetricRPE:
		return c.AvgRPE
	case MetricQuality:
		return c.AvgQuality
	case MetricHeartRate:
		return c.AvgHeartRate
	default:
		return nil
	}
}

func (m Metric) Title() string {
	switch m {
	case MetricPercentile:
		return "Percentile Heatmap"
	case MetricRPE:
		return "RPE Heatmap"
	case MetricQuality:
		return "Quality Heatmap"
	case MetricHeartRate:
		return "Heart Rate Heatmap"
	default:
		return "MetCon Heat Map"
	}
}

func (m Metric) Subtitle() string {
	switch m {
	case MetricPercentile:
		return "Task Level Percentile Analysis"
	case MetricRPE:
		return "Rate of Perceived Exertion"
	case MetricQuality:
		return "Movement Quality Grades"
	case MetricHeartRate:
		return "Average Heart Rate (bpm)"
	default:
		return "Task Level Analysis"
	}
}

// GlobalLabel is the caption of the corner (global rollup) cell.
func (m Metric) GlobalLabel() string {
	switch m {
	case MetricPercentile:
		return "FITNESS"
	case MetricRPE:
		return "AVG RPE"
	case MetricQuality:
		return "AVG QUALITY"
	default:
		return "AVG HR"
	}
}

// EmptyMessage is shown when there is nothing to aggregate for this metric.
func (m Metric) EmptyMessage() string {
	switch m {
	case MetricPercentile:
		return "Complete more workouts to see exercise-specific performance data!"
	case MetricRPE:
		return "Log workouts with RPE to see effort statistics!"
	case MetricQuality:
		return "Log workouts with Quality ratings to see statistics!"
	default:
		return "Log workouts with Heart Rate to see statistics!"
	}
}
