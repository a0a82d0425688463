package heatmap

import (
	"fmt"
	"math"
	"strconv"
)

// NoData is shown wherever there is no value, so it never reads as a measured zero.
const NoData = "—"

// FormatValue renders a cell or rollup value for the given metric.
func FormatValue(metric Metric, value *float64) string {
	if value == nil {
		return NoData
	}

	v := *value
	switch metric {
	case MetricPercentile:
		return fmt.Sprintf("%d%%", int64(math.Round(v)))
	case MetricRPE:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case MetricQuality:
		return QualityGrade(value)
	case MetricHeartRate:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// QualityGrade converts an average quality (1-4) to its letter grade.
// Lower bounds are inclusive.
func QualityGrade(quality *float64) string {
	if quality == nil {
		return NoData
	}

	q := *quality
	switch {
	case q >= 3.5:
		return "A"
	case q >= 2.5:
		return "B"
	case q >= 1.5:
		return "C"
	default:
		return "D"
	}
}

// FormatHeartRate renders "avg / peak", or only the average when the peak is unknown.
func FormatHeartRate(hr HeartRate) string {
	if hr.Avg == nil {
		return NoData
	}

	avg := strconv.FormatInt(int64(math.Round(*hr.Avg)), 10)
	if hr.Max == nil {
		return avg
	}
	return avg + " / " + strconv.FormatInt(int64(math.Round(*hr.Max)), 10)
}

// Workouts renders a workout count with the right plural ("1 workout", "3 workouts").
func Workouts(n int) string {
	if n == 1 {
		return "1 workout"
	}
	return fmt.Sprintf("%d workouts", n)
}
