package metcons

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/metconstats/internal/heatmap"
	"github.com/2beens/metconstats/internal/telemetry/metrics"
	"github.com/2beens/metconstats/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=metcons_test

type snapshotRepo interface {
	LatestProgramID(ctx context.Context, userID int) (int, error)
	Snapshot(ctx context.Context, programID int, dateRange Range) (*Snapshot, error)
}

type snapshotCache interface {
	Get(ctx context.Context, programID int, dateRange Range) (*Snapshot, bool)
	Set(ctx context.Context, snapshot *Snapshot)
}

type HeatmapQuery struct {
	UserID int
	Metric heatmap.Metric
	Chips  []string
	Range  Range
}

// DetailQuery selects a cell, a row (empty Domain) or a column (empty Exercise).
type DetailQuery struct {
	UserID   int
	Exercise string
	Domain   string
	Metric   heatmap.Metric
	Range    Range
}

type HeatmapResponse struct {
	ProgramID              int   `json:"programId"`
	Range                  Range `json:"range"`
	TotalCompletedWorkouts int   `json:"totalCompletedWorkouts"`
	*heatmap.Table
}

type Service struct {
	repo           snapshotRepo
	cache          snapshotCache
	metricsManager *metrics.Manager
}

func NewService(repo snapshotRepo, cache snapshotCache, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		cache:          cache,
		metricsManager: metricsManager,
	}
}

func (s *Service) Heatmap(ctx context.Context, q HeatmapQuery) (_ *HeatmapResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.metcons.heatmap")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", q.UserID),
		attribute.String("metric", string(q.Metric)),
		attribute.StringSlice("chips", q.Chips),
	)

	snapshot, err := s.snapshot(ctx, q.UserID, q.Range)
	if err != nil {
		return nil, err
	}

	grid, err := snapshot.Grid()
	if err != nil {
		return nil, fmt.Errorf("build grid for program %d: %w", snapshot.ProgramID, err)
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterHeatmaps.WithLabelValues(string(q.Metric)).Inc()
	}

	return &HeatmapResponse{
		ProgramID:              snapshot.ProgramID,
		Range:                  snapshot.Range,
		TotalCompletedWorkouts: snapshot.TotalCompletedWorkouts,
		Table:                  heatmap.BuildTable(grid, q.Metric, q.Chips),
	}, nil
}

// Detail returns the detail of a single cell, or of a row or column rollup. The bool
// is false when there is nothing to show for the selection.
func (s *Service) Detail(ctx context.Context, q DetailQuery) (_ heatmap.Detail, _ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.metcons.detail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", q.UserID),
		attribute.String("exercise", q.Exercise),
		attribute.String("domain", q.Domain),
	)

	snapshot, err := s.snapshot(ctx, q.UserID, q.Range)
	if err != nil {
		return heatmap.Detail{}, false, err
	}

	grid, err := snapshot.Grid()
	if err != nil {
		return heatmap.Detail{}, false, fmt.Errorf("build grid for program %d: %w", snapshot.ProgramID, err)
	}

	switch {
	case q.Exercise != "" && q.Domain != "":
		detail, ok := grid.CellDetail(q.Exercise, q.Domain, q.Metric)
		return detail, ok, nil
	case q.Exercise != "":
		detail, ok := grid.ExerciseDetail(q.Exercise, q.Metric)
		return detail, ok, nil
	case q.Domain != "":
		detail, ok := grid.DomainDetail(q.Domain, q.Metric)
		return detail, ok, nil
	default:
		return heatmap.Detail{}, false, nil
	}
}

func (s *Service) snapshot(ctx context.Context, userID int, dateRange Range) (*Snapshot, error) {
	programID, err := s.repo.LatestProgramID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("latest program of user %d: %w", userID, err)
	}

	if snapshot, ok := s.cache.Get(ctx, programID, dateRange); ok {
		log.Tracef("snapshot for program %d [%s] found in cache", programID, dateRange)
		return snapshot, nil
	}

	start := time.Now()
	snapshot, err := s.repo.Snapshot(ctx, programID, dateRange)
	if err != nil {
		return nil, fmt.Errorf("snapshot of program %d: %w", programID, err)
	}
	if s.metricsManager != nil {
		s.metricsManager.HistSnapshotLoadDuration.Observe(time.Since(start).Seconds())
	}
	log.Debugf("snapshot for program %d [%s] loaded: %d cells", programID, dateRange, len(snapshot.Cells))

	s.cache.Set(ctx, snapshot)
	return snapshot, nil
}
