package metcons

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/metconstats/internal/heatmap"
	"github.com/2beens/metconstats/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

var ErrProgramNotFound = errors.New("program not found")

type Repo struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db:  db,
		now: time.Now,
	}
}

// LatestProgramID returns the most recently generated program of the user.
func (r *Repo) LatestProgramID(ctx context.Context, userID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.metcons.latestProgram")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	var programID int
	err = r.db.QueryRow(
		ctx,
		`SELECT id FROM programs WHERE user_id = $1 ORDER BY generated_at DESC LIMIT 1;`,
		userID,
	).Scan(&programID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrProgramNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query latest program: %w", err)
	}

	span.SetAttributes(attribute.Int("program.id", programID))
	return programID, nil
}

// Snapshot aggregates the completed metcons of the program within the range. The
// cells, the global score and the per time range workout counts are queried concurrently.
func (r *Repo) Snapshot(ctx context.Context, programID int, dateRange Range) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.metcons.snapshot")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("program.id", programID),
		attribute.String("range", string(dateRange)),
	)

	since := dateRange.Since(r.now())
	snapshot := &Snapshot{
		ProgramID: programID,
		Range:     dateRange,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cells, err := r.cells(gCtx, programID, since)
		if err != nil {
			return fmt.Errorf("cells: %w", err)
		}
		snapshot.Cells = cells
		return nil
	})
	g.Go(func() error {
		score, total, err := r.globalScore(gCtx, programID, since)
		if err != nil {
			return fmt.Errorf("global score: %w", err)
		}
		snapshot.GlobalFitnessScore = score
		snapshot.TotalCompletedWorkouts = total
		return nil
	})
	g.Go(func() error {
		counts, err := r.domainWorkoutCounts(gCtx, programID, since)
		if err != nil {
			return fmt.Errorf("domain workout counts: %w", err)
		}
		snapshot.DomainWorkoutCounts = counts
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot.ExerciseAverages = exerciseAverages(snapshot.Cells)
	span.SetAttributes(attribute.Int("cells", len(snapshot.Cells)))

	return snapshot, nil
}

// every task of a completed metcon counts as one session of that exercise
const cellsQuery = `
	WITH sessions AS (
		SELECT
			pm.id AS session_id,
			pm.percentile::float8 AS percentile,
			pm.avg_rpe::float8 AS avg_rpe,
			pm.avg_quality::float8 AS avg_quality,
			pm.avg_heart_rate::float8 AS avg_heart_rate,
			pm.max_heart_rate::float8 AS max_heart_rate,
			m.time_range,
			jsonb_array_elements(m.tasks)->>'exercise' AS exercise_name
		FROM program_metcons pm
		JOIN metcons m ON pm.metcon_id = m.id
		WHERE pm.program_id = $1
			AND pm.percentile IS NOT NULL
			AND pm.completed_at IS NOT NULL
			AND ($2::timestamptz IS NULL OR pm.completed_at >= $2)
	)
	SELECT
		exercise_name,
		time_range,
		COUNT(DISTINCT session_id) AS session_count,
		ROUND(AVG(percentile))::float8,
		ROUND(AVG(avg_rpe)::numeric, 1)::float8,
		ROUND(AVG(avg_quality)::numeric, 1)::float8,
		ROUND(AVG(avg_heart_rate))::float8,
		MAX(max_heart_rate)
	FROM sessions
	WHERE exercise_name IS NOT NULL
	GROUP BY exercise_name, time_range
	ORDER BY exercise_name, time_range;`

func (r *Repo) cells(ctx context.Context, programID int, since *time.Time) ([]heatmap.Cell, error) {
	rows, err := r.db.Query(ctx, cellsQuery, programID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cells []heatmap.Cell
	for rows.Next() {
		var c heatmap.Cell
		if err := rows.Scan(
			&c.ExerciseName,
			&c.TimeRange,
			&c.SessionCount,
			&c.AvgPercentile,
			&c.AvgRPE,
			&c.AvgQuality,
			&c.AvgHeartRate,
			&c.MaxHeartRate,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if c.TimeRange != nil {
			normalized := heatmap.NormalizeTimeRange(*c.TimeRange)
			c.TimeRange = &normalized
		}
		cells = append(cells, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return mergeCells(cells), nil
}

func (r *Repo) globalScore(ctx context.Context, programID int, since *time.Time) (*float64, int, error) {
	var (
		score *float64
		total int
	)
	err := r.db.QueryRow(
		ctx,
		`SELECT ROUND(AVG(percentile))::float8, COUNT(*)
			FROM program_metcons
			WHERE program_id = $1
				AND percentile IS NOT NULL
				AND completed_at IS NOT NULL
				AND ($2::timestamptz IS NULL OR completed_at >= $2);`,
		programID, since,
	).Scan(&score, &total)
	if err != nil {
		return nil, 0, err
	}
	return score, total, nil
}

func (r *Repo) domainWorkoutCounts(ctx context.Context, programID int, since *time.Time) (map[string]int, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT m.time_range, COUNT(DISTINCT pm.id)
			FROM program_metcons pm
			JOIN metcons m ON pm.metcon_id = m.id
			WHERE pm.program_id = $1
				AND pm.percentile IS NOT NULL
				AND pm.completed_at IS NOT NULL
				AND m.time_range IS NOT NULL
				AND ($2::timestamptz IS NULL OR pm.completed_at >= $2)
			GROUP BY m.time_range;`,
		programID, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			timeRange string
			count     int
		)
		if err := rows.Scan(&timeRange, &count); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		counts[heatmap.NormalizeTimeRange(timeRange)] += count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
