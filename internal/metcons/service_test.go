package metcons_test

import (
	"context"
	"errors"
	"testing"

	"github.com/2beens/metconstats/internal/heatmap"
	"github.com/2beens/metconstats/internal/metcons"
	"github.com/2beens/metconstats/internal/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testSnapshot() *metcons.Snapshot {
	return &metcons.Snapshot{
		ProgramID: 7,
		Range:     metcons.RangeAllTime,
		Cells: []heatmap.Cell{
			{ExerciseName: "Burpees", TimeRange: heatmap.String(heatmap.Domain1To5), SessionCount: 1, AvgPercentile: heatmap.Float(80), AvgRPE: heatmap.Float(8)},
			{ExerciseName: "Burpees", TimeRange: heatmap.String(heatmap.Domain5To10), SessionCount: 3, AvgPercentile: heatmap.Float(40), AvgRPE: heatmap.Float(6)},
			{ExerciseName: "Thrusters", TimeRange: heatmap.String(heatmap.Domain30Plus), SessionCount: 2, AvgPercentile: heatmap.Float(66)},
		},
		ExerciseAverages: []heatmap.ExerciseAverage{
			{ExerciseName: "Burpees", TotalSessions: 4, OverallAvgPercentile: 50},
			{ExerciseName: "Thrusters", TotalSessions: 2, OverallAvgPercentile: 66},
		},
		GlobalFitnessScore:     heatmap.Float(61),
		TotalCompletedWorkouts: 5,
		DomainWorkoutCounts:    map[string]int{heatmap.Domain1To5: 1, heatmap.Domain5To10: 2, heatmap.Domain30Plus: 2},
	}
}

func loadCount(t *testing.T, metricsManager *metrics.Manager) uint64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, metricsManager.HistSnapshotLoadDuration.Write(m))
	return m.GetHistogram().GetSampleCount()
}

func TestService_Heatmap_CacheMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMocksnapshotRepo(ctrl)
	cache := NewMocksnapshotCache(ctrl)
	metricsManager := metrics.NewTestManager()
	service := metcons.NewService(repo, cache, metricsManager)

	snapshot := testSnapshot()
	repo.EXPECT().LatestProgramID(gomock.Any(), 3).Return(7, nil)
	cache.EXPECT().Get(gomock.Any(), 7, metcons.RangeAllTime).Return(nil, false)
	repo.EXPECT().Snapshot(gomock.Any(), 7, metcons.RangeAllTime).Return(snapshot, nil)
	cache.EXPECT().Set(gomock.Any(), snapshot)

	resp, err := service.Heatmap(context.Background(), metcons.HeatmapQuery{
		UserID: 3,
		Metric: heatmap.MetricPercentile,
		Range:  metcons.RangeAllTime,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, 7, resp.ProgramID)
	assert.Equal(t, metcons.RangeAllTime, resp.Range)
	assert.Equal(t, 5, resp.TotalCompletedWorkouts)
	assert.Equal(t, []string{heatmap.Domain1To5, heatmap.Domain5To10, heatmap.Domain30Plus}, resp.Domains)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "Burpees", resp.Rows[0].Exercise)
	assert.Equal(t, "50%", resp.Rows[0].RollupDisplay)
	assert.Equal(t, 4, resp.Rows[0].TotalSessions)
	assert.Equal(t, "61%", resp.Global.Display)

	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterHeatmaps.WithLabelValues("percentile")))
	assert.Equal(t, uint64(1), loadCount(t, metricsManager))
}

func TestService_Heatmap_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMocksnapshotRepo(ctrl)
	cache := NewMocksnapshotCache(ctrl)
	metricsManager := metrics.NewTestManager()
	service := metcons.NewService(repo, cache, metricsManager)

	repo.EXPECT().LatestProgramID(gomock.Any(), 3).Return(7, nil)
	cache.EXPECT().Get(gomock.Any(), 7, metcons.RangeLast30Days).Return(testSnapshot(), true)
	repo.EXPECT().Snapshot(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	resp, err := service.Heatmap(context.Background(), metcons.HeatmapQuery{
		UserID: 3,
		Metric: heatmap.MetricRPE,
		Chips:  []string{"1-5"},
		Range:  metcons.RangeLast30Days,
	})
	require.NoError(t, err)

	assert.Equal(t, heatmap.MetricRPE, resp.Metric)
	assert.Equal(t, []string{heatmap.Domain1To5}, resp.Domains)
	require.Len(t, resp.Rows, 2)
	require.Len(t, resp.Rows[0].Cells, 1)
	assert.Equal(t, "8.0", resp.Rows[0].Cells[0].Display)
	// row rollups ignore the chips: (8*1 + 6*3) / 4
	assert.Equal(t, "6.5", resp.Rows[0].RollupDisplay)

	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterHeatmaps.WithLabelValues("rpe")))
	assert.Equal(t, uint64(0), loadCount(t, metricsManager))
}

func TestService_Heatmap_Errors(t *testing.T) {
	t.Run("program not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMocksnapshotRepo(ctrl)
		cache := NewMocksnapshotCache(ctrl)
		service := metcons.NewService(repo, cache, nil)

		repo.EXPECT().LatestProgramID(gomock.Any(), 3).Return(0, metcons.ErrProgramNotFound)

		resp, err := service.Heatmap(context.Background(), metcons.HeatmapQuery{UserID: 3, Metric: heatmap.MetricPercentile})
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, metcons.ErrProgramNotFound)
	})

	t.Run("snapshot load fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMocksnapshotRepo(ctrl)
		cache := NewMocksnapshotCache(ctrl)
		service := metcons.NewService(repo, cache, nil)

		dbErr := errors.New("conn reset")
		repo.EXPECT().LatestProgramID(gomock.Any(), 3).Return(7, nil)
		cache.EXPECT().Get(gomock.Any(), 7, metcons.RangeAllTime).Return(nil, false)
		repo.EXPECT().Snapshot(gomock.Any(), 7, metcons.RangeAllTime).Return(nil, dbErr)
		cache.EXPECT().Set(gomock.Any(), gomock.Any()).Times(0)

		_, err := service.Heatmap(context.Background(), metcons.HeatmapQuery{UserID: 3, Range: metcons.RangeAllTime})
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("duplicate cells", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMocksnapshotRepo(ctrl)
		cache := NewMocksnapshotCache(ctrl)
		service := metcons.NewService(repo, cache, nil)

		snapshot := testSnapshot()
		snapshot.Cells = append(snapshot.Cells, snapshot.Cells[0])
		repo.EXPECT().LatestProgramID(gomock.Any(), 3).Return(7, nil)
		cache.EXPECT().Get(gomock.Any(), 7, metcons.RangeAllTime).Return(snapshot, true)

		_, err := service.Heatmap(context.Background(), metcons.HeatmapQuery{UserID: 3, Range: metcons.RangeAllTime})
		assert.ErrorIs(t, err, heatmap.ErrDuplicateCell)
	})
}

func TestService_Detail(t *testing.T) {
	testCases := []struct {
		name          string
		exercise      string
		domain        string
		expectFound   bool
		expectDisplay string
		expectDomain  string
		expectEx      string
	}{
		{
			name:          "cell",
			exercise:      "Burpees",
			domain:        heatmap.Domain5To10,
			expectFound:   true,
			expectDisplay: "40%",
			expectEx:      "Burpees",
			expectDomain:  heatmap.Domain5To10,
		},
		{
			name:          "exercise row",
			exercise:      "Burpees",
			expectFound:   true,
			expectDisplay: "50%",
			expectEx:      "Burpees",
			expectDomain:  heatmap.AllTimeDomains,
		},
		{
			name:          "domain column",
			domain:        heatmap.Domain30Plus,
			expectFound:   true,
			expectDisplay: "66%",
			expectEx:      heatmap.AllExercises,
			expectDomain:  heatmap.Domain30Plus,
		},
		{
			name:     "missing cell",
			exercise: "Thrusters",
			domain:   heatmap.Domain1To5,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := NewMocksnapshotRepo(ctrl)
			cache := NewMocksnapshotCache(ctrl)
			service := metcons.NewService(repo, cache, metrics.NewTestManager())

			repo.EXPECT().LatestProgramID(gomock.Any(), 3).Return(7, nil)
			cache.EXPECT().Get(gomock.Any(), 7, metcons.RangeAllTime).Return(testSnapshot(), true)

			detail, found, err := service.Detail(context.Background(), metcons.DetailQuery{
				UserID:   3,
				Exercise: tc.exercise,
				Domain:   tc.domain,
				Metric:   heatmap.MetricPercentile,
				Range:    metcons.RangeAllTime,
			})
			require.NoError(t, err)
			require.Equal(t, tc.expectFound, found)
			if !tc.expectFound {
				return
			}
			assert.Equal(t, tc.expectDisplay, detail.Display)
			assert.Equal(t, tc.expectEx, detail.Exercise)
			assert.Equal(t, tc.expectDomain, detail.TimeDomain)
		})
	}
}
