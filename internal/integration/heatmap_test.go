//go:build integration_test || all_tests

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/2beens/metconstats/internal/heatmap"
	"github.com/2beens/metconstats/internal/metcons"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = 7

// seedHeatmapData stores one program with three completed metcons (one of them
// with a legacy time range label) and one that was never completed.
func (s *IntegrationTestSuite) seedHeatmapData(t *testing.T) {
	t.Helper()
	now := time.Now().UTC()

	var programID, fran, helen int
	require.NoError(t, s.DB.QueryRow(
		`INSERT INTO programs (user_id, generated_at) VALUES ($1, $2) RETURNING id;`,
		testUserID, now.AddDate(0, -1, 0),
	).Scan(&programID))
	require.NoError(t, s.DB.QueryRow(
		`INSERT INTO metcons (name, time_range, tasks) VALUES ($1, $2, $3) RETURNING id;`,
		"Fran", "1:00 - 5:00", `[{"exercise":"Thrusters"},{"exercise":"Burpees"}]`,
	).Scan(&fran))
	require.NoError(t, s.DB.QueryRow(
		`INSERT INTO metcons (name, time_range, tasks) VALUES ($1, $2, $3) RETURNING id;`,
		"Long Row", heatmap.Domain20To30, `[{"exercise":"Rowing"}]`,
	).Scan(&helen))

	insertSession := `INSERT INTO program_metcons
		(program_id, metcon_id, percentile, avg_rpe, completed_at)
		VALUES ($1, $2, $3, $4, $5);`
	_, err := s.DB.Exec(insertSession, programID, fran, 80, 8, now.AddDate(0, 0, -3))
	require.NoError(t, err)
	_, err = s.DB.Exec(insertSession, programID, fran, 60, nil, now.AddDate(0, 0, -10))
	require.NoError(t, err)
	_, err = s.DB.Exec(insertSession, programID, helen, 30, 9, now.AddDate(0, 0, -50))
	require.NoError(t, err)
	_, err = s.DB.Exec(insertSession, programID, helen, nil, nil, nil)
	require.NoError(t, err)
}

func (s *IntegrationTestSuite) get(ctx context.Context, t *testing.T, endpoint string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, body
}

func heatmapURL(userID int, query url.Values) string {
	return fmt.Sprintf("%s/metcons/users/%d/heatmap?%s", serverEndpoint, userID, query.Encode())
}

func (s *IntegrationTestSuite) TestHeatmap() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.seedHeatmapData(s.T())

	s.T().Run("percentile heatmap, all time", func(t *testing.T) {
		status, body := s.get(ctx, t, heatmapURL(testUserID, url.Values{}))
		require.Equal(t, http.StatusOK, status, string(body))

		var resp metcons.HeatmapResponse
		require.NoError(t, json.Unmarshal(body, &resp))

		assert.Equal(t, metcons.RangeAllTime, resp.Range)
		assert.Equal(t, 3, resp.TotalCompletedWorkouts)
		assert.False(t, resp.Empty)
		assert.Equal(t, []string{heatmap.Domain1To5, heatmap.Domain20To30}, resp.Domains)

		require.Len(t, resp.Rows, 3)
		assert.Equal(t, "Burpees", resp.Rows[0].Exercise)
		assert.Equal(t, "Rowing", resp.Rows[1].Exercise)
		assert.Equal(t, "Thrusters", resp.Rows[2].Exercise)

		burpees := resp.Rows[0]
		assert.Equal(t, "70%", burpees.RollupDisplay)
		assert.Equal(t, 2, burpees.TotalSessions)
		require.Len(t, burpees.Cells, 2)
		assert.Equal(t, "70%", burpees.Cells[0].Display)
		assert.Equal(t, 2, burpees.Cells[0].Sessions)
		assert.Equal(t, heatmap.NoData, burpees.Cells[1].Display)

		require.Len(t, resp.Columns, 2)
		assert.Equal(t, 2, resp.Columns[0].Workouts)
		assert.Equal(t, 1, resp.Columns[1].Workouts)

		require.NotNil(t, resp.Global.Value)
		assert.Equal(t, 57.0, *resp.Global.Value)
		assert.Equal(t, "57%", resp.Global.Display)
	})

	s.T().Run("time domain chips and range", func(t *testing.T) {
		status, body := s.get(ctx, t, heatmapURL(testUserID, url.Values{
			"metric": {"rpe"},
			"time":   {"20+"},
		}))
		require.Equal(t, http.StatusOK, status, string(body))

		var resp metcons.HeatmapResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, []string{heatmap.Domain20To30}, resp.Domains)
		assert.Equal(t, "9.0", resp.Rows[1].Cells[0].Display)

		status, body = s.get(ctx, t, heatmapURL(testUserID, url.Values{
			"range": {string(metcons.RangeLast30Days)},
		}))
		require.Equal(t, http.StatusOK, status, string(body))

		resp = metcons.HeatmapResponse{}
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, 2, resp.TotalCompletedWorkouts)
		assert.Equal(t, []string{heatmap.Domain1To5}, resp.Domains)
		assert.Len(t, resp.Rows, 2)
	})

	s.T().Run("cell detail", func(t *testing.T) {
		endpoint := fmt.Sprintf("%s/metcons/users/%d/heatmap/cell?%s", serverEndpoint, testUserID, url.Values{
			"exercise": {"Burpees"},
			"domain":   {heatmap.Domain1To5},
		}.Encode())
		status, body := s.get(ctx, t, endpoint)
		require.Equal(t, http.StatusOK, status, string(body))

		var detail heatmap.Detail
		require.NoError(t, json.Unmarshal(body, &detail))
		assert.Equal(t, "Burpees", detail.Exercise)
		assert.Equal(t, heatmap.Domain1To5, detail.TimeDomain)
		assert.Equal(t, 2, detail.Sessions)
		assert.Equal(t, "70%", detail.Display)

		endpoint = fmt.Sprintf("%s/metcons/users/%d/heatmap/cell?%s", serverEndpoint, testUserID, url.Values{
			"exercise": {"Rowing"},
			"domain":   {heatmap.Domain1To5},
		}.Encode())
		status, _ = s.get(ctx, t, endpoint)
		assert.Equal(t, http.StatusNotFound, status)
	})

	s.T().Run("bad requests", func(t *testing.T) {
		status, _ := s.get(ctx, t, heatmapURL(999, url.Values{}))
		assert.Equal(t, http.StatusNotFound, status)

		status, _ = s.get(ctx, t, heatmapURL(testUserID, url.Values{"metric": {"power"}}))
		assert.Equal(t, http.StatusBadRequest, status)

		status, _ = s.get(ctx, t, heatmapURL(testUserID, url.Values{"range": {"last_week"}}))
		assert.Equal(t, http.StatusBadRequest, status)
	})

	s.T().Run("metrics exposed", func(t *testing.T) {
		status, body := s.get(ctx, t, metricsEndpoint)
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(body), `metcons_main_heatmaps{metric="percentile"}`)
		assert.Contains(t, string(body), `metcons_main_snapshot_cache_lookups{layer="local",result="hit"}`)
		assert.Contains(t, string(body), "pgxpool_")
	})
}

func (s *IntegrationTestSuite) TestHealthAndVersion() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	status, body := s.get(ctx, s.T(), serverEndpoint+"/health")
	require.Equal(s.T(), http.StatusOK, status)

	var health struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(s.T(), json.Unmarshal(body, &health))
	assert.Equal(s.T(), "ok", health.Status)
	assert.Equal(s.T(), map[string]string{"postgres": "ok", "redis": "ok"}, health.Checks)

	status, body = s.get(ctx, s.T(), serverEndpoint+"/version")
	assert.Equal(s.T(), http.StatusOK, status)
	assert.Equal(s.T(), "test-version-info", string(body))
}
