package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/caley/caley/internal/config"
	"github.com/caley/caley/pkg/calendar"
	"github.com/caley/caley/pkg/workout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, driver config.StorageDriver) config.Application {
	t.Helper()
	cfg := config.Defaults()
	cfg.Calendar.Timezone = "UTC"
	cfg.Storage.Driver = driver
	switch driver {
	case config.SqliteStorage:
		cfg.Storage.Path = ":memory:"
	case config.BoltStorage:
		cfg.Storage.Path = filepath.Join(t.TempDir(), "caley.bolt")
	}
	return cfg
}

func startServer(t *testing.T, cfg config.Application) *httptest.Server {
	t.Helper()
	application, err := NewApplication(cfg)
	require.NoError(t, err)
	server := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		server.Close()
		require.NoError(t, application.Close())
	})
	return server
}

func TestApplication(t *testing.T) {
	for _, driver := range []config.StorageDriver{config.SqliteStorage, config.BoltStorage} {
		t.Run("should record a workout and show it in the calendar with "+string(driver), func(t *testing.T) {
			// given
			server := startServer(t, testConfig(t, driver))
			body, err := json.Marshal(workout.WorkoutRequestDTO{Title: "Climbing", Rating: 4, Date: "2024-03-15T17:00:00Z"})
			require.NoError(t, err)

			// when
			resp, err := http.Post(server.URL+"/api/workout", "application/json", bytes.NewReader(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			// then
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			month := getJSON[calendar.MonthViewDTO](t, server.URL+"/api/calendar/month?date=2024-03-01")
			assert.Equal(t, "March 2024", month.Title)
			require.Len(t, month.Cells, 36)
			assert.Equal(t, 1, month.Cells[19].WorkoutCount)

			day := getJSON[calendar.DayViewDTO](t, server.URL+"/api/calendar/day?date=2024-03-15")
			require.Len(t, day.Workouts, 1)
			assert.Equal(t, "Climbing", day.Workouts[0].Title)
		})
	}

	t.Run("should expose workout change metrics", func(t *testing.T) {
		// given
		server := startServer(t, testConfig(t, config.SqliteStorage))
		body, err := json.Marshal(workout.WorkoutRequestDTO{Rating: 2, Date: "2024-03-15"})
		require.NoError(t, err)
		resp, err := http.Post(server.URL+"/api/workout", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()

		// when
		resp, err = http.Get(server.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()

		// then
		require.Equal(t, http.StatusOK, resp.StatusCode)
		payload, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(payload), `caley_server_workout_changes{kind="created"} 1`)
		assert.Contains(t, string(payload), `caley_server_request{method="POST",status="201"} 1`)
	})

	t.Run("should not serve metrics when disabled", func(t *testing.T) {
		cfg := testConfig(t, config.SqliteStorage)
		cfg.Metrics.Enabled = false
		server := startServer(t, cfg)

		resp, err := http.Get(server.URL + "/metrics")
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestNewApplication_InvalidConfiguration(t *testing.T) {
	t.Run("should reject unknown storage driver", func(t *testing.T) {
		cfg := testConfig(t, "cassandra")

		_, err := NewApplication(cfg)

		assert.ErrorContains(t, err, "unknown storage driver")
	})

	t.Run("should reject unknown timezone", func(t *testing.T) {
		cfg := testConfig(t, config.SqliteStorage)
		cfg.Calendar.Timezone = "Nowhere/Special"

		_, err := NewApplication(cfg)

		assert.ErrorContains(t, err, "invalid calendar configuration")
	})
}

func getJSON[T any](t *testing.T, url string) T {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}
