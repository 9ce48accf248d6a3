package calendar

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/caley/caley/pkg/workout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*Handler, workout.Service) {
	t.Helper()
	service, store, _ := setupService(t, sundayFirst, time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC))
	return NewHandler(service), store
}

func TestHandler_GetMonth(t *testing.T) {
	t.Run("should return the month grid", func(t *testing.T) {
		// given
		handler, store := setupHandlerTest(t)
		createWorkout(t, store, workout.Draft{Rating: 2, Date: time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)})
		req := httptest.NewRequest(http.MethodGet, "/api/calendar/month?date=2024-03-15", nil)
		w := httptest.NewRecorder()

		// when
		handler.GetMonth(w, req)

		// then
		require.Equal(t, http.StatusOK, w.Code)
		var view MonthViewDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
		assert.Equal(t, "March 2024", view.Title)
		assert.Equal(t, "2024-03", view.Month)
		require.Len(t, view.Cells, 36)
		assert.Nil(t, view.Cells[0].Date)
		assert.Equal(t, "empty", view.Cells[0].Style)
		require.NotNil(t, view.Cells[19].Date)
		assert.Equal(t, "2024-03-15", *view.Cells[19].Date)
		assert.Equal(t, 1, view.Cells[19].WorkoutCount)
		assert.Equal(t, "active", view.Cells[19].Style)
		assert.Equal(t, 0.5, view.Cells[19].Intensity)
		assert.Equal(t, 1, view.WorkoutsThisWeek)
		assert.Equal(t, "You have done 1 workouts this week", view.Summary)
	})

	t.Run("should apply the month shift", func(t *testing.T) {
		handler, _ := setupHandlerTest(t)
		req := httptest.NewRequest(http.MethodGet, "/api/calendar/month?date=2024-12-31&shift=2", nil)
		w := httptest.NewRecorder()

		handler.GetMonth(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var view MonthViewDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
		assert.Equal(t, "February 2025", view.Title)
	})

	t.Run("should reject invalid parameters", func(t *testing.T) {
		handler, _ := setupHandlerTest(t)
		for _, target := range []string{"/api/calendar/month?date=tomorrow", "/api/calendar/month?shift=next"} {
			w := httptest.NewRecorder()

			handler.GetMonth(w, httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, http.StatusBadRequest, w.Code, target)
		}
	})
}

func TestHandler_GetDay(t *testing.T) {
	t.Run("should return the day view", func(t *testing.T) {
		// given
		handler, store := setupHandlerTest(t)
		createWorkout(t, store, workout.Draft{Title: "Swim", Rating: 4, Date: time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)})
		w := httptest.NewRecorder()

		// when
		handler.GetDay(w, httptest.NewRequest(http.MethodGet, "/api/calendar/day?date=2024-03-15", nil))

		// then
		require.Equal(t, http.StatusOK, w.Code)
		var view DayViewDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
		assert.Equal(t, "2024-03-15", view.Date)
		assert.Equal(t, "Add Workout for Mar 15, 2024", view.Heading)
		require.Len(t, view.Workouts, 1)
		assert.Equal(t, "Swim", view.Workouts[0].Title)
		assert.Equal(t, workout.NoDescriptionMessage, view.Workouts[0].Description)
	})

	t.Run("should require a date", func(t *testing.T) {
		handler, _ := setupHandlerTest(t)
		w := httptest.NewRecorder()

		handler.GetDay(w, httptest.NewRequest(http.MethodGet, "/api/calendar/day", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetWeek(t *testing.T) {
	// given
	handler, store := setupHandlerTest(t)
	createWorkout(t, store, workout.Draft{Rating: 4, Date: time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)})
	w := httptest.NewRecorder()

	// when
	handler.GetWeek(w, httptest.NewRequest(http.MethodGet, "/api/calendar/week", nil))

	// then
	require.Equal(t, http.StatusOK, w.Code)
	var week WeekDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&week))
	assert.Equal(t, "2024-W10", week.Week)
	assert.Equal(t, 1, week.Count)
	assert.True(t, week.Start.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)))
}
