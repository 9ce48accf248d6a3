package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/caley/caley/internal/utils"
	"github.com/caley/caley/pkg/workout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func setupService(t *testing.T, cal Calendar, now time.Time) (*ServiceImpl, *workout.ServiceImpl, *workout.RepositoryStub) {
	t.Helper()
	repo := workout.NewRepositoryStub()
	store := workout.NewService(repo, cal.Location, nil, nil)
	return NewService(store, cal, &utils.MockClock{FixedNow: now}), store, repo
}

func createWorkout(t *testing.T, store workout.Service, draft workout.Draft) workout.Workout {
	t.Helper()
	created, err := store.Create(ctx, draft)
	require.NoError(t, err)
	return created
}

func TestServiceImpl_GetMonthView(t *testing.T) {
	now := time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)

	t.Run("should build the month with counts and the week summary", func(t *testing.T) {
		// given
		service, store, _ := setupService(t, sundayFirst, now)
		createWorkout(t, store, workout.Draft{Rating: 3, Date: time.Date(2024, 3, 11, 7, 0, 0, 0, time.UTC)})
		createWorkout(t, store, workout.Draft{Rating: 3, Date: time.Date(2024, 3, 11, 19, 0, 0, 0, time.UTC)})
		createWorkout(t, store, workout.Draft{Rating: 3, Date: time.Date(2024, 3, 2, 7, 0, 0, 0, time.UTC)})

		// when
		view, err := service.GetMonthView(ctx, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), 0)

		// then
		require.NoError(t, err)
		assert.Equal(t, "March 2024", view.Title)
		assert.Equal(t, []string{"S", "M", "T", "W", "T", "F", "S"}, view.Weekdays)
		require.Len(t, view.Cells, 36)
		assert.Equal(t, 2, view.Cells[5+10].WorkoutCount)
		assert.Equal(t, 1.0, view.Cells[5+10].Intensity())
		assert.Equal(t, 0.5, view.Cells[5+1].Intensity())
		assert.Equal(t, 2, view.WorkoutsThisWeek)
		assert.Equal(t, "You have done 2 workouts this week", view.WeekSummary())
		assert.Equal(t, "2024-W10", view.Week.String())
	})

	t.Run("should keep counting the current week when another month is shown", func(t *testing.T) {
		// given
		service, store, _ := setupService(t, mondayFirst, now)
		createWorkout(t, store, workout.Draft{Rating: 1, Date: time.Date(2024, 3, 12, 7, 0, 0, 0, time.UTC)})

		// when
		view, err := service.GetMonthView(ctx, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 1)

		// then
		require.NoError(t, err)
		assert.Equal(t, "February 2024", view.Title)
		assert.Equal(t, []string{"M", "T", "W", "T", "F", "S", "S"}, view.Weekdays)
		assert.Len(t, view.Cells, 3+29)
		assert.Equal(t, 1, view.WorkoutsThisWeek)
	})

	t.Run("should default to the current month", func(t *testing.T) {
		service, _, _ := setupService(t, sundayFirst, now)

		view, err := service.GetMonthView(ctx, time.Time{}, -1)

		require.NoError(t, err)
		assert.Equal(t, "February 2024", view.Title)
	})

	t.Run("should fail when workouts cannot be loaded", func(t *testing.T) {
		// given
		service, _, repo := setupService(t, sundayFirst, now)
		repo.FailWith = errors.New("disk full")

		// when
		_, err := service.GetMonthView(ctx, now, 0)

		// then
		assert.ErrorIs(t, err, workout.ErrPersistence)
	})
}

func TestServiceImpl_GetDayView(t *testing.T) {
	t.Run("should list the day with display fallbacks", func(t *testing.T) {
		// given
		service, store, _ := setupService(t, sundayFirst, time.Now())
		created := createWorkout(t, store, workout.Draft{Rating: 3, Date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)})
		createWorkout(t, store, workout.Draft{Title: "Other day", Rating: 2, Date: time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)})

		// when
		view, err := service.GetDayView(ctx, time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC))

		// then
		require.NoError(t, err)
		assert.Equal(t, "Add Workout for Mar 15, 2024", view.Heading)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), view.Date)
		require.Len(t, view.Workouts, 1)
		assert.Equal(t, DayEntry{
			Id:          created.Id,
			Title:       workout.UntitledTitle,
			Description: workout.NoDescriptionMessage,
			Rating:      3,
			Date:        created.Date,
		}, view.Workouts[0])
	})

	t.Run("should return an empty list for a day without workouts", func(t *testing.T) {
		service, _, _ := setupService(t, sundayFirst, time.Now())

		view, err := service.GetDayView(ctx, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC))

		require.NoError(t, err)
		assert.Empty(t, view.Workouts)
	})
}

func TestServiceImpl_GetWeekSummary(t *testing.T) {
	// given
	clock := &utils.MockClock{FixedNow: time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)}
	store := workout.NewService(workout.NewRepositoryStub(), time.UTC, nil, nil)
	service := NewService(store, sundayFirst, clock)
	createWorkout(t, store, workout.Draft{Rating: 1, Date: time.Date(2024, 3, 16, 7, 0, 0, 0, time.UTC)})

	// when
	summary, err := service.GetWeekSummary(ctx)

	// then
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Count)
	assert.Equal(t, "You have done 1 workouts this week", summary.Message())

	// when
	clock.Advance(7 * 24 * time.Hour)
	summary, err = service.GetWeekSummary(ctx)

	// then
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Count)
	assert.Equal(t, "2024-W11", summary.Week.Number.String())
}
