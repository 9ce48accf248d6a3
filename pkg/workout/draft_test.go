package workout

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraft(t *testing.T) {
	date := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

	t.Run("should start new drafts at the lowest rating", func(t *testing.T) {
		draft := NewDraft(date)

		assert.Equal(t, MinRating, draft.Rating)
		assert.Equal(t, date, draft.Date)
		assert.Empty(t, draft.Title)
	})

	t.Run("should clamp rating steps to the allowed range", func(t *testing.T) {
		// given
		draft := NewDraft(date)

		// when
		draft.StepRating(-1)

		// then
		assert.Equal(t, 1, draft.Rating)

		// when
		draft.StepRating(10)

		// then
		assert.Equal(t, 5, draft.Rating)
	})

	t.Run("should pre-fill from an existing workout", func(t *testing.T) {
		// given
		title := "Morning run"
		workout := Workout{Id: uuid.New(), Title: &title, Rating: 4, Date: date}

		// when
		draft := DraftFrom(workout)

		// then
		assert.Equal(t, Draft{Title: "Morning run", Description: "", Rating: 4, Date: date}, draft)
	})

	t.Run("should reset everything but the date", func(t *testing.T) {
		// given
		draft := Draft{Title: "Swim", Description: "1km", Rating: 5, Date: date}

		// when
		draft.Reset()

		// then
		assert.Equal(t, NewDraft(date), draft)
	})
}

func TestDraft_Validate(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		draft Draft
		field string
	}{
		{"rating below range", Draft{Rating: 0, Date: date}, "rating"},
		{"rating above range", Draft{Rating: 6, Date: date}, "rating"},
		{"missing date", Draft{Rating: 3}, "date"},
		{"date before 1678", Draft{Rating: 3, Date: time.Date(1600, 1, 1, 0, 0, 0, 0, time.UTC)}, "date"},
		{"date after 2262", Draft{Rating: 3, Date: time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC)}, "date"},
	}
	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			err := tt.draft.Validate()

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.ErrorIs(t, err, ErrInvalidWorkout)
		})
	}

	t.Run("should accept a draft without title", func(t *testing.T) {
		assert.NoError(t, Draft{Rating: 3, Date: date}.Validate())
	})

	t.Run("should accept dates at the storable bounds", func(t *testing.T) {
		assert.NoError(t, Draft{Rating: 3, Date: earliestDate}.Validate())
		assert.NoError(t, Draft{Rating: 3, Date: latestDate}.Validate())
	})
}

func TestDraft_applyTo(t *testing.T) {
	t.Run("should store blank texts as absent", func(t *testing.T) {
		// given
		var workout Workout
		draft := Draft{Title: "   ", Description: "", Rating: 2, Date: time.Now()}

		// when
		draft.applyTo(&workout)

		// then
		assert.Nil(t, workout.Title)
		assert.Nil(t, workout.Description)
		assert.Equal(t, UntitledTitle, workout.DisplayTitle())
		assert.Equal(t, NoDescriptionMessage, workout.DisplayDescription())
	})
}
