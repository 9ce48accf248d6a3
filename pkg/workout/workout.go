package workout

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5

	UntitledTitle        = "Untitled"
	NoDescriptionMessage = "No description"
)

type Workout struct {
	Id          uuid.UUID
	Title       *string // nil when the user gave none
	Description *string // nil when the user gave none
	Rating      int
	// Date attributes the workout to a calendar day. It keeps full time-of-day precision.
	Date time.Time
}

// DisplayTitle returns the title shown to the user.
func (w Workout) DisplayTitle() string {
	if w.Title == nil {
		return UntitledTitle
	}
	return *w.Title
}

func (w Workout) DisplayDescription() string {
	if w.Description == nil {
		return NoDescriptionMessage
	}
	return *w.Description
}

// ClampRating forces rating into [MinRating, MaxRating].
func ClampRating(rating int) int {
	if rating < MinRating {
		return MinRating
	}
	if rating > MaxRating {
		return MaxRating
	}
	return rating
}

// sortByDate orders workouts by date ascending, then by id to keep equal timestamps stable.
func sortByDate(workouts []Workout) {
	sort.SliceStable(workouts, func(i, j int) bool {
		if !workouts[i].Date.Equal(workouts[j].Date) {
			return workouts[i].Date.Before(workouts[j].Date)
		}
		return workouts[i].Id.String() < workouts[j].Id.String()
	})
}
