package workout

import (
	"math"
	"strings"
	"time"
)

// Dates are stored as Unix nanoseconds.
var (
	earliestDate = time.Unix(0, math.MinInt64)
	latestDate   = time.Unix(0, math.MaxInt64)
)

// Draft is the editor state of a workout that has not been saved yet.
type Draft struct {
	Title       string
	Description string
	Rating      int
	Date        time.Time
}

// NewDraft returns an empty draft for date with the lowest rating selected.
func NewDraft(date time.Time) Draft {
	return Draft{Rating: MinRating, Date: date}
}

// DraftFrom pre-fills a draft with the values of an existing workout.
func DraftFrom(w Workout) Draft {
	d := Draft{Rating: w.Rating, Date: w.Date}
	if w.Title != nil {
		d.Title = *w.Title
	}
	if w.Description != nil {
		d.Description = *w.Description
	}
	return d
}

// StepRating moves the rating by delta, staying within the allowed range.
func (d *Draft) StepRating(delta int) {
	d.Rating = ClampRating(d.Rating + delta)
}

// Reset clears the draft after a save, keeping its date.
func (d *Draft) Reset() {
	*d = NewDraft(d.Date)
}

func (d Draft) Validate() error {
	if d.Rating < MinRating || d.Rating > MaxRating {
		return &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	if d.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	if d.Date.Before(earliestDate) || d.Date.After(latestDate) {
		return &ValidationError{Field: "date", Reason: "must be between years 1678 and 2262"}
	}
	return nil
}

// applyTo copies the draft fields onto w. Blank texts are stored as absent.
func (d Draft) applyTo(w *Workout) {
	w.Title = optionalText(d.Title)
	w.Description = optionalText(d.Description)
	w.Rating = d.Rating
	w.Date = d.Date
}

func optionalText(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
