package calendar

import (
	"fmt"
	"time"

	"github.com/caley/caley/pkg/workout"
	"github.com/google/uuid"
)

const (
	MonthTitleLayout = "January 2006"
	DayHeadingLayout = "Jan 2, 2006"
)

var weekdayLetters = [DaysPerWeek]string{"S", "M", "T", "W", "T", "F", "S"}

// MonthView is everything needed to draw one month of the calendar.
type MonthView struct {
	Title    string
	Month    time.Time
	Weekdays []string
	Cells    []Cell
	Week     WeekNumber
	// WorkoutsThisWeek counts the week containing today, independently of the displayed month.
	WorkoutsThisWeek int
}

func (v MonthView) WeekSummary() string {
	return weekSummary(v.WorkoutsThisWeek)
}

func weekSummary(count int) string {
	return fmt.Sprintf("You have done %d workouts this week", count)
}

type DayView struct {
	Date     time.Time
	Heading  string
	Workouts []DayEntry
}

// DayEntry is a workout with the display fallbacks already applied.
type DayEntry struct {
	Id          uuid.UUID
	Title       string
	Description string
	Rating      int
	Date        time.Time
}

func (c Calendar) MonthTitle(month time.Time) string {
	return month.In(c.location()).Format(MonthTitleLayout)
}

// WeekdayHeaders returns the single-letter column headers starting at the configured first day.
func (c Calendar) WeekdayHeaders() []string {
	headers := make([]string, 0, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		headers = append(headers, weekdayLetters[(int(c.firstDay())+i)%DaysPerWeek])
	}
	return headers
}

func (c Calendar) DayHeading(day time.Time) string {
	return "Add Workout for " + day.In(c.location()).Format(DayHeadingLayout)
}

func newDayEntry(w workout.Workout) DayEntry {
	return DayEntry{
		Id:          w.Id,
		Title:       w.DisplayTitle(),
		Description: w.DisplayDescription(),
		Rating:      w.Rating,
		Date:        w.Date,
	}
}
