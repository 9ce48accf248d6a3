package calendar

import (
	"fmt"
	"time"
)

type WeekNumber struct {
	Week int
	Year int
}

// WeekNumberFromDate returns the ISO week number of the week containing the provided date, taking
// the week start day into account. A start day earlier than Monday can shift the ISO week into the
// previous calendar week.
func (c Calendar) WeekNumberFromDate(date time.Time) WeekNumber {
	year, week := c.StartOfWeek(date).ISOWeek()
	return WeekNumber{Year: year, Week: week}
}

// Equal returns true when both the year and week match.
func (w WeekNumber) Equal(other WeekNumber) bool {
	return w.Year == other.Year && w.Week == other.Week
}

// String returns the ISO 8601 week format, e.g. "2025-W03"
func (w WeekNumber) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Week)
}

// Week is the seven-day window [Start, End) of a calendar week.
type Week struct {
	Number WeekNumber
	Start  time.Time
	End    time.Time
}

func (c Calendar) WeekOf(date time.Time) Week {
	start := c.StartOfWeek(date)
	return Week{
		Number: c.WeekNumberFromDate(date),
		Start:  start,
		End:    start.AddDate(0, 0, DaysPerWeek),
	}
}

func (w Week) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
