package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Calendar holds the locale-independent settings every date computation uses. Host settings are never consulted.
type Calendar struct {
	Location     *time.Location
	WeekFirstDay time.Weekday
}

// NewCalendar resolves an IANA timezone name and a weekday name ("sunday", "Mon", ...).
func NewCalendar(timezone string, weekFirstDay string) (Calendar, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return Calendar{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	firstDay := time.Sunday
	if weekFirstDay != "" {
		firstDay, err = ParseWeekday(weekFirstDay)
		if err != nil {
			return Calendar{}, err
		}
	}
	return Calendar{Location: location, WeekFirstDay: firstDay}, nil
}

func ParseWeekday(name string) (time.Weekday, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for day := time.Sunday; day <= time.Saturday; day++ {
		full := strings.ToLower(day.String())
		if normalized == full || (len(normalized) >= 3 && strings.HasPrefix(full, normalized)) {
			return day, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid week day %q", name)
}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

func (c Calendar) firstDay() time.Weekday {
	if c.WeekFirstDay < time.Sunday || c.WeekFirstDay > time.Saturday {
		return time.Sunday
	}
	return c.WeekFirstDay
}

// StartOfDay returns local midnight of the day containing t.
func (c Calendar) StartOfDay(t time.Time) time.Time {
	local := t.In(c.location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.location())
}

func (c Calendar) StartOfMonth(t time.Time) time.Time {
	local := t.In(c.location())
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, c.location())
}

// SameDay reports whether both instants fall on the same local calendar day.
func (c Calendar) SameDay(a, b time.Time) bool {
	return dayKeyOf(a.In(c.location())) == dayKeyOf(b.In(c.location()))
}

// weekdayOffset is the column of t in a week starting on the configured first day.
func (c Calendar) weekdayOffset(t time.Time) int {
	return (int(t.In(c.location()).Weekday()) - int(c.firstDay()) + 7) % 7
}

// DaysInMonth returns 28 to 31, leap years included.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

func dayKeyOf(local time.Time) dayKey {
	y, m, d := local.Date()
	return dayKey{y, m, d}
}
