package calendar

import (
	"math"
	"time"

	"github.com/caley/caley/pkg/workout"
)

const DaysPerWeek = 7

type CellStyle string

const (
	StyleEmpty  CellStyle = "empty"
	StyleActive CellStyle = "active"
)

// Cell is one position of the month grid. Date is only meaningful for day cells.
type Cell struct {
	Date         time.Time
	WorkoutCount int
	Placeholder  bool
}

func (c Cell) IsPlaceholder() bool {
	return c.Placeholder
}

func (c Cell) Style() CellStyle {
	if c.WorkoutCount > 0 {
		return StyleActive
	}
	return StyleEmpty
}

func (c Cell) Intensity() float64 {
	return Intensity(c.WorkoutCount)
}

// Intensity maps a day's workout count to a color strength in [0, 1], saturating at two workouts.
func Intensity(workoutCount int) float64 {
	if workoutCount <= 0 {
		return 0
	}
	return math.Min(float64(workoutCount)/2.0, 1.0)
}

// BuildMonthGrid lays out the month containing referenceDate: one placeholder per column before day 1,
// then one cell per day carrying its workout count.
func (c Calendar) BuildMonthGrid(referenceDate time.Time, workouts []workout.Workout) []Cell {
	first := c.StartOfMonth(referenceDate)
	offset := c.weekdayOffset(first)
	days := DaysInMonth(first.Year(), first.Month())

	counts := c.countByDay(workouts)

	cells := make([]Cell, 0, offset+days)
	for i := 0; i < offset; i++ {
		cells = append(cells, Cell{Placeholder: true})
	}
	for day := 1; day <= days; day++ {
		date := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, c.location())
		cells = append(cells, Cell{
			Date:         date,
			WorkoutCount: counts[dayKeyOf(date)],
		})
	}
	return cells
}

func (c Calendar) countByDay(workouts []workout.Workout) map[dayKey]int {
	counts := make(map[dayKey]int, len(workouts))
	for _, w := range workouts {
		counts[dayKeyOf(w.Date.In(c.location()))]++
	}
	return counts
}

// ShiftMonth moves referenceDate by whole months. The day of month is clamped to the target month,
// so Jan 31 plus one month is the last day of February.
func (c Calendar) ShiftMonth(referenceDate time.Time, deltaMonths int) time.Time {
	local := referenceDate.In(c.location())
	year, month, day := local.Date()

	months := int(month) - 1 + deltaMonths
	year += floorDiv(months, 12)
	month = time.Month(months-floorDiv(months, 12)*12) + 1

	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	hour, minute, second := local.Clock()
	return time.Date(year, month, day, hour, minute, second, local.Nanosecond(), c.location())
}

// StartOfWeek returns local midnight of the configured first day of the week containing t.
func (c Calendar) StartOfWeek(t time.Time) time.Time {
	start := c.StartOfDay(t)
	return start.AddDate(0, 0, -c.weekdayOffset(start))
}

// CountWorkoutsInWeek counts the workouts dated within the seven days of the week containing today.
func (c Calendar) CountWorkoutsInWeek(workouts []workout.Workout, today time.Time) int {
	week := c.WeekOf(today)

	count := 0
	for _, w := range workouts {
		if week.Contains(w.Date) {
			count++
		}
	}
	return count
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
