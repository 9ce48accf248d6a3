package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/caley/caley/internal/utils"
	"github.com/caley/caley/pkg/workout"
)

// WorkoutReader is the read side of the workout store.
type WorkoutReader interface {
	ListAll(ctx context.Context) ([]workout.Workout, error)
	ListForDay(ctx context.Context, day time.Time) ([]workout.Workout, error)
}

type Service interface {
	// GetMonthView builds the month containing referenceDate shifted by shift months.
	GetMonthView(ctx context.Context, referenceDate time.Time, shift int) (MonthView, error)
	GetDayView(ctx context.Context, day time.Time) (DayView, error)
	// GetWeekSummary counts the workouts of the week containing now.
	GetWeekSummary(ctx context.Context) (WeekSummary, error)
	Calendar() Calendar
}

type WeekSummary struct {
	Week  Week
	Count int
}

func (s WeekSummary) Message() string {
	return weekSummary(s.Count)
}

type ServiceImpl struct {
	workouts WorkoutReader
	calendar Calendar
	clock    utils.Clock
}

func NewService(workouts WorkoutReader, calendar Calendar, clock utils.Clock) *ServiceImpl {
	if clock == nil {
		clock = utils.SystemClock{Location: calendar.Location}
	}
	return &ServiceImpl{workouts, calendar, clock}
}

func (s *ServiceImpl) Calendar() Calendar {
	return s.calendar
}

func (s *ServiceImpl) GetMonthView(ctx context.Context, referenceDate time.Time, shift int) (MonthView, error) {
	if referenceDate.IsZero() {
		referenceDate = s.clock.Now()
	}
	month := s.calendar.StartOfMonth(s.calendar.ShiftMonth(referenceDate, shift))

	all, err := s.workouts.ListAll(ctx)
	if err != nil {
		return MonthView{}, fmt.Errorf("failed to load workouts: %w", err)
	}

	now := s.clock.Now()
	return MonthView{
		Title:            s.calendar.MonthTitle(month),
		Month:            month,
		Weekdays:         s.calendar.WeekdayHeaders(),
		Cells:            s.calendar.BuildMonthGrid(month, all),
		Week:             s.calendar.WeekNumberFromDate(now),
		WorkoutsThisWeek: s.calendar.CountWorkoutsInWeek(all, now),
	}, nil
}

func (s *ServiceImpl) GetDayView(ctx context.Context, day time.Time) (DayView, error) {
	start := s.calendar.StartOfDay(day)
	workouts, err := s.workouts.ListForDay(ctx, start)
	if err != nil {
		return DayView{}, fmt.Errorf("failed to load workouts for %s: %w", start.Format(time.DateOnly), err)
	}

	entries := make([]DayEntry, 0, len(workouts))
	for _, w := range workouts {
		entries = append(entries, newDayEntry(w))
	}
	return DayView{
		Date:     start,
		Heading:  s.calendar.DayHeading(start),
		Workouts: entries,
	}, nil
}

func (s *ServiceImpl) GetWeekSummary(ctx context.Context) (WeekSummary, error) {
	all, err := s.workouts.ListAll(ctx)
	if err != nil {
		return WeekSummary{}, fmt.Errorf("failed to load workouts: %w", err)
	}
	now := s.clock.Now()
	return WeekSummary{
		Week:  s.calendar.WeekOf(now),
		Count: s.calendar.CountWorkoutsInWeek(all, now),
	}, nil
}
