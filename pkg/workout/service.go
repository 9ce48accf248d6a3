package workout

import (
	"context"
	"errors"
	"time"

	"github.com/caley/caley/internal/event_bus"
	"github.com/caley/caley/internal/metrics"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	ListAll(ctx context.Context) ([]Workout, error)
	// ListForDay returns the workouts dated within the calendar day containing day.
	ListForDay(ctx context.Context, day time.Time) ([]Workout, error)
	Get(ctx context.Context, id uuid.UUID) (Workout, error)
	Create(ctx context.Context, draft Draft) (Workout, error)
	Update(ctx context.Context, existing Workout, draft Draft) (Workout, error)
	// Save updates editing when it is set and creates a new workout otherwise.
	Save(ctx context.Context, editing *Workout, draft Draft) (Workout, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServiceImpl struct {
	repo     Repository
	location *time.Location
	eventBus *event_bus.EventBus
	metrics  *metrics.Manager
}

// NewService builds the workout store. location defines the day boundaries of ListForDay,
// eventBus and metrics are optional.
func NewService(repo Repository, location *time.Location, eventBus *event_bus.EventBus, metricsManager *metrics.Manager) *ServiceImpl {
	if location == nil {
		location = time.UTC
	}
	return &ServiceImpl{
		repo:     repo,
		location: location,
		eventBus: eventBus,
		metrics:  metricsManager,
	}
}

func (s *ServiceImpl) ListAll(ctx context.Context) ([]Workout, error) {
	workouts, err := s.repo.GetAllWorkouts(ctx)
	if err != nil {
		return nil, s.persistenceError("list", err)
	}
	return workouts, nil
}

func (s *ServiceImpl) ListForDay(ctx context.Context, day time.Time) ([]Workout, error) {
	local := day.In(s.location)
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
	to := from.AddDate(0, 0, 1)

	workouts, err := s.repo.GetWorkouts(ctx, from, to)
	if err != nil {
		return nil, s.persistenceError("list", err)
	}
	return workouts, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id uuid.UUID) (Workout, error) {
	workout, err := s.repo.GetWorkout(ctx, id)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			return Workout{}, ErrWorkoutNotFound
		}
		return Workout{}, s.persistenceError("get", err)
	}
	return workout, nil
}

func (s *ServiceImpl) Create(ctx context.Context, draft Draft) (Workout, error) {
	if err := draft.Validate(); err != nil {
		return Workout{}, err
	}

	workout := Workout{Id: uuid.New()}
	draft.applyTo(&workout)
	if err := s.repo.StoreWorkout(ctx, workout); err != nil {
		return Workout{}, s.persistenceError("create", err)
	}
	log.Debugf("created workout %s for %s", workout.Id, workout.Date)

	s.publish(ctx, event_bus.WorkoutCreated, event_bus.WorkoutChanged{Id: workout.Id, Date: workout.Date})
	return workout, nil
}

func (s *ServiceImpl) Update(ctx context.Context, existing Workout, draft Draft) (Workout, error) {
	if err := draft.Validate(); err != nil {
		return Workout{}, err
	}

	updated := Workout{Id: existing.Id}
	draft.applyTo(&updated)
	if err := s.repo.UpdateWorkout(ctx, updated); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			return Workout{}, ErrWorkoutNotFound
		}
		return Workout{}, s.persistenceError("update", err)
	}
	log.Debugf("updated workout %s", updated.Id)

	changed := event_bus.WorkoutChanged{Id: updated.Id, Date: updated.Date}
	if !existing.Date.IsZero() && !existing.Date.Equal(updated.Date) {
		changed.PreviousDate = existing.Date
	}
	s.publish(ctx, event_bus.WorkoutUpdated, changed)
	return updated, nil
}

func (s *ServiceImpl) Save(ctx context.Context, editing *Workout, draft Draft) (Workout, error) {
	if editing != nil {
		return s.Update(ctx, *editing, draft)
	}
	return s.Create(ctx, draft)
}

func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	// The date is only needed for the notification, a failed lookup is resolved by the delete itself.
	existing, lookupErr := s.repo.GetWorkout(ctx, id)

	if err := s.repo.DeleteWorkout(ctx, id); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			return ErrWorkoutNotFound
		}
		return s.persistenceError("delete", err)
	}
	log.Debugf("deleted workout %s", id)

	changed := event_bus.WorkoutChanged{Id: id}
	if lookupErr == nil {
		changed.Date = existing.Date
	}
	s.publish(ctx, event_bus.WorkoutDeleted, changed)
	return nil
}

func (s *ServiceImpl) persistenceError(op string, err error) error {
	log.Errorf("workout %s failed: %v", op, err)
	s.metrics.PersistenceFailed(op)
	return &PersistenceError{Op: op, Err: err}
}

// publish notifies subscribers of a committed change. Subscriber failures never undo the mutation.
func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, changed event_bus.WorkoutChanged) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.PublishWorkoutChanged(ctx, eventType, changed); err != nil {
		log.Warnf("failed to publish %s event: %v", eventType, err)
	}
}
