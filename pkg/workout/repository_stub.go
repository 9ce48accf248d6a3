package workout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type RepositoryStub struct {
	mu       sync.RWMutex
	workouts map[uuid.UUID]Workout
	// FailWith, when set, makes every call return it without touching the stored state.
	FailWith error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{workouts: map[uuid.UUID]Workout{}}
}

func (s *RepositoryStub) StoreWorkout(ctx context.Context, workout Workout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	if _, exists := s.workouts[workout.Id]; exists {
		return fmt.Errorf("workout %s already exists", workout.Id)
	}
	s.workouts[workout.Id] = workout
	return nil
}

func (s *RepositoryStub) GetWorkout(ctx context.Context, id uuid.UUID) (Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return Workout{}, s.FailWith
	}
	if workout, exists := s.workouts[id]; exists {
		return workout, nil
	}
	return Workout{}, ErrWorkoutNotFound
}

func (s *RepositoryStub) GetAllWorkouts(ctx context.Context) ([]Workout, error) {
	return s.filter(func(Workout) bool { return true })
}

func (s *RepositoryStub) GetWorkouts(ctx context.Context, from, to time.Time) ([]Workout, error) {
	return s.filter(func(w Workout) bool {
		return !w.Date.Before(from) && w.Date.Before(to)
	})
}

func (s *RepositoryStub) filter(keep func(Workout) bool) ([]Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	workouts := make([]Workout, 0, len(s.workouts))
	for _, workout := range s.workouts {
		if keep(workout) {
			workouts = append(workouts, workout)
		}
	}
	sortByDate(workouts)
	return workouts, nil
}

func (s *RepositoryStub) UpdateWorkout(ctx context.Context, workout Workout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	if _, exists := s.workouts[workout.Id]; !exists {
		return ErrWorkoutNotFound
	}
	s.workouts[workout.Id] = workout
	return nil
}

func (s *RepositoryStub) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	if _, exists := s.workouts[id]; !exists {
		return ErrWorkoutNotFound
	}
	delete(s.workouts, id)
	return nil
}

func (s *RepositoryStub) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workouts)
}
