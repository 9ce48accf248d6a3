package event_bus

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	WorkoutCreated EventType = "workout.created"
	WorkoutUpdated EventType = "workout.updated"
	WorkoutDeleted EventType = "workout.deleted"
)

var workoutEventTypes = []EventType{WorkoutCreated, WorkoutUpdated, WorkoutDeleted}

// WorkoutChanged is published after a workout mutation has been committed. Date is the workout date
// after the change (for deletions, the date of the removed record).
type WorkoutChanged struct {
	Id   uuid.UUID
	Date time.Time
	// PreviousDate is set on updates that moved the workout to another timestamp.
	PreviousDate time.Time
}

// Moved reports whether an update changed the workout's timestamp.
func (c WorkoutChanged) Moved() bool {
	return !c.PreviousDate.IsZero()
}

// WorkoutKind returns the change part of a workout event type, e.g. "created".
func WorkoutKind(eventType EventType) string {
	return strings.TrimPrefix(string(eventType), "workout.")
}

func isWorkoutEvent(eventType EventType) bool {
	for _, t := range workoutEventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

// PublishWorkoutChanged publishes a committed workout change. Any other event type is refused.
func (eb *EventBus) PublishWorkoutChanged(ctx context.Context, eventType EventType, changed WorkoutChanged) error {
	if !isWorkoutEvent(eventType) {
		return fmt.Errorf("%s is not a workout event", eventType)
	}
	return eb.Publish(NewEvent(ctx, eventType, changed))
}

// SubscribeWorkoutChanges registers h for creations, updates and deletions alike.
func SubscribeWorkoutChanges(eb *EventBus, h func(EventT[WorkoutChanged]) error) (unsubscribe func()) {
	unsubscribers := make([]func(), 0, len(workoutEventTypes))
	for _, eventType := range workoutEventTypes {
		unsubscribers = append(unsubscribers, SubscribeTyped(eb, eventType, h))
	}
	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}
