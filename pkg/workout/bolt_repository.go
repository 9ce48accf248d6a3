package workout

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.etcd.io/bbolt"
)

var (
	workoutsBucket = []byte("workouts")
	// dateIndexBucket maps date+id keys to nothing, its cursor order is the list order.
	dateIndexBucket = []byte("workouts_by_date")
)

var errBucketMissing = errors.New("workouts bucket missing")

// BoltRepository keeps workouts as JSON records in a bbolt bucket keyed by id, with a date index
// for ordered and ranged reads.
type BoltRepository struct {
	db *bbolt.DB
}

type boltRecord struct {
	Id          uuid.UUID `json:"id"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Rating      int       `json:"rating"`
	Date        time.Time `json:"date"`
}

func NewBoltRepository(db *bbolt.DB) (*BoltRepository, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		records, err := tx.CreateBucketIfNotExists(workoutsBucket)
		if err != nil {
			return err
		}
		index, err := tx.CreateBucketIfNotExists(dateIndexBucket)
		if err != nil {
			return err
		}
		if k, _ := index.Cursor().First(); k != nil {
			return nil
		}
		return records.ForEach(func(k, v []byte) error {
			workout, err := decodeRecord(v)
			if err != nil {
				return fmt.Errorf("record %s: %w", k, err)
			}
			return index.Put(dateIndexKey(workout.Date, workout.Id), nil)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create workouts buckets: %w", err)
	}
	return &BoltRepository{db: db}, nil
}

func (r *BoltRepository) StoreWorkout(ctx context.Context, workout Workout) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.update(func(records, index *bbolt.Bucket) error {
		if records.Get([]byte(workout.Id.String())) != nil {
			return fmt.Errorf("workout %s already exists", workout.Id)
		}
		return putRecord(records, index, workout)
	})
}

func (r *BoltRepository) GetWorkout(ctx context.Context, id uuid.UUID) (Workout, error) {
	if err := ctx.Err(); err != nil {
		return Workout{}, err
	}
	var workout Workout
	err := r.db.View(func(tx *bbolt.Tx) error {
		records := tx.Bucket(workoutsBucket)
		if records == nil {
			return errBucketMissing
		}
		var err error
		workout, err = getRecord(records, id)
		return err
	})
	if err != nil && !errors.Is(err, ErrWorkoutNotFound) {
		log.Errorf("could not get workout %s: %v", id, err)
	}
	return workout, err
}

func (r *BoltRepository) GetAllWorkouts(ctx context.Context) ([]Workout, error) {
	return r.scan(ctx, time.Unix(0, math.MinInt64), time.Unix(0, math.MaxInt64), true)
}

func (r *BoltRepository) GetWorkouts(ctx context.Context, from, to time.Time) ([]Workout, error) {
	return r.scan(ctx, from, to, false)
}

// scan walks the date index over [from, to), or [from, to] when inclusive is set.
func (r *BoltRepository) scan(ctx context.Context, from, to time.Time, inclusive bool) ([]Workout, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	workouts := make([]Workout, 0, 16)
	err := r.db.View(func(tx *bbolt.Tx) error {
		records, index := tx.Bucket(workoutsBucket), tx.Bucket(dateIndexBucket)
		if records == nil || index == nil {
			return errBucketMissing
		}
		start, end := datePrefix(from), datePrefix(to)
		c := index.Cursor()
		for k, _ := c.Seek(start); k != nil; k, _ = c.Next() {
			cmp := bytes.Compare(k[:8], end)
			if cmp > 0 || (cmp == 0 && !inclusive) {
				break
			}
			id, err := uuid.FromBytes(k[8:])
			if err != nil {
				return fmt.Errorf("index key %x: %w", k, err)
			}
			workout, err := getRecord(records, id)
			if err != nil {
				return fmt.Errorf("index entry %s: %w", id, err)
			}
			workouts = append(workouts, workout)
		}
		return nil
	})
	if err != nil {
		err := fmt.Errorf("could not list workouts: %w", err)
		log.Error(err)
		return nil, err
	}
	return workouts, nil
}

func (r *BoltRepository) UpdateWorkout(ctx context.Context, workout Workout) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.update(func(records, index *bbolt.Bucket) error {
		existing, err := getRecord(records, workout.Id)
		if err != nil {
			return err
		}
		if err := index.Delete(dateIndexKey(existing.Date, existing.Id)); err != nil {
			return err
		}
		return putRecord(records, index, workout)
	})
}

func (r *BoltRepository) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.update(func(records, index *bbolt.Bucket) error {
		existing, err := getRecord(records, id)
		if err != nil {
			return err
		}
		if err := index.Delete(dateIndexKey(existing.Date, existing.Id)); err != nil {
			return err
		}
		return records.Delete([]byte(id.String()))
	})
}

// update runs fn in one read-write transaction, bbolt rolls every write back when fn fails.
func (r *BoltRepository) update(fn func(records, index *bbolt.Bucket) error) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		records, index := tx.Bucket(workoutsBucket), tx.Bucket(dateIndexBucket)
		if records == nil || index == nil {
			return errBucketMissing
		}
		return fn(records, index)
	})
}

func getRecord(records *bbolt.Bucket, id uuid.UUID) (Workout, error) {
	data := records.Get([]byte(id.String()))
	if data == nil {
		return Workout{}, ErrWorkoutNotFound
	}
	return decodeRecord(data)
}

func putRecord(records, index *bbolt.Bucket, workout Workout) error {
	if workout.Rating < MinRating || workout.Rating > MaxRating {
		return fmt.Errorf("workout %s: rating %d out of range", workout.Id, workout.Rating)
	}
	data, err := json.Marshal(boltRecord{
		Id:          workout.Id,
		Title:       workout.Title,
		Description: workout.Description,
		Rating:      workout.Rating,
		Date:        workout.Date.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode workout: %w", err)
	}
	if err := records.Put([]byte(workout.Id.String()), data); err != nil {
		return err
	}
	return index.Put(dateIndexKey(workout.Date, workout.Id), nil)
}

func decodeRecord(data []byte) (Workout, error) {
	var rec boltRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return Workout{}, fmt.Errorf("failed to decode workout: %w", err)
	}
	return Workout{
		Id:          rec.Id,
		Title:       rec.Title,
		Description: rec.Description,
		Rating:      rec.Rating,
		Date:        rec.Date.UTC(),
	}, nil
}

// datePrefix encodes date so that byte order follows time order, negative instants included.
func datePrefix(date time.Time) []byte {
	prefix := make([]byte, 8)
	binary.BigEndian.PutUint64(prefix, uint64(date.UnixNano())^(1<<63))
	return prefix
}

func dateIndexKey(date time.Time, id uuid.UUID) []byte {
	return append(datePrefix(date), id[:]...)
}
