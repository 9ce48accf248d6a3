package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Repository is the persistence contract for workouts. Lists are ordered by date ascending.
// Update and Delete return ErrWorkoutNotFound when the id does not exist.
type Repository interface {
	StoreWorkout(ctx context.Context, workout Workout) error
	GetWorkout(ctx context.Context, id uuid.UUID) (Workout, error)
	GetAllWorkouts(ctx context.Context) ([]Workout, error)
	// GetWorkouts returns workouts dated within the half-open range [from, to).
	GetWorkouts(ctx context.Context, from, to time.Time) ([]Workout, error)
	UpdateWorkout(ctx context.Context, workout Workout) error
	DeleteWorkout(ctx context.Context, id uuid.UUID) error
}

// SqliteRepository stores workouts in SQLite with dates as Unix nanoseconds. Writes are serialized, reads run concurrently.
type SqliteRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewSqliteRepository(db *sql.DB) *SqliteRepository {
	return &SqliteRepository{db: db}
}

const sqliteColumns = `id, title, description, rating, date`

func (r *SqliteRepository) withTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// The Rollback will be a no-op if the transaction was already committed
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *SqliteRepository) StoreWorkout(ctx context.Context, workout Workout) error {
	query := `INSERT INTO workout (` + sqliteColumns + `) VALUES (?, ?, ?, ?, ?)`

	return r.withTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			workout.Id.String(),
			workout.Title,
			workout.Description,
			workout.Rating,
			workout.Date.UnixNano(),
		)
		if err != nil {
			err := fmt.Errorf("could not execute query: %w", err)
			log.Error(err)
			return err
		}
		return nil
	})
}

func (r *SqliteRepository) GetWorkout(ctx context.Context, id uuid.UUID) (Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT ` + sqliteColumns + ` FROM workout WHERE id = ?`
	workout, err := scanSqliteWorkout(r.db.QueryRowContext(ctx, query, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return Workout{}, ErrWorkoutNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not get workout: %w", err)
		log.Error(err)
		return Workout{}, err
	}
	return workout, nil
}

func (r *SqliteRepository) GetAllWorkouts(ctx context.Context) ([]Workout, error) {
	query := `SELECT ` + sqliteColumns + ` FROM workout ORDER BY date, id`
	return r.queryWorkouts(ctx, query)
}

func (r *SqliteRepository) GetWorkouts(ctx context.Context, from, to time.Time) ([]Workout, error) {
	query := `SELECT ` + sqliteColumns + `
			  FROM workout
			  WHERE date >= ? AND date < ?
			  ORDER BY date, id`
	return r.queryWorkouts(ctx, query, from.UnixNano(), to.UnixNano())
}

func (r *SqliteRepository) queryWorkouts(ctx context.Context, query string, args ...any) ([]Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query workouts: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	workouts := make([]Workout, 0, 16)
	for rows.Next() {
		workout, err := scanSqliteWorkout(rows)
		if err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		workouts = append(workouts, workout)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return workouts, nil
}

func (r *SqliteRepository) UpdateWorkout(ctx context.Context, workout Workout) error {
	query := `UPDATE workout SET title = ?, description = ?, rating = ?, date = ? WHERE id = ?`

	return r.withTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			workout.Title,
			workout.Description,
			workout.Rating,
			workout.Date.UnixNano(),
			workout.Id.String(),
		)
		if err != nil {
			err := fmt.Errorf("could not execute query: %w", err)
			log.Error(err)
			return err
		}
		return requireAffected(result)
	})
}

func (r *SqliteRepository) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM workout WHERE id = ?`

	return r.withTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, id.String())
		if err != nil {
			err := fmt.Errorf("could not execute query: %w", err)
			log.Error(err)
			return err
		}
		return requireAffected(result)
	})
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSqliteWorkout(row rowScanner) (Workout, error) {
	var (
		id          string
		title       sql.NullString
		description sql.NullString
		rating      int
		dateNanos   int64
	)
	if err := row.Scan(&id, &title, &description, &rating, &dateNanos); err != nil {
		return Workout{}, err
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return Workout{}, fmt.Errorf("invalid workout id %q: %w", id, err)
	}
	workout := Workout{
		Id:     uid,
		Rating: rating,
		Date:   time.Unix(0, dateNanos).UTC(),
	}
	if title.Valid {
		workout.Title = &title.String
	}
	if description.Valid {
		workout.Description = &description.String
	}
	return workout, nil
}
