package workout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// PostgresRepository keeps dates as Unix nanoseconds in a BIGINT column.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const postgresColumns = `id, title, description, rating, date`

func (r *PostgresRepository) withTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// The Rollback will be a no-op if the transaction was already committed
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *PostgresRepository) StoreWorkout(ctx context.Context, workout Workout) error {
	query := `INSERT INTO workout (` + postgresColumns + `) VALUES ($1, $2, $3, $4, $5)`

	return r.withTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query, workout.Id, workout.Title, workout.Description, workout.Rating, workout.Date.UnixNano())
		if err != nil {
			err := fmt.Errorf("could not execute query: %w", err)
			log.Error(err)
			return err
		}
		return nil
	})
}

func (r *PostgresRepository) GetWorkout(ctx context.Context, id uuid.UUID) (Workout, error) {
	query := `SELECT ` + postgresColumns + ` FROM workout WHERE id = $1`

	workout, err := scanPostgresWorkout(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Workout{}, ErrWorkoutNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not get workout: %w", err)
		log.Error(err)
		return Workout{}, err
	}
	return workout, nil
}

func (r *PostgresRepository) GetAllWorkouts(ctx context.Context) ([]Workout, error) {
	query := `SELECT ` + postgresColumns + ` FROM workout ORDER BY date, id::text`
	return r.queryWorkouts(ctx, query)
}

func (r *PostgresRepository) GetWorkouts(ctx context.Context, from, to time.Time) ([]Workout, error) {
	query := `SELECT ` + postgresColumns + `
			  FROM workout
			  WHERE date >= $1 AND date < $2
			  ORDER BY date, id::text`
	return r.queryWorkouts(ctx, query, from.UnixNano(), to.UnixNano())
}

func (r *PostgresRepository) queryWorkouts(ctx context.Context, query string, args ...any) ([]Workout, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query workouts: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	workouts := make([]Workout, 0, 16)
	for rows.Next() {
		workout, err := scanPostgresWorkout(rows)
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

func (r *PostgresRepository) UpdateWorkout(ctx context.Context, workout Workout) error {
	query := `UPDATE workout SET title = $1, description = $2, rating = $3, date = $4 WHERE id = $5`

	return r.withTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, workout.Title, workout.Description, workout.Rating, workout.Date.UnixNano(), workout.Id)
		if err != nil {
			err := fmt.Errorf("could not execute query: %w", err)
			log.Error(err)
			return err
		}
		return requireTagAffected(tag)
	})
}

func (r *PostgresRepository) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM workout WHERE id = $1`

	return r.withTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, id)
		if err != nil {
			err := fmt.Errorf("could not execute query: %w", err)
			log.Error(err)
			return err
		}
		return requireTagAffected(tag)
	})
}

func requireTagAffected(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func scanPostgresWorkout(row pgx.Row) (Workout, error) {
	var workout Workout
	var dateNanos int64
	err := row.Scan(
		&workout.Id,
		&workout.Title,
		&workout.Description,
		&workout.Rating,
		&dateNanos,
	)
	if err != nil {
		return Workout{}, err
	}
	workout.Date = time.Unix(0, dateNanos).UTC()
	return workout, nil
}
