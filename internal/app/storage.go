package app

import (
	"fmt"

	"github.com/caley/caley/internal/config"
	"github.com/caley/caley/internal/database"
	"github.com/caley/caley/pkg/workout"
	log "github.com/sirupsen/logrus"
)

// OpenRepository opens and migrates the configured store. The returned function releases it.
func OpenRepository(cfg config.Application) (workout.Repository, func() error, error) {
	switch cfg.Storage.Driver {
	case config.SqliteStorage, "":
		db, err := database.OpenSqlite(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := database.MigrateSqlite(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Infof("Using sqlite storage at %s", cfg.Storage.Path)
		return workout.NewSqliteRepository(db), db.Close, nil

	case config.BoltStorage:
		db, err := database.OpenBolt(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		repo, err := workout.NewBoltRepository(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Infof("Using bolt storage at %s", cfg.Storage.Path)
		return repo, db.Close, nil

	case config.PostgresStorage:
		if err := database.Migrate(cfg.Database); err != nil {
			return nil, nil, err
		}
		pool, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		log.Infof("Using postgres storage at %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
		return workout.NewPostgresRepository(pool), func() error {
			pool.Close()
			return nil
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
