//go:build integration

package workout

import (
	"context"
	"os"
	"testing"

	"github.com/caley/caley/internal/test_utils"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	code := m.Run()
	if err := testcontainers.TerminateContainer(pgContainer); err != nil {
		log.Errorf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

func TestPostgresRepository(t *testing.T) {
	newRepo := func(t *testing.T) Repository {
		db := openDb()
		t.Cleanup(func() {
			db.Close()
			err := pgContainer.Restore(context.Background())
			require.NoError(t, err)
		})
		return NewPostgresRepository(db)
	}
	testRepositoryContract(t, newRepo)
	testRejectedWrites(t, newRepo)
}
