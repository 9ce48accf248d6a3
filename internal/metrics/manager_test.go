package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestManager_PersistenceFailed(t *testing.T) {
	// given
	manager, _ := NewTestManagerAndRegistry()

	// when
	manager.PersistenceFailed("create")
	manager.PersistenceFailed("create")
	manager.PersistenceFailed("delete")

	// then
	assert.Equal(t, float64(2), testutil.ToFloat64(manager.CounterPersistenceErrors.WithLabelValues("create")))
	assert.Equal(t, float64(1), testutil.ToFloat64(manager.CounterPersistenceErrors.WithLabelValues("delete")))
}

func TestManager_NilIsNoop(t *testing.T) {
	var manager *Manager
	assert.NotPanics(t, func() { manager.PersistenceFailed("update") })
}
