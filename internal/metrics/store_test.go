package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tibaulingg/boxleague/internal/database"
	"github.com/tibaulingg/boxleague/internal/metrics"
)

func TestMetricsStore(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	store := metrics.New(db)

	store.Increment("standings_requests")
	store.Increment("standings_requests")
	store.Increment("delay_requests")

	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, 2, all["standings_requests"])
	assert.Equal(t, 1, all["delay_requests"])
}
