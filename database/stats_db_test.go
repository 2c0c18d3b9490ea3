package database

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatsFixture(t *testing.T) (*ConfigDB, *StatsDB) {
	t.Helper()

	db := openTestDB(t)
	return NewConfigDB(db), NewStatsDB(db)
}

func TestStatsEnsureExistsDefaults(t *testing.T) {
	cdb, sdb := newStatsFixture(t)

	_, err := cdb.GetOrCreate("guild-1")
	require.NoError(t, err)

	require.NoError(t, sdb.EnsureExists("100", "guild-1"))

	stats, err := sdb.Get("100", "guild-1")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 0, stats.Freudpoints)
	assert.Equal(t, 1, stats.SpendableFreudpoints)
	assert.Equal(t, 0, stats.ConfessionExposedCount)

	// Creating it again leaves the counters alone.
	require.NoError(t, sdb.IncrementExposed("100", "guild-1"))
	require.NoError(t, sdb.EnsureExists("100", "guild-1"))

	stats, err = sdb.Get("100", "guild-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ConfessionExposedCount)
}

func TestStatsAward(t *testing.T) {
	cdb, sdb := newStatsFixture(t)

	_, err := cdb.GetOrCreate("guild-1")
	require.NoError(t, err)
	require.NoError(t, sdb.EnsureExists("100", "guild-1"))

	// The awardee row is created on demand.
	require.NoError(t, sdb.Award("guild-1", "100", "200"))

	awarder, err := sdb.Get("100", "guild-1")
	require.NoError(t, err)
	assert.Equal(t, 0, awarder.SpendableFreudpoints)

	awardee, err := sdb.Get("200", "guild-1")
	require.NoError(t, err)
	assert.Equal(t, 1, awardee.Freudpoints)

	// The budget is exhausted; a second award fails and changes nothing.
	err = sdb.Award("guild-1", "100", "200")
	assert.ErrorIs(t, err, ErrNoSpendablePoints)

	awardee, err = sdb.Get("200", "guild-1")
	require.NoError(t, err)
	assert.Equal(t, 1, awardee.Freudpoints)
}

func TestStatsAwardConcurrent(t *testing.T) {
	cdb, sdb := newStatsFixture(t)

	_, err := cdb.GetOrCreate("guild-1")
	require.NoError(t, err)
	require.NoError(t, sdb.EnsureExists("100", "guild-1"))

	// One spendable point, many concurrent awards: exactly one may win and
	// the budget must never go negative.
	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for n := 0; n < attempts; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- sdb.Award("guild-1", "100", "200")
		}()
	}
	wg.Wait()
	close(errs)

	successes := 0
	for err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrNoSpendablePoints)
		}
	}
	assert.Equal(t, 1, successes)

	awarder, err := sdb.Get("100", "guild-1")
	require.NoError(t, err)
	assert.Equal(t, 0, awarder.SpendableFreudpoints)
}

func TestStatsIncrementSpendableCapped(t *testing.T) {
	cdb, sdb := newStatsFixture(t)

	_, err := cdb.GetOrCreate("guild-1")
	require.NoError(t, err)
	require.NoError(t, cdb.SetMaxSpendableFreudpoints("guild-1", 2))
	require.NoError(t, sdb.EnsureExists("100", "guild-1"))

	for n := 0; n < 5; n++ {
		require.NoError(t, sdb.IncrementSpendableAll())
	}

	stats, err := sdb.Get("100", "guild-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.SpendableFreudpoints, "spendable points must not exceed the guild maximum")
}

func TestStatsTops(t *testing.T) {
	cdb, sdb := newStatsFixture(t)

	_, err := cdb.GetOrCreate("guild-1")
	require.NoError(t, err)
	_, err = cdb.GetOrCreate("guild-2")
	require.NoError(t, err)

	require.NoError(t, sdb.EnsureExists("100", "guild-1"))
	require.NoError(t, sdb.EnsureExists("200", "guild-1"))
	require.NoError(t, sdb.EnsureExists("300", "guild-2"))

	require.NoError(t, sdb.Award("guild-1", "100", "200"))
	require.NoError(t, sdb.IncrementExposed("100", "guild-1"))
	require.NoError(t, sdb.IncrementExposed("100", "guild-1"))

	top, err := sdb.FreudpointTop("guild-1", 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "200", top[0].ProfileDiscordID)

	exposed, err := sdb.ExposedTop("guild-1", 10)
	require.NoError(t, err)
	require.Len(t, exposed, 2)
	assert.Equal(t, "100", exposed[0].ProfileDiscordID)
	assert.Equal(t, 2, exposed[0].ConfessionExposedCount)
}

func TestStatsDeleteAllForProfile(t *testing.T) {
	cdb, sdb := newStatsFixture(t)

	_, err := cdb.GetOrCreate("guild-1")
	require.NoError(t, err)
	_, err = cdb.GetOrCreate("guild-2")
	require.NoError(t, err)

	require.NoError(t, sdb.EnsureExists("100", "guild-1"))
	require.NoError(t, sdb.EnsureExists("100", "guild-2"))
	require.NoError(t, sdb.EnsureExists("200", "guild-1"))

	require.NoError(t, sdb.DeleteAllForProfile("100"))

	stats, err := sdb.Get("100", "guild-1")
	require.NoError(t, err)
	assert.Nil(t, stats)
	stats, err = sdb.Get("100", "guild-2")
	require.NoError(t, err)
	assert.Nil(t, stats)

	// Other profiles are untouched.
	stats, err = sdb.Get("200", "guild-1")
	require.NoError(t, err)
	assert.NotNil(t, stats)
}
