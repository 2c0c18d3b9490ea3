package database

import (
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tibo-Ulens/freud-bot/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func TestProfileLifecycle(t *testing.T) {
	pdb := NewProfileDB(openTestDB(t))

	found, err := pdb.FindByDiscordID("100")
	require.NoError(t, err)
	assert.Nil(t, found)

	err = pdb.Create(&models.Profile{
		DiscordID:        "100",
		Email:            nullString("freud@ugent.be"),
		ConfirmationCode: nullString("aaaabbbbccccddddeeeeffff00001111"),
	})
	require.NoError(t, err)

	found, err = pdb.FindByDiscordID("100")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.Pending())
	assert.False(t, found.Verified())

	byEmail, err := pdb.FindByEmail("freud@ugent.be")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "100", byEmail.DiscordID)

	require.NoError(t, pdb.Delete("100"))
	found, err = pdb.FindByDiscordID("100")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestProfileSetPendingOverwritesCode(t *testing.T) {
	pdb := NewProfileDB(openTestDB(t))

	require.NoError(t, pdb.Create(&models.Profile{
		DiscordID:        "100",
		ConfirmationCode: nullString("first000000000000000000000000000"),
	}))

	require.NoError(t, pdb.SetPending("100", "freud@ugent.be", "second00000000000000000000000000"))

	found, err := pdb.FindByDiscordID("100")
	require.NoError(t, err)
	assert.Equal(t, "freud@ugent.be", found.Email.String)
	assert.Equal(t, "second00000000000000000000000000", found.ConfirmationCode.String)
}

func TestProfileDuplicateEmail(t *testing.T) {
	pdb := NewProfileDB(openTestDB(t))

	require.NoError(t, pdb.Create(&models.Profile{
		DiscordID: "100",
		Email:     nullString("freud@ugent.be"),
	}))

	err := pdb.Create(&models.Profile{
		DiscordID: "200",
		Email:     nullString("freud@ugent.be"),
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	require.NoError(t, pdb.Create(&models.Profile{DiscordID: "200"}))
	err = pdb.SetPending("200", "freud@ugent.be", "aaaabbbbccccddddeeeeffff00001111")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestClearCodeIfMatch(t *testing.T) {
	pdb := NewProfileDB(openTestDB(t))

	code := "aaaabbbbccccddddeeeeffff00001111"
	require.NoError(t, pdb.Create(&models.Profile{
		DiscordID:        "100",
		Email:            nullString("freud@ugent.be"),
		ConfirmationCode: nullString(code),
	}))

	matched, err := pdb.ClearCodeIfMatch("100", "wrong000000000000000000000000000")
	require.NoError(t, err)
	assert.False(t, matched)

	// A wrong guess must not invalidate the stored code.
	found, err := pdb.FindByDiscordID("100")
	require.NoError(t, err)
	assert.Equal(t, code, found.ConfirmationCode.String)

	matched, err = pdb.ClearCodeIfMatch("100", code)
	require.NoError(t, err)
	assert.True(t, matched)

	found, err = pdb.FindByDiscordID("100")
	require.NoError(t, err)
	assert.True(t, found.Verified())

	// The code is gone; a second submission cannot succeed.
	matched, err = pdb.ClearCodeIfMatch("100", code)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestClearCodeIfMatchConcurrent(t *testing.T) {
	pdb := NewProfileDB(openTestDB(t))

	code := "aaaabbbbccccddddeeeeffff00001111"
	require.NoError(t, pdb.Create(&models.Profile{
		DiscordID:        "100",
		Email:            nullString("freud@ugent.be"),
		ConfirmationCode: nullString(code),
	}))

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan bool, attempts)

	for n := 0; n < attempts; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			matched, err := pdb.ClearCodeIfMatch("100", code)
			assert.NoError(t, err)
			results <- matched
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for matched := range results {
		if matched {
			successes++
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent submission may succeed")
}

func TestFindVerified(t *testing.T) {
	pdb := NewProfileDB(openTestDB(t))

	require.NoError(t, pdb.Create(&models.Profile{
		DiscordID: "100",
		Email:     nullString("verified@ugent.be"),
	}))
	require.NoError(t, pdb.Create(&models.Profile{
		DiscordID:        "200",
		Email:            nullString("pending@ugent.be"),
		ConfirmationCode: nullString("aaaabbbbccccddddeeeeffff00001111"),
	}))
	require.NoError(t, pdb.Create(&models.Profile{DiscordID: "300"}))

	verified, err := pdb.FindVerified()
	require.NoError(t, err)
	require.Len(t, verified, 1)
	assert.Equal(t, "100", verified[0].DiscordID)
}
