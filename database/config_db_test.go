package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigGetMissing(t *testing.T) {
	cdb := NewConfigDB(openTestDB(t))

	cfg, err := cdb.Get("guild-1")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestConfigGetOrCreateDefaults(t *testing.T) {
	cdb := NewConfigDB(openTestDB(t))

	cfg, err := cdb.GetOrCreate("guild-1")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "guild-1", cfg.GuildID)
	assert.False(t, cfg.VerifiedRole.Valid)
	assert.False(t, cfg.AdminRole.Valid)
	assert.False(t, cfg.HasMailSender())
	assert.Equal(t, 5, cfg.MaxSpendableFreudpoints)
	assert.Equal(t, 4, cfg.PinReactionThreshold)

	// Every template has a usable default.
	assert.NotEmpty(t, cfg.VerifyEmailMessage)
	assert.NotEmpty(t, cfg.InvalidEmailMessage)
	assert.NotEmpty(t, cfg.DuplicateEmailMessage)
	assert.NotEmpty(t, cfg.InvalidCodeMessage)
	assert.NotEmpty(t, cfg.AlreadyVerifiedMessage)
	assert.NotEmpty(t, cfg.WelcomeMessage)
	assert.Contains(t, cfg.EmailBody, "{code}")
}

func TestConfigGetOrCreateIdempotent(t *testing.T) {
	cdb := NewConfigDB(openTestDB(t))

	first, err := cdb.GetOrCreate("guild-1")
	require.NoError(t, err)

	require.NoError(t, cdb.SetOption("guild-1", "verified_role", "role-1"))

	second, err := cdb.GetOrCreate("guild-1")
	require.NoError(t, err)

	// The second call returns the same row, not a fresh default one.
	assert.Equal(t, first.GuildID, second.GuildID)
	assert.Equal(t, "role-1", second.VerifiedRole.String)
}

func TestConfigSetOption(t *testing.T) {
	cdb := NewConfigDB(openTestDB(t))

	require.NoError(t, cdb.SetOption("guild-1", "logging_channel", "chan-1"))
	require.NoError(t, cdb.SetOption("guild-1", "welcome_message", "Hello {guild_name}"))

	cfg, err := cdb.Get("guild-1")
	require.NoError(t, err)
	assert.Equal(t, "chan-1", cfg.LoggingChannel.String)
	assert.Equal(t, "Hello {guild_name}", cfg.WelcomeMessage)
}

func TestConfigSetOptionUnknown(t *testing.T) {
	cdb := NewConfigDB(openTestDB(t))

	err := cdb.SetOption("guild-1", "guild_id", "evil")
	assert.Error(t, err)
}

func TestConfigSetMailSender(t *testing.T) {
	cdb := NewConfigDB(openTestDB(t))

	require.NoError(t, cdb.SetMailSender("guild-1", "bot@gmail.com", "app-password"))

	cfg, err := cdb.Get("guild-1")
	require.NoError(t, err)
	assert.True(t, cfg.HasMailSender())
	assert.Equal(t, "bot@gmail.com", cfg.SMTPUser.String)
}

func TestConfigSetMaxSpendableNegative(t *testing.T) {
	cdb := NewConfigDB(openTestDB(t))

	assert.Error(t, cdb.SetMaxSpendableFreudpoints("guild-1", -1))
}
