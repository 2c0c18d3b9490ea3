package auditlog

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tibo-Ulens/freud-bot/database"
)

type sentEmbed struct {
	ChannelID string
	Content   string
	Embed     *discordgo.MessageEmbed
}

// fakeSender records embeds; delivery runs on a router goroutine so all
// access is mutex-guarded.
type fakeSender struct {
	mu   sync.Mutex
	sent []sentEmbed
	err  error
}

func (s *fakeSender) SendEmbed(channelID, content string, embed *discordgo.MessageEmbed) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentEmbed{ChannelID: channelID, Content: content, Embed: embed})
	return nil
}

func (s *fakeSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func (s *fakeSender) last() sentEmbed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent[len(s.sent)-1]
}

func newRouterFixture(t *testing.T) (*Router, *database.ConfigDB, *fakeSender) {
	t.Helper()

	db, err := database.InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	configs := database.NewConfigDB(db)
	sender := &fakeSender{}
	return NewRouter(configs, sender), configs, sender
}

// waitForDelivery blocks until the sender has received n embeds.
func waitForDelivery(t *testing.T, sender *fakeSender, n int) {
	t.Helper()
	assert.Eventually(t, func() bool { return sender.count() >= n }, time.Second, 5*time.Millisecond)
}

func TestRouterVerificationPrefersVerificationChannel(t *testing.T) {
	router, configs, sender := newRouterFixture(t)
	require.NoError(t, configs.SetOption("g1", "logging_channel", "general"))
	require.NoError(t, configs.SetOption("g1", "verification_logging_channel", "verif"))

	router.Log(GuildContext("g1", "100"), LevelInfo, Verified("100", "jan@ugent.be", "Psychology"))
	waitForDelivery(t, sender, 1)

	assert.Equal(t, "verif", sender.last().ChannelID)
}

func TestRouterVerificationFallsBackToLoggingChannel(t *testing.T) {
	router, configs, sender := newRouterFixture(t)
	require.NoError(t, configs.SetOption("g1", "logging_channel", "general"))

	router.Log(GuildContext("g1", "100"), LevelInfo, Verified("100", "jan@ugent.be", "Psychology"))
	waitForDelivery(t, sender, 1)

	assert.Equal(t, "general", sender.last().ChannelID)
}

func TestRouterGeneralScopeIgnoresVerificationChannel(t *testing.T) {
	router, configs, sender := newRouterFixture(t)
	require.NoError(t, configs.SetOption("g1", "logging_channel", "general"))
	require.NoError(t, configs.SetOption("g1", "verification_logging_channel", "verif"))

	router.Log(GuildContext("g1", "100"), LevelInfo, ConfigUpdated("100", "admin_role", "r1"))
	waitForDelivery(t, sender, 1)

	assert.Equal(t, "general", sender.last().ChannelID)
}

func TestRouterErrorMentionsAdminRole(t *testing.T) {
	router, configs, sender := newRouterFixture(t)
	require.NoError(t, configs.SetOption("g1", "logging_channel", "general"))
	require.NoError(t, configs.SetOption("g1", "admin_role", "r-admin"))

	router.Log(GuildContext("g1", "100"), LevelError, MailFailed("jan@ugent.be", errors.New("timeout")))
	waitForDelivery(t, sender, 1)

	delivered := sender.last()
	assert.Equal(t, "<@&r-admin>", delivered.Content)
	assert.Equal(t, LevelError.Colour(), delivered.Embed.Color)

	// Error embeds carry only the error itself.
	require.Len(t, delivered.Embed.Fields, 1)
	assert.Equal(t, "error", delivered.Embed.Fields[0].Name)
}

func TestRouterInfoEmbedFields(t *testing.T) {
	router, configs, sender := newRouterFixture(t)
	require.NoError(t, configs.SetOption("g1", "logging_channel", "general"))

	router.Log(GuildContext("g1", "100"), LevelInfo, Verified("100", "jan@ugent.be", "Psychology"))
	waitForDelivery(t, sender, 1)

	delivered := sender.last()
	assert.Empty(t, delivered.Content)

	names := map[string]string{}
	for _, field := range delivered.Embed.Fields {
		names[field.Name] = field.Value
	}
	assert.Equal(t, ScopeVerification, names["scope"])
	assert.Equal(t, "verified", names["event"])
	assert.Equal(t, "<@100>", names["user"])
	assert.Equal(t, "jan@ugent.be", names["email"])
}

func TestRouterSkipsWithoutGuild(t *testing.T) {
	router, configs, sender := newRouterFixture(t)
	require.NoError(t, configs.SetOption("g1", "logging_channel", "general"))

	router.Log(Context{}, LevelInfo, ReconcileRun(3, 1))

	assert.Never(t, func() bool { return sender.count() > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestRouterSkipsUnknownGuild(t *testing.T) {
	router, _, sender := newRouterFixture(t)

	// No config row exists for this guild at all.
	router.Log(GuildContext("nowhere", "100"), LevelInfo, Unverified("100"))

	assert.Never(t, func() bool { return sender.count() > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestRouterSkipsWithoutChannels(t *testing.T) {
	router, configs, sender := newRouterFixture(t)
	_, err := configs.GetOrCreate("g1")
	require.NoError(t, err)

	router.Log(GuildContext("g1", "100"), LevelInfo, Unverified("100"))

	assert.Never(t, func() bool { return sender.count() > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestRouterSenderFailureIsNonFatal(t *testing.T) {
	router, configs, sender := newRouterFixture(t)
	require.NoError(t, configs.SetOption("g1", "logging_channel", "general"))
	sender.err = errors.New("channel deleted")

	// Must not panic and must not block the producer.
	router.Log(GuildContext("g1", "100"), LevelInfo, Unverified("100"))

	// Once the sender recovers, later events go through again.
	sender.mu.Lock()
	sender.err = nil
	sender.mu.Unlock()

	router.Log(GuildContext("g1", "100"), LevelInfo, Unverified("100"))
	waitForDelivery(t, sender, 1)
}
