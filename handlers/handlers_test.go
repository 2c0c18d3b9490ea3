package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"github.com/Tibo-Ulens/freud-bot/auditlog"
	"github.com/Tibo-Ulens/freud-bot/bot"
	"github.com/Tibo-Ulens/freud-bot/database"
)

// stubTransport replaces the session's HTTP transport so handler tests never
// reach the real API. It records every request path and answers with minimal
// valid JSON; user lookups echo the requested id back.
type stubTransport struct {
	mu    sync.Mutex
	paths []string
}

func (st *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	st.mu.Lock()
	st.paths = append(st.paths, req.URL.Path)
	st.mu.Unlock()

	body := "{}"
	if strings.Contains(req.URL.Path, "/users/") {
		id := path.Base(req.URL.Path)
		body = fmt.Sprintf(`{"id":%q,"username":"user-%s"}`, id, id)
	}

	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}, nil
}

func (st *stubTransport) sawPath(fragment string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, p := range st.paths {
		if strings.Contains(p, fragment) {
			return true
		}
	}
	return false
}

type handlerFixture struct {
	bot       *bot.Bot
	transport *stubTransport
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	db, err := database.InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	transport := &stubTransport{}
	session.Client = &http.Client{Transport: transport}

	configs := database.NewConfigDB(db)
	router := auditlog.NewRouter(configs, bot.NewSessionPlatform(session))

	return &handlerFixture{
		bot: &bot.Bot{
			Session:  session,
			DB:       db,
			Profiles: database.NewProfileDB(db),
			Configs:  configs,
			Stats:    database.NewStatsDB(db),
			Router:   router,
		},
		transport: transport,
	}
}

// dmInteraction builds a command interaction arriving outside any guild.
func dmInteraction(name string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{Name: name},
			User: &discordgo.User{ID: "100"},
		},
	}
}

func guildInteraction(name string, member *discordgo.Member, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionApplicationCommand,
			GuildID:   "g1",
			ChannelID: "c1",
			Member:    member,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
		},
	}
}

func userOption(userID string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Type:  discordgo.ApplicationCommandOptionUser,
		Name:  "user",
		Value: userID,
	}
}

func stringOption(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Type:  discordgo.ApplicationCommandOptionString,
		Name:  name,
		Value: value,
	}
}
