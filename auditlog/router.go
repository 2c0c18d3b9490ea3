package auditlog

import (
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Tibo-Ulens/freud-bot/database"
	"github.com/Tibo-Ulens/freud-bot/models"
	"github.com/Tibo-Ulens/freud-bot/utils"
)

// ChannelSender delivers an embed to a channel. Implemented by the discordgo
// session adapter; tests substitute a fake.
type ChannelSender interface {
	SendEmbed(channelID, content string, embed *discordgo.MessageEmbed) error
}

// Logger is the producer-facing side of the router.
type Logger interface {
	Log(ctx Context, level Level, ev Event)
}

// Router delivers events to the audit channel of the guild they originated
// in. Delivery is asynchronous and best-effort: a router failure degrades to
// the process log and never reaches the producing command.
type Router struct {
	configs *database.ConfigDB
	sender  ChannelSender
}

// NewRouter creates a router resolving destinations from guild configuration.
func NewRouter(configs *database.ConfigDB, sender ChannelSender) *Router {
	return &Router{configs: configs, sender: sender}
}

// Log records an event. The process log is written synchronously; guild
// channel delivery happens in the background.
func (r *Router) Log(ctx Context, level Level, ev Event) {
	log.Printf("[%s] %s.%s: %s", level, ev.Scope, ev.Name, ev.LogMsg)

	if ctx.GuildID == "" {
		log.Printf("auditlog: event %s.%s has no originating guild, skipping channel delivery", ev.Scope, ev.Name)
		return
	}

	go r.deliver(ctx, level, ev)
}

func (r *Router) deliver(ctx Context, level Level, ev Event) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("auditlog: panic delivering event %s.%s: %v", ev.Scope, ev.Name, rec)
		}
	}()

	cfg, err := r.configs.Get(ctx.GuildID)
	if err != nil {
		log.Printf("auditlog: failed to load config for guild %s: %v", ctx.GuildID, err)
		return
	}
	if cfg == nil {
		return
	}

	channelID := destinationChannel(cfg, ev)
	if channelID == "" {
		return
	}

	// Error events ping the admins, if the guild has an admin role set.
	content := ""
	if level == LevelError && cfg.AdminRole.Valid {
		content = utils.RenderRole(cfg.AdminRole.String)
	}

	if err := r.sender.SendEmbed(channelID, content, formatEmbed(ctx, level, ev)); err != nil {
		log.Printf("auditlog: failed to deliver event %s.%s to channel %s: %v", ev.Scope, ev.Name, channelID, err)
	}
}

// destinationChannel resolves where an event should be written. Verification
// events prefer the dedicated verification logging channel and fall back to
// the general one; everything else uses only the general logging channel.
func destinationChannel(cfg *models.GuildConfig, ev Event) string {
	if ev.Scope == ScopeVerification && cfg.VerificationLoggingChannel.Valid {
		return cfg.VerificationLoggingChannel.String
	}
	if cfg.LoggingChannel.Valid {
		return cfg.LoggingChannel.String
	}
	return ""
}

func formatEmbed(ctx Context, level Level, ev Event) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Color:     level.Colour(),
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if level == LevelError {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "error",
			Value: ev.LogMsg,
		})
		return embed
	}

	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: "scope", Value: ev.Scope, Inline: true},
		&discordgo.MessageEmbedField{Name: "event", Value: ev.Name, Inline: true},
	)
	if ctx.UserID != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "user",
			Value: utils.RenderUser(ctx.UserID),
		})
	}
	for _, field := range ev.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  field.Name,
			Value: field.Value,
		})
	}

	return embed
}
