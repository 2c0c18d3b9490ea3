package handlers

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/Tibo-Ulens/freud-bot/auditlog"
	"github.com/Tibo-Ulens/freud-bot/bot"
	"github.com/Tibo-Ulens/freud-bot/utils"
)

// handleConfess posts an anonymous confession. Guilds with an approval
// channel get the confession there for moderator review; otherwise it goes
// straight to the confession channel.
func handleConfess(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	cfg, err := b.Configs.GetOrCreate(i.GuildID)
	if err != nil {
		respond(s, i, genericErrorMessage)
		return
	}

	channelID := ""
	switch {
	case cfg.ConfessionApprovalChannel.Valid:
		channelID = cfg.ConfessionApprovalChannel.String
	case cfg.ConfessionChannel.Valid:
		channelID = cfg.ConfessionChannel.String
	default:
		respond(s, i, "This server has no confession channel set up")
		return
	}

	confession := i.ApplicationCommandData().Options[0].StringValue()

	_, err = s.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
		Title:       "Anonymous confession",
		Description: confession,
	})
	if err != nil {
		log.Printf("failed to post confession to channel %s: %v", channelID, err)
		respond(s, i, genericErrorMessage)
		return
	}

	respond(s, i, "Your confession has been submitted")
}

// handleExpose reveals a confessor and bumps their exposure counter.
func handleExpose(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := auditlog.InteractionContext(i)

	cfg, err := b.Configs.GetOrCreate(i.GuildID)
	if err != nil {
		respond(s, i, genericErrorMessage)
		return
	}
	if !utils.IsAdmin(i.Member, cfg) {
		respond(s, i, "You need the admin role to use this command")
		return
	}

	target := i.ApplicationCommandData().Options[0].UserValue(s)
	if target == nil {
		respond(s, i, genericErrorMessage)
		return
	}

	if err := b.Stats.IncrementExposed(target.ID, i.GuildID); err != nil {
		respond(s, i, genericErrorMessage)
		return
	}

	count := 0
	if stats, err := b.Stats.Get(target.ID, i.GuildID); err == nil && stats != nil {
		count = stats.ConfessionExposedCount
	}

	if cfg.ConfessionChannel.Valid {
		announcement := fmt.Sprintf(
			"%s has been exposed! They have now been exposed %d times",
			utils.RenderUser(target.ID), count,
		)
		if _, err := s.ChannelMessageSend(cfg.ConfessionChannel.String, announcement); err != nil {
			// The counter is already bumped; a failed announcement is only
			// worth a log line.
			log.Printf("failed to announce exposure in channel %s: %v", cfg.ConfessionChannel.String, err)
		}
	}

	b.Router.Log(ctx, auditlog.LevelInfo, auditlog.ConfessorExposed(ctx.UserID, target.ID, count))
	respond(s, i, fmt.Sprintf("%s has been exposed", target.Username))
}
