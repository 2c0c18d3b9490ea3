package handlers

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/Tibo-Ulens/freud-bot/auditlog"
	"github.com/Tibo-Ulens/freud-bot/bot"
)

const pinEmoji = "\U0001F4CC" // 📌

// MessageReactionAdd pins a message once it collects enough pin reactions.
func MessageReactionAdd(b *bot.Bot) func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	return func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
		if r.GuildID == "" || r.Emoji.Name != pinEmoji {
			return
		}

		cfg, err := b.Configs.Get(r.GuildID)
		if err != nil || cfg == nil || cfg.PinReactionThreshold <= 0 {
			return
		}

		message, err := s.ChannelMessage(r.ChannelID, r.MessageID)
		if err != nil {
			log.Printf("failed to fetch message %s: %v", r.MessageID, err)
			return
		}
		if message.Pinned {
			return
		}

		count := 0
		for _, reaction := range message.Reactions {
			if reaction.Emoji.Name == pinEmoji {
				count = reaction.Count
				break
			}
		}
		if count < cfg.PinReactionThreshold {
			return
		}

		if err := s.ChannelMessagePin(r.ChannelID, r.MessageID); err != nil {
			log.Printf("failed to pin message %s: %v", r.MessageID, err)
			return
		}

		ctx := auditlog.Context{GuildID: r.GuildID, ChannelID: r.ChannelID, UserID: r.UserID}
		b.Router.Log(ctx, auditlog.LevelInfo, auditlog.MessagePinned(r.ChannelID, r.MessageID))
	}
}
