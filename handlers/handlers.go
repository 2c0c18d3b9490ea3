package handlers

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/Tibo-Ulens/freud-bot/bot"
)

// Register all handlers to the bot.
func Register(b *bot.Bot) {
	b.Session.AddHandler(InteractionCreate(b))
	b.Session.AddHandler(GuildCreate(b))
	b.Session.AddHandler(GuildMemberAdd(b))
	b.Session.AddHandler(MessageReactionAdd(b))

	// Add a ready handler to log when the bot is connected.
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})
}
