package handlers

import (
	"github.com/bwmarrin/discordgo"

	"github.com/Tibo-Ulens/freud-bot/bot"
)

// InteractionCreate handles slash command interactions.
func InteractionCreate(b *bot.Bot) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}

		// Every command operates on guild-scoped state. Discord hides them
		// from DMs via dm_permission, but an interaction without a guild must
		// still be rejected here: handlers dereference i.Member and would
		// otherwise persist config rows keyed by an empty guild id.
		if i.GuildID == "" {
			respond(s, i, "This command can only be used in a server")
			return
		}

		switch i.ApplicationCommandData().Name {
		case "verify":
			handleVerify(b, s, i)
		case "verifix":
			handleVerifix(b, s, i)
		case "unverify":
			handleUnverify(b, s, i)
		case "config":
			handleConfig(b, s, i)
		case "freudpoint":
			handleFreudpoint(b, s, i)
		case "exposed":
			handleExposed(b, s, i)
		case "confess":
			handleConfess(b, s, i)
		case "expose":
			handleExpose(b, s, i)
		}
	}
}
