package handlers

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/Tibo-Ulens/freud-bot/auditlog"
	"github.com/Tibo-Ulens/freud-bot/bot"
)

// GuildCreate eagerly creates the configuration row when the bot joins a
// guild, so admins can configure it before any command runs.
func GuildCreate(b *bot.Bot) func(s *discordgo.Session, g *discordgo.GuildCreate) {
	return func(s *discordgo.Session, g *discordgo.GuildCreate) {
		if _, err := b.Configs.GetOrCreate(g.ID); err != nil {
			log.Printf("failed to create config for guild %s: %v", g.ID, err)
		}
	}
}

// GuildMemberAdd verifies joining members that are already verified
// elsewhere, and sends everyone else the verification prompt if the guild has
// verification configured.
func GuildMemberAdd(b *bot.Bot) func(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	return func(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
		if m.User == nil || m.User.Bot {
			return
		}

		ctx := auditlog.GuildContext(m.GuildID, m.User.ID)

		verified, err := b.Engine.AutoVerify(ctx, m.GuildID, m.User.ID)
		if err != nil {
			log.Printf("failed to auto-verify %s in guild %s: %v", m.User.ID, m.GuildID, err)
		}
		if verified {
			return
		}

		cfg, err := b.Configs.GetOrCreate(m.GuildID)
		if err != nil {
			log.Printf("failed to load config for guild %s: %v", m.GuildID, err)
			return
		}
		if !cfg.VerifiedRole.Valid || !cfg.HasMailSender() {
			// Verification is not set up in this guild.
			return
		}

		log.Printf("sending verification DM to %s", m.User.ID)
		if err := b.Engine.SendPrompt(cfg, m.GuildID, m.User.ID); err != nil {
			// DMs can be blocked; nothing to do but note it.
			log.Printf("failed to send verification DM to %s: %v", m.User.ID, err)
		}
	}
}
