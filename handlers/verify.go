package handlers

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Tibo-Ulens/freud-bot/auditlog"
	"github.com/Tibo-Ulens/freud-bot/bot"
	"github.com/Tibo-Ulens/freud-bot/models"
	"github.com/Tibo-Ulens/freud-bot/utils"
	"github.com/Tibo-Ulens/freud-bot/verify"
)

// handleVerify dispatches the /verify subcommands.
func handleVerify(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := auditlog.InteractionContext(i)
	sub := i.ApplicationCommandData().Options[0]

	cfg, err := b.Configs.GetOrCreate(i.GuildID)
	if err != nil {
		respond(s, i, genericErrorMessage)
		return
	}

	switch sub.Name {
	case "request":
		if err := b.Engine.RequestVerification(ctx, i.GuildID, ctx.UserID); err != nil {
			respond(s, i, errorMessage(cfg, err))
			return
		}
		respond(s, i, "You have received a DM with further instructions")

	case "email":
		email := sub.Options[0].StringValue()
		if err := b.Engine.SubmitEmail(ctx, i.GuildID, ctx.UserID, email); err != nil {
			respond(s, i, errorMessage(cfg, err))
			return
		}
		respond(s, i, models.RenderTemplate(cfg.VerifyCodeMessage, map[string]string{"email": email}))

	case "code":
		// Verification fans out to other guilds and can outlive the
		// interaction timeout.
		deferEphemeral(s, i)

		code := sub.Options[0].StringValue()
		if err := b.Engine.SubmitCode(ctx, i.GuildID, ctx.UserID, code); err != nil {
			if errors.Is(err, verify.ErrInvalidCode) {
				followUp(s, i, models.RenderTemplate(cfg.InvalidCodeMessage, map[string]string{"code": code}))
				return
			}
			followUp(s, i, errorMessage(cfg, err))
			return
		}

		guildName := i.GuildID
		if guild, err := s.State.Guild(i.GuildID); err == nil {
			guildName = guild.Name
		}
		followUp(s, i, models.RenderTemplate(cfg.WelcomeMessage, map[string]string{"guild_name": guildName}))
	}
}

// handleVerifix reconciles the verified role across the guild's members.
func handleVerifix(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
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

	deferEphemeral(s, i)

	checked, updated, err := b.Engine.ReconcileGuild(ctx, i.GuildID)
	if err != nil {
		followUp(s, i, errorMessage(cfg, err))
		return
	}

	followUp(s, i, fmt.Sprintf("%d verified members checked, %d members updated", checked, updated))
}

// handleUnverify removes a user from the verified users database.
func handleUnverify(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
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

	if err := b.Engine.Unverify(ctx, i.GuildID, target.ID); err != nil {
		respond(s, i, errorMessage(cfg, err))
		return
	}

	respond(s, i, "done")
}
