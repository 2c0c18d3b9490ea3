package handlers

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/Tibo-Ulens/freud-bot/auditlog"
	"github.com/Tibo-Ulens/freud-bot/bot"
	"github.com/Tibo-Ulens/freud-bot/models"
	"github.com/Tibo-Ulens/freud-bot/utils"
)

// handleConfig dispatches the /config subcommands. All subcommands require
// the admin role, except on guilds that have no admin role configured yet,
// where the server owner bootstraps the configuration.
func handleConfig(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := auditlog.InteractionContext(i)

	cfg, err := b.Configs.GetOrCreate(i.GuildID)
	if err != nil {
		respond(s, i, genericErrorMessage)
		return
	}

	if cfg.AdminRole.Valid {
		if !utils.IsAdmin(i.Member, cfg) {
			respond(s, i, "You need the admin role to use this command")
			return
		}
	} else if !isGuildOwner(s, i) {
		respond(s, i, "Only the server owner can configure the bot until an admin role is set")
		return
	}

	sub := i.ApplicationCommandData().Options[0]

	switch sub.Name {
	case "show":
		respond(s, i, renderConfig(cfg))

	case "set-role":
		option := sub.Options[0].StringValue()
		role := sub.Options[1].RoleValue(s, i.GuildID)
		if err := b.Configs.SetOption(i.GuildID, option, role.ID); err != nil {
			respond(s, i, genericErrorMessage)
			return
		}
		b.Router.Log(ctx, auditlog.LevelInfo, auditlog.ConfigUpdated(ctx.UserID, option, utils.RenderRole(role.ID)))
		respond(s, i, fmt.Sprintf("'%s' is now %s", option, utils.RenderRole(role.ID)))

	case "set-channel":
		option := sub.Options[0].StringValue()
		channel := sub.Options[1].ChannelValue(s)
		if err := b.Configs.SetOption(i.GuildID, option, channel.ID); err != nil {
			respond(s, i, genericErrorMessage)
			return
		}
		b.Router.Log(ctx, auditlog.LevelInfo, auditlog.ConfigUpdated(ctx.UserID, option, utils.RenderChannel(channel.ID)))
		respond(s, i, fmt.Sprintf("'%s' is now %s", option, utils.RenderChannel(channel.ID)))

	case "set-message":
		option := sub.Options[0].StringValue()
		value := sub.Options[1].StringValue()
		if err := b.Configs.SetOption(i.GuildID, option, value); err != nil {
			respond(s, i, genericErrorMessage)
			return
		}
		b.Router.Log(ctx, auditlog.LevelInfo, auditlog.ConfigUpdated(ctx.UserID, option, value))
		respond(s, i, fmt.Sprintf("'%s' updated", option))

	case "set-mail-sender":
		user := sub.Options[0].StringValue()
		password := sub.Options[1].StringValue()
		if err := b.Configs.SetMailSender(i.GuildID, user, password); err != nil {
			respond(s, i, genericErrorMessage)
			return
		}
		// The password stays out of the audit log.
		b.Router.Log(ctx, auditlog.LevelInfo, auditlog.ConfigUpdated(ctx.UserID, "mail_sender", user))
		respond(s, i, fmt.Sprintf("Verification emails will be sent from '%s'", user))

	case "set-pin-threshold":
		threshold := int(sub.Options[0].IntValue())
		if err := b.Configs.SetPinReactionThreshold(i.GuildID, threshold); err != nil {
			respond(s, i, genericErrorMessage)
			return
		}
		b.Router.Log(ctx, auditlog.LevelInfo, auditlog.ConfigUpdated(ctx.UserID, "pin_reaction_threshold", fmt.Sprint(threshold)))
		respond(s, i, fmt.Sprintf("Messages now get pinned at %d reactions", threshold))

	case "set-max-spendable":
		max := int(sub.Options[0].IntValue())
		if err := b.Configs.SetMaxSpendableFreudpoints(i.GuildID, max); err != nil {
			respond(s, i, genericErrorMessage)
			return
		}
		b.Router.Log(ctx, auditlog.LevelInfo, auditlog.ConfigUpdated(ctx.UserID, "max_spendable_freudpoints", fmt.Sprint(max)))
		respond(s, i, fmt.Sprintf("Spendable FreudPoints are now capped at %d", max))
	}
}

func isGuildOwner(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	guild, err := s.State.Guild(i.GuildID)
	if err != nil {
		guild, err = s.Guild(i.GuildID)
		if err != nil {
			return false
		}
	}
	return i.Member != nil && i.Member.User != nil && i.Member.User.ID == guild.OwnerID
}

func renderConfig(cfg *models.GuildConfig) string {
	var sb strings.Builder

	line := func(name, value string) {
		if value == "" {
			value = "not set"
		}
		fmt.Fprintf(&sb, "%s: %s\n", name, value)
	}

	roleOrEmpty := func(v string) string {
		if v == "" {
			return ""
		}
		return utils.RenderRole(v)
	}
	channelOrEmpty := func(v string) string {
		if v == "" {
			return ""
		}
		return utils.RenderChannel(v)
	}

	line("verified_role", roleOrEmpty(cfg.VerifiedRole.String))
	line("admin_role", roleOrEmpty(cfg.AdminRole.String))
	line("logging_channel", channelOrEmpty(cfg.LoggingChannel.String))
	line("verification_logging_channel", channelOrEmpty(cfg.VerificationLoggingChannel.String))
	line("confession_channel", channelOrEmpty(cfg.ConfessionChannel.String))
	line("confession_approval_channel", channelOrEmpty(cfg.ConfessionApprovalChannel.String))
	line("mail_sender", cfg.SMTPUser.String)
	line("pin_reaction_threshold", fmt.Sprint(cfg.PinReactionThreshold))
	line("max_spendable_freudpoints", fmt.Sprint(cfg.MaxSpendableFreudpoints))

	return sb.String()
}
