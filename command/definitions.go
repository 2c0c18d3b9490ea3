package command

import "github.com/bwmarrin/discordgo"

// Every command operates on guild-scoped state, so none of them are usable
// from a DM. Discord hides them there when dm_permission is false.
var noDM = false

// VerifyCommand verifies the calling user's email address.
type VerifyCommand struct{}

func (c *VerifyCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "verify",
		Description:  "Verify that you are a true UGent student",
		DMPermission: &noDM,
		Options:      []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "request",
				Description: "Request a verification code",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "email",
				Description: "Submit your UGent email address",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "email",
						Description: "Your UGent email address",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "code",
				Description: "Submit the verification code you received",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "code",
						Description: "The verification code from your email",
						Required:    true,
					},
				},
			},
		},
	}
}

// VerifixCommand checks that every verified member has the verified role.
type VerifixCommand struct{}

func (c *VerifixCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "verifix",
		Description:  "Check that every verified member has the verified role",
		DMPermission: &noDM,
	}
}

// UnverifyCommand removes somebody from the verified users database.
type UnverifyCommand struct{}

func (c *UnverifyCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "unverify",
		Description:  "Remove somebody from the verified users database",
		DMPermission: &noDM,
		Options:      []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user to unverify",
				Required:    true,
			},
		},
	}
}

// ConfigCommand shows or updates the guild configuration.
type ConfigCommand struct{}

func (c *ConfigCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "config",
		Description:  "Show or update the server configuration",
		DMPermission: &noDM,
		Options:      []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "show",
				Description: "Show the current server configuration",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set-role",
				Description: "Set a role option",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "option",
						Description: "The option to set",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "verified_role", Value: "verified_role"},
							{Name: "admin_role", Value: "admin_role"},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        "role",
						Description: "The role to use",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set-channel",
				Description: "Set a channel option",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "option",
						Description: "The option to set",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "logging_channel", Value: "logging_channel"},
							{Name: "verification_logging_channel", Value: "verification_logging_channel"},
							{Name: "confession_channel", Value: "confession_channel"},
							{Name: "confession_approval_channel", Value: "confession_approval_channel"},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionChannel,
						Name:        "channel",
						Description: "The channel to use",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set-message",
				Description: "Set a message template",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "option",
						Description: "The template to set",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "verify_email_message", Value: "verify_email_message"},
							{Name: "new_email_message", Value: "new_email_message"},
							{Name: "invalid_email_message", Value: "invalid_email_message"},
							{Name: "duplicate_email_message", Value: "duplicate_email_message"},
							{Name: "verify_code_message", Value: "verify_code_message"},
							{Name: "invalid_code_message", Value: "invalid_code_message"},
							{Name: "already_verified_message", Value: "already_verified_message"},
							{Name: "welcome_message", Value: "welcome_message"},
							{Name: "email_subject", Value: "email_subject"},
							{Name: "email_body", Value: "email_body"},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "value",
						Description: "The template text, with {name} placeholders",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set-mail-sender",
				Description: "Set the outgoing mail account for verification emails",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "user",
						Description: "The SMTP account",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "password",
						Description: "The SMTP app password",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set-pin-threshold",
				Description: "Set how many pin reactions pin a message",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "threshold",
						Description: "The number of reactions",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set-max-spendable",
				Description: "Set the maximum spendable FreudPoints",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "max",
						Description: "The maximum",
						Required:    true,
					},
				},
			},
		},
	}
}

// FreudpointCommand awards FreudPoints and shows the leaderboard.
type FreudpointCommand struct{}

func (c *FreudpointCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "freudpoint",
		Description:  "FreudPoint awards and leaderboards",
		DMPermission: &noDM,
		Options:      []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "award",
				Description: "Award a single FreudPoint to the given user",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "The user to award the point to",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "top",
				Description: "Show the FreudPoint top 10",
			},
		},
	}
}

// ExposedCommand shows the confession exposure leaderboard.
type ExposedCommand struct{}

func (c *ExposedCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "exposed",
		Description:  "Show the most exposed confessors",
		DMPermission: &noDM,
		Options:      []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "top",
				Description: "Show the exposure top 10",
			},
		},
	}
}

// ConfessCommand posts an anonymous confession.
type ConfessCommand struct{}

func (c *ConfessCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "confess",
		Description:  "Confess your sins anonymously",
		DMPermission: &noDM,
		Options:      []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "confession",
				Description: "What you want to confess",
				Required:    true,
			},
		},
	}
}

// ExposeCommand exposes a confessor.
type ExposeCommand struct{}

func (c *ExposeCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "expose",
		Description:  "Expose a confessor",
		DMPermission: &noDM,
		Options:      []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The confessor to expose",
				Required:    true,
			},
		},
	}
}
