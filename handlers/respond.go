package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/Tibo-Ulens/freud-bot/models"
	"github.com/Tibo-Ulens/freud-bot/verify"
)

const genericErrorMessage = "Unknown error, please contact a server admin"

// respond sends an ephemeral reply to an interaction.
func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("failed to respond to interaction: %v", err)
	}
}

// deferEphemeral acknowledges an interaction so the handler can take longer
// than the interaction timeout; the reply is sent with followUp.
func deferEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("failed to defer interaction: %v", err)
	}
}

func followUp(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Printf("failed to follow up on interaction: %v", err)
	}
}

// errorMessage turns an engine error into the guild's templated user-facing
// message, falling back to safe generic text on unconfigured guilds.
func errorMessage(cfg *models.GuildConfig, err error) string {
	if cfg == nil {
		return genericErrorMessage
	}

	var invalidEmail *verify.InvalidEmailError
	var duplicateEmail *verify.DuplicateEmailError
	var missingOption *verify.MissingConfigOptionError

	switch {
	case errors.As(err, &invalidEmail):
		return models.RenderTemplate(cfg.InvalidEmailMessage, map[string]string{"email": invalidEmail.Email})
	case errors.As(err, &duplicateEmail):
		return models.RenderTemplate(cfg.DuplicateEmailMessage, map[string]string{"email": duplicateEmail.Email})
	case errors.Is(err, verify.ErrAlreadyVerified):
		return cfg.AlreadyVerifiedMessage
	case errors.Is(err, verify.ErrNoPendingVerification):
		return "It seems you are trying to verify a code without having requested one first\nPlease use `/verify request` to start over"
	case errors.As(err, &missingOption):
		return fmt.Sprintf("This server is missing the '%s' configuration option, please contact a server admin", missingOption.Option)
	default:
		return genericErrorMessage
	}
}
