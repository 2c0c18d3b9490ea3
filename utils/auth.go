package utils

import (
	"github.com/bwmarrin/discordgo"

	"github.com/Tibo-Ulens/freud-bot/models"
)

// HasRole checks if a member holds the given role.
func HasRole(member *discordgo.Member, roleID string) bool {
	for _, userRoleID := range member.Roles {
		if userRoleID == roleID {
			return true
		}
	}
	return false
}

// IsAdmin checks if a member holds the guild's configured admin role.
// Unconfigured guilds have no admins.
func IsAdmin(member *discordgo.Member, cfg *models.GuildConfig) bool {
	if cfg == nil || !cfg.AdminRole.Valid {
		return false
	}
	return HasRole(member, cfg.AdminRole.String)
}
