package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// SessionPlatform adapts a discordgo session to the verify.Platform and
// auditlog.ChannelSender interfaces. Lookups hit the session state cache
// first and fall back to the REST API.
type SessionPlatform struct {
	s *discordgo.Session
}

// NewSessionPlatform wraps a discordgo session.
func NewSessionPlatform(s *discordgo.Session) *SessionPlatform {
	return &SessionPlatform{s: s}
}

// GuildIDs returns the ids of every guild the bot is currently in.
func (p *SessionPlatform) GuildIDs() []string {
	guilds := p.s.State.Guilds
	ids := make([]string, 0, len(guilds))
	for _, guild := range guilds {
		ids = append(ids, guild.ID)
	}
	return ids
}

// GuildName resolves a guild's display name, falling back to its id.
func (p *SessionPlatform) GuildName(guildID string) string {
	if guild, err := p.s.State.Guild(guildID); err == nil && guild.Name != "" {
		return guild.Name
	}
	if guild, err := p.s.Guild(guildID); err == nil {
		return guild.Name
	}
	return guildID
}

func (p *SessionPlatform) member(guildID, userID string) (*discordgo.Member, error) {
	if member, err := p.s.State.Member(guildID, userID); err == nil {
		return member, nil
	}
	return p.s.GuildMember(guildID, userID)
}

// IsMember reports whether a user is a member of a guild.
func (p *SessionPlatform) IsMember(guildID, userID string) bool {
	member, err := p.member(guildID, userID)
	return err == nil && member != nil
}

// RoleExists reports whether a role id still resolves to a role in the guild.
func (p *SessionPlatform) RoleExists(guildID, roleID string) bool {
	if _, err := p.s.State.Role(guildID, roleID); err == nil {
		return true
	}

	roles, err := p.s.GuildRoles(guildID)
	if err != nil {
		return false
	}
	for _, role := range roles {
		if role.ID == roleID {
			return true
		}
	}
	return false
}

// HasRole reports whether a guild member currently holds a role.
func (p *SessionPlatform) HasRole(guildID, userID, roleID string) bool {
	member, err := p.member(guildID, userID)
	if err != nil || member == nil {
		return false
	}
	for _, memberRoleID := range member.Roles {
		if memberRoleID == roleID {
			return true
		}
	}
	return false
}

// GrantRole adds a role to a guild member.
func (p *SessionPlatform) GrantRole(guildID, userID, roleID string) error {
	if err := p.s.GuildMemberRoleAdd(guildID, userID, roleID); err != nil {
		return fmt.Errorf("failed to add role %s to %s in guild %s: %w", roleID, userID, guildID, err)
	}
	return nil
}

// RevokeRole removes a role from a guild member.
func (p *SessionPlatform) RevokeRole(guildID, userID, roleID string) error {
	if err := p.s.GuildMemberRoleRemove(guildID, userID, roleID); err != nil {
		return fmt.Errorf("failed to remove role %s from %s in guild %s: %w", roleID, userID, guildID, err)
	}
	return nil
}

// SendDM sends a direct message to a user.
func (p *SessionPlatform) SendDM(userID, content string) error {
	channel, err := p.s.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel to %s: %w", userID, err)
	}
	if _, err := p.s.ChannelMessageSend(channel.ID, content); err != nil {
		return fmt.Errorf("failed to DM %s: %w", userID, err)
	}
	return nil
}

// SendEmbed delivers an embed, with optional plain content, to a channel.
func (p *SessionPlatform) SendEmbed(channelID, content string, embed *discordgo.MessageEmbed) error {
	_, err := p.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Embeds:  []*discordgo.MessageEmbed{embed},
	})
	return err
}
