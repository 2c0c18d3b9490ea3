package auditlog

import (
	"github.com/bwmarrin/discordgo"
)

// Level is the severity of a logged event.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

// String returns the level's name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Colour returns the embed colour used when rendering the level.
func (l Level) Colour() int {
	switch l {
	case LevelDebug:
		return 0x88a8bf
	case LevelInfo:
		return 0x3fc03f
	case LevelWarning:
		return 0xfabd2f
	case LevelError:
		return 0xfb4934
	default:
		return 0x3fc03f
	}
}

// Event scopes. Verification events may be routed to a dedicated channel.
const (
	ScopeVerification = "verification"
	ScopeModeration   = "moderation"
	ScopeBot          = "bot"
)

// Field is a single named context value attached to an event.
type Field struct {
	Name  string
	Value string
}

// Event is an immutable record of something that happened. It only exists in
// flight between a producer and the router; it is never persisted.
type Event struct {
	Scope   string
	Name    string
	UserMsg string
	LogMsg  string
	Fields  []Field
}

// Context identifies where an event originated. Command handlers construct it
// from the invoking interaction and pass it explicitly through every engine
// and log call.
type Context struct {
	GuildID   string
	ChannelID string
	UserID    string
}

// InteractionContext builds a Context from a slash command interaction.
func InteractionContext(i *discordgo.InteractionCreate) Context {
	ctx := Context{
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
	}
	if i.Member != nil && i.Member.User != nil {
		ctx.UserID = i.Member.User.ID
	} else if i.User != nil {
		ctx.UserID = i.User.ID
	}
	return ctx
}

// MessageContext builds a Context from a legacy message command.
func MessageContext(m *discordgo.MessageCreate) Context {
	ctx := Context{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
	}
	if m.Author != nil {
		ctx.UserID = m.Author.ID
	}
	return ctx
}

// GuildContext builds a Context for events that originate from a gateway
// event rather than a command, such as a member joining.
func GuildContext(guildID, userID string) Context {
	return Context{GuildID: guildID, UserID: userID}
}
