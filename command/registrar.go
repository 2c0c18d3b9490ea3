package command

import "github.com/bwmarrin/discordgo"

// Command is an interface for application commands.
type Command interface {
	Definition() *discordgo.ApplicationCommand
}

// AllCommands holds all the command instances. The registry is assembled at
// build time; there is no dynamic extension loading.
var AllCommands = []Command{
	&VerifyCommand{},
	&VerifixCommand{},
	&UnverifyCommand{},
	&ConfigCommand{},
	&FreudpointCommand{},
	&ExposedCommand{},
	&ConfessCommand{},
	&ExposeCommand{},
}

// GetCommandDefinitions returns a slice of all command definitions.
func GetCommandDefinitions() []*discordgo.ApplicationCommand {
	defs := make([]*discordgo.ApplicationCommand, len(AllCommands))
	for i, cmd := range AllCommands {
		defs[i] = cmd.Definition()
	}
	return defs
}
