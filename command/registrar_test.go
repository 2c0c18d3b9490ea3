package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCommandDefinitions(t *testing.T) {
	defs := GetCommandDefinitions()
	require.Len(t, defs, len(AllCommands))

	seen := map[string]bool{}
	for _, def := range defs {
		assert.NotEmpty(t, def.Name)
		assert.False(t, seen[def.Name], "duplicate command name %s", def.Name)
		seen[def.Name] = true

		// Every command operates on guild-scoped state and must not be
		// invocable from a DM.
		require.NotNil(t, def.DMPermission, def.Name)
		assert.False(t, *def.DMPermission, def.Name)
	}

	for _, name := range []string{"verify", "verifix", "unverify", "config", "freudpoint", "exposed", "confess", "expose"} {
		assert.True(t, seen[name], "missing command %s", name)
	}
}
