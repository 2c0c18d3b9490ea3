package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractionCreateRejectsDirectMessages(t *testing.T) {
	f := newHandlerFixture(t)
	dispatch := InteractionCreate(f.bot)

	// Every command is guild-scoped. A DM invocation has no Member, so a
	// handler reaching member data would dereference nil; the dispatcher has
	// to reject these before any handler runs.
	for _, name := range []string{
		"verify", "verifix", "unverify", "config",
		"freudpoint", "exposed", "confess", "expose",
	} {
		assert.NotPanics(t, func() {
			dispatch(f.bot.Session, dmInteraction(name))
		}, name)
	}

	// No handler ran, so nothing persisted a config row keyed by the empty
	// guild id.
	cfg, err := f.bot.Configs.Get("")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}
