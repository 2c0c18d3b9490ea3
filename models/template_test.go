package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	out := RenderTemplate(
		"Your email has been updated from '{old}' to '{new}'",
		map[string]string{"old": "a@ugent.be", "new": "b@ugent.be"},
	)
	assert.Equal(t, "Your email has been updated from 'a@ugent.be' to 'b@ugent.be'", out)
}

func TestRenderTemplateUnknownPlaceholder(t *testing.T) {
	out := RenderTemplate("Welcome to {guild_name}", map[string]string{"email": "a@ugent.be"})
	assert.Equal(t, "Welcome to {guild_name}", out)
}

func TestRenderTemplateRepeatedPlaceholder(t *testing.T) {
	out := RenderTemplate("{code} {code}", map[string]string{"code": "abc"})
	assert.Equal(t, "abc abc", out)
}
