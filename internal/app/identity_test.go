package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chore/internal/config"
)

func TestResolveIdentity_EnvBeatsConfigBeatsArgv(t *testing.T) {
	t.Setenv(EnvForceName, "forced")
	t.Setenv(EnvForceDesc, "")

	ident := ResolveIdentity("/usr/local/bin/chore", config.AppConfig{Name: "fromconfig"}, "1.0.0")
	assert.Equal(t, "forced", ident.Name)
}

func TestResolveIdentity_ConfigBeatsArgv(t *testing.T) {
	t.Setenv(EnvForceName, "")
	t.Setenv(EnvForceDesc, "")

	ident := ResolveIdentity("/usr/local/bin/chore", config.AppConfig{Name: "fromconfig"}, "1.0.0")
	assert.Equal(t, "fromconfig", ident.Name)
}

func TestResolveIdentity_DefaultsFromInvocationPath(t *testing.T) {
	t.Setenv(EnvForceName, "")
	t.Setenv(EnvForceDesc, "")

	ident := ResolveIdentity("/usr/local/bin/chore", config.AppConfig{}, "1.0.0")
	assert.Equal(t, "chore", ident.Name)
	assert.Equal(t, "1.0.0", ident.Version)
}

func TestResolveIdentity_SummaryRegeneratesFromWinningName(t *testing.T) {
	t.Setenv(EnvForceName, "forced")
	t.Setenv(EnvForceDesc, "")

	ident := ResolveIdentity("/usr/local/bin/chore", config.AppConfig{Name: "fromconfig"}, "1.0.0")
	assert.Equal(t, "forced development task runner", ident.Summary)
}

func TestResolveIdentity_SummaryLocksIndependentlyOfName(t *testing.T) {
	t.Setenv(EnvForceName, "")
	t.Setenv(EnvForceDesc, "forced summary")

	ident := ResolveIdentity("/usr/local/bin/chore", config.AppConfig{
		Name:        "fromconfig",
		Description: "config summary",
	}, "1.0.0")
	assert.Equal(t, "fromconfig", ident.Name)
	assert.Equal(t, "forced summary", ident.Summary)
}

func TestResolveIdentity_ConfigVersionWins(t *testing.T) {
	t.Setenv(EnvForceName, "")
	t.Setenv(EnvForceDesc, "")

	ident := ResolveIdentity("chore", config.AppConfig{Version: "2.0.0"}, "1.0.0")
	assert.Equal(t, "2.0.0", ident.Version)
}
