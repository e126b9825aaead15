package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCmd_ShowDefaults(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Renderer]")
	assert.Contains(t, out, "Poppler path: (search PATH)")
	assert.Contains(t, out, "Oversample: 2x")
	assert.Contains(t, out, "Initial: 100%")
	assert.Contains(t, out, "Range: 5% - 800%")
	assert.Contains(t, out, "Copy on release: yes")
	assert.Contains(t, out, "Interval: 500ms")
}

func TestSettingsCmd_Set(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("settings", "set", "zoom.step", "1.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Set zoom.step to 1.5")
	assert.Equal(t, 1.5, env.config.GetFloat("zoom.step"))

	out, err = execute("settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Step: 1.5")
}

func TestSettingsCmd_SetInvalid(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "colour", "red"},
		{"bad backend", "renderer.backend", "ghostscript"},
		{"bad number", "zoom.max", "big"},
		{"bad bool", "watch.enabled", "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute("settings", "set", tt.key, tt.value)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid input")
		})
	}
}

func TestSettingsCmd_SetRequiresTwoArgs(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("settings", "set", "zoom.step")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestSettingsCmd_Keys(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("settings", "keys")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, settingsService.Keys(), lines)
}

func TestSettingsCmd_Reset(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("settings", "set", "selection.copy_on_release", "false")
	require.NoError(t, err)

	out, err := execute("settings", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings restored to defaults.")
	assert.True(t, env.config.GetBool("selection.copy_on_release"))
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "yes", yesNo(true))
	assert.Equal(t, "no", yesNo(false))
}
