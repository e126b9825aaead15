package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		binding []string
		want    []string
	}{
		{"quit", km.Quit.Keys(), []string{"q", "ctrl+c"}},
		{"help", km.Help.Keys(), []string{"?"}},
		{"next page", km.NextPage.Keys(), []string{"n"}},
		{"prev page", km.PrevPage.Keys(), []string{"p"}},
		{"zoom in", km.ZoomIn.Keys(), []string{"+"}},
		{"zoom out", km.ZoomOut.Keys(), []string{"-"}},
		{"up", km.Up.Keys(), []string{"up", "k"}},
		{"down", km.Down.Keys(), []string{"down", "j"}},
		{"left", km.Left.Keys(), []string{"left", "h"}},
		{"right", km.Right.Keys(), []string{"right", "l"}},
		{"copy", km.Copy.Keys(), []string{"c"}},
		{"reload", km.Reload.Keys(), []string{"r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.want {
				assert.Contains(t, tt.binding, k)
			}
		})
	}
}

func TestKeyMap_Help(t *testing.T) {
	km := DefaultKeyMap()

	assert.NotEmpty(t, km.ShortHelp())
	assert.Contains(t, km.SelectionHelp(), km.Copy)
	assert.Len(t, km.FullHelp(), 4)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("n", km.NextPage))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.False(t, Matches("x", km.Quit))
}
