package homedir_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/calamity-catalog/internal/pkg/homedir"
)

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := homedir.Expand("~/.config/calamity/session.toml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config/calamity/session.toml"), got)

	abs, err := homedir.Expand("/tmp/session.toml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/session.toml", abs)

	_, err = homedir.Expand("  ")
	assert.Error(t, err)
}
