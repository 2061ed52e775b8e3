package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfExists(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.False(t, ConfExists("syshealth-missing"))

	dir := filepath.Join(home, ".config", "syshealth")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.yaml"),
		[]byte("identifier: test-host\n"), 0644))

	assert.True(t, ConfExists("custom"))
}
