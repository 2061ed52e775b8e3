package healthdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetDeleteRoundTrip(t *testing.T) {
	// Must be set before the first Get: the shared handle latches its path
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	_, _, found, err := GetJSON("osHealth", "last_report")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, PutJSON("osHealth", "last_report", `{"cycle":1}`, time.Time{}))

	v, cachedAt, found, err := GetJSON("osHealth", "last_report")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `{"cycle":1}`, v)
	assert.WithinDuration(t, time.Now(), cachedAt, time.Minute)

	// A second put replaces the value instead of adding a row
	require.NoError(t, PutJSON("osHealth", "last_report", `{"cycle":2}`, time.Time{}))
	v, _, found, err = GetJSON("osHealth", "last_report")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `{"cycle":2}`, v)

	// Keys are scoped by module
	_, _, found, err = GetJSON("other", "last_report")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, Delete("osHealth", "last_report"))
	_, _, found, err = GetJSON("osHealth", "last_report")
	require.NoError(t, err)
	assert.False(t, found)
}
