package common

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupAlarmTest points the alarm machinery at a temp state dir and a capture
// server, restoring the globals afterwards. Returned slice collects webhook
// POST bodies.
func setupAlarmTest(t *testing.T) *[]string {
	t.Helper()

	bodies := &[]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*bodies = append(*bodies, string(body))
	}))
	t.Cleanup(srv.Close)

	oldTmp, oldConf, oldScript := TmpDir, Conf, ScriptName
	t.Cleanup(func() {
		TmpDir = oldTmp
		Conf = oldConf
		ScriptName = oldScript
	})

	TmpDir = t.TempDir()
	ScriptName = "syshealth"
	Conf = Config{}
	Conf.Identifier = "test-host"
	Conf.Alarm.Enabled = true
	Conf.Alarm.Webhook_urls = []string{srv.URL}

	return bodies
}

func TestAlarmCheckDownFiresOnce(t *testing.T) {
	bodies := setupAlarmTest(t)

	AlarmCheckDown("cpu", "CPU usage limit has exceeded 80%")
	// Repeats while still down are suppressed by the state file
	AlarmCheckDown("cpu", "CPU usage limit has exceeded 80%")
	AlarmCheckDown("cpu", "CPU usage limit has exceeded 80%")

	require.Len(t, *bodies, 1)
	assert.Contains(t, (*bodies)[0], ":red_circle:")
	assert.Contains(t, (*bodies)[0], "[syshealth - test-host]")
	assert.Contains(t, (*bodies)[0], "CPU usage limit has exceeded 80%")

	_, err := os.Stat(serviceStatePath("cpu"))
	assert.NoError(t, err)
}

func TestAlarmCheckUpOnlyAfterDown(t *testing.T) {
	bodies := setupAlarmTest(t)

	// No outstanding down alarm: recovery is silent
	AlarmCheckUp("memory", "Memory usage went below 85%")
	assert.Empty(t, *bodies)

	AlarmCheckDown("memory", "Memory usage limit has exceeded 85%")
	AlarmCheckUp("memory", "Memory usage went below 85%")

	require.Len(t, *bodies, 2)
	assert.Contains(t, (*bodies)[1], ":check:")
	assert.Contains(t, (*bodies)[1], "Memory usage went below 85%")

	// State cleared: a second recovery is silent again
	AlarmCheckUp("memory", "Memory usage went below 85%")
	assert.Len(t, *bodies, 2)

	_, err := os.Stat(serviceStatePath("memory"))
	assert.True(t, os.IsNotExist(err))
}

func TestAlarmDownUpDownCycle(t *testing.T) {
	bodies := setupAlarmTest(t)

	AlarmCheckDown("disk", "down")
	AlarmCheckUp("disk", "up")
	AlarmCheckDown("disk", "down again")

	require.Len(t, *bodies, 3)
	assert.Contains(t, (*bodies)[2], "down again")
}

func TestAlarmDisabledSendsNothing(t *testing.T) {
	bodies := setupAlarmTest(t)
	Conf.Alarm.Enabled = false

	Alarm("should not be sent")
	assert.Empty(t, *bodies)
}

func TestAlarmStateKeyedPerService(t *testing.T) {
	bodies := setupAlarmTest(t)

	// A mountpoint-style service name maps to a flat state file
	AlarmCheckDown("disk-/home", "disk /home full")
	AlarmCheckDown("disk-/home", "disk /home full")
	AlarmCheckDown("disk-/var", "disk /var full")

	assert.Len(t, *bodies, 2)
}
