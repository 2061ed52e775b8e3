package osHealth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysward/syshealth/common"
	"github.com/sysward/syshealth/provider"
)

func setupAlarmCapture(t *testing.T) *[]string {
	t.Helper()

	bodies := &[]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*bodies = append(*bodies, string(body))
	}))
	t.Cleanup(srv.Close)

	oldTmp, oldConf, oldScript := common.TmpDir, common.Conf, common.ScriptName
	t.Cleanup(func() {
		common.TmpDir = oldTmp
		common.Conf = oldConf
		common.ScriptName = oldScript
	})

	common.TmpDir = t.TempDir()
	common.ScriptName = "syshealth"
	common.Conf = common.Config{}
	common.Conf.Identifier = "test-host"
	common.Conf.Alarm.Enabled = true
	common.Conf.Alarm.Webhook_urls = []string{srv.URL}

	return bodies
}

func TestCheckAlarmsDiskDownWithTable(t *testing.T) {
	bodies := setupAlarmCapture(t)

	snap := snapshotWith(10, 10, []MountUsage{
		{Device: "/dev/sda1", Mountpoint: "/", UsedPercent: 40, Used: 40 << 30, Total: 100 << 30},
		{Device: "/dev/sdb1", Mountpoint: "/data", UsedPercent: 95, Used: 95 << 30, Total: 100 << 30},
	})
	cfg := DefaultThresholds()
	alerts := Evaluate(snap, cfg)
	require.Len(t, alerts, 1)

	CheckAlarms(snap, alerts, cfg)

	// CPU and memory are healthy with no outstanding down state, so only
	// the disk down alarm fires.
	require.Len(t, *bodies, 1)
	assert.Contains(t, (*bodies)[0], "Partition usage level has exceeded to 90%")
	assert.Contains(t, (*bodies)[0], "Mount Point")
	assert.Contains(t, (*bodies)[0], "/data")
	assert.NotContains(t, (*bodies)[0], "/dev/sda1")

	// Same state next cycle: the repeat is suppressed
	CheckAlarms(snap, alerts, cfg)
	assert.Len(t, *bodies, 1)
}

func TestCheckAlarmsRecoverySendsUp(t *testing.T) {
	bodies := setupAlarmCapture(t)
	cfg := DefaultThresholds()

	down := snapshotWith(92, 10, nil)
	CheckAlarms(down, Evaluate(down, cfg), cfg)
	require.Len(t, *bodies, 1)
	assert.Contains(t, (*bodies)[0], "HIGH CPU USAGE")

	up := snapshotWith(20, 10, nil)
	CheckAlarms(up, Evaluate(up, cfg), cfg)
	require.Len(t, *bodies, 2)
	assert.Contains(t, (*bodies)[1], "CPU usage went below")

	// Recovered and stable: nothing more to say
	CheckAlarms(up, Evaluate(up, cfg), cfg)
	assert.Len(t, *bodies, 2)
}

func TestCheckAlarmsDisabledLeavesNoState(t *testing.T) {
	bodies := setupAlarmCapture(t)
	common.Conf.Alarm.Enabled = false

	snap := snapshotWith(92, 92, []MountUsage{
		{Mountpoint: "/", UsedPercent: 95},
	})
	CheckAlarms(snap, Evaluate(snap, DefaultThresholds()), DefaultThresholds())

	assert.Empty(t, *bodies)
	entries, err := os.ReadDir(common.TmpDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExceededDiskMessageListsOnlyExceededMounts(t *testing.T) {
	snap := HealthSnapshot{
		Disk: []MountUsage{
			{Device: "/dev/sda1", Mountpoint: "/", UsedPercent: 40, Used: 40 << 30, Total: 100 << 30},
			{Device: "/dev/sdb1", Mountpoint: "/data", UsedPercent: 95, Used: 95 << 30, Total: 100 << 30},
			{Device: "/dev/sdc1", Mountpoint: "/backup", UsedPercent: 99, Used: 99 << 30, Total: 100 << 30},
		},
	}
	cfg := DefaultThresholds()
	diskAlerts := Evaluate(snap, cfg)
	require.Len(t, diskAlerts, 2)

	msg := exceededDiskMessage(snap, diskAlerts, cfg)

	assert.Contains(t, msg, "/data")
	assert.Contains(t, msg, "/backup")
	assert.Contains(t, msg, "/dev/sdb1")
	assert.NotContains(t, msg, "/dev/sda1")
	assert.Contains(t, msg, "95.00 GB")
}

var _ provider.Provider = (*fakeProvider)(nil)
