package common

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"
)

// ServiceFile is the on-disk down-state marker for a service. Its presence
// means a down alarm has already been sent and an up alarm is owed when the
// service recovers.
type ServiceFile struct {
	Date string `json:"date"`
}

func serviceStatePath(service string) string {
	serviceReplaced := strings.Replace(service, "/", "-", -1)
	return TmpDir + "/" + serviceReplaced + ".log"
}

// Alarm sends the message to every configured webhook. No-op when alarms are
// disabled.
func Alarm(m string) {
	if !Conf.Alarm.Enabled {
		return
	}

	payload, err := json.Marshal(map[string]string{"text": "[" + ScriptName + " - " + Conf.Identifier + "] " + m})
	if err != nil {
		LogError("Error encoding alarm payload: \n" + err.Error())
		return
	}

	for _, webhookURL := range Conf.Alarm.Webhook_urls {
		r, err := http.NewRequest("POST", webhookURL, bytes.NewBuffer(payload))
		if err != nil {
			LogError("Error creating request for the alarm: \n" + err.Error())
			continue
		}
		r.Header.Set("Content-Type", "application/json")

		res, err := http.DefaultClient.Do(r)
		if err != nil {
			LogError("Error sending request for the alarm: \n" + err.Error())
			continue
		}
		res.Body.Close()
	}
}

// AlarmCheckDown sends a down alarm for the service unless one is already
// outstanding.
func AlarmCheckDown(service string, message string) {
	filePath := serviceStatePath(service)

	if _, err := os.Stat(filePath); err == nil {
		return
	}

	j := ServiceFile{Date: time.Now().Format("2006-01-02 15:04:05")}
	out, err := json.Marshal(&j)
	if err == nil {
		if err := os.WriteFile(filePath, out, 0644); err != nil {
			LogError("Error writing alarm state file: \n" + err.Error())
		}
	}

	Alarm("[:red_circle:] " + message)
}

// AlarmCheckUp clears the down state for the service and sends a recovery
// alarm if a down alarm had been sent.
func AlarmCheckUp(service string, message string) {
	filePath := serviceStatePath(service)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return
	}

	if err := os.Remove(filePath); err != nil {
		LogError("Error removing alarm state file: \n" + err.Error())
	}

	Alarm("[:check:] " + message)
}
