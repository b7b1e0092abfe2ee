package client

import (
	"os"
	"runtime"
	"strings"

	"devicelicense/utils"
)

var machineIDPaths = []string{
	"/etc/machine-id",
	"/var/lib/dbus/machine-id",
}

// DeviceFingerprint 현재 기기의 핑거프린트 생성
// machine-id 를 우선 사용하고, 없으면 hostname 과 OS 정보로 대체합니다.
func DeviceFingerprint() string {
	if id := readMachineID(); id != "" {
		return utils.ComposeDeviceFingerprint("machine-id", id)
	}
	host, _ := os.Hostname()
	return utils.ComposeDeviceFingerprint(host, runtime.GOOS, runtime.GOARCH)
}

func readMachineID() string {
	for _, p := range machineIDPaths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}
	return ""
}
