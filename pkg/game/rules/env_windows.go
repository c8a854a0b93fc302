//go:build windows

package rules

import (
	"fmt"

	"golang.org/x/sys/windows"
)

func osVersion() string {
	info := windows.RtlGetVersion()
	return fmt.Sprintf("%d.%d", info.MajorVersion, info.MinorVersion)
}
