//go:build darwin

package rules

import (
	"golang.org/x/sys/unix"
)

func osVersion() string {
	version, err := unix.Sysctl("kern.osproductversion")
	if err != nil {
		return ""
	}
	return version
}
