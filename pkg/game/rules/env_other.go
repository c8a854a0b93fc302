//go:build !linux && !darwin && !windows

package rules

func osVersion() string {
	return ""
}
