//go:build !windows

package launcher

import (
	"os/exec"
)

// setupProcessAttributes is a no-op on non-Windows systems
func setupProcessAttributes(cmd *exec.Cmd) {}
