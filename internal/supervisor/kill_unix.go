//go:build !windows

package supervisor

import (
	"errors"
	"os"
	"syscall"
)

// sysProcAttr places the child in its own process group so killTree can
// reach the whole tree in one signal.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// killTree forcibly terminates the process and its descendants. The
// child was spawned with Setpgid, so its group ID equals its pid. A
// group that is already gone counts as success.
func killTree(proc *os.Process) error {
	err := syscall.Kill(-proc.Pid, syscall.SIGKILL)
	if err == nil || errors.Is(err, syscall.ESRCH) {
		return nil
	}
	// Group kill refused (e.g. EPERM); fall back to the direct handle.
	if killErr := proc.Kill(); killErr != nil && !errors.Is(killErr, os.ErrProcessDone) {
		return killErr
	}
	return nil
}
