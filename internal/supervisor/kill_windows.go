//go:build windows

package supervisor

import (
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

func sysProcAttr() *syscall.SysProcAttr {
	return nil
}

// killTree forcibly terminates the process tree via taskkill:
// /F forces, /T follows child processes.
func killTree(proc *os.Process) error {
	return exec.Command("taskkill", "/PID", strconv.Itoa(proc.Pid), "/F", "/T").Run()
}
