//go:build !windows

// Package process stops the headless browser behind PDF rendering.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to every process in the group led by pid.
// Chrome spawns renderer and GPU helpers that outlive their parent when only
// the parent is killed.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
