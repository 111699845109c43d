// Package procgroup places a task's command subprocess in its own
// session so that SIGKILL/SIGSTOP/SIGCONT sent to it reaches every
// descendant the command spawns, and supervises that tree.
//
// spec.md §9's redesign note is explicit that no stdlib gives tree
// signaling for free: "Create the child in its own process group /
// session, and on cancel signal the negative-pgid (POSIX)". That is
// exactly what this package does — no example repo in the pack ships a
// process-tree library (the nearest candidate, gopsutil, only ever
// appears as an indirect transitive dependency, never imported by any
// example's own source), so this is one of the few places roach reaches
// for syscall directly rather than a third-party package.
package procgroup

import (
	"os/exec"
	"syscall"
)

// Detach configures cmd to start as the leader of a new session. Because
// a session leader's pgid equals its pid, signaling the negative of that
// pid reaches the leader and every descendant that has not itself called
// setsid — which is exactly the process tree a shell command and its
// pipeline children form.
func Detach(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setsid = true
}

// KillTree sends sig to every process in the session rooted at pid. pid
// must be the pid of a process started with Detach, i.e. a session
// leader. Signals to processes that have already exited are silently
// ignored, matching spec.md §4.4.
//
// KillTree never targets pid 0 or a negative pid that would resolve to
// the caller's own process group; pid is always the child's pid, which
// by construction differs from the worker's own pid.
func KillTree(pid int, sig syscall.Signal) error {
	if pid <= 0 {
		return nil
	}
	err := syscall.Kill(-pid, sig)
	if err == syscall.ESRCH {
		// Whole tree already exited; nothing to signal.
		return nil
	}
	return err
}
