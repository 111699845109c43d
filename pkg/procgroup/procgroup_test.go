package procgroup

import (
	"os/exec"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestKillTreeKillsGrandchildren starts a shell pipeline that forks a
// grandchild sleep process, then verifies KillTree takes down the whole
// session rather than leaving the grandchild orphaned — the exact
// failure mode spec.md §4.3 warns about when the child isn't placed in
// its own session.
func TestKillTreeKillsGrandchildren(t *testing.T) {
	cmd := exec.Command("sh", "-c", "sh -c 'sleep 30' & wait")
	Detach(cmd)
	require.NoError(t, cmd.Start())

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	// Give the grandchild sleep a moment to actually start.
	time.Sleep(200 * time.Millisecond)

	require.NoError(t, KillTree(cmd.Process.Pid, syscall.SIGKILL))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("process tree did not exit after KillTree")
	}
}

func TestKillTreeIgnoresAlreadyExited(t *testing.T) {
	cmd := exec.Command("sh", "-c", "true")
	Detach(cmd)
	require.NoError(t, cmd.Run())

	assert.NoError(t, KillTree(cmd.Process.Pid, syscall.SIGTERM))
}

func TestKillTreeRejectsNonPositivePID(t *testing.T) {
	assert.NoError(t, KillTree(0, syscall.SIGKILL))
	assert.NoError(t, KillTree(-5, syscall.SIGKILL))
}
