package queue

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTask(t *testing.T, root, id string) {
	t.Helper()
	require.NoError(t, EnsureDirs(root))
	require.NoError(t, os.WriteFile(Path(root, Queued, id), []byte("true\n---\necho hi"), 0o644))
}

func TestClaimMovesQueuedToChecking(t *testing.T) {
	root := t.TempDir()
	setupTask(t, root, "task_1")

	require.NoError(t, Claim(root, "task_1"))

	assert.True(t, Exists(root, Checking, "task_1"))
	assert.False(t, Exists(root, Queued, "task_1"))
}

func TestClaimLostRace(t *testing.T) {
	root := t.TempDir()
	setupTask(t, root, "task_1")

	require.NoError(t, Claim(root, "task_1"))
	err := Claim(root, "task_1")
	assert.ErrorIs(t, err, ErrLostRace)
}

func TestFullHappyPathTransitions(t *testing.T) {
	root := t.TempDir()
	setupTask(t, root, "task_1")

	require.NoError(t, Claim(root, "task_1"))
	require.NoError(t, Promote(root, "task_1"))
	require.NoError(t, Complete(root, "task_1"))

	assert.True(t, Exists(root, Done, "task_1"))
	for _, s := range []State{Queued, Checking, Active, Paused, Failed} {
		assert.False(t, Exists(root, s, "task_1"))
	}
}

func TestReleaseToQueuedFromChecking(t *testing.T) {
	root := t.TempDir()
	setupTask(t, root, "task_1")

	require.NoError(t, Claim(root, "task_1"))
	require.NoError(t, ReleaseToQueued(root, Checking, "task_1"))

	assert.True(t, Exists(root, Queued, "task_1"))
}

func TestFailFromActive(t *testing.T) {
	root := t.TempDir()
	setupTask(t, root, "task_1")

	require.NoError(t, Claim(root, "task_1"))
	require.NoError(t, Promote(root, "task_1"))
	require.NoError(t, Fail(root, Active, "task_1"))

	assert.True(t, Exists(root, Failed, "task_1"))
}

// Exactly one of N concurrent claimers wins (spec.md §8 invariant 3).
func TestConcurrentClaimOnlyOneWinner(t *testing.T) {
	root := t.TempDir()
	setupTask(t, root, "task_1")

	const n = 8
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() { results <- Claim(root, "task_1") }()
	}

	wins, losses := 0, 0
	for i := 0; i < n; i++ {
		if err := <-results; err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, ErrLostRace)
			losses++
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, n-1, losses)
}
