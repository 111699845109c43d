package submit

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranjanr/roach/pkg/queue"
)

func TestSubmitWritesQueuedTaskFile(t *testing.T) {
	root := t.TempDir()

	witness, err := Submit(root, "echo hi", "true")
	require.NoError(t, err)
	assert.Contains(t, witness, "test -f")

	ids, err := queue.ListSorted(root, queue.Queued)
	require.NoError(t, err)
	require.Len(t, ids, 1)

	task, err := queue.ReadFile(queue.Path(root, queue.Queued, ids[0]))
	require.NoError(t, err)
	assert.Equal(t, "true", task.Precondition)
	assert.Equal(t, "echo hi", task.Command)
}

func TestSubmitEmptyPreconditionDefaultsToTrue(t *testing.T) {
	root := t.TempDir()

	_, err := Submit(root, "echo hi", "")
	require.NoError(t, err)

	ids, err := queue.ListSorted(root, queue.Queued)
	require.NoError(t, err)
	require.Len(t, ids, 1)

	task, err := queue.ReadFile(queue.Path(root, queue.Queued, ids[0]))
	require.NoError(t, err)
	assert.Equal(t, DefaultPrecondition, task.Precondition)
}

func TestSubmitLeavesNoTemporaryFiles(t *testing.T) {
	root := t.TempDir()

	_, err := Submit(root, "echo hi", "true")
	require.NoError(t, err)

	entries, err := os.ReadDir(queue.Dir(root, queue.Queued))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), ".tmp-")
}

// TestWitnessBecomesTrueOnlyAfterDone exercises the witness expression
// against the real shell, the way a dependent task's precondition would
// evaluate it.
func TestWitnessBecomesTrueOnlyAfterDone(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, queue.EnsureDirs(root))

	witness, err := Submit(root, "echo hi", "true")
	require.NoError(t, err)

	before := exec.Command("sh", "-c", witness)
	assert.Error(t, before.Run(), "witness should be false before the task completes")

	ids, err := queue.ListSorted(root, queue.Queued)
	require.NoError(t, err)
	require.NoError(t, queue.Claim(root, ids[0]))
	require.NoError(t, queue.Promote(root, ids[0]))
	require.NoError(t, queue.Complete(root, ids[0]))

	after := exec.Command("sh", "-c", witness)
	assert.NoError(t, after.Run(), "witness should be true once the task is done")
}
