package queue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirsCreatesAllSix(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, EnsureDirs(root))

	for _, s := range States {
		info, err := os.Stat(Dir(root, s))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestEnsureDirsIdempotent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, EnsureDirs(root))

	marker := filepath.Join(Dir(root, Queued), "task_marker")
	require.NoError(t, os.WriteFile(marker, []byte("hi"), 0o644))

	require.NoError(t, EnsureDirs(root))

	_, err := os.Stat(marker)
	assert.NoError(t, err, "repeated EnsureDirs must not disturb existing contents")
}

func TestListSortedOrdersLexicographically(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, EnsureDirs(root))

	ids := []string{"task_20260101_000000_000000003", "task_20260101_000000_000000001", "task_20260101_000000_000000002"}
	for _, id := range ids {
		require.NoError(t, os.WriteFile(Path(root, Queued, id), nil, 0o644))
	}

	got, err := ListSorted(root, Queued)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"task_20260101_000000_000000001",
		"task_20260101_000000_000000002",
		"task_20260101_000000_000000003",
	}, got)
}

func TestListSortedMissingDirIsEmpty(t *testing.T) {
	root := t.TempDir()
	got, err := ListSorted(root, Queued)
	require.NoError(t, err)
	assert.Empty(t, got)
}
