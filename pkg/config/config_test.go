package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "", cfg.QueueRoot)
}

func TestLoadEmptyPathReturnsZeroValue(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.QueueRoot)
}

func TestLoadParsesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roach.yaml")
	yaml := `
queueRoot: /data/queue
poll:
  interval: 2s
log:
  level: debug
  json: true
metrics:
  addr: :9090
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/queue", cfg.QueueRoot)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)

	d, ok := cfg.PollInterval()
	require.True(t, ok)
	assert.Equal(t, 2*time.Second, d)
}

func TestPollIntervalUnsetIsNotOK(t *testing.T) {
	cfg := &Config{}
	_, ok := cfg.PollInterval()
	assert.False(t, ok)
}

func TestPollIntervalUnparseableIsNotOK(t *testing.T) {
	cfg := &Config{}
	cfg.Poll.Interval = "not-a-duration"
	_, ok := cfg.PollInterval()
	assert.False(t, ok)
}
