package spark_test

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minyyy/spark"
)

func TestDefaultConfig(t *testing.T) {
	cfg := spark.DefaultConfig()
	assert.True(t, cfg.Pushdown.Aggregates)
	assert.Empty(t, cfg.Pushdown.DisabledFunctions)
	assert.Equal(t, 100*time.Millisecond, cfg.SlowQueryThreshold.Duration())
}

func TestLoadConfig(t *testing.T) {
	t.Run("Full", func(t *testing.T) {
		path := writeConfig(t, `
pushdown:
  disabled_functions: [width_bucket, substring]
  aggregates: false
slow_query_threshold: 250ms
`)
		cfg, err := spark.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"width_bucket", "substring"}, cfg.Pushdown.DisabledFunctions)
		assert.False(t, cfg.Pushdown.Aggregates)
		assert.Equal(t, 250*time.Millisecond, cfg.SlowQueryThreshold.Duration())
	})

	t.Run("PartialKeepsDefaults", func(t *testing.T) {
		path := writeConfig(t, "slow_query_threshold: 1s\n")
		cfg, err := spark.LoadConfig(path)
		require.NoError(t, err)
		assert.True(t, cfg.Pushdown.Aggregates)
		assert.Equal(t, time.Second, cfg.SlowQueryThreshold.Duration())
	})

	t.Run("BadDuration", func(t *testing.T) {
		path := writeConfig(t, "slow_query_threshold: soon\n")
		_, err := spark.LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid duration")
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := spark.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}

func TestWatchConfig(t *testing.T) {
	path := writeConfig(t, "slow_query_threshold: 1s\n")

	var reloads atomic.Int64
	var last atomic.Value
	w, err := spark.WatchConfig(path, func(cfg *spark.Config) {
		last.Store(cfg)
		reloads.Add(1)
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("slow_query_threshold: 2s\n"), 0o644))

	require.Eventually(t, func() bool {
		return reloads.Load() > 0
	}, 5*time.Second, 10*time.Millisecond, "config change was not observed")

	cfg := last.Load().(*spark.Config)
	assert.Equal(t, 2*time.Second, cfg.SlowQueryThreshold.Duration())

	// A reload that fails to parse keeps the previous configuration.
	before := reloads.Load()
	require.NoError(t, os.WriteFile(path, []byte("slow_query_threshold: [\n"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, before, reloads.Load())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spark.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
