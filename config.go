package spark

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings such as
// "250ms" or "2s".
type Duration time.Duration

// Duration returns the value as a time.Duration.
func (d Duration) Duration() time.Duration { return time.Duration(d) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("spark: invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// PushdownConfig controls which constructs may be compiled to
// backend-native SQL. Anything excluded here is evaluated client-side.
type PushdownConfig struct {
	// DisabledFunctions lists scalar function names that must never be
	// pushed down, regardless of dialect support.
	DisabledFunctions []string `yaml:"disabled_functions"`

	// Aggregates enables aggregate pushdown.
	Aggregates bool `yaml:"aggregates"`
}

// Config is the engine configuration.
type Config struct {
	Pushdown           PushdownConfig `yaml:"pushdown"`
	SlowQueryThreshold Duration       `yaml:"slow_query_threshold"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Pushdown:           PushdownConfig{Aggregates: true},
		SlowQueryThreshold: Duration(100 * time.Millisecond),
	}
}

// LoadConfig reads a YAML configuration file. Omitted fields keep their
// defaults.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("spark: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ConfigWatcher reloads a configuration file whenever it changes on
// disk and hands the new configuration to a callback.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchConfig watches path and invokes onChange with each successfully
// reloaded configuration. Reload failures are logged and skipped; the
// previous configuration stays in effect. Close the returned watcher to
// stop.
func WatchConfig(path string, onChange func(*Config)) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors and config managers typically
	// replace the file, which drops a watch set on the file itself.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	cw := &ConfigWatcher{watcher: w, done: make(chan struct{})}
	go cw.loop(path, onChange)
	return cw, nil
}

func (cw *ConfigWatcher) loop(path string, onChange func(*Config)) {
	defer close(cw.done)
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			cfg, err := LoadConfig(path)
			if err != nil {
				slog.Warn("config reload failed", "path", path, "err", err)
				continue
			}
			onChange(cfg)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "err", err)
		}
	}
}

// Close stops watching and releases the watcher.
func (cw *ConfigWatcher) Close() error {
	err := cw.watcher.Close()
	<-cw.done
	return err
}
