// Package config loads the Session Converter's tunable preferences and
// logging flags from a YAML file and hot-reloads them on change.
package config

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/naoya-sato/henkan/pkg/converter"
	"github.com/naoya-sato/henkan/pkg/logging"
)

// Logging holds the logging-related flags this package loads alongside
// converter preferences.
type Logging struct {
	ColoredLog         bool   `mapstructure:"colored_log"`
	LogToStderr        bool   `mapstructure:"logtostderr"`
	LogDir             string `mapstructure:"log_dir"`
	FlagVerboseLevel   int    `mapstructure:"v"`
	ConfigVerboseLevel int    `mapstructure:"config_verbose_level"`
}

// Config is the full set of values this package loads and watches.
type Config struct {
	Conversion converter.ConversionPreferences `mapstructure:"conversion"`
	Operation  converter.OperationPreferences  `mapstructure:"operation"`
	Logging    Logging                         `mapstructure:"logging"`
}

func defaults() Config {
	return Config{
		Conversion: converter.DefaultConversionPreferences(),
		Operation:  converter.DefaultOperationPreferences(),
		Logging:    Logging{LogToStderr: true},
	}
}

// Watcher owns a live-reloaded Config plus the converters it pushes changes
// into.
type Watcher struct {
	v *viper.Viper

	mu   sync.RWMutex
	cur  Config
	subs []*converter.SessionConverter
}

// Load reads path and starts watching it for changes. Missing fields fall
// back to DefaultConversionPreferences/DefaultOperationPreferences.
func Load(path string) (*Watcher, error) {
	v := viper.New()
	v.SetConfigFile(path)

	def := defaults()
	v.SetDefault("conversion.usehistory", def.Conversion.UseHistory)
	v.SetDefault("conversion.maxhistorysize", def.Conversion.MaxHistorySize)
	v.SetDefault("operation.usecascadingwindow", def.Operation.UseCascadingWindow)
	v.SetDefault("operation.candidateshortcuts", def.Operation.CandidateShortcuts)
	v.SetDefault("logging.logtostderr", def.Logging.LogToStderr)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	w := &Watcher{v: v}
	if err := w.reload(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(fsnotify.Event) {
		if err := w.reload(); err != nil {
			logging.Error("config: reload failed: %v", err)
			return
		}
		logging.Info("config: reloaded from %s", path)
	})
	v.WatchConfig()

	return w, nil
}

func (w *Watcher) reload() error {
	var c Config
	if err := w.v.Unmarshal(&c); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}

	w.mu.Lock()
	w.cur = c
	subs := append([]*converter.SessionConverter(nil), w.subs...)
	w.mu.Unlock()

	logging.SetConfigVerboseLevel(c.Logging.ConfigVerboseLevel)
	for _, sc := range subs {
		sc.SetConversionPreferences(c.Conversion)
		sc.SetOperationPreferences(c.Operation)
	}
	return nil
}

// Current returns a copy of the currently loaded configuration.
func (w *Watcher) Current() Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cur
}

// Subscribe registers sc to receive ConversionPreferences and
// OperationPreferences updates on every future reload, applying the current
// preferences immediately.
func (w *Watcher) Subscribe(sc *converter.SessionConverter) {
	w.mu.Lock()
	w.subs = append(w.subs, sc)
	cur := w.cur
	w.mu.Unlock()
	sc.SetConversionPreferences(cur.Conversion)
	sc.SetOperationPreferences(cur.Operation)
}
