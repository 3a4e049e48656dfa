// Command sessiond wires configuration, logging, the reference Conversion
// Engine, and the WebSocket server together into a running process.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/naoya-sato/henkan/pkg/config"
	"github.com/naoya-sato/henkan/pkg/engine"
	"github.com/naoya-sato/henkan/pkg/logging"
	"github.com/naoya-sato/henkan/pkg/server"
)

func main() {
	addr := flag.String("addr", ":8765", "HTTP listen address")
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	verbose := flag.Bool("v", false, "zap debug-level logging")
	flag.Parse()

	zapConfig := zap.NewProductionConfig()
	if *verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sessiond: failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := logging.InitLogStream("sessiond", "", true); err != nil {
		logger.Warn("failed to init session-converter log stream, falling back to stderr", zap.Error(err))
	}
	defer logging.CloseLogStream()

	var cfgWatcher *config.Watcher
	if *configPath != "" {
		w, err := config.Load(*configPath)
		if err != nil {
			logger.Fatal("failed to load config", zap.String("path", *configPath), zap.Error(err))
		}
		cfgWatcher = w
		logger.Info("loaded config", zap.String("path", *configPath))
	}

	dict, err := engine.LoadDictionary()
	if err != nil {
		logger.Fatal("failed to load dictionary", zap.Error(err))
	}

	srv := server.New(dict, cfgWatcher)
	logger.Info("starting sessiond", zap.String("addr", *addr))
	if err := srv.Start(*addr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
