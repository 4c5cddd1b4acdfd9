package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/yndnr/memkv/internal/core/command"
	"github.com/yndnr/memkv/internal/infra/buildinfo"
	"github.com/yndnr/memkv/internal/infra/confloader"
	"github.com/yndnr/memkv/internal/infra/shutdown"
	"github.com/yndnr/memkv/internal/server/config"
	"github.com/yndnr/memkv/internal/server/httpserver"
	"github.com/yndnr/memkv/internal/server/kvserver"
	"github.com/yndnr/memkv/internal/storage/memory"
	"github.com/yndnr/memkv/internal/telemetry/logger"
	"github.com/yndnr/memkv/internal/telemetry/metric"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to YAML configuration file",
		EnvVars: []string{"MEMKV_CONFIG"},
	}

	return &cli.App{
		Name:    "memkv-server",
		Usage:   "in-memory key-value server",
		Version: buildinfo.String(),
		Flags:   []cli.Flag{configFlag},
		Action: func(c *cli.Context) error {
			return run(c.Context, c.String("config"))
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Print version information",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprintf(c.App.Writer, "memkv-server %s\n", buildinfo.String())
					return err
				},
			},
			{
				Name:  "config",
				Usage: "Print the effective configuration as YAML",
				Flags: []cli.Flag{configFlag},
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c.String("config"))
					if err != nil {
						return err
					}
					return writeYAML(c.App.Writer, cfg)
				},
			},
		},
	}
}

func run(ctx context.Context, configFile string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	runID := uuid.NewString()
	log.Info("starting memkv-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"run_id", runID,
		"config", configFile)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Storage and metrics
	metrics := metric.NewRegistry()
	store := memory.New()
	metrics.MustRegister(metric.NewKeyspaceCollector(store.Len))

	// KV listener
	kv := kvserver.New(kvConfig(cfg.Server.KV), memory.NewInstrumented(store, metrics), command.DefaultRegistry(),
		kvserver.WithLogger(log),
		kvserver.WithMetrics(metrics))
	kvLn, err := net.Listen("tcp", cfg.Server.KV.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.KV.Addr, err)
	}

	shutdownHandler := shutdown.NewHandler(shutdownTimeout)
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down kv server")
		return kv.Shutdown(ctx)
	})

	go func() {
		if err := kv.Serve(ctx, kvLn); err != nil {
			log.Error("kv server error", "error", err)
			cancel()
		}
	}()

	// Admin HTTP listener
	if cfg.Server.HTTP.Enabled {
		router := httpserver.NewRouter(&httpserver.RouterConfig{
			RunID:   runID,
			Metrics: metrics,
			Logger:  log,
		})
		admin := httpserver.New(cfg.Server.HTTP.Addr, router)
		httpLn, err := net.Listen("tcp", cfg.Server.HTTP.Addr)
		if err != nil {
			_ = kv.Shutdown(context.Background())
			return fmt.Errorf("listen %s: %w", cfg.Server.HTTP.Addr, err)
		}

		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("shutting down admin HTTP server")
			return admin.Shutdown(ctx)
		})

		go func() {
			log.Info("admin HTTP server listening", "address", httpLn.Addr().String())
			if err := admin.Serve(httpLn); err != nil {
				log.Error("admin HTTP server error", "error", err)
				cancel()
			}
		}()
	}

	// Config hot reload
	if configFile != "" {
		watcher, err := watchConfig(configFile, cfg, log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown(func(ctx context.Context) error {
				return watcher.Stop()
			})
		}
	}

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from defaults, file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger creates the process logger and installs it as the default.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, err
	}
	logger.SetDefault(log)
	return log, nil
}

func kvConfig(cfg config.KVConfig) kvserver.Config {
	return kvserver.Config{
		Addr:           cfg.Addr,
		ReadBufferSize: cfg.ReadBufferSize,
		RateLimit:      cfg.RateLimit,
		RateBurst:      cfg.RateBurst,
	}
}

// watchConfig re-reads configFile on change. Only log.level is applied at
// runtime; other changes are reported and need a restart.
func watchConfig(configFile string, current *config.ServerConfig, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(configFile); err != nil {
		_ = watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(path string) {
		next, err := loadConfig(path)
		if err != nil {
			log.Warn("ignoring invalid configuration change", "file", path, "error", err)
			return
		}
		applyReload(current, next, log)
	})
	watcher.StartAsync()
	return watcher, nil
}

// applyReload applies next.Log.Level and reports fields that need a restart.
func applyReload(current, next *config.ServerConfig, log logger.Logger) {
	if next.Log.Level != current.Log.Level {
		if err := logger.SetLevel(next.Log.Level); err != nil {
			log.Warn("failed to apply log level", "level", next.Log.Level, "error", err)
		} else {
			log.Info("log level changed", "from", current.Log.Level, "to", next.Log.Level)
			current.Log.Level = next.Log.Level
		}
	}
	if !reflect.DeepEqual(next.Server, current.Server) || next.Log.Format != current.Log.Format {
		log.Warn("configuration changed, restart required to apply server settings")
	}
}

func writeYAML(w io.Writer, cfg *config.ServerConfig) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
