package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/eugenenazirov/content-studio/internal/application"
	"github.com/eugenenazirov/content-studio/internal/config"
	"github.com/eugenenazirov/content-studio/internal/logging"
	"github.com/eugenenazirov/content-studio/internal/settings"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("content-studio", "Content Studio settings service - serves operational settings and validates media assets")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	envFile := kingpinApp.Flag("env-file", "Path to a .env file loaded before reading the environment").Default(".env").String()
	port := kingpinApp.Flag("port", "HTTP port exposed by the service").String()
	settingsFile := kingpinApp.Flag("settings", "Path to a YAML settings source layered over the compiled defaults").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (overrides monitoring.log_level)").String()
	rateLimitRPSFlag := kingpinApp.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	if err := loadEnvFile(*envFile); err != nil {
		panic(fmt.Sprintf("failed to load env file: %v", err))
	}

	overrides := &config.CLIOverrides{
		ConfigFile:   *configFile,
		Port:         port,
		SettingsFile: settingsFile,
		LogLevel:     logLevel,
	}

	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}

	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	manager, err := loadSettings(cfg)
	if err != nil {
		panic(fmt.Sprintf("failed to load settings: %v", err))
	}

	logger, err := logging.New(resolveLogLevel(cfg, manager))
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("settings loaded",
		zap.String("source", cfg.SettingsFile),
		zap.Strings("env_consulted", settings.OverrideNames()),
		zap.Strings("env_overrides", manager.Overridden()),
	)
	for _, warning := range manager.Warnings() {
		logger.Warn("settings advisory", zap.String("detail", warning))
	}

	app, err := application.New(cfg, manager, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

// loadEnvFile populates the environment from path without replacing
// variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func loadSettings(cfg config.Config) (*settings.Manager, error) {
	var opts []settings.Option
	if cfg.SettingsFile != "" {
		opts = append(opts, settings.WithSource(cfg.SettingsFile))
	}
	return settings.New(opts...)
}

// resolveLogLevel prefers an explicit process log level over monitoring.log_level.
func resolveLogLevel(cfg config.Config, manager *settings.Manager) string {
	if cfg.LogLevel != "" {
		return cfg.LogLevel
	}
	return manager.Monitoring().LogLevel
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
