package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/codingconcepts/env"
	"github.com/joho/godotenv"

	"github.com/pixelforge/backoffice/internal/client/api"
	"github.com/pixelforge/backoffice/internal/client/auth"
	"github.com/pixelforge/backoffice/internal/client/cli"
	"github.com/pixelforge/backoffice/internal/client/iocli"
	"github.com/pixelforge/backoffice/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

type Config struct {
	APIBaseURL   string `env:"BACKOFFICE_API_URL" default:"http://localhost:5000"`
	DBPath       string `env:"BACKOFFICE_DB_PATH" default:"backoffice.db"`
	LogLevel     string `env:"BACKOFFICE_LOG_LEVEL" default:"info"`
	TunnelBypass bool   `env:"BACKOFFICE_TUNNEL_BYPASS" default:"false"`
}

func main() {
	// Конфигурация: .env + переменные окружения, флаги имеют приоритет
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "error loading .env file: %v\n", err)
		os.Exit(1)
	}
	config := Config{}
	if err := env.Set(&config); err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", config.APIBaseURL, "Backend URL")
	dbPath := flag.String("db", config.DBPath, "Path to local session database")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(iocli.NewStdio())
		os.Exit(1)
	}
	command := args[0]

	logger := newLogger(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Открываем локальное хранилище сессии
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open session database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close session database", "error", err)
		}
	}()

	// Собираем клиента и сессию, связываем их через TokenSource
	apiClient := api.NewClient(*serverURL, logger)
	if config.TunnelBypass {
		apiClient.EnableTunnelBypass()
	}
	session := auth.NewService(ctx, apiClient, boltStorage, logger)
	apiClient.SetTokenSource(session)

	c := cli.New(apiClient, session, iocli.NewStdio())
	if err := c.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func printVersion() {
	fmt.Printf("Pixelforge Back-office CLI\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
