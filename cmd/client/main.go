package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	app "github.com/rocketscienceinc/connectfour/internal"
	"github.com/rocketscienceinc/connectfour/internal/config"
)

// main - is the entry point of the terminal client.
func main() {
	conf := config.MustLoadDefault()

	logger, closeLog := initLogger(conf)
	defer closeLog()

	if err := app.RunClient(logger, conf); err != nil {
		fmt.Fprintf(os.Stderr, "client failed: %v\n", err)
		closeLog()
		os.Exit(1) //nolint: gocritic // log file closed above
	}
}

// initialize logger. The screen owns stdout, so logs go to the configured file or nowhere.
func initLogger(conf *config.Config) (*slog.Logger, func()) {
	opts := &slog.HandlerOptions{Level: config.ParseLogLevel(conf.LogLevel)}

	if conf.Client.LogFile == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, opts)), func() {}
	}

	file, err := os.OpenFile(conf.Client.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		panic(fmt.Errorf("failed to open log file: %w", err))
	}

	return slog.New(slog.NewJSONHandler(file, opts)), func() { _ = file.Close() }
}
