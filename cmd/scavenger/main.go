// Package main runs Scavenger in the local terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/joho/godotenv"

	"github.com/samdwyer/scavenger/internal/game"
	"github.com/samdwyer/scavenger/internal/scores"
	"github.com/samdwyer/scavenger/internal/session"
	"github.com/samdwyer/scavenger/internal/telemetry"
	"github.com/samdwyer/scavenger/internal/ui"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	// .env is optional; variables may be set directly.
	envErr := godotenv.Load()

	logger, closeLog := newLogger()
	defer closeLog()
	if envErr != nil {
		logger.V(1).Info("no .env loaded", "err", envErr.Error())
	}

	setupOTelEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, logger)
	if err != nil {
		logger.Error(err, "telemetry setup failed, running without tracing")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error(err, "telemetry shutdown")
			}
		}()
	}

	if err := run(ctx, logger); err != nil {
		logger.Error(err, "game failed")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func run(ctx context.Context, logger logr.Logger) error {
	cfg, err := game.ConfigFromEnv(os.LookupEnv)
	if err != nil {
		return err
	}

	var store scores.Store
	if path, err := scores.DefaultPath(); err != nil {
		logger.Error(err, "no score file, scores disabled")
	} else {
		store = scores.NewFileStore(path)
		defer store.Close()
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Close()

	return session.Play(ctx, screen, session.Deps{Config: cfg, Logger: logger, Store: store})
}

// newLogger logs to SCAVENGER_LOG_FILE when set, since the screen owns the
// terminal. SCAVENGER_VERBOSITY sets the stdr verbosity.
func newLogger() (logr.Logger, func()) {
	if v, err := strconv.Atoi(os.Getenv("SCAVENGER_VERBOSITY")); err == nil {
		stdr.SetVerbosity(v)
	}
	var w io.Writer = io.Discard
	closeFn := func() {}
	if path := os.Getenv("SCAVENGER_LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Printf("open log file: %v", err)
		} else {
			w = f
			closeFn = func() { f.Close() }
		}
	}
	return stdr.New(log.New(w, "", log.LstdFlags|log.Lmicroseconds)).WithName("scavenger"), closeFn
}

// setupOTelEnv points the OTLP exporter at Honeycomb when an API key is set.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_SCAVENGER_API_KEY")
	if apiKey == "" {
		return
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	dataset := os.Getenv("HONEYCOMB_SCAVENGER_DATASET")
	if dataset == "" {
		dataset = "scavenger"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
