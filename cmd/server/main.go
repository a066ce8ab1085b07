// scavenger-server serves Scavenger over SSH, one game per connection, with
// an optional HTTP endpoint for spectators and the score table.
//
// Usage:
//
//	scavenger-server [--port 2222] [--key server_host_key] [--http :8080]
//
// Scores go to PostgreSQL when SCAVENGER_DATABASE_URL is set and to the
// local score file otherwise.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"
	"unicode"

	gossh "github.com/gliderlabs/ssh"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/samdwyer/scavenger/internal/game"
	"github.com/samdwyer/scavenger/internal/scores"
	"github.com/samdwyer/scavenger/internal/session"
	"github.com/samdwyer/scavenger/internal/spectate"
	"github.com/samdwyer/scavenger/internal/sshtty"
	"github.com/samdwyer/scavenger/internal/telemetry"
	"github.com/samdwyer/scavenger/internal/ui"
)

const maxNameBytes = 16

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "path to the PEM host key, generated if absent")
	httpAddr := flag.String("http", "", "address for the spectator and scores HTTP server, off when empty")
	flag.Parse()

	_ = godotenv.Load()
	if v, err := strconv.Atoi(os.Getenv("SCAVENGER_VERBOSITY")); err == nil {
		stdr.SetVerbosity(v)
	}
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("scavenger-server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if shutdown, err := telemetry.Setup(ctx, logger); err != nil {
		logger.Error(err, "telemetry setup failed, running without tracing")
	} else {
		defer shutdown(context.Background())
	}

	if err := serve(ctx, logger, *port, *keyFile, *httpAddr); err != nil {
		logger.Error(err, "server stopped")
		os.Exit(1)
	}
}

func serve(ctx context.Context, logger logr.Logger, port int, keyFile, httpAddr string) error {
	cfg, err := game.ConfigFromEnv(os.LookupEnv)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	signer, err := sshtty.LoadOrCreateHostKey(keyFile, logger)
	if err != nil {
		return err
	}

	hub := spectate.NewHub(logger)
	defer hub.Close()

	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", port),
		Handler: func(s gossh.Session) {
			handleSession(s, session.Deps{Config: cfg, Logger: logger, Store: store}, hub)
		},
		PtyCallback: func(gossh.Context, gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("ssh listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	var web *http.Server
	if httpAddr != "" {
		web = &http.Server{
			Addr:              httpAddr,
			Handler:           spectate.NewRouter(hub, store, logger),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("http listening", "addr", httpAddr)
			errCh <- web.ListenAndServe()
		}()
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, gossh.ErrServerClosed) && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if web != nil {
		_ = web.Shutdown(shutdownCtx)
	}
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, logger logr.Logger) (scores.Store, error) {
	if dsn := os.Getenv("SCAVENGER_DATABASE_URL"); dsn != "" {
		logger.Info("using PostgreSQL scores")
		return scores.NewPostgresStore(ctx, dsn)
	}
	path, err := scores.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("score file: %w", err)
	}
	logger.Info("using score file", "path", path)
	return scores.NewFileStore(path), nil
}

// handleSession runs one game for the lifetime of the connection.
func handleSession(s gossh.Session, deps session.Deps, hub *spectate.Hub) {
	name := sanitizeName(s.User())
	if name == "" {
		name = "anon"
	}
	gameID := name + "-" + uuid.NewString()[:8]
	logger := deps.Logger.WithValues("game", gameID, "remote", s.RemoteAddr().String())

	tscreen, err := sshtty.NewScreen(s)
	if errors.Is(err, sshtty.ErrNoPty) {
		fmt.Fprintln(s, "Scavenger needs a terminal. Connect with: ssh -t -p <port> <host>")
		return
	}
	if err != nil {
		logger.Error(err, "screen setup")
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	screen, err := ui.NewScreenFrom(tscreen)
	if err != nil {
		logger.Error(err, "screen init")
		return
	}
	defer screen.Close()

	deps.Logger = logger
	deps.Spectators = hub.Game(gameID)
	if err := session.Play(s.Context(), screen, deps); err != nil {
		logger.Error(err, "game failed")
	}
}

// sanitizeName drops control characters and cuts the name to maxNameBytes
// without splitting a rune.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) || !unicode.IsPrint(r) {
			continue
		}
		if b.Len()+len(string(r)) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}
