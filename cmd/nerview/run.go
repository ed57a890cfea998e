package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nerview/nerview/config"
	"github.com/nerview/nerview/pkg/auth"
	"github.com/nerview/nerview/pkg/models"
	"github.com/nerview/nerview/pkg/nlp"
	"github.com/nerview/nerview/pkg/server"
	"github.com/nerview/nerview/pkg/store"
	"github.com/nerview/nerview/pkg/telemetry"
)

const ShutdownTimeout = 10 * time.Second

// run is the entrypoint for the nerview server
func run() {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring nerview: %s", err)
	}

	handleCLIOptions(cfg)

	log.Infof("Starting nerview server version %s", config.VersionString)

	config.SetLogLevel(cfg)

	ctx := context.Background()
	shutdownTracing, err := telemetry.Setup(ctx, &cfg.OTel)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %s", err)
	}

	appState := NewAppState(cfg)

	srv, err := server.Create(appState)
	if err != nil {
		log.Fatalf("Failed to create server: %s", err)
	}

	setupSignalHandler(srv, shutdownTracing)

	log.Infof("Listening on: %s", srv.Addr)
	log.Infof("Analysis service: %s", cfg.NLP.ServerURL)
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// NewAppState creates an AppState struct from the config file / ENV, creating
// the analysis service client and the in-memory analysis store.
func NewAppState(cfg *config.Config) *models.AppState {
	return &models.AppState{
		Analyzer:      nlp.NewClient(&cfg.NLP),
		AnalysisStore: store.NewMemoryStore(&cfg.Store),
		Config:        cfg,
	}
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(cfg *config.Config) {
	if showVersion {
		fmt.Println(config.VersionString)
		os.Exit(0)
	}
	if dumpConfig {
		out, err := config.Dump(cfg)
		if err != nil {
			log.Fatalf("Failed to dump config: %s", err)
		}
		fmt.Print(string(out))
		os.Exit(0)
	}
	if generateKey {
		token, err := auth.GenerateJWT(cfg)
		if err != nil {
			log.Fatalf("Failed to generate token: %s", err)
		}
		fmt.Println(token)
		os.Exit(0)
	}
}

// setupSignalHandler shuts the server down gracefully on termination and
// flushes any buffered spans.
func setupSignalHandler(srv *http.Server, shutdownTracing telemetry.ShutdownFunc) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalCh
		log.Info("Shutting down nerview")

		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("Error shutting down server: %v", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Errorf("Error shutting down tracing: %v", err)
		}
	}()
}
