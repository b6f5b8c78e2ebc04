package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal/transport/rest"
	"github.com/frahmantamala/maritime-backoffice/internal/transport/swagger"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

func startHTTPServer() {
	ctx := context.Background()
	deps, err := initializeDependencies(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	defer deps.Close()
	lg := deps.Logger
	cfg := deps.Config

	if err := deps.App.Users.ReconcileBootstrapAdmin(ctx); err != nil {
		lg.Error("bootstrap admin reconcile failed", "error", err)
		deps.Close()
		os.Exit(1)
	}

	openAPIPath := cfg.Server.OpenAPIPath
	if openAPIPath != "" {
		if _, err := swagger.Load(ctx, openAPIPath); err != nil {
			lg.Warn("API docs disabled", "path", openAPIPath, "error", err)
			openAPIPath = ""
		}
	}

	router := rest.NewRouter(deps.App.Handlers, rest.Options{
		AllowedOrigins: cfg.Server.Origins(),
		OpenAPIPath:    openAPIPath,
		Metrics:        deps.Metrics,
		MetricsPath:    cfg.Observability.Metrics.Path,
	}, lg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	lg.Info("Starting HTTP server", "address", addr, "session_driver", cfg.Session.Driver)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		lg.Info("Received signal, shutting down...", "signal", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			lg.Error("Server failed to start", "error", err)
			deps.Close()
			os.Exit(1)
		}
	}

	lg.Info("Server stopped")
}
