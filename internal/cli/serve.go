package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/lunarcal/internal/api"
	"github.com/zapponejosh/lunarcal/internal/database"
	"github.com/zapponejosh/lunarcal/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve calendar pages and anniversaries over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.serve(ctx)
		},
	}
}

// serve runs the HTTP view until ctx is cancelled.
func (app *App) serve(ctx context.Context) error {
	db, err := database.Open(database.DefaultConfig(app.Config.DatabasePath), app.Logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return err
	}

	handlers := api.NewHandlers(db, app.Gateway, app.Logger)
	srv := &http.Server{
		Addr:              app.Config.Addr(),
		Handler:           api.SetupRoutes(handlers, app.Logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info(ctx, "http server listening", slog.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info(ctx, "http server stopped")
	return nil
}
