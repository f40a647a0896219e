package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/soaringjerry/panelstats/data"
	"github.com/soaringjerry/panelstats/internal/api"
	"github.com/soaringjerry/panelstats/internal/config"
	"github.com/soaringjerry/panelstats/internal/db"
	"github.com/soaringjerry/panelstats/internal/metrics"
	"github.com/soaringjerry/panelstats/internal/middleware"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.Logger(os.Stdout)
	slog.SetDefault(logger)

	m := metrics.New()
	store := db.NewStore(dataSource(cfg, logger), logger, m)

	loadCtx, cancel := context.WithTimeout(context.Background(), cfg.LoadTimeout)
	err = store.Load(loadCtx)
	cancel()
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Observe(logger, m))
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS)
	r.Use(middleware.LocaleMiddleware)
	api.NewRouter(store, api.BuildInfo{Commit: cfg.Commit, BuildTime: cfg.BuildTime}, logger).Register(r)
	r.With(middleware.NoStore).Method(http.MethodGet, "/metrics", m.Handler())

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("panelstats listening", "addr", cfg.Addr, "commit", cfg.Commit, "snapshot_id", store.SnapshotID())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// dataSource reads the CSV files from DataDir, or the bundled sample when no
// directory is configured. Empty file names fall back to the defaults.
func dataSource(cfg config.Config, logger *slog.Logger) db.Source {
	var fsys fs.FS = data.Sample
	if cfg.DataDir != "" {
		fsys = os.DirFS(cfg.DataDir)
	} else {
		logger.Warn("no data directory configured, serving bundled sample data")
	}
	return db.Source{
		FS:                fsys,
		MembersFile:       cfg.MembersFile,
		SurveysFile:       cfg.SurveysFile,
		StatusesFile:      cfg.StatusesFile,
		ParticipationFile: cfg.ParticipationFile,
	}
}
