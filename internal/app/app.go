package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/caley/caley/internal/config"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg          config.Application
	deps         *Dependencies
	router       *mux.Router
	srv          *http.Server
	closeStorage func() error
}

// NewApplication opens the configured store and constructs the full HTTP application, ready to Run().
func NewApplication(cfg config.Application) (*Application, error) {
	repo, closeStorage, err := OpenRepository(cfg)
	if err != nil {
		return nil, err
	}

	deps, err := BuildDependencies(repo, cfg)
	if err != nil {
		closeStorage()
		return nil, err
	}

	r := mux.NewRouter()
	SetupMiddleware(r, deps)
	RegisterRoutes(r, deps)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Server.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv, closeStorage: closeStorage}, nil
}

func (a *Application) Dependencies() *Dependencies {
	return a.deps
}

func (a *Application) Handler() http.Handler {
	return a.router
}

// Run starts the HTTP server and blocks until it fails or ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Close releases the store.
func (a *Application) Close() error {
	if a.closeStorage == nil {
		return nil
	}
	return a.closeStorage()
}
