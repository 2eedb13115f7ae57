package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/middleware"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	log      *logrus.Logger
	config   config.Config
	router   *http.ServeMux
	store    *session.Store
	tokens   *session.Tokens
	cookies  *config.Cookies
	ws       *config.WebSocket
	defaults mines.Params
}

func New(log *logrus.Logger, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	defaults, err := cfg.Board.Params()
	if err != nil {
		return nil, err
	}
	secret, err := cfg.SessionSecret()
	if err != nil {
		return nil, err
	}
	tokens, err := session.NewTokens(secret, cfg.Session.TokenLifetime.Duration)
	if err != nil {
		return nil, err
	}

	a := &App{
		log:      log,
		config:   cfg,
		router:   http.NewServeMux(),
		store:    session.NewStore(cfg.Board.MaxCells),
		tokens:   tokens,
		cookies:  config.NewCookies(cfg),
		ws:       config.NewWebSocket(cfg.AllowedOrigins),
		defaults: defaults,
	}
	a.loadRoutes()
	return a, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Session(a.log, a.cookies, a.tokens),
		middleware.Cors(a.config.AllowedOrigins),
		middleware.Logging(a.log),
	)
}

// Start serves until ctx is done, then shuts the server down.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Infof("ready to serve @ %s", a.config.Addr)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return a.store.RunSweeper(gCtx,
			a.config.Session.SweepInterval.Duration,
			a.config.Session.IdleTimeout.Duration,
		)
	})

	return g.Wait()
}
