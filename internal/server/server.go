// Package server is the composition root: it builds the store backing,
// wires services to handlers, defines routes and runs the HTTP server
// with graceful shutdown.
//
// DEPENDENCY FLOW:
//
//	main.go → config → server.New
//	server.New: store backing → services → handlers → chi routes
//
// All wiring lives here; no other package constructs its dependencies.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/antoinevw/kebapp/internal/auth"
	"github.com/antoinevw/kebapp/internal/config"
	"github.com/antoinevw/kebapp/internal/handler"
	"github.com/antoinevw/kebapp/internal/middleware"
	"github.com/antoinevw/kebapp/internal/service"
	"github.com/antoinevw/kebapp/internal/store"
	"github.com/antoinevw/kebapp/internal/store/memory"
	"github.com/antoinevw/kebapp/internal/store/mysql"
	"github.com/antoinevw/kebapp/internal/store/sqlite"
)

// Server owns the router and the store backing. The backing's connection
// (when it has one) is closed during shutdown.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	closer io.Closer // nil for the in-memory backing
}

// New builds the full dependency graph for the configured backing.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	accounts, restaurants, closer, err := openStores(cfg, logger)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		closer: closer,
	}

	s.setupRoutes(accounts, restaurants, tokens)
	return s, nil
}

// openStores selects and opens the configured backing. All three expose
// the same ports, so everything past this point is backing-agnostic.
func openStores(cfg config.Config, logger *slog.Logger) (store.AccountStore, store.RestaurantStore, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Info("using sqlite store", slog.String("path", cfg.DBPath))
		return db, db, db, nil

	case config.BackendMySQL:
		db, err := mysql.New(mysql.Config{
			User:    cfg.DBUser,
			Pass:    cfg.DBPass,
			Host:    cfg.DBHost,
			Port:    cfg.DBPort,
			Name:    cfg.DBName,
			Timeout: cfg.RemoteTimeout,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening mysql store: %w", err)
		}
		logger.Info("using mysql store",
			slog.String("host", cfg.DBHost),
			slog.String("database", cfg.DBName),
		)
		return db, db, db, nil

	case config.BackendMemory:
		st := memory.New()
		logger.Info("using in-memory store (state is lost on exit)")
		return st, st, nil, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// setupRoutes wires middleware, handlers and routes.
//
// ROUTE STRUCTURE:
//
//	POST /api/register               register + session cookie
//	POST /api/login                  login + session cookie
//	POST /api/logout                 clear session cookie
//	GET  /api/me                     account snapshot        [session]
//	GET  /api/reviews                review ledger           [session]
//	PUT  /api/reviews/{restaurantID} upsert review           [session]
//	GET  /api/friends                friend graph            [session]
//	POST /api/friends                add friend              [session]
//	GET  /api/restaurants            restaurant list         [session]
//	POST /api/restaurants            create restaurant       [session]
//	GET  /api/map                    marker feed + center    [session]
//	GET  /healthz                    liveness probe
func (s *Server) setupRoutes(accounts store.AccountStore, restaurants store.RestaurantStore, tokens *auth.TokenService) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	sessionService := service.NewSessionService(accounts, tokens, s.config.SessionTTL, s.config.PersistentTTL, s.logger)
	reviewService := service.NewReviewService(accounts, service.Policy(s.config.ReviewPolicy), s.logger)
	friendService := service.NewFriendService(accounts, s.logger)
	restaurantService := service.NewRestaurantService(restaurants, s.config.DefaultLat, s.config.DefaultLng, s.logger)

	sessionHandler := handler.NewSessionHandler(sessionService, s.logger)
	reviewHandler := handler.NewReviewHandler(reviewService, s.logger)
	friendHandler := handler.NewFriendHandler(friendService, s.logger)
	restaurantHandler := handler.NewRestaurantHandler(restaurantService, s.logger)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/register", sessionHandler.HandleRegister)
		r.Post("/login", sessionHandler.HandleLogin)
		r.Post("/logout", sessionHandler.HandleLogout)

		// Everything below requires an authenticated session.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireSession(tokens))

			r.Get("/me", sessionHandler.HandleMe)

			r.Get("/reviews", reviewHandler.HandleList)
			r.Put("/reviews/{restaurantID}", reviewHandler.HandleUpsert)

			r.Get("/friends", friendHandler.HandleList)
			r.Post("/friends", friendHandler.HandleAdd)

			r.Get("/restaurants", restaurantHandler.HandleList)
			r.Post("/restaurants", restaurantHandler.HandleCreate)
			r.Get("/map", restaurantHandler.HandleMap)
		})
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests, close
// the store backing.
func (s *Server) Start() error {
	defer func() {
		if s.closer != nil {
			s.closer.Close()
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("backend", s.config.Backend),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
