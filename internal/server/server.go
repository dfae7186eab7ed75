package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/information-sharing-networks/blog-demo/docs"
	"github.com/information-sharing-networks/blog-demo/internal/blog"
	bloghandlers "github.com/information-sharing-networks/blog-demo/internal/blog/handlers"
	"github.com/information-sharing-networks/blog-demo/internal/config"
	commonhandlers "github.com/information-sharing-networks/blog-demo/internal/server/handlers"
	blogmiddleware "github.com/information-sharing-networks/blog-demo/internal/server/middleware"
	"github.com/information-sharing-networks/blog-demo/internal/version"
)

type Server struct {
	store  blog.Store
	config *config.ServerEnvironment
	logger *slog.Logger
	router *chi.Mux
}

func NewServer(
	store blog.Store,
	cfg *config.ServerEnvironment,
	logger *slog.Logger,
) *Server {
	server := &Server{
		store:  store,
		config: cfg,
		logger: logger,
		router: chi.NewRouter(),
	}

	server.setupMiddleware()
	server.registerRoutes()

	return server
}

// Handler returns the routed handler (used by tests to serve requests without binding a port)
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(blogmiddleware.RequestLogging(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(blogmiddleware.SecurityHeaders(s.config.Environment))
	s.router.Use(blogmiddleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))
	s.router.Use(middleware.Timeout(s.config.RequestTimeout))
}

func (s *Server) registerRoutes() {
	posts := bloghandlers.NewPostsHandler(s.store)

	s.router.Route("/posts", func(r chi.Router) {
		r.Use(blogmiddleware.RequestSizeLimit(s.config.MaxRequestBodyBytes))

		r.Get("/", posts.HandleListPosts)
		r.Post("/", posts.HandleCreatePost)
		r.Get("/{id}", posts.HandleGetPost)
		r.Put("/{id}", posts.HandleUpdatePost)
		r.Delete("/{id}", posts.HandleDeletePost)
	})

	s.router.Get("/health/live", commonhandlers.HandleHealth)
	s.router.Get("/health/ready", commonhandlers.HandleReadiness(s.store))
	s.router.Get("/version", commonhandlers.HandleVersion(version.Get()))
	s.router.Get("/docs/openapi.json", commonhandlers.HandleOpenAPISpec(docs.SwaggerInfo.InstanceName()))
}

// Start serves HTTP until ctx is cancelled, then shuts the listener down gracefully.
func (s *Server) Start(ctx context.Context) error {
	serverAddr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	httpServer := &http.Server{
		Addr:         serverAddr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("service listening",
			slog.String("environment", s.config.Environment),
			slog.String("address", serverAddr))

		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.config.ServerShutdownTimeout)
	defer shutdownCancel()

	s.logger.Info("shutting down HTTP server")

	err := httpServer.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Warn("HTTP server shutdown error",
			slog.String("error", err.Error()))
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}

// DatabaseShutdown releases the store's connections
func (s *Server) DatabaseShutdown() {
	if s.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ServerShutdownTimeout)
	defer cancel()

	if err := s.store.Close(ctx); err != nil {
		s.logger.Warn("database close error",
			slog.String("error", err.Error()))
		return
	}
	s.logger.Info("database connection closed")
}
