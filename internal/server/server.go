// Package server exposes the workflow engine over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dshills/rootcause/internal/logger"
)

type RouterConfig struct {
	Handler        *Handler
	Logger         *logger.Logger
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(cfg.Logger))
	r.Use(CORS(cfg.AllowedOrigins))

	h := cfg.Handler
	r.GET("/healthcheck", h.HealthCheck)

	api := r.Group("/api")
	{
		api.GET("/problems", h.ListProblems)
		api.POST("/problems", h.SaveProblem)
		api.GET("/problems/:id", h.GetProblem)
		api.PUT("/problems/:id/:methodology", h.SaveMethodology)
		api.POST("/problems/:id/conclusion", h.Conclude)
		api.POST("/problems/:id/solutions", h.ProposeSolutions)

		api.POST("/solve", h.Solve)
		api.GET("/solve/:id", h.SolveStored)
	}

	return r
}

type Server struct {
	Engine *gin.Engine
	log    *logger.Logger
}

func NewServer(cfg RouterConfig) *Server {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &Server{Engine: NewRouter(cfg), log: log}
}

// Run serves on address until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
