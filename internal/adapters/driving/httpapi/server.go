// Package httpapi exposes classification and multimodal analysis over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/hoaxlens/internal/core/ports/driving"
	"github.com/custodia-labs/hoaxlens/internal/logger"
)

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 32 << 20

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("http: analysis service is required")

// Ports aggregates the driving ports used by the HTTP server.
type Ports struct {
	// Analysis classifies inputs and fuses submissions.
	Analysis driving.AnalysisService

	// Registry reports model status. Optional.
	Registry driving.ClassifierRegistry
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}

// Server is the HTTP API server.
type Server struct {
	ports        *Ports
	engine       *gin.Engine
	maxBodyBytes int64
}

// NewServer creates a new HTTP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())
	engine.MaxMultipartMemory = DefaultMaxBodyBytes

	s := &Server{
		ports:        ports,
		engine:       engine,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	s.registerRoutes()

	return s, nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.health)

	v1 := s.engine.Group("/v1")
	v1.Use(s.limitBody)
	v1.GET("/models", s.models)
	v1.GET("/indicators", s.indicators)
	v1.POST("/classify/:modality", s.classify)
	v1.POST("/analyze", s.analyze)
}

// limitBody caps the request body size.
func (s *Server) limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes)
	c.Next()
}

// requestLogger logs each request at debug level.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
