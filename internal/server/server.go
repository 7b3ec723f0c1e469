// Package server provides the HTTP REST API for evaluating food selections.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jonathan/nutrition-scorer/internal/reference"
	"github.com/jonathan/nutrition-scorer/internal/scoring"
	"github.com/jonathan/nutrition-scorer/internal/server/ratelimit"
	"github.com/jonathan/nutrition-scorer/internal/types"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	router      *gin.Engine
	foods       *types.FoodTable
	profile     *reference.Profile
	outputDir   string
	writeMu     sync.Mutex // Serializes evaluations that write reports
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Port      int
	Foods     *types.FoodTable   // Required
	Profile   *reference.Profile // Defaults to reference.Default()
	OutputDir string             // Reports are written here when set
	RateLimit *ratelimit.Config  // Defaults to ratelimit.LoadConfig()
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Foods == nil {
		return nil, fmt.Errorf("food table is required")
	}
	if cfg.Profile == nil {
		cfg.Profile = reference.Default()
	}
	// Reject unusable profiles at startup rather than on the first request
	if _, err := scoring.NewCalculator(cfg.Profile); err != nil {
		return nil, err
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}

	s := &Server{
		foods:       cfg.Foods,
		profile:     cfg.Profile,
		outputDir:   cfg.OutputDir,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(withLogging())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))
	router.Use(s.rateLimiter.Middleware())

	router.GET("/health", s.handleHealth)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/foods", s.handleListFoods)
		v1.GET("/foods/:name", s.handleGetFood)
		v1.GET("/profile", s.handleGetProfile)
		v1.POST("/evaluate", s.handleEvaluate)
	}
	s.router = router

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// withLogging adds request logging
func withLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		log.Printf("[%s] %s %s", c.Request.Method, c.Request.URL.Path, c.ClientIP())
		c.Next()
		log.Printf("[%s] %s %d completed in %v", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
