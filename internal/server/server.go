package server

import (
	"context"
	"net/http"
	"time"

	"github.com/afifurrozaq/tillpos/config"
	categoryhandler "github.com/afifurrozaq/tillpos/internal/category/handler"
	"github.com/afifurrozaq/tillpos/internal/logger"
	producthandler "github.com/afifurrozaq/tillpos/internal/product/handler"
	salehandler "github.com/afifurrozaq/tillpos/internal/sale/handler"
	statshandler "github.com/afifurrozaq/tillpos/internal/stats/handler"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	Product  *producthandler.ProductHandler
	Category *categoryhandler.CategoryHandler
	Sale     *salehandler.SaleHandler
	Stats    *statshandler.StatsHandler
}

type Server struct {
	cfg    *config.Config
	logger logger.ZapLogger
	engine *gin.Engine
	http   *http.Server
}

func NewServer(cfg *config.Config, log logger.ZapLogger, handlers Handlers) *Server {
	if cfg.Server.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:    cfg,
		logger: log,
		engine: engine,
	}
	s.mapRoutes(handlers)
	return s
}

func (s *Server) mapRoutes(h Handlers) {
	api := s.engine.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.GET("/products", h.Product.List)
	api.POST("/products", h.Product.Create)
	api.PUT("/products/:id", h.Product.Update)
	api.DELETE("/products/:id", h.Product.Delete)
	api.GET("/products/:id/history", h.Product.History)

	api.GET("/categories", h.Category.List)
	api.POST("/categories", h.Category.Create)
	api.PUT("/categories/:id", h.Category.Update)
	api.DELETE("/categories/:id", h.Category.Delete)

	api.POST("/checkout", h.Sale.Checkout)

	api.GET("/stats", h.Stats.Dashboard)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.http = &http.Server{
		Addr:         s.cfg.Server.HTTPPort,
		Handler:      s.engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", s.cfg.Server.HTTPPort))
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
