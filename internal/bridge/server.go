package bridge

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/haloshell/haloshell/internal/domain/shell"
	"github.com/haloshell/haloshell/internal/events"
	"github.com/haloshell/haloshell/internal/infrastructure/config"
	"github.com/haloshell/haloshell/internal/infrastructure/logging"
	"github.com/haloshell/haloshell/internal/infrastructure/monitoring"
)

// Server is the HTTP/WebSocket server the rendering host connects to.
type Server struct {
	router  *gin.Engine
	http    *http.Server
	handler *Handler
	manager *shell.Manager
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// NewServer creates a bridge server wired to the state machine and bus.
func NewServer(cfg *config.Config, manager *shell.Manager, bus *events.Bus, metrics *monitoring.Metrics, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	handler := NewHandler(manager, bus, logger, metrics)

	s := &Server{
		router:  router,
		handler: handler,
		manager: manager,
		metrics: metrics,
		logger:  logger,
		http: &http.Server{
			Addr:    net.JoinHostPort(cfg.Bridge.Host, cfg.Bridge.Port),
			Handler: router,
		},
	}

	router.GET("/health", s.handleHealth)
	router.GET("/state", s.handleState)
	router.GET("/stream", handler.HandleConnection)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	return s
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("bridge listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"stats":  s.manager.Stats(),
	})
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.manager.Snapshot())
}
