package server

import (
	"net/http"
	"time"

	"B3Radar/internal/radar"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server exposes the radar over REST and a websocket feed.
type Server struct {
	radar  *radar.Service
	hub    *Hub
	engine *gin.Engine
	logger *zap.Logger
}

// New builds the router and subscribes the websocket hub to radar updates.
// The hub loop must be started with Hub().Run.
func New(svc *radar.Service, logger *zap.Logger) *Server {
	registerValidators()

	logger = logger.With(zap.String("component", "server"))
	s := &Server{
		radar:  svc,
		hub:    NewHub(logger),
		engine: gin.New(),
		logger: logger,
	}
	svc.Subscribe(func(u radar.Update) {
		s.hub.Broadcast(newUpdateMessage(u))
	})

	s.engine.Use(gin.Recovery())
	s.engine.Use(requestLogger(logger))
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/health", s.getHealth)
		api.GET("/opportunities", s.getOpportunities)
		api.GET("/tickers/:ticker", s.getTicker)
		api.GET("/watchlist", s.getWatchlist)
		api.POST("/watchlist", s.addWatchlist)
		api.DELETE("/watchlist/:ticker", s.removeWatchlist)
		api.GET("/alerts", s.getAlerts)
	}
	s.engine.GET("/ws", s.handleWebSocket)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// HTTPServer wraps the router in an http.Server listening on addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// requestLogger logs every request after it is processed.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
