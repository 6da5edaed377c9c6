package server

import (
	"errors"
	"net/http"

	"B3Radar/internal/collector"
	"B3Radar/internal/model"
	"B3Radar/internal/universe"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type tickerURI struct {
	Ticker string `uri:"ticker" binding:"required,b3lookup"`
}

type watchRequest struct {
	Ticker string `json:"ticker" binding:"required,b3ticker"`
}

func sendError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// timeframe reads the timeframe query parameter, defaulting to the service timeframe.
func (s *Server) timeframe(c *gin.Context) (model.Timeframe, bool) {
	raw := c.Query("timeframe")
	if raw == "" {
		return s.radar.Timeframe(), true
	}
	tf, err := model.ParseTimeframe(raw)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return tf, false
	}
	return tf, true
}

// GET /api/health
func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"connections":   s.hub.Connections(),
		"timeframe":     s.radar.Timeframe(),
		"latest_update": s.radar.LastRefresh(),
	})
}

// GET /api/opportunities?timeframe=
func (s *Server) getOpportunities(c *gin.Context) {
	tf, ok := s.timeframe(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"timeframe":     tf,
		"updatedAt":     s.radar.LastRefresh(),
		"opportunities": s.radar.Top(),
		"analyses":      s.radar.TopAnalyses(tf),
	})
}

// GET /api/tickers/:ticker?timeframe=
func (s *Server) getTicker(c *gin.Context) {
	var uri tickerURI
	if err := c.ShouldBindUri(&uri); err != nil {
		sendError(c, http.StatusBadRequest, "invalid B3 ticker")
		return
	}
	tf, ok := s.timeframe(c)
	if !ok {
		return
	}

	analysis, err := s.radar.Analyze(c.Request.Context(), uri.Ticker, tf)
	if err != nil {
		s.logger.Warn("analyze failed", zap.String("ticker", uri.Ticker), zap.Error(err))
		switch {
		case errors.Is(err, universe.ErrInvalidTicker):
			sendError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, collector.ErrNoData):
			sendError(c, http.StatusNotFound, err.Error())
		default:
			sendError(c, http.StatusBadGateway, "failed to fetch market data")
		}
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// GET /api/watchlist
func (s *Server) getWatchlist(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user":    s.radar.UserWatchlist(),
		"tickers": s.radar.Watchlist(),
	})
}

// POST /api/watchlist
func (s *Server) addWatchlist(c *gin.Context) {
	var req watchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "invalid B3 ticker")
		return
	}
	if err := s.radar.Watch(req.Ticker); err != nil {
		s.watchError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": s.radar.UserWatchlist()})
}

// DELETE /api/watchlist/:ticker
func (s *Server) removeWatchlist(c *gin.Context) {
	var uri tickerURI
	if err := c.ShouldBindUri(&uri); err != nil {
		sendError(c, http.StatusBadRequest, "invalid B3 ticker")
		return
	}
	if err := s.radar.Unwatch(uri.Ticker); err != nil {
		s.watchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": s.radar.UserWatchlist()})
}

func (s *Server) watchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, universe.ErrInvalidTicker):
		sendError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, universe.ErrDuplicateTicker):
		sendError(c, http.StatusConflict, err.Error())
	case errors.Is(err, universe.ErrNotInWatchlist):
		sendError(c, http.StatusNotFound, err.Error())
	default:
		s.logger.Error("watchlist update failed", zap.Error(err))
		sendError(c, http.StatusInternalServerError, "failed to update watchlist")
	}
}

// GET /api/alerts
func (s *Server) getAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"alerts": s.radar.Alerts()})
}
