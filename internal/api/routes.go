package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ashumnni/juris-ai/internal/websocket"
	"github.com/ashumnni/juris-ai/usecase"
)

// Handler holds the dependencies of the HTTP API
type Handler struct {
	legal   *usecase.LegalService
	hub     *websocket.Hub
	timeout time.Duration
	logger  *zap.Logger
}

// InitRoutes initializes all API routes. Every downstream AI call is bounded
// by the given request timeout, retries included.
func InitRoutes(e *echo.Echo, legal *usecase.LegalService, hub *websocket.Hub, timeout time.Duration, logger *zap.Logger) {
	h := &Handler{legal: legal, hub: hub, timeout: timeout, logger: logger}

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "juris-ai-server",
		})
	})

	// API v1 routes
	v1 := e.Group("/api/v1")

	v1.POST("/contracts/analyze", h.analyzeContract)
	v1.POST("/contracts/rewrite", h.rewriteClause)
	v1.POST("/research", h.research)
	v1.GET("/news", h.trendingNews)
	v1.GET("/dashboard", h.dashboard)

	// WebSocket endpoint for live voice consultations
	e.GET("/ws", func(c echo.Context) error {
		return websocket.HandleWebSocket(hub, c, logger)
	})
}

// requestContext bounds one downstream call with the configured timeout
func (h *Handler) requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), h.timeout)
}

// analyzeContract extracts structured key information from document text
func (h *Handler) analyzeContract(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Error("Failed to bind analyze request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}
	if req.Text == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_fields",
			Message: "Document text is required",
		})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	analysis, err := h.legal.AnalyzeContract(ctx, req.Text)
	if err != nil {
		h.logger.Error("Contract analysis failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "analysis_failed",
			Message: "Contract analysis failed",
		})
	}
	return c.JSON(http.StatusOK, analysis)
}

// rewriteClause redrafts a clause according to the given instruction
func (h *Handler) rewriteClause(c echo.Context) error {
	var req RewriteRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Error("Failed to bind rewrite request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}
	if req.ClauseText == "" || req.Instruction == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_fields",
			Message: "Clause text and instruction are required",
		})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	suggestion, err := h.legal.RewriteClause(ctx, req.ClauseTitle, req.ClauseText, req.Instruction)
	if err != nil {
		h.logger.Error("Clause rewrite failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "rewrite_failed",
			Message: "Clause rewrite failed",
		})
	}
	return c.JSON(http.StatusOK, suggestion)
}

// research answers a free-text legal query with cited sources
func (h *Handler) research(c echo.Context) error {
	var req ResearchRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Error("Failed to bind research request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}
	if req.Query == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_fields",
			Message: "Research query is required",
		})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.legal.Research(ctx, req.Query)
	if err != nil {
		h.logger.Error("Legal research failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "research_failed",
			Message: "Legal research failed",
		})
	}
	return c.JSON(http.StatusOK, result)
}

// trendingNews returns the most significant recent legal news items
func (h *Handler) trendingNews(c echo.Context) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	items, err := h.legal.TrendingNews(ctx)
	if err != nil {
		h.logger.Error("Trending news fetch failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "news_failed",
			Message: "Could not fetch trending news",
		})
	}
	return c.JSON(http.StatusOK, NewsResponse{Items: items})
}

// dashboard returns the deadlines and watched cases shown on the landing view
func (h *Handler) dashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, DashboardResponse{
		Deadlines:    upcomingDeadlines,
		WatchedCases: watchedCases,
	})
}
