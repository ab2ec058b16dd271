package http

import (
	"net/http"
	"strconv"

	"golang-stock-dashboard/internal/dashboard/service"
	"golang-stock-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DailyHandler handles HTTP requests for market-wide daily quotes.
type DailyHandler struct {
	stockService service.StockService
	logger       *logger.Logger
}

// NewDailyHandler creates a new DailyHandler.
func NewDailyHandler(stockService service.StockService, logger *logger.Logger) *DailyHandler {
	return &DailyHandler{stockService: stockService, logger: logger}
}

// RegisterRoutes registers the daily-quote routes to the Echo group.
func (h *DailyHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/daily/:date", h.GetDaily)
	g.GET("/daily/:date/gainers", h.GetGainers)
	g.GET("/daily/:date/losers", h.GetLosers)
	g.GET("/daily/:date/breadth", h.GetBreadth)
}

// GetDaily returns all quotes for one market date in file order.
func (h *DailyHandler) GetDaily(c echo.Context) error {
	rows, err := h.stockService.GetDaily(c.Request().Context(), c.Param("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GetGainers returns the top movers by change percentage.
func (h *DailyHandler) GetGainers(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	rows, err := h.stockService.GetGainers(c.Request().Context(), c.Param("date"), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GetLosers returns the bottom movers by change percentage.
func (h *DailyHandler) GetLosers(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	rows, err := h.stockService.GetLosers(c.Request().Context(), c.Param("date"), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GetBreadth returns up/down/flat counts for one market date.
func (h *DailyHandler) GetBreadth(c echo.Context) error {
	breadth, err := h.stockService.GetBreadth(c.Request().Context(), c.Param("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, breadth)
}
