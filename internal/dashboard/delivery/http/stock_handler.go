package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/internal/dashboard/repository"
	"golang-stock-dashboard/internal/dashboard/service"
	"golang-stock-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StockHandler handles HTTP requests for per-symbol stock data.
type StockHandler struct {
	stockService service.StockService
	logger       *logger.Logger
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService service.StockService, logger *logger.Logger) *StockHandler {
	return &StockHandler{stockService: stockService, logger: logger}
}

// RegisterRoutes registers the stock routes to the Echo group.
func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/stocks/:code", h.GetStock)
	g.GET("/stocks/:code/latest", h.GetLatest)
	g.GET("/stocks/:code/stats", h.GetStats)
	g.GET("/stocks/:code/range", h.GetRange)
	g.GET("/stocks-compare", h.Compare)
	g.GET("/stocks-summary", h.GetSummary)
}

// GetStock returns the most recent records for one symbol, newest first.
func (h *StockHandler) GetStock(c echo.Context) error {
	code := c.Param("code")
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	records, err := h.stockService.GetStock(c.Request().Context(), code, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, records)
}

// GetLatest returns the single most recent record for one symbol.
func (h *StockHandler) GetLatest(c echo.Context) error {
	record, err := h.stockService.GetLatest(c.Request().Context(), c.Param("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// GetStats returns the statistics summary over the most recent days.
func (h *StockHandler) GetStats(c echo.Context) error {
	code := c.Param("code")
	days, _ := strconv.Atoi(c.QueryParam("days"))

	summary, err := h.stockService.GetStats(c.Request().Context(), code, days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// GetRange returns records within an inclusive compact-date range.
func (h *StockHandler) GetRange(c echo.Context) error {
	start, err := strconv.ParseInt(c.QueryParam("start"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid start date"})
	}
	end, err := strconv.ParseInt(c.QueryParam("end"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid end date"})
	}

	records, err := h.stockService.GetRange(c.Request().Context(), c.Param("code"), start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, records)
}

// Compare returns per-symbol statistics over the same window for a
// comma-separated symbol list.
func (h *StockHandler) Compare(c echo.Context) error {
	codes := splitCodes(c.QueryParam("codes"))
	if len(codes) == 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No symbols given"})
	}
	days, _ := strconv.Atoi(c.QueryParam("days"))

	response, err := h.stockService.Compare(c.Request().Context(), codes, days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// GetSummary returns latest price and record count per symbol.
func (h *StockHandler) GetSummary(c echo.Context) error {
	codes := splitCodes(c.QueryParam("codes"))
	if len(codes) == 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No symbols given"})
	}

	response, err := h.stockService.GetSummary(c.Request().Context(), codes)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

func splitCodes(raw string) []string {
	var codes []string
	for _, code := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(code); trimmed != "" {
			codes = append(codes, trimmed)
		}
	}
	return codes
}

// writeError maps pipeline errors onto HTTP statuses: missing records are
// 404, an unreachable data source is 502, everything else 500.
func writeError(c echo.Context, err error) error {
	var unavailable *repository.DataUnavailableError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &unavailable):
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
}
