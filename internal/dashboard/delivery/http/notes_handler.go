package http

import (
	"net/http"
	"strconv"

	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/internal/dashboard/service"
	"golang-stock-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// NotesHandler handles HTTP requests for the trade-prediction notes.
type NotesHandler struct {
	notesService service.NotesService
	logger       *logger.Logger
}

// NewNotesHandler creates a new NotesHandler.
func NewNotesHandler(notesService service.NotesService, logger *logger.Logger) *NotesHandler {
	return &NotesHandler{notesService: notesService, logger: logger}
}

// RegisterRoutes registers the notes routes to the Echo group.
func (h *NotesHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/notes", h.ListNotes)
	g.POST("/notes", h.AddNote)
	g.PUT("/notes/result", h.UpdateResult)
	g.GET("/notes/export", h.ExportNotes)
	g.GET("/notes/summary", h.GetSummary)
	g.GET("/notes/calibration", h.GetCalibration)
	g.GET("/notes/premarket", h.GetPreMarket)
	g.POST("/notes/reload", h.ReloadNotes)
}

// ListNotes returns the merged record set, newest first, optionally
// filtered by code, tag, mood, and minimum confidence.
func (h *NotesHandler) ListNotes(c echo.Context) error {
	if err := h.notesService.LoadBase(c.Request().Context(), false); err != nil {
		return writeError(c, err)
	}

	minConfidence, _ := strconv.ParseFloat(c.QueryParam("min_confidence"), 64)
	filter := dto.NoteFilter{
		Code:          c.QueryParam("code"),
		Tag:           c.QueryParam("tag"),
		Mood:          c.QueryParam("mood"),
		MinConfidence: minConfidence,
	}
	return c.JSON(http.StatusOK, h.notesService.Filter(filter))
}

// AddNote creates one local record from the submitted fields.
func (h *NotesHandler) AddNote(c echo.Context) error {
	var req dto.AddNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	record, err := h.notesService.Add(c.Request().Context(), &req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, record)
}

// UpdateResult annotates the outcome of one local record. Updating a
// file-backed record never matches and reports updated=false.
func (h *NotesHandler) UpdateResult(c echo.Context) error {
	var req dto.UpdateResultRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	updated, err := h.notesService.UpdateResult(c.Request().Context(), &req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": updated})
}

// ExportNotes serializes the merged record set back to CSV text.
func (h *NotesHandler) ExportNotes(c echo.Context) error {
	if err := h.notesService.LoadBase(c.Request().Context(), false); err != nil {
		return writeError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="notes.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(h.notesService.ExportCSV()))
}

// GetSummary returns aggregate statistics over the merged record set.
func (h *NotesHandler) GetSummary(c echo.Context) error {
	if err := h.notesService.LoadBase(c.Request().Context(), false); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.notesService.Summary())
}

// GetCalibration returns confidence calibration buckets with assessments.
func (h *NotesHandler) GetCalibration(c echo.Context) error {
	if err := h.notesService.LoadBase(c.Request().Context(), false); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.notesService.Calibration())
}

// GetPreMarket returns today's unreviewed high-confidence predictions.
func (h *NotesHandler) GetPreMarket(c echo.Context) error {
	if err := h.notesService.LoadBase(c.Request().Context(), false); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.notesService.PreMarket())
}

// ReloadNotes forces a re-fetch of the notes.csv snapshot.
func (h *NotesHandler) ReloadNotes(c echo.Context) error {
	if err := h.notesService.LoadBase(c.Request().Context(), true); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reloaded": true})
}
