package repository

import (
	"context"
	"net/http"

	"golang-stock-dashboard/internal/dashboard/config"
	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/pkg/logger"

	"golang.org/x/time/rate"
)

// NotesRepository loads the shared notes.csv snapshot.
type NotesRepository interface {
	FetchBase(ctx context.Context) ([]entity.NoteRecord, error)
}

type notesRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewNotesRepository creates a NotesRepository for the configured data base URL.
func NewNotesRepository(cfg *config.Config, log *logger.Logger) NotesRepository {
	return &notesRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: fetchTimeout(cfg.Data.FetchTimeout),
		},
		requestLimiter: newRequestLimiter(cfg.Data.MaxRequestPerMinute),
	}
}

// FetchBase downloads and parses notes.csv into file-backed records.
func (r *notesRepository) FetchBase(ctx context.Context) ([]entity.NoteRecord, error) {
	text, err := fetchCSVText(ctx, r.httpClient, r.requestLimiter, r.log, r.cfg.Data.BaseURL, "notes.csv")
	if err != nil {
		return nil, err
	}
	return ParseNotesCSV(text), nil
}
