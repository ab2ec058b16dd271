package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang-stock-dashboard/internal/dashboard/config"
	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/pkg/cache"
	"golang-stock-dashboard/pkg/common"
	"golang-stock-dashboard/pkg/csvutil"
	"golang-stock-dashboard/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// StockRepository loads normalized price and daily-quote datasets from the
// CSV data source, caching parsed results per resource key.
type StockRepository interface {
	GetHistory(ctx context.Context, code string) ([]entity.PriceRecord, error)
	GetDaily(ctx context.Context, date string) ([]entity.DailyQuoteRecord, error)
}

type stockRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	store          *cache.Store
}

// NewStockRepository creates a StockRepository backed by the configured data
// base URL and cache store.
func NewStockRepository(cfg *config.Config, log *logger.Logger, store *cache.Store) StockRepository {
	return &stockRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: fetchTimeout(cfg.Data.FetchTimeout),
		},
		requestLimiter: newRequestLimiter(cfg.Data.MaxRequestPerMinute),
		store:          store,
	}
}

func fetchTimeout(configured string) time.Duration {
	timeout, err := time.ParseDuration(configured)
	if err != nil {
		return 10 * time.Second
	}
	return timeout
}

// newRequestLimiter spaces outbound fetches to the given per-minute budget.
// A zero or negative budget gets the loader's 120 rpm default so a config
// struct built by hand cannot divide by zero.
func newRequestLimiter(maxPerMinute int) *rate.Limiter {
	if maxPerMinute <= 0 {
		maxPerMinute = 120
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxPerMinute)), 1)
}

// GetHistory returns the full parsed price history for one symbol. The
// returned slice is the cached dataset; callers must copy before sorting or
// mutating.
func (r *stockRepository) GetHistory(ctx context.Context, code string) ([]entity.PriceRecord, error) {
	cacheKey := common.CacheKeyStockPrefix + code
	if cached, ok := r.store.Read(cacheKey); ok {
		return cached.([]entity.PriceRecord), nil
	}

	text, err := r.fetchText(ctx, fmt.Sprintf("stock/%s.csv", code))
	if err != nil {
		return nil, err
	}

	rows := csvutil.ParseSimple(text)
	records := make([]entity.PriceRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, NormalizeStockRow(row))
	}

	r.store.Write(cacheKey, records)
	return records, nil
}

// GetDaily returns the parsed market-wide quotes for one date, in file order.
func (r *stockRepository) GetDaily(ctx context.Context, date string) ([]entity.DailyQuoteRecord, error) {
	cacheKey := common.CacheKeyDailyPrefix + date
	if cached, ok := r.store.Read(cacheKey); ok {
		return cached.([]entity.DailyQuoteRecord), nil
	}

	text, err := r.fetchText(ctx, fmt.Sprintf("daily/%s.csv", date))
	if err != nil {
		return nil, err
	}

	rows := csvutil.ParseSimple(text)
	records := make([]entity.DailyQuoteRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, NormalizeDailyRow(row))
	}

	r.store.Write(cacheKey, records)
	return records, nil
}

func (r *stockRepository) fetchText(ctx context.Context, path string) (string, error) {
	return fetchCSVText(ctx, r.httpClient, r.requestLimiter, r.log, r.cfg.Data.BaseURL, path)
}

// fetchCSVText requests one CSV resource under the data base URL. A non-2xx
// response becomes a DataUnavailableError carrying the resource identity.
func fetchCSVText(ctx context.Context, client *http.Client, limiter *rate.Limiter, log *logger.Logger, baseURL, path string) (string, error) {
	url := strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
	fields := []zap.Field{
		zap.String("url", url),
	}

	if err := limiter.Wait(ctx); err != nil {
		log.ErrorContext(ctx, "Failed to wait for request limit", append(fields, zap.Error(err))...)
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create data request", append(fields, zap.Error(err))...)
		return "", err
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		log.ErrorContext(ctx, "Failed to fetch data resource", append(fields, zap.Error(err))...)
		return "", &DataUnavailableError{Resource: path, Status: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.ErrorContext(ctx, "Received non-OK response for data resource", append(fields, zap.Int("status_code", resp.StatusCode))...)
		return "", &DataUnavailableError{Resource: path, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.ErrorContext(ctx, "Failed to read data response body", append(fields, zap.Error(err))...)
		return "", err
	}

	return string(body), nil
}
