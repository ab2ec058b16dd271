package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/internal/dashboard/repository"
	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStockService struct {
	latest    entity.PriceRecord
	latestErr error
}

func (f *fakeStockService) GetStock(ctx context.Context, code string, limit int) ([]entity.PriceRecord, error) {
	return nil, nil
}

func (f *fakeStockService) GetLatest(ctx context.Context, code string) (entity.PriceRecord, error) {
	return f.latest, f.latestErr
}

func (f *fakeStockService) GetStats(ctx context.Context, code string, days int) (*dto.StatsSummary, error) {
	return &dto.StatsSummary{Code: code}, nil
}

func (f *fakeStockService) GetRange(ctx context.Context, code string, start, end int64) ([]entity.PriceRecord, error) {
	return nil, nil
}

func (f *fakeStockService) Compare(ctx context.Context, codes []string, days int) (*dto.CompareResponse, error) {
	return &dto.CompareResponse{Days: days, Stocks: []dto.StatsSummary{}}, nil
}

func (f *fakeStockService) GetSummary(ctx context.Context, codes []string) (*dto.SummaryResponse, error) {
	return &dto.SummaryResponse{Stocks: []dto.StockSummary{}}, nil
}

func (f *fakeStockService) GetDaily(ctx context.Context, date string) ([]entity.DailyQuoteRecord, error) {
	return nil, nil
}

func (f *fakeStockService) GetGainers(ctx context.Context, date string, limit int) ([]entity.DailyQuoteRecord, error) {
	return nil, nil
}

func (f *fakeStockService) GetLosers(ctx context.Context, date string, limit int) ([]entity.DailyQuoteRecord, error) {
	return nil, nil
}

func (f *fakeStockService) GetBreadth(ctx context.Context, date string) (*dto.MarketBreadth, error) {
	return nil, nil
}

func newHandlerContext(t *testing.T, path string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newTestStockHandler(t *testing.T, svc *fakeStockService) *StockHandler {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return NewStockHandler(svc, log)
}

func TestGetLatestStatusMapping(t *testing.T) {
	closePrice := 110.0

	tests := []struct {
		name           string
		svc            *fakeStockService
		expectedStatus int
	}{
		{
			name:           "found",
			svc:            &fakeStockService{latest: entity.PriceRecord{Close: &closePrice}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing records map to 404",
			svc:            &fakeStockService{latestErr: fmt.Errorf("no stock data for 9999: %w", repository.ErrNotFound)},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unreachable source maps to 502",
			svc:            &fakeStockService{latestErr: &repository.DataUnavailableError{Resource: "stock/2330.csv", StatusCode: 503}},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "unexpected errors map to 500",
			svc:            &fakeStockService{latestErr: fmt.Errorf("boom")},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestStockHandler(t, tt.svc)
			c, rec := newHandlerContext(t, "/api/v1/stocks/2330/latest")
			c.SetParamNames("code")
			c.SetParamValues("2330")

			require.NoError(t, handler.GetLatest(c))
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestCompareRequiresCodes(t *testing.T) {
	handler := newTestStockHandler(t, &fakeStockService{})
	c, rec := newHandlerContext(t, "/api/v1/stocks-compare?codes=")

	require.NoError(t, handler.Compare(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSplitCodes(t *testing.T) {
	assert.Equal(t, []string{"2330", "2317"}, splitCodes("2330, 2317"))
	assert.Equal(t, []string{"2330"}, splitCodes("2330,,"))
	assert.Nil(t, splitCodes(""))
}
