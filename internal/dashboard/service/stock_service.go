package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang-stock-dashboard/internal/dashboard/config"
	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/internal/dashboard/repository"
	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/pkg/logger"
)

// StockService exposes the dashboard's stock and daily-quote operations on
// top of the CSV data source.
type StockService interface {
	GetStock(ctx context.Context, code string, limit int) ([]entity.PriceRecord, error)
	GetLatest(ctx context.Context, code string) (entity.PriceRecord, error)
	GetStats(ctx context.Context, code string, days int) (*dto.StatsSummary, error)
	GetRange(ctx context.Context, code string, start, end int64) ([]entity.PriceRecord, error)
	Compare(ctx context.Context, codes []string, days int) (*dto.CompareResponse, error)
	GetSummary(ctx context.Context, codes []string) (*dto.SummaryResponse, error)
	GetDaily(ctx context.Context, date string) ([]entity.DailyQuoteRecord, error)
	GetGainers(ctx context.Context, date string, limit int) ([]entity.DailyQuoteRecord, error)
	GetLosers(ctx context.Context, date string, limit int) ([]entity.DailyQuoteRecord, error)
	GetBreadth(ctx context.Context, date string) (*dto.MarketBreadth, error)
}

// NewStockService creates a stock service.
func NewStockService(repo repository.StockRepository, cfg *config.Config, log *logger.Logger) StockService {
	return &stockService{repo: repo, cfg: cfg, log: log}
}

type stockService struct {
	repo repository.StockRepository
	cfg  *config.Config
	log  *logger.Logger
}

// sortedHistory returns the symbol's history sorted descending by date. The
// cached dataset is copied first so the sort never mutates it.
func (s *stockService) sortedHistory(ctx context.Context, code string) ([]entity.PriceRecord, error) {
	records, err := s.repo.GetHistory(ctx, code)
	if err != nil {
		return nil, err
	}
	sorted := make([]entity.PriceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateValue() > sorted[j].DateValue()
	})
	return sorted, nil
}

// GetStock returns the most recent limit records, newest first.
func (s *stockService) GetStock(ctx context.Context, code string, limit int) ([]entity.PriceRecord, error) {
	sorted, err := s.sortedHistory(ctx, code)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.cfg.Data.DefaultLimit
	}
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// GetLatest returns the most recent record for the symbol.
func (s *stockService) GetLatest(ctx context.Context, code string) (entity.PriceRecord, error) {
	sorted, err := s.sortedHistory(ctx, code)
	if err != nil {
		return entity.PriceRecord{}, err
	}
	if len(sorted) == 0 {
		return entity.PriceRecord{}, fmt.Errorf("no stock data for %s: %w", code, repository.ErrNotFound)
	}
	return sorted[0], nil
}

// GetStats computes the statistics summary over the most recent days records.
func (s *stockService) GetStats(ctx context.Context, code string, days int) (*dto.StatsSummary, error) {
	sorted, err := s.sortedHistory(ctx, code)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = s.cfg.Data.DefaultStatsDays
	}
	if len(sorted) > days {
		sorted = sorted[:days]
	}
	if len(sorted) == 0 {
		return nil, fmt.Errorf("no stock data for %s: %w", code, repository.ErrNotFound)
	}
	summary := CalculateStats(code, sorted)
	return &summary, nil
}

// GetRange filters the full history to the inclusive compact-date bounds,
// descending by date. Records without a date are excluded.
func (s *stockService) GetRange(ctx context.Context, code string, start, end int64) ([]entity.PriceRecord, error) {
	sorted, err := s.sortedHistory(ctx, code)
	if err != nil {
		return nil, err
	}
	var filtered []entity.PriceRecord
	for _, record := range sorted {
		if record.Date == nil {
			continue
		}
		if *record.Date >= start && *record.Date <= end {
			filtered = append(filtered, record)
		}
	}
	return filtered, nil
}

// compareOutcome is the per-symbol result of a multi-symbol operation. The
// skip-on-error policy is applied as an explicit filtering step over these,
// not as hidden control flow.
type compareOutcome struct {
	code    string
	summary dto.StatsSummary
	skipped bool
	err     error
}

// Compare computes statistics for each symbol over the same window, labels
// each with its performance class, and names the best and worst performer. A
// failing or empty symbol is logged and skipped; the call as a whole only
// reports the symbols that produced a usable window, in caller order.
func (s *stockService) Compare(ctx context.Context, codes []string, days int) (*dto.CompareResponse, error) {
	if days <= 0 {
		days = s.cfg.Data.DefaultStatsDays
	}

	outcomes := make([]compareOutcome, 0, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		sorted, err := s.sortedHistory(ctx, code)
		if err != nil {
			outcomes = append(outcomes, compareOutcome{code: code, err: err})
			continue
		}
		if len(sorted) > days {
			sorted = sorted[:days]
		}
		if len(sorted) == 0 {
			outcomes = append(outcomes, compareOutcome{code: code, skipped: true})
			continue
		}
		outcomes = append(outcomes, compareOutcome{code: code, summary: CalculateStats(code, sorted)})
	}

	response := &dto.CompareResponse{Days: days, Stocks: []dto.StatsSummary{}}
	for _, outcome := range outcomes {
		if outcome.err != nil {
			s.log.WarnContext(ctx, "Skipping symbol in comparison",
				logger.StringField("code", outcome.code), logger.ErrorField(outcome.err))
			continue
		}
		if outcome.skipped {
			continue
		}
		response.Stocks = append(response.Stocks, outcome.summary)
	}

	for i := range response.Stocks {
		stock := &response.Stocks[i]
		if stock.LatestPrice != nil && stock.AvgPrice != nil && *stock.AvgPrice != 0 {
			stock.PerformanceClass = PerformanceClass(*stock.LatestPrice, *stock.AvgPrice)
		}
	}
	if best, worst := BestAndWorst(response.Stocks); best != nil && worst != nil {
		response.Best = best.Code
		response.Worst = worst.Code
	}
	return response, nil
}

// GetSummary returns latest date, price, and record count per symbol with
// the same best-effort skip policy as Compare.
func (s *stockService) GetSummary(ctx context.Context, codes []string) (*dto.SummaryResponse, error) {
	response := &dto.SummaryResponse{Stocks: []dto.StockSummary{}}
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		sorted, err := s.sortedHistory(ctx, code)
		if err != nil {
			s.log.WarnContext(ctx, "Skipping symbol in summary",
				logger.StringField("code", code), logger.ErrorField(err))
			continue
		}
		if len(sorted) == 0 {
			continue
		}

		entry := dto.StockSummary{
			Code:         code,
			LatestPrice:  sorted[0].Close,
			TotalRecords: len(sorted),
		}
		if sorted[0].Date != nil {
			date := strconv.FormatInt(*sorted[0].Date, 10)
			entry.LatestDate = &date
		}
		response.Stocks = append(response.Stocks, entry)
	}
	response.TotalStocks = len(response.Stocks)
	return response, nil
}

// GetDaily returns the market-wide quotes for one date in file order.
func (s *stockService) GetDaily(ctx context.Context, date string) ([]entity.DailyQuoteRecord, error) {
	return s.repo.GetDaily(ctx, date)
}

// GetGainers returns the top movers by change percentage for one date.
func (s *stockService) GetGainers(ctx context.Context, date string, limit int) ([]entity.DailyQuoteRecord, error) {
	return s.ranked(ctx, date, true, limit)
}

// GetLosers returns the bottom movers by change percentage for one date.
func (s *stockService) GetLosers(ctx context.Context, date string, limit int) ([]entity.DailyQuoteRecord, error) {
	return s.ranked(ctx, date, false, limit)
}

func (s *stockService) ranked(ctx context.Context, date string, gainers bool, limit int) ([]entity.DailyQuoteRecord, error) {
	rows, err := s.repo.GetDaily(ctx, date)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	return RankByChange(rows, gainers, limit), nil
}

// GetBreadth computes up/down/flat counts for one market date.
func (s *stockService) GetBreadth(ctx context.Context, date string) (*dto.MarketBreadth, error) {
	rows, err := s.repo.GetDaily(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no daily data for %s: %w", date, repository.ErrNotFound)
	}
	return MarketBreadth(rows), nil
}
