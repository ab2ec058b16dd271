package service

import (
	"sort"
	"strconv"

	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/internal/entity"
)

// Aggregation functions in this file are pure: the same inputs always yield
// the same outputs and input slices are never mutated.

// CalculateStats derives the statistics summary from a window of price
// records already sorted descending by date. The average uses Close values;
// max and min use the High and Low series to show the true intraday
// envelope rather than the close-based spread.
func CalculateStats(code string, window []entity.PriceRecord) dto.StatsSummary {
	summary := dto.StatsSummary{Code: code, DaysCount: len(window)}
	if len(window) == 0 {
		return summary
	}

	var closeSum float64
	var closeCount int
	var maxHigh, minLow *float64

	for _, record := range window {
		if record.Close != nil {
			closeSum += *record.Close
			closeCount++
		}
		if record.High != nil && (maxHigh == nil || *record.High > *maxHigh) {
			v := *record.High
			maxHigh = &v
		}
		if record.Low != nil && (minLow == nil || *record.Low < *minLow) {
			v := *record.Low
			minLow = &v
		}
	}

	latest := window[0]
	summary.LatestPrice = latest.Close
	if closeCount > 0 {
		avg := closeSum / float64(closeCount)
		summary.AvgPrice = &avg
	}
	summary.MaxPrice = maxHigh
	summary.MinPrice = minLow
	if latest.Date != nil {
		date := strconv.FormatInt(*latest.Date, 10)
		summary.LatestDate = &date
	}
	if summary.LatestPrice != nil && summary.AvgPrice != nil && *summary.AvgPrice != 0 {
		trend := AnalyzeTrend(*summary.LatestPrice, *summary.AvgPrice)
		summary.Trend = &trend
	}
	if maxHigh != nil && minLow != nil && summary.AvgPrice != nil && *summary.AvgPrice != 0 {
		summary.Volatility = Volatility(*maxHigh, *minLow, *summary.AvgPrice)
	}
	return summary
}

// MarketBreadth counts up/down/flat movers among quotes with a defined
// change percentage. Ratios divide by the total row count, undefined
// changes included.
func MarketBreadth(rows []entity.DailyQuoteRecord) *dto.MarketBreadth {
	if len(rows) == 0 {
		return nil
	}

	breadth := &dto.MarketBreadth{Total: len(rows)}
	for _, row := range rows {
		if row.ChangePercent == nil {
			continue
		}
		switch {
		case *row.ChangePercent > 0:
			breadth.Up++
		case *row.ChangePercent < 0:
			breadth.Down++
		default:
			breadth.Flat++
		}
	}
	breadth.UpRatio = formatOneDecimal(float64(breadth.Up) / float64(breadth.Total) * 100)
	breadth.DownRatio = formatOneDecimal(float64(breadth.Down) / float64(breadth.Total) * 100)
	return breadth
}

// RankByChange filters to quotes with a defined change percentage, orders
// them descending for gainers or ascending for losers, and truncates to
// limit. The input slice is left untouched.
func RankByChange(rows []entity.DailyQuoteRecord, gainers bool, limit int) []entity.DailyQuoteRecord {
	ranked := make([]entity.DailyQuoteRecord, 0, len(rows))
	for _, row := range rows {
		if row.ChangePercent != nil {
			ranked = append(ranked, row)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if gainers {
			return *ranked[i].ChangePercent > *ranked[j].ChangePercent
		}
		return *ranked[i].ChangePercent < *ranked[j].ChangePercent
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// AnalyzeTrend classifies the latest price against the window average into
// five bands around ±2%.
func AnalyzeTrend(latest, avg float64) dto.TrendInfo {
	percent := (latest - avg) / avg * 100
	switch {
	case percent > 2:
		return dto.TrendInfo{Trend: "強勢上升", Class: "up"}
	case percent > 0:
		return dto.TrendInfo{Trend: "微幅上升", Class: "up"}
	case percent < -2:
		return dto.TrendInfo{Trend: "明顯下跌", Class: "down"}
	case percent < 0:
		return dto.TrendInfo{Trend: "微幅下跌", Class: "down"}
	default:
		return dto.TrendInfo{Trend: "持平", Class: "flat"}
	}
}

// PerformanceClass labels a symbol whose latest price sits more than 5%
// above ("high") or below ("low") its window average.
func PerformanceClass(latest, avg float64) string {
	ratio := latest / avg
	if ratio > 1.05 {
		return "high"
	}
	if ratio < 0.95 {
		return "low"
	}
	return ""
}

// BestAndWorst picks the strongest and weakest summaries by the ratio of
// latest price to window average. Summaries missing either value are ignored.
func BestAndWorst(stocks []dto.StatsSummary) (best, worst *dto.StatsSummary) {
	var bestRatio, worstRatio float64
	for i := range stocks {
		s := stocks[i]
		if s.LatestPrice == nil || s.AvgPrice == nil || *s.AvgPrice == 0 {
			continue
		}
		ratio := *s.LatestPrice / *s.AvgPrice
		if best == nil || ratio > bestRatio {
			best, bestRatio = &stocks[i], ratio
		}
		if worst == nil || ratio < worstRatio {
			worst, worstRatio = &stocks[i], ratio
		}
	}
	return best, worst
}

// Volatility renders (max-min)/avg as a percentage with two decimals.
func Volatility(max, min, avg float64) string {
	return strconv.FormatFloat((max-min)/avg*100, 'f', 2, 64)
}

// CalculateCalibration groups notes that carry both a confidence value and a
// realized result into buckets keyed by exact confidence. Win rate is
// successes over bucket total, one decimal place. When classify is set, each
// bucket is assessed against the linear 1–10 confidence scale where every
// point nominally maps to 10 percentage points of win probability, with a
// ±20 point tolerance band.
func CalculateCalibration(records []entity.NoteRecord, classify bool) []dto.CalibrationBucket {
	type tally struct {
		total int
		wins  int
	}
	buckets := map[float64]*tally{}

	for _, record := range records {
		if !record.HasResult() || record.Confidence == nil {
			continue
		}
		key := *record.Confidence
		if buckets[key] == nil {
			buckets[key] = &tally{}
		}
		buckets[key].total++
		if record.Result == entity.NoteResultSuccess {
			buckets[key].wins++
		}
	}

	result := make([]dto.CalibrationBucket, 0, len(buckets))
	for confidence, t := range buckets {
		winRate := float64(t.wins) / float64(t.total) * 100
		bucket := dto.CalibrationBucket{
			Confidence: confidence,
			Total:      t.total,
			WinRate:    formatOneDecimal(winRate),
		}
		if classify {
			switch {
			case winRate < confidence*10-20:
				bucket.Assessment = "過度自信"
			case winRate > confidence*10+20:
				bucket.Assessment = "低估能力"
			default:
				bucket.Assessment = "校正良好"
			}
		}
		result = append(result, bucket)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Confidence > result[j].Confidence
	})
	return result
}

func formatOneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
