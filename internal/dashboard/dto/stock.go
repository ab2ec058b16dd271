package dto

// StatsSummary is the derived statistics view over a window of price
// records. It is computed fresh per call and never cached. Field names match
// the dashboard's JSON contract. Trend, volatility, and the performance
// class are only present when the window has the values they derive from.
type StatsSummary struct {
	Code             string     `json:"code"`
	DaysCount        int        `json:"days_count"`
	LatestPrice      *float64   `json:"latest_price"`
	AvgPrice         *float64   `json:"avg_price"`
	MaxPrice         *float64   `json:"max_price"`
	MinPrice         *float64   `json:"min_price"`
	LatestDate       *string    `json:"latest_date"`
	Trend            *TrendInfo `json:"trend,omitempty"`
	Volatility       string     `json:"volatility,omitempty"`
	PerformanceClass string     `json:"performance_class,omitempty"`
}

// CompareResponse is the multi-symbol comparison result. Best and Worst name
// the symbols with the strongest and weakest latest-to-average price ratio.
type CompareResponse struct {
	Days   int            `json:"days"`
	Stocks []StatsSummary `json:"stocks"`
	Best   string         `json:"best,omitempty"`
	Worst  string         `json:"worst,omitempty"`
}

// StockSummary is one symbol's entry in the cross-symbol summary.
type StockSummary struct {
	Code         string   `json:"code"`
	LatestDate   *string  `json:"latest_date"`
	LatestPrice  *float64 `json:"latest_price"`
	TotalRecords int      `json:"total_records"`
}

// SummaryResponse is the cross-symbol summary result.
type SummaryResponse struct {
	TotalStocks int            `json:"total_stocks"`
	Stocks      []StockSummary `json:"stocks"`
}

// MarketBreadth counts advancing, declining, and unchanged instruments for
// one market date. Ratios are rendered to one decimal place over the total
// row count, including rows with an undefined change.
type MarketBreadth struct {
	Total     int    `json:"total"`
	Up        int    `json:"up"`
	Down      int    `json:"down"`
	Flat      int    `json:"flat"`
	UpRatio   string `json:"up_ratio"`
	DownRatio string `json:"down_ratio"`
}

// TrendInfo is the five-way price trend classification against the window
// average.
type TrendInfo struct {
	Trend string `json:"trend"`
	Class string `json:"class"`
}
