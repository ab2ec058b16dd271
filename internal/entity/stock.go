package entity

// PriceRecord is one trading day of a single symbol's price history.
// Numeric fields are pointers: a nil value means the source CSV had no
// usable number for that column, which must stay distinct from zero so
// aggregates are not corrupted.
type PriceRecord struct {
	Date   *int64   `json:"Date"`
	Name   string   `json:"Name"`
	Open   *float64 `json:"Open"`
	High   *float64 `json:"High"`
	Low    *float64 `json:"Low"`
	Close  *float64 `json:"Close"`
	Volume *int64   `json:"Volume"`
}

// DateValue returns the record's compact date (YYYYMMDD) or 0 when absent.
func (r PriceRecord) DateValue() int64 {
	if r.Date == nil {
		return 0
	}
	return *r.Date
}

// DailyQuoteRecord is one symbol's quote within a market-wide daily file.
type DailyQuoteRecord struct {
	Date          *int64   `json:"Date"`
	Code          string   `json:"Code"`
	Name          string   `json:"Name"`
	Open          *float64 `json:"Open"`
	High          *float64 `json:"High"`
	Low           *float64 `json:"Low"`
	Close         *float64 `json:"Close"`
	ChangePercent *float64 `json:"ChangePercent"`
	Volume        *int64   `json:"Volume"`
}
