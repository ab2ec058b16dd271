package repository

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/pkg/csvutil"
)

// ToNumber coerces a CSV field into a float. Thousands-separator commas are
// stripped; an empty or non-finite result is absent (nil), never zero.
func ToNumber(value string) *float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if cleaned == "" {
		return nil
	}
	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(num, 0) || math.IsNaN(num) {
		return nil
	}
	return &num
}

// ToInt coerces a CSV field into an integer, truncating toward zero.
func ToInt(value string) *int64 {
	num := ToNumber(value)
	if num == nil {
		return nil
	}
	i := int64(math.Trunc(*num))
	return &i
}

// ToPercent coerces a change-percentage field, tolerating a trailing "%" and
// a leading "+".
func ToPercent(value string) *float64 {
	cleaned := strings.ReplaceAll(value, "%", "")
	cleaned = strings.ReplaceAll(cleaned, "+", "")
	return ToNumber(cleaned)
}

var tagSeparatorRe = regexp.MustCompile(`[,;|\x{3001}]`)

// SplitTags splits a tag field on comma, semicolon, vertical bar, or the
// ideographic comma, trimming each piece and dropping empties.
func SplitTags(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	pieces := tagSeparatorRe.Split(value, -1)
	var tags []string
	for _, piece := range pieces {
		if trimmed := strings.TrimSpace(piece); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

// NormalizeStockRow maps a raw price-history CSV row into a PriceRecord.
func NormalizeStockRow(row map[string]string) entity.PriceRecord {
	return entity.PriceRecord{
		Date:   ToInt(row["Date"]),
		Name:   strings.TrimSpace(row["Name"]),
		Open:   ToNumber(row["Open"]),
		High:   ToNumber(row["High"]),
		Low:    ToNumber(row["Low"]),
		Close:  ToNumber(row["Close"]),
		Volume: ToInt(row["Volume"]),
	}
}

// NormalizeDailyRow maps a raw daily-quotes CSV row into a DailyQuoteRecord.
// The change column may be named ChangePct or ChangePercent.
func NormalizeDailyRow(row map[string]string) entity.DailyQuoteRecord {
	change := row["ChangePct"]
	if change == "" {
		change = row["ChangePercent"]
	}
	return entity.DailyQuoteRecord{
		Date:          ToInt(row["Date"]),
		Code:          strings.TrimSpace(row["Symbol"]),
		Name:          strings.TrimSpace(row["Name"]),
		Open:          ToNumber(row["Open"]),
		High:          ToNumber(row["High"]),
		Low:           ToNumber(row["Low"]),
		Close:         ToNumber(row["Close"]),
		ChangePercent: ToPercent(change),
		Volume:        ToInt(row["Volume"]),
	}
}

// noteHeaderMap translates both Traditional-Chinese headers and their English
// aliases to canonical note field keys. Unrecognized headers are dropped.
var noteHeaderMap = map[string]string{
	"日期":          "date",
	"Date":        "date",
	"股票代號":        "code",
	"StockCode":   "code",
	"代號":          "code",
	"股票名稱":        "name",
	"StockName":   "name",
	"分析內容":        "analysis",
	"Analysis":    "analysis",
	"預判":          "prediction",
	"Prediction":  "prediction",
	"目標價":         "target",
	"TargetPrice": "target",
	"停損價":         "stop",
	"StopLoss":    "stop",
	"信心度":         "confidence",
	"Confidence":  "confidence",
	"策略標籤":        "tags",
	"Tags":        "tags",
	"市場情緒":        "mood",
	"MarketMood":  "mood",
	"備註":          "notes",
	"Notes":       "notes",
	"參考指標":        "reference",
	"Reference":   "reference",
	"result":      "result",
	"Result":      "result",
	"結果":          "result",
	"review_note": "review_note",
	"ReviewNote":  "review_note",
	"回測備註":        "review_note",
}

// NoteExportHeaders is the canonical notes.csv column order.
var NoteExportHeaders = []string{
	"日期", "股票代號", "股票名稱", "分析內容", "預判", "目標價", "停損價",
	"信心度", "策略標籤", "市場情緒", "備註", "參考指標", "result", "review_note",
}

// NormalizeNote maps canonical note fields into a typed NoteRecord, stamping
// the given source. The code is uppercased; numeric fields follow the absent
// convention.
func NormalizeNote(raw map[string]string, source entity.NoteSource) entity.NoteRecord {
	return entity.NoteRecord{
		Date:       strings.TrimSpace(raw["date"]),
		Code:       strings.ToUpper(strings.TrimSpace(raw["code"])),
		Name:       strings.TrimSpace(raw["name"]),
		Analysis:   strings.TrimSpace(raw["analysis"]),
		Prediction: strings.TrimSpace(raw["prediction"]),
		Target:     ToNumber(raw["target"]),
		Stop:       ToNumber(raw["stop"]),
		Confidence: ToNumber(raw["confidence"]),
		Tags:       SplitTags(raw["tags"]),
		Mood:       strings.TrimSpace(raw["mood"]),
		Notes:      strings.TrimSpace(raw["notes"]),
		Reference:  strings.TrimSpace(raw["reference"]),
		Result:     entity.NoteResult(strings.TrimSpace(raw["result"])),
		ReviewNote: strings.TrimSpace(raw["review_note"]),
		Source:     source,
		CreatedAt:  raw["createdAt"],
	}
}

// ParseNotesCSV parses quote-aware notes CSV text into file-backed records.
// Rows whose cells are all blank are skipped.
func ParseNotesCSV(text string) []entity.NoteRecord {
	rows := csvutil.Parse(text)
	if len(rows) == 0 {
		return nil
	}

	keys := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		header = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
		keys[i] = noteHeaderMap[header]
	}

	var records []entity.NoteRecord
	for _, row := range rows[1:] {
		blank := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				blank = false
				break
			}
		}
		if blank {
			continue
		}

		raw := make(map[string]string, len(keys))
		for i, key := range keys {
			if key == "" || i >= len(row) {
				continue
			}
			raw[key] = row[i]
		}
		records = append(records, NormalizeNote(raw, entity.NoteSourceFile))
	}
	return records
}
