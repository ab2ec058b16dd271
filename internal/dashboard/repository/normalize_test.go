package repository

import (
	"testing"

	"golang-stock-dashboard/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected *float64
	}{
		{name: "plain number", value: "100.5", expected: floatPtr(100.5)},
		{name: "thousands separators stripped", value: "1,234.5", expected: floatPtr(1234.5)},
		{name: "surrounding whitespace", value: " 42 ", expected: floatPtr(42)},
		{name: "empty is absent", value: "", expected: nil},
		{name: "dash is absent", value: "--", expected: nil},
		{name: "text is absent", value: "n/a", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToNumber(tt.value))
		})
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected *int64
	}{
		{name: "integer", value: "20240105", expected: intPtr(20240105)},
		{name: "float truncates toward zero", value: "12.9", expected: intPtr(12)},
		{name: "thousands separators stripped", value: "1,000", expected: intPtr(1000)},
		{name: "empty is absent", value: "", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToInt(tt.value))
		})
	}
}

func TestToPercent(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected *float64
	}{
		{name: "trailing percent sign", value: "3.2%", expected: floatPtr(3.2)},
		{name: "leading plus", value: "+1.5", expected: floatPtr(1.5)},
		{name: "negative", value: "-0.8%", expected: floatPtr(-0.8)},
		{name: "empty is absent", value: "", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToPercent(tt.value))
		})
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{name: "comma separated", value: "突破,量增", expected: []string{"突破", "量增"}},
		{name: "mixed separators", value: "a;b|c、d", expected: []string{"a", "b", "c", "d"}},
		{name: "pieces trimmed", value: " a , b ", expected: []string{"a", "b"}},
		{name: "empty pieces dropped", value: "a,,b", expected: []string{"a", "b"}},
		{name: "blank is nil", value: "  ", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitTags(tt.value))
		})
	}
}

func TestNormalizeStockRow(t *testing.T) {
	record := NormalizeStockRow(map[string]string{
		"Date":   "20240105",
		"Name":   " 台積電 ",
		"Open":   "580",
		"High":   "590",
		"Low":    "578",
		"Close":  "588",
		"Volume": "12345678",
	})

	assert.Equal(t, intPtr(20240105), record.Date)
	assert.Equal(t, "台積電", record.Name)
	assert.Equal(t, floatPtr(580), record.Open)
	assert.Equal(t, floatPtr(590), record.High)
	assert.Equal(t, floatPtr(578), record.Low)
	assert.Equal(t, floatPtr(588), record.Close)
	assert.Equal(t, intPtr(12345678), record.Volume)
}

func TestNormalizeStockRowAbsentFields(t *testing.T) {
	record := NormalizeStockRow(map[string]string{"Date": "20240105", "Close": ""})

	assert.Equal(t, intPtr(20240105), record.Date)
	assert.Nil(t, record.Open)
	assert.Nil(t, record.High)
	assert.Nil(t, record.Low)
	assert.Nil(t, record.Close)
	assert.Nil(t, record.Volume)
}

func TestNormalizeDailyRow(t *testing.T) {
	record := NormalizeDailyRow(map[string]string{
		"Date":      "20240105",
		"Symbol":    "2330",
		"Name":      "台積電",
		"Close":     "588",
		"ChangePct": "+1.2%",
	})

	assert.Equal(t, "2330", record.Code)
	assert.Equal(t, floatPtr(1.2), record.ChangePercent)
}

func TestNormalizeDailyRowChangePercentAlias(t *testing.T) {
	record := NormalizeDailyRow(map[string]string{
		"Symbol":        "2330",
		"ChangePercent": "-0.5",
	})

	assert.Equal(t, floatPtr(-0.5), record.ChangePercent)
}

func TestNormalizeNote(t *testing.T) {
	record := NormalizeNote(map[string]string{
		"date":       "2024-01-05",
		"code":       " tsm ",
		"name":       "台積電",
		"analysis":   "看多",
		"target":     "600",
		"stop":       "",
		"confidence": "8",
		"tags":       "突破,量增",
		"result":     "success",
	}, entity.NoteSourceLocal)

	assert.Equal(t, "2024-01-05", record.Date)
	assert.Equal(t, "TSM", record.Code)
	assert.Equal(t, floatPtr(600), record.Target)
	assert.Nil(t, record.Stop)
	assert.Equal(t, floatPtr(8), record.Confidence)
	assert.Equal(t, []string{"突破", "量增"}, record.Tags)
	assert.Equal(t, entity.NoteResultSuccess, record.Result)
	assert.Equal(t, entity.NoteSourceLocal, record.Source)
}

func TestParseNotesCSV(t *testing.T) {
	text := "\ufeff日期,股票代號,股票名稱,分析內容,信心度,策略標籤,result\n" +
		"2024-01-05,2330,台積電,\"突破前高, 量能放大\",8,突破;量增,success\n" +
		",,,,,,\n" +
		"2024-01-04,2317,鴻海,整理中,5,,\n"

	records := ParseNotesCSV(text)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "2024-01-05", first.Date)
	assert.Equal(t, "2330", first.Code)
	assert.Equal(t, "突破前高, 量能放大", first.Analysis)
	assert.Equal(t, floatPtr(8), first.Confidence)
	assert.Equal(t, []string{"突破", "量增"}, first.Tags)
	assert.Equal(t, entity.NoteResultSuccess, first.Result)
	assert.Equal(t, entity.NoteSourceFile, first.Source)

	second := records[1]
	assert.Equal(t, "2317", second.Code)
	assert.False(t, second.HasResult())
	assert.Nil(t, second.Tags)
}

func TestParseNotesCSVEnglishHeaders(t *testing.T) {
	text := "Date,StockCode,Analysis,Confidence\n2024-01-05,2330,breakout,7\n"

	records := ParseNotesCSV(text)
	require.Len(t, records, 1)
	assert.Equal(t, "2330", records[0].Code)
	assert.Equal(t, "breakout", records[0].Analysis)
	assert.Equal(t, floatPtr(7), records[0].Confidence)
}

func TestParseNotesCSVUnknownHeadersDropped(t *testing.T) {
	text := "日期,股票代號,分析內容,Mystery\n2024-01-05,2330,看多,???\n"

	records := ParseNotesCSV(text)
	require.Len(t, records, 1)
	assert.Equal(t, "看多", records[0].Analysis)
}

func floatPtr(v float64) *float64 {
	return &v
}

func intPtr(v int64) *int64 {
	return &v
}
