package utils

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"
)

var (
	compactDateRe = regexp.MustCompile(`^\d{8}$`)
	dashedDateRe  = regexp.MustCompile(`^\d{4}[-/]\d{2}[-/]\d{2}$`)
)

// TimeNowTaipei returns the current time in the Taipei market timezone.
func TimeNowTaipei() time.Time {
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return time.Now().In(loc)
}

// Today returns today's date in the market timezone as YYYY-MM-DD.
func Today() string {
	return TimeNowTaipei().Format("2006-01-02")
}

// FormatCompactDate renders an 8-digit YYYYMMDD date as YYYY/MM/DD. Anything
// that is not exactly 8 characters is returned unchanged.
func FormatCompactDate(date string) string {
	if len(date) != 8 {
		return date
	}
	return fmt.Sprintf("%s/%s/%s", date[0:4], date[4:6], date[6:8])
}

// DateValue converts a note date string into a comparable millisecond
// timestamp. Accepted formats: 8-digit compact (YYYYMMDD), dashed or slashed
// YYYY-MM-DD, or anything time.Parse understands as RFC3339/date-time.
// Unparseable dates compare as the epoch so malformed input never breaks
// ordering.
func DateValue(date string) int64 {
	str := strings.TrimSpace(date)
	if str == "" {
		return 0
	}

	if compactDateRe.MatchString(str) {
		t, err := time.ParseInLocation("20060102", str, time.UTC)
		if err != nil {
			return 0
		}
		return t.UnixMilli()
	}

	if dashedDateRe.MatchString(str) {
		normalized := strings.ReplaceAll(str, "/", "-")
		t, err := time.ParseInLocation("2006-01-02", normalized, time.UTC)
		if err != nil {
			return 0
		}
		return t.UnixMilli()
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-1-2"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}
