package csvutil

import (
	"strings"
)

// ParseSimple splits CSV text on newlines and commas with no quote handling.
// The first row is the header; each following non-blank row becomes a map
// keyed by header position. Missing trailing fields map to "". Intended for
// machine-written data known to be quote-free.
func ParseSimple(text string) []map[string]string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	lines := strings.Split(strings.ReplaceAll(trimmed, "\r\n", "\n"), "\n")
	headers := strings.Split(lines[0], ",")

	var rows []map[string]string
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		values := strings.Split(line, ",")
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(values) {
				row[header] = values[i]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Parse scans CSV text character by character with full quote handling:
// a field may be wrapped in double quotes, a doubled quote inside quotes is
// an escaped literal quote, and commas or newlines inside quotes are field
// content. CRLF and bare CR are normalized to LF before scanning. A trailing
// row without a terminating newline is still emitted.
func Parse(text string) [][]string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	var rows [][]string
	var row []string
	var value strings.Builder
	inQuotes := false

	for i := 0; i < len(normalized); i++ {
		ch := normalized[i]

		if inQuotes {
			if ch == '"' {
				if i+1 < len(normalized) && normalized[i+1] == '"' {
					value.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				value.WriteByte(ch)
			}
			continue
		}

		switch ch {
		case '"':
			inQuotes = true
		case ',':
			row = append(row, value.String())
			value.Reset()
		case '\n':
			row = append(row, value.String())
			rows = append(rows, row)
			row = nil
			value.Reset()
		default:
			value.WriteByte(ch)
		}
	}

	if value.Len() > 0 || len(row) > 0 {
		row = append(row, value.String())
		rows = append(rows, row)
	}

	return rows
}

// Escape quote-wraps a field and doubles internal quotes whenever the field
// contains a comma, quote, or newline. Other fields pass through unchanged.
func Escape(field string) string {
	if strings.ContainsAny(field, "\",\n") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}
