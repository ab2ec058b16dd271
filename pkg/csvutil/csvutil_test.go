package csvutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimple(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []map[string]string
	}{
		{
			name: "basic rows",
			text: "Date,Close\n20240101,100.5\n20240102,101",
			expected: []map[string]string{
				{"Date": "20240101", "Close": "100.5"},
				{"Date": "20240102", "Close": "101"},
			},
		},
		{
			name: "crlf line endings",
			text: "Date,Close\r\n20240101,100.5\r\n",
			expected: []map[string]string{
				{"Date": "20240101", "Close": "100.5"},
			},
		},
		{
			name: "missing trailing fields become empty",
			text: "Date,Close,Volume\n20240101,100.5",
			expected: []map[string]string{
				{"Date": "20240101", "Close": "100.5", "Volume": ""},
			},
		},
		{
			name: "blank lines skipped",
			text: "Date,Close\n\n20240101,100.5\n\n",
			expected: []map[string]string{
				{"Date": "20240101", "Close": "100.5"},
			},
		},
		{
			name:     "empty text",
			text:     "",
			expected: nil,
		},
		{
			name:     "whitespace only",
			text:     "  \n  ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseSimple(tt.text))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected [][]string
	}{
		{
			name:     "unquoted rows",
			text:     "a,b,c\n1,2,3\n",
			expected: [][]string{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			name:     "comma inside quotes",
			text:     "a,\"b,c\",d\n",
			expected: [][]string{{"a", "b,c", "d"}},
		},
		{
			name:     "escaped quote inside quotes",
			text:     "\"say \"\"hi\"\"\",x\n",
			expected: [][]string{{`say "hi"`, "x"}},
		},
		{
			name:     "newline inside quotes",
			text:     "\"line1\nline2\",x\n",
			expected: [][]string{{"line1\nline2", "x"}},
		},
		{
			name:     "trailing row without newline",
			text:     "a,b\n1,2",
			expected: [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:     "crlf and bare cr normalized",
			text:     "a,b\r\n1,2\r3,4",
			expected: [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}},
		},
		{
			name:     "empty text",
			text:     "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.text))
		})
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		expected string
	}{
		{name: "plain field unchanged", field: "2330", expected: "2330"},
		{name: "comma triggers quoting", field: "buy, hold", expected: `"buy, hold"`},
		{name: "quote doubled", field: `5" rule`, expected: `"5"" rule"`},
		{name: "newline triggers quoting", field: "a\nb", expected: "\"a\nb\""},
		{name: "empty stays empty", field: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Escape(tt.field))
		})
	}
}

func TestEscapeParseRoundTrip(t *testing.T) {
	fields := []string{"plain", "with, comma", `with "quotes"`, "multi\nline"}

	var line string
	for i, field := range fields {
		if i > 0 {
			line += ","
		}
		line += Escape(field)
	}

	rows := Parse(line + "\n")
	require.Len(t, rows, 1)
	assert.Equal(t, fields, rows[0])
}
