package dto

// AddNoteRequest carries the raw fields of a user-submitted note. All values
// arrive as strings and are normalized server-side.
type AddNoteRequest struct {
	Date       string `json:"date"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Analysis   string `json:"analysis"`
	Prediction string `json:"prediction"`
	Target     string `json:"target"`
	Stop       string `json:"stop"`
	Confidence string `json:"confidence"`
	Tags       string `json:"tags"`
	Mood       string `json:"mood"`
	Notes      string `json:"notes"`
	Reference  string `json:"reference"`
}

// UpdateResultRequest identifies a local note by its composite identity and
// sets its realized outcome.
type UpdateResultRequest struct {
	Date      string `json:"date"`
	Code      string `json:"code"`
	CreatedAt string `json:"createdAt"`
	Result    string `json:"result"`
}

// NoteFilter selects a subset of note records. Empty strings mean "no
// constraint"; an absent record confidence compares as 0 against
// MinConfidence.
type NoteFilter struct {
	Code          string
	Tag           string
	Mood          string
	MinConfidence float64
}

// CalibrationBucket groups outcome-labeled notes sharing one confidence
// value. WinRate is rendered to one decimal place.
type CalibrationBucket struct {
	Confidence float64 `json:"confidence"`
	Total      int     `json:"total"`
	WinRate    string  `json:"win_rate"`
	Assessment string  `json:"assessment,omitempty"`
}

// NotesSummary aggregates the merged record set for display.
type NotesSummary struct {
	TotalRecords  int    `json:"total_records"`
	UniqueStocks  int    `json:"unique_stocks"`
	AvgConfidence string `json:"avg_confidence"`
	TopTag        string `json:"top_tag"`
	TopMood       string `json:"top_mood"`
}
