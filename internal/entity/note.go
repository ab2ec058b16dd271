package entity

// NoteSource tells where a note record came from. File-backed records are
// immutable for the lifetime of the process; only local records may be
// annotated.
type NoteSource string

const (
	NoteSourceFile  NoteSource = "csv"
	NoteSourceLocal NoteSource = "local"
)

// NoteResult is the realized outcome of a trade prediction.
type NoteResult string

const (
	NoteResultNone    NoteResult = ""
	NoteResultSuccess NoteResult = "success"
	NoteResultFail    NoteResult = "fail"
)

// NoteRecord is one trade-prediction note. JSON field names match the
// persisted local-storage format so stored records round-trip unchanged.
type NoteRecord struct {
	Date       string     `json:"date"`
	Code       string     `json:"code"`
	Name       string     `json:"name"`
	Analysis   string     `json:"analysis"`
	Prediction string     `json:"prediction"`
	Target     *float64   `json:"target"`
	Stop       *float64   `json:"stop"`
	Confidence *float64   `json:"confidence"`
	Tags       []string   `json:"tags"`
	Mood       string     `json:"mood"`
	Notes      string     `json:"notes"`
	Reference  string     `json:"reference"`
	Result     NoteResult `json:"result"`
	ReviewNote string     `json:"review_note"`
	Source     NoteSource `json:"source"`
	CreatedAt  string     `json:"createdAt"`
}

// HasResult reports whether the prediction has been reviewed.
func (r NoteRecord) HasResult() bool {
	return r.Result != NoteResultNone
}

// ConfidenceOrZero returns the confidence value with absent treated as 0,
// the convention used by minimum-confidence filters.
func (r NoteRecord) ConfidenceOrZero() float64 {
	if r.Confidence == nil {
		return 0
	}
	return *r.Confidence
}
