package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang-stock-dashboard/internal/dashboard/config"
	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/internal/dashboard/repository"
	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/pkg/common"
	"golang-stock-dashboard/pkg/csvutil"
	"golang-stock-dashboard/pkg/logger"
	"golang-stock-dashboard/pkg/utils"
)

// NotesService owns the merged view of file-backed and locally persisted
// trade-prediction notes. The file-backed set is immutable; only local
// records may have their result annotated.
type NotesService interface {
	LoadBase(ctx context.Context, force bool) error
	Add(ctx context.Context, req *dto.AddNoteRequest) (entity.NoteRecord, error)
	UpdateResult(ctx context.Context, req *dto.UpdateResultRequest) (bool, error)
	All() []entity.NoteRecord
	Filter(filter dto.NoteFilter) []entity.NoteRecord
	ExportCSV() string
	Summary() dto.NotesSummary
	Calibration() []dto.CalibrationBucket
	PreMarket() []entity.NoteRecord
	PendingReview() []entity.NoteRecord
}

// NewNotesService creates the notes store and restores the locally persisted
// record set. Corrupt stored data is recovered silently to an empty set.
func NewNotesService(repo repository.NotesRepository, storage repository.KeyValueStore, cfg *config.Config, log *logger.Logger) NotesService {
	key := cfg.Notes.StorageKey
	if key == "" {
		key = common.NotesStorageKey
	}
	s := &notesStore{
		repo:       repo,
		storage:    storage,
		storageKey: key,
		cfg:        cfg,
		log:        log,
	}
	s.local = s.loadLocal(context.Background())
	return s
}

type notesStore struct {
	repo       repository.NotesRepository
	storage    repository.KeyValueStore
	storageKey string
	cfg        *config.Config
	log        *logger.Logger

	mu     sync.RWMutex
	base   []entity.NoteRecord
	local  []entity.NoteRecord
	loaded bool
}

// LoadBase fetches and parses notes.csv into the file-backed set. Once
// loaded it is only re-fetched when force is set.
func (s *notesStore) LoadBase(ctx context.Context, force bool) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded && !force {
		return nil
	}

	records, err := s.repo.FetchBase(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.base = records
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Add normalizes a submitted note, stamps it as a local record with a
// creation timestamp, prepends it to the local set, and persists the set.
func (s *notesStore) Add(ctx context.Context, req *dto.AddNoteRequest) (entity.NoteRecord, error) {
	if strings.TrimSpace(req.Date) == "" {
		return entity.NoteRecord{}, fmt.Errorf("date is required")
	}
	if strings.TrimSpace(req.Code) == "" {
		return entity.NoteRecord{}, fmt.Errorf("code is required")
	}
	if strings.TrimSpace(req.Analysis) == "" {
		return entity.NoteRecord{}, fmt.Errorf("analysis is required")
	}

	record := repository.NormalizeNote(map[string]string{
		"date":       req.Date,
		"code":       req.Code,
		"name":       req.Name,
		"analysis":   req.Analysis,
		"prediction": req.Prediction,
		"target":     req.Target,
		"stop":       req.Stop,
		"confidence": req.Confidence,
		"tags":       req.Tags,
		"mood":       req.Mood,
		"notes":      req.Notes,
		"reference":  req.Reference,
		"createdAt":  time.Now().UTC().Format(time.RFC3339),
	}, entity.NoteSourceLocal)

	s.mu.Lock()
	s.local = append([]entity.NoteRecord{record}, s.local...)
	s.mu.Unlock()

	s.persistLocal(ctx)
	return record, nil
}

// UpdateResult annotates the outcome of one local record identified by
// date, code, and creation timestamp. File-backed records never match, so
// attempting to update one is a silent no-op; the bool reports whether a
// record was changed.
func (s *notesStore) UpdateResult(ctx context.Context, req *dto.UpdateResultRequest) (bool, error) {
	result := entity.NoteResult(strings.TrimSpace(req.Result))
	switch result {
	case entity.NoteResultNone, entity.NoteResultSuccess, entity.NoteResultFail:
	default:
		return false, fmt.Errorf("invalid result %q", req.Result)
	}

	date := strings.TrimSpace(req.Date)
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	s.mu.Lock()
	updated := false
	for i := range s.local {
		if s.local[i].Date == date && s.local[i].Code == code && s.local[i].CreatedAt == req.CreatedAt {
			s.local[i].Result = result
			updated = true
			break
		}
	}
	s.mu.Unlock()

	if updated {
		s.persistLocal(ctx)
	}
	return updated, nil
}

// All returns the union of file-backed and local records sorted descending
// by date. Unparseable dates compare as the epoch.
func (s *notesStore) All() []entity.NoteRecord {
	s.mu.RLock()
	records := make([]entity.NoteRecord, 0, len(s.base)+len(s.local))
	records = append(records, s.base...)
	records = append(records, s.local...)
	s.mu.RUnlock()

	sort.SliceStable(records, func(i, j int) bool {
		return utils.DateValue(records[i].Date) > utils.DateValue(records[j].Date)
	})
	return records
}

// Filter selects records matching the given constraints. Code and mood are
// exact matches, the tag must be contained in the record's tag list, and an
// absent confidence compares as 0 against MinConfidence.
func (s *notesStore) Filter(filter dto.NoteFilter) []entity.NoteRecord {
	var filtered []entity.NoteRecord
	for _, record := range s.All() {
		if filter.Code != "" && record.Code != filter.Code {
			continue
		}
		if filter.Mood != "" && record.Mood != filter.Mood {
			continue
		}
		if filter.Tag != "" && !containsTag(record.Tags, filter.Tag) {
			continue
		}
		if record.ConfidenceOrZero() < filter.MinConfidence {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}

// ExportCSV serializes the merged record set, newest first, to the canonical
// 14-column notes format. Tags are semicolon-joined; fields containing a
// comma, quote, or newline are quote-escaped.
func (s *notesStore) ExportCSV() string {
	lines := []string{strings.Join(repository.NoteExportHeaders, ",")}
	for _, record := range s.All() {
		values := []string{
			record.Date,
			record.Code,
			record.Name,
			record.Analysis,
			record.Prediction,
			formatOptionalNumber(record.Target),
			formatOptionalNumber(record.Stop),
			formatOptionalNumber(record.Confidence),
			strings.Join(record.Tags, ";"),
			record.Mood,
			record.Notes,
			record.Reference,
			string(record.Result),
			record.ReviewNote,
		}
		for i, value := range values {
			values[i] = csvutil.Escape(value)
		}
		lines = append(lines, strings.Join(values, ","))
	}
	return strings.Join(lines, "\n")
}

// Summary aggregates the merged record set: totals, distinct codes, average
// confidence, and the most frequent tag and mood.
func (s *notesStore) Summary() dto.NotesSummary {
	records := s.All()
	summary := dto.NotesSummary{
		TotalRecords:  len(records),
		AvgConfidence: "--",
		TopTag:        "--",
		TopMood:       "--",
	}

	codes := map[string]struct{}{}
	tagCounts := map[string]int{}
	moodCounts := map[string]int{}
	var confidenceSum float64
	var confidenceCount int

	for _, record := range records {
		if record.Code != "" {
			codes[record.Code] = struct{}{}
		}
		if record.Confidence != nil {
			confidenceSum += *record.Confidence
			confidenceCount++
		}
		for _, tag := range record.Tags {
			tagCounts[tag]++
		}
		if record.Mood != "" {
			moodCounts[record.Mood]++
		}
	}

	summary.UniqueStocks = len(codes)
	if confidenceCount > 0 {
		summary.AvgConfidence = strconv.FormatFloat(confidenceSum/float64(confidenceCount), 'f', 1, 64)
	}
	if top := topCounted(tagCounts); top != "" {
		summary.TopTag = top
	}
	if top := topCounted(moodCounts); top != "" {
		summary.TopMood = top
	}
	return summary
}

// Calibration buckets outcome-labeled records by confidence, including the
// over/under-confidence assessment.
func (s *notesStore) Calibration() []dto.CalibrationBucket {
	return CalculateCalibration(s.All(), true)
}

// PreMarket returns today's unreviewed records at or above the configured
// confidence threshold.
func (s *notesStore) PreMarket() []entity.NoteRecord {
	today := utils.Today()
	var records []entity.NoteRecord
	for _, record := range s.All() {
		if record.Date == today && !record.HasResult() &&
			record.ConfidenceOrZero() >= s.cfg.Notes.PremarketMinConfidence {
			records = append(records, record)
		}
	}
	return records
}

// PendingReview returns past-dated records whose result has not been filled
// in yet.
func (s *notesStore) PendingReview() []entity.NoteRecord {
	today := utils.Today()
	var records []entity.NoteRecord
	for _, record := range s.All() {
		if record.Date < today && !record.HasResult() {
			records = append(records, record)
		}
	}
	return records
}

// persistLocal saves the local set as JSON under the storage key. Storage
// failures are logged but do not fail the calling operation.
func (s *notesStore) persistLocal(ctx context.Context) {
	s.mu.RLock()
	payload, err := json.Marshal(s.local)
	s.mu.RUnlock()
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to serialize local notes", logger.ErrorField(err))
		return
	}
	if err := s.storage.Set(ctx, s.storageKey, string(payload)); err != nil {
		s.log.WarnContext(ctx, "Failed to persist local notes", logger.ErrorField(err))
	}
}

// loadLocal restores the local set from storage. Anything unreadable or
// unparseable yields an empty set, never an error.
func (s *notesStore) loadLocal(ctx context.Context) []entity.NoteRecord {
	stored, err := s.storage.Get(ctx, s.storageKey)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to read stored notes", logger.ErrorField(err))
		return nil
	}
	if stored == "" {
		return nil
	}

	var records []entity.NoteRecord
	if err := json.Unmarshal([]byte(stored), &records); err != nil {
		s.log.WarnContext(ctx, "Stored notes are corrupt, starting empty", logger.ErrorField(err))
		return nil
	}
	for i := range records {
		records[i].Code = strings.ToUpper(strings.TrimSpace(records[i].Code))
		records[i].Source = entity.NoteSourceLocal
	}
	return records
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func topCounted(counts map[string]int) string {
	best := ""
	bestCount := 0
	for value, count := range counts {
		if count > bestCount || (count == bestCount && best != "" && value < best) {
			best = value
			bestCount = count
		}
	}
	return best
}

func formatOptionalNumber(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
