package service

import (
	"context"

	"golang-stock-dashboard/internal/dashboard/config"
	"golang-stock-dashboard/pkg/logger"
	"golang-stock-dashboard/pkg/telegram"
	"golang-stock-dashboard/pkg/utils"

	"github.com/robfig/cron/v3"
)

// RefresherService warms the data caches on a schedule so the first
// dashboard request after the market data lands does not pay the fetch
// cost, and reminds about predictions that still need their result filled
// in.
type RefresherService struct {
	cfg      *config.Config
	log      *logger.Logger
	stocks   StockService
	notes    NotesService
	notifier telegram.Notifier
	cron     *cron.Cron
}

// NewRefresherService creates a refresher. The notifier may be nil, in which
// case reminders are only logged.
func NewRefresherService(cfg *config.Config, log *logger.Logger, stocks StockService, notes NotesService, notifier telegram.Notifier) *RefresherService {
	return &RefresherService{
		cfg:      cfg,
		log:      log,
		stocks:   stocks,
		notes:    notes,
		notifier: notifier,
		cron:     cron.New(),
	}
}

// Start registers the cron entry and begins the schedule.
func (s *RefresherService) Start() error {
	_, err := s.cron.AddFunc(s.cfg.Refresher.CronSpec, s.refresh)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("Cache refresher started", logger.StringField("cron_spec", s.cfg.Refresher.CronSpec))
	return nil
}

// Stop halts the schedule, waiting for a running refresh to finish.
func (s *RefresherService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *RefresherService) refresh() {
	ctx := context.Background()
	today := utils.TimeNowTaipei().Format("20060102")

	if _, err := s.stocks.GetDaily(ctx, today); err != nil {
		s.log.WarnContext(ctx, "Daily quote warmup failed",
			logger.StringField("date", today), logger.ErrorField(err))
	}

	for _, code := range s.cfg.Refresher.Watchlist {
		if _, err := s.stocks.GetStock(ctx, code, 0); err != nil {
			s.log.WarnContext(ctx, "Watchlist warmup failed",
				logger.StringField("code", code), logger.ErrorField(err))
		}
	}

	s.remindPendingReview(ctx)
}

// remindPendingReview sends one reminder listing predictions whose outcome
// is still unset.
func (s *RefresherService) remindPendingReview(ctx context.Context) {
	if err := s.notes.LoadBase(ctx, false); err != nil {
		s.log.WarnContext(ctx, "Notes base load failed during refresh", logger.ErrorField(err))
	}

	pending := s.notes.PendingReview()
	if len(pending) == 0 {
		return
	}

	s.log.InfoContext(ctx, "Predictions pending review", logger.IntField("count", len(pending)))
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendMessage(telegram.FormatPendingReviewReminder(pending)); err != nil {
		s.log.WarnContext(ctx, "Failed to send review reminder", logger.ErrorField(err))
	}
}
