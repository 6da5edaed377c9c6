package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"B3Radar/internal/model"
	"B3Radar/internal/notifier"
	"B3Radar/internal/radar"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const sendRetries = 3

// Sender delivers a chat message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages all cron tasks and answers chat commands.
type Scheduler struct {
	Cron     *cron.Cron
	Radar    *radar.Service
	Notifier Sender // nil disables chat delivery
	Calendar *TradingCalendar
	// MarketHoursOnly skips refreshes while B3 is closed and summaries on non-trading days.
	MarketHoursOnly bool
	Ctx             context.Context

	logger *zap.Logger
	now    func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, svc *radar.Service, sender Sender, cal *TradingCalendar, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Radar:    svc,
		Notifier: sender,
		Calendar: cal,
		Ctx:      ctx,
		logger:   logger.With(zap.String("component", "scheduler")),
		now:      time.Now,
	}
}

// RegisterAll registers the refresh and the daily summary tasks.
func (s *Scheduler) RegisterAll(refreshCron, summaryCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if summaryCron != "" {
		if _, err := s.Cron.AddFunc(summaryCron, s.summaryTask); err != nil {
			return fmt.Errorf("register summary task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// RunRefreshNow executes a refresh immediately, ignoring market hours.
func (s *Scheduler) RunRefreshNow() {
	s.refresh()
}

func (s *Scheduler) refreshTask() {
	if s.MarketHoursOnly && !s.Calendar.IsOpen(s.now()) {
		s.logger.Debug("market closed, refresh skipped")
		return
	}
	s.refresh()
}

func (s *Scheduler) refresh() {
	start := s.now()
	update, err := s.Radar.Refresh(s.Ctx)
	if err != nil {
		s.logger.Error("refresh failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled refresh finished",
		zap.Int("opportunities", len(update.Top)),
		zap.Int("alerts", len(update.Alerts)),
		zap.Duration("took", s.now().Sub(start)))

	for _, a := range update.Alerts {
		s.trySend(notifier.FormatAlert(a))
	}
}

func (s *Scheduler) summaryTask() {
	if s.MarketHoursOnly && !s.Calendar.IsTradingDay(s.now()) {
		s.logger.Debug("no session today, summary skipped")
		return
	}
	s.trySend(notifier.FormatTop(s.Radar.Top(), s.Radar.Timeframe(), s.Radar.LastRefresh()))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// Group chats append the bot name: /top@B3RadarBot.
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	args := fields[1:]

	switch name {
	case "/top":
		return notifier.FormatTop(s.Radar.Top(), s.Radar.Timeframe(), s.Radar.LastRefresh())
	case "/ticker":
		return s.handleTicker(args)
	case "/watch":
		return s.handleWatch(args)
	case "/alerts":
		return notifier.FormatAlerts(s.Radar.Alerts())
	case "/refresh":
		s.refresh()
		return notifier.FormatTop(s.Radar.Top(), s.Radar.Timeframe(), s.Radar.LastRefresh())
	default:
		return helpText
	}
}

const helpText = "Commands:\n" +
	"• /top - ranked opportunities\n" +
	"• /ticker PETR4 [daily|weekly|monthly|yearly] - full analysis\n" +
	"• /watch - show watchlist\n" +
	"• /watch add TICKER | /watch remove TICKER\n" +
	"• /alerts - recent alerts\n" +
	"• /refresh - refresh now"

func (s *Scheduler) handleTicker(args []string) string {
	if len(args) == 0 {
		return "Usage: /ticker PETR4 [daily|weekly|monthly|yearly]"
	}
	tf := s.Radar.Timeframe()
	if len(args) > 1 {
		parsed, err := model.ParseTimeframe(args[1])
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		tf = parsed
	}
	a, err := s.Radar.Analyze(s.Ctx, args[0], tf)
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	return notifier.FormatAnalysis(a)
}

func (s *Scheduler) handleWatch(args []string) string {
	if len(args) == 0 {
		return notifier.FormatWatchlist(s.Radar.UserWatchlist())
	}
	if len(args) != 2 {
		return "Usage: /watch add TICKER | /watch remove TICKER"
	}
	var err error
	switch strings.ToLower(args[0]) {
	case "add":
		err = s.Radar.Watch(args[1])
	case "remove", "rm":
		err = s.Radar.Unwatch(args[1])
	default:
		return "Usage: /watch add TICKER | /watch remove TICKER"
	}
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	return notifier.FormatWatchlist(s.Radar.UserWatchlist())
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("send notification", zap.Error(err))
	}
}
