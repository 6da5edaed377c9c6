package scheduler

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"B3Radar/internal/collector"
	"B3Radar/internal/model"
	"B3Radar/internal/radar"
	"B3Radar/internal/recorder"

	"go.uber.org/zap"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeSender) SendWithRetry(_ context.Context, text string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeSender) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func newTestScheduler(t *testing.T) (*Scheduler, *fakeSender) {
	t.Helper()
	col := collector.NewCollector(&collector.DemoFetcher{}, 4, 0, zap.NewNop())
	svc, err := radar.NewService(col, recorder.NewNoopRecorder(), model.Daily, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	sender := &fakeSender{}
	s := NewScheduler(context.Background(), svc, sender, FallbackCalendar(), zap.NewNop())
	return s, sender
}

func TestFallbackCalendar(t *testing.T) {
	cal := FallbackCalendar()
	loc := cal.Timezone
	tests := []struct {
		name    string
		at      time.Time
		trading bool
		open    bool
	}{
		{"monday midday", time.Date(2025, 3, 10, 12, 0, 0, 0, loc), true, true},
		{"monday before open", time.Date(2025, 3, 10, 9, 59, 0, 0, loc), true, false},
		{"monday at close", time.Date(2025, 3, 10, 17, 0, 0, 0, loc), true, false},
		{"saturday", time.Date(2025, 3, 8, 12, 0, 0, 0, loc), false, false},
		{"sunday", time.Date(2025, 3, 9, 12, 0, 0, 0, loc), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cal.IsTradingDay(tt.at); got != tt.trading {
				t.Errorf("IsTradingDay = %v, want %v", got, tt.trading)
			}
			if got := cal.IsOpen(tt.at); got != tt.open {
				t.Errorf("IsOpen = %v, want %v", got, tt.open)
			}
		})
	}
}

func TestRegisterAll(t *testing.T) {
	s, _ := newTestScheduler(t)
	if err := s.RegisterAll("0 */5 * * * 1-5", "0 30 18 * * 1-5"); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	if n := len(s.Cron.Entries()); n != 2 {
		t.Errorf("entries = %d, want 2", n)
	}

	s2, _ := newTestScheduler(t)
	if err := s2.RegisterAll("not a cron", ""); err == nil {
		t.Error("expected error for invalid cron spec")
	}
}

func TestRefreshTask_MarketHours(t *testing.T) {
	s, _ := newTestScheduler(t)
	s.MarketHoursOnly = true
	loc := s.Calendar.Timezone

	s.now = func() time.Time { return time.Date(2025, 3, 8, 12, 0, 0, 0, loc) }
	s.refreshTask()
	if !s.Radar.LastRefresh().IsZero() {
		t.Fatal("refresh should be skipped on a saturday")
	}

	s.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, loc) }
	s.refreshTask()
	if s.Radar.LastRefresh().IsZero() {
		t.Fatal("refresh should run during the session")
	}
	if len(s.Radar.Top()) == 0 {
		t.Error("expected ranked opportunities after refresh")
	}
}

func TestRefresh_SendsAlerts(t *testing.T) {
	s, sender := newTestScheduler(t)
	s.RunRefreshNow()

	alerts := s.Radar.Alerts()
	if got := len(sender.messages()); got != len(alerts) {
		t.Errorf("sent %d messages for %d alerts", got, len(alerts))
	}
}

func TestSummaryTask(t *testing.T) {
	s, sender := newTestScheduler(t)
	s.MarketHoursOnly = true
	loc := s.Calendar.Timezone

	s.now = func() time.Time { return time.Date(2025, 3, 9, 18, 30, 0, 0, loc) }
	s.summaryTask()
	if len(sender.messages()) != 0 {
		t.Fatal("summary should be skipped on a sunday")
	}

	s.now = func() time.Time { return time.Date(2025, 3, 10, 18, 30, 0, 0, loc) }
	s.summaryTask()
	msgs := sender.messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "B3Radar top") {
		t.Errorf("summary messages = %v", msgs)
	}
}

func TestSummaryTask_NoNotifier(t *testing.T) {
	s, _ := newTestScheduler(t)
	s.Notifier = nil
	s.summaryTask() // must not panic
}

func TestHandleCommand(t *testing.T) {
	s, _ := newTestScheduler(t)
	s.RunRefreshNow()
	top := s.Radar.Top()
	if len(top) == 0 {
		t.Fatal("no opportunities after refresh")
	}

	tests := []struct {
		name    string
		command string
		want    string
	}{
		{"top", "/top", "<b>" + top[0].Ticker + "</b>"},
		{"top with bot name", "/top@B3RadarBot", "B3Radar top"},
		{"ticker default timeframe", "/ticker petr4", "<b>PETR4</b> | daily"},
		{"ticker with timeframe", "/ticker PETR4 yearly", "<b>PETR4</b> | yearly"},
		{"ticker bad timeframe", "/ticker PETR4 hourly", "unknown timeframe"},
		{"ticker invalid", "/ticker PETR", "❌"},
		{"universe ticker with digit root", "/ticker b3sa3", "<b>B3SA3</b> | daily"},
		{"ticker usage", "/ticker", "Usage: /ticker"},
		{"empty watchlist", "/watch", "Watchlist is empty"},
		{"watch add", "/watch add taee11", "TAEE11"},
		{"watch duplicate", "/watch add TAEE11", "❌"},
		{"watch remove", "/watch remove TAEE11", "Watchlist is empty"},
		{"watch remove missing", "/watch remove TAEE11", "❌"},
		{"watch usage", "/watch clear", "Usage: /watch"},
		{"alerts", "/alerts", "alerts"},
		{"unknown", "/fund", "Commands:"},
		{"blank", "   ", "Commands:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.HandleCommand(tt.command)
			if !strings.Contains(got, tt.want) {
				t.Errorf("HandleCommand(%q) = %q, want substring %q", tt.command, got, tt.want)
			}
		})
	}
}
