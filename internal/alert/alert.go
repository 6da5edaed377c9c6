package alert

import (
	"fmt"
	"sync"
	"time"

	"B3Radar/internal/model"

	"github.com/google/uuid"
)

const (
	// EntryMinSignals and EntryMinScore gate entry alerts.
	EntryMinSignals = 3
	EntryMinScore   = 75
	// ExitMaxScore gates exit alerts; any exit signal below it alerts.
	ExitMaxScore = 40

	DefaultWindow  = 30 * time.Second
	DefaultHistory = 20
)

// Book raises alerts for analyzed opportunities, suppresses repeats of the same ticker and
// type inside Window, and keeps the History most recent alerts. It is safe for concurrent use.
type Book struct {
	Window  time.Duration
	History int

	mu     sync.Mutex
	alerts []model.Alert // newest first
	last   map[string]time.Time
	now    func() time.Time
}

// NewBook creates a Book with the default window and history size.
func NewBook() *Book {
	return &Book{
		Window:  DefaultWindow,
		History: DefaultHistory,
		last:    make(map[string]time.Time),
		now:     time.Now,
	}
}

// Evaluate applies the alert rules to each analysis and returns the alerts raised by this call.
func (b *Book) Evaluate(analyses []model.Analysis) []model.Alert {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	var raised []model.Alert
	for _, a := range analyses {
		for _, candidate := range rules(a) {
			key := dedupKey(a.Ticker, candidate.Type)
			if at, ok := b.last[key]; ok && now.Sub(at) < b.Window {
				continue
			}
			candidate.ID = uuid.NewString()
			candidate.Timestamp = now
			b.last[key] = now
			raised = append(raised, candidate)
		}
	}

	for _, al := range raised {
		b.alerts = append([]model.Alert{al}, b.alerts...)
	}
	if len(b.alerts) > b.History {
		b.alerts = b.alerts[:b.History]
	}
	return raised
}

// Recent returns the retained alerts, newest first.
func (b *Book) Recent() []model.Alert {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Alert, len(b.alerts))
	copy(out, b.alerts)
	return out
}

// Restore seeds the book with previously persisted alerts, newest first.
func (b *Book) Restore(alerts []model.Alert) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alerts = append([]model.Alert(nil), alerts...)
	if len(b.alerts) > b.History {
		b.alerts = b.alerts[:b.History]
	}
	for _, al := range alerts {
		key := dedupKey(al.Ticker, al.Type)
		if at, ok := b.last[key]; !ok || al.Timestamp.After(at) {
			b.last[key] = al.Timestamp
		}
	}
}

func dedupKey(ticker string, typ model.AlertType) string {
	return ticker + "/" + string(typ)
}

func rules(a model.Analysis) []model.Alert {
	var out []model.Alert
	sig := a.Signals
	if len(sig.Entry) >= EntryMinSignals && sig.Score >= EntryMinScore {
		out = append(out, model.Alert{
			Type:    model.AlertEntry,
			Ticker:  a.Ticker,
			Message: fmt.Sprintf("%s: buy opportunity, %d entry signals with score %d", a.Ticker, len(sig.Entry), sig.Score),
			Signals: sig.Entry,
			Score:   sig.Score,
		})
	}
	if len(sig.Exit) > 0 && sig.Score < ExitMaxScore {
		out = append(out, model.Alert{
			Type:    model.AlertExit,
			Ticker:  a.Ticker,
			Message: fmt.Sprintf("%s: consider selling, %d exit signals with score %d", a.Ticker, len(sig.Exit), sig.Score),
			Signals: sig.Exit,
			Score:   sig.Score,
		})
	}
	return out
}
