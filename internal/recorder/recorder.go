package recorder

import (
	"time"

	"B3Radar/internal/model"
)

// RefreshSnapshot is the outcome of one refresh cycle.
type RefreshSnapshot struct {
	At        time.Time
	Timeframe model.Timeframe
	Collected int
	Top       []model.OpportunityRecord
}

// Recorder persists refresh history, alerts and the user watchlist.
type Recorder interface {
	RecordRefresh(snap *RefreshSnapshot) error
	RecordAlerts(alerts []model.Alert) error
	RecentAlerts(limit int) ([]model.Alert, error)
	SaveWatchlist(tickers []string) error
	LoadWatchlist() ([]string, error)
	Close() error
}
